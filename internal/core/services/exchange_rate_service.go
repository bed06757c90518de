package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/SscSPs/tab_buddy/internal/apperrors"
	"github.com/SscSPs/tab_buddy/internal/core/domain"
	portsrepo "github.com/SscSPs/tab_buddy/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/tab_buddy/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// exchangeRateService provides business logic for exchange rates.
type exchangeRateService struct {
	BaseService
	rateRepo portsrepo.ExchangeRateReader
}

// NewExchangeRateService creates a new exchange rate service.
func NewExchangeRateService(rateRepo portsrepo.ExchangeRateReader) portssvc.ExchangeRateReaderSvc {
	return &exchangeRateService{rateRepo: rateRepo}
}

var _ portssvc.ExchangeRateReaderSvc = (*exchangeRateService)(nil)

// GetExchangeRate retrieves the rate for a currency pair. A currency converts to itself at 1.
func (s *exchangeRateService) GetExchangeRate(ctx context.Context, fromCode, toCode string) (*domain.ExchangeRate, error) {
	// Basic validation for codes (length, case)
	fromCode = strings.ToUpper(strings.TrimSpace(fromCode))
	toCode = strings.ToUpper(strings.TrimSpace(toCode))
	if len(fromCode) != 3 || len(toCode) != 3 {
		return nil, fmt.Errorf("%w: currency codes must be 3 letters", apperrors.ErrValidation)
	}
	if fromCode == toCode {
		return &domain.ExchangeRate{FromCurrencyCode: fromCode, ToCurrencyCode: toCode, Rate: decimal.NewFromInt(1)}, nil
	}

	rate, err := s.rateRepo.FindExchangeRate(ctx, fromCode, toCode)
	if err != nil {
		// Repository layer handles ErrNotFound mapping
		return nil, fmt.Errorf("failed to get exchange rate in service: %w", err)
	}
	if !rate.Rate.IsPositive() {
		return nil, fmt.Errorf("%w: exchange rate %s->%s must be positive", apperrors.ErrValidation, fromCode, toCode)
	}
	return rate, nil
}
