package split

import (
	"fmt"

	"github.com/SscSPs/tab_buddy/internal/apperrors"
	"github.com/SscSPs/tab_buddy/internal/core/domain"
	"github.com/SscSPs/tab_buddy/internal/utils"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// Request is the raw input of one expense create or edit.
type Request struct {
	Amount       string // Expense total, unsigned decimal string
	Currency     domain.Currency
	PayerID      string
	Participants []Participant
	Policy       domain.SplitPolicy // Empty means EQUAL
}

// Calculate computes the split for an expense. It returns one SplitUser per
// participant, in participant order: owed participants carry their share,
// the others carry zero, and exactly one entry (the payer) has Paid set.
// Owed shares always sum exactly to the parsed total.
func Calculate(req Request) ([]domain.SplitUser, error) {
	policy, err := NewPolicy(req.Policy)
	if err != nil {
		return nil, err
	}

	total, err := utils.ParseAmount(req.Amount, req.Currency)
	if err != nil {
		return nil, err
	}

	if err := validateParticipants(req.PayerID, req.Participants); err != nil {
		return nil, err
	}

	owed := lo.Filter(req.Participants, func(p Participant, _ int) bool {
		return p.Owed
	})
	if len(owed) == 0 {
		return nil, fmt.Errorf("%w: no owed participants", apperrors.ErrInvalidSplit)
	}

	units, err := policy.Allocate(utils.ToMinorUnits(total, req.Currency), owed, req.Currency)
	if err != nil {
		return nil, err
	}
	if len(units) != len(owed) {
		return nil, fmt.Errorf("%s policy returned %d shares for %d participants", policy.Type(), len(units), len(owed))
	}

	splitUsers := make([]domain.SplitUser, 0, len(req.Participants))
	next := 0
	for _, p := range req.Participants {
		amount := decimal.Zero
		if p.Owed {
			amount = utils.FromMinorUnits(units[next], req.Currency)
			next++
		}
		splitUsers = append(splitUsers, domain.SplitUser{
			User:   p.User,
			Paid:   p.User.UserID == req.PayerID,
			Owed:   p.Owed,
			Amount: amount,
		})
	}
	return splitUsers, nil
}

func validateParticipants(payerID string, participants []Participant) error {
	if payerID == "" {
		return fmt.Errorf("%w: payer is required", apperrors.ErrInvalidSplit)
	}
	seen := make(map[string]struct{}, len(participants))
	for _, p := range participants {
		if p.User.UserID == "" {
			return fmt.Errorf("%w: participant without user ID", apperrors.ErrInvalidSplit)
		}
		if _, ok := seen[p.User.UserID]; ok {
			return fmt.Errorf("%w: duplicate participant %s", apperrors.ErrInvalidSplit, p.User.UserID)
		}
		seen[p.User.UserID] = struct{}{}
	}
	if _, ok := seen[payerID]; !ok {
		return fmt.Errorf("%w: payer %s is not a participant", apperrors.ErrInvalidSplit, payerID)
	}
	return nil
}
