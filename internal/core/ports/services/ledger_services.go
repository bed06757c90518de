package services

import (
	"context"

	"github.com/SscSPs/tab_buddy/internal/core/domain"
)

// LedgerSvc defines debt netting operations over a group's expenses
type LedgerSvc interface {
	// GroupBalances folds the group's expenses from the viewer's point of view.
	// When convert is set, expenses are first converted into the group base currency.
	// Malformed expenses are reported in Balances.Warnings, never as an error.
	GroupBalances(ctx context.Context, groupID, viewerID string, convert bool) (*domain.Balances, error)

	// MemberSummaries computes the net position of every group member per currency.
	MemberSummaries(ctx context.Context, groupID string) (*domain.GroupSummary, error)
}
