package repositories

import (
	"context"

	"github.com/SscSPs/tab_buddy/internal/core/domain"
)

// GroupReader defines read operations for group data
type GroupReader interface {
	// FindGroupByID retrieves a group with its resolved members.
	FindGroupByID(ctx context.Context, groupID string) (*domain.Group, error)
}
