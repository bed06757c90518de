package memory

import (
	"context"

	"github.com/SscSPs/tab_buddy/internal/apperrors"
	"github.com/SscSPs/tab_buddy/internal/core/domain"
	portsrepo "github.com/SscSPs/tab_buddy/internal/core/ports/repositories"
	"github.com/SscSPs/tab_buddy/internal/utils/mapping"
)

type groupRepository struct {
	store *Store
}

func newGroupRepository(store *Store) portsrepo.GroupReader {
	return &groupRepository{store: store}
}

// FindGroupByID retrieves a group and resolves its members.
func (r *groupRepository) FindGroupByID(ctx context.Context, groupID string) (*domain.Group, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	m, ok := r.store.groups[groupID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	group := mapping.ToDomainGroup(m, r.store.users)
	return &group, nil
}
