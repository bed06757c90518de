package mapping

import (
	"github.com/SscSPs/tab_buddy/internal/core/domain"
	"github.com/SscSPs/tab_buddy/internal/models"
)

// ToModelUser converts a domain User to a model User
func ToModelUser(d domain.User) models.User {
	return models.User{
		UserID: d.UserID,
		Name:   d.DisplayName,
	}
}

// ToDomainUser converts a model User to a domain User
func ToDomainUser(m models.User) domain.User {
	return domain.User{
		UserID:      m.UserID,
		DisplayName: m.Name,
	}
}

// ResolveUser looks a user up by ID, falling back to a user known only by its ID.
func ResolveUser(users map[string]models.User, userID string) domain.User {
	if m, ok := users[userID]; ok {
		return ToDomainUser(m)
	}
	return domain.User{UserID: userID}
}
