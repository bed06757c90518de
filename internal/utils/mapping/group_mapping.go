package mapping

import (
	"github.com/SscSPs/tab_buddy/internal/core/domain"
	"github.com/SscSPs/tab_buddy/internal/models"
)

// ToModelGroup converts a domain Group to a model Group
func ToModelGroup(d domain.Group) models.Group {
	memberIDs := make([]string, len(d.Members))
	for i, m := range d.Members {
		memberIDs[i] = m.UserID
	}
	return models.Group{
		GroupID:          d.GroupID,
		Name:             d.Name,
		BaseCurrencyCode: d.BaseCurrencyCode,
		MemberIDs:        memberIDs,
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainGroup converts a model Group to a domain Group, resolving members from users.
func ToDomainGroup(m models.Group, users map[string]models.User) domain.Group {
	members := make([]domain.User, len(m.MemberIDs))
	for i, id := range m.MemberIDs {
		members[i] = ResolveUser(users, id)
	}
	return domain.Group{
		GroupID:          m.GroupID,
		Name:             m.Name,
		BaseCurrencyCode: m.BaseCurrencyCode,
		Members:          members,
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
}
