package domain

// Group is a named collection of expenses plus its membership.
type Group struct {
	GroupID          string  `json:"groupID"`
	Name             string  `json:"name"`
	BaseCurrencyCode *string `json:"baseCurrencyCode"` // Optional currency used for converted reports
	Members          []User  `json:"members"`
	AuditFields
}

// Member returns the member with the given ID.
func (g Group) Member(userID string) (User, bool) {
	for _, m := range g.Members {
		if m.UserID == userID {
			return m, true
		}
	}
	return User{}, false
}

// HasBaseCurrency reports whether converted reporting is configured for the group.
func (g Group) HasBaseCurrency() bool {
	return g.BaseCurrencyCode != nil && *g.BaseCurrencyCode != ""
}
