package models

// Group is the stored form of a group. Members are referenced by ID.
type Group struct {
	GroupID          string   `json:"groupID"`
	Name             string   `json:"name"`
	BaseCurrencyCode *string  `json:"baseCurrencyCode,omitempty"` // FK -> Currency.currencyCode
	MemberIDs        []string `json:"memberIDs"`
	AuditFields
}
