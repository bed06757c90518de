package domain

// User represents a group member. Immutable for the purposes of splitting and netting.
type User struct {
	UserID      string `json:"userID"` // Primary Key (e.g., UUID)
	DisplayName string `json:"displayName"`
}
