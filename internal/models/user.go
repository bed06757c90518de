package models

// User represents a member of one or more groups.
type User struct {
	UserID string `json:"userID"`
	Name   string `json:"name"`
}
