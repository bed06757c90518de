package models

// Snapshot is the on-disk JSON document the in-memory store is seeded from.
type Snapshot struct {
	Currencies    []Currency     `json:"currencies"`
	ExchangeRates []ExchangeRate `json:"exchangeRates"`
	Users         []User         `json:"users"`
	Groups        []Group        `json:"groups"`
	Expenses      []Expense      `json:"expenses"`
}
