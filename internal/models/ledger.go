package models

// LedgerEntry is a single income or expense row.
type LedgerEntry struct {
	ID          string  `json:"id" db:"id"`
	Date        string  `json:"date" db:"date"`
	Description string  `json:"description" db:"description"`
	Amount      float64 `json:"amount" db:"amount"`
}
