package models

// BankStatement represents one bank account's transaction report ("cartola")
// for a date range, sourced from a single uploaded XML file. Statements are
// read-only after ingestion.
type BankStatement struct {
	Base
	// StatementKey is the statement's period-from date string, used as the
	// natural key. Two uploads sharing a start date are a conflict, never a
	// silent overwrite.
	StatementKey  string `gorm:"uniqueIndex;not null" json:"statement_key"`
	FileName      string `gorm:"not null" json:"file_name"`
	CompanyName   string `json:"company_name"`
	AccountNumber string `json:"account_number"`
	Currency      string `json:"currency"`
	PeriodFrom    string `gorm:"not null" json:"period_from"`
	PeriodTo      string `json:"period_to"`

	// Relationships
	Transactions []Transaction `gorm:"foreignKey:StatementID" json:"transactions,omitempty"`
}

// Transaction represents one movement line within a bank statement.
// Immutable once parsed.
type Transaction struct {
	Base
	StatementID uint `gorm:"not null;index" json:"statement_id"`
	// TxnID is "<fileName>-<index>", stable across re-parses of the same file.
	TxnID       string  `gorm:"uniqueIndex;not null" json:"txn_id"`
	Position    int     `gorm:"not null" json:"position"`
	Date        string  `json:"date"`
	Description string  `json:"description"`
	Amount      float64 `gorm:"not null" json:"amount"`
	Balance     float64 `gorm:"not null" json:"balance"`
}
