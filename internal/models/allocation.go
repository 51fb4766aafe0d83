package models

import "math"

// BalanceEpsilon is the tolerance used when comparing a prorated allocation's
// split total against its transaction amount. Currency math in floating point
// needs a deliberate rounding policy; this is it.
const BalanceEpsilon = 0.01

// AllocationKind discriminates the two allocation variants.
type AllocationKind string

const (
	// AllocationKindSingle assigns the whole transaction to one project
	// (or leaves it unassigned when ProjectID is nil).
	AllocationKindSingle AllocationKind = "single"
	// AllocationKindProrated splits the transaction across multiple projects.
	AllocationKindProrated AllocationKind = "prorated"
)

// Allocation maps a transaction to one or more projects. Exactly one
// allocation exists per transaction id; absence means "unassigned".
type Allocation struct {
	Base
	TxnID string         `gorm:"uniqueIndex;not null" json:"txn_id"`
	Kind  AllocationKind `gorm:"not null" json:"kind"`

	// ProjectID is the target of a single allocation; nil means unassigned.
	// Only meaningful when Kind is single.
	ProjectID *uint `json:"project_id,omitempty"`

	// Splits is the ordered split list of a prorated allocation.
	Splits []ProratedSplit `gorm:"foreignKey:AllocationID;constraint:OnDelete:CASCADE" json:"splits,omitempty"`
}

// ProratedSplit is one portion of a prorated allocation. A nil ProjectID
// leaves the portion unassigned.
type ProratedSplit struct {
	Base
	AllocationID uint    `gorm:"not null;index" json:"allocation_id"`
	SplitID      string  `gorm:"not null" json:"split_id"`
	Position     int     `gorm:"not null" json:"position"`
	Description  string  `json:"description"`
	ProjectID    *uint   `json:"project_id,omitempty"`
	Amount       float64 `gorm:"not null" json:"amount"`
}

// SplitsTotal returns the sum of the split amounts.
func SplitsTotal(splits []ProratedSplit) float64 {
	var total float64
	for _, s := range splits {
		total += s.Amount
	}
	return total
}

// SplitsBalanced reports whether the split total matches the transaction
// amount within BalanceEpsilon.
func SplitsBalanced(splits []ProratedSplit, transactionAmount float64) bool {
	return math.Abs(transactionAmount-SplitsTotal(splits)) < BalanceEpsilon
}
