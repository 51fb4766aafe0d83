package services

import (
	"strconv"
	"strings"

	"estudio/internal/models"
	"estudio/internal/uuid"
)

// Split editing operations for the prorating editor. Each operation returns a
// new split list and leaves its input untouched; the working list only
// becomes the transaction's allocation when SetProrated accepts it.

// AddSplit appends a new zero-amount, unassigned split row.
func AddSplit(splits []models.ProratedSplit) []models.ProratedSplit {
	out := cloneSplits(splits)
	return append(out, models.ProratedSplit{
		SplitID:   uuid.New(),
		ProjectID: nil,
		Amount:    0,
	})
}

// RemoveSplit removes the split at the given position. An out-of-range index
// leaves the list unchanged.
func RemoveSplit(splits []models.ProratedSplit, index int) []models.ProratedSplit {
	if index < 0 || index >= len(splits) {
		return cloneSplits(splits)
	}
	out := make([]models.ProratedSplit, 0, len(splits)-1)
	out = append(out, splits[:index]...)
	out = append(out, splits[index+1:]...)
	return out
}

// UpdateSplitDescription sets the description of the split at index.
func UpdateSplitDescription(splits []models.ProratedSplit, index int, description string) []models.ProratedSplit {
	out := cloneSplits(splits)
	if index >= 0 && index < len(out) {
		out[index].Description = description
	}
	return out
}

// UpdateSplitProject sets the target project of the split at index; nil
// leaves it unassigned.
func UpdateSplitProject(splits []models.ProratedSplit, index int, projectID *uint) []models.ProratedSplit {
	out := cloneSplits(splits)
	if index >= 0 && index < len(out) {
		out[index].ProjectID = projectID
	}
	return out
}

// UpdateSplitAmount sets the amount of the split at index from its text
// form. Content that does not parse as a number is coerced to 0, matching
// the editor's behavior, rather than rejected.
func UpdateSplitAmount(splits []models.ProratedSplit, index int, raw string) []models.ProratedSplit {
	out := cloneSplits(splits)
	if index < 0 || index >= len(out) {
		return out
	}
	amount, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		amount = 0
	}
	out[index].Amount = amount
	return out
}

// Remaining returns the amount still unallocated by the split list:
// the transaction amount minus the split total.
func Remaining(transactionAmount float64, splits []models.ProratedSplit) float64 {
	return transactionAmount - models.SplitsTotal(splits)
}

// Balanced reports whether the working list may be saved: the remaining
// amount is within the balance tolerance.
func Balanced(transactionAmount float64, splits []models.ProratedSplit) bool {
	return models.SplitsBalanced(splits, transactionAmount)
}

func cloneSplits(splits []models.ProratedSplit) []models.ProratedSplit {
	out := make([]models.ProratedSplit, len(splits))
	copy(out, splits)
	return out
}
