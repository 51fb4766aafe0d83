package services

import (
	"errors"
	"fmt"
	"math"

	"gorm.io/gorm"

	"estudio/internal/currency"
	apperrors "estudio/internal/errors"
	"estudio/internal/models"
	"estudio/internal/uuid"
)

// allocationService maintains the mapping from transaction id to allocation.
// Writes are last-write-wins per transaction id; edits to different
// transaction ids are independent.
type allocationService struct {
	db *gorm.DB
}

// NewAllocationService creates a new AllocationServicer.
func NewAllocationService(db *gorm.DB) AllocationServicer {
	return &allocationService{db: db}
}

// SetSingle assigns the whole transaction to one project, or to no project
// when projectID is nil. Any existing allocation for the transaction is
// replaced unconditionally, prorated splits included.
func (s *allocationService) SetSingle(txnID string, projectID *uint) (*models.Allocation, error) {
	if _, err := s.getTransaction(txnID); err != nil {
		return nil, err
	}

	var result *models.Allocation
	err := s.db.Transaction(func(tx *gorm.DB) error {
		allocation, err := s.replaceAllocation(tx, txnID)
		if err != nil {
			return err
		}

		allocation.Kind = models.AllocationKindSingle
		allocation.ProjectID = projectID
		allocation.Splits = nil

		if err := tx.Save(allocation).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		result = allocation
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// SetProrated replaces the transaction's allocation with the given split
// list. The split amounts must add up to the transaction amount within
// BalanceEpsilon; an unbalanced list is rejected with the exact remaining
// delta and no state change. The whole list is committed atomically.
func (s *allocationService) SetProrated(txnID string, splits []models.ProratedSplit) (*models.Allocation, error) {
	transaction, err := s.getTransaction(txnID)
	if err != nil {
		return nil, err
	}

	if len(splits) == 0 {
		return nil, apperrors.ErrEmptySplits
	}

	if remaining := Remaining(transaction.Amount, splits); math.Abs(remaining) >= models.BalanceEpsilon {
		return nil, apperrors.WithMessage(apperrors.ErrUnbalancedSplits,
			fmt.Sprintf("splits differ from the transaction amount by %s", currency.FormatCLP(remaining)))
	}

	var result *models.Allocation
	err = s.db.Transaction(func(tx *gorm.DB) error {
		allocation, err := s.replaceAllocation(tx, txnID)
		if err != nil {
			return err
		}

		allocation.Kind = models.AllocationKindProrated
		allocation.ProjectID = nil
		if err := tx.Save(allocation).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		for i := range splits {
			splits[i].ID = 0
			splits[i].AllocationID = allocation.ID
			splits[i].Position = i
			if !uuid.IsValid(splits[i].SplitID) {
				splits[i].SplitID = uuid.New()
			}
		}
		if err := tx.Create(&splits).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		allocation.Splits = splits
		result = allocation
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// GetAllocation retrieves the allocation for a transaction id, with splits in
// order for prorated allocations. Absence means the transaction is
// unassigned.
func (s *allocationService) GetAllocation(txnID string) (*models.Allocation, error) {
	var allocation models.Allocation
	err := s.db.Preload("Splits", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	}).Where("txn_id = ?", txnID).First(&allocation).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrAllocationNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &allocation, nil
}

// SeedSplits returns the starting split list for the prorating editor: the
// stored splits verbatim when a prorated allocation exists, otherwise a
// single synthetic split covering the full transaction. Read-only; seeding
// never mutates stored state.
func (s *allocationService) SeedSplits(txnID string) ([]models.ProratedSplit, error) {
	allocation, err := s.GetAllocation(txnID)
	if err != nil && !errors.Is(err, apperrors.ErrAllocationNotFound) {
		return nil, err
	}

	if allocation != nil && allocation.Kind == models.AllocationKindProrated && len(allocation.Splits) > 0 {
		return allocation.Splits, nil
	}

	transaction, err := s.getTransaction(txnID)
	if err != nil {
		return nil, err
	}

	return []models.ProratedSplit{{
		SplitID:     uuid.New(),
		Description: transaction.Description,
		ProjectID:   nil,
		Amount:      transaction.Amount,
	}}, nil
}

// getTransaction loads a transaction by its derived id.
func (s *allocationService) getTransaction(txnID string) (*models.Transaction, error) {
	var transaction models.Transaction
	if err := s.db.Where("txn_id = ?", txnID).First(&transaction).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &transaction, nil
}

// replaceAllocation finds or creates the allocation row for a transaction id
// and hard-deletes any splits it carried. Callers set the new kind and
// contents within the same database transaction.
func (s *allocationService) replaceAllocation(tx *gorm.DB, txnID string) (*models.Allocation, error) {
	var allocation models.Allocation
	err := tx.Where("txn_id = ?", txnID).First(&allocation).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &models.Allocation{TxnID: txnID}, nil
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	// Hard delete: a soft-deleted split would keep stale rows attached to
	// the allocation id.
	if err := tx.Unscoped().Where("allocation_id = ?", allocation.ID).
		Delete(&models.ProratedSplit{}).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &allocation, nil
}

// DisplayAllocation renders an allocation for the transaction table:
// "[displayId]" for a single allocation resolving to a known project,
// "Prorrateado" for a prorated allocation, and "Sin Asignar" for a nil
// allocation, a nil project target, or a dangling project reference.
func DisplayAllocation(allocation *models.Allocation, projects []models.Project) string {
	if allocation == nil {
		return "Sin Asignar"
	}
	switch allocation.Kind {
	case models.AllocationKindSingle:
		if allocation.ProjectID == nil {
			return "Sin Asignar"
		}
		for _, p := range projects {
			if p.ID == *allocation.ProjectID {
				return fmt.Sprintf("[%s]", p.DisplayID)
			}
		}
		return "Sin Asignar"
	case models.AllocationKindProrated:
		return "Prorrateado"
	default:
		return "Sin Asignar"
	}
}
