package services

import (
	"errors"

	"gorm.io/gorm"

	"estudio/internal/cartola"
	apperrors "estudio/internal/errors"
	"estudio/internal/models"
	"estudio/internal/pagination"
)

// statementService handles statement ingestion and lookup.
type statementService struct {
	db *gorm.DB
}

// NewStatementService creates a new StatementServicer.
func NewStatementService(db *gorm.DB) StatementServicer {
	return &statementService{db: db}
}

// IngestStatement parses an uploaded XML file and persists the resulting
// statement, its transactions, and an upload record in one database
// transaction. A statement whose start date matches an existing one is a
// conflict: the existing statement is never overwritten.
//
// Parse failures are terminal for the upload attempt; the caller surfaces
// them to the user for a fresh retry.
func (s *statementService) IngestStatement(fileName, xmlContent, uploadedBy string) (*models.BankStatement, error) {
	statement, err := cartola.Parse(xmlContent, fileName)
	if err != nil {
		return nil, err
	}

	var count int64
	if err := s.db.Model(&models.BankStatement{}).
		Where("statement_key = ?", statement.StatementKey).
		Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return nil, apperrors.ErrStatementConflict
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(statement).Error; err != nil {
			// A concurrent upload for the same period can slip past the
			// pre-check and land on the statement_key unique index.
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return apperrors.ErrStatementConflict
			}
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		upload := &models.Upload{Name: fileName, UploadedBy: uploadedBy}
		if err := tx.Create(upload).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return statement, nil
}

// GetStatements retrieves a paginated list of statements, most recent period
// first, without their transactions.
func (s *statementService) GetStatements(page pagination.PageRequest) (*pagination.PageResponse[models.BankStatement], error) {
	page.Defaults()

	base := s.db.Model(&models.BankStatement{})

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var statements []models.BankStatement
	if err := base.Scopes(pagination.Paginate(page)).
		Order("created_at DESC").
		Find(&statements).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(statements, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetStatementByKey retrieves a statement and its transactions in source
// order by the statement's natural key (the period's from-date string).
func (s *statementService) GetStatementByKey(key string) (*models.BankStatement, error) {
	var statement models.BankStatement
	err := s.db.Preload("Transactions", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	}).Where("statement_key = ?", key).First(&statement).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrStatementNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &statement, nil
}

// GetUploads retrieves a paginated list of upload records, newest first.
func (s *statementService) GetUploads(page pagination.PageRequest) (*pagination.PageResponse[models.Upload], error) {
	page.Defaults()

	base := s.db.Model(&models.Upload{})

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var uploads []models.Upload
	if err := base.Scopes(pagination.Paginate(page)).
		Order("created_at DESC").
		Find(&uploads).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(uploads, page.Page, page.PageSize, totalItems)
	return &result, nil
}
