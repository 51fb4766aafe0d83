package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"estudio/internal/currency"
	apperrors "estudio/internal/errors"
	"estudio/internal/models"
	"estudio/internal/pagination"
	"estudio/internal/services"
)

// maxStatementSize caps uploaded cartola files at 10 MiB.
const maxStatementSize = 10 << 20

// StatementHandler handles statement upload and lookup requests.
type StatementHandler struct {
	statementService services.StatementServicer
}

// NewStatementHandler creates a new StatementHandler.
func NewStatementHandler(statementService services.StatementServicer) *StatementHandler {
	return &StatementHandler{statementService: statementService}
}

// UploadStatement ingests a bank statement XML file.
// @Summary     Upload a statement
// @Description Parse a cartola XML file and persist the statement and its transactions
// @Tags        statements
// @Accept      multipart/form-data
// @Produce     json
// @Security    BearerAuth
// @Param       file formData file true "Cartola XML file"
// @Success     201 {object} models.BankStatement "Statement ingested"
// @Failure     400 {object} ErrorResponse "Invalid or unparseable file"
// @Failure     409 {object} ErrorResponse "Statement for this period already exists"
// @Router      /statements [post]
func (h *StatementHandler) UploadStatement(c *gin.Context) {
	uploadedBy, err := getUserEmail(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "A cartola file is required"))
		return
	}
	if fileHeader.Size > maxStatementSize {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "File too large"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}

	statement, err := h.statementService.IngestStatement(fileHeader.Filename, string(content), uploadedBy)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, statement)
}

// GetStatements returns a paginated list of ingested statements.
// @Summary     List statements
// @Description List ingested statements, most recent first, without transactions
// @Tags        statements
// @Produce     json
// @Security    BearerAuth
// @Param       page query int false "Page number" default(1)
// @Param       page_size query int false "Items per page" default(20)
// @Success     200 {object} pagination.PageResponse[models.BankStatement] "Paginated statements"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /statements [get]
func (h *StatementHandler) GetStatements(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	statements, err := h.statementService.GetStatements(page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, statements)
}

// TransactionResponse decorates a transaction with its amounts rendered as
// Chilean peso strings for the transaction table.
type TransactionResponse struct {
	models.Transaction
	AmountDisplay  string `json:"amount_display"`
	BalanceDisplay string `json:"balance_display"`
}

// StatementResponse represents a statement with display-formatted transactions.
type StatementResponse struct {
	models.BankStatement
	Transactions []TransactionResponse `json:"transactions"`
}

// GetStatement returns one statement with its transactions in source order.
// @Summary     Get a statement
// @Description Get a statement by its period key with transactions in source order and formatted amounts
// @Tags        statements
// @Produce     json
// @Security    BearerAuth
// @Param       key path string true "Statement key (period from-date)"
// @Success     200 {object} StatementResponse "Statement with transactions"
// @Failure     404 {object} ErrorResponse "Statement not found"
// @Router      /statements/{key} [get]
func (h *StatementHandler) GetStatement(c *gin.Context) {
	statement, err := h.statementService.GetStatementByKey(c.Param("key"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	transactions := make([]TransactionResponse, len(statement.Transactions))
	for i, txn := range statement.Transactions {
		transactions[i] = TransactionResponse{
			Transaction:    txn,
			AmountDisplay:  currency.FormatCLP(txn.Amount),
			BalanceDisplay: currency.FormatCLP(txn.Balance),
		}
	}

	c.JSON(http.StatusOK, StatementResponse{
		BankStatement: *statement,
		Transactions:  transactions,
	})
}

// GetUploads returns a paginated history of uploads.
// @Summary     List uploads
// @Description List upload records, newest first
// @Tags        statements
// @Produce     json
// @Security    BearerAuth
// @Param       page query int false "Page number" default(1)
// @Param       page_size query int false "Items per page" default(20)
// @Success     200 {object} pagination.PageResponse[models.Upload] "Paginated uploads"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /uploads [get]
func (h *StatementHandler) GetUploads(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	uploads, err := h.statementService.GetUploads(page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, uploads)
}
