// Package cartola parses bank statement XML files ("cartolas") into
// statement records with ordered transactions.
//
// The source format is loose: the credit (abono), debit (giro), and balance
// (saldo_diario) fields are optional, and any absent, empty, or non-numeric
// value coerces to 0. That coercion is a documented policy of the format,
// not an error. Structural problems (malformed markup, missing root, missing
// movements container) do fail the parse, and no partial statement is ever
// returned.
package cartola

import (
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"

	apperrors "estudio/internal/errors"
	"estudio/internal/models"
)

// xmlStatement is the strict intermediate schema for a <cartola> document.
type xmlStatement struct {
	XMLName       xml.Name      `xml:"cartola"`
	CompanyName   string        `xml:"empresa_nombre"`
	AccountNumber string        `xml:"cuenta_numero"`
	Currency      string        `xml:"moneda"`
	PeriodFrom    string        `xml:"fecha_desde"`
	PeriodTo      string        `xml:"fecha_hasta"`
	Movements     *xmlMovements `xml:"movimientos"`
}

// xmlMovements is a pointer target so a missing <movimientos> container can
// be told apart from an empty one.
type xmlMovements struct {
	Items []xmlMovement `xml:"movimiento"`
}

type xmlMovement struct {
	Date        string `xml:"fecha_movimiento"`
	Description string `xml:"descripcion"`
	Credit      string `xml:"abono"`
	Debit       string `xml:"giro"`
	Balance     string `xml:"saldo_diario"`
}

// Parse converts raw XML text and its source file name into a BankStatement.
// Transaction ids are "<fileName>-<index>", so re-parsing the same file
// yields identical ids in identical order. The statement key is the period's
// from-date string.
func Parse(xmlText, fileName string) (*models.BankStatement, error) {
	var doc xmlStatement
	if err := xml.Unmarshal([]byte(xmlText), &doc); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStatementParse, err)
	}

	if doc.Movements == nil {
		return nil, apperrors.WithMessage(apperrors.ErrStatementParse, "statement has no <movimientos> container")
	}

	transactions := make([]models.Transaction, 0, len(doc.Movements.Items))
	for i, mov := range doc.Movements.Items {
		credit := coerceAmount(mov.Credit)
		// The debit field arrives pre-negated in the source data.
		debit := coerceAmount(mov.Debit)

		transactions = append(transactions, models.Transaction{
			TxnID:       fmt.Sprintf("%s-%d", fileName, i),
			Position:    i,
			Date:        strings.TrimSpace(mov.Date),
			Description: strings.TrimSpace(mov.Description),
			Amount:      credit + debit,
			Balance:     coerceAmount(mov.Balance),
		})
	}

	periodFrom := strings.TrimSpace(doc.PeriodFrom)

	return &models.BankStatement{
		StatementKey:  periodFrom,
		FileName:      fileName,
		CompanyName:   strings.TrimSpace(doc.CompanyName),
		AccountNumber: strings.TrimSpace(doc.AccountNumber),
		Currency:      strings.TrimSpace(doc.Currency),
		PeriodFrom:    periodFrom,
		PeriodTo:      strings.TrimSpace(doc.PeriodTo),
		Transactions:  transactions,
	}, nil
}

// coerceAmount parses a dot-decimal amount, defaulting to 0 for absent,
// empty, or non-numeric content.
func coerceAmount(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}
