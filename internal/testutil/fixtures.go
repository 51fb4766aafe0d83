package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"estudio/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a hashed password and unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	email := fmt.Sprintf("user%d@test.com", nextID())
	return CreateTestUserWithEmail(t, db, email)
}

// CreateTestUserWithEmail creates a user with the given email.
func CreateTestUserWithEmail(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Email:    email,
		Password: string(hash),
		Role:     models.UserRoleMember,
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestClient creates a client with unique name fields.
func CreateTestClient(t *testing.T, db *gorm.DB) *models.Client {
	t.Helper()

	n := nextID()
	client := &models.Client{
		Name:     fmt.Sprintf("Cliente%d", n),
		LastName: fmt.Sprintf("Apellido%d", n),
		Email:    fmt.Sprintf("cliente%d@test.com", n),
		Phone:    "+56911111111",
	}
	if err := db.Create(client).Error; err != nil {
		t.Fatalf("failed to create test client: %v", err)
	}
	return client
}

// CreateTestProject creates a project with a unique three-character display id.
func CreateTestProject(t *testing.T, db *gorm.DB) *models.Project {
	t.Helper()

	n := nextID()
	// Three characters, base-26 over A-Z.
	displayID := fmt.Sprintf("%c%c%c",
		'A'+(n/676)%26, 'A'+(n/26)%26, 'A'+n%26)
	project := &models.Project{
		DisplayID: displayID,
		Name:      fmt.Sprintf("Proyecto de prueba %d", n),
		Status:    models.ProjectStatusPropuesta,
	}
	if err := db.Create(project).Error; err != nil {
		t.Fatalf("failed to create test project: %v", err)
	}
	return project
}

// CreateTestStatement creates a statement with the given number of
// transactions, each of amount 1000*(i+1) and a unique txn id.
func CreateTestStatement(t *testing.T, db *gorm.DB, txnCount int) *models.BankStatement {
	t.Helper()

	n := nextID()
	fileName := fmt.Sprintf("cartola%d.xml", n)
	statement := &models.BankStatement{
		StatementKey:  fmt.Sprintf("01/%02d/2024", n%12+1),
		FileName:      fileName,
		CompanyName:   "ESTUDIO DE PRUEBA LTDA",
		AccountNumber: "000123456789",
		Currency:      "PESOS",
		PeriodFrom:    fmt.Sprintf("01/%02d/2024", n%12+1),
		PeriodTo:      fmt.Sprintf("28/%02d/2024", n%12+1),
	}
	for i := 0; i < txnCount; i++ {
		statement.Transactions = append(statement.Transactions, models.Transaction{
			TxnID:       fmt.Sprintf("%s-%d", fileName, i),
			Position:    i,
			Date:        statement.PeriodFrom,
			Description: fmt.Sprintf("Movimiento %d", i),
			Amount:      float64(1000 * (i + 1)),
			Balance:     float64(100000 + 1000*i),
		})
	}
	if err := db.Create(statement).Error; err != nil {
		t.Fatalf("failed to create test statement: %v", err)
	}
	return statement
}
