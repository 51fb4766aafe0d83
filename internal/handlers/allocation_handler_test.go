package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "estudio/internal/errors"
	"estudio/internal/models"
	"estudio/internal/pagination"
	"estudio/internal/services"
)

// --- mock allocation service ---

type mockAllocationService struct {
	setSingleFn     func(txnID string, projectID *uint) (*models.Allocation, error)
	setProratedFn   func(txnID string, splits []models.ProratedSplit) (*models.Allocation, error)
	getAllocationFn func(txnID string) (*models.Allocation, error)
	seedSplitsFn    func(txnID string) ([]models.ProratedSplit, error)
}

func (m *mockAllocationService) SetSingle(txnID string, projectID *uint) (*models.Allocation, error) {
	if m.setSingleFn != nil {
		return m.setSingleFn(txnID, projectID)
	}
	return &models.Allocation{TxnID: txnID, Kind: models.AllocationKindSingle, ProjectID: projectID}, nil
}

func (m *mockAllocationService) SetProrated(txnID string, splits []models.ProratedSplit) (*models.Allocation, error) {
	if m.setProratedFn != nil {
		return m.setProratedFn(txnID, splits)
	}
	return &models.Allocation{TxnID: txnID, Kind: models.AllocationKindProrated, Splits: splits}, nil
}

func (m *mockAllocationService) GetAllocation(txnID string) (*models.Allocation, error) {
	if m.getAllocationFn != nil {
		return m.getAllocationFn(txnID)
	}
	return nil, apperrors.ErrAllocationNotFound
}

func (m *mockAllocationService) SeedSplits(txnID string) ([]models.ProratedSplit, error) {
	if m.seedSplitsFn != nil {
		return m.seedSplitsFn(txnID)
	}
	return []models.ProratedSplit{}, nil
}

var _ services.AllocationServicer = (*mockAllocationService)(nil)

// --- mock project service ---

type mockProjectService struct {
	createProjectFn  func(input services.ProjectInput) (*models.Project, error)
	getProjectsFn    func(page pagination.PageRequest) (*pagination.PageResponse[models.Project], error)
	getProjectByIDFn func(projectID uint) (*models.Project, error)
	updateProjectFn  func(projectID uint, input services.ProjectInput) (*models.Project, error)
	deleteProjectFn  func(projectID uint) error
}

func (m *mockProjectService) CreateProject(input services.ProjectInput) (*models.Project, error) {
	if m.createProjectFn != nil {
		return m.createProjectFn(input)
	}
	return &models.Project{}, nil
}

func (m *mockProjectService) GetProjects(page pagination.PageRequest) (*pagination.PageResponse[models.Project], error) {
	if m.getProjectsFn != nil {
		return m.getProjectsFn(page)
	}
	resp := pagination.NewPageResponse([]models.Project{}, 1, 20, 0)
	return &resp, nil
}

func (m *mockProjectService) GetProjectByID(projectID uint) (*models.Project, error) {
	if m.getProjectByIDFn != nil {
		return m.getProjectByIDFn(projectID)
	}
	return &models.Project{}, nil
}

func (m *mockProjectService) UpdateProject(projectID uint, input services.ProjectInput) (*models.Project, error) {
	if m.updateProjectFn != nil {
		return m.updateProjectFn(projectID, input)
	}
	return &models.Project{}, nil
}

func (m *mockProjectService) DeleteProject(projectID uint) error {
	if m.deleteProjectFn != nil {
		return m.deleteProjectFn(projectID)
	}
	return nil
}

var _ services.ProjectServicer = (*mockProjectService)(nil)

func setupAllocationRouter(handler *AllocationHandler) *gin.Engine {
	r := gin.New()
	auth := r.Group("", injectUserID(1))
	auth.GET("/transactions/:txnId/allocation", handler.GetAllocation)
	auth.PUT("/transactions/:txnId/allocation", handler.SetAllocation)
	auth.PUT("/transactions/:txnId/prorate", handler.Prorate)
	auth.GET("/transactions/:txnId/splits", handler.GetSplits)
	return r
}

// --- tests ---

func TestAllocationHandler_GetAllocation(t *testing.T) {
	t.Run("unallocated transaction renders Sin Asignar", func(t *testing.T) {
		handler := NewAllocationHandler(&mockAllocationService{}, &mockProjectService{})
		r := setupAllocationRouter(handler)

		rec := doRequest(r, "GET", "/transactions/cartola.xml-0/allocation", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		if result["display"] != "Sin Asignar" {
			t.Errorf("expected Sin Asignar, got %v", result["display"])
		}
		if result["allocation"] != nil {
			t.Errorf("expected null allocation, got %v", result["allocation"])
		}
	})

	t.Run("single allocation renders project display id", func(t *testing.T) {
		projectID := uint(7)
		allocSvc := &mockAllocationService{
			getAllocationFn: func(txnID string) (*models.Allocation, error) {
				return &models.Allocation{TxnID: txnID, Kind: models.AllocationKindSingle, ProjectID: &projectID}, nil
			},
		}
		projectSvc := &mockProjectService{
			getProjectByIDFn: func(id uint) (*models.Project, error) {
				project := &models.Project{DisplayID: "CAS"}
				project.ID = id
				return project, nil
			},
		}
		handler := NewAllocationHandler(allocSvc, projectSvc)
		r := setupAllocationRouter(handler)

		rec := doRequest(r, "GET", "/transactions/cartola.xml-0/allocation", "")

		result := parseJSON(t, rec)
		if result["display"] != "[CAS]" {
			t.Errorf("expected [CAS], got %v", result["display"])
		}
	})

	t.Run("dangling project renders Sin Asignar", func(t *testing.T) {
		projectID := uint(99)
		allocSvc := &mockAllocationService{
			getAllocationFn: func(txnID string) (*models.Allocation, error) {
				return &models.Allocation{TxnID: txnID, Kind: models.AllocationKindSingle, ProjectID: &projectID}, nil
			},
		}
		projectSvc := &mockProjectService{
			getProjectByIDFn: func(uint) (*models.Project, error) {
				return nil, apperrors.ErrProjectNotFound
			},
		}
		handler := NewAllocationHandler(allocSvc, projectSvc)
		r := setupAllocationRouter(handler)

		rec := doRequest(r, "GET", "/transactions/cartola.xml-0/allocation", "")

		result := parseJSON(t, rec)
		if result["display"] != "Sin Asignar" {
			t.Errorf("expected Sin Asignar, got %v", result["display"])
		}
	})

	t.Run("prorated allocation renders Prorrateado", func(t *testing.T) {
		allocSvc := &mockAllocationService{
			getAllocationFn: func(txnID string) (*models.Allocation, error) {
				return &models.Allocation{TxnID: txnID, Kind: models.AllocationKindProrated}, nil
			},
		}
		handler := NewAllocationHandler(allocSvc, &mockProjectService{})
		r := setupAllocationRouter(handler)

		rec := doRequest(r, "GET", "/transactions/cartola.xml-0/allocation", "")

		result := parseJSON(t, rec)
		if result["display"] != "Prorrateado" {
			t.Errorf("expected Prorrateado, got %v", result["display"])
		}
	})
}

func TestAllocationHandler_SetAllocation(t *testing.T) {
	t.Run("returns 200 on success", func(t *testing.T) {
		handler := NewAllocationHandler(&mockAllocationService{}, &mockProjectService{
			getProjectByIDFn: func(id uint) (*models.Project, error) {
				project := &models.Project{DisplayID: "CAS"}
				project.ID = id
				return project, nil
			},
		})
		r := setupAllocationRouter(handler)

		rec := doRequest(r, "PUT", "/transactions/cartola.xml-0/allocation", `{"project_id":7}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		if result["display"] != "[CAS]" {
			t.Errorf("expected [CAS], got %v", result["display"])
		}
	})

	t.Run("returns 404 for unknown transaction", func(t *testing.T) {
		allocSvc := &mockAllocationService{
			setSingleFn: func(string, *uint) (*models.Allocation, error) {
				return nil, apperrors.ErrTransactionNotFound
			},
		}
		handler := NewAllocationHandler(allocSvc, &mockProjectService{})
		r := setupAllocationRouter(handler)

		rec := doRequest(r, "PUT", "/transactions/no-such.xml-9/allocation", `{"project_id":null}`)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "TRANSACTION_NOT_FOUND")
	})
}

func TestAllocationHandler_Prorate(t *testing.T) {
	t.Run("returns 200 and forwards splits", func(t *testing.T) {
		var got []models.ProratedSplit
		allocSvc := &mockAllocationService{
			setProratedFn: func(txnID string, splits []models.ProratedSplit) (*models.Allocation, error) {
				got = splits
				return &models.Allocation{TxnID: txnID, Kind: models.AllocationKindProrated, Splits: splits}, nil
			},
		}
		handler := NewAllocationHandler(allocSvc, &mockProjectService{})
		r := setupAllocationRouter(handler)

		rec := doRequest(r, "PUT", "/transactions/cartola.xml-0/prorate",
			`{"splits":[{"description":"Obra gruesa","project_id":1,"amount":40000},{"description":"Terminaciones","amount":50000}]}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if len(got) != 2 || got[0].Amount != 40000 || got[1].ProjectID != nil {
			t.Errorf("unexpected splits forwarded: %+v", got)
		}
		result := parseJSON(t, rec)
		if result["display"] != "Prorrateado" {
			t.Errorf("expected Prorrateado, got %v", result["display"])
		}
	})

	t.Run("returns 400 on unbalanced splits", func(t *testing.T) {
		allocSvc := &mockAllocationService{
			setProratedFn: func(string, []models.ProratedSplit) (*models.Allocation, error) {
				return nil, apperrors.WithMessage(apperrors.ErrUnbalancedSplits, "splits differ from the transaction amount by $1.000")
			},
		}
		handler := NewAllocationHandler(allocSvc, &mockProjectService{})
		r := setupAllocationRouter(handler)

		rec := doRequest(r, "PUT", "/transactions/cartola.xml-0/prorate",
			`{"splits":[{"amount":40000},{"amount":49000}]}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "UNBALANCED_SPLITS")
	})

	t.Run("returns 400 on missing splits field", func(t *testing.T) {
		handler := NewAllocationHandler(&mockAllocationService{}, &mockProjectService{})
		r := setupAllocationRouter(handler)

		rec := doRequest(r, "PUT", "/transactions/cartola.xml-0/prorate", `{}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestAllocationHandler_GetSplits(t *testing.T) {
	t.Run("returns seed splits", func(t *testing.T) {
		allocSvc := &mockAllocationService{
			seedSplitsFn: func(txnID string) ([]models.ProratedSplit, error) {
				return []models.ProratedSplit{{SplitID: "s1", Description: "TRANSFERENCIA", Amount: 90000}}, nil
			},
		}
		handler := NewAllocationHandler(allocSvc, &mockProjectService{})
		r := setupAllocationRouter(handler)

		rec := doRequest(r, "GET", "/transactions/cartola.xml-0/splits", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		result := parseJSON(t, rec)
		splits := result["splits"].([]interface{})
		if len(splits) != 1 {
			t.Fatalf("expected one seed split, got %d", len(splits))
		}
	})

	t.Run("returns 404 for unknown transaction", func(t *testing.T) {
		allocSvc := &mockAllocationService{
			seedSplitsFn: func(string) ([]models.ProratedSplit, error) {
				return nil, apperrors.ErrTransactionNotFound
			},
		}
		handler := NewAllocationHandler(allocSvc, &mockProjectService{})
		r := setupAllocationRouter(handler)

		rec := doRequest(r, "GET", "/transactions/no-such.xml-9/splits", "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})
}
