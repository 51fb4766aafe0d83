package integration

import (
	"fmt"
	"net/http"
	"testing"

	"estudio/internal/models"
)

const juneCartola = `<cartola>
  <empresa_nombre>ESTUDIO ARQUITECTURA LTDA</empresa_nombre>
  <cuenta_numero>000123456789</cuenta_numero>
  <moneda>PESOS</moneda>
  <fecha_desde>01/06/2024</fecha_desde>
  <fecha_hasta>30/06/2024</fecha_hasta>
  <movimientos>
    <movimiento>
      <fecha_movimiento>03/06/2024</fecha_movimiento>
      <descripcion>TRANSFERENCIA DE CLIENTE</descripcion>
      <abono>90000</abono>
      <saldo_diario>590000</saldo_diario>
    </movimiento>
    <movimiento>
      <fecha_movimiento>10/06/2024</fecha_movimiento>
      <descripcion>PAGO PROVEEDOR</descripcion>
      <giro>-25000</giro>
      <saldo_diario>565000</saldo_diario>
    </movimiento>
  </movimientos>
</cartola>`

func TestStatementUploadAndAllocationFlow(t *testing.T) {
	app := setupApp(t)
	token, _, _ := app.registerUser(t, "arquitecta@estudio.cl", "secreto123")

	// Upload the statement.
	rec := app.upload(t, "junio.xml", juneCartola, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("upload failed: %d %s", rec.Code, rec.Body.String())
	}

	// A second upload for the same period is rejected.
	rec = app.upload(t, "junio_v2.xml", juneCartola, token)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 for duplicate period, got %d", rec.Code)
	}

	// The upload history records the file and the uploader.
	rec = app.request("GET", "/api/v1/uploads", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("uploads list failed: %d", rec.Code)
	}
	uploads := parseJSON(t, rec)
	if uploads["total_items"].(float64) != 1 {
		t.Fatalf("expected one upload record, got %v", uploads["total_items"])
	}

	// Create a project to allocate against.
	rec = app.request("POST", "/api/v1/projects",
		`{"display_id":"CAS","name":"Casa Familia Rojas"}`, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("project create failed: %d %s", rec.Code, rec.Body.String())
	}
	project := parseJSON(t, rec)
	projectID := project["id"].(float64)

	// Allocate the first transaction fully to the project.
	rec = app.request("PUT", "/api/v1/transactions/junio.xml-0/allocation",
		fmt.Sprintf(`{"project_id":%d}`, int(projectID)), token)
	if rec.Code != http.StatusOK {
		t.Fatalf("allocation failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	if result["display"] != "[CAS]" {
		t.Errorf("expected display [CAS], got %v", result["display"])
	}

	// Seed the prorating editor for the same transaction: a single allocation
	// still seeds one full-amount split.
	rec = app.request("GET", "/api/v1/transactions/junio.xml-0/splits", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("seed failed: %d %s", rec.Code, rec.Body.String())
	}
	seed := parseJSON(t, rec)
	splits := seed["splits"].([]interface{})
	if len(splits) != 1 {
		t.Fatalf("expected one seed split, got %d", len(splits))
	}
	first := splits[0].(map[string]interface{})
	if first["amount"].(float64) != 90000 {
		t.Errorf("expected seed amount 90000, got %v", first["amount"])
	}

	// An unbalanced prorate is rejected and leaves the single allocation.
	rec = app.request("PUT", "/api/v1/transactions/junio.xml-0/prorate",
		`{"splits":[{"amount":40000},{"amount":49000}]}`, token)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unbalanced splits, got %d", rec.Code)
	}
	rec = app.request("GET", "/api/v1/transactions/junio.xml-0/allocation", "", token)
	if parseJSON(t, rec)["display"] != "[CAS]" {
		t.Error("rejected prorate must leave the single allocation in place")
	}

	// A balanced prorate replaces it.
	rec = app.request("PUT", "/api/v1/transactions/junio.xml-0/prorate",
		fmt.Sprintf(`{"splits":[{"description":"Obra gruesa","project_id":%d,"amount":40000},{"description":"Terminaciones","amount":50000}]}`, int(projectID)),
		token)
	if rec.Code != http.StatusOK {
		t.Fatalf("prorate failed: %d %s", rec.Code, rec.Body.String())
	}
	if parseJSON(t, rec)["display"] != "Prorrateado" {
		t.Error("expected display Prorrateado after prorate")
	}

	// The second transaction remains unassigned throughout.
	rec = app.request("GET", "/api/v1/transactions/junio.xml-1/allocation", "", token)
	if parseJSON(t, rec)["display"] != "Sin Asignar" {
		t.Error("untouched transaction must stay Sin Asignar")
	}

	// Two statement rows never appeared.
	var statementCount int64
	app.DB.Model(&models.BankStatement{}).Count(&statementCount)
	if statementCount != 1 {
		t.Errorf("expected one statement, got %d", statementCount)
	}
}

func TestDeletedProjectRendersUnassigned(t *testing.T) {
	app := setupApp(t)
	token, _, _ := app.registerUser(t, "arquitecta@estudio.cl", "secreto123")

	rec := app.upload(t, "junio.xml", juneCartola, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("upload failed: %d %s", rec.Code, rec.Body.String())
	}

	rec = app.request("POST", "/api/v1/projects",
		`{"display_id":"EDI","name":"Edificio Plaza Central"}`, token)
	projectID := int(parseJSON(t, rec)["id"].(float64))

	rec = app.request("PUT", "/api/v1/transactions/junio.xml-0/allocation",
		fmt.Sprintf(`{"project_id":%d}`, projectID), token)
	if rec.Code != http.StatusOK {
		t.Fatalf("allocation failed: %d", rec.Code)
	}

	rec = app.request("DELETE", fmt.Sprintf("/api/v1/projects/%d", projectID), "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete failed: %d", rec.Code)
	}

	rec = app.request("GET", "/api/v1/transactions/junio.xml-0/allocation", "", token)
	result := parseJSON(t, rec)
	if result["display"] != "Sin Asignar" {
		t.Errorf("expected Sin Asignar for dangling project, got %v", result["display"])
	}
	if result["allocation"] == nil {
		t.Error("the allocation itself must survive project deletion")
	}
}
