package integration

import (
	"fmt"
	"net/http"
	"testing"
)

func TestClientAndProjectFlow(t *testing.T) {
	app := setupApp(t)
	token, _, _ := app.registerUser(t, "arquitecta@estudio.cl", "secreto123")

	// Create clients.
	rec := app.request("POST", "/api/v1/clients",
		`{"name":"María","last_name":"Rojas","email":"maria@rojas.cl","phone":"+56911111111"}`, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("client create failed: %d %s", rec.Code, rec.Body.String())
	}
	mainClientID := int(parseJSON(t, rec)["id"].(float64))

	rec = app.request("POST", "/api/v1/clients",
		`{"name":"Pedro","last_name":"Soto"}`, token)
	secondaryClientID := int(parseJSON(t, rec)["id"].(float64))

	// An invalid client email is rejected.
	rec = app.request("POST", "/api/v1/clients",
		`{"name":"Luis","last_name":"Mora","email":"no-es-correo"}`, token)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad email, got %d", rec.Code)
	}

	// Create a project linked to both clients.
	rec = app.request("POST", "/api/v1/projects", fmt.Sprintf(
		`{"display_id":"cas","name":"Casa Familia Rojas","status":"Levantamiento","main_client_id":%d,"secondary_client_ids":[%d]}`,
		mainClientID, secondaryClientID), token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("project create failed: %d %s", rec.Code, rec.Body.String())
	}
	project := parseJSON(t, rec)
	if project["display_id"] != "CAS" {
		t.Errorf("expected uppercased display id, got %v", project["display_id"])
	}
	projectID := int(project["id"].(float64))

	// Duplicate display id is a conflict.
	rec = app.request("POST", "/api/v1/projects",
		`{"display_id":"CAS","name":"Casa Familia Soto"}`, token)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 for duplicate display id, got %d", rec.Code)
	}

	// Fetch with preloaded clients.
	rec = app.request("GET", fmt.Sprintf("/api/v1/projects/%d", projectID), "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("project get failed: %d", rec.Code)
	}
	fetched := parseJSON(t, rec)
	if fetched["main_client"] == nil {
		t.Error("expected main client preloaded")
	}
	secondaries := fetched["secondary_clients"].([]interface{})
	if len(secondaries) != 1 {
		t.Errorf("expected one secondary client, got %d", len(secondaries))
	}

	// Move the project through its lifecycle.
	rec = app.request("PUT", fmt.Sprintf("/api/v1/projects/%d", projectID),
		`{"display_id":"CAS","name":"Casa Familia Rojas","status":"Construcción"}`, token)
	if rec.Code != http.StatusOK {
		t.Fatalf("project update failed: %d %s", rec.Code, rec.Body.String())
	}
	if parseJSON(t, rec)["status"] != "Construcción" {
		t.Error("expected status Construcción")
	}
}
