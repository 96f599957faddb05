package benchmark

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/labsense/labsense/internal/platform/db"
)

func newTestHandler(t *testing.T) *Handler {
	t.Helper()
	svc, _ := seededService(t)
	return NewHandler(svc)
}

func handlerRequest(method, target, body, tenantID string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	ctx := context.WithValue(req.Context(), db.TenantIDKey, tenantID)
	req = req.WithContext(ctx)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestListBenchmarksMerged(t *testing.T) {
	h := newTestHandler(t)
	c, rec := handlerRequest(http.MethodGet, "/api/v1/benchmarks?merged=true", "", "clinic_a")

	if err := h.ListBenchmarks(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var resp struct {
		Data  []*Definition `json:"data"`
		Total int           `json:"total"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Total != len(DefaultCatalog()) {
		t.Errorf("total = %d, want %d", resp.Total, len(DefaultCatalog()))
	}
}

func TestGetBenchmarkFallsBackToCatalog(t *testing.T) {
	h := newTestHandler(t)
	c, rec := handlerRequest(http.MethodGet, "/api/v1/benchmarks/Glucose", "", "clinic_a")
	c.SetParamNames("name")
	c.SetParamValues("Glucose")

	if err := h.GetBenchmark(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var def Definition
	if err := json.Unmarshal(rec.Body.Bytes(), &def); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if def.TenantID != DefaultTenantID {
		t.Errorf("tenant = %q, want catalog entry", def.TenantID)
	}
}

func TestGetBenchmarkNotFound(t *testing.T) {
	h := newTestHandler(t)
	c, _ := handlerRequest(http.MethodGet, "/api/v1/benchmarks/Nope", "", "clinic_a")
	c.SetParamNames("name")
	c.SetParamValues("Nope")

	err := h.GetBenchmark(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %v", err)
	}
}

func TestSaveOverrideEndpoint(t *testing.T) {
	h := newTestHandler(t)
	body := `{"category":"metabolic","aliases":["glucose"],"units":["mg/dL"],"male_range":"65-95 mg/dL"}`
	c, rec := handlerRequest(http.MethodPut, "/api/v1/benchmarks/Glucose", body, "clinic_a")
	c.SetParamNames("name")
	c.SetParamValues("Glucose")

	if err := h.SaveOverride(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var def Definition
	if err := json.Unmarshal(rec.Body.Bytes(), &def); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if def.TenantID != "clinic_a" || def.MaleRange != "65-95 mg/dL" || !def.Active {
		t.Errorf("stored override = %+v", def)
	}
}

func TestSaveOverrideRejectsBadRange(t *testing.T) {
	h := newTestHandler(t)
	body := `{"units":["mg/dL"],"male_range":"somewhere around normal"}`
	c, _ := handlerRequest(http.MethodPut, "/api/v1/benchmarks/Glucose", body, "clinic_a")
	c.SetParamNames("name")
	c.SetParamValues("Glucose")

	err := h.SaveOverride(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestDeactivateBenchmarkEndpoint(t *testing.T) {
	h := newTestHandler(t)
	c, rec := handlerRequest(http.MethodDelete, "/api/v1/benchmarks/TSH", "", "clinic_a")
	c.SetParamNames("name")
	c.SetParamValues("TSH")

	if err := h.DeactivateBenchmark(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d", rec.Code)
	}
}
