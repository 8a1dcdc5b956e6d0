package reportserver

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tinytelemetry/statview/internal/model"
	"github.com/tinytelemetry/statview/internal/typedval"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestServer() (*Server, *gin.Engine, time.Time) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	srv := NewServer("", NewSource(base, SampleDefinitions()))
	srv.startTime = time.Now()
	return srv, srv.routes(), base
}

func TestHealthEndpoint(t *testing.T) {
	_, r, _ := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("health status = %d, want %d", w.Code, http.StatusOK)
	}

	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal health: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("health status = %v, want ok", body["status"])
	}
	if body["reports"] != 3.0 {
		t.Errorf("reports = %v, want 3", body["reports"])
	}
}

func TestListReports(t *testing.T) {
	_, r, _ := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/stats/reports", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var body struct {
		Data struct {
			Reports []model.ReportDescriptor `json:"reports"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal list: %v", err)
	}

	if len(body.Data.Reports) != 3 {
		t.Fatalf("got %d reports, want 3", len(body.Data.Reports))
	}
	// Sorted by name.
	if body.Data.Reports[0].Name != "ClientsByVersion" {
		t.Errorf("first report = %s, want ClientsByVersion", body.Data.Reports[0].Name)
	}
	if body.Data.Reports[0].Type != model.ReportTypeClient || !body.Data.Reports[0].RequiresTimeRange {
		t.Errorf("ClientsByVersion descriptor wrong: %+v", body.Data.Reports[0])
	}
}

func TestGetReportEnvelopeAndWindow(t *testing.T) {
	_, r, base := newTestServer()

	// Window covering the most recent three days only.
	start := base.Unix() - 3*86400
	url := fmt.Sprintf("/stats/reports/ClientsByVersion?start_time=%d&duration=%d&client_label=canary",
		start*1_000_000, int64(3*86400+3600))

	req := httptest.NewRequest(http.MethodGet, url, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}

	var env model.DataEnvelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("unmarshal envelope: %v", err)
	}

	payload, ok := env.Data.Data.(map[string]any)
	if !ok {
		t.Fatalf("payload is %T, want object", env.Data.Data)
	}

	stripped, ok := typedval.Strip(payload).(map[string]any)
	if !ok {
		t.Fatalf("stripped payload is not an object")
	}
	if stripped["client_label"] != "canary" {
		t.Errorf("client_label = %v, want canary", stripped["client_label"])
	}

	series, ok := stripped["series"].([]any)
	if !ok {
		t.Fatalf("series missing: %#v", stripped)
	}
	// Sample set has points at 6d, 4d, 2d, and 1h back; the window keeps
	// the last two.
	if len(series) != 2 {
		t.Fatalf("windowed series has %d points, want 2: %#v", len(series), series)
	}
	first := series[0].(map[string]any)
	if first["label"] != "4.1.1" {
		t.Errorf("first windowed label = %v, want 4.1.1", first["label"])
	}
}

func TestGetReportUnknownName(t *testing.T) {
	_, r, _ := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/stats/reports/Nope", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}

func TestGetReportWithoutTimeRangeIgnoresWindow(t *testing.T) {
	_, r, _ := newTestServer()

	// FileStoreTotals does not take a time range; an absurd window must
	// not filter its series.
	req := httptest.NewRequest(http.MethodGet, "/stats/reports/FileStoreTotals?start_time=0&duration=1", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var env model.DataEnvelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatal(err)
	}
	stripped := typedval.Strip(env.Data.Data).(map[string]any)
	series := stripped["series"].([]any)
	if len(series) != 2 {
		t.Errorf("series has %d points, want full 2", len(series))
	}
	if _, present := stripped["client_label"]; present {
		t.Error("non-CLIENT report has client_label in payload")
	}
}

func TestLoadDefinitionsRoundtrip(t *testing.T) {
	content := `reports:
  - name: Custom
    type: SERVER
    requires_time_range: true
    series:
      - {offset: 60, label: "a", value: 5}
      - {offset: 120, label: "b", value: 7}
`
	path := t.TempDir() + "/reports.yml"
	if err := writeFile(path, content); err != nil {
		t.Fatal(err)
	}

	defs, err := LoadDefinitions(path)
	if err != nil {
		t.Fatalf("LoadDefinitions: %v", err)
	}
	if len(defs) != 1 {
		t.Fatalf("got %d definitions, want 1", len(defs))
	}
	if defs[0].Descriptor.Type != model.ReportTypeServer || len(defs[0].Series) != 2 {
		t.Errorf("definition mismatch: %+v", defs[0])
	}
}

func writeFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0644)
}
