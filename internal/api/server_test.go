// internal/api/server_test.go
package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/TheTreasury832/Wholesale2Flip-sub001/internal/api/job"
	"github.com/TheTreasury832/Wholesale2Flip-sub001/internal/config"
	"github.com/TheTreasury832/Wholesale2Flip-sub001/internal/core"
	"github.com/TheTreasury832/Wholesale2Flip-sub001/internal/engine"
	"github.com/TheTreasury832/Wholesale2Flip-sub001/internal/market"
	"github.com/TheTreasury832/Wholesale2Flip-sub001/internal/metrics"
	"github.com/TheTreasury832/Wholesale2Flip-sub001/internal/storage/buyer"
	"github.com/TheTreasury832/Wholesale2Flip-sub001/internal/storage/report"
)

func newTestServer(t *testing.T, apiKey string) *Server {
	t.Helper()

	buyers := buyer.NewMemoryStore()
	rating := 4.8
	buyers.Save(t.Context(), core.Buyer{
		ID:            "buyer-1",
		DisplayName:   "Lone Star Capital",
		PropertyTypes: []core.PropertyType{core.PropertySingleFamily},
		PriceFloor:    core.Dollars(30000),
		PriceCeiling:  core.Dollars(250000),
		TargetStates:  []string{"TX"},
		DealTypes:     []core.DealType{core.DealCash, core.DealAssign},
		Verified:      true,
		ProofOfFunds:  true,
		Rating:        &rating,
	})

	analyzer := engine.New(config.DefaultEngine(), market.NewDefaultStatic(),
		engine.WithClock(func() time.Time {
			return time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
		}))

	return NewServer(
		Config{Host: "127.0.0.1", Port: 8080, APIKey: apiKey},
		Deps{
			Analyzer: analyzer,
			Buyers:   buyers,
			Reports:  report.NewMemoryStore(100),
			Jobs:     job.NewStore(100),
			Metrics:  metrics.NewRegistry(),
		},
		zap.NewNop(),
	)
}

func validProperty() map[string]any {
	return map[string]any{
		"street":        "123 Main St",
		"city":          "Houston",
		"state":         "TX",
		"property_type": "single_family",
		"bedrooms":      3,
		"bathrooms":     2,
		"square_feet":   1800,
		"year_built":    1995,
		"list_price":    200000,
		"condition":     "fair",
	}
}

func doJSON(t *testing.T, s *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func TestServer_Health(t *testing.T) {
	s := newTestServer(t, "")
	w := doJSON(t, s, "GET", "/api/health", nil)
	if w.Code != http.StatusOK {
		t.Errorf("health = %d, want 200", w.Code)
	}
}

func TestServer_Analyze(t *testing.T) {
	s := newTestServer(t, "")
	w := doJSON(t, s, "POST", "/api/analyze", validProperty())
	if w.Code != http.StatusOK {
		t.Fatalf("analyze = %d, body %s", w.Code, w.Body.String())
	}

	var resp struct {
		Data core.AnalysisReport `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Data.ID == "" {
		t.Error("expected report id")
	}
	if resp.Data.Recommended != core.StrategyWholesale {
		t.Errorf("recommended = %s, want wholesale", resp.Data.Recommended)
	}
	if len(resp.Data.Matches) != 1 || resp.Data.Matches[0].BuyerID != "buyer-1" {
		t.Errorf("matches = %v", resp.Data.Matches)
	}
}

func TestServer_AnalyzeValidation(t *testing.T) {
	s := newTestServer(t, "")
	bad := validProperty()
	bad["square_feet"] = 0
	bad["condition"] = "pristine"

	w := doJSON(t, s, "POST", "/api/analyze", bad)
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("analyze = %d, want 422; body %s", w.Code, w.Body.String())
	}

	var resp struct {
		Error struct {
			Code   string            `json:"code"`
			Fields []core.FieldError `json:"fields"`
		} `json:"error"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Error.Code != "VALIDATION_FAILED" {
		t.Errorf("code = %s", resp.Error.Code)
	}
	if len(resp.Error.Fields) != 2 {
		t.Errorf("expected 2 field errors, got %v", resp.Error.Fields)
	}
}

func TestServer_ReportsRoundTrip(t *testing.T) {
	s := newTestServer(t, "")

	w := doJSON(t, s, "POST", "/api/analyze", validProperty())
	if w.Code != http.StatusOK {
		t.Fatalf("analyze = %d", w.Code)
	}
	var analyzeResp struct {
		Data core.AnalysisReport `json:"data"`
	}
	json.Unmarshal(w.Body.Bytes(), &analyzeResp)

	w = doJSON(t, s, "GET", "/api/reports/"+analyzeResp.Data.ID, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get report = %d", w.Code)
	}

	w = doJSON(t, s, "GET", "/api/reports?state=TX", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list reports = %d", w.Code)
	}
	var listResp struct {
		Data struct {
			Total int `json:"total"`
		} `json:"data"`
	}
	json.Unmarshal(w.Body.Bytes(), &listResp)
	if listResp.Data.Total != 1 {
		t.Errorf("total = %d, want 1", listResp.Data.Total)
	}

	w = doJSON(t, s, "GET", "/api/reports/unknown-id", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("missing report = %d, want 404", w.Code)
	}
}

func TestServer_BuyersCRUD(t *testing.T) {
	s := newTestServer(t, "")

	w := doJSON(t, s, "POST", "/api/buyers", map[string]any{
		"id":             "buyer-2",
		"display_name":   "New Buyer",
		"property_types": []string{"condo"},
		"target_states":  []string{"GA"},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("save buyer = %d, body %s", w.Code, w.Body.String())
	}

	w = doJSON(t, s, "GET", "/api/buyers/buyer-2", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get buyer = %d", w.Code)
	}

	w = doJSON(t, s, "GET", "/api/buyers?state=GA", nil)
	var listResp struct {
		Data struct {
			Total int `json:"total"`
		} `json:"data"`
	}
	json.Unmarshal(w.Body.Bytes(), &listResp)
	if listResp.Data.Total != 1 {
		t.Errorf("GA buyers = %d, want 1", listResp.Data.Total)
	}

	w = doJSON(t, s, "DELETE", "/api/buyers/buyer-2", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("delete buyer = %d", w.Code)
	}
	w = doJSON(t, s, "GET", "/api/buyers/buyer-2", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("get deleted buyer = %d, want 404", w.Code)
	}
}

func TestServer_BuyerSaveRequiresID(t *testing.T) {
	s := newTestServer(t, "")
	w := doJSON(t, s, "POST", "/api/buyers", map[string]any{"display_name": "No ID"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("save without id = %d, want 400", w.Code)
	}
}

func TestServer_AuthProtectsAPI(t *testing.T) {
	s := newTestServer(t, "secret")

	w := doJSON(t, s, "GET", "/api/buyers", nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("unauthenticated = %d, want 401", w.Code)
	}

	req := httptest.NewRequest("GET", "/api/buyers", nil)
	req.Header.Set("X-API-Key", "secret")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("authenticated = %d, want 200", rec.Code)
	}

	// Health stays open.
	w = doJSON(t, s, "GET", "/api/health", nil)
	if w.Code != http.StatusOK {
		t.Errorf("health with auth enabled = %d, want 200", w.Code)
	}
}

func TestServer_AnalyzeBatch(t *testing.T) {
	s := newTestServer(t, "")

	w := doJSON(t, s, "POST", "/api/analyze/batch", []map[string]any{
		validProperty(),
		validProperty(),
	})
	if w.Code != http.StatusAccepted {
		t.Fatalf("batch = %d, body %s", w.Code, w.Body.String())
	}

	var accepted struct {
		Data struct {
			ID    string `json:"id"`
			Total int    `json:"total"`
		} `json:"data"`
	}
	json.Unmarshal(w.Body.Bytes(), &accepted)
	if accepted.Data.ID == "" {
		t.Fatal("expected job id")
	}
	if accepted.Data.Total != 2 {
		t.Errorf("total = %d, want 2", accepted.Data.Total)
	}

	deadline := time.Now().Add(5 * time.Second)
	for {
		w = doJSON(t, s, "GET", "/api/jobs/"+accepted.Data.ID, nil)
		if w.Code != http.StatusOK {
			t.Fatalf("get job = %d", w.Code)
		}
		var jobResp struct {
			Data struct {
				Status string `json:"status"`
				Result struct {
					ReportIDs []string `json:"report_ids"`
				} `json:"result"`
			} `json:"data"`
		}
		json.Unmarshal(w.Body.Bytes(), &jobResp)

		if jobResp.Data.Status == "complete" {
			if len(jobResp.Data.Result.ReportIDs) != 2 {
				t.Errorf("report_ids = %v", jobResp.Data.Result.ReportIDs)
			}
			break
		}
		if jobResp.Data.Status == "failed" {
			t.Fatalf("batch job failed: %s", w.Body.String())
		}
		if time.Now().After(deadline) {
			t.Fatalf("batch job did not finish, status %q", jobResp.Data.Status)
		}
		time.Sleep(10 * time.Millisecond)
	}

	w = doJSON(t, s, "GET", "/api/jobs/unknown", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("missing job = %d, want 404", w.Code)
	}
}

func TestServer_MetricsEndpoint(t *testing.T) {
	s := newTestServer(t, "")
	w := doJSON(t, s, "GET", "/metrics", nil)
	if w.Code != http.StatusOK {
		t.Errorf("metrics = %d, want 200", w.Code)
	}
}
