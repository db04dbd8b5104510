package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bettervitals/backend/config"
	"github.com/bettervitals/backend/internal/domain"
	"github.com/bettervitals/backend/internal/infrastructure/cache"
	"github.com/bettervitals/backend/internal/infrastructure/catalog"
	"github.com/bettervitals/backend/internal/usecase"
)

// TestMain sets up test environment before running tests
func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// stubNarrator is a canned domain.Narrator
type stubNarrator struct {
	mu    sync.Mutex
	err   error
	calls int
	cgm   domain.CGMAssessmentRequest
}

func (s *stubNarrator) record() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	return s.err
}

func (s *stubNarrator) GenerateHealthPlan(ctx context.Context, req domain.HealthPlanRequest) (*domain.HealthPlan, error) {
	if err := s.record(); err != nil {
		return nil, err
	}
	return &domain.HealthPlan{Score: 71, Label: "Light Sleeper", Efficiency: "83%", Summary: "Fragmented sleep.", ActionPlan: []domain.ActionStep{}}, nil
}

func (s *stubNarrator) GenerateHotSleeperPlan(ctx context.Context, req domain.HotSleeperPlanRequest) (*domain.HotSleeperNarrative, error) {
	if err := s.record(); err != nil {
		return nil, err
	}
	return &domain.HotSleeperNarrative{
		Summary:    "Your sleep environment runs hot.",
		ActionPlan: []domain.ActionStep{{Title: "Drop the thermostat", Description: "65F", Icon: "thermostat"}},
	}, nil
}

func (s *stubNarrator) GenerateCGMAssessment(ctx context.Context, req domain.CGMAssessmentRequest) (*domain.CGMNarrative, error) {
	s.mu.Lock()
	s.cgm = req
	s.mu.Unlock()
	if err := s.record(); err != nil {
		return nil, err
	}
	return &domain.CGMNarrative{Verdict: "A CGM fits.", ActionPlan: []domain.ActionStep{}, WhyItFits: []string{"a", "b", "c"}}, nil
}

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Port:           "3000",
			Environment:    "test",
			AllowedOrigins: []string{"http://localhost:*"},
			MaxBodyBytes:   1_000_000,
		},
		Cache: config.CacheConfig{Type: "memory"},
	}
}

// setupTestRouter builds the full router. A nil narrator leaves the provider unconfigured.
func setupTestRouter(t *testing.T, cfg *config.Config, narrator domain.Narrator) *gin.Engine {
	t.Helper()

	products, err := catalog.Load()
	require.NoError(t, err)

	memoryCache := cache.NewMemoryCache(0)
	t.Cleanup(func() { _ = memoryCache.Close() })

	svc := usecase.NewAssessmentService(narrator, memoryCache, products, usecase.AssessmentServiceConfig{}, nil)
	router := SetupRouter(cfg, NewHandler(svc, products, nil), nil)
	require.NotNil(t, router)
	return router
}

func do(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func errorOf(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), "body %s", w.Body.String())
	msg, _ := resp["error"].(string)
	return msg
}

const thermalBody = `{"heatFrequency":"Every night","roomTemperature":"Above 72F","partnerPreferences":"Very different","beddingType":"Heavy comforter","currentSolutions":"None","budget":"No limit"}`

const metabolicBody = `{"primaryGoal":"weight-loss","riskFactors":["obesity"],"dietApproach":"calorie-restriction","dataStyle":"guided","wearableComfort":"comfortable","budget":"mid-range","timeline":"3-6-months"}`

func TestHealthCheckEndpoint(t *testing.T) {
	router := setupTestRouter(t, testConfig(), nil)

	w := do(router, "GET", "/health", "")
	require.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "healthy", response["status"])
	assert.Equal(t, "bettervitals-backend", response["service"])
	assert.Equal(t, false, response["narrator"])
	assert.NotEmpty(t, w.Header().Get(requestIDHeader))

	for _, method := range []string{"POST", "PUT", "DELETE"} {
		assert.Equal(t, http.StatusNotFound, do(router, method, "/health", "").Code, method)
	}
}

func TestRelayEndpoints(t *testing.T) {
	relayPaths := []string{"/api/health-plan", "/api/hot-sleeper-plan", "/api/cgm-assessment"}

	t.Run("non-POST is not allowed", func(t *testing.T) {
		router := setupTestRouter(t, testConfig(), &stubNarrator{})
		for _, path := range append(relayPaths, "/api/unknown") {
			for _, method := range []string{"GET", "PUT", "DELETE", "PATCH"} {
				w := do(router, method, path, "")
				assert.Equal(t, http.StatusMethodNotAllowed, w.Code, "%s %s", method, path)
				assert.Equal(t, "Method not allowed", errorOf(t, w))
			}
		}
	})

	t.Run("missing key is reported before anything else", func(t *testing.T) {
		router := setupTestRouter(t, testConfig(), nil)
		for _, path := range append(relayPaths, "/api/unknown") {
			w := do(router, "POST", path, "not json")
			assert.Equal(t, http.StatusInternalServerError, w.Code, path)
			assert.Equal(t, "Missing GEMINI_API_KEY on server.", errorOf(t, w))
		}
	})

	t.Run("unknown path with key is not found", func(t *testing.T) {
		router := setupTestRouter(t, testConfig(), &stubNarrator{})
		for _, path := range []string{"/api/unknown", "/api/health-plan/extra", "/api/products"} {
			w := do(router, "POST", path, "{}")
			assert.Equal(t, http.StatusNotFound, w.Code, path)
			assert.Equal(t, "Not found", errorOf(t, w))
		}
	})

	t.Run("malformed body fails generically", func(t *testing.T) {
		router := setupTestRouter(t, testConfig(), &stubNarrator{})
		for _, path := range relayPaths {
			w := do(router, "POST", path, "{not json")
			assert.Equal(t, http.StatusInternalServerError, w.Code, path)
			assert.Equal(t, "Failed to handle request.", errorOf(t, w))
		}
	})

	t.Run("empty body is an empty request", func(t *testing.T) {
		narrator := &stubNarrator{}
		router := setupTestRouter(t, testConfig(), narrator)
		for _, path := range relayPaths {
			w := do(router, "POST", path, "")
			assert.Equal(t, http.StatusOK, w.Code, "%s: %s", path, w.Body.String())
		}
		assert.Equal(t, len(relayPaths), narrator.calls)
	})

	t.Run("provider failure fails generically", func(t *testing.T) {
		router := setupTestRouter(t, testConfig(), &stubNarrator{err: domain.ErrProviderFailure})
		w := do(router, "POST", "/api/hot-sleeper-plan", `{"answers":{},"score":10,"severity":"mild"}`)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "Failed to handle request.", errorOf(t, w))
	})

	t.Run("health plan", func(t *testing.T) {
		router := setupTestRouter(t, testConfig(), &stubNarrator{})
		w := do(router, "POST", "/api/health-plan", `{"answers":{"sleepHours":6,"caffeine":"late"}}`)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var plan domain.HealthPlan
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &plan))
		assert.Equal(t, "Light Sleeper", plan.Label)
		assert.Equal(t, "83%", plan.Efficiency)
	})

	t.Run("hot sleeper plan is cached", func(t *testing.T) {
		narrator := &stubNarrator{}
		router := setupTestRouter(t, testConfig(), narrator)
		body := `{"answers":` + thermalBody + `,"score":100,"severity":"extreme"}`

		for i := 0; i < 2; i++ {
			w := do(router, "POST", "/api/hot-sleeper-plan", body)
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())
			var narrative domain.HotSleeperNarrative
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &narrative))
			assert.Equal(t, "Your sleep environment runs hot.", narrative.Summary)
			assert.Len(t, narrative.ActionPlan, 1)
		}
		assert.Equal(t, 1, narrator.calls)
	})

	t.Run("cgm assessment fills product name", func(t *testing.T) {
		narrator := &stubNarrator{}
		router := setupTestRouter(t, testConfig(), narrator)
		w := do(router, "POST", "/api/cgm-assessment",
			`{"answers":`+metabolicBody+`,"score":80,"label":"CGM READY","primaryProduct":"signos"}`)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Equal(t, "signos", narrator.cgm.PrimaryProduct)
		assert.NotEmpty(t, narrator.cgm.ProductName)
		assert.Equal(t, []domain.RiskFactor{domain.RiskObesity}, narrator.cgm.Answers.RiskFactors.List())
	})

	t.Run("oversize body is rejected and the connection closed", func(t *testing.T) {
		cfg := testConfig()
		cfg.Server.MaxBodyBytes = 64
		router := setupTestRouter(t, cfg, &stubNarrator{})

		body := `{"answers":{"notes":"` + strings.Repeat("z", 200) + `"}}`
		w := do(router, "POST", "/api/health-plan", body)
		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
		assert.Equal(t, "close", w.Header().Get("Connection"))

		req := httptest.NewRequest("POST", "/api/health-plan", bytes.NewReader([]byte(body)))
		req.ContentLength = -1
		w = httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	})
}

func TestAssessmentEndpoints(t *testing.T) {
	t.Run("hot sleeper report", func(t *testing.T) {
		router := setupTestRouter(t, testConfig(), &stubNarrator{})
		w := do(router, "POST", "/api/assessments/hot-sleeper", thermalBody)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var report domain.HotSleeperReport
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
		assert.Equal(t, 100, report.Score)
		assert.Equal(t, domain.SeverityExtreme, report.Severity)
		assert.Equal(t, "Extreme Hot Sleeper", report.Label)
		assert.Equal(t, "Your sleep environment runs hot.", report.Summary)
		assert.NotEmpty(t, report.ProductRecommendations)
		assert.LessOrEqual(t, len(report.ProductRecommendations), 3)
		for _, p := range report.ProductRecommendations {
			assert.Equal(t, domain.CategorySleep, p.Category)
		}
	})

	t.Run("cgm report", func(t *testing.T) {
		router := setupTestRouter(t, testConfig(), &stubNarrator{})
		w := do(router, "POST", "/api/assessments/cgm", metabolicBody)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var report domain.CGMReport
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
		// 40 + 15 + 15 + 5 + 10
		assert.Equal(t, 85, report.WorthinessScore)
		assert.Equal(t, domain.LabelReady, report.WorthinessLabel)
		require.NotNil(t, report.PrimaryRecommendation)
		// nutrisense and signos tie at 100; candidate order breaks the tie
		assert.Equal(t, "nutrisense", report.PrimaryRecommendation.Product.ID)
		assert.Equal(t, []string{"a", "b", "c"}, report.PrimaryRecommendation.WhyItFits)
		assert.Len(t, report.Alternatives, 3)
		assert.Equal(t, "A CGM fits.", report.Verdict)
	})

	t.Run("incomplete answers list missing fields", func(t *testing.T) {
		router := setupTestRouter(t, testConfig(), &stubNarrator{})
		w := do(router, "POST", "/api/assessments/hot-sleeper", `{"heatFrequency":"Often"}`)
		require.Equal(t, http.StatusBadRequest, w.Code)

		var resp struct {
			Error   string   `json:"error"`
			Missing []string `json:"missing"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, []string{"roomTemperature", "partnerPreferences", "beddingType", "currentSolutions", "budget"}, resp.Missing)
	})

	t.Run("invalid json is a bad request", func(t *testing.T) {
		router := setupTestRouter(t, testConfig(), &stubNarrator{})
		w := do(router, "POST", "/api/assessments/cgm", `{"riskFactors":"obesity"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("status mapping", func(t *testing.T) {
		tests := []struct {
			name     string
			narrator domain.Narrator
			want     int
		}{
			{"no provider", nil, http.StatusServiceUnavailable},
			{"rate limited", &stubNarrator{err: domain.ErrRateLimited}, http.StatusTooManyRequests},
			{"provider failure", &stubNarrator{err: domain.ErrProviderFailure}, http.StatusBadGateway},
			{"invalid reply", &stubNarrator{err: domain.ErrInvalidResponse}, http.StatusBadGateway},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				router := setupTestRouter(t, testConfig(), tt.narrator)
				w := do(router, "POST", "/api/assessments/hot-sleeper", thermalBody)
				assert.Equal(t, tt.want, w.Code, w.Body.String())
			})
		}
	})
}

func TestScoreEndpoints(t *testing.T) {
	router := setupTestRouter(t, testConfig(), nil)

	t.Run("hot sleeper without provider", func(t *testing.T) {
		w := do(router, "POST", "/api/scores/hot-sleeper", `{"heatFrequency":"Often","roomTemperature":"68-72F"}`)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var report domain.HotSleeperReport
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
		assert.Equal(t, 45, report.Score)
		assert.Equal(t, domain.SeverityModerate, report.Severity)
		assert.Empty(t, report.Summary)
	})

	t.Run("cgm without provider", func(t *testing.T) {
		w := do(router, "POST", "/api/scores/cgm", metabolicBody)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var report domain.CGMReport
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
		assert.Equal(t, 85, report.WorthinessScore)
		require.NotNil(t, report.PrimaryRecommendation)
		assert.Equal(t, "nutrisense", report.PrimaryRecommendation.Product.ID)
		assert.Empty(t, report.Verdict)
	})
}

func TestCatalogEndpoints(t *testing.T) {
	router := setupTestRouter(t, testConfig(), nil)

	t.Run("all products", func(t *testing.T) {
		w := do(router, "GET", "/api/products", "")
		require.Equal(t, http.StatusOK, w.Code)
		var resp struct {
			Products []domain.Product `json:"products"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Len(t, resp.Products, 41)
	})

	t.Run("products by category", func(t *testing.T) {
		w := do(router, "GET", "/api/products?category=Metabolic", "")
		require.Equal(t, http.StatusOK, w.Code)
		var resp struct {
			Products []domain.Product `json:"products"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.NotEmpty(t, resp.Products)
		for _, p := range resp.Products {
			assert.Equal(t, domain.CategoryMetabolic, p.Category)
		}

		assert.Equal(t, http.StatusBadRequest, do(router, "GET", "/api/products?category=Snacks", "").Code)
	})

	t.Run("product by slug", func(t *testing.T) {
		w := do(router, "GET", "/api/products/eight-sleep-pod-4", "")
		require.Equal(t, http.StatusOK, w.Code)
		var p domain.Product
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &p))
		assert.Equal(t, "eight-sleep-pod-4", p.ID)

		w = do(router, "GET", "/api/products/does-not-exist", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "Not found", errorOf(t, w))
	})

	t.Run("tools and reviews", func(t *testing.T) {
		var tools struct {
			Tools []domain.Tool `json:"tools"`
		}
		w := do(router, "GET", "/api/tools", "")
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &tools))
		assert.Len(t, tools.Tools, 5)

		var reviews struct {
			Reviews []domain.Review `json:"reviews"`
		}
		w = do(router, "GET", "/api/reviews", "")
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &reviews))
		assert.Len(t, reviews.Reviews, 3)
	})

	t.Run("category pages", func(t *testing.T) {
		w := do(router, "GET", "/api/categories/recovery", "")
		require.Equal(t, http.StatusOK, w.Code)
		var page struct {
			Title    string           `json:"title"`
			Category domain.Category  `json:"category"`
			Products []domain.Product `json:"products"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
		assert.Equal(t, "Recovery & Therapy", page.Title)
		assert.Equal(t, domain.CategoryRecovery, page.Category)
		assert.NotEmpty(t, page.Products)

		assert.Equal(t, http.StatusNotFound, do(router, "GET", "/api/categories/gear", "").Code)
		assert.Equal(t, http.StatusOK, do(router, "GET", "/api/categories", "").Code)
	})

	t.Run("page resolution", func(t *testing.T) {
		tests := []struct {
			path      string
			wantPage  string
			wantPath  string
			wantFound interface{}
		}{
			{"/gear", "recovery", "/recovery", nil},
			{"/nowhere", "home", "/", nil},
			{"/product/whoop-4", "product/whoop-4", "/product/whoop-4", true},
			{"/product/missing", "product/missing", "/product/missing", false},
		}
		for _, tt := range tests {
			w := do(router, "GET", "/api/pages/resolve?path="+tt.path, "")
			require.Equal(t, http.StatusOK, w.Code)
			var resp map[string]interface{}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantPage, resp["page"], tt.path)
			assert.Equal(t, tt.wantPath, resp["path"], tt.path)
			assert.Equal(t, tt.wantFound, resp["productFound"], tt.path)
		}
	})
}

func TestNonAPIPaths(t *testing.T) {
	t.Run("development returns plain not found", func(t *testing.T) {
		router := setupTestRouter(t, testConfig(), nil)
		w := do(router, "GET", "/sleep", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "Not found", w.Body.String())
	})

	t.Run("production serves the built front end", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html>app</html>"), 0644))
		require.NoError(t, os.MkdirAll(filepath.Join(dir, "assets"), 0755))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "assets", "app.js"), []byte("console.log(1)"), 0644))

		cfg := testConfig()
		cfg.Server.Environment = "production"
		cfg.Server.StaticDir = dir
		router := setupTestRouter(t, cfg, nil)
		t.Cleanup(func() { gin.SetMode(gin.TestMode) })

		w := do(router, "GET", "/assets/app.js", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "console.log(1)", w.Body.String())

		for _, path := range []string{"/", "/product/whoop-4", "/assets"} {
			w = do(router, "GET", path, "")
			assert.Equal(t, http.StatusOK, w.Code, path)
			assert.Equal(t, "<html>app</html>", w.Body.String(), path)
		}

		// API paths keep the relay contract
		w = do(router, "GET", "/api/nothing", "")
		assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	})
}

func TestCORSIntegration(t *testing.T) {
	router := setupTestRouter(t, testConfig(), &stubNarrator{})

	req := httptest.NewRequest("OPTIONS", "/api/hot-sleeper-plan", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", "POST")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestJSONResponses(t *testing.T) {
	router := setupTestRouter(t, testConfig(), nil)
	endpoints := []struct {
		method string
		path   string
	}{
		{"GET", "/health"},
		{"POST", "/api/health-plan"},
		{"GET", "/api/unknown"},
		{"GET", "/api/tools"},
	}

	for _, endpoint := range endpoints {
		t.Run(endpoint.method+" "+endpoint.path, func(t *testing.T) {
			w := do(router, endpoint.method, endpoint.path, "")
			assert.Equal(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))
			var response map[string]interface{}
			assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		})
	}
}
