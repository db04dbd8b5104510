package http

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/bettervitals/backend/internal/domain"
	"github.com/bettervitals/backend/internal/platform/logger"
	"github.com/bettervitals/backend/internal/routing"
	"github.com/bettervitals/backend/internal/usecase"
)

// Error bodies of the relay endpoints. Front ends match on these strings.
const (
	msgMethodNotAllowed = "Method not allowed"
	msgMissingKey       = "Missing GEMINI_API_KEY on server."
	msgNotFound         = "Not found"
	msgFailed           = "Failed to handle request."
	msgTooLarge         = "Request body too large."
	msgInvalidBody      = "Invalid request body."
	msgNarrativeFailed  = "Narrative generation failed."
	msgRateLimited      = "Too many narrative requests, try again shortly."
)

func errorBody(msg string) gin.H {
	return gin.H{"error": msg}
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	assessments *usecase.AssessmentService
	catalog     domain.Catalog
	log         *logger.Logger
}

// NewHandler creates a new HTTP handler
func NewHandler(assessments *usecase.AssessmentService, catalog domain.Catalog, log *logger.Logger) *Handler {
	if log == nil {
		log = logger.Nop()
	}
	return &Handler{
		assessments: assessments,
		catalog:     catalog,
		log:         log.With("component", "http"),
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "healthy",
		"service":  "bettervitals-backend",
		"version":  "1.0.0",
		"narrator": h.assessments.NarratorConfigured(),
	})
}

// HealthPlan handles POST /api/health-plan
func (h *Handler) HealthPlan(c *gin.Context) {
	relay(h, c, "health-plan", h.assessments.HealthPlan)
}

// HotSleeperPlan handles POST /api/hot-sleeper-plan
func (h *Handler) HotSleeperPlan(c *gin.Context) {
	relay(h, c, "hot-sleeper-plan", h.assessments.HotSleeperPlan)
}

// CGMAssessment handles POST /api/cgm-assessment
func (h *Handler) CGMAssessment(c *gin.Context) {
	relay(h, c, "cgm-assessment", h.assessments.CGMNarrative)
}

// relay runs one narrative endpoint with the Node relay's reply contract:
// missing key is reported before the body is read and every other failure
// collapses into one generic 500.
func relay[Req, Resp any](h *Handler, c *gin.Context, endpoint string, run func(context.Context, Req) (*Resp, error)) {
	if !h.assessments.NarratorConfigured() {
		c.JSON(http.StatusInternalServerError, errorBody(msgMissingKey))
		return
	}

	// An empty body reads as {}
	var req Req
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		if isTooLarge(err) {
			rejectTooLarge(c)
			return
		}
		h.relayFailed(c, endpoint, err)
		return
	}

	resp, err := run(c.Request.Context(), req)
	if err != nil {
		h.relayFailed(c, endpoint, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) relayFailed(c *gin.Context, endpoint string, err error) {
	_ = c.Error(err)
	h.log.Error("relay request failed",
		"endpoint", endpoint,
		"request_id", c.GetString(requestIDKey),
		"error", err,
	)
	c.JSON(http.StatusInternalServerError, errorBody(msgFailed))
}

// APIFallback answers /api paths with no matching route the way the relay did
func (h *Handler) APIFallback(c *gin.Context) {
	switch {
	case c.Request.Method != http.MethodPost:
		c.JSON(http.StatusMethodNotAllowed, errorBody(msgMethodNotAllowed))
	case !h.assessments.NarratorConfigured():
		c.JSON(http.StatusInternalServerError, errorBody(msgMissingKey))
	default:
		c.JSON(http.StatusNotFound, errorBody(msgNotFound))
	}
}

// AssessHotSleeper handles POST /api/assessments/hot-sleeper
func (h *Handler) AssessHotSleeper(c *gin.Context) {
	var answers domain.ThermalAnswers
	if !h.bindAnswers(c, &answers) {
		return
	}
	report, err := h.assessments.AssessHotSleeper(c.Request.Context(), answers)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// AssessCGM handles POST /api/assessments/cgm
func (h *Handler) AssessCGM(c *gin.Context) {
	var answers domain.MetabolicAnswers
	if !h.bindAnswers(c, &answers) {
		return
	}
	report, err := h.assessments.AssessCGM(c.Request.Context(), answers)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// ScoreHotSleeper handles POST /api/scores/hot-sleeper. Partial answers are scored as given.
func (h *Handler) ScoreHotSleeper(c *gin.Context) {
	var answers domain.ThermalAnswers
	if !h.bindAnswers(c, &answers) {
		return
	}
	c.JSON(http.StatusOK, h.assessments.ScoreHotSleeper(answers))
}

// ScoreCGM handles POST /api/scores/cgm. Partial answers are scored as given.
func (h *Handler) ScoreCGM(c *gin.Context) {
	var answers domain.MetabolicAnswers
	if !h.bindAnswers(c, &answers) {
		return
	}
	c.JSON(http.StatusOK, h.assessments.ScoreCGM(answers))
}

func (h *Handler) bindAnswers(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		if isTooLarge(err) {
			rejectTooLarge(c)
			return false
		}
		_ = c.Error(err)
		c.JSON(http.StatusBadRequest, errorBody(msgInvalidBody))
		return false
	}
	return true
}

// writeError maps domain errors onto statuses for the assessment endpoints
func (h *Handler) writeError(c *gin.Context, err error) {
	_ = c.Error(err)

	var missing *domain.MissingFieldsError
	switch {
	case errors.As(err, &missing):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing answers.", "missing": missing.Fields})
	case errors.Is(err, domain.ErrInvalidRequest):
		c.JSON(http.StatusBadRequest, errorBody(msgInvalidBody))
	case errors.Is(err, domain.ErrProductNotFound):
		c.JSON(http.StatusNotFound, errorBody(msgNotFound))
	case errors.Is(err, domain.ErrProviderNotConfigured):
		c.JSON(http.StatusServiceUnavailable, errorBody(msgMissingKey))
	case errors.Is(err, domain.ErrRateLimited):
		c.JSON(http.StatusTooManyRequests, errorBody(msgRateLimited))
	case errors.Is(err, domain.ErrProviderFailure), errors.Is(err, domain.ErrInvalidResponse):
		h.log.Error("narrative generation failed", "request_id", c.GetString(requestIDKey), "error", err)
		c.JSON(http.StatusBadGateway, errorBody(msgNarrativeFailed))
	default:
		h.log.Error("request failed", "request_id", c.GetString(requestIDKey), "error", err)
		c.JSON(http.StatusInternalServerError, errorBody(msgFailed))
	}
}

// ListProducts handles GET /api/products with an optional ?category= filter
func (h *Handler) ListProducts(c *gin.Context) {
	raw := strings.TrimSpace(c.Query("category"))
	if raw == "" {
		c.JSON(http.StatusOK, gin.H{"products": h.catalog.Products()})
		return
	}
	category := domain.Category(raw)
	if !category.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown category.", "categories": domain.Categories})
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": nonNil(h.catalog.ProductsByCategory(category))})
}

// GetProduct handles GET /api/products/:slug
func (h *Handler) GetProduct(c *gin.Context) {
	product, ok := h.catalog.ProductBySlug(c.Param("slug"))
	if !ok {
		h.writeError(c, domain.ErrProductNotFound)
		return
	}
	c.JSON(http.StatusOK, product)
}

// ListTools handles GET /api/tools
func (h *Handler) ListTools(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"tools": nonNil(h.catalog.Tools())})
}

// ListReviews handles GET /api/reviews
func (h *Handler) ListReviews(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"reviews": nonNil(h.catalog.Reviews())})
}

// ListCategories handles GET /api/categories
func (h *Handler) ListCategories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"categories": routing.CategoryPages()})
}

// GetCategory handles GET /api/categories/:key
func (h *Handler) GetCategory(c *gin.Context) {
	page, ok := routing.CategoryFor(c.Param("key"))
	if !ok {
		c.JSON(http.StatusNotFound, errorBody(msgNotFound))
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"key":         page.Key,
		"title":       page.Title,
		"category":    page.Category,
		"description": page.Description,
		"products":    nonNil(h.catalog.ProductsByCategory(page.Category)),
	})
}

// ResolvePage handles GET /api/pages/resolve?path=
func (h *Handler) ResolvePage(c *gin.Context) {
	page := routing.PageFromPath(c.DefaultQuery("path", "/"))
	resp := gin.H{
		"page": page,
		"path": routing.PathFromPage(page),
	}
	if slug, ok := routing.ProductSlug(page); ok {
		product, found := h.catalog.ProductBySlug(slug)
		resp["productFound"] = found
		if found {
			resp["product"] = product
		}
	}
	c.JSON(http.StatusOK, resp)
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
