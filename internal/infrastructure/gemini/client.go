package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"
	"google.golang.org/genai"

	"github.com/bettervitals/backend/internal/domain"
	"github.com/bettervitals/backend/internal/platform/logger"
)

const (
	DefaultModel   = "gemini-3-flash-preview"
	defaultTimeout = 60 * time.Second
	defaultRPS     = 2
	defaultBurst   = 5
)

// Config holds the provider settings
type Config struct {
	APIKey            string
	Model             string
	BaseURL           string
	RequestsPerSecond float64
	Burst             int
	Timeout           time.Duration
}

// contentGenerator is the slice of *genai.Models the client needs
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Client generates narrative copy with Gemini structured output
type Client struct {
	models      contentGenerator
	model       string
	rateLimiter *rate.Limiter
	timeout     time.Duration
	log         *logger.Logger
	tracer      trace.Tracer
}

// NewClient creates a Gemini client. An empty API key is ErrProviderNotConfigured.
func NewClient(ctx context.Context, cfg Config, log *logger.Logger) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, domain.ErrProviderNotConfigured
	}

	gc, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{
			BaseURL: cfg.BaseURL,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	return newClient(gc.Models, cfg, log), nil
}

func newClient(models contentGenerator, cfg Config, log *logger.Logger) *Client {
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = defaultRPS
	}
	if cfg.Burst <= 0 {
		cfg.Burst = defaultBurst
	}
	if log == nil {
		log = logger.Nop()
	}

	return &Client{
		models:      models,
		model:       cfg.Model,
		rateLimiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst),
		timeout:     cfg.Timeout,
		log:         log.With("component", "gemini", "model", cfg.Model),
		tracer:      otel.Tracer("github.com/bettervitals/backend/internal/infrastructure/gemini"),
	}
}

// GenerateHealthPlan produces the sleep vitality report for free-form answers
func (c *Client) GenerateHealthPlan(ctx context.Context, req domain.HealthPlanRequest) (*domain.HealthPlan, error) {
	prompt, err := healthPlanPrompt(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidRequest, err)
	}

	var plan domain.HealthPlan
	if err := c.generate(ctx, "health_plan", prompt, healthPlanSchema(), &plan); err != nil {
		return nil, err
	}
	if strings.TrimSpace(plan.Summary) == "" {
		return nil, fmt.Errorf("%w: empty summary", domain.ErrInvalidResponse)
	}
	return &plan, nil
}

// GenerateHotSleeperPlan produces summary and action plan for a scored thermal profile
func (c *Client) GenerateHotSleeperPlan(ctx context.Context, req domain.HotSleeperPlanRequest) (*domain.HotSleeperNarrative, error) {
	var narrative domain.HotSleeperNarrative
	if err := c.generate(ctx, "hot_sleeper_plan", hotSleeperPrompt(req), hotSleeperSchema(), &narrative); err != nil {
		return nil, err
	}
	if strings.TrimSpace(narrative.Summary) == "" {
		return nil, fmt.Errorf("%w: empty summary", domain.ErrInvalidResponse)
	}
	return &narrative, nil
}

// GenerateCGMAssessment produces verdict, action plan and fit reasons for a scored metabolic profile
func (c *Client) GenerateCGMAssessment(ctx context.Context, req domain.CGMAssessmentRequest) (*domain.CGMNarrative, error) {
	var narrative domain.CGMNarrative
	if err := c.generate(ctx, "cgm_assessment", cgmPrompt(req), cgmSchema(), &narrative); err != nil {
		return nil, err
	}
	if strings.TrimSpace(narrative.Verdict) == "" {
		return nil, fmt.Errorf("%w: empty verdict", domain.ErrInvalidResponse)
	}
	return &narrative, nil
}

// generate runs one structured-output call and decodes the JSON reply into out.
// Failures are not retried.
func (c *Client) generate(ctx context.Context, operation, prompt string, schema *genai.Schema, out interface{}) (err error) {
	ctx, span := c.tracer.Start(ctx, "gemini."+operation, trace.WithAttributes(
		attribute.String("gemini.model", c.model),
		attribute.Int("gemini.prompt_chars", len(prompt)),
	))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	if err := c.rateLimiter.Wait(ctx); err != nil {
		// Only a wait that would outrun the deadline counts as rate limiting
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return fmt.Errorf("%w: %v", domain.ErrRateLimited, err)
	}

	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	resp, err := c.models.GenerateContent(callCtx, c.model, genai.Text(prompt), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   schema,
	})
	elapsed := time.Since(start)
	if err != nil {
		c.log.Warn("generate content failed", "operation", operation, "duration_ms", elapsed.Milliseconds(), "error", err)
		return fmt.Errorf("%w: %w", domain.ErrProviderFailure, err)
	}

	text := ""
	if resp != nil {
		text = strings.TrimSpace(resp.Text())
	}
	if text == "" {
		c.log.Warn("empty reply", "operation", operation, "duration_ms", elapsed.Milliseconds())
		return fmt.Errorf("%w: empty reply", domain.ErrInvalidResponse)
	}

	if err := json.Unmarshal([]byte(text), out); err != nil {
		c.log.Warn("reply is not valid JSON", "operation", operation, "error", err)
		return fmt.Errorf("%w: %v", domain.ErrInvalidResponse, err)
	}

	c.log.Debug("generate content", "operation", operation, "duration_ms", elapsed.Milliseconds(), "reply_chars", len(text))
	return nil
}
