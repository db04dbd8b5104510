package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/bettervitals/backend/internal/domain"
	"github.com/bettervitals/backend/internal/platform/logger"
)

const (
	defaultNarrativeTTL = 24 * time.Hour
	maxAlternatives     = 3
)

// AssessmentServiceConfig holds configuration for the assessment service
type AssessmentServiceConfig struct {
	CacheTTL time.Duration
}

// AssessmentService runs the quiz pipelines: score, match, narrate, merge.
// Narratives are cached and identical in-flight requests share one provider call.
type AssessmentService struct {
	narrator domain.Narrator
	cache    domain.CacheRepository
	catalog  domain.Catalog
	cacheTTL time.Duration
	flight   singleflight.Group
	log      *logger.Logger
}

// NewAssessmentService wires the service. narrator and cache may be nil: without a
// narrator only the deterministic operations work, without a cache every
// narrative goes to the provider.
func NewAssessmentService(
	narrator domain.Narrator,
	cache domain.CacheRepository,
	catalog domain.Catalog,
	config AssessmentServiceConfig,
	log *logger.Logger,
) *AssessmentService {
	ttl := config.CacheTTL
	if ttl <= 0 {
		ttl = defaultNarrativeTTL
	}
	if log == nil {
		log = logger.Nop()
	}
	return &AssessmentService{
		narrator: narrator,
		cache:    cache,
		catalog:  catalog,
		cacheTTL: ttl,
		log:      log.With("service", "AssessmentService"),
	}
}

// NarratorConfigured reports whether narrative operations can run
func (s *AssessmentService) NarratorConfigured() bool {
	return s.narrator != nil
}

// HealthPlan relays the free-form sleep vitality questionnaire
func (s *AssessmentService) HealthPlan(ctx context.Context, req domain.HealthPlanRequest) (*domain.HealthPlan, error) {
	if s.narrator == nil {
		return nil, domain.ErrProviderNotConfigured
	}
	key, err := narrativeCacheKey("health-plan", req)
	if err != nil {
		return nil, err
	}
	return cachedNarrative(ctx, s, key, func(ctx context.Context) (*domain.HealthPlan, error) {
		return s.narrator.GenerateHealthPlan(ctx, req)
	})
}

// HotSleeperPlan relays a scored thermal profile to the narrator
func (s *AssessmentService) HotSleeperPlan(ctx context.Context, req domain.HotSleeperPlanRequest) (*domain.HotSleeperNarrative, error) {
	if s.narrator == nil {
		return nil, domain.ErrProviderNotConfigured
	}
	key, err := narrativeCacheKey("hot-sleeper", req)
	if err != nil {
		return nil, err
	}
	return cachedNarrative(ctx, s, key, func(ctx context.Context) (*domain.HotSleeperNarrative, error) {
		return s.narrator.GenerateHotSleeperPlan(ctx, req)
	})
}

// CGMNarrative relays a scored metabolic profile to the narrator. A missing
// product name is filled from the catalog.
func (s *AssessmentService) CGMNarrative(ctx context.Context, req domain.CGMAssessmentRequest) (*domain.CGMNarrative, error) {
	if s.narrator == nil {
		return nil, domain.ErrProviderNotConfigured
	}
	if req.ProductName == "" && s.catalog != nil {
		if p, ok := s.catalog.ProductByID(req.PrimaryProduct); ok {
			req.ProductName = p.Name
		}
	}
	key, err := narrativeCacheKey("cgm", req)
	if err != nil {
		return nil, err
	}
	return cachedNarrative(ctx, s, key, func(ctx context.Context) (*domain.CGMNarrative, error) {
		return s.narrator.GenerateCGMAssessment(ctx, req)
	})
}

// ScoreHotSleeper scores a thermal profile and picks cooling gear. No narrative.
func (s *AssessmentService) ScoreHotSleeper(answers domain.ThermalAnswers) *domain.HotSleeperReport {
	score := EvaluateThermal(answers)
	return &domain.HotSleeperReport{
		ThermalScore:           score,
		ActionPlan:             []domain.ActionStep{},
		ProductRecommendations: s.coolingProducts(score.Score, answers.Budget),
	}
}

// AssessHotSleeper runs the full Hot Sleeper flow for a complete profile
func (s *AssessmentService) AssessHotSleeper(ctx context.Context, answers domain.ThermalAnswers) (*domain.HotSleeperReport, error) {
	if missing := answers.Missing(); len(missing) > 0 {
		return nil, &domain.MissingFieldsError{Fields: missing}
	}

	report := s.ScoreHotSleeper(answers)
	narrative, err := s.HotSleeperPlan(ctx, domain.HotSleeperPlanRequest{
		Answers:  answers,
		Score:    report.Score,
		Severity: report.Severity,
	})
	if err != nil {
		return nil, err
	}

	report.Summary = narrative.Summary
	report.ActionPlan = narrative.ActionPlan
	return report, nil
}

// ScoreCGM scores a metabolic profile and ranks monitors. No narrative.
func (s *AssessmentService) ScoreCGM(answers domain.MetabolicAnswers) *domain.CGMReport {
	worthiness := EvaluateWorthiness(answers)
	ranked := s.rankMonitors(MatchMonitors(answers))

	report := &domain.CGMReport{
		WorthinessScore: worthiness.Score,
		WorthinessLabel: worthiness.Label,
		Alternatives:    []domain.RankedProduct{},
		ActionPlan:      []domain.ActionStep{},
	}
	if len(ranked) > 0 {
		primary := ranked[0]
		report.PrimaryRecommendation = &primary
		rest := ranked[1:]
		if len(rest) > maxAlternatives {
			rest = rest[:maxAlternatives]
		}
		report.Alternatives = rest
	}
	return report
}

// AssessCGM runs the full CGM worthiness flow for a complete profile
func (s *AssessmentService) AssessCGM(ctx context.Context, answers domain.MetabolicAnswers) (*domain.CGMReport, error) {
	if missing := answers.Missing(); len(missing) > 0 {
		return nil, &domain.MissingFieldsError{Fields: missing}
	}

	report := s.ScoreCGM(answers)
	req := domain.CGMAssessmentRequest{
		Answers: answers,
		Score:   report.WorthinessScore,
		Label:   report.WorthinessLabel,
	}
	if p := report.PrimaryRecommendation; p != nil {
		req.PrimaryProduct = p.Product.ID
		req.ProductName = p.Product.Name
	} else {
		// Nothing from the candidate set is in the catalog; still name the best match
		req.PrimaryProduct = MatchMonitors(answers)[0].ProductID
	}

	narrative, err := s.CGMNarrative(ctx, req)
	if err != nil {
		return nil, err
	}

	report.Verdict = narrative.Verdict
	report.ActionPlan = narrative.ActionPlan
	if report.PrimaryRecommendation != nil {
		report.PrimaryRecommendation.WhyItFits = narrative.WhyItFits
	}
	return report, nil
}

func (s *AssessmentService) coolingProducts(score int, budget domain.ThermalBudget) []domain.Product {
	if s.catalog == nil {
		return []domain.Product{}
	}
	products := RecommendCoolingProducts(s.catalog.ProductsByCategory(domain.CategorySleep), score, budget)
	if products == nil {
		products = []domain.Product{}
	}
	return products
}

// rankMonitors resolves match results against the catalog. Unknown ids are dropped.
func (s *AssessmentService) rankMonitors(matches []domain.MatchResult) []domain.RankedProduct {
	if s.catalog == nil {
		return nil
	}
	ranked := make([]domain.RankedProduct, 0, len(matches))
	for _, m := range matches {
		p, ok := s.catalog.ProductByID(m.ProductID)
		if !ok {
			s.log.Warn("match has no catalog entry", "product_id", m.ProductID)
			continue
		}
		ranked = append(ranked, domain.RankedProduct{
			Product:    p,
			MatchScore: m.MatchScore,
			BestFor:    m.BestFor,
		})
	}
	return ranked
}

// narrativeCacheKey hashes the request so equal profiles share one entry.
// Format: "narrative:{kind}:{sha256 prefix}"
func narrativeCacheKey(kind string, req interface{}) (string, error) {
	raw, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrInvalidRequest, err)
	}
	sum := sha256.Sum256(raw)
	return fmt.Sprintf("narrative:%s:%s", kind, hex.EncodeToString(sum[:16])), nil
}

// cachedNarrative serves key from cache, otherwise generates it once for all
// concurrent callers and caches the result. Failures are never cached.
// The shared call runs detached from any one caller, so a caller that goes
// away only abandons its own wait.
func cachedNarrative[T any](ctx context.Context, s *AssessmentService, key string, generate func(context.Context) (*T, error)) (*T, error) {
	if cached, ok := lookupCached[T](ctx, s, key); ok {
		return cached, nil
	}

	flightCtx := context.WithoutCancel(ctx)
	ch := s.flight.DoChan(key, func() (interface{}, error) {
		if cached, ok := lookupCached[T](flightCtx, s, key); ok {
			return cached, nil
		}
		result, err := generate(flightCtx)
		if err != nil {
			return nil, err
		}
		if s.cache != nil {
			if err := s.cache.Set(flightCtx, key, result, s.cacheTTL); err != nil {
				s.log.Warn("failed to cache narrative", "key", key, "error", err)
			}
		}
		return result, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		if res.Shared {
			s.log.Debug("narrative shared with concurrent request", "key", key)
		}
		return res.Val.(*T), nil
	}
}

func lookupCached[T any](ctx context.Context, s *AssessmentService, key string) (*T, bool) {
	if s.cache == nil {
		return nil, false
	}
	value, err := s.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, domain.ErrCacheMiss) {
			s.log.Warn("cache read failed", "key", key, "error", err)
		}
		return nil, false
	}

	// Cached values come back in their JSON form
	raw, err := json.Marshal(value)
	if err != nil {
		return nil, false
	}
	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		s.log.Warn("discarding undecodable cache entry", "key", key, "error", err)
		return nil, false
	}
	return &out, true
}
