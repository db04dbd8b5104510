package domain

import (
	"context"
	"time"
)

// CacheRepository defines the interface for caching operations
type CacheRepository interface {
	Get(ctx context.Context, key string) (interface{}, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// Narrator generates personalized narrative copy from a hosted language model
type Narrator interface {
	GenerateHealthPlan(ctx context.Context, req HealthPlanRequest) (*HealthPlan, error)
	GenerateHotSleeperPlan(ctx context.Context, req HotSleeperPlanRequest) (*HotSleeperNarrative, error)
	GenerateCGMAssessment(ctx context.Context, req CGMAssessmentRequest) (*CGMNarrative, error)
}

// Catalog is the read-only product and tool table
type Catalog interface {
	Products() []Product
	ProductByID(id string) (Product, bool)
	ProductBySlug(slug string) (Product, bool)
	ProductsByCategory(category Category) []Product
	Tools() []Tool
	Reviews() []Review
}
