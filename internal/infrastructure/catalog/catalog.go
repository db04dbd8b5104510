package catalog

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/bettervitals/backend/internal/domain"
)

//go:embed catalog.yaml
var embedded []byte

// file is the on-disk layout of catalog.yaml
type file struct {
	Tools    []domain.Tool    `yaml:"tools"`
	Products []domain.Product `yaml:"products"`
	Reviews  []domain.Review  `yaml:"reviews"`
}

// Catalog is the immutable product, tool and review table.
// Accessors hand out copies so callers cannot mutate shared state.
type Catalog struct {
	products []domain.Product
	byID     map[string]int
	bySlug   map[string]int
	tools    []domain.Tool
	reviews  []domain.Review
}

// Load parses the embedded catalog
func Load() (*Catalog, error) {
	return Parse(embedded)
}

// Parse builds a catalog from YAML, rejecting duplicate ids or slugs and unknown categories
func Parse(data []byte) (*Catalog, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}

	c := &Catalog{
		products: f.Products,
		byID:     make(map[string]int, len(f.Products)),
		bySlug:   make(map[string]int, len(f.Products)),
		tools:    f.Tools,
		reviews:  f.Reviews,
	}

	for i, p := range f.Products {
		if p.ID == "" {
			return nil, fmt.Errorf("product at index %d has no id", i)
		}
		if !p.Category.Valid() {
			return nil, fmt.Errorf("product %q has unknown category %q", p.ID, p.Category)
		}
		if _, dup := c.byID[p.ID]; dup {
			return nil, fmt.Errorf("duplicate product id %q", p.ID)
		}
		c.byID[p.ID] = i

		if p.Slug == "" {
			continue
		}
		if _, dup := c.bySlug[p.Slug]; dup {
			return nil, fmt.Errorf("duplicate product slug %q", p.Slug)
		}
		c.bySlug[p.Slug] = i
	}

	for _, t := range f.Tools {
		if !t.Category.Valid() {
			return nil, fmt.Errorf("tool %q has unknown category %q", t.ID, t.Category)
		}
	}

	return c, nil
}

// Products returns every product in catalog order
func (c *Catalog) Products() []domain.Product {
	out := make([]domain.Product, len(c.products))
	for i, p := range c.products {
		out[i] = cloneProduct(p)
	}
	return out
}

func (c *Catalog) ProductByID(id string) (domain.Product, bool) {
	i, ok := c.byID[id]
	if !ok {
		return domain.Product{}, false
	}
	return cloneProduct(c.products[i]), true
}

func (c *Catalog) ProductBySlug(slug string) (domain.Product, bool) {
	i, ok := c.bySlug[slug]
	if !ok {
		return domain.Product{}, false
	}
	return cloneProduct(c.products[i]), true
}

// ProductsByCategory returns the products in one category, in catalog order
func (c *Catalog) ProductsByCategory(category domain.Category) []domain.Product {
	var out []domain.Product
	for _, p := range c.products {
		if p.Category == category {
			out = append(out, cloneProduct(p))
		}
	}
	return out
}

func (c *Catalog) Tools() []domain.Tool {
	return append([]domain.Tool(nil), c.tools...)
}

func (c *Catalog) Reviews() []domain.Review {
	return append([]domain.Review(nil), c.reviews...)
}

func cloneProduct(p domain.Product) domain.Product {
	p.Pros = append([]string(nil), p.Pros...)
	p.Cons = append([]string(nil), p.Cons...)
	if p.ActualPrice != nil {
		price := *p.ActualPrice
		p.ActualPrice = &price
	}
	if p.Evidence != nil {
		ev := *p.Evidence
		ev.Studies = append([]domain.Study(nil), ev.Studies...)
		ev.ExpertEndorsements = append([]domain.ExpertEndorsement(nil), ev.ExpertEndorsements...)
		ev.PodcastMentions = append([]domain.PodcastMention(nil), ev.PodcastMentions...)
		ev.ThirdPartyTests = append([]domain.ThirdPartyTest(nil), ev.ThirdPartyTests...)
		p.Evidence = &ev
	}
	return p
}
