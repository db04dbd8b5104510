// Package routing maps site URL paths to page keys and back.
package routing

import (
	"strings"

	"github.com/bettervitals/backend/internal/domain"
)

const (
	HomePage      = "home"
	productPrefix = "product/"
)

// CategoryPage describes a catalog category landing page
type CategoryPage struct {
	Key         string          `json:"key"`
	Title       string          `json:"title"`
	Category    domain.Category `json:"category"`
	Description string          `json:"description"`
}

var categoryPages = []CategoryPage{
	{
		Key: "sleep", Title: "Sleep", Category: domain.CategorySleep,
		Description: "Optimize the foundation of longevity. Temperature regulation, light hygiene, and restorative depth analysis.",
	},
	{
		Key: "labs", Title: "Labs", Category: domain.CategoryLabs,
		Description: "Bio-marker identification and tracking. From standard panels to cutting-edge epigenetic age testing.",
	},
	{
		Key: "wearables", Title: "Wearables", Category: domain.CategoryWearables,
		Description: "Continuous biometric feedback loops. HRV, glucose, and recovery tracking technologies.",
	},
	{
		Key: "metabolic", Title: "Metabolic", Category: domain.CategoryMetabolic,
		Description: "CGMs, glucose monitors, and metabolic optimization tools for metabolic health insights.",
	},
	{
		Key: "recovery", Title: "Recovery & Therapy", Category: domain.CategoryRecovery,
		Description: "Thermal therapies, light therapy, and recovery tools for optimal restoration and performance.",
	},
	{
		Key: "home-environment", Title: "Home", Category: domain.CategoryHome,
		Description: "Air quality, water filtration, and environmental optimization for your living space.",
	},
	{
		Key: "supplements", Title: "Supplements", Category: domain.CategorySupplements,
		Description: "Evidence-based supplementation protocols for longevity and performance.",
	},
}

var staticPages = []string{"home", "tools", "discovery", "about", "privacy", "terms", "compliance"}

// aliases are legacy paths kept for old links
var aliases = map[string]string{
	"gear": "recovery",
}

var validPages = func() map[string]bool {
	valid := make(map[string]bool, len(staticPages)+len(categoryPages))
	for _, p := range staticPages {
		valid[p] = true
	}
	for _, c := range categoryPages {
		valid[c.Key] = true
	}
	return valid
}()

// PageFromPath resolves a URL path to a page key. Unknown paths resolve to home.
func PageFromPath(path string) string {
	if path == "" || path == "/" {
		return HomePage
	}
	if slug, ok := strings.CutPrefix(path, "/"+productPrefix); ok {
		if slug == "" {
			return HomePage
		}
		return productPrefix + slug
	}

	route := strings.TrimPrefix(path, "/")
	if target, ok := aliases[route]; ok {
		return target
	}
	if validPages[route] {
		return route
	}
	return HomePage
}

// PathFromPage is the inverse of PageFromPath for canonical page keys
func PathFromPage(page string) string {
	if page == HomePage {
		return "/"
	}
	return "/" + page
}

// ProductSlug extracts the slug from a product page key
func ProductSlug(page string) (string, bool) {
	slug, ok := strings.CutPrefix(page, productPrefix)
	return slug, ok && slug != ""
}

// CategoryFor returns the landing page for a category key
func CategoryFor(key string) (CategoryPage, bool) {
	for _, c := range categoryPages {
		if c.Key == key {
			return c, true
		}
	}
	return CategoryPage{}, false
}

// CategoryPages lists every category landing page in navigation order
func CategoryPages() []CategoryPage {
	return append([]CategoryPage(nil), categoryPages...)
}
