package domain

// Category is the catalog section a product belongs to
type Category string

const (
	CategorySleep       Category = "Sleep"
	CategoryLabs        Category = "Labs"
	CategoryMetabolic   Category = "Metabolic"
	CategoryWearables   Category = "Wearables"
	CategoryRecovery    Category = "Recovery"
	CategoryHome        Category = "Home"
	CategorySupplements Category = "Supplements"
)

// Categories lists every valid product category
var Categories = []Category{
	CategorySleep, CategoryLabs, CategoryMetabolic, CategoryWearables,
	CategoryRecovery, CategoryHome, CategorySupplements,
}

// Valid reports whether c is one of the known categories
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Product is a curated catalog entry
type Product struct {
	ID              string    `json:"id" yaml:"id"`
	Slug            string    `json:"slug" yaml:"slug"`
	Name            string    `json:"name" yaml:"name"`
	Category        Category  `json:"category" yaml:"category"`
	Tag             string    `json:"tag" yaml:"tag"`
	Description     string    `json:"description" yaml:"description"`
	PriceLevel      string    `json:"priceLevel" yaml:"price_level"`
	Image           string    `json:"image" yaml:"image"`
	Pros            []string  `json:"pros" yaml:"pros"`
	Cons            []string  `json:"cons" yaml:"cons"`
	Score           float64   `json:"score" yaml:"score"`
	AffiliateURL    string    `json:"affiliateUrl,omitempty" yaml:"affiliate_url"`
	ActualPrice     *float64  `json:"actualPrice,omitempty" yaml:"actual_price"`
	FullDescription string    `json:"fullDescription,omitempty" yaml:"full_description"`
	Verdict         string    `json:"verdict,omitempty" yaml:"verdict"`
	Evidence        *Evidence `json:"evidence,omitempty" yaml:"evidence"`
}

// Price returns the real price, or 0 when the catalog has none
func (p Product) Price() float64 {
	if p.ActualPrice == nil {
		return 0
	}
	return *p.ActualPrice
}

// Evidence bundles the citations backing a product
type Evidence struct {
	StudyCount         int                 `json:"studyCount" yaml:"study_count"`
	ExpertCount        int                 `json:"expertCount" yaml:"expert_count"`
	Studies            []Study             `json:"studies" yaml:"studies"`
	ExpertEndorsements []ExpertEndorsement `json:"expertEndorsements" yaml:"expert_endorsements"`
	PodcastMentions    []PodcastMention    `json:"podcastMentions" yaml:"podcast_mentions"`
	ThirdPartyTests    []ThirdPartyTest    `json:"thirdPartyTests" yaml:"third_party_tests"`
}

// Study is a research citation. Type is meta-analysis, rct or brand-study; Tier is S, A, B or C.
type Study struct {
	Title      string `json:"title" yaml:"title"`
	Journal    string `json:"journal,omitempty" yaml:"journal"`
	Year       int    `json:"year" yaml:"year"`
	Type       string `json:"type" yaml:"type"`
	Tier       string `json:"tier" yaml:"tier"`
	KeyFinding string `json:"keyFinding" yaml:"key_finding"`
	PubmedURL  string `json:"pubmedUrl,omitempty" yaml:"pubmed_url"`
}

type ExpertEndorsement struct {
	ExpertName        string `json:"expertName" yaml:"expert_name"`
	ExpertTitle       string `json:"expertTitle" yaml:"expert_title"`
	ExpertCredentials string `json:"expertCredentials" yaml:"expert_credentials"`
	Quote             string `json:"quote" yaml:"quote"`
	Source            string `json:"source" yaml:"source"`
	EpisodeNumber     string `json:"episodeNumber,omitempty" yaml:"episode_number"`
	Timestamp         string `json:"timestamp,omitempty" yaml:"timestamp"`
	DisclosureNote    string `json:"disclosureNote,omitempty" yaml:"disclosure_note"`
}

type PodcastMention struct {
	PodcastName   string `json:"podcastName" yaml:"podcast_name"`
	PodcastHost   string `json:"podcastHost" yaml:"podcast_host"`
	EpisodeTitle  string `json:"episodeTitle" yaml:"episode_title"`
	EpisodeNumber string `json:"episodeNumber" yaml:"episode_number"`
	Timestamp     string `json:"timestamp" yaml:"timestamp"`
	ClipURL       string `json:"clipUrl,omitempty" yaml:"clip_url"`
}

type ThirdPartyTest struct {
	Source    string `json:"source" yaml:"source"`
	Rating    string `json:"rating,omitempty" yaml:"rating"`
	Summary   string `json:"summary" yaml:"summary"`
	SourceURL string `json:"sourceUrl" yaml:"source_url"`
}

// Tool is a featured diagnostic assessment shown on the tools page
type Tool struct {
	ID          string   `json:"id" yaml:"id"`
	Title       string   `json:"title" yaml:"title"`
	Description string   `json:"description" yaml:"description"`
	Time        string   `json:"time" yaml:"time"`
	Icon        string   `json:"icon" yaml:"icon"`
	Category    Category `json:"category" yaml:"category"`
}

// Review is an editorial analysis teaser
type Review struct {
	ID      string `json:"id" yaml:"id"`
	Dataset string `json:"dataset" yaml:"dataset"`
	Title   string `json:"title" yaml:"title"`
	Summary string `json:"summary" yaml:"summary"`
	Icon    string `json:"icon" yaml:"icon"`
}
