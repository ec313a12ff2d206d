package comtrade

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"unicode/utf8"

	"github.com/tradebarrier/market-access/backend/internal/contracts"
	"github.com/tradebarrier/market-access/backend/pkg/config"
	"github.com/tradebarrier/market-access/backend/pkg/httputil"
	"github.com/tradebarrier/market-access/backend/pkg/redis"
)

// countryNameMap rewrites common display names to the names comtrade uses in
// its area lists. Callers may pass either form.
var countryNameMap = map[string]string{
	"Bolivia":        "Bolivia (Plurinational State of)",
	"Brunei":         "Brunei Darussalam",
	"Cape Verde":     "Cabo Verde",
	"Czech Republic": "Czechia",
	"Hong Kong":      "China, Hong Kong SAR",
	"Ivory Coast":    "Côte d'Ivoire",
	"Laos":           "Lao People's Dem. Rep.",
	"Macau":          "China, Macao SAR",
	"Moldova":        "Rep. of Moldova",
	"Russia":         "Russian Federation",
	"South Korea":    "Rep. of Korea",
	"Syria":          "Syrian Arab Republic",
	"Taiwan":         "Other Asia, nes",
	"Tanzania":       "United Rep. of Tanzania",
	"United States":  "USA",
	"Venezuela":      "Venezuela (Bolivarian Rep. of)",
	"Vietnam":        "Viet Nam",
}

// CanonicalName passes a country display name through the rewrite table,
// returning the name comtrade records carry. Unknown names pass through.
func CanonicalName(name string) string {
	if rewritten, ok := countryNameMap[name]; ok {
		return rewritten
	}
	return name
}

// areaDocument matches the comtrade reference JSON shape.
type areaDocument struct {
	Results []struct {
		ID   string `json:"id"`
		Text string `json:"text"`
	} `json:"results"`
}

// Resolver maps country display names to comtrade area codes. The two area
// lists are fetched lazily, at most once per Resolver; there is no package
// state, so tests construct a fresh Resolver.
type Resolver struct {
	http  *httputil.Client
	cache contracts.Cache

	partnersURL  string
	reportersURL string

	mu        sync.Mutex
	partners  map[string]string // text -> id
	reporters map[string]string
}

// NewResolver creates a Resolver. cache may be nil, in which case area
// documents are re-fetched per process.
func NewResolver(client *httputil.Client, cache contracts.Cache, cfg config.ComtradeConfig) *Resolver {
	return &Resolver{
		http:         client,
		cache:        cache,
		partnersURL:  cfg.PartnerAreasURL,
		reportersURL: cfg.ReporterAreasURL,
	}
}

// PartnerCode resolves a country display name to its partner-area code.
func (r *Resolver) PartnerCode(ctx context.Context, name string) (string, error) {
	areas, err := r.partnerAreas(ctx)
	if err != nil {
		return "", err
	}
	return resolveName(areas, name)
}

// ReporterCode resolves a country display name to its reporter-area code.
func (r *Resolver) ReporterCode(ctx context.Context, name string) (string, error) {
	areas, err := r.reporterAreas(ctx)
	if err != nil {
		return "", err
	}
	return resolveName(areas, name)
}

func resolveName(areas map[string]string, name string) (string, error) {
	name = CanonicalName(name)
	code, ok := areas[name]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrCountryNotFound, name)
	}
	return code, nil
}

func (r *Resolver) partnerAreas(ctx context.Context) (map[string]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.partners == nil {
		areas, err := r.loadAreas(ctx, r.partnersURL)
		if err != nil {
			return nil, err
		}
		r.partners = areas
	}
	return r.partners, nil
}

func (r *Resolver) reporterAreas(ctx context.Context) (map[string]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.reporters == nil {
		areas, err := r.loadAreas(ctx, r.reportersURL)
		if err != nil {
			return nil, err
		}
		r.reporters = areas
	}
	return r.reporters, nil
}

// loadAreas fetches one area document, preferring the external cache, and
// inverts it into a text -> id map.
func (r *Resolver) loadAreas(ctx context.Context, url string) (map[string]string, error) {
	cacheKey := "comtrade-api:" + url

	var body []byte
	if r.cache != nil {
		cached, found, err := r.cache.Get(ctx, cacheKey)
		if err != nil {
			return nil, fmt.Errorf("area cache read for %s: %w", url, err)
		}
		if found {
			body = []byte(cached)
		}
	}

	if body == nil {
		fetched, err := r.http.GetBody(ctx, url)
		if err != nil {
			return nil, fmt.Errorf("fetch area list %s: %w", url, err)
		}
		body = fetched

		if r.cache != nil {
			if err := r.cache.Set(ctx, cacheKey, string(body), redis.TTLReference); err != nil {
				return nil, fmt.Errorf("area cache write for %s: %w", url, err)
			}
		}
	}

	doc, err := decodeAreaDocument(body)
	if err != nil {
		return nil, fmt.Errorf("decode area list %s: %w", url, err)
	}

	areas := make(map[string]string, len(doc.Results))
	for _, entry := range doc.Results {
		areas[entry.Text] = entry.ID
	}
	return areas, nil
}

// decodeAreaDocument parses the document, stripping a UTF-8 BOM and retrying
// once if the strict decode fails. Some comtrade mirrors serve the reference
// files with a BOM.
func decodeAreaDocument(body []byte) (*areaDocument, error) {
	var doc areaDocument
	if utf8.Valid(body) {
		if err := json.Unmarshal(body, &doc); err == nil {
			return &doc, nil
		}
	}

	stripped := bytes.TrimPrefix(body, []byte{0xEF, 0xBB, 0xBF})
	if err := json.Unmarshal(stripped, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}
