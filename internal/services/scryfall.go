package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/time/rate"

	"github.com/elcastillomagic/card-pricer/internal/metrics"
)

const (
	scryfallBaseURL = "https://api.scryfall.com"
	scryfallTimeout = 10 * time.Second

	// Scryfall asks clients to stay under ~10 requests per second.
	scryfallRPS = 10

	scryfallCacheSize = 512
)

// ScryfallPrices holds the price fields of a Scryfall card object. All
// values are decimal strings; empty means no market price.
type ScryfallPrices struct {
	USD     string `json:"usd"`
	USDFoil string `json:"usd_foil"`
	EUR     string `json:"eur"`
	EURFoil string `json:"eur_foil"`
	Tix     string `json:"tix"`
}

// ScryfallCard is the subset of a Scryfall card object the pricer uses.
type ScryfallCard struct {
	Name         string         `json:"name"`
	Set          string         `json:"set"`
	SetType      string         `json:"set_type"`
	Lang         string         `json:"lang"`
	CollectorNum string         `json:"collector_number"`
	Layout       string         `json:"layout"`
	ReleasedAt   string         `json:"released_at"`
	Finishes     []string       `json:"finishes"`
	Foil         bool           `json:"foil"`
	Nonfoil      bool           `json:"nonfoil"`
	Prices       ScryfallPrices `json:"prices"`
}

type scryfallListResponse struct {
	Object  string         `json:"object"`
	Data    []ScryfallCard `json:"data"`
	HasMore bool           `json:"has_more"`
}

// ScryfallClient is the live price source. Lookups are rate-limited and
// cached; a cached 404 is remembered as a nil entry so repeated misses do
// not hit the network again within a run.
type ScryfallClient struct {
	client  *http.Client
	baseURL string
	limiter *rate.Limiter
	cache   *lru.Cache[string, *ScryfallCard]
}

func NewScryfallClient() *ScryfallClient {
	cache, _ := lru.New[string, *ScryfallCard](scryfallCacheSize)
	return &ScryfallClient{
		client: &http.Client{
			Timeout: scryfallTimeout,
		},
		baseURL: scryfallBaseURL,
		limiter: rate.NewLimiter(rate.Limit(scryfallRPS), 1),
		cache:   cache,
	}
}

// NamedExact fetches the printing of the exactly-named card in the given
// set. Returns nil, nil when Scryfall has no record for that exact
// name+set pair: there is deliberately no fallback to another edition, a
// live price for the wrong printing is worse than no price.
func (s *ScryfallClient) NamedExact(ctx context.Context, name, setCode string) (*ScryfallCard, error) {
	name = strings.TrimSpace(name)
	setCode = strings.ToLower(strings.TrimSpace(setCode))
	if name == "" || setCode == "" {
		return nil, nil
	}

	cacheKey := strings.ToLower(name) + "|" + setCode
	if card, ok := s.cache.Get(cacheKey); ok {
		metrics.ScryfallCacheHits.Inc()
		return card, nil
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("exact", name)
	params.Set("set", setCode)
	reqURL := fmt.Sprintf("%s/cards/named?%s", s.baseURL, params.Encode())

	ctx, cancel := context.WithTimeout(ctx, scryfallTimeout)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		metrics.ScryfallRequestsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("failed to get card from scryfall: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		metrics.ScryfallRequestsTotal.WithLabelValues("miss").Inc()
		s.cache.Add(cacheKey, nil)
		return nil, nil
	}

	if resp.StatusCode != http.StatusOK {
		metrics.ScryfallRequestsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("scryfall API returned status %d", resp.StatusCode)
	}

	var card ScryfallCard
	if err := json.NewDecoder(resp.Body).Decode(&card); err != nil {
		metrics.ScryfallRequestsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("failed to decode scryfall response: %w", err)
	}

	metrics.ScryfallRequestsTotal.WithLabelValues("hit").Inc()
	s.cache.Add(cacheKey, &card)
	return &card, nil
}

// SearchPrintings returns every printing of the exactly-named card across
// all sets. Used when a quote request carries no edition hint.
func (s *ScryfallClient) SearchPrintings(ctx context.Context, name string) ([]ScryfallCard, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, nil
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	// Escape quotes for Scryfall query syntax.
	safeName := strings.ReplaceAll(name, "\"", "\\\"")
	query := fmt.Sprintf(`!"%s" unique:prints`, safeName)
	reqURL := fmt.Sprintf("%s/cards/search?q=%s", s.baseURL, url.QueryEscape(query))

	ctx, cancel := context.WithTimeout(ctx, scryfallTimeout)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		metrics.ScryfallRequestsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("failed to search scryfall: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		metrics.ScryfallRequestsTotal.WithLabelValues("miss").Inc()
		return nil, nil
	}

	if resp.StatusCode != http.StatusOK {
		metrics.ScryfallRequestsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("scryfall API returned status %d", resp.StatusCode)
	}

	var searchResp scryfallListResponse
	if err := json.NewDecoder(resp.Body).Decode(&searchResp); err != nil {
		return nil, fmt.Errorf("failed to decode scryfall response: %w", err)
	}

	metrics.ScryfallRequestsTotal.WithLabelValues("hit").Inc()
	return searchResp.Data, nil
}

// SelectPrinting ranks candidate printings when resolving a card purely by
// name: exact set match +10, language match +5, any non-empty price +3,
// core set or expansion printing +1. Token printings are excluded outright.
// Ties keep the first-seen candidate. Returns nil when nothing survives
// the filter.
func SelectPrinting(cards []ScryfallCard, setCode, lang string) *ScryfallCard {
	var best *ScryfallCard
	bestScore := -1

	for i := range cards {
		card := &cards[i]
		if card.SetType == "token" || card.Layout == "token" {
			continue
		}

		score := 0
		if setCode != "" && strings.EqualFold(card.Set, setCode) {
			score += 10
		}
		if lang != "" && strings.EqualFold(card.Lang, lang) {
			score += 5
		}
		if hasAnyPrice(card.Prices) {
			score += 3
		}
		if card.SetType == "core" || card.SetType == "expansion" {
			score++
		}

		if score > bestScore {
			bestScore = score
			best = card
		}
	}

	return best
}

func hasAnyPrice(p ScryfallPrices) bool {
	return p.USD != "" || p.USDFoil != "" || p.EUR != "" || p.EURFoil != "" || p.Tix != ""
}

// HasFoilFinish reports whether the printing exists in a foil treatment.
func HasFoilFinish(card *ScryfallCard) bool {
	if card == nil {
		return false
	}
	for _, f := range card.Finishes {
		switch strings.ToLower(f) {
		case "foil", "etched":
			return true
		}
	}
	return card.Foil
}

// RefineFoil decides whether a card flagged as foil should actually be
// priced as foil. The flag only survives when the printing's catalog entry
// lists a foil finish and the confidence signal clears the threshold; a
// foil-only printing needs less corroboration (0.5) than one with a
// non-foil alternative. A normal card over-priced as foil is worse than a
// foil card priced as normal, so every doubtful case downgrades.
func RefineFoil(wantFoil bool, confidence, threshold float64, card *ScryfallCard) bool {
	if !wantFoil {
		return false
	}
	if !HasFoilFinish(card) {
		return false
	}

	if foilOnly(card) {
		threshold = 0.5
	}
	return confidence >= threshold
}

func foilOnly(card *ScryfallCard) bool {
	if card.Nonfoil {
		return false
	}
	for _, f := range card.Finishes {
		if strings.EqualFold(f, "nonfoil") {
			return false
		}
	}
	return true
}

// PickUSD selects the USD price field matching the requested finish,
// falling back to the opposite field when the primary is empty. The second
// return is false when the fallback was taken; the third is false when no
// parseable price exists at all.
func PickUSD(prices ScryfallPrices, foil bool) (float64, bool, bool) {
	primary, secondary := prices.USD, prices.USDFoil
	if foil {
		primary, secondary = prices.USDFoil, prices.USD
	}

	reliable := true
	base := primary
	if base == "" {
		base = secondary
		reliable = false
	}
	if base == "" {
		return 0, false, false
	}

	usd, err := strconv.ParseFloat(base, 64)
	if err != nil {
		return 0, false, false
	}
	return usd, reliable, true
}
