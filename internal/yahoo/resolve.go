package yahoo

import "strings"

// IBKR market codes mapped to the Yahoo suffixes most likely to carry the
// listing, in preference order. Extendable per deployment via the
// TICKER_MAP configuration.
var defaultMarketMap = map[string][]string{
	"IBIS":  {".MI", ".DE"},
	"IBIS2": {".DE", ".MI"},
	"AEB":   {".AS"},
	"SBF":   {".PA"},
	"XLON":  {".L"},
	"XETRA": {".DE"},
}

// One-off overrides for symbols whose listing does not follow the market
// suffix convention (delisted or cross-listed tickers).
var defaultExactMap = map[string][]string{
	"NUKL@SBF": {"NUKL.DE"},
}

// Suffixes tried when the market code is unknown.
var genericSuffixes = []string{".DE", ".PA", ".AS", ".MI", ".L"}

// Resolver turns a configured symbol, optionally suffixed with @MARKET
// (e.g. "SXR8@IBIS2"), into an ordered list of candidate Yahoo tickers.
// Overrides take precedence over market maps, which take precedence over
// generic suffix guessing.
type Resolver struct {
	overrides map[string][]string
}

// NewResolver creates a Resolver. The overrides map may contain keys that
// are market codes (e.g. "IBIS") or full "TICKER@MARKET" entries; values
// may be full tickers or suffixes (with or without the leading dot).
func NewResolver(overrides map[string][]string) *Resolver {
	normalized := make(map[string][]string, len(overrides))
	for k, v := range overrides {
		normalized[strings.ToUpper(k)] = v
	}
	return &Resolver{overrides: normalized}
}

// Candidates returns the Yahoo tickers to try for a configured symbol, in
// preference order, upper-cased and deduplicated.
func (r *Resolver) Candidates(symbol string) []string {
	input := strings.ToUpper(strings.TrimSpace(symbol))
	base := input
	market := ""
	if at := strings.Index(input, "@"); at >= 0 {
		base = strings.TrimSpace(input[:at])
		market = strings.TrimSpace(input[at+1:])
	}

	if mapped, ok := defaultExactMap[input]; ok {
		return dedup(expand(base, mapped))
	}
	if mapped, ok := r.overrides[input]; ok {
		return dedup(expand(base, mapped))
	}

	if market == "" {
		return []string{base}
	}

	var candidates []string
	switch {
	case len(r.overrides[market]) > 0:
		candidates = expand(base, r.overrides[market])
	case len(defaultMarketMap[market]) > 0:
		for _, suffix := range defaultMarketMap[market] {
			candidates = append(candidates, base+suffix)
		}
	default:
		// Unknown market: guess a dot-suffix from the market code itself,
		// then fall back to the common European listings.
		candidates = append(candidates, base+"."+market)
		if len(market) > 2 {
			candidates = append(candidates, base+"."+market[:2])
		}
		for _, suffix := range genericSuffixes {
			candidates = append(candidates, base+suffix)
		}
	}

	// The bare base symbol is always the last resort.
	candidates = append(candidates, base)

	return dedup(candidates)
}

// expand interprets override values: full tickers pass through, suffixes
// (with or without the leading dot) are appended to the base symbol.
func expand(base string, mapped []string) []string {
	out := make([]string, 0, len(mapped))
	for _, item := range mapped {
		item = strings.ToUpper(strings.TrimSpace(item))
		switch {
		case strings.HasPrefix(item, base), strings.Contains(item, "."):
			if strings.HasPrefix(item, ".") {
				out = append(out, base+item)
			} else {
				out = append(out, item)
			}
		default:
			out = append(out, base+"."+item)
		}
	}
	return out
}

func dedup(candidates []string) []string {
	seen := make(map[string]bool, len(candidates))
	out := make([]string, 0, len(candidates))
	for _, c := range candidates {
		if !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	return out
}
