package theme

import (
	"strings"

	"github.com/riskibarqy/hiking-league/internal/domain/place"
)

// DefaultBonusPoints is awarded once when any keyword matches, regardless of how many do.
const DefaultBonusPoints = 5.0

// Theme is the keyword set of one competition month.
type Theme struct {
	ID       string
	Year     int
	Month    int
	Name     string
	Keywords []string
}

type Bonus struct {
	Points          float64
	MatchedKeywords []string
}

// Match looks for theme keywords in each place's name and description, then in
// the route description. Matching is a case-insensitive substring search.
func Match(t Theme, places []place.Place, routeDescription string) Bonus {
	keywords := normalizeKeywords(t.Keywords)
	if len(keywords) == 0 {
		return Bonus{MatchedKeywords: []string{}}
	}

	sources := make([]string, 0, len(places)+1)
	for _, p := range places {
		sources = append(sources, p.SearchText())
	}
	if text := strings.TrimSpace(routeDescription); text != "" {
		sources = append(sources, strings.ToLower(text))
	}

	matched := make([]string, 0, len(keywords))
	seen := make(map[string]struct{}, len(keywords))
	for _, source := range sources {
		for _, kw := range keywords {
			if _, ok := seen[kw.lower]; ok {
				continue
			}
			if strings.Contains(source, kw.lower) {
				seen[kw.lower] = struct{}{}
				matched = append(matched, kw.original)
			}
		}
	}

	if len(matched) == 0 {
		return Bonus{MatchedKeywords: matched}
	}
	return Bonus{Points: DefaultBonusPoints, MatchedKeywords: matched}
}

type keyword struct {
	original string
	lower    string
}

func normalizeKeywords(values []string) []keyword {
	out := make([]keyword, 0, len(values))
	for _, value := range values {
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		out = append(out, keyword{original: value, lower: strings.ToLower(value)})
	}
	return out
}
