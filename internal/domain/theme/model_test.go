package theme

import (
	"reflect"
	"testing"

	"github.com/riskibarqy/hiking-league/internal/domain/place"
)

func TestMatch(t *testing.T) {
	t.Parallel()

	th := Theme{Year: 2025, Month: 6, Keywords: []string{"Voda", "hrad", "  ", "most"}}
	places := []place.Place{
		{Type: place.TypeRuins, Name: "Zřícenina hradu Lichnice"},
		{Type: place.TypeOther, Name: "Studánka", Description: "pitná VODA u cesty"},
	}

	tests := []struct {
		name        string
		places      []place.Place
		description string
		wantPoints  float64
		wantWords   []string
	}{
		{
			name:       "place names and descriptions",
			places:     places,
			wantPoints: DefaultBonusPoints,
			wantWords:  []string{"hrad", "Voda"},
		},
		{
			name:        "route description adds new keywords",
			places:      places[:1],
			description: "Přes starý MOST k hradu",
			wantPoints:  DefaultBonusPoints,
			wantWords:   []string{"hrad", "most"},
		},
		{
			name:        "no match",
			places:      []place.Place{{Type: place.TypePeak, Name: "Sněžka"}},
			description: "výstup na horu",
			wantPoints:  0,
			wantWords:   []string{},
		},
	}

	for _, tc := range tests {
		got := Match(th, tc.places, tc.description)
		if got.Points != tc.wantPoints {
			t.Fatalf("%s: unexpected points: got=%v want=%v", tc.name, got.Points, tc.wantPoints)
		}
		if !reflect.DeepEqual(got.MatchedKeywords, tc.wantWords) {
			t.Fatalf("%s: unexpected keywords: got=%v want=%v", tc.name, got.MatchedKeywords, tc.wantWords)
		}
	}
}

func TestMatch_FlatBonus(t *testing.T) {
	t.Parallel()

	th := Theme{Keywords: []string{"a", "b", "c"}}
	got := Match(th, []place.Place{{Name: "abc"}}, "")
	if got.Points != DefaultBonusPoints {
		t.Fatalf("bonus must not scale with matches: got=%v", got.Points)
	}
	if len(got.MatchedKeywords) != 3 {
		t.Fatalf("unexpected keywords: %v", got.MatchedKeywords)
	}
}

func TestMatch_EmptyKeywords(t *testing.T) {
	t.Parallel()

	got := Match(Theme{}, []place.Place{{Name: "anything"}}, "text")
	if got.Points != 0 || got.MatchedKeywords == nil || len(got.MatchedKeywords) != 0 {
		t.Fatalf("expected empty bonus: %+v", got)
	}
}
