package yahoo

import (
	"reflect"
	"testing"
)

func TestResolver_Candidates(t *testing.T) {
	tests := []struct {
		name      string
		overrides map[string][]string
		symbol    string
		want      []string
	}{
		{
			name:   "plain symbol without market",
			symbol: "VWCE",
			want:   []string{"VWCE"},
		},
		{
			name:   "lowercase input is normalized",
			symbol: " vwce@aeb ",
			want:   []string{"VWCE.AS", "VWCE"},
		},
		{
			name:   "IBIS prefers Milan then Xetra",
			symbol: "SXRV@IBIS",
			want:   []string{"SXRV.MI", "SXRV.DE", "SXRV"},
		},
		{
			name:   "IBIS2 prefers Xetra then Milan",
			symbol: "SXR8@IBIS2",
			want:   []string{"SXR8.DE", "SXR8.MI", "SXR8"},
		},
		{
			name:   "exact override wins over the market map",
			symbol: "NUKL@SBF",
			want:   []string{"NUKL.DE"},
		},
		{
			name:   "unknown market guesses from the code then common listings",
			symbol: "ABC@XNAS",
			want:   []string{"ABC.XNAS", "ABC.XN", "ABC.DE", "ABC.PA", "ABC.AS", "ABC.MI", "ABC.L", "ABC"},
		},
		{
			name:   "two-letter unknown market deduplicates against the generic list",
			symbol: "ABC@DE",
			want:   []string{"ABC.DE", "ABC.PA", "ABC.AS", "ABC.MI", "ABC.L", "ABC"},
		},
		{
			name:      "configured market override beats the default map",
			overrides: map[string][]string{"IBIS": {".SW"}},
			symbol:    "CSPX@IBIS",
			want:      []string{"CSPX.SW", "CSPX"},
		},
		{
			name:      "configured full-symbol override returns exactly its tickers",
			overrides: map[string][]string{"CSPX@XLON": {"CSPX.L", "CSPX.AS"}},
			symbol:    "cspx@xlon",
			want:      []string{"CSPX.L", "CSPX.AS"},
		},
		{
			name:      "override suffixes without a dot are expanded",
			overrides: map[string][]string{"IBIS": {"SW", "DE"}},
			symbol:    "CSPX@IBIS",
			want:      []string{"CSPX.SW", "CSPX.DE", "CSPX"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolver := NewResolver(tt.overrides)

			got := resolver.Candidates(tt.symbol)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Candidates(%q) = %v, want %v", tt.symbol, got, tt.want)
			}
		})
	}
}
