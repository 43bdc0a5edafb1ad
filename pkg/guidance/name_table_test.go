package guidance

import (
	"testing"
)

func TestRequiresNameAnnounced(t *testing.T) {
	suffixes := DefaultSuffixTable()

	testCases := []struct {
		name     string
		from, to string
		want     bool
	}{
		{"identical", "jalan sudirman", "jalan sudirman", false},
		{"suffix variants of one name", "Jalan Sudirman", "Sudirman Street", false},
		{"prefix and abbreviation", "Jl Malioboro", "Malioboro Rd", false},
		{"different core names", "Main St", "Oak St", true},
		{"empty from", "", "jalan pemuda", false},
		{"empty to", "jalan pemuda", "", false},
		{"both empty", "", "", false},
		{"suffix-only names compare verbatim", "Street", "Road", true},
		{"directional suffix dropped", "Bridgeport Way West", "Bridgeport Way", false},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			if got := RequiresNameAnnounced(tt.from, tt.to, suffixes); got != tt.want {
				t.Errorf("RequiresNameAnnounced(%q, %q) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestNameTable(t *testing.T) {
	nt := NewNameTable([]string{"jalan pemuda", "jalan slamet riyadi"})

	if got := nt.GetNameForId(1); got != "jalan slamet riyadi" {
		t.Errorf("GetNameForId(1) = %q", got)
	}
	if got := nt.GetNameForId(99); got != "" {
		t.Errorf("out of range id resolved to %q, want empty", got)
	}
}
