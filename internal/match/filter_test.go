package match

import (
	"testing"

	"github.com/jmylchreest/dyematch/internal/dye"
)

func TestFilters(t *testing.T) {
	gold := dye.Dye{ID: 1, Name: "Metallic Gold", Acquisition: "Crafting", Tags: []string{"metallic"}}
	darkRed := dye.Dye{ID: 2, Name: "Dark Red", Acquisition: "Crafting", Tags: []string{"dark"}}
	redDark := dye.Dye{ID: 3, Name: "Red Dark", Acquisition: "Dye Vendor"}
	white := dye.Dye{ID: 4, Name: "Pure White", Acquisition: "Market Board", Tags: []string{"expensive"}}

	tests := []struct {
		name     string
		filter   Filter
		excluded []dye.Dye
		kept     []dye.Dye
	}{
		{"name contains", ExcludeNameContains("Metallic"), []dye.Dye{gold}, []dye.Dye{darkRed, white}},
		{"name prefix", ExcludeNamePrefix("Dark"), []dye.Dye{darkRed}, []dye.Dye{redDark, gold}},
		{"acquisition", ExcludeAcquisition("Crafting"), []dye.Dye{gold, darkRed}, []dye.Dye{redDark, white}},
		{"tag", ExcludeTag("expensive"), []dye.Dye{white}, []dye.Dye{gold, darkRed}},
		{"ids", ExcludeIDs(2, 4), []dye.Dye{darkRed, white}, []dye.Dye{gold, redDark}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, d := range tt.excluded {
				if !tt.filter(d) {
					t.Errorf("%s should be excluded", d.Name)
				}
			}
			for _, d := range tt.kept {
				if tt.filter(d) {
					t.Errorf("%s should be kept", d.Name)
				}
			}
		})
	}
}

func TestEligible(t *testing.T) {
	d := dye.Dye{ID: 9, Name: "Pastel Blue"}

	if !Eligible(d, nil) {
		t.Error("no filters should keep every dye")
	}
	if !Eligible(d, []Filter{nil, ExcludeIDs(1)}) {
		t.Error("nil filters should be ignored")
	}
	if Eligible(d, []Filter{ExcludeIDs(1), ExcludeNameContains("Pastel")}) {
		t.Error("any matching filter should exclude the dye")
	}
}

func TestFilterConfigBuild(t *testing.T) {
	if got := (FilterConfig{}).Build(); len(got) != 0 {
		t.Errorf("empty config built %d filters", len(got))
	}

	cfg := FilterConfig{
		ExcludeMetallic:     true,
		ExcludePastel:       true,
		ExcludeDark:         true,
		ExcludeAcquisitions: []string{" Cosmic Exploration ", ""},
		ExcludeTags:         []string{"expensive"},
		ExcludeIDs:          []int{42},
	}
	filters := cfg.Build()
	if len(filters) != 6 {
		t.Fatalf("Build() returned %d filters, want 6", len(filters))
	}

	tests := []struct {
		dye  dye.Dye
		want bool
	}{
		{dye.Dye{ID: 1, Name: "Metallic Silver"}, false},
		{dye.Dye{ID: 2, Name: "Pastel Pink"}, false},
		{dye.Dye{ID: 3, Name: "Dark Blue"}, false},
		{dye.Dye{ID: 4, Name: "Cosmic Red", Acquisition: "Cosmic Exploration"}, false},
		{dye.Dye{ID: 5, Name: "Jet Black", Tags: []string{"expensive"}}, false},
		{dye.Dye{ID: 42, Name: "Snow White"}, false},
		{dye.Dye{ID: 6, Name: "Soot Black", Acquisition: "Dye Vendor"}, true},
	}
	for _, tt := range tests {
		if got := Eligible(tt.dye, filters); got != tt.want {
			t.Errorf("Eligible(%s) = %v, want %v", tt.dye.Name, got, tt.want)
		}
	}
}
