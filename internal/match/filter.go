package match

import (
	"strings"

	"github.com/jmylchreest/dyematch/internal/dye"
)

// Filter reports whether a dye should be excluded from matching.
// Filters are pure: they depend only on the dye, never on earlier matches.
type Filter func(dye.Dye) bool

// Eligible reports whether d survives every filter.
func Eligible(d dye.Dye, filters []Filter) bool {
	for _, f := range filters {
		if f != nil && f(d) {
			return false
		}
	}
	return true
}

// ExcludeNameContains excludes dyes whose name contains substr.
func ExcludeNameContains(substr string) Filter {
	return func(d dye.Dye) bool {
		return strings.Contains(d.Name, substr)
	}
}

// ExcludeNamePrefix excludes dyes whose name starts with prefix.
func ExcludeNamePrefix(prefix string) Filter {
	return func(d dye.Dye) bool {
		return strings.HasPrefix(d.Name, prefix)
	}
}

// ExcludeAcquisition excludes dyes obtained from the given source.
func ExcludeAcquisition(source string) Filter {
	return func(d dye.Dye) bool {
		return d.Acquisition == source
	}
}

// ExcludeTag excludes dyes carrying tag.
func ExcludeTag(tag string) Filter {
	return func(d dye.Dye) bool {
		return d.HasTag(tag)
	}
}

// ExcludeIDs excludes the dyes with the given ids.
func ExcludeIDs(ids ...int) Filter {
	set := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return func(d dye.Dye) bool {
		_, ok := set[d.ID]
		return ok
	}
}

// FilterConfig holds the user-facing exclusion switches.
type FilterConfig struct {
	ExcludeMetallic     bool
	ExcludePastel       bool
	ExcludeDark         bool
	ExcludeAcquisitions []string
	ExcludeTags         []string
	ExcludeIDs          []int
}

// Build resolves the configuration into predicates. It is called once per
// configuration, not once per match.
func (c FilterConfig) Build() []Filter {
	var filters []Filter
	if c.ExcludeMetallic {
		filters = append(filters, ExcludeNameContains("Metallic"))
	}
	if c.ExcludePastel {
		filters = append(filters, ExcludeNameContains("Pastel"))
	}
	if c.ExcludeDark {
		filters = append(filters, ExcludeNamePrefix("Dark"))
	}
	for _, source := range c.ExcludeAcquisitions {
		if source = strings.TrimSpace(source); source != "" {
			filters = append(filters, ExcludeAcquisition(source))
		}
	}
	for _, tag := range c.ExcludeTags {
		if tag = strings.TrimSpace(tag); tag != "" {
			filters = append(filters, ExcludeTag(tag))
		}
	}
	if len(c.ExcludeIDs) > 0 {
		filters = append(filters, ExcludeIDs(c.ExcludeIDs...))
	}
	return filters
}
