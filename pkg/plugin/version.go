package plugin

import (
	"fmt"
	"strconv"
	"strings"
)

// Version represents a parsed protocol version.
type Version struct {
	Major int
	Minor int
	Patch int
}

// ParseVersion parses a version string in "MAJOR.MINOR.PATCH" format.
func ParseVersion(version string) (Version, error) {
	parts := strings.Split(strings.TrimPrefix(version, "v"), ".")
	if len(parts) != 3 {
		return Version{}, fmt.Errorf("invalid version format: %s (expected MAJOR.MINOR.PATCH)", version)
	}

	var nums [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return Version{}, fmt.Errorf("invalid version component %q in %s", p, version)
		}
		nums[i] = n
	}

	return Version{Major: nums[0], Minor: nums[1], Patch: nums[2]}, nil
}

// String returns the string representation of the version.
func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// less reports whether v sorts before o.
func (v Version) less(o Version) bool {
	if v.Major != o.Major {
		return v.Major < o.Major
	}
	if v.Minor != o.Minor {
		return v.Minor < o.Minor
	}
	return v.Patch < o.Patch
}

// IsCompatible checks whether a plugin speaking pluginVersion can be used.
// Rules:
// - Major version must match exactly (breaking changes).
// - The version must not be older than MinCompatibleVersion.
// - Newer minor and patch versions are accepted.
func IsCompatible(pluginVersion string) error {
	pv, err := ParseVersion(pluginVersion)
	if err != nil {
		return fmt.Errorf("failed to parse plugin version: %w", err)
	}

	current := CurrentVersion()
	if pv.Major != current.Major {
		return fmt.Errorf("incompatible major version: plugin is %s, dyematch requires %d.x.x", pv, current.Major)
	}

	minVersion, err := ParseVersion(MinCompatibleVersion)
	if err != nil {
		return fmt.Errorf("failed to parse minimum compatible version: %w", err)
	}
	if pv.less(minVersion) {
		return fmt.Errorf("plugin version %s is too old, minimum required is %s", pv, MinCompatibleVersion)
	}

	return nil
}

// CurrentVersion returns ProtocolVersion parsed.
func CurrentVersion() Version {
	v, err := ParseVersion(ProtocolVersion)
	if err != nil {
		panic(fmt.Sprintf("invalid ProtocolVersion constant: %v", err))
	}
	return v
}
