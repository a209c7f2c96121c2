package updater

import (
	"fmt"
	"strconv"
	"strings"
)

// Semver is a release version. Prerelease and build metadata suffixes are
// accepted on parse and discarded; releases compare on the numeric triple.
type Semver struct {
	Major int
	Minor int
	Patch int
}

// ParseSemver parses "1.2.3", "v1.2.3", and suffixed forms like
// "1.2.3-rc.1" or "1.2.3+build".
func ParseSemver(s string) (Semver, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "v")
	if i := strings.IndexAny(s, "-+"); i >= 0 {
		s = s[:i]
	}
	parts := strings.Split(s, ".")
	if len(parts) != 3 {
		return Semver{}, fmt.Errorf("invalid semver: %q", s)
	}

	var nums [3]int
	for i, label := range [...]string{"major", "minor", "patch"} {
		n, err := strconv.Atoi(parts[i])
		if err != nil || n < 0 {
			return Semver{}, fmt.Errorf("invalid %s version: %q", label, parts[i])
		}
		nums[i] = n
	}
	return Semver{Major: nums[0], Minor: nums[1], Patch: nums[2]}, nil
}

// String returns the version as "major.minor.patch".
func (v Semver) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// Compare returns -1, 0, or 1 as v sorts before, equal to, or after other.
func (v Semver) Compare(other Semver) int {
	diffs := [...]int{v.Major - other.Major, v.Minor - other.Minor, v.Patch - other.Patch}
	for _, d := range diffs {
		if d < 0 {
			return -1
		}
		if d > 0 {
			return 1
		}
	}
	return 0
}
