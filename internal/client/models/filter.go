package models

import (
	"slices"
	"strings"
)

// DirectoryFilter narrows an already fetched directory listing.
// A zero Year matches every member.
type DirectoryFilter struct {
	Search string
	Year   int
}

// Apply keeps members whose first name, last name or headline contains the
// search text (case-insensitively) and whose passout year matches.
// The input slice is not modified.
func (f DirectoryFilter) Apply(members []Identity) []Identity {
	needle := strings.ToLower(strings.TrimSpace(f.Search))
	out := make([]Identity, 0, len(members))
	for _, m := range members {
		if f.Year != 0 && m.PassoutYear != f.Year {
			continue
		}
		if needle != "" && !matches(m, needle) {
			continue
		}
		out = append(out, m)
	}
	return out
}

func matches(m Identity, needle string) bool {
	for _, s := range []string{m.FirstName, m.LastName, m.Headline} {
		if strings.Contains(strings.ToLower(s), needle) {
			return true
		}
	}
	return false
}

// Years lists the distinct passout years present in members, newest first.
func Years(members []Identity) []int {
	seen := make(map[int]struct{})
	var years []int
	for _, m := range members {
		if m.PassoutYear == 0 {
			continue
		}
		if _, ok := seen[m.PassoutYear]; ok {
			continue
		}
		seen[m.PassoutYear] = struct{}{}
		years = append(years, m.PassoutYear)
	}
	slices.Sort(years)
	slices.Reverse(years)
	return years
}
