// Package route normalizes route identifiers reported by the rail and bus
// feeds into one canonical token.
//
// Upstream spellings differ per source: the bus feed prefixes an agency
// ("MTA NYCT_B41"), select bus service appears as "B44+", "B44 SBS" or
// "B44-SBS", and rail feeds report diamond express runs as "6X".
package route

import "strings"

const sbsSuffix = "-SBS"

// Identity is a canonical route token. Spellings that canonicalize to the
// same token name the same route.
type Identity struct {
	Canonical string
}

// Normalize returns the Identity for raw.
func Normalize(raw string) Identity {
	return Identity{Canonical: canonicalize(raw)}
}

// Matches reports whether other names the same route.
func (id Identity) Matches(other string) bool {
	if id.Canonical == "" {
		return false
	}
	return canonicalize(other) == id.Canonical
}

// Upstream returns the spelling the bus feed uses in LineRef values.
func (id Identity) Upstream() string {
	if base, ok := strings.CutSuffix(id.Canonical, sbsSuffix); ok {
		return base + "+"
	}
	return id.Canonical
}

// LineRef joins an agency prefix such as "MTA NYCT_" with the upstream
// spelling.
func (id Identity) LineRef(agencyPrefix string) string {
	return agencyPrefix + id.Upstream()
}

func canonicalize(raw string) string {
	s := strings.TrimSpace(raw)
	if i := strings.LastIndex(s, "_"); i >= 0 {
		s = s[i+1:]
	}
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return ""
	}

	switch {
	case strings.HasSuffix(s, "+"):
		s = strings.TrimSuffix(s, "+") + sbsSuffix
	case strings.HasSuffix(s, " SBS"):
		s = strings.TrimSuffix(s, " SBS") + sbsSuffix
	case strings.HasSuffix(s, "SBS") && !strings.HasSuffix(s, sbsSuffix):
		s = strings.TrimSuffix(s, "SBS") + sbsSuffix
	}

	// 6X, 7X and FX are express runs of 6, 7 and F.
	if len(s) == 2 && s[1] == 'X' {
		s = s[:1]
	}
	return s
}
