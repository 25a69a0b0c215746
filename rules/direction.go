package rules

import (
	"strings"

	"github.com/theoremus-urban-solutions/transit-arrivals/arrival"
)

// FilterByHeadsignDirection keeps records whose headsign contains token or
// one of aliases, case-insensitively. An empty token keeps everything.
func FilterByHeadsignDirection(records []arrival.Record, token string, aliases ...string) []arrival.Record {
	needles := directionNeedles(token, aliases)
	if len(needles) == 0 {
		return append([]arrival.Record(nil), records...)
	}

	out := make([]arrival.Record, 0, len(records))
	for _, r := range records {
		headsign := strings.ToLower(r.Headsign)
		for _, n := range needles {
			if strings.Contains(headsign, n) {
				out = append(out, r)
				break
			}
		}
	}
	return out
}

func directionNeedles(token string, aliases []string) []string {
	token = strings.ToLower(strings.TrimSpace(token))
	if token == "" {
		return nil
	}
	needles := []string{token}
	for _, a := range aliases {
		if a = strings.ToLower(strings.TrimSpace(a)); a != "" {
			needles = append(needles, a)
		}
	}
	return needles
}
