package aggregator

import (
	"bytes"
	"strings"
	"testing"

	"github.com/theoremus-urban-solutions/transit-arrivals/internal"
)

func TestWarningAggregator_Consolidates(t *testing.T) {
	w := NewWarningAggregator()
	for _, route := range []string{"B", "Q", "B", "Q"} {
		w.Add(WarningRailFetchFailed, "churchAve", route)
	}
	w.Add(WarningBusDecodeFailed, "b41", "MTA_303241")

	if w.Len() != 2 {
		t.Fatalf("expected 2 tokens, got %d", w.Len())
	}
	tokens := w.Tokens()
	if tokens[0] != "bus_decode_failed:b41" || tokens[1] != "rail_fetch_failed:churchAve" {
		t.Errorf("unexpected tokens %v", tokens)
	}

	var buf bytes.Buffer
	w.LogAll(internal.NewLogger(internal.LoggerSetOutput(&buf), internal.LoggerSetFlags(0)))

	out := buf.String()
	if strings.Count(out, "\n") != 2 {
		t.Errorf("expected one line per token, got:\n%s", out)
	}
	if !strings.Contains(out, "(4 occurrences)") || !strings.Contains(out, "Examples: B, Q, B\n") {
		t.Errorf("rail line should carry the count and at most 3 examples, got:\n%s", out)
	}

	t.Logf("✓ Consolidated output:\n%s", out)
}

func TestWarningAggregator_EmptyTokensNotNil(t *testing.T) {
	w := NewWarningAggregator()
	if tokens := w.Tokens(); tokens == nil || len(tokens) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", tokens)
	}
}
