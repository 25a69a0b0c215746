package aggregator

import (
	"fmt"
	"sort"
	"strings"

	"github.com/theoremus-urban-solutions/transit-arrivals/internal"
)

// Warning type constants
const (
	// Rail warnings
	WarningRailFetchFailed  = "rail_fetch_failed"
	WarningRailDecodeFailed = "rail_decode_failed"

	// Bus warnings
	WarningBusFetchFailed   = "bus_fetch_failed"
	WarningBusDecodeFailed  = "bus_decode_failed"
	WarningBusUpstreamError = "bus_upstream_error"
)

const maxExamples = 3

// warningInfo holds aggregated information about one warning token
type warningInfo struct {
	warningType string
	group       string
	count       int
	examples    []string
}

// WarningAggregator collects per-target failures of one request and
// outputs consolidated summaries. It is not safe for concurrent use.
type WarningAggregator struct {
	warnings map[string]*warningInfo
}

// NewWarningAggregator creates a new warning aggregator
func NewWarningAggregator() *WarningAggregator {
	return &WarningAggregator{
		warnings: make(map[string]*warningInfo),
	}
}

// Token joins a warning type and the group it affected.
func Token(warningType, group string) string {
	return warningType + ":" + group
}

// Add records a warning occurrence for group with an example identifier
// such as a route or stop ID.
func (w *WarningAggregator) Add(warningType, group, exampleID string) {
	token := Token(warningType, group)
	if w.warnings[token] == nil {
		w.warnings[token] = &warningInfo{
			warningType: warningType,
			group:       group,
			examples:    make([]string, 0, maxExamples),
		}
	}

	info := w.warnings[token]
	info.count++

	if len(info.examples) < maxExamples {
		info.examples = append(info.examples, exampleID)
	}
}

// Len returns the number of distinct tokens.
func (w *WarningAggregator) Len() int {
	return len(w.warnings)
}

// Tokens returns the distinct warning tokens in sorted order. The result
// is never nil.
func (w *WarningAggregator) Tokens() []string {
	tokens := make([]string, 0, len(w.warnings))
	for token := range w.warnings {
		tokens = append(tokens, token)
	}
	sort.Strings(tokens)
	return tokens
}

// LogAll outputs all collected warnings in consolidated format
func (w *WarningAggregator) LogAll(logger *internal.Logger) {
	for _, token := range w.Tokens() {
		logger.Printf("%s", w.formatWarningMessage(w.warnings[token]))
	}
}

// formatWarningMessage creates a human-readable warning message
func (w *WarningAggregator) formatWarningMessage(info *warningInfo) string {
	var description string

	switch info.warningType {
	case WarningRailFetchFailed:
		description = "rail feeds that could not be fetched"
	case WarningRailDecodeFailed:
		description = "rail feeds that could not be decoded"
	case WarningBusFetchFailed:
		description = "bus stops that could not be fetched"
	case WarningBusDecodeFailed:
		description = "bus stop responses that could not be decoded"
	case WarningBusUpstreamError:
		description = "bus stop responses carrying an upstream error"
	default:
		description = "unknown issue"
	}

	return fmt.Sprintf("Group %s has %s (%d occurrences). Returning it empty. Examples: %s",
		info.group, description, info.count, strings.Join(info.examples, ", "))
}
