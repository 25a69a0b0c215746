package rules

import (
	"fmt"

	"github.com/theoremus-urban-solutions/transit-arrivals/arrival"
)

// PolicyMode selects how a stop's variant override is applied.
type PolicyMode string

const (
	// PolicyNone keeps the variant reported upstream.
	PolicyNone PolicyMode = ""
	// PolicyFilter drops records whose variant differs from the policy's.
	PolicyFilter PolicyMode = "filter"
	// PolicyRelabel keeps every record and overwrites its variant.
	PolicyRelabel PolicyMode = "relabel"
)

// VariantPolicy is the override configured for one physical stop.
type VariantPolicy struct {
	Mode    PolicyMode
	Variant arrival.ServiceVariant
}

// Resolve maps a raw variant to the final one. keep is false when the
// record must be dropped.
func (p VariantPolicy) Resolve(raw arrival.ServiceVariant) (final arrival.ServiceVariant, keep bool) {
	switch p.Mode {
	case PolicyFilter:
		return raw, raw == p.Variant
	case PolicyRelabel:
		return p.Variant, true
	default:
		return raw, true
	}
}

// Validate rejects a policy that names a mode without a variant.
func (p VariantPolicy) Validate() error {
	switch p.Mode {
	case PolicyNone:
		return nil
	case PolicyFilter, PolicyRelabel:
		if p.Variant != arrival.VariantLocal && p.Variant != arrival.VariantLimited {
			return fmt.Errorf("variant policy %q needs variant local or limited, got %q", p.Mode, p.Variant)
		}
		return nil
	default:
		return fmt.Errorf("unknown variant policy mode %q", p.Mode)
	}
}

// VariantPolicies maps station labels to their policy.
type VariantPolicies map[string]VariantPolicy

// Resolve applies the policy configured for station.
func (ps VariantPolicies) Resolve(station string, raw arrival.ServiceVariant) (arrival.ServiceVariant, bool) {
	return ps[station].Resolve(raw)
}

// Apply runs every record through the policy of its Station.
func (ps VariantPolicies) Apply(records []arrival.Record) []arrival.Record {
	out := make([]arrival.Record, 0, len(records))
	for _, r := range records {
		v, keep := ps.Resolve(r.Station, r.Variant)
		if !keep {
			continue
		}
		r.Variant = v
		out = append(out, r)
	}
	return out
}

// ApplyVariantPolicy runs records through a single policy.
func ApplyVariantPolicy(records []arrival.Record, p VariantPolicy) []arrival.Record {
	out := make([]arrival.Record, 0, len(records))
	for _, r := range records {
		v, keep := p.Resolve(r.Variant)
		if !keep {
			continue
		}
		r.Variant = v
		out = append(out, r)
	}
	return out
}
