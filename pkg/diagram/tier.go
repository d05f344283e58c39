package diagram

import "fmt"

// Tier classifies a node into one of the four causal layers. Tiers are
// ordered: leaf < cause < intermediate < effect, and every layout
// strategy places lower-ordinal tiers strictly above higher ones.
type Tier string

const (
	// TierLeaf holds background factors that feed causes.
	TierLeaf Tier = "leaf"
	// TierCause holds primary causes.
	TierCause Tier = "cause"
	// TierIntermediate holds mechanisms linking causes to effects.
	TierIntermediate Tier = "intermediate"
	// TierEffect holds terminal outcomes.
	TierEffect Tier = "effect"
)

// TierOrder lists all tiers in their vertical drawing order, top to bottom.
var TierOrder = []Tier{TierLeaf, TierCause, TierIntermediate, TierEffect}

// Ordinal returns the tier's position in TierOrder, or -1 for an
// unknown tier. Use it for ordering comparisons; tiers themselves are
// string-typed so documents serialize cleanly.
func (t Tier) Ordinal() int {
	for i, candidate := range TierOrder {
		if t == candidate {
			return i
		}
	}
	return -1
}

// Valid reports whether the tier is one of the four known values.
func (t Tier) Valid() bool { return t.Ordinal() >= 0 }

// ParseTier converts a string to a Tier, rejecting unknown values.
func ParseTier(s string) (Tier, error) {
	t := Tier(s)
	if !t.Valid() {
		return "", fmt.Errorf("unknown tier %q (must be one of: leaf, cause, intermediate, effect)", s)
	}
	return t, nil
}

// Strength grades how firmly an edge's source drives its target.
type Strength string

const (
	StrengthWeak   Strength = "weak"
	StrengthMedium Strength = "medium"
	StrengthStrong Strength = "strong"
)

// DefaultStrength is applied to edges that omit a strength.
const DefaultStrength = StrengthMedium

// Weight returns the numeric weight used by crossing minimization and
// influence scoring: weak=1, medium=2, strong=3. Unknown strengths
// weigh like medium so a sloppy document still lays out.
func (s Strength) Weight() int {
	switch s {
	case StrengthWeak:
		return 1
	case StrengthStrong:
		return 3
	default:
		return 2
	}
}

// Valid reports whether the strength is a known value or empty
// (empty means "use the default").
func (s Strength) Valid() bool {
	switch s {
	case "", StrengthWeak, StrengthMedium, StrengthStrong:
		return true
	}
	return false
}

// EffectKind is the valence of an edge: whether more of the source
// means more, less, or an ambiguous change of the target.
type EffectKind string

const (
	EffectIncreases EffectKind = "increases"
	EffectDecreases EffectKind = "decreases"
	EffectMixed     EffectKind = "mixed"
)

// DefaultEffect is applied to edges that omit an effect kind.
const DefaultEffect = EffectIncreases

// Valid reports whether the effect kind is a known value or empty.
func (e EffectKind) Valid() bool {
	switch e {
	case "", EffectIncreases, EffectDecreases, EffectMixed:
		return true
	}
	return false
}
