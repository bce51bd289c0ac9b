package modifiers

import "fmt"

// Kind determines how a modifier combines with the base value
type Kind string

const (
	KindPercent  Kind = "percent"
	KindDelta    Kind = "delta"
	KindOverride Kind = "override"
	KindClampMin Kind = "clampMin"
	KindClampMax Kind = "clampMax"
)

// Valid reports whether the kind is one of the known modifier kinds
func (k Kind) Valid() bool {
	switch k {
	case KindPercent, KindDelta, KindOverride, KindClampMin, KindClampMax:
		return true
	}
	return false
}

// ParseKind converts an authored string into a Kind
func ParseKind(s string) (Kind, error) {
	k := Kind(s)
	if !k.Valid() {
		return "", fmt.Errorf("unknown modifier kind %q", s)
	}
	return k, nil
}

// SourceType defines where a modifier comes from
type SourceType string

const (
	SourceTypeMark   SourceType = "mark"
	SourceTypeSkill  SourceType = "skill"
	SourceTypeEffect SourceType = "effect"
	SourceTypeConfig SourceType = "config"
)

// Source describes where a modifier originates
type Source struct {
	Type SourceType
	Name string
	ID   string
}

// Priority ranges for consistent modifier ordering (higher applies first)
const (
	PriorityLow     = -100
	PriorityDefault = 0
	PriorityHigh    = 100
)

// Value is read every time the owning stat is computed. Dynamic modifiers
// supply a FuncValue that derives its result from live battle state.
type Value interface {
	Current() float64
}

// StaticValue is a value resolved once at registration
type StaticValue float64

// Current implements Value
func (v StaticValue) Current() float64 { return float64(v) }

// FuncValue is a pull-based value re-derived on every read
type FuncValue func() float64

// Current implements Value
func (f FuncValue) Current() float64 {
	if f == nil {
		return 0
	}
	return f()
}

// Modifier is a single adjustment registered against a stat or config key
type Modifier struct {
	ID       string
	Kind     Kind
	Value    Value
	Priority int
	Scope    *PhaseScope
	Source   Source
}

// IsDynamic reports whether the modifier tracks an upstream value
func (m *Modifier) IsDynamic() bool {
	_, ok := m.Value.(FuncValue)
	return ok
}

// current reads the modifier value, treating a missing value as zero
func (m *Modifier) current() float64 {
	if m.Value == nil {
		return 0
	}
	return m.Value.Current()
}
