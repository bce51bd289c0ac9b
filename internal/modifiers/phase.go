package modifiers

import "fmt"

// PhaseType names a kind of battle phase a modifier can be scoped to
type PhaseType string

const (
	PhaseTurn   PhaseType = "turn"
	PhaseSkill  PhaseType = "skill"
	PhaseDamage PhaseType = "damage"
	PhaseHeal   PhaseType = "heal"
	PhaseEffect PhaseType = "effect"
	PhaseSwitch PhaseType = "switch"
	PhaseMark   PhaseType = "mark"
	PhaseRage   PhaseType = "rage"
	PhaseBattle PhaseType = "battle"
)

// ParsePhaseType converts an authored string into a PhaseType
func ParsePhaseType(s string) (PhaseType, error) {
	switch p := PhaseType(s); p {
	case PhaseTurn, PhaseSkill, PhaseDamage, PhaseHeal, PhaseEffect,
		PhaseSwitch, PhaseMark, PhaseRage, PhaseBattle:
		return p, nil
	}
	return "", fmt.Errorf("unknown phase type %q", s)
}

// ScopeMode selects which instances of a phase type a modifier is live for
type ScopeMode string

const (
	// ScopeCurrent limits the modifier to the phase instance it was registered in
	ScopeCurrent ScopeMode = "current"
	// ScopeAny keeps the modifier live whenever a phase of the type is running
	ScopeAny ScopeMode = "any"
	// ScopeNext delays the modifier until a later instance of the phase type
	ScopeNext ScopeMode = "next"
)

// ParseScopeMode converts an authored string into a ScopeMode
func ParseScopeMode(s string) (ScopeMode, error) {
	switch m := ScopeMode(s); m {
	case ScopeCurrent, ScopeAny, ScopeNext:
		return m, nil
	case "":
		return ScopeCurrent, nil
	}
	return "", fmt.Errorf("unknown phase scope %q", s)
}

// Phase identifies one running phase instance
type Phase struct {
	Type PhaseType
	ID   string
}

// PhaseScope restricts a modifier to a phase type, mode and optional instance
type PhaseScope struct {
	Type    PhaseType
	Mode    ScopeMode
	PhaseID string
}

// Bind pins an unbound current/next scope to the innermost running phase of
// its type. Modifiers registered mid-phase call this so "current" means the
// instance they were created in.
func (s PhaseScope) Bind(active []Phase) PhaseScope {
	if s.PhaseID != "" || s.Mode == ScopeAny {
		return s
	}
	for i := len(active) - 1; i >= 0; i-- {
		if active[i].Type == s.Type {
			s.PhaseID = active[i].ID
			break
		}
	}
	return s
}

// IsActiveFor reports whether the scope matches the running phase chain.
// Expiry is the battle engine's job; the stack only asks this question.
func (s *PhaseScope) IsActiveFor(active []Phase) bool {
	if s == nil {
		return true
	}

	for _, phase := range active {
		if phase.Type != s.Type {
			continue
		}
		switch s.Mode {
		case ScopeAny:
			return true
		case ScopeNext:
			if s.PhaseID == "" || phase.ID != s.PhaseID {
				return true
			}
		default:
			if s.PhaseID == "" || phase.ID == s.PhaseID {
				return true
			}
		}
	}
	return false
}

// String renders the scope for logs
func (s *PhaseScope) String() string {
	if s == nil {
		return "unscoped"
	}
	if s.PhaseID == "" {
		return fmt.Sprintf("%s:%s", s.Type, s.Mode)
	}
	return fmt.Sprintf("%s:%s:%s", s.Type, s.Mode, s.PhaseID)
}
