package marks

import (
	"fmt"

	"github.com/KirkDiggler/pet-battle-effects/internal/effects"
)

// StackStrategy decides what happens when a mark is applied to a pet that
// already carries an active instance of the same base mark
type StackStrategy string

const (
	StackAdd     StackStrategy = "stack"   // add stacks, refresh duration
	StackReplace StackStrategy = "replace" // destroy the old instance, create a new one
	StackExtend  StackStrategy = "extend"  // add the new duration to the old one
	StackMax     StackStrategy = "max"     // keep the larger stacks and duration
	StackNone    StackStrategy = "none"    // ignore the new application
)

// ParseStackStrategy converts an authored string into a StackStrategy
func ParseStackStrategy(s string) (StackStrategy, error) {
	switch strategy := StackStrategy(s); strategy {
	case StackAdd, StackReplace, StackExtend, StackMax, StackNone:
		return strategy, nil
	case "":
		return StackAdd, nil
	}
	return "", fmt.Errorf("unknown stack strategy %q", s)
}

// Base is a mark definition loaded with content. Instances reference the
// base's effects rather than copying them.
type Base struct {
	BaseID    string
	BaseName  string
	MaxStacks int
	// Duration in turns; zero or less never expires
	Duration int
	Strategy StackStrategy
	TagList  []string
	Effects  []*effects.Effect
}

// ID implements battle.Entity
func (b *Base) ID() string { return b.BaseID }

// Name implements battle.BaseMark
func (b *Base) Name() string { return b.BaseName }

// Tags returns the base tags
func (b *Base) Tags() []string { return b.TagList }

// Prop implements battle.PropReader
func (b *Base) Prop(name string) (any, bool) {
	switch name {
	case "id":
		return b.BaseID, true
	case "name":
		return b.BaseName, true
	case "maxStacks":
		return b.MaxStacks, true
	case "duration":
		return b.Duration, true
	case "tags":
		return b.TagList, true
	}
	return nil, false
}

func (b *Base) clampStacks(n int) int {
	if n < 0 {
		return 0
	}
	if b.MaxStacks > 0 && n > b.MaxStacks {
		return b.MaxStacks
	}
	return n
}
