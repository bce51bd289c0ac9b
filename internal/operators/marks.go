package operators

import (
	"fmt"
	"log"

	"github.com/KirkDiggler/pet-battle-effects/internal/battle"
	"github.com/KirkDiggler/pet-battle-effects/internal/selector"
)

// MarkOptions are the optional arguments of AddMark
type MarkOptions struct {
	Stacks   selector.ValueSource
	Duration selector.ValueSource
}

// AddMark applies the base mark to every target pet
func AddMark(mark selector.ValueSource, opts MarkOptions) selector.Operator {
	return operate(TypeAddMark, compact(selector.Args{
		"mark":     mark,
		"stacks":   opts.Stacks,
		"duration": opts.Duration,
	}), func(ctx *battle.Context, target any, in selector.Resolved) error {
		pet, err := asPet(target)
		if err != nil {
			return err
		}
		if !pet.IsAlive() {
			return nil
		}

		raw, ok := in.First("mark")
		if !ok {
			return fmt.Errorf("missing mark")
		}
		base, ok := raw.(battle.BaseMark)
		if !ok {
			return fmt.Errorf("mark resolved to %T", raw)
		}

		_, err = pet.AddMark(ctx, base, battle.MarkOptions{
			Stacks:   in.Int("stacks", 1),
			Duration: in.Int("duration", 0),
		})
		return err
	})
}

// AddStacks adds value stacks to every target mark
func AddStacks(value selector.ValueSource) selector.Operator {
	return operate(TypeAddStacks, compact(selector.Args{"value": value}),
		func(_ *battle.Context, target any, in selector.Resolved) error {
			mark, err := asMark(target)
			if err != nil {
				return err
			}
			if !mark.IsActive() {
				return nil
			}
			mark.AddStack(in.Int("value", 1))
			return nil
		})
}

// ConsumeStacks removes value stacks from every target mark and destroys
// marks left without stacks.
func ConsumeStacks(value selector.ValueSource) selector.Operator {
	return operate(TypeConsumeStacks, compact(selector.Args{"value": value}),
		func(ctx *battle.Context, target any, in selector.Resolved) error {
			mark, err := asMark(target)
			if err != nil {
				return err
			}
			if !mark.IsActive() {
				return nil
			}
			if mark.ConsumeStack(in.Int("value", 1)) == 0 {
				mark.Destroy(ctx)
			}
			return nil
		})
}

// DestroyMark removes every target mark from its owner
func DestroyMark() selector.Operator {
	return operate(TypeDestroyMark, nil,
		func(ctx *battle.Context, target any, _ selector.Resolved) error {
			mark, err := asMark(target)
			if err != nil {
				return err
			}
			mark.Destroy(ctx)
			return nil
		})
}

// TransferMark moves every target mark to the first pet the to argument
// resolves to
func TransferMark(to selector.ValueSource) selector.Operator {
	return operate(TypeTransferMark, compact(selector.Args{"to": to}),
		func(ctx *battle.Context, target any, in selector.Resolved) error {
			mark, err := asMark(target)
			if err != nil {
				return err
			}
			raw, ok := in.First("to")
			if !ok {
				return fmt.Errorf("no pet to transfer to")
			}
			dest, err := asPet(raw)
			if err != nil {
				return err
			}
			if owner := mark.Owner(); owner != nil && owner.ID() == dest.ID() {
				return nil
			}

			log.Printf("[OPERATORS] Transferring %s to %s", mark.ID(), dest.ID())
			return mark.Transfer(ctx, dest)
		})
}
