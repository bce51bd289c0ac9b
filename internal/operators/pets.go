package operators

import (
	"fmt"

	"github.com/KirkDiggler/pet-battle-effects/internal/battle"
	"github.com/KirkDiggler/pet-battle-effects/internal/selector"
)

// DamageOptions are the optional arguments of DealDamage
type DamageOptions struct {
	Category     selector.ValueSource
	IgnoreShield selector.ValueSource
}

// DealDamage makes every target pet take value damage from the effect owner
func DealDamage(value selector.ValueSource, opts DamageOptions) selector.Operator {
	return operate(TypeDealDamage, compact(selector.Args{
		"value":        value,
		"category":     opts.Category,
		"ignoreShield": opts.IgnoreShield,
	}), func(ctx *battle.Context, target any, in selector.Resolved) error {
		pet, err := asPet(target)
		if err != nil {
			return err
		}
		if !pet.IsAlive() {
			return nil
		}
		pet.Damage(ctx, battle.DamageRequest{
			Source:       ctx.Self(),
			Amount:       max(0, in.Int("value", 0)),
			Category:     in.String("category", "effect"),
			IgnoreShield: in.Bool("ignoreShield", false),
		})
		return nil
	})
}

// Heal restores value hp to every living target pet
func Heal(value selector.ValueSource) selector.Operator {
	return operate(TypeHeal, compact(selector.Args{"value": value}),
		func(ctx *battle.Context, target any, in selector.Resolved) error {
			pet, err := asPet(target)
			if err != nil {
				return err
			}
			if !pet.IsAlive() {
				return nil
			}
			pet.Heal(ctx, battle.HealRequest{
				Source: ctx.Self(),
				Amount: max(0, in.Int("value", 0)),
			})
			return nil
		})
}

// ModifyStat moves the stat stage of every target pet by delta
func ModifyStat(stat, delta selector.ValueSource) selector.Operator {
	return operate(TypeModifyStat, compact(selector.Args{"stat": stat, "delta": delta}),
		func(_ *battle.Context, target any, in selector.Resolved) error {
			pet, err := asPet(target)
			if err != nil {
				return err
			}
			s, err := parseStat(in, "stat")
			if err != nil {
				return err
			}
			pet.AddStatStage(s, in.Int("delta", 0))
			return nil
		})
}

// ClearStatStage resets the named stat stages of every target pet. With no
// stat argument every stage is cleared.
func ClearStatStage(stat selector.ValueSource) selector.Operator {
	return operate(TypeClearStatStage, compact(selector.Args{"stat": stat}),
		func(_ *battle.Context, target any, in selector.Resolved) error {
			pet, err := asPet(target)
			if err != nil {
				return err
			}

			stats := battle.Stats
			if in.Has("stat") {
				stats = make([]battle.Stat, 0, len(in.Values("stat")))
				for _, v := range in.Values("stat") {
					name, ok := v.(string)
					if !ok {
						return fmt.Errorf("stat must be a stat name, got %T", v)
					}
					s, err := battle.ParseStat(name)
					if err != nil {
						return err
					}
					stats = append(stats, s)
				}
			}

			for _, s := range stats {
				pet.ClearStatStage(s)
			}
			return nil
		})
}

// AddRage adds value rage to every target player. Pets resolve to their owner.
func AddRage(value selector.ValueSource) selector.Operator {
	return operate(TypeAddRage, compact(selector.Args{"value": value}),
		func(_ *battle.Context, target any, in selector.Resolved) error {
			player, err := asPlayer(target)
			if err != nil {
				return err
			}
			player.AddRage(in.Int("value", 0))
			return nil
		})
}

// Transform turns every target pet into species
func Transform(species selector.ValueSource) selector.Operator {
	return operate(TypeTransform, compact(selector.Args{"species": species}),
		func(ctx *battle.Context, target any, in selector.Resolved) error {
			pet, err := asPet(target)
			if err != nil {
				return err
			}
			raw, ok := in.First("species")
			if !ok {
				return fmt.Errorf("missing species")
			}
			sp, ok := raw.(battle.Species)
			if !ok {
				return fmt.Errorf("species resolved to %T", raw)
			}
			return pet.Transform(ctx, sp)
		})
}
