package marks

import (
	"fmt"
	"log"
	"sync"

	"github.com/KirkDiggler/pet-battle-effects/internal/battle"
	"github.com/KirkDiggler/pet-battle-effects/internal/effects"
	"github.com/KirkDiggler/pet-battle-effects/internal/events"
	"github.com/KirkDiggler/pet-battle-effects/internal/uuid"
)

// Manager owns the mark instances on one pet
type Manager struct {
	owner battle.Pet
	ids   uuid.Generator
	bus   *events.Bus
	marks []*Instance
	mu    sync.RWMutex
}

// NewManager creates a mark manager for owner. Instance ids come from ids.
func NewManager(owner battle.Pet, ids uuid.Generator) *Manager {
	if ids == nil {
		ids = uuid.NewGoogleUUIDGenerator()
	}
	return &Manager{
		owner: owner,
		ids:   ids,
	}
}

// WithBus subscribes the effects of every instance to bus while it is active
func (m *Manager) WithBus(bus *events.Bus) *Manager {
	m.bus = bus
	return m
}

// Add applies base to the owner following the base's stack strategy and
// returns the instance that now carries it. A newly created instance runs
// its OnMarkCreated effects; an existing one that gained stacks runs OnStack.
func (m *Manager) Add(ctx *battle.Context, base battle.BaseMark, opts battle.MarkOptions) (*Instance, error) {
	def, ok := base.(*Base)
	if !ok {
		return nil, fmt.Errorf("mark %s is not a loaded mark definition", base.ID())
	}

	stacks := opts.Stacks
	if stacks <= 0 {
		stacks = 1
	}
	duration := opts.Duration
	if duration == 0 {
		duration = def.Duration
	}

	if existing := m.Find(def.BaseID); existing != nil {
		switch def.Strategy {
		case StackNone:
			return existing, nil
		case StackReplace:
			existing.Destroy(ctx)
		case StackExtend:
			existing.setDuration(existing.Duration() + duration)
			return existing, nil
		case StackMax:
			existing.setStacks(max(existing.Stacks(), stacks))
			existing.setDuration(max(existing.Duration(), duration))
			return existing, nil
		default:
			existing.AddStack(stacks)
			existing.setDuration(duration)
			if ctx != nil {
				existing.run(ctx, battle.OnStack)
			}
			return existing, nil
		}
	}

	inst := &Instance{
		id:       m.ids.New(),
		base:     def,
		manager:  m,
		stacks:   def.clampStacks(stacks),
		duration: duration,
		active:   true,
	}

	m.mu.Lock()
	m.marks = append(m.marks, inst)
	m.mu.Unlock()

	if m.bus != nil {
		for _, e := range def.Effects {
			l := &listener{inst: inst, effect: e}
			for _, trigger := range e.Triggers {
				m.bus.Subscribe(trigger, l)
			}
		}
	}

	log.Printf("[MARKS] Added %s (%s) x%d for %d turns", def.BaseID, inst.id, inst.stacks, inst.duration)

	if ctx != nil {
		created := *ctx
		created.AddedMark = inst
		inst.run(&created, battle.OnMarkCreated)
	}
	return inst, nil
}

// Find returns the active instance of a base mark, or nil
func (m *Manager) Find(baseID string) *Instance {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, inst := range m.marks {
		if inst.base.BaseID == baseID && inst.IsActive() {
			return inst
		}
	}
	return nil
}

// Get returns the instance with the given instance id, or nil
func (m *Manager) Get(id string) *Instance {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, inst := range m.marks {
		if inst.id == id {
			return inst
		}
	}
	return nil
}

// Instances returns the active instances in application order
func (m *Manager) Instances() []*Instance {
	m.mu.RLock()
	defer m.mu.RUnlock()

	active := make([]*Instance, 0, len(m.marks))
	for _, inst := range m.marks {
		if inst.IsActive() {
			active = append(active, inst)
		}
	}
	return active
}

// Marks returns the active instances as battle marks
func (m *Manager) Marks() []battle.Mark {
	instances := m.Instances()
	out := make([]battle.Mark, len(instances))
	for i, inst := range instances {
		out[i] = inst
	}
	return out
}

// Dispatch runs the effects of every active instance that fire on trigger
// and returns how many ran.
func (m *Manager) Dispatch(ctx *battle.Context, trigger battle.Trigger) int {
	ran := 0
	for _, inst := range m.Instances() {
		ran += inst.run(ctx, trigger)
	}
	return ran
}

// Tick counts every timed instance down by one turn and destroys the ones
// that expire.
func (m *Manager) Tick(ctx *battle.Context) []*Instance {
	expired := []*Instance{}
	for _, inst := range m.Instances() {
		if inst.tick() {
			expired = append(expired, inst)
		}
	}
	for _, inst := range expired {
		inst.Destroy(ctx)
	}
	return expired
}

// Clear destroys every instance without running effects
func (m *Manager) Clear() {
	for _, inst := range m.Instances() {
		inst.Destroy(nil)
	}
}

func (m *Manager) remove(inst *Instance) {
	m.mu.Lock()
	for idx, existing := range m.marks {
		if existing == inst {
			m.marks = append(m.marks[:idx:idx], m.marks[idx+1:]...)
			break
		}
	}
	m.mu.Unlock()

	if m.bus != nil {
		for _, e := range inst.base.Effects {
			m.bus.UnsubscribeAll((&listener{inst: inst, effect: e}).ID())
		}
	}
}

// listener puts one instance effect on a bus, keeping stack consumption
type listener struct {
	inst   *Instance
	effect *effects.Effect
}

func (l *listener) ID() string    { return l.inst.id + "/" + l.effect.ID }
func (l *listener) Priority() int { return l.effect.Priority }

func (l *listener) HandleTrigger(ctx *battle.Context) error {
	_, err := l.inst.execute(ctx.Bind(l.inst.manager.owner, l.inst), l.effect)
	return err
}
