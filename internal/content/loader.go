// Package content loads authored effect packs from disk and compiles them
// into a catalog.
//
// A pack is a directory of .json, .yaml and .yml files. Each file holds one
// effect, an array of effects, or an object with effects and marks lists.
// An optional engine.yaml at the pack root carries config overrides that are
// applied once everything has compiled.
package content

import (
	"context"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"sync"

	"github.com/KirkDiggler/pet-battle-effects/internal/battle"
	"github.com/KirkDiggler/pet-battle-effects/internal/compiler"
	"github.com/KirkDiggler/pet-battle-effects/internal/dsl"
	"github.com/KirkDiggler/pet-battle-effects/internal/effects"
	battleerr "github.com/KirkDiggler/pet-battle-effects/internal/errors"
	"github.com/KirkDiggler/pet-battle-effects/internal/registry"
	"golang.org/x/sync/errgroup"
)

// LoaderConfig holds configuration for a Loader
type LoaderConfig struct {
	// Registry receives every compiled tunable. A fresh one is created when nil.
	Registry *registry.Registry
	// Fallback resolves skills and species, which packs do not define
	Fallback battle.DataRepository
}

// Loader compiles content packs and serves the latest catalog. It is also
// the data repository its own compiled effects resolve entity references
// against, so marks are looked up in whichever catalog is current.
type Loader struct {
	compiler *compiler.Compiler
	fallback battle.DataRepository

	mu      sync.RWMutex
	dir     string
	catalog *Catalog
}

// NewLoader creates a loader
func NewLoader(cfg *LoaderConfig) *Loader {
	if cfg == nil {
		cfg = &LoaderConfig{}
	}
	l := &Loader{
		fallback: cfg.Fallback,
		catalog:  newCatalog(),
	}
	l.compiler = compiler.New(cfg.Registry, l)
	return l
}

// Registry returns the registry content is compiled into
func (l *Loader) Registry() *registry.Registry {
	return l.compiler.Registry()
}

// Catalog returns the most recently loaded catalog
func (l *Loader) Catalog() *Catalog {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.catalog
}

// fileResult is what one content file compiles to
type fileResult struct {
	path    string
	effects []*effects.Effect
	marks   []dsl.Mark
}

// LoadDir compiles every content file under dir and makes the result the
// current catalog. On failure the previous catalog and every registered
// default stay current.
func (l *Loader) LoadDir(ctx context.Context, dir string) (*Catalog, error) {
	paths, err := contentFiles(dir)
	if err != nil {
		return nil, err
	}

	// tunables are staged and only reach the registry once the whole pack
	// compiled, so a failed load leaves the live catalog's defaults alone
	batch := l.Registry().NewBatch()
	staged := l.compiler.Staged(batch)
	results := make([]fileResult, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			result, err := compileFile(staged, path)
			if err != nil {
				return err
			}
			results[i] = *result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	catalog, err := assemble(staged, results)
	if err != nil {
		return nil, err
	}

	settings, err := readEngineSettings(dir)
	if err != nil {
		return nil, err
	}

	committed := batch.Commit()
	if len(settings.Overrides) > 0 {
		applied := l.Registry().ApplyOverrides(settings.Overrides)
		log.Printf("[CONTENT] Applied %d of %d pack overrides from %s", applied, len(settings.Overrides), EngineFile)
	}

	l.mu.Lock()
	l.dir = dir
	l.catalog = catalog
	l.mu.Unlock()

	log.Printf("[CONTENT] Loaded %d effects and %d marks from %d files in %s (%d tunables)",
		catalog.Len(), len(catalog.marks), len(paths), dir, committed)
	return catalog, nil
}

// Reload recompiles the directory passed to the last successful LoadDir.
// Tunables keep their keys, so registered entries and overrides survive.
func (l *Loader) Reload(ctx context.Context) (*Catalog, error) {
	l.mu.RLock()
	dir := l.dir
	l.mu.RUnlock()

	if dir == "" {
		return nil, battleerr.InvalidArgument("nothing loaded yet")
	}
	return l.LoadDir(ctx, dir)
}

func compileFile(c *compiler.Compiler, path string) (*fileResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, battleerr.Wrapf(err, "failed to read %s", path)
	}

	format, _ := dsl.FormatOf(path)
	pack, err := dsl.Decode(format, data)
	if err != nil {
		return nil, battleerr.Wrapf(err, "failed to decode %s", path).WithMeta("file", path)
	}

	result := &fileResult{path: path, marks: pack.Marks}
	for i := range pack.Effects {
		e, err := c.ParseEffect(&pack.Effects[i])
		if err != nil {
			return nil, battleerr.Wrapf(err, "failed to compile %s", path).WithMeta("file", path)
		}
		result.effects = append(result.effects, e)
	}
	return result, nil
}

// assemble merges per-file results and links marks to their effects
func assemble(c *compiler.Compiler, results []fileResult) (*Catalog, error) {
	catalog := newCatalog()

	for _, r := range results {
		for _, e := range r.effects {
			if prev, dup := catalog.sources[e.ID]; dup {
				return nil, battleerr.AlreadyExistsf("effect %s defined in %s and %s", e.ID, prev, r.path).
					WithMeta(battleerr.MetaEffectID, e.ID)
			}
			catalog.effects[e.ID] = e
			catalog.sources[e.ID] = r.path
		}
	}

	markSources := make(map[string]string)
	for _, r := range results {
		for i := range r.marks {
			doc := &r.marks[i]
			if prev, dup := markSources[doc.ID]; dup {
				return nil, battleerr.AlreadyExistsf("mark %s defined in %s and %s", doc.ID, prev, r.path)
			}
			base, err := c.ParseMark(doc, catalog.Get)
			if err != nil {
				return nil, battleerr.Wrapf(err, "failed to compile %s", r.path).WithMeta("file", r.path)
			}
			catalog.marks[base.ID()] = base
			markSources[doc.ID] = r.path
		}
	}

	catalog.index()
	return catalog, nil
}

// contentFiles lists the effect files under dir in lexical order
func contentFiles(dir string) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, battleerr.Wrapf(err, "content directory %s", dir)
	}
	if !info.IsDir() {
		return nil, battleerr.InvalidArgumentf("%s is not a directory", dir)
	}

	var paths []string
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if path == filepath.Join(dir, EngineFile) {
			return nil
		}
		if _, ok := dsl.FormatOf(path); !ok {
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, battleerr.Wrapf(err, "failed to walk %s", dir)
	}
	sort.Strings(paths)
	return paths, nil
}

// Mark implements battle.DataRepository against the current catalog
func (l *Loader) Mark(id string) (battle.BaseMark, error) {
	if m, ok := l.Catalog().Mark(id); ok {
		return m, nil
	}
	if l.fallback != nil {
		return l.fallback.Mark(id)
	}
	return nil, battleerr.NotFoundf("mark %s not found", id)
}

// Skill implements battle.DataRepository
func (l *Loader) Skill(id string) (battle.Skill, error) {
	if l.fallback == nil {
		return nil, battleerr.NotFoundf("skill %s not found", id)
	}
	return l.fallback.Skill(id)
}

// Species implements battle.DataRepository
func (l *Loader) Species(id string) (battle.Species, error) {
	if l.fallback == nil {
		return nil, battleerr.NotFoundf("species %s not found", id)
	}
	return l.fallback.Species(id)
}
