package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/pet-battle-effects/internal/battle"
	"github.com/KirkDiggler/pet-battle-effects/internal/config"
	"github.com/KirkDiggler/pet-battle-effects/internal/content"
	battleerr "github.com/KirkDiggler/pet-battle-effects/internal/errors"
	"github.com/KirkDiggler/pet-battle-effects/internal/events"
	"github.com/KirkDiggler/pet-battle-effects/internal/repositories/overrides"
	"github.com/KirkDiggler/pet-battle-effects/internal/testutils"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	} else {
		log.Println("Loaded .env file")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	var dir, fire string
	var useRedis, listKeys bool
	flag.StringVar(&dir, "dir", cfg.Engine.ContentDir, "content directory to compile")
	flag.StringVar(&fire, "fire", "", "emit one trigger against a sandbox battle, e.g. OnTurnStart")
	flag.BoolVar(&useRedis, "redis", false, "apply overrides stored in Redis")
	flag.BoolVar(&listKeys, "keys", false, "print every config key with its effective value")
	flag.Parse()

	log.Printf("Environment: %s (path checks %s, max depth %d, seed %d)",
		cfg.Engine.Env, pathChecks(cfg), cfg.Engine.MaxEffectDepth, cfg.Engine.Seed)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	arena := testutils.NewArenaFromConfig(&cfg.Engine)
	loader := content.NewLoader(&content.LoaderConfig{Registry: arena.Registry})
	catalog, err := loader.LoadDir(ctx, dir)
	if err != nil {
		report(err)
		os.Exit(1)
	}

	if useRedis {
		client, err := connectRedis(ctx, cfg.Redis)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer client.Close()

		if _, err := loader.Registry().LoadOverrides(ctx, overrides.NewRedis(client)); err != nil {
			log.Fatalf("Failed to apply overrides: %v", err)
		}
	}

	fmt.Printf("%d effects, %d marks, %d config keys\n", catalog.Len(), len(catalog.Marks()), loader.Registry().Len())
	for _, trigger := range battle.AllTriggers() {
		if n := len(catalog.ForTrigger(trigger)); n > 0 {
			fmt.Printf("  %-24s %d\n", trigger, n)
		}
	}

	if listKeys {
		reg := loader.Registry()
		for _, key := range reg.Keys() {
			value, _ := reg.Get(key, nil)
			fmt.Printf("%s = %v\n", key, value)
		}
	}

	if fire != "" {
		if err := sandbox(cfg, arena, catalog, fire); err != nil {
			report(err)
			os.Exit(1)
		}
	}
}

// sandbox subscribes every effect in the catalog for the ally of a seeded
// one-versus-one battle and emits trigger once
func sandbox(cfg *config.Config, arena *testutils.Arena, catalog *content.Catalog, name string) error {
	trigger, err := battle.ParseTrigger(name)
	if err != nil {
		return err
	}

	bus := events.NewBus().WithMaxDepth(cfg.Engine.MaxEffectDepth)
	for _, e := range catalog.All() {
		bus.SubscribeEffect(e, arena.Ally, nil)
	}

	if err := bus.Emit(arena.Context(trigger, arena.Ally)); err != nil {
		return err
	}

	for _, pet := range []*testutils.Pet{arena.Ally, arena.AllyBench, arena.Enemy, arena.EnemyBench} {
		fmt.Printf("  %-12s hp %d/%d marks %d\n", pet.ID(), pet.CurrentHP(), pet.MaxHP(), len(pet.Marks()))
	}
	return nil
}

func pathChecks(cfg *config.Config) string {
	if cfg.Engine.Env == config.EnvProduction {
		return "off"
	}
	return "on"
}

// report prints a compile failure with the metadata authors need to find it
func report(err error) {
	fmt.Fprintf(os.Stderr, "content error: %v\n", err)

	meta := battleerr.GetMeta(err)
	fields := []string{"file", battleerr.MetaEffectID, battleerr.MetaLocation, battleerr.MetaTag, battleerr.MetaPath}
	lines := make([]string, 0, len(fields)+1)
	lines = append(lines, fmt.Sprintf("  code: %s", battleerr.GetCode(err)))
	for _, field := range fields {
		if value, ok := meta[field]; ok {
			lines = append(lines, fmt.Sprintf("  %s: %v", field, value))
		}
	}
	fmt.Fprintln(os.Stderr, strings.Join(lines, "\n"))
}

func connectRedis(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	var opts *redis.Options
	if cfg.URL != "" {
		parsed, err := redis.ParseURL(cfg.URL)
		if err != nil {
			return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
		}
		opts = parsed
	} else {
		opts = &redis.Options{
			Addr:     cfg.Addr,
			Password: cfg.Password,
			DB:       cfg.DB,
		}
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	log.Printf("Connected to Redis at %s", opts.Addr)
	return client, nil
}
