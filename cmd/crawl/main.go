package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"

	"github.com/gridcrawl/crawl/internal/component"
	"github.com/gridcrawl/crawl/internal/config"
	"github.com/gridcrawl/crawl/internal/core/ecs"
	"github.com/gridcrawl/crawl/internal/data"
	"github.com/gridcrawl/crawl/internal/persist"
	"github.com/gridcrawl/crawl/internal/rules"
	"github.com/gridcrawl/crawl/internal/scripting"
	"github.com/gridcrawl/crawl/internal/spawn"
	"github.com/gridcrawl/crawl/internal/system"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load config
	cfgPath := "config/crawl.toml"
	if p := os.Getenv("CRAWL_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// 2. Init logger
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 3. Data tables
	effects, err := data.LoadEffectTable(cfg.Data.Effects)
	if err != nil {
		return fmt.Errorf("load effect table: %w", err)
	}
	prefabs, err := data.LoadPrefabTable(cfg.Data.Prefabs)
	if err != nil {
		return fmt.Errorf("load prefab table: %w", err)
	}
	log.Info("data loaded",
		zap.Int("effects", effects.Count()),
		zap.Int("prefabs", prefabs.Count()),
	)

	// 4. Rules: Lua when enabled, built-in d20 tables otherwise
	seed := cfg.Simulation.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rules.NewRNG(seed)
	modifier := rules.ModifierFunc(rules.Builtin)
	var hpGain system.HPGainFunc
	var hooks system.Interactor
	if cfg.Scripting.Enabled {
		engine, err := scripting.NewEngine(cfg.Scripting.Dir, log)
		if err != nil {
			return fmt.Errorf("lua engine: %w", err)
		}
		defer engine.Close()
		modifier = engine.AbilityModifier
		hpGain = engine.LevelUpHP
		hooks = engine
		log.Info("lua rules loaded", zap.String("dir", cfg.Scripting.Dir))
	}

	// 5. World and initial population
	w := ecs.NewWorld(log)
	component.RegisterDependencies(w)
	ids, err := spawn.New(w, prefabs, effects, log).SpawnAll()
	if err != nil {
		return fmt.Errorf("spawn: %w", err)
	}
	log.Info("world populated", zap.Int("entities", len(ids)), zap.Int64("seed", seed))

	// 6. Systems
	schedule := []ecs.System{
		system.NewWanderSystem(rng, cfg.Simulation.WanderChance),
		system.NewMovementSystem(rng, modifier, log),
		system.NewInteractionSystem(hooks, log),
		system.NewStatusEffectSystem(effects, rng, log),
		system.NewHealthSystem(log),
		system.NewExperienceSystem(rng, modifier, hpGain, log),
		system.NewCleanupSystem(log),
	}

	g, gctx := errgroup.WithContext(ctx)

	// 7. Optional event journal
	if cfg.Journal.Enabled {
		journal, closeDB, err := openJournal(ctx, cfg.Journal, seed, log)
		if err != nil {
			return fmt.Errorf("journal: %w", err)
		}
		defer closeDB()
		schedule = append(schedule, system.NewJournalSystem(journal, log))
		g.Go(func() error { return journal.Run(gctx) })
	}

	for _, s := range schedule {
		if err := w.AddSystem(s); err != nil {
			return fmt.Errorf("add system: %w", err)
		}
	}

	// 8. Game loop
	g.Go(func() error { return loop(gctx, w, cfg.Simulation, log) })

	if err := g.Wait(); err != nil && !errors.Is(err, errTickLimit) {
		return err
	}
	log.Info("simulation stopped", zap.Uint64("tick", w.CurrentTick()))
	return nil
}

// loop ticks the world at the configured rate until ctx ends or MaxTicks is
// reached. Reaching MaxTicks returns errTickLimit so the errgroup cancels the
// journal flusher.
func loop(ctx context.Context, w *ecs.World, sim config.SimulationConfig, log *zap.Logger) error {
	ticker := time.NewTicker(sim.TickRate)
	defer ticker.Stop()

	log.Info("game loop started", zap.Duration("tick_rate", sim.TickRate), zap.Uint64("max_ticks", sim.MaxTicks))
	for {
		select {
		case <-ctx.Done():
			log.Info("shutdown signal received")
			return nil
		case <-ticker.C:
			if err := w.RunTick(sim.TickRate); err != nil {
				return fmt.Errorf("tick %d: %w", w.CurrentTick(), err)
			}
			if sim.MaxTicks > 0 && w.CurrentTick() >= sim.MaxTicks {
				stats := w.Stats()
				log.Info("tick limit reached",
					zap.Uint64("tick", w.CurrentTick()),
					zap.Int("entities", stats.Entities),
				)
				return errTickLimit
			}
		}
	}
}

var errTickLimit = errors.New("tick limit reached")

func openJournal(ctx context.Context, cfg config.JournalConfig, seed int64, log *zap.Logger) (*persist.JournalRepo, func(), error) {
	connectCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	db, err := persist.Open(connectCtx, cfg, log)
	if err != nil {
		return nil, nil, err
	}

	repo := persist.NewJournalRepo(db, uuid.New(), cfg.BufferSize, cfg.FlushInterval, log)
	if err := repo.StartRun(connectCtx, seed); err != nil {
		db.Close()
		return nil, nil, err
	}
	log.Info("journal enabled", zap.String("run_id", repo.RunID().String()))
	return repo, db.Close, nil
}

func loadConfig(path string) (*config.Config, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return config.Default(), nil
	}
	return config.Load(path)
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
