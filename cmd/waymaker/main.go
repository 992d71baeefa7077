// Command waymaker generates a terrain map, places settlements, connects
// them with a public road network, and saves the result to SQLite.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"

	"github.com/talgya/waymaker/internal/config"
	"github.com/talgya/waymaker/internal/persistence"
	"github.com/talgya/waymaker/internal/roadnet"
	"github.com/talgya/waymaker/internal/settlement"
	"github.com/talgya/waymaker/internal/world"
)

func main() {
	configPath := flag.String("config", "waymaker.yaml", "path to YAML config")
	seed := flag.Int64("seed", 0, "override world seed (0 = config value)")
	dbPath := flag.String("db", "", "override output database path")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	var handler slog.Handler
	if isatty.IsTerminal(os.Stdout.Fd()) {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	} else {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if *seed != 0 {
		cfg.World.Seed = *seed
	}
	if cfg.World.Seed == 0 {
		cfg.World.Seed = rand.Int63()
	}
	if *dbPath != "" {
		cfg.Database.Path = *dbPath
	}

	// ── Terrain ───────────────────────────────────────────────────────
	slog.Info("generating terrain",
		"size", fmt.Sprintf("%dx%d", cfg.World.Width, cfg.World.Height),
		"seed", cfg.World.Seed,
	)
	worldMap := world.Generate(cfg.World)
	for kind, count := range world.KindCounts(worldMap) {
		slog.Info("terrain", "kind", world.KindName(kind), "tiles", count)
	}

	// ── Settlements ───────────────────────────────────────────────────
	registry := settlement.Place(worldMap, cfg.World.Seed, cfg.Settlements)
	slog.Info("settlements placed", "count", registry.Len())
	for _, s := range registry.All() {
		slog.Debug("settlement", "name", s.Name, "at", s.Location, "population", s.Population)
	}

	// ── Road network ──────────────────────────────────────────────────
	gen := &roadnet.Generator{
		Map:         worldMap,
		Settlements: registry,
		Buckets:     cfg.Roads.Buckets,
		MaxRounds:   cfg.Roads.MaxRounds,
		Log:         logger,
	}
	if err := gen.Connect(); err != nil {
		if errors.Is(err, roadnet.ErrUnreachable) {
			// The network built so far is still valid; report and keep it.
			slog.Warn("some settlements could not be connected", "detail", err)
		} else {
			slog.Error("road generation failed", "error", err)
			os.Exit(1)
		}
	}

	// ── Persist ───────────────────────────────────────────────────────
	if dir := filepath.Dir(cfg.Database.Path); dir != "." {
		os.MkdirAll(dir, 0755)
	}
	db, err := persistence.Open(cfg.Database.Path)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	info := persistence.RunInfo{
		Seed:   cfg.World.Seed,
		Width:  cfg.World.Width,
		Height: cfg.World.Height,
	}
	if err := db.SaveNetwork(info, registry, worldMap); err != nil {
		slog.Error("failed to save network", "error", err)
		os.Exit(1)
	}

	roadTiles := worldMap.RoadTileCount()
	slog.Info("network saved", "path", cfg.Database.Path, "road_tiles", roadTiles)

	fmt.Printf("\n%s settlements connected by %s road tiles on a %s-tile map.\n",
		humanize.Comma(int64(registry.Len())),
		humanize.Comma(int64(roadTiles)),
		humanize.Comma(int64(cfg.World.Width*cfg.World.Height)),
	)
}
