// Command mandato runs the presidential term simulation.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"log/slog"

	"github.com/lvillegas/mandato/internal/api"
	"github.com/lvillegas/mandato/internal/content"
	"github.com/lvillegas/mandato/internal/engine"
	"github.com/lvillegas/mandato/internal/entropy"
	"github.com/lvillegas/mandato/internal/persistence"
	"github.com/lvillegas/mandato/internal/runner"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	slog.Info("MANDATO — presidential term simulation")

	president := envOr("MANDATO_PRESIDENT", "La Presidenta")
	dbPath := envOr("MANDATO_DB", "data/mandato.db")
	apiPort := envInt("MANDATO_PORT", 8080)
	seed := int64(envInt("MANDATO_SEED", 42))

	// ── Database ──────────────────────────────────────────────────────
	os.MkdirAll("data", 0755)
	db, err := persistence.Open(dbPath)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	slog.Info("database opened", "path", dbPath)

	// ── Entropy ───────────────────────────────────────────────────────
	// A seed forces deterministic replay; otherwise random.org (when keyed)
	// with a crypto/rand fallback.
	var rng entropy.Source
	if os.Getenv("MANDATO_SEED") != "" {
		rng = entropy.NewSeeded(seed)
		slog.Info("deterministic entropy", "seed", seed)
	} else {
		rng = entropy.FromEnv(os.Getenv("RANDOM_ORG_KEY"))
	}

	// ── Load or Generate State ────────────────────────────────────────
	catalog := content.Default()
	eng := engine.New(catalog, rng)

	var st *engine.State
	if db.HasState() {
		slog.Info("found saved term, loading...")
		st, err = db.LoadState()
		if err != nil {
			slog.Error("failed to load state", "error", err)
			os.Exit(1)
		}
		slog.Info("term restored",
			"president", st.President,
			"tick", st.Tick,
			"term_time", runner.TermTime(st.Tick),
		)
	} else {
		slog.Info("no saved term found, generating new scenario...")
		st = content.RandomizedScenario(president, seed)
		if err := db.SaveState(st); err != nil {
			slog.Error("initial save failed", "error", err)
		}
	}

	// ── Runner ────────────────────────────────────────────────────────
	run := runner.New(eng, st)
	run.Interval = time.Second
	run.AutoSave = func(s *engine.State) {
		if err := db.SaveState(s); err != nil {
			slog.Error("auto-save failed", "error", err)
		}
	}
	// Unattended mode: cascaded events resolve with their default choice
	// instead of waiting for a decision over the API.
	run.AutoPick = os.Getenv("MANDATO_AUTOPICK") != ""

	// ── HTTP API ──────────────────────────────────────────────────────
	adminKey := os.Getenv("MANDATO_ADMIN_KEY")
	if adminKey == "" {
		slog.Warn("MANDATO_ADMIN_KEY not set — control POST endpoints will be disabled")
	}

	apiServer := &api.Server{
		Run:      run,
		Eng:      eng,
		DB:       db,
		Port:     apiPort,
		AdminKey: adminKey,
	}
	apiServer.Start()

	// ── Start ─────────────────────────────────────────────────────────
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("received signal, shutting down", "signal", sig)
		run.Stop()
	}()

	fmt.Printf("\n%s takes office. %s.\n", st.President, runner.TermTime(st.Tick))
	fmt.Printf("API: http://localhost:%d/api/v1/status\n", apiPort)
	fmt.Println("Starting term... (Ctrl+C to stop)")

	run.Run()

	fmt.Println("Term suspended. State saved.")
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
