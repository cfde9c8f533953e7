// kasupel-check verifies a deployment: configuration, redis, postgres and a
// quick engine self-test. Exit status is non-zero when any check fails.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"

	appcfg "github.com/kasupel/kasupel/internal/config"
	"github.com/kasupel/kasupel/internal/engine"
	"github.com/kasupel/kasupel/internal/match"
)

var (
	pass = color.New(color.FgGreen).SprintFunc()
	fail = color.New(color.FgRed).SprintFunc()
	warn = color.New(color.FgYellow).SprintFunc()
)

func main() {
	failed := 0
	report := func(name string, err error) {
		if err != nil {
			fmt.Printf("%s %s: %v\n", fail("FAIL"), name, err)
			failed++
			return
		}
		fmt.Printf("%s %s\n", pass("OK"), name)
	}

	cfg, err := appcfg.Load()
	report("config", err)
	if err != nil {
		os.Exit(1)
	}

	report("engine self-test", engineSelfTest())

	mgr, err := match.NewManager(cfg.RedisURL, cfg.GameTTL.Std())
	report("redis", err)
	if err == nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		g, cerr := mgr.CreateGame(ctx, "check-home", "check", "check-away", "check", match.TimeControlSpec{})
		if cerr == nil {
			_, cerr = mgr.PlayMove(ctx, "check-home", g.ID, "e2e4")
		}
		report("redis round trip", cerr)
		cancel()
		_ = mgr.Close()
	}

	if cfg.DatabaseURL == "" {
		fmt.Printf("%s postgres: DATABASE_URL not set, skipping\n", warn("SKIP"))
	} else {
		repo, err := match.NewRepository(cfg.DatabaseURL)
		report("postgres", err)
		if err == nil {
			_ = repo.Close()
		}
	}

	if failed > 0 {
		os.Exit(1)
	}
}

// engineSelfTest plays a scholar's mate and checks the verdict.
func engineSelfTest() error {
	g := engine.NewGame()
	for _, s := range []string{"e2e4", "e7e5", "f1c4", "b8c6", "d1h5", "g8f6", "h5f7"} {
		cm, err := engine.ParseCoordinateMove(s)
		if err != nil {
			return err
		}
		if err := g.ApplyMove(g.CurrentTurn, cm.From, cm.To, cm.Promotion); err != nil {
			return fmt.Errorf("move %s: %w", s, err)
		}
	}
	if g.Conclusion() != engine.Checkmate || g.Winner() != engine.HomeWins {
		return fmt.Errorf("expected checkmate for home, got %s/%s", g.Conclusion(), g.Winner())
	}
	return nil
}
