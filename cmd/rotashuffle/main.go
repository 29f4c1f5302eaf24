// Command rotashuffle replaces the map rotation in server.cfg with random
// maps from the map list, either once or on a cron schedule.
//
// Usage:
//
//	./rotashuffle [-gametype dom] [-count 20]          # shuffle once
//	./rotashuffle -daemon [-schedule "0 0 4 * * *"]    # shuffle on a schedule
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/stlalpha/h2mcfg/internal/cfgsession"
	"github.com/stlalpha/h2mcfg/internal/logging"
	"github.com/stlalpha/h2mcfg/internal/prefs"
	"github.com/stlalpha/h2mcfg/internal/rotation"
	"github.com/stlalpha/h2mcfg/internal/scheduler"
)

func main() {
	prefsPath := flag.String("prefs", prefs.DefaultFile, "Path to the editor preferences file")
	configPath := flag.String("config", "", "Path to server.cfg (overrides prefs)")
	mapsPath := flag.String("maps", "", "Path to the map list (overrides prefs)")
	gametype := flag.String("gametype", "", "Gametype for every map (default: prefs default_gametype)")
	count := flag.Int("count", 0, "Number of maps (default: prefs max_random)")
	daemon := flag.Bool("daemon", false, "Keep running and shuffle on the schedule")
	schedule := flag.String("schedule", "", "Cron spec with seconds, overrides prefs (implies -daemon)")
	now := flag.Bool("now", false, "With -daemon, also shuffle once at startup")
	historyPath := flag.String("history", "", "With -daemon, keep run history in this JSON file")
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	logging.Configure(*debug)

	p, err := prefs.Load(*prefsPath)
	if err != nil {
		log.Fatalf("ERROR: %v", err)
	}
	if *configPath != "" {
		p.ConfigPath = *configPath
	}
	if *mapsPath != "" {
		p.MapsPath = *mapsPath
	}
	if *gametype != "" {
		p.DefaultGametype = *gametype
	}
	if p.DefaultGametype == "" {
		p.DefaultGametype = rotation.Gametypes[0].Code
	}
	if !rotation.IsGametype(p.DefaultGametype) {
		log.Fatalf("ERROR: unknown gametype %q", p.DefaultGametype)
	}
	n := p.MaxRandom
	if *count > 0 {
		n = *count
	}
	if *schedule != "" {
		p.Schedule = *schedule
		*daemon = true
	}

	job := scheduler.ShuffleJob(scheduler.ShuffleOptions{
		Session:  cfgsession.Options{ConfigPath: p.ConfigPath, MapsPath: p.MapsPath},
		Gametype: p.DefaultGametype,
		Count:    n,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !*daemon {
		if err := job(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	sched, err := scheduler.New(p.Schedule, job)
	if err != nil {
		log.Fatalf("ERROR: %v", err)
	}
	if *historyPath != "" {
		if err := sched.UseHistory(*historyPath); err != nil {
			log.Fatalf("ERROR: loading run history: %v", err)
		}
	}
	if *now {
		sched.RunOnce(ctx)
	}
	if err := sched.Start(ctx); err != nil {
		log.Fatalf("ERROR: %v", err)
	}
	if last, runs := sched.Last(); last != nil {
		log.Printf("INFO: %d runs, last at %s (err: %v)", runs, last.Started.Format("2006-01-02 15:04:05"), last.Err)
	}
}
