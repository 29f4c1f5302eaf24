package scheduler

import (
	"context"
	"fmt"
	"log"

	"github.com/stlalpha/h2mcfg/internal/cfgsession"
)

// ShuffleOptions configures an unattended rotation shuffle.
type ShuffleOptions struct {
	Session  cfgsession.Options
	Gametype string
	Count    int
}

// ShuffleJob returns a job that opens the settings file, replaces the
// rotation with Count random maps played as Gametype, and saves.
func ShuffleJob(opts ShuffleOptions) Job {
	return func(ctx context.Context) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		s, err := cfgsession.Open(opts.Session)
		if err != nil {
			return fmt.Errorf("opening session: %w", err)
		}
		if s.Catalog().Len() == 0 {
			return fmt.Errorf("no maps available in %s", opts.Session.MapsPath)
		}
		n, err := s.Randomize(opts.Gametype, opts.Count)
		if err != nil {
			return fmt.Errorf("randomizing rotation: %w", err)
		}
		if err := s.Save(); err != nil {
			return fmt.Errorf("saving: %w", err)
		}
		log.Printf("INFO: rotation shuffled: %d %s maps written to %s", n, opts.Gametype, opts.Session.ConfigPath)
		return nil
	}
}
