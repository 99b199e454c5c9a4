package main

import (
	"bufio"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"catalog-browser/internal/usecase/browse"

	"github.com/spf13/cobra"
)

func newSearchCmd(a *app) *cobra.Command {
	var keystrokeDelay time.Duration

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search the catalog as you type",
		Long: `search reads stdin line by line. Each line is the full text of the search
box after a keystroke; searches are debounced so only the text the user
paused on is sent. A blank line clears the results.

Example:
  printf 'l\nla\nlap\nlaptop\n' | catalog search
  catalog search --keystroke-delay 600ms < queries.txt`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var mu sync.Mutex
			render := func(snap browse.SearchSnapshot) {
				if snap.Loading {
					return
				}
				mu.Lock()
				defer mu.Unlock()
				if err := renderSearch(a.out, snap, a.flags.output); err != nil {
					a.logger.Error("Failed to render search", slog.Any("error", err))
				}
			}

			s := browse.NewSearcher(cmd.Context(), a.client, browse.SearchOptions{
				Delay:   a.cfg.QueryDelay,
				Limit:   a.cfg.SearchLimit,
				Logger:  a.logger,
				OnState: render,
			})
			defer s.Close()

			scanner := bufio.NewScanner(a.in)
			for scanner.Scan() {
				s.Type(scanner.Text())
				if keystrokeDelay > 0 {
					select {
					case <-time.After(keystrokeDelay):
					case <-cmd.Context().Done():
						return nil
					}
				}
			}
			if err := scanner.Err(); err != nil {
				return fmt.Errorf("read input: %w", err)
			}

			s.Flush()
			return waitIdle(cmd, s)
		},
	}

	cmd.Flags().DurationVar(&keystrokeDelay, "keystroke-delay", 0, "pause between input lines")
	return cmd
}

// waitIdle blocks until no search is in flight.
func waitIdle(cmd *cobra.Command, s *browse.Searcher) error {
	ticker := time.NewTicker(10 * time.Millisecond)
	defer ticker.Stop()
	for s.Snapshot().Loading {
		select {
		case <-ticker.C:
		case <-cmd.Context().Done():
			return nil
		}
	}
	return nil
}
