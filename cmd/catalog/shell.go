package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"catalog-browser/internal/common/pagination"
	"catalog-browser/internal/usecase/browse"
	"catalog-browser/internal/usecase/filter"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
)

const shellHelp = `commands:
  more            load or reveal the next page
  refresh         reload from the first page
  retry           repeat the operation that failed
  query <text>    set the draft search text (empty clears it)
  cat <category>  toggle a category in the draft
  min <price>     set the draft minimum price
  max <price>     set the draft maximum price
  sort <key>      set the draft sort key
  apply           apply the draft filters
  cancel          discard the draft
  reset           clear all filters
  draft           print the draft filters
  show            print the list
  help            print this help
  quit            exit`

func newShellCmd(a *app) *cobra.Command {
	var (
		mode     string
		pageSize int
	)

	cmd := &cobra.Command{
		Use:   "shell",
		Short: "Drive a list screen interactively from stdin",
		Long: `shell mounts a list screen and reads one command per line from stdin,
printing the list after every change. Type "help" for the command list.

With --refresh-schedule (or refresh_schedule in the config) the list is also
refreshed on a cron schedule, exactly as if the user pulled to refresh.

Example:
  catalog shell --mode client
  printf 'more\nmore\nquit\n' | catalog shell`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m := a.cfg.PaginationMode()
			if cmd.Flags().Changed("mode") {
				parsed, err := pagination.ParseMode(mode)
				if err != nil {
					return err
				}
				m = parsed
			}

			ctx, coord := a.session(cmd.Context(), m, pageSize)
			defer coord.Close()

			sh := &shell{app: a, coord: coord}
			if a.cfg.RefreshSchedule != "" {
				stop, err := sh.scheduleRefresh(ctx, a.cfg.RefreshSchedule)
				if err != nil {
					return err
				}
				defer stop()
			}
			return sh.run(ctx, a.in)
		},
	}

	cmd.Flags().StringVar(&mode, "mode", "", "pagination mode: cursor or client (config default when empty)")
	cmd.Flags().IntVar(&pageSize, "page-size", 0, "items per page (config default when zero)")
	return cmd
}

// shell serializes output between the command loop and scheduled refreshes.
type shell struct {
	app   *app
	coord *browse.Coordinator
	mu    sync.Mutex
}

func (s *shell) printf(format string, args ...any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.app.out, format, args...)
}

func (s *shell) show() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.app.print(s.coord.Snapshot()); err != nil {
		s.app.logger.Error("Failed to render list", slog.Any("error", err))
	}
}

func (s *shell) run(ctx context.Context, in io.Reader) error {
	if err := s.coord.Mount(ctx); err != nil {
		s.printf("mount failed: %v\n", err)
	}
	s.show()

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if ctx.Err() != nil {
			return nil
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if quit := s.exec(ctx, line); quit {
			return nil
		}
	}
	return scanner.Err()
}

// exec runs one command line and reports whether the shell should exit.
func (s *shell) exec(ctx context.Context, line string) bool {
	name, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)
	ed := s.coord.Editor()

	var err error
	switch strings.ToLower(name) {
	case "quit", "exit", "q":
		return true
	case "help", "?":
		s.printf("%s\n", shellHelp)
		return false
	case "show", "ls":
		s.show()
		return false
	case "more":
		err = s.coord.LoadMore(ctx)
	case "refresh":
		err = s.coord.Refresh(ctx)
	case "retry":
		err = s.coord.Retry(ctx)
	case "apply":
		_, err = s.coord.ApplyDraft()
	case "reset":
		_, err = s.coord.ResetFilters()
	case "cancel":
		ed.Cancel()
		s.printf("draft discarded\n")
		return false
	case "query", "cat", "min", "max", "sort":
		if err := s.editDraft(ed, strings.ToLower(name), arg); err != nil {
			s.printf("error: %v\n", err)
			return false
		}
		s.printf("draft: %s\n", describeSpec(ed.Draft()))
		return false
	case "draft":
		s.printf("draft: %s\n", describeSpec(ed.Draft()))
		return false
	default:
		s.printf("unknown command %q (type \"help\")\n", name)
		return false
	}

	switch {
	case errors.Is(err, browse.ErrSpecUnsupported):
		s.printf("filters are only available in client mode\n")
		return false
	case errors.Is(err, browse.ErrBusy):
		s.printf("busy loading, try again in a moment\n")
		return false
	case err != nil:
		s.app.logger.Debug("Command failed", slog.String("command", name), slog.Any("error", err))
	}
	s.show()
	return false
}

func (s *shell) editDraft(ed *filter.Editor, name, arg string) error {
	if !ed.IsOpen() {
		ed.Open()
	}
	switch name {
	case "query":
		ed.SetQuery(arg)
	case "cat":
		if arg == "" {
			return fmt.Errorf("cat needs a category")
		}
		ed.ToggleCategory(arg)
	case "min", "max":
		p, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return fmt.Errorf("%s needs a number: %w", name, err)
		}
		if name == "min" {
			ed.SetMinPrice(p)
		} else {
			ed.SetMaxPrice(p)
		}
	case "sort":
		k, err := filter.ParseSortKey(arg)
		if err != nil {
			return err
		}
		ed.SetSortKey(k)
	}
	return nil
}

// scheduleRefresh refreshes the list on a cron schedule until stop is called.
func (s *shell) scheduleRefresh(ctx context.Context, spec string) (stop func(), err error) {
	c := cron.New()
	_, err = c.AddFunc(spec, func() {
		s.app.logger.Info("Scheduled refresh")
		if err := s.coord.Refresh(ctx); err != nil {
			s.app.logger.Warn("Scheduled refresh failed", slog.Any("error", err))
		}
		s.printf("-- scheduled refresh --\n")
		s.show()
	})
	if err != nil {
		return nil, fmt.Errorf("invalid refresh schedule %q: %w", spec, err)
	}
	c.Start()
	s.app.logger.Info("Refresh schedule started", slog.String("schedule", spec))

	return func() { <-c.Stop().Done() }, nil
}
