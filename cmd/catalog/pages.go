package main

import (
	"fmt"

	"catalog-browser/internal/common/pagination"

	"github.com/spf13/cobra"
)

func newPagesCmd(a *app) *cobra.Command {
	var (
		pages    int
		pageSize int
	)

	cmd := &cobra.Command{
		Use:   "pages",
		Short: "Load pages from the server cursor",
		Long: `pages performs the initial load in cursor mode, then requests the given
number of additional pages, as if the user scrolled to the end of the list.

Example:
  catalog pages --pages 2
  catalog pages --page-size 25 -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if pages < 0 {
				return fmt.Errorf("--pages must not be negative")
			}
			ctx, coord := a.session(cmd.Context(), pagination.ModeCursor, pageSize)
			defer coord.Close()

			err := coord.Mount(ctx)
			for i := 0; err == nil && i < pages; i++ {
				if !coord.Snapshot().Window.HasMore {
					break
				}
				err = coord.LoadMore(ctx)
			}
			if perr := a.print(coord.Snapshot()); perr != nil {
				return perr
			}
			return err
		},
	}

	cmd.Flags().IntVar(&pages, "pages", 0, "additional pages to load after the first")
	cmd.Flags().IntVar(&pageSize, "page-size", 0, "items per page (config default when zero)")
	return cmd
}
