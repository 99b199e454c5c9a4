package main

import (
	"fmt"

	"catalog-browser/internal/common/pagination"
	"catalog-browser/internal/usecase/filter"

	"github.com/spf13/cobra"
)

func newBrowseCmd(a *app) *cobra.Command {
	var (
		query      string
		categories []string
		minPrice   float64
		maxPrice   float64
		sortKey    string
		pages      int
		pageSize   int
	)

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Fetch the whole catalog and filter, sort and page it locally",
		Long: `browse fetches every product and the category list, applies the given
filters through the filter editor, and reveals pages of the result.

Price bounds are clamped into the range of the loaded products.

Valid sort keys: default, price_asc, price_desc, name_asc, name_desc

Example:
  catalog browse --query laptop --sort price_desc
  catalog browse --category smartphones --category laptops --min 100 --pages 2`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := filter.ParseSortKey(sortKey)
			if err != nil {
				return err
			}
			if pages < 0 {
				return fmt.Errorf("--pages must not be negative")
			}

			ctx, coord := a.session(cmd.Context(), pagination.ModeClient, pageSize)
			defer coord.Close()

			if err := coord.Mount(ctx); err != nil {
				_ = a.print(coord.Snapshot())
				return err
			}

			ed := coord.Editor()
			ed.Open()
			ed.SetQuery(query)
			ed.SetCategories(categories)
			if cmd.Flags().Changed("min") {
				ed.SetMinPrice(minPrice)
			}
			if cmd.Flags().Changed("max") {
				ed.SetMaxPrice(maxPrice)
			}
			ed.SetSortKey(key)
			if _, err := coord.ApplyDraft(); err != nil {
				return fmt.Errorf("apply filters: %w", err)
			}

			for i := 0; i < pages; i++ {
				if !coord.Snapshot().Window.HasMore {
					break
				}
				if err := coord.LoadMore(ctx); err != nil {
					return err
				}
			}
			return a.print(coord.Snapshot())
		},
	}

	f := cmd.Flags()
	f.StringVarP(&query, "query", "q", "", "case-insensitive text matched against title and description")
	f.StringSliceVarP(&categories, "category", "c", nil, "category to include (repeatable)")
	f.Float64Var(&minPrice, "min", 0, "minimum price")
	f.Float64Var(&maxPrice, "max", 0, "maximum price")
	f.StringVarP(&sortKey, "sort", "s", string(filter.SortDefault), "sort key")
	f.IntVar(&pages, "pages", 0, "additional pages to reveal after the first")
	f.IntVar(&pageSize, "page-size", 0, "items per page (config default when zero)")
	return cmd
}
