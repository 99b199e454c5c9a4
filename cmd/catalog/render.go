package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"catalog-browser/internal/common/pagination"
	"catalog-browser/internal/domain/entity"
	"catalog-browser/internal/usecase/browse"
	"catalog-browser/internal/usecase/filter"
	"catalog-browser/internal/utils/text"
)

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// renderSnapshot prints a list screen.
func renderSnapshot(w io.Writer, snap browse.Snapshot, format string) error {
	if format == outputJSON {
		return writeJSON(w, snap)
	}

	win := snap.Window
	total := "?"
	if win.TotalKnown {
		total = fmt.Sprint(win.Total)
	}
	fmt.Fprintf(w, "[%s] %s mode, showing %d of %s (page %d/%d)",
		snap.State, snap.Mode, len(snap.Items), total, win.CurrentPage, win.TotalPages)
	if win.HasMore {
		fmt.Fprint(w, ", more available")
	}
	fmt.Fprintln(w)

	if snap.Mode == pagination.ModeClient.String() {
		fmt.Fprintf(w, "filters: %s (%d matching, price range %.2f-%.2f)\n",
			describeSpec(snap.Spec), snap.Matched, snap.Bounds.Min, snap.Bounds.Max)
	}
	if snap.ErrorMessage != "" {
		fmt.Fprintf(w, "error: %s (type \"retry\" to try %s again)\n", snap.ErrorMessage, snap.LastFailed)
	}

	if len(snap.Items) == 0 {
		if snap.State == browse.StateReady {
			fmt.Fprintln(w, "No products found.")
		}
		return nil
	}
	return renderItems(w, snap.Items)
}

// maxTitleRunes keeps long titles from breaking the item table.
const maxTitleRunes = 48

func renderItems(w io.Writer, items []entity.Item) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for i, it := range items {
		fmt.Fprintf(tw, "%d.\t%s\t%.2f\t%s\n", i+1, text.Truncate(it.Title, maxTitleRunes), it.Price, it.Category)
	}
	return tw.Flush()
}

// renderSearch prints the result of a debounced search.
func renderSearch(w io.Writer, snap browse.SearchSnapshot, format string) error {
	if format == outputJSON {
		return writeJSON(w, snap)
	}
	switch {
	case snap.ErrorMessage != "":
		fmt.Fprintf(w, "search %q failed: %s\n", snap.Query, snap.ErrorMessage)
		return nil
	case !snap.HasSearched:
		fmt.Fprintln(w, "search cleared")
		return nil
	case len(snap.Results) == 0:
		fmt.Fprintf(w, "search %q: no products found\n", snap.Query)
		return nil
	}
	fmt.Fprintf(w, "search %q: %d results\n", snap.Query, len(snap.Results))
	return renderItems(w, snap.Results)
}

func describeSpec(s filter.Spec) string {
	parts := []string{"sort " + s.SortKey.Label()}
	if s.Query != "" {
		parts = append(parts, fmt.Sprintf("query %q", s.Query))
	}
	if cats := s.Categories(); len(cats) > 0 {
		parts = append(parts, "categories "+strings.Join(cats, ","))
	}
	parts = append(parts, fmt.Sprintf("price %.2f-%.2f", s.MinPrice, s.MaxPrice))
	return strings.Join(parts, "; ")
}
