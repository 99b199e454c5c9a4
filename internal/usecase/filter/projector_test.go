package filter_test

import (
	"fmt"
	"math/rand"
	"testing"

	"catalog-browser/internal/domain/entity"
	"catalog-browser/internal/usecase/filter"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixture() []entity.Item {
	return []entity.Item{
		{ID: "1", Title: "Laptop Pro", Description: "A professional machine", Category: "laptops", Price: 1500},
		{ID: "2", Title: "Wireless Mouse", Description: "Pairs with any laptop bag", Category: "accessories", Price: 25},
		{ID: "3", Title: "Gaming Laptop", Description: "RGB everything", Category: "laptops", Price: 900},
		{ID: "4", Title: "Desk Lamp", Description: "Warm light", Category: "home", Price: 40},
		{ID: "5", Title: "Phone", Description: "Smart", Category: "smartphones", Price: 700},
	}
}

func ids(items []entity.Item) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.ID)
	}
	return out
}

func TestComputeView_LaptopPriceDesc(t *testing.T) {
	t.Parallel()

	// Description matches are excluded here so only titled laptops remain.
	items := fixture()
	items[1].Description = "Ergonomic"

	spec := filter.NewSpec("laptop", nil, 0, 99999, filter.SortPriceDesc)
	got := filter.ComputeView(items, spec)

	require.Len(t, got, 2)
	assert.Equal(t, "Laptop Pro", got[0].Title)
	assert.Equal(t, "Gaming Laptop", got[1].Title)
}

func TestComputeView_QueryMatchesDescriptionCaseInsensitive(t *testing.T) {
	t.Parallel()

	spec := filter.NewSpec("LAPTOP", nil, 0, 99999, filter.SortDefault)
	got := filter.ComputeView(fixture(), spec)

	if diff := cmp.Diff([]string{"1", "2", "3"}, ids(got)); diff != "" {
		t.Errorf("ComputeView() mismatch (-want +got):\n%s", diff)
	}
}

func TestComputeView_Filters(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		spec filter.Spec
		want []string
	}{
		{
			name: "no filters keeps source order",
			spec: filter.NewSpec("", nil, 0, 99999, filter.SortDefault),
			want: []string{"1", "2", "3", "4", "5"},
		},
		{
			name: "category set",
			spec: filter.NewSpec("", []string{"laptops", "home"}, 0, 99999, filter.SortDefault),
			want: []string{"1", "3", "4"},
		},
		{
			name: "inclusive price range",
			spec: filter.NewSpec("", nil, 40, 900, filter.SortDefault),
			want: []string{"3", "4", "5"},
		},
		{
			name: "all filters combined",
			spec: filter.NewSpec("laptop", []string{"laptops"}, 1000, 2000, filter.SortDefault),
			want: []string{"1"},
		},
		{
			name: "nothing matches",
			spec: filter.NewSpec("zzz", nil, 0, 99999, filter.SortDefault),
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := filter.ComputeView(fixture(), tt.spec)
			if diff := cmp.Diff(tt.want, ids(got)); diff != "" {
				t.Errorf("ComputeView() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestComputeView_EmptyNeverNil(t *testing.T) {
	t.Parallel()

	got := filter.ComputeView(nil, filter.DefaultSpec(filter.Bounds{Min: 0, Max: 10}))
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestComputeView_Sorting(t *testing.T) {
	t.Parallel()

	all := filter.NewSpec("", nil, 0, 99999, filter.SortDefault)
	tests := []struct {
		key  filter.SortKey
		want []string
	}{
		{filter.SortPriceAsc, []string{"2", "4", "5", "3", "1"}},
		{filter.SortPriceDesc, []string{"1", "3", "5", "4", "2"}},
		{filter.SortNameAsc, []string{"4", "3", "1", "5", "2"}},
		{filter.SortNameDesc, []string{"2", "5", "1", "3", "4"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.key), func(t *testing.T) {
			spec := all
			spec.SortKey = tt.key
			got := filter.ComputeView(fixture(), spec)
			if diff := cmp.Diff(tt.want, ids(got)); diff != "" {
				t.Errorf("ComputeView(%s) mismatch (-want +got):\n%s", tt.key, diff)
			}
		})
	}
}

func TestComputeView_NameSortIsCaseSensitive(t *testing.T) {
	t.Parallel()

	items := []entity.Item{
		{ID: "a", Title: "apple", Price: 1},
		{ID: "b", Title: "Banana", Price: 1},
	}
	got := filter.ComputeView(items, filter.NewSpec("", nil, 0, 10, filter.SortNameAsc))
	assert.Equal(t, []string{"b", "a"}, ids(got))
}

func TestComputeView_StableTies(t *testing.T) {
	t.Parallel()

	items := []entity.Item{
		{ID: "x", Title: "Same", Price: 10},
		{ID: "y", Title: "Same", Price: 5},
		{ID: "z", Title: "Same", Price: 10},
		{ID: "w", Title: "Same", Price: 5},
	}
	got := filter.ComputeView(items, filter.NewSpec("", nil, 0, 100, filter.SortPriceAsc))
	assert.Equal(t, []string{"y", "w", "x", "z"}, ids(got))

	got = filter.ComputeView(items, filter.NewSpec("", nil, 0, 100, filter.SortNameDesc))
	assert.Equal(t, []string{"x", "y", "z", "w"}, ids(got))
}

// randomItems builds a deterministic pseudo-random collection.
func randomItems(r *rand.Rand, n int) []entity.Item {
	cats := []string{"a", "b", "c"}
	words := []string{"Laptop", "phone", "Lamp", "mouse", "Desk"}
	out := make([]entity.Item, n)
	for i := range out {
		out[i] = entity.Item{
			ID:          fmt.Sprint(i),
			Title:       words[r.Intn(len(words))] + " " + words[r.Intn(len(words))],
			Description: words[r.Intn(len(words))],
			Category:    cats[r.Intn(len(cats))],
			Price:       float64(r.Intn(2000)) / 4,
		}
	}
	return out
}

func TestComputeView_Properties(t *testing.T) {
	t.Parallel()

	r := rand.New(rand.NewSource(42))
	for round := 0; round < 200; round++ {
		items := randomItems(r, r.Intn(40))
		snapshot := append([]entity.Item(nil), items...)

		lo := float64(r.Intn(300))
		hi := lo + float64(r.Intn(300))
		var cats []string
		if r.Intn(2) == 0 {
			cats = []string{"a", "c"}
		}
		query := ""
		if r.Intn(2) == 0 {
			query = "la"
		}
		key := filter.SortKeys[r.Intn(len(filter.SortKeys))]
		spec := filter.NewSpec(query, cats, lo, hi, key)

		first := filter.ComputeView(items, spec)
		second := filter.ComputeView(items, spec)

		// Purity: identical output, input untouched.
		require.Empty(t, cmp.Diff(first, second), "round %d", round)
		require.Empty(t, cmp.Diff(snapshot, items), "round %d: input mutated", round)

		for i, it := range first {
			require.GreaterOrEqual(t, it.Price, spec.MinPrice)
			require.LessOrEqual(t, it.Price, spec.MaxPrice)
			if i == 0 {
				continue
			}
			prev := first[i-1]
			switch key {
			case filter.SortPriceAsc:
				require.LessOrEqual(t, prev.Price, it.Price)
			case filter.SortPriceDesc:
				require.GreaterOrEqual(t, prev.Price, it.Price)
			case filter.SortNameAsc:
				require.LessOrEqual(t, prev.Title, it.Title)
			case filter.SortNameDesc:
				require.GreaterOrEqual(t, prev.Title, it.Title)
			}
		}
	}
}
