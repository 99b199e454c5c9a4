package filter_test

import (
	"encoding/json"
	"testing"

	"catalog-browser/internal/domain/entity"
	"catalog-browser/internal/usecase/filter"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSortKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    filter.SortKey
		wantErr bool
	}{
		{"", filter.SortDefault, false},
		{"default", filter.SortDefault, false},
		{"price_asc", filter.SortPriceAsc, false},
		{" PRICE_DESC ", filter.SortPriceDesc, false},
		{"name_asc", filter.SortNameAsc, false},
		{"name_desc", filter.SortNameDesc, false},
		{"rating", filter.SortDefault, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := filter.ParseSortKey(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSortKey_Label(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Price: High to Low", filter.SortPriceDesc.Label())
	assert.Equal(t, "Name: A-Z", filter.SortNameAsc.Label())
	assert.Equal(t, "Default", filter.SortKey("bogus").Label())
	assert.Len(t, filter.SortKeys, 5)
}

func TestNewSpec_ClampsMinToMax(t *testing.T) {
	t.Parallel()

	s := filter.NewSpec("q", nil, 500, 100, "")
	assert.Equal(t, 100.0, s.MinPrice)
	assert.Equal(t, 100.0, s.MaxPrice)
	assert.Equal(t, filter.SortDefault, s.SortKey)
}

func TestSpec_PriceSettersKeepOrder(t *testing.T) {
	t.Parallel()

	s := filter.NewSpec("", nil, 10, 100, filter.SortDefault)

	assert.Equal(t, 100.0, s.WithMinPrice(250).MinPrice)
	assert.Equal(t, 10.0, s.WithMaxPrice(5).MaxPrice)

	moved := s.WithMinPrice(20).WithMaxPrice(80)
	assert.Equal(t, 20.0, moved.MinPrice)
	assert.Equal(t, 80.0, moved.MaxPrice)
	// Original is untouched.
	assert.Equal(t, 10.0, s.MinPrice)
}

func TestSpec_CategoriesAreCopied(t *testing.T) {
	t.Parallel()

	base := filter.NewSpec("", []string{"b", "a"}, 0, 1, filter.SortDefault)
	toggled := base.WithCategoryToggled("c").WithCategoryToggled("a")

	assert.Equal(t, []string{"a", "b"}, base.Categories())
	assert.Equal(t, []string{"b", "c"}, toggled.Categories())
	assert.True(t, toggled.HasCategory("c"))
	assert.False(t, base.HasCategory("c"))

	cleared := toggled.WithCategoryToggled("b").WithCategoryToggled("c")
	assert.Empty(t, cleared.Categories())
	assert.True(t, cleared.Equal(filter.NewSpec("", nil, 0, 1, filter.SortDefault)))
}

func TestSpec_Equal(t *testing.T) {
	t.Parallel()

	a := filter.NewSpec("x", []string{"one", "two"}, 1, 2, filter.SortNameAsc)
	b := filter.NewSpec("x", []string{"two", "one"}, 1, 2, filter.SortNameAsc)

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(b.WithCategories([]string{"one"})))
	assert.False(t, a.Equal(filter.NewSpec("y", []string{"one", "two"}, 1, 2, filter.SortNameAsc)))
	assert.Contains(t, a.String(), `query="x"`)
}

func TestDeriveBounds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		items []entity.Item
		want  filter.Bounds
	}{
		{"empty falls back", nil, filter.Bounds{Min: 0, Max: 1000}},
		{"floor and ceil", []entity.Item{{Price: 9.99}, {Price: 1499.5}, {Price: 120}}, filter.Bounds{Min: 9, Max: 1500}},
		{"single item", []entity.Item{{Price: 42}}, filter.Bounds{Min: 42, Max: 42}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, filter.DeriveBounds(tt.items))
		})
	}
}

func TestBounds_Clamp(t *testing.T) {
	t.Parallel()

	b := filter.Bounds{Min: 10, Max: 20}
	require.Equal(t, 10.0, b.Clamp(-5))
	require.Equal(t, 15.0, b.Clamp(15))
	require.Equal(t, 20.0, b.Clamp(99))
}

func TestDefaultSpec(t *testing.T) {
	t.Parallel()

	s := filter.DefaultSpec(filter.Bounds{Min: 3, Max: 7})
	assert.Equal(t, "", s.Query)
	assert.Empty(t, s.Categories())
	assert.Equal(t, 3.0, s.MinPrice)
	assert.Equal(t, 7.0, s.MaxPrice)
	assert.Equal(t, filter.SortDefault, s.SortKey)
}

func TestSpec_MarshalJSON(t *testing.T) {
	t.Parallel()

	s := filter.NewSpec("desk", []string{"home", "furniture"}, 5, 50, filter.SortNameAsc)
	b, err := json.Marshal(s)
	require.NoError(t, err)
	assert.JSONEq(t, `{"query":"desk","categories":["furniture","home"],"min_price":5,"max_price":50,"sort":"name_asc"}`, string(b))
}
