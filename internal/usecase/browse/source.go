package browse

import (
	"context"

	"catalog-browser/internal/domain/entity"
)

// Page is one slice of a remotely paginated collection.
type Page struct {
	Items []entity.Item
	Total int
}

// PageSource serves fixed-size pages for cursor mode.
type PageSource interface {
	FetchPage(ctx context.Context, limit, offset int) (Page, error)
}

// CatalogSource serves the whole collection for client mode.
type CatalogSource interface {
	FetchAll(ctx context.Context) ([]entity.Item, error)
	FetchCategories(ctx context.Context) ([]string, error)
}

// SearchSource runs free-text queries against the remote catalog.
type SearchSource interface {
	Search(ctx context.Context, query string, limit int) ([]entity.Item, error)
}
