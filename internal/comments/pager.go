package comments

import (
	"context"
	"fmt"
)

// PageFunc fetches the page that starts at pageToken. An empty token asks
// for the first page.
type PageFunc[T any] func(ctx context.Context, pageToken string) (Page[T], error)

// Walk calls fetch until the source stops returning a cursor and hands every
// item to visit in arrival order. Empty pages that still carry a cursor are
// followed. It returns the number of pages fetched.
func Walk[T any](ctx context.Context, fetch PageFunc[T], visit func(T) error) (int, error) {
	token := ""
	pages := 0
	for {
		if err := ctx.Err(); err != nil {
			return pages, err
		}
		page, err := fetch(ctx, token)
		if err != nil {
			return pages, fmt.Errorf("page %d: %w", pages+1, err)
		}
		pages++
		for _, it := range page.Items {
			if err := visit(it); err != nil {
				return pages, err
			}
		}
		if page.NextPageToken == "" {
			return pages, nil
		}
		token = page.NextPageToken
	}
}
