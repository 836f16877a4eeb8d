package edamam

import (
	"context"
	stderrors "errors"

	"github.com/vango-dev/recipes/internal/errors"
	"github.com/vango-dev/recipes/pkg/recipes"
)

// Fetch retrieves one page of results.
type Fetch func(ctx context.Context) (*recipes.List, error)

// Post runs fn on the goroutine that owns the container. A nil Post runs
// fn directly, which is only correct when the caller is that goroutine.
type Post func(fn func())

// Load runs fetch between loading(true) and loading(false). On success the
// page is dispatched with list.set; on failure its message goes to error
// and the list is left alone. The error from fetch is returned either way.
//
// Load blocks for the duration of fetch. Dispatches go through post so a
// fetch can run off the container's goroutine.
func Load(ctx context.Context, post Post, d *recipes.Dispatch, fetch Fetch) error {
	if post == nil {
		post = func(fn func()) { fn() }
	}

	post(func() { d.Loading(true) })

	list, err := fetch(ctx)
	if err != nil {
		msg := Message(err)
		post(func() {
			d.Fail(msg)
			d.Loading(false)
		})
		return err
	}

	post(func() {
		d.List.Set(list)
		d.Loading(false)
	})
	return nil
}

// SearchFetch returns a Fetch for the first page of p.
func (c *Client) SearchFetch(p *recipes.Params) Fetch {
	return func(ctx context.Context) (*recipes.List, error) {
		return c.Search(ctx, p)
	}
}

// NextFetch returns a Fetch for the page at href.
func (c *Client) NextFetch(href string) Fetch {
	return func(ctx context.Context) (*recipes.List, error) {
		return c.Next(ctx, href)
	}
}

// Message is the user-facing text stored in the error field for err.
func Message(err error) string {
	if stderrors.Is(err, context.Canceled) || stderrors.Is(err, context.DeadlineExceeded) {
		return "The search was cancelled or timed out."
	}
	switch errors.CodeOf(err) {
	case "E201":
		return "Could not reach the recipe service. Check your connection and try again."
	case "E202":
		return "The recipe service returned an error. Try again later."
	case "E203":
		return "The recipe service sent an unexpected response."
	case "E204":
		return "Recipe not found."
	}
	return err.Error()
}
