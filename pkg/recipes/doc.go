// Package recipes is the application state container of the recipe search
// UI.
//
// State is split into three slices, each owned by a pure reducer:
//
//   - status: loading flag, error message, id of the recipe in focus
//   - params: the search parameters (diet, health, cuisineType, ...)
//   - list:   the current page of search results
//
// A Container holds the three slices and exposes them through one accessor:
//
//	c := recipes.New(recipes.WithNavigator(nav, urlparam.ModeReplace))
//	h := c.Use()
//	h.Dispatch.Loading(true)
//	h.Dispatch.Params.Update(recipes.NewParams(recipes.MealType(vocab.MealDinner)))
//	h.State.Params // latest snapshot
//
// Actions are closed sum types per slice, so a params verb cannot be sent to
// the status reducer. Reducers return the same pointer when nothing applies;
// the container uses pointer identity as its change signal. The snapshot is
// rebuilt only after a slice pointer changed, and the dispatch facade is built
// once per container.
//
// When a navigator is configured, every committed change of the params slice
// is written to the address bar as the complete query string. The direction is
// state to URL only.
package recipes
