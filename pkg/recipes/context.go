package recipes

import "github.com/vango-dev/recipes/pkg/reactive"

// ContainerKey is the owner context key under which Provide stores a
// container.
var ContainerKey = &struct{ name string }{"RecipesContainer"}

// inert answers Use outside any provider: initial state, dispatches ignored.
var inert = func() *Container {
	c := New()
	c.Dispose()
	return c
}()

// Provide makes c visible to owner and its descendants.
func Provide(owner *reactive.Owner, c *Container) {
	owner.SetValue(ContainerKey, c)
}

// From returns the container provided to owner or an ancestor. Without one
// it returns an inert container whose dispatches do nothing.
func From(owner *reactive.Owner) *Container {
	if owner != nil {
		if c, ok := owner.GetValue(ContainerKey).(*Container); ok {
			return c
		}
	}
	return inert
}

// Use is the accessor for code running under an owner (see
// reactive.WithOwner).
func Use() Handle {
	return From(reactive.CurrentOwner()).Use()
}
