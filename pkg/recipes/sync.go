package recipes

import (
	"github.com/vango-dev/recipes/pkg/reactive"
	"github.com/vango-dev/recipes/pkg/urlparam"
)

// Navigator receives the complete params mapping whenever it changes. The
// navigator owns query-string serialization; *urlparam.Navigator is the
// production implementation.
type Navigator interface {
	Navigate(values map[string][]string, mode urlparam.URLMode)
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(values map[string][]string, mode urlparam.URLMode)

// Navigate calls f.
func (f NavigatorFunc) Navigate(values map[string][]string, mode urlparam.URLMode) {
	f(values, mode)
}

// syncURL installs the URL synchronizer on the current owner: an effect that
// reads only the params signal and, after each committed change, hands the
// whole mapping to nav. The initial value is not written.
func syncURL(params *reactive.Signal[*Params], nav Navigator, mode urlparam.URLMode) *reactive.Effect {
	return reactive.OnUpdate(
		func() { params.Get() },
		func() { nav.Navigate(params.Peek().Values(), mode) },
	)
}
