package recipes

import (
	"testing"

	"github.com/vango-dev/recipes/pkg/urlparam"
	"github.com/vango-dev/recipes/pkg/vocab"
)

func TestSyncWritesParamsOnly(t *testing.T) {
	rec := &urlparam.Recorder{}
	c := New(WithNavigator(rec, urlparam.ModeReplace))
	defer c.Dispose()

	if n := len(rec.History()); n != 0 {
		t.Fatalf("initial state navigated %d times", n)
	}

	c.Dispatch().Loading(true)
	c.Dispatch().List.Set(fullList())
	c.Dispatch().Focus("r1")
	if n := len(rec.History()); n != 0 {
		t.Errorf("status/list dispatches navigated %d times", n)
	}

	c.Dispatch().Params.Apply(MealType(vocab.MealDinner))
	c.Dispatch().Params.Apply(Diet(vocab.DietBalanced))
	hist := rec.History()
	if len(hist) != 2 {
		t.Fatalf("navigated %d times, want 2", len(hist))
	}
	if got, want := hist[1].Query, "diet=balanced&mealType=Dinner"; got != want {
		t.Errorf("query = %q, want %q", got, want)
	}
	if hist[1].Mode != urlparam.ModeReplace {
		t.Errorf("mode = %v, want replace", hist[1].Mode)
	}
}

func TestSyncClearEmptiesQuery(t *testing.T) {
	rec := &urlparam.Recorder{}
	c := New(WithNavigator(rec, urlparam.ModePush))
	defer c.Dispose()

	c.Dispatch().Params.Apply(CaloriesRange(100, 400))
	if got, want := rec.Query(), "calories=100-400"; got != want {
		t.Errorf("query = %q, want %q", got, want)
	}

	c.Dispatch().Params.Clear()
	last, _ := rec.Last()
	if last.Query != "" || last.Mode != urlparam.ModePush {
		t.Errorf("after clear patch = %+v, want empty push", last)
	}

	// Clearing again leaves the params pointer alone, so nothing is written.
	c.Dispatch().Params.Clear()
	if n := len(rec.History()); n != 2 {
		t.Errorf("navigated %d times, want 2", n)
	}
}

func TestSyncBatchWritesLatestOnce(t *testing.T) {
	var got []map[string][]string
	nav := NavigatorFunc(func(values map[string][]string, _ urlparam.URLMode) {
		got = append(got, values)
	})
	c := New(WithNavigator(nav, urlparam.ModeReplace))
	defer c.Dispose()

	c.Batch(func() {
		c.Dispatch().Params.Apply(Time(10))
		c.Dispatch().Params.Apply(Time(20))
	})

	if len(got) != 1 {
		t.Fatalf("navigated %d times, want 1", len(got))
	}
	if v := got[0]["time"]; len(v) != 1 || v[0] != "20" {
		t.Errorf("time = %v, want [20]", v)
	}
}

func TestSyncSeesCommittedState(t *testing.T) {
	var c *Container
	var fromNav *Params
	nav := NavigatorFunc(func(map[string][]string, urlparam.URLMode) {
		fromNav = c.State().Params
	})
	c = New(WithNavigator(nav, urlparam.ModeReplace))
	defer c.Dispose()

	c.Dispatch().Params.Apply(Cont("token"))
	if fromNav == nil || !fromNav.Has(KeyCont) {
		t.Errorf("navigator saw params %v, want committed cont", fromNav)
	}
}

func TestSyncStopsOnDispose(t *testing.T) {
	rec := &urlparam.Recorder{}
	c := New(WithNavigator(rec, urlparam.ModeReplace))
	c.Dispose()

	c.Dispatch().Params.Apply(Time(5))
	if n := len(rec.History()); n != 0 {
		t.Errorf("navigated %d times after dispose", n)
	}
}
