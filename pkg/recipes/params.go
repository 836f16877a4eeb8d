package recipes

import (
	"fmt"
	"net/url"
	"slices"
	"strconv"

	"github.com/vango-dev/recipes/pkg/vocab"
)

// ParamKey is a recognized search parameter name.
type ParamKey string

const (
	KeyDiet        ParamKey = "diet"
	KeyHealth      ParamKey = "health"
	KeyCuisineType ParamKey = "cuisineType"
	KeyMealType    ParamKey = "mealType"
	KeyDishType    ParamKey = "dishType"
	KeyCalories    ParamKey = "calories"
	KeyTime        ParamKey = "time"
	KeyImageSize   ParamKey = "imageSize"
	KeyRandom      ParamKey = "random"
	KeyField       ParamKey = "field"
	KeyCont        ParamKey = "cont"
)

var paramKeys = []ParamKey{
	KeyDiet, KeyHealth, KeyCuisineType, KeyMealType, KeyDishType,
	KeyCalories, KeyTime, KeyImageSize, KeyRandom, KeyField, KeyCont,
}

// Keys returns every recognized key in canonical order.
func Keys() []ParamKey {
	return slices.Clone(paramKeys)
}

// Valid reports whether k is a recognized key.
func (k ParamKey) Valid() bool {
	return slices.Contains(paramKeys, k)
}

// Value is a parameter value: Scalar, Multi, Range or Flag.
type Value interface {
	// Query returns the query-string values for this parameter.
	Query() []string
	isValue()
}

// Scalar is a single literal value.
type Scalar string

// Multi is a multi-select value, sent as a repeated query key.
type Multi []string

// Range is a min/max pair for calories or time, written "min-max".
type Range struct {
	Min int
	Max int
}

// Flag is a boolean value.
type Flag bool

func (s Scalar) Query() []string { return []string{string(s)} }
func (m Multi) Query() []string  { return slices.Clone([]string(m)) }
func (r Range) Query() []string  { return []string{r.String()} }
func (f Flag) Query() []string   { return []string{strconv.FormatBool(bool(f))} }

func (Scalar) isValue() {}
func (Multi) isValue()  {}
func (Range) isValue()  {}
func (Flag) isValue()   {}

func (r Range) String() string {
	return fmt.Sprintf("%d-%d", r.Min, r.Max)
}

// Entry is one key/value pair for NewParams. Entries are built with the
// typed constructors below, which tie each key to its value shape.
type Entry struct {
	key   ParamKey
	value Value // nil: explicitly absent
}

// Key returns the entry's key.
func (e Entry) Key() ParamKey { return e.key }

func choice[T ~string](key ParamKey, vals []T) Entry {
	switch len(vals) {
	case 0:
		return Unset(key)
	case 1:
		return Entry{key: key, value: Scalar(vals[0])}
	}
	m := make(Multi, len(vals))
	for i, v := range vals {
		m[i] = string(v)
	}
	return Entry{key: key, value: m}
}

// Diet filters by one or more diet labels.
func Diet(labels ...vocab.DietLabel) Entry { return choice(KeyDiet, labels) }

// Health filters by one or more health labels.
func Health(labels ...vocab.HealthLabel) Entry { return choice(KeyHealth, labels) }

// CuisineType filters by cuisine.
func CuisineType(types ...vocab.CuisineType) Entry { return choice(KeyCuisineType, types) }

// MealType filters by meal.
func MealType(types ...vocab.MealType) Entry { return choice(KeyMealType, types) }

// DishType filters by dish.
func DishType(types ...vocab.DishType) Entry { return choice(KeyDishType, types) }

// ImageSize selects the image variants returned.
func ImageSize(sizes ...vocab.ImageSize) Entry { return choice(KeyImageSize, sizes) }

// Field limits the recipe fields returned.
func Field(fields ...string) Entry { return choice(KeyField, fields) }

// Cont sets the continuation token(s) of a paged search.
func Cont(tokens ...string) Entry { return choice(KeyCont, tokens) }

// Calories sets an exact calorie value.
func Calories(n int) Entry { return Entry{key: KeyCalories, value: Scalar(strconv.Itoa(n))} }

// CaloriesRange sets a calorie range.
func CaloriesRange(lo, hi int) Entry { return Entry{key: KeyCalories, value: Range{Min: lo, Max: hi}} }

// Time sets an exact total time in minutes.
func Time(n int) Entry { return Entry{key: KeyTime, value: Scalar(strconv.Itoa(n))} }

// TimeRange sets a total time range in minutes.
func TimeRange(lo, hi int) Entry { return Entry{key: KeyTime, value: Range{Min: lo, Max: hi}} }

// Random asks for a random selection of results.
func Random(on bool) Entry { return Entry{key: KeyRandom, value: Flag(on)} }

// Unset marks key as explicitly absent. In an update it removes the key.
func Unset(key ParamKey) Entry { return Entry{key: key} }

// Params is an immutable set of search parameters. Only recognized keys are
// ever stored. The nil *Params is valid and empty.
type Params struct {
	// values maps a key to its value. A nil value records a key that was
	// given explicitly as absent; it matters only to UPDATE.
	values map[ParamKey]Value
}

// noParams is the initial and cleared value of the params slice.
var noParams = &Params{}

// NewParams builds params from entries. Later entries for the same key win.
// Entries with unrecognized keys are dropped.
func NewParams(entries ...Entry) *Params {
	p := &Params{values: make(map[ParamKey]Value, len(entries))}
	for _, e := range entries {
		if !e.key.Valid() {
			continue
		}
		p.values[e.key] = e.value
	}
	return p
}

// With returns a copy of p with entries applied on top. Unset entries are
// kept as explicit absences, so the result can be used as an UPDATE payload
// that removes keys.
func (p *Params) With(entries ...Entry) *Params {
	out := &Params{values: make(map[ParamKey]Value, len(entries))}
	if p != nil {
		for k, v := range p.values {
			out.values[k] = v
		}
	}
	for _, e := range entries {
		if e.key.Valid() {
			out.values[e.key] = e.value
		}
	}
	return out
}

// Unsets returns the keys p gives as explicitly absent.
func (p *Params) Unsets() []ParamKey {
	var keys []ParamKey
	if p == nil {
		return keys
	}
	for _, k := range paramKeys {
		if v, ok := p.values[k]; ok && v == nil {
			keys = append(keys, k)
		}
	}
	return keys
}

// Len returns the number of keys that have a value.
func (p *Params) Len() int {
	n := 0
	if p != nil {
		for _, v := range p.values {
			if v != nil {
				n++
			}
		}
	}
	return n
}

// Get returns the value of key.
func (p *Params) Get(key ParamKey) (Value, bool) {
	if p == nil {
		return nil, false
	}
	v := p.values[key]
	if v == nil {
		return nil, false
	}
	if m, ok := v.(Multi); ok {
		return slices.Clone(m), true
	}
	return v, true
}

// Has reports whether key has a value.
func (p *Params) Has(key ParamKey) bool {
	_, ok := p.Get(key)
	return ok
}

// Keys returns the keys that have a value, in canonical order.
func (p *Params) Keys() []ParamKey {
	var keys []ParamKey
	for _, k := range paramKeys {
		if p.Has(k) {
			keys = append(keys, k)
		}
	}
	return keys
}

// Values returns the complete params mapping in query form: a scalar is a
// one-element slice, a multi-select the repeated values, a range "min-max"
// and a flag "true" or "false".
func (p *Params) Values() map[string][]string {
	out := make(map[string][]string, p.Len())
	for _, k := range p.Keys() {
		v, _ := p.Get(k)
		out[string(k)] = v.Query()
	}
	return out
}

// Encode returns the params as a query string with keys sorted.
func (p *Params) Encode() string {
	return url.Values(p.Values()).Encode()
}

// String implements fmt.Stringer.
func (p *Params) String() string {
	return "{" + p.Encode() + "}"
}

// Equal reports whether p and o hold the same values.
func (p *Params) Equal(o *Params) bool {
	if p.Len() != o.Len() {
		return false
	}
	for _, k := range p.Keys() {
		a, _ := p.Get(k)
		b, ok := o.Get(k)
		if !ok || !slices.Equal(a.Query(), b.Query()) {
			return false
		}
	}
	return true
}

// merge returns p with every key given in patch overwritten. Keys patch
// gives as absent are removed. Keys patch does not mention are kept.
func (p *Params) merge(patch *Params) *Params {
	out := &Params{values: make(map[ParamKey]Value, p.Len()+patch.Len())}
	if p != nil {
		for k, v := range p.values {
			if v != nil {
				out.values[k] = v
			}
		}
	}
	if patch != nil {
		for k, v := range patch.values {
			if v == nil {
				delete(out.values, k)
				continue
			}
			out.values[k] = v
		}
	}
	return out
}
