package recipes

import (
	"reflect"
	"testing"

	"github.com/vango-dev/recipes/pkg/vocab"
)

func TestEntryShapes(t *testing.T) {
	tests := []struct {
		name  string
		entry Entry
		key   ParamKey
		want  Value
	}{
		{"single diet", Diet(vocab.DietBalanced), KeyDiet, Scalar("balanced")},
		{"multi health", Health(vocab.HealthVegan, vocab.HealthSoyFree), KeyHealth, Multi{"vegan", "soy-free"}},
		{"cuisine", CuisineType(vocab.CuisineMiddleEastern), KeyCuisineType, Scalar("Middle Eastern")},
		{"meal", MealType(vocab.MealDinner), KeyMealType, Scalar("Dinner")},
		{"dish", DishType(vocab.DishSoup, vocab.DishSalad), KeyDishType, Multi{"Soup", "Salad"}},
		{"image", ImageSize(vocab.ImageLarge), KeyImageSize, Scalar("LARGE")},
		{"field", Field("uri", "label"), KeyField, Multi{"uri", "label"}},
		{"cont", Cont("abc"), KeyCont, Scalar("abc")},
		{"calories", Calories(500), KeyCalories, Scalar("500")},
		{"calories range", CaloriesRange(100, 300), KeyCalories, Range{Min: 100, Max: 300}},
		{"time", Time(30), KeyTime, Scalar("30")},
		{"time range", TimeRange(10, 45), KeyTime, Range{Min: 10, Max: 45}},
		{"random", Random(true), KeyRandom, Flag(true)},
		{"no values is unset", Diet(), KeyDiet, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.entry.Key() != tt.key {
				t.Errorf("Key() = %q, want %q", tt.entry.Key(), tt.key)
			}
			if !reflect.DeepEqual(tt.entry.value, tt.want) {
				t.Errorf("value = %#v, want %#v", tt.entry.value, tt.want)
			}
		})
	}
}

func TestNewParamsDropsUnknownKeys(t *testing.T) {
	p := NewParams(Unset(ParamKey("q")), MealType(vocab.MealLunch))
	if _, ok := p.values[ParamKey("q")]; ok {
		t.Error("unknown key entered params")
	}
	if got := p.Keys(); !reflect.DeepEqual(got, []ParamKey{KeyMealType}) {
		t.Errorf("Keys() = %v", got)
	}
}

func TestParamsLaterEntryWins(t *testing.T) {
	p := NewParams(Diet(vocab.DietLowFat), Diet(vocab.DietLowCarb))
	v, _ := p.Get(KeyDiet)
	if v != Scalar("low-carb") {
		t.Errorf("Get(diet) = %v, want low-carb", v)
	}
	p = NewParams(Diet(vocab.DietLowFat), Unset(KeyDiet))
	if p.Has(KeyDiet) || p.Len() != 0 {
		t.Error("unset entry left a value behind")
	}
}

func TestParamsValuesAndEncode(t *testing.T) {
	p := NewParams(
		MealType(vocab.MealDinner),
		Health(vocab.HealthVegan, vocab.HealthPeanutFree),
		CaloriesRange(200, 600),
		Random(false),
	)
	want := map[string][]string{
		"mealType": {"Dinner"},
		"health":   {"vegan", "peanut-free"},
		"calories": {"200-600"},
		"random":   {"false"},
	}
	if got := p.Values(); !reflect.DeepEqual(got, want) {
		t.Errorf("Values() = %v, want %v", got, want)
	}
	if got, want := p.Encode(), "calories=200-600&health=vegan&health=peanut-free&mealType=Dinner&random=false"; got != want {
		t.Errorf("Encode() = %q, want %q", got, want)
	}
}

func TestNilParams(t *testing.T) {
	var p *Params
	if p.Len() != 0 || p.Has(KeyDiet) || len(p.Keys()) != 0 || len(p.Values()) != 0 {
		t.Error("nil params is not empty")
	}
	if !p.Equal(NewParams()) {
		t.Error("nil params not equal to empty params")
	}
}

func TestParamsGetDoesNotAlias(t *testing.T) {
	p := NewParams(Field("uri", "label"))
	v, _ := p.Get(KeyField)
	v.(Multi)[0] = "mutated"
	again, _ := p.Get(KeyField)
	if again.(Multi)[0] != "uri" {
		t.Error("mutating a returned Multi changed params")
	}
}

func TestParamsEqual(t *testing.T) {
	a := NewParams(Diet(vocab.DietBalanced), Time(20))
	b := NewParams(Time(20), Diet(vocab.DietBalanced))
	if !a.Equal(b) {
		t.Error("same values in different order are not equal")
	}
	if a.Equal(NewParams(Diet(vocab.DietBalanced))) {
		t.Error("params with different keys are equal")
	}
	if a.Equal(NewParams(Diet(vocab.DietBalanced), Time(25))) {
		t.Error("params with different values are equal")
	}
}

func TestParamsWith(t *testing.T) {
	base := NewParams(Diet(vocab.DietBalanced), Time(20))
	patch := base.With(Unset(KeyDiet), MealType(vocab.MealSnack), Unset(ParamKey("bogus")))

	if patch.Has(KeyDiet) || !patch.Has(KeyTime) || !patch.Has(KeyMealType) {
		t.Errorf("With() = %v", patch)
	}
	if got := patch.Unsets(); !reflect.DeepEqual(got, []ParamKey{KeyDiet}) {
		t.Errorf("Unsets() = %v, want [diet]", got)
	}
	if !base.Has(KeyDiet) {
		t.Error("With() mutated the receiver")
	}

	merged := ReduceParams(NewParams(Diet(vocab.DietLowFat), Cont("x")), UpdateParams{Params: NewParams().With(Unset(KeyDiet))})
	if merged.Has(KeyDiet) || !merged.Has(KeyCont) {
		t.Errorf("update with an unset entry = %v", merged)
	}
}
