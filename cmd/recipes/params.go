package main

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vango-dev/recipes/internal/errors"
	"github.com/vango-dev/recipes/pkg/recipes"
)

// paramFlags are the search filters shared by search and encode.
type paramFlags struct {
	query    string
	diet     []string
	health   []string
	cuisine  []string
	meal     []string
	dish     []string
	image    []string
	fields   []string
	calories string
	time     string
	random   bool
}

func (f *paramFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVarP(&f.query, "query", "q", "", "Raw query string to start from, e.g. \"diet=balanced&mealType=Dinner\"")
	fs.StringSliceVar(&f.diet, "diet", nil, "Diet labels (repeatable)")
	fs.StringSliceVar(&f.health, "health", nil, "Health labels (repeatable)")
	fs.StringSliceVar(&f.cuisine, "cuisine", nil, "Cuisine types")
	fs.StringSliceVar(&f.meal, "meal", nil, "Meal types")
	fs.StringSliceVar(&f.dish, "dish", nil, "Dish types")
	fs.StringSliceVar(&f.image, "image-size", nil, "Image sizes")
	fs.StringSliceVar(&f.fields, "field", nil, "Recipe fields to return")
	fs.StringVar(&f.calories, "calories", "", "Calories: N, N+ or MIN-MAX")
	fs.StringVar(&f.time, "time", "", "Total time in minutes: N, N+ or MIN-MAX")
	fs.BoolVar(&f.random, "random", false, "Ask for random results")
}

// params decodes the flags the same way a page URL is decoded. Flags win
// over keys of the same name in --query.
func (f *paramFlags) params(cmd *cobra.Command) (*recipes.Params, error) {
	q, err := url.ParseQuery(strings.TrimPrefix(f.query, "?"))
	if err != nil {
		return nil, errors.New("E401").WithDetailf("--query: %v", err)
	}

	set := func(key recipes.ParamKey, vals ...string) {
		if len(vals) > 0 {
			q[string(key)] = vals
		}
	}
	set(recipes.KeyDiet, f.diet...)
	set(recipes.KeyHealth, f.health...)
	set(recipes.KeyCuisineType, f.cuisine...)
	set(recipes.KeyMealType, f.meal...)
	set(recipes.KeyDishType, f.dish...)
	set(recipes.KeyImageSize, f.image...)
	set(recipes.KeyField, f.fields...)
	if f.calories != "" {
		set(recipes.KeyCalories, f.calories)
	}
	if f.time != "" {
		set(recipes.KeyTime, f.time)
	}
	if cmd.Flags().Changed("random") {
		set(recipes.KeyRandom, strconv.FormatBool(f.random))
	}

	p, err := recipes.DecodeQuery(q)
	if err != nil {
		return nil, errors.New("E401").Wrap(err)
	}
	return p, nil
}
