package edamam

import (
	"strings"

	"github.com/vango-dev/recipes/pkg/recipes"
	"github.com/vango-dev/recipes/pkg/vocab"
)

// SizedImage is one image variant.
type SizedImage struct {
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// Ingredient is one line of a recipe's ingredient list.
type Ingredient struct {
	Text         string  `json:"text"`
	Quantity     float64 `json:"quantity"`
	Measure      string  `json:"measure"`
	Food         string  `json:"food"`
	Weight       float64 `json:"weight"`
	FoodCategory string  `json:"foodCategory"`
	FoodID       string  `json:"foodId"`
	Image        string  `json:"image"`
}

// Nutrient is a nutrient total.
type Nutrient struct {
	Label    string  `json:"label"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
}

// Digest is one row of the nutrition digest.
type Digest struct {
	Label        string   `json:"label"`
	Tag          string   `json:"tag"`
	SchemaOrgTag string   `json:"schemaOrgTag"`
	Total        float64  `json:"total"`
	HasRDI       bool     `json:"hasRDI"`
	Daily        float64  `json:"daily"`
	Unit         string   `json:"unit"`
	Sub          []Digest `json:"sub,omitempty"`
}

// Recipe is a full recipe as returned by the API.
type Recipe struct {
	URI               string                          `json:"uri"`
	Label             string                          `json:"label"`
	Image             string                          `json:"image"`
	Images            map[vocab.ImageSize]SizedImage  `json:"images"`
	Source            string                          `json:"source"`
	URL               string                          `json:"url"`
	ShareAs           string                          `json:"shareAs"`
	Yield             float64                         `json:"yield"`
	DietLabels        []string                        `json:"dietLabels"`
	HealthLabels      []string                        `json:"healthLabels"`
	Cautions          []string                        `json:"cautions"`
	IngredientLines   []string                        `json:"ingredientLines"`
	Ingredients       []Ingredient                    `json:"ingredients"`
	Calories          float64                         `json:"calories"`
	TotalCO2Emissions float64                         `json:"totalCO2Emissions"`
	CO2EmissionsClass string                          `json:"co2EmissionsClass"`
	TotalWeight       float64                         `json:"totalWeight"`
	TotalTime         float64                         `json:"totalTime"`
	CuisineType       []string                        `json:"cuisineType"`
	MealType          []string                        `json:"mealType"`
	DishType          []string                        `json:"dishType"`
	TotalNutrients    map[vocab.NutrientCode]Nutrient `json:"totalNutrients"`
	TotalDaily        map[vocab.NutrientCode]Nutrient `json:"totalDaily"`
	Digest            []Digest                        `json:"digest"`
}

// ID returns the recipe id used in /recipes/{id} links.
func (r *Recipe) ID() string {
	return IDFromURI(r.URI)
}

// Ref returns the part of the recipe kept in a result list.
func (r *Recipe) Ref() recipes.RecipeRef {
	return recipes.RecipeRef{URI: r.URI, Image: r.Image, Label: r.Label}
}

const recipeMarker = "#recipe_"

// IDFromURI extracts the id from a recipe URI such as
// "http://www.edamam.com/ontologies/edamam.owl#recipe_abc". A URI without
// the marker is returned unchanged.
func IDFromURI(uri string) string {
	if i := strings.LastIndex(uri, recipeMarker); i >= 0 {
		return uri[i+len(recipeMarker):]
	}
	return uri
}

type links struct {
	Self *recipes.Link `json:"self,omitempty"`
	Next *recipes.Link `json:"next,omitempty"`
}

type hit struct {
	Recipe Recipe `json:"recipe"`
	Links  links  `json:"_links"`
}

// hitList is the search response body.
type hitList struct {
	From  int   `json:"from"`
	To    int   `json:"to"`
	Count int   `json:"count"`
	Links links `json:"_links"`
	Hits  []hit `json:"hits"`
}

func (h *hitList) list() *recipes.List {
	out := &recipes.List{
		From:  h.From,
		To:    h.To,
		Count: h.Count,
		Hits:  make([]recipes.Hit, 0, len(h.Hits)),
	}
	if h.Links.Next != nil {
		out.Next = *h.Links.Next
	}
	for i := range h.Hits {
		x := recipes.Hit{Recipe: h.Hits[i].Recipe.Ref()}
		if h.Hits[i].Links.Self != nil {
			x.Self = *h.Hits[i].Links.Self
		}
		out.Hits = append(out.Hits, x)
	}
	return out
}
