package vocab

// DietLabel is a diet filter value.
type DietLabel string

const (
	DietBalanced    DietLabel = "balanced"
	DietHighFiber   DietLabel = "high-fiber"
	DietHighProtein DietLabel = "high-protein"
	DietLowCarb     DietLabel = "low-carb"
	DietLowFat      DietLabel = "low-fat"
	DietLowSodium   DietLabel = "low-sodium"
)

var dietLabels = table[DietLabel]{
	{DietBalanced, "Balanced"},
	{DietHighFiber, "High-Fiber"},
	{DietHighProtein, "High-Protein"},
	{DietLowCarb, "Low-Carb"},
	{DietLowFat, "Low-Fat"},
	{DietLowSodium, "Low-Sodium"},
}

// DietLabels returns every diet label in display order.
func DietLabels() []DietLabel { return dietLabels.values() }

// Label returns the display text.
func (d DietLabel) Label() string { return dietLabels.label(d) }

// Known reports whether d is in the vocabulary.
func (d DietLabel) Known() bool { return dietLabels.has(d) }

// HealthLabel is a health filter value.
type HealthLabel string

const (
	HealthAlcoholCocktail  HealthLabel = "alcohol-cocktail"
	HealthAlcoholFree      HealthLabel = "alcohol-free"
	HealthCeleryFree       HealthLabel = "celery-free"
	HealthCrustaceanFree   HealthLabel = "crustacean-free"
	HealthDairyFree        HealthLabel = "dairy-free"
	HealthDASH             HealthLabel = "DASH"
	HealthEggFree          HealthLabel = "egg-free"
	HealthFishFree         HealthLabel = "fish-free"
	HealthFodmapFree       HealthLabel = "fodmap-free"
	HealthGlutenFree       HealthLabel = "gluten-free"
	HealthImmunoSupportive HealthLabel = "immuno-supportive"
	HealthKetoFriendly     HealthLabel = "keto-friendly"
	HealthKidneyFriendly   HealthLabel = "kidney-friendly"
	HealthKosher           HealthLabel = "kosher"
	HealthLowPotassium     HealthLabel = "low-potassium"
	HealthLowSugar         HealthLabel = "low-sugar"
	HealthLupineFree       HealthLabel = "lupine-free"
	HealthMediterranean    HealthLabel = "Mediterranean"
	HealthMolluskFree      HealthLabel = "mollusk-free"
	HealthMustardFree      HealthLabel = "mustard-free"
	HealthNoOilAdded       HealthLabel = "no-oil-added"
	HealthPaleo            HealthLabel = "paleo"
	HealthPeanutFree       HealthLabel = "peanut-free"
	HealthPescatarian      HealthLabel = "pescatarian"
	HealthPorkFree         HealthLabel = "pork-free"
	HealthRedMeatFree      HealthLabel = "red-meat-free"
	HealthSesameFree       HealthLabel = "sesame-free"
	HealthShellfishFree    HealthLabel = "shellfish-free"
	HealthSoyFree          HealthLabel = "soy-free"
	HealthSugarConscious   HealthLabel = "sugar-conscious"
	HealthSulfiteFree      HealthLabel = "sulfite-free"
	HealthTreeNutFree      HealthLabel = "tree-nut-free"
	HealthVegan            HealthLabel = "vegan"
	HealthVegetarian       HealthLabel = "vegetarian"
	HealthWheatFree        HealthLabel = "wheat-free"
)

var healthLabels = table[HealthLabel]{
	{HealthAlcoholCocktail, "Alcohol-Cocktail"},
	{HealthAlcoholFree, "Alcohol-Free"},
	{HealthCeleryFree, "Celery-Free"},
	{HealthCrustaceanFree, "Crustacean-Free"},
	{HealthDairyFree, "Dairy-Free"},
	{HealthDASH, "DASH"},
	{HealthEggFree, "Egg-Free"},
	{HealthFishFree, "Fish-Free"},
	{HealthFodmapFree, "FODMAP-Free"},
	{HealthGlutenFree, "Gluten-Free"},
	{HealthImmunoSupportive, "Immuno-Supportive"},
	{HealthKetoFriendly, "Keto-Friendly"},
	{HealthKidneyFriendly, "Kidney-Friendly"},
	{HealthKosher, "Kosher"},
	{HealthLowPotassium, "Low Potassium"},
	{HealthLowSugar, "Low Sugar"},
	{HealthLupineFree, "Lupine-Free"},
	{HealthMediterranean, "Mediterranean"},
	{HealthMolluskFree, "Mollusk-Free"},
	{HealthMustardFree, "Mustard-Free"},
	{HealthNoOilAdded, "No oil added"},
	{HealthPaleo, "Paleo"},
	{HealthPeanutFree, "Peanut-Free"},
	{HealthPescatarian, "Pescatarian"},
	{HealthPorkFree, "Pork-Free"},
	{HealthRedMeatFree, "Red-Meat-Free"},
	{HealthSesameFree, "Sesame-Free"},
	{HealthShellfishFree, "Shellfish-Free"},
	{HealthSoyFree, "Soy-Free"},
	{HealthSugarConscious, "Sugar-Conscious"},
	{HealthSulfiteFree, "Sulfite-Free"},
	{HealthTreeNutFree, "Tree-Nut-Free"},
	{HealthVegan, "Vegan"},
	{HealthVegetarian, "Vegetarian"},
	{HealthWheatFree, "Wheat-Free"},
}

// HealthLabels returns every health label in display order.
func HealthLabels() []HealthLabel { return healthLabels.values() }

// Label returns the display text.
func (h HealthLabel) Label() string { return healthLabels.label(h) }

// Known reports whether h is in the vocabulary.
func (h HealthLabel) Known() bool { return healthLabels.has(h) }
