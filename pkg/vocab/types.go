package vocab

// CuisineType is a cuisine filter value.
type CuisineType string

const (
	CuisineAmerican       CuisineType = "American"
	CuisineAsian          CuisineType = "Asian"
	CuisineBritish        CuisineType = "British"
	CuisineCaribbean      CuisineType = "Caribbean"
	CuisineCentralEurope  CuisineType = "Central Europe"
	CuisineChinese        CuisineType = "Chinese"
	CuisineEasternEurope  CuisineType = "Eastern Europe"
	CuisineFrench         CuisineType = "French"
	CuisineIndian         CuisineType = "Indian"
	CuisineItalian        CuisineType = "Italian"
	CuisineJapanese       CuisineType = "Japanese"
	CuisineKosher         CuisineType = "Kosher"
	CuisineMediterranean  CuisineType = "Mediterranean"
	CuisineMexican        CuisineType = "Mexican"
	CuisineMiddleEastern  CuisineType = "Middle Eastern"
	CuisineNordic         CuisineType = "Nordic"
	CuisineSouthAmerican  CuisineType = "South American"
	CuisineSouthEastAsian CuisineType = "South East Asian"
)

var cuisineTypes = table[CuisineType]{
	{CuisineAmerican, "American"},
	{CuisineAsian, "Asian"},
	{CuisineBritish, "British"},
	{CuisineCaribbean, "Caribbean"},
	{CuisineCentralEurope, "Central Europe"},
	{CuisineChinese, "Chinese"},
	{CuisineEasternEurope, "Eastern Europe"},
	{CuisineFrench, "French"},
	{CuisineIndian, "Indian"},
	{CuisineItalian, "Italian"},
	{CuisineJapanese, "Japanese"},
	{CuisineKosher, "Kosher"},
	{CuisineMediterranean, "Mediterranean"},
	{CuisineMexican, "Mexican"},
	{CuisineMiddleEastern, "Middle Eastern"},
	{CuisineNordic, "Nordic"},
	{CuisineSouthAmerican, "South American"},
	{CuisineSouthEastAsian, "South East Asian"},
}

// CuisineTypes returns every cuisine in display order.
func CuisineTypes() []CuisineType { return cuisineTypes.values() }

// Label returns the display text.
func (c CuisineType) Label() string { return cuisineTypes.label(c) }

// Known reports whether c is in the vocabulary.
func (c CuisineType) Known() bool { return cuisineTypes.has(c) }

// MealType is a meal filter value.
type MealType string

const (
	MealBreakfast MealType = "Breakfast"
	MealDinner    MealType = "Dinner"
	MealLunch     MealType = "Lunch"
	MealSnack     MealType = "Snack"
	MealTeatime   MealType = "Teatime"
)

var mealTypes = table[MealType]{
	{MealBreakfast, "Breakfast"},
	{MealDinner, "Dinner"},
	{MealLunch, "Lunch"},
	{MealSnack, "Snack"},
	{MealTeatime, "Teatime"},
}

// MealTypes returns every meal type in display order.
func MealTypes() []MealType { return mealTypes.values() }

// Label returns the display text.
func (m MealType) Label() string { return mealTypes.label(m) }

// Known reports whether m is in the vocabulary.
func (m MealType) Known() bool { return mealTypes.has(m) }

// DishType is a dish filter value.
type DishType string

const (
	DishBiscuitsAndCookies  DishType = "Biscuits and cookies"
	DishBread               DishType = "Bread"
	DishCereals             DishType = "Cereals"
	DishCondimentsAndSauces DishType = "Condiments and sauces"
	DishDesserts            DishType = "Desserts"
	DishDrinks              DishType = "Drinks"
	DishMainCourse          DishType = "Main course"
	DishPancake             DishType = "Pancake"
	DishPreps               DishType = "Preps"
	DishPreserve            DishType = "Preserve"
	DishSalad               DishType = "Salad"
	DishSandwiches          DishType = "Sandwiches"
	DishSideDish            DishType = "Side dish"
	DishSoup                DishType = "Soup"
	DishStarter             DishType = "Starter"
	DishSweets              DishType = "Sweets"
)

var dishTypes = table[DishType]{
	{DishBiscuitsAndCookies, "Biscuits and cookies"},
	{DishBread, "Bread"},
	{DishCereals, "Cereals"},
	{DishCondimentsAndSauces, "Condiments and sauces"},
	{DishDesserts, "Desserts"},
	{DishDrinks, "Drinks"},
	{DishMainCourse, "Main course"},
	{DishPancake, "Pancake"},
	{DishPreps, "Preps"},
	{DishPreserve, "Preserve"},
	{DishSalad, "Salad"},
	{DishSandwiches, "Sandwiches"},
	{DishSideDish, "Side dish"},
	{DishSoup, "Soup"},
	{DishStarter, "Starter"},
	{DishSweets, "Sweets"},
}

// DishTypes returns every dish type in display order.
func DishTypes() []DishType { return dishTypes.values() }

// Label returns the display text.
func (d DishType) Label() string { return dishTypes.label(d) }

// Known reports whether d is in the vocabulary.
func (d DishType) Known() bool { return dishTypes.has(d) }

// ImageSize selects which recipe image variants the API returns.
type ImageSize string

const (
	ImageThumbnail ImageSize = "THUMBNAIL"
	ImageSmall     ImageSize = "SMALL"
	ImageRegular   ImageSize = "REGULAR"
	ImageLarge     ImageSize = "LARGE"
)

var imageSizes = table[ImageSize]{
	{ImageThumbnail, "Thumbnail"},
	{ImageSmall, "Small"},
	{ImageRegular, "Regular"},
	{ImageLarge, "Large"},
}

// ImageSizes returns every image size, smallest first.
func ImageSizes() []ImageSize { return imageSizes.values() }

// Label returns the display text.
func (s ImageSize) Label() string { return imageSizes.label(s) }

// Known reports whether s is in the vocabulary.
func (s ImageSize) Known() bool { return imageSizes.has(s) }
