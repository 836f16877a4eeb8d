package vocab

// NutrientCode identifies a nutrient in recipe nutrition tables.
type NutrientCode string

const (
	NutrientCalcium      NutrientCode = "CA"
	NutrientCarbs        NutrientCode = "CHOCDF"
	NutrientCarbsNet     NutrientCode = "CHOCDF.net"
	NutrientCholesterol  NutrientCode = "CHOLE"
	NutrientEnergy       NutrientCode = "ENERC_KCAL"
	NutrientFatMono      NutrientCode = "FAMS"
	NutrientFatPoly      NutrientCode = "FAPU"
	NutrientFatSaturated NutrientCode = "FASAT"
	NutrientFat          NutrientCode = "FAT"
	NutrientFatTrans     NutrientCode = "FATRN"
	NutrientIron         NutrientCode = "FE"
	NutrientFiber        NutrientCode = "FIBTG"
	NutrientFolate       NutrientCode = "FOLDFE"
	NutrientPotassium    NutrientCode = "K"
	NutrientMagnesium    NutrientCode = "MG"
	NutrientSodium       NutrientCode = "NA"
	NutrientNiacin       NutrientCode = "NIA"
	NutrientPhosphorus   NutrientCode = "P"
	NutrientProtein      NutrientCode = "PROCNT"
	NutrientRiboflavin   NutrientCode = "RIBF"
	NutrientSugars       NutrientCode = "SUGAR"
	NutrientThiamin      NutrientCode = "THIA"
	NutrientVitaminE     NutrientCode = "TOCPHA"
	NutrientVitaminA     NutrientCode = "VITA_RAE"
	NutrientVitaminB12   NutrientCode = "VITB12"
	NutrientVitaminB6    NutrientCode = "VITB6A"
	NutrientVitaminC     NutrientCode = "VITC"
	NutrientVitaminD     NutrientCode = "VITD"
	NutrientVitaminK     NutrientCode = "VITK1"
	NutrientWater        NutrientCode = "WATER"
	NutrientZinc         NutrientCode = "ZN"
)

var nutrients = table[NutrientCode]{
	{NutrientCalcium, "Calcium"},
	{NutrientCarbs, "Carbs"},
	{NutrientCarbsNet, "Carbohydrates (net)"},
	{NutrientCholesterol, "Cholesterol"},
	{NutrientEnergy, "Energy"},
	{NutrientFatMono, "Monounsaturated"},
	{NutrientFatPoly, "Polyunsaturated"},
	{NutrientFatSaturated, "Saturated"},
	{NutrientFat, "Fat"},
	{NutrientFatTrans, "Trans"},
	{NutrientIron, "Iron"},
	{NutrientFiber, "Fiber"},
	{NutrientFolate, "Folate equivalent (total)"},
	{NutrientPotassium, "Potassium"},
	{NutrientMagnesium, "Magnesium"},
	{NutrientSodium, "Sodium"},
	{NutrientNiacin, "Niacin (B3)"},
	{NutrientPhosphorus, "Phosphorus"},
	{NutrientProtein, "Protein"},
	{NutrientRiboflavin, "Riboflavin (B2)"},
	{NutrientSugars, "Sugars"},
	{NutrientThiamin, "Thiamin (B1)"},
	{NutrientVitaminE, "Vitamin E"},
	{NutrientVitaminA, "Vitamin A"},
	{NutrientVitaminB12, "Vitamin B12"},
	{NutrientVitaminB6, "Vitamin B6"},
	{NutrientVitaminC, "Vitamin C"},
	{NutrientVitaminD, "Vitamin D"},
	{NutrientVitaminK, "Vitamin K"},
	{NutrientWater, "Water"},
	{NutrientZinc, "Zinc"},
}

// Nutrients returns every nutrient code.
func Nutrients() []NutrientCode { return nutrients.values() }

// Label returns the display text.
func (n NutrientCode) Label() string { return nutrients.label(n) }

// Known reports whether n is in the vocabulary.
func (n NutrientCode) Known() bool { return nutrients.has(n) }
