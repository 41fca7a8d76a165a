package models

const (
	SymptomCategoryPain      = "pain"
	SymptomCategoryMood      = "mood"
	SymptomCategoryFlow      = "flow"
	SymptomCategoryBody      = "body"
	SymptomCategoryDigestion = "digestion"
	SymptomCategorySleep     = "sleep"
)

type CatalogSymptom struct {
	Name     string `json:"name"`
	Category string `json:"category"`
}

func DefaultSymptomCatalog() []CatalogSymptom {
	return []CatalogSymptom{
		{Name: "Cramps", Category: SymptomCategoryPain},
		{Name: "Headache", Category: SymptomCategoryPain},
		{Name: "Back pain", Category: SymptomCategoryPain},
		{Name: "Breast tenderness", Category: SymptomCategoryPain},
		{Name: "Mood swings", Category: SymptomCategoryMood},
		{Name: "Irritability", Category: SymptomCategoryMood},
		{Name: "Anxiety", Category: SymptomCategoryMood},
		{Name: "Heavy bleeding", Category: SymptomCategoryFlow},
		{Name: "Spotting", Category: SymptomCategoryFlow},
		{Name: "Bloating", Category: SymptomCategoryBody},
		{Name: "Fatigue", Category: SymptomCategoryBody},
		{Name: "Acne", Category: SymptomCategoryBody},
		{Name: "Nausea", Category: SymptomCategoryDigestion},
		{Name: "Food cravings", Category: SymptomCategoryDigestion},
		{Name: "Insomnia", Category: SymptomCategorySleep},
	}
}
