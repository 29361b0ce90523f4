package models

// Macros is the per-component macronutrient breakdown, in grams.
type Macros struct {
	Protein      Number `json:"protein"`
	Carbohydrate Number `json:"carbohydrate"`
	Fat          Number `json:"fat"`
}

// FoodComponent is one identified food item within an analyzed dish.
type FoodComponent struct {
	FoodName          string `json:"foodName"`
	EstimatedQuantity string `json:"estimatedQuantity"` // free text, e.g. "1 cup"
	Calories          Number `json:"calories"`
	Macros            Macros `json:"macros"`
}

// AnalysisTotals aggregates the whole dish: calories in kcal, macros in grams.
type AnalysisTotals struct {
	TotalCalories     Number `json:"totalCalories"`
	ProteinGrams      Number `json:"proteinGrams"`
	CarbohydrateGrams Number `json:"carbohydrateGrams"`
	FatGrams          Number `json:"fatGrams"`
}

// NutritionalAnalysis is the structured result of one image analysis call.
// It mirrors the response schema the model is constrained to, and is
// immutable once returned. Totals is a pointer so the service layer can
// tell "missing" apart from "all zero" and repair the former.
type NutritionalAnalysis struct {
	EstimatedDishName string          `json:"estimatedDishName"`
	Totals            *AnalysisTotals `json:"totals"`
	Components        []FoodComponent `json:"components"`
	AccuracyNotice    string          `json:"accuracyNotice"`
}
