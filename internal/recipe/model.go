package recipe

import "time"

// Recipe is a persisted recipe keyed by its source URL. Ingredients hold the
// final list shown to the user, after any dietary rewrite was applied.
type Recipe struct {
	ID           string   `json:"id" db:"id"`
	SourceURL    string   `json:"source_url" db:"source_url"`
	Title        string   `json:"title" db:"title"`
	Ingredients  []string `json:"ingredients"`
	Instructions string   `json:"instructions" db:"instructions"`
}

// Favorite links a user to a saved recipe.
type Favorite struct {
	UserID    string    `json:"user_id" db:"user_id"`
	RecipeID  string    `json:"recipe_id" db:"recipe_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// NutritionTotals holds aggregate nutrition estimates for an ingredient
// list. All values are non-negative and rounded to one decimal place.
type NutritionTotals struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Fat      float64 `json:"fat"`
	Carbs    float64 `json:"carbs"`
	Fiber    float64 `json:"fiber"`
}
