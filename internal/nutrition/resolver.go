package nutrition

import (
	"context"
	"math"
	"regexp"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"platewise/internal/recipe"
)

// Lookup is the external food-lookup service consumed by the Resolver.
type Lookup interface {
	SearchFoodID(ctx context.Context, query string) (int64, bool)
	FetchNutrients(ctx context.Context, fdcID int64) (recipe.NutritionTotals, bool)
}

// fallbackEntry pairs a known food name with its per-serving estimate.
// Declaration order is the tie-break for partial matches.
type fallbackEntry struct {
	name      string
	nutrition recipe.NutritionTotals
}

// fallbackTable covers common ingredients and their dietary substitutes for
// when the lookup service is unavailable or knows nothing.
var fallbackTable = []fallbackEntry{
	{"milk", recipe.NutritionTotals{Calories: 42, Protein: 3.4, Fat: 1.0, Carbs: 5.0, Fiber: 0.0}},
	{"flour", recipe.NutritionTotals{Calories: 364, Protein: 10.0, Fat: 1.0, Carbs: 76.0, Fiber: 2.7}},
	{"egg", recipe.NutritionTotals{Calories: 68, Protein: 6.0, Fat: 5.0, Carbs: 1.0, Fiber: 0.0}},
	{"butter", recipe.NutritionTotals{Calories: 102, Protein: 0.1, Fat: 12.0, Carbs: 0.0, Fiber: 0.0}},
	{"sugar", recipe.NutritionTotals{Calories: 387, Protein: 0.0, Fat: 0.0, Carbs: 100.0, Fiber: 0.0}},
	{"salt", recipe.NutritionTotals{}},
	{"oil", recipe.NutritionTotals{Calories: 884, Protein: 0.0, Fat: 100.0, Carbs: 0.0, Fiber: 0.0}},
	{"water", recipe.NutritionTotals{}},
	{"almond milk", recipe.NutritionTotals{Calories: 17, Protein: 0.6, Fat: 1.2, Carbs: 0.3, Fiber: 0.0}},
	{"almond flour", recipe.NutritionTotals{Calories: 570, Protein: 21.0, Fat: 50.0, Carbs: 21.0, Fiber: 10.0}},
	{"vegan butter", recipe.NutritionTotals{Calories: 90, Protein: 0.0, Fat: 10.0, Carbs: 0.0, Fiber: 0.0}},
	{"flaxseed meal", recipe.NutritionTotals{Calories: 37, Protein: 1.3, Fat: 3.0, Carbs: 2.0, Fiber: 2.8}},
}

// genericNutrition is the last-resort estimate for unknown ingredients.
var genericNutrition = recipe.NutritionTotals{Calories: 50, Protein: 2.0, Fat: 1.0, Carbs: 5.0, Fiber: 2.0}

var measurementPattern = regexp.MustCompile(`(?i)\d+(?:\.\d+)?\s*(?:cup|tbsp|tsp|gram|g|ounce|oz|pound|lb|ml|l|kg|teaspoon|tablespoon|pound|pounds|cups?|tablespoons?|teaspoons?)`)

// descriptiveWords get stripped from lookup queries; they only dilute the
// search term.
var descriptiveWords = map[string]bool{
	"fresh":   true,
	"dried":   true,
	"ground":  true,
	"chopped": true,
	"sliced":  true,
	"minced":  true,
	"large":   true,
	"small":   true,
	"medium":  true,
}

// Resolver estimates nutrition totals for ingredient lists. It never fails:
// every service problem degrades to the fallback table and ultimately to a
// generic per-ingredient estimate.
type Resolver struct {
	lookup  Lookup
	limiter *rate.Limiter
}

// NewResolver creates a Resolver over the given lookup service. Service
// calls are paced to at most ten per second to respect its rate limits.
func NewResolver(lookup Lookup) *Resolver {
	return &Resolver{
		lookup:  lookup,
		limiter: rate.NewLimiter(rate.Every(100*time.Millisecond), 1),
	}
}

// Resolve sums per-ingredient estimates over the whole list. Each
// ingredient independently tries the lookup service first and falls back to
// the static table. Totals are rounded to one decimal place per field.
func (r *Resolver) Resolve(ctx context.Context, ingredients []string) recipe.NutritionTotals {
	var total recipe.NutritionTotals
	for _, ingredient := range ingredients {
		per, ok := r.fromService(ctx, ingredient)
		if !ok {
			per = fallbackFor(ingredient)
		}
		total.Calories += per.Calories
		total.Protein += per.Protein
		total.Fat += per.Fat
		total.Carbs += per.Carbs
		total.Fiber += per.Fiber
	}

	total.Calories = round1(total.Calories)
	total.Protein = round1(total.Protein)
	total.Fat = round1(total.Fat)
	total.Carbs = round1(total.Carbs)
	total.Fiber = round1(total.Fiber)
	return total
}

func (r *Resolver) fromService(ctx context.Context, ingredient string) (recipe.NutritionTotals, bool) {
	if r.lookup == nil {
		return recipe.NutritionTotals{}, false
	}
	if err := r.limiter.Wait(ctx); err != nil {
		return recipe.NutritionTotals{}, false
	}

	fdcID, ok := r.lookup.SearchFoodID(ctx, cleanIngredientName(ingredient))
	if !ok {
		return recipe.NutritionTotals{}, false
	}
	return r.lookup.FetchNutrients(ctx, fdcID)
}

// cleanIngredientName strips measurement tokens and descriptive words to
// produce a lookup query term.
func cleanIngredientName(ingredient string) string {
	cleaned := measurementPattern.ReplaceAllString(ingredient, "")

	var words []string
	for _, word := range strings.Fields(cleaned) {
		if !descriptiveWords[strings.ToLower(word)] {
			words = append(words, word)
		}
	}
	return strings.Join(words, " ")
}

// fallbackFor resolves an ingredient against the static table: exact match
// on the cleaned name first, then the first entry (in table order) whose
// key contains the name or vice versa, then the generic estimate.
func fallbackFor(ingredient string) recipe.NutritionTotals {
	name := strings.ToLower(cleanIngredientName(ingredient))
	if name == "" {
		return genericNutrition
	}

	for _, entry := range fallbackTable {
		if entry.name == name {
			return entry.nutrition
		}
	}
	for _, entry := range fallbackTable {
		if strings.Contains(name, entry.name) || strings.Contains(entry.name, name) {
			return entry.nutrition
		}
	}
	return genericNutrition
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
