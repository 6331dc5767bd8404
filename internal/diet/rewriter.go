// Package diet rewrites ingredient lists to satisfy a dietary restriction
// using rule-based substitutions.
package diet

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// rule maps a trigger phrase to its replacement. Rules are scanned in
// declaration order and the first trigger found in a line wins.
type rule struct {
	trigger     string
	replacement string
}

// substitutions holds the rule set for each known restriction. Loaded once,
// read-only afterwards.
var substitutions = map[string][]rule{
	"vegan": {
		{"milk", "almond milk"},
		{"butter", "vegan butter"},
		{"egg", "flaxseed meal"},
		{"cheese", "dairy-free cheese"},
		{"yogurt", "soy yogurt"},
		{"honey", "maple syrup"},
		{"chicken", "tofu or seitan"},
		{"beef", "lentils or mushrooms"},
		{"pork", "jackfruit"},
	},
	"healthy": {
		{"sugar", "stevia or maple syrup"},
		{"white rice", "brown rice or quinoa"},
		{"vegetable oil", "olive oil or coconut oil"},
		{"all-purpose flour", "whole wheat flour or almond flour"},
		{"plain flour", "whole wheat flour or almond flour"},
		{"mayonnaise", "Greek yogurt or avocado"},
		{"sour cream", "Greek yogurt"},
		{"white bread", "whole wheat bread"},
		{"pasta", "whole wheat pasta"},
		{"potatoes", "sweet potatoes"},
	},
}

var quantityPattern = regexp.MustCompile(`(\d*\.?\d+)`)

// gramsPerEgg is the flaxseed meal conversion: one egg becomes 50g.
const gramsPerEgg = 50.0

// Rewrite applies the restriction's substitution rules to each ingredient
// line. Unknown restrictions return the input unchanged. Each line gets at
// most one substitution; lines with no matching trigger are kept verbatim.
// The output always has the same length and order as the input.
func Rewrite(ingredients []string, restriction string) []string {
	rules, ok := substitutions[restriction]
	if !ok {
		return ingredients
	}

	modified := make([]string, 0, len(ingredients))
	for _, line := range ingredients {
		lower := strings.ToLower(line)

		// Egg lines under vegan bypass the rule table: the leading
		// quantity converts to grams of flaxseed meal.
		if restriction == "vegan" && strings.Contains(lower, "egg") {
			quantity := parseQuantity(line)
			modified = append(modified, fmt.Sprintf("%.0fg flaxseed meal", quantity*gramsPerEgg))
			continue
		}

		replaced := false
		for _, r := range rules {
			if strings.Contains(lower, r.trigger) {
				modified = append(modified, strings.ReplaceAll(lower, r.trigger, r.replacement))
				replaced = true
				break
			}
		}
		if !replaced {
			modified = append(modified, line)
		}
	}

	return modified
}

// parseQuantity finds the first numeric token in a line, defaulting to 1.0
// when none is present or it fails to parse.
func parseQuantity(line string) float64 {
	match := quantityPattern.FindString(line)
	if match == "" {
		return 1.0
	}
	quantity, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 1.0
	}
	return quantity
}
