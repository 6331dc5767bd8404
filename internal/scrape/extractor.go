// Package scrape turns fetched recipe pages into structured recipes. Known
// sites get dedicated selector strategies; everything else runs through
// generic heuristics tuned for precision over recall.
package scrape

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ErrNoRecipeData is returned when a fetched page yields neither a title
// nor any ingredients. Callers should treat it as non-retryable: the page
// simply lacks parseable recipe data.
var ErrNoRecipeData = errors.New("could not extract recipe data")

// TitleNotFound is the sentinel title when every strategy comes up empty.
const TitleNotFound = "Recipe Title Not Found"

// unitKeywords mark lines that look like ingredient measurements. The
// single-letter entries are deliberately loose; the heuristic trades recall
// for simplicity and the class-based strategies run first anyway.
var unitKeywords = []string{"cup", "tbsp", "tsp", "gram", "ounce", "pound", "kg", "ml", "g", "oz", "lb"}

// Recipe is the structured result of one extraction.
type Recipe struct {
	Title        string   `json:"title"`
	Ingredients  []string `json:"ingredients"`
	Instructions []string `json:"instructions"`
	SourceURL    string   `json:"source_url"`
}

// Extract parses html fetched from sourceURL into a Recipe. Each field is
// resolved independently: the site strategy runs first and the generic
// heuristic covers whatever it missed. Extract fails with ErrNoRecipeData
// when the title stays at its sentinel or no ingredients are found.
func Extract(html []byte, sourceURL string) (*Recipe, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoRecipeData, err)
	}

	strategies := strategiesFor(sourceURL)

	title := ""
	if strategies.title != nil {
		title = strategies.title(doc)
	}
	if title == "" {
		title = genericTitle(doc)
	}
	if title == "" {
		title = TitleNotFound
	}

	var ingredients []string
	if strategies.ingredients != nil {
		ingredients = strategies.ingredients(doc)
	}
	if len(ingredients) == 0 {
		ingredients = genericIngredients(doc)
	}

	var instructions []string
	if strategies.instructions != nil {
		instructions = strategies.instructions(doc)
	}
	if len(instructions) == 0 {
		instructions = genericInstructions(doc)
	}

	if title == TitleNotFound || len(ingredients) == 0 {
		return nil, fmt.Errorf("%w from %s", ErrNoRecipeData, sourceURL)
	}

	return &Recipe{
		Title:        title,
		Ingredients:  ingredients,
		Instructions: instructions,
		SourceURL:    sourceURL,
	}, nil
}

func genericTitle(doc *goquery.Document) string {
	return nodeText(doc.Find("h1").First())
}

// genericIngredients keeps any list item mentioning a unit of measure.
func genericIngredients(doc *goquery.Document) []string {
	var ingredients []string
	doc.Find("li").Each(func(_ int, item *goquery.Selection) {
		text := nodeText(item)
		if len(text) > 3 && containsUnitKeyword(text) {
			ingredients = append(ingredients, text)
		}
	})
	return ingredients
}

// genericInstructions collects paragraph blocks long enough to be steps.
func genericInstructions(doc *goquery.Document) []string {
	var instructions []string
	doc.Find("p").Each(func(_ int, p *goquery.Selection) {
		if text := nodeText(p); len(text) > 20 {
			instructions = append(instructions, text)
		}
	})
	return instructions
}

func containsUnitKeyword(text string) bool {
	lower := strings.ToLower(text)
	for _, keyword := range unitKeywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}

// nodeText returns the selection's text with all whitespace runs collapsed
// to single spaces.
func nodeText(s *goquery.Selection) string {
	return strings.Join(strings.Fields(s.Text()), " ")
}
