package scrape

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// fieldStrategies resolves each recipe field from a parsed document. A nil
// function or an empty result falls through to the generic heuristics in
// extractor.go. Fields dispatch independently: a page may use its site's
// title strategy and still fall back for ingredients.
type fieldStrategies struct {
	title        func(doc *goquery.Document) string
	ingredients  func(doc *goquery.Document) []string
	instructions func(doc *goquery.Document) []string
}

type siteRule struct {
	match      func(url string) bool
	strategies fieldStrategies
}

// recipeSiteCluster covers sites sharing the common title/ingredient markup
// pattern (h1 title classes, a single ingredients container).
var recipeSiteCluster = []string{
	"foodfood.com",
	"indianhealthyrecipes.com",
	"recipes.timesofindia.com",
	"archanaskitchen.com",
	"food.ndtv.com",
	"vegrecipesofindia.com",
	"recipetineats.com",
}

// siteRegistry is scanned in order; the first matching rule supplies the
// site-specific strategies. Unknown hosts get generic fallbacks only.
var siteRegistry = []siteRule{
	{
		match: urlContains("bbcgoodfood.com"),
		strategies: fieldStrategies{
			title:        bbcTitle,
			ingredients:  bbcIngredients,
			instructions: bbcInstructions,
		},
	},
	{
		match: urlContains("allrecipes.com"),
		strategies: fieldStrategies{
			title:        allrecipesTitle,
			ingredients:  allrecipesIngredients,
			instructions: allrecipesInstructions,
		},
	},
	{
		// simplyrecipes shares the cluster markup for title and
		// ingredients but keeps its steps in a dedicated container.
		match: urlContains("simplyrecipes.com"),
		strategies: fieldStrategies{
			title:        clusterTitle,
			ingredients:  clusterIngredients,
			instructions: simplyRecipesInstructions,
		},
	},
	{
		match: urlContains(recipeSiteCluster...),
		strategies: fieldStrategies{
			title:        clusterTitle,
			ingredients:  clusterIngredients,
			instructions: clusterInstructions,
		},
	},
}

func urlContains(fragments ...string) func(string) bool {
	return func(url string) bool {
		for _, fragment := range fragments {
			if strings.Contains(url, fragment) {
				return true
			}
		}
		return false
	}
}

// strategiesFor returns the first registered strategy set matching the URL,
// or the zero value when the host is unknown.
func strategiesFor(url string) fieldStrategies {
	for _, rule := range siteRegistry {
		if rule.match(url) {
			return rule.strategies
		}
	}
	return fieldStrategies{}
}

var (
	titleClassPattern       = regexp.MustCompile(`(?i)title|recipe-title|entry-title`)
	ingredientClassPattern  = regexp.MustCompile(`(?i)ingredient|ingredients`)
	recipeSectionPattern    = regexp.MustCompile(`(?i)recipe|ingredients`)
	methodClassPattern      = regexp.MustCompile(`(?i)method|instruction|step`)
	stepClassPattern        = regexp.MustCompile(`(?i)step`)
	instructionBlockPattern = regexp.MustCompile(`(?i)method|instruction|procedure|recipe-instructions`)
	leadingSymbolPattern    = regexp.MustCompile(`^[\W\s]+`)
)

func bbcTitle(doc *goquery.Document) string {
	if title := nodeText(doc.Find("h1.heading__title").First()); title != "" {
		return title
	}
	return nodeText(doc.Find("h1").First())
}

func allrecipesTitle(doc *goquery.Document) string {
	return nodeText(doc.Find("h1.recipe-title").First())
}

func clusterTitle(doc *goquery.Document) string {
	return nodeText(filterByClass(doc.Find("h1"), titleClassPattern).First())
}

func bbcIngredients(doc *goquery.Document) []string {
	var ingredients []string

	containers := filterByClass(doc.Find("li, p"), ingredientClassPattern)
	if containers.Length() == 0 {
		// Try any list inside a recipe section instead.
		filterByClass(doc.Find("section, div"), recipeSectionPattern).Each(func(_ int, section *goquery.Selection) {
			section.Find("li").Each(func(_ int, item *goquery.Selection) {
				if text := nodeText(item); len(text) > 3 {
					ingredients = append(ingredients, text)
				}
			})
		})
		return ingredients
	}

	containers.Each(func(_ int, container *goquery.Selection) {
		if text := nodeText(container); len(text) > 3 {
			ingredients = append(ingredients, text)
		}
	})
	return ingredients
}

func allrecipesIngredients(doc *goquery.Document) []string {
	var ingredients []string
	doc.Find("span.ingredients-item-name").Each(func(_ int, item *goquery.Selection) {
		if text := nodeText(item); len(text) > 3 {
			ingredients = append(ingredients, text)
		}
	})
	return ingredients
}

func clusterIngredients(doc *goquery.Document) []string {
	container := filterByClass(doc.Find("div"), ingredientClassPattern).First()
	if container.Length() == 0 {
		return nil
	}

	var ingredients []string
	container.Find("li").Each(func(_ int, item *goquery.Selection) {
		text := nodeText(item)
		// Some sites render checkboxes or bullets inside each line.
		text = leadingSymbolPattern.ReplaceAllString(text, "")
		if len(text) > 3 {
			ingredients = append(ingredients, text)
		}
	})
	return ingredients
}

func bbcInstructions(doc *goquery.Document) []string {
	containers := filterByClass(doc.Find("li, p"), methodClassPattern)
	if containers.Length() == 0 {
		containers = filterByClass(doc.Find("li, p"), stepClassPattern)
	}

	var instructions []string
	containers.Each(func(_ int, container *goquery.Selection) {
		if text := nodeText(container); len(text) > 10 {
			instructions = append(instructions, text)
		}
	})
	return instructions
}

func allrecipesInstructions(doc *goquery.Document) []string {
	var instructions []string
	doc.Find("div.paragraph").Each(func(_ int, elem *goquery.Selection) {
		if text := nodeText(elem); text != "" {
			instructions = append(instructions, text)
		}
	})
	return instructions
}

func simplyRecipesInstructions(doc *goquery.Document) []string {
	container := doc.Find("div#structured-project__steps_1-0").First()
	if container.Length() == 0 {
		return nil
	}

	var instructions []string
	container.Find("p").Each(func(_ int, elem *goquery.Selection) {
		if text := nodeText(elem); len(text) > 10 {
			instructions = append(instructions, text)
		}
	})
	return instructions
}

func clusterInstructions(doc *goquery.Document) []string {
	container := filterByClass(doc.Find("div, ol"), instructionBlockPattern).First()
	if container.Length() == 0 {
		return nil
	}

	var instructions []string
	container.Find("li, p").Each(func(_ int, elem *goquery.Selection) {
		if text := nodeText(elem); len(text) > 10 {
			instructions = append(instructions, text)
		}
	})
	return instructions
}

// filterByClass keeps the elements whose class attribute matches pattern.
func filterByClass(sel *goquery.Selection, pattern *regexp.Regexp) *goquery.Selection {
	return sel.FilterFunction(func(_ int, s *goquery.Selection) bool {
		class, ok := s.Attr("class")
		return ok && pattern.MatchString(class)
	})
}
