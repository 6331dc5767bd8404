// Package nutrition estimates aggregate nutrition for ingredient lists,
// blending the USDA FoodData Central API with a static fallback table.
package nutrition

import (
	"context"
	"net/url"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"

	"platewise/internal/recipe"
)

const (
	defaultSearchURL = "https://api.nal.usda.gov/fdc/v1/foods/search"
	defaultDetailURL = "https://api.nal.usda.gov/fdc/v1/food/"
)

// Client is a client for the USDA FoodData Central API.
type Client struct {
	client    *resty.Client
	apiKey    string
	searchURL string
	detailURL string
}

// NewClient creates a new FoodData Central client. Every request is bounded
// by timeout.
func NewClient(apiKey string, timeout time.Duration) *Client {
	return &Client{
		client:    resty.New().SetTimeout(timeout),
		apiKey:    apiKey,
		searchURL: defaultSearchURL,
		detailURL: defaultDetailURL,
	}
}

// searchResponse is the shape of a food search result.
type searchResponse struct {
	Foods []struct {
		FDCID int64 `json:"fdcId"`
	} `json:"foods"`
}

// foodDetail is the shape of a nutrient detail response. Nutrient names
// appear under different keys depending on the data category.
type foodDetail struct {
	FoodNutrients []struct {
		NutrientName string `json:"nutrientName"`
		Name         string `json:"name"`
		Nutrient     struct {
			Name string `json:"name"`
		} `json:"nutrient"`
		Value float64 `json:"value"`
	} `json:"foodNutrients"`
}

// SearchFoodID looks up the best single FDC identifier for a query term,
// constrained to the curated Foundation and SR Legacy categories. Any
// transport or decode failure reports no identifier rather than an error.
func (c *Client) SearchFoodID(ctx context.Context, query string) (int64, bool) {
	var result searchResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"api_key":  c.apiKey,
			"query":    query,
			"pageSize": "1",
		}).
		SetQueryParamsFromValues(url.Values{"dataType": {"Foundation", "SR Legacy"}}).
		SetResult(&result).
		Get(c.searchURL)
	if err != nil || !resp.IsSuccess() {
		return 0, false
	}
	if len(result.Foods) == 0 {
		return 0, false
	}
	return result.Foods[0].FDCID, true
}

// FetchNutrients retrieves the five tracked nutrient fields for an FDC
// identifier. Missing fields default to 0; any transport or decode failure
// reports no data rather than an error.
func (c *Client) FetchNutrients(ctx context.Context, fdcID int64) (recipe.NutritionTotals, bool) {
	var detail foodDetail
	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParam("api_key", c.apiKey).
		SetResult(&detail).
		Get(c.detailURL + strconv.FormatInt(fdcID, 10))
	if err != nil || !resp.IsSuccess() {
		return recipe.NutritionTotals{}, false
	}

	nutrients := make(map[string]float64, len(detail.FoodNutrients))
	for _, n := range detail.FoodNutrients {
		name := n.NutrientName
		if name == "" {
			name = n.Name
		}
		if name == "" {
			name = n.Nutrient.Name
		}
		if name == "" {
			continue
		}
		nutrients[name] = n.Value
	}

	return recipe.NutritionTotals{
		Calories: nutrients["Energy"],
		Protein:  nutrients["Protein"],
		Fat:      nutrients["Total lipid (fat)"],
		Carbs:    nutrients["Carbohydrate, by difference"],
		Fiber:    nutrients["Fiber, total"],
	}, true
}
