package nutrition

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"platewise/internal/recipe"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewClient("test-key", 2*time.Second)
	client.searchURL = server.URL + "/fdc/v1/foods/search"
	client.detailURL = server.URL + "/fdc/v1/food/"
	return client
}

func TestSearchFoodIDReturnsFirstResult(t *testing.T) {
	var gotQuery, gotKey string
	var gotDataTypes []string

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("query")
		gotKey = r.URL.Query().Get("api_key")
		gotDataTypes = r.URL.Query()["dataType"]
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"foods":[{"fdcId":12345},{"fdcId":99999}]}`))
	}))

	id, ok := client.SearchFoodID(context.Background(), "butter")

	assert.True(t, ok)
	assert.Equal(t, int64(12345), id)
	assert.Equal(t, "butter", gotQuery)
	assert.Equal(t, "test-key", gotKey)
	assert.Equal(t, []string{"Foundation", "SR Legacy"}, gotDataTypes)
}

func TestSearchFoodIDNoResults(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"foods":[]}`))
	}))

	_, ok := client.SearchFoodID(context.Background(), "butter")

	assert.False(t, ok)
}

func TestSearchFoodIDServerError(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	_, ok := client.SearchFoodID(context.Background(), "butter")

	assert.False(t, ok)
}

func TestSearchFoodIDUnreachable(t *testing.T) {
	client := NewClient("test-key", 200*time.Millisecond)
	client.searchURL = "http://127.0.0.1:1/fdc/v1/foods/search"

	_, ok := client.SearchFoodID(context.Background(), "butter")

	assert.False(t, ok)
}

func TestFetchNutrientsParsesTrackedFields(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/fdc/v1/food/12345", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		// Nutrient names arrive under different keys depending on the
		// data category; fiber is missing entirely.
		w.Write([]byte(`{"foodNutrients":[
			{"nutrientName":"Energy","value":68},
			{"nutrientName":"Protein","value":6.0},
			{"name":"Total lipid (fat)","value":5.0},
			{"nutrient":{"name":"Carbohydrate, by difference"},"value":1.0},
			{"value":99}
		]}`))
	}))

	totals, ok := client.FetchNutrients(context.Background(), 12345)

	assert.True(t, ok)
	assert.Equal(t, recipe.NutritionTotals{Calories: 68, Protein: 6.0, Fat: 5.0, Carbs: 1.0, Fiber: 0}, totals)
}

func TestFetchNutrientsServerError(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))

	_, ok := client.FetchNutrients(context.Background(), 12345)

	assert.False(t, ok)
}
