// Package api exposes the HTTP surface and sequences the parse pipeline:
// fetch, extract, rewrite, resolve nutrition, persist.
package api

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"platewise/internal/diet"
	"platewise/internal/recipe"
	"platewise/internal/scrape"
)

// Fetcher defines the interface for downloading recipe pages.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, string, error)
}

// NutritionResolver defines the interface for estimating nutrition totals.
type NutritionResolver interface {
	Resolve(ctx context.Context, ingredients []string) recipe.NutritionTotals
}

// ResultCache defines the interface for the parse result cache.
type ResultCache interface {
	Get(key string) (any, bool)
	Set(key string, value any, ttl time.Duration)
}

// Handler handles HTTP requests.
type Handler struct {
	Fetcher  Fetcher
	Resolver NutritionResolver
	Store    recipe.Store
	Cache    ResultCache
	Log      *zap.Logger
	CacheTTL time.Duration
}

// NewHandler creates a new Handler with the default one hour cache TTL.
func NewHandler(fetcher Fetcher, resolver NutritionResolver, store recipe.Store, cache ResultCache, log *zap.Logger) *Handler {
	return &Handler{
		Fetcher:  fetcher,
		Resolver: resolver,
		Store:    store,
		Cache:    cache,
		Log:      log,
		CacheTTL: time.Hour,
	}
}

// ParseResult is the successful outcome of one parse request, also the unit
// cached per (url, restriction).
type ParseResult struct {
	Success             bool                   `json:"success"`
	Title               string                 `json:"title"`
	OriginalIngredients []string               `json:"original_ingredients"`
	Ingredients         []string               `json:"ingredients"`
	Instructions        string                 `json:"instructions"`
	Nutrition           recipe.NutritionTotals `json:"nutrition"`
	Restriction         string                 `json:"restriction"`
	RecipeID            string                 `json:"recipe_id"`
}

// ParseRecipe runs the full pipeline for a submitted recipe URL.
func (h *Handler) ParseRecipe(c *gin.Context) {
	url := formOrQuery(c, "url")
	restriction := formOrQuery(c, "restriction")
	if url == "" {
		h.fail(c, http.StatusBadRequest, "url is required", url, restriction)
		return
	}

	cacheKey := recipe.CacheKey(url, restriction)
	if cached, ok := h.Cache.Get(cacheKey); ok {
		if result, ok := cached.(*ParseResult); ok {
			h.Log.Info("returning cached parse result", zap.String("url", url), zap.String("restriction", restriction))
			c.JSON(http.StatusOK, result)
			return
		}
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 45*time.Second)
	defer cancel()

	body, finalURL, err := h.Fetcher.Fetch(ctx, url)
	if err != nil {
		h.Log.Warn("page fetch failed", zap.String("url", url), zap.Error(err))
		h.fail(c, http.StatusBadGateway, err.Error(), url, restriction)
		return
	}

	extracted, err := scrape.Extract(body, finalURL)
	if err != nil {
		h.Log.Warn("extraction failed", zap.String("url", url), zap.Error(err))
		h.fail(c, http.StatusUnprocessableEntity, err.Error(), url, restriction)
		return
	}

	modified := extracted.Ingredients
	if restriction != "" {
		modified = diet.Rewrite(extracted.Ingredients, restriction)
	}

	nutrition := h.Resolver.Resolve(ctx, modified)

	instructions := strings.Join(extracted.Instructions, "\n")
	if instructions == "" {
		instructions = "Instructions not found"
	}

	recipeID, err := h.Store.UpsertRecipe(ctx, &recipe.Recipe{
		SourceURL:    url,
		Title:        extracted.Title,
		Ingredients:  modified,
		Instructions: instructions,
	})
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			h.fail(c, http.StatusRequestTimeout, "database save timed out", url, restriction)
			return
		}
		h.fail(c, http.StatusInternalServerError, err.Error(), url, restriction)
		return
	}

	result := &ParseResult{
		Success:             true,
		Title:               extracted.Title,
		OriginalIngredients: extracted.Ingredients,
		Ingredients:         modified,
		Instructions:        instructions,
		Nutrition:           nutrition,
		Restriction:         restriction,
		RecipeID:            recipeID,
	}
	h.Cache.Set(cacheKey, result, h.CacheTTL)

	h.Log.Info("parsed recipe",
		zap.String("url", url),
		zap.String("restriction", restriction),
		zap.String("recipe_id", recipeID),
		zap.Int("ingredients", len(modified)))
	c.JSON(http.StatusOK, result)
}

// GetRecipes handles requests to list all persisted recipes.
func (h *Handler) GetRecipes(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	recipes, err := h.Store.ListRecipes(ctx)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			c.String(http.StatusRequestTimeout, "Database query timed out after 5 seconds")
			return
		}
		c.String(http.StatusInternalServerError, "database error: %s", err.Error())
		return
	}

	c.JSON(http.StatusOK, recipes)
}

// GetRecipe handles requests to retrieve a single recipe by id.
func (h *Handler) GetRecipe(c *gin.Context) {
	id := c.Param("id")

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	rec, err := h.Store.GetRecipeByID(ctx, id)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			c.String(http.StatusRequestTimeout, "Database query timed out after 5 seconds")
			return
		}
		c.String(http.StatusInternalServerError, "database error: %s", err.Error())
		return
	}

	if rec == nil {
		c.String(http.StatusNotFound, "Recipe not found")
		return
	}

	c.JSON(http.StatusOK, rec)
}

// ToggleFavorite flips the favorite state of a recipe for a user.
func (h *Handler) ToggleFavorite(c *gin.Context) {
	userID := formOrQuery(c, "user_id")
	recipeID := formOrQuery(c, "recipe_id")
	if userID == "" || recipeID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "user_id and recipe_id are required"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	rec, err := h.Store.GetRecipeByID(ctx, recipeID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
		return
	}
	if rec == nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Recipe not found"})
		return
	}

	isFavorite, err := h.Store.ToggleFavorite(ctx, userID, recipeID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
		return
	}

	count, err := h.Store.CountFavorites(ctx, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
		return
	}

	message := "Recipe removed from favorites"
	if isFavorite {
		message = "Recipe added to favorites"
	}

	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"is_favorite":    isFavorite,
		"favorite_count": count,
		"message":        message,
	})
}

// ListFavorites returns a user's favorite recipes.
func (h *Handler) ListFavorites(c *gin.Context) {
	userID := c.Query("user_id")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "user_id is required"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	favorites, err := h.Store.ListFavorites(ctx, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, favorites)
}

// fail renders the uniform failure shape with enough context to re-render
// the input form.
func (h *Handler) fail(c *gin.Context, status int, message, url, restriction string) {
	c.JSON(status, gin.H{
		"success":     false,
		"error":       message,
		"url":         url,
		"restriction": restriction,
	})
}

func formOrQuery(c *gin.Context, key string) string {
	if v := c.PostForm(key); v != "" {
		return v
	}
	return c.Query(key)
}
