package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"platewise/internal/api"
	"platewise/internal/config"
	"platewise/internal/logging"
	"platewise/internal/nutrition"
	"platewise/internal/recipe"
	"platewise/internal/scrape"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Errorf("failed to load configuration: %w", err))
	}

	log, err := logging.New(cfg.Logging.Level, cfg.Logging.Development)
	if err != nil {
		panic(fmt.Errorf("failed to create logger: %w", err))
	}
	defer log.Sync()

	fetcher := scrape.NewFetcher(cfg.Scrape.FetchTimeout)
	fdcClient := nutrition.NewClient(cfg.FDC.APIKey, cfg.FDC.Timeout)
	resolver := nutrition.NewResolver(fdcClient)

	store, err := recipe.NewPostgresStore(cfg.Database.URL)
	if err != nil {
		panic(fmt.Errorf("error creating postgres store: %w", err))
	}

	handler := api.NewHandler(fetcher, resolver, store, recipe.NewResultCache(), log)
	handler.CacheTTL = cfg.Cache.TTL

	r := gin.Default()

	// Configure CORS middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Split(cfg.Server.AllowOrigins, ","),
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.POST("/recipeparser", handler.ParseRecipe)
	r.GET("/recipes", handler.GetRecipes)
	r.GET("/recipes/:id", handler.GetRecipe)
	r.POST("/favorites/toggle", handler.ToggleFavorite)
	r.GET("/favorites", handler.ListFavorites)

	log.Info("starting server", zap.String("port", cfg.Server.Port))
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		panic(fmt.Errorf("server stopped: %w", err))
	}
}
