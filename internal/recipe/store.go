package recipe

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// Store defines the interface for recipe data operations.
type Store interface {
	UpsertRecipe(ctx context.Context, recipe *Recipe) (string, error)
	GetRecipeByID(ctx context.Context, id string) (*Recipe, error)
	ListRecipes(ctx context.Context) ([]*Recipe, error)
	ToggleFavorite(ctx context.Context, userID, recipeID string) (bool, error)
	CountFavorites(ctx context.Context, userID string) (int, error)
	ListFavorites(ctx context.Context, userID string) ([]*Recipe, error)
}

// PostgresStore implements the Store interface for PostgreSQL.
type PostgresStore struct {
	db *sqlx.DB
}

// NewPostgresStore creates a new PostgresStore.
func NewPostgresStore(dataSourceName string) (*PostgresStore, error) {
	db, err := sqlx.Connect("postgres", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Create recipes table if not exists
	schema := `
	CREATE TABLE IF NOT EXISTS recipes (
		id TEXT PRIMARY KEY,
		source_url TEXT UNIQUE NOT NULL,
		title TEXT,
		ingredients JSONB,
		instructions TEXT
	);
	`
	_, err = db.Exec(schema)
	if err != nil {
		return nil, fmt.Errorf("failed to create recipes table: %w", err)
	}

	// Create favorites table if not exists
	schema = `
	CREATE TABLE IF NOT EXISTS favorites (
		user_id TEXT NOT NULL,
		recipe_id TEXT NOT NULL REFERENCES recipes(id) ON DELETE CASCADE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		PRIMARY KEY (user_id, recipe_id)
	);
	`
	_, err = db.Exec(schema)
	if err != nil {
		return nil, fmt.Errorf("failed to create favorites table: %w", err)
	}

	return &PostgresStore{db: db}, nil
}

// UpsertRecipe inserts a recipe or updates the row already holding its
// source URL, returning the record id either way.
func (s *PostgresStore) UpsertRecipe(ctx context.Context, recipe *Recipe) (string, error) {
	ingredientsJSON, err := json.Marshal(recipe.Ingredients)
	if err != nil {
		return "", fmt.Errorf("failed to marshal ingredients: %w", err)
	}

	var id string
	err = s.db.QueryRowContext(ctx,
		`INSERT INTO recipes (id, source_url, title, ingredients, instructions)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (source_url) DO UPDATE SET title = $3, ingredients = $4, instructions = $5
		 RETURNING id`,
		uuid.NewString(),
		recipe.SourceURL,
		recipe.Title,
		ingredientsJSON,
		recipe.Instructions,
	).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("failed to upsert recipe: %w", err)
	}

	recipe.ID = id
	return id, nil
}

// GetRecipeByID retrieves a recipe by its record id.
func (s *PostgresStore) GetRecipeByID(ctx context.Context, id string) (*Recipe, error) {
	var r Recipe
	var ingredientsJSON []byte

	err := s.db.QueryRowContext(ctx,
		"SELECT id, source_url, title, ingredients, instructions FROM recipes WHERE id = $1", id).Scan(
		&r.ID,
		&r.SourceURL,
		&r.Title,
		&ingredientsJSON,
		&r.Instructions,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // Recipe not found
		}
		return nil, fmt.Errorf("failed to get recipe by id: %w", err)
	}

	if err := json.Unmarshal(ingredientsJSON, &r.Ingredients); err != nil {
		return nil, fmt.Errorf("failed to unmarshal ingredients: %w", err)
	}

	return &r, nil
}

// ListRecipes retrieves all persisted recipes.
func (s *PostgresStore) ListRecipes(ctx context.Context) ([]*Recipe, error) {
	rows, err := s.db.QueryxContext(ctx,
		"SELECT id, source_url, title, ingredients, instructions FROM recipes")
	if err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}
	defer rows.Close()

	return scanRecipes(rows)
}

// ToggleFavorite removes the favorite if it exists, otherwise creates it.
// The returned bool reports whether the recipe is a favorite afterwards.
func (s *PostgresStore) ToggleFavorite(ctx context.Context, userID, recipeID string) (bool, error) {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM favorites WHERE user_id = $1 AND recipe_id = $2", userID, recipeID)
	if err != nil {
		return false, fmt.Errorf("failed to remove favorite: %w", err)
	}

	deleted, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}
	if deleted > 0 {
		return false, nil
	}

	_, err = s.db.ExecContext(ctx,
		"INSERT INTO favorites (user_id, recipe_id) VALUES ($1, $2)", userID, recipeID)
	if err != nil {
		return false, fmt.Errorf("failed to add favorite: %w", err)
	}

	return true, nil
}

// CountFavorites returns how many recipes the user has favorited.
func (s *PostgresStore) CountFavorites(ctx context.Context, userID string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM favorites WHERE user_id = $1", userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count favorites: %w", err)
	}
	return count, nil
}

// ListFavorites retrieves the user's favorite recipes, newest first.
func (s *PostgresStore) ListFavorites(ctx context.Context, userID string) ([]*Recipe, error) {
	rows, err := s.db.QueryxContext(ctx,
		`SELECT r.id, r.source_url, r.title, r.ingredients, r.instructions
		 FROM recipes r
		 JOIN favorites f ON f.recipe_id = r.id
		 WHERE f.user_id = $1
		 ORDER BY f.created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}
	defer rows.Close()

	return scanRecipes(rows)
}

func scanRecipes(rows *sqlx.Rows) ([]*Recipe, error) {
	var recipes []*Recipe
	for rows.Next() {
		var r Recipe
		var ingredientsJSON []byte
		err := rows.Scan(
			&r.ID,
			&r.SourceURL,
			&r.Title,
			&ingredientsJSON,
			&r.Instructions,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan recipe row: %w", err)
		}

		if err := json.Unmarshal(ingredientsJSON, &r.Ingredients); err != nil {
			return nil, fmt.Errorf("failed to unmarshal ingredients: %w", err)
		}
		recipes = append(recipes, &r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return recipes, nil
}
