// Package database is the MySQL persistence collaborator. The analysis
// engine never touches it; the host application uses it to load recipes and
// ingredient catalogs for batch analysis, and to back the SQL benchmark
// store.
package database

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/go-sql-driver/mysql"

	"menu-profit-engine/internal/models"
	apperrors "menu-profit-engine/pkg/errors"
)

type DB struct {
	conn *sql.DB
}

// New opens a MySQL connection pool and verifies it with a ping.
func New(databaseURL string) (*DB, error) {
	conn, err := sql.Open("mysql", databaseURL)
	if err != nil {
		return nil, apperrors.NewDB("database.New", "opening connection", err)
	}

	conn.SetMaxOpenConns(25)
	conn.SetMaxIdleConns(10)
	conn.SetConnMaxLifetime(10 * time.Minute)
	conn.SetConnMaxIdleTime(5 * time.Minute)

	if err := conn.Ping(); err != nil {
		return nil, apperrors.NewDB("database.New", "pinging database", err)
	}
	return &DB{conn: conn}, nil
}

// Conn exposes the underlying pool for collaborators that speak database/sql
// directly, like the SQL benchmark store.
func (db *DB) Conn() *sql.DB { return db.conn }

func (db *DB) Close() error { return db.conn.Close() }

func (db *DB) Ping(ctx context.Context) error {
	if err := db.conn.PingContext(ctx); err != nil {
		return apperrors.NewDB("database.Ping", "database unreachable", err)
	}
	return nil
}

// GetRecipes loads every recipe with its ingredient lines. Lines stored in
// the database always reference the ingredient catalog by id.
func (db *DB) GetRecipes(ctx context.Context) ([]models.Recipe, error) {
	const recipesQuery = `SELECT id, name, category, portions, price, prep_minutes, prep_notes
		FROM recipes ORDER BY id`

	rows, err := db.conn.QueryContext(ctx, recipesQuery)
	if err != nil {
		return nil, apperrors.NewDB("database.GetRecipes", "querying recipes", err)
	}
	defer rows.Close()

	var recipes []models.Recipe
	index := make(map[int64]int)
	for rows.Next() {
		var r models.Recipe
		var category, prepNotes sql.NullString
		var price sql.NullFloat64
		var prepMinutes sql.NullInt64
		if err := rows.Scan(&r.ID, &r.Name, &category, &r.Portions, &price, &prepMinutes, &prepNotes); err != nil {
			return nil, apperrors.NewDB("database.GetRecipes", "scanning recipe row", err)
		}
		fillOptional(&r, category, price, prepMinutes, prepNotes)
		index[r.ID] = len(recipes)
		recipes = append(recipes, r)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewDB("database.GetRecipes", "iterating recipe rows", err)
	}

	if err := db.attachLines(ctx, recipes, index); err != nil {
		return nil, err
	}
	return recipes, nil
}

// GetRecipeByID loads a single recipe with its ingredient lines. A missing id
// yields (nil, nil).
func (db *DB) GetRecipeByID(ctx context.Context, id int64) (*models.Recipe, error) {
	const q = `SELECT id, name, category, portions, price, prep_minutes, prep_notes
		FROM recipes WHERE id = ?`

	var r models.Recipe
	var category, prepNotes sql.NullString
	var price sql.NullFloat64
	var prepMinutes sql.NullInt64
	err := db.conn.QueryRowContext(ctx, q, id).Scan(&r.ID, &r.Name, &category, &r.Portions, &price, &prepMinutes, &prepNotes)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.NewDB("database.GetRecipeByID", "querying recipe", err)
	}
	fillOptional(&r, category, price, prepMinutes, prepNotes)

	recipes := []models.Recipe{r}
	if err := db.attachLines(ctx, recipes, map[int64]int{r.ID: 0}); err != nil {
		return nil, err
	}
	return &recipes[0], nil
}

func fillOptional(r *models.Recipe, category sql.NullString, price sql.NullFloat64, prepMinutes sql.NullInt64, prepNotes sql.NullString) {
	r.Category = category.String
	if price.Valid {
		p := price.Float64
		r.Price = &p
	}
	if prepMinutes.Valid {
		m := int(prepMinutes.Int64)
		r.PrepMinutes = &m
	}
	if prepNotes.Valid {
		n := prepNotes.String
		r.PrepNotes = &n
	}
}

func (db *DB) attachLines(ctx context.Context, recipes []models.Recipe, index map[int64]int) error {
	if len(recipes) == 0 {
		return nil
	}

	const linesQuery = `SELECT recipe_id, ingredient_id, quantity, unit
		FROM recipe_ingredients ORDER BY recipe_id, position`

	rows, err := db.conn.QueryContext(ctx, linesQuery)
	if err != nil {
		return apperrors.NewDB("database.attachLines", "querying ingredient lines", err)
	}
	defer rows.Close()

	for rows.Next() {
		var recipeID, ingredientID int64
		var quantity float64
		var unit sql.NullString
		if err := rows.Scan(&recipeID, &ingredientID, &quantity, &unit); err != nil {
			return apperrors.NewDB("database.attachLines", "scanning line row", err)
		}
		i, ok := index[recipeID]
		if !ok {
			continue
		}
		id, qty := ingredientID, quantity
		recipes[i].Ingredients = append(recipes[i].Ingredients, models.IngredientLine{
			IngredientID: &id,
			Quantity:     &qty,
			Unit:         unit.String,
		})
	}
	return rows.Err()
}

// Catalog adapts the ingredients table to the catalog interface the cost
// aggregator resolves id-referenced lines through. Lookup failures of any
// kind report the ingredient as unknown; the aggregator degrades the
// breakdown instead of failing.
type Catalog struct {
	db *DB
}

func (db *DB) Catalog() *Catalog { return &Catalog{db: db} }

func (c *Catalog) Ingredient(id int64) (models.Ingredient, bool) {
	const q = `SELECT id, name, category, unit, price_per_unit FROM ingredients WHERE id = ?`

	var ing models.Ingredient
	var category sql.NullString
	err := c.db.conn.QueryRow(q, id).Scan(&ing.ID, &ing.Name, &category, &ing.Unit, &ing.PricePerUnit)
	if err != nil {
		return models.Ingredient{}, false
	}
	ing.Category = category.String
	return ing, true
}
