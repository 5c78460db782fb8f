package store

import (
	"context"
	"errors"
	"fmt"

	"nadespensa/internal/database"
	"nadespensa/internal/model"

	"github.com/jackc/pgx/v5"
)

const (
	insertFoodSQL = `INSERT INTO foods (id, name, quantity, expiry_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5)
		RETURNING id, name, quantity, expiry_date, created_at, updated_at`

	// COALESCE keeps the stored value for every field the patch leaves nil.
	updateFoodSQL = `UPDATE foods
		SET name = COALESCE($2, name),
		    quantity = COALESCE($3, quantity),
		    expiry_date = COALESCE($4, expiry_date),
		    updated_at = $5
		WHERE id = $1
		RETURNING id, name, quantity, expiry_date, created_at, updated_at`

	deleteFoodSQL = `DELETE FROM foods WHERE id = $1
		RETURNING id, name, quantity, expiry_date, created_at, updated_at`

	getFoodSQL = `SELECT id, name, quantity, expiry_date, created_at, updated_at
		FROM foods WHERE id = $1`

	listFoodsSQL = `SELECT id, name, quantity, expiry_date, created_at, updated_at
		FROM foods ORDER BY name, expiry_date`

	searchFoodsSQL = `SELECT id, name, quantity, expiry_date, created_at, updated_at
		FROM foods
		WHERE name = $1 AND quantity > 0 AND expiry_date >= $2
		ORDER BY expiry_date`
)

func scanFood(row pgx.Row) (*model.Food, error) {
	f := &model.Food{}
	if err := row.Scan(
		&f.ID,
		&f.Name,
		&f.Quantity,
		&f.ExpiryDate,
		&f.CreatedAt,
		&f.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return f, nil
}

func collectFoods(rows pgx.Rows) ([]model.Food, error) {
	defer rows.Close()
	foods := []model.Food{}
	for rows.Next() {
		f, err := scanFood(rows)
		if err != nil {
			return nil, err
		}
		foods = append(foods, *f)
	}
	return foods, rows.Err()
}

func CreateFood(ctx context.Context, db database.DB, in model.NewFood) (*model.Food, error) {
	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidation, err)
	}
	f, err := scanFood(db.QueryRow(ctx, insertFoodSQL,
		newID(),
		in.Name,
		*in.Quantity,
		in.ExpiryDate.UTC(),
		timeNow().UTC(),
	))
	if err != nil {
		return nil, fmt.Errorf("CreateFood: %w", err)
	}
	return f, nil
}

// UpdateFood merges the patch into the stored record and returns the result.
func UpdateFood(ctx context.Context, db database.DB, id string, patch model.FoodPatch) (*model.Food, error) {
	if !validID(id) {
		return nil, ErrNotFound
	}
	if err := patch.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidation, err)
	}
	if patch.Empty() {
		return GetFood(ctx, db, id)
	}
	if patch.ExpiryDate != nil {
		utc := patch.ExpiryDate.UTC()
		patch.ExpiryDate = &utc
	}

	f, err := scanFood(db.QueryRow(ctx, updateFoodSQL,
		id,
		patch.Name,
		patch.Quantity,
		patch.ExpiryDate,
		timeNow().UTC(),
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("UpdateFood: %w", err)
	}
	return f, nil
}

// DeleteFood removes the record and returns it as it was before deletion.
func DeleteFood(ctx context.Context, db database.DB, id string) (*model.Food, error) {
	if !validID(id) {
		return nil, ErrNotFound
	}
	f, err := scanFood(db.QueryRow(ctx, deleteFoodSQL, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("DeleteFood: %w", err)
	}
	return f, nil
}

func GetFood(ctx context.Context, db database.DB, id string) (*model.Food, error) {
	if !validID(id) {
		return nil, ErrNotFound
	}
	f, err := scanFood(db.QueryRow(ctx, getFoodSQL, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("GetFood: %w", err)
	}
	return f, nil
}

func ListFoods(ctx context.Context, db database.DB) ([]model.Food, error) {
	rows, err := db.Query(ctx, listFoodsSQL)
	if err != nil {
		return nil, fmt.Errorf("ListFoods: %w", err)
	}
	foods, err := collectFoods(rows)
	if err != nil {
		return nil, fmt.Errorf("ListFoods: %w", err)
	}
	return foods, nil
}

// SearchAvailableFoods 以名稱完全比對，且只回傳有庫存、未過期的食材。
// now 於每次呼叫時取得一次。
func SearchAvailableFoods(ctx context.Context, db database.DB, name string) ([]model.Food, error) {
	now := timeNow().UTC()
	rows, err := db.Query(ctx, searchFoodsSQL, name, now)
	if err != nil {
		return nil, fmt.Errorf("SearchAvailableFoods: %w", err)
	}
	foods, err := collectFoods(rows)
	if err != nil {
		return nil, fmt.Errorf("SearchAvailableFoods: %w", err)
	}
	return foods, nil
}
