// File: internal/model/food.go
package model

import (
	"errors"
	"math"
	"strings"
	"time"
)

var (
	ErrNameRequired     = errors.New("name is required")
	ErrQuantityRequired = errors.New("quantidade is required")
	ErrQuantityNegative = errors.New("quantidade must not be negative")
	ErrQuantityTooLarge = errors.New("quantidade is too large")
	ErrExpiryRequired   = errors.New("dataDeValidade is required")
)

// MaxQuantity quantity 欄位為 INTEGER (int4)
const MaxQuantity = math.MaxInt32

func validQuantity(q int) error {
	if q < 0 {
		return ErrQuantityNegative
	}
	if q > MaxQuantity {
		return ErrQuantityTooLarge
	}
	return nil
}

// Food 一筆庫存食材
type Food struct {
	ID         string    `db:"id" json:"id"`
	Name       string    `db:"name" json:"name"`
	Quantity   int       `db:"quantity" json:"quantidade"`
	ExpiryDate time.Time `db:"expiry_date" json:"dataDeValidade"`
	CreatedAt  time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt  time.Time `db:"updated_at" json:"updatedAt"`
}

// Available reports whether the record is in stock and not expired at now.
func (f Food) Available(now time.Time) bool {
	return f.Quantity > 0 && !f.ExpiryDate.Before(now)
}

// NewFood 建立食材時的輸入；Quantity 為指標以區分「未提供」與 0
type NewFood struct {
	Name       string
	Quantity   *int
	ExpiryDate time.Time
}

func (n NewFood) Validate() error {
	if strings.TrimSpace(n.Name) == "" {
		return ErrNameRequired
	}
	if n.Quantity == nil {
		return ErrQuantityRequired
	}
	if err := validQuantity(*n.Quantity); err != nil {
		return err
	}
	if n.ExpiryDate.IsZero() {
		return ErrExpiryRequired
	}
	return nil
}

// FoodPatch is a partial update; nil fields are left untouched.
type FoodPatch struct {
	Name       *string
	Quantity   *int
	ExpiryDate *time.Time
}

// Validate applies the creation rules to every field that is present.
func (p FoodPatch) Validate() error {
	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		return ErrNameRequired
	}
	if p.Quantity != nil {
		if err := validQuantity(*p.Quantity); err != nil {
			return err
		}
	}
	if p.ExpiryDate != nil && p.ExpiryDate.IsZero() {
		return ErrExpiryRequired
	}
	return nil
}

func (p FoodPatch) Empty() bool {
	return p.Name == nil && p.Quantity == nil && p.ExpiryDate == nil
}
