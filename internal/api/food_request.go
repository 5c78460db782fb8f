// File: internal/api/food_request.go
package api

import (
	"errors"
	"time"

	"nadespensa/internal/model"
)

var ErrInvalidDate = errors.New("dataDeValidade must be an RFC 3339 timestamp or YYYY-MM-DD")

const dateOnly = "2006-01-02"

// swagger:model api.CreateFoodRequest
type CreateFoodRequest struct {
	Name           string `json:"name" example:"Arroz"`
	Quantidade     *int   `json:"quantidade" example:"5"`
	DataDeValidade string `json:"dataDeValidade" example:"2025-12-31"`
}

// swagger:model api.UpdateFoodRequest
type UpdateFoodRequest struct {
	Name           *string `json:"name,omitempty" example:"Arroz"`
	Quantidade     *int    `json:"quantidade,omitempty" example:"3"`
	DataDeValidade *string `json:"dataDeValidade,omitempty" example:"2026-01-15T00:00:00Z"`
}

// ParseDate 接受 RFC 3339 或 YYYY-MM-DD（視為 UTC 午夜）
func ParseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.ParseInLocation(dateOnly, s, time.UTC); err == nil {
		return t, nil
	}
	return time.Time{}, ErrInvalidDate
}

// ToModel converts the payload; an empty date is left zero so the model
// reports it as missing.
func (r CreateFoodRequest) ToModel() (model.NewFood, error) {
	in := model.NewFood{Name: r.Name, Quantity: r.Quantidade}
	if r.DataDeValidade != "" {
		t, err := ParseDate(r.DataDeValidade)
		if err != nil {
			return model.NewFood{}, err
		}
		in.ExpiryDate = t
	}
	return in, nil
}

func (r UpdateFoodRequest) ToPatch() (model.FoodPatch, error) {
	p := model.FoodPatch{Name: r.Name, Quantity: r.Quantidade}
	if r.DataDeValidade != nil {
		t, err := ParseDate(*r.DataDeValidade)
		if err != nil {
			return model.FoodPatch{}, err
		}
		p.ExpiryDate = &t
	}
	return p, nil
}
