package store

import (
	"context"
	"strings"
	"time"

	"nadespensa/internal/database"
	"nadespensa/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

/* ---------- 假實作 ---------- */

type fakeFoodRow struct {
	food model.Food
	err  error
}

func (r fakeFoodRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	*dest[0].(*string) = r.food.ID
	*dest[1].(*string) = r.food.Name
	*dest[2].(*int) = r.food.Quantity
	*dest[3].(*time.Time) = r.food.ExpiryDate
	*dest[4].(*time.Time) = r.food.CreatedAt
	*dest[5].(*time.Time) = r.food.UpdatedAt
	return nil
}

type fakeFoodRows struct {
	foods   []model.Food
	i       int
	err     error
	scanErr error
	closed  bool
}

func (r *fakeFoodRows) Close()                                       { r.closed = true }
func (r *fakeFoodRows) Err() error                                   { return r.err }
func (r *fakeFoodRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (r *fakeFoodRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *fakeFoodRows) Values() ([]any, error)                       { return nil, nil }
func (r *fakeFoodRows) RawValues() [][]byte                          { return nil }
func (r *fakeFoodRows) Conn() *pgx.Conn                              { return nil }

func (r *fakeFoodRows) Next() bool {
	if r.i >= len(r.foods) {
		return false
	}
	r.i++
	return true
}

func (r *fakeFoodRows) Scan(dest ...any) error {
	if r.scanErr != nil {
		return r.scanErr
	}
	return fakeFoodRow{food: r.foods[r.i-1]}.Scan(dest...)
}

// memFoods emulates the foods table well enough to exercise the store
// functions end to end: statements are dispatched on their leading keyword.
type memFoods struct {
	rows  map[string]model.Food
	order []string
}

func newMemFoods(foods ...model.Food) *memFoods {
	m := &memFoods{rows: map[string]model.Food{}}
	for _, f := range foods {
		m.rows[f.ID] = f
		m.order = append(m.order, f.ID)
	}
	return m
}

func (m *memFoods) db() *database.FakeDB {
	return &database.FakeDB{
		QueryRowFn: func(_ context.Context, sql string, args ...any) pgx.Row {
			id := args[0].(string)
			switch {
			case strings.HasPrefix(sql, "INSERT"):
				f := model.Food{
					ID:         id,
					Name:       args[1].(string),
					Quantity:   args[2].(int),
					ExpiryDate: args[3].(time.Time),
					CreatedAt:  args[4].(time.Time),
					UpdatedAt:  args[4].(time.Time),
				}
				m.rows[id] = f
				m.order = append(m.order, id)
				return fakeFoodRow{food: f}
			case strings.HasPrefix(sql, "UPDATE"):
				f, ok := m.rows[id]
				if !ok {
					return fakeFoodRow{err: pgx.ErrNoRows}
				}
				if v := args[1].(*string); v != nil {
					f.Name = *v
				}
				if v := args[2].(*int); v != nil {
					f.Quantity = *v
				}
				if v := args[3].(*time.Time); v != nil {
					f.ExpiryDate = *v
				}
				f.UpdatedAt = args[4].(time.Time)
				m.rows[id] = f
				return fakeFoodRow{food: f}
			case strings.HasPrefix(sql, "DELETE"):
				f, ok := m.rows[id]
				if !ok {
					return fakeFoodRow{err: pgx.ErrNoRows}
				}
				delete(m.rows, id)
				return fakeFoodRow{food: f}
			default:
				f, ok := m.rows[id]
				if !ok {
					return fakeFoodRow{err: pgx.ErrNoRows}
				}
				return fakeFoodRow{food: f}
			}
		},
		QueryFn: func(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
			var out []model.Food
			for _, id := range m.order {
				f, ok := m.rows[id]
				if !ok {
					continue
				}
				if len(args) == 2 {
					// name = $1 AND quantity > 0 AND expiry_date >= $2
					if f.Name != args[0].(string) || !f.Available(args[1].(time.Time)) {
						continue
					}
				}
				out = append(out, f)
			}
			return &fakeFoodRows{foods: out}, nil
		},
	}
}
