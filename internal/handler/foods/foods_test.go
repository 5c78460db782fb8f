package foods

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"nadespensa/internal/cache"
	"nadespensa/internal/database"
	"nadespensa/internal/model"
	"nadespensa/internal/store"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func restore() {
	createFood = store.CreateFood
	updateFood = store.UpdateFood
	deleteFood = store.DeleteFood
	getFood = store.GetFood
	listFoods = store.ListFoods
	searchAvailableFoods = store.SearchAvailableFoods
}

// memFoods 以 map 取代 store 函式，保留 not-found 與驗證語意
type memFoods struct {
	rows    map[string]model.Food
	seq     int
	getHits int
}

func useMemFoods(t *testing.T, now time.Time) *memFoods {
	t.Cleanup(restore)
	m := &memFoods{rows: map[string]model.Food{}}
	createFood = func(_ context.Context, _ database.DB, in model.NewFood) (*model.Food, error) {
		if err := in.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %w", store.ErrValidation, err)
		}
		m.seq++
		f := model.Food{ID: fmt.Sprintf("f%d", m.seq), Name: in.Name, Quantity: *in.Quantity, ExpiryDate: in.ExpiryDate}
		m.rows[f.ID] = f
		return &f, nil
	}
	updateFood = func(_ context.Context, _ database.DB, id string, p model.FoodPatch) (*model.Food, error) {
		f, ok := m.rows[id]
		if !ok {
			return nil, store.ErrNotFound
		}
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %w", store.ErrValidation, err)
		}
		if p.Name != nil {
			f.Name = *p.Name
		}
		if p.Quantity != nil {
			f.Quantity = *p.Quantity
		}
		if p.ExpiryDate != nil {
			f.ExpiryDate = *p.ExpiryDate
		}
		m.rows[id] = f
		return &f, nil
	}
	deleteFood = func(_ context.Context, _ database.DB, id string) (*model.Food, error) {
		f, ok := m.rows[id]
		if !ok {
			return nil, store.ErrNotFound
		}
		delete(m.rows, id)
		return &f, nil
	}
	getFood = func(_ context.Context, _ database.DB, id string) (*model.Food, error) {
		m.getHits++
		f, ok := m.rows[id]
		if !ok {
			return nil, store.ErrNotFound
		}
		return &f, nil
	}
	listFoods = func(context.Context, database.DB) ([]model.Food, error) {
		out := []model.Food{}
		for _, f := range m.rows {
			out = append(out, f)
		}
		return out, nil
	}
	searchAvailableFoods = func(_ context.Context, _ database.DB, name string) ([]model.Food, error) {
		out := []model.Food{}
		for _, f := range m.rows {
			if f.Name == name && f.Available(now) {
				out = append(out, f)
			}
		}
		return out, nil
	}
	return m
}

func doReq(h echo.HandlerFunc, method, target, id, body string) *httptest.ResponseRecorder {
	e := echo.New()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	ctx := e.NewContext(req, rec)
	if id != "" {
		ctx.SetParamNames("id")
		ctx.SetParamValues(id)
	}
	_ = h(ctx)
	return rec
}

func decodeFood(t *testing.T, rec *httptest.ResponseRecorder) model.Food {
	t.Helper()
	var f model.Food
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &f))
	return f
}

func TestCreateFoodHandler(t *testing.T) {
	mem := useMemFoods(t, time.Now())
	h := CreateFoodHandler(&database.FakeDB{})

	rec := doReq(h, http.MethodPost, "/foods", "", `{"name":"Arroz","quantidade":5,"dataDeValidade":"2030-01-01"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	f := decodeFood(t, rec)
	require.Equal(t, "Arroz", f.Name)
	require.Equal(t, 5, f.Quantity)
	require.Equal(t, time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC), f.ExpiryDate.UTC())
	require.Contains(t, rec.Body.String(), `"quantidade":5`)

	// quantidade 0 合法
	rec = doReq(h, http.MethodPost, "/foods", "", `{"name":"Sal","quantidade":0,"dataDeValidade":"2030-01-01T00:00:00Z"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	cases := []struct {
		name string
		body string
		msg  string
	}{
		{"missing name", `{"quantidade":1,"dataDeValidade":"2030-01-01"}`, "name is required"},
		{"missing quantity", `{"name":"Arroz","dataDeValidade":"2030-01-01"}`, "quantidade is required"},
		{"negative quantity", `{"name":"Arroz","quantidade":-1,"dataDeValidade":"2030-01-01"}`, "quantidade must not be negative"},
		{"quantity over int4", `{"name":"Arroz","quantidade":3000000000,"dataDeValidade":"2030-01-01"}`, "quantidade is too large"},
		{"missing date", `{"name":"Arroz","quantidade":1}`, "dataDeValidade is required"},
		{"bad date", `{"name":"Arroz","quantidade":1,"dataDeValidade":"01/01/2030"}`, "dataDeValidade must be"},
		{"bad json", `{"name":`, "invalid request body"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := doReq(h, http.MethodPost, "/foods", "", tc.body)
			require.Equal(t, http.StatusBadRequest, rec.Code)
			require.Contains(t, rec.Body.String(), tc.msg)
		})
	}
	require.Len(t, mem.rows, 2)

	createFood = func(context.Context, database.DB, model.NewFood) (*model.Food, error) {
		return nil, errors.New("pool closed")
	}
	rec = doReq(h, http.MethodPost, "/foods", "", `{"name":"Arroz","quantidade":5,"dataDeValidade":"2030-01-01"}`)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.NotContains(t, rec.Body.String(), "pool closed")
}

func TestUpdateFoodHandler(t *testing.T) {
	mem := useMemFoods(t, time.Now())
	exp := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	mem.rows["f1"] = model.Food{ID: "f1", Name: "Arroz", Quantity: 5, ExpiryDate: exp}
	mem.rows["f2"] = model.Food{ID: "f2", Name: "Feijao", Quantity: 2, ExpiryDate: exp}

	mc := cache.NewMemCache()
	fc := cache.NewFoodCache(mc, time.Minute)
	mc.Data["food:f1"] = `{"id":"f1","name":"stale"}`
	h := UpdateFoodHandler(&database.FakeDB{}, fc)

	rec := doReq(h, http.MethodPut, "/foods/f1", "f1", `{"quantidade":1}`)
	require.Equal(t, http.StatusOK, rec.Code)
	f := decodeFood(t, rec)
	require.Equal(t, "Arroz", f.Name)
	require.Equal(t, 1, f.Quantity)
	require.NotContains(t, mc.Data, "food:f1")

	rec = doReq(h, http.MethodPut, "/foods/f1", "f1", `{"quantidade":-3}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	rec = doReq(h, http.MethodPut, "/foods/f1", "f1", `{"quantidade":3000000000}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "quantidade is too large")
	rec = doReq(h, http.MethodPut, "/foods/f1", "f1", `{"name":""}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	rec = doReq(h, http.MethodPut, "/foods/f1", "f1", `{"dataDeValidade":"never"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, 1, mem.rows["f1"].Quantity)

	rec = doReq(h, http.MethodPut, "/foods/nope", "nope", `{"quantidade":9}`)
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Contains(t, rec.Body.String(), "food not found")
	require.Equal(t, 2, mem.rows["f2"].Quantity)
	require.Len(t, mem.rows, 2)
}

func TestDeleteFoodHandler(t *testing.T) {
	mem := useMemFoods(t, time.Now())
	mem.rows["f1"] = model.Food{ID: "f1", Name: "Leite", Quantity: 1}

	mc := cache.NewMemCache()
	mc.Data["food:f1"] = `{"id":"f1"}`
	h := DeleteFoodHandler(&database.FakeDB{}, cache.NewFoodCache(mc, time.Minute))

	rec := doReq(h, http.MethodDelete, "/foods/f1", "f1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "Leite", decodeFood(t, rec).Name)
	require.NotContains(t, mc.Data, "food:f1")

	rec = doReq(h, http.MethodDelete, "/foods/f1", "f1", "")
	require.Equal(t, http.StatusNotFound, rec.Code)

	deleteFood = func(context.Context, database.DB, string) (*model.Food, error) {
		return nil, errors.New("timeout")
	}
	rec = doReq(h, http.MethodDelete, "/foods/f1", "f1", "")
	require.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestGetFoodHandlerReadThrough(t *testing.T) {
	mem := useMemFoods(t, time.Now())
	mem.rows["f1"] = model.Food{ID: "f1", Name: "Leite", Quantity: 1}

	mc := cache.NewMemCache()
	fc := cache.NewFoodCache(mc, time.Minute)
	h := GetFoodHandler(&database.FakeDB{}, fc)

	rec := doReq(h, http.MethodGet, "/foods/f1", "f1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, 1, mem.getHits)
	require.Contains(t, mc.Data, "food:f1")

	rec = doReq(h, http.MethodGet, "/foods/f1", "f1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "Leite", decodeFood(t, rec).Name)
	require.Equal(t, 1, mem.getHits)

	rec = doReq(h, http.MethodGet, "/foods/f9", "f9", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetFoodHandlerCacheDown(t *testing.T) {
	mem := useMemFoods(t, time.Now())
	mem.rows["f1"] = model.Food{ID: "f1", Name: "Leite", Quantity: 1}

	broken := &cache.FakeCache{
		GetFn: func(context.Context, string) *redis.StringCmd {
			return redis.NewStringResult("", errors.New("connection refused"))
		},
	}
	rec := doReq(GetFoodHandler(&database.FakeDB{}, cache.NewFoodCache(broken, time.Minute)), http.MethodGet, "/foods/f1", "f1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, 1, mem.getHits)

	// 沒有快取時直接查資料庫
	rec = doReq(GetFoodHandler(&database.FakeDB{}, nil), http.MethodGet, "/foods/f1", "f1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, 2, mem.getHits)
}

func TestGetFoodHandlerDoesNotRefillAfterConcurrentWrite(t *testing.T) {
	mem := useMemFoods(t, time.Now())
	mem.rows["f1"] = model.Food{ID: "f1", Name: "Leite", Quantity: 1}

	mc := cache.NewMemCache()
	fc := cache.NewFoodCache(mc, time.Minute)
	get := GetFoodHandler(&database.FakeDB{}, fc)
	put := UpdateFoodHandler(&database.FakeDB{}, fc)

	// 第一次讀取拿到舊資料，回傳前另一個請求完成更新
	storeGet := getFood
	interleaved := false
	getFood = func(ctx context.Context, db database.DB, id string) (*model.Food, error) {
		f, err := storeGet(ctx, db, id)
		if !interleaved {
			interleaved = true
			rec := doReq(put, http.MethodPut, "/foods/f1", "f1", `{"quantidade":9}`)
			require.Equal(t, http.StatusOK, rec.Code)
		}
		return f, err
	}

	rec := doReq(get, http.MethodGet, "/foods/f1", "f1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, 1, decodeFood(t, rec).Quantity)
	require.NotContains(t, mc.Data, "food:f1")

	rec = doReq(get, http.MethodGet, "/foods/f1", "f1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, 9, decodeFood(t, rec).Quantity)

	// 之後的讀取由快取提供，且為更新後的值
	rec = doReq(get, http.MethodGet, "/foods/f1", "f1", "")
	require.Equal(t, 9, decodeFood(t, rec).Quantity)
	require.Equal(t, 2, mem.getHits)
}

func TestGetFoodHandlerDoesNotRefillAfterConcurrentDelete(t *testing.T) {
	mem := useMemFoods(t, time.Now())
	mem.rows["f1"] = model.Food{ID: "f1", Name: "Leite", Quantity: 1}

	mc := cache.NewMemCache()
	fc := cache.NewFoodCache(mc, time.Minute)
	get := GetFoodHandler(&database.FakeDB{}, fc)
	del := DeleteFoodHandler(&database.FakeDB{}, fc)

	storeGet := getFood
	interleaved := false
	getFood = func(ctx context.Context, db database.DB, id string) (*model.Food, error) {
		f, err := storeGet(ctx, db, id)
		if !interleaved {
			interleaved = true
			require.Equal(t, http.StatusOK, doReq(del, http.MethodDelete, "/foods/f1", "f1", "").Code)
		}
		return f, err
	}

	require.Equal(t, http.StatusOK, doReq(get, http.MethodGet, "/foods/f1", "f1", "").Code)
	require.Equal(t, http.StatusNotFound, doReq(get, http.MethodGet, "/foods/f1", "f1", "").Code)
}

func TestListFoodsHandler(t *testing.T) {
	now := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	mem := useMemFoods(t, now)
	mem.rows["a"] = model.Food{ID: "a", Name: "Rice", Quantity: 5, ExpiryDate: now.Add(24 * time.Hour)}
	mem.rows["b"] = model.Food{ID: "b", Name: "Rice", Quantity: 0, ExpiryDate: now.Add(24 * time.Hour)}
	mem.rows["c"] = model.Food{ID: "c", Name: "Rice", Quantity: 3, ExpiryDate: now.Add(-24 * time.Hour)}
	h := ListFoodsHandler(&database.FakeDB{})

	rec := doReq(h, http.MethodGet, "/foods", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var all []model.Food
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &all))
	require.Len(t, all, 3)

	rec = doReq(h, http.MethodGet, "/foods?nome=Rice", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var hits []model.Food
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &hits))
	require.Len(t, hits, 1)
	require.Equal(t, "a", hits[0].ID)

	rec = doReq(h, http.MethodGet, "/foods?nome=Beans", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `[]`, rec.Body.String())

	searchAvailableFoods = func(context.Context, database.DB, string) ([]model.Food, error) {
		return nil, errors.New("boom")
	}
	rec = doReq(h, http.MethodGet, "/foods?nome=Rice", "", "")
	require.Equal(t, http.StatusInternalServerError, rec.Code)
}
