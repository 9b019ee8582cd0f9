package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"catalog-sync/core/transport"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func newTestClient(serverURL string) *Client {
	tr := transport.New(transport.Config{
		RequestLimit:   1000,
		WindowSeconds:  1,
		TimeoutSeconds: 5,
	}, zap.NewNop())
	cfg := Config{
		BaseURL:        serverURL,
		APIPrefix:      "/wp-json/wc/v3",
		ConsumerKey:    "ck_test",
		ConsumerSecret: "cs_test",
		PageSize:       2,
	}
	return NewClient(cfg, tr, zap.NewNop())
}

func TestGetBySKU(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/wp-json/wc/v3/products", r.URL.Path)
		assert.Equal(t, "ck_test", r.URL.Query().Get("consumer_key"))
		assert.Equal(t, "cs_test", r.URL.Query().Get("consumer_secret"))
		assert.Equal(t, "SKU-1", r.URL.Query().Get("sku"))
		_ = json.NewEncoder(w).Encode([]Item{
			{ID: 42, SKU: "SKU-1", RegularPrice: "10.00", Categories: []CategoryRef{{ID: 7}}},
		})
	}))
	defer server.Close()

	item, err := newTestClient(server.URL).GetBySKU(context.Background(), "SKU-1")
	assert.NoError(t, err)
	assert.NotNil(t, item)
	assert.Equal(t, int64(42), item.ID)
	assert.Equal(t, []int64{7}, item.CategoryIDs())
}

func TestGetBySKUNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("[]"))
	}))
	defer server.Close()

	item, err := newTestClient(server.URL).GetBySKU(context.Background(), "MISSING")
	assert.NoError(t, err)
	assert.Nil(t, item)
}

func TestCreate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/wp-json/wc/v3/products", r.URL.Path)

		var payload ProductPayload
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "SKU-9", payload.SKU)
		assert.Equal(t, "19.90", payload.RegularPrice)
		assert.True(t, payload.ManageStock)

		_ = json.NewEncoder(w).Encode(Item{ID: 9, SKU: payload.SKU})
	}))
	defer server.Close()

	created, err := newTestClient(server.URL).Create(context.Background(), ProductPayload{
		Name:          "Widget",
		SKU:           "SKU-9",
		RegularPrice:  "19.90",
		ManageStock:   true,
		StockQuantity: 3,
		Status:        "publish",
	})
	assert.NoError(t, err)
	assert.Equal(t, int64(9), created.ID)
}

func TestUpdate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/wp-json/wc/v3/products/42", r.URL.Path)
		_ = json.NewEncoder(w).Encode(Item{ID: 42})
	}))
	defer server.Close()

	updated, err := newTestClient(server.URL).Update(context.Background(), 42, ProductPayload{Status: "private"})
	assert.NoError(t, err)
	assert.Equal(t, int64(42), updated.ID)
}

func TestBatchUpdate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/wp-json/wc/v3/products/batch", r.URL.Path)

		var body map[string][]BatchItem
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Len(t, body["update"], 2)
		assert.Equal(t, int64(1), body["update"][0].ID)

		_, _ = w.Write([]byte(`{"update":[{"id":1},{"id":2}]}`))
	}))
	defer server.Close()

	err := newTestClient(server.URL).BatchUpdate(context.Background(), []BatchItem{
		{ID: 1, RegularPrice: "5.00", ManageStock: true, StockQuantity: 1},
		{ID: 2, RegularPrice: "6.00", ManageStock: true, StockQuantity: 2},
	})
	assert.NoError(t, err)
}

func TestBatchUpdateEmptyIsNoop(t *testing.T) {
	client := newTestClient("http://remote.invalid")
	assert.NoError(t, client.BatchUpdate(context.Background(), nil))
}

func TestListCategoriesPaginates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/wp-json/wc/v3/products/categories", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("per_page"))

		switch r.URL.Query().Get("page") {
		case "1":
			_ = json.NewEncoder(w).Encode([]Category{{ID: 1, Name: "A"}, {ID: 2, Name: "B"}})
		case "2":
			_ = json.NewEncoder(w).Encode([]Category{{ID: 3, Name: "C", Parent: 1}})
		default:
			t.Errorf("unexpected page %q", r.URL.Query().Get("page"))
		}
	}))
	defer server.Close()

	cats, err := newTestClient(server.URL).ListCategories(context.Background())
	assert.NoError(t, err)
	assert.Len(t, cats, 3)
	assert.Equal(t, int64(1), cats[2].Parent)
}

func TestCreateCategory(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Hammers", body["name"])
		assert.Equal(t, float64(7), body["parent"])
		_ = json.NewEncoder(w).Encode(Category{ID: 99, Name: "Hammers", Parent: 7})
	}))
	defer server.Close()

	created, err := newTestClient(server.URL).CreateCategory(context.Background(), "Hammers", 7)
	assert.NoError(t, err)
	assert.Equal(t, int64(99), created.ID)
}

func TestRemoteErrorSurfacesStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"code":"product_invalid_sku"}`)
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).Create(context.Background(), ProductPayload{SKU: "dup"})
	assert.Error(t, err)
	var statusErr *transport.StatusError
	assert.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusBadRequest, statusErr.StatusCode)
}
