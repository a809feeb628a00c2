package controllers_test

import (
	"context"
	"net/http"
	"testing"

	"axelmotors/controllers"
	"axelmotors/events"
	"axelmotors/models"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedTool(t *testing.T, f *fixture, id string, stock int) {
	t.Helper()
	require.NoError(t, f.store.CreateTool(context.Background(), &models.Tool{
		ID:                id,
		Name:              "Jack",
		AvailableQuantity: stock,
		Price:             10,
	}))
}

func stockOf(t *testing.T, f *fixture, id string) int {
	t.Helper()
	tool, err := f.store.FindTool(context.Background(), id)
	require.NoError(t, err)
	return tool.AvailableQuantity
}

func TestPlaceOrder(t *testing.T) {
	t.Run("Places the order and decrements stock", func(t *testing.T) {
		f := newFixture(t)
		seedTool(t, f, "T1", 5)

		w := perform(t, f.handler.PlaceOrder, call{
			method: http.MethodPost,
			target: "/orders",
			email:  "a@x.com",
			body:   map[string]any{"toolsId": "T1", "quantity": 2, "email": "a@x.com"},
		})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		order := decode[models.Order](t, w)
		assert.NotEmpty(t, order.ID)
		assert.Equal(t, "T1", order.ToolsID)
		assert.Equal(t, "Jack", order.ToolName)
		assert.Equal(t, 3, stockOf(t, f, "T1"))

		w = perform(t, f.handler.GetOrders, call{method: http.MethodGet, target: "/orders?email=a@x.com", email: "a@x.com"})
		require.Equal(t, http.StatusOK, w.Code)
		orders := decode[[]models.Order](t, w)
		require.Len(t, orders, 1)
		assert.Equal(t, "T1", orders[0].ToolsID)
		assert.Equal(t, 2, orders[0].Quantity)

		assert.Equal(t, []string{events.OrderPlaced}, f.publisher.names())
		assert.Equal(t, float64(1), testutil.ToFloat64(f.metrics.OrdersPlaced.WithLabelValues("placed")))
	})

	t.Run("Accepts the legacy tools_id field", func(t *testing.T) {
		f := newFixture(t)
		seedTool(t, f, "T1", 5)

		w := perform(t, f.handler.PlaceOrder, call{
			method: http.MethodPost,
			target: "/orders",
			email:  "a@x.com",
			body:   map[string]any{"tools_id": "T1", "quantity": 1},
		})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		assert.Equal(t, "a@x.com", decode[models.Order](t, w).Email)
		assert.Equal(t, 4, stockOf(t, f, "T1"))
	})

	t.Run("A replayed idempotency key does not decrement twice", func(t *testing.T) {
		f := newFixture(t)
		seedTool(t, f, "T1", 5)
		req := call{
			method: http.MethodPost,
			target: "/orders",
			email:  "a@x.com",
			body:   map[string]any{"toolsId": "T1", "quantity": 2},
			header: http.Header{controllers.IdempotencyHeader: {"order-1"}},
		}

		first := perform(t, f.handler.PlaceOrder, req)
		require.Equal(t, http.StatusCreated, first.Code, first.Body.String())
		second := perform(t, f.handler.PlaceOrder, req)
		require.Equal(t, http.StatusOK, second.Code, second.Body.String())

		assert.Equal(t, "order-1", decode[models.Order](t, second).ID)
		assert.Equal(t, 3, stockOf(t, f, "T1"))
		assert.Len(t, f.publisher.names(), 1)
	})

	t.Run("An order id is never replayed to another caller", func(t *testing.T) {
		f := newFixture(t)
		seedTool(t, f, "T1", 10)

		first := perform(t, f.handler.PlaceOrder, call{
			method: http.MethodPost,
			target: "/orders",
			email:  "a@x.com",
			body:   map[string]any{"_id": "order-1", "toolsId": "T1", "quantity": 2, "address": "1 Secret Lane"},
		})
		require.Equal(t, http.StatusCreated, first.Code, first.Body.String())

		second := perform(t, f.handler.PlaceOrder, call{
			method: http.MethodPost,
			target: "/orders",
			email:  "b@x.com",
			body:   map[string]any{"_id": "order-1", "toolsId": "T1", "quantity": 4},
		})
		assert.Equal(t, http.StatusConflict, second.Code)
		assert.NotContains(t, second.Body.String(), "Secret Lane")
		assert.NotContains(t, second.Body.String(), "a@x.com")

		changed := perform(t, f.handler.PlaceOrder, call{
			method: http.MethodPost,
			target: "/orders",
			email:  "a@x.com",
			body:   map[string]any{"_id": "order-1", "toolsId": "T1", "quantity": 3},
		})
		assert.Equal(t, http.StatusConflict, changed.Code, "same id, different quantity")

		assert.Equal(t, 8, stockOf(t, f, "T1"))
		orders, err := f.store.ListOrders(context.Background(), "")
		require.NoError(t, err)
		require.Len(t, orders, 1)
		assert.Equal(t, "a@x.com", orders[0].Email)
		assert.Equal(t, float64(2), testutil.ToFloat64(f.metrics.OrdersPlaced.WithLabelValues("id_conflict")))
	})

	t.Run("Rejects orders beyond the available stock", func(t *testing.T) {
		f := newFixture(t)
		seedTool(t, f, "T1", 1)

		w := perform(t, f.handler.PlaceOrder, call{
			method: http.MethodPost,
			target: "/orders",
			email:  "a@x.com",
			body:   map[string]any{"toolsId": "T1", "quantity": 2},
		})
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, 1, stockOf(t, f, "T1"))
		assert.Empty(t, f.publisher.names())
		assert.Equal(t, float64(1), testutil.ToFloat64(f.metrics.OrdersPlaced.WithLabelValues("insufficient_stock")))
	})

	t.Run("Maps invalid input to client errors", func(t *testing.T) {
		f := newFixture(t)
		seedTool(t, f, "T1", 5)

		cases := []struct {
			name   string
			body   any
			status int
		}{
			{"missing tool id", map[string]any{"quantity": 1}, http.StatusBadRequest},
			{"zero quantity", map[string]any{"toolsId": "T1", "quantity": 0}, http.StatusBadRequest},
			{"unknown tool", map[string]any{"toolsId": "T404", "quantity": 1}, http.StatusNotFound},
			{"foreign email", map[string]any{"toolsId": "T1", "quantity": 1, "email": "b@x.com"}, http.StatusForbidden},
			{"malformed body", "{", http.StatusBadRequest},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				w := perform(t, f.handler.PlaceOrder, call{method: http.MethodPost, target: "/orders", email: "a@x.com", body: tc.body})
				assert.Equal(t, tc.status, w.Code, w.Body.String())
			})
		}
		assert.Equal(t, 5, stockOf(t, f, "T1"))
	})

	t.Run("A failed publish still answers 201", func(t *testing.T) {
		f := newFixture(t)
		f.publisher.err = assert.AnError
		seedTool(t, f, "T1", 5)

		w := perform(t, f.handler.PlaceOrder, call{
			method: http.MethodPost,
			target: "/orders",
			email:  "a@x.com",
			body:   map[string]any{"toolsId": "T1", "quantity": 1},
		})
		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, float64(1), testutil.ToFloat64(f.metrics.EventPublishFailed.WithLabelValues(events.OrderPlaced)))
	})
}

func TestGetOrdersForeignEmail(t *testing.T) {
	f := newFixture(t)
	w := perform(t, f.handler.GetOrders, call{method: http.MethodGet, target: "/orders?email=b@x.com", email: "a@x.com"})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.JSONEq(t, `{"error":"Forbidden access"}`, w.Body.String())
}

func TestDeleteOrders(t *testing.T) {
	f := newFixture(t)
	seedTool(t, f, "T1", 10)
	ctx := context.Background()
	for _, email := range []string{"a@x.com", "a@x.com", "b@x.com"} {
		_, err := f.store.PlaceOrder(ctx, &models.Order{ToolsID: "T1", Quantity: 1, Email: email})
		require.NoError(t, err)
	}

	w := perform(t, f.handler.DeleteOrders, call{method: http.MethodDelete, target: "/orders/a@x.com", params: gin.Params{{Key: "email", Value: "a@x.com"}}})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(2), decode[controllers.DeleteResponse](t, w).DeletedCount)

	w = perform(t, f.handler.GetAllOrders, call{method: http.MethodGet, target: "/allOrders", email: "admin@x.com"})
	require.Equal(t, http.StatusOK, w.Code)
	remaining := decode[[]models.Order](t, w)
	require.Len(t, remaining, 1)
	assert.Equal(t, "b@x.com", remaining[0].Email)
}
