package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrowork/agrowork-cli/internal/core/domain"
	"github.com/agrowork/agrowork-cli/internal/core/ports"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c := NewClient(Options{BaseURL: srv.URL, Timeout: 5 * time.Second}, zerolog.Nop())
	return c, srv
}

func TestClient_Login_Success(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/auth/login", r.URL.Path)
		require.Empty(t, r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":{"token":"t1","user":{"id":"1","username":"f1","role":"farmer"}},"message":"ok"}`))
	}))

	res, err := c.Login(context.Background(), "f1", "p")
	require.NoError(t, err)
	assert.Equal(t, "t1", res.Token)
	assert.Equal(t, domain.RoleFarmer, res.User.Role)
	assert.Equal(t, "1", res.User.ID)
}

func TestClient_Login_NumericUserID(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"data":{"token":"t1","user":{"id":7,"username":"f1","role":"farmer"}}}`))
	}))

	res, err := c.Login(context.Background(), "f1", "p")
	require.NoError(t, err)
	assert.Equal(t, "7", res.User.ID)
}

func TestClient_Login_InvalidCredentials(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"wrong username or password"}`))
	}))

	_, err := c.Login(context.Background(), "f1", "bad")
	require.ErrorIs(t, err, domain.ErrAuth)
	assert.Equal(t, "wrong username or password", err.Error())
}

func TestClient_Login_ServerDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close()
	c := NewClient(Options{BaseURL: srv.URL, Timeout: time.Second}, zerolog.Nop())

	_, err := c.Login(context.Background(), "f1", "p")
	require.ErrorIs(t, err, domain.ErrNetwork)
}

func TestClient_Login_MissingTokenIsDataShapeError(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"data":{"user":{"id":"1","username":"f1","role":"farmer"}}}`))
	}))

	_, err := c.Login(context.Background(), "f1", "p")
	require.ErrorIs(t, err, domain.ErrDataShape)
}

func TestClient_ListMyPlacedOrders_AttachesBearerToken(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/orders/my-placed-orders", r.URL.Path)
		require.Equal(t, "Bearer t1", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"data":[{"id":"o1","description":"harvest","status":"pending","wage":100,"farmerId":"1","laborerId":"2","createdAt":"2026-03-10T08:00:00Z"}]}`))
	}))

	orders, err := c.ListMyPlacedOrders(context.Background(), "t1")
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "o1", orders[0].ID)
	assert.Equal(t, domain.StatusPending, orders[0].Status)
	assert.Equal(t, 2026, orders[0].CreatedAt.Year())
}

func TestClient_ListMyOrders_NonArrayPayload(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"data":{},"message":"ok"}`))
	}))

	_, err := c.ListMyOrders(context.Background(), "t1")
	require.ErrorIs(t, err, domain.ErrDataShape)
}

func TestClient_ListMyOrders_SkipsUndecodableEntries(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"data":[
			{"id":"o1","description":"harvest","status":"pending","farmerId":"1","laborerId":"2"},
			{"id":"o2","description":{"oops":true},"status":"pending","farmerId":"1","laborerId":"2"}
		]}`))
	}))

	orders, err := c.ListMyOrders(context.Background(), "t1")
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "o1", orders[0].ID)
}

func TestClient_CreateOrder_LocalValidation(t *testing.T) {
	called := false
	c, _ := newTestClient(t, http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		called = true
	}))

	_, err := c.CreateOrder(context.Background(), "t1", ports.OrderDraft{Description: "harvest"})
	require.ErrorIs(t, err, domain.ErrValidation)
	assert.False(t, called, "a draft failing local validation must not reach the wire")
	assert.Contains(t, err.Error(), "laborerid is required")
}

func TestClient_CreateOrder_Success(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/orders", r.URL.Path)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"data":{"id":"o9","description":"harvest","status":"pending","wage":150,"farmerId":"1","laborerId":"2"}}`))
	}))

	order, err := c.CreateOrder(context.Background(), "t1", ports.OrderDraft{
		LaborerID:   "2",
		Description: "harvest",
		Wage:        150,
		StartDate:   "2026-03-11",
		EndDate:     "2026-03-12",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, order.Status)
	assert.Equal(t, "o9", order.ID)
}

func TestClient_UpdateOrderStatus_RejectedTransition(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPatch, r.Method)
		require.Equal(t, "/orders/o1/status", r.URL.Path)
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"message":"cannot move completed order to pending"}`))
	}))

	_, err := c.UpdateOrderStatus(context.Background(), "t1", "o1", domain.StatusPending)
	require.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.Equal(t, "cannot move completed order to pending", err.Error())
}

func TestClient_UpdateOrderStatus_ExpiredToken(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"token expired"}`))
	}))

	_, err := c.UpdateOrderStatus(context.Background(), "stale", "o1", domain.StatusAccepted)
	require.ErrorIs(t, err, domain.ErrAuth)
}

func TestClient_ListLaborers(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/laborers", r.URL.Path)
		_, _ = w.Write([]byte(`{"data":[{"id":3,"username":"l1","skills":["harvesting"],"age":28}]}`))
	}))

	laborers, err := c.ListLaborers(context.Background(), "t1")
	require.NoError(t, err)
	require.Len(t, laborers, 1)
	assert.Equal(t, "3", laborers[0].ID)
	assert.Equal(t, []string{"harvesting"}, laborers[0].Skills)
}
