package api

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dukerupert/sif/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestClient(t *testing.T, handler http.HandlerFunc, opts ...Option) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(server.URL, testLogger(), opts...), server
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func TestClient_ListProducts(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products", r.URL.Path)
		assert.Equal(t, http.MethodGet, r.Method)
		writeJSON(w, http.StatusOK, []domain.Product{
			{ID: 1, Name: "Floral Midi Dress", PriceCents: 4999},
			{ID: 2, Name: "Silk Scarf", PriceCents: 1500},
		})
	})

	products, err := client.ListProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, int64(4999), products[0].PriceCents)
}

func TestClient_GetProduct_NotFound(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "Product not found"})
	})

	_, err := client.GetProduct(context.Background(), 99)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestClient_SendsBearerToken(t *testing.T) {
	var gotAuth string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		writeJSON(w, http.StatusOK, []domain.WishlistItem{})
	}, WithTokenSource(func() string { return "tok-abc" }))

	_, err := client.ListWishlist(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-abc", gotAuth)
}

func TestClient_NoAuthHeaderWhenAnonymous(t *testing.T) {
	var gotAuth string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		writeJSON(w, http.StatusOK, []domain.Product{})
	})

	_, err := client.ListProducts(context.Background())
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestClient_StatusCodeMapping(t *testing.T) {
	tests := []struct {
		status   int
		wantCode string
	}{
		{http.StatusBadRequest, domain.EINVALID},
		{http.StatusUnauthorized, domain.EUNAUTHORIZED},
		{http.StatusPaymentRequired, domain.EPAYMENT},
		{http.StatusForbidden, domain.EFORBIDDEN},
		{http.StatusNotFound, domain.ENOTFOUND},
		{http.StatusConflict, domain.ECONFLICT},
		{http.StatusGone, domain.EGONE},
		{http.StatusTooManyRequests, domain.ERATELIMIT},
		{http.StatusInternalServerError, domain.EINTERNAL},
		{http.StatusBadGateway, domain.EINTERNAL},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, tt.status, errorResponse{Error: "boom"})
			})

			err := client.do(context.Background(), http.MethodGet, "/anything", nil, nil)
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, domain.ErrorCode(err))
		})
	}
}

func TestClient_PreservesBackendMessage(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "quantity must be positive"})
	})

	err := client.do(context.Background(), http.MethodGet, "/x", nil, nil)
	require.Error(t, err)
	assert.Equal(t, "quantity must be positive", domain.ErrorMessage(err))
}

func TestClient_NonJSONErrorBody(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("<html>gateway</html>"))
	})

	err := client.do(context.Background(), http.MethodGet, "/x", nil, nil)
	require.Error(t, err)
	assert.Equal(t, domain.EINTERNAL, domain.ErrorCode(err))
}

func TestClient_ValidateCoupon(t *testing.T) {
	authed := WithTokenSource(func() string { return "tok-abc" })

	t.Run("valid code", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/coupons/validate", r.URL.Path)
			assert.Equal(t, http.MethodPost, r.Method)

			var body struct {
				Code            string `json:"code"`
				OrderTotalCents int64  `json:"order_total_cents"`
			}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "SAVE20", body.Code)
			assert.Equal(t, int64(9998), body.OrderTotalCents)

			writeJSON(w, http.StatusOK, domain.Coupon{
				ID: 1, Code: "SAVE20", Type: domain.CouponPercentage, Value: 20, IsActive: true,
			})
		}, authed)

		coupon, err := client.ValidateCoupon(context.Background(), "SAVE20", 9998)
		require.NoError(t, err)
		assert.Equal(t, domain.CouponPercentage, coupon.Type)
	})

	t.Run("unknown code", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusNotFound, errorResponse{Error: "no such coupon"})
		}, authed)

		_, err := client.ValidateCoupon(context.Background(), "NOPE", 9998)
		assert.ErrorIs(t, err, domain.ErrCouponNotFound)
	})

	t.Run("anonymous caller fails before the network", func(t *testing.T) {
		var called bool
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			called = true
		})

		_, err := client.ValidateCoupon(context.Background(), "SAVE20", 9998)
		assert.ErrorIs(t, err, domain.ErrNotAuthenticated)
		assert.False(t, called, "no request goes out without a token")
	})
}

func TestClient_WishlistIdempotency(t *testing.T) {
	t.Run("duplicate add treated as success", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusConflict, errorResponse{Error: "already saved"})
		})

		err := client.AddToWishlist(context.Background(), 1)
		assert.NoError(t, err)
	})

	t.Run("removing absent item treated as success", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusNotFound, errorResponse{Error: "not saved"})
		})

		err := client.RemoveFromWishlist(context.Background(), 1)
		assert.NoError(t, err)
	})
}

func TestClient_Login(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			var params LoginParams
			require.NoError(t, json.NewDecoder(r.Body).Decode(&params))
			assert.Equal(t, "maria@example.com", params.Email)
			writeJSON(w, http.StatusOK, domain.Session{
				Token: "tok-123",
				User:  domain.User{ID: 7, Email: params.Email},
			})
		})

		session, err := client.Login(context.Background(), LoginParams{
			Email:    "maria@example.com",
			Password: "hunter2",
		})
		require.NoError(t, err)
		assert.Equal(t, "tok-123", session.Token)
		assert.Equal(t, int64(7), session.User.ID)
	})

	t.Run("bad credentials", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "nope"})
		})

		_, err := client.Login(context.Background(), LoginParams{Email: "a@b.c", Password: "x"})
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})
}

func TestClient_VerifyToken(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/verify", r.URL.Path)
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "Bearer tok-restore", r.Header.Get("Authorization"),
			"the token under test rides the auth header")
		writeJSON(w, http.StatusOK, domain.User{ID: 7, Email: "maria@example.com"})
	})

	user, err := client.VerifyToken(context.Background(), "tok-restore")
	require.NoError(t, err)
	assert.Equal(t, int64(7), user.ID)
}

func TestClient_CuratedProductLists(t *testing.T) {
	var gotQuery string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		writeJSON(w, http.StatusOK, []domain.Product{{ID: 1}})
	})

	_, err := client.ListNewProducts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "is_new=true", gotQuery)

	_, err = client.ListSaleProducts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "is_sale=true", gotQuery)
}

func TestClient_CancelOrder(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/orders/42/cancel", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		writeJSON(w, http.StatusOK, domain.Order{ID: 42, Status: domain.OrderStatusCancelled})
	})

	order, err := client.CancelOrder(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusCancelled, order.Status)
}

func TestClient_CreateReview_Duplicate(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusConflict, errorResponse{Error: "already reviewed"})
	})

	_, err := client.CreateReview(context.Background(), CreateReviewParams{ProductID: 1, Rating: 5})
	assert.ErrorIs(t, err, domain.ErrDuplicateReview)
}
