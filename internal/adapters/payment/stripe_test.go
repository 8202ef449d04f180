package payment

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JUST9N1/Security-Backend/internal/core/services"
)

func checkoutRequest() services.CheckoutRequest {
	return services.CheckoutRequest{
		CustomerEmail: "pat@example.com",
		ReferenceID:   "w-1",
		ProductName:   "Dr. Alice",
		AmountCents:   4999,
		Currency:      "usd",
		SuccessURL:    "https://client.example/checkout-success",
		CancelURL:     "https://api.example/workers/w-1",
	}
}

func TestCreateCheckoutSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/checkout/sessions", r.URL.Path)
		user, _, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "sk_test_1", user)

		require.NoError(t, r.ParseForm())
		assert.Equal(t, "payment", r.PostForm.Get("mode"))
		assert.Equal(t, "4999", r.PostForm.Get("line_items[0][price_data][unit_amount]"))
		assert.Equal(t, "w-1", r.PostForm.Get("client_reference_id"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"cs_test_1","url":"https://checkout.stripe.com/c/cs_test_1"}`))
	}))
	defer srv.Close()

	p := NewStripeProvider(srv.URL, "sk_test_1", time.Second)
	sess, err := p.CreateCheckoutSession(context.Background(), checkoutRequest())
	require.NoError(t, err)
	assert.Equal(t, "cs_test_1", sess.ID)
	assert.Equal(t, "https://checkout.stripe.com/c/cs_test_1", sess.URL)
}

func TestCreateCheckoutSession_StripeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"message":"Invalid currency"}}`))
	}))
	defer srv.Close()

	p := NewStripeProvider(srv.URL, "sk_test_1", time.Second)
	_, err := p.CreateCheckoutSession(context.Background(), checkoutRequest())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid currency")
}

func TestCreateCheckoutSession_NotConfigured(t *testing.T) {
	_, err := NewStripeProvider("", "", 0).CreateCheckoutSession(context.Background(), checkoutRequest())
	assert.ErrorIs(t, err, ErrNotConfigured)
}
