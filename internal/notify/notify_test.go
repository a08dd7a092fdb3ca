package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Ashira-hub/online-ordering-system/internal/domain"
)

func testReceipt() Receipt {
	return Receipt{
		TransactionID: "TXN-1",
		Amount:        "399.00",
		Currency:      "PHP",
		Description:   "Online Order",
		PayerName:     "Juan Dela Cruz",
		PayerEmail:    "buyer@example.com",
		When:          time.Date(2026, 8, 31, 12, 30, 0, 0, time.UTC),
		Items: []domain.LineItem{
			{ProductID: 1, Name: "Sisig", Store: "Manam", UnitPrice: "150.00", Quantity: 2, LineTotal: "300.00", Currency: "PHP"},
			{ProductID: 2, Name: "Halo-Halo", UnitPrice: "99.00", Quantity: 1, LineTotal: "99.00", Currency: "PHP"},
		},
	}
}

func TestReceiptHTML_ItemizedLines(t *testing.T) {
	html, err := testReceipt().HTML()
	require.NoError(t, err)

	assert.Contains(t, html, "Juan Dela Cruz")
	assert.Contains(t, html, "Transaction ID:</strong> TXN-1")
	assert.Contains(t, html, "PHP 399.00")
	assert.Contains(t, html, "Sisig")
	assert.Contains(t, html, "( Manam )")
	assert.Contains(t, html, "PHP 300.00")
	assert.Contains(t, html, "PHP 99.00")
}

func TestReceiptHTML_NoItemsNoTable(t *testing.T) {
	r := testReceipt()
	r.Items = nil
	r.PayerName = ""

	html, err := r.HTML()
	require.NoError(t, err)
	assert.NotContains(t, html, "<table")
	assert.Contains(t, html, "Hello Customer")
}

func TestSendPaymentReceipt(t *testing.T) {
	var got sendRequest
	var gotPath string
	var authOK bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		user, pass, ok := r.BasicAuth()
		authOK = ok && user == "notif-id" && pass == "notif-secret"
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	sut := &APIClient{
		clientID: "notif-id",
		secret:   "notif-secret",
		baseURL:  srv.URL,
		http:     srv.Client(),
		logger:   zap.NewNop(),
	}

	err := sut.SendPaymentReceipt(context.Background(), "buyer@example.com", testReceipt())
	require.NoError(t, err)

	assert.Equal(t, "/notif-id/sender", gotPath)
	assert.True(t, authOK)
	assert.Equal(t, "send", got.Type)
	assert.Equal(t, "buyer@example.com", got.To.Email)
	assert.Equal(t, "Payment received: PHP 399.00", got.Email.Subject)
	assert.Contains(t, got.Email.HTML, "300.00")
	assert.Contains(t, got.Email.HTML, "99.00")
}

func TestSendLoginAlert_ProviderFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	sut := &APIClient{
		clientID: "notif-id",
		secret:   "notif-secret",
		baseURL:  srv.URL,
		http:     srv.Client(),
		logger:   zap.NewNop(),
	}

	err := sut.SendLoginAlert(context.Background(), "alice@example.com")
	require.Error(t, err)
}

func TestSend_Unconfigured(t *testing.T) {
	sut := &APIClient{logger: zap.NewNop(), http: http.DefaultClient}
	assert.False(t, sut.Configured())

	err := sut.SendLoginAlert(context.Background(), "alice@example.com")
	assert.ErrorIs(t, err, ErrNotConfigured)
}
