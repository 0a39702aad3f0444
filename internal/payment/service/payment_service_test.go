package service

import (
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"testing"

	"sistem-order-service/internal/order"
	"sistem-order-service/internal/payment"
	"sistem-order-service/internal/payment/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

type MockSnapClient struct {
	mock.Mock
}

func (m *MockSnapClient) CreateTransaction(req SnapRequest) (*SnapResponse, error) {
	args := m.Called(req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*SnapResponse), args.Error(1)
}

func setupPaymentTest() (PaymentService, *repository.MockPaymentRepository, *MockOrderFinder, *MockSnapClient) {
	mockRepo := new(repository.MockPaymentRepository)
	mockOrders := new(MockOrderFinder)
	mockSnap := new(MockSnapClient)
	svc := NewPaymentService(mockRepo, mockOrders, mockSnap)
	return svc, mockRepo, mockOrders, mockSnap
}

func TestCreatePayment_Success(t *testing.T) {
	svc, _, mockOrders, mockSnap := setupPaymentTest()

	mockOrders.On("FindByID", uint(42)).
		Return(&order.Order{OrderID: 42, UserID: 7, Status: order.StatusPending, TotalAmount: 100000}, nil).Once()

	mockSnap.On("CreateTransaction", mock.MatchedBy(func(req SnapRequest) bool {
		// order_id memakai prefix gateway dan gross_amount = total order
		return req.TransactionDetails.OrderID == "ORDER-42" &&
			req.TransactionDetails.GrossAmount == 100000 &&
			req.CustomerDetails.FirstName == "Budi" &&
			req.CustomerDetails.Email == "budi@example.com" &&
			len(req.ItemDetails) == 1 &&
			req.ItemDetails[0].Price == 100000 &&
			len(req.EnabledPayments) > 0
	})).Return(&SnapResponse{Token: "snap-token-xyz", RedirectURL: "https://app.sandbox.midtrans.com/snap/v2/vtweb/snap-token-xyz"}, nil).Once()

	result, err := svc.CreatePayment(payment.CreatePaymentRequest{
		OrderID:       42,
		CustomerName:  "Budi",
		CustomerEmail: "budi@example.com",
	})

	assert.NoError(t, err)
	assert.Equal(t, "snap-token-xyz", result.SnapToken)
	assert.Contains(t, result.PaymentURL, "snap-token-xyz")

	mockSnap.AssertExpectations(t)
}

func TestCreatePayment_OrderNotFound(t *testing.T) {
	svc, _, mockOrders, mockSnap := setupPaymentTest()

	mockOrders.On("FindByID", uint(999)).Return(nil, gorm.ErrRecordNotFound).Once()

	_, err := svc.CreatePayment(payment.CreatePaymentRequest{OrderID: 999})

	assert.ErrorIs(t, err, payment.ErrOrderNotFound)
	mockSnap.AssertNotCalled(t, "CreateTransaction", mock.Anything)
}

func TestCreatePayment_GatewayError(t *testing.T) {
	svc, _, mockOrders, mockSnap := setupPaymentTest()

	mockOrders.On("FindByID", uint(42)).
		Return(&order.Order{OrderID: 42, TotalAmount: 100000}, nil).Once()
	mockSnap.On("CreateTransaction", mock.Anything).
		Return(nil, assert.AnError).Once()

	_, err := svc.CreatePayment(payment.CreatePaymentRequest{OrderID: 42})

	assert.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}

func TestCheckStatus_WithoutConfirmation(t *testing.T) {
	svc, mockRepo, mockOrders, _ := setupPaymentTest()

	mockOrders.On("FindByID", uint(42)).
		Return(&order.Order{OrderID: 42, Status: order.StatusPending}, nil).Once()
	mockRepo.On("FindConfirmedByOrderID", uint(42)).Return(nil, gorm.ErrRecordNotFound).Once()

	status, err := svc.CheckStatus(42)

	assert.NoError(t, err)
	assert.Equal(t, "pending", status.OrderStatus)
	assert.Equal(t, "pending", status.PaymentStatus)
	assert.Nil(t, status.Confirmation)
}

func TestCheckStatus_WithConfirmedConfirmation(t *testing.T) {
	svc, mockRepo, mockOrders, _ := setupPaymentTest()

	mockOrders.On("FindByID", uint(42)).
		Return(&order.Order{OrderID: 42, Status: order.StatusProses}, nil).Once()
	mockRepo.On("FindConfirmedByOrderID", uint(42)).
		Return(&payment.PaymentConfirmation{ConfirmationID: 10, OrderID: 42, Status: payment.ConfirmationConfirmed}, nil).Once()

	status, err := svc.CheckStatus(42)

	assert.NoError(t, err)
	assert.Equal(t, "proses", status.OrderStatus)
	assert.Equal(t, "confirmed", status.PaymentStatus)
	assert.Equal(t, uint(10), status.Confirmation.ConfirmationID)
}

func TestCheckStatus_OrderNotFound(t *testing.T) {
	svc, _, mockOrders, _ := setupPaymentTest()

	mockOrders.On("FindByID", uint(999)).Return(nil, gorm.ErrRecordNotFound).Once()

	_, err := svc.CheckStatus(999)

	assert.ErrorIs(t, err, payment.ErrOrderNotFound)
}

// --- snapClient HTTP ---

func TestSnapClient_CreateTransaction(t *testing.T) {
	var gotAuth, gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"token":"snap-token-xyz","redirect_url":"https://example.test/pay"}`))
	}))
	defer server.Close()

	client := NewSnapClient(server.URL, "server-key-123")
	resp, err := client.CreateTransaction(SnapRequest{
		TransactionDetails: TransactionDetails{OrderID: "ORDER-42", GrossAmount: 100000},
	})

	assert.NoError(t, err)
	assert.Equal(t, "snap-token-xyz", resp.Token)
	assert.Equal(t, "/snap/v1/transactions", gotPath)

	// Server key sebagai basic auth username, password kosong
	expectedAuth := "Basic " + base64.StdEncoding.EncodeToString([]byte("server-key-123:"))
	assert.Equal(t, expectedAuth, gotAuth)
}

func TestSnapClient_GatewayErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := NewSnapClient(server.URL, "server-key-salah")
	_, err := client.CreateTransaction(SnapRequest{})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}
