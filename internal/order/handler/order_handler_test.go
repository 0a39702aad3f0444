package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"sistem-order-service/internal/order"
	"sistem-order-service/internal/order/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// --- MOCK SERVICE ---

type MockOrderService struct {
	mock.Mock
}

func (m *MockOrderService) CreateOrder(req order.CreateOrderRequest) (*order.Order, error) {
	args := m.Called(req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderService) List(page, limit int) ([]order.Order, int64, error) {
	args := m.Called(page, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]order.Order), args.Get(1).(int64), args.Error(2)
}

func (m *MockOrderService) GetByID(id uint) (*order.Order, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderService) GetByUserID(userID uint) ([]order.Order, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]order.Order), args.Error(1)
}

func (m *MockOrderService) UpdateStatus(id uint, status order.OrderStatus) (*order.Order, error) {
	args := m.Called(id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderService) Delete(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

// --- SETUP ---

func setupTest(mockSvc *MockOrderService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	h := NewOrderHandler(mockSvc)
	router.POST("/orders", h.Create)
	router.GET("/orders", h.List)
	router.GET("/orders/:id", h.Get)
	router.PATCH("/orders/:id/status", h.UpdateStatus)

	return router
}

// --- TEST CASES ---

func TestCreateOrder_Success(t *testing.T) {
	mockSvc := new(MockOrderService)
	router := setupTest(mockSvc)

	reqBody := order.CreateOrderRequest{
		UserID: 1,
		Items:  []order.CreateOrderItemRequest{{ProductID: 10, Quantity: 2}},
	}

	mockSvc.On("CreateOrder", reqBody).
		Return(&order.Order{OrderID: 42, TotalAmount: 100000}, nil).Once()

	reqJSON, _ := json.Marshal(reqBody)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/orders", bytes.NewBuffer(reqJSON))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var body map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, true, body["success"])

	data := body["data"].(map[string]interface{})
	assert.Equal(t, float64(42), data["order_id"])
	assert.Equal(t, float64(100000), data["total_amount"])

	mockSvc.AssertExpectations(t)
}

func TestCreateOrder_EmptyItems(t *testing.T) {
	mockSvc := new(MockOrderService)
	router := setupTest(mockSvc)

	reqJSON := []byte(`{"user_id": 1, "items": []}`)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/orders", bytes.NewBuffer(reqJSON))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	mockSvc.AssertNotCalled(t, "CreateOrder", mock.Anything)
}

func TestGetOrder_NotFound(t *testing.T) {
	mockSvc := new(MockOrderService)
	router := setupTest(mockSvc)

	mockSvc.On("GetByID", uint(999)).Return(nil, service.ErrOrderNotFound).Once()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/orders/999", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	mockSvc.AssertExpectations(t)
}

func TestListOrders_Envelope(t *testing.T) {
	mockSvc := new(MockOrderService)
	router := setupTest(mockSvc)

	orders := []order.Order{{OrderID: 1}, {OrderID: 2}}
	mockSvc.On("List", 1, 10).Return(orders, int64(25), nil).Once()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/orders", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, true, body["success"])
	assert.Equal(t, float64(25), body["totalData"])
	assert.Equal(t, float64(1), body["page"])
	assert.Equal(t, float64(10), body["limit"])

	mockSvc.AssertExpectations(t)
}

func TestUpdateStatus_RejectsUnknownStatus(t *testing.T) {
	mockSvc := new(MockOrderService)
	router := setupTest(mockSvc)

	reqJSON := []byte(`{"status": "shipped"}`)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPatch, "/orders/1/status", bytes.NewBuffer(reqJSON))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	mockSvc.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything)
}
