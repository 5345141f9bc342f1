package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/mira-tu/FinalFlower-sub001/internal/constants"
	"github.com/mira-tu/FinalFlower-sub001/internal/domain/model"
	"github.com/mira-tu/FinalFlower-sub001/internal/infra/token"
	"github.com/mira-tu/FinalFlower-sub001/internal/service"
	"github.com/mira-tu/FinalFlower-sub001/internal/util/apperr"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- Mock ---

type mockOrderService struct {
	mock.Mock
}

func (m *mockOrderService) CreateOrder(ctx context.Context, arg service.CreateOrderParams) (*model.Order, error) {
	args := m.Called(ctx, arg)
	order, _ := args.Get(0).(*model.Order)
	return order, args.Error(1)
}

func (m *mockOrderService) GetOrder(ctx context.Context, viewer service.Viewer, orderID int64) (*model.Order, error) {
	args := m.Called(ctx, viewer, orderID)
	order, _ := args.Get(0).(*model.Order)
	return order, args.Error(1)
}

func (m *mockOrderService) ListOrders(ctx context.Context, viewer service.Viewer, filter service.ListOrdersFilter) ([]model.Order, error) {
	args := m.Called(ctx, viewer, filter)
	orders, _ := args.Get(0).([]model.Order)
	return orders, args.Error(1)
}

type mockStateService struct {
	mock.Mock
}

func (m *mockStateService) Cancel(ctx context.Context, orderID int64, userID uuid.UUID) (bool, error) {
	args := m.Called(ctx, orderID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *mockStateService) SetStatus(ctx context.Context, orderID int64, status string) (*model.Order, error) {
	args := m.Called(ctx, orderID, status)
	order, _ := args.Get(0).(*model.Order)
	return order, args.Error(1)
}

func (m *mockStateService) ConfirmPayment(ctx context.Context, orderID int64, paymentType string, receiptURL *string) (*model.Order, error) {
	args := m.Called(ctx, orderID, paymentType, receiptURL)
	order, _ := args.Get(0).(*model.Order)
	return order, args.Error(1)
}

func (m *mockStateService) SetPaymentStatus(ctx context.Context, orderID int64, arg service.SetPaymentStatusParams) (*model.Order, error) {
	args := m.Called(ctx, orderID, arg)
	order, _ := args.Get(0).(*model.Order)
	return order, args.Error(1)
}

func (m *mockStateService) AttachReceipt(ctx context.Context, orderID int64, userID uuid.UUID, receiptURL string) (*model.Order, error) {
	args := m.Called(ctx, orderID, userID, receiptURL)
	order, _ := args.Get(0).(*model.Order)
	return order, args.Error(1)
}

// --- helper ---

func withUser(r *http.Request, userID uuid.UUID, role constants.Role) *http.Request {
	payload := &token.Payload{ID: uuid.New(), UserID: userID, Role: role, IssuedAt: time.Now(), ExpiredAt: time.Now().Add(time.Hour)}
	return r.WithContext(context.WithValue(r.Context(), constants.AuthorizationPayloadKey, payload))
}

func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func jsonBody(t *testing.T, v any) *bytes.Reader {
	t.Helper()
	raw, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewReader(raw)
}

func decodeMap(t *testing.T, recorder *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&body))
	return body
}

func sampleOrder(userID uuid.UUID) *model.Order {
	return &model.Order{
		ID:             42,
		OrderNumber:    "ORD-20260214-000042",
		UserID:         userID,
		Status:         model.OrderStatusPending,
		PaymentStatus:  model.PaymentStatusToPay,
		PaymentMethod:  model.PaymentMethodCashOnDelivery,
		DeliveryMethod: model.DeliveryMethodDelivery,
		Subtotal:       decimal.NewFromInt(2500),
		DeliveryFee:    decimal.NewFromInt(100),
		Total:          decimal.NewFromInt(2600),
		Items: []model.OrderItem{
			{ID: 1, ProductID: 1, ProductName: "Red Roses", Quantity: 1, UnitPrice: decimal.NewFromInt(1500), Subtotal: decimal.NewFromInt(1500)},
			{ID: 2, ProductID: 2, ProductName: "Tulips", Quantity: 1, UnitPrice: decimal.NewFromInt(1000), Subtotal: decimal.NewFromInt(1000)},
		},
	}
}

// --- CreateOrder tests ---

func TestCreateOrder_Success(t *testing.T) {
	userID := uuid.New()
	orders := new(mockOrderService)
	orders.On("CreateOrder", mock.Anything, mock.MatchedBy(func(arg service.CreateOrderParams) bool {
		return arg.UserID == userID && len(arg.Lines) == 2 && arg.DeliveryMethod == "delivery"
	})).Return(sampleOrder(userID), nil)

	h := NewOrderHandler(orders, new(mockStateService))
	recorder := httptest.NewRecorder()
	request := withUser(httptest.NewRequest(http.MethodPost, "/api/v1/orders", jsonBody(t, map[string]any{
		"items":           []map[string]any{{"product_id": 1, "quantity": 1}, {"product_id": 2, "quantity": 1}},
		"delivery_method": "delivery",
		"address_id":      3,
		"payment_method":  "cash_on_delivery",
		"total":           1,
	})), userID, constants.RoleCustomer)

	h.CreateOrder(recorder, request)

	require.Equal(t, http.StatusCreated, recorder.Code)
	body := decodeMap(t, recorder)
	assert.Equal(t, true, body["success"])
	order := body["order"].(map[string]any)
	assert.Equal(t, float64(42), order["id"])
	assert.Equal(t, "ORD-20260214-000042", order["order_number"])
	assert.Equal(t, float64(2600), order["total"])
	orders.AssertExpectations(t)
}

func TestCreateOrder_ErrorMapping(t *testing.T) {
	testCases := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{name: "stock insufficient", err: apperr.StockInsufficient("not enough stock for %q", "Red Roses"), wantStatus: http.StatusBadRequest, wantMsg: `not enough stock for "Red Roses"`},
		{name: "validation", err: apperr.Validation("order must contain at least one item"), wantStatus: http.StatusBadRequest, wantMsg: "order must contain at least one item"},
		{name: "persistence hides details", err: apperr.Persistence(assert.AnError), wantStatus: http.StatusInternalServerError, wantMsg: "internal server error"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			orders := new(mockOrderService)
			orders.On("CreateOrder", mock.Anything, mock.Anything).Return(nil, tc.err)
			h := NewOrderHandler(orders, new(mockStateService))

			recorder := httptest.NewRecorder()
			request := withUser(httptest.NewRequest(http.MethodPost, "/api/v1/orders", jsonBody(t, map[string]any{
				"delivery_method": "pickup",
				"payment_method":  "gcash",
			})), uuid.New(), constants.RoleCustomer)
			h.CreateOrder(recorder, request)

			require.Equal(t, tc.wantStatus, recorder.Code)
			body := decodeMap(t, recorder)
			assert.Equal(t, false, body["success"])
			assert.Equal(t, tc.wantMsg, body["message"])
		})
	}
}

func TestCreateOrder_BadBodyAndAnonymous(t *testing.T) {
	h := NewOrderHandler(new(mockOrderService), new(mockStateService))

	recorder := httptest.NewRecorder()
	h.CreateOrder(recorder, withUser(httptest.NewRequest(http.MethodPost, "/api/v1/orders", bytes.NewBufferString("{")), uuid.New(), constants.RoleCustomer))
	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	recorder = httptest.NewRecorder()
	h.CreateOrder(recorder, httptest.NewRequest(http.MethodPost, "/api/v1/orders", bytes.NewBufferString("{}")))
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

// --- ListOrders / GetOrder tests ---

func TestListOrders_StatusFilter(t *testing.T) {
	userID := uuid.New()
	orders := new(mockOrderService)
	cancelled := model.OrderStatusCancelled
	orders.On("ListOrders", mock.Anything, service.Viewer{UserID: userID, Role: constants.RoleCustomer}, service.ListOrdersFilter{Status: &cancelled, Page: 1, PageSize: constants.DefaultPagingSize}).
		Return([]model.Order{*sampleOrder(userID)}, nil)
	h := NewOrderHandler(orders, new(mockStateService))

	recorder := httptest.NewRecorder()
	h.ListOrders(recorder, withUser(httptest.NewRequest(http.MethodGet, "/api/v1/orders?status=cancelled", nil), userID, constants.RoleCustomer))

	require.Equal(t, http.StatusOK, recorder.Code)
	body := decodeMap(t, recorder)
	list := body["orders"].([]any)
	require.Len(t, list, 1)
	_, hasItems := list[0].(map[string]any)["items"]
	assert.False(t, hasItems)
	assert.Equal(t, float64(1), body["page"])
	assert.Equal(t, float64(constants.DefaultPagingSize), body["page_size"])

	recorder = httptest.NewRecorder()
	h.ListOrders(recorder, withUser(httptest.NewRequest(http.MethodGet, "/api/v1/orders?status=shipped", nil), userID, constants.RoleCustomer))
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestListOrders_EmptyListIsArray(t *testing.T) {
	orders := new(mockOrderService)
	orders.On("ListOrders", mock.Anything, mock.Anything, mock.Anything).Return([]model.Order{}, nil)
	h := NewOrderHandler(orders, new(mockStateService))

	recorder := httptest.NewRecorder()
	h.ListOrders(recorder, withUser(httptest.NewRequest(http.MethodGet, "/api/v1/orders", nil), uuid.New(), constants.RoleCustomer))

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"orders":[]`)
}

func TestListOrders_EchoesPaging(t *testing.T) {
	userID := uuid.New()
	orders := new(mockOrderService)
	orders.On("ListOrders", mock.Anything, mock.Anything, service.ListOrdersFilter{Page: 3, PageSize: 5}).
		Return([]model.Order{*sampleOrder(userID)}, nil)
	h := NewOrderHandler(orders, new(mockStateService))

	recorder := httptest.NewRecorder()
	h.ListOrders(recorder, withUser(httptest.NewRequest(http.MethodGet, "/api/v1/orders?page=3&page_size=5", nil), userID, constants.RoleCustomer))

	require.Equal(t, http.StatusOK, recorder.Code)
	body := decodeMap(t, recorder)
	assert.Equal(t, float64(3), body["page"])
	assert.Equal(t, float64(5), body["page_size"])
	orders.AssertExpectations(t)

	recorder = httptest.NewRecorder()
	h.ListOrders(recorder, withUser(httptest.NewRequest(http.MethodGet, "/api/v1/orders?page=abc", nil), userID, constants.RoleCustomer))
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestGetOrder(t *testing.T) {
	userID := uuid.New()
	orders := new(mockOrderService)
	orders.On("GetOrder", mock.Anything, mock.Anything, int64(42)).Return(sampleOrder(userID), nil)
	orders.On("GetOrder", mock.Anything, mock.Anything, int64(7)).Return(nil, apperr.NotFound("order 7 not found"))
	h := NewOrderHandler(orders, new(mockStateService))

	recorder := httptest.NewRecorder()
	request := withURLParam(withUser(httptest.NewRequest(http.MethodGet, "/api/v1/orders/42", nil), userID, constants.RoleCustomer), "id", "42")
	h.GetOrder(recorder, request)
	require.Equal(t, http.StatusOK, recorder.Code)
	order := decodeMap(t, recorder)["order"].(map[string]any)
	items := order["items"].([]any)
	require.Len(t, items, 2)
	assert.Equal(t, "Red Roses", items[0].(map[string]any)["product_name"])
	assert.Equal(t, float64(1500), items[0].(map[string]any)["unit_price"])

	recorder = httptest.NewRecorder()
	request = withURLParam(withUser(httptest.NewRequest(http.MethodGet, "/api/v1/orders/7", nil), userID, constants.RoleCustomer), "id", "7")
	h.GetOrder(recorder, request)
	assert.Equal(t, http.StatusNotFound, recorder.Code)

	recorder = httptest.NewRecorder()
	request = withURLParam(withUser(httptest.NewRequest(http.MethodGet, "/api/v1/orders/abc", nil), userID, constants.RoleCustomer), "id", "abc")
	h.GetOrder(recorder, request)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

// --- Cancel / receipt tests ---

func TestCancelOrder(t *testing.T) {
	userID := uuid.New()
	states := new(mockStateService)
	states.On("Cancel", mock.Anything, int64(1), userID).Return(true, nil)
	states.On("Cancel", mock.Anything, int64(2), userID).Return(false, nil)
	h := NewOrderHandler(new(mockOrderService), states)

	for id, want := range map[string]bool{"1": true, "2": false} {
		recorder := httptest.NewRecorder()
		request := withURLParam(withUser(httptest.NewRequest(http.MethodPut, "/api/v1/orders/"+id+"/cancel", nil), userID, constants.RoleCustomer), "id", id)
		h.CancelOrder(recorder, request)

		require.Equal(t, http.StatusOK, recorder.Code)
		body := decodeMap(t, recorder)
		assert.Equal(t, true, body["success"])
		assert.Equal(t, want, body["cancelled"])
	}
	states.AssertExpectations(t)
}

func TestAttachReceipt(t *testing.T) {
	userID := uuid.New()
	order := sampleOrder(userID)
	order.PaymentStatus = model.PaymentStatusAwaitingConfirmation
	states := new(mockStateService)
	states.On("AttachReceipt", mock.Anything, int64(42), userID, "https://receipts.example/1.png").Return(order, nil)
	h := NewOrderHandler(new(mockOrderService), states)

	recorder := httptest.NewRecorder()
	request := withURLParam(withUser(httptest.NewRequest(http.MethodPut, "/api/v1/orders/42/receipt",
		jsonBody(t, map[string]string{"receipt_url": "https://receipts.example/1.png"})), userID, constants.RoleCustomer), "id", "42")
	h.AttachReceipt(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "awaiting_confirmation", decodeMap(t, recorder)["order"].(map[string]any)["payment_status"])
}

// --- Admin tests ---

func TestAdminUpdateStatus(t *testing.T) {
	order := sampleOrder(uuid.New())
	order.Status = model.OrderStatusProcessing
	states := new(mockStateService)
	states.On("SetStatus", mock.Anything, int64(42), "processing").Return(order, nil)
	states.On("SetStatus", mock.Anything, int64(42), "pending").Return(nil, apperr.InvalidTransition("cannot change order from processing to pending"))
	h := NewAdminOrderHandler(states)

	recorder := httptest.NewRecorder()
	request := withURLParam(httptest.NewRequest(http.MethodPut, "/api/v1/admin/orders/42/status", jsonBody(t, map[string]string{"status": "processing"})), "id", "42")
	h.UpdateStatus(recorder, request)
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "processing", decodeMap(t, recorder)["order"].(map[string]any)["status"])

	recorder = httptest.NewRecorder()
	request = withURLParam(httptest.NewRequest(http.MethodPut, "/api/v1/admin/orders/42/status", jsonBody(t, map[string]string{"status": "pending"})), "id", "42")
	h.UpdateStatus(recorder, request)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestAdminUpdatePaymentStatus(t *testing.T) {
	order := sampleOrder(uuid.New())
	order.PaymentStatus = model.PaymentStatusPaid
	receipt := "https://receipts.example/9.png"
	states := new(mockStateService)
	states.On("SetPaymentStatus", mock.Anything, int64(42), mock.MatchedBy(func(arg service.SetPaymentStatusParams) bool {
		return arg.Status == "paid" && arg.ReceiptURL != nil && *arg.ReceiptURL == receipt
	})).Return(order, nil)
	h := NewAdminOrderHandler(states)

	recorder := httptest.NewRecorder()
	request := withURLParam(httptest.NewRequest(http.MethodPut, "/api/v1/admin/orders/42/payment-status",
		jsonBody(t, map[string]string{"payment_status": "paid", "receipt_url": receipt})), "id", "42")
	h.UpdatePaymentStatus(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "paid", decodeMap(t, recorder)["order"].(map[string]any)["payment_status"])
	states.AssertExpectations(t)
}
