package handler

import (
	"net/http"
	"strconv"

	"github.com/mira-tu/FinalFlower-sub001/internal/api/dto"
	"github.com/mira-tu/FinalFlower-sub001/internal/domain/model"
	"github.com/mira-tu/FinalFlower-sub001/internal/service"
)

type OrderHandler struct {
	orderService service.IOrderService
	stateService service.IOrderStateService
}

func NewOrderHandler(orderService service.IOrderService, stateService service.IOrderStateService) *OrderHandler {
	if orderService == nil || stateService == nil {
		panic("order services cannot be nil")
	}
	return &OrderHandler{
		orderService: orderService,
		stateService: stateService,
	}
}

// @Summary create order
// @Description items 為空時使用購物車內容，金額一律由伺服器計算
// @Tags orders
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param order body dto.CreateOrderDTO true "order"
// @Success 201 {object} dto.CreateOrderResponse "created"
// @Failure 400 {object} dto.Response "validation error or stock insufficient"
// @Failure 401 {object} dto.Response "unauthenticated"
// @Failure 429 {object} dto.Response "too many requests"
// @Failure 500 {object} dto.Response "internal server error"
// @Router /orders [post]
func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	viewer, err := viewerFromRequest(r)
	if err != nil {
		errorJSON(w, r, err)
		return
	}

	var req dto.CreateOrderDTO
	if err := decodeBody(r, &req); err != nil {
		errorJSON(w, r, err)
		return
	}

	lines := make([]model.OrderLine, 0, len(req.Items))
	for _, item := range req.Items {
		lines = append(lines, model.OrderLine{
			ProductID:     item.ProductID,
			Quantity:      item.Quantity,
			Customization: item.Customization,
		})
	}

	order, err := h.orderService.CreateOrder(r.Context(), service.CreateOrderParams{
		UserID:         viewer.UserID,
		Lines:          lines,
		PaymentMethod:  req.PaymentMethod,
		DeliveryMethod: req.DeliveryMethod,
		AddressID:      req.AddressID,
		Notes:          req.Notes,
		ReceiptURL:     req.ReceiptURL,
	})
	if err != nil {
		errorJSON(w, r, err)
		return
	}

	successJSON(w, r, http.StatusCreated, dto.CreateOrderResponse{
		Response: dto.OK(),
		Order: dto.OrderCreatedDTO{
			ID:          order.ID,
			OrderNumber: order.OrderNumber,
			Total:       money(order.Total),
		},
	})
}

// @Summary list orders
// @Description 新的在前；employee/admin 可看到所有訂單。分頁回傳，預設 page=1、page_size=20，回應帶有實際使用的 page 與 page_size
// @Tags orders
// @Produce json
// @Security ApiKeyAuth
// @Param status query string false "order status"
// @Param page query int false "page"
// @Param page_size query int false "page size"
// @Success 200 {object} dto.OrdersResponse "success"
// @Failure 400 {object} dto.Response "validation error"
// @Failure 401 {object} dto.Response "unauthenticated"
// @Router /orders [get]
func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	viewer, err := viewerFromRequest(r)
	if err != nil {
		errorJSON(w, r, err)
		return
	}

	query := r.URL.Query()
	var filter service.ListOrdersFilter
	if raw := query.Get("status"); raw != "" {
		status, ok := model.ParseOrderStatus(raw)
		if !ok {
			badRequest(w, r, "unknown order status")
			return
		}
		filter.Status = &status
	}
	if raw := query.Get("page"); raw != "" {
		if filter.Page, err = strconv.Atoi(raw); err != nil {
			badRequest(w, r, "invalid page")
			return
		}
	}
	if raw := query.Get("page_size"); raw != "" {
		if filter.PageSize, err = strconv.Atoi(raw); err != nil {
			badRequest(w, r, "invalid page_size")
			return
		}
	}

	filter = filter.WithDefaults()
	orders, err := h.orderService.ListOrders(r.Context(), viewer, filter)
	if err != nil {
		errorJSON(w, r, err)
		return
	}

	res := dto.OrdersResponse{
		Response: dto.OK(),
		Orders:   make([]dto.OrderDTO, 0, len(orders)),
		Page:     filter.Page,
		PageSize: filter.PageSize,
	}
	for i := range orders {
		res.Orders = append(res.Orders, convertOrderToDTO(&orders[i], false))
	}
	successJSON(w, r, http.StatusOK, res)
}

// @Summary get order
// @Tags orders
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "order id"
// @Success 200 {object} dto.OrderResponse "success"
// @Failure 401 {object} dto.Response "unauthenticated"
// @Failure 404 {object} dto.Response "not found"
// @Router /orders/{id} [get]
func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	viewer, err := viewerFromRequest(r)
	if err != nil {
		errorJSON(w, r, err)
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		errorJSON(w, r, err)
		return
	}

	order, err := h.orderService.GetOrder(r.Context(), viewer, id)
	if err != nil {
		errorJSON(w, r, err)
		return
	}
	successJSON(w, r, http.StatusOK, dto.OrderResponse{Response: dto.OK(), Order: convertOrderToDTO(order, true)})
}

// @Summary cancel order
// @Description 只有 pending/processing 可以取消；cancelled=false 代表訂單狀態未改變
// @Tags orders
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "order id"
// @Success 200 {object} dto.CancelOrderResponse "success"
// @Failure 401 {object} dto.Response "unauthenticated"
// @Failure 404 {object} dto.Response "not found"
// @Router /orders/{id}/cancel [put]
func (h *OrderHandler) CancelOrder(w http.ResponseWriter, r *http.Request) {
	viewer, err := viewerFromRequest(r)
	if err != nil {
		errorJSON(w, r, err)
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		errorJSON(w, r, err)
		return
	}

	cancelled, err := h.stateService.Cancel(r.Context(), id, viewer.UserID)
	if err != nil {
		errorJSON(w, r, err)
		return
	}
	res := dto.CancelOrderResponse{Response: dto.OK(), Cancelled: cancelled}
	if !cancelled {
		res.Message = "order can no longer be cancelled"
	}
	successJSON(w, r, http.StatusOK, res)
}

// @Summary attach payment receipt
// @Tags orders
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "order id"
// @Param receipt body dto.AttachReceiptDTO true "receipt"
// @Success 200 {object} dto.OrderResponse "success"
// @Failure 400 {object} dto.Response "validation error or invalid transition"
// @Failure 404 {object} dto.Response "not found"
// @Router /orders/{id}/receipt [put]
func (h *OrderHandler) AttachReceipt(w http.ResponseWriter, r *http.Request) {
	viewer, err := viewerFromRequest(r)
	if err != nil {
		errorJSON(w, r, err)
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		errorJSON(w, r, err)
		return
	}
	var req dto.AttachReceiptDTO
	if err := decodeBody(r, &req); err != nil {
		errorJSON(w, r, err)
		return
	}

	order, err := h.stateService.AttachReceipt(r.Context(), id, viewer.UserID, req.ReceiptURL)
	if err != nil {
		errorJSON(w, r, err)
		return
	}
	successJSON(w, r, http.StatusOK, dto.OrderResponse{Response: dto.OK(), Order: convertOrderToDTO(order, true)})
}
