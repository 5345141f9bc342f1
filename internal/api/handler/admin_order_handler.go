package handler

import (
	"net/http"

	"github.com/mira-tu/FinalFlower-sub001/internal/api/dto"
	"github.com/mira-tu/FinalFlower-sub001/internal/service"
)

// AdminOrderHandler employee/admin 使用，角色檢查在路由層
type AdminOrderHandler struct {
	stateService service.IOrderStateService
}

func NewAdminOrderHandler(stateService service.IOrderStateService) *AdminOrderHandler {
	if stateService == nil {
		panic("stateService cannot be nil")
	}
	return &AdminOrderHandler{stateService: stateService}
}

// @Summary update order status
// @Description 依狀態轉換表檢查，不合法的轉換回傳 400
// @Tags admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "order id"
// @Param status body dto.UpdateOrderStatusDTO true "new status"
// @Success 200 {object} dto.OrderResponse "success"
// @Failure 400 {object} dto.Response "invalid transition"
// @Failure 403 {object} dto.Response "unauthorized"
// @Failure 404 {object} dto.Response "not found"
// @Router /admin/orders/{id}/status [put]
func (h *AdminOrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		errorJSON(w, r, err)
		return
	}
	var req dto.UpdateOrderStatusDTO
	if err := decodeBody(r, &req); err != nil {
		errorJSON(w, r, err)
		return
	}

	order, err := h.stateService.SetStatus(r.Context(), id, req.Status)
	if err != nil {
		errorJSON(w, r, err)
		return
	}
	successJSON(w, r, http.StatusOK, dto.OrderResponse{Response: dto.OK(), Order: convertOrderToDTO(order, false)})
}

// @Summary update payment status
// @Description 付款狀態只能往前；paid 需要預付方式的收據
// @Tags admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "order id"
// @Param payment body dto.UpdatePaymentStatusDTO true "payment status"
// @Success 200 {object} dto.OrderResponse "success"
// @Failure 400 {object} dto.Response "validation error or invalid transition"
// @Failure 403 {object} dto.Response "unauthorized"
// @Failure 404 {object} dto.Response "not found"
// @Router /admin/orders/{id}/payment-status [put]
func (h *AdminOrderHandler) UpdatePaymentStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		errorJSON(w, r, err)
		return
	}
	var req dto.UpdatePaymentStatusDTO
	if err := decodeBody(r, &req); err != nil {
		errorJSON(w, r, err)
		return
	}

	order, err := h.stateService.SetPaymentStatus(r.Context(), id, service.SetPaymentStatusParams{
		Status:      req.PaymentStatus,
		PaymentType: req.PaymentType,
		ReceiptURL:  req.ReceiptURL,
	})
	if err != nil {
		errorJSON(w, r, err)
		return
	}
	successJSON(w, r, http.StatusOK, dto.OrderResponse{Response: dto.OK(), Order: convertOrderToDTO(order, false)})
}
