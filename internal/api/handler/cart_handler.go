package handler

import (
	"net/http"

	"github.com/mira-tu/FinalFlower-sub001/internal/api/dto"
	"github.com/mira-tu/FinalFlower-sub001/internal/service"
)

type CartHandler struct {
	cartService service.ICartService
}

func NewCartHandler(cartService service.ICartService) *CartHandler {
	if cartService == nil {
		panic("cartService cannot be nil")
	}
	return &CartHandler{cartService: cartService}
}

// @Summary get cart
// @Tags cart
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} dto.CartResponse "success"
// @Failure 401 {object} dto.Response "unauthenticated"
// @Router /cart [get]
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	viewer, err := viewerFromRequest(r)
	if err != nil {
		errorJSON(w, r, err)
		return
	}
	lines, err := h.cartService.GetCart(r.Context(), viewer.UserID)
	if err != nil {
		errorJSON(w, r, err)
		return
	}
	res := dto.CartResponse{Response: dto.OK(), Items: make([]dto.CartItemDTO, 0, len(lines))}
	for i := range lines {
		res.Items = append(res.Items, convertCartLineToDTO(&lines[i]))
	}
	successJSON(w, r, http.StatusOK, res)
}

// @Summary set cart item quantity
// @Tags cart
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param item body dto.CartItemDTO true "cart item"
// @Success 200 {object} dto.CartItemResponse "success"
// @Failure 400 {object} dto.Response "validation error or stock insufficient"
// @Failure 404 {object} dto.Response "product not found"
// @Router /cart/items [put]
func (h *CartHandler) SetItem(w http.ResponseWriter, r *http.Request) {
	viewer, err := viewerFromRequest(r)
	if err != nil {
		errorJSON(w, r, err)
		return
	}
	var req dto.CartItemDTO
	if err := decodeBody(r, &req); err != nil {
		errorJSON(w, r, err)
		return
	}
	line, err := h.cartService.SetItem(r.Context(), service.SetCartItemParams{
		UserID:        viewer.UserID,
		ProductID:     req.ProductID,
		Quantity:      req.Quantity,
		Customization: req.Customization,
	})
	if err != nil {
		errorJSON(w, r, err)
		return
	}
	successJSON(w, r, http.StatusOK, dto.CartItemResponse{Response: dto.OK(), Item: convertCartLineToDTO(line)})
}

// @Summary remove cart item
// @Tags cart
// @Produce json
// @Security ApiKeyAuth
// @Param product_id path int true "product id"
// @Success 200 {object} dto.Response "success"
// @Router /cart/items/{product_id} [delete]
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	viewer, err := viewerFromRequest(r)
	if err != nil {
		errorJSON(w, r, err)
		return
	}
	productID, err := pathID(r, "product_id")
	if err != nil {
		errorJSON(w, r, err)
		return
	}
	if err := h.cartService.RemoveItem(r.Context(), viewer.UserID, productID); err != nil {
		errorJSON(w, r, err)
		return
	}
	successJSON(w, r, http.StatusOK, dto.OK())
}
