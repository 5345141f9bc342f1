package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/mira-tu/FinalFlower-sub001/internal/api/dto"
	"github.com/mira-tu/FinalFlower-sub001/internal/domain/model"
	"github.com/mira-tu/FinalFlower-sub001/internal/service"
	"github.com/mira-tu/FinalFlower-sub001/internal/util"
	"github.com/mira-tu/FinalFlower-sub001/internal/util/apperr"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

func successJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	render.Status(r, status)
	render.JSON(w, r, v)
}

// errorJSON 依錯誤分類決定 status，資料層錯誤只記錄 log 不回傳細節
func errorJSON(w http.ResponseWriter, r *http.Request, err error) {
	kind := apperr.KindOf(err)
	status := kind.HTTPStatus()
	if status >= http.StatusInternalServerError {
		log.Error().Err(err).
			Str("request_id", util.GetRequestIDFromContext(r.Context())).
			Str("method", r.Method).
			Str("url", r.URL.String()).
			Msg("request failed")
	}
	render.Status(r, status)
	render.JSON(w, r, dto.Fail(apperr.PublicMessage(err)))
}

func badRequest(w http.ResponseWriter, r *http.Request, message string) {
	errorJSON(w, r, apperr.Validation("%s", message))
}

func decodeBody(r *http.Request, v any) error {
	if err := render.DecodeJSON(r.Body, v); err != nil {
		return apperr.Validation("invalid request body")
	}
	return nil
}

// pathID 取得路由上的數字 id
func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperr.Validation("invalid %s", name)
	}
	return id, nil
}

// viewerFromRequest 路由已經過 AuthMiddleware，payload 不存在視為未登入
func viewerFromRequest(r *http.Request) (service.Viewer, error) {
	payload := util.GetTokenPayloadFromContext(r.Context())
	if payload == nil {
		return service.Viewer{}, apperr.New(apperr.KindUnauthenticated, "unauthenticated")
	}
	return service.Viewer{UserID: payload.UserID, Role: payload.Role}, nil
}

func money(d decimal.Decimal) json.Number {
	return json.Number(d.StringFixed(2))
}

func convertOrderToDTO(order *model.Order, withItems bool) dto.OrderDTO {
	res := dto.OrderDTO{
		ID:             order.ID,
		OrderNumber:    order.OrderNumber,
		UserID:         order.UserID.String(),
		Status:         string(order.Status),
		PaymentStatus:  string(order.PaymentStatus),
		PaymentMethod:  string(order.PaymentMethod),
		DeliveryMethod: string(order.DeliveryMethod),
		AddressID:      order.AddressID,
		Subtotal:       money(order.Subtotal),
		DeliveryFee:    money(order.DeliveryFee),
		Total:          money(order.Total),
		Notes:          order.Notes,
		ReceiptURL:     order.ReceiptURL,
		PaymentType:    order.PaymentType,
		PaidAt:         order.PaidAt,
		CreatedAt:      order.CreatedAt,
	}
	if withItems {
		res.Items = make([]dto.OrderItemDTO, 0, len(order.Items))
		for _, item := range order.Items {
			res.Items = append(res.Items, dto.OrderItemDTO{
				ID:            item.ID,
				ProductID:     item.ProductID,
				ProductName:   item.ProductName,
				Quantity:      item.Quantity,
				UnitPrice:     money(item.UnitPrice),
				Subtotal:      money(item.Subtotal),
				Customization: item.Customization,
			})
		}
	}
	return res
}

func convertProductToDTO(p *model.Product) dto.ProductDTO {
	return dto.ProductDTO{
		ID:          p.ID,
		Name:        p.Name,
		Category:    p.Category,
		Description: p.Description,
		Price:       money(p.Price),
		Stock:       p.Stock,
		IsActive:    p.IsActive,
	}
}

func convertCartLineToDTO(line *model.CartLine) dto.CartItemDTO {
	return dto.CartItemDTO{
		ProductID:     line.ProductID,
		Quantity:      line.Quantity,
		Customization: line.Customization,
	}
}
