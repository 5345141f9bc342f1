package handler

import (
	"net/http"
	"strings"

	"github.com/mira-tu/FinalFlower-sub001/internal/api/dto"
	"github.com/mira-tu/FinalFlower-sub001/internal/service"
	"github.com/mira-tu/FinalFlower-sub001/internal/util"
	"github.com/mira-tu/FinalFlower-sub001/internal/util/apperr"
	"github.com/shopspring/decimal"
)

type ProductHandler struct {
	catalogService service.ICatalogService
}

func NewProductHandler(catalogService service.ICatalogService) *ProductHandler {
	if catalogService == nil {
		panic("catalogService cannot be nil")
	}
	return &ProductHandler{catalogService: catalogService}
}

// isStaffRequest 未登入或一般使用者都回傳 false
func isStaffRequest(r *http.Request) bool {
	payload := util.GetTokenPayloadFromContext(r.Context())
	return payload != nil && payload.Role.IsStaff()
}

// @Summary list products
// @Description include_inactive 只對 employee/admin 有效
// @Tags products
// @Produce json
// @Param include_inactive query bool false "include inactive products"
// @Success 200 {object} dto.ProductsResponse "success"
// @Router /products [get]
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	includeInactive := r.URL.Query().Get("include_inactive") == "true" && isStaffRequest(r)

	products, err := h.catalogService.ListProducts(r.Context(), includeInactive)
	if err != nil {
		errorJSON(w, r, err)
		return
	}
	res := dto.ProductsResponse{Response: dto.OK(), Products: make([]dto.ProductDTO, 0, len(products))}
	for i := range products {
		res.Products = append(res.Products, convertProductToDTO(&products[i]))
	}
	successJSON(w, r, http.StatusOK, res)
}

// @Summary get product
// @Tags products
// @Produce json
// @Param id path int true "product id"
// @Success 200 {object} dto.ProductResponse "success"
// @Failure 404 {object} dto.Response "not found"
// @Router /products/{id} [get]
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		errorJSON(w, r, err)
		return
	}
	product, err := h.catalogService.GetProduct(r.Context(), id)
	if err != nil {
		errorJSON(w, r, err)
		return
	}
	if !product.IsActive && !isStaffRequest(r) {
		errorJSON(w, r, apperr.NotFound("product %d not found", id))
		return
	}
	successJSON(w, r, http.StatusOK, dto.ProductResponse{Response: dto.OK(), Product: convertProductToDTO(product)})
}

func parseProductParams(req dto.ProductUpsertDTO) (service.ProductParams, error) {
	price, err := decimal.NewFromString(strings.TrimSpace(req.Price))
	if err != nil {
		return service.ProductParams{}, apperr.Validation("invalid price")
	}
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}
	return service.ProductParams{
		Name:        req.Name,
		Category:    req.Category,
		Description: req.Description,
		Price:       price,
		Stock:       req.Stock,
		IsActive:    active,
	}, nil
}

// @Summary create product
// @Tags admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param product body dto.ProductUpsertDTO true "product"
// @Success 201 {object} dto.ProductResponse "created"
// @Failure 400 {object} dto.Response "validation error"
// @Failure 403 {object} dto.Response "unauthorized"
// @Router /admin/products [post]
func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req dto.ProductUpsertDTO
	if err := decodeBody(r, &req); err != nil {
		errorJSON(w, r, err)
		return
	}
	arg, err := parseProductParams(req)
	if err != nil {
		errorJSON(w, r, err)
		return
	}
	product, err := h.catalogService.CreateProduct(r.Context(), arg)
	if err != nil {
		errorJSON(w, r, err)
		return
	}
	successJSON(w, r, http.StatusCreated, dto.ProductResponse{Response: dto.OK(), Product: convertProductToDTO(product)})
}

// @Summary update product
// @Tags admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "product id"
// @Param product body dto.ProductUpsertDTO true "product"
// @Success 200 {object} dto.ProductResponse "success"
// @Failure 400 {object} dto.Response "validation error"
// @Failure 404 {object} dto.Response "not found"
// @Router /admin/products/{id} [put]
func (h *ProductHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		errorJSON(w, r, err)
		return
	}
	var req dto.ProductUpsertDTO
	if err := decodeBody(r, &req); err != nil {
		errorJSON(w, r, err)
		return
	}
	arg, err := parseProductParams(req)
	if err != nil {
		errorJSON(w, r, err)
		return
	}
	product, err := h.catalogService.UpdateProduct(r.Context(), id, arg)
	if err != nil {
		errorJSON(w, r, err)
		return
	}
	successJSON(w, r, http.StatusOK, dto.ProductResponse{Response: dto.OK(), Product: convertProductToDTO(product)})
}
