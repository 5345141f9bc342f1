package dto

import "encoding/json"

type ProductDTO struct {
	ID          int64       `json:"id"`
	Name        string      `json:"name"`
	Category    string      `json:"category"`
	Description string      `json:"description"`
	Price       json.Number `json:"price" swaggertype:"number"`
	Stock       int         `json:"stock"`
	IsActive    bool        `json:"is_active"`
}

// ProductUpsertDTO price 以字串傳入避免浮點誤差
type ProductUpsertDTO struct {
	Name        string `json:"name"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Price       string `json:"price"`
	Stock       int    `json:"stock"`
	IsActive    *bool  `json:"is_active,omitempty"`
}

type ProductResponse struct {
	Response
	Product ProductDTO `json:"product"`
}

type ProductsResponse struct {
	Response
	Products []ProductDTO `json:"products"`
}
