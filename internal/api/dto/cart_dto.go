package dto

type CartItemDTO struct {
	ProductID     int64   `json:"product_id"`
	Quantity      int     `json:"quantity"`
	Customization *string `json:"customization,omitempty"`
}

type CartResponse struct {
	Response
	Items []CartItemDTO `json:"items"`
}

type CartItemResponse struct {
	Response
	Item CartItemDTO `json:"item"`
}
