package dto

// Response 所有回應共用的外層欄位
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

func OK() Response {
	return Response{Success: true}
}

func Fail(message string) Response {
	return Response{Success: false, Message: message}
}

type HealthResponse struct {
	Response
	Status string `json:"status"`
}
