package constants

import "time"

const (
	//分頁
	DefaultPagingSize int = 20
	DefaultPaging     int = 1

	DefaultDeliveryFee    = 100
	DefaultRequestTimeout = 15 * time.Second
	OrderNumberPrefix     = "ORD"
)

// for api auth
type ContextKey string

const (
	AuthorizationHeaderKey  ContextKey = "authorization"
	AuthorizationTypeBearer ContextKey = "bearer"
	AuthorizationPayloadKey ContextKey = "authorization_payload"
)

type ENV string

const (
	Debug ENV = "debug"
	Dev   ENV = "development"
	Stag  ENV = "staging"
	Prod  ENV = "production"
)

type RequestID string

const (
	RequestIDKey    RequestID = "request_id"
	RequestIDHeader           = "X-Request-Id"
)

// Role 使用者角色，由 token payload 帶入
type Role string

const (
	RoleCustomer Role = "customer"
	RoleEmployee Role = "employee"
	RoleAdmin    Role = "admin"
)

func IsValidRole(role string) bool {
	switch Role(role) {
	case RoleCustomer, RoleEmployee, RoleAdmin:
		return true
	default:
		return false
	}
}

// IsStaff employee 與 admin 可以看到所有訂單並操作狀態
func (r Role) IsStaff() bool {
	return r == RoleEmployee || r == RoleAdmin
}
