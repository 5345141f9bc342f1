package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind 錯誤分類，決定對外的 HTTP status
type Kind int

const (
	KindValidation Kind = iota + 1
	KindUnauthenticated
	KindUnauthorized
	KindNotFound
	KindStockInsufficient
	KindInvalidTransition
	KindPersistence
)

var kindStatus = map[Kind]int{
	KindValidation:        http.StatusBadRequest,
	KindUnauthenticated:   http.StatusUnauthorized,
	KindUnauthorized:      http.StatusForbidden,
	KindNotFound:          http.StatusNotFound,
	KindStockInsufficient: http.StatusBadRequest,
	KindInvalidTransition: http.StatusBadRequest,
	KindPersistence:       http.StatusInternalServerError,
}

var kindName = map[Kind]string{
	KindValidation:        "validation_error",
	KindUnauthenticated:   "unauthenticated",
	KindUnauthorized:      "unauthorized",
	KindNotFound:          "not_found",
	KindStockInsufficient: "stock_insufficient",
	KindInvalidTransition: "invalid_transition",
	KindPersistence:       "persistence_failure",
}

func (k Kind) String() string {
	if name, ok := kindName[k]; ok {
		return name
	}
	return "unknown"
}

// HTTPStatus 未知分類一律視為 500
func (k Kind) HTTPStatus() int {
	if status, ok := kindStatus[k]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// Error 服務層回傳的錯誤
// Message 可以直接回給呼叫端，Err 只記錄在 log
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func Wrap(kind Kind, err error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Err: err}
}

func Validation(format string, args ...any) *Error {
	return New(KindValidation, format, args...)
}

func NotFound(format string, args ...any) *Error {
	return New(KindNotFound, format, args...)
}

func StockInsufficient(format string, args ...any) *Error {
	return New(KindStockInsufficient, format, args...)
}

func InvalidTransition(format string, args ...any) *Error {
	return New(KindInvalidTransition, format, args...)
}

// Persistence 資料層錯誤，對外只回固定訊息
func Persistence(err error) *Error {
	return Wrap(KindPersistence, err, "internal server error")
}

// KindOf 取出錯誤分類，非 *Error 一律視為 Persistence
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindPersistence
}

// Is 判斷錯誤是否屬於指定分類
func Is(err error, kind Kind) bool {
	var appErr *Error
	return errors.As(err, &appErr) && appErr.Kind == kind
}

// PublicMessage 取得可回給呼叫端的訊息
func PublicMessage(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) && appErr.Kind != KindPersistence {
		return appErr.Message
	}
	return "internal server error"
}
