package util

import (
	"context"

	"github.com/mira-tu/FinalFlower-sub001/internal/constants"
	"github.com/mira-tu/FinalFlower-sub001/internal/infra/token"
)

// GetTokenPayloadFromContext 取得 AuthPayloadMiddleware 放入的 payload，未登入時回傳 nil
func GetTokenPayloadFromContext(ctx context.Context) *token.Payload {
	var tokenPayload *token.Payload

	if v := ctx.Value(constants.AuthorizationPayloadKey); v != nil {
		tokenPayload, _ = v.(*token.Payload)
	}

	return tokenPayload
}

// GetRequestIDFromContext 取得 request id，沒有時回傳 "unknown"
func GetRequestIDFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(constants.RequestIDKey).(string); ok && v != "" {
		return v
	}
	return "unknown"
}
