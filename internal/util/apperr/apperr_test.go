package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKindHTTPStatus(t *testing.T) {
	testCases := []struct {
		kind   Kind
		status int
	}{
		{KindValidation, http.StatusBadRequest},
		{KindUnauthenticated, http.StatusUnauthorized},
		{KindUnauthorized, http.StatusForbidden},
		{KindNotFound, http.StatusNotFound},
		{KindStockInsufficient, http.StatusBadRequest},
		{KindInvalidTransition, http.StatusBadRequest},
		{KindPersistence, http.StatusInternalServerError},
		{Kind(99), http.StatusInternalServerError},
	}

	for _, tc := range testCases {
		t.Run(tc.kind.String(), func(t *testing.T) {
			require.Equal(t, tc.status, tc.kind.HTTPStatus())
		})
	}
}

func TestKindOfWrapped(t *testing.T) {
	base := StockInsufficient("product %d out of stock", 7)
	wrapped := fmt.Errorf("create order: %w", base)

	require.Equal(t, KindStockInsufficient, KindOf(wrapped))
	require.True(t, Is(wrapped, KindStockInsufficient))
	require.Equal(t, "product 7 out of stock", PublicMessage(wrapped))
}

func TestPersistenceHidesCause(t *testing.T) {
	cause := errors.New("pq: connection refused")
	err := Persistence(cause)

	require.ErrorIs(t, err, cause)
	require.Equal(t, "internal server error", PublicMessage(err))
	require.Equal(t, KindPersistence, KindOf(errors.New("plain")))
	require.Equal(t, "internal server error", PublicMessage(errors.New("plain")))
}
