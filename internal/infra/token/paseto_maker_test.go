package token

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mira-tu/FinalFlower-sub001/internal/constants"
	"github.com/stretchr/testify/require"
)

const testKey = "01234567890123456789012345678901"

func TestPasetoMaker(t *testing.T) {
	maker, err := NewPasetoMaker(testKey)
	require.NoError(t, err)

	userID := uuid.New()
	token, payload, err := maker.CreateToken(userID, constants.RoleCustomer, time.Minute)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	verified, err := maker.VerifyToken(token)
	require.NoError(t, err)
	require.Equal(t, payload.ID, verified.ID)
	require.Equal(t, userID, verified.UserID)
	require.Equal(t, constants.RoleCustomer, verified.Role)
	require.WithinDuration(t, payload.ExpiredAt, verified.ExpiredAt, time.Second)
}

func TestExpiredPasetoToken(t *testing.T) {
	maker, err := NewPasetoMaker(testKey)
	require.NoError(t, err)

	token, _, err := maker.CreateToken(uuid.New(), constants.RoleAdmin, -time.Minute)
	require.NoError(t, err)

	_, err = maker.VerifyToken(token)
	require.ErrorIs(t, err, ErrExpiredToken)
}

func TestInvalidPasetoToken(t *testing.T) {
	maker, err := NewPasetoMaker(testKey)
	require.NoError(t, err)
	other, err := NewPasetoMaker("abcdefghijabcdefghijabcdefghijab")
	require.NoError(t, err)

	token, _, err := other.CreateToken(uuid.New(), constants.RoleEmployee, time.Minute)
	require.NoError(t, err)

	_, err = maker.VerifyToken(token)
	require.ErrorIs(t, err, ErrInvalidToken)

	_, err = maker.VerifyToken("not-a-token")
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestInvalidRoleRejected(t *testing.T) {
	maker, err := NewPasetoMaker(testKey)
	require.NoError(t, err)

	token, _, err := maker.CreateToken(uuid.New(), constants.Role("florist"), time.Minute)
	require.NoError(t, err)

	_, err = maker.VerifyToken(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestInvalidKeySize(t *testing.T) {
	_, err := NewPasetoMaker("short")
	require.Error(t, err)
}
