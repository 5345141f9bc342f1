package token

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/mira-tu/FinalFlower-sub001/internal/constants"
)

var (
	ErrInvalidToken = errors.New("token is invalid")
	ErrExpiredToken = errors.New("token has expired")
)

// Payload token 內容
type Payload struct {
	ID        uuid.UUID      `json:"id"`
	UserID    uuid.UUID      `json:"user_id"`
	Role      constants.Role `json:"role"`
	IssuedAt  time.Time      `json:"issued_at"`
	ExpiredAt time.Time      `json:"expired_at"`
}

func NewPayload(userID uuid.UUID, role constants.Role, duration time.Duration) (*Payload, error) {
	tokenID, err := uuid.NewRandom()
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	return &Payload{
		ID:        tokenID,
		UserID:    userID,
		Role:      role,
		IssuedAt:  now,
		ExpiredAt: now.Add(duration),
	}, nil
}

func (p *Payload) Valid() error {
	if time.Now().After(p.ExpiredAt) {
		return ErrExpiredToken
	}
	if p.UserID == uuid.Nil || !constants.IsValidRole(string(p.Role)) {
		return ErrInvalidToken
	}
	return nil
}
