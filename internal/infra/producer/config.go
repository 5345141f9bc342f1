package producer

import (
	"errors"
	"time"
)

var (
	ErrInvalidateParameter = errors.New("invalidate parameter")
	// ErrProducerClosed 表示生產者已關閉
	ErrProducerClosed = errors.New("producer is closed")
)

// Config kafka 生產者設定
type Config struct {
	Brokers []string
	Topic   string

	RequiredAcks  int
	BatchSize     int
	BatchTimeout  time.Duration
	WriteTimeout  time.Duration
	RetryAttempts int

	// 熔斷設定，連續失敗達到門檻後在 BreakerTimeout 內直接拒絕
	BreakerFailures uint32
	BreakerTimeout  time.Duration
}

// DefaultConfig returns a Config with default settings
func DefaultConfig() *Config {
	return &Config{
		RequiredAcks:    -1, // 等待所有副本確認
		BatchSize:       100,
		BatchTimeout:    10 * time.Millisecond,
		WriteTimeout:    5 * time.Second,
		RetryAttempts:   3,
		BreakerFailures: 5,
		BreakerTimeout:  30 * time.Second,
	}
}

func (c *Config) Validate() error {
	if len(c.Brokers) == 0 || c.Topic == "" {
		return ErrInvalidateParameter
	}
	if c.RetryAttempts < 1 {
		c.RetryAttempts = 1
	}
	if c.BreakerFailures == 0 {
		c.BreakerFailures = 5
	}
	return nil
}
