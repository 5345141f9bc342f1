package logger

import (
	"os"
	"time"

	"github.com/mira-tu/FinalFlower-sub001/internal/constants"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Setup 設定全域 logger
// debug/development 輸出給人看的格式，其他環境輸出 JSON
func Setup(env string) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339

	var logger zerolog.Logger
	switch constants.ENV(env) {
	case constants.Debug, constants.Dev, "":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.DateTime}).
			With().Timestamp().Logger()
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
		logger = zerolog.New(os.Stdout).With().Timestamp().Str("env", env).Logger()
	}

	log.Logger = logger
	return logger
}
