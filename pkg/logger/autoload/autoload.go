// Package autoload configures the global logger from LOG_* variables on import.
package autoload

import (
	configx "github.com/mithran92/Agentic-AI-In-Supply-Chain/pkg/config"
	logx "github.com/mithran92/Agentic-AI-In-Supply-Chain/pkg/logger"
	"github.com/rs/zerolog/log"
)

func init() {
	conf, err := configx.New[logx.Config]("LOG")
	if err != nil {
		logx.Init()
		log.Warn().Err(err).Msg("logger config invalid, using defaults")
		return
	}
	logx.Init(*conf)
}
