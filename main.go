package main

import (
	"os"

	_ "github.com/mithran92/Agentic-AI-In-Supply-Chain/pkg/logger/autoload"
	"github.com/rs/zerolog/log"
)

func main() {
	if err := Run(os.Args[1:]); err != nil {
		log.Error().Err(err).Msg("supply chain optimizer failed")
		os.Exit(1)
	}
}
