package main

import (
	"os"

	"github.com/flowsome/flowsome/cmd/flowsome/cmd"
	"github.com/rs/zerolog/log"
)

func main() {
	if err := cmd.NewRootCmd().Execute(); err != nil {
		log.Error().Err(err).Msg("")
		os.Exit(1)
	}
}
