// apps/go-solver/main.go
//
// Entry point: loads .env (if present) and hands off to the CLI.
// Logging level and format are applied by the CLI once configuration is read.

package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/go-solver/internal/cli"
)

func main() {
	_ = godotenv.Load()

	if err := cli.RootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("go-solver exited")
		os.Exit(1)
	}
}
