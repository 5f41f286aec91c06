package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/user/fips-dashboard/internal/commands"
)

func main() {
	// Optional .env for GITHUB_TOKEN; absence is not an error.
	_ = godotenv.Load()

	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
