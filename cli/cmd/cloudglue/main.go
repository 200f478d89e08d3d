// Cloudglue CLI - video understanding command-line interface.
package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/cloudglue/cloudglue-go/cli/commands"
)

// ExitCoder is an interface for errors that have an exit code.
type ExitCoder interface {
	ExitCode() int
}

func main() {
	// A local .env may carry CLOUDGLUE_API_KEY; absence is fine.
	_ = godotenv.Load()

	app := commands.NewApp()
	if err := app.Execute(); err != nil {
		if ec, ok := err.(ExitCoder); ok {
			os.Exit(ec.ExitCode())
		}
		os.Exit(1)
	}
}
