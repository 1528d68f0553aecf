package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

// starterConfig is the template written by `lapwise config init`. The API key
// stays out of the file and is injected from the environment.
const starterConfig = `version: "1"

log:
  level: %s
  format: text

server:
  bind: %s

provider:
  api_key: ${OPENAI_API_KEY}
  model: %s

moderation:
  api_key: ${OPENAI_API_KEY}

catalog:
  path: %s
  seed: %t

sessions:
  max_sessions: 500
  max_idle: 30m

scheduler:
  enabled: true
`

func configInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init [path]",
		Short: "Interactively create a starter configuration file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			path := "lapwise.yaml"
			if len(args) == 1 {
				path = args[0]
			}
			if _, err := os.Stat(path); err == nil {
				return fmt.Errorf("%s already exists, refusing to overwrite", path)
			}

			var (
				bind        = "127.0.0.1:8080"
				model       = "gpt-4o-mini"
				catalogPath = "lapwise.db"
				logLevel    = "info"
				seed        = true
			)

			form := huh.NewForm(
				huh.NewGroup(
					huh.NewInput().
						Title("Bind address").
						Description("Host:port the HTTP gateway listens on").
						Value(&bind),
					huh.NewInput().
						Title("Model").
						Description("OpenAI chat model for the assistant").
						Value(&model),
					huh.NewInput().
						Title("Catalog path").
						Description("SQLite database file for the laptop catalog").
						Value(&catalogPath),
					huh.NewSelect[string]().
						Title("Log level").
						Options(
							huh.NewOption("debug", "debug"),
							huh.NewOption("info", "info"),
							huh.NewOption("warn", "warn"),
							huh.NewOption("error", "error"),
						).
						Value(&logLevel),
					huh.NewConfirm().
						Title("Seed the catalog with the bundled laptop dataset?").
						Value(&seed),
				),
			)
			if err := form.Run(); err != nil {
				return err
			}

			content := fmt.Sprintf(starterConfig, logLevel, bind, model, catalogPath, seed)
			if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
				return err
			}

			fmt.Printf("Wrote %s\n", path)
			fmt.Println("Set OPENAI_API_KEY in your environment (or a .env file), then run: lapwise start")
			return nil
		},
	}
}
