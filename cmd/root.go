package cmd

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/teemow/formcaller/internal/logging"
)

// rootCmd represents the base command for the formcaller application
var rootCmd = &cobra.Command{
	Use:   "formcaller",
	Short: "Turns Google Forms into function-calling schemas for AI agents",
	Long: `formcaller loads a Google Form, normalizes its questions and derives the
function-calling schema an AI agent (for example a voice agent on a phone
call) uses to submit the answers.

It can run as:
  - A CLI that prints forms, schemas and agent instructions
  - An MCP (Model Context Protocol) server for AI assistants`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		logger, err := logging.NewLogger(cmd.ErrOrStderr(), globals.logFormat, globals.debug)
		if err != nil {
			return err
		}
		slog.SetDefault(logger)
		return nil
	},
}

// globalOptions are the persistent flags shared by all commands.
type globalOptions struct {
	debug       bool
	logFormat   string
	account     string
	accessToken string
}

var globals globalOptions

// version will be set by main
var version = "dev"

// SetVersion sets the version for the root command
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "formcaller version %s\n" .Version}}`)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.BoolVar(&globals.debug, "debug", false, "Enable debug logging")
	flags.StringVar(&globals.logFormat, "log-format", logging.FormatText, "Log format: text or json")
	flags.StringVar(&globals.account, "account", "default", "Google account whose cached token is used")
	flags.StringVar(&globals.accessToken, "access-token", "", "Google access token to use instead of the cached one. Can also use FORMCALLER_ACCESS_TOKEN env var.")

	rootCmd.AddCommand(newLoadCmd())
	rootCmd.AddCommand(newSchemaCmd())
	rootCmd.AddCommand(newInstructionsCmd())
	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newAuthCmd())
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newGenerateDocsCmd())
	rootCmd.AddCommand(newVersionCmd())
}
