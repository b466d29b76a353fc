// ABOUTME: Root CLI command with global flags and subcommand registration
// ABOUTME: Holds the verbose/quiet/format flags shared by every subcommand
package commands

import (
	"github.com/spf13/cobra"
)

// Global flags shared by all subcommands
var (
	verbose bool
	quiet   bool
	format  string
)

const banner = `
██████╗ ██╗███████╗██╗  ██╗███╗   ███╗██╗
██╔══██╗██║██╔════╝██║ ██╔╝████╗ ████║██║
██████╔╝██║███████╗█████╔╝ ██╔████╔██║██║
██╔══██╗██║╚════██║██╔═██╗ ██║╚██╔╝██║██║
██║  ██║██║███████║██║  ██╗██║ ╚═╝ ██║███████╗
╚═╝  ╚═╝╚═╝╚══════╝╚═╝  ╚═╝╚═╝     ╚═╝╚══════╝`

// NewRootCmd creates the root command with all subcommands attached
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "riskml",
		Short: "Pediatric caries risk prediction toolkit",
		Long: banner + `

riskml trains and serves a neural network that predicts a child's
dental caries risk from dental and dietary screening data.

The pipeline covers synthetic data generation, export of stored
screenings to labeled training sets, model training with feature
selection and hyperparameter tuning, and prediction via CLI or MCP.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	cmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress non-essential output")
	cmd.PersistentFlags().StringVar(&format, "format", "auto", "Output format: auto, text, or json")
	cmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	cmd.AddCommand(NewTrainCmd())
	cmd.AddCommand(NewExportCmd())
	cmd.AddCommand(NewSampleCmd())
	cmd.AddCommand(NewSeedCmd())
	cmd.AddCommand(NewPredictCmd())
	cmd.AddCommand(NewInfoCmd())
	cmd.AddCommand(NewMCPCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd().Execute()
}
