// Package cli wires ktail's cobra commands.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/charliek/ktail/internal/constants"
)

// Version is set during build
var Version = "dev"

// Global flags
var (
	configPath string
	kubeconfig string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "ktail",
	Short: "Interactive multi-pod log tailing for Kubernetes",
	Long: `ktail tails logs from many cluster containers at once and presents
them as one interleaved, filterable stream. It supports:
  - Interactive namespace, pod, and container selection
  - Include/exclude pattern filtering
  - Pausing the live feed to search recent history
  - A one-shot pod health report`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("ktail version %s\n", Version)
	},
}

func init() {
	// Persistent flags available to all subcommands
	rootCmd.PersistentFlags().StringVar(&configPath, "config", constants.DefaultConfigFile, "Config file")
	rootCmd.PersistentFlags().StringVar(&kubeconfig, "kubeconfig", "", "Path to kubeconfig (defaults to KUBECONFIG or ~/.kube/config)")

	// Set version template
	rootCmd.SetVersionTemplate("ktail version {{.Version}}\n")

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
}

// configExplicit reports whether the operator named the config file.
func configExplicit() bool {
	return rootCmd.PersistentFlags().Changed("config")
}
