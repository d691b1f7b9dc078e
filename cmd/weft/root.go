package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "weft",
	Short: "Weft is a workflow execution engine",
	Long:  `Weft executes versioned workflow graphs: triggers start an execution, actions transform a flowing data packet, and branches route it down tagged handles. Run "weft work" to consume jobs from the queue, or "weft run" to execute a snapshot file locally.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Best effort; the worker is configured through flags and WEFT_* vars.
		_ = godotenv.Load()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "", "Path to a yaml config file")
}
