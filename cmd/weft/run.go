package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/weftflow/weft"
	"github.com/weftflow/weft/internal/logging"
	"github.com/weftflow/weft/pkg/domain"
)

var runCmd = &cobra.Command{
	Use:   "run <snapshot.json>",
	Short: "Execute a graph snapshot locally",
	Long:  `Runs a graph snapshot file through the in-process engine with an in-memory store and prints the per-node results. Intended for authoring and debugging flows without a queue or redis.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		triggerJSON, _ := cmd.Flags().GetString("trigger")
		credsPath, _ := cmd.Flags().GetString("credentials")
		verbose, _ := cmd.Flags().GetBool("verbose")

		data, err := os.ReadFile(args[0])
		if err != nil {
			fmt.Printf("Error reading snapshot: %v\n", err)
			os.Exit(1)
		}
		var snapshot domain.GraphSnapshot
		if err := json.Unmarshal(data, &snapshot); err != nil {
			fmt.Printf("Error parsing snapshot: %v\n", err)
			os.Exit(1)
		}

		var trigger any
		if triggerJSON != "" {
			if err := json.Unmarshal([]byte(triggerJSON), &trigger); err != nil {
				fmt.Printf("Error parsing trigger payload: %v\n", err)
				os.Exit(1)
			}
		}

		opts := []weft.Option{}
		if verbose {
			opts = append(opts, weft.WithLogger(logging.New(logging.ParseLevel("debug"))))
		}
		engine := weft.New(opts...)
		ctx := context.Background()

		if credsPath != "" {
			if err := loadCredentials(ctx, engine, credsPath); err != nil {
				fmt.Printf("Error loading credentials: %v\n", err)
				os.Exit(1)
			}
		}

		if err := engine.LoadSnapshot(ctx, &snapshot); err != nil {
			fmt.Printf("Error loading snapshot: %v\n", err)
			os.Exit(1)
		}

		execution, results, err := engine.Execute(ctx, snapshot.ID, domain.ModeManual, trigger)
		if err != nil {
			fmt.Printf("Error executing snapshot: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("Execution %s: %s\n", execution.ID, execution.Status)
		for _, res := range results {
			fmt.Printf("  %-20s %-9s %dms\n", res.NodeID, res.Status, res.ExecutionTimeMs)
			if res.ErrorMessage != "" {
				fmt.Printf("    error: %s\n", res.ErrorMessage)
			}
			if verbose {
				out, _ := json.MarshalIndent(res.OutputData, "    ", "  ")
				fmt.Printf("    output: %s\n", out)
			}
		}

		if execution.Status != domain.StatusCompleted {
			os.Exit(1)
		}
	},
}

// loadCredentials seeds the engine from a JSON array of credential records.
func loadCredentials(ctx context.Context, engine *weft.Engine, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var creds []domain.Credential
	if err := json.Unmarshal(data, &creds); err != nil {
		return err
	}
	for i := range creds {
		if err := engine.AddCredential(ctx, &creds[i]); err != nil {
			return err
		}
	}
	return nil
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringP("trigger", "t", "", "Trigger payload as a JSON document")
	runCmd.Flags().String("credentials", "", "Path to a JSON file with credential records")
	runCmd.Flags().BoolP("verbose", "v", false, "Log node execution and print node outputs")
}
