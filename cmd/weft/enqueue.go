package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"
	backend "github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	redisstore "github.com/weftflow/weft/internal/adapters/redis"
	"github.com/weftflow/weft/internal/config"
	"github.com/weftflow/weft/internal/queue"
	"github.com/weftflow/weft/pkg/domain"
)

var enqueueCmd = &cobra.Command{
	Use:   "enqueue <snapshot.json>",
	Short: "Publish a snapshot and queue an execution of it",
	Long:  `Stores a graph snapshot and its node instances in redis, creates a queued execution row and pushes a job for a worker to pick up.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfgPath, _ := cmd.Flags().GetString("config")
		triggerJSON, _ := cmd.Flags().GetString("trigger")

		cfg, err := config.Load(cfgPath)
		if err != nil {
			fmt.Printf("Error loading config: %v\n", err)
			os.Exit(1)
		}

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

		client := backend.NewClient(&backend.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer client.Close()

		store := redisstore.NewFromClient(client)
		ctx := context.Background()

		if err := store.PutGraphSnapshot(ctx, &snapshot); err != nil {
			fmt.Printf("Error storing snapshot: %v\n", err)
			os.Exit(1)
		}
		for _, node := range snapshot.Nodes {
			instance := &domain.NodeInstance{
				ID:      uuid.NewString(),
				GraphID: snapshot.GraphID,
				NodeID:  node.ID,
			}
			if err := store.PutNodeInstance(ctx, instance); err != nil {
				fmt.Printf("Error storing node instance: %v\n", err)
				os.Exit(1)
			}
		}

		execution := &domain.Execution{
			ID:             uuid.NewString(),
			GraphID:        snapshot.GraphID,
			GraphVersionID: snapshot.ID,
			Mode:           domain.ModeManual,
			Status:         domain.StatusQueued,
		}
		if err := store.CreateExecution(ctx, execution); err != nil {
			fmt.Printf("Error creating execution: %v\n", err)
			os.Exit(1)
		}

		producer := queue.NewProducer(client, cfg.Queue.Name)
		jobID, err := producer.Enqueue(ctx, queue.Job{
			ExecutionID:    execution.ID,
			GraphVersionID: snapshot.ID,
			TriggerPayload: trigger,
		})
		if err != nil {
			fmt.Printf("Error enqueuing job: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("Queued execution %s (job %s) on %q\n", execution.ID, jobID, cfg.Queue.Name)
	},
}

func init() {
	rootCmd.AddCommand(enqueueCmd)
	enqueueCmd.Flags().StringP("trigger", "t", "", "Trigger payload as a JSON document")
}
