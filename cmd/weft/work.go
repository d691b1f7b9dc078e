package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	backend "github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	redisstore "github.com/weftflow/weft/internal/adapters/redis"
	"github.com/weftflow/weft/internal/config"
	"github.com/weftflow/weft/internal/credentials"
	"github.com/weftflow/weft/internal/eval"
	"github.com/weftflow/weft/internal/logging"
	"github.com/weftflow/weft/internal/metrics"
	"github.com/weftflow/weft/internal/nodes"
	"github.com/weftflow/weft/internal/queue"
	"github.com/weftflow/weft/internal/runtime"
	"github.com/weftflow/weft/pkg/registry"
)

var workCmd = &cobra.Command{
	Use:   "work",
	Short: "Start the queue worker",
	Long:  `Starts a worker that consumes execution jobs from the redis queue, runs each graph to a terminal status and persists results through the redis store. Health and prometheus metrics are served over HTTP.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfgPath, _ := cmd.Flags().GetString("config")

		cfg, err := config.Load(cfgPath)
		if err != nil {
			fmt.Printf("Error loading config: %v\n", err)
			os.Exit(1)
		}

		logger := logging.New(logging.ParseLevel(cfg.LogLevel))

		client := backend.NewClient(&backend.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer client.Close()

		store := redisstore.NewFromClient(client)
		creds := credentials.NewResolver(store)

		reg := registry.New()
		nodes.RegisterBuiltins(reg, eval.New(), nil)

		promReg := prometheus.NewRegistry()
		m := metrics.New(promReg)

		runner := runtime.NewRunner(store, creds, reg,
			runtime.WithLogger(logger),
			runtime.WithMetrics(m),
		)
		consumer := queue.NewConsumer(client, runner,
			queue.WithQueueName(cfg.Queue.Name),
			queue.WithConcurrency(cfg.Queue.Concurrency),
			queue.WithLogger(logger),
			queue.WithMetrics(m),
		)

		router := chi.NewRouter()
		router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
			if err := client.Ping(r.Context()).Err(); err != nil {
				http.Error(w, err.Error(), http.StatusServiceUnavailable)
				return
			}
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ok"))
		})
		router.Handle("/metrics", promhttp.HandlerFor(promReg, promhttp.HandlerOpts{}))

		srv := &http.Server{
			Addr:    cfg.HTTP.Addr,
			Handler: router,
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)

		go func() {
			logger.Info("http listener started", "addr", srv.Addr)
			serverErrors <- srv.ListenAndServe()
		}()

		consumerDone := make(chan error, 1)
		go func() {
			consumerDone <- consumer.Start(ctx)
		}()

		select {
		case err := <-serverErrors:
			fmt.Printf("Server error: %v\n", err)
			os.Exit(1)

		case err := <-consumerDone:
			if err != nil {
				logger.Error("consumer stopped", "err", err)
			}

			// Give outstanding requests a deadline for completion.
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Error("graceful shutdown did not complete", "err", err)
				if err := srv.Close(); err != nil {
					logger.Error("error killing server", "err", err)
				}
			}
			logger.Info("worker stopped gracefully")
		}
	},
}

func init() {
	rootCmd.AddCommand(workCmd)
}
