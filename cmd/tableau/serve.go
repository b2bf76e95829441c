package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/aretw0/tableau"
	"github.com/aretw0/tableau/internal/presentation/tui"
	httpAdapter "github.com/aretw0/tableau/pkg/adapters/http"
	redisAdapter "github.com/aretw0/tableau/pkg/adapters/redis"
	"github.com/aretw0/tableau/pkg/domain"
	"github.com/aretw0/tableau/pkg/observability"
	"github.com/aretw0/tableau/pkg/table"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Long: `Starts the Tableau HTTP API: table management, pointer gestures, moves,
a per-table Server-Sent Events stream and Prometheus metrics on /metrics.

With --redis, every table operation also takes a Redis lock so several
replicas can share the same tables. The password is read from
TABLEAU_REDIS_PASSWORD.`,
		Run: func(cmd *cobra.Command, args []string) {
			port, _ := cmd.Flags().GetString("port")
			redisAddr, _ := cmd.Flags().GetString("redis")
			lockTTL, _ := cmd.Flags().GetDuration("lock-ttl")
			seed, _ := cmd.Flags().GetStringSlice("table")

			cfg, err := loadConfig(cmd)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			logger, err := newLogger(cmd)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}

			streams := httpAdapter.NewStreamManager()
			metrics := observability.NewMetrics(prometheus.DefaultRegisterer)
			logHooks := observability.LogHooks(logger)

			hooks := func(id string) domain.LifecycleHooks {
				return domain.MergeHooks(streams.Hooks(id), metrics.Hooks(), logHooks)
			}

			managerOpts := []table.Option{table.WithLogger(logger), table.WithLockTTL(lockTTL)}
			if redisAddr != "" {
				redisDB, _ := cmd.Flags().GetInt("redis-db")
				locker := redisAdapter.NewLockerFromAddress(redisAddr, os.Getenv("TABLEAU_REDIS_PASSWORD"), redisDB, "tableau:")
				managerOpts = append(managerOpts, table.WithLocker(locker))
				logger.Info("Distributed locking enabled", "addr", redisAddr)
			}
			tables := table.NewManager(tableFactory(cfg, logger, hooks), managerOpts...)

			for _, id := range seed {
				if _, err := tables.Create(context.Background(), id); err != nil {
					logger.Error("Failed to create table", "table", id, "error", err)
					os.Exit(1)
				}
			}

			srv := &http.Server{
				Addr:    ":" + port,
				Handler: httpAdapter.NewHandler(tables, streams),
			}

			// Channel to listen for errors coming from the listener.
			serverErrors := make(chan error, 1)

			go func() {
				tui.PrintBanner(os.Stderr, tableau.Version)
				logger.Info("Starting Tableau Server", "addr", srv.Addr, "tables", strings.Join(seed, ","))
				serverErrors <- srv.ListenAndServe()
			}()

			// Channel to listen for interrupt or terminate signals.
			shutdown := make(chan os.Signal, 1)
			signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

			// Blocking main and waiting for shutdown.
			select {
			case err := <-serverErrors:
				logger.Error("Server error", "error", err)
				os.Exit(1)

			case sig := <-shutdown:
				logger.Info("Start shutdown", "signal", sig.String())

				// Give outstanding requests a deadline for completion.
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()

				// Asking listener to shut down and shed load.
				if err := srv.Shutdown(ctx); err != nil {
					logger.Warn("Graceful shutdown did not complete", "timeout", 5*time.Second, "error", err)
					if err := srv.Close(); err != nil {
						logger.Error("Error killing server", "error", err)
					}
				}
				logger.Info("Tableau Server stopped gracefully")
			}
		},
	}

	cmd.Flags().StringP("port", "p", "8080", "Port to listen on")
	cmd.Flags().String("redis", "", "Redis address for distributed table locks (e.g. localhost:6379)")
	cmd.Flags().Int("redis-db", 0, "Redis database number")
	cmd.Flags().Duration("lock-ttl", 30*time.Second, "Expiry of distributed table locks")
	cmd.Flags().StringSlice("table", []string{"default"}, "Tables to create at startup")
	return cmd
}
