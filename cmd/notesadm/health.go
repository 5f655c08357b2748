package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	grpc_health_v1 "google.golang.org/grpc/health/grpc_health_v1"

	internalgrpc "github.com/EgehanKilicarslan/notekeeper/internal/grpc"
)

var (
	healthAddr    string
	healthTimeout time.Duration
	healthTLS     bool
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Query a running server's gRPC health service",
	RunE: func(cmd *cobra.Command, args []string) error {
		addr := healthAddr
		if addr == "" {
			addr = fmt.Sprintf("localhost:%s", cfg.ApiGrpcPort)
		}

		client, err := internalgrpc.NewClient(addr, healthTLS)
		if err != nil {
			return err
		}
		defer client.Close()

		ctx, cancel := context.WithTimeout(context.Background(), healthTimeout)
		defer cancel()

		status, err := client.Check(ctx, internalgrpc.ServiceName)
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), status.String())
		if status != grpc_health_v1.HealthCheckResponse_SERVING {
			return fmt.Errorf("server at %s is %s", addr, status)
		}
		return nil
	},
}

func init() {
	healthCmd.Flags().StringVar(&healthAddr, "addr", "", "gRPC address (default localhost:$API_GRPC_PORT)")
	healthCmd.Flags().DurationVar(&healthTimeout, "timeout", 3*time.Second, "Health check timeout")
	healthCmd.Flags().BoolVar(&healthTLS, "tls", false, "Use TLS")
	rootCmd.AddCommand(healthCmd)
}
