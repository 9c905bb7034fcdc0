// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/linuxfoundation/lfx-v2-product-listing/cmd/service"
	"github.com/linuxfoundation/lfx-v2-product-listing/internal/domain/port"
	"github.com/linuxfoundation/lfx-v2-product-listing/internal/infrastructure/console"
	"github.com/linuxfoundation/lfx-v2-product-listing/internal/middleware"
	logging "github.com/linuxfoundation/lfx-v2-product-listing/pkg/log"
)

const defaultTimeout = 30 * time.Second

var (
	configPath   string
	outputFormat string
	timeout      time.Duration
	quiet        bool

	config *viper.Viper
)

var rootCmd = &cobra.Command{
	Use:           "marketplace",
	Short:         "Browse the marketplace product listing",
	Long:          `Browse, filter and inspect the products offered on the marketplace.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		v, err := service.LoadConfig(configPath)
		if err != nil {
			return err
		}
		if _, err := parseFormat(outputFormat); err != nil {
			return err
		}
		config = v

		logging.InitStructureLogConfig(logging.Config{
			Level:     v.GetString(service.KeyLogLevel),
			AddSource: v.GetBool(service.KeyLogAddSource),
			Format:    v.GetString(service.KeyLogFormat),
		})
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", string(formatTable), "Output format (table, json, yaml)")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", defaultTimeout, "Time limit for the command")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Hide the loading indicator")

	rootCmd.AddCommand(productsCmd)
	rootCmd.AddCommand(interestsCmd)
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(readyCmd)
}

// commandContext bounds a command by --timeout and tags it with a request id
func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	return middleware.WithRequestID(ctx), cancel
}

// newMarketplace wires the configured backends for one command
func newMarketplace(ctx context.Context) *service.Marketplace {
	var loader port.LoadingIndicator = console.NewLoader(os.Stderr, "")
	if quiet {
		loader = console.Discard{}
	}

	backend := service.ProductBackendImpl(ctx, config)
	sessions := service.SessionProviderImpl(ctx, config)
	return service.NewMarketplace(backend, sessions, loader, config.GetInt(service.KeyPageSize))
}

func run(cmd *cobra.Command, fn func(ctx context.Context, m *service.Marketplace) (any, error)) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()

	m := newMarketplace(ctx)
	defer func() {
		if err := m.Close(); err != nil {
			slog.WarnContext(ctx, "failed to close session provider", "error", err)
		}
	}()

	result, err := fn(ctx, m)
	if err != nil {
		return err
	}
	return render(cmd.OutOrStdout(), outputFormat, result)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err == nil {
		return
	}

	fmt.Fprintln(os.Stderr, "error:", err)

	var cmdErr *service.CommandError
	if errors.As(err, &cmdErr) {
		os.Exit(cmdErr.Code)
	}
	os.Exit(service.ExitInternal)
}
