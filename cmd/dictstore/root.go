/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package main

import (
	"context"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/suparena/dictstore/config"
	"github.com/suparena/dictstore/datastore"
	"github.com/suparena/dictstore/metrics"
)

// app carries what the subcommands share once the root command has run
type app struct {
	configPath string
	debug      bool
	metricsOut string

	settings  *config.Settings
	logger    *zap.Logger
	collector *metrics.Collector
	store     datastore.DictionaryStore[Document]

	// open builds the document store; tests replace it
	open   func(ctx context.Context, a *app) (datastore.DictionaryStore[Document], error)
	stderr io.Writer
}

// execute runs the command line and then flushes logs and metrics, also
// when the command failed.
func execute(a *app, args []string) error {
	cmd := newRootCmdWith(a)
	cmd.SetArgs(args)
	err := cmd.Execute()
	if cerr := a.close(); err == nil {
		err = cerr
	}
	return err
}

func newRootCmdWith(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "dictstore",
		Short: "Manage documents in a dictionary store table",
		Long: `Manage documents kept in a DynamoDB or Azure Table dictionary store.

Documents are addressed by a partition and an id. The backend is chosen by the
settings file or the DICTSTORE_BACKEND environment variable.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a.stderr = cmd.ErrOrStderr()
			return a.init(cmd.Context())
		},
	}
	rootCmd.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "Settings file (YAML)")
	rootCmd.PersistentFlags().BoolVar(&a.debug, "debug", false, "Enable development logging")
	rootCmd.PersistentFlags().StringVar(&a.metricsOut, "metrics-out", "", `Write remote call metrics in Prometheus text format to this file ("-" for stderr)`)

	rootCmd.AddCommand(
		newVersionCmd(a),
		newSetupCmd(a),
		newPutCmd(a),
		newGetCmd(a),
		newExistsCmd(a),
		newDeleteCmd(a),
		newListCmd(a),
		newDeletePartitionCmd(a),
	)
	return rootCmd
}

func (a *app) init(ctx context.Context) error {
	if a.logger == nil {
		logger, err := newLogger(a.debug)
		if err != nil {
			return err
		}
		a.logger = logger
	}

	settings, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	a.settings = settings
	if settings.Metrics.Enabled || a.metricsOut != "" {
		a.collector = metrics.NewCollector(settings.Metrics.Namespace)
	}

	store, err := a.open(ctx, a)
	if err != nil {
		return err
	}
	a.store = store
	return nil
}

func (a *app) close() error {
	var err error
	if a.collector != nil {
		a.logMetrics()
		err = a.writeMetrics()
	}
	if a.logger != nil {
		_ = a.logger.Sync()
	}
	return err
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// partitionFlag and idFlag register the key flags shared by the entity
// commands
func partitionFlag(cmd *cobra.Command, target *string) {
	cmd.Flags().StringVarP(target, "partition", "p", "", "Partition ID")
	_ = cmd.MarkFlagRequired("partition")
}

func idFlag(cmd *cobra.Command, target *string) {
	cmd.Flags().StringVarP(target, "id", "i", "", "Entity ID")
	_ = cmd.MarkFlagRequired("id")
}
