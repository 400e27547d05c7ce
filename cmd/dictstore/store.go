/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/suparena/dictstore/config"
	"github.com/suparena/dictstore/datastore"
	"github.com/suparena/dictstore/datastore/aztable"
	"github.com/suparena/dictstore/datastore/ddb"
)

// connector is implemented by stores that connect lazily
type connector interface {
	Connect(ctx context.Context) error
}

func openStore(ctx context.Context, a *app) (datastore.DictionaryStore[Document], error) {
	s := a.settings
	switch s.Backend {
	case config.BackendAzureTable:
		opts := []aztable.Option{
			aztable.WithLogger(a.logger),
			aztable.WithRetryConfig(s.Retry),
		}
		if a.collector != nil {
			opts = append(opts, aztable.WithObserver(a.collector))
		}
		return aztable.New[Document](s.AzureTable, opts...)
	default:
		opts := []ddb.Option{
			ddb.WithLogger(a.logger),
			ddb.WithRetryConfig(s.Retry),
			ddb.WithResolver(s.Resolver()),
		}
		if a.collector != nil {
			opts = append(opts, ddb.WithObserver(a.collector))
		}
		return ddb.New[Document](s.DynamoDB, opts...)
	}
}

// logMetrics logs the remote call totals
func (a *app) logMetrics() {
	summary, err := a.collector.Summary()
	if err != nil {
		a.logger.Warn("failed to gather metrics", zap.Error(err))
		return
	}
	a.logger.Info("remote calls",
		zap.Float64("calls", summary.Calls),
		zap.Float64("attempts", summary.Attempts),
		zap.Float64("retries", summary.Retries),
		zap.Float64("exhausted", summary.Exhausted),
		zap.Float64("failed", summary.Failed),
	)
}

// writeMetrics dumps every series to --metrics-out
func (a *app) writeMetrics() error {
	switch a.metricsOut {
	case "":
		return nil
	case "-":
		return a.collector.WriteText(a.stderr)
	}
	f, err := os.Create(a.metricsOut)
	if err != nil {
		return fmt.Errorf("metrics out: %w", err)
	}
	if err := a.collector.WriteText(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
