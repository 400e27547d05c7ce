/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package main

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/suparena/dictstore/storagemodels"
)

func newListCmd(a *app) *cobra.Command {
	var partitionID string
	var pageSize int32

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Stream every document of a partition as JSON lines",
		Long: `Stream every document of a partition, one JSON object per line, in the
backend's key order.

Example:
  dictstore list --partition team-a
  dictstore list -p team-a --page-size 200 | jq .document.title`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			results := a.store.ListPartition(ctx, partitionID,
				storagemodels.WithPageSize(pageSize),
				storagemodels.WithProgressHandler(func(p storagemodels.StreamProgress) {
					a.logger.Debug("list progress",
						zap.Int64("items", p.ItemsProcessed),
						zap.Int("pages", p.PagesProcessed),
						zap.Float64("rate", p.CurrentRate),
					)
				}),
			)
			for r := range results {
				if r.Error != nil {
					return r.Error
				}
				if err := writeJSON(cmd.OutOrStdout(), &r.Item, false); err != nil {
					return err
				}
			}
			return nil
		},
	}
	partitionFlag(cmd, &partitionID)
	cmd.Flags().Int32Var(&pageSize, "page-size", 100, "Items per backend page")
	return cmd
}
