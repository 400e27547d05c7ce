/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newDeleteCmd(a *app) *cobra.Command {
	var partitionID, entityID string

	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a document",
		Long: `Delete a document. Deleting a document that does not exist is an error.

Example:
  dictstore delete --partition team-a --id readme`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.store.Delete(cmd.Context(), entityID, partitionID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %s/%s\n", partitionID, entityID)
			return nil
		},
	}
	partitionFlag(cmd, &partitionID)
	idFlag(cmd, &entityID)
	return cmd
}

func newDeletePartitionCmd(a *app) *cobra.Command {
	var partitionID string
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete-partition",
		Short: "Delete every document of a partition",
		Long: `Delete every document of a partition in batches of at most 25.

Example:
  dictstore delete-partition --partition team-a --yes`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("refusing to delete partition %q without --yes", partitionID)
			}
			if _, err := a.store.DeletePartition(cmd.Context(), partitionID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted partition %s\n", partitionID)
			return nil
		},
	}
	partitionFlag(cmd, &partitionID)
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Confirm the deletion")
	return cmd
}
