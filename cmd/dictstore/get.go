/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/suparena/dictstore/errors"
	"github.com/suparena/dictstore/storagemodels"
)

func newGetCmd(a *app) *cobra.Command {
	var partitionID, entityID string

	cmd := &cobra.Command{
		Use:   "get",
		Short: "Print a document as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			entity, err := a.store.Get(cmd.Context(), entityID, partitionID)
			if err != nil {
				return err
			}
			if entity == nil {
				return errors.NewNotFoundError("document", partitionID+"/"+entityID)
			}
			return writeJSON(cmd.OutOrStdout(), entity, true)
		},
	}
	partitionFlag(cmd, &partitionID)
	idFlag(cmd, &entityID)
	return cmd
}

func newExistsCmd(a *app) *cobra.Command {
	var partitionID, entityID string

	cmd := &cobra.Command{
		Use:   "exists",
		Short: "Report whether a document exists",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ok, err := a.store.Exists(cmd.Context(), entityID, partitionID)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ok)
			return nil
		},
	}
	partitionFlag(cmd, &partitionID)
	idFlag(cmd, &entityID)
	return cmd
}

// documentJSON is the printed form of a stored document
type documentJSON struct {
	PartitionID string   `json:"partitionId"`
	EntityID    string   `json:"entityId"`
	Document    Document `json:"document"`
}

func writeJSON(w io.Writer, e *storagemodels.DictionaryEntity[Document], indent bool) error {
	enc := json.NewEncoder(w)
	if indent {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(documentJSON{PartitionID: e.PartitionID, EntityID: e.EntityID, Document: e.Entity})
}
