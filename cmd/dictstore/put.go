/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/suparena/dictstore/errors"
	"github.com/suparena/dictstore/storagemodels"
)

func newPutCmd(a *app) *cobra.Command {
	var partitionID, entityID, body string

	cmd := &cobra.Command{
		Use:   "put",
		Short: "Write a document",
		Long: `Write a document, replacing any document stored under the same key.

The document is given as JSON, either inline or as "-" to read it from stdin.
UpdatedAt defaults to the current time.

Example:
  dictstore put --partition team-a --id readme --json '{"title":"Hello"}'
  cat doc.json | dictstore put -p team-a -i readme --json -`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := parseDocument(body, cmd.InOrStdin())
			if err != nil {
				return err
			}
			if doc.UpdatedAt.IsZero() {
				doc.UpdatedAt = time.Now().UTC()
			}
			entity := storagemodels.NewDictionaryEntity(entityID, partitionID, doc)
			if err := a.store.Put(cmd.Context(), entity); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "stored %s/%s\n", partitionID, entityID)
			return nil
		},
	}
	partitionFlag(cmd, &partitionID)
	idFlag(cmd, &entityID)
	cmd.Flags().StringVar(&body, "json", "", `Document JSON, or "-" for stdin`)
	_ = cmd.MarkFlagRequired("json")
	return cmd
}

func parseDocument(body string, stdin io.Reader) (Document, error) {
	var r io.Reader = strings.NewReader(body)
	if body == "-" {
		r = stdin
	}
	var doc Document
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return Document{}, errors.NewInvalidArgumentError("json", err.Error())
	}
	return doc, nil
}
