/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSetupCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "setup",
		Short: "Connect to the backend and create the table if needed",
		Long: `Connect to the configured backend. With auto_setup enabled (the default) the
table is created when it does not exist and the command waits until it is
ready.

Example:
  dictstore setup
  DICTSTORE_TABLE=documents dictstore setup --debug`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if c, ok := a.store.(connector); ok {
				if err := c.Connect(cmd.Context()); err != nil {
					return fmt.Errorf("setup: %w", err)
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s table is ready\n", a.settings.Backend)
			return nil
		},
	}
}
