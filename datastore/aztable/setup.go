/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package aztable

import (
	"context"
	"fmt"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/data/aztables"
	"go.uber.org/zap"
)

// ensureTable creates the table when it is missing. A table that is still
// being deleted cannot be recreated yet, so creation is retried every
// PollInterval for as long as ctx allows.
func (a *AzureTableDataStore[T]) ensureTable(ctx context.Context, api API) error {
	for polls := 0; ; polls++ {
		_, err := api.CreateTable(ctx, nil)
		switch {
		case err == nil:
			a.logger.Info("table created", zap.Int("polls", polls))
			return nil
		case hasErrorCode(err, aztables.TableAlreadyExists):
			return nil
		case hasErrorCode(err, aztables.TableBeingDeleted):
			a.logger.Info("waiting for table deletion to finish", zap.Int("poll", polls))
		default:
			return fmt.Errorf("create table %s: %w", a.cfg.TableName, err)
		}

		timer := time.NewTimer(a.cfg.PollInterval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}
