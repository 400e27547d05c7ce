/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package aztable

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/data/aztables"
	"go.uber.org/zap"

	"github.com/suparena/dictstore/datastore"
	"github.com/suparena/dictstore/internal/validate"
	"github.com/suparena/dictstore/storagemodels"
)

// partitionActions is the ordered list of transaction actions for one
// partition; a transaction may only touch a single partition.
type partitionActions struct {
	partitionID string
	actions     []aztables.TransactionAction
}

// groupByPartition keeps partitions in order of first appearance and actions
// in input order within each partition.
func groupByPartition(partitionIDs []string, actions []aztables.TransactionAction) []partitionActions {
	var groups []partitionActions
	index := make(map[string]int)
	for i, p := range partitionIDs {
		g, ok := index[p]
		if !ok {
			g = len(groups)
			index[p] = g
			groups = append(groups, partitionActions{partitionID: p})
		}
		groups[g].actions = append(groups[g].actions, actions[i])
	}
	return groups
}

// PutBatch writes entities with one entity group transaction per chunk of at
// most BatchSize entities of the same partition. If a chunk fails, the chunks
// before it stay written.
func (a *AzureTableDataStore[T]) PutBatch(ctx context.Context, entities []storagemodels.DictionaryEntity[T]) error {
	if err := datastore.ValidateBatch(entities); err != nil {
		return err
	}
	if len(entities) == 0 {
		return nil
	}

	partitions := make([]string, 0, len(entities))
	actions := make([]aztables.TransactionAction, 0, len(entities))
	for i, e := range entities {
		if err := checkKeys(e.EntityID, e.PartitionID); err != nil {
			return err
		}
		raw, err := marshalEntity(a.schema, e)
		if err != nil {
			return fmt.Errorf("failed to encode entity %d (%s/%s): %w", i, e.PartitionID, e.EntityID, err)
		}
		partitions = append(partitions, e.PartitionID)
		actions = append(actions, aztables.TransactionAction{
			ActionType: aztables.TransactionTypeInsertReplace,
			Entity:     raw,
		})
	}
	return a.submitChunks(ctx, "PutBatch", groupByPartition(partitions, actions))
}

// DeletePartition removes every entity of the partition by listing its keys
// and deleting them in transactions of at most BatchSize. It is not atomic.
func (a *AzureTableDataStore[T]) DeletePartition(ctx context.Context, partitionID string) (bool, error) {
	if err := validate.RequireNonEmpty(partitionID, "partitionID"); err != nil {
		return false, err
	}
	if err := checkKey(partitionID, "partitionID"); err != nil {
		return false, err
	}
	api, err := a.conn.Get(ctx)
	if err != nil {
		return false, err
	}

	group := partitionActions{partitionID: partitionID}
	pager := api.NewListEntitiesPager(&aztables.ListEntitiesOptions{
		Filter: to.Ptr(partitionFilter(partitionID)),
		Select: to.Ptr(PropPartitionKey + "," + PropRowKey),
	})
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return false, a.mapError("DeletePartition", err)
		}
		for _, raw := range page.Entities {
			doc, err := unmarshalDocument(raw)
			if err != nil {
				return false, err
			}
			rowKey, err := keyProperty(doc, PropRowKey)
			if err != nil {
				return false, err
			}
			key, err := marshalKey(rowKey, partitionID)
			if err != nil {
				return false, err
			}
			group.actions = append(group.actions, aztables.TransactionAction{
				ActionType: aztables.TransactionTypeDelete,
				Entity:     key,
			})
		}
	}

	if err := a.submitChunks(ctx, "DeletePartition", []partitionActions{group}); err != nil {
		return false, err
	}
	a.logger.Debug("partition deleted", zap.String("partition", partitionID), zap.Int("entities", len(group.actions)))
	return true, nil
}

func (a *AzureTableDataStore[T]) submitChunks(ctx context.Context, operation string, groups []partitionActions) error {
	var chunks [][]aztables.TransactionAction
	for _, g := range groups {
		chunks = append(chunks, datastore.Chunk(g.actions, a.cfg.BatchSize)...)
	}
	if len(chunks) == 0 {
		return nil
	}
	api, err := a.conn.Get(ctx)
	if err != nil {
		return err
	}

	for i, chunk := range chunks {
		if _, err := api.SubmitTransaction(ctx, chunk, nil); err != nil {
			return fmt.Errorf("%s chunk %d of %d: %w", operation, i+1, len(chunks), a.mapError(operation, err))
		}
		a.logger.Debug("batch chunk written",
			zap.String("operation", operation),
			zap.Int("chunk", i+1),
			zap.Int("chunks", len(chunks)),
			zap.Int("size", len(chunk)))
	}
	return nil
}
