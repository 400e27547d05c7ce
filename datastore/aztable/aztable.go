/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package aztable

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/data/aztables"

	"github.com/suparena/dictstore/errors"
	"github.com/suparena/dictstore/internal/validate"
	"github.com/suparena/dictstore/storagemodels"
)

func requireKeys(entityID, partitionID string) error {
	if err := validate.RequireKeys(entityID, partitionID); err != nil {
		return err
	}
	return checkKeys(entityID, partitionID)
}

// Exists reports whether an entity is stored under the key.
func (a *AzureTableDataStore[T]) Exists(ctx context.Context, entityID, partitionID string) (bool, error) {
	if err := requireKeys(entityID, partitionID); err != nil {
		return false, err
	}
	api, err := a.conn.Get(ctx)
	if err != nil {
		return false, err
	}

	_, err = api.GetEntity(ctx, partitionID, entityID, nil)
	if err != nil {
		if isEntityNotFound(err) {
			return false, nil
		}
		return false, a.mapError("Exists", err)
	}
	return true, nil
}

// Get retrieves a single entity. It returns nil, nil if no entity is stored
// under the key.
func (a *AzureTableDataStore[T]) Get(ctx context.Context, entityID, partitionID string) (*storagemodels.DictionaryEntity[T], error) {
	if err := requireKeys(entityID, partitionID); err != nil {
		return nil, err
	}
	api, err := a.conn.Get(ctx)
	if err != nil {
		return nil, err
	}

	resp, err := api.GetEntity(ctx, partitionID, entityID, nil)
	if err != nil {
		if isEntityNotFound(err) {
			return nil, nil
		}
		return nil, a.mapError("Get", err)
	}
	return unmarshalEntity(a.schema, resp.Value)
}

// Put creates or replaces an entity.
func (a *AzureTableDataStore[T]) Put(ctx context.Context, entity storagemodels.DictionaryEntity[T]) error {
	if err := requireKeys(entity.EntityID, entity.PartitionID); err != nil {
		return err
	}
	raw, err := marshalEntity(a.schema, entity)
	if err != nil {
		return fmt.Errorf("failed to encode entity: %w", err)
	}
	api, err := a.conn.Get(ctx)
	if err != nil {
		return err
	}

	_, err = api.UpsertEntity(ctx, raw, &aztables.UpsertEntityOptions{UpdateMode: aztables.UpdateModeReplace})
	return a.mapError("Put", err)
}

// Delete removes an entity. A key that is not stored fails with
// OperationInvalidError, as does a missing table.
func (a *AzureTableDataStore[T]) Delete(ctx context.Context, entityID, partitionID string) (bool, error) {
	if err := requireKeys(entityID, partitionID); err != nil {
		return false, err
	}
	api, err := a.conn.Get(ctx)
	if err != nil {
		return false, err
	}

	_, err = api.DeleteEntity(ctx, partitionID, entityID, nil)
	if err != nil {
		if isEntityNotFound(err) {
			return false, errors.NewOperationInvalidError("Delete", a.cfg.TableName,
				fmt.Sprintf("entity %q does not exist in partition %q", entityID, partitionID), err)
		}
		return false, a.mapError("Delete", err)
	}
	return true, nil
}
