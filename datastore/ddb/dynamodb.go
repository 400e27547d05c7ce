/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"

	"github.com/suparena/dictstore/errors"
	"github.com/suparena/dictstore/internal/validate"
	"github.com/suparena/dictstore/storagemodels"
)

var (
	keyProjection = mustBuild(expression.NewBuilder().WithProjection(
		expression.NamesList(expression.Name(AttrPartitionID), expression.Name(AttrEntityID))))
	entityExists = mustBuild(expression.NewBuilder().WithCondition(
		expression.AttributeExists(expression.Name(AttrEntityID))))
)

func mustBuild(b expression.Builder) expression.Expression {
	expr, err := b.Build()
	if err != nil {
		panic(fmt.Sprintf("ddb: invalid expression: %v", err))
	}
	return expr
}

// Exists reports whether an entity is stored under the key.
func (d *DynamodbDataStore[T]) Exists(ctx context.Context, entityID, partitionID string) (bool, error) {
	if err := validate.RequireKeys(entityID, partitionID); err != nil {
		return false, err
	}
	api, err := d.conn.Get(ctx)
	if err != nil {
		return false, err
	}

	out, err := api.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:                aws.String(d.table.Name),
		Key:                      keyOf(entityID, partitionID),
		ProjectionExpression:     keyProjection.Projection(),
		ExpressionAttributeNames: keyProjection.Names(),
	})
	if err != nil {
		return false, d.mapError("Exists", err)
	}
	return len(out.Item) > 0, nil
}

// Get retrieves a single entity. It returns nil, nil if no entity is stored
// under the key.
func (d *DynamodbDataStore[T]) Get(ctx context.Context, entityID, partitionID string) (*storagemodels.DictionaryEntity[T], error) {
	if err := validate.RequireKeys(entityID, partitionID); err != nil {
		return nil, err
	}
	api, err := d.conn.Get(ctx)
	if err != nil {
		return nil, err
	}

	out, err := api.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(d.table.Name),
		Key:            keyOf(entityID, partitionID),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, d.mapError("Get", err)
	}
	if len(out.Item) == 0 {
		return nil, nil
	}
	return decodeItem(d.schema, out.Item)
}

// Put creates or replaces an entity.
func (d *DynamodbDataStore[T]) Put(ctx context.Context, entity storagemodels.DictionaryEntity[T]) error {
	if err := validate.RequireKeys(entity.EntityID, entity.PartitionID); err != nil {
		return err
	}
	item, err := encodeItem(d.schema, entity)
	if err != nil {
		return fmt.Errorf("failed to encode entity: %w", err)
	}
	api, err := d.conn.Get(ctx)
	if err != nil {
		return err
	}

	_, err = api.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(d.table.Name),
		Item:      item,
	})
	return d.mapError("Put", err)
}

// Delete removes an entity. A key that is not stored fails with
// OperationInvalidError, as does a missing table.
func (d *DynamodbDataStore[T]) Delete(ctx context.Context, entityID, partitionID string) (bool, error) {
	if err := validate.RequireKeys(entityID, partitionID); err != nil {
		return false, err
	}
	api, err := d.conn.Get(ctx)
	if err != nil {
		return false, err
	}

	_, err = api.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:                aws.String(d.table.Name),
		Key:                      keyOf(entityID, partitionID),
		ConditionExpression:      entityExists.Condition(),
		ExpressionAttributeNames: entityExists.Names(),
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			return false, errors.NewOperationInvalidError("Delete", d.table.Name,
				fmt.Sprintf("entity %q does not exist in partition %q", entityID, partitionID), err)
		}
		return false, d.mapError("Delete", err)
	}
	return true, nil
}
