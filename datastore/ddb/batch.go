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
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"

	"github.com/suparena/dictstore/datastore"
	"github.com/suparena/dictstore/internal/validate"
	"github.com/suparena/dictstore/storagemodels"
)

// PutBatch writes entities in chunks of at most BatchSize, one BatchWriteItem
// call per chunk, in input order. If a chunk fails, the chunks before it
// stay written.
func (d *DynamodbDataStore[T]) PutBatch(ctx context.Context, entities []storagemodels.DictionaryEntity[T]) error {
	if err := datastore.ValidateBatch(entities); err != nil {
		return err
	}
	if len(entities) == 0 {
		return nil
	}

	requests := make([]types.WriteRequest, 0, len(entities))
	for i, e := range entities {
		item, err := encodeItem(d.schema, e)
		if err != nil {
			return fmt.Errorf("failed to encode entity %d (%s/%s): %w", i, e.PartitionID, e.EntityID, err)
		}
		requests = append(requests, types.WriteRequest{PutRequest: &types.PutRequest{Item: item}})
	}
	return d.writeChunks(ctx, "PutBatch", requests)
}

// DeletePartition removes every entity of the partition by listing its keys
// and deleting them in chunks. It is not atomic.
func (d *DynamodbDataStore[T]) DeletePartition(ctx context.Context, partitionID string) (bool, error) {
	if err := validate.RequireNonEmpty(partitionID, "partitionID"); err != nil {
		return false, err
	}
	api, err := d.conn.Get(ctx)
	if err != nil {
		return false, err
	}

	var requests []types.WriteRequest
	err = d.queryPartition(ctx, api, partitionID, queryOptions{keysOnly: true}, func(page []map[string]types.AttributeValue) error {
		for _, item := range page {
			entityID, err := decodeKey(item, AttrEntityID)
			if err != nil {
				return err
			}
			requests = append(requests, types.WriteRequest{DeleteRequest: &types.DeleteRequest{Key: keyOf(entityID, partitionID)}})
		}
		return nil
	})
	if err != nil {
		return false, d.mapError("DeletePartition", err)
	}

	if err := d.writeChunks(ctx, "DeletePartition", requests); err != nil {
		return false, err
	}
	d.logger.Debug("partition deleted", zap.String("partition", partitionID), zap.Int("entities", len(requests)))
	return true, nil
}

func (d *DynamodbDataStore[T]) writeChunks(ctx context.Context, operation string, requests []types.WriteRequest) error {
	if len(requests) == 0 {
		return nil
	}
	api, err := d.conn.Get(ctx)
	if err != nil {
		return err
	}

	chunks := datastore.Chunk(requests, d.cfg.BatchSize)
	for i, chunk := range chunks {
		_, err := api.BatchWriteItem(ctx, &dynamodb.BatchWriteItemInput{
			RequestItems: map[string][]types.WriteRequest{d.table.Name: chunk},
		})
		if err != nil {
			return fmt.Errorf("%s chunk %d of %d: %w", operation, i+1, len(chunks), d.mapError(operation, err))
		}
		d.logger.Debug("batch chunk written",
			zap.String("operation", operation),
			zap.Int("chunk", i+1),
			zap.Int("chunks", len(chunks)),
			zap.Int("size", len(chunk)))
	}
	return nil
}

func countRequests(items map[string][]types.WriteRequest) int {
	n := 0
	for _, reqs := range items {
		n += len(reqs)
	}
	return n
}

// queryOptions tunes a partition query.
type queryOptions struct {
	keysOnly bool
	pageSize int32
}

// queryPartition pages through every item of a partition, calling fn once
// per page.
func (d *DynamodbDataStore[T]) queryPartition(ctx context.Context, api API, partitionID string, opts queryOptions, fn func(page []map[string]types.AttributeValue) error) error {
	input, err := d.partitionQuery(partitionID, opts)
	if err != nil {
		return err
	}
	paginator := dynamodb.NewQueryPaginator(api, input)
	for paginator.HasMorePages() {
		out, err := paginator.NextPage(ctx)
		if err != nil {
			return err
		}
		if err := fn(out.Items); err != nil {
			return err
		}
	}
	return nil
}

func (d *DynamodbDataStore[T]) partitionQuery(partitionID string, opts queryOptions) (*dynamodb.QueryInput, error) {
	keyCond := expression.Key(AttrPartitionID).Equal(expression.Value(partitionID))
	builder := expression.NewBuilder().WithKeyCondition(keyCond)
	if opts.keysOnly {
		builder = builder.WithProjection(expression.NamesList(expression.Name(AttrPartitionID), expression.Name(AttrEntityID)))
	}
	expr, err := builder.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build partition query: %w", err)
	}

	input := &dynamodb.QueryInput{
		TableName:                 aws.String(d.table.Name),
		KeyConditionExpression:    expr.KeyCondition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		ProjectionExpression:      expr.Projection(),
	}
	if opts.pageSize > 0 {
		input.Limit = aws.Int32(opts.pageSize)
	}
	return input, nil
}
