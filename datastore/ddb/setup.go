/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"
)

// ensureTable creates the table when it is missing and blocks until it is
// ACTIVE, polling every PollInterval for as long as ctx allows.
func (d *DynamodbDataStore[T]) ensureTable(ctx context.Context, api API) error {
	for polls := 0; ; polls++ {
		status, exists, err := d.describeTable(ctx, api)
		if err != nil {
			return err
		}

		switch {
		case !exists:
			if err := d.createTable(ctx, api); err != nil {
				return err
			}
		case status == types.TableStatusActive:
			if polls > 0 {
				d.logger.Info("table active", zap.Int("polls", polls))
			}
			return nil
		default:
			d.logger.Info("waiting for table", zap.String("status", string(status)), zap.Int("poll", polls))
		}

		timer := time.NewTimer(d.cfg.PollInterval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}

func (d *DynamodbDataStore[T]) describeTable(ctx context.Context, api API) (types.TableStatus, bool, error) {
	out, err := api.DescribeTable(ctx, &dynamodb.DescribeTableInput{TableName: aws.String(d.table.Name)})
	if err != nil {
		if isResourceNotFound(err) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("describe table %s: %w", d.table.Name, err)
	}
	if out.Table == nil {
		return "", false, fmt.Errorf("describe table %s: empty description", d.table.Name)
	}
	return out.Table.TableStatus, true, nil
}

func (d *DynamodbDataStore[T]) createTable(ctx context.Context, api API) error {
	d.logger.Info("creating table",
		zap.Int64("read_capacity_units", d.table.ReadCapacityUnits),
		zap.Int64("write_capacity_units", d.table.WriteCapacityUnits))

	_, err := api.CreateTable(ctx, &dynamodb.CreateTableInput{
		TableName: aws.String(d.table.Name),
		AttributeDefinitions: []types.AttributeDefinition{
			{AttributeName: aws.String(d.table.PartitionKey), AttributeType: types.ScalarAttributeTypeS},
			{AttributeName: aws.String(d.table.RangeKey), AttributeType: types.ScalarAttributeTypeS},
		},
		KeySchema: []types.KeySchemaElement{
			{AttributeName: aws.String(d.table.PartitionKey), KeyType: types.KeyTypeHash},
			{AttributeName: aws.String(d.table.RangeKey), KeyType: types.KeyTypeRange},
		},
		BillingMode: types.BillingModeProvisioned,
		ProvisionedThroughput: &types.ProvisionedThroughput{
			ReadCapacityUnits:  aws.Int64(d.table.ReadCapacityUnits),
			WriteCapacityUnits: aws.Int64(d.table.WriteCapacityUnits),
		},
	})
	if err != nil {
		// another client is creating it
		if isResourceInUse(err) {
			d.logger.Info("table creation already in progress")
			return nil
		}
		return fmt.Errorf("create table %s: %w", d.table.Name, err)
	}
	return nil
}
