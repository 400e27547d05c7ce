/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"

	"github.com/suparena/dictstore/retry"
)

// API is the subset of the DynamoDB client used by the store. *dynamodb.Client
// satisfies it; tests substitute a fake.
type API interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
	BatchWriteItem(ctx context.Context, params *dynamodb.BatchWriteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.BatchWriteItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	DescribeTable(ctx context.Context, params *dynamodb.DescribeTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error)
	CreateTable(ctx context.Context, params *dynamodb.CreateTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.CreateTableOutput, error)
}

var _ API = (*dynamodb.Client)(nil)

// retryingAPI routes every call through the retry policy. It is the only
// place remote calls are retried.
type retryingAPI struct {
	next   API
	policy retry.Executor
}

var _ API = (*retryingAPI)(nil)

func (r *retryingAPI) GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	return retry.Do(ctx, r.policy, "GetItem", func(ctx context.Context) (*dynamodb.GetItemOutput, error) {
		return r.next.GetItem(ctx, params, optFns...)
	})
}

func (r *retryingAPI) PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	return retry.Do(ctx, r.policy, "PutItem", func(ctx context.Context) (*dynamodb.PutItemOutput, error) {
		return r.next.PutItem(ctx, params, optFns...)
	})
}

func (r *retryingAPI) DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error) {
	return retry.Do(ctx, r.policy, "DeleteItem", func(ctx context.Context) (*dynamodb.DeleteItemOutput, error) {
		return r.next.DeleteItem(ctx, params, optFns...)
	})
}

// BatchWriteItem resubmits unprocessed items inside the same policy: a
// response with leftovers counts as a transient failure of the attempt.
func (r *retryingAPI) BatchWriteItem(ctx context.Context, params *dynamodb.BatchWriteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.BatchWriteItemOutput, error) {
	pending := params.RequestItems
	var last *dynamodb.BatchWriteItemOutput
	err := r.policy.Execute(ctx, "BatchWriteItem", func(ctx context.Context) error {
		in := *params
		in.RequestItems = pending
		out, err := r.next.BatchWriteItem(ctx, &in, optFns...)
		if err != nil {
			return err
		}
		last = out
		if n := countRequests(out.UnprocessedItems); n > 0 {
			pending = out.UnprocessedItems
			return retry.Transient(fmt.Errorf("%d unprocessed items", n))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return last, nil
}

func (r *retryingAPI) Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	return retry.Do(ctx, r.policy, "Query", func(ctx context.Context) (*dynamodb.QueryOutput, error) {
		return r.next.Query(ctx, params, optFns...)
	})
}

func (r *retryingAPI) DescribeTable(ctx context.Context, params *dynamodb.DescribeTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error) {
	return retry.Do(ctx, r.policy, "DescribeTable", func(ctx context.Context) (*dynamodb.DescribeTableOutput, error) {
		return r.next.DescribeTable(ctx, params, optFns...)
	})
}

func (r *retryingAPI) CreateTable(ctx context.Context, params *dynamodb.CreateTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.CreateTableOutput, error) {
	return retry.Do(ctx, r.policy, "CreateTable", func(ctx context.Context) (*dynamodb.CreateTableOutput, error) {
		return r.next.CreateTable(ctx, params, optFns...)
	})
}
