/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package aztable

import (
	"context"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/runtime"
	"github.com/Azure/azure-sdk-for-go/sdk/data/aztables"

	"github.com/suparena/dictstore/retry"
)

// API is the subset of the table client used by the store. *aztables.Client
// satisfies it; tests substitute a fake.
type API interface {
	CreateTable(ctx context.Context, options *aztables.CreateTableOptions) (aztables.CreateTableResponse, error)
	GetEntity(ctx context.Context, partitionKey string, rowKey string, options *aztables.GetEntityOptions) (aztables.GetEntityResponse, error)
	UpsertEntity(ctx context.Context, entity []byte, options *aztables.UpsertEntityOptions) (aztables.UpsertEntityResponse, error)
	DeleteEntity(ctx context.Context, partitionKey string, rowKey string, options *aztables.DeleteEntityOptions) (aztables.DeleteEntityResponse, error)
	SubmitTransaction(ctx context.Context, transactionActions []aztables.TransactionAction, tableSubmitTransactionOptions *aztables.SubmitTransactionOptions) (aztables.TransactionResponse, error)
	NewListEntitiesPager(listOptions *aztables.ListEntitiesOptions) *runtime.Pager[aztables.ListEntitiesResponse]
}

var _ API = (*aztables.Client)(nil)

// retryingAPI routes every call, including each page fetch, through the
// retry policy.
type retryingAPI struct {
	next   API
	policy retry.Executor
}

var _ API = (*retryingAPI)(nil)

func (r *retryingAPI) CreateTable(ctx context.Context, options *aztables.CreateTableOptions) (aztables.CreateTableResponse, error) {
	return retry.Do(ctx, r.policy, "CreateTable", func(ctx context.Context) (aztables.CreateTableResponse, error) {
		return r.next.CreateTable(ctx, options)
	})
}

func (r *retryingAPI) GetEntity(ctx context.Context, partitionKey string, rowKey string, options *aztables.GetEntityOptions) (aztables.GetEntityResponse, error) {
	return retry.Do(ctx, r.policy, "GetEntity", func(ctx context.Context) (aztables.GetEntityResponse, error) {
		return r.next.GetEntity(ctx, partitionKey, rowKey, options)
	})
}

func (r *retryingAPI) UpsertEntity(ctx context.Context, entity []byte, options *aztables.UpsertEntityOptions) (aztables.UpsertEntityResponse, error) {
	return retry.Do(ctx, r.policy, "UpsertEntity", func(ctx context.Context) (aztables.UpsertEntityResponse, error) {
		return r.next.UpsertEntity(ctx, entity, options)
	})
}

func (r *retryingAPI) DeleteEntity(ctx context.Context, partitionKey string, rowKey string, options *aztables.DeleteEntityOptions) (aztables.DeleteEntityResponse, error) {
	return retry.Do(ctx, r.policy, "DeleteEntity", func(ctx context.Context) (aztables.DeleteEntityResponse, error) {
		return r.next.DeleteEntity(ctx, partitionKey, rowKey, options)
	})
}

func (r *retryingAPI) SubmitTransaction(ctx context.Context, actions []aztables.TransactionAction, options *aztables.SubmitTransactionOptions) (aztables.TransactionResponse, error) {
	return retry.Do(ctx, r.policy, "SubmitTransaction", func(ctx context.Context) (aztables.TransactionResponse, error) {
		return r.next.SubmitTransaction(ctx, actions, options)
	})
}

// NewListEntitiesPager wraps the underlying pager so that every page fetch is
// retried. A failed fetch leaves the underlying pager where it was.
func (r *retryingAPI) NewListEntitiesPager(options *aztables.ListEntitiesOptions) *runtime.Pager[aztables.ListEntitiesResponse] {
	inner := r.next.NewListEntitiesPager(options)
	return runtime.NewPager(runtime.PagingHandler[aztables.ListEntitiesResponse]{
		More: func(aztables.ListEntitiesResponse) bool {
			return inner.More()
		},
		Fetcher: func(ctx context.Context, _ *aztables.ListEntitiesResponse) (aztables.ListEntitiesResponse, error) {
			return retry.Do(ctx, r.policy, "ListEntities", inner.NextPage)
		},
	})
}
