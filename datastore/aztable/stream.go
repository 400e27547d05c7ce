/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package aztable

import (
	"context"
	"fmt"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/data/aztables"

	"github.com/suparena/dictstore/internal/validate"
	"github.com/suparena/dictstore/storagemodels"
)

// ListPartition streams every entity of the partition in RowKey order. Pages
// are fetched lazily as the consumer drains the channel. The first failure
// is sent as the final result and the channel is closed. Cancelling ctx
// stops the listing.
func (a *AzureTableDataStore[T]) ListPartition(ctx context.Context, partitionID string, opts ...storagemodels.ListOption) <-chan storagemodels.StreamResult[T] {
	options := storagemodels.ApplyListOptions(opts...)
	resultCh := make(chan storagemodels.StreamResult[T], options.BufferSize)
	go a.streamWorker(ctx, partitionID, options, resultCh)
	return resultCh
}

func (a *AzureTableDataStore[T]) streamWorker(
	ctx context.Context,
	partitionID string,
	options storagemodels.ListOptions,
	resultCh chan<- storagemodels.StreamResult[T],
) {
	defer close(resultCh)

	var itemIndex int64
	var pageNumber int
	startTime := time.Now()

	fail := func(err error) {
		select {
		case <-ctx.Done():
		case resultCh <- storagemodels.StreamResult[T]{
			Error: err,
			Meta:  storagemodels.StreamMeta{Index: itemIndex, PageNumber: pageNumber, Timestamp: time.Now()},
		}:
		}
	}

	if err := validate.RequireNonEmpty(partitionID, "partitionID"); err != nil {
		fail(err)
		return
	}
	if err := checkKey(partitionID, "partitionID"); err != nil {
		fail(err)
		return
	}
	api, err := a.conn.Get(ctx)
	if err != nil {
		fail(err)
		return
	}

	pager := api.NewListEntitiesPager(&aztables.ListEntitiesOptions{
		Filter: to.Ptr(partitionFilter(partitionID)),
		Top:    to.Ptr(options.PageSize),
	})
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			if ctx.Err() == nil {
				fail(fmt.Errorf("list partition %q: %w", partitionID, a.mapError("ListPartition", err)))
			}
			return
		}
		pageNumber++

		for _, raw := range page.Entities {
			entity, err := unmarshalEntity(a.schema, raw)
			if err != nil {
				fail(fmt.Errorf("list partition %q: %w", partitionID, err))
				return
			}
			select {
			case <-ctx.Done():
				return
			case resultCh <- storagemodels.StreamResult[T]{
				Item: *entity,
				Meta: storagemodels.StreamMeta{Index: itemIndex, PageNumber: pageNumber, Timestamp: time.Now()},
			}:
			}
			itemIndex++
		}

		if options.ProgressHandler != nil {
			options.ProgressHandler(storagemodels.Progress(itemIndex, pageNumber, startTime))
		}
	}
}
