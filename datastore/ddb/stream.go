/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/suparena/dictstore/internal/validate"
	"github.com/suparena/dictstore/storagemodels"
)

// ListPartition streams every entity of the partition in table order. Pages
// are fetched lazily as the consumer drains the channel; each page request
// goes through the retry policy. The first failure is sent as the final
// result and the channel is closed. Cancelling ctx stops the listing.
func (d *DynamodbDataStore[T]) ListPartition(ctx context.Context, partitionID string, opts ...storagemodels.ListOption) <-chan storagemodels.StreamResult[T] {
	options := storagemodels.ApplyListOptions(opts...)

	// Create buffered result channel
	resultCh := make(chan storagemodels.StreamResult[T], options.BufferSize)

	// Start streaming in background
	go d.streamWorker(ctx, partitionID, options, resultCh)

	return resultCh
}

// streamWorker handles the actual streaming logic
func (d *DynamodbDataStore[T]) streamWorker(
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
			Meta: storagemodels.StreamMeta{
				Index:      itemIndex,
				PageNumber: pageNumber,
				Timestamp:  time.Now(),
			},
		}:
		}
	}

	if err := validate.RequireNonEmpty(partitionID, "partitionID"); err != nil {
		fail(err)
		return
	}
	api, err := d.conn.Get(ctx)
	if err != nil {
		fail(err)
		return
	}

	err = d.queryPartition(ctx, api, partitionID, queryOptions{pageSize: options.PageSize}, func(page []map[string]types.AttributeValue) error {
		pageNumber++
		for _, item := range page {
			entity, err := decodeItem(d.schema, item)
			if err != nil {
				return err
			}
			result := storagemodels.StreamResult[T]{
				Item: *entity,
				Meta: storagemodels.StreamMeta{
					Index:      itemIndex,
					PageNumber: pageNumber,
					Timestamp:  time.Now(),
				},
			}
			select {
			case <-ctx.Done():
				return ctx.Err()
			case resultCh <- result:
			}
			itemIndex++
		}

		// Report progress after each page
		if options.ProgressHandler != nil {
			options.ProgressHandler(storagemodels.Progress(itemIndex, pageNumber, startTime))
		}
		return nil
	})
	if err != nil && ctx.Err() == nil {
		fail(fmt.Errorf("list partition %q: %w", partitionID, d.mapError("ListPartition", err)))
	}
}
