/*
Package datastore defines the core interface for the partitioned dictionary store.

The main interface is DictionaryStore[T], which provides typed CRUD, batch and
partition operations for any registered entity type T:

	type DictionaryStore[T any] interface {
	    Exists(ctx context.Context, entityID, partitionID string) (bool, error)
	    Get(ctx context.Context, entityID, partitionID string) (*storagemodels.DictionaryEntity[T], error)
	    Put(ctx context.Context, entity storagemodels.DictionaryEntity[T]) error
	    PutBatch(ctx context.Context, entities []storagemodels.DictionaryEntity[T]) error
	    Delete(ctx context.Context, entityID, partitionID string) (bool, error)
	    DeletePartition(ctx context.Context, partitionID string) (bool, error)
	    ListPartition(ctx context.Context, partitionID string, opts ...storagemodels.ListOption) <-chan storagemodels.StreamResult[T]
	}

Implementations:
  - ddb: Amazon DynamoDB
  - aztable: Azure Table Storage
  - mock: In-memory mock implementation for testing

Batch writes are split with Chunk into groups of at most MaxBatchSize and
sent sequentially, one backend call per chunk.
*/
package datastore
