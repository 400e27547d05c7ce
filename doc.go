/*
Package dictstore is a provider-agnostic partitioned dictionary store.

Entities of a registered type T are kept under an (entity ID, partition ID)
key in a cloud key-value table. Every backend implements the same
datastore.DictionaryStore[T] contract:

  - Exists, Get, Put and Delete on single keys
  - PutBatch, written in chunks of at most 25 entities
  - ListPartition, streamed page by page over a channel
  - DeletePartition

Backends:
  - datastore/ddb: Amazon DynamoDB
  - datastore/aztable: Azure Table storage
  - datastore/mock: in-memory, for tests

Entity types declare their persisted fields once with the registry package.
The first use of a store connects and, with AutoSetup, creates the table.
Remote calls go through one retry policy that retries throttling and server
faults with exponential backoff.

Basic Usage:

	registry.Register(func(b *schema.Builder[Note]) {
	    b.String("Title", func(n *Note) *string { return &n.Title })
	    b.Time("Created", func(n *Note) *time.Time { return &n.Created })
	})

	notes, err := ddb.New[Note](cfg, ddb.WithLogger(logger))

	mts := dictstore.NewMultiTypeStorage()
	dictstore.RegisterDataStore[Note](mts, "notes", notes)

	store, _ := dictstore.GetDataStore[Note](mts, "notes")
	err = store.Put(ctx, storagemodels.NewDictionaryEntity("n-1", "user-7", note))
*/
package dictstore
