/*
Package ddb provides a DynamoDB implementation of the DictionaryStore interface.

Each entity is stored as one item:

	{
	    "PartitionId": {"S": "tenant-a"},
	    "EntityId":    {"S": "doc-1"},
	    "Entity":      {"M": {"Title": {"S": "Hello"}, "Revision": {"N": "3"}, ...}}
	}

The table is keyed by PartitionId (HASH) and EntityId (RANGE). Every declared
field of the entity is written into the Entity map; AttributeCodec defines the
attribute form of each field kind.

The DynamodbDataStore supports:
  - Lazy connection on first use, with optional table creation (AutoSetup)
  - Chunked batch writes of at most 25 items, resubmitting unprocessed items
  - Streaming partition listings with configurable page and buffer sizes
  - Retry of throttling and server faults through a single retry policy

Usage:

	store, err := ddb.New[Document](ddb.Config{
	    AccessKeyID:     os.Getenv("AWS_ACCESS_KEY_ID"),
	    SecretAccessKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
	    Region:          "us-east-1",
	    TableName:       "documents",
	    AutoSetup:       true,
	}, ddb.WithLogger(logger))

	err = store.Put(ctx, storagemodels.NewDictionaryEntity("doc-1", "tenant-a", doc))

	for r := range store.ListPartition(ctx, "tenant-a", storagemodels.WithPageSize(50)) {
	    if r.Error != nil {
	        return r.Error
	    }
	    fmt.Println(r.Item.EntityID)
	}
*/
package ddb
