/*
Package aztable provides an Azure Table Storage implementation of the
DictionaryStore interface.

The partition ID is the PartitionKey and the entity ID the RowKey. Each
declared field becomes one flat property; PropertyCodec defines the JSON form
and EDM annotation of each field kind:

	{
	    "PartitionKey": "tenant-a",
	    "RowKey": "doc-1",
	    "Title": "Hello",
	    "Revision": "3",
	    "Revision@odata.type": "Edm.Int64"
	}

Null values are omitted. DateTime values are kept at 100ns precision.

Batch writes use entity group transactions, which may only touch one
partition: entities are grouped by partition and each group is split into
transactions of at most 25 actions.

Usage:

	store, err := aztable.New[Document](aztable.Config{
	    AccountName: os.Getenv("AZURE_STORAGE_ACCOUNT"),
	    AccountKey:  os.Getenv("AZURE_STORAGE_KEY"),
	    TableName:   "documents",
	    AutoSetup:   true,
	}, aztable.WithLogger(logger))
*/
package aztable
