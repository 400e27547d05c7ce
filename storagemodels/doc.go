/*
Package storagemodels defines the data structures shared by every store implementation.

Key Types:

DictionaryEntity:
The storage envelope of an entity:

	doc := storagemodels.NewDictionaryEntity("doc-1", "tenant-a", Document{Title: "Hello"})

StreamResult:
Results from partition listings with metadata:

	type StreamResult[T any] struct {
	    Item  DictionaryEntity[T] // The decoded entity
	    Error error               // Set on the final result when the listing failed
	    Meta  StreamMeta          // Metadata about this item
	}

ListOptions:
Configuration for listing behavior:

	opts := []ListOption{
	    WithBufferSize(100),
	    WithPageSize(25),
	    WithProgressHandler(progressFunc),
	}

These types provide a consistent interface across different storage implementations.
*/
package storagemodels
