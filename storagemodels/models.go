/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package storagemodels

// DictionaryEntity is the storage envelope of an entity: the entity itself
// plus its identity within a partition. (PartitionID, EntityID) is unique
// within a store.
type DictionaryEntity[T any] struct {
	// EntityID identifies the entity within its partition. Must be non-empty.
	EntityID string
	// PartitionID groups entities that are listed and deleted together. Must be non-empty.
	PartitionID string
	// Entity is the payload.
	Entity T
}

// NewDictionaryEntity builds an envelope around entity.
func NewDictionaryEntity[T any](entityID, partitionID string, entity T) DictionaryEntity[T] {
	return DictionaryEntity[T]{EntityID: entityID, PartitionID: partitionID, Entity: entity}
}

// Key is the (partition, entity) identity of a stored entity.
type Key struct {
	PartitionID string
	EntityID    string
}

// Key returns the envelope's identity.
func (d DictionaryEntity[T]) Key() Key {
	return Key{PartitionID: d.PartitionID, EntityID: d.EntityID}
}
