/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/suparena/dictstore/errors"
	"github.com/suparena/dictstore/schema"
	"github.com/suparena/dictstore/storagemodels"
)

// Stored document layout:
//
//	{"PartitionId": S, "EntityId": S, "Entity": M{field: value}}
const (
	AttrPartitionID = "PartitionId"
	AttrEntityID    = "EntityId"
	AttrEntity      = "Entity"
)

func keyOf(entityID, partitionID string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		AttrPartitionID: str(partitionID),
		AttrEntityID:    str(entityID),
	}
}

func encodeItem[T any](s *schema.Schema[T], d storagemodels.DictionaryEntity[T]) (map[string]types.AttributeValue, error) {
	fields, err := schema.EncodeEntity[T, types.AttributeValue](s, AttributeCodec{}, &d.Entity)
	if err != nil {
		return nil, err
	}
	entity := make(map[string]types.AttributeValue, len(fields))
	for _, f := range fields {
		entity[f.Name] = f.Attr
	}
	item := keyOf(d.EntityID, d.PartitionID)
	item[AttrEntity] = &types.AttributeValueMemberM{Value: entity}
	return item, nil
}

func decodeKey(item map[string]types.AttributeValue, name string) (string, error) {
	av, ok := item[name]
	if !ok {
		return "", errors.NewDecodeInconsistencyError(name, "attribute missing")
	}
	var v string
	if err := attributevalue.Unmarshal(av, &v); err != nil {
		return "", errors.NewDecodeInconsistencyError(name, err.Error())
	}
	if v == "" {
		return "", errors.NewDecodeInconsistencyError(name, "attribute empty")
	}
	return v, nil
}

func decodeItem[T any](s *schema.Schema[T], item map[string]types.AttributeValue) (*storagemodels.DictionaryEntity[T], error) {
	partitionID, err := decodeKey(item, AttrPartitionID)
	if err != nil {
		return nil, err
	}
	entityID, err := decodeKey(item, AttrEntityID)
	if err != nil {
		return nil, err
	}
	m, ok := item[AttrEntity].(*types.AttributeValueMemberM)
	if !ok {
		return nil, errors.NewDecodeInconsistencyError(AttrEntity, "map attribute missing")
	}
	entity, err := schema.DecodeEntity[T, types.AttributeValue](s, AttributeCodec{}, func(name string) (types.AttributeValue, bool) {
		av, ok := m.Value[name]
		return av, ok
	})
	if err != nil {
		return nil, err
	}
	return &storagemodels.DictionaryEntity[T]{EntityID: entityID, PartitionID: partitionID, Entity: *entity}, nil
}
