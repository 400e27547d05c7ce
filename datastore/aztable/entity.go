/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package aztable

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/suparena/dictstore/errors"
	"github.com/suparena/dictstore/schema"
	"github.com/suparena/dictstore/storagemodels"
)

// Stored entity layout:
//
//	{"PartitionKey": "...", "RowKey": "...", "<field>": value, "<field>@odata.type": "Edm.Int64", ...}
const (
	PropPartitionKey = "PartitionKey"
	PropRowKey       = "RowKey"

	annotationSuffix = "@odata.type"
)

// checkKey rejects characters the Table service does not allow in keys.
func checkKey(value, param string) error {
	if i := strings.IndexAny(value, `/\#?`); i >= 0 {
		return errors.NewInvalidArgumentError(param, "must not contain '"+value[i:i+1]+"'")
	}
	for _, r := range value {
		if r < 0x20 || (r >= 0x7f && r <= 0x9f) {
			return errors.NewInvalidArgumentError(param, "must not contain control characters")
		}
	}
	return nil
}

func checkKeys(entityID, partitionID string) error {
	if err := checkKey(entityID, "entityID"); err != nil {
		return err
	}
	return checkKey(partitionID, "partitionID")
}

func marshalKey(entityID, partitionID string) ([]byte, error) {
	return json.Marshal(map[string]string{
		PropPartitionKey: partitionID,
		PropRowKey:       entityID,
	})
}

func marshalEntity[T any](s *schema.Schema[T], d storagemodels.DictionaryEntity[T]) ([]byte, error) {
	fields, err := schema.EncodeEntity[T, Property](s, PropertyCodec{}, &d.Entity)
	if err != nil {
		return nil, err
	}
	doc := make(map[string]any, 2*len(fields)+2)
	doc[PropPartitionKey] = d.PartitionID
	doc[PropRowKey] = d.EntityID
	for _, f := range fields {
		if f.Attr.Value == nil {
			continue
		}
		doc[f.Name] = f.Attr.Value
		if f.Attr.EdmType != "" {
			doc[f.Name+annotationSuffix] = f.Attr.EdmType
		}
	}
	return json.Marshal(doc)
}

func unmarshalDocument(raw []byte) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var doc map[string]any
	if err := dec.Decode(&doc); err != nil {
		return nil, errors.NewDecodeInconsistencyError("entity", err.Error())
	}
	return doc, nil
}

func keyProperty(doc map[string]any, name string) (string, error) {
	v, ok := doc[name]
	if !ok {
		return "", errors.NewDecodeInconsistencyError(name, "property missing")
	}
	s, ok := v.(string)
	if !ok {
		return "", errors.NewDecodeInconsistencyError(name, "expected string property")
	}
	if s == "" {
		return "", errors.NewDecodeInconsistencyError(name, "property empty")
	}
	return s, nil
}

func unmarshalEntity[T any](s *schema.Schema[T], raw []byte) (*storagemodels.DictionaryEntity[T], error) {
	doc, err := unmarshalDocument(raw)
	if err != nil {
		return nil, err
	}
	partitionID, err := keyProperty(doc, PropPartitionKey)
	if err != nil {
		return nil, err
	}
	entityID, err := keyProperty(doc, PropRowKey)
	if err != nil {
		return nil, err
	}
	entity, err := schema.DecodeEntity[T, Property](s, PropertyCodec{}, func(name string) (Property, bool) {
		v, ok := doc[name]
		if !ok {
			return Property{}, false
		}
		edm, _ := doc[name+annotationSuffix].(string)
		return Property{Value: v, EdmType: edm}, true
	})
	if err != nil {
		return nil, err
	}
	return &storagemodels.DictionaryEntity[T]{EntityID: entityID, PartitionID: partitionID, Entity: *entity}, nil
}

// partitionFilter builds the OData filter selecting one partition.
func partitionFilter(partitionID string) string {
	return PropPartitionKey + " eq '" + strings.ReplaceAll(partitionID, "'", "''") + "'"
}
