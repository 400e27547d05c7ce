/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	stderrors "errors"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/suparena/dictstore/errors"
)

func isResourceNotFound(err error) bool {
	var e *types.ResourceNotFoundException
	return stderrors.As(err, &e)
}

func isConditionalCheckFailed(err error) bool {
	var e *types.ConditionalCheckFailedException
	return stderrors.As(err, &e)
}

func isResourceInUse(err error) bool {
	var e *types.ResourceInUseException
	return stderrors.As(err, &e)
}

// mapError turns a missing table into OperationInvalidError and passes
// everything else through.
func (d *DynamodbDataStore[T]) mapError(operation string, err error) error {
	if err == nil {
		return nil
	}
	if isResourceNotFound(err) {
		return errors.NewOperationInvalidError(operation, d.table.Name, "table does not exist", err)
	}
	return err
}
