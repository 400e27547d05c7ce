/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package aztable

import (
	stderrors "errors"
	"net/http"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/data/aztables"

	"github.com/suparena/dictstore/errors"
)

func hasErrorCode(err error, codes ...aztables.TableErrorCode) bool {
	var respErr *azcore.ResponseError
	if !stderrors.As(err, &respErr) {
		return false
	}
	for _, c := range codes {
		if respErr.ErrorCode == string(c) {
			return true
		}
	}
	return false
}

func isTableNotFound(err error) bool {
	return hasErrorCode(err, aztables.TableNotFound)
}

func isEntityNotFound(err error) bool {
	return hasErrorCode(err, aztables.ResourceNotFound)
}

var transientStatus = map[int]bool{
	http.StatusRequestTimeout:      true,
	http.StatusTooManyRequests:     true,
	http.StatusInternalServerError: true,
	http.StatusBadGateway:          true,
	http.StatusServiceUnavailable:  true,
	http.StatusGatewayTimeout:      true,
}

// IsTransientResponse classifies Table service responses: timeouts,
// throttling and server errors are transient.
func IsTransientResponse(err error) bool {
	var respErr *azcore.ResponseError
	if !stderrors.As(err, &respErr) {
		return false
	}
	return transientStatus[respErr.StatusCode]
}

// mapError turns a missing table into OperationInvalidError and passes
// everything else through.
func (a *AzureTableDataStore[T]) mapError(operation string, err error) error {
	if err == nil {
		return nil
	}
	if isTableNotFound(err) {
		return errors.NewOperationInvalidError(operation, a.cfg.TableName, "table does not exist", err)
	}
	return err
}
