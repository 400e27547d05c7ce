/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package aztable

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"sync"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/runtime"
	"github.com/Azure/azure-sdk-for-go/sdk/data/aztables"
)

func responseError(status int, code aztables.TableErrorCode) error {
	return &azcore.ResponseError{StatusCode: status, ErrorCode: string(code)}
}

// fakeTable is an in-memory table honouring the calls the store makes.
type fakeTable struct {
	mu sync.Mutex

	exists bool
	// beingDeleted makes this many CreateTable calls fail with TableBeingDeleted
	beingDeleted int
	entities     map[string]map[string][]byte

	// errs queues errors per operation, consumed one per call
	errs map[string][]error

	calls   map[string]int
	txSizes []int
	filters []string
}

func newFakeTable() *fakeTable {
	return &fakeTable{
		exists:   true,
		entities: make(map[string]map[string][]byte),
		errs:     make(map[string][]error),
		calls:    make(map[string]int),
	}
}

func (f *fakeTable) failNext(op string, errs ...error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errs[op] = append(f.errs[op], errs...)
}

func (f *fakeTable) callCount(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[op]
}

func (f *fakeTable) totalCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		n += c
	}
	return n
}

func (f *fakeTable) transactionSizes() []int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]int(nil), f.txSizes...)
}

func (f *fakeTable) count(partitionID string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.entities[partitionID])
}

func (f *fakeTable) raw(partitionID, entityID string) []byte {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.entities[partitionID][entityID]
}

// putRaw stores an entity bypassing the store, for corrupt-record tests.
func (f *fakeTable) putRaw(partitionID, entityID string, raw []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.store(partitionID, entityID, raw)
}

// begin locks the table and returns with the lock held.
func (f *fakeTable) begin(op string) error {
	f.mu.Lock()
	f.calls[op]++
	if q := f.errs[op]; len(q) > 0 {
		f.errs[op] = q[1:]
		return q[0]
	}
	if op != "CreateTable" && !f.exists {
		return responseError(http.StatusNotFound, aztables.TableNotFound)
	}
	return nil
}

func (f *fakeTable) store(partitionID, entityID string, raw []byte) {
	if f.entities[partitionID] == nil {
		f.entities[partitionID] = make(map[string][]byte)
	}
	f.entities[partitionID][entityID] = raw
}

func keysOf(raw []byte) (string, string, error) {
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return "", "", err
	}
	p, _ := doc[PropPartitionKey].(string)
	r, _ := doc[PropRowKey].(string)
	return p, r, nil
}

func (f *fakeTable) CreateTable(ctx context.Context, options *aztables.CreateTableOptions) (aztables.CreateTableResponse, error) {
	if err := f.begin("CreateTable"); err != nil {
		f.mu.Unlock()
		return aztables.CreateTableResponse{}, err
	}
	defer f.mu.Unlock()

	if f.beingDeleted > 0 {
		f.beingDeleted--
		return aztables.CreateTableResponse{}, responseError(http.StatusConflict, aztables.TableBeingDeleted)
	}
	if f.exists {
		return aztables.CreateTableResponse{}, responseError(http.StatusConflict, aztables.TableAlreadyExists)
	}
	f.exists = true
	return aztables.CreateTableResponse{}, nil
}

func (f *fakeTable) GetEntity(ctx context.Context, partitionKey string, rowKey string, options *aztables.GetEntityOptions) (aztables.GetEntityResponse, error) {
	if err := f.begin("GetEntity"); err != nil {
		f.mu.Unlock()
		return aztables.GetEntityResponse{}, err
	}
	defer f.mu.Unlock()

	raw, ok := f.entities[partitionKey][rowKey]
	if !ok {
		return aztables.GetEntityResponse{}, responseError(http.StatusNotFound, aztables.ResourceNotFound)
	}
	return aztables.GetEntityResponse{Value: raw}, nil
}

func (f *fakeTable) UpsertEntity(ctx context.Context, entity []byte, options *aztables.UpsertEntityOptions) (aztables.UpsertEntityResponse, error) {
	if err := f.begin("UpsertEntity"); err != nil {
		f.mu.Unlock()
		return aztables.UpsertEntityResponse{}, err
	}
	defer f.mu.Unlock()

	if options == nil || options.UpdateMode != aztables.UpdateModeReplace {
		return aztables.UpsertEntityResponse{}, fmt.Errorf("expected replace mode")
	}
	p, r, err := keysOf(entity)
	if err != nil {
		return aztables.UpsertEntityResponse{}, err
	}
	f.store(p, r, entity)
	return aztables.UpsertEntityResponse{}, nil
}

func (f *fakeTable) DeleteEntity(ctx context.Context, partitionKey string, rowKey string, options *aztables.DeleteEntityOptions) (aztables.DeleteEntityResponse, error) {
	if err := f.begin("DeleteEntity"); err != nil {
		f.mu.Unlock()
		return aztables.DeleteEntityResponse{}, err
	}
	defer f.mu.Unlock()

	if _, ok := f.entities[partitionKey][rowKey]; !ok {
		return aztables.DeleteEntityResponse{}, responseError(http.StatusNotFound, aztables.ResourceNotFound)
	}
	delete(f.entities[partitionKey], rowKey)
	return aztables.DeleteEntityResponse{}, nil
}

func (f *fakeTable) SubmitTransaction(ctx context.Context, actions []aztables.TransactionAction, options *aztables.SubmitTransactionOptions) (aztables.TransactionResponse, error) {
	if err := f.begin("SubmitTransaction"); err != nil {
		f.mu.Unlock()
		return aztables.TransactionResponse{}, err
	}
	defer f.mu.Unlock()

	if len(actions) > 100 {
		return aztables.TransactionResponse{}, fmt.Errorf("transaction has %d actions", len(actions))
	}
	type key struct{ p, r string }
	keys := make([]key, len(actions))
	for i, a := range actions {
		p, r, err := keysOf(a.Entity)
		if err != nil {
			return aztables.TransactionResponse{}, err
		}
		if i > 0 && p != keys[0].p {
			return aztables.TransactionResponse{}, fmt.Errorf("transaction spans partitions %q and %q", keys[0].p, p)
		}
		keys[i] = key{p, r}
		if a.ActionType == aztables.TransactionTypeDelete {
			if _, ok := f.entities[p][r]; !ok {
				return aztables.TransactionResponse{}, responseError(http.StatusNotFound, aztables.ResourceNotFound)
			}
		}
	}

	f.txSizes = append(f.txSizes, len(actions))
	for i, a := range actions {
		switch a.ActionType {
		case aztables.TransactionTypeInsertReplace:
			f.store(keys[i].p, keys[i].r, a.Entity)
		case aztables.TransactionTypeDelete:
			delete(f.entities[keys[i].p], keys[i].r)
		default:
			return aztables.TransactionResponse{}, fmt.Errorf("unexpected action %s", a.ActionType)
		}
	}
	return aztables.TransactionResponse{}, nil
}

func parseFilter(filter string) (string, error) {
	const prefix = PropPartitionKey + " eq '"
	if !strings.HasPrefix(filter, prefix) || !strings.HasSuffix(filter, "'") {
		return "", fmt.Errorf("unsupported filter %q", filter)
	}
	quoted := filter[len(prefix) : len(filter)-1]
	return strings.ReplaceAll(quoted, "''", "'"), nil
}

func (f *fakeTable) NewListEntitiesPager(options *aztables.ListEntitiesOptions) *runtime.Pager[aztables.ListEntitiesResponse] {
	var filter string
	var top int32
	if options != nil {
		if options.Filter != nil {
			filter = *options.Filter
		}
		if options.Top != nil {
			top = *options.Top
		}
	}
	f.mu.Lock()
	f.filters = append(f.filters, filter)
	f.mu.Unlock()

	return runtime.NewPager(runtime.PagingHandler[aztables.ListEntitiesResponse]{
		More: func(resp aztables.ListEntitiesResponse) bool {
			return resp.NextRowKey != nil
		},
		Fetcher: func(ctx context.Context, prev *aztables.ListEntitiesResponse) (aztables.ListEntitiesResponse, error) {
			if err := f.begin("ListEntities"); err != nil {
				f.mu.Unlock()
				return aztables.ListEntitiesResponse{}, err
			}
			defer f.mu.Unlock()

			partitionID, err := parseFilter(filter)
			if err != nil {
				return aztables.ListEntitiesResponse{}, err
			}
			ids := make([]string, 0, len(f.entities[partitionID]))
			for id := range f.entities[partitionID] {
				ids = append(ids, id)
			}
			sort.Strings(ids)

			start := 0
			if prev != nil && prev.NextRowKey != nil {
				start = sort.SearchStrings(ids, *prev.NextRowKey)
			}
			end := len(ids)
			if top > 0 && start+int(top) < end {
				end = start + int(top)
			}

			var resp aztables.ListEntitiesResponse
			for _, id := range ids[start:end] {
				resp.Entities = append(resp.Entities, f.entities[partitionID][id])
			}
			if end < len(ids) {
				next := ids[end]
				resp.NextPartitionKey = &partitionID
				resp.NextRowKey = &next
			}
			return resp, nil
		},
	})
}

var _ API = (*fakeTable)(nil)
