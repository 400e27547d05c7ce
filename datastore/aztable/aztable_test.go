/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package aztable

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/data/aztables"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suparena/dictstore/datastore"
	"github.com/suparena/dictstore/datastore/testmodels"
	"github.com/suparena/dictstore/errors"
	"github.com/suparena/dictstore/internal/gate"
	"github.com/suparena/dictstore/retry"
	"github.com/suparena/dictstore/storagemodels"
)

func noSleep(ctx context.Context, d time.Duration) error { return ctx.Err() }

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.AccountName = "devstoreaccount1"
	cfg.AccountKey = "a2V5"
	cfg.TableName = "ratingsystems"
	cfg.PollInterval = time.Millisecond
	return cfg
}

func newTestStore(t *testing.T, api API, mutate ...func(*Config)) *AzureTableDataStore[testmodels.RatingSystem] {
	t.Helper()
	cfg := testConfig()
	for _, m := range mutate {
		m(&cfg)
	}
	store, err := New[testmodels.RatingSystem](cfg,
		WithAPI(api),
		WithRetryPolicy(retry.New(retry.DefaultConfig(), retry.WithClassifier(Classifier), retry.WithSleep(noSleep))),
	)
	require.NoError(t, err)
	return store
}

func entity(id, partition string) storagemodels.DictionaryEntity[testmodels.RatingSystem] {
	return storagemodels.NewDictionaryEntity(id, partition, testmodels.SampleRatingSystem("system "+id))
}

func entities(n int, partition string) []storagemodels.DictionaryEntity[testmodels.RatingSystem] {
	out := make([]storagemodels.DictionaryEntity[testmodels.RatingSystem], n)
	for i := range out {
		out[i] = entity(fmt.Sprintf("e%03d", i), partition)
	}
	return out
}

func TestPutGetRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t, newFakeTable())

	in := entity("TTOakville", "clubs")
	require.NoError(t, store.Put(ctx, in))

	out, err := store.Get(ctx, "TTOakville", "clubs")
	require.NoError(t, err)
	require.NotNil(t, out)
	assert.Equal(t, in, *out)
}

func TestStoredEntityLayout(t *testing.T) {
	api := newFakeTable()
	store := newTestStore(t, api)

	in := entity("a", "p")
	in.Entity.Description = nil
	require.NoError(t, store.Put(context.Background(), in))

	var doc map[string]any
	require.NoError(t, json.Unmarshal(api.raw("p", "a"), &doc))

	assert.Equal(t, "p", doc["PartitionKey"])
	assert.Equal(t, "a", doc["RowKey"])
	assert.Equal(t, "98231", doc["MatchesRated"])
	assert.Equal(t, "Edm.Int64", doc["MatchesRated@odata.type"])
	assert.Equal(t, float64(148), doc["PlayerCount"])
	assert.NotContains(t, doc, "PlayerCount@odata.type")
	assert.Equal(t, "Edm.Guid", doc["ExternalId@odata.type"])
	assert.Equal(t, "Edm.Binary", doc["Logo@odata.type"])
	assert.Equal(t, "Edm.DateTime", doc["CreatedAt@odata.type"])
	assert.Equal(t, "2024-11-05T09:00:00.1234567Z", doc["CreatedAt"])
	assert.Equal(t, "Edm.Double", doc["KFactor@odata.type"])
	assert.Equal(t, "12.5", doc["EntryFee"])
	assert.Equal(t, false, doc["Retired"])
	assert.NotContains(t, doc, "Description", "null properties are omitted")
}

func TestGetMissingReturnsNil(t *testing.T) {
	store := newTestStore(t, newFakeTable())
	out, err := store.Get(context.Background(), "nope", "p")
	require.NoError(t, err)
	assert.Nil(t, out)
}

func TestExists(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t, newFakeTable())

	ok, err := store.Exists(ctx, "a", "p")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Put(ctx, entity("a", "p")))
	ok, err = store.Exists(ctx, "a", "p")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestInvalidKeys(t *testing.T) {
	ctx := context.Background()
	api := newFakeTable()
	store := newTestStore(t, api)

	tests := []struct {
		name        string
		entityID    string
		partitionID string
	}{
		{"empty entity", "", "p"},
		{"empty partition", "a", ""},
		{"slash", "a/b", "p"},
		{"backslash", "a", `p\q`},
		{"hash", "a#1", "p"},
		{"question mark", "a", "p?"},
		{"control character", "a\tb", "p"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := store.Exists(ctx, tt.entityID, tt.partitionID)
			assert.True(t, errors.IsInvalidArgument(err))
			_, err = store.Get(ctx, tt.entityID, tt.partitionID)
			assert.True(t, errors.IsInvalidArgument(err))
			err = store.Put(ctx, entity(tt.entityID, tt.partitionID))
			assert.True(t, errors.IsInvalidArgument(err))
			_, err = store.Delete(ctx, tt.entityID, tt.partitionID)
			assert.True(t, errors.IsInvalidArgument(err))
			err = store.PutBatch(ctx, []storagemodels.DictionaryEntity[testmodels.RatingSystem]{entity(tt.entityID, tt.partitionID)})
			assert.True(t, errors.IsInvalidArgument(err))
		})
	}
	assert.Zero(t, api.totalCalls())
	assert.Equal(t, gate.Uninitialized, store.State())
}

func TestPutBatchChunks(t *testing.T) {
	api := newFakeTable()
	store := newTestStore(t, api)

	require.NoError(t, store.PutBatch(context.Background(), entities(57, "p")))
	assert.Equal(t, []int{25, 25, 7}, api.transactionSizes())
	assert.Equal(t, 57, api.count("p"))
}

func TestPutBatchGroupsByPartition(t *testing.T) {
	api := newFakeTable()
	store := newTestStore(t, api)

	var batch []storagemodels.DictionaryEntity[testmodels.RatingSystem]
	for i := 0; i < 30; i++ {
		batch = append(batch, entity(fmt.Sprintf("a%02d", i), "p1"))
		if i%6 == 0 {
			batch = append(batch, entity(fmt.Sprintf("b%02d", i), "p2"))
		}
	}
	require.NoError(t, store.PutBatch(context.Background(), batch))
	assert.Equal(t, []int{25, 5, 5}, api.transactionSizes())
	assert.Equal(t, 30, api.count("p1"))
	assert.Equal(t, 5, api.count("p2"))
}

func TestPutBatchEmpty(t *testing.T) {
	api := newFakeTable()
	store := newTestStore(t, api)

	assert.True(t, errors.IsInvalidArgument(store.PutBatch(context.Background(), nil)))
	require.NoError(t, store.PutBatch(context.Background(), []storagemodels.DictionaryEntity[testmodels.RatingSystem]{}))
	assert.Zero(t, api.totalCalls())
}

func TestPutBatchPartialFailure(t *testing.T) {
	api := newFakeTable()
	rejected := responseError(http.StatusRequestEntityTooLarge, "EntityTooLarge")
	store := newTestStore(t, &failingTransactionAPI{fakeTable: api, failOn: 2, err: rejected})

	err := store.PutBatch(context.Background(), entities(60, "p"))
	require.Error(t, err)
	assert.ErrorIs(t, err, rejected)
	assert.False(t, errors.IsTransient(err))
	assert.Contains(t, err.Error(), "chunk 2 of 3")
	assert.Equal(t, 25, api.count("p"), "the first chunk stays written")
}

// failingTransactionAPI fails the n-th SubmitTransaction call.
type failingTransactionAPI struct {
	*fakeTable
	failOn int
	err    error
	calls  int
}

func (f *failingTransactionAPI) SubmitTransaction(ctx context.Context, actions []aztables.TransactionAction, options *aztables.SubmitTransactionOptions) (aztables.TransactionResponse, error) {
	f.calls++
	if f.calls == f.failOn {
		return aztables.TransactionResponse{}, f.err
	}
	return f.fakeTable.SubmitTransaction(ctx, actions, options)
}

func TestListPartition(t *testing.T) {
	ctx := context.Background()
	api := newFakeTable()
	store := newTestStore(t, api)
	require.NoError(t, store.PutBatch(ctx, entities(7, "o'brien")))
	require.NoError(t, store.PutBatch(ctx, entities(2, "other")))

	var progress []storagemodels.StreamProgress
	results := store.ListPartition(ctx, "o'brien",
		storagemodels.WithPageSize(3),
		storagemodels.WithProgressHandler(func(p storagemodels.StreamProgress) { progress = append(progress, p) }),
	)

	var got []storagemodels.DictionaryEntity[testmodels.RatingSystem]
	var last storagemodels.StreamMeta
	for r := range results {
		require.NoError(t, r.Error)
		got = append(got, r.Item)
		last = r.Meta
	}
	require.Len(t, got, 7)
	assert.Equal(t, entity("e000", "o'brien"), got[0])
	assert.Equal(t, int64(6), last.Index)
	assert.Equal(t, 3, last.PageNumber)
	assert.Equal(t, 3, api.callCount("ListEntities"))
	assert.Contains(t, api.filters, "PartitionKey eq 'o''brien'")
	require.Len(t, progress, 3)
	assert.Equal(t, int64(7), progress[2].ItemsProcessed)
}

func TestListPartitionRetriesPageFetch(t *testing.T) {
	ctx := context.Background()
	api := newFakeTable()
	store := newTestStore(t, api)
	require.NoError(t, store.PutBatch(ctx, entities(4, "p")))

	api.failNext("ListEntities", responseError(http.StatusServiceUnavailable, "ServerBusy"))
	got, err := datastore.Collect(store.ListPartition(ctx, "p", storagemodels.WithPageSize(2)))
	require.NoError(t, err)
	assert.Len(t, got, 4)
	assert.Equal(t, 3, api.callCount("ListEntities"))
}

func TestListPartitionFailure(t *testing.T) {
	api := newFakeTable()
	store := newTestStore(t, api)
	api.failNext("ListEntities", responseError(http.StatusForbidden, "AuthorizationFailure"))

	_, err := datastore.Collect(store.ListPartition(context.Background(), "p"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `list partition "p"`)
	assert.Equal(t, 1, api.callCount("ListEntities"))
}

func TestDeleteSemantics(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t, newFakeTable())
	require.NoError(t, store.Put(ctx, entity("a", "p")))

	ok, err := store.Delete(ctx, "a", "p")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = store.Delete(ctx, "a", "p")
	assert.False(t, ok)
	assert.True(t, errors.IsOperationInvalid(err))
	assert.Contains(t, err.Error(), "does not exist")
}

func TestMissingTable(t *testing.T) {
	api := newFakeTable()
	api.exists = false
	store := newTestStore(t, api, func(c *Config) { c.AutoSetup = false })
	ctx := context.Background()

	_, err := store.Delete(ctx, "a", "p")
	assert.True(t, errors.IsOperationInvalid(err))
	assert.Contains(t, err.Error(), "table does not exist")

	_, err = store.Get(ctx, "a", "p")
	assert.True(t, errors.IsOperationInvalid(err))
	assert.Zero(t, api.callCount("CreateTable"))
}

func TestDeletePartition(t *testing.T) {
	ctx := context.Background()
	api := newFakeTable()
	store := newTestStore(t, api)
	require.NoError(t, store.PutBatch(ctx, entities(30, "p1")))
	require.NoError(t, store.PutBatch(ctx, entities(4, "p2")))
	api.txSizes = nil

	ok, err := store.DeletePartition(ctx, "p1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []int{25, 5}, api.transactionSizes())
	assert.Zero(t, api.count("p1"))
	assert.Equal(t, 4, api.count("p2"))

	ok, err = store.DeletePartition(ctx, "p1")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestAutoSetup(t *testing.T) {
	t.Run("creates missing table", func(t *testing.T) {
		api := newFakeTable()
		api.exists = false
		store := newTestStore(t, api)

		require.NoError(t, store.Connect(context.Background()))
		assert.True(t, api.exists)
		assert.Equal(t, gate.Ready, store.State())
	})

	t.Run("existing table", func(t *testing.T) {
		api := newFakeTable()
		store := newTestStore(t, api)

		require.NoError(t, store.Connect(context.Background()))
		assert.Equal(t, 1, api.callCount("CreateTable"))
	})

	t.Run("waits for deletion", func(t *testing.T) {
		api := newFakeTable()
		api.exists = false
		api.beingDeleted = 2
		store := newTestStore(t, api)

		require.NoError(t, store.Connect(context.Background()))
		assert.Equal(t, 3, api.callCount("CreateTable"))
	})

	t.Run("cancelled while waiting", func(t *testing.T) {
		api := newFakeTable()
		api.exists = false
		api.beingDeleted = 1 << 20
		store := newTestStore(t, api, func(c *Config) { c.PollInterval = 10 * time.Millisecond })

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()
		assert.ErrorIs(t, store.Connect(ctx), context.DeadlineExceeded)
		assert.Equal(t, gate.Uninitialized, store.State())
	})
}

func TestConcurrentFirstUseConnectsOnce(t *testing.T) {
	api := newFakeTable()
	api.exists = false
	store := newTestStore(t, api)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.Exists(context.Background(), "a", "p")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, api.callCount("CreateTable"))
}

func TestTransientResponsesAreRetried(t *testing.T) {
	api := newFakeTable()
	store := newTestStore(t, api)
	require.NoError(t, store.Connect(context.Background()))

	api.failNext("UpsertEntity", responseError(http.StatusServiceUnavailable, "ServerBusy"))
	require.NoError(t, store.Put(context.Background(), entity("a", "p")))
	assert.Equal(t, 2, api.callCount("UpsertEntity"))

	busy := responseError(http.StatusTooManyRequests, "ServerBusy")
	api.failNext("GetEntity", busy, busy, busy)
	_, err := store.Get(context.Background(), "a", "p")
	assert.True(t, errors.IsTransient(err))
	assert.ErrorIs(t, err, busy)
	assert.Equal(t, 3, api.callCount("GetEntity"))
}

func TestNonTransientResponsesAreNotRetried(t *testing.T) {
	api := newFakeTable()
	store := newTestStore(t, api)
	require.NoError(t, store.Connect(context.Background()))

	denied := responseError(http.StatusForbidden, "AuthorizationFailure")
	api.failNext("UpsertEntity", denied)
	err := store.Put(context.Background(), entity("a", "p"))
	assert.ErrorIs(t, err, denied)
	assert.False(t, errors.IsTransient(err))
	assert.Equal(t, 1, api.callCount("UpsertEntity"))
}

func TestDecodeInconsistency(t *testing.T) {
	api := newFakeTable()
	store := newTestStore(t, api)

	tests := []struct {
		name      string
		raw       string
		attribute string
	}{
		{"not json", `{"PartitionKey":`, "entity"},
		{"missing row key", `{"PartitionKey":"p"}`, "RowKey"},
		{"wrong property type", `{"PartitionKey":"p","RowKey":"a","PlayerCount":"many"}`, "PlayerCount"},
		{"wrong annotation", `{"PartitionKey":"p","RowKey":"a","ExternalId":"x","ExternalId@odata.type":"Edm.String"}`, "ExternalId"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api.putRaw("p", "a", []byte(tt.raw))
			_, err := store.Get(context.Background(), "a", "p")
			require.Error(t, err)
			assert.True(t, errors.IsDecodeInconsistency(err))
			assert.Contains(t, err.Error(), fmt.Sprintf("%q", tt.attribute))
		})
	}
}

func TestNewValidation(t *testing.T) {
	cfg := testConfig()
	cfg.TableName = "bad-name"
	_, err := New[testmodels.RatingSystem](cfg)
	require.Error(t, err)
	assert.True(t, errors.IsConfiguration(err))

	cfg = testConfig()
	cfg.AccountKey = ""
	_, err = New[testmodels.RatingSystem](cfg)
	assert.True(t, errors.IsConfiguration(err))
}

func TestDefaultServiceURL(t *testing.T) {
	store := newTestStore(t, newFakeTable())
	assert.Equal(t, "https://devstoreaccount1.table.core.windows.net", store.cfg.ServiceURL)
	assert.Equal(t, "ratingsystems", store.TableName())

	custom := newTestStore(t, newFakeTable(), func(c *Config) { c.ServiceURL = "http://127.0.0.1:10002/devstoreaccount1" })
	assert.Equal(t, "http://127.0.0.1:10002/devstoreaccount1", custom.cfg.ServiceURL)
}
