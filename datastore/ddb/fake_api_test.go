/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// fakeAPI is an in-memory DynamoDB table honouring the calls the store makes.
type fakeAPI struct {
	mu sync.Mutex

	tableExists bool
	// statuses returned by DescribeTable after the table exists; the last one repeats
	statuses []types.TableStatus
	items    map[string]map[string]map[string]types.AttributeValue

	// errs queues errors per operation, consumed one per call
	errs map[string][]error
	// unprocessed makes the next BatchWriteItem calls leave this many requests unprocessed
	unprocessed []int

	calls      map[string]int
	batchSizes []int
	creates    int
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		tableExists: true,
		statuses:    []types.TableStatus{types.TableStatusActive},
		items:       make(map[string]map[string]map[string]types.AttributeValue),
		errs:        make(map[string][]error),
		calls:       make(map[string]int),
	}
}

func (f *fakeAPI) failNext(op string, errs ...error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errs[op] = append(f.errs[op], errs...)
}

func (f *fakeAPI) callCount(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[op]
}

func (f *fakeAPI) totalCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		n += c
	}
	return n
}

func (f *fakeAPI) chunkSizes() []int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]int(nil), f.batchSizes...)
}

func (f *fakeAPI) count(partitionID string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.items[partitionID])
}

// putRaw stores an item bypassing the store, for corrupt-record tests.
func (f *fakeAPI) putRaw(partitionID, entityID string, item map[string]types.AttributeValue) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.store(partitionID, entityID, item)
}

func (f *fakeAPI) begin(op string) error {
	f.mu.Lock()
	f.calls[op]++
	if q := f.errs[op]; len(q) > 0 {
		f.errs[op] = q[1:]
		return q[0]
	}
	if op != "DescribeTable" && op != "CreateTable" && !f.tableExists {
		return &types.ResourceNotFoundException{Message: aws.String("Requested resource not found")}
	}
	return nil
}

func (f *fakeAPI) store(partitionID, entityID string, item map[string]types.AttributeValue) {
	if f.items[partitionID] == nil {
		f.items[partitionID] = make(map[string]map[string]types.AttributeValue)
	}
	f.items[partitionID][entityID] = item
}

func keyStrings(key map[string]types.AttributeValue) (string, string) {
	p, _ := key[AttrPartitionID].(*types.AttributeValueMemberS)
	e, _ := key[AttrEntityID].(*types.AttributeValueMemberS)
	var ps, es string
	if p != nil {
		ps = p.Value
	}
	if e != nil {
		es = e.Value
	}
	return ps, es
}

func (f *fakeAPI) GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	if err := f.begin("GetItem"); err != nil {
		f.mu.Unlock()
		return nil, err
	}
	defer f.mu.Unlock()
	p, e := keyStrings(params.Key)
	return &dynamodb.GetItemOutput{Item: f.items[p][e]}, nil
}

func (f *fakeAPI) PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	if err := f.begin("PutItem"); err != nil {
		f.mu.Unlock()
		return nil, err
	}
	defer f.mu.Unlock()
	p, e := keyStrings(params.Item)
	f.store(p, e, params.Item)
	return &dynamodb.PutItemOutput{}, nil
}

func (f *fakeAPI) DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error) {
	if err := f.begin("DeleteItem"); err != nil {
		f.mu.Unlock()
		return nil, err
	}
	defer f.mu.Unlock()
	p, e := keyStrings(params.Key)
	if _, ok := f.items[p][e]; !ok {
		if params.ConditionExpression != nil {
			return nil, &types.ConditionalCheckFailedException{Message: aws.String("The conditional request failed")}
		}
		return &dynamodb.DeleteItemOutput{}, nil
	}
	delete(f.items[p], e)
	return &dynamodb.DeleteItemOutput{}, nil
}

func (f *fakeAPI) BatchWriteItem(ctx context.Context, params *dynamodb.BatchWriteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.BatchWriteItemOutput, error) {
	if err := f.begin("BatchWriteItem"); err != nil {
		f.mu.Unlock()
		return nil, err
	}
	defer f.mu.Unlock()

	if len(params.RequestItems) != 1 {
		return nil, fmt.Errorf("expected one table, got %d", len(params.RequestItems))
	}
	out := &dynamodb.BatchWriteItemOutput{UnprocessedItems: map[string][]types.WriteRequest{}}
	for table, reqs := range params.RequestItems {
		if len(reqs) > 25 {
			return nil, &types.InternalServerError{Message: aws.String("too many items")}
		}
		f.batchSizes = append(f.batchSizes, len(reqs))

		skip := 0
		if len(f.unprocessed) > 0 {
			skip = min(f.unprocessed[0], len(reqs))
			f.unprocessed = f.unprocessed[1:]
		}
		processed, leftover := reqs[:len(reqs)-skip], reqs[len(reqs)-skip:]
		for _, r := range processed {
			switch {
			case r.PutRequest != nil:
				p, e := keyStrings(r.PutRequest.Item)
				f.store(p, e, r.PutRequest.Item)
			case r.DeleteRequest != nil:
				p, e := keyStrings(r.DeleteRequest.Key)
				delete(f.items[p], e)
			}
		}
		if len(leftover) > 0 {
			out.UnprocessedItems[table] = leftover
		}
	}
	return out, nil
}

func (f *fakeAPI) Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	if err := f.begin("Query"); err != nil {
		f.mu.Unlock()
		return nil, err
	}
	defer f.mu.Unlock()

	if len(params.ExpressionAttributeValues) != 1 {
		return nil, fmt.Errorf("expected a single partition value, got %d", len(params.ExpressionAttributeValues))
	}
	var partitionID string
	for _, v := range params.ExpressionAttributeValues {
		partitionID = v.(*types.AttributeValueMemberS).Value
	}

	ids := make([]string, 0, len(f.items[partitionID]))
	for id := range f.items[partitionID] {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	start := 0
	if params.ExclusiveStartKey != nil {
		_, last := keyStrings(params.ExclusiveStartKey)
		start = sort.SearchStrings(ids, last) + 1
	}
	end := len(ids)
	if params.Limit != nil && start+int(*params.Limit) < end {
		end = start + int(*params.Limit)
	}

	out := &dynamodb.QueryOutput{}
	for _, id := range ids[start:end] {
		out.Items = append(out.Items, f.items[partitionID][id])
	}
	out.Count = int32(len(out.Items))
	if end < len(ids) {
		out.LastEvaluatedKey = keyOf(ids[end-1], partitionID)
	}
	return out, nil
}

func (f *fakeAPI) DescribeTable(ctx context.Context, params *dynamodb.DescribeTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error) {
	if err := f.begin("DescribeTable"); err != nil {
		f.mu.Unlock()
		return nil, err
	}
	defer f.mu.Unlock()

	if !f.tableExists {
		return nil, &types.ResourceNotFoundException{Message: aws.String("Requested resource not found")}
	}
	status := f.statuses[0]
	if len(f.statuses) > 1 {
		f.statuses = f.statuses[1:]
	}
	return &dynamodb.DescribeTableOutput{Table: &types.TableDescription{
		TableName:   params.TableName,
		TableStatus: status,
	}}, nil
}

func (f *fakeAPI) CreateTable(ctx context.Context, params *dynamodb.CreateTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.CreateTableOutput, error) {
	if err := f.begin("CreateTable"); err != nil {
		f.mu.Unlock()
		return nil, err
	}
	defer f.mu.Unlock()

	if f.tableExists {
		return nil, &types.ResourceInUseException{Message: aws.String("Table already exists")}
	}
	f.creates++
	f.tableExists = true
	return &dynamodb.CreateTableOutput{TableDescription: &types.TableDescription{
		TableName:   params.TableName,
		TableStatus: types.TableStatusCreating,
	}}, nil
}

var _ API = (*fakeAPI)(nil)
