/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"go.uber.org/zap"

	"github.com/suparena/dictstore/datastore"
	"github.com/suparena/dictstore/errors"
	"github.com/suparena/dictstore/internal/gate"
	"github.com/suparena/dictstore/internal/validate"
	"github.com/suparena/dictstore/region"
	"github.com/suparena/dictstore/registry"
	"github.com/suparena/dictstore/retry"
	"github.com/suparena/dictstore/schema"
)

// TableDescriptor describes the table a store reads and writes.
type TableDescriptor struct {
	Name               string
	PartitionKey       string
	RangeKey           string
	ReadCapacityUnits  int64
	WriteCapacityUnits int64
}

// DynamodbDataStore implements datastore.DictionaryStore[T] on a DynamoDB table
// keyed by (PartitionId, EntityId).
type DynamodbDataStore[T any] struct {
	cfg      Config
	table    TableDescriptor
	schema   *schema.Schema[T]
	logger   *zap.Logger
	policy   retry.Executor
	resolver region.Resolver
	rawAPI   API
	conn     *gate.Gate[API]
}

var _ datastore.DictionaryStore[struct{}] = (*DynamodbDataStore[struct{}])(nil)

type options struct {
	api         API
	policy      retry.Executor
	retryConfig retry.Config
	resolver    region.Resolver
	logger      *zap.Logger
	observer    retry.Observer
}

// Option configures a DynamodbDataStore
type Option func(*options)

// WithAPI replaces the SDK client. The region is still resolved.
func WithAPI(api API) Option {
	return func(o *options) { o.api = api }
}

// WithRetryPolicy replaces the default retry policy.
func WithRetryPolicy(policy retry.Executor) Option {
	return func(o *options) { o.policy = policy }
}

// WithRetryConfig configures the default retry policy.
func WithRetryConfig(cfg retry.Config) Option {
	return func(o *options) { o.retryConfig = cfg }
}

func WithResolver(resolver region.Resolver) Option {
	return func(o *options) { o.resolver = resolver }
}

func WithLogger(logger *zap.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithObserver attaches an observer, such as a metrics.Collector, to the
// default retry policy.
func WithObserver(observer retry.Observer) Option {
	return func(o *options) { o.observer = observer }
}

// New validates cfg, looks up the schema of T and returns a store. No remote
// call is made until the first operation.
func New[T any](cfg Config, opts ...Option) (*DynamodbDataStore[T], error) {
	o := options{
		retryConfig: retry.DefaultConfig(),
		logger:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.resolver == nil {
		o.resolver = region.NewStaticResolver()
	}

	cfg = cfg.withDefaults()
	if err := validate.Struct(cfg); err != nil {
		return nil, err
	}
	s, err := registry.Lookup[T]()
	if err != nil {
		return nil, err
	}

	logger := o.logger.Named("ddb").With(zap.String("table", cfg.TableName))
	if o.policy == nil {
		o.policy = retry.New(o.retryConfig, retry.WithLogger(logger), retry.WithObserver(o.observer))
	}

	d := &DynamodbDataStore[T]{
		cfg: cfg,
		table: TableDescriptor{
			Name:               cfg.TableName,
			PartitionKey:       AttrPartitionID,
			RangeKey:           AttrEntityID,
			ReadCapacityUnits:  cfg.ReadCapacityUnits,
			WriteCapacityUnits: cfg.WriteCapacityUnits,
		},
		schema:   s,
		logger:   logger,
		policy:   o.policy,
		resolver: o.resolver,
		rawAPI:   o.api,
	}
	d.conn = gate.New(d.connect)
	return d, nil
}

// Table returns the descriptor of the backing table.
func (d *DynamodbDataStore[T]) Table() TableDescriptor { return d.table }

// State reports the connection state.
func (d *DynamodbDataStore[T]) State() gate.State { return d.conn.State() }

// Connect establishes the connection (and the table, with AutoSetup) without
// performing an operation.
func (d *DynamodbDataStore[T]) Connect(ctx context.Context) error {
	_, err := d.conn.Get(ctx)
	return err
}

func (d *DynamodbDataStore[T]) connect(ctx context.Context) (API, error) {
	ep, err := d.resolver.Resolve(d.cfg.Region)
	if err != nil {
		return nil, errors.NewConfigurationError("Region", "unknown region", err)
	}

	raw := d.rawAPI
	if raw == nil {
		awsCfg, err := config.LoadDefaultConfig(ctx,
			config.WithRegion(ep.SigningRegion),
			config.WithCredentialsProvider(
				credentials.NewStaticCredentialsProvider(d.cfg.AccessKeyID, d.cfg.SecretAccessKey, d.cfg.SessionToken),
			),
		)
		if err != nil {
			return nil, errors.NewConfigurationError("", "failed to load AWS configuration", err)
		}
		raw = dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
			o.BaseEndpoint = aws.String(ep.URL)
			// retries belong to the store's policy
			o.RetryMaxAttempts = 1
		})
	}

	api := &retryingAPI{next: raw, policy: d.policy}
	if d.cfg.AutoSetup {
		if err := d.ensureTable(ctx, api); err != nil {
			return nil, err
		}
	}

	d.logger.Info("dynamodb store ready",
		zap.String("region", ep.Name),
		zap.String("endpoint", ep.URL))
	return api, nil
}
