/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package aztable

import (
	"context"

	azpolicy "github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/data/aztables"
	"go.uber.org/zap"

	"github.com/suparena/dictstore/datastore"
	"github.com/suparena/dictstore/errors"
	"github.com/suparena/dictstore/internal/gate"
	"github.com/suparena/dictstore/internal/validate"
	"github.com/suparena/dictstore/registry"
	"github.com/suparena/dictstore/retry"
	"github.com/suparena/dictstore/schema"
)

// AzureTableDataStore implements datastore.DictionaryStore[T] on an Azure
// Storage table. PartitionKey holds the partition ID and RowKey the entity ID.
type AzureTableDataStore[T any] struct {
	cfg    Config
	schema *schema.Schema[T]
	logger *zap.Logger
	policy retry.Executor
	rawAPI API
	conn   *gate.Gate[API]
}

var _ datastore.DictionaryStore[struct{}] = (*AzureTableDataStore[struct{}])(nil)

type options struct {
	api         API
	policy      retry.Executor
	retryConfig retry.Config
	logger      *zap.Logger
	observer    retry.Observer
}

// Option configures an AzureTableDataStore
type Option func(*options)

// WithAPI replaces the SDK client.
func WithAPI(api API) Option {
	return func(o *options) { o.api = api }
}

// WithRetryPolicy replaces the default retry policy. The policy's classifier
// should accept IsTransientResponse failures.
func WithRetryPolicy(policy retry.Executor) Option {
	return func(o *options) { o.policy = policy }
}

func WithRetryConfig(cfg retry.Config) Option {
	return func(o *options) { o.retryConfig = cfg }
}

func WithLogger(logger *zap.Logger) Option {
	return func(o *options) { o.logger = logger }
}

func WithObserver(observer retry.Observer) Option {
	return func(o *options) { o.observer = observer }
}

// Classifier is the transient-failure classifier of the default policy.
var Classifier = retry.Any(retry.IsTransient, IsTransientResponse)

// New validates cfg, looks up the schema of T and returns a store. No remote
// call is made until the first operation.
func New[T any](cfg Config, opts ...Option) (*AzureTableDataStore[T], error) {
	o := options{
		retryConfig: retry.DefaultConfig(),
		logger:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	cfg = cfg.withDefaults()
	if err := validate.Struct(cfg); err != nil {
		return nil, err
	}
	s, err := registry.Lookup[T]()
	if err != nil {
		return nil, err
	}

	logger := o.logger.Named("aztable").With(zap.String("table", cfg.TableName))
	if o.policy == nil {
		o.policy = retry.New(o.retryConfig,
			retry.WithClassifier(Classifier),
			retry.WithLogger(logger),
			retry.WithObserver(o.observer))
	}

	a := &AzureTableDataStore[T]{
		cfg:    cfg,
		schema: s,
		logger: logger,
		policy: o.policy,
		rawAPI: o.api,
	}
	a.conn = gate.New(a.connect)
	return a, nil
}

// TableName returns the name of the backing table.
func (a *AzureTableDataStore[T]) TableName() string { return a.cfg.TableName }

// State reports the connection state.
func (a *AzureTableDataStore[T]) State() gate.State { return a.conn.State() }

// Connect establishes the connection (and the table, with AutoSetup) without
// performing an operation.
func (a *AzureTableDataStore[T]) Connect(ctx context.Context) error {
	_, err := a.conn.Get(ctx)
	return err
}

func (a *AzureTableDataStore[T]) connect(ctx context.Context) (API, error) {
	raw := a.rawAPI
	if raw == nil {
		cred, err := aztables.NewSharedKeyCredential(a.cfg.AccountName, a.cfg.AccountKey)
		if err != nil {
			return nil, errors.NewConfigurationError("AccountKey", "invalid shared key", err)
		}
		svc, err := aztables.NewServiceClientWithSharedKey(a.cfg.ServiceURL, cred, &aztables.ClientOptions{
			ClientOptions: azpolicy.ClientOptions{
				// retries belong to the store's policy
				Retry: azpolicy.RetryOptions{MaxRetries: -1},
			},
		})
		if err != nil {
			return nil, errors.NewConfigurationError("ServiceURL", "failed to create table service client", err)
		}
		raw = svc.NewClient(a.cfg.TableName)
	}

	api := &retryingAPI{next: raw, policy: a.policy}
	if a.cfg.AutoSetup {
		if err := a.ensureTable(ctx, api); err != nil {
			return nil, err
		}
	}

	a.logger.Info("azure table store ready", zap.String("service_url", a.cfg.ServiceURL))
	return api, nil
}
