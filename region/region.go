/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package region

import (
	"fmt"
	"sort"
	"strings"

	"github.com/suparena/dictstore/errors"
)

// Endpoint is where requests for a named region are sent and how they are signed.
type Endpoint struct {
	Name          string
	URL           string
	SigningRegion string
}

// Resolver maps a region name to its endpoint.
type Resolver interface {
	Resolve(name string) (Endpoint, error)
}

var awsRegions = []string{
	"af-south-1",
	"ap-east-1",
	"ap-northeast-1",
	"ap-northeast-2",
	"ap-northeast-3",
	"ap-south-1",
	"ap-south-2",
	"ap-southeast-1",
	"ap-southeast-2",
	"ap-southeast-3",
	"ap-southeast-4",
	"ca-central-1",
	"ca-west-1",
	"cn-north-1",
	"cn-northwest-1",
	"eu-central-1",
	"eu-central-2",
	"eu-north-1",
	"eu-south-1",
	"eu-south-2",
	"eu-west-1",
	"eu-west-2",
	"eu-west-3",
	"il-central-1",
	"me-central-1",
	"me-south-1",
	"sa-east-1",
	"us-east-1",
	"us-east-2",
	"us-gov-east-1",
	"us-gov-west-1",
	"us-west-1",
	"us-west-2",
}

// StaticResolver resolves from a fixed table built at construction.
type StaticResolver struct {
	endpoints map[string]Endpoint
}

// Option configures a StaticResolver
type Option func(*StaticResolver)

// WithEndpoint adds or overrides a named endpoint, such as a local emulator.
func WithEndpoint(name, url, signingRegion string) Option {
	return func(r *StaticResolver) {
		r.endpoints[strings.ToLower(name)] = Endpoint{Name: name, URL: url, SigningRegion: signingRegion}
	}
}

// NewStaticResolver returns a resolver knowing every public DynamoDB region.
func NewStaticResolver(opts ...Option) *StaticResolver {
	r := &StaticResolver{endpoints: make(map[string]Endpoint, len(awsRegions))}
	for _, name := range awsRegions {
		r.endpoints[name] = Endpoint{Name: name, URL: dynamoDBURL(name), SigningRegion: name}
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func dynamoDBURL(name string) string {
	if strings.HasPrefix(name, "cn-") {
		return fmt.Sprintf("https://dynamodb.%s.amazonaws.com.cn", name)
	}
	return fmt.Sprintf("https://dynamodb.%s.amazonaws.com", name)
}

// Resolve returns the endpoint for name. Unknown names are a NotFoundError.
func (r *StaticResolver) Resolve(name string) (Endpoint, error) {
	ep, ok := r.endpoints[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Endpoint{}, errors.NewNotFoundError("region", name)
	}
	return ep, nil
}

// Names lists the known region names in sorted order.
func (r *StaticResolver) Names() []string {
	names := make([]string, 0, len(r.endpoints))
	for name := range r.endpoints {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
