// Package region resolves region names to service endpoints.
package region
