// Package metrics exposes Prometheus series for remote store calls. A
// Collector is passed to a store client as its retry observer, so every
// attempt and every final outcome is counted.
package metrics
