/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package metrics

import (
	"fmt"
	"io"

	"github.com/prometheus/common/expfmt"
)

// Summary totals the counters of a Collector across operations
type Summary struct {
	Attempts  float64
	Retries   float64
	Calls     float64
	Exhausted float64
	Failed    float64
}

// Summary gathers the current counter totals
func (c *Collector) Summary() (Summary, error) {
	families, err := c.registry.Gather()
	if err != nil {
		return Summary{}, fmt.Errorf("gather metrics: %w", err)
	}
	var s Summary
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			v := m.GetCounter().GetValue()
			switch mf.GetName() {
			case c.name("remote_attempts_total"):
				s.Attempts += v
			case c.name("remote_retries_total"):
				s.Retries += v
			case c.name("remote_calls_total"):
				s.Calls += v
				for _, lp := range m.GetLabel() {
					if lp.GetName() != "outcome" {
						continue
					}
					switch lp.GetValue() {
					case "exhausted":
						s.Exhausted += v
					case "failed":
						s.Failed += v
					}
				}
			}
		}
	}
	return s, nil
}

// WriteText writes every series in the Prometheus text exposition format
func (c *Collector) WriteText(w io.Writer) error {
	families, err := c.registry.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("write metric %s: %w", mf.GetName(), err)
		}
	}
	return nil
}

func (c *Collector) name(metric string) string {
	if c.namespace == "" {
		return metric
	}
	return c.namespace + "_" + metric
}
