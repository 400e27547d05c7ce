/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package main

import (
	"time"

	"github.com/suparena/dictstore/registry"
	"github.com/suparena/dictstore/schema"
)

// Document is the entity type managed by the CLI
type Document struct {
	Title     string    `json:"title"`
	Body      string    `json:"body,omitempty"`
	Tags      []string  `json:"tags,omitempty"`
	Revision  int64     `json:"revision"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func init() {
	registry.Register(func(b *schema.Builder[Document]) {
		b.String("Title", func(d *Document) *string { return &d.Title }).
			String("Body", func(d *Document) *string { return &d.Body }).
			Int64("Revision", func(d *Document) *int64 { return &d.Revision }).
			Time("UpdatedAt", func(d *Document) *time.Time { return &d.UpdatedAt })
		schema.JSON(b, "Tags", func(d *Document) *[]string { return &d.Tags })
	})
}
