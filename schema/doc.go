/*
Package schema holds the type metadata that drives persistence.

An entity type declares its persisted fields once through a Builder. Each
declaration carries the stored attribute name, the field kind, and a function
returning a pointer into the struct, so reading and writing an entity never
needs struct reflection:

	s, err := schema.NewBuilder[Note]().
	    String("Title", func(n *Note) *string { return &n.Title }).
	    NullableInt64("Rank", func(n *Note) **int64 { return &n.Rank }).
	    Time("Created", func(n *Note) *time.Time { return &n.Created }).
	    Build()

Kinds outside the fixed set (slices, maps, nested structs) are declared with
JSON and stored as their JSON text.

Values cross the backend boundary as the Value sum type. Every backend
provides a Codec that maps each Kind to one native attribute form; the
generic EncodeEntity and DecodeEntity walk the full field list in order.

Null handling:
  - nil pointers and nil byte slices are stored as null
  - the empty string is stored as null and reads back as "" (or nil for
    *string fields)
  - a JSON field whose value marshals to null is stored as null
*/
package schema
