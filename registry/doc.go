/*
Package registry is the process-wide cache of entity type metadata.

Entity types register their field declarations once, usually from an init
function next to the type:

	func init() {
	    registry.Register(func(b *schema.Builder[Note]) {
	        b.String("Title", func(n *Note) *string { return &n.Title })
	        b.Time("Created", func(n *Note) *time.Time { return &n.Created })
	    })
	}

Store clients call Lookup when they are constructed. The schema is built on
the first lookup and cached for the life of the process; a type that fails to
build (no fields, duplicate names) reports the same ConfigurationError on
every lookup. Looking up a type that was never registered is also a
ConfigurationError.

The registry is safe for concurrent use.
*/
package registry
