package idl

// Version constants for the document schema and generator.
const (
	// SchemaVersion is the type-environment document schema version.
	SchemaVersion = "1"

	// GeneratorVersion is the bindgen version stamped into output headers.
	GeneratorVersion = "0.1.0"
)
