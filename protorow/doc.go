// Package protorow encodes flat records into protobuf wire format, driven
// by a schema supplied at runtime rather than generated code.
//
// The target workload is row streaming into a columnar warehouse: the
// warehouse publishes a table schema, the producer builds a matching
// Schema once, and every incoming record is serialized directly against
// it. No descriptor files, no codegen step, no per-row schema negotiation.
//
// # Schemas
//
// A Schema is built from a []Field with NewSchema, which validates field
// names, numbers, and wire-type/logical-type combinations, precomputes the
// tag bytes for every field, and derives an xxHash64 fingerprint
// identifying the schema's wire contract:
//
//	schema := protorow.MustNewSchema([]protorow.Field{
//		{Name: "name", Number: 1, Wire: protorow.WireLengthDelimited, Type: protorow.TypeString, Mode: protorow.ModeRequired},
//		{Name: "count", Number: 2, Wire: protorow.WireVarint, Type: protorow.TypeInt},
//	})
//
// # Records
//
// Marshal walks a struct's exported fields, matches each against the
// schema by name (overridable with a `row` tag), and dispatches on the
// field's declared wire type. Absence follows Go pointers: nil means
// absent, which errors for required fields and writes nothing for
// optional ones. Repeated fields take slices and tag every element
// independently. Output is deterministic and append-style:
//
//	row, err := protorow.Marshal(nil, schema, &record)
//
// Failures are typed: UnknownFieldError, MissingRequiredError,
// InvalidTypeError, and InvalidKeyError, each matchable through its
// errors.Is sentinel.
//
// # Batches
//
// BatchWriter frames many rows into one self-describing blob carrying the
// schema fingerprint, a row count, and an optionally compressed payload
// (zstd, s2, or lz4 through the compress package). BatchReader validates
// the header, rejects frames from a different schema, and yields rows
// either sequentially or by index.
package protorow
