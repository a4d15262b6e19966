// Package sink contains the destinations a collected Table can be written to.
// Encoders (sink/dsv, sink/jsonl) serialize a Table into a byte stream, and Sinks
// (sink/file, sink/objectstore, sink/database, sink/parquet) store it.
package sink
