// Package file provides a DataSource which reads data from a set of files on disk,
// matched by a glob. Each file is loaded lazily and parsed in its entirety, in
// lexical order. Files whose names end in .lz4 are decompressed as they are read.
package file
