// Package file provides a Sink which writes an encoded Table to a file on disk.
// Paths ending in .lz4 are compressed.
package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/flowsome/flowsome"
	"github.com/flowsome/flowsome/internal/compress"
	"github.com/rs/zerolog/log"
)

// Sink writes Tables to a single file, replacing it if it exists
type Sink struct {
	path    string
	encoder flowsome.TableEncoder
}

// CreateSink is a factory for file Sinks
func CreateSink(path string, encoder flowsome.TableEncoder) *Sink {
	return &Sink{path: path, encoder: encoder}
}

// ToString returns a string representation of this Sink
func (s *Sink) ToString() string {
	return fmt.Sprintf("File sink path: %s", s.path)
}

// Write encodes table into a temporary file next to the destination, and renames it
// into place once it is complete
func (s *Sink) Write(ctx context.Context, table flowsome.Table) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()
	w := compress.NewWriter(s.path, tmp)
	if err = s.encoder.Encode(w, table); err != nil {
		return fmt.Errorf("Unable to encode %s: %w", s.path, err)
	}
	if err = w.Close(); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	if err = os.Rename(tmp.Name(), s.path); err != nil {
		return err
	}
	log.Debug().Str("path", s.path).Int("rows", table.NumRows()).Msg("wrote file")
	return nil
}
