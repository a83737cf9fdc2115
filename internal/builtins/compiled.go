package builtins

import (
	"errors"
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"
)

// compiledSchema is bumped whenever the snapshot layout changes.
const compiledSchema uint16 = 1

// ErrSchemaMismatch is returned for snapshots written by an incompatible version.
var ErrSchemaMismatch = errors.New("builtins: compiled corpus schema mismatch")

type compiledCorpus struct {
	Schema    uint16      `msgpack:"schema"`
	Functions []Signature `msgpack:"functions"`
}

// WriteCompiled serializes c as a msgpack snapshot.
func (c *Corpus) WriteCompiled(w io.Writer) error {
	snap := compiledCorpus{
		Schema:    compiledSchema,
		Functions: make([]Signature, 0, c.Len()),
	}
	for _, sig := range c.Signatures() {
		snap.Functions = append(snap.Functions, *sig)
	}
	if err := msgpack.NewEncoder(w).Encode(&snap); err != nil {
		return fmt.Errorf("encode compiled corpus: %w", err)
	}
	return nil
}

// ReadCompiled decodes a snapshot produced by WriteCompiled.
func ReadCompiled(r io.Reader) (*Corpus, error) {
	var snap compiledCorpus
	if err := msgpack.NewDecoder(r).Decode(&snap); err != nil {
		return nil, fmt.Errorf("decode compiled corpus: %w", err)
	}
	if snap.Schema != compiledSchema {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrSchemaMismatch, snap.Schema, compiledSchema)
	}
	if len(snap.Functions) == 0 {
		return nil, ErrEmptyCorpus
	}
	return New(snap.Functions), nil
}
