package builtins

import (
	"bytes"
	"crypto/sha256"
	_ "embed"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// ErrEmptyCorpus is returned when a corpus document declares no functions.
var ErrEmptyCorpus = errors.New("builtins: corpus declares no functions")

//go:embed data/definitions.json
var defaultDefinitions []byte

// Corpus is the immutable catalog of built-in function signatures.
// It is safe for concurrent use once constructed.
type Corpus struct {
	byName map[string]*Signature
	order  []*Signature

	digest     string
	digestOnce sync.Once
}

// New builds a corpus from sigs. A later entry with the same name replaces an earlier one.
func New(sigs []Signature) *Corpus {
	c := &Corpus{
		byName: make(map[string]*Signature, len(sigs)),
		order:  make([]*Signature, 0, len(sigs)),
	}
	for i := range sigs {
		sig := sigs[i]
		if prev, ok := c.byName[sig.Name]; ok {
			*prev = sig
			continue
		}
		c.byName[sig.Name] = &sig
		c.order = append(c.order, &sig)
	}
	return c
}

type corpusDocument struct {
	Functions []rawSignature `json:"functions"`
}

// Parse decodes a corpus JSON document.
func Parse(data []byte) (*Corpus, error) {
	var doc corpusDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode corpus: %w", err)
	}
	if len(doc.Functions) == 0 {
		return nil, ErrEmptyCorpus
	}
	sigs := make([]Signature, 0, len(doc.Functions))
	for i := range doc.Functions {
		sig, err := doc.Functions[i].signature()
		if err != nil {
			return nil, fmt.Errorf("decode corpus: %w", err)
		}
		sigs = append(sigs, sig)
	}
	c := New(sigs)
	c.digest = digestOf(data)
	return c, nil
}

// Load reads a corpus from path. Files ending in .mp or .msgpack are read as
// compiled snapshots, anything else as JSON.
func Load(path string) (*Corpus, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read corpus %s: %w", path, err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp", ".msgpack":
		c, err := ReadCompiled(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("read corpus %s: %w", path, err)
		}
		c.digest = digestOf(data)
		return c, nil
	default:
		c, err := Parse(data)
		if err != nil {
			return nil, fmt.Errorf("read corpus %s: %w", path, err)
		}
		return c, nil
	}
}

var defaultCorpus = sync.OnceValue(func() *Corpus {
	c, err := Parse(defaultDefinitions)
	if err != nil {
		panic(fmt.Errorf("embedded corpus: %w", err))
	}
	return c
})

// Default returns the corpus embedded into the binary. It is built once.
func Default() *Corpus {
	return defaultCorpus()
}

// Lookup returns the signature registered under the exact dotted name.
func (c *Corpus) Lookup(name string) (*Signature, bool) {
	if c == nil {
		return nil, false
	}
	sig, ok := c.byName[name]
	return sig, ok
}

// Has reports whether name is a known built-in function.
func (c *Corpus) Has(name string) bool {
	_, ok := c.Lookup(name)
	return ok
}

// Len returns the number of signatures.
func (c *Corpus) Len() int {
	if c == nil {
		return 0
	}
	return len(c.order)
}

// Signatures returns all signatures in document order.
func (c *Corpus) Signatures() []*Signature {
	if c == nil {
		return nil
	}
	return c.order
}

// Digest identifies the corpus content; it keys analysis caches.
func (c *Corpus) Digest() string {
	if c == nil {
		return ""
	}
	c.digestOnce.Do(func() {
		if c.digest != "" {
			return
		}
		var buf bytes.Buffer
		if err := c.WriteCompiled(&buf); err == nil {
			c.digest = digestOf(buf.Bytes())
		}
	})
	return c.digest
}

// WriteJSON writes c in the corpus document format.
func (c *Corpus) WriteJSON(w io.Writer) error {
	doc := struct {
		Functions []*Signature `json:"functions"`
	}{Functions: c.Signatures()}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

func digestOf(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
