package sema

import "pinecheck/internal/builtins"

// Catalog maps user function names to signatures in insertion order.
type Catalog struct {
	index map[string]int
	sigs  []*builtins.Signature
}

func newCatalog() *Catalog {
	return &Catalog{index: make(map[string]int)}
}

// Get returns the signature stored under name.
func (c *Catalog) Get(name string) (*builtins.Signature, bool) {
	if c == nil {
		return nil, false
	}
	i, ok := c.index[name]
	if !ok {
		return nil, false
	}
	return c.sigs[i], true
}

// Has reports whether name is in the catalog.
func (c *Catalog) Has(name string) bool {
	_, ok := c.Get(name)
	return ok
}

// Set stores sig, replacing an entry with the same name in place.
func (c *Catalog) Set(sig *builtins.Signature) {
	if i, ok := c.index[sig.Name]; ok {
		c.sigs[i] = sig
		return
	}
	c.index[sig.Name] = len(c.sigs)
	c.sigs = append(c.sigs, sig)
}

// Len returns the number of entries.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.sigs)
}

// Signatures returns the entries in insertion order.
func (c *Catalog) Signatures() []*builtins.Signature {
	if c == nil {
		return nil
	}
	return c.sigs
}

// Names returns the entry names in insertion order.
func (c *Catalog) Names() []string {
	names := make([]string, 0, c.Len())
	for _, sig := range c.Signatures() {
		names = append(names, sig.Name)
	}
	return names
}
