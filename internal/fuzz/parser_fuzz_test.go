package fuzztests

import (
	"context"
	"testing"
	"time"

	"pinecheck/internal/diag"
	"pinecheck/internal/parser"
	"pinecheck/internal/source"
	"pinecheck/internal/testkit"
)

// parseTimeout is the maximum time allowed for parsing a single input.
// If parsing takes longer, it indicates a potential infinite loop.
const parseTimeout = 5 * time.Second

func FuzzParser(f *testing.F) {
	addCorpusSeeds(f)
	f.Add([]byte("f(\n"))
	f.Add([]byte("x = [[[[\n"))
	f.Add([]byte("if if if\n    else\n"))
	f.Add([]byte("=> => =>\n"))

	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)

		ctx, cancel := context.WithTimeout(context.Background(), parseTimeout)
		defer cancel()

		done := make(chan error, 1)
		go func() {
			fs := source.NewFileSet()
			file := fs.Get(fs.AddVirtual("fuzz.pine", input))
			bag := diag.NewBag(128)
			tree := parser.Parse(file, parser.Options{
				Reporter:  diag.BagReporter{Bag: bag, File: file},
				MaxErrors: 128,
			})
			done <- testkit.CheckTree(tree)
		}()

		select {
		case err := <-done:
			if err != nil {
				t.Fatalf("tree invariant broken: %v\ninput (%d bytes): %q", err, len(input), truncateForLog(input, 200))
			}
		case <-ctx.Done():
			t.Fatalf("parser hang detected: parsing took longer than %v\ninput (%d bytes): %q",
				parseTimeout, len(input), truncateForLog(input, 200))
		}
	})
}
