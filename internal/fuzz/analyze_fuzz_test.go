package fuzztests

import (
	"context"
	"testing"

	"pinecheck/internal/builtins"
	"pinecheck/internal/diag"
	"pinecheck/internal/parser"
	"pinecheck/internal/sema"
	"pinecheck/internal/source"
)

const fuzzCap = 50

func FuzzAnalyze(f *testing.F) {
	addCorpusSeeds(f)
	an := sema.New(builtins.Default(), sema.Options{MaxDiagnostics: fuzzCap})

	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)

		fs := source.NewFileSet()
		file := fs.Get(fs.AddVirtual("fuzz.pine", input))
		tree := parser.Parse(file, parser.Options{Reporter: diag.NopReporter{}})

		res := an.Analyze(context.Background(), tree)
		if len(res.Diagnostics) > fuzzCap {
			t.Fatalf("analyzer returned %d diagnostics, cap is %d", len(res.Diagnostics), fuzzCap)
		}
		for _, d := range res.Diagnostics {
			if int(d.Primary.End) > len(file.Content) || d.Primary.Start > d.Primary.End {
				t.Fatalf("diagnostic %s has bad span %v", d.Code.ID(), d.Primary)
			}
		}

		// повторный прогон на том же анализаторе дает тот же результат
		again := an.Analyze(context.Background(), tree)
		if len(again.Diagnostics) != len(res.Diagnostics) {
			t.Fatalf("analysis is not repeatable: %d vs %d diagnostics", len(res.Diagnostics), len(again.Diagnostics))
		}
	})
}
