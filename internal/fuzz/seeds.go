package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const (
	maxSeedBytes = 64 << 10 // 64 KiB
	maxFuzzInput = 1 << 16  // 64 KiB
)

// languageSeeds cover the constructs whose recovery paths are easy to break.
var languageSeeds = []string{
	"",
	"x = 1\n",
	"//@version=5\nindicator(\"t\")\nplot(close)\n",
	"if close > open\n    plot(1)\nelse if close < open\n    plot(2)\nelse\n    plot(3)\n",
	"f(a, b = 2) =>\n    a + b\n",
	"type P\n    float x = na\n    int y\n",
	"method m(P this) =>\n    this.x\n",
	"v = switch x\n    1 => \"a\"\n    => \"b\"\n",
	"for i = 0 to 10 by 2\n    sum += i\n",
	"for [i, v] in arr\n    plot(v)\n",
	"while i < 10\n    i += 1\n",
	"[a, b] = f()\n",
	"x = (1 +\n     2)\n",
	"x = (1 + \n",
	"arr = array.new<float>(10, 0.0)\n",
	"c = #ff00aa80\n",
	"s = 'unterminated\n",
	"\tx = 1\n  y = 2\n",
	"export f() => 1\n",
	"var int unused = 1\nvarip float z = 0.0\n",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range languageSeeds {
		f.Add([]byte(s))
	}
	addTestdataSeeds(f)
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	// проходим по дереву testdata, добавляем все *.pine файлы
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() || filepath.Ext(path) != ".pine" {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}

func clampInput(input []byte) []byte {
	if len(input) > maxFuzzInput {
		return append([]byte(nil), input[:maxFuzzInput]...)
	}
	return append([]byte(nil), input...)
}

// truncateForLog truncates input for logging purposes
func truncateForLog(input []byte, maxLen int) []byte {
	if len(input) <= maxLen {
		return input
	}
	return append(input[:maxLen:maxLen], []byte("...")...)
}
