package project

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"pinecheck/internal/diag"
)

// Manifest is the decoded pinecheck.toml.
type Manifest struct {
	// Path is the manifest file; Root its directory. Both are empty for Default().
	Path string `toml:"-"`
	Root string `toml:"-"`

	Analysis Analysis `toml:"analysis"`
	Files    Files    `toml:"files"`
}

// Analysis holds the [analysis] table.
type Analysis struct {
	MaxDiagnostics   int    `toml:"max_diagnostics"`
	Corpus           string `toml:"corpus,omitempty"`
	NoWarnings       bool   `toml:"no_warnings"`
	WarningsAsErrors bool   `toml:"warnings_as_errors"`
}

// Files holds the [files] table.
type Files struct {
	Include    []string `toml:"include"`
	Extensions []string `toml:"extensions"`
}

// DefaultExtensions are the script suffixes analyzed in directory mode.
var DefaultExtensions = []string{".pine", ".pinescript"}

var (
	// ErrBadMaxDiagnostics reports a non-positive or oversized [analysis].max_diagnostics.
	ErrBadMaxDiagnostics = errors.New("invalid [analysis].max_diagnostics")
	// ErrBadExtension reports an entry of [files].extensions without a leading dot.
	ErrBadExtension = errors.New("invalid [files].extensions entry")
)

// Default returns the manifest used when no pinecheck.toml exists.
func Default() *Manifest {
	return &Manifest{
		Analysis: Analysis{MaxDiagnostics: diag.DefaultMax},
		Files: Files{
			Include:    []string{"."},
			Extensions: append([]string(nil), DefaultExtensions...),
		},
	}
}

// LoadManifest decodes path. Missing keys keep their Default() values.
func LoadManifest(path string) (*Manifest, error) {
	m := Default()
	meta, err := toml.DecodeFile(path, m)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return nil, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	m.Path = path
	m.Root = filepath.Dir(path)
	if err := m.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// Discover finds and loads the nearest manifest above startDir. When none
// exists it returns Default() with ok=false.
func Discover(startDir string) (m *Manifest, ok bool, err error) {
	path, err := FindManifest(startDir)
	if errors.Is(err, ErrManifestNotFound) {
		return Default(), false, nil
	}
	if err != nil {
		return nil, false, err
	}
	m, err = LoadManifest(path)
	if err != nil {
		return nil, true, err
	}
	return m, true, nil
}

func (m *Manifest) validate() error {
	if m.Analysis.MaxDiagnostics <= 0 || m.Analysis.MaxDiagnostics > 65535 {
		return fmt.Errorf("%w: %d", ErrBadMaxDiagnostics, m.Analysis.MaxDiagnostics)
	}
	for _, ext := range m.Files.Extensions {
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
			return fmt.Errorf("%w: %q", ErrBadExtension, ext)
		}
	}
	if len(m.Files.Extensions) == 0 {
		m.Files.Extensions = append([]string(nil), DefaultExtensions...)
	}
	if len(m.Files.Include) == 0 {
		m.Files.Include = []string{"."}
	}
	return nil
}

// CorpusPath resolves [analysis].corpus against the manifest directory.
// It returns "" when no corpus is configured.
func (m *Manifest) CorpusPath() string {
	c := strings.TrimSpace(m.Analysis.Corpus)
	if c == "" {
		return ""
	}
	if filepath.IsAbs(c) || m.Root == "" {
		return c
	}
	return filepath.Join(m.Root, c)
}

// IncludeDirs resolves [files].include against the manifest directory.
func (m *Manifest) IncludeDirs() []string {
	out := make([]string, 0, len(m.Files.Include))
	for _, inc := range m.Files.Include {
		if filepath.IsAbs(inc) || m.Root == "" {
			out = append(out, filepath.Clean(inc))
			continue
		}
		out = append(out, filepath.Join(m.Root, inc))
	}
	return out
}

// Encode renders m as TOML.
func (m *Manifest) Encode() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("# pinecheck project manifest\n")
	if err := toml.NewEncoder(&buf).Encode(m); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
