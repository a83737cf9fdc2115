package source

type (
	// FileID uniquely identifies a source file within a FileSet.
	FileID uint32 // просто ID источника
	// FileFlags encodes metadata about a source file.
	FileFlags uint8 // метаданные
)

const (
	// FileVirtual indicates the file was added from memory (editor buffer, test, stdin).
	FileVirtual FileFlags = 1 << iota // добавлен не с диска
	FileHadBOM
	FileNormalizedCRLF
	// FileNormalizedNFC marks content that changed under Unicode NFC normalization.
	FileNormalizedNFC
)

// File captures metadata and content for a single source file.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32
	Hash    [32]byte
	Flags   FileFlags
}

// LineCol represents a human-readable position in a source file.
type LineCol struct {
	Line uint32 // 1-based
	Col  uint32 // 1-based
}

// Point is a zero-based row/column position. Column counts bytes from line start.
type Point struct {
	Row    uint32 `json:"row" msgpack:"row"`
	Column uint32 `json:"col" msgpack:"col"`
}

// Range is a half-open pair of Points.
type Range struct {
	Start Point `json:"start" msgpack:"start"`
	End   Point `json:"end" msgpack:"end"`
}
