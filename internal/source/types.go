package source

type (
	// FileID uniquely identifies a source file within a FileSet.
	FileID uint32
	// FileFlags encodes metadata about a source file.
	FileFlags uint8
)

const (
	// FileVirtual indicates the file was added from memory (test, stdin, library call).
	FileVirtual FileFlags = 1 << iota
	FileHadBOM
	// FileNormalizedCRLF indicates the original bytes used \r\n separators.
	// The formatter restores \r\n on output when this flag is set.
	FileNormalizedCRLF
)

// File captures metadata and content for a single source file.
// Content is always LF-separated; the original separator style lives in Flags.
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
