package plumbing

// FileMode is the small subset of Git file modes this module needs to tell
// a regular file from a directory, a symlink, or a conflicted entry.
type FileMode uint32

const (
	FileRegular    FileMode = 0o100644
	FileExecutable FileMode = 0o100755
	FileDir        FileMode = 0o040000
	FileSymlink    FileMode = 0o120000
	// FileConflict marks a TreeEntry whose blob list holds the terms of an
	// unresolved multi-parent conflict rather than a single blob; the terms
	// are materialised into marker form only when the content is read.
	FileConflict FileMode = 0o160000
)

func (m FileMode) IsDir() bool      { return m == FileDir }
func (m FileMode) IsRegular() bool  { return m == FileRegular || m == FileExecutable }
func (m FileMode) IsSymlink() bool  { return m == FileSymlink }
func (m FileMode) IsConflict() bool { return m == FileConflict }

func (m FileMode) String() string {
	switch m {
	case FileDir:
		return "dir"
	case FileSymlink:
		return "symlink"
	case FileConflict:
		return "conflict"
	case FileExecutable:
		return "exec"
	default:
		return "file"
	}
}
