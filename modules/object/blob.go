package object

import "github.com/strandvcs/strand/modules/plumbing"

// Blob is file content addressed by Hash. A Backend hands back fully
// materialised bytes, so there is nothing to decompress or stream here.
type Blob struct {
	Hash    plumbing.Hash
	Content []byte
}
