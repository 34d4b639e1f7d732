package media

import (
	"log"
	"os"
	"path/filepath"
)

// TempAsset is a handle to bytes materialized under the OS temp directory.
// Ownership belongs to whoever created it; Remove must be called on every exit
// path of that owner.
type TempAsset struct {
	Path string
}

// NewTempAsset reserves a path under os.TempDir for the given unique name.
// Nothing is written; the fetcher or pipeline fills it in.
func NewTempAsset(name string) *TempAsset {
	return &TempAsset{Path: filepath.Join(os.TempDir(), name)}
}

// Remove deletes the underlying file. Best effort: a failed delete is logged
// and swallowed so cleanup never changes an export's outcome.
func (a *TempAsset) Remove() {
	if a == nil || a.Path == "" {
		return
	}
	if err := os.Remove(a.Path); err != nil && !os.IsNotExist(err) {
		log.Printf("Failed to delete temp file %s: %v", a.Path, err)
	}
}
