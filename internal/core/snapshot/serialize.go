package snapshot

import (
	"errors"
	"fmt"

	"github.com/colonyops/diffpane/internal/core/diff"
)

// Version is the serialized snapshot format version.
const Version = 1

// ErrUnsupportedVersion is returned when deserializing an unknown format.
var ErrUnsupportedVersion = errors.New("unsupported snapshot version")

// Data is the persisted layout of a ledger.
type Data struct {
	Version int        `json:"version"`
	Files   []FileData `json:"files"`
}

// FileData is one serialized tracked file.
type FileData struct {
	Path            string `json:"path"`
	BaselineContent string `json:"baselineContent"`
	CurrentContent  string `json:"currentContent"`
}

// ToSnapshot serializes the ledger in ledger order.
func (l *Ledger) ToSnapshot() Data {
	data := Data{
		Version: Version,
		Files:   make([]FileData, 0, l.files.Len()),
	}
	l.files.Each(func(path string, s Snapshot) bool {
		data.Files = append(data.Files, FileData{
			Path:            path,
			BaselineContent: s.Baseline,
			CurrentContent:  s.Current,
		})
		return true
	})
	return data
}

// FromSnapshot reconstructs a ledger with the same tracked set, order and
// contents as the one that produced data. The ledger uses diff.Default.
func FromSnapshot(data Data) (*Ledger, error) {
	return FromSnapshotWith(data, diff.Default)
}

// FromSnapshotWith is FromSnapshot with the ledger computing diffs through m.
func FromSnapshotWith(data Data, m diff.Materializer) (*Ledger, error) {
	if data.Version != Version {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, data.Version)
	}

	l := NewWithMaterializer(m)
	for _, f := range data.Files {
		if f.Path == "" {
			return nil, fmt.Errorf("snapshot file entry has empty path")
		}
		l.Track(f.Path, f.BaselineContent, f.CurrentContent)
	}
	return l, nil
}
