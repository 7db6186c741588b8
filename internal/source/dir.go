package source

import (
	"context"
	"os"
	"path/filepath"
	"sort"

	"reportapi/internal/curriculum"
	"reportapi/internal/model"
)

// DirSource reads record files from a local directory (not recursive).
type DirSource struct {
	dir string
}

func NewDirSource(dir string) *DirSource {
	return &DirSource{dir: dir}
}

var _ Source = (*DirSource)(nil)

func (s *DirSource) Fetch(ctx context.Context) ([]model.RawRecord, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, &curriculum.TransportError{Op: "read dir " + s.dir, Err: err}
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() && Supported(e.Name()) {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	records := make([]model.RawRecord, 0, len(names))
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, &curriculum.TransportError{Op: "read dir " + s.dir, Err: err}
		}
		full := filepath.Join(s.dir, name)
		data, err := os.ReadFile(full)
		if err != nil {
			return nil, &curriculum.TransportError{Op: "read " + full, Err: err}
		}
		recs, err := Decode(name, data)
		if err != nil {
			return nil, &curriculum.TransportError{Op: "decode " + full, Err: err}
		}
		records = append(records, recs...)
	}
	return records, nil
}
