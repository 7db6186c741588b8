package source

import (
	"context"
	"fmt"
	"io"

	"reportapi/internal/curriculum"
	"reportapi/internal/model"
	"reportapi/internal/storage"
)

// ObjectSource reads every record file stored under a prefix of the record bucket.
type ObjectSource struct {
	store  storage.Storage
	prefix string
}

func NewObjectSource(store storage.Storage, prefix string) *ObjectSource {
	return &ObjectSource{store: store, prefix: prefix}
}

var _ Source = (*ObjectSource)(nil)

// Fetch lists the prefix and decodes the record files in key order. Objects
// with other extensions are skipped.
func (s *ObjectSource) Fetch(ctx context.Context) ([]model.RawRecord, error) {
	objs, err := s.store.List(ctx, s.prefix)
	if err != nil {
		return nil, &curriculum.TransportError{Op: "list " + s.prefix, Err: err}
	}

	records := make([]model.RawRecord, 0, len(objs))
	for _, obj := range objs {
		if !Supported(obj.Key) {
			continue
		}
		recs, err := s.read(ctx, obj.Key)
		if err != nil {
			return nil, &curriculum.TransportError{Op: "read " + obj.Key, Err: err}
		}
		records = append(records, recs...)
	}
	return records, nil
}

func (s *ObjectSource) read(ctx context.Context, key string) ([]model.RawRecord, error) {
	rc, _, err := s.store.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("read object: %w", err)
	}
	return Decode(key, data)
}
