package source

import (
	"context"

	"reportapi/internal/curriculum"
	"reportapi/internal/model"
)

// Source supplies every raw course record in one call. A failure is reported as
// a single *curriculum.TransportError and no partial result is returned.
type Source interface {
	Fetch(ctx context.Context) ([]model.RawRecord, error)
}

// Func adapts a plain function to Source.
type Func func(ctx context.Context) ([]model.RawRecord, error)

func (f Func) Fetch(ctx context.Context) ([]model.RawRecord, error) { return f(ctx) }

// LoadDataset fetches every record from src, aggregates them and checks that
// the composite source columns are present, so a dataset it returns can
// always be reported on.
func LoadDataset(ctx context.Context, src Source) (*curriculum.Dataset, error) {
	records, err := src.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	ds, err := curriculum.Aggregate(records)
	if err != nil {
		return nil, err
	}
	if err := curriculum.Validate(ds, curriculum.Composites); err != nil {
		return nil, err
	}
	return ds, nil
}
