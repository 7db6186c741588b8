package curriculum

// Run turns an aggregated dataset and a committed selection into the report
// views. A composite source column missing from the whole dataset fails every
// selection, before any filtering. Filtering only reads raw columns, so it runs
// next and composition is limited to the selected rows: a malformed record of
// another program cannot fail this report, while a malformed selected record
// fails it as a whole. ds itself is never modified.
func Run(ds *Dataset, sel Selection, defs []ViewDef) ([]View, error) {
	if err := Validate(ds, Composites); err != nil {
		return nil, err
	}
	rows, err := Filter(ds, sel)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrEmptyResult
	}
	composed, err := Compose(ds.Subset(rows), Composites)
	if err != nil {
		return nil, err
	}
	return Project(composed.rows, defs), nil
}
