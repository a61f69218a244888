package models

// Dataset is the immutable, normalized table shared by every view.
// Records are stored by value and only handed out as copies through Each, so
// callers cannot reach into the backing slice.
type Dataset struct {
	records []AppRecord
}

// NewDataset copies records into a new Dataset.
func NewDataset(records []AppRecord) *Dataset {
	cp := make([]AppRecord, len(records))
	copy(cp, records)
	return &Dataset{records: cp}
}

// Len returns the number of rows.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.records)
}

// Each calls fn for every row in source order.
func (d *Dataset) Each(fn func(i int, r AppRecord)) {
	if d == nil {
		return
	}
	for i, r := range d.records {
		fn(i, r)
	}
}

// Categories returns the distinct non-missing categories in first-seen order.
func (d *Dataset) Categories() []string {
	return d.distinct(func(r AppRecord) (string, bool) {
		return r.Category.String, r.Category.Valid
	})
}

// ContentRatings returns the distinct non-missing content ratings in
// first-seen order.
func (d *Dataset) ContentRatings() []string {
	return d.distinct(func(r AppRecord) (string, bool) {
		return r.ContentRating.String, r.ContentRating.Valid
	})
}

func (d *Dataset) distinct(key func(AppRecord) (string, bool)) []string {
	seen := make(map[string]struct{})
	var out []string
	d.Each(func(_ int, r AppRecord) {
		k, ok := key(r)
		if !ok {
			return
		}
		if _, dup := seen[k]; dup {
			return
		}
		seen[k] = struct{}{}
		out = append(out, k)
	})
	return out
}
