package relationship

// Table is a read-only snapshot of relationship records. It is built once
// after load and may be shared by any number of concurrent computations.
type Table struct {
	records []Record
	types   []string
}

// NewTable copies records into a new snapshot.
func NewTable(records []Record) *Table {
	owned := make([]Record, len(records))
	copy(owned, records)

	seen := make(map[string]bool)
	var types []string
	for _, r := range owned {
		if !seen[r.RelationshipType] {
			seen[r.RelationshipType] = true
			types = append(types, r.RelationshipType)
		}
	}

	return &Table{records: owned, types: types}
}

// Len returns the number of records.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.records)
}

// At returns a copy of the i-th record.
func (t *Table) At(i int) Record {
	return t.records[i]
}

// Records returns a copy of all records in load order.
func (t *Table) Records() []Record {
	if t == nil {
		return nil
	}
	out := make([]Record, len(t.records))
	copy(out, t.records)
	return out
}

// RelationshipTypes returns the distinct relationship types in first-seen order.
func (t *Table) RelationshipTypes() []string {
	if t == nil {
		return nil
	}
	out := make([]string, len(t.types))
	copy(out, t.types)
	return out
}

// Select returns copies of the records, in load order, for which keep returns true.
func (t *Table) Select(keep func(Record) bool) []Record {
	if t == nil {
		return nil
	}
	var out []Record
	for _, r := range t.records {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}
