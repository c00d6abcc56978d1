package query

type PageFilter struct {
	Page     int
	PageSize int
}

func (f PageFilter) Offset() int {
	if f.Page <= 0 {
		return 0
	}
	return (f.Page - 1) * f.PageSize
}

func (f PageFilter) Limit() int {
	if f.PageSize <= 0 {
		return 10
	}
	return f.PageSize
}

// ReadPreference selects the data source consistency level for a query.
// Historical backfill tolerates bounded staleness and reads the replica;
// callers needing freshly mutated data must request the primary explicitly.
type ReadPreference int

const (
	// ReadReplica serves the query from a lagging secondary when one is configured.
	ReadReplica ReadPreference = iota
	// ReadPrimary forces the query onto the primary source.
	ReadPrimary
)

func (p ReadPreference) String() string {
	if p == ReadPrimary {
		return "primary"
	}
	return "replica"
}
