package expr

// ID identifies one node within a tree snapshot. IDs are unique per snapshot
// and immutable for the lifetime of the node.
type ID uint64

// NoID is the zero ID; no minted node ever carries it.
const NoID ID = 0

// Gen mints node ids. It replaces the usual global counter so callers can
// hold uniqueness per editing session and tests stay deterministic.
type Gen struct {
	next uint64
}

func NewGen() *Gen {
	return &Gen{next: 1}
}

func (g *Gen) Next() ID {
	id := ID(g.next)
	g.next++
	return id
}

// Seed returns a Gen whose first minted id is start. Useful for tests that
// want stable, readable ids.
func Seed(start uint64) *Gen {
	if start == 0 {
		start = 1
	}
	return &Gen{next: start}
}
