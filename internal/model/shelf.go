package model

// Shelf is the closed set of placements a user can give a book. A book
// that has no row in user_books is simply unshelved; there is no Shelf
// value for that state, handlers represent it with a null/absent field.
type Shelf string

const (
	ShelfCurrentlyReading Shelf = "currentlyReading"
	ShelfWantToRead       Shelf = "wantToRead"
	ShelfRead             Shelf = "read"
)

// ParseShelf maps a raw payload value onto the enumeration. Unknown
// values are rejected so that only the three shelf names can ever reach
// the store.
func ParseShelf(raw string) (Shelf, bool) {
	switch Shelf(raw) {
	case ShelfCurrentlyReading, ShelfWantToRead, ShelfRead:
		return Shelf(raw), true
	default:
		return "", false
	}
}

// String returns the wire form of the shelf value.
func (s Shelf) String() string { return string(s) }
