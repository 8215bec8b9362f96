package model

import "strings"

// authorSeparator joins the ordered author list into the single string
// column books.authors ("Name1, Name2") and splits it back on read.
const authorSeparator = ", "

// Book represents a row of the shared catalog. Book ids are supplied by
// the catalog source, not generated here; no book belongs to any user.
//
// Fields:
//  ID          – primary key, external catalog id.
//  Title       – book title.
//  Authors     – authors joined with ", " in source order.
//  Thumbnail   – cover image URL, may be empty.
//  Description – free-text description, updated by reseeding.
type Book struct {
	ID          string // books.id
	Title       string // books.title
	Authors     string // books.authors
	Thumbnail   string // books.thumbnail
	Description string // books.description
}

// AuthorList splits the stored authors column back into the ordered
// list form used on the wire. An empty column yields an empty slice,
// not a nil one, so it serializes as [].
func (b Book) AuthorList() []string {
	if b.Authors == "" {
		return []string{}
	}
	return strings.Split(b.Authors, authorSeparator)
}

// JoinAuthors builds the authors column value from an ordered list.
func JoinAuthors(authors []string) string {
	return strings.Join(authors, authorSeparator)
}
