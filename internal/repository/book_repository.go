package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/iliyamo/reading-list/internal/model"
)

// BookRepo provides read access to the books catalog plus the two write
// operations the seeder needs. Books are never created or deleted
// through the API; list and search results are ordered by title then id
// so output is deterministic for a fixed dataset.
type BookRepo struct{ DB *sql.DB }

func NewBookRepo(db *sql.DB) *BookRepo { return &BookRepo{DB: db} }

const bookColumns = "id,title,authors,thumbnail,description"

func scanBook(row *sql.Row) (model.Book, error) {
	var b model.Book
	err := row.Scan(&b.ID, &b.Title, &b.Authors, &b.Thumbnail, &b.Description)
	return b, err
}

// List returns the whole catalog.
func (r *BookRepo) List(ctx context.Context) ([]model.Book, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+bookColumns+" FROM books ORDER BY title, id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectBooks(rows)
}

// GetByID fetches one book; a miss is reported as ErrBookNotFound.
func (r *BookRepo) GetByID(ctx context.Context, id string) (model.Book, error) {
	b, err := scanBook(r.DB.QueryRowContext(ctx,
		"SELECT "+bookColumns+" FROM books WHERE id=? LIMIT 1", id))
	if err == sql.ErrNoRows {
		return model.Book{}, ErrBookNotFound
	}
	return b, err
}

// Search matches the query case-insensitively as a substring of the
// title or the joined authors column, capped at max rows.
func (r *BookRepo) Search(ctx context.Context, query string, max int) ([]model.Book, error) {
	like := "%" + strings.ToLower(query) + "%"
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+bookColumns+" FROM books WHERE LOWER(title) LIKE ? OR LOWER(authors) LIKE ? ORDER BY title, id LIMIT ?",
		like, like, max)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectBooks(rows)
}

// Insert adds a catalog row. Used by the seeder only.
func (r *BookRepo) Insert(ctx context.Context, b model.Book) error {
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO books (id, title, authors, thumbnail, description) VALUES (?,?,?,?,?)",
		b.ID, b.Title, b.Authors, b.Thumbnail, b.Description)
	return err
}

// UpdateDescription refreshes the description of an existing row. Used
// by the seeder when the source description changed.
func (r *BookRepo) UpdateDescription(ctx context.Context, id, description string) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE books SET description=? WHERE id=?", description, id)
	return err
}

func collectBooks(rows *sql.Rows) ([]model.Book, error) {
	out := []model.Book{}
	for rows.Next() {
		var b model.Book
		if err := rows.Scan(&b.ID, &b.Title, &b.Authors, &b.Thumbnail, &b.Description); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}
