package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/reading-list/internal/model"
)

// ShelvedBook pairs a catalog row with the shelf the owning user chose.
type ShelvedBook struct {
	Book  model.Book
	Shelf model.Shelf
}

// ShelfRepo provides data access to the user_books pivot table. The
// unique(user_id, book_id) index guarantees at most one row per pair;
// Assign leans on it so concurrent writes for the same pair collapse
// into a single row without application-level locking.
type ShelfRepo struct{ DB *sql.DB }

func NewShelfRepo(db *sql.DB) *ShelfRepo { return &ShelfRepo{DB: db} }

// ShelfFor looks up the shelf a user assigned to a book. The boolean is
// false when no pivot row exists.
func (r *ShelfRepo) ShelfFor(ctx context.Context, userID, bookID string) (model.Shelf, bool, error) {
	var raw string
	err := r.DB.QueryRowContext(ctx,
		"SELECT shelf FROM user_books WHERE user_id=? AND book_id=? LIMIT 1",
		userID, bookID).Scan(&raw)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return model.Shelf(raw), true, nil
}

// Assign creates the pivot row for (user, book) or mutates its shelf in
// place when one already exists. The upsert keeps the write atomic at
// the store level.
func (r *ShelfRepo) Assign(ctx context.Context, userID, bookID string, shelf model.Shelf) error {
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO user_books (user_id, book_id, shelf) VALUES (?,?,?) ON DUPLICATE KEY UPDATE shelf=VALUES(shelf)",
		userID, bookID, shelf.String())
	return err
}

// Clear removes the pivot row for (user, book). Clearing a pair that
// has no row is a no-op, not an error.
func (r *ShelfRepo) Clear(ctx context.Context, userID, bookID string) error {
	_, err := r.DB.ExecContext(ctx,
		"DELETE FROM user_books WHERE user_id=? AND book_id=?", userID, bookID)
	return err
}

// ListShelved returns only the books this user has placed on a shelf
// (inner join), each with its shelf value, ordered by title then id.
func (r *ShelfRepo) ListShelved(ctx context.Context, userID string) ([]ShelvedBook, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT b.id, b.title, b.authors, b.thumbnail, b.description, ub.shelf
		 FROM books b
		 JOIN user_books ub ON ub.book_id = b.id
		 WHERE ub.user_id = ?
		 ORDER BY b.title, b.id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []ShelvedBook{}
	for rows.Next() {
		var sb ShelvedBook
		var raw string
		if err := rows.Scan(&sb.Book.ID, &sb.Book.Title, &sb.Book.Authors,
			&sb.Book.Thumbnail, &sb.Book.Description, &raw); err != nil {
			return nil, err
		}
		sb.Shelf = model.Shelf(raw)
		out = append(out, sb)
	}
	return out, rows.Err()
}
