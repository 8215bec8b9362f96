package seed

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/reading-list/internal/repository"
)

func newSeedFixture(t *testing.T) (*repository.BookRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return repository.NewBookRepo(db), mock
}

func writeSeedFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "books.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func catalogRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "title", "authors", "thumbnail", "description"})
}

func TestBooksInsertsMissing(t *testing.T) {
	repo, mock := newSeedFixture(t)
	path := writeSeedFile(t, `{"books":[
		{"id":"b-1","title":"Coraline","authors":["Neil Gaiman"],
		 "imageLinks":{"thumbnail":"http://img/1.jpg"},"description":"a door"}]}`)

	mock.ExpectQuery("SELECT id,title,authors,thumbnail,description FROM books WHERE id=").
		WithArgs("b-1").
		WillReturnRows(catalogRows())
	mock.ExpectExec("INSERT INTO books").
		WithArgs("b-1", "Coraline", "Neil Gaiman", "http://img/1.jpg", "a door").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, Books(context.Background(), repo, path))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBooksUpdatesChangedDescription(t *testing.T) {
	repo, mock := newSeedFixture(t)
	path := writeSeedFile(t, `{"books":[
		{"id":"b-1","title":"Coraline","authors":["Neil Gaiman"],"description":"new text"}]}`)

	mock.ExpectQuery("SELECT id,title,authors,thumbnail,description FROM books WHERE id=").
		WithArgs("b-1").
		WillReturnRows(catalogRows().AddRow("b-1", "Coraline", "Neil Gaiman", "", "old text"))
	mock.ExpectExec("UPDATE books SET description=").
		WithArgs("new text", "b-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, Books(context.Background(), repo, path))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBooksIsIdempotentWhenUnchanged(t *testing.T) {
	repo, mock := newSeedFixture(t)
	path := writeSeedFile(t, `{"books":[
		{"id":"b-1","title":"Coraline","authors":["Neil Gaiman"],"description":"same"}]}`)

	mock.ExpectQuery("SELECT id,title,authors,thumbnail,description FROM books WHERE id=").
		WithArgs("b-1").
		WillReturnRows(catalogRows().AddRow("b-1", "Coraline", "Neil Gaiman", "", "same"))

	require.NoError(t, Books(context.Background(), repo, path))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBooksDedupesInputLastWins(t *testing.T) {
	repo, mock := newSeedFixture(t)
	path := writeSeedFile(t, `{"books":[
		{"id":"b-1","title":"First","description":"one"},
		{"id":"b-1","title":"Second","description":"two"},
		{"title":"no id, skipped"}]}`)

	mock.ExpectQuery("SELECT id,title,authors,thumbnail,description FROM books WHERE id=").
		WithArgs("b-1").
		WillReturnRows(catalogRows())
	mock.ExpectExec("INSERT INTO books").
		WithArgs("b-1", "Second", "", "", "two").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, Books(context.Background(), repo, path))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBooksMissingFileIsSkipped(t *testing.T) {
	repo, mock := newSeedFixture(t)

	require.NoError(t, Books(context.Background(), repo, filepath.Join(t.TempDir(), "absent.json")))
	assert.NoError(t, mock.ExpectationsWereMet())
}
