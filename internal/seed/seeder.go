// Package seed imports the starter catalog from a JSON file on startup.
package seed

import (
	"context"
	"encoding/json"
	"log"
	"os"

	"github.com/iliyamo/reading-list/internal/model"
	"github.com/iliyamo/reading-list/internal/repository"
)

// seedFile mirrors the layout of the catalog source:
// {"books":[{"id","title","authors":[...],"imageLinks":{"thumbnail"},"description"}]}
type seedFile struct {
	Books []seedBook `json:"books"`
}

type seedBook struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Authors     []string `json:"authors"`
	ImageLinks  struct {
		Thumbnail string `json:"thumbnail"`
	} `json:"imageLinks"`
	Description string `json:"description"`
}

// Books seeds the catalog from the JSON file at path. Rows already
// present are left alone except that a changed description is updated;
// entries without an id and duplicate ids in the input (last wins) are
// tolerated. The routine is idempotent, safe to run on every start, and
// never touches user_books. A missing file is logged and skipped rather
// than treated as fatal so the server can still boot.
func Books(ctx context.Context, books *repository.BookRepo, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("seed: %s not found, skipping", path)
			return nil
		}
		return err
	}

	var sf seedFile
	if err := json.Unmarshal(raw, &sf); err != nil {
		return err
	}

	// Dedupe by id, last one wins.
	unique := map[string]seedBook{}
	order := []string{}
	for _, b := range sf.Books {
		if b.ID == "" {
			continue
		}
		if _, seen := unique[b.ID]; !seen {
			order = append(order, b.ID)
		}
		unique[b.ID] = b
	}

	inserted, updated := 0, 0
	for _, id := range order {
		sb := unique[id]
		existing, err := books.GetByID(ctx, sb.ID)
		if err == repository.ErrBookNotFound {
			if err := books.Insert(ctx, model.Book{
				ID:          sb.ID,
				Title:       sb.Title,
				Authors:     model.JoinAuthors(sb.Authors),
				Thumbnail:   sb.ImageLinks.Thumbnail,
				Description: sb.Description,
			}); err != nil {
				return err
			}
			inserted++
			continue
		}
		if err != nil {
			return err
		}
		if existing.Description != sb.Description {
			if err := books.UpdateDescription(ctx, sb.ID, sb.Description); err != nil {
				return err
			}
			updated++
		}
	}

	log.Printf("seed: %d new books, %d descriptions updated", inserted, updated)
	return nil
}
