package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/reading-list/internal/config"
	"github.com/iliyamo/reading-list/internal/middleware"
	"github.com/iliyamo/reading-list/internal/model"
	"github.com/iliyamo/reading-list/internal/queue"
	"github.com/iliyamo/reading-list/internal/repository"
)

const defaultMaxResults = 20

// BookHandler bundles dependencies for the book endpoints. Every
// endpoint runs behind JWTAuth, so handlers read the requesting user
// from the echo context and annotate each book with that user's shelf.
// Publish and Redis may be nil; shelf events and cache invalidation are
// then skipped.
type BookHandler struct {
	Cfg     config.Config
	Books   *repository.BookRepo
	Shelves *repository.ShelfRepo
	Redis   *redis.Client
	Cache   config.CacheConfig
	Publish func(context.Context, queue.ShelfUpdatedEvent) error
}

func NewBookHandler(cfg config.Config, b *repository.BookRepo, s *repository.ShelfRepo,
	rdb *redis.Client, cache config.CacheConfig,
	publish func(context.Context, queue.ShelfUpdatedEvent) error) *BookHandler {
	return &BookHandler{Cfg: cfg, Books: b, Shelves: s, Redis: rdb, Cache: cache, Publish: publish}
}

// ----- DTOs -----

type imageLinks struct {
	Thumbnail string `json:"thumbnail"`
}

type bookResp struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Authors     []string    `json:"authors"`
	Shelf       *string     `json:"shelf"`
	ImageLinks  *imageLinks `json:"imageLinks"`
	Description string      `json:"description"`
}

type shelfUpdateReq struct {
	Shelf *string `json:"shelf"`
}

type searchReq struct {
	Query      string `json:"query"`
	MaxResults int    `json:"maxResults"`
}

func toBookResp(b model.Book, shelf *model.Shelf) bookResp {
	resp := bookResp{
		ID:          b.ID,
		Title:       b.Title,
		Authors:     b.AuthorList(),
		Description: b.Description,
	}
	if b.Thumbnail != "" {
		resp.ImageLinks = &imageLinks{Thumbnail: b.Thumbnail}
	}
	if shelf != nil {
		s := shelf.String()
		resp.Shelf = &s
	}
	return resp
}

// annotate resolves the requesting user's shelf for each book.
func (h *BookHandler) annotate(ctx context.Context, userID string, books []model.Book) ([]bookResp, error) {
	out := make([]bookResp, 0, len(books))
	for _, b := range books {
		shelf, ok, err := h.Shelves.ShelfFor(ctx, userID, b.ID)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, toBookResp(b, &shelf))
		} else {
			out = append(out, toBookResp(b, nil))
		}
	}
	return out, nil
}

// List: every catalog row with this user's shelf annotation.
func (h *BookHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	books, err := h.Books.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	out, err := h.annotate(ctx, middleware.UserID(c), books)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, out)
}

// Get: one book with this user's shelf annotation.
func (h *BookHandler) Get(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	b, err := h.Books.GetByID(ctx, c.Param("id"))
	if err != nil {
		if err == repository.ErrBookNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "book not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	uid := middleware.UserID(c)
	shelf, ok, err := h.Shelves.ShelfFor(ctx, uid, b.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if ok {
		return c.JSON(http.StatusOK, toBookResp(b, &shelf))
	}
	return c.JSON(http.StatusOK, toBookResp(b, nil))
}

// Search handles both GET (query params) and POST (JSON body). Matching
// is a case-insensitive substring over title or authors; result count
// is capped at maxResults (default 20).
func (h *BookHandler) Search(c echo.Context) error {
	var query string
	max := defaultMaxResults

	if c.Request().Method == http.MethodPost {
		var req searchReq
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
		}
		query = req.Query
		if req.MaxResults > 0 {
			max = req.MaxResults
		}
	} else {
		query = c.QueryParam("query")
		if raw := c.QueryParam("maxResults"); raw != "" {
			if n, err := strconv.Atoi(raw); err == nil && n > 0 {
				max = n
			}
		}
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	books, err := h.Books.Search(ctx, query, max)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	out, err := h.annotate(ctx, middleware.UserID(c), books)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, out)
}

// Shelved: only the books this user assigned a shelf (inner join).
func (h *BookHandler) Shelved(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	rows, err := h.Shelves.ListShelved(ctx, middleware.UserID(c))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	out := make([]bookResp, 0, len(rows))
	for _, row := range rows {
		shelf := row.Shelf
		out = append(out, toBookResp(row.Book, &shelf))
	}
	return c.JSON(http.StatusOK, out)
}

// MoveShelf: PUT /books/:id with {"shelf": "..."|null}. A null or empty
// value clears the assignment; one of the three shelf names creates or
// updates the pivot row. Anything else is rejected before any write.
// Both paths 404 on an unknown book id, so clearing a shelf for a book
// that was never in the catalog fails the same way as setting one.
func (h *BookHandler) MoveShelf(c echo.Context) error {
	var req shelfUpdateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	clearing := req.Shelf == nil || *req.Shelf == "" || *req.Shelf == "null"
	var shelf model.Shelf
	if !clearing {
		var ok bool
		shelf, ok = model.ParseShelf(*req.Shelf)
		if !ok {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid shelf value"})
		}
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	b, err := h.Books.GetByID(ctx, c.Param("id"))
	if err != nil {
		if err == repository.ErrBookNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "book not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	uid := middleware.UserID(c)
	if clearing {
		if err := h.Shelves.Clear(ctx, uid, b.ID); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "clear shelf failed"})
		}
		h.afterShelfWrite(uid, b, "")
		return c.JSON(http.StatusOK, toBookResp(b, nil))
	}

	if err := h.Shelves.Assign(ctx, uid, b.ID, shelf); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "assign shelf failed"})
	}
	h.afterShelfWrite(uid, b, shelf.String())
	return c.JSON(http.StatusOK, toBookResp(b, &shelf))
}

// afterShelfWrite invalidates the user's cached book responses and
// publishes a shelf.updated event. Both are best-effort; the write
// already succeeded and the response is not held back for them.
func (h *BookHandler) afterShelfWrite(userID string, b model.Book, shelf string) {
	middleware.BumpUserCache(context.Background(), h.Redis, h.Cache.Prefix, userID)
	if h.Publish == nil {
		return
	}
	ev := queue.ShelfUpdatedEvent{
		UserID:     userID,
		BookID:     b.ID,
		Title:      b.Title,
		Shelf:      shelf,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = h.Publish(ctx, ev)
	}()
}
