package http

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/mrlokans/locallibrary/internal/entities"
)

// CatalogCounts are the record counts shown on the home page and reported by /health.
type CatalogCounts struct {
	Books           int64 `json:"books"`
	Copies          int64 `json:"copies"`
	AvailableCopies int64 `json:"available_copies"`
	Authors         int64 `json:"authors"`
	Genres          int64 `json:"genres"`
}

// countCatalog issues the five counts concurrently. Available copies are
// counted by status, not in total.
func countCatalog(ctx context.Context, counter CatalogCounter) (CatalogCounts, error) {
	var counts CatalogCounts

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		counts.Books, err = counter.CountBooks(ctx)
		return err
	})
	g.Go(func() (err error) {
		counts.Copies, err = counter.CountBookInstances(ctx, "")
		return err
	})
	g.Go(func() (err error) {
		counts.AvailableCopies, err = counter.CountBookInstances(ctx, entities.BookInstanceAvailable)
		return err
	})
	g.Go(func() (err error) {
		counts.Authors, err = counter.CountAuthors(ctx)
		return err
	})
	g.Go(func() (err error) {
		counts.Genres, err = counter.CountGenres(ctx)
		return err
	})
	err := g.Wait()
	return counts, err
}

type IndexController struct {
	counter CatalogCounter
}

func NewIndexController(counter CatalogCounter) *IndexController {
	return &IndexController{counter: counter}
}

// Home renders the catalog statistics. A store failure is shown on the page
// instead of failing the request.
// GET /
func (ic *IndexController) Home(c *gin.Context) {
	counts, err := countCatalog(c.Request.Context(), ic.counter)

	data := gin.H{"Counts": counts}
	if err != nil {
		log.Printf("Failed to load catalog counts: %v", err)
		data["Error"] = "could not load the catalog counts"
	}
	render(c, http.StatusOK, "index", "Local Library Home", data)
}
