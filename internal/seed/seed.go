// Package seed populates a catalog with sample authors, genres, books and
// copies for local development and demos.
package seed

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mrlokans/locallibrary/internal/entities"
	"github.com/mrlokans/locallibrary/internal/validation"
)

// Store is the subset of the catalog repository the seeder writes through.
type Store interface {
	CreateAuthor(ctx context.Context, author *entities.Author) error
	CreateGenre(ctx context.Context, genre *entities.Genre) error
	CreateBook(ctx context.Context, book *entities.Book) error
	CreateBookInstance(ctx context.Context, instance *entities.BookInstance) error
}

// Summary counts the records written by Populate.
type Summary struct {
	Authors   int
	Genres    int
	Books     int
	Instances int
}

func (s Summary) String() string {
	return fmt.Sprintf("%d authors, %d genres, %d books, %d copies", s.Authors, s.Genres, s.Books, s.Instances)
}

type authorSeed struct {
	first, family string
	born, died    string
}

type bookSeed struct {
	title, summary, isbn string
	author               int   // index into sampleAuthors
	genres               []int // indexes into sampleGenres
}

type instanceSeed struct {
	book    int
	imprint string
	status  entities.BookInstanceStatus
	dueBack string
}

var sampleAuthors = []authorSeed{
	{"Patrick", "Rothfuss", "1973-06-06", ""},
	{"Ben", "Bova", "1932-11-08", ""},
	{"Isaac", "Asimov", "1920-01-02", "1992-04-06"},
	{"Bob", "Billings", "", ""},
	{"Jim", "Jones", "1971-12-16", ""},
}

var sampleGenres = []string{"Fantasy", "Science Fiction", "French Poetry"}

var sampleBooks = []bookSeed{
	{
		title:   "The Name of the Wind (The Kingkiller Chronicle, #1)",
		summary: "I have stolen princesses back from sleeping barrow kings. I burned down the town of Trebon. I have spent the night with Felurian and left with both my sanity and my life.",
		isbn:    "9781473211896",
		author:  0,
		genres:  []int{0},
	},
	{
		title:   "The Wise Man's Fear (The Kingkiller Chronicle, #2)",
		summary: "Picking up the tale of Kvothe Kingkiller once again, we follow him into exile, into political intrigue, courtship, adventure, love and magic.",
		isbn:    "9788401352836",
		author:  0,
		genres:  []int{0},
	},
	{
		title:   "The Slow Regard of Silent Things (Kingkiller Chronicle)",
		summary: "Deep below the University, there is a dark place. Few people know of it: a broken web of ancient passageways and abandoned rooms.",
		isbn:    "9780756411336",
		author:  0,
		genres:  []int{0},
	},
	{
		title:   "Apes and Angels",
		summary: "Humankind headed out to the stars not for conquest, nor exploration, nor even for curiosity. Humans went to the stars in a desperate crusade to save intelligent life wherever they found it.",
		isbn:    "9780765379528",
		author:  1,
		genres:  []int{1},
	},
	{
		title:   "Death Wave",
		summary: "In Ben Bova's previous novel New Earth, Jordan Kell led the first human mission beyond the solar system.",
		isbn:    "9780765379504",
		author:  1,
		genres:  []int{1},
	},
	{
		title:   "Test Book 1",
		summary: "Summary of test book 1",
		isbn:    "ISBN111111",
		author:  4,
		genres:  []int{0, 1},
	},
	{
		title:   "Test Book 2",
		summary: "Summary of test book 2",
		isbn:    "ISBN222222",
		author:  4,
	},
}

var sampleInstances = []instanceSeed{
	{0, "London Gollancz, 2014.", entities.BookInstanceAvailable, ""},
	{1, "Gollancz, 2011.", entities.BookInstanceLoaned, "2026-11-20"},
	{2, "Gollancz, 2015.", entities.BookInstanceMaintenance, ""},
	{3, "New York Tom Doherty Associates, 2016.", entities.BookInstanceAvailable, ""},
	{3, "New York Tom Doherty Associates, 2016.", entities.BookInstanceAvailable, ""},
	{3, "New York Tom Doherty Associates, 2016.", entities.BookInstanceAvailable, ""},
	{4, "New York, NY Tom Doherty Associates, LLC, 2015.", entities.BookInstanceAvailable, ""},
	{4, "New York, NY Tom Doherty Associates, LLC, 2015.", entities.BookInstanceMaintenance, ""},
	{4, "New York, NY Tom Doherty Associates, LLC, 2015.", entities.BookInstanceLoaned, "2026-12-01"},
	{0, "Imprint XXX2", entities.BookInstanceReserved, ""},
	{1, "Imprint XXX3", entities.BookInstanceMaintenance, ""},
}

// Populate writes the sample catalog through store. Text fields are stored
// escaped, the same way the form pipeline stores them. It stops at the first
// failed write and returns what was created so far.
func Populate(ctx context.Context, store Store) (Summary, error) {
	var summary Summary

	authors := make([]entities.Author, 0, len(sampleAuthors))
	for _, s := range sampleAuthors {
		author := entities.Author{
			FirstName:   s.first,
			FamilyName:  s.family,
			DateOfBirth: parseDate(s.born),
			DateOfDeath: parseDate(s.died),
		}
		if err := store.CreateAuthor(ctx, &author); err != nil {
			return summary, fmt.Errorf("create author %s: %w", author.Name(), err)
		}
		log.Printf("Added author: %s", author.Name())
		authors = append(authors, author)
		summary.Authors++
	}

	genres := make([]entities.Genre, 0, len(sampleGenres))
	for _, name := range sampleGenres {
		genre := entities.Genre{Name: name}
		if err := store.CreateGenre(ctx, &genre); err != nil {
			return summary, fmt.Errorf("create genre %s: %w", name, err)
		}
		log.Printf("Added genre: %s", genre.Name)
		genres = append(genres, genre)
		summary.Genres++
	}

	books := make([]entities.Book, 0, len(sampleBooks))
	for _, s := range sampleBooks {
		book := entities.Book{
			Title:    validation.EscapeHTML(s.title),
			Summary:  validation.EscapeHTML(s.summary),
			ISBN:     validation.EscapeHTML(s.isbn),
			AuthorID: authors[s.author].ID,
		}
		for _, g := range s.genres {
			book.Genres = append(book.Genres, genres[g])
		}
		if err := store.CreateBook(ctx, &book); err != nil {
			return summary, fmt.Errorf("create book %q: %w", s.title, err)
		}
		log.Printf("Added book: %s (%d genres)", s.title, len(book.Genres))
		books = append(books, book)
		summary.Books++
	}

	for _, s := range sampleInstances {
		instance := entities.BookInstance{
			BookID:  books[s.book].ID,
			Imprint: validation.EscapeHTML(s.imprint),
			Status:  s.status,
			DueBack: parseDate(s.dueBack),
		}
		if err := store.CreateBookInstance(ctx, &instance); err != nil {
			return summary, fmt.Errorf("create copy of %q: %w", sampleBooks[s.book].title, err)
		}
		summary.Instances++
	}
	log.Printf("Added %d book copies", summary.Instances)

	return summary, nil
}

func parseDate(value string) *time.Time {
	if value == "" {
		return nil
	}
	t, err := time.Parse(entities.ISODateLayout, value)
	if err != nil {
		return nil
	}
	return &t
}
