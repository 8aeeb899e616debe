package entities

import (
	"fmt"
	"time"
)

type BookInstanceStatus string

const (
	BookInstanceAvailable   BookInstanceStatus = "Available"
	BookInstanceMaintenance BookInstanceStatus = "Maintenance"
	BookInstanceLoaned      BookInstanceStatus = "Loaned"
	BookInstanceReserved    BookInstanceStatus = "Reserved"
)

// BookInstanceStatuses lists every status in display order.
var BookInstanceStatuses = []BookInstanceStatus{
	BookInstanceMaintenance,
	BookInstanceAvailable,
	BookInstanceLoaned,
	BookInstanceReserved,
}

// Valid reports whether s is one of the known statuses.
func (s BookInstanceStatus) Valid() bool {
	for _, status := range BookInstanceStatuses {
		if s == status {
			return true
		}
	}
	return false
}

type Author struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	FirstName   string     `gorm:"size:100;not null" json:"first_name"`
	FamilyName  string     `gorm:"index;size:100;not null" json:"family_name"`
	DateOfBirth *time.Time `json:"date_of_birth,omitempty"`
	DateOfDeath *time.Time `json:"date_of_death,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Name returns "family, first", or an empty string when either part is missing.
func (a Author) Name() string {
	if a.FirstName == "" || a.FamilyName == "" {
		return ""
	}
	return a.FamilyName + ", " + a.FirstName
}

func (a Author) DateOfBirthFormatted() string {
	return FormatLongDate(a.DateOfBirth)
}

func (a Author) DateOfDeathFormatted() string {
	return FormatLongDate(a.DateOfDeath)
}

// Lifespan renders "birth - death" with whichever dates are known.
func (a Author) Lifespan() string {
	if a.DateOfBirth == nil && a.DateOfDeath == nil {
		return ""
	}
	return a.DateOfBirthFormatted() + " - " + a.DateOfDeathFormatted()
}

func (a Author) URL() string {
	return fmt.Sprintf("/authors/%d", a.ID)
}

// Free-text fields hold escaped form input, which can be longer than what was
// typed, so they are stored as unbounded text.
type Genre struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"uniqueIndex;type:text;not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

func (g Genre) URL() string {
	return fmt.Sprintf("/genres/%d", g.ID)
}

type Book struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"index;type:text;not null" json:"title"`
	AuthorID  uint      `gorm:"index;not null" json:"author_id"`
	Author    Author    `gorm:"foreignKey:AuthorID" json:"author"`
	Summary   string    `gorm:"type:text;not null" json:"summary"`
	ISBN      string    `gorm:"type:text;not null" json:"isbn"`
	Genres    []Genre   `gorm:"many2many:book_genres;" json:"genres"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (b Book) URL() string {
	return fmt.Sprintf("/books/%d", b.ID)
}

// GenreIDs returns the identifiers of the book's genres in order.
func (b Book) GenreIDs() []uint {
	ids := make([]uint, 0, len(b.Genres))
	for _, g := range b.Genres {
		ids = append(ids, g.ID)
	}
	return ids
}

type BookInstance struct {
	ID        uint               `gorm:"primaryKey" json:"id"`
	BookID    uint               `gorm:"index;not null" json:"book_id"`
	Book      Book               `gorm:"foreignKey:BookID" json:"book"`
	Imprint   string             `gorm:"type:text;not null" json:"imprint"`
	Status    BookInstanceStatus `gorm:"index;size:20;default:'Maintenance'" json:"status"`
	DueBack   *time.Time         `json:"due_back,omitempty"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}

func (bi BookInstance) DueBackFormatted() string {
	return FormatLongDate(bi.DueBack)
}

func (bi BookInstance) URL() string {
	return fmt.Sprintf("/bookinstances/%d", bi.ID)
}

func (Author) TableName() string {
	return "authors"
}

func (Genre) TableName() string {
	return "genres"
}

func (Book) TableName() string {
	return "books"
}

func (BookInstance) TableName() string {
	return "book_instances"
}
