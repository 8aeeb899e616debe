// Package database provides the data access layer for the catalog.
//
// # Architecture
//
//	database/
//	├── database.go      # Connection setup (SQLite or PostgreSQL), migrations
//	├── catalog/         # Authors, genres, books and book copies
//	└── audit/           # Audit trail of catalog mutations
//
// # Using Sub-packages
//
//	db, err := database.NewDatabase("./locallibrary.db")
//
//	repo := catalog.NewRepository(db.DB)
//	book, err := repo.GetBook(ctx, 42)
//	if errors.Is(err, catalog.ErrNotFound) {
//		// render 404
//	}
//
// # Interface Implementations
//
//   - catalog.Repository: implements the controller stores in internal/http
//   - audit.Repository: backs audit.Service
package database
