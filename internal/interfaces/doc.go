// Package interfaces documents the core abstractions used throughout the
// application and holds compile-time checks that the concrete types satisfy
// them.
//
// # Interface Categories
//
// ## Catalog stores (internal/http/stores.go)
//
//   - AuthorStore, GenreStore, BookStore, BookInstanceStore: one per controller,
//     each the narrow slice of the catalog that controller reads and writes
//   - CatalogCounter: counts for the home page
//
// All of them are implemented by catalog.Repository.
//
// ## Cross-cutting
//
//   - AuditRecorder: records create/update/delete events (audit.Service)
//   - Flasher: one-shot messages across a redirect (sessions.Manager)
//   - seed.Store: what the sample data seeder writes through
//
// # Adding a New Catalog Entity
//
//  1. Add the entity to internal/entities and to the AutoMigrate list in
//     internal/database/database.go
//
//  2. Add repository methods in internal/database/catalog/
//
//     func (r *Repository) ListPublishers(ctx context.Context) ([]entities.Publisher, error)
//     func (r *Repository) GetPublisher(ctx context.Context, id uint) (*entities.Publisher, error)
//
//     Lookups by ID must return an error wrapping catalog.ErrNotFound for a
//     missing row.
//
//  3. Declare the store the controller needs in internal/http/stores.go and
//     write the controller with its validation.Rules
//
//  4. Register routes in router.go and add a compile-time check:
//
//     var _ http.PublisherStore = (*catalog.Repository)(nil)
//
// # Compile-Time Interface Checks
//
//	var _ SomeInterface = (*MyImplementation)(nil)
//
// See checks.go.
package interfaces
