package admin

import (
	"context"
	"errors"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/mrlokans/storefront/internal/config"
	"github.com/mrlokans/storefront/internal/database/homepage"
	"github.com/mrlokans/storefront/internal/entities"
)

var (
	ErrSettingsNotLoaded    = errors.New("homepage settings are not loaded")
	ErrNoBookSelected       = errors.New("no book selected")
	ErrUnknownBook          = errors.New("book is not in the catalogue")
	ErrFeaturedLimitReached = errors.New("featured books limit reached")
	ErrAlreadyFeatured      = errors.New("book is already featured")
	ErrUnknownField         = errors.New("unknown settings field")
)

// SettingsStore reads and overwrites the singleton settings row.
type SettingsStore interface {
	GetHomePageSettings(ctx context.Context) (*entities.HomePageSettings, error)
	UpdateHomePageSettings(ctx context.Context, settings *entities.HomePageSettings) error
}

// FeaturedStore manages featured book join rows.
type FeaturedStore interface {
	ListFeatured(ctx context.Context) ([]entities.FeaturedBook, error)
	InsertFeatured(ctx context.Context, row *entities.FeaturedBook) error
	DeleteFeatured(ctx context.Context, id string) error
	UpdateDisplayOrder(ctx context.Context, id string, order int) error
}

// FeaturedBatchWriter rewrites every display order at once, all or nothing.
type FeaturedBatchWriter interface {
	ReorderFeatured(ctx context.Context, ids []string) error
}

// CatalogueStore lists the books offered by the add picker.
type CatalogueStore interface {
	ListBooks(ctx context.Context) ([]entities.Book, error)
}

// EditorOptions tune how reorders are written.
type EditorOptions struct {
	ReorderMode        config.ReorderMode
	ReorderConcurrency int
}

// SettingsEditor is the state of the homepage settings screen. Field edits
// only touch Settings in memory; Save writes the whole row. Featured list
// operations write immediately and reload the list.
type SettingsEditor struct {
	settings  SettingsStore
	featured  FeaturedStore
	catalogue CatalogueStore
	opts      EditorOptions

	Settings *entities.HomePageSettings
	Loaded   bool
	Featured []entities.FeaturedBook
	Books    []entities.Book
}

// NewSettingsEditor creates an editor over the given stores.
func NewSettingsEditor(settings SettingsStore, featured FeaturedStore, catalogue CatalogueStore, opts EditorOptions) *SettingsEditor {
	if opts.ReorderMode == "" {
		opts.ReorderMode = config.ReorderModeConcurrent
	}
	return &SettingsEditor{
		settings:  settings,
		featured:  featured,
		catalogue: catalogue,
		opts:      opts,
	}
}

// Load fetches the settings row, the ordered featured list and the catalogue.
// A missing settings row is not an error: the editor stays unloaded.
func (e *SettingsEditor) Load(ctx context.Context) error {
	settings, err := e.settings.GetHomePageSettings(ctx)
	switch {
	case errors.Is(err, homepage.ErrSettingsNotFound):
		e.Settings, e.Loaded = nil, false
	case err != nil:
		e.Settings, e.Loaded = nil, false
		return err
	default:
		e.Settings, e.Loaded = settings, true
	}

	if err := e.reloadFeatured(ctx); err != nil {
		return err
	}

	books, err := e.catalogue.ListBooks(ctx)
	if err != nil {
		return err
	}
	e.Books = books
	return nil
}

func (e *SettingsEditor) reloadFeatured(ctx context.Context) error {
	rows, err := e.featured.ListFeatured(ctx)
	if err != nil {
		return err
	}
	e.Featured = rows
	return nil
}

// SetFlag sets one of the boolean columns by name.
func (e *SettingsEditor) SetFlag(field string, value bool) error {
	if !e.Loaded {
		return ErrSettingsNotLoaded
	}
	flag, ok := flagFields(e.Settings)[field]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownField, field)
	}
	*flag = value
	return nil
}

// SetText sets one of the copy columns by name.
func (e *SettingsEditor) SetText(field, value string) error {
	if !e.Loaded {
		return ErrSettingsNotLoaded
	}
	text, ok := textFields(e.Settings)[field]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownField, field)
	}
	*text = value
	return nil
}

// SetFeaturedLimit sets the featured books limit. Save validates it.
func (e *SettingsEditor) SetFeaturedLimit(limit int) error {
	if !e.Loaded {
		return ErrSettingsNotLoaded
	}
	e.Settings.FeaturedBooksLimit = limit
	return nil
}

// Save validates and overwrites the whole settings row. Without a loaded row
// it does nothing.
func (e *SettingsEditor) Save(ctx context.Context) error {
	if !e.Loaded {
		return nil
	}
	if err := ValidateSettings(e.Settings); err != nil {
		return err
	}
	return e.settings.UpdateHomePageSettings(ctx, e.Settings)
}

// ValidateSettings checks the columns an administrator can edit.
func ValidateSettings(s *entities.HomePageSettings) error {
	limits := make([]any, len(entities.FeaturedLimitChoices))
	for i, n := range entities.FeaturedLimitChoices {
		limits[i] = n
	}

	return validation.ValidateStruct(s,
		validation.Field(&s.FeaturedBooksLimit, validation.Required, validation.In(limits...)),
		validation.Field(&s.FeaturedBooksTitleEN, validation.Length(0, 255)),
		validation.Field(&s.FeaturedBooksTitleTA, validation.Length(0, 255)),
		validation.Field(&s.PhysicalBooksTitleEN, validation.Length(0, 255)),
		validation.Field(&s.PhysicalBooksTitleTA, validation.Length(0, 255)),
		validation.Field(&s.EbooksTitleEN, validation.Length(0, 255)),
		validation.Field(&s.EbooksTitleTA, validation.Length(0, 255)),
		validation.Field(&s.AudiobooksTitleEN, validation.Length(0, 255)),
		validation.Field(&s.AudiobooksTitleTA, validation.Length(0, 255)),
		validation.Field(&s.FeaturedBooksCardTitleEN, validation.Length(0, 255)),
		validation.Field(&s.FeaturedBooksCardTitleTA, validation.Length(0, 255)),
	)
}

// Limit is the configured featured books limit, or 0 when unloaded.
func (e *SettingsEditor) Limit() int {
	if !e.Loaded {
		return 0
	}
	return e.Settings.FeaturedBooksLimit
}

// IndexOf returns the list position of a featured row, or -1.
func (e *SettingsEditor) IndexOf(id string) int {
	for i, row := range e.Featured {
		if row.ID == id {
			return i
		}
	}
	return -1
}

// AvailableBooks lists catalogue books not yet featured, for the add picker.
func (e *SettingsEditor) AvailableBooks() []entities.Book {
	featured := make(map[string]bool, len(e.Featured))
	for _, row := range e.Featured {
		featured[row.BookID] = true
	}
	var books []entities.Book
	for _, b := range e.Books {
		if !featured[b.ID] {
			books = append(books, b)
		}
	}
	return books
}

// AddFeatured appends a book to the featured list with display order equal to
// the current list length. Rejections happen before any write.
func (e *SettingsEditor) AddFeatured(ctx context.Context, bookID string) error {
	if !e.Loaded {
		return ErrSettingsNotLoaded
	}
	if bookID == "" {
		return ErrNoBookSelected
	}
	if len(e.Featured) >= e.Settings.FeaturedBooksLimit {
		return ErrFeaturedLimitReached
	}
	for _, row := range e.Featured {
		if row.BookID == bookID {
			return ErrAlreadyFeatured
		}
	}
	if !e.inCatalogue(bookID) {
		return ErrUnknownBook
	}

	row := &entities.FeaturedBook{BookID: bookID, DisplayOrder: len(e.Featured)}
	if err := e.featured.InsertFeatured(ctx, row); err != nil {
		return err
	}
	return e.reloadFeatured(ctx)
}

func (e *SettingsEditor) inCatalogue(bookID string) bool {
	for _, b := range e.Books {
		if b.ID == bookID {
			return true
		}
	}
	return false
}

// RemoveFeatured deletes a featured row by its own ID. Remaining rows keep
// their display order values.
func (e *SettingsEditor) RemoveFeatured(ctx context.Context, id string) error {
	if err := e.featured.DeleteFeatured(ctx, id); err != nil {
		return err
	}
	return e.reloadFeatured(ctx)
}

// MoveUp swaps the entry at index with its predecessor. Index 0 is a no-op.
// It reports whether anything was written.
func (e *SettingsEditor) MoveUp(ctx context.Context, index int) (bool, error) {
	if index <= 0 || index >= len(e.Featured) {
		return false, nil
	}
	return true, e.swapAndWrite(ctx, index, index-1)
}

// MoveDown swaps the entry at index with its successor. The last index is a no-op.
// It reports whether anything was written.
func (e *SettingsEditor) MoveDown(ctx context.Context, index int) (bool, error) {
	if index < 0 || index >= len(e.Featured)-1 {
		return false, nil
	}
	return true, e.swapAndWrite(ctx, index, index+1)
}

// swapAndWrite swaps two entries, writes every row's position as its display
// order and reloads. The reload runs even when writes failed so the list
// shows what the store ended up with.
func (e *SettingsEditor) swapAndWrite(ctx context.Context, i, j int) error {
	e.Featured[i], e.Featured[j] = e.Featured[j], e.Featured[i]

	ids := make([]string, len(e.Featured))
	for k, row := range e.Featured {
		ids[k] = row.ID
	}

	writeErr := e.writeOrder(ctx, ids)
	if writeErr != nil {
		log.Error().Err(writeErr).Int("rows", len(ids)).Msg("featured reorder failed")
	}

	if err := e.reloadFeatured(ctx); err != nil {
		if writeErr != nil {
			return writeErr
		}
		return err
	}
	return writeErr
}

func (e *SettingsEditor) writeOrder(ctx context.Context, ids []string) error {
	if e.opts.ReorderMode == config.ReorderModeTransactional {
		if batch, ok := e.featured.(FeaturedBatchWriter); ok {
			return batch.ReorderFeatured(ctx, ids)
		}
		log.Warn().Msg("featured store has no batch writer, using per-row updates")
	}

	// Sibling updates are not cancelled when one fails.
	var g errgroup.Group
	if e.opts.ReorderConcurrency > 0 {
		g.SetLimit(e.opts.ReorderConcurrency)
	}
	for order, id := range ids {
		g.Go(func() error {
			return e.featured.UpdateDisplayOrder(ctx, id, order)
		})
	}
	return g.Wait()
}

func flagFields(s *entities.HomePageSettings) map[string]*bool {
	return map[string]*bool{
		"show_physical_books_card": &s.ShowPhysicalBooksCard,
		"show_ebooks_card":         &s.ShowEbooksCard,
		"show_audiobooks_card":     &s.ShowAudiobooksCard,
		"show_featured_books_card": &s.ShowFeaturedBooksCard,
		"show_featured_books":      &s.ShowFeaturedBooks,
	}
}

func textFields(s *entities.HomePageSettings) map[string]*string {
	return map[string]*string{
		"featured_books_title_en":      &s.FeaturedBooksTitleEN,
		"featured_books_title_ta":      &s.FeaturedBooksTitleTA,
		"physical_books_title_en":      &s.PhysicalBooksTitleEN,
		"physical_books_title_ta":      &s.PhysicalBooksTitleTA,
		"physical_books_desc_en":       &s.PhysicalBooksDescEN,
		"physical_books_desc_ta":       &s.PhysicalBooksDescTA,
		"ebooks_title_en":              &s.EbooksTitleEN,
		"ebooks_title_ta":              &s.EbooksTitleTA,
		"ebooks_desc_en":               &s.EbooksDescEN,
		"ebooks_desc_ta":               &s.EbooksDescTA,
		"audiobooks_title_en":          &s.AudiobooksTitleEN,
		"audiobooks_title_ta":          &s.AudiobooksTitleTA,
		"audiobooks_desc_en":           &s.AudiobooksDescEN,
		"audiobooks_desc_ta":           &s.AudiobooksDescTA,
		"featured_books_card_title_en": &s.FeaturedBooksCardTitleEN,
		"featured_books_card_title_ta": &s.FeaturedBooksCardTitleTA,
		"featured_books_card_desc_en":  &s.FeaturedBooksCardDescEN,
		"featured_books_card_desc_ta":  &s.FeaturedBooksCardDescTA,
	}
}

// FlagFieldNames lists the boolean form fields in display order.
var FlagFieldNames = []string{
	"show_physical_books_card",
	"show_ebooks_card",
	"show_audiobooks_card",
	"show_featured_books_card",
	"show_featured_books",
}

// TextFieldNames lists the copy form fields.
var TextFieldNames = []string{
	"physical_books_title_en", "physical_books_title_ta", "physical_books_desc_en", "physical_books_desc_ta",
	"ebooks_title_en", "ebooks_title_ta", "ebooks_desc_en", "ebooks_desc_ta",
	"audiobooks_title_en", "audiobooks_title_ta", "audiobooks_desc_en", "audiobooks_desc_ta",
	"featured_books_card_title_en", "featured_books_card_title_ta",
	"featured_books_card_desc_en", "featured_books_card_desc_ta",
	"featured_books_title_en", "featured_books_title_ta",
}
