package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mrlokans/storefront/internal/config"
	"github.com/mrlokans/storefront/internal/covers"
	"github.com/mrlokans/storefront/internal/database/catalogue"
	"github.com/mrlokans/storefront/internal/entities"
	"github.com/mrlokans/storefront/internal/entrypoint"
)

// BooksFile is the YAML document read by import-books.
//
//	books:
//	  - id: 0d6c...
//	    title: Ponniyin Selvan
//	    author: Kalki
//	    cover_image_url: https://example.com/cover.jpg
type BooksFile struct {
	Books []entities.Book `yaml:"books"`
}

var ErrNoBooks = errors.New("file contains no books")

// ParseBooks decodes and validates a books document.
func ParseBooks(r io.Reader) ([]entities.Book, error) {
	var file BooksFile
	if err := yaml.NewDecoder(r).Decode(&file); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrNoBooks
		}
		return nil, fmt.Errorf("decode books: %w", err)
	}
	if len(file.Books) == 0 {
		return nil, ErrNoBooks
	}

	seen := make(map[string]bool, len(file.Books))
	for i := range file.Books {
		b := &file.Books[i]
		err := validation.ValidateStruct(b,
			validation.Field(&b.ID, validation.Required, validation.Length(1, 36)),
			validation.Field(&b.Title, validation.Required, validation.Length(1, 512)),
			validation.Field(&b.Author, validation.Length(0, 256)),
			validation.Field(&b.CoverImageURL, is.URL),
		)
		if err != nil {
			return nil, fmt.Errorf("book %d: %w", i+1, err)
		}
		if seen[b.ID] {
			return nil, fmt.Errorf("book %d: duplicate id %q", i+1, b.ID)
		}
		seen[b.ID] = true
	}

	return file.Books, nil
}

// BookGetter loads the stored copy of a book.
type BookGetter interface {
	GetBook(ctx context.Context, id string) (*entities.Book, error)
}

// CoverInvalidator drops every cached cover of a book.
type CoverInvalidator interface {
	InvalidateCover(bookID string) error
}

// InvalidateChangedCovers removes cached covers of stored books whose
// cover URL differs in the incoming set. New books have nothing cached.
func InvalidateChangedCovers(ctx context.Context, stored BookGetter, cache CoverInvalidator, books []entities.Book) (int, error) {
	invalidated := 0
	for _, b := range books {
		existing, err := stored.GetBook(ctx, b.ID)
		if errors.Is(err, catalogue.ErrBookNotFound) {
			continue
		}
		if err != nil {
			return invalidated, fmt.Errorf("load book %s: %w", b.ID, err)
		}
		if existing.CoverImageURL == b.CoverImageURL {
			continue
		}
		if err := cache.InvalidateCover(b.ID); err != nil {
			return invalidated, fmt.Errorf("invalidate cover of %s: %w", b.ID, err)
		}
		invalidated++
	}
	return invalidated, nil
}

// openCoverCache returns the cover cache when its directory already exists.
func openCoverCache(dir string) *covers.Cache {
	if _, err := os.Stat(dir); err != nil {
		return nil
	}
	cache, err := covers.NewCache(dir)
	if err != nil {
		log.Warn().Err(err).Str("dir", dir).Msg("Failed to open cover cache")
		return nil
	}
	return cache
}

func newImportBooksCmd() *cobra.Command {
	var (
		path   string
		dryRun bool
	)

	cmd := &cobra.Command{
		Use:   "import-books",
		Short: "Upsert catalogue books from a YAML file",
		Long: `Reads a YAML file with a top-level "books" list and inserts or updates
each book by id. Books missing from the file are left alone.`,
		Example: `  storefront import-books --file books.yaml
  storefront import-books --file books.yaml --dry-run`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(path)
			if err != nil {
				return fmt.Errorf("open books file: %w", err)
			}
			defer f.Close()

			books, err := ParseBooks(f)
			if err != nil {
				return err
			}

			if dryRun {
				for _, b := range books {
					fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", b.ID, b.Title, b.Author)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Would import %d books\n", len(books))
				return nil
			}

			app, err := entrypoint.NewApp(config.NewConfig())
			if err != nil {
				return err
			}
			defer app.Close()

			if cache := openCoverCache(app.Config.Covers.Dir); cache != nil {
				n, err := InvalidateChangedCovers(cmd.Context(), app.Catalogue, cache, books)
				if err != nil {
					return err
				}
				if n > 0 {
					log.Info().Int("books", n).Msg("Dropped cached covers with changed URLs")
				}
			}

			if err := app.Catalogue.UpsertBooks(cmd.Context(), books); err != nil {
				return fmt.Errorf("import books: %w", err)
			}

			log.Info().Int("books", len(books)).Str("file", path).Msg("Imported books")
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d books\n", len(books))
			return nil
		},
	}

	cmd.Flags().StringVar(&path, "file", "", "Path to the books YAML file (required)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Validate and list the books without writing")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}
