package admin

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/mrlokans/storefront/internal/database/homepage"
	"github.com/mrlokans/storefront/internal/entities"
)

type fakeAdminStore struct {
	count     int64
	countErr  error
	insertErr error
	inserted  []entities.AdminUser
}

func (f *fakeAdminStore) CountAdmins(ctx context.Context) (int64, error) {
	return f.count, f.countErr
}

func (f *fakeAdminStore) InsertAdmin(ctx context.Context, admin *entities.AdminUser) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.inserted = append(f.inserted, *admin)
	f.count++
	return nil
}

type fakeIdentityProvider struct {
	err     error
	created []entities.Identity
}

func (f *fakeIdentityProvider) SignUp(ctx context.Context, email, password string) (*entities.Identity, error) {
	if f.err != nil {
		return nil, f.err
	}
	identity := entities.Identity{ID: fmt.Sprintf("identity-%d", len(f.created)+1), Email: email}
	f.created = append(f.created, identity)
	return &identity, nil
}

type loginRecorder struct {
	err   error
	calls []string
}

func (l *loginRecorder) fn(ctx context.Context, email, password string) error {
	l.calls = append(l.calls, email+"/"+password)
	return l.err
}

type fakeSettingsStore struct {
	settings  *entities.HomePageSettings
	getErr    error
	updateErr error
	updates   []entities.HomePageSettings
}

func (f *fakeSettingsStore) GetHomePageSettings(ctx context.Context) (*entities.HomePageSettings, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if f.settings == nil {
		return nil, homepage.ErrSettingsNotFound
	}
	copied := *f.settings
	return &copied, nil
}

func (f *fakeSettingsStore) UpdateHomePageSettings(ctx context.Context, s *entities.HomePageSettings) error {
	f.updates = append(f.updates, *s)
	if f.updateErr != nil {
		return f.updateErr
	}
	copied := *s
	f.settings = &copied
	return nil
}

// fakeFeaturedStore keeps featured rows in memory and counts every write.
type fakeFeaturedStore struct {
	mu        sync.Mutex
	rows      []entities.FeaturedBook
	books     map[string]entities.Book
	writes    int
	nextID    int
	failOrder map[string]bool // row IDs whose display order update fails
	insertErr error
}

func newFakeFeaturedStore(books ...entities.Book) *fakeFeaturedStore {
	f := &fakeFeaturedStore{books: map[string]entities.Book{}, failOrder: map[string]bool{}}
	for _, b := range books {
		f.books[b.ID] = b
	}
	return f
}

func (f *fakeFeaturedStore) ListFeatured(ctx context.Context) ([]entities.FeaturedBook, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var rows []entities.FeaturedBook
	for _, r := range f.rows {
		book, ok := f.books[r.BookID]
		if !ok {
			continue
		}
		r.Book = &book
		rows = append(rows, r)
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].DisplayOrder < rows[j].DisplayOrder })
	return rows, nil
}

func (f *fakeFeaturedStore) InsertFeatured(ctx context.Context, row *entities.FeaturedBook) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.writes++
	if f.insertErr != nil {
		return f.insertErr
	}
	f.nextID++
	row.ID = fmt.Sprintf("row-%d", f.nextID)
	f.rows = append(f.rows, *row)
	return nil
}

func (f *fakeFeaturedStore) DeleteFeatured(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.writes++
	for i, r := range f.rows {
		if r.ID == id {
			f.rows = append(f.rows[:i], f.rows[i+1:]...)
			break
		}
	}
	return nil
}

func (f *fakeFeaturedStore) UpdateDisplayOrder(ctx context.Context, id string, order int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.writes++
	if f.failOrder[id] {
		return errors.New("update failed for " + id)
	}
	for i := range f.rows {
		if f.rows[i].ID == id {
			f.rows[i].DisplayOrder = order
		}
	}
	return nil
}

func (f *fakeFeaturedStore) seed(bookIDs ...string) {
	for i, id := range bookIDs {
		f.nextID++
		f.rows = append(f.rows, entities.FeaturedBook{
			ID:           fmt.Sprintf("row-%d", f.nextID),
			BookID:       id,
			DisplayOrder: i,
		})
	}
}

func (f *fakeFeaturedStore) writeCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.writes
}

// fakeBatchFeaturedStore adds all-or-nothing reorders.
type fakeBatchFeaturedStore struct {
	*fakeFeaturedStore
	batches int
}

func (f *fakeBatchFeaturedStore) ReorderFeatured(ctx context.Context, ids []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.batches++
	for _, id := range ids {
		if f.failOrder[id] {
			return errors.New("batch failed at " + id)
		}
	}
	for order, id := range ids {
		for i := range f.rows {
			if f.rows[i].ID == id {
				f.rows[i].DisplayOrder = order
			}
		}
	}
	return nil
}

type fakeCatalogue struct {
	books []entities.Book
	err   error
}

func (f *fakeCatalogue) ListBooks(ctx context.Context) ([]entities.Book, error) {
	return f.books, f.err
}

func testBooks(n int) []entities.Book {
	books := make([]entities.Book, n)
	for i := range books {
		books[i] = entities.Book{ID: fmt.Sprintf("book-%d", i+1), Title: fmt.Sprintf("Book %d", i+1)}
	}
	return books
}
