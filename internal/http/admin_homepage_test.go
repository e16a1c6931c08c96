package http

import (
	"context"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/storefront/internal/config"
	"github.com/mrlokans/storefront/internal/entities"
	"github.com/mrlokans/storefront/internal/readonly"
)

func catalogueBooks() []entities.Book {
	return []entities.Book{
		{ID: "b1", Title: "Alpha", Author: "Ann"},
		{ID: "b2", Title: "Beta", Author: "Bob"},
		{ID: "b3", Title: "Gamma", Author: "Cat"},
		{ID: "b4", Title: "Delta", Author: "Dan"},
	}
}

// featuredRowID returns the featured row ID holding bookID.
func (e *testEnv) featuredRowID(t *testing.T, bookID string) string {
	t.Helper()
	rows, err := e.featured.ListFeatured(context.Background())
	require.NoError(t, err)
	for _, row := range rows {
		if row.BookID == bookID {
			return row.ID
		}
	}
	t.Fatalf("book %s is not featured", bookID)
	return ""
}

func (e *testEnv) addFeatured(t *testing.T, bookID string) {
	t.Helper()
	w := e.post("/admin/homepage/featured", url.Values{"book_id": {bookID}})
	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, adminHomePath, w.Header().Get("Location"))
}

func TestHomePageAdminController_RequiresAdmin(t *testing.T) {
	env := setupTestEnv(t)

	w := env.post(adminHomePath, url.Values{"show_ebooks_card": {"on"}})
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/admin/login?next=%2Fadmin%2Fhomepage", w.Header().Get("Location"))

	w = env.get("/admin")
	assert.Equal(t, http.StatusFound, w.Code)
}

func TestHomePageAdminController_SettingsPage(t *testing.T) {
	env := setupTestEnv(t)
	env.signUpAdmin(t)
	env.seedSettings(t, nil)
	env.seedBooks(t, catalogueBooks()...)

	w := env.get(adminHomePath)
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Format Cards Settings")
	assert.Contains(t, body, `value="Printed Books"`)
	assert.Contains(t, body, "Featured Books (0/6)")
	assert.Contains(t, body, "No featured books yet.")
	assert.Contains(t, body, `<option value="b1">Alpha (Ann)</option>`)
	assert.Contains(t, body, `<option value="6" selected>6</option>`)
}

func TestHomePageAdminController_SaveSettings(t *testing.T) {
	env := setupTestEnv(t)
	env.signUpAdmin(t)
	seeded := env.seedSettings(t, nil)

	w := env.post(adminHomePath, url.Values{
		"show_ebooks_card":        {"on"},
		"featured_books_limit":    {"3"},
		"physical_books_title_en": {"Paperbacks"},
		"ebooks_desc_ta":          {""},
	})
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, adminHomePath, w.Header().Get("Location"))

	saved, err := env.settings.GetHomePageSettings(context.Background())
	require.NoError(t, err)
	assert.Equal(t, seeded.ID, saved.ID)
	assert.False(t, saved.ShowPhysicalBooksCard, "unchecked boxes read as false")
	assert.True(t, saved.ShowEbooksCard)
	assert.False(t, saved.ShowAudiobooksCard)
	assert.False(t, saved.ShowFeaturedBooksCard)
	assert.False(t, saved.ShowFeaturedBooks)
	assert.Equal(t, 3, saved.FeaturedBooksLimit)
	assert.Equal(t, "Paperbacks", saved.PhysicalBooksTitleEN)
	assert.Empty(t, saved.EbooksDescTA, "empty text is stored as given")
	assert.Equal(t, seeded.AudiobooksTitleEN, saved.AudiobooksTitleEN, "absent fields are untouched")

	w = env.get(adminHomePath)
	assert.Contains(t, w.Body.String(), "Settings saved successfully!")

	w = env.get(adminHomePath)
	assert.NotContains(t, w.Body.String(), "Settings saved successfully!", "flash shows once")

	env.auditor.Wait()
	events, total, err := env.auditor.GetEvents(context.Background(), entities.AuditEventSettings, 10, 0)
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	assert.Equal(t, entities.AuditStatusSuccess, events[0].Status)
}

func TestHomePageAdminController_SaveSettingsInvalidLimit(t *testing.T) {
	env := setupTestEnv(t)
	env.signUpAdmin(t)
	env.seedSettings(t, nil)

	tests := []struct {
		name  string
		limit string
	}{
		{name: "not offered", limit: "4"},
		{name: "not a number", limit: "many"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.post(adminHomePath, url.Values{"featured_books_limit": {tt.limit}})
			require.Equal(t, http.StatusFound, w.Code)

			w = env.get(adminHomePath)
			assert.Contains(t, w.Body.String(), "Error saving settings: ")

			saved, err := env.settings.GetHomePageSettings(context.Background())
			require.NoError(t, err)
			assert.Equal(t, 6, saved.FeaturedBooksLimit)
			assert.True(t, saved.ShowPhysicalBooksCard, "nothing was written")
		})
	}
}

func TestHomePageAdminController_SaveWithoutSettingsRow(t *testing.T) {
	env := setupTestEnv(t)
	env.signUpAdmin(t)

	w := env.post(adminHomePath, url.Values{"show_ebooks_card": {"on"}})
	require.Equal(t, http.StatusFound, w.Code)

	_, err := env.settings.GetHomePageSettings(context.Background())
	assert.Error(t, err, "save never creates the row")
}

func TestHomePageAdminController_AddFeatured(t *testing.T) {
	env := setupTestEnv(t)
	env.signUpAdmin(t)
	env.seedSettings(t, func(s *entities.HomePageSettings) { s.FeaturedBooksLimit = 3 })
	env.seedBooks(t, catalogueBooks()...)

	env.addFeatured(t, "b2")
	env.addFeatured(t, "b1")
	assert.Equal(t, []string{"b2", "b1"}, env.featuredBookIDs(t))

	tests := []struct {
		name    string
		bookID  string
		message string
	}{
		{name: "nothing selected", bookID: "", message: "Please select a book to feature"},
		{name: "duplicate", bookID: "b2", message: "This book is already featured"},
		{name: "unknown book", bookID: "missing", message: "Selected book was not found"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env.addFeatured(t, tt.bookID)
			w := env.get(adminHomePath)
			assert.Contains(t, w.Body.String(), tt.message)
			assert.Equal(t, []string{"b2", "b1"}, env.featuredBookIDs(t))
		})
	}

	env.addFeatured(t, "b3")
	w := env.get(adminHomePath)
	assert.Contains(t, w.Body.String(), "Book added to featured list")
	assert.Contains(t, w.Body.String(), "Featured Books (3/3)")
	assert.NotContains(t, w.Body.String(), `action="/admin/homepage/featured" class="add-featured"`, "picker hidden at the limit")

	env.addFeatured(t, "b4")
	w = env.get(adminHomePath)
	assert.Contains(t, w.Body.String(), "You can feature at most 3 books")
	assert.Equal(t, []string{"b2", "b1", "b3"}, env.featuredBookIDs(t))

	env.auditor.Wait()
	_, total, err := env.auditor.GetEvents(context.Background(), entities.AuditEventFeatured, 20, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total, "rejected adds are not audited")
}

func TestHomePageAdminController_AddFeaturedWithoutSettingsRow(t *testing.T) {
	env := setupTestEnv(t)
	env.signUpAdmin(t)
	env.seedBooks(t, catalogueBooks()...)

	env.addFeatured(t, "b1")
	w := env.get(adminHomePath)
	assert.Contains(t, w.Body.String(), "Homepage settings are not set up yet")
	assert.Empty(t, env.featuredBookIDs(t))
}

func TestHomePageAdminController_MoveFeatured(t *testing.T) {
	env := setupTestEnv(t)
	env.signUpAdmin(t)
	env.seedSettings(t, nil)
	env.seedBooks(t, catalogueBooks()...)
	for _, id := range []string{"b1", "b2", "b3"} {
		env.addFeatured(t, id)
	}

	w := env.post("/admin/homepage/featured/"+env.featuredRowID(t, "b3")+"/up", nil)
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, []string{"b1", "b3", "b2"}, env.featuredBookIDs(t))

	w = env.post("/admin/homepage/featured/"+env.featuredRowID(t, "b1")+"/down", nil)
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, []string{"b3", "b1", "b2"}, env.featuredBookIDs(t))

	t.Run("boundary moves write nothing", func(t *testing.T) {
		env.auditor.Wait()
		_, before, err := env.auditor.GetEvents(context.Background(), entities.AuditEventFeatured, 50, 0)
		require.NoError(t, err)

		env.post("/admin/homepage/featured/"+env.featuredRowID(t, "b3")+"/up", nil)
		env.post("/admin/homepage/featured/"+env.featuredRowID(t, "b2")+"/down", nil)
		env.post("/admin/homepage/featured/unknown/up", nil)
		assert.Equal(t, []string{"b3", "b1", "b2"}, env.featuredBookIDs(t))

		env.auditor.Wait()
		_, after, err := env.auditor.GetEvents(context.Background(), entities.AuditEventFeatured, 50, 0)
		require.NoError(t, err)
		assert.Equal(t, before, after)
	})

	rows, err := env.featured.ListFeatured(context.Background())
	require.NoError(t, err)
	for i, row := range rows {
		assert.Equal(t, i, row.DisplayOrder, "positions are rewritten densely")
	}
}

func TestHomePageAdminController_MoveFeaturedTransactional(t *testing.T) {
	env := setupTestEnv(t, func(cfg *RouterConfig) {
		cfg.EditorOptions.ReorderMode = config.ReorderModeTransactional
	})
	env.signUpAdmin(t)
	env.seedSettings(t, nil)
	env.seedBooks(t, catalogueBooks()...)
	env.addFeatured(t, "b1")
	env.addFeatured(t, "b2")

	w := env.post("/admin/homepage/featured/"+env.featuredRowID(t, "b2")+"/up", nil)
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, []string{"b2", "b1"}, env.featuredBookIDs(t))
}

func TestHomePageAdminController_RemoveFeatured(t *testing.T) {
	env := setupTestEnv(t)
	env.signUpAdmin(t)
	env.seedSettings(t, nil)
	env.seedBooks(t, catalogueBooks()...)
	for _, id := range []string{"b1", "b2", "b3"} {
		env.addFeatured(t, id)
	}

	w := env.post("/admin/homepage/featured/"+env.featuredRowID(t, "b1")+"/delete", nil)
	require.Equal(t, http.StatusFound, w.Code)

	rows, err := env.featured.ListFeatured(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "b2", rows[0].BookID)
	assert.Equal(t, 1, rows[0].DisplayOrder, "remaining rows keep their order values")
	assert.Equal(t, 2, rows[1].DisplayOrder)

	w = env.get(adminHomePath)
	assert.Contains(t, w.Body.String(), "Book removed from featured list")
	assert.Contains(t, w.Body.String(), `<option value="b1">Alpha (Ann)</option>`, "removed book is available again")
}

func TestHomePageAdminController_ReadOnly(t *testing.T) {
	env := setupTestEnv(t, func(cfg *RouterConfig) {
		cfg.ReadOnly = readonly.NewMiddleware(true)
	})
	env.signUpAdmin(t)
	env.seedSettings(t, nil)
	env.seedBooks(t, catalogueBooks()...)

	w := env.post(adminHomePath, url.Values{"featured_books_limit": {"3"}})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = env.post("/admin/homepage/featured", url.Values{"book_id": {"b1"}})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Empty(t, env.featuredBookIDs(t))

	saved, err := env.settings.GetHomePageSettings(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 6, saved.FeaturedBooksLimit)

	w = env.get(adminHomePath)
	assert.Equal(t, http.StatusOK, w.Code)
}
