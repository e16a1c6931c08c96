package http

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/mrlokans/storefront/internal/admin"
	"github.com/mrlokans/storefront/internal/audit"
	"github.com/mrlokans/storefront/internal/auth"
	"github.com/mrlokans/storefront/internal/entities"
)

// CardSection groups the form fields of one landing page card.
type CardSection struct {
	Label  string
	Accent string
	Flag   string
	Fields []TextField
}

// TextField is one copy input of the settings form.
type TextField struct {
	Name      string
	Label     string
	Multiline bool
}

// cardSections is the settings form layout, one block per card.
var cardSections = []CardSection{
	{Label: "Physical Books Card", Accent: "blue", Flag: "show_physical_books_card", Fields: cardFields("physical_books")},
	{Label: "E-Books Card", Accent: "green", Flag: "show_ebooks_card", Fields: cardFields("ebooks")},
	{Label: "Audiobooks Card", Accent: "orange", Flag: "show_audiobooks_card", Fields: cardFields("audiobooks")},
	{Label: "Featured Books Card", Accent: "purple", Flag: "show_featured_books_card", Fields: cardFields("featured_books_card")},
}

func cardFields(prefix string) []TextField {
	return []TextField{
		{Name: prefix + "_title_en", Label: "Title (English)"},
		{Name: prefix + "_title_ta", Label: "Title (Tamil)"},
		{Name: prefix + "_desc_en", Label: "Description (English)", Multiline: true},
		{Name: prefix + "_desc_ta", Label: "Description (Tamil)", Multiline: true},
	}
}

// HomePageAdminController serves the homepage settings editor.
type HomePageAdminController struct {
	settings  admin.SettingsStore
	featured  admin.FeaturedStore
	catalogue admin.CatalogueStore
	opts      admin.EditorOptions
	sessions  *auth.SessionManager
	auditor   *audit.Service
}

// NewHomePageAdminController creates the settings editor controller. auditor may be nil.
func NewHomePageAdminController(settings admin.SettingsStore, featured admin.FeaturedStore, catalogue admin.CatalogueStore, opts admin.EditorOptions, sessions *auth.SessionManager, auditor *audit.Service) *HomePageAdminController {
	return &HomePageAdminController{
		settings:  settings,
		featured:  featured,
		catalogue: catalogue,
		opts:      opts,
		sessions:  sessions,
		auditor:   auditor,
	}
}

// loadEditor builds a fresh editor for the request. On failure it redirects
// with a flash and returns nil.
func (hc *HomePageAdminController) loadEditor(c *gin.Context) *admin.SettingsEditor {
	editor := admin.NewSettingsEditor(hc.settings, hc.featured, hc.catalogue, hc.opts)
	if err := editor.Load(c.Request.Context()); err != nil {
		log.Error().Err(err).Msg("Error loading homepage settings")
		return nil
	}
	return editor
}

// SettingsPage renders the editor. Without a settings row it shows "Loading...".
// GET /admin/homepage
func (hc *HomePageAdminController) SettingsPage(c *gin.Context) {
	editor := hc.loadEditor(c)
	if editor == nil {
		c.String(http.StatusInternalServerError, "Error loading homepage settings")
		return
	}

	data := baseTemplateData(c, "Homepage Settings")
	data["Editor"] = editor
	data["Settings"] = editor.Settings
	data["Values"] = formValues(editor.Settings)
	data["Sections"] = cardSections
	data["LimitChoices"] = entities.FeaturedLimitChoices
	data["Limit"] = editor.Limit()
	data["Available"] = editor.AvailableBooks()
	data["AtLimit"] = editor.Loaded && len(editor.Featured) >= editor.Limit()
	data["Email"] = auth.GetEmail(c)
	data["Flash"] = popFlash(c, hc.sessions)
	c.HTML(http.StatusOK, "admin-homepage", data)
}

// SaveSettings applies the submitted form to the loaded row and overwrites it.
// Unchecked checkboxes are absent from the form and read as false.
// POST /admin/homepage
func (hc *HomePageAdminController) SaveSettings(c *gin.Context) {
	editor := hc.loadEditor(c)
	if editor == nil {
		redirectWithFlash(c, hc.sessions, auth.FlashError, "Error saving settings: could not load settings", adminHomePath)
		return
	}
	if !editor.Loaded {
		c.Redirect(http.StatusFound, adminHomePath)
		return
	}

	if err := applySettingsForm(c, editor); err != nil {
		redirectWithFlash(c, hc.sessions, auth.FlashError, "Error saving settings: "+err.Error(), adminHomePath)
		return
	}

	err := editor.Save(c.Request.Context())
	if hc.auditor != nil {
		hc.auditor.LogSettingsSave(auth.GetActorID(c), editor.Settings.ID, err)
	}
	if err != nil {
		log.Error().Err(err).Str("settings_id", editor.Settings.ID).Msg("Error saving settings")
		redirectWithFlash(c, hc.sessions, auth.FlashError, "Error saving settings: "+err.Error(), adminHomePath)
		return
	}

	redirectWithFlash(c, hc.sessions, auth.FlashSuccess, "Settings saved successfully!", adminHomePath)
}

func applySettingsForm(c *gin.Context, editor *admin.SettingsEditor) error {
	for _, name := range admin.FlagFieldNames {
		if err := editor.SetFlag(name, isChecked(c.PostForm(name))); err != nil {
			return err
		}
	}

	for _, name := range admin.TextFieldNames {
		value, ok := c.GetPostForm(name)
		if !ok {
			continue
		}
		if err := editor.SetText(name, value); err != nil {
			return err
		}
	}

	if raw, ok := c.GetPostForm("featured_books_limit"); ok {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("featured_books_limit: must be a number")
		}
		if err := editor.SetFeaturedLimit(limit); err != nil {
			return err
		}
	}
	return nil
}

func isChecked(value string) bool {
	switch value {
	case "on", "true", "1":
		return true
	}
	return false
}

// AddFeatured appends the selected book to the featured list.
// POST /admin/homepage/featured
func (hc *HomePageAdminController) AddFeatured(c *gin.Context) {
	editor := hc.loadEditor(c)
	if editor == nil {
		redirectWithFlash(c, hc.sessions, auth.FlashError, "Error adding book: could not load settings", adminHomePath)
		return
	}

	bookID := c.PostForm("book_id")
	err := editor.AddFeatured(c.Request.Context(), bookID)
	if hc.auditor != nil && !isRejection(err) {
		hc.auditor.LogFeatured(auth.GetActorID(c), "add", bookID, nil, err)
	}
	if err != nil {
		redirectWithFlash(c, hc.sessions, auth.FlashError, addFeaturedMessage(err, editor.Limit()), adminHomePath)
		return
	}

	redirectWithFlash(c, hc.sessions, auth.FlashSuccess, "Book added to featured list", adminHomePath)
}

// isRejection reports validation failures that never reached the store.
func isRejection(err error) bool {
	return errors.Is(err, admin.ErrNoBookSelected) ||
		errors.Is(err, admin.ErrFeaturedLimitReached) ||
		errors.Is(err, admin.ErrAlreadyFeatured) ||
		errors.Is(err, admin.ErrUnknownBook) ||
		errors.Is(err, admin.ErrSettingsNotLoaded)
}

func addFeaturedMessage(err error, limit int) string {
	switch {
	case errors.Is(err, admin.ErrNoBookSelected):
		return "Please select a book to feature"
	case errors.Is(err, admin.ErrFeaturedLimitReached):
		return fmt.Sprintf("You can feature at most %d books", limit)
	case errors.Is(err, admin.ErrAlreadyFeatured):
		return "This book is already featured"
	case errors.Is(err, admin.ErrUnknownBook):
		return "Selected book was not found"
	case errors.Is(err, admin.ErrSettingsNotLoaded):
		return "Homepage settings are not set up yet"
	}
	return "Error adding book: " + err.Error()
}

// RemoveFeatured deletes a featured row. Remaining rows keep their order values.
// POST /admin/homepage/featured/:id/delete
func (hc *HomePageAdminController) RemoveFeatured(c *gin.Context) {
	editor := hc.loadEditor(c)
	if editor == nil {
		redirectWithFlash(c, hc.sessions, auth.FlashError, "Error removing book: could not load settings", adminHomePath)
		return
	}

	id := c.Param("id")
	err := editor.RemoveFeatured(c.Request.Context(), id)
	if hc.auditor != nil {
		hc.auditor.LogFeatured(auth.GetActorID(c), "remove", id, nil, err)
	}
	if err != nil {
		redirectWithFlash(c, hc.sessions, auth.FlashError, "Error removing book: "+err.Error(), adminHomePath)
		return
	}

	redirectWithFlash(c, hc.sessions, auth.FlashSuccess, "Book removed from featured list", adminHomePath)
}

// MoveFeaturedUp swaps a featured row with its predecessor.
// POST /admin/homepage/featured/:id/up
func (hc *HomePageAdminController) MoveFeaturedUp(c *gin.Context) {
	hc.move(c, "move_up", func(editor *admin.SettingsEditor, index int) (bool, error) {
		return editor.MoveUp(c.Request.Context(), index)
	})
}

// MoveFeaturedDown swaps a featured row with its successor.
// POST /admin/homepage/featured/:id/down
func (hc *HomePageAdminController) MoveFeaturedDown(c *gin.Context) {
	hc.move(c, "move_down", func(editor *admin.SettingsEditor, index int) (bool, error) {
		return editor.MoveDown(c.Request.Context(), index)
	})
}

// move resolves the row's current index; boundary moves and unknown rows write nothing.
func (hc *HomePageAdminController) move(c *gin.Context, action string, apply func(*admin.SettingsEditor, int) (bool, error)) {
	editor := hc.loadEditor(c)
	if editor == nil {
		redirectWithFlash(c, hc.sessions, auth.FlashError, "Error reordering books: could not load settings", adminHomePath)
		return
	}

	id := c.Param("id")
	index := editor.IndexOf(id)
	wrote, err := apply(editor, index)
	if !wrote {
		c.Redirect(http.StatusFound, adminHomePath)
		return
	}

	if hc.auditor != nil {
		hc.auditor.LogFeatured(auth.GetActorID(c), action, id, map[string]any{"from": index}, err)
	}
	if err != nil {
		redirectWithFlash(c, hc.sessions, auth.FlashError, "Error reordering books: "+err.Error(), adminHomePath)
		return
	}

	c.Redirect(http.StatusFound, adminHomePath)
}

// formValues exposes the editable columns by form field name for the template.
func formValues(s *entities.HomePageSettings) map[string]any {
	if s == nil {
		return nil
	}
	return map[string]any{
		"show_physical_books_card":     s.ShowPhysicalBooksCard,
		"show_ebooks_card":             s.ShowEbooksCard,
		"show_audiobooks_card":         s.ShowAudiobooksCard,
		"show_featured_books_card":     s.ShowFeaturedBooksCard,
		"show_featured_books":          s.ShowFeaturedBooks,
		"featured_books_limit":         s.FeaturedBooksLimit,
		"featured_books_title_en":      s.FeaturedBooksTitleEN,
		"featured_books_title_ta":      s.FeaturedBooksTitleTA,
		"physical_books_title_en":      s.PhysicalBooksTitleEN,
		"physical_books_title_ta":      s.PhysicalBooksTitleTA,
		"physical_books_desc_en":       s.PhysicalBooksDescEN,
		"physical_books_desc_ta":       s.PhysicalBooksDescTA,
		"ebooks_title_en":              s.EbooksTitleEN,
		"ebooks_title_ta":              s.EbooksTitleTA,
		"ebooks_desc_en":               s.EbooksDescEN,
		"ebooks_desc_ta":               s.EbooksDescTA,
		"audiobooks_title_en":          s.AudiobooksTitleEN,
		"audiobooks_title_ta":          s.AudiobooksTitleTA,
		"audiobooks_desc_en":           s.AudiobooksDescEN,
		"audiobooks_desc_ta":           s.AudiobooksDescTA,
		"featured_books_card_title_en": s.FeaturedBooksCardTitleEN,
		"featured_books_card_title_ta": s.FeaturedBooksCardTitleTA,
		"featured_books_card_desc_en":  s.FeaturedBooksCardDescEN,
		"featured_books_card_desc_ta":  s.FeaturedBooksCardDescTA,
	}
}
