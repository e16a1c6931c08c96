package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Format is one of the storefront's promotional card kinds.
type Format string

const (
	FormatPhysical   Format = "physical"
	FormatEbooks     Format = "ebooks"
	FormatAudiobooks Format = "audiobooks"
	FormatFeatured   Format = "featured"
)

// Formats lists the card kinds in the order the landing page shows them.
var Formats = []Format{FormatPhysical, FormatEbooks, FormatAudiobooks, FormatFeatured}

// Allowed values for HomePageSettings.FeaturedBooksLimit.
var FeaturedLimitChoices = []int{3, 5, 6}

// HomePageSettings is the singleton row controlling the storefront homepage.
type HomePageSettings struct {
	ID string `gorm:"primaryKey;size:36" json:"id"`

	ShowPhysicalBooksCard bool `gorm:"column:show_physical_books_card;not null" json:"show_physical_books_card"`
	ShowEbooksCard        bool `gorm:"column:show_ebooks_card;not null" json:"show_ebooks_card"`
	ShowAudiobooksCard    bool `gorm:"column:show_audiobooks_card;not null" json:"show_audiobooks_card"`
	ShowFeaturedBooksCard bool `gorm:"column:show_featured_books_card;not null" json:"show_featured_books_card"`
	ShowFeaturedBooks     bool `gorm:"column:show_featured_books;not null" json:"show_featured_books"`

	FeaturedBooksLimit   int    `gorm:"column:featured_books_limit;not null" json:"featured_books_limit"`
	FeaturedBooksTitleEN string `gorm:"column:featured_books_title_en;size:255" json:"featured_books_title_en"`
	FeaturedBooksTitleTA string `gorm:"column:featured_books_title_ta;size:255" json:"featured_books_title_ta"`

	PhysicalBooksTitleEN string `gorm:"column:physical_books_title_en;size:255" json:"physical_books_title_en"`
	PhysicalBooksTitleTA string `gorm:"column:physical_books_title_ta;size:255" json:"physical_books_title_ta"`
	PhysicalBooksDescEN  string `gorm:"column:physical_books_desc_en;type:text" json:"physical_books_desc_en"`
	PhysicalBooksDescTA  string `gorm:"column:physical_books_desc_ta;type:text" json:"physical_books_desc_ta"`

	EbooksTitleEN string `gorm:"column:ebooks_title_en;size:255" json:"ebooks_title_en"`
	EbooksTitleTA string `gorm:"column:ebooks_title_ta;size:255" json:"ebooks_title_ta"`
	EbooksDescEN  string `gorm:"column:ebooks_desc_en;type:text" json:"ebooks_desc_en"`
	EbooksDescTA  string `gorm:"column:ebooks_desc_ta;type:text" json:"ebooks_desc_ta"`

	AudiobooksTitleEN string `gorm:"column:audiobooks_title_en;size:255" json:"audiobooks_title_en"`
	AudiobooksTitleTA string `gorm:"column:audiobooks_title_ta;size:255" json:"audiobooks_title_ta"`
	AudiobooksDescEN  string `gorm:"column:audiobooks_desc_en;type:text" json:"audiobooks_desc_en"`
	AudiobooksDescTA  string `gorm:"column:audiobooks_desc_ta;type:text" json:"audiobooks_desc_ta"`

	FeaturedBooksCardTitleEN string `gorm:"column:featured_books_card_title_en;size:255" json:"featured_books_card_title_en"`
	FeaturedBooksCardTitleTA string `gorm:"column:featured_books_card_title_ta;size:255" json:"featured_books_card_title_ta"`
	FeaturedBooksCardDescEN  string `gorm:"column:featured_books_card_desc_en;type:text" json:"featured_books_card_desc_en"`
	FeaturedBooksCardDescTA  string `gorm:"column:featured_books_card_desc_ta;type:text" json:"featured_books_card_desc_ta"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (HomePageSettings) TableName() string {
	return "homepage_settings"
}

func (s *HomePageSettings) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

// ShowCard reports the visibility flag for a card.
func (s *HomePageSettings) ShowCard(format Format) bool {
	switch format {
	case FormatPhysical:
		return s.ShowPhysicalBooksCard
	case FormatEbooks:
		return s.ShowEbooksCard
	case FormatAudiobooks:
		return s.ShowAudiobooksCard
	case FormatFeatured:
		return s.ShowFeaturedBooksCard
	}
	return false
}

// CardTitle returns the bilingual title of a card.
func (s *HomePageSettings) CardTitle(format Format) Localized {
	switch format {
	case FormatPhysical:
		return Localized{EN: s.PhysicalBooksTitleEN, TA: s.PhysicalBooksTitleTA}
	case FormatEbooks:
		return Localized{EN: s.EbooksTitleEN, TA: s.EbooksTitleTA}
	case FormatAudiobooks:
		return Localized{EN: s.AudiobooksTitleEN, TA: s.AudiobooksTitleTA}
	case FormatFeatured:
		return Localized{EN: s.FeaturedBooksCardTitleEN, TA: s.FeaturedBooksCardTitleTA}
	}
	return Localized{}
}

// CardDescription returns the bilingual description of a card.
func (s *HomePageSettings) CardDescription(format Format) Localized {
	switch format {
	case FormatPhysical:
		return Localized{EN: s.PhysicalBooksDescEN, TA: s.PhysicalBooksDescTA}
	case FormatEbooks:
		return Localized{EN: s.EbooksDescEN, TA: s.EbooksDescTA}
	case FormatAudiobooks:
		return Localized{EN: s.AudiobooksDescEN, TA: s.AudiobooksDescTA}
	case FormatFeatured:
		return Localized{EN: s.FeaturedBooksCardDescEN, TA: s.FeaturedBooksCardDescTA}
	}
	return Localized{}
}

// FeaturedSectionTitle returns the bilingual heading of the featured books section.
func (s *HomePageSettings) FeaturedSectionTitle() Localized {
	return Localized{EN: s.FeaturedBooksTitleEN, TA: s.FeaturedBooksTitleTA}
}

// DefaultHomePageSettings is the row written by the seed command.
func DefaultHomePageSettings() *HomePageSettings {
	return &HomePageSettings{
		ShowPhysicalBooksCard: true,
		ShowEbooksCard:        true,
		ShowAudiobooksCard:    true,
		ShowFeaturedBooksCard: true,
		ShowFeaturedBooks:     true,
		FeaturedBooksLimit:    6,
		FeaturedBooksTitleEN:  "Featured Books",
		FeaturedBooksTitleTA:  "சிறப்பு புத்தகங்கள்",

		PhysicalBooksTitleEN: "Printed Books",
		PhysicalBooksTitleTA: "அச்சு புத்தகங்கள்",
		PhysicalBooksDescEN:  "Browse our collection of printed books delivered to your door.",
		PhysicalBooksDescTA:  "உங்கள் வீட்டிற்கே வழங்கப்படும் அச்சு புத்தகங்களை பாருங்கள்.",

		EbooksTitleEN: "E-Books",
		EbooksTitleTA: "மின் புத்தகங்கள்",
		EbooksDescEN:  "Download and read instantly on any device.",
		EbooksDescTA:  "எந்த சாதனத்திலும் உடனே பதிவிறக்கி படியுங்கள்.",

		AudiobooksTitleEN: "Audiobooks",
		AudiobooksTitleTA: "ஒலி புத்தகங்கள்",
		AudiobooksDescEN:  "Listen to your favourite books anywhere.",
		AudiobooksDescTA:  "உங்களுக்கு பிடித்த புத்தகங்களை எங்கும் கேளுங்கள்.",

		FeaturedBooksCardTitleEN: "Featured Books",
		FeaturedBooksCardTitleTA: "சிறப்பு புத்தகங்கள்",
		FeaturedBooksCardDescEN:  "Hand-picked titles from our editors.",
		FeaturedBooksCardDescTA:  "எங்கள் ஆசிரியர்கள் தேர்ந்தெடுத்த நூல்கள்.",
	}
}
