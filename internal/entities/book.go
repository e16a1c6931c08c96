package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Book is a catalogue entry. This application only reads it, apart from
// the import-books command.
type Book struct {
	ID            string    `gorm:"primaryKey;size:36" json:"id" yaml:"id"`
	Title         string    `gorm:"index;size:512" json:"title" yaml:"title"`
	Author        string    `gorm:"index;size:256" json:"author" yaml:"author"`
	CoverImageURL string    `gorm:"column:cover_image_url;size:2048" json:"cover_image_url,omitempty" yaml:"cover_image_url"`
	CreatedAt     time.Time `json:"created_at" yaml:"-"`
	UpdatedAt     time.Time `json:"updated_at" yaml:"-"`
}

func (Book) TableName() string {
	return "books"
}

func (b *Book) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}

// FeaturedBook places a book on the homepage featured list.
// DisplayOrder is expected to be dense and zero-based, but nothing enforces it.
type FeaturedBook struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	BookID       string    `gorm:"index;size:36" json:"book_id"`
	DisplayOrder int       `gorm:"index" json:"display_order"`
	Book         *Book     `gorm:"foreignKey:BookID" json:"book,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

func (FeaturedBook) TableName() string {
	return "featured_books"
}

func (f *FeaturedBook) BeforeCreate(tx *gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	return nil
}
