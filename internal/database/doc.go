// Package database provides the data access layer for the application.
//
// # Architecture
//
// The database layer is organized into domain-specific sub-packages:
//
//	database/
//	├── database.go      # Connection setup (sqlite or postgres), migrations
//	├── admins/          # Administrator rows
//	├── identities/      # Accounts owned by the identity service
//	├── homepage/        # The singleton homepage settings row
//	├── catalogue/       # Book catalogue
//	├── featured/        # Featured books ordering table
//	└── audit/           # Admin action trail
//
// # Using Sub-packages
//
// Each sub-package provides a Repository type with domain-specific operations:
//
//	db, err := database.NewDatabase(cfg.Database)
//
//	settingsRepo := homepage.NewRepository(db.DB)
//	featuredRepo := featured.NewRepository(db.DB)
//
//	settings, err := settingsRepo.GetHomePageSettings(ctx)
//	entries, err := featuredRepo.ListFeatured(ctx)
//
// # Interface Implementations
//
//   - admins.Repository: implements admin.AdminStore
//   - homepage.Repository: implements admin.SettingsStore and storefront.SettingsReader
//   - catalogue.Repository: implements admin.CatalogueStore
//   - featured.Repository: implements admin.FeaturedStore and admin.FeaturedBatchWriter
//   - identities.Repository: implements auth.IdentityRepository
//
// Nothing here enforces the featured list invariants (unique book ids, dense
// display order); callers own them.
package database
