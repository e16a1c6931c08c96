package config

// Supported database drivers
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// DefaultDatabasePath is the default path for the SQLite database
const DefaultDatabasePath = "./storefront.db"
