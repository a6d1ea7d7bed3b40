// Package migrations contains dialect-aware Go database migrations that cannot
// be expressed as a single cross-database SQL statement.
package migrations

// dialect is set by the parent db package before migrations are applied.
var dialect string

// SetDialect configures the SQL dialect for Go migrations.
// Must be called before goose.Up. Valid values: "sqlite3", "postgres", "mysql".
func SetDialect(d string) {
	dialect = d
}

// pk returns the auto-incrementing integer primary key clause for the
// active dialect. Catalog rows use integer surrogate keys.
func pk() string {
	switch dialect {
	case "postgres":
		return "BIGSERIAL PRIMARY KEY"
	case "mysql":
		return "BIGINT AUTO_INCREMENT PRIMARY KEY"
	default: // sqlite3
		return "INTEGER PRIMARY KEY AUTOINCREMENT"
	}
}
