// Package database opens the message board's relational database and keeps
// its schema current.
//
// Two drivers are supported:
//   - sqlite3: a file-based database (the default, app.db)
//   - mysql: a MySQL/MariaDB server
//
// The raw *sql.DB is wrapped in a GORM session for the store layer, and the
// same pool runs the embedded goose migrations under migrations/<driver>.
//
// SQLite is configured with WAL mode, synchronous=NORMAL, a 5 second busy
// timeout and foreign keys on. It only supports one writer at a time, so the
// pool is limited to a single connection.
package database
