package database

import (
	"database/sql"

	_ "modernc.org/sqlite" // SQLite driver
)

// New creates a new database connection pool.
func New(dataSourceName string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		return nil, err
	}
	// modernc sqlite serializes writes; a single connection avoids SQLITE_BUSY.
	db.SetMaxOpenConns(1)
	if err = db.Ping(); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate runs the SQL statements to set up the database schema.
func Migrate(db *sql.DB) error {
	stmts := []string{
		`PRAGMA foreign_keys = ON;`,
		`CREATE TABLE IF NOT EXISTS users (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			email TEXT UNIQUE NOT NULL,
			username TEXT UNIQUE NOT NULL,
			password_hash TEXT NOT NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);`,
		`CREATE TABLE IF NOT EXISTS themes (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT UNIQUE NOT NULL,
			description TEXT NOT NULL DEFAULT ''
		);`,
		`CREATE TABLE IF NOT EXISTS follows (
			user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			theme_id INTEGER NOT NULL REFERENCES themes(id) ON DELETE CASCADE,
			PRIMARY KEY (user_id, theme_id)
		);`,
		`CREATE TABLE IF NOT EXISTS articles (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			title TEXT NOT NULL,
			content TEXT NOT NULL,
			theme_id INTEGER NOT NULL REFERENCES themes(id),
			author_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			created_at DATETIME NOT NULL,
			updated_at DATETIME
		);`,
		`CREATE TABLE IF NOT EXISTS comments (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			article_id INTEGER NOT NULL REFERENCES articles(id) ON DELETE CASCADE,
			author_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			content TEXT NOT NULL,
			created_at DATETIME NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS events (
			id TEXT NOT NULL PRIMARY KEY,
			type TEXT NOT NULL,
			level TEXT NOT NULL,
			message TEXT NOT NULL,
			theme_id INTEGER,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// Seed inserts the default set of themes if they are not present yet.
func Seed(db *sql.DB) error {
	themes := []struct {
		name        string
		description string
	}{
		{"Go", "The Go programming language, tooling and ecosystem"},
		{"JavaScript", "JavaScript, TypeScript and the frontend world"},
		{"Python", "Python, data tooling and scripting"},
		{"DevOps", "CI/CD, containers, infrastructure and operations"},
		{"Databases", "SQL, NoSQL, modeling and performance"},
		{"Security", "Application security, auth and best practices"},
	}
	for _, t := range themes {
		if _, err := db.Exec("INSERT OR IGNORE INTO themes (name, description) VALUES (?, ?)", t.name, t.description); err != nil {
			return err
		}
	}
	return nil
}
