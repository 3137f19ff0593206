package store

import (
	"database/sql"
	"time"

	"github.com/lmercadier/devfeed-be/internal/models"
)

// UserStore persists user records. Lookups exist for each unique key: id,
// email and username.
type UserStore struct {
	db *sql.DB
}

// NewUserStore creates a new UserStore.
func NewUserStore(db *sql.DB) *UserStore {
	return &UserStore{db: db}
}

const userColumns = "id, name, email, username, password_hash, created_at"

func (s *UserStore) scanUser(row *sql.Row) (models.User, error) {
	var user models.User
	err := row.Scan(&user.ID, &user.Name, &user.Email, &user.Username, &user.PasswordHash, &user.CreatedAt)
	if err != nil {
		return models.User{}, err
	}
	return user, nil
}

// Insert persists a new user and returns it with the assigned id.
func (s *UserStore) Insert(user models.User) (models.User, error) {
	stmt, err := s.db.Prepare("INSERT INTO users (name, email, username, password_hash, created_at) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return models.User{}, err
	}
	defer stmt.Close()

	user.CreatedAt = time.Now().UTC()
	res, err := stmt.Exec(user.Name, user.Email, user.Username, user.PasswordHash, user.CreatedAt)
	if err != nil {
		return models.User{}, err
	}
	user.ID, err = res.LastInsertId()
	if err != nil {
		return models.User{}, err
	}
	return user, nil
}

// GetByID retrieves a user by id.
func (s *UserStore) GetByID(id int64) (models.User, error) {
	return s.scanUser(s.db.QueryRow("SELECT "+userColumns+" FROM users WHERE id = ?", id))
}

// GetByEmail retrieves a user by email. The match is case-exact.
func (s *UserStore) GetByEmail(email string) (models.User, error) {
	return s.scanUser(s.db.QueryRow("SELECT "+userColumns+" FROM users WHERE email = ?", email))
}

// GetByUsername retrieves a user by username.
func (s *UserStore) GetByUsername(username string) (models.User, error) {
	return s.scanUser(s.db.QueryRow("SELECT "+userColumns+" FROM users WHERE username = ?", username))
}

// Update overwrites a user's identity fields and password hash.
func (s *UserStore) Update(user models.User) error {
	_, err := s.db.Exec("UPDATE users SET name = ?, email = ?, username = ?, password_hash = ? WHERE id = ?",
		user.Name, user.Email, user.Username, user.PasswordHash, user.ID)
	return err
}

// Delete removes a user. Follows, articles and comments cascade at the
// schema level.
func (s *UserStore) Delete(id int64) error {
	_, err := s.db.Exec("DELETE FROM users WHERE id = ?", id)
	return err
}

// Exists reports whether a user with the given id is present.
func (s *UserStore) Exists(id int64) (bool, error) {
	var n int
	err := s.db.QueryRow("SELECT COUNT(1) FROM users WHERE id = ?", id).Scan(&n)
	return n > 0, err
}

// Count returns the number of registered users.
func (s *UserStore) Count() (int64, error) {
	var n int64
	err := s.db.QueryRow("SELECT COUNT(1) FROM users").Scan(&n)
	return n, err
}
