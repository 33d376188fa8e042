package database

import (
	"database/sql"
	"fmt"

	"github.com/iremtulu/tekneturum-0/internal/models"
)

// UserRepository handles database operations for the users table
type UserRepository struct {
	db DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user account
func (r *UserRepository) Create(user *models.User) error {
	query := `
		INSERT INTO users (name, email, phone, password_hash)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(
		query,
		user.Name, user.Email, user.Phone, user.PasswordHash,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(userID int64) (*models.User, error) {
	query := `
		SELECT id, name, email, phone, password_hash, created_at, updated_at
		FROM users
		WHERE id = $1
	`

	return r.scanUser(r.db.QueryRow(query, userID))
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(email string) (*models.User, error) {
	query := `
		SELECT id, name, email, phone, password_hash, created_at, updated_at
		FROM users
		WHERE LOWER(email) = LOWER($1)
	`

	return r.scanUser(r.db.QueryRow(query, email))
}

// EmailExists reports whether the email is already registered
func (r *UserRepository) EmailExists(email string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM users WHERE LOWER(email) = LOWER($1))`

	var exists bool
	err := r.db.QueryRow(query, email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check email: %w", err)
	}

	return exists, nil
}

// GetAll retrieves all users newest-first
func (r *UserRepository) GetAll() ([]models.User, error) {
	query := `
		SELECT id, name, email, phone, password_hash, created_at, updated_at
		FROM users
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch users: %w", err)
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		var user models.User
		var phone sql.NullString

		err := rows.Scan(
			&user.ID, &user.Name, &user.Email, &phone,
			&user.PasswordHash, &user.CreatedAt, &user.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}

		if phone.Valid {
			user.Phone = &phone.String
		}

		users = append(users, user)
	}

	return users, rows.Err()
}

// UpdateProfile updates the user's name and phone
func (r *UserRepository) UpdateProfile(userID int64, name string, phone *string) error {
	query := `
		UPDATE users
		SET name = $2, phone = $3, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.Exec(query, userID, name, phone)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return fmt.Errorf("user not found")
	}

	return nil
}

// UpdatePasswordHash replaces the stored credential. Also used to upgrade
// legacy plaintext rows to bcrypt after a successful login.
func (r *UserRepository) UpdatePasswordHash(userID int64, passwordHash string) error {
	query := `
		UPDATE users
		SET password_hash = $2, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.Exec(query, userID, passwordHash)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return fmt.Errorf("user not found")
	}

	return nil
}

// Count returns the number of registered users
func (r *UserRepository) Count() (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM users`).Scan(&count)
	return count, err
}

// scanUser scans a single user
func (r *UserRepository) scanUser(row scanner) (*models.User, error) {
	user := &models.User{}
	var phone sql.NullString

	err := row.Scan(
		&user.ID, &user.Name, &user.Email, &phone,
		&user.PasswordHash, &user.CreatedAt, &user.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("user not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}

	if phone.Valid {
		user.Phone = &phone.String
	}

	return user, nil
}
