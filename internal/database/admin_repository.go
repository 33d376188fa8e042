package database

import (
	"database/sql"
	"fmt"

	"github.com/iremtulu/tekneturum-0/internal/models"
)

// AdminRepository handles database operations for the admins table
type AdminRepository struct {
	db DB
}

// NewAdminRepository creates a new AdminRepository
func NewAdminRepository(db DB) *AdminRepository {
	return &AdminRepository{db: db}
}

// Create inserts a new admin account
func (r *AdminRepository) Create(admin *models.Admin) error {
	query := `
		INSERT INTO admins (name, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(
		query,
		admin.Name, admin.Email, admin.PasswordHash,
	).Scan(&admin.ID, &admin.CreatedAt, &admin.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create admin: %w", err)
	}

	return nil
}

// GetByID retrieves an admin by ID
func (r *AdminRepository) GetByID(adminID int64) (*models.Admin, error) {
	query := `
		SELECT id, name, email, password_hash, created_at, updated_at
		FROM admins
		WHERE id = $1
	`

	return r.scanAdmin(r.db.QueryRow(query, adminID))
}

// GetByEmail retrieves an admin by email
func (r *AdminRepository) GetByEmail(email string) (*models.Admin, error) {
	query := `
		SELECT id, name, email, password_hash, created_at, updated_at
		FROM admins
		WHERE LOWER(email) = LOWER($1)
	`

	return r.scanAdmin(r.db.QueryRow(query, email))
}

// EmailExists reports whether the email is already registered as an admin
func (r *AdminRepository) EmailExists(email string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM admins WHERE LOWER(email) = LOWER($1))`

	var exists bool
	err := r.db.QueryRow(query, email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check email: %w", err)
	}

	return exists, nil
}

// UpdateProfile updates the admin's name
func (r *AdminRepository) UpdateProfile(adminID int64, name string) error {
	query := `
		UPDATE admins
		SET name = $2, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.Exec(query, adminID, name)
	if err != nil {
		return fmt.Errorf("failed to update admin: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return fmt.Errorf("admin not found")
	}

	return nil
}

// UpdatePasswordHash replaces the stored credential. Also used to upgrade
// legacy plaintext rows to bcrypt after a successful login.
func (r *AdminRepository) UpdatePasswordHash(adminID int64, passwordHash string) error {
	query := `
		UPDATE admins
		SET password_hash = $2, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.Exec(query, adminID, passwordHash)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return fmt.Errorf("admin not found")
	}

	return nil
}

// scanAdmin scans a single admin
func (r *AdminRepository) scanAdmin(row scanner) (*models.Admin, error) {
	admin := &models.Admin{}

	err := row.Scan(
		&admin.ID, &admin.Name, &admin.Email,
		&admin.PasswordHash, &admin.CreatedAt, &admin.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("admin not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch admin: %w", err)
	}

	return admin, nil
}
