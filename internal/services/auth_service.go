package services

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/iremtulu/tekneturum-0/internal/database"
	"github.com/iremtulu/tekneturum-0/internal/models"
	"github.com/iremtulu/tekneturum-0/pkg/jwt"
)

// Account roles carried in JWT claims
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// AuthService handles registration, login and profile management for both
// customers and admins. Stored credentials are bcrypt hashes; rows imported
// from the legacy system may still hold plaintext, which is accepted once
// and upgraded in place on successful login.
type AuthService struct {
	userRepo   *database.UserRepository
	adminRepo  *database.AdminRepository
	jwtService *jwt.Service
	bcryptCost int
	logger     *logrus.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	userRepo *database.UserRepository,
	adminRepo *database.AdminRepository,
	jwtService *jwt.Service,
	bcryptCost int,
	logger *logrus.Logger,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		adminRepo:  adminRepo,
		jwtService: jwtService,
		bcryptCost: bcryptCost,
		logger:     logger,
	}
}

// RegisterUser creates a customer account
func (s *AuthService) RegisterUser(req *models.RegisterRequest) (*models.AuthResponse, error) {
	if err := s.checkRegistration(req); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:         req.Name,
		Email:        normalizeEmail(req.Email),
		Phone:        req.Phone,
		PasswordHash: string(hash),
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	s.logger.WithField("user_id", user.ID).Info("User registered")

	return s.issueTokens(user.ID, user.Email, user.Name, RoleUser)
}

// RegisterAdmin creates an administrator account
func (s *AuthService) RegisterAdmin(req *models.RegisterRequest) (*models.AuthResponse, error) {
	if err := s.checkRegistration(req); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	admin := &models.Admin{
		Name:         req.Name,
		Email:        normalizeEmail(req.Email),
		PasswordHash: string(hash),
	}
	if err := s.adminRepo.Create(admin); err != nil {
		return nil, err
	}

	s.logger.WithField("admin_id", admin.ID).Info("Admin registered")

	return s.issueTokens(admin.ID, admin.Email, admin.Name, RoleAdmin)
}

// LoginUser authenticates a customer by email and password
func (s *AuthService) LoginUser(req *models.LoginRequest) (*models.AuthResponse, error) {
	user, err := s.userRepo.GetByEmail(normalizeEmail(req.Email))
	if err != nil {
		return nil, NewValidationError("", "invalid email or password")
	}

	ok, upgraded := s.verifyPassword(user.PasswordHash, req.Password)
	if !ok {
		return nil, NewValidationError("", "invalid email or password")
	}

	if upgraded != "" {
		if err := s.userRepo.UpdatePasswordHash(user.ID, upgraded); err != nil {
			s.logger.WithError(err).WithField("user_id", user.ID).
				Warn("Failed to upgrade legacy password hash")
		} else {
			s.logger.WithField("user_id", user.ID).Info("Legacy password upgraded to bcrypt")
		}
	}

	return s.issueTokens(user.ID, user.Email, user.Name, RoleUser)
}

// LoginAdmin authenticates an administrator by email and password
func (s *AuthService) LoginAdmin(req *models.LoginRequest) (*models.AuthResponse, error) {
	admin, err := s.adminRepo.GetByEmail(normalizeEmail(req.Email))
	if err != nil {
		return nil, NewValidationError("", "invalid email or password")
	}

	ok, upgraded := s.verifyPassword(admin.PasswordHash, req.Password)
	if !ok {
		return nil, NewValidationError("", "invalid email or password")
	}

	if upgraded != "" {
		if err := s.adminRepo.UpdatePasswordHash(admin.ID, upgraded); err != nil {
			s.logger.WithError(err).WithField("admin_id", admin.ID).
				Warn("Failed to upgrade legacy password hash")
		} else {
			s.logger.WithField("admin_id", admin.ID).Info("Legacy password upgraded to bcrypt")
		}
	}

	return s.issueTokens(admin.ID, admin.Email, admin.Name, RoleAdmin)
}

// GetUserProfile returns the customer's account
func (s *AuthService) GetUserProfile(userID int64) (*models.User, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, NewNotFoundError("user")
	}
	return user, nil
}

// GetAdminProfile returns the admin's account
func (s *AuthService) GetAdminProfile(adminID int64) (*models.Admin, error) {
	admin, err := s.adminRepo.GetByID(adminID)
	if err != nil {
		return nil, NewNotFoundError("admin")
	}
	return admin, nil
}

// UpdateUserProfile updates the customer's name, phone and optionally the
// password. A password change requires the current password.
func (s *AuthService) UpdateUserProfile(userID int64, req *models.UpdateProfileRequest) error {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return NewNotFoundError("user")
	}

	if req.NewPassword != "" {
		ok, _ := s.verifyPassword(user.PasswordHash, req.CurrentPassword)
		if !ok {
			return NewValidationError("current_password", "is incorrect")
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), s.bcryptCost)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}

		if err := s.userRepo.UpdatePasswordHash(userID, string(hash)); err != nil {
			return err
		}
	}

	return s.userRepo.UpdateProfile(userID, req.Name, req.Phone)
}

// UpdateAdminProfile updates the admin's name and optionally the password
func (s *AuthService) UpdateAdminProfile(adminID int64, req *models.UpdateProfileRequest) error {
	admin, err := s.adminRepo.GetByID(adminID)
	if err != nil {
		return NewNotFoundError("admin")
	}

	if req.NewPassword != "" {
		ok, _ := s.verifyPassword(admin.PasswordHash, req.CurrentPassword)
		if !ok {
			return NewValidationError("current_password", "is incorrect")
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), s.bcryptCost)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}

		if err := s.adminRepo.UpdatePasswordHash(adminID, string(hash)); err != nil {
			return err
		}
	}

	return s.adminRepo.UpdateProfile(adminID, req.Name)
}

// ListUsers returns every registered customer for the admin panel
func (s *AuthService) ListUsers() ([]models.User, error) {
	return s.userRepo.GetAll()
}

// checkRegistration validates the request and enforces email uniqueness
// across both account tables.
func (s *AuthService) checkRegistration(req *models.RegisterRequest) error {
	if req.Password != req.ConfirmPassword {
		return NewValidationError("confirm_password", "does not match password")
	}

	email := normalizeEmail(req.Email)

	userExists, err := s.userRepo.EmailExists(email)
	if err != nil {
		return err
	}
	adminExists, err := s.adminRepo.EmailExists(email)
	if err != nil {
		return err
	}
	if userExists || adminExists {
		return NewConflictError("email is already registered")
	}

	return nil
}

// verifyPassword checks a submitted password against the stored credential.
// Returns whether it matched and, when a legacy plaintext row matched, the
// bcrypt hash to store in its place.
func (s *AuthService) verifyPassword(stored, submitted string) (ok bool, upgradedHash string) {
	if isBcryptHash(stored) {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(submitted)) == nil, ""
	}

	// Legacy plaintext row
	if stored != submitted {
		return false, ""
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(submitted), s.bcryptCost)
	if err != nil {
		s.logger.WithError(err).Warn("Failed to hash password for legacy upgrade")
		return true, ""
	}

	return true, string(hash)
}

// isBcryptHash reports whether the stored credential is a bcrypt hash
func isBcryptHash(stored string) bool {
	return strings.HasPrefix(stored, "$2a$") ||
		strings.HasPrefix(stored, "$2b$") ||
		strings.HasPrefix(stored, "$2x$") ||
		strings.HasPrefix(stored, "$2y$")
}

// issueTokens signs the access/refresh pair for an authenticated account
func (s *AuthService) issueTokens(accountID int64, email, name, role string) (*models.AuthResponse, error) {
	accessToken, err := s.jwtService.GenerateAccessToken(accountID, email, role)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.jwtService.GenerateRefreshToken(accountID, email, role)
	if err != nil {
		return nil, err
	}

	return &models.AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		Role:         role,
		Name:         name,
		Email:        email,
	}, nil
}

// normalizeEmail lowercases and trims an email address
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
