package service

import (
	"context" // Request-scoped operations
	"errors"  // Error classification
	"fmt"     // Error wrapping
	"strings" // Input trimming
	"time"    // Token lifetime

	"payment_tracker/internal/domain" // Importing domain models
	"payment_tracker/internal/utils"  // JWT helpers

	"github.com/sirupsen/logrus" // Structured logging
	"golang.org/x/crypto/bcrypt" // Password hashing
	"gorm.io/gorm"               // GORM ORM library
)

// invalidCredentials is the single message for unknown users and wrong passwords
const invalidCredentials = "Invalid credentials. Please try again."

// AuthService registers accounts and issues tokens
type AuthService struct {
	db       *gorm.DB      // Database handle
	secret   string        // JWT signing secret
	tokenTTL time.Duration // Token lifetime
}

// NewAuthService creates a new AuthService
func NewAuthService(db *gorm.DB, secret string, tokenTTL time.Duration) *AuthService {
	return &AuthService{db: db, secret: secret, tokenTTL: tokenTTL}
}

// Register creates an account with a bcrypt-hashed password
func (s *AuthService) Register(ctx context.Context, username, password string) (*domain.User, error) {
	// Both fields are required; the username is stored exactly as given
	if strings.TrimSpace(username) == "" || password == "" {
		return nil, domain.Errorf(domain.ErrValidation, "Username and password are required")
	}
	// Fast path: reject a known duplicate before paying for the hash
	var count int64
	if err := s.db.WithContext(ctx).Model(&domain.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("check user existence: %w", err)
	}
	if count > 0 {
		return nil, domain.Errorf(domain.ErrConflict, "An account with this email already exists")
	}
	// Hash the password, bcrypt salts every hash
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user := domain.User{Username: username, Password: string(hash), Role: domain.DefaultRole}
	// The unique index decides concurrent registrations
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, domain.Errorf(domain.ErrConflict, "An account with this email already exists")
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	logrus.WithFields(logrus.Fields{
		"user_id":  user.ID,       // New account ID
		"username": user.Username, // Login identifier
	}).Info("User registered") // Log registration
	return &user, nil
}

// Login checks credentials and returns a signed token
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	var user domain.User // Fetch user from database
	err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		s.logFailedLogin(username, "unknown user")
		return "", domain.Errorf(domain.ErrUnauthorized, invalidCredentials)
	} else if err != nil {
		return "", fmt.Errorf("query user: %w", err)
	}
	// Compare provided password with stored hash
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		s.logFailedLogin(username, "password mismatch")
		return "", domain.Errorf(domain.ErrUnauthorized, invalidCredentials)
	}
	// Generate JWT token
	token, err := utils.GenerateJWT(user.ID, user.Username, s.secret, s.tokenTTL)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	logrus.WithFields(logrus.Fields{
		"user_id":  user.ID,       // Account ID
		"username": user.Username, // Login identifier
	}).Info("User logged in") // Log login
	return token, nil
}

// Profile returns the account behind a token
func (s *AuthService) Profile(ctx context.Context, userID uint) (*domain.User, error) {
	var user domain.User
	err := s.db.WithContext(ctx).First(&user, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.Errorf(domain.ErrNotFound, "Account #%d not found", userID)
	} else if err != nil {
		return nil, fmt.Errorf("query user: %w", err)
	}
	return &user, nil
}

// logFailedLogin records why a login was refused; the caller never sees the reason
func (s *AuthService) logFailedLogin(username, reason string) {
	logrus.WithFields(logrus.Fields{
		"username": username, // Attempted login identifier
		"reason":   reason,   // Internal reason only
	}).Warn("Login failed")
}
