package auth

import (
	"errors"
	"fmt"

	"github.com/traintrack/traintrack/config"
	"github.com/traintrack/traintrack/services/logging"
	"github.com/traintrack/traintrack/services/user"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrUsernameTaken         = errors.New("username already taken")
	ErrPasswordHashingFailed = errors.New("failed to hash password")
)

type Service struct {
	config *config.Config
	db     *gorm.DB
	logger *logging.Service
}

func NewService(cfg *config.Config, db *gorm.DB, logger *logging.Service) *Service {
	if cfg.Auth.BcryptCost < bcrypt.MinCost || cfg.Auth.BcryptCost > bcrypt.MaxCost {
		cfg.Auth.BcryptCost = bcrypt.DefaultCost
	}
	return &Service{
		config: cfg,
		db:     db,
		logger: logger,
	}
}

func (s *Service) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.config.Auth.BcryptCost)
	if err != nil {
		s.logger.Error("failed to hash password", zap.Error(err))
		return "", ErrPasswordHashingFailed
	}
	return string(hash), nil
}

func (s *Service) VerifyPassword(hashedPassword, password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}

// Register creates a new user with a hashed password. Accounts matching the
// configured admin username are granted the admin role.
func (s *Service) Register(username, password string) (*user.User, error) {
	var count int64
	if err := s.db.Model(&user.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	if count > 0 {
		return nil, ErrUsernameTaken
	}

	hash, err := s.HashPassword(password)
	if err != nil {
		return nil, err
	}

	role := user.RoleUser
	if s.config.Auth.AdminUsername != "" && username == s.config.Auth.AdminUsername {
		role = user.RoleAdmin
	}

	u := user.User{
		Username: username,
		Password: hash,
		Role:     role,
	}
	if err := s.db.Create(&u).Error; err != nil {
		s.logger.Error("failed to create user", zap.Error(err))
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("user registered",
		zap.Uint("user_id", u.ID),
		zap.String("role", string(u.Role)))

	return &u, nil
}

// Authenticate resolves the user by username and verifies the password.
func (s *Service) Authenticate(username, password string) (*user.User, error) {
	var u user.User
	err := s.db.Where("username = ?", username).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}

	if err := s.VerifyPassword(u.Password, password); err != nil {
		s.logger.Warn("login failed - wrong password", zap.String("username", username))
		return nil, ErrInvalidCredentials
	}

	return &u, nil
}
