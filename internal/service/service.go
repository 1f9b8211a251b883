package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/nmalhotra/bookshelf-service/internal/config"
	"github.com/nmalhotra/bookshelf-service/internal/models"
	"github.com/nmalhotra/bookshelf-service/internal/repository"
	"github.com/nmalhotra/bookshelf-service/internal/utils/email"
)

const tokenLifetime = 12 * time.Hour

// Service handles business logic
type Service struct {
	repo     *repository.Repository
	log      *logrus.Logger
	config   *config.Config
	validate *validator.Validate
	mail     *email.Sender
}

// NewService initializes a new service. mail may be nil when SMTP is
// not configured; registration then skips the welcome email.
func NewService(repo *repository.Repository, log *logrus.Logger, cfg *config.Config, mail *email.Sender) *Service {
	return &Service{
		repo:     repo,
		log:      log,
		config:   cfg,
		validate: validator.New(),
		mail:     mail,
	}
}

// RegisterCommand is the input for user registration
type RegisterCommand struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Register creates a new user with hashed password
func (s *Service) Register(cmd RegisterCommand) (*models.User, error) {
	if err := s.validate.Struct(cmd); err != nil {
		return nil, tagged(ErrValidation, "Please provide all required fields (username, email, password)")
	}

	// Sequential existence checks; the unique indexes close the race.
	if _, err := s.repo.FindUserByEmail(cmd.Email); err == nil {
		return nil, tagged(ErrConflict, "Email already exists, Please login")
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	if _, err := s.repo.FindUserByUsername(cmd.Username); err == nil {
		return nil, tagged(ErrConflict, "Username already exists, Please login")
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(cmd.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		ID:           uuid.New(),
		Username:     cmd.Username,
		Email:        cmd.Email,
		PasswordHash: string(hashedPassword),
	}

	if err := s.repo.CreateUser(user); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, tagged(ErrConflict, "Email or username already exists, Please login")
		}
		return nil, err
	}

	if s.mail != nil {
		go func(to, username string) {
			if err := s.mail.SendWelcome(to, username); err != nil {
				s.log.Warnf("Welcome email to %s not sent: %v", to, err)
			}
		}(user.Email, user.Username)
	}

	s.log.Infof("User registered: %s", user.Email)
	return user, nil
}

// Login authenticates a user and returns a JWT token
func (s *Service) Login(loginEmail, password string) (string, error) {
	user, err := s.repo.FindUserByEmail(loginEmail)
	if errors.Is(err, repository.ErrNotFound) {
		return "", tagged(ErrNotFound, "User not found")
	}
	if err != nil {
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", tagged(ErrInvalidCredentials, "Invalid credentials")
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, models.TokenClaims{
		UserID: user.ID.String(),
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenLifetime)),
		},
	})
	tokenString, err := token.SignedString([]byte(s.config.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	s.log.Infof("User logged in: %s", user.Email)
	return tokenString, nil
}

// GetUserDetails returns the caller's own profile
func (s *Service) GetUserDetails(userID uuid.UUID) (*models.User, error) {
	user, err := s.repo.FindUserByID(userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, tagged(ErrNotFound, "User not found")
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}
