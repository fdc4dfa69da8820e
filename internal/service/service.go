package service

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/leadbank/crm-service/internal/config"
	"github.com/leadbank/crm-service/internal/models"
	"github.com/leadbank/crm-service/internal/report"
	"github.com/leadbank/crm-service/internal/repository"
	"github.com/leadbank/crm-service/internal/utils/email"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// MessageSender sends an outbound chat message and returns its external id
type MessageSender interface {
	SendText(ctx context.Context, to, body string) (string, error)
}

// RateSource supplies the current offered interest rate for loan pricing
type RateSource interface {
	GetOfferedRate() (float64, error)
}

// Service handles business logic
type Service struct {
	repo   *repository.Repository
	log    *logrus.Logger
	config *config.Config
	engine *report.Engine
	sender MessageSender
	rates  RateSource
	mailer *email.Sender
}

// NewService initializes a new service
func NewService(repo *repository.Repository, log *logrus.Logger, cfg *config.Config,
	sender MessageSender, rates RateSource, mailer *email.Sender) *Service {
	return &Service{
		repo:   repo,
		log:    log,
		config: cfg,
		engine: report.NewEngine(repo, log),
		sender: sender,
		rates:  rates,
		mailer: mailer,
	}
}

// Register creates a new agent account with hashed password
func (s *Service) Register(username, email, password string, teamID int64) (*models.User, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hashedPassword),
		TeamID:       teamID,
	}

	if err := s.repo.CreateUser(user); err != nil {
		return nil, err
	}

	s.log.Infof("User registered: %s", user.Email)
	return user, nil
}

// Login authenticates an agent and returns a JWT token
func (s *Service) Login(email, password string) (string, error) {
	user, err := s.repo.FindUserByEmail(email)
	if err != nil {
		return "", fmt.Errorf("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", fmt.Errorf("invalid credentials")
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   fmt.Sprintf("%d", user.ID),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
	})
	tokenString, err := token.SignedString([]byte(s.config.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	s.log.Infof("User logged in: %s", user.Email)
	return tokenString, nil
}
