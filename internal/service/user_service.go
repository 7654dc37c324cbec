// Package service holds the business rules between the HTTP handlers and the repositories.
package service

import (
	"context"
	"errors"
	"strings"

	"devconnector/internal/auth"
	"devconnector/internal/models"
	"devconnector/internal/observability"
	"devconnector/internal/repository"
	"devconnector/internal/validation"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// PasswordHashCost is the bcrypt work factor for new accounts.
const PasswordHashCost = 10

// TokenIssuer signs credentials for an authenticated identity.
type TokenIssuer interface {
	Issue(identity auth.Identity) (string, error)
}

type UserService struct {
	userRepo repository.UserRepository
	tokens   TokenIssuer
	hashCost int
}

type RegisterInput struct {
	Name     string `json:"name" validate:"notblank" msg:"Name is required"`
	Email    string `json:"email" validate:"required,email" msg:"Please include a valid email"`
	Password string `json:"password" validate:"min=6,max=72" msg:"Please enter a password with 6 or more characters" msg_max:"Please enter a password with 72 or fewer characters"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email" msg:"Please include a valid email"`
	Password string `json:"password" validate:"required" msg:"Password is required"`
}

func NewUserService(userRepo repository.UserRepository, tokens TokenIssuer) *UserService {
	return &UserService{userRepo: userRepo, tokens: tokens, hashCost: PasswordHashCost}
}

// Register creates an account and returns a signed token for it.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (token string, err error) {
	ctx, span := observability.StartServiceSpan(ctx, "UserService", "Register")
	defer func() {
		observability.EndSpan(span, err)
		observability.AuthAttempts.WithLabelValues("register", authResult(err)).Inc()
	}()

	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	if err := validation.Struct(&in); err != nil {
		return "", err
	}

	existing, err := s.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return "", err
	}
	if existing != nil {
		return "", models.NewConflictError("User already exists").AsFieldError()
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.hashCost)
	if err != nil {
		return "", models.NewInternalError(err)
	}

	user := &models.User{
		Name:     in.Name,
		Email:    in.Email,
		Password: string(hash),
		Avatar:   validation.GravatarURL(in.Email),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) && appErr.Code == models.CodeConflict {
			return "", appErr.AsFieldError()
		}
		return "", err
	}

	return s.issue(user.ID)
}

// Authenticate checks the credentials and returns a signed token.
func (s *UserService) Authenticate(ctx context.Context, in LoginInput) (token string, err error) {
	ctx, span := observability.StartServiceSpan(ctx, "UserService", "Authenticate")
	defer func() {
		observability.EndSpan(span, err)
		observability.AuthAttempts.WithLabelValues("login", authResult(err)).Inc()
	}()

	in.Email = strings.TrimSpace(in.Email)
	if err := validation.Struct(&in); err != nil {
		return "", err
	}

	user, err := s.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", models.NewBadCredentialsError()
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(in.Password)); err != nil {
		return "", models.NewBadCredentialsError()
	}

	return s.issue(user.ID)
}

// GetSelf returns the caller's account without the password hash.
func (s *UserService) GetSelf(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

func (s *UserService) issue(id uuid.UUID) (string, error) {
	token, err := s.tokens.Issue(auth.Identity{ID: id})
	if err != nil {
		return "", models.NewInternalError(err)
	}
	return token, nil
}

func authResult(err error) string {
	var appErr *models.AppError
	switch {
	case err == nil:
		return "success"
	case errors.As(err, &appErr) && appErr.Code != models.CodeInternal:
		return strings.ToLower(appErr.Code)
	default:
		return "error"
	}
}
