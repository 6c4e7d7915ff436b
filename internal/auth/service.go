package auth

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/mail"
	"strings"
	"time"

	"github.com/Domenick1991/airport/internal/domain"
	"github.com/Domenick1991/airport/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 8

var ErrInvalidCredentials = errors.New("unable to log in with provided credentials")

type AuthUseCase interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*Session, error)
}

type RegisterInput struct {
	Email    string
	Password string
	IsStaff  bool
}

type Session struct {
	Token     string
	ExpiresAt time.Time
	User      *domain.User
}

type Service struct {
	users  repository.UserRepository
	tokens *Tokens
}

func NewService(users repository.UserRepository, tokens *Tokens) *Service {
	return &Service{users: users, tokens: tokens}
}

func (s *Service) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	fields := domain.FieldErrors{}
	if _, err := mail.ParseAddress(email); err != nil || email == "" {
		fields["email"] = "enter a valid email address"
	}
	if len(input.Password) < minPasswordLength {
		fields["password"] = fmt.Sprintf("ensure this field has at least %d characters", minPasswordLength)
	}
	if len(fields) > 0 {
		return nil, fields
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{Email: email, PasswordHash: string(hash), IsStaff: input.IsStaff}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	log.Printf("user registered: user_id=%d staff=%t", user.ID, user.IsStaff)
	return user, nil
}

func (s *Service) Login(ctx context.Context, email, password string) (*Session, error) {
	user, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, expires, err := s.tokens.Issue(user)
	if err != nil {
		return nil, err
	}
	return &Session{Token: token, ExpiresAt: expires, User: user}, nil
}

var _ AuthUseCase = (*Service)(nil)
