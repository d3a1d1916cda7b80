package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"motorlog/internal/auth"
	"motorlog/internal/cache"
	"motorlog/internal/errors"
	"motorlog/internal/model"
	"motorlog/internal/repository"
)

const bcryptCost = 10

// passwordSymbols is the fixed set of symbols accepted by the password policy.
const passwordSymbols = "!@#$%^&*()-_=+[]{};:,.?"

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

const profileCacheTTL = 5 * time.Minute

// AccountService handles registration, login and profile lookup.
type AccountService interface {
	Register(ctx context.Context, name, email, password string) (*model.User, error)
	Login(ctx context.Context, email, password string) (token string, user *model.User, err error)
	Profile(ctx context.Context, identity auth.Identity) (*model.User, error)
}

type accountService struct {
	userRepo   repository.UserRepository
	jwtService *auth.JWTService
	cache      *cache.Client
}

// NewAccountService creates a new account service.
func NewAccountService(userRepo repository.UserRepository, jwtService *auth.JWTService, cache *cache.Client) AccountService {
	return &accountService{
		userRepo:   userRepo,
		jwtService: jwtService,
		cache:      cache,
	}
}

func (s *accountService) profileCacheKey(identity auth.Identity) string {
	return fmt.Sprintf("user:%s", identity.UserID)
}

// Register validates the input, hashes the password and persists a new user.
func (s *accountService) Register(ctx context.Context, name, email, password string) (*model.User, error) {
	if err := validateRegistration(name, email, password); err != nil {
		return nil, err
	}

	// Pre-check only; the unique index on email is the real enforcement point.
	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, errors.ErrUserExists
	}
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("check user existence: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hashedPassword),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if err == gorm.ErrDuplicatedKey {
			return nil, errors.ErrUserExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

// Login verifies the credentials and issues a session token.
func (s *accountService) Login(ctx context.Context, email, password string) (string, *model.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return "", nil, errors.ErrUserNotFound
		}
		return "", nil, fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, errors.ErrInvalidCredentials
	}

	token, err := s.jwtService.GenerateToken(user.ID, user.Email)
	if err != nil {
		return "", nil, fmt.Errorf("generate token: %w", err)
	}

	return token, user, nil
}

// Profile returns the user record behind an authenticated identity.
func (s *accountService) Profile(ctx context.Context, identity auth.Identity) (*model.User, error) {
	var cached model.User
	if s.cache.GetJSON(ctx, s.profileCacheKey(identity), &cached) {
		return &cached, nil
	}

	user, err := s.userRepo.FindByID(ctx, identity.UserID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	s.cache.SetJSON(ctx, s.profileCacheKey(identity), user, profileCacheTTL)
	return user, nil
}

func validateRegistration(name, email, password string) error {
	if strings.TrimSpace(name) == "" || strings.TrimSpace(email) == "" || password == "" {
		return errors.NewValidationError("all fields are required")
	}
	if !emailPattern.MatchString(email) {
		return errors.NewValidationError("invalid email address")
	}
	return validatePassword(password)
}

// validatePassword enforces the password policy: at least 8 characters with at
// least one letter, one digit, one uppercase character and one symbol.
func validatePassword(password string) error {
	if len(password) < 8 {
		return errors.NewValidationError("password must be at least 8 characters")
	}

	var hasLetter, hasDigit, hasUpper, hasSymbol bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
			if unicode.IsUpper(r) {
				hasUpper = true
			}
		case unicode.IsDigit(r):
			hasDigit = true
		}
		if strings.ContainsRune(passwordSymbols, r) {
			hasSymbol = true
		}
	}

	if !hasLetter || !hasDigit || !hasUpper || !hasSymbol {
		return errors.NewValidationError("password must contain a letter, a digit, an uppercase character and a symbol")
	}
	return nil
}
