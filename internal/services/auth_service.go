package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yukikurage/tracker-api/internal/auth"
	"github.com/yukikurage/tracker-api/internal/authz"
	"github.com/yukikurage/tracker-api/internal/constants"
	"github.com/yukikurage/tracker-api/internal/logging"
	"github.com/yukikurage/tracker-api/internal/models"
	"github.com/yukikurage/tracker-api/internal/repository"
	"github.com/yukikurage/tracker-api/internal/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrEmailRequired        = errors.New("email is required")
	ErrEmailTaken           = errors.New("email already exists")
	ErrUsernameTaken        = errors.New("username already exists")
	ErrInvalidCredentials   = errors.New("invalid login or password")
	ErrPasswordTooShort     = errors.New("password too short")
	ErrInvalidCredential    = errors.New("invalid or expired token")
	ErrSessionRevoked       = errors.New("session is no longer active")
	ErrFailedToHashPassword = errors.New("failed to hash password")
)

// AuthService handles accounts, sessions and bearer-token authentication.
type AuthService struct {
	userRepo   repository.UserRepository
	tokens     *auth.TokenManager
	authorizer *authz.Authorizer
	log        logging.Logger
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository, tokens *auth.TokenManager, authorizer *authz.Authorizer, log logging.Logger) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		tokens:     tokens,
		authorizer: authorizer,
		log:        log,
	}
}

// UserInput holds the profile fields accepted on account creation.
type UserInput struct {
	Username    string
	Email       string
	Password    string
	PhoneNumber string
	FirstName   string
	LastName    string
}

// Register creates a regular user and opens a first session for them.
func (s *AuthService) Register(ctx context.Context, input UserInput) (*models.User, string, error) {
	user, err := s.createUser(ctx, input, models.RoleUser)
	if err != nil {
		return nil, "", err
	}

	token, err := s.issueToken(ctx, user.ID)
	if err != nil {
		return nil, "", err
	}

	s.log.Info(ctx, "user registered", "user_id", user.ID)
	return user, token, nil
}

// CreateUser lets an admin create an account with any role.
func (s *AuthService) CreateUser(ctx context.Context, id authz.Identity, input UserInput, role models.Role) (*models.User, error) {
	if err := s.authorizer.Authorize(ctx, id, authz.ResourceUser, authz.ActionCreate, authz.Target{}); err != nil {
		return nil, err
	}
	if role == "" {
		role = models.RoleUser
	}
	if !role.Valid() {
		return nil, invalidField("role must be one of admin, user")
	}

	user, err := s.createUser(ctx, input, role)
	if err != nil {
		return nil, err
	}

	s.log.Info(ctx, "user created", "user_id", user.ID, "role", user.Role, "by", id.UserID)
	return user, nil
}

func (s *AuthService) createUser(ctx context.Context, input UserInput, role models.Role) (*models.User, error) {
	email := normalizeEmail(input.Email)
	if email == "" {
		return nil, ErrEmailRequired
	}
	if len(input.Password) < constants.MinPasswordLength {
		return nil, ErrPasswordTooShort
	}

	if _, err := s.userRepo.FindByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	username := strings.TrimSpace(input.Username)
	if err := s.checkUsername(ctx, username, 0); err != nil {
		return nil, err
	}

	hash, err := hashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PhoneNumber:  strings.TrimSpace(input.PhoneNumber),
		FirstName:    strings.TrimSpace(input.FirstName),
		LastName:     strings.TrimSpace(input.LastName),
		Role:         role,
		PasswordHash: hash,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// LoginInput holds the credentials for authentication. UserInput is an email
// address, or a username when it contains no "@".
type LoginInput struct {
	UserInput string
	Password  string
}

// Login verifies credentials and opens a new session.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*models.User, string, error) {
	login := strings.TrimSpace(input.UserInput)

	var (
		user *models.User
		err  error
	)
	if strings.Contains(login, "@") {
		user, err = s.userRepo.FindByEmail(ctx, normalizeEmail(login))
	} else {
		user, err = s.userRepo.FindByUsername(ctx, login)
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("failed to find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.issueToken(ctx, user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Logout ends the session the request was made with. Other sessions of the
// same user stay valid.
func (s *AuthService) Logout(ctx context.Context, id authz.Identity) error {
	if err := s.userRepo.RemoveToken(ctx, id.UserID, id.Token); err != nil {
		return fmt.Errorf("failed to remove token: %w", err)
	}
	return nil
}

// Authenticate resolves a bearer token to an identity. The token must verify
// and must still be stored for its user.
func (s *AuthService) Authenticate(ctx context.Context, token string) (authz.Identity, error) {
	userID, err := s.tokens.Parse(token)
	if err != nil {
		return authz.Identity{}, ErrInvalidCredential
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return authz.Identity{}, ErrSessionRevoked
		}
		return authz.Identity{}, fmt.Errorf("failed to find user: %w", err)
	}

	active, err := s.userRepo.HasToken(ctx, user.ID, token)
	if err != nil {
		return authz.Identity{}, fmt.Errorf("failed to check session: %w", err)
	}
	if !active {
		return authz.Identity{}, ErrSessionRevoked
	}

	return authz.Identity{UserID: user.ID, Role: user.Role, Token: token}, nil
}

// GetUser retrieves a user by ID.
func (s *AuthService) GetUser(ctx context.Context, id uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// UpdateUser applies a partial update to the caller's own account.
func (s *AuthService) UpdateUser(ctx context.Context, id authz.Identity, userID uint64, body map[string]any) (*models.User, error) {
	if err := utils.ValidateUpdateFields(body, utils.UserUpdateFields); err != nil {
		return nil, err
	}

	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.authorizer.Authorize(ctx, id, authz.ResourceUser, authz.ActionUpdate, authz.Target{OwnerID: user.ID}); err != nil {
		return nil, err
	}

	for key := range body {
		raw, err := optionalString(body, key)
		if err != nil {
			return nil, err
		}
		v := strings.TrimSpace(raw)

		switch key {
		case "username":
			if err := s.checkUsername(ctx, v, user.ID); err != nil {
				return nil, err
			}
			user.Username = v
		case "phone_number":
			user.PhoneNumber = v
		case "firstName":
			user.FirstName = v
		case "lastName":
			user.LastName = v
		case "email":
			if err := s.changeEmail(ctx, user, v); err != nil {
				return nil, err
			}
		case "password":
			// Stored as sent, like on registration.
			if len(raw) < constants.MinPasswordLength {
				return nil, ErrPasswordTooShort
			}
			if user.PasswordHash, err = hashPassword(raw); err != nil {
				return nil, err
			}
		}
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

// checkUsername fails with ErrUsernameTaken when another user than selfID
// already has username. Empty usernames are not unique.
func (s *AuthService) checkUsername(ctx context.Context, username string, selfID uint64) error {
	if username == "" {
		return nil
	}
	existing, err := s.userRepo.FindByUsername(ctx, username)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to check username: %w", err)
	}
	if existing.ID != selfID {
		return ErrUsernameTaken
	}
	return nil
}

func (s *AuthService) changeEmail(ctx context.Context, user *models.User, email string) error {
	email = normalizeEmail(email)
	if email == "" {
		return ErrEmailRequired
	}
	if email == user.Email {
		return nil
	}
	if _, err := s.userRepo.FindByEmail(ctx, email); err == nil {
		return ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check email: %w", err)
	}
	user.Email = email
	return nil
}

// DeleteUser removes an account with its sessions and memberships.
func (s *AuthService) DeleteUser(ctx context.Context, id authz.Identity, userID uint64) error {
	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return err
	}
	if err := s.authorizer.Authorize(ctx, id, authz.ResourceUser, authz.ActionDelete, authz.Target{OwnerID: user.ID}); err != nil {
		return err
	}

	if err := s.userRepo.Delete(ctx, user.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}

	s.log.Info(ctx, "user deleted", "user_id", user.ID, "by", id.UserID)
	return nil
}

func (s *AuthService) issueToken(ctx context.Context, userID uint64) (string, error) {
	token, err := s.tokens.Generate(userID)
	if err != nil {
		return "", fmt.Errorf("failed to issue token: %w", err)
	}
	if err := s.userRepo.AddToken(ctx, userID, token); err != nil {
		return "", fmt.Errorf("failed to store token: %w", err)
	}
	return token, nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", ErrFailedToHashPassword
	}
	return string(hash), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
