package usecase

import (
	"context"
	"errors"
	"fmt"

	"greenmart/internal/data/entity"
	"greenmart/internal/data/repository"
	"greenmart/internal/dto/request"
	"greenmart/internal/dto/response"
	"greenmart/pkg/tokens"

	"go.uber.org/zap"
)

type AuthService interface {
	Register(ctx context.Context, req *request.SignupRequest) (*response.AuthResponse, error)
	Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error)
	Me(ctx context.Context, user *entity.User) (*response.UserResponse, error)

	// Operator actions, reachable from the CLI only.
	CreateAdmin(ctx context.Context, req *request.CreateAdminRequest) (*response.UserResponse, error)
	SetActive(ctx context.Context, email string, active bool) error
}

// PasswordHasher is satisfied by *utils.PasswordHasher.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(password, hash string) bool
}

type authService struct {
	repo   *repository.Repository
	tokens *tokens.Service
	hasher PasswordHasher
	log    *zap.Logger

	// dummyHash is compared against when the email is unknown, so both
	// login failures spend one bcrypt comparison.
	dummyHash string
}

func NewAuthService(
	repo *repository.Repository,
	tokenSvc *tokens.Service,
	hasher PasswordHasher,
	log *zap.Logger,
) AuthService {
	s := &authService{
		repo:   repo,
		tokens: tokenSvc,
		hasher: hasher,
		log:    log.With(zap.String("service", "auth")),
	}

	dummy, err := hasher.Hash("greenmart-no-such-user")
	if err != nil {
		s.log.Error("Failed to prepare dummy password hash", zap.Error(err))
	}
	s.dummyHash = dummy

	return s
}

func (s *authService) Register(ctx context.Context, req *request.SignupRequest) (*response.AuthResponse, error) {
	// 1. Validate input
	if err := validate(req); err != nil {
		s.log.Warn("Register validation failed", zap.Error(err))
		return nil, err
	}

	role, err := entity.ParseUserRole(req.Role)
	if err != nil {
		return nil, newValidationError("role", err.Error())
	}

	// 2. Email must be free
	existing, err := s.repo.User.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if existing != nil {
		return nil, ErrDuplicateEmail
	}

	// 3. Create user
	user, err := s.createUser(ctx, req.Email, req.Password, req.FullName, role)
	if err != nil {
		return nil, err
	}

	// 4. Sign in right away
	resp, err := s.issue(user)
	if err != nil {
		return nil, err
	}

	s.log.Info("User registered",
		zap.Int64("user_id", user.ID),
		zap.String("email", user.Email),
		zap.String("role", string(user.Role)),
	)

	return resp, nil
}

func (s *authService) Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	user, err := s.repo.User.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}

	// Unknown email and wrong password look the same to the caller.
	if user == nil {
		s.hasher.Compare(req.Password, s.dummyHash)
		s.log.Warn("Login for unknown email", zap.String("email", req.Email))
		return nil, ErrInvalidCredentials
	}
	if !s.hasher.Compare(req.Password, user.PasswordHash) {
		s.log.Warn("Invalid password", zap.Int64("user_id", user.ID))
		return nil, ErrInvalidCredentials
	}

	if !user.IsActive {
		s.log.Warn("Inactive user tried to login", zap.Int64("user_id", user.ID))
		return nil, ErrAccountDisabled
	}

	resp, err := s.issue(user)
	if err != nil {
		return nil, err
	}

	s.log.Info("User logged in", zap.Int64("user_id", user.ID))
	return resp, nil
}

func (s *authService) Me(ctx context.Context, user *entity.User) (*response.UserResponse, error) {
	if user == nil {
		return nil, ErrNotFound
	}
	resp := response.UserToResponse(user)
	return &resp, nil
}

func (s *authService) CreateAdmin(ctx context.Context, req *request.CreateAdminRequest) (*response.UserResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	user, err := s.createUser(ctx, req.Email, req.Password, req.FullName, entity.RoleAdmin)
	if err != nil {
		return nil, err
	}

	s.log.Info("Admin created", zap.Int64("user_id", user.ID), zap.String("email", user.Email))

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (s *authService) SetActive(ctx context.Context, email string, active bool) error {
	user, err := s.repo.User.FindByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return ErrNotFound
	}

	if err := s.repo.User.SetActive(ctx, user.ID, active); err != nil {
		return err
	}

	s.log.Info("User status changed", zap.Int64("user_id", user.ID), zap.Bool("is_active", active))
	return nil
}

func (s *authService) createUser(ctx context.Context, email, password, fullName string, role entity.UserRole) (*entity.User, error) {
	hash, err := s.hasher.Hash(password)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &entity.User{
		Email:        email,
		PasswordHash: hash,
		FullName:     fullName,
		Role:         role,
		IsActive:     true,
	}

	if err := s.repo.User.Create(ctx, user); err != nil {
		// Two signups racing for one email both pass the lookup above.
		if errors.Is(err, repository.ErrUniqueViolation) {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	// Read back the normalised row.
	stored, err := s.repo.User.FindByID(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("reload user: %w", err)
	}
	if stored != nil {
		user = stored
	}

	return user, nil
}

func (s *authService) issue(user *entity.User) (*response.AuthResponse, error) {
	token, expiresAt, err := s.tokens.Issue(user.ID)
	if err != nil {
		s.log.Error("Failed to issue token", zap.Error(err), zap.Int64("user_id", user.ID))
		return nil, fmt.Errorf("issue token: %w", err)
	}

	resp := response.AuthToResponse(user, token, expiresAt)
	return &resp, nil
}
