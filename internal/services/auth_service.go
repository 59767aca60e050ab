package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"canvas_shop_backend/internal/models"
	"canvas_shop_backend/internal/repositories"
	"canvas_shop_backend/pkg/utils"

	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 8

// --- Data Transfer Objects (DTOs) ---

type CreateUserRequest struct {
	Username string      `json:"username" binding:"required"`
	Password string      `json:"password" binding:"required"`
	FullName string      `json:"fullName" binding:"required"`
	Email    string      `json:"email"`
	Role     models.Role `json:"role" binding:"required"`
}

type UpdateUserRequest struct {
	FullName *string      `json:"fullName"`
	Email    *string      `json:"email"`
	Role     *models.Role `json:"role"`
	IsActive *bool        `json:"isActive"`
}

type ResetPasswordRequest struct {
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	User        *models.AdminUser `json:"user"`
	AccessToken string            `json:"accessToken"`
}

// --- AuthService Interface ---
type AuthService interface {
	Login(ctx context.Context, creds models.Credentials) (*AuthResponse, error)
	GetProfile(ctx context.Context, userID string) (*models.AdminUser, error)
	ListUsers() []models.AdminUser
	CreateUser(ctx context.Context, req CreateUserRequest) (*models.AdminUser, error)
	UpdateUser(ctx context.Context, userID string, req UpdateUserRequest) (*models.AdminUser, error)
	ResetPassword(ctx context.Context, userID string, req ResetPasswordRequest) error
	DeleteUser(ctx context.Context, userID string) error
	// EnsureBootstrapAdmin creates a full-admin account when no account exists.
	EnsureBootstrapAdmin(ctx context.Context, username, password string) error
}

type authService struct {
	repo   repositories.AuthRepository
	state  *AppState
	tokens *utils.TokenManager
}

func NewAuthService(repo repositories.AuthRepository, state *AppState, tokens *utils.TokenManager) AuthService {
	return &authService{repo: repo, state: state, tokens: tokens}
}

func (s *authService) Login(ctx context.Context, creds models.Credentials) (*AuthResponse, error) {
	user, err := s.repo.FindUserByUsername(ctx, strings.TrimSpace(creds.Username))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("login attempt failed: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(creds.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrUserInactive
	}

	token, err := s.tokens.GenerateAccessToken(user.ID, user.Username, user.FullName, string(user.Role))
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}
	user.PasswordHash = ""
	return &AuthResponse{User: user, AccessToken: token}, nil
}

func (s *authService) GetProfile(ctx context.Context, userID string) (*models.AdminUser, error) {
	user, err := s.repo.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *authService) ListUsers() []models.AdminUser {
	return s.state.Users.All()
}

func (s *authService) CreateUser(ctx context.Context, req CreateUserRequest) (*models.AdminUser, error) {
	if !models.IsValidRole(string(req.Role)) {
		return nil, fmt.Errorf("%w: unknown role %q", ErrValidation, req.Role)
	}
	if !utils.IsValidPasswordLength(req.Password, minPasswordLength) {
		return nil, fmt.Errorf("%w: password must be at least %d characters", ErrValidation, minPasswordLength)
	}
	if req.Email != "" && !utils.IsValidEmail(req.Email) {
		return nil, fmt.Errorf("%w: invalid email", ErrValidation)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.state.Users.Create(ctx, models.AdminUser{
		Username:     strings.TrimSpace(req.Username),
		PasswordHash: string(hash),
		FullName:     req.FullName,
		Email:        req.Email,
		Role:         req.Role,
		IsActive:     true,
	})
	if err != nil {
		if errors.Is(err, ErrDuplicate) {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	utils.LogInfo("Staff account created", map[string]interface{}{"username": user.Username, "role": string(user.Role)})
	return &user, nil
}

func (s *authService) UpdateUser(ctx context.Context, userID string, req UpdateUserRequest) (*models.AdminUser, error) {
	current, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if req.FullName != nil {
		current.FullName = *req.FullName
	}
	if req.Email != nil {
		if *req.Email != "" && !utils.IsValidEmail(*req.Email) {
			return nil, fmt.Errorf("%w: invalid email", ErrValidation)
		}
		current.Email = *req.Email
	}
	if req.Role != nil {
		if !models.IsValidRole(string(*req.Role)) {
			return nil, fmt.Errorf("%w: unknown role %q", ErrValidation, *req.Role)
		}
		current.Role = *req.Role
	}
	if req.IsActive != nil {
		current.IsActive = *req.IsActive
	}

	updated, err := s.state.Users.Update(ctx, userID, *current)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *authService) ResetPassword(ctx context.Context, userID string, req ResetPasswordRequest) error {
	if !utils.IsValidPasswordLength(req.Password, minPasswordLength) {
		return fmt.Errorf("%w: password must be at least %d characters", ErrValidation, minPasswordLength)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.repo.UpdatePassword(ctx, userID, string(hash)); err != nil {
		return mapRepoError(err)
	}
	return nil
}

func (s *authService) DeleteUser(ctx context.Context, userID string) error {
	return s.state.Users.Delete(ctx, userID)
}

func (s *authService) EnsureBootstrapAdmin(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		return nil
	}
	users, err := s.repo.GetUsers(ctx)
	if err != nil {
		return err
	}
	if len(users) > 0 {
		return nil
	}
	_, err = s.CreateUser(ctx, CreateUserRequest{
		Username: username,
		Password: password,
		FullName: "Administrator",
		Role:     models.RoleFullAdmin,
	})
	return err
}
