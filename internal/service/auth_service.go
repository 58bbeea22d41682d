package service

import (
	"context"
	"time"

	"telemed-be/internal/config"
	"telemed-be/internal/dto"
	"telemed-be/internal/model"
	"telemed-be/internal/pkg/apperror"
	"telemed-be/internal/pkg/logger"
	"telemed-be/internal/repository"
	"telemed-be/pkg/events"
	pktNats "telemed-be/pkg/nats"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type IAuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
	Me(ctx context.Context, userId uuid.UUID) (*dto.UserDTO, error)
}

type authService struct {
	users          repository.UserRepository
	cfg            config.AuthConfig
	eventPublisher *pktNats.Publisher
	log            logger.ILogger
}

func NewAuthService(users repository.UserRepository, cfg config.AuthConfig, eventPublisher *pktNats.Publisher, log logger.ILogger) IAuthService {
	return &authService{
		users:          users,
		cfg:            cfg,
		eventPublisher: eventPublisher,
		log:            log,
	}
}

func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	existing, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, apperror.Internal("failed to check existing account", err)
	}
	if existing != nil {
		return nil, apperror.Conflict("email already registered", nil)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperror.Internal("failed to hash password", err)
	}

	user := &model.User{
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         req.Role,
		IsActive:     true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, apperror.Internal("failed to create account", err)
	}

	if s.eventPublisher != nil {
		if err := s.eventPublisher.Publish(ctx, events.New(events.TypeUserRegistered, map[string]interface{}{
			"user_id": user.Id.String(),
			"role":    user.Role,
		})); err != nil {
			s.log.Warn("service.auth", "failed to publish registration event", map[string]interface{}{
				"user_id": user.Id.String(),
				"error":   err.Error(),
			})
		}
	}

	return s.issueToken(user)
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, apperror.Internal("failed to look up account", err)
	}
	if user == nil || !user.IsActive {
		return nil, apperror.InvalidInput("invalid email or password", nil)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, apperror.InvalidInput("invalid email or password", nil)
	}

	return s.issueToken(user)
}

func (s *authService) Me(ctx context.Context, userId uuid.UUID) (*dto.UserDTO, error) {
	user, err := s.users.GetByID(ctx, userId)
	if err != nil {
		return nil, apperror.Internal("failed to look up account", err)
	}
	if user == nil {
		return nil, apperror.NotFound("account not found", nil)
	}
	res := userToDTO(user)
	return &res, nil
}

func (s *authService) issueToken(user *model.User) (*dto.AuthResponse, error) {
	expiresAt := time.Now().Add(time.Duration(s.cfg.TokenTTLMinute) * time.Minute)
	claims := jwt.MapClaims{
		"user_id": user.Id.String(),
		"role":    user.Role,
		"exp":     expiresAt.Unix(),
		"iat":     time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return nil, apperror.Internal("failed to sign token", err)
	}

	return &dto.AuthResponse{
		Token:     signed,
		ExpiresAt: expiresAt,
		User:      userToDTO(user),
	}, nil
}

func userToDTO(user *model.User) dto.UserDTO {
	return dto.UserDTO{
		Id:        user.Id,
		Email:     user.Email,
		Role:      user.Role,
		IsActive:  user.IsActive,
		CreatedAt: user.CreatedAt,
	}
}
