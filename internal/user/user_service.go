package user

import (
	"context"
	"errors"
	"os"
	"strings"
	"time"

	usererrors "go-ems/internal/user/errors"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// tokenExpiry matches the web client's 30-day sessions.
const tokenExpiry = 30 * 24 * time.Hour

//go:generate mockgen -source=user_service.go -destination=mock/user_service_mock.go -package=mock
type Service interface {
	Register(ctx context.Context, req RegisterRequest) (AuthResponse, error)
	Login(ctx context.Context, req LoginRequest) (AuthResponse, error)
	Profile(ctx context.Context, userID string) (AuthResponse, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("user.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("user.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return AuthResponse{}, usererrors.ErrUserAlreadyExists
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		s.logger.Error("register email lookup failed", zap.Error(err))
		return AuthResponse{}, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return AuthResponse{}, err
	}

	u := &User{
		ID:       primitive.NewObjectID(),
		Name:     req.Name,
		Email:    email,
		Password: string(hashed),
	}

	if err := s.repo.Create(ctx, u); err != nil {
		// unique index backstop for a concurrent register with the same email
		if mongo.IsDuplicateKeyError(err) {
			return AuthResponse{}, usererrors.ErrUserAlreadyExists
		}
		s.logger.Error("register persist failed", zap.Error(err))
		return AuthResponse{}, err
	}

	token, err := generateToken(u)
	if err != nil {
		return AuthResponse{}, usererrors.ErrTokenGenerationFailed
	}

	s.logger.Info("register success", zap.String("user_id", u.ID.Hex()))
	return toAuthResponse(u, token), nil
}

func (s *service) Login(ctx context.Context, req LoginRequest) (AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	u, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return AuthResponse{}, usererrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(req.Password)); err != nil {
		return AuthResponse{}, usererrors.ErrInvalidCredentials
	}

	token, err := generateToken(u)
	if err != nil {
		return AuthResponse{}, usererrors.ErrTokenGenerationFailed
	}

	s.logger.Info("login success", zap.String("user_id", u.ID.Hex()))
	return toAuthResponse(u, token), nil
}

func (s *service) Profile(ctx context.Context, userID string) (AuthResponse, error) {
	id, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return AuthResponse{}, usererrors.ErrUserNotFound
	}

	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return AuthResponse{}, usererrors.ErrUserNotFound
	}

	return toAuthResponse(u, ""), nil
}

func generateToken(u *User) (string, error) {
	claims := jwt.MapClaims{
		"user_id":  u.ID.Hex(),
		"is_admin": u.IsAdmin,
		"exp":      time.Now().Add(tokenExpiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}

func toAuthResponse(u *User, token string) AuthResponse {
	return AuthResponse{
		ID:      u.ID.Hex(),
		Name:    u.Name,
		Email:   u.Email,
		IsAdmin: u.IsAdmin,
		Token:   token,
	}
}
