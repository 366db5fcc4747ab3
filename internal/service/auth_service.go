package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/KaushikNaik2/Schedulix/internal/dto"
	"github.com/KaushikNaik2/Schedulix/internal/model"
	"github.com/KaushikNaik2/Schedulix/internal/repository"
	"github.com/KaushikNaik2/Schedulix/pkg/jwt"
)

var (
	ErrInvalidCredentials     = errors.New("invalid username or password")
	ErrUserNotFound           = errors.New("user not found")
	ErrUsernameTaken          = errors.New("username is already taken")
	ErrEmailTaken             = errors.New("email is already in use")
	ErrInvalidRole            = errors.New("role must be student or faculty")
	ErrSecurityQuestionNotSet = errors.New("user has not set up a security question")
	ErrSecurityAnswerMismatch = errors.New("security answer does not match")
)

// TokenBlacklist revokes token IDs until they expire
type TokenBlacklist interface {
	BlacklistToken(ctx context.Context, jti string, ttl time.Duration) error
}

// AuthService registration, login and password recovery
type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	// Logout revokes the token with the given ID until its expiry
	Logout(ctx context.Context, jti string, expiresAt time.Time) error
	// ForgotPasswordStart returns the index of the user's security question
	ForgotPasswordStart(ctx context.Context, username string) (*dto.SecurityQuestionResponse, error)
	// ForgotPasswordReset checks the security answer and sets the new password
	ForgotPasswordReset(ctx context.Context, req *dto.ForgotPasswordResetRequest) error
}

type authService struct {
	repo         *repository.Repository
	jwtMgr       *jwt.Manager
	blacklist    TokenBlacklist // nil: logout only forgets the token client side
	availability AvailabilityService
	clock        Clock
	logger       *zap.Logger
}

// NewAuthService creates an AuthService
func NewAuthService(
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	blacklist TokenBlacklist,
	availability AvailabilityService,
	clock Clock,
	logger *zap.Logger,
) AuthService {
	return &authService{
		repo:         repo,
		jwtMgr:       jwtMgr,
		blacklist:    blacklist,
		availability: availability,
		clock:        clock,
		logger:       logger,
	}
}

// ────────────────────── Register ──────────────────────

func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error) {
	role := strings.ToLower(req.Role)
	if role != model.RoleStudent && role != model.RoleFaculty {
		return nil, ErrInvalidRole
	}

	if _, err := s.repo.User.GetByUsername(ctx, req.Username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if _, err := s.repo.User.GetByEmail(ctx, req.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	pwHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("hash password failed", zap.Error(err))
		return nil, err
	}
	answerHash, err := bcrypt.GenerateFromPassword([]byte(normalizeAnswer(req.SecurityAnswer)), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("hash security answer failed", zap.Error(err))
		return nil, err
	}

	user := &model.User{
		Username:              req.Username,
		Email:                 req.Email,
		PasswordHash:          string(pwHash),
		Role:                  role,
		FullName:              optionalString(req.FullName),
		Department:            optionalString(req.Department),
		SecurityQuestionIndex: req.SecurityQuestionIndex,
		SecurityAnswerHash:    string(answerHash),
	}
	if err := s.repo.User.Create(ctx, user); err != nil {
		s.logger.Error("create user failed", zap.Error(err))
		return nil, err
	}

	s.logger.Info("user registered", zap.String("user_id", user.UserID), zap.String("role", role))

	return &dto.RegisterResponse{
		ID:       user.UserID,
		Username: user.Username,
		Email:    user.Email,
		Role:     user.Role,
	}, nil
}

// ────────────────────── Login / Logout ──────────────────────

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	user, err := s.repo.User.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("load user failed", zap.Error(err))
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.jwtMgr.GenerateAccessToken(user.UserID, user.Username, user.Role)
	if err != nil {
		s.logger.Error("generate access token failed", zap.Error(err))
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int(s.jwtMgr.AccessTokenTTL().Seconds()),
		User:        toUserResponse(user, s.availability.Current(ctx, user)),
	}, nil
}

func (s *authService) Logout(ctx context.Context, jti string, expiresAt time.Time) error {
	if s.blacklist == nil {
		s.logger.Warn("token blacklist unavailable, logout is client side only", zap.String("jti", jti))
		return nil
	}
	return s.blacklist.BlacklistToken(ctx, jti, expiresAt.Sub(s.clock.Now()))
}

// ────────────────────── Forgot password ──────────────────────

func (s *authService) ForgotPasswordStart(ctx context.Context, username string) (*dto.SecurityQuestionResponse, error) {
	user, err := s.findByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user.SecurityQuestionIndex == 0 {
		return nil, ErrSecurityQuestionNotSet
	}
	return &dto.SecurityQuestionResponse{SecurityQuestionIndex: user.SecurityQuestionIndex}, nil
}

func (s *authService) ForgotPasswordReset(ctx context.Context, req *dto.ForgotPasswordResetRequest) error {
	user, err := s.findByUsername(ctx, req.Username)
	if err != nil {
		return err
	}
	if user.SecurityQuestionIndex == 0 || user.SecurityAnswerHash == "" {
		return ErrSecurityQuestionNotSet
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.SecurityAnswerHash), []byte(normalizeAnswer(req.SecurityAnswer))); err != nil {
		return ErrSecurityAnswerMismatch
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("hash password failed", zap.Error(err))
		return err
	}
	user.PasswordHash = string(hash)
	if err := s.repo.User.Update(ctx, user); err != nil {
		s.logger.Error("update password failed", zap.String("user_id", user.UserID), zap.Error(err))
		return err
	}

	s.logger.Info("password reset via security question", zap.String("user_id", user.UserID))
	return nil
}

func (s *authService) findByUsername(ctx context.Context, username string) (*model.User, error) {
	user, err := s.repo.User.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// normalizeAnswer answers compare case- and whitespace-insensitively
func normalizeAnswer(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func optionalString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
