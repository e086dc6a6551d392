package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/reports"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

// AuthService registers members and issues the access tokens that carry a
// caller's id and role.
type AuthService struct {
	members MemberStore
	cfg     *config.Config
	now     func() time.Time
}

func NewAuthService(members MemberStore, cfg *config.Config) *AuthService {
	return &AuthService{members: members, cfg: cfg, now: time.Now}
}

func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	email := normalizeEmail(req.Email)
	if _, err := s.members.FindMemberByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, ErrMemberNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	member := models.Member{
		ID:       uuid.New().String(),
		Email:    email,
		Password: string(hash),
		Name:     strings.TrimSpace(req.Name),
		Role:     string(reports.RoleMember),
	}
	if err := s.members.CreateMember(ctx, &member); err != nil {
		return nil, err
	}
	slog.Info("member registered", "user_id", member.ID)

	return s.authResponse(&member)
}

func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	member, err := s.members.FindMemberByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, ErrMemberNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(member.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.authResponse(member)
}

func (s *AuthService) authResponse(member *models.Member) (*dto.AuthResponse, error) {
	token, err := s.generateAccessToken(member)
	if err != nil {
		return nil, err
	}
	return &dto.AuthResponse{
		AccessToken: token,
		Member: dto.MemberResponse{
			ID:    member.ID,
			Email: member.Email,
			Name:  member.Name,
			Role:  member.Role,
		},
	}, nil
}

func (s *AuthService) generateAccessToken(member *models.Member) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"sub":   member.ID,
		"email": member.Email,
		"role":  member.Role,
		"iat":   now.Unix(),
		"exp":   now.Add(s.cfg.JWTAccessExpiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}
	return signed, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
