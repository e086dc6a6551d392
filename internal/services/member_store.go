package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/models"
	"gorm.io/gorm"
)

var (
	ErrEmailTaken     = errors.New("email already registered")
	ErrMemberNotFound = errors.New("member not found")
)

// MemberStore is the account storage AuthService needs.
type MemberStore interface {
	CreateMember(ctx context.Context, m *models.Member) error
	FindMemberByEmail(ctx context.Context, email string) (*models.Member, error)
}

type GormMemberStore struct {
	db *gorm.DB
}

func NewGormMemberStore(db *gorm.DB) *GormMemberStore {
	return &GormMemberStore{db: db}
}

func (s *GormMemberStore) CreateMember(ctx context.Context, m *models.Member) error {
	if err := s.db.WithContext(ctx).Create(m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrEmailTaken
		}
		return fmt.Errorf("failed to create member: %w", err)
	}
	return nil
}

func (s *GormMemberStore) FindMemberByEmail(ctx context.Context, email string) (*models.Member, error) {
	var m models.Member
	if err := s.db.WithContext(ctx).Where("email = ?", email).Take(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, fmt.Errorf("failed to find member: %w", err)
	}
	return &m, nil
}
