package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/reports"
	"gorm.io/gorm"
)

// ResourceStore reads member, post and comment projections. Soft-deleted rows
// are treated as missing.
type ResourceStore struct {
	db *gorm.DB
}

func NewResourceStore(db *gorm.DB) *ResourceStore {
	return &ResourceStore{db: db}
}

func (s *ResourceStore) FindMember(ctx context.Context, id string) (*reports.Member, error) {
	var m models.Member
	if err := s.db.WithContext(ctx).Select("id", "name").Where("id = ?", id).Take(&m).Error; err != nil {
		return nil, notFoundIsNil("member", err)
	}
	return &reports.Member{ID: m.ID, Name: m.Name}, nil
}

func (s *ResourceStore) FindPost(ctx context.Context, id string) (*reports.Post, error) {
	var p models.Post
	if err := s.db.WithContext(ctx).Select("id", "title").Where("id = ?", id).Take(&p).Error; err != nil {
		return nil, notFoundIsNil("post", err)
	}
	return &reports.Post{ID: p.ID, Title: p.Title}, nil
}

func (s *ResourceStore) FindComment(ctx context.Context, id string) (*reports.Comment, error) {
	var c models.Comment
	if err := s.db.WithContext(ctx).Select("id", "content").Where("id = ?", id).Take(&c).Error; err != nil {
		return nil, notFoundIsNil("comment", err)
	}
	return &reports.Comment{ID: c.ID, Content: c.Content}, nil
}

func notFoundIsNil(kind string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	return fmt.Errorf("failed to find %s: %w", kind, err)
}
