// Package transcript persists final transcripts of ended sessions.
package transcript

import (
	"context"
	"errors"

	"github.com/eleven-am/stt-sidecar/internal/shared"
	"gorm.io/gorm"
)

type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Migrate() error {
	return s.db.AutoMigrate(&Transcript{})
}

// Archive records the final transcript of an ended session. Empty
// transcripts are skipped; a session of pure silence leaves no record.
func (s *Store) Archive(ctx context.Context, sessionID, text string) error {
	if text == "" {
		return nil
	}
	return s.db.WithContext(ctx).Create(&Transcript{
		ID:        shared.NewID("tr_"),
		SessionID: sessionID,
		Text:      text,
	}).Error
}

// GetBySession returns the archived transcript for a session.
func (s *Store) GetBySession(ctx context.Context, sessionID string) (*Transcript, error) {
	var tr Transcript
	err := s.db.WithContext(ctx).Where("session_id = ?", sessionID).First(&tr).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, shared.ErrNotFound
	}
	return &tr, err
}

// Recent returns up to limit transcripts, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]*Transcript, error) {
	if limit <= 0 {
		limit = 50
	}
	var out []*Transcript
	err := s.db.WithContext(ctx).Order("created_at DESC").Limit(limit).Find(&out).Error
	return out, err
}
