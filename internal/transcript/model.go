package transcript

import "time"

// Transcript is the final text of one ended session.
type Transcript struct {
	ID        string    `gorm:"primaryKey"`
	SessionID string    `gorm:"index"`
	Text      string    `gorm:"type:text"`
	CreatedAt time.Time `gorm:"index"`
}
