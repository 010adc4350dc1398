// Package notify stores delivered notifications as outbox rows. Mobile
// clients poll their rows; admin broadcasts are written once with the
// admins audience instead of fanning out per recipient.
package notify

import (
	"context"
	"time"

	"fieldops/internal/core/domain/model/kernel"
	"fieldops/internal/core/ports"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	audienceActor  = "actor"
	audienceAdmins = "admins"
)

// NotificationDTO represents the database structure for persisting
// notifications.
type NotificationDTO struct {
	ID        uuid.UUID         `gorm:"type:uuid;primaryKey"`
	Audience  string            `gorm:"type:varchar(16);not null;index"`
	TargetID  *uuid.UUID        `gorm:"type:uuid;index"`
	Title     string            `gorm:"type:text;not null"`
	Body      string            `gorm:"type:text;not null"`
	Priority  string            `gorm:"type:varchar(32);not null"`
	Metadata  map[string]string `gorm:"type:jsonb;serializer:json"`
	CreatedAt time.Time         `gorm:"not null;index"`
}

// TableName overrides GORM's default naming to use "notifications".
func (NotificationDTO) TableName() string {
	return "notifications"
}

// GormNotificationSink implements NotificationSink by appending rows to
// the notifications table.
type GormNotificationSink struct {
	db *gorm.DB
}

// NewGormNotificationSink creates a new GORM notification sink.
func NewGormNotificationSink(db *gorm.DB) *GormNotificationSink {
	return &GormNotificationSink{db: db}
}

// Notify delivers a notification to a single actor.
func (s *GormNotificationSink) Notify(ctx context.Context, targetID kernel.UUID, n ports.Notification) error {
	raw := targetID.Bytes()
	dto := newDTO(audienceActor, &raw, n)
	return s.db.WithContext(ctx).Create(&dto).Error
}

// NotifyAdmins delivers a notification to every admin.
func (s *GormNotificationSink) NotifyAdmins(ctx context.Context, n ports.Notification) error {
	dto := newDTO(audienceAdmins, nil, n)
	return s.db.WithContext(ctx).Create(&dto).Error
}

func newDTO(audience string, targetID *uuid.UUID, n ports.Notification) NotificationDTO {
	return NotificationDTO{
		ID:        uuid.New(),
		Audience:  audience,
		TargetID:  targetID,
		Title:     n.Title,
		Body:      n.Body,
		Priority:  n.Priority,
		Metadata:  n.Metadata,
		CreatedAt: time.Now().UTC(),
	}
}
