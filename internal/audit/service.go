package audit

import (
	"context"
	"encoding/json"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog/log"

	"github.com/mrlokans/storefront/internal/database/audit"
	"github.com/mrlokans/storefront/internal/entities"
)

// Service provides high-level audit logging functionality.
type Service struct {
	repo *audit.Repository
	wg   sync.WaitGroup
}

// NewService creates a new audit service.
func NewService(repo *audit.Repository) *Service {
	return &Service{repo: repo}
}

// Log records a generic audit event.
func (s *Service) Log(ctx context.Context, event *entities.AuditEvent) error {
	return s.repo.LogEvent(ctx, event)
}

// LogAsync records an audit event in the background (non-blocking).
func (s *Service) LogAsync(event *entities.AuditEvent) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.repo.LogEvent(ctx, event); err != nil {
			log.Error().Err(err).Str("action", event.Action).Msg("failed to log audit event")
		}
	}()
}

// Wait blocks until every pending asynchronous event has been written.
func (s *Service) Wait() {
	s.wg.Wait()
}

// LogAdminSignup records creation of an admin account.
func (s *Service) LogAdminSignup(actorID, email, ipAddr string, err error) {
	event := &entities.AuditEvent{
		ActorID:     actorID,
		EventType:   entities.AuditEventAuth,
		Action:      "admin_signup",
		Description: "Admin signup for " + email,
		EntityType:  "admin_user",
		EntityID:    actorID,
		IPAddress:   ipAddr,
	}
	s.LogAsync(withOutcome(event, err))
}

// LogLogin records an admin login attempt.
func (s *Service) LogLogin(actorID, email, ipAddr string, err error) {
	event := &entities.AuditEvent{
		ActorID:     actorID,
		EventType:   entities.AuditEventAuth,
		Action:      "admin_login",
		Description: "Admin login for " + email,
		IPAddress:   ipAddr,
	}
	s.LogAsync(withOutcome(event, err))
}

// LogLogout records an admin logout.
func (s *Service) LogLogout(actorID, ipAddr string) {
	s.LogAsync(&entities.AuditEvent{
		ActorID:   actorID,
		EventType: entities.AuditEventAuth,
		Action:    "admin_logout",
		IPAddress: ipAddr,
		Status:    entities.AuditStatusSuccess,
	})
}

// LogSettingsSave records a homepage settings update.
func (s *Service) LogSettingsSave(actorID, settingsID string, err error) {
	event := &entities.AuditEvent{
		ActorID:     actorID,
		EventType:   entities.AuditEventSettings,
		Action:      "homepage_settings_save",
		Description: "Saved homepage settings",
		EntityType:  "homepage_settings",
		EntityID:    settingsID,
	}
	s.LogAsync(withOutcome(event, err))
}

// LogFeatured records a change to the featured books list. action is one of
// "add", "remove", "move_up" or "move_down".
func (s *Service) LogFeatured(actorID, action, entityID string, metadata map[string]any, err error) {
	event := &entities.AuditEvent{
		ActorID:     actorID,
		EventType:   entities.AuditEventFeatured,
		Action:      "featured_" + action,
		Description: "Featured books " + action,
		EntityType:  "featured_book",
		EntityID:    entityID,
	}

	if len(metadata) > 0 {
		if mdBytes, e := json.Marshal(metadata); e == nil {
			event.Metadata = string(mdBytes)
		}
	}

	s.LogAsync(withOutcome(event, err))
}

// GetEvents retrieves paginated audit events.
func (s *Service) GetEvents(ctx context.Context, eventType entities.AuditEventType, limit, offset int) ([]entities.AuditEvent, int64, error) {
	return s.repo.GetEvents(ctx, eventType, limit, offset)
}

// DeleteOldEvents removes events older than the specified duration.
func (s *Service) DeleteOldEvents(ctx context.Context, retention time.Duration) (int64, error) {
	cutoff := time.Now().Add(-retention)
	return s.repo.DeleteOldEvents(ctx, cutoff)
}

func withOutcome(event *entities.AuditEvent, err error) *entities.AuditEvent {
	event.Status = entities.AuditStatusSuccess
	if err != nil {
		event.Status = entities.AuditStatusFailed
		event.ErrorMsg = truncate(err.Error(), 500)
	}
	return event
}

// truncate shortens s to at most maxLen bytes without splitting a rune.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	cut := maxLen - 3
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
