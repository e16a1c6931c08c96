package http

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/storefront/internal/audit"
	"github.com/mrlokans/storefront/internal/auth"
	"github.com/mrlokans/storefront/internal/entities"
)

const auditPageSize = 25

// AuditController lists recorded admin activity.
type AuditController struct {
	auditService *audit.Service
	identities   *auth.Service
}

func NewAuditController(auditService *audit.Service, identities *auth.Service) *AuditController {
	return &AuditController{
		auditService: auditService,
		identities:   identities,
	}
}

// AuditRow is one event with its actor resolved to an email when possible.
type AuditRow struct {
	entities.AuditEvent
	Actor string `json:"actor"`
}

// EventTypeOption is one entry of the event type filter.
type EventTypeOption struct {
	Value string
	Label string
}

func eventTypes() []EventTypeOption {
	return []EventTypeOption{
		{Value: "", Label: "All Events"},
		{Value: string(entities.AuditEventAuth), Label: "Authentication"},
		{Value: string(entities.AuditEventSettings), Label: "Settings"},
		{Value: string(entities.AuditEventFeatured), Label: "Featured Books"},
	}
}

// AuditLogPage renders the audit log.
// GET /admin/audit
func (ac *AuditController) AuditLogPage(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	eventType := entities.AuditEventType(c.Query("type"))

	events, total, err := ac.auditService.GetEvents(c.Request.Context(), eventType, auditPageSize, (page-1)*auditPageSize)
	if err != nil {
		c.String(http.StatusInternalServerError, "Failed to load audit events")
		return
	}

	data := baseTemplateData(c, "Audit Log")
	data["Events"] = ac.resolveActors(c.Request.Context(), events)
	data["CurrentPage"] = page
	data["TotalPages"] = totalPages(total, auditPageSize)
	data["TotalEvents"] = total
	data["EventType"] = string(eventType)
	data["EventTypes"] = eventTypes()
	data["Email"] = auth.GetEmail(c)
	c.HTML(http.StatusOK, "admin-audit", data)
}

// GetAuditEvents returns paginated audit events as JSON.
// GET /admin/audit/events
func (ac *AuditController) GetAuditEvents(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(auditPageSize)))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = auditPageSize
	}

	events, total, err := ac.auditService.GetEvents(c.Request.Context(), entities.AuditEventType(c.Query("type")), limit, (page-1)*limit)
	if err != nil {
		respondInternalError(c, err, "list audit events")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"events":       ac.resolveActors(c.Request.Context(), events),
		"page":         page,
		"limit":        limit,
		"total_pages":  totalPages(total, limit),
		"total_events": total,
	})
}

// resolveActors looks each distinct actor up once. Unknown or deleted
// identities fall back to the raw ID.
func (ac *AuditController) resolveActors(ctx context.Context, events []entities.AuditEvent) []AuditRow {
	emails := make(map[string]string)
	rows := make([]AuditRow, len(events))
	for i, event := range events {
		rows[i] = AuditRow{AuditEvent: event, Actor: event.ActorID}
		if event.ActorID == "" || ac.identities == nil {
			continue
		}
		email, seen := emails[event.ActorID]
		if !seen {
			if identity, err := ac.identities.GetIdentity(ctx, event.ActorID); err == nil {
				email = identity.Email
			}
			emails[event.ActorID] = email
		}
		if email != "" {
			rows[i].Actor = email
		}
	}
	return rows
}

func totalPages(total int64, limit int) int {
	pages := (int(total) + limit - 1) / limit
	if pages < 1 {
		pages = 1
	}
	return pages
}
