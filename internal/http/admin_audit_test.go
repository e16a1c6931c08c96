package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/storefront/internal/entities"
)

func TestAuditController_RequiresAdmin(t *testing.T) {
	env := setupTestEnv(t)

	w := env.get("/admin/audit")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/admin/login?next=%2Fadmin%2Faudit", w.Header().Get("Location"))
}

func TestAuditController_AuditLogPage(t *testing.T) {
	env := setupTestEnv(t)
	env.signUpAdmin(t)
	env.seedSettings(t, nil)
	env.post(adminHomePath, url.Values{"show_ebooks_card": {"on"}})
	env.auditor.Wait()

	w := env.get("/admin/audit")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Audit Log (3)")
	assert.Contains(t, body, "homepage_settings_save")
	assert.Contains(t, body, testEmail, "actor resolved to an email")

	w = env.get("/admin/audit?type=settings")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Audit Log (1)")
	assert.NotContains(t, w.Body.String(), "admin_signup")
}

func TestAuditController_GetAuditEvents(t *testing.T) {
	env := setupTestEnv(t)
	env.signUpAdmin(t)
	env.auditor.Wait()

	require.NoError(t, env.auditor.Log(context.Background(), &entities.AuditEvent{
		ActorID:   "deleted-identity",
		EventType: entities.AuditEventFeatured,
		Action:    "featured_add",
		Status:    entities.AuditStatusSuccess,
		CreatedAt: time.Now().Add(time.Minute),
	}))

	w := env.get("/admin/audit/events?limit=2")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Events []struct {
			Action string `json:"action"`
			Actor  string `json:"actor"`
		} `json:"events"`
		TotalEvents int64 `json:"total_events"`
		TotalPages  int   `json:"total_pages"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(3), resp.TotalEvents)
	assert.Equal(t, 2, resp.TotalPages)
	require.Len(t, resp.Events, 2)
	assert.Equal(t, "featured_add", resp.Events[0].Action)
	assert.Equal(t, "deleted-identity", resp.Events[0].Actor, "unknown actors keep their ID")
}
