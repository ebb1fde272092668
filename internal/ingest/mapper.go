package ingest

import (
	"encoding/json"
	"fmt"

	"github.com/quckapp/audit/internal/auditlog"
	"github.com/quckapp/audit/model"
)

// eventMapping classifies one upstream event type into an audit action.
type eventMapping struct {
	action   string
	category model.AuditCategory
	severity model.AuditSeverity
}

var userEventMappings = map[string]eventMapping{
	"USER_CREATED":     {"USER_CREATED", model.CategoryDataModification, model.SeverityMedium},
	"USER_UPDATED":     {"USER_UPDATED", model.CategoryDataModification, model.SeverityLow},
	"USER_DEACTIVATED": {"USER_DEACTIVATED", model.CategorySecurity, model.SeverityHigh},
	"PROFILE_UPDATED":  {"PROFILE_UPDATED", model.CategoryDataModification, model.SeverityLow},
	"USER_DELETED":     {"USER_DELETED", model.CategoryDataModification, model.SeverityHigh},
	"USER_RESTORED":    {"USER_RESTORED", model.CategoryDataModification, model.SeverityMedium},
}

var authEventMappings = map[string]eventMapping{
	"USER_REGISTERED":          {"USER_REGISTERED", model.CategoryAuthentication, model.SeverityMedium},
	"LOGIN_SUCCESS":            {"LOGIN_SUCCESS", model.CategoryAuthentication, model.SeverityLow},
	"LOGIN_FAILED":             {"LOGIN_FAILED", model.CategoryAuthentication, model.SeverityMedium},
	"LOGOUT":                   {"LOGOUT", model.CategoryAuthentication, model.SeverityLow},
	"PASSWORD_CHANGED":         {"PASSWORD_CHANGED", model.CategorySecurity, model.SeverityMedium},
	"PASSWORD_RESET_REQUESTED": {"PASSWORD_RESET_REQUESTED", model.CategorySecurity, model.SeverityMedium},
	"PASSWORD_RESET_COMPLETED": {"PASSWORD_RESET_COMPLETED", model.CategorySecurity, model.SeverityMedium},
	"USER_BANNED":              {"USER_BANNED", model.CategorySecurity, model.SeverityCritical},
	"USER_UNBANNED":            {"USER_UNBANNED", model.CategorySecurity, model.SeverityHigh},
	"ROLE_CHANGED":             {"ROLE_CHANGED", model.CategoryAuthorization, model.SeverityHigh},
	"PERMISSION_GRANTED":       {"PERMISSION_GRANTED", model.CategoryAuthorization, model.SeverityMedium},
	"PERMISSION_REVOKED":       {"PERMISSION_REVOKED", model.CategoryAuthorization, model.SeverityHigh},
	"TOKEN_REFRESHED":          {"TOKEN_REFRESHED", model.CategoryAuthentication, model.SeverityLow},
	"MFA_ENABLED":              {"MFA_ENABLED", model.CategorySecurity, model.SeverityMedium},
	"MFA_DISABLED":             {"MFA_DISABLED", model.CategorySecurity, model.SeverityHigh},
}

// lifecycleEvent is the wire shape shared by user and auth events.
type lifecycleEvent struct {
	EventType  string          `json:"eventType"`
	TenantID   string          `json:"tenantId"`
	UserID     string          `json:"userId"`
	ActorID    string          `json:"actorId"`
	ActorEmail string          `json:"actorEmail"`
	ActorName  string          `json:"actorName"`
	Email      string          `json:"email"`
	Name       string          `json:"name"`
	UserName   string          `json:"userName"`
	Metadata   json.RawMessage `json:"metadata"`
	IPAddress  string          `json:"ipAddress"`
	UserAgent  string          `json:"userAgent"`
	SessionID  string          `json:"sessionId"`
	Source     string          `json:"source"`
	Timestamp  string          `json:"timestamp"`
}

// auditEvent is a fully-formed audit record published by another service.
type auditEvent struct {
	TenantID      string              `json:"tenantId"`
	ActorID       string              `json:"actorId"`
	ActorEmail    string              `json:"actorEmail"`
	ActorName     string              `json:"actorName"`
	Action        string              `json:"action"`
	ResourceType  string              `json:"resourceType"`
	ResourceID    string              `json:"resourceId"`
	ResourceName  string              `json:"resourceName"`
	Metadata      json.RawMessage     `json:"metadata"`
	PreviousState json.RawMessage     `json:"previousState"`
	NewState      json.RawMessage     `json:"newState"`
	IPAddress     string              `json:"ipAddress"`
	UserAgent     string              `json:"userAgent"`
	SessionID     string              `json:"sessionId"`
	Severity      model.AuditSeverity `json:"severity"`
	Category      model.AuditCategory `json:"category"`
}

// MapAuditEvent decodes a ready-made audit event into a create input.
func MapAuditEvent(payload []byte) (auditlog.CreateRecordInput, error) {
	var event auditEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return auditlog.CreateRecordInput{}, fmt.Errorf("malformed audit event: %w", err)
	}
	return auditlog.CreateRecordInput{
		TenantID:      event.TenantID,
		ActorID:       event.ActorID,
		ActorEmail:    event.ActorEmail,
		ActorName:     event.ActorName,
		Action:        event.Action,
		ResourceType:  event.ResourceType,
		ResourceID:    event.ResourceID,
		ResourceName:  event.ResourceName,
		Metadata:      string(event.Metadata),
		PreviousState: string(event.PreviousState),
		NewState:      string(event.NewState),
		IPAddress:     event.IPAddress,
		UserAgent:     event.UserAgent,
		SessionID:     event.SessionID,
		Severity:      event.Severity,
		Category:      event.Category,
	}, nil
}

// MapUserEvent translates a user lifecycle event into a create input. The
// second return is false when the event type is unknown or required fields
// are missing: such events are skipped, not failed.
func MapUserEvent(payload []byte) (auditlog.CreateRecordInput, bool, error) {
	var event lifecycleEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return auditlog.CreateRecordInput{}, false, fmt.Errorf("malformed user event: %w", err)
	}
	mapping, ok := userEventMappings[event.EventType]
	if !ok {
		return auditlog.CreateRecordInput{}, false, nil
	}
	if event.TenantID == "" || event.UserID == "" {
		return auditlog.CreateRecordInput{}, false, nil
	}

	actorID := event.ActorID
	if actorID == "" {
		actorID = event.UserID
	}
	return auditlog.CreateRecordInput{
		TenantID:     event.TenantID,
		ActorID:      actorID,
		ActorEmail:   event.ActorEmail,
		ActorName:    event.ActorName,
		Action:       mapping.action,
		ResourceType: "USER",
		ResourceID:   event.UserID,
		ResourceName: event.UserName,
		Metadata:     extractMetadata(event),
		IPAddress:    event.IPAddress,
		UserAgent:    event.UserAgent,
		SessionID:    event.SessionID,
		Severity:     mapping.severity,
		Category:     mapping.category,
	}, true, nil
}

// MapAuthEvent translates an authentication event into a create input.
// Auth events carry the actor's email and name under different keys than
// user events, and the resource name is the email.
func MapAuthEvent(payload []byte) (auditlog.CreateRecordInput, bool, error) {
	var event lifecycleEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return auditlog.CreateRecordInput{}, false, fmt.Errorf("malformed auth event: %w", err)
	}
	mapping, ok := authEventMappings[event.EventType]
	if !ok {
		return auditlog.CreateRecordInput{}, false, nil
	}
	if event.TenantID == "" || event.UserID == "" {
		return auditlog.CreateRecordInput{}, false, nil
	}

	actorID := event.ActorID
	if actorID == "" {
		actorID = event.UserID
	}
	return auditlog.CreateRecordInput{
		TenantID:     event.TenantID,
		ActorID:      actorID,
		ActorEmail:   event.Email,
		ActorName:    event.Name,
		Action:       mapping.action,
		ResourceType: "USER",
		ResourceID:   event.UserID,
		ResourceName: event.Email,
		Metadata:     extractMetadata(event),
		IPAddress:    event.IPAddress,
		UserAgent:    event.UserAgent,
		SessionID:    event.SessionID,
		Severity:     mapping.severity,
		Category:     mapping.category,
	}, true, nil
}

// extractMetadata keeps the event's own metadata when present, otherwise
// records the event source and timestamp so the origin is never lost.
func extractMetadata(event lifecycleEvent) string {
	if len(event.Metadata) > 0 && string(event.Metadata) != "null" {
		return string(event.Metadata)
	}
	source := event.Source
	if source == "" {
		source = "stream"
	}
	fallback, err := json.Marshal(map[string]string{
		"eventSource":    source,
		"eventTimestamp": event.Timestamp,
	})
	if err != nil {
		return ""
	}
	return string(fallback)
}
