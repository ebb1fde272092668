package ingest

import (
	"encoding/json"
	"testing"

	"github.com/quckapp/audit/model"
)

func TestMapAuthEvent(t *testing.T) {
	payload := []byte(`{
		"eventType": "LOGIN_FAILED",
		"tenantId": "tenant-1",
		"userId": "user-1",
		"email": "alice@example.com",
		"name": "Alice",
		"ipAddress": "10.0.0.1",
		"sessionId": "sess-1"
	}`)

	input, ok, err := MapAuthEvent(payload)
	if err != nil {
		t.Fatalf("MapAuthEvent() error = %v", err)
	}
	if !ok {
		t.Fatal("MapAuthEvent() skipped a mappable event")
	}
	if input.Action != "LOGIN_FAILED" {
		t.Errorf("Action = %q", input.Action)
	}
	if input.Category != model.CategoryAuthentication || input.Severity != model.SeverityMedium {
		t.Errorf("classification = (%s, %s)", input.Category, input.Severity)
	}
	if input.ActorEmail != "alice@example.com" || input.ActorName != "Alice" {
		t.Errorf("actor = (%q, %q)", input.ActorEmail, input.ActorName)
	}
	if input.ResourceType != "USER" || input.ResourceID != "user-1" {
		t.Errorf("resource = (%q, %q)", input.ResourceType, input.ResourceID)
	}
	if input.ResourceName != "alice@example.com" {
		t.Errorf("ResourceName = %q, want the actor email", input.ResourceName)
	}
}

func TestMapAuthEventSeverityEscalation(t *testing.T) {
	tests := []struct {
		eventType string
		category  model.AuditCategory
		severity  model.AuditSeverity
	}{
		{"USER_BANNED", model.CategorySecurity, model.SeverityCritical},
		{"ROLE_CHANGED", model.CategoryAuthorization, model.SeverityHigh},
		{"MFA_DISABLED", model.CategorySecurity, model.SeverityHigh},
		{"TOKEN_REFRESHED", model.CategoryAuthentication, model.SeverityLow},
	}
	for _, tt := range tests {
		payload, _ := json.Marshal(map[string]string{
			"eventType": tt.eventType,
			"tenantId":  "tenant-1",
			"userId":    "user-1",
		})
		input, ok, err := MapAuthEvent(payload)
		if err != nil || !ok {
			t.Fatalf("MapAuthEvent(%s) = (%v, %v)", tt.eventType, ok, err)
		}
		if input.Category != tt.category || input.Severity != tt.severity {
			t.Errorf("%s classified as (%s, %s), want (%s, %s)",
				tt.eventType, input.Category, input.Severity, tt.category, tt.severity)
		}
	}
}

func TestMapUserEvent(t *testing.T) {
	payload := []byte(`{
		"eventType": "USER_DELETED",
		"tenantId": "tenant-1",
		"userId": "user-9",
		"actorId": "admin-1",
		"actorEmail": "admin@example.com",
		"userName": "bob"
	}`)

	input, ok, err := MapUserEvent(payload)
	if err != nil {
		t.Fatalf("MapUserEvent() error = %v", err)
	}
	if !ok {
		t.Fatal("MapUserEvent() skipped a mappable event")
	}
	if input.Category != model.CategoryDataModification || input.Severity != model.SeverityHigh {
		t.Errorf("classification = (%s, %s)", input.Category, input.Severity)
	}
	if input.ActorID != "admin-1" {
		t.Errorf("ActorID = %q, want the explicit actor", input.ActorID)
	}
	if input.ResourceID != "user-9" || input.ResourceName != "bob" {
		t.Errorf("resource = (%q, %q)", input.ResourceID, input.ResourceName)
	}
}

func TestMapUserEventActorDefaultsToSubject(t *testing.T) {
	payload := []byte(`{"eventType": "USER_CREATED", "tenantId": "tenant-1", "userId": "user-1"}`)

	input, ok, err := MapUserEvent(payload)
	if err != nil || !ok {
		t.Fatalf("MapUserEvent() = (%v, %v)", ok, err)
	}
	if input.ActorID != "user-1" {
		t.Errorf("ActorID = %q, want the subject user id", input.ActorID)
	}
}

func TestMapSkipsUnmappableEvents(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{"unknown event type", `{"eventType": "USER_SNEEZED", "tenantId": "t", "userId": "u"}`},
		{"missing tenant", `{"eventType": "USER_CREATED", "userId": "u"}`},
		{"missing user", `{"eventType": "USER_CREATED", "tenantId": "t"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok, err := MapUserEvent([]byte(tt.payload))
			if err != nil {
				t.Fatalf("MapUserEvent() error = %v", err)
			}
			if ok {
				t.Error("MapUserEvent() mapped an event it should skip")
			}
		})
	}
}

func TestMapMalformedPayloadIsAnError(t *testing.T) {
	if _, _, err := MapUserEvent([]byte(`{not json`)); err == nil {
		t.Error("MapUserEvent() accepted malformed JSON")
	}
	if _, _, err := MapAuthEvent([]byte(`[]`)); err == nil {
		t.Error("MapAuthEvent() accepted a non-object payload")
	}
	if _, err := MapAuditEvent([]byte(`{`)); err == nil {
		t.Error("MapAuditEvent() accepted malformed JSON")
	}
}

func TestMapAuditEventPassthrough(t *testing.T) {
	payload := []byte(`{
		"tenantId": "tenant-1",
		"actorId": "user-1",
		"action": "REPORT_EXPORT",
		"resourceType": "REPORT",
		"resourceId": "rep-1",
		"metadata": {"format": "csv"},
		"severity": "HIGH",
		"category": "DATA_ACCESS"
	}`)

	input, err := MapAuditEvent(payload)
	if err != nil {
		t.Fatalf("MapAuditEvent() error = %v", err)
	}
	if input.Action != "REPORT_EXPORT" || input.TenantID != "tenant-1" {
		t.Errorf("input = %+v", input)
	}
	if input.Severity != model.SeverityHigh || input.Category != model.CategoryDataAccess {
		t.Errorf("classification = (%s, %s)", input.Category, input.Severity)
	}
	if input.Metadata != `{"format": "csv"}` {
		t.Errorf("Metadata = %q", input.Metadata)
	}
}

func TestMetadataFallbackRecordsOrigin(t *testing.T) {
	payload := []byte(`{
		"eventType": "LOGIN_SUCCESS",
		"tenantId": "tenant-1",
		"userId": "user-1",
		"source": "auth-service",
		"timestamp": "2025-06-02T09:30:00Z"
	}`)

	input, ok, err := MapAuthEvent(payload)
	if err != nil || !ok {
		t.Fatalf("MapAuthEvent() = (%v, %v)", ok, err)
	}

	var meta map[string]string
	if err := json.Unmarshal([]byte(input.Metadata), &meta); err != nil {
		t.Fatalf("metadata is not JSON: %v", err)
	}
	if meta["eventSource"] != "auth-service" || meta["eventTimestamp"] != "2025-06-02T09:30:00Z" {
		t.Errorf("metadata = %v", meta)
	}
}

func TestMetadataSourceDefaultsToStream(t *testing.T) {
	payload := []byte(`{"eventType": "LOGOUT", "tenantId": "tenant-1", "userId": "user-1"}`)

	input, ok, err := MapAuthEvent(payload)
	if err != nil || !ok {
		t.Fatalf("MapAuthEvent() = (%v, %v)", ok, err)
	}
	var meta map[string]string
	if err := json.Unmarshal([]byte(input.Metadata), &meta); err != nil {
		t.Fatalf("metadata is not JSON: %v", err)
	}
	if meta["eventSource"] != "stream" {
		t.Errorf("eventSource = %q, want stream", meta["eventSource"])
	}
}
