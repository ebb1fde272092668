package report

import (
	"testing"

	"github.com/quckapp/audit/model"
)

func accessRecord(action, resourceType string) *model.AuditRecord {
	return &model.AuditRecord{
		ID:           model.NewID(),
		TenantID:     "tenant-1",
		ActorEmail:   "alice@example.com",
		Action:       action,
		ResourceType: resourceType,
		Category:     model.CategoryDataAccess,
		Severity:     model.SeverityLow,
	}
}

func TestAccessLogReadWriteSplit(t *testing.T) {
	records := []*model.AuditRecord{
		accessRecord("FILE_READ", "FILE"),
		accessRecord("DOCUMENT_VIEW", "DOCUMENT"),
		accessRecord("GET_PROFILE", "USER"),
		accessRecord("FILE_CREATE", "FILE"),
		accessRecord("RECORD_UPDATE", "RECORD"),
		accessRecord("RECORD_DELETE", "RECORD"),
		accessRecord("SCHEMA_WRITE", "SCHEMA"),
	}
	gen := NewAccessLogGenerator(&fakeRecordRepo{records: records})

	summary := gen.Summarize(testContext(), records)

	if got := summary["readOperations"].(int64); got != 3 {
		t.Errorf("readOperations = %d, want 3", got)
	}
	if got := summary["writeOperations"].(int64); got != 4 {
		t.Errorf("writeOperations = %d, want 4", got)
	}

	byResource := summary["accessByResourceType"].(map[string]int64)
	if byResource["FILE"] != 2 || byResource["RECORD"] != 2 {
		t.Errorf("accessByResourceType = %v", byResource)
	}
	if got := summary["uniqueUsers"].(int); got != 1 {
		t.Errorf("uniqueUsers = %d, want 1", got)
	}
}

func TestAccessLogUnclassifiedActionCountsNeither(t *testing.T) {
	records := []*model.AuditRecord{accessRecord("SESSION_PING", "SESSION")}
	gen := NewAccessLogGenerator(&fakeRecordRepo{records: records})

	summary := gen.Summarize(testContext(), records)
	if got := summary["readOperations"].(int64); got != 0 {
		t.Errorf("readOperations = %d, want 0", got)
	}
	if got := summary["writeOperations"].(int64); got != 0 {
		t.Errorf("writeOperations = %d, want 0", got)
	}
	if got := summary["totalEvents"].(int); got != 1 {
		t.Errorf("totalEvents = %d, want 1", got)
	}
}
