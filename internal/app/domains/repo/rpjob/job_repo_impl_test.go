package rpjob

import (
	"testing"

	"dip/backend/internal/app/domains/entity/etjob"
	"dip/backend/internal/common/entity"
)

type bogusUpdate struct{}

func (bogusUpdate) Target() etjob.JobStatus { return etjob.JobStatusPending }

func TestUpdateClausesProcessing(t *testing.T) {
	guards, updates, err := updateClauses(etjob.ProcessingUpdate{})
	if err != nil {
		t.Fatalf("updateClauses failed: %v", err)
	}
	if len(guards) != 1 || guards[0] != entity.JobStatusPending {
		t.Fatalf("guards = %v, want [PENDING]", guards)
	}
	if updates["status"] != entity.JobStatusProcessing {
		t.Fatalf("status = %v, want PROCESSING", updates["status"])
	}
	if _, ok := updates["updated_at"]; !ok {
		t.Fatalf("updated_at must be written on every transition")
	}
	if _, ok := updates["output_ref"]; ok {
		t.Fatalf("ProcessingUpdate must not touch output_ref")
	}
}

func TestUpdateClausesCompleted(t *testing.T) {
	guards, updates, err := updateClauses(etjob.CompletedUpdate{
		OutputRef:  "outputs/job-1-result.xlsx",
		ResultMeta: []byte(`{"field_num":3}`),
	})
	if err != nil {
		t.Fatalf("updateClauses failed: %v", err)
	}
	if len(guards) != 1 || guards[0] != entity.JobStatusProcessing {
		t.Fatalf("guards = %v, want [PROCESSING]", guards)
	}
	if updates["output_ref"] != "outputs/job-1-result.xlsx" {
		t.Fatalf("output_ref = %v", updates["output_ref"])
	}
	if _, ok := updates["result_meta"]; !ok {
		t.Fatalf("result_meta must be written when provided")
	}
	if _, ok := updates["failure_detail"]; ok {
		t.Fatalf("CompletedUpdate must not touch failure_detail")
	}
}

func TestUpdateClausesCompletedWithoutMeta(t *testing.T) {
	_, updates, err := updateClauses(etjob.CompletedUpdate{OutputRef: "outputs/x"})
	if err != nil {
		t.Fatalf("updateClauses failed: %v", err)
	}
	if _, ok := updates["result_meta"]; ok {
		t.Fatalf("empty result_meta must not be written")
	}
}

func TestUpdateClausesFailed(t *testing.T) {
	guards, updates, err := updateClauses(etjob.FailedUpdate{Detail: "document not extractable"})
	if err != nil {
		t.Fatalf("updateClauses failed: %v", err)
	}
	if len(guards) != 2 {
		t.Fatalf("guards = %v, want [PENDING PROCESSING]", guards)
	}
	if updates["failure_detail"] != "document not extractable" {
		t.Fatalf("failure_detail = %v", updates["failure_detail"])
	}
	if _, ok := updates["output_ref"]; ok {
		t.Fatalf("FailedUpdate must not touch output_ref")
	}
}

func TestUpdateClausesRejectsUnknownVariant(t *testing.T) {
	if _, _, err := updateClauses(bogusUpdate{}); err == nil {
		t.Fatalf("unknown update variant must be rejected")
	}
}
