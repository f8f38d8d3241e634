package etjob

import (
	"testing"

	"dip/backend/internal/app/domains/entity/etprimitive"
)

func TestNewJob(t *testing.T) {
	job, err := NewJob("job-1", etprimitive.Authenticated("user-1"), "uploads/abc-invoice.pdf", CategoryExpense)
	if err != nil {
		t.Fatalf("NewJob failed: %v", err)
	}

	if job.Status != JobStatusPending {
		t.Fatalf("new job status = %s, want PENDING", job.Status)
	}
	if job.InputKind != "pdf" {
		t.Fatalf("input kind = %s, want pdf", job.InputKind)
	}
	if job.OutputRef != "" || job.FailureDetail != "" {
		t.Fatalf("new job must not carry output_ref or failure_detail")
	}
}

func TestNewJobValidation(t *testing.T) {
	owner := etprimitive.Anonymous()

	if _, err := NewJob("", owner, "uploads/a.pdf", CategoryExpense); err != ErrInvalidJobID {
		t.Fatalf("empty id error = %v, want ErrInvalidJobID", err)
	}
	if _, err := NewJob("job-1", owner, "", CategoryExpense); err != ErrInvalidInputRef {
		t.Fatalf("empty input ref error = %v, want ErrInvalidInputRef", err)
	}
	if _, err := NewJob("job-1", owner, "uploads/a.pdf", Category("INVOICE")); err != ErrInvalidCategory {
		t.Fatalf("unknown category error = %v, want ErrInvalidCategory", err)
	}
}

func TestParseCategory(t *testing.T) {
	cases := []struct {
		input string
		want  Category
		ok    bool
	}{
		{"EXPENSE", CategoryExpense, true},
		{"expense", CategoryExpense, true},
		{" hr ", CategoryHR, true},
		{"HR", CategoryHR, true},
		{"", "", false},
		{"INVOICE", "", false},
	}

	for _, c := range cases {
		got, ok := ParseCategory(c.input)
		if ok != c.ok || got != c.want {
			t.Fatalf("ParseCategory(%q) = (%q, %v), want (%q, %v)", c.input, got, ok, c.want, c.ok)
		}
	}
}

func TestDeriveInputKind(t *testing.T) {
	cases := []struct {
		inputRef string
		want     string
	}{
		{"uploads/abc-invoice.pdf", "pdf"},
		{"uploads/abc-photo.JPEG", "jpeg"},
		{"uploads/abc-archive.tar.gz", "gz"},
		{"uploads/abc-noext", "unknown"},
		{"uploads/abc-trailing.", "unknown"},
		{"plain.docx", "docx"},
	}

	for _, c := range cases {
		if got := DeriveInputKind(c.inputRef); got != c.want {
			t.Fatalf("DeriveInputKind(%q) = %q, want %q", c.inputRef, got, c.want)
		}
	}
}

func TestStatusTransitions(t *testing.T) {
	cases := []struct {
		from JobStatus
		to   JobStatus
		ok   bool
	}{
		{JobStatusPending, JobStatusProcessing, true},
		{JobStatusPending, JobStatusFailed, true},
		{JobStatusPending, JobStatusCompleted, false},
		{JobStatusProcessing, JobStatusCompleted, true},
		{JobStatusProcessing, JobStatusFailed, true},
		{JobStatusProcessing, JobStatusPending, false},
		{JobStatusCompleted, JobStatusFailed, false},
		{JobStatusCompleted, JobStatusProcessing, false},
		{JobStatusFailed, JobStatusProcessing, false},
	}

	for _, c := range cases {
		if got := c.from.CanTransition(c.to); got != c.ok {
			t.Fatalf("CanTransition(%s -> %s) = %v, want %v", c.from, c.to, got, c.ok)
		}
	}
}

func TestStatusPredicates(t *testing.T) {
	if !JobStatusCompleted.IsTerminal() || !JobStatusFailed.IsTerminal() {
		t.Fatalf("COMPLETED/FAILED must be terminal")
	}
	if JobStatusPending.IsTerminal() || JobStatusProcessing.IsTerminal() {
		t.Fatalf("PENDING/PROCESSING must not be terminal")
	}
	if !JobStatusPending.InFlight() || !JobStatusProcessing.InFlight() {
		t.Fatalf("PENDING/PROCESSING must be in flight")
	}
	if JobStatusCompleted.InFlight() {
		t.Fatalf("COMPLETED must not be in flight")
	}
}

func TestStatusUpdateVariants(t *testing.T) {
	if (ProcessingUpdate{}).Target() != JobStatusProcessing {
		t.Fatalf("ProcessingUpdate target mismatch")
	}
	if (CompletedUpdate{OutputRef: "outputs/x"}).Target() != JobStatusCompleted {
		t.Fatalf("CompletedUpdate target mismatch")
	}
	if (FailedUpdate{Detail: "boom"}).Target() != JobStatusFailed {
		t.Fatalf("FailedUpdate target mismatch")
	}
}

func TestReadableBy(t *testing.T) {
	ownerP := etprimitive.Authenticated("P")

	owned, err := NewJob("job-1", ownerP, "uploads/a.pdf", CategoryExpense)
	if err != nil {
		t.Fatalf("NewJob failed: %v", err)
	}

	if !owned.ReadableBy(ownerP) {
		t.Fatalf("owner must read own job")
	}
	if owned.ReadableBy(etprimitive.Authenticated("Q")) {
		t.Fatalf("other principal must not read owned job")
	}
	if owned.ReadableBy(etprimitive.Anonymous()) {
		t.Fatalf("anonymous must not read owned job")
	}

	guest, err := NewJob("job-2", etprimitive.Anonymous(), "uploads/b.pdf", CategoryHR)
	if err != nil {
		t.Fatalf("NewJob failed: %v", err)
	}

	// 匿名任务对任何持有 ID 的请求可见
	if !guest.ReadableBy(etprimitive.Anonymous()) || !guest.ReadableBy(ownerP) {
		t.Fatalf("guest job must be readable by anyone")
	}
}
