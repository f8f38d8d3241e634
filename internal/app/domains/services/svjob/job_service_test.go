package svjob

import (
	"context"
	"errors"
	"testing"
	"time"

	"dip/backend/internal/app/domains/entity/etjob"
	"dip/backend/internal/app/domains/entity/etprimitive"
	"dip/backend/internal/app/domains/modules/mdjob"
	"dip/backend/internal/app/pkg/errorx"
	"dip/backend/internal/common/entity"
	"dip/backend/internal/common/model"
)

// fakeJobRepo 内存仓储
type fakeJobRepo struct {
	jobs      map[string]*etjob.Job
	createErr error
}

func newFakeJobRepo() *fakeJobRepo {
	return &fakeJobRepo{jobs: make(map[string]*etjob.Job)}
}

func (r *fakeJobRepo) Create(ctx context.Context, job *etjob.Job) error {
	if r.createErr != nil {
		return r.createErr
	}
	copied := *job
	r.jobs[job.ID] = &copied
	return nil
}

func (r *fakeJobRepo) GetByID(ctx context.Context, jobID string) (*etjob.Job, error) {
	job, ok := r.jobs[jobID]
	if !ok {
		return nil, nil
	}
	copied := *job
	return &copied, nil
}

func (r *fakeJobRepo) ApplyUpdate(ctx context.Context, jobID string, update etjob.StatusUpdate) (bool, error) {
	job, ok := r.jobs[jobID]
	if !ok || !job.Status.CanTransition(update.Target()) {
		return false, nil
	}
	job.Status = update.Target()
	return true, nil
}

func (r *fakeJobRepo) ListStalePending(ctx context.Context, before time.Time, limit int) ([]*etjob.Job, error) {
	return nil, nil
}

// fakeDispatcher 可注入失败的分发器
type fakeDispatcher struct {
	publishErr error
	published  []string
	waitResult *model.JobResultNotification
	waitErr    error
}

func (d *fakeDispatcher) PublishProcessJob(ctx context.Context, job *etjob.Job) error {
	if d.publishErr != nil {
		return d.publishErr
	}
	d.published = append(d.published, job.ID)
	return nil
}

func (d *fakeDispatcher) WaitForResult(ctx context.Context, jobID string, timeout time.Duration) (*model.JobResultNotification, error) {
	if d.waitErr != nil {
		return nil, d.waitErr
	}
	return d.waitResult, nil
}

// nopLogger 静默日志
type nopLogger struct{}

func (nopLogger) Info(msg string, fields ...interface{})                              {}
func (nopLogger) Error(msg string, fields ...interface{})                             {}
func (nopLogger) Warn(msg string, fields ...interface{})                              {}
func (nopLogger) Debug(msg string, fields ...interface{})                             {}
func (nopLogger) InfoContext(ctx context.Context, msg string, fields ...interface{})  {}
func (nopLogger) ErrorContext(ctx context.Context, msg string, fields ...interface{}) {}
func (nopLogger) WarnContext(ctx context.Context, msg string, fields ...interface{})  {}
func (nopLogger) DebugContext(ctx context.Context, msg string, fields ...interface{}) {}
func (nopLogger) Sync() error                                                         { return nil }

func newTestService(repo *fakeJobRepo, dispatcher *fakeDispatcher) *JobService {
	return NewJobService(mdjob.NewJobModule(repo), dispatcher, nopLogger{})
}

func TestSubmitCreatesPendingJob(t *testing.T) {
	repo := newFakeJobRepo()
	dispatcher := &fakeDispatcher{}
	svc := newTestService(repo, dispatcher)

	job, err := svc.Submit(context.Background(), etprimitive.Authenticated("user-1"), "uploads/a.pdf", "expense", 0)
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	if job.ID == "" {
		t.Fatalf("job must get an id")
	}
	if job.Status != etjob.JobStatusPending {
		t.Fatalf("submitted job status = %s, want PENDING", job.Status)
	}
	if job.Category != etjob.CategoryExpense {
		t.Fatalf("category = %s, want EXPENSE", job.Category)
	}

	stored, _ := repo.GetByID(context.Background(), job.ID)
	if stored == nil {
		t.Fatalf("job must be persisted before publish")
	}
	if len(dispatcher.published) != 1 || dispatcher.published[0] != job.ID {
		t.Fatalf("job must be published to queue")
	}
}

func TestSubmitUniqueIDs(t *testing.T) {
	repo := newFakeJobRepo()
	svc := newTestService(repo, &fakeDispatcher{})

	first, err := svc.Submit(context.Background(), etprimitive.Anonymous(), "uploads/a.pdf", "EXPENSE", 0)
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	second, err := svc.Submit(context.Background(), etprimitive.Anonymous(), "uploads/a.pdf", "EXPENSE", 0)
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if first.ID == second.ID {
		t.Fatalf("identical submissions must get distinct ids")
	}
}

func TestSubmitRejectsInvalidInput(t *testing.T) {
	svc := newTestService(newFakeJobRepo(), &fakeDispatcher{})

	if _, err := svc.Submit(context.Background(), etprimitive.Anonymous(), "uploads/a.pdf", "INVOICE", 0); !errors.Is(err, errorx.ErrInvalidCategory) {
		t.Fatalf("unknown category error = %v, want ErrInvalidCategory", err)
	}
	if _, err := svc.Submit(context.Background(), etprimitive.Anonymous(), "", "EXPENSE", 0); !errors.Is(err, errorx.ErrInvalidInputRef) {
		t.Fatalf("empty input ref error = %v, want ErrInvalidInputRef", err)
	}
}

func TestSubmitPublishFailureLeavesPending(t *testing.T) {
	repo := newFakeJobRepo()
	dispatcher := &fakeDispatcher{publishErr: errors.New("queue down")}
	svc := newTestService(repo, dispatcher)

	// 入队失败不是提交失败：任务留在 PENDING，等补偿扫描重新入队
	job, err := svc.Submit(context.Background(), etprimitive.Anonymous(), "uploads/a.pdf", "EXPENSE", 0)
	if err != nil {
		t.Fatalf("Submit must tolerate publish failure, got: %v", err)
	}

	stored, _ := repo.GetByID(context.Background(), job.ID)
	if stored == nil || stored.Status != etjob.JobStatusPending {
		t.Fatalf("job must stay PENDING after publish failure")
	}
}

func TestSubmitSmartWaitAppliesResult(t *testing.T) {
	repo := newFakeJobRepo()
	dispatcher := &fakeDispatcher{
		waitResult: &model.JobResultNotification{
			Status:    entity.JobStatusCompleted,
			OutputRef: "outputs/x-result.xlsx",
		},
	}
	svc := newTestService(repo, dispatcher)

	job, err := svc.Submit(context.Background(), etprimitive.Anonymous(), "uploads/a.pdf", "EXPENSE", time.Second)
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if job.Status != etjob.JobStatusCompleted {
		t.Fatalf("smart wait must apply notification, status = %s", job.Status)
	}
	if job.OutputRef != "outputs/x-result.xlsx" {
		t.Fatalf("smart wait must carry output_ref, got %q", job.OutputRef)
	}
}

func TestSubmitSmartWaitTimeoutReturnsInFlight(t *testing.T) {
	repo := newFakeJobRepo()
	dispatcher := &fakeDispatcher{waitErr: errors.New("timeout")}
	svc := newTestService(repo, dispatcher)

	job, err := svc.Submit(context.Background(), etprimitive.Anonymous(), "uploads/a.pdf", "EXPENSE", time.Second)
	if err != nil {
		t.Fatalf("Submit must tolerate wait timeout, got: %v", err)
	}
	if !job.Status.InFlight() {
		t.Fatalf("wait timeout must return in-flight job, status = %s", job.Status)
	}
}

func TestGetJobVisibility(t *testing.T) {
	repo := newFakeJobRepo()
	svc := newTestService(repo, &fakeDispatcher{})
	ctx := context.Background()

	owned, err := svc.Submit(ctx, etprimitive.Authenticated("P"), "uploads/a.pdf", "EXPENSE", 0)
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	guest, err := svc.Submit(ctx, etprimitive.Anonymous(), "uploads/b.pdf", "HR", 0)
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	// 归属方可见
	if _, err := svc.GetJob(ctx, owned.ID, etprimitive.Authenticated("P")); err != nil {
		t.Fatalf("owner must read own job: %v", err)
	}

	// 非归属方统一 not found，不泄露存在性
	if _, err := svc.GetJob(ctx, owned.ID, etprimitive.Authenticated("Q")); !errors.Is(err, errorx.ErrJobNotFound) {
		t.Fatalf("foreign principal error = %v, want ErrJobNotFound", err)
	}
	if _, err := svc.GetJob(ctx, owned.ID, etprimitive.Anonymous()); !errors.Is(err, errorx.ErrJobNotFound) {
		t.Fatalf("anonymous on owned job error = %v, want ErrJobNotFound", err)
	}

	// 未知 ID 同样 not found
	if _, err := svc.GetJob(ctx, "no-such-job", etprimitive.Authenticated("P")); !errors.Is(err, errorx.ErrJobNotFound) {
		t.Fatalf("unknown job error = %v, want ErrJobNotFound", err)
	}

	// 匿名任务对任何人可见
	if _, err := svc.GetJob(ctx, guest.ID, etprimitive.Authenticated("P")); err != nil {
		t.Fatalf("guest job must be readable by anyone: %v", err)
	}
	if _, err := svc.GetJob(ctx, guest.ID, etprimitive.Anonymous()); err != nil {
		t.Fatalf("guest job must be readable by anonymous: %v", err)
	}
}
