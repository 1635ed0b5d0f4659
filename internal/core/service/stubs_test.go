package service

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/jobboard/jobboard-api/internal/core/domain"
	"github.com/jobboard/jobboard-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories. They mirror the uniqueness rules enforced by
// the Mongo indexes.
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	mu    sync.Mutex
	seq   int
	users map[string]*domain.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrUserExists
		}
	}
	r.seq++
	copy := cloneUser(user)
	copy.ID = fmt.Sprintf("user-%d", r.seq)
	r.users[copy.ID] = copy
	return cloneUser(copy), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) List(_ context.Context) ([]*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, cloneUser(u))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubUserRepo) Update(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return nil, domain.ErrUserNotFound
	}
	for _, u := range r.users {
		if u.ID != user.ID && u.Email == user.Email {
			return nil, domain.ErrUserExists
		}
	}
	r.users[user.ID] = cloneUser(user)
	return cloneUser(user), nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

type stubJobRepo struct {
	mu   sync.Mutex
	seq  int
	jobs map[string]*domain.Job
}

func newStubJobRepo() *stubJobRepo {
	return &stubJobRepo{jobs: make(map[string]*domain.Job)}
}

func cloneJob(j *domain.Job) *domain.Job {
	clone := *j
	return &clone
}

func (r *stubJobRepo) Create(_ context.Context, job *domain.Job) (*domain.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	copy := cloneJob(job)
	copy.ID = fmt.Sprintf("job-%d", r.seq)
	r.jobs[copy.ID] = copy
	return cloneJob(copy), nil
}

func (r *stubJobRepo) FindByID(_ context.Context, id string) (*domain.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	j, ok := r.jobs[id]
	if !ok {
		return nil, domain.ErrJobNotFound
	}
	return cloneJob(j), nil
}

func (r *stubJobRepo) List(_ context.Context, filter ports.JobFilter) ([]*domain.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*domain.Job{}
	for _, j := range r.jobs {
		if filter.Status != "" && j.Status != filter.Status {
			continue
		}
		if filter.PostedBy != "" && j.PostedBy != filter.PostedBy {
			continue
		}
		out = append(out, cloneJob(j))
	}
	sort.Slice(out, func(i, k int) bool { return out[i].ID < out[k].ID })
	return out, nil
}

func (r *stubJobRepo) Update(_ context.Context, job *domain.Job) (*domain.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.jobs[job.ID]; !ok {
		return nil, domain.ErrJobNotFound
	}
	r.jobs[job.ID] = cloneJob(job)
	return cloneJob(job), nil
}

func (r *stubJobRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.jobs[id]; !ok {
		return domain.ErrJobNotFound
	}
	delete(r.jobs, id)
	return nil
}

type stubAppRepo struct {
	mu   sync.Mutex
	seq  int
	apps map[string]*domain.Application
	// skipDuplicateCheck hides existing rows from FindByJobAndApplicant to
	// simulate a racing submission that slipped past the in-process check.
	skipDuplicateCheck bool
}

func newStubAppRepo() *stubAppRepo {
	return &stubAppRepo{apps: make(map[string]*domain.Application)}
}

func cloneApp(a *domain.Application) *domain.Application {
	clone := *a
	return &clone
}

func (r *stubAppRepo) Create(_ context.Context, app *domain.Application) (*domain.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.apps {
		if a.JobID == app.JobID && a.ApplicantID == app.ApplicantID {
			return nil, domain.ErrAlreadyApplied
		}
	}
	r.seq++
	copy := cloneApp(app)
	copy.ID = fmt.Sprintf("app-%d", r.seq)
	r.apps[copy.ID] = copy
	return cloneApp(copy), nil
}

func (r *stubAppRepo) FindByID(_ context.Context, id string) (*domain.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.apps[id]
	if !ok {
		return nil, domain.ErrApplicationNotFound
	}
	return cloneApp(a), nil
}

func (r *stubAppRepo) FindByJobAndApplicant(_ context.Context, jobID, applicantID string) (*domain.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.skipDuplicateCheck {
		for _, a := range r.apps {
			if a.JobID == jobID && a.ApplicantID == applicantID {
				return cloneApp(a), nil
			}
		}
	}
	return nil, domain.ErrApplicationNotFound
}

func (r *stubAppRepo) ListByJob(_ context.Context, jobID string) ([]*domain.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*domain.Application{}
	for _, a := range r.apps {
		if a.JobID == jobID {
			out = append(out, cloneApp(a))
		}
	}
	return out, nil
}

func (r *stubAppRepo) List(_ context.Context) ([]*domain.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.Application, 0, len(r.apps))
	for _, a := range r.apps {
		out = append(out, cloneApp(a))
	}
	return out, nil
}

func (r *stubAppRepo) UpdateStatus(_ context.Context, id string, status domain.ApplicationStatus) (*domain.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.apps[id]
	if !ok {
		return nil, domain.ErrApplicationNotFound
	}
	a.Status = status
	a.UpdatedAt = time.Now().UTC()
	return cloneApp(a), nil
}

// stubPaymentRepo applies the same conditional update as the Mongo
// transaction: the application flips to paid only if it is not paid yet.
type stubPaymentRepo struct {
	mu         sync.Mutex
	apps       *stubAppRepo
	invoices   map[string]*domain.Invoice
	attempts   []*domain.PaymentAttempt
	attemptErr error
}

func newStubPaymentRepo(apps *stubAppRepo) *stubPaymentRepo {
	return &stubPaymentRepo{apps: apps, invoices: make(map[string]*domain.Invoice)}
}

func (r *stubPaymentRepo) CompletePayment(_ context.Context, invoice *domain.Invoice) (*domain.Invoice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.apps.mu.Lock()
	defer r.apps.mu.Unlock()

	app, ok := r.apps.apps[invoice.ApplicationID]
	if !ok {
		return nil, domain.ErrApplicationNotFound
	}
	if app.PaymentStatus == domain.PaymentPaid {
		return nil, domain.ErrAlreadyPaid
	}
	app.PaymentStatus = domain.PaymentPaid

	copy := *invoice
	copy.ID = fmt.Sprintf("inv-%d", len(r.invoices)+1)
	r.invoices[copy.ID] = &copy
	out := copy
	return &out, nil
}

func (r *stubPaymentRepo) FindInvoiceByID(_ context.Context, id string) (*domain.Invoice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	inv, ok := r.invoices[id]
	if !ok {
		return nil, domain.ErrInvoiceNotFound
	}
	out := *inv
	return &out, nil
}

func (r *stubPaymentRepo) InsertAttempt(_ context.Context, attempt *domain.PaymentAttempt) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.attemptErr != nil {
		return r.attemptErr
	}
	copy := *attempt
	r.attempts = append(r.attempts, &copy)
	return nil
}

func (r *stubPaymentRepo) invoicesFor(applicationID string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, inv := range r.invoices {
		if inv.ApplicationID == applicationID {
			n++
		}
	}
	return n
}

type stubProcessor struct {
	mu     sync.Mutex
	calls  int
	result *ports.ChargeResult
	err    error
}

func (p *stubProcessor) Charge(_ context.Context, applicationID, _ string, _ int64) (*ports.ChargeResult, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
	if p.err != nil {
		return nil, p.err
	}
	if p.result != nil {
		r := *p.result
		return &r, nil
	}
	return &ports.ChargeResult{Success: true, TransactionID: "txn_" + fmt.Sprintf("%09d", p.calls)}, nil
}

type stubStorage struct {
	mu      sync.Mutex
	saved   map[string][]byte
	deleted []string
	saveErr error
}

func newStubStorage() *stubStorage {
	return &stubStorage{saved: make(map[string][]byte)}
}

func (s *stubStorage) Save(_ context.Context, name string, content io.Reader, _ string) (string, error) {
	if s.saveErr != nil {
		return "", s.saveErr
	}
	b, err := io.ReadAll(content)
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	path := "/uploads/" + name
	s.saved[path] = b
	return path, nil
}

func (s *stubStorage) Delete(_ context.Context, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.saved, path)
	s.deleted = append(s.deleted, path)
	return nil
}

type stubBlacklist struct {
	revoked map[string]time.Time
	err     error
}

func newStubBlacklist() *stubBlacklist {
	return &stubBlacklist{revoked: make(map[string]time.Time)}
}

func (b *stubBlacklist) Revoke(_ context.Context, tokenID string, expiresAt time.Time) error {
	if b.err != nil {
		return b.err
	}
	b.revoked[tokenID] = expiresAt
	return nil
}

func (b *stubBlacklist) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	if b.err != nil {
		return false, b.err
	}
	_, ok := b.revoked[tokenID]
	return ok, nil
}

// stubAnalyticsRepo computes the rollup from the stub stores with the same
// grouping, join and ordering as the aggregation pipeline.
type stubAnalyticsRepo struct {
	apps *stubAppRepo
	jobs *stubJobRepo
}

func (r *stubAnalyticsRepo) ApplicantsPerJob(_ context.Context) ([]domain.JobApplicantCount, error) {
	r.apps.mu.Lock()
	counts := map[string]int64{}
	for _, a := range r.apps.apps {
		counts[a.JobID]++
	}
	r.apps.mu.Unlock()

	r.jobs.mu.Lock()
	defer r.jobs.mu.Unlock()
	var out []domain.JobApplicantCount
	for jobID, n := range counts {
		job, ok := r.jobs.jobs[jobID]
		if !ok {
			continue
		}
		out = append(out, domain.JobApplicantCount{JobID: jobID, Title: job.Title, ApplicantsCount: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ApplicantsCount != out[j].ApplicantsCount {
			return out[i].ApplicantsCount > out[j].ApplicantsCount
		}
		return out[i].Title < out[j].Title
	})
	return out, nil
}

// fixture wires every service to a shared set of stub stores.
type fixture struct {
	users     *stubUserRepo
	jobs      *stubJobRepo
	apps      *stubAppRepo
	payments  *stubPaymentRepo
	storage   *stubStorage
	processor *stubProcessor
	blacklist *stubBlacklist

	auth      *AuthService
	jobSvc    *JobService
	appSvc    *ApplicationService
	paySvc    *PaymentService
	admin     *AdminService
	analytics *AnalyticsService
}

func newFixture() *fixture {
	f := &fixture{
		users:     newStubUserRepo(),
		jobs:      newStubJobRepo(),
		apps:      newStubAppRepo(),
		storage:   newStubStorage(),
		processor: &stubProcessor{},
		blacklist: newStubBlacklist(),
	}
	f.payments = newStubPaymentRepo(f.apps)

	logger := zerolog.Nop()
	f.auth = NewAuthService(f.users, f.blacklist, "test-secret", time.Hour, logger)
	f.jobSvc = NewJobService(f.jobs, f.users, logger)
	f.appSvc = NewApplicationService(f.apps, f.jobs, f.storage, logger)
	f.paySvc = NewPaymentService(f.users, f.apps, f.jobs, f.payments, f.processor, logger)
	f.admin = NewAdminService(f.users, f.jobs, f.apps, logger)
	f.analytics = NewAnalyticsService(&stubAnalyticsRepo{apps: f.apps, jobs: f.jobs})
	return f
}

// seedUser stores a user directly and returns its actor.
func (f *fixture) seedUser(name string, role domain.Role, company string) domain.Actor {
	u, err := f.users.Create(context.Background(), &domain.User{
		Name:    name,
		Email:   strings.ToLower(name) + "@example.com",
		Role:    role,
		Company: company,
	})
	if err != nil {
		panic(err)
	}
	return domain.ActorFor(u)
}

// seedJob stores an active job owned by poster.
func (f *fixture) seedJob(poster domain.Actor, title string) *domain.Job {
	j, err := f.jobs.Create(context.Background(), &domain.Job{
		Title:    title,
		Status:   domain.JobActive,
		PostedBy: poster.ID,
	})
	if err != nil {
		panic(err)
	}
	return j
}

func pdfUpload() ports.CVUpload {
	return ports.CVUpload{Filename: "resume.pdf", ContentType: "application/pdf", Content: strings.NewReader("%PDF-1.4")}
}
