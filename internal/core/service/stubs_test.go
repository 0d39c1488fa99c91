package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/sirpyerre/jobly/internal/core/domain"
)

var discardLogger = zerolog.Nop()

// ---------------------------------------------------------------------------
// Companies
// ---------------------------------------------------------------------------

type stubCompanyRepo struct {
	byHandle    map[string]*domain.Company
	inserts     []string // handles attempted, in order
	updateCalls int
	lastChanges domain.Changes
	insertErr   error
	lastFilter  domain.CompanyFilter
}

func newStubCompanyRepo() *stubCompanyRepo {
	return &stubCompanyRepo{byHandle: make(map[string]*domain.Company)}
}

func (r *stubCompanyRepo) Insert(_ context.Context, c *domain.Company) (*domain.Company, error) {
	r.inserts = append(r.inserts, c.Handle)
	if r.insertErr != nil {
		return nil, r.insertErr
	}
	if _, taken := r.byHandle[c.Handle]; taken {
		return nil, domain.ErrCompanyExists
	}
	clone := *c
	r.byHandle[c.Handle] = &clone
	out := clone
	return &out, nil
}

func (r *stubCompanyRepo) FindByHandle(_ context.Context, handle string) (*domain.Company, error) {
	c, ok := r.byHandle[handle]
	if !ok {
		return nil, domain.ErrCompanyNotFound
	}
	clone := *c
	return &clone, nil
}

func (r *stubCompanyRepo) List(_ context.Context, f domain.CompanyFilter) ([]domain.Company, error) {
	r.lastFilter = f
	out := make([]domain.Company, 0, len(r.byHandle))
	for _, c := range r.byHandle {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *stubCompanyRepo) Update(_ context.Context, handle string, changes domain.Changes) (*domain.Company, error) {
	r.updateCalls++
	r.lastChanges = changes
	c, ok := r.byHandle[handle]
	if !ok {
		return nil, domain.ErrCompanyNotFound
	}
	for _, ch := range changes {
		switch ch.Field {
		case "name":
			c.Name = ch.Value.(string)
		case "description":
			s, _ := ch.Value.(string)
			c.Description = &s
		}
	}
	clone := *c
	return &clone, nil
}

func (r *stubCompanyRepo) Delete(_ context.Context, handle string) error {
	if _, ok := r.byHandle[handle]; !ok {
		return domain.ErrCompanyNotFound
	}
	delete(r.byHandle, handle)
	return nil
}

// ---------------------------------------------------------------------------
// Jobs
// ---------------------------------------------------------------------------

type stubJobRepo struct {
	byID        map[int64]*domain.Job
	nextID      int64
	updateCalls int
}

func newStubJobRepo() *stubJobRepo {
	return &stubJobRepo{byID: make(map[int64]*domain.Job), nextID: 1}
}

func (r *stubJobRepo) Insert(_ context.Context, j *domain.Job) (*domain.Job, error) {
	clone := *j
	clone.ID = r.nextID
	r.nextID++
	r.byID[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubJobRepo) FindByID(_ context.Context, id int64) (*domain.Job, error) {
	j, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrJobNotFound
	}
	clone := *j
	return &clone, nil
}

func (r *stubJobRepo) List(_ context.Context, f domain.JobFilter) ([]domain.Job, error) {
	var out []domain.Job
	for _, j := range r.byID {
		if f.Search != nil && !strings.Contains(strings.ToLower(j.Title), strings.ToLower(*f.Search)) {
			continue
		}
		out = append(out, *j)
	}
	return out, nil
}

func (r *stubJobRepo) ListByCompany(_ context.Context, handle string) ([]domain.Job, error) {
	out := []domain.Job{}
	for _, j := range r.byID {
		if j.CompanyHandle == handle {
			out = append(out, *j)
		}
	}
	return out, nil
}

func (r *stubJobRepo) Update(_ context.Context, id int64, changes domain.Changes) (*domain.Job, error) {
	r.updateCalls++
	j, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrJobNotFound
	}
	if v, ok := changes.Get("title"); ok {
		j.Title = v.(string)
	}
	clone := *j
	return &clone, nil
}

func (r *stubJobRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrJobNotFound
	}
	delete(r.byID, id)
	return nil
}

// ---------------------------------------------------------------------------
// Users
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	users       map[string]*domain.User
	updateCalls int
	lastChanges domain.Changes
	findErr     error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func (r *stubUserRepo) Insert(_ context.Context, u *domain.User) (*domain.User, error) {
	if _, exists := r.users[u.Username]; exists {
		return nil, domain.ErrUserExists
	}
	clone := *u
	r.users[u.Username] = &clone
	out := clone
	return &out, nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	u, ok := r.users[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) List(_ context.Context) ([]domain.User, error) {
	out := make([]domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out, nil
}

func (r *stubUserRepo) Update(_ context.Context, username string, changes domain.Changes) (*domain.User, error) {
	r.updateCalls++
	r.lastChanges = changes
	u, ok := r.users[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	for _, ch := range changes {
		switch ch.Field {
		case "password":
			u.Password = ch.Value.(string)
		case "first_name":
			u.FirstName = ch.Value.(string)
		case "is_admin":
			u.IsAdmin = ch.Value.(bool)
		}
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) Delete(_ context.Context, username string) error {
	if _, ok := r.users[username]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, username)
	return nil
}

// ---------------------------------------------------------------------------
// Security
// ---------------------------------------------------------------------------

// stubHasher prefixes the plaintext; good enough to tell hashed from raw.
type stubHasher struct {
	err error
}

func (h stubHasher) Hash(plaintext string) (string, error) {
	if h.err != nil {
		return "", h.err
	}
	return "hashed:" + plaintext, nil
}

func (h stubHasher) Verify(plaintext, digest string) bool {
	return digest == "hashed:"+plaintext
}

type stubTokens struct{}

func (stubTokens) Issue(id domain.Identity) (string, error) {
	if id.IsAdmin {
		return "token:" + id.Username + ":admin", nil
	}
	return "token:" + id.Username, nil
}

func (stubTokens) Verify(string) (domain.Identity, error) {
	return domain.Identity{}, errors.New("not used")
}

type stubRevocations struct {
	revoked map[domain.Identity]bool
	err     error
}

func newStubRevocations() *stubRevocations {
	return &stubRevocations{revoked: make(map[domain.Identity]bool)}
}

func (r *stubRevocations) Revoke(_ context.Context, ids ...domain.Identity) error {
	if r.err != nil {
		return r.err
	}
	for _, id := range ids {
		r.revoked[id] = true
	}
	return nil
}

func (r *stubRevocations) Restore(_ context.Context, ids ...domain.Identity) error {
	if r.err != nil {
		return r.err
	}
	for _, id := range ids {
		delete(r.revoked, id)
	}
	return nil
}

func (r *stubRevocations) IsRevoked(_ context.Context, id domain.Identity) (bool, error) {
	return r.revoked[id], r.err
}

// ---------------------------------------------------------------------------
// Audit
// ---------------------------------------------------------------------------

type recordingSink struct {
	mu      sync.Mutex
	entries []domain.AuditEntry
}

func (s *recordingSink) Enqueue(e domain.AuditEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, e)
}

func (s *recordingSink) last() domain.AuditEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.entries[len(s.entries)-1]
}

var (
	admin = domain.Identity{Username: "root", IsAdmin: true}
	alice = domain.Identity{Username: "alice"}
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }
