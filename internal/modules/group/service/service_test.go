package service_test

import (
	"context"
	"errors"
	"path/filepath"
	"slices"
	"sync"
	"testing"

	"github.com/reshetovitsme/tg-keyword-monitor/internal/modules/group/domain"
	"github.com/reshetovitsme/tg-keyword-monitor/internal/modules/group/repository"
	"github.com/reshetovitsme/tg-keyword-monitor/internal/modules/group/service"
	"github.com/reshetovitsme/tg-keyword-monitor/internal/shared/database"
	sharedErrors "github.com/reshetovitsme/tg-keyword-monitor/internal/shared/errors"
)

type mockProvider struct {
	mu      sync.Mutex
	live    map[int64]struct{}
	failFor map[int64]bool
	joined  []int64
	listErr error
}

func newMockProvider(live ...int64) *mockProvider {
	p := &mockProvider{live: map[int64]struct{}{}, failFor: map[int64]bool{}}
	for _, id := range live {
		p.live[id] = struct{}{}
	}
	return p
}

func (m *mockProvider) LiveChannelIDs(_ context.Context) (map[int64]struct{}, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.listErr != nil {
		return nil, m.listErr
	}
	out := make(map[int64]struct{}, len(m.live))
	for id := range m.live {
		out[id] = struct{}{}
	}
	return out, nil
}

func (m *mockProvider) Join(_ context.Context, action domain.JoinAction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failFor[action.ChannelID] {
		return errors.New("join refused")
	}
	m.live[action.ChannelID] = struct{}{}
	m.joined = append(m.joined, action.ChannelID)
	return nil
}

func (m *mockProvider) joinedIDs() []int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.joined)
}

func newService(t *testing.T) (*service.Service, repository.Repository) {
	t.Helper()
	db, err := database.Open(filepath.Join(t.TempDir(), "groups.db"))
	if err != nil {
		t.Fatalf("database.Open() error = %v", err)
	}
	t.Cleanup(func() { database.Close(db) })
	repo := repository.NewSQLiteStorage(db)
	return service.New(repo), repo
}

func TestReconcile(t *testing.T) {
	t.Parallel()

	group := func(id int64) *domain.Group {
		return &domain.Group{ChannelID: id, Link: "link", Title: "title", IsActive: true}
	}

	tests := []struct {
		name    string
		desired map[int64]*domain.Group
		live    map[int64]struct{}
		want    []int64
	}{
		{
			name:    "joins missing groups in id order",
			desired: map[int64]*domain.Group{3: group(3), 1: group(1), 2: group(2)},
			live:    map[int64]struct{}{2: {}},
			want:    []int64{1, 3},
		},
		{
			name:    "nothing to do when every group is live",
			desired: map[int64]*domain.Group{1: group(1)},
			live:    map[int64]struct{}{1: {}, 7: {}},
			want:    []int64{},
		},
		{
			name:    "empty registry",
			desired: map[int64]*domain.Group{},
			live:    map[int64]struct{}{1: {}},
			want:    []int64{},
		},
		{
			name:    "nil live set",
			desired: map[int64]*domain.Group{5: group(5)},
			live:    nil,
			want:    []int64{5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			actions := service.Reconcile(tt.desired, tt.live)
			got := make([]int64, 0, len(actions))
			for _, a := range actions {
				got = append(got, a.ChannelID)
				if a.Link != "link" || a.Title != "title" {
					t.Errorf("action %d = %+v, want link and title copied", a.ChannelID, a)
				}
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("Reconcile() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestService_RegisterLifecycle(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, repo := newService(t)
	provider := newMockProvider()
	svc.SetProvider(provider)

	result, err := svc.Register(ctx, -1001, "https://t.me/news", "News")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if result != domain.RegistrationResultCreated {
		t.Fatalf("Register() = %v, want created", result)
	}
	if got := provider.joinedIDs(); !slices.Equal(got, []int64{-1001}) {
		t.Fatalf("joined after create = %v, want [-1001]", got)
	}

	result, err = svc.Register(ctx, -1001, "https://t.me/news", "News")
	if err != nil {
		t.Fatalf("Register(again) error = %v", err)
	}
	if result != domain.RegistrationResultAlreadyActive {
		t.Fatalf("Register(again) = %v, want already_active", result)
	}

	if err := svc.Deactivate(ctx, -1001); err != nil {
		t.Fatalf("Deactivate() error = %v", err)
	}
	active, err := svc.ListActive(ctx)
	if err != nil {
		t.Fatalf("ListActive() error = %v", err)
	}
	if len(active) != 0 {
		t.Fatalf("ListActive() after deactivate = %v, want empty", active)
	}

	result, err = svc.Register(ctx, -1001, "https://t.me/news", "News")
	if err != nil {
		t.Fatalf("Register(reactivate) error = %v", err)
	}
	if result != domain.RegistrationResultReactivated {
		t.Fatalf("Register(reactivate) = %v, want reactivated", result)
	}

	all, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(all) != 1 || !all[0].IsActive {
		t.Fatalf("List() = %+v, want one active row", all)
	}
}

func TestService_RegisterConcurrentSameChannel(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, repo := newService(t)
	svc.SetProvider(newMockProvider())

	const callers = 8
	results := make([]domain.RegistrationResult, callers)
	errs := make([]error, callers)

	var wg sync.WaitGroup
	for i := range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], errs[i] = svc.Register(ctx, -2002, "@race", "Race")
		}()
	}
	wg.Wait()

	created := 0
	for i := range callers {
		if errs[i] != nil {
			t.Fatalf("caller %d error = %v", i, errs[i])
		}
		switch results[i] {
		case domain.RegistrationResultCreated:
			created++
		case domain.RegistrationResultAlreadyActive:
		default:
			t.Fatalf("caller %d result = %v", i, results[i])
		}
	}
	if created != 1 {
		t.Fatalf("created count = %d, want 1", created)
	}

	all, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("List() returned %d rows, want 1", len(all))
	}
}

func TestService_RegisterRejectsZeroID(t *testing.T) {
	t.Parallel()
	svc, _ := newService(t)

	_, err := svc.Register(context.Background(), 0, "@zero", "")
	if !errors.Is(err, sharedErrors.ErrInvalidInput) {
		t.Fatalf("Register(0) error = %v, want ErrInvalidInput", err)
	}
}

func TestService_SyncContinuesPastFailedJoin(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, repo := newService(t)

	for _, id := range []int64{-3, -2, -1} {
		if err := repo.Create(ctx, &domain.Group{ChannelID: id, Link: "@g", Title: "G", IsActive: true}); err != nil {
			t.Fatalf("Create(%d) error = %v", id, err)
		}
	}

	provider := newMockProvider(-1)
	provider.failFor[-3] = true
	svc.SetProvider(provider)

	report, err := svc.Sync(ctx)
	if err != nil {
		t.Fatalf("Sync() error = %v", err)
	}
	if report.Desired != 3 || report.Live != 1 {
		t.Fatalf("Sync() report = %+v, want desired 3 live 1", report)
	}
	if !slices.Equal(report.Failed, []int64{-3}) {
		t.Fatalf("Sync() failed = %v, want [-3]", report.Failed)
	}
	if !slices.Equal(report.Joined, []int64{-2}) {
		t.Fatalf("Sync() joined = %v, want [-2]", report.Joined)
	}
}

func TestService_SyncErrors(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	svc, _ := newService(t)
	if _, err := svc.Sync(ctx); !errors.Is(err, sharedErrors.ErrClientNotReady) {
		t.Fatalf("Sync() without provider error = %v, want ErrClientNotReady", err)
	}

	provider := newMockProvider()
	provider.listErr = errors.New("network down")
	svc.SetProvider(provider)
	if _, err := svc.Sync(ctx); !errors.Is(err, sharedErrors.ErrCollaboratorFailure) {
		t.Fatalf("Sync() with failing provider error = %v, want ErrCollaboratorFailure", err)
	}
}
