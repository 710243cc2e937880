package pipeline

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"

	"ap-pages-web/internal/attachments"
	"ap-pages-web/internal/config"
	"ap-pages-web/internal/domain"
	"ap-pages-web/internal/generator"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGen struct{ calls int }

func (g *fakeGen) Generate(ctx context.Context, req generator.Request) (*domain.FileSet, error) {
	g.calls++
	files := domain.NewFileSet()
	files.Add(domain.EntryPoint, "<html></html>")
	return files, nil
}

type fakePublisher struct {
	calls  int
	result domain.DeployResult
	err    error
}

func (p *fakePublisher) Publish(ctx context.Context, dir string, task domain.Task) (domain.DeployResult, error) {
	p.calls++
	return p.result, p.err
}

type fakeUpdater struct {
	calls  int
	result domain.DeployResult
	err    error
}

func (u *fakeUpdater) Update(ctx context.Context, dir string, task domain.Task) (domain.DeployResult, error) {
	u.calls++
	return u.result, u.err
}

type fakeWatcher struct{ ready bool }

func (w *fakeWatcher) WaitReady(ctx context.Context, url string) bool { return w.ready }

type fakeNotifier struct {
	mu      sync.Mutex
	calls   int
	lastURL string
	last    domain.NotificationPayload
}

func (n *fakeNotifier) Notify(ctx context.Context, evaluationURL string, payload domain.NotificationPayload) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls++
	n.lastURL = evaluationURL
	n.last = payload
	return nil
}

type fakeSlack struct {
	mu         sync.Mutex
	notified   int
	errored    int
	lastDetail error
}

func (s *fakeSlack) Notify(ctx context.Context, event domain.DeployEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notified++
	return nil
}

func (s *fakeSlack) NotifyError(ctx context.Context, errDetail error, event domain.DeployEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errored++
	s.lastDetail = errDetail
	return nil
}

type fixture struct {
	pipeline *DeployPipeline
	gen      *fakeGen
	pub      *fakePublisher
	upd      *fakeUpdater
	notifier *fakeNotifier
	slack    *fakeSlack
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	result := domain.DeployResult{
		RepoURL:   "https://github.com/octo/my-app",
		CommitSHA: "abc123",
		PagesURL:  "https://octo.github.io/my-app/",
	}

	f := &fixture{
		gen:      &fakeGen{},
		pub:      &fakePublisher{result: result},
		upd:      &fakeUpdater{result: result},
		notifier: &fakeNotifier{},
		slack:    &fakeSlack{},
	}
	cfg := &config.Config{WorkDir: t.TempDir()}
	f.pipeline = New(cfg, f.gen, attachments.NewResolver(http.DefaultClient),
		f.pub, f.upd, &fakeWatcher{ready: true}, f.notifier, f.slack)
	return f
}

func testTask(round int) domain.Task {
	return domain.Task{
		Email:         "student@example.com",
		TaskID:        "my-app",
		Round:         round,
		Nonce:         "abc123",
		Brief:         "a brief",
		EvaluationURL: "https://example.com/notify",
	}
}

func TestExecute_RoundOneGoesThroughPublisher(t *testing.T) {
	f := newFixture(t)

	result, err := f.pipeline.Execute(context.Background(), testTask(1))
	require.NoError(t, err)
	f.pipeline.Wait()

	assert.Equal(t, 1, f.gen.calls)
	assert.Equal(t, 1, f.pub.calls)
	assert.Equal(t, 0, f.upd.calls)
	assert.Equal(t, "abc123", result.CommitSHA)

	assert.Equal(t, 1, f.notifier.calls)
	assert.Equal(t, "https://example.com/notify", f.notifier.lastURL)
	assert.Equal(t, "my-app", f.notifier.last.Task)
	assert.Equal(t, "abc123", f.notifier.last.Nonce)
	assert.Equal(t, 1, f.slack.notified)
	assert.Equal(t, 0, f.slack.errored)
}

func TestExecute_LaterRoundGoesThroughUpdater(t *testing.T) {
	f := newFixture(t)

	_, err := f.pipeline.Execute(context.Background(), testTask(2))
	require.NoError(t, err)
	f.pipeline.Wait()

	assert.Equal(t, 0, f.pub.calls)
	assert.Equal(t, 1, f.upd.calls)
	// ラウンド 1 専用の生成経路は通らない (更新側が生成を所有する)
	assert.Equal(t, 0, f.gen.calls)
	assert.Equal(t, 1, f.notifier.calls)
	assert.Equal(t, 2, f.notifier.last.Round)
}

func TestExecute_PublishFailureSkipsNotification(t *testing.T) {
	f := newFixture(t)
	f.pub.err = domain.NewRepoOpError("push", errors.New("remote rejected"))

	_, err := f.pipeline.Execute(context.Background(), testTask(1))
	require.Error(t, err)
	f.pipeline.Wait()

	assert.Equal(t, 0, f.notifier.calls)
	assert.Equal(t, 0, f.slack.notified)
	assert.Equal(t, 1, f.slack.errored)
	assert.ErrorIs(t, f.slack.lastDetail, f.pub.err)
}

func TestExecute_NotificationOutlivesRequestContext(t *testing.T) {
	f := newFixture(t)

	// リクエストの ctx が完了直後にキャンセルされても通知は届く
	ctx, cancel := context.WithCancel(context.Background())
	_, err := f.pipeline.Execute(ctx, testTask(1))
	cancel()
	require.NoError(t, err)
	f.pipeline.Wait()

	assert.Equal(t, 1, f.notifier.calls)
}
