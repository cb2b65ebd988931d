package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"sftp-cleanup/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeScanner liefert vorbereitete Ergebnisse je Remote-Pfad
type fakeScanner struct {
	outcomes map[string]Outcome
	calls    atomic.Int32
}

func (s *fakeScanner) Scan(ctx context.Context, target config.Target) Outcome {
	s.calls.Add(1)
	return s.outcomes[target.RemotePath]
}

type sentMail struct {
	subject string
	body    string
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []sentMail
	err  error
}

func (m *fakeMailer) Send(ctx context.Context, subject, htmlBody string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, sentMail{subject: subject, body: htmlBody})
	return m.err
}

func testTargets() []config.Target {
	return []config.Target{
		{Name: "INV", Hostname: testHostname, RemotePath: testInvPath},
		{Name: "SSIM", Hostname: testHostname, RemotePath: testSsimPath},
	}
}

func invRef() TargetRef  { return TargetRef{Hostname: testHostname, RemotePath: testInvPath} }
func ssimRef() TargetRef { return TargetRef{Hostname: testHostname, RemotePath: testSsimPath} }

func TestCoordinator_Run_Clean(t *testing.T) {
	scanner := &fakeScanner{outcomes: map[string]Outcome{
		testInvPath:  NoFiles{TargetRef: invRef()},
		testSsimPath: Md5sumDeleted{TargetRef: ssimRef(), File: "ssim.md5sum"},
	}}
	mailer := &fakeMailer{}

	report, err := NewCoordinator(testTargets(), scanner, mailer).Run(context.Background())

	require.NoError(t, err)
	assert.True(t, report.Clean())
	assert.Len(t, report.Outcomes, 2)
	assert.Empty(t, mailer.sent, "Bei sauberem Lauf darf keine Mail versendet werden")
}

func TestCoordinator_Run_FilesPresent(t *testing.T) {
	scanner := &fakeScanner{outcomes: map[string]Outcome{
		testInvPath:  FilesPresent{TargetRef: invRef(), Files: []string{"a.txt", "b.txt"}},
		testSsimPath: NoFiles{TargetRef: ssimRef()},
	}}
	mailer := &fakeMailer{}

	report, err := NewCoordinator(testTargets(), scanner, mailer).Run(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCleanupFailed)
	assert.False(t, report.Clean())
	assert.Len(t, report.Digest, 1)

	require.Len(t, mailer.sent, 1)
	mail := mailer.sent[0]
	assert.Equal(t, AlertSubject, mail.subject)
	assert.Contains(t, mail.body, "a.txt, b.txt")
	assert.Contains(t, mail.body, testHostname)
	assert.Contains(t, mail.body, testInvPath)
	assert.NotContains(t, mail.body, testSsimPath)
}

func TestCoordinator_Run_Errors(t *testing.T) {
	scanner := &fakeScanner{outcomes: map[string]Outcome{
		testInvPath:  ScanError{TargetRef: invRef(), Message: "timeout"},
		testSsimPath: ScanError{TargetRef: ssimRef(), Message: "auth failed"},
	}}
	mailer := &fakeMailer{}

	report, err := NewCoordinator(testTargets(), scanner, mailer).Run(context.Background())

	assert.ErrorIs(t, err, ErrCleanupFailed)
	assert.Len(t, report.Digest, 2)
	assert.Equal(t, int32(2), scanner.calls.Load(), "Alle Targets müssen geprüft werden")

	require.Len(t, mailer.sent, 1)
	body := mailer.sent[0].body
	assert.Contains(t, body, "timeout")
	assert.Contains(t, body, "auth failed")
	assert.Equal(t, 1, strings.Count(body, digestSeparator))
}

func TestCoordinator_Run_MailFailureKeepsCleanupError(t *testing.T) {
	mailErr := errors.New("connection refused")
	scanner := &fakeScanner{outcomes: map[string]Outcome{
		testInvPath:  ScanError{TargetRef: invRef(), Message: "timeout"},
		testSsimPath: NoFiles{TargetRef: ssimRef()},
	}}
	mailer := &fakeMailer{err: mailErr}

	_, err := NewCoordinator(testTargets(), scanner, mailer).Run(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCleanupFailed)
	assert.ErrorIs(t, err, mailErr)
	assert.Len(t, mailer.sent, 1)
}

// barrierScanner blockiert, bis alle Targets gleichzeitig gestartet wurden
type barrierScanner struct {
	wg sync.WaitGroup
}

func (s *barrierScanner) Scan(ctx context.Context, target config.Target) Outcome {
	ref := TargetRef{Hostname: target.Hostname, RemotePath: target.RemotePath}
	s.wg.Done()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return NoFiles{TargetRef: ref}
	case <-time.After(5 * time.Second):
		return ScanError{TargetRef: ref, Message: "scans laufen nicht parallel"}
	}
}

func TestCoordinator_Run_ScansInParallel(t *testing.T) {
	targets := testTargets()
	scanner := &barrierScanner{}
	scanner.wg.Add(len(targets))
	mailer := &fakeMailer{}

	report, err := NewCoordinator(targets, scanner, mailer).Run(context.Background())

	require.NoError(t, err)
	assert.Len(t, report.Outcomes, len(targets))
	assert.Empty(t, mailer.sent)
}

func TestCoordinator_Run_WorkerLogger(t *testing.T) {
	var sawWorkerLogger atomic.Int32
	scanner := scannerFunc(func(ctx context.Context, target config.Target) Outcome {
		if loggerFrom(ctx) != slog.Default() {
			sawWorkerLogger.Add(1)
		}
		return NoFiles{TargetRef: TargetRef{Hostname: target.Hostname, RemotePath: target.RemotePath}}
	})

	_, err := NewCoordinator(testTargets(), scanner, &fakeMailer{}).Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int32(2), sawWorkerLogger.Load(), "Jeder Worker muss einen eigenen Logger im Kontext haben")
}

type scannerFunc func(ctx context.Context, target config.Target) Outcome

func (f scannerFunc) Scan(ctx context.Context, target config.Target) Outcome {
	return f(ctx, target)
}

func TestCoordinator_Run_NoTargets(t *testing.T) {
	mailer := &fakeMailer{}

	report, err := NewCoordinator(nil, &fakeScanner{}, mailer).Run(context.Background())

	require.NoError(t, err)
	assert.Empty(t, report.Outcomes)
	assert.Empty(t, mailer.sent)
}
