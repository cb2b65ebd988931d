package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"sftp-cleanup/config"

	"golang.org/x/sync/errgroup"
)

// ErrCleanupFailed signalisiert, dass mindestens ein Target nicht sauber ist
var ErrCleanupFailed = errors.New("SFTP cleanup ist mit Fehlern beendet")

// Report fasst einen Lauf zusammen
type Report struct {
	Outcomes []Outcome // in Abschluss-Reihenfolge
	Digest   []string
}

func (r Report) Clean() bool {
	return len(r.Digest) == 0
}

type Coordinator struct {
	targets []config.Target
	scanner TargetScanner
	mailer  Mailer
}

func NewCoordinator(targets []config.Target, scanner TargetScanner, mailer Mailer) *Coordinator {
	return &Coordinator{
		targets: targets,
		scanner: scanner,
		mailer:  mailer,
	}
}

// Run prüft alle Targets parallel und wartet auf sämtliche Ergebnisse. Ist
// ein Target nicht sauber, wird eine Alarm-Mail versendet und ein Fehler
// zurückgegeben, der ErrCleanupFailed enthält. Das gilt auch, wenn der
// Mailversand scheitert.
func (c *Coordinator) Run(ctx context.Context) (Report, error) {
	outcomes := c.scanAll(ctx)
	report := Report{
		Outcomes: outcomes,
		Digest:   BuildDigest(outcomes),
	}

	if report.Clean() {
		slog.Info("SFTP cleanup erfolgreich abgeschlossen", "targets", len(c.targets))
		return report, nil
	}

	failure := fmt.Errorf("%w: %d von %d Targets betroffen", ErrCleanupFailed, len(report.Digest), len(c.targets))

	if err := c.mailer.Send(ctx, AlertSubject, DigestBody(report.Digest)); err != nil {
		slog.Error("Alarm-Mail konnte nicht versendet werden", "fehler", err)
		return report, errors.Join(failure, fmt.Errorf("alarm-mail fehlgeschlagen: %w", err))
	}

	slog.Info("Alarm-Mail versendet", "probleme", len(report.Digest))
	return report, failure
}

// scanAll startet einen Worker pro Target und sammelt die Ergebnisse in der
// Reihenfolge ihres Abschlusses
func (c *Coordinator) scanAll(ctx context.Context) []Outcome {
	if len(c.targets) == 0 {
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(len(c.targets))

	results := make(chan Outcome, len(c.targets))
	for i, target := range c.targets {
		target := target
		logger := slog.With("worker", i+1, "target", target.Name)
		g.Go(func() error {
			results <- c.scanner.Scan(withLogger(gctx, logger), target)
			return nil
		})
	}

	// Scans liefern nie Fehler, Wait dient nur dem Join
	_ = g.Wait()
	close(results)

	outcomes := make([]Outcome, 0, len(c.targets))
	for outcome := range results {
		outcomes = append(outcomes, outcome)
	}
	return outcomes
}
