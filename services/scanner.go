package services

import (
	"context"
	"fmt"
	"log/slog"
	"path"
	"strings"

	"sftp-cleanup/config"
)

const checksumSuffix = ".md5sum"

// TargetScanner prüft ein einzelnes Target und liefert genau ein Ergebnis
type TargetScanner interface {
	Scan(ctx context.Context, target config.Target) Outcome
}

type Scanner struct {
	dialer Dialer
}

func NewScanner(dialer Dialer) *Scanner {
	return &Scanner{dialer: dialer}
}

func isChecksumFile(name string) bool {
	return strings.HasSuffix(name, checksumSuffix)
}

// Scan listet das Remote-Verzeichnis und klassifiziert den Inhalt. Liegt dort
// ausschließlich eine einzelne .md5sum-Datei, wird sie gelöscht. Jeder Fehler
// wird als ScanError zurückgegeben.
func (s *Scanner) Scan(ctx context.Context, target config.Target) (outcome Outcome) {
	ref := TargetRef{Hostname: target.Hostname, RemotePath: target.RemotePath}
	logger := loggerFrom(ctx).With("pfad", target.RemotePath)

	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("panic: %v", r)
			logger.Error("Fehler bei der SFTP-Prüfung", "fehler", err)
			outcome = ScanError{TargetRef: ref, Message: err.Error()}
		}
	}()

	result, err := s.scan(ctx, target, ref, logger)
	if err != nil {
		logger.Error("Fehler bei der SFTP-Prüfung", "fehler", err)
		return ScanError{TargetRef: ref, Message: err.Error()}
	}
	return result
}

func (s *Scanner) scan(ctx context.Context, target config.Target, ref TargetRef, logger *slog.Logger) (Outcome, error) {
	session, err := s.dialer.Dial(ctx, target)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := session.Close(); err != nil {
			logger.Debug("Session konnte nicht sauber geschlossen werden", "fehler", err)
		}
	}()

	files, err := session.ReadDir(target.RemotePath)
	if err != nil {
		return nil, err
	}
	logger.Info("Verzeichnis gelistet", "dateien", files)

	if len(files) == 0 {
		return NoFiles{TargetRef: ref}, nil
	}

	// Nur eine einzelne Prüfsummen-Datei ohne weitere Einträge wird entfernt
	if len(files) == 1 && isChecksumFile(files[0]) {
		file := files[0]
		if err := session.Remove(path.Join(target.RemotePath, file)); err != nil {
			return nil, err
		}
		logger.Info("Prüfsummen-Datei wurde gelöscht", "datei", file)
		return Md5sumDeleted{TargetRef: ref, File: file}, nil
	}

	return FilesPresent{TargetRef: ref, Files: files}, nil
}
