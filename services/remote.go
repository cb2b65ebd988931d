package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"time"

	"sftp-cleanup/config"

	"github.com/jlaffaye/ftp"
	"github.com/pkg/sftp"
	"golang.org/x/crypto/ssh"
)

const defaultConnectTimeout = 30 * time.Second

// Session ist eine offene Verbindung zu einem Remote-Verzeichnis
type Session interface {
	// ReadDir liefert die Namen aller Einträge, nicht rekursiv, in der
	// Reihenfolge des Servers
	ReadDir(dir string) ([]string, error)
	Remove(path string) error
	Close() error
}

// Dialer öffnet eine Session zu einem Target
type Dialer interface {
	Dial(ctx context.Context, target config.Target) (Session, error)
}

// RemoteDialer wählt SFTP oder FTP anhand des Target-Protokolls
type RemoteDialer struct{}

func (RemoteDialer) Dial(ctx context.Context, target config.Target) (Session, error) {
	switch target.GetProtocol() {
	case config.ProtocolSFTP:
		return dialSFTP(ctx, target)
	case config.ProtocolFTP:
		return dialFTP(ctx, target)
	default:
		return nil, fmt.Errorf("unbekanntes Protokoll: %s", target.Protocol)
	}
}

func connectTimeout(target config.Target) time.Duration {
	if target.ConnectTimeout > 0 {
		return target.ConnectTimeout
	}
	return defaultConnectTimeout
}

// createSSHConfig erstellt eine SSH-Konfiguration für SFTP
func createSSHConfig(target config.Target) *ssh.ClientConfig {
	return &ssh.ClientConfig{
		User: target.Username,
		Auth: []ssh.AuthMethod{
			ssh.Password(target.Password),
		},
		HostKeyCallback: ssh.InsecureIgnoreHostKey(),
		Timeout:         connectTimeout(target),
	}
}

func dialSFTP(ctx context.Context, target config.Target) (Session, error) {
	addr := target.Address()
	dialer := net.Dialer{Timeout: connectTimeout(target)}

	netConn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("SSH-Verbindung fehlgeschlagen: %w", err)
	}

	// Deadline gilt nur für Handshake und Anmeldung
	netConn.SetDeadline(time.Now().Add(connectTimeout(target)))
	sshConn, chans, reqs, err := ssh.NewClientConn(netConn, addr, createSSHConfig(target))
	if err != nil {
		netConn.Close()
		return nil, fmt.Errorf("SSH-Anmeldung fehlgeschlagen: %w", err)
	}
	netConn.SetDeadline(time.Time{})
	conn := ssh.NewClient(sshConn, chans, reqs)

	client, err := sftp.NewClient(conn)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("SFTP-Client-Erstellung fehlgeschlagen: %w", err)
	}

	return newSFTPSession(client, conn), nil
}

type sftpSession struct {
	client *sftp.Client
	conn   io.Closer // SSH-Verbindung, nil bei Pipes
}

func newSFTPSession(client *sftp.Client, conn io.Closer) *sftpSession {
	return &sftpSession{client: client, conn: conn}
}

func (s *sftpSession) ReadDir(dir string) ([]string, error) {
	entries, err := s.client.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	return names, nil
}

func (s *sftpSession) Remove(path string) error {
	return s.client.Remove(path)
}

func (s *sftpSession) Close() error {
	err := s.client.Close()
	if s.conn != nil {
		err = errors.Join(err, s.conn.Close())
	}
	return err
}

// dialFTP stellt FTP-Verbindung her und meldet sich an
func dialFTP(ctx context.Context, target config.Target) (Session, error) {
	client, err := ftp.Dial(target.Address(),
		ftp.DialWithTimeout(connectTimeout(target)),
		ftp.DialWithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("FTP-Verbindung fehlgeschlagen: %w", err)
	}

	if err := client.Login(target.Username, target.Password); err != nil {
		client.Quit()
		return nil, fmt.Errorf("FTP-Anmeldung fehlgeschlagen: %w", err)
	}

	return &ftpSession{client: client}, nil
}

type ftpSession struct {
	client *ftp.ServerConn
}

func (s *ftpSession) ReadDir(dir string) ([]string, error) {
	entries, err := s.client.List(dir)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.Name == "." || entry.Name == ".." {
			continue
		}
		names = append(names, entry.Name)
	}
	return names, nil
}

func (s *ftpSession) Remove(path string) error {
	return s.client.Delete(path)
}

func (s *ftpSession) Close() error {
	return s.client.Quit()
}
