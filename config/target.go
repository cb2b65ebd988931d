package config

import (
	"net"
	"strconv"
	"time"
)

const (
	ProtocolSFTP = "sftp"
	ProtocolFTP  = "ftp"
)

// Target beschreibt ein zu prüfendes Remote-Verzeichnis
type Target struct {
	Name       string
	Hostname   string
	Port       int
	Protocol   string
	Username   string
	Password   string
	RemotePath string

	ConnectTimeout time.Duration
}

// Address liefert host:port für den Verbindungsaufbau
func (t Target) Address() string {
	return net.JoinHostPort(t.Hostname, strconv.Itoa(t.GetPort()))
}

// GetPort liefert den konfigurierten Port oder den Standard-Port des Protokolls
func (t Target) GetPort() int {
	if t.Port > 0 {
		return t.Port
	}
	return defaultPort(t.Protocol)
}

// GetProtocol liefert das Protokoll, Standard ist SFTP
func (t Target) GetProtocol() string {
	if t.Protocol == "" {
		return ProtocolSFTP
	}
	return t.Protocol
}

func defaultPort(protocol string) int {
	if protocol == ProtocolFTP {
		return 21
	}
	return 22
}
