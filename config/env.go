package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"` // leer = stdout
}

type SFTPConfig struct {
	Hostname       string `yaml:"hostname"`
	Port           int    `yaml:"port"`            // 0 = Standard-Port des Protokolls
	Protocol       string `yaml:"protocol"`        // sftp oder ftp
	ConnectTimeout int    `yaml:"connect-timeout"` // Timeout für den Verbindungsaufbau in Sekunden
}

// AccountConfig sind Zugangsdaten und Verzeichnis eines Targets
type AccountConfig struct {
	Path     string `yaml:"path"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

type SMTPConfig struct {
	Server   string `yaml:"server"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	TLS      string `yaml:"tls"`
	Sender   string `yaml:"sender"`
	Receiver string `yaml:"receiver"`
}

type EnvConfig struct {
	Log  LogConfig     `yaml:"log"`
	SFTP SFTPConfig    `yaml:"sftp"`
	Inv  AccountConfig `yaml:"inv"`
	Ssim AccountConfig `yaml:"ssim"`
	SMTP SMTPConfig    `yaml:"smtp"`
}

type stringBinding struct {
	keys   []string
	target *string
}

type intBinding struct {
	keys   []string
	target *int
}

// stringBindings ordnet Umgebungsvariablen den Feldern zu. Der erste Schlüssel
// ist der kanonische Name, danach folgt die Punkt-Schreibweise.
func (c *EnvConfig) stringBindings() []stringBinding {
	return []stringBinding{
		{[]string{"LOG_LEVEL", "log.level"}, &c.Log.Level},
		{[]string{"LOG_FILE", "log.file"}, &c.Log.File},
		{[]string{"SFTP_HOSTNAME", "sftp.hostname"}, &c.SFTP.Hostname},
		{[]string{"SFTP_PROTOCOL", "sftp.protocol"}, &c.SFTP.Protocol},
		{[]string{"INV_PATH", "inv.path"}, &c.Inv.Path},
		{[]string{"INV_USERNAME", "inv.username"}, &c.Inv.Username},
		{[]string{"SFTP_PASS_INV", "inv.password"}, &c.Inv.Password},
		{[]string{"SSIM_PATH", "ssim.path"}, &c.Ssim.Path},
		{[]string{"SSIM_USERNAME", "ssim.username"}, &c.Ssim.Username},
		{[]string{"SFTP_PASS_SSIM", "ssim.password"}, &c.Ssim.Password},
		{[]string{"SMTP_SERVER", "smtp.server"}, &c.SMTP.Server},
		{[]string{"SMTP_USERNAME", "smtp.username"}, &c.SMTP.Username},
		{[]string{"SMTP_PASSWORD", "smtp.password"}, &c.SMTP.Password},
		{[]string{"SMTP_TLS", "smtp.tls"}, &c.SMTP.TLS},
		{[]string{"SENDER_EMAIL", "smtp.sender"}, &c.SMTP.Sender},
		{[]string{"RECEIVER_EMAIL", "smtp.receiver"}, &c.SMTP.Receiver},
	}
}

func (c *EnvConfig) intBindings() []intBinding {
	return []intBinding{
		{[]string{"SFTP_PORT", "sftp.port"}, &c.SFTP.Port},
		{[]string{"SFTP_CONNECT_TIMEOUT", "sftp.connect_timeout"}, &c.SFTP.ConnectTimeout},
		{[]string{"SMTP_PORT", "smtp.port"}, &c.SMTP.Port},
	}
}

// lookupEnv liefert den ersten gesetzten Wert der angegebenen Schlüssel
func lookupEnv(keys ...string) string {
	for _, key := range keys {
		if value := os.Getenv(key); value != "" {
			return value
		}
	}
	return ""
}

// LoadFromEnvironment loads the configuration from environment variables.
// Set variables override values from env.yaml.
func (c *EnvConfig) LoadFromEnvironment() error {
	for _, b := range c.stringBindings() {
		if value := lookupEnv(b.keys...); value != "" {
			*b.target = value
		}
	}

	var errs []error
	for _, b := range c.intBindings() {
		value := lookupEnv(b.keys...)
		if value == "" {
			continue
		}
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			errs = append(errs, fmt.Errorf("ungültiger Wert für %s: %q", b.keys[0], value))
			continue
		}
		*b.target = n
	}

	return errors.Join(errs...)
}

// SetDefaults setzt Standard-Werte für die Konfiguration
func (c *EnvConfig) SetDefaults() {
	if c.Log.Level == "" {
		c.Log.Level = "INFO"
	}
	if c.SFTP.Protocol == "" {
		c.SFTP.Protocol = ProtocolSFTP
	}
	if c.SFTP.ConnectTimeout == 0 {
		c.SFTP.ConnectTimeout = 30 // Sekunden
	}
}

// Validate prüft alle Pflichtfelder auf einmal und meldet sämtliche fehlenden
// Schlüssel gemeinsam.
func (c *EnvConfig) Validate() error {
	var missing []string
	require := func(key, value string) {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, key)
		}
	}

	require("SFTP_HOSTNAME", c.SFTP.Hostname)
	require("INV_PATH", c.Inv.Path)
	require("INV_USERNAME", c.Inv.Username)
	require("SFTP_PASS_INV", c.Inv.Password)
	require("SSIM_PATH", c.Ssim.Path)
	require("SSIM_USERNAME", c.Ssim.Username)
	require("SFTP_PASS_SSIM", c.Ssim.Password)
	require("SMTP_SERVER", c.SMTP.Server)
	require("SENDER_EMAIL", c.SMTP.Sender)
	require("RECEIVER_EMAIL", c.SMTP.Receiver)
	if c.SMTP.Username != "" {
		require("SMTP_PASSWORD", c.SMTP.Password)
	}

	var errs []error
	if len(missing) > 0 {
		errs = append(errs, &MissingKeysError{Keys: missing})
	}

	switch c.SFTP.Protocol {
	case "", ProtocolSFTP, ProtocolFTP:
	default:
		errs = append(errs, fmt.Errorf("ungültiges Protokoll: %s (erlaubt: sftp, ftp)", c.SFTP.Protocol))
	}

	if !validTLSPolicy(strings.ToLower(c.SMTP.TLS)) {
		errs = append(errs, fmt.Errorf("ungültige TLS-Policy: %s (erlaubt: none, opportunistic, starttls, ssl)", c.SMTP.TLS))
	}

	return errors.Join(errs...)
}

// GetLogLevel returns the configured log level.
func (c *EnvConfig) GetLogLevel() string {
	level := strings.ToUpper(c.Log.Level)
	switch level {
	case "DEBUG", "INFO", "WARN", "ERROR":
		return level
	default:
		return "INFO"
	}
}

// Targets liefert die beiden zu prüfenden Verzeichnisse (INV, SSIM)
func (c *EnvConfig) Targets() []Target {
	return []Target{
		c.target("INV", c.Inv),
		c.target("SSIM", c.Ssim),
	}
}

func (c *EnvConfig) target(name string, account AccountConfig) Target {
	return Target{
		Name:           name,
		Hostname:       c.SFTP.Hostname,
		Port:           c.SFTP.Port,
		Protocol:       c.SFTP.Protocol,
		Username:       account.Username,
		Password:       account.Password,
		RemotePath:     account.Path,
		ConnectTimeout: time.Duration(c.SFTP.ConnectTimeout) * time.Second,
	}
}

// Email liefert die SMTP-Konfiguration für die Alarm-Mail
func (c *EnvConfig) Email() EmailConfig {
	return EmailConfig{
		Server:   c.SMTP.Server,
		Port:     c.SMTP.Port,
		Username: c.SMTP.Username,
		Password: c.SMTP.Password,
		TLS:      strings.ToLower(c.SMTP.TLS),
		Sender:   c.SMTP.Sender,
		Receiver: c.SMTP.Receiver,
	}
}
