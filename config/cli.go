package config

import (
	"flag"
	"fmt"
	"os"
	"strings"
)

// CLIConfig holds command line argument configuration
type CLIConfig struct {
	LogLevel string
	LogFile  string
	EnvFile  string
	ShowHelp bool
}

// ParseCLI parses command line arguments and returns a CLIConfig
func ParseCLI() *CLIConfig {
	cfg := &CLIConfig{}

	flag.StringVar(&cfg.LogLevel, "log-level", "", "Set log level (DEBUG, INFO, WARN, ERROR)")
	flag.StringVar(&cfg.LogFile, "log-file", "", "Write logs to this file instead of stdout")
	flag.StringVar(&cfg.EnvFile, "env-file", "", "Load environment variables from this file instead of .env")
	flag.BoolVar(&cfg.ShowHelp, "help", false, "Show help message")
	flag.BoolVar(&cfg.ShowHelp, "h", false, "Show help message")

	flag.Usage = printUsage

	// Check for help flags before parsing
	for _, arg := range os.Args[1:] {
		if arg == "-h" || arg == "--help" {
			cfg.ShowHelp = true
			printUsage()
			os.Exit(0)
		}
	}

	flag.Parse()

	return cfg
}

// ApplyToCfg applies CLI configuration to EnvConfig
func (cli *CLIConfig) ApplyToCfg(cfg *EnvConfig) {
	if cli.LogLevel != "" {
		cfg.Log.Level = cli.LogLevel
	}
	if cli.LogFile != "" {
		cfg.Log.File = cli.LogFile
	}
}

// printUsage prints the usage information
func printUsage() {
	_, err := fmt.Fprintf(os.Stderr, `SFTP Cleanup - Prüft und bereinigt Remote-Verzeichnisse

USAGE:
    %s [OPTIONS]

OPTIONS:
    --log-level LEVEL    Set log level (DEBUG, INFO, WARN, ERROR)
                        Default: INFO

    --log-file PATH      Write logs to PATH instead of stdout

    --env-file PATH      Load variables from PATH instead of .env

    -h, --help           Show this help message

EXIT CODES:
    0   all targets clean (no files or checksum file removed)
    1   files remain on a target or a target failed (alert mail sent)
    2   invalid configuration

CONFIGURATION PRIORITY:
    1. Command line arguments (highest)
    2. Environment variables
    3. .env file
    4. env.yaml/env.yml file
    5. Default values (lowest)

ENVIRONMENT VARIABLES (required):
    SFTP_HOSTNAME        Remote host shared by both targets
    INV_PATH             INV remote directory
    INV_USERNAME         INV login
    SFTP_PASS_INV        INV password
    SSIM_PATH            SSIM remote directory
    SSIM_USERNAME        SSIM login
    SFTP_PASS_SSIM       SSIM password
    SMTP_SERVER          Mail relay host
    SENDER_EMAIL         Alert sender address
    RECEIVER_EMAIL       Alert receiver address

ENVIRONMENT VARIABLES (optional):
    SMTP_PORT            Default: 25 (465 with SMTP_TLS=ssl)
    SMTP_USERNAME        Enables SMTP authentication
    SMTP_PASSWORD        Required with SMTP_USERNAME
    SMTP_TLS             none, opportunistic, starttls, ssl
                        Default: starttls with SMTP_USERNAME, none otherwise
    SFTP_PORT            Default: 22 (21 for ftp)
    SFTP_PROTOCOL        sftp or ftp, Default: sftp
    SFTP_CONNECT_TIMEOUT Seconds, Default: 30
    LOG_LEVEL            Same as --log-level
    LOG_FILE             Same as --log-file

`, os.Args[0])
	if err != nil {
		return
	}
}

// Validate validates CLI configuration
func (cli *CLIConfig) Validate() error {
	if cli.LogLevel != "" {
		level := strings.ToUpper(cli.LogLevel)
		if level != "DEBUG" && level != "INFO" && level != "WARN" && level != "ERROR" {
			return fmt.Errorf("invalid log level: %s (allowed: DEBUG, INFO, WARN, ERROR)", cli.LogLevel)
		}
	}

	if cli.EnvFile != "" {
		if _, err := os.Stat(cli.EnvFile); err != nil {
			return fmt.Errorf("env file not readable: %w", err)
		}
	}

	return nil
}
