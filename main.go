package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"sftp-cleanup/config"
	"sftp-cleanup/services"

	"github.com/joho/godotenv"
	"gopkg.in/natefinch/lumberjack.v2"
	"gopkg.in/yaml.v3"
)

const (
	exitOK            = 0
	exitCleanupFailed = 1
	exitConfigError   = 2
)

var errNoConfigFile = errors.New("keine Konfigurationsdatei gefunden (env.yaml oder env.yml)")

func loadEnvYaml() (*config.EnvConfig, error) {
	yamlExists := fileExists("env.yaml")
	ymlExists := fileExists("env.yml")

	if yamlExists && ymlExists {
		return nil, fmt.Errorf("konflikt: sowohl env.yaml als auch env.yml sind vorhanden, bitte verwende nur eine der beiden Dateien")
	}

	var configFile string
	if yamlExists {
		configFile = "env.yaml"
	} else if ymlExists {
		configFile = "env.yml"
	} else {
		return nil, errNoConfigFile
	}

	data, err := os.ReadFile(configFile)
	if err != nil {
		return nil, fmt.Errorf("fehler beim Lesen von %s: %w", configFile, err)
	}

	var cfg config.EnvConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("fehler beim Parsen von %s: %w", configFile, err)
	}

	return &cfg, nil
}

func fileExists(filename string) bool {
	_, err := os.Stat(filename)
	return err == nil
}

// loadConfig lädt die Konfiguration in dieser Reihenfolge:
// env.yaml/env.yml, .env, Umgebungsvariablen, CLI-Parameter
func loadConfig(cliCfg *config.CLIConfig) (*config.EnvConfig, error) {
	cfg, err := loadEnvYaml()
	if err != nil {
		if !errors.Is(err, errNoConfigFile) {
			return nil, err
		}
		cfg = &config.EnvConfig{}
	}

	// .env überschreibt keine bereits gesetzten Umgebungsvariablen
	if cliCfg.EnvFile != "" {
		if err := godotenv.Load(cliCfg.EnvFile); err != nil {
			return nil, fmt.Errorf("fehler beim Laden von %s: %w", cliCfg.EnvFile, err)
		}
	} else {
		_ = godotenv.Load()
	}

	if err := cfg.LoadFromEnvironment(); err != nil {
		return nil, err
	}

	cliCfg.ApplyToCfg(cfg)
	cfg.SetDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setupLogger schreibt auf stdout oder, falls konfiguriert, in die Log-Datei.
// Der zurückgegebene Closer ist nil bei stdout.
func setupLogger(cfg *config.EnvConfig) io.Closer {
	var lvl slog.Level
	switch cfg.GetLogLevel() {
	case "DEBUG":
		lvl = slog.LevelDebug
	case "WARN":
		lvl = slog.LevelWarn
	case "ERROR":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	var writer io.Writer = os.Stdout
	var closer io.Closer
	if cfg.Log.File != "" {
		lj := &lumberjack.Logger{
			Filename:   cfg.Log.File,
			MaxSize:    10, // MB
			MaxBackups: 5,
			MaxAge:     30, // Tage
		}
		writer, closer = lj, lj
	}

	handler := slog.NewTextHandler(writer, &slog.HandlerOptions{Level: lvl})
	slog.SetDefault(slog.New(handler))
	return closer
}

func run() int {
	cliCfg := config.ParseCLI()
	if err := cliCfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Fehler in Kommandozeilen-Argumenten: %v\n", err)
		return exitConfigError
	}

	cfg, err := loadConfig(cliCfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Ungültige Konfiguration: %v\n", err)
		return exitConfigError
	}

	if closer := setupLogger(cfg); closer != nil {
		defer closer.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	coordinator := services.NewCoordinator(
		cfg.Targets(),
		services.NewScanner(services.RemoteDialer{}),
		services.NewSMTPMailer(cfg.Email()),
	)

	if _, err := coordinator.Run(ctx); err != nil {
		slog.Error("SFTP cleanup ist fehlgeschlagen", "fehler", err)
		return exitCleanupFailed
	}
	return exitOK
}

func main() {
	os.Exit(run())
}
