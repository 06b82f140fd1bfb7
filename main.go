package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/aarogyavani/companion/internal/config"
	"github.com/aarogyavani/companion/internal/gemini"
	"github.com/aarogyavani/companion/internal/reminder"
	"github.com/aarogyavani/companion/internal/scan"
	"github.com/aarogyavani/companion/internal/security"
	"github.com/aarogyavani/companion/internal/service"
	"github.com/aarogyavani/companion/internal/store"
)

var (
	logger *zap.Logger
	cfg    *config.Config
)

func main() {
	// Load configuration
	var err error
	cfg, err = config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize Zap logger
	if cfg.App.Environment == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	logger.Info("Configuration loaded successfully",
		zap.String("environment", cfg.App.Environment),
		zap.String("db_path", cfg.DBPath()),
	)

	// Open the local store
	st, err := store.Open(cfg.DBPath(), logger)
	if err != nil {
		logger.Fatal("Failed to open local store", zap.Error(err))
	}
	defer st.Close()

	// Initialize the optional API key encryptor
	var encryptor *security.Encryptor
	if cfg.App.EncryptionPassphrase != "" {
		encryptor, err = security.NewEncryptor(cfg.App.EncryptionPassphrase)
		if err != nil {
			logger.Fatal("Failed to initialize encryptor", zap.Error(err))
		}
	}

	// Initialize services
	medicationService := service.NewMedicationService(st, logger)
	appointmentService := service.NewAppointmentService(st, logger)
	contactService := service.NewContactService(st, logger)
	historyService := service.NewHistoryService(st, logger)
	settingsService := service.NewSettingsService(st, encryptor, logger)

	// Resolve the Gemini API key: the stored one wins, the environment is
	// the fallback. A missing key is not fatal; scanning reports it instead.
	apiKey := settingsService.APIKey()
	if apiKey == "" {
		apiKey = cfg.Gemini.APIKey
	}

	var geminiClient *gemini.Client
	if apiKey != "" {
		geminiClient, err = gemini.NewClient(cfg.Gemini.BaseURL, apiKey, cfg.Gemini.Model, logger)
		if err != nil {
			logger.Fatal("Failed to initialize Gemini client", zap.Error(err))
		}
	} else {
		logger.Warn("No Gemini API key configured, prescription scanning unavailable")
	}

	// Initialize the scan flow. With a nil client it parks in the
	// missing-credential state on first submit.
	var analyzer *gemini.Analyzer
	if geminiClient != nil {
		analyzer = gemini.NewAnalyzer(geminiClient, logger)
	} else {
		analyzer = gemini.NewAnalyzer(nil, logger)
	}
	scanFlow := scan.NewFlow(analyzer, historyService, logger)

	// Start the reminder scheduler with console providers
	scheduler := reminder.NewScheduler(
		medicationService,
		&reminder.ConsoleNotifier{Logger: logger},
		&reminder.ConsoleSpeaker{Logger: logger},
		&reminder.ConsoleHaptic{Logger: logger},
		logger,
	)
	if err := scheduler.Start(); err != nil {
		logger.Fatal("Failed to start reminder scheduler", zap.Error(err))
	}

	today := time.Now().Format("2006-01-02")
	logger.Info("AarogyaVani companion running",
		zap.Int("medications", len(medicationService.List())),
		zap.String("default_language", cfg.App.DefaultLanguage),
		zap.String("scan_state", string(scanFlow.State())),
	)
	logger.Info("care summary",
		zap.String("summary", service.BuildSummary(
			today,
			medicationService.List(),
			medicationService.Logs(),
			appointmentService.List(),
			contactService.List(),
		)),
	)

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down...")

	scheduler.Stop()

	if err := st.Close(); err != nil {
		logger.Error("Failed to close local store", zap.Error(err))
	}

	logger.Info("Companion exited")
}
