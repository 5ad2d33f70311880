package main

import (
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"finvoice/internal/config"
	"finvoice/internal/email/noop"
	"finvoice/internal/email/ses"
	"finvoice/internal/handler"
	"finvoice/internal/port"
	"finvoice/internal/render"
	"finvoice/internal/repository/postgres"
	"finvoice/internal/router"
	"finvoice/internal/service"
	localstorage "finvoice/internal/storage/local"
	s3storage "finvoice/internal/storage/s3"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	// .env is optional; environment variables win.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	billRepo := postgres.NewBillRepo(db)

	// Initialize storage
	var storage port.ObjectStorage
	switch cfg.Storage.Provider {
	case "s3":
		storage, err = s3storage.New(&cfg.Storage)
	default:
		storage, err = localstorage.New(cfg.Storage.BaseDir, cfg.Storage.UploadsDir, cfg.Storage.RendersDir)
	}
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}

	// Initialize email sender
	var emailSender port.EmailSender
	switch cfg.Email.Provider {
	case "ses":
		emailSender, err = ses.NewSESSender(cfg.Email.Region, cfg.Email.FromAddress, cfg.Email.FromName)
		if err != nil {
			return fmt.Errorf("failed to initialize SES sender: %w", err)
		}
	default:
		emailSender = noop.NewNoopSender()
	}

	// Initialize renderers
	pdfRenderer := render.NewPDFRenderer(cfg.Render.WkhtmltopdfPath)
	htmlRenderer := render.NewHTMLRenderer()

	// Initialize services
	authSvc := service.NewAuthService(cfg.JWT, cfg.Admin)
	billSvc := service.NewBillService(
		billRepo, storage, pdfRenderer, htmlRenderer, emailSender,
		cfg.Render.Timeout, cfg.Storage.RendersDir)
	extractionSvc := service.NewExtractionService(
		storage, cfg.Storage.UploadsDir, cfg.Upload.MaxFileSizeMB*1024*1024)

	// Initialize handlers
	authH := handler.NewAuthHandler(authSvc)
	billH := handler.NewBillHandler(billSvc)
	uploadH := handler.NewUploadHandler(extractionSvc)
	analyticsH := handler.NewAnalyticsHandler(billSvc)
	maintenanceH := handler.NewMaintenanceHandler(billSvc, cfg.Retention)
	systemH := handler.NewSystemHandler(storage)
	healthH := handler.NewHealthHandler(db)

	// Setup router
	r := router.Setup(cfg, authSvc, authH, billH, uploadH, analyticsH, maintenanceH, systemH, healthH)

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
