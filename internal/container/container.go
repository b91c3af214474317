// Package container provides dependency injection for the application.
// It centralizes the creation and wiring of all components, making them
// explicit and testable.
package container

import (
	"fmt"

	"mreyes/kuenta/internal/categorizer"
	"mreyes/kuenta/internal/config"
	"mreyes/kuenta/internal/docaccess"
	"mreyes/kuenta/internal/ingest"
	"mreyes/kuenta/internal/learner"
	"mreyes/kuenta/internal/logging"
	"mreyes/kuenta/internal/ocr"
	"mreyes/kuenta/internal/similarity"
	"mreyes/kuenta/internal/store"
)

// Container holds all application dependencies. It is immutable after
// creation; components are reached through getters only.
type Container struct {
	logger      logging.Logger
	config      *config.Config
	store       *store.SQLiteStore
	categorizer *categorizer.Categorizer
	learner     *learner.Learner
	matcher     *similarity.Matcher
	service     *ingest.Service
}

// NewContainer creates and wires all application dependencies.
func NewContainer(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}

	logger := logging.NewLogrusAdapter(cfg.Log.Level, cfg.Log.Format)

	db, err := store.OpenSQLite(cfg.Database.Path, logger)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	cat := categorizer.New(db, db, logger)
	if cfg.Categorization.RulesFile != "" {
		if err := cat.LoadRules(cfg.Categorization.RulesFile); err != nil {
			logger.WithError(err).Warn("Failed to load keyword rules, using built-in table")
		}
	}

	var ocrExtractor *ocr.Extractor
	if cfg.OCR.Enabled {
		ocrExtractor = ocr.New(logger)
		ocrExtractor.DPI = cfg.OCR.DPI
		ocrExtractor.Language = cfg.OCR.Language
		ocrExtractor.StopMarker = cfg.OCR.StopMarker
	} else {
		logger.Info("OCR fallback disabled")
	}

	accessor := docaccess.NewAccessor(docaccess.NewPDFTextExtractor(), ocrExtractor, logger)

	return &Container{
		logger:      logger,
		config:      cfg,
		store:       db,
		categorizer: cat,
		learner:     learner.New(db, db, logger),
		matcher:     similarity.NewMatcher(db, logger),
		service:     ingest.NewService(accessor, ocrExtractor, cat, logger),
	}, nil
}

// Close releases the container's resources.
func (c *Container) Close() error {
	return c.store.Close()
}

// GetLogger returns the configured logger.
func (c *Container) GetLogger() logging.Logger { return c.logger }

// GetConfig returns the application configuration.
func (c *Container) GetConfig() *config.Config { return c.config }

// GetStore returns the SQLite-backed store.
func (c *Container) GetStore() *store.SQLiteStore { return c.store }

// GetCategorizer returns the categorization engine.
func (c *Container) GetCategorizer() *categorizer.Categorizer { return c.categorizer }

// GetLearner returns the merchant learner.
func (c *Container) GetLearner() *learner.Learner { return c.learner }

// GetMatcher returns the similarity matcher.
func (c *Container) GetMatcher() *similarity.Matcher { return c.matcher }

// GetService returns the extraction service.
func (c *Container) GetService() *ingest.Service { return c.service }
