package server

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"

	"storage-rental-api/internal/adapters/blob"
	"storage-rental-api/internal/adapters/gateway"
	"storage-rental-api/internal/adapters/identity"
	"storage-rental-api/internal/config"
	"storage-rental-api/internal/handlers"
	"storage-rental-api/internal/stores"
	"storage-rental-api/pkg/lambda"
)

// Container holds all application dependencies. The same container
// backs both the local gin server and the Lambda entrypoints, so the
// wiring cannot diverge between deployment modes.
type Container struct {
	Config *config.Config
	Logger *logrus.Logger

	Facilities stores.RecordStore
	Payments   stores.RecordStore
	Users      stores.RecordStore
	Blobs      blob.BlobStore

	FacilityRouter *lambda.Router
	PaymentRouter  *lambda.Router
	UserRouter     *lambda.Router

	db *sql.DB
}

// NewContainer creates a new dependency injection container
func NewContainer(cfg *config.Config) (*Container, error) {
	logger := newLogger(cfg)

	c := &Container{
		Config: cfg,
		Logger: logger,
	}

	if err := c.buildStores(); err != nil {
		return nil, err
	}
	if err := c.buildBlobStore(); err != nil {
		_ = c.Close()
		return nil, err
	}

	var accounts identity.AccountService
	if cfg.Identity.ProvisioningEnabled {
		accounts = identity.NewLocalAccountService(&identity.LocalAccountConfig{
			JWTSecret:   cfg.Identity.JWTSecret,
			Issuer:      cfg.Identity.Issuer,
			TokenExpiry: time.Duration(cfg.Identity.TokenExpiryHours) * time.Hour,
		}, logger)
	}

	var gw gateway.Gateway
	if cfg.Gateway.Enabled {
		gw = gateway.NewSimulatedGateway(cfg.Gateway.DeclineAbove, logger)
	}

	facilityHandler := handlers.NewFacilityHandler(c.Facilities, c.Blobs, logger)
	paymentHandler := handlers.NewPaymentHandler(c.Payments, c.Facilities, gw, logger)
	userHandler := handlers.NewUserHandler(c.Users, accounts, logger)

	c.FacilityRouter = handlers.NewFacilityRouter(facilityHandler, logger)
	c.PaymentRouter = handlers.NewPaymentRouter(paymentHandler, logger)
	c.UserRouter = handlers.NewUserRouter(userHandler, logger)

	return c, nil
}

// buildStores constructs the three record stores per configuration.
// SQLite gets one shared connection with migrations applied up front.
func (c *Container) buildStores() error {
	switch c.Config.Store.Type {
	case "memory":
		c.Facilities = stores.NewMemoryStore()
		c.Payments = stores.NewMemoryStore()
		c.Users = stores.NewMemoryStore()
		return nil

	case "sqlite":
		db, err := sql.Open("sqlite3", c.Config.Store.Path+"?_foreign_keys=on&_journal_mode=WAL")
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		if err := stores.RunMigrations(db, c.Logger); err != nil {
			_ = db.Close()
			return fmt.Errorf("failed to run migrations: %w", err)
		}
		c.db = db
		c.Facilities = stores.NewSQLiteStore(db, "facilities", c.Logger)
		c.Payments = stores.NewSQLiteStore(db, "payments", c.Logger)
		c.Users = stores.NewSQLiteStore(db, "users", c.Logger)
		return nil

	default:
		return fmt.Errorf("unknown store type %q", c.Config.Store.Type)
	}
}

func (c *Container) buildBlobStore() error {
	switch c.Config.Blob.Type {
	case "memory":
		c.Blobs = blob.NewMemoryBlobStore(c.Config.Blob.BaseURL)
		return nil

	case "local":
		blobs, err := blob.NewLocalBlobStore(c.Config.Blob.LocalPath, c.Config.Blob.BaseURL)
		if err != nil {
			return fmt.Errorf("failed to create blob store: %w", err)
		}
		c.Blobs = blobs
		return nil

	default:
		return fmt.Errorf("unknown blob store type %q", c.Config.Blob.Type)
	}
}

// Close cleans up all resources
func (c *Container) Close() error {
	if c.Blobs != nil {
		if err := c.Blobs.Close(); err != nil {
			return fmt.Errorf("failed to close blob store: %w", err)
		}
	}
	if c.db != nil {
		if err := c.db.Close(); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
	}
	return nil
}

func newLogger(cfg *config.Config) *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	if cfg.Environment == "development" {
		logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.SetLevel(logrus.InfoLevel)
	}
	return logger
}
