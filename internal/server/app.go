// Package server wires the Lockbox server together: configuration,
// database, object storage, the content codec and the HTTP API, with
// graceful shutdown on OS signals.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/dmitrijs2005/lockbox/internal/cryptox"
	"github.com/dmitrijs2005/lockbox/internal/logging"
	"github.com/dmitrijs2005/lockbox/internal/server/config"
	"github.com/dmitrijs2005/lockbox/internal/server/httpapi"
	"github.com/dmitrijs2005/lockbox/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/lockbox/internal/server/services"
	"github.com/dmitrijs2005/lockbox/internal/server/storage"
)

type App struct {
	config        *config.Config
	logger        logging.Logger
	db            *sql.DB
	repos         repomanager.RepositoryManager
	fileService   *services.FileService
	folderService *services.FolderService
}

// NewApp builds the application from config. It fails, rather than
// degrades, when the encryption key is missing or shorter than the
// codec allows: a server that silently stored plaintext would be worse
// than one that refuses to start.
func NewApp(cfg *config.Config) (*App, error) {

	logger := logging.NewJSONLogger()

	codec, err := cryptox.NewCodec([]byte(cfg.EncryptionKey))
	if err != nil {
		return nil, fmt.Errorf("encryption key rejected: %w", err)
	}

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	blobs, err := storage.NewS3BlobStore(cfg)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("object storage init error: %w", err)
	}

	repos := repomanager.NewPostgresRepositoryManager()

	fs := services.NewFileService(db, repos, blobs, codec, logger)
	ds := services.NewFolderService(db, repos)

	return &App{
		config:        cfg,
		logger:        logger,
		db:            db,
		repos:         repos,
		fileService:   fs,
		folderService: ds,
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {

	s := httpapi.NewServer(app.config.EndpointAddr, app.logger,
		app.fileService, app.folderService,
		app.config.JWTSecret, app.config.MaxUploadBytes, app.config.ShutdownTimeout)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) error {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	if err := app.repos.RunMigrations(ctx, app.db); err != nil {
		return fmt.Errorf("migrations failed: %w", err)
	}

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "closing db", "error", err)
	}

	return nil
}
