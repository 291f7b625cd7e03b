// Package httpapi exposes the file vault over HTTP. Handlers are thin:
// they validate and decode the request, call a service, and map typed
// errors to status codes. All cryptographic decisions live below the
// service boundary.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/lockbox/internal/logging"
	"github.com/dmitrijs2005/lockbox/internal/server/models"
)

// FileService is the subset of the file service used by the handlers.
type FileService interface {
	Upload(ctx context.Context, userID, name, mimeType string, folderID *string, data []byte) (*models.File, error)
	Download(ctx context.Context, userID, id string) (*models.File, []byte, error)
	Rename(ctx context.Context, userID, id, name string) error
	Move(ctx context.Context, userID, id string, folderID *string) error
	Delete(ctx context.Context, userID, id string) error
}

// FolderService is the subset of the folder service used by the handlers.
type FolderService interface {
	Create(ctx context.Context, userID, name string) (*models.Folder, error)
	Delete(ctx context.Context, userID, id string) error
}

type Server struct {
	address         string
	mux             *http.ServeMux
	logger          logging.Logger
	files           FileService
	folders         FolderService
	jwtSecret       []byte
	maxUploadBytes  int64
	shutdownTimeout time.Duration
}

func NewServer(address string, l logging.Logger, files FileService, folders FolderService,
	jwtSecret string, maxUploadBytes int64, shutdownTimeout time.Duration) *Server {

	s := &Server{
		address:         address,
		mux:             http.NewServeMux(),
		logger:          l.With("module", "http_server"),
		files:           files,
		folders:         folders,
		jwtSecret:       []byte(jwtSecret),
		maxUploadBytes:  maxUploadBytes,
		shutdownTimeout: shutdownTimeout,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.mux.HandleFunc("GET /api/ping", s.handlePing)

	s.mux.HandleFunc("POST /api/files", s.withAuth(s.handleUpload))
	s.mux.HandleFunc("GET /api/files/{id}", s.withAuth(s.handleDownload))
	s.mux.HandleFunc("PATCH /api/files/{id}", s.withAuth(s.handleUpdateFile))
	s.mux.HandleFunc("DELETE /api/files/{id}", s.withAuth(s.handleDeleteFile))

	s.mux.HandleFunc("POST /api/folders", s.withAuth(s.handleCreateFolder))
	s.mux.HandleFunc("DELETE /api/folders/{id}", s.withAuth(s.handleDeleteFolder))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// Run serves until ctx is cancelled, then drains in-flight requests within
// the configured shutdown timeout.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.address,
		Handler: s,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "HTTP server shutdown error", "error", err.Error())
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
