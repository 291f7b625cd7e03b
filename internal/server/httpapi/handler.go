package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"
	"time"

	"github.com/dmitrijs2005/lockbox/internal/common"
	"github.com/dmitrijs2005/lockbox/internal/cryptox"
	"github.com/dmitrijs2005/lockbox/internal/server/models"
)

type fileResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	FolderID  *string   `json:"folder_id,omitempty"`
	MimeType  string    `json:"mime_type"`
	Size      int64     `json:"size"`
	CreatedAt time.Time `json:"created_at"`
}

type folderResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// writeServiceError maps typed service errors to HTTP responses. Responses
// stay generic on purpose: cipher internals never leak to the client.
func (s *Server) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, common.ErrorNotFound):
		writeJSONError(w, http.StatusNotFound, "not found")
	case errors.Is(err, common.ErrorInvalidName):
		writeJSONError(w, http.StatusBadRequest, "invalid name")
	case errors.Is(err, cryptox.ErrDecryptFailed), errors.Is(err, cryptox.ErrMalformedBlob):
		// full detail goes to the log, the client only learns that
		// decryption failed
		s.logger.Error(r.Context(), "decryption failure", "path", r.URL.Path, "error", err.Error())
		writeJSONError(w, http.StatusInternalServerError, "failed to decrypt")
	default:
		s.logger.Error(r.Context(), "request failed", "path", r.URL.Path, "error", err.Error())
		writeJSONError(w, http.StatusInternalServerError, "internal error")
	}
}

func (s *Server) handlePing(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "OK"})
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request, userID string) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes)

	if err := r.ParseMultipartForm(s.maxUploadBytes); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			writeJSONError(w, http.StatusRequestEntityTooLarge, "upload too large")
			return
		}
		writeJSONError(w, http.StatusBadRequest, fmt.Sprintf("failed to parse multipart form: %v", err))
		return
	}

	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "file field is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "failed to read file")
		return
	}

	var folderID *string
	if v := r.FormValue("folder_id"); v != "" {
		folderID = &v
	}

	mimeType := fileHeader.Header.Get("Content-Type")
	if mimeType != "" {
		if parsed, _, err := mime.ParseMediaType(mimeType); err == nil {
			mimeType = parsed
		}
	}

	created, err := s.files.Upload(r.Context(), userID, fileHeader.Filename, mimeType, folderID, data)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	s.logger.Info(r.Context(), "file uploaded", "file_id", created.ID, "size", created.Size)
	writeJSON(w, http.StatusCreated, toFileResponse(created))
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request, userID string) {
	id := r.PathValue("id")

	file, data, err := s.files.Download(r.Context(), userID, id)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", file.MimeType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": file.Name}))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

type updateFileRequest struct {
	Name *string `json:"name"`
	// FolderID moves the file: a folder id attaches it, an empty string
	// moves it to the root, absence leaves it where it is.
	FolderID *string `json:"folder_id"`
}

func (s *Server) handleUpdateFile(w http.ResponseWriter, r *http.Request, userID string) {
	id := r.PathValue("id")

	var req updateFileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == nil && req.FolderID == nil {
		writeJSONError(w, http.StatusBadRequest, "nothing to update")
		return
	}

	if req.Name != nil {
		if err := s.files.Rename(r.Context(), userID, id, *req.Name); err != nil {
			s.writeServiceError(w, r, err)
			return
		}
	}

	if req.FolderID != nil {
		target := req.FolderID
		if *target == "" {
			target = nil
		}
		if err := s.files.Move(r.Context(), userID, id, target); err != nil {
			s.writeServiceError(w, r, err)
			return
		}
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteFile(w http.ResponseWriter, r *http.Request, userID string) {
	id := r.PathValue("id")

	if err := s.files.Delete(r.Context(), userID, id); err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	s.logger.Info(r.Context(), "file deleted", "file_id", id)
	w.WriteHeader(http.StatusNoContent)
}

type createFolderRequest struct {
	Name string `json:"name"`
}

func (s *Server) handleCreateFolder(w http.ResponseWriter, r *http.Request, userID string) {
	var req createFolderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	folder, err := s.folders.Create(r.Context(), userID, req.Name)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, folderResponse{ID: folder.ID, Name: folder.Name})
}

func (s *Server) handleDeleteFolder(w http.ResponseWriter, r *http.Request, userID string) {
	id := r.PathValue("id")

	if err := s.folders.Delete(r.Context(), userID, id); err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func toFileResponse(f *models.File) fileResponse {
	return fileResponse{
		ID:        f.ID,
		Name:      f.Name,
		FolderID:  f.FolderID,
		MimeType:  f.MimeType,
		Size:      f.Size,
		CreatedAt: f.CreatedAt,
	}
}
