package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/docuscan/docuscan/internal/config"
	"github.com/docuscan/docuscan/internal/database"
	"github.com/docuscan/docuscan/internal/services"
	"github.com/docuscan/docuscan/internal/usecase"
)

// multipart framing overhead allowed on top of the image size ceiling.
const uploadBodyLimit = config.MaxUploadBytes + 1<<20

func newSessionID() string {
	return uuid.NewString()
}

// StagedImageDTO describes one staged upload in API responses.
type StagedImageDTO struct {
	Filename string `json:"filename"`
	Enhanced bool   `json:"enhanced"`
}

// PreviewItemDTO pairs a staged upload with its extracted text.
type PreviewItemDTO struct {
	Filename string `json:"filename"`
	Text     string `json:"text"`
}

// ScanRecordDTO describes one history entry in API responses.
type ScanRecordDTO struct {
	ID        int64  `json:"id"`
	Filename  string `json:"filename"`
	CreatedAt string `json:"createdAt"`
	Pages     int64  `json:"pages"`
}

func scanRecordDTO(record database.ScanRecord) ScanRecordDTO {
	return ScanRecordDTO{
		ID:        record.ID,
		Filename:  record.Filename,
		CreatedAt: record.CreatedAt.Format(time.RFC3339),
		Pages:     record.PageCount,
	}
}

// handleUpload accepts a multipart image upload and stages it for the session.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	s.stageUpload(w, r, "file", "")
}

// handleCameraCapture stores a camera frame; captures are always JPEG.
func (s *Server) handleCameraCapture(w http.ResponseWriter, r *http.Request) {
	name := fmt.Sprintf("camera_%s.jpg", uuid.NewString())
	s.stageUpload(w, r, "image", name)
}

func (s *Server) stageUpload(w http.ResponseWriter, r *http.Request, field, forcedName string) {
	session := s.session(w, r)

	r.Body = http.MaxBytesReader(w, r.Body, uploadBodyLimit)
	file, header, err := r.FormFile(field)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			s.writeError(w, http.StatusRequestEntityTooLarge, "file is too large, maximum size is 16MB")
			return
		}
		s.writeError(w, http.StatusBadRequest, "no file selected")
		return
	}
	defer file.Close()

	name := header.Filename
	if forcedName != "" {
		name = forcedName
	}

	entry, err := s.scan.Stage(session, name, header.Size, file)
	switch {
	case errors.Is(err, usecase.ErrInvalidType):
		s.writeError(w, http.StatusBadRequest, "invalid file type, please upload an image")
		return
	case errors.Is(err, usecase.ErrEmptyFile):
		s.writeError(w, http.StatusBadRequest, "no file selected")
		return
	case errors.Is(err, usecase.ErrTooLarge):
		s.writeError(w, http.StatusRequestEntityTooLarge, "file is too large, maximum size is 16MB")
		return
	case err != nil:
		s.log.Error().Err(err).Msg("staging upload failed")
		s.writeError(w, http.StatusInternalServerError, "error uploading file, please try again")
		return
	}

	s.writeJSON(w, http.StatusCreated, map[string]any{
		"image":  StagedImageDTO{Filename: entry.DisplayName, Enhanced: entry.Enhanced},
		"staged": len(s.scan.Staged(session)),
	})
}

// handlePreview returns extraction results for everything staged in the session.
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	session := s.session(w, r)

	items, err := s.scan.Preview(session)
	if err != nil && !errors.Is(err, usecase.ErrEmptySession) {
		s.log.Error().Err(err).Msg("preview failed")
		s.writeError(w, http.StatusInternalServerError, "error building preview")
		return
	}

	dtos := make([]PreviewItemDTO, 0, len(items))
	for _, item := range items {
		dtos = append(dtos, PreviewItemDTO{Filename: item.DisplayName, Text: item.Text})
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"images": dtos})
}

// handleClearStaging drops all staged images for the session.
func (s *Server) handleClearStaging(w http.ResponseWriter, r *http.Request) {
	s.scan.ClearStaging(s.session(w, r))
	w.WriteHeader(http.StatusNoContent)
}

// handleCommit assembles the staged images into a PDF and streams it back.
func (s *Server) handleCommit(w http.ResponseWriter, r *http.Request) {
	session := s.session(w, r)

	record, path, err := s.scan.Commit(r.Context(), session)
	switch {
	case errors.Is(err, usecase.ErrEmptySession):
		s.writeError(w, http.StatusBadRequest, "no images to convert, please upload images first")
		return
	case err != nil:
		// Staged images survive the failure; the client may simply retry.
		s.log.Error().Err(err).Msg("pdf commit failed")
		s.writeError(w, http.StatusInternalServerError, "error creating PDF, please try again")
		return
	}

	w.Header().Set("X-Scan-Id", strconv.FormatInt(record.ID, 10))
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", record.Filename))
	w.Header().Set("Content-Type", "application/pdf")
	http.ServeFile(w, r, path)
}

// handleHistoryList lists completed scans, newest first.
func (s *Server) handleHistoryList(w http.ResponseWriter, r *http.Request) {
	records, err := s.scan.History().ListAll(r.Context())
	if err != nil {
		s.log.Error().Err(err).Msg("history listing failed")
		s.writeError(w, http.StatusInternalServerError, "error loading history")
		return
	}

	dtos := make([]ScanRecordDTO, 0, len(records))
	for _, record := range records {
		dtos = append(dtos, scanRecordDTO(record))
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"scans": dtos})
}

// handleDownload re-serves a previously generated PDF.
func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid scan id")
		return
	}

	path, filename, err := s.scan.Download(r.Context(), id)
	switch {
	case errors.Is(err, services.ErrNotFound):
		s.writeError(w, http.StatusNotFound, "scan not found")
		return
	case errors.Is(err, usecase.ErrFileMissing):
		s.writeError(w, http.StatusGone, "PDF file not found")
		return
	case err != nil:
		s.log.Error().Err(err).Int64("id", id).Msg("download failed")
		s.writeError(w, http.StatusInternalServerError, "error downloading PDF")
		return
	}

	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Type", "application/pdf")
	http.ServeFile(w, r, path)
}

// handleHistoryDelete removes a scan record and its backing file.
func (s *Server) handleHistoryDelete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid scan id")
		return
	}

	err = s.scan.Delete(r.Context(), id)
	switch {
	case errors.Is(err, services.ErrNotFound):
		s.writeError(w, http.StatusNotFound, "scan not found")
		return
	case err != nil:
		s.log.Error().Err(err).Int64("id", id).Msg("delete failed")
		s.writeError(w, http.StatusInternalServerError, "error deleting scan")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.log.Error().Err(err).Msg("encoding response failed")
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"error": message})
}
