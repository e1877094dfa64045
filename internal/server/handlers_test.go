package server

import (
	"bytes"
	"encoding/json"
	"image"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	"github.com/docuscan/docuscan/internal/database"
	"github.com/docuscan/docuscan/internal/ocr"
	"github.com/docuscan/docuscan/internal/usecase"
)

func setupServer(t *testing.T) http.Handler {
	t.Helper()
	tmp := t.TempDir()
	t.Setenv("DOCUSCAN_DIR", tmp)
	t.Setenv("XDG_DATA_HOME", "")

	dbCtx, err := database.CreateDatabase(":memory:")
	if err != nil {
		t.Fatalf("CreateDatabase error: %v", err)
	}
	t.Cleanup(func() {
		if err := database.CloseDatabase(dbCtx); err != nil {
			t.Fatalf("CloseDatabase error: %v", err)
		}
	})

	log := zerolog.Nop()
	scan := usecase.NewScan(dbCtx, ocr.NewMockExtractor(log), log)
	return New(scan, log).Router()
}

func multipartImage(t *testing.T, field, filename string) (*bytes.Buffer, string) {
	t.Helper()
	var img bytes.Buffer
	if err := png.Encode(&img, image.NewRGBA(image.Rect(0, 0, 400, 300))); err != nil {
		t.Fatalf("encoding fixture failed: %v", err)
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile(field, filename)
	if err != nil {
		t.Fatalf("creating form file failed: %v", err)
	}
	if _, err := fw.Write(img.Bytes()); err != nil {
		t.Fatalf("writing form file failed: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("closing multipart writer failed: %v", err)
	}
	return &body, mw.FormDataContentType()
}

func doRequest(t *testing.T, handler http.Handler, req *http.Request, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	handler := setupServer(t)
	rec := doRequest(t, handler, httptest.NewRequest(http.MethodGet, "/health", nil), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestUploadPreviewCommitFlow(t *testing.T) {
	handler := setupServer(t)

	body, contentType := multipartImage(t, "file", "invoice.png")
	req := httptest.NewRequest(http.MethodPost, "/api/scans", body)
	req.Header.Set("Content-Type", contentType)
	rec := doRequest(t, handler, req, nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	cookies := rec.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatalf("expected a session cookie to be issued")
	}

	var uploadResp struct {
		Image  StagedImageDTO `json:"image"`
		Staged int            `json:"staged"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &uploadResp); err != nil {
		t.Fatalf("decoding upload response failed: %v", err)
	}
	if uploadResp.Image.Filename != "invoice.png" || uploadResp.Staged != 1 {
		t.Fatalf("unexpected upload response: %+v", uploadResp)
	}

	rec = doRequest(t, handler, httptest.NewRequest(http.MethodGet, "/api/staging", nil), cookies)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 preview, got %d", rec.Code)
	}
	var previewResp struct {
		Images []PreviewItemDTO `json:"images"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &previewResp); err != nil {
		t.Fatalf("decoding preview response failed: %v", err)
	}
	if len(previewResp.Images) != 1 || previewResp.Images[0].Text == "" {
		t.Fatalf("unexpected preview response: %+v", previewResp)
	}

	rec = doRequest(t, handler, httptest.NewRequest(http.MethodPost, "/api/scans/commit", nil), cookies)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 commit, got %d: %s", rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get("Content-Type"); got != "application/pdf" {
		t.Fatalf("expected pdf response, got %q", got)
	}
	if rec.Header().Get("X-Scan-Id") == "" {
		t.Fatalf("expected scan id header")
	}

	// Staging must be empty after a committed scan.
	rec = doRequest(t, handler, httptest.NewRequest(http.MethodGet, "/api/staging", nil), cookies)
	if err := json.Unmarshal(rec.Body.Bytes(), &previewResp); err != nil {
		t.Fatalf("decoding preview response failed: %v", err)
	}
	if len(previewResp.Images) != 0 {
		t.Fatalf("expected empty staging after commit, got %d", len(previewResp.Images))
	}

	// And the scan shows up in history.
	rec = doRequest(t, handler, httptest.NewRequest(http.MethodGet, "/api/history", nil), nil)
	var historyResp struct {
		Scans []ScanRecordDTO `json:"scans"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &historyResp); err != nil {
		t.Fatalf("decoding history response failed: %v", err)
	}
	if len(historyResp.Scans) != 1 || historyResp.Scans[0].Pages != 1 {
		t.Fatalf("unexpected history: %+v", historyResp)
	}
}

func TestUploadRejectsNonImage(t *testing.T) {
	handler := setupServer(t)

	body, contentType := multipartImage(t, "file", "malware.exe")
	req := httptest.NewRequest(http.MethodPost, "/api/scans", body)
	req.Header.Set("Content-Type", contentType)
	rec := doRequest(t, handler, req, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestUploadWithoutFileField(t *testing.T) {
	handler := setupServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/scans", bytes.NewBufferString("not multipart"))
	req.Header.Set("Content-Type", "multipart/form-data; boundary=x")
	rec := doRequest(t, handler, req, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestCommitEmptySession(t *testing.T) {
	handler := setupServer(t)

	rec := doRequest(t, handler, httptest.NewRequest(http.MethodPost, "/api/scans/commit", nil), nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for empty commit, got %d", rec.Code)
	}
}

func TestClearStaging(t *testing.T) {
	handler := setupServer(t)

	body, contentType := multipartImage(t, "file", "a.png")
	req := httptest.NewRequest(http.MethodPost, "/api/scans", body)
	req.Header.Set("Content-Type", contentType)
	rec := doRequest(t, handler, req, nil)
	cookies := rec.Result().Cookies()

	rec = doRequest(t, handler, httptest.NewRequest(http.MethodDelete, "/api/staging", nil), cookies)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}

	rec = doRequest(t, handler, httptest.NewRequest(http.MethodPost, "/api/scans/commit", nil), cookies)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected commit of cleared session to fail with 400, got %d", rec.Code)
	}
}

func TestCameraCaptureIsStagedAsJPEG(t *testing.T) {
	handler := setupServer(t)

	body, contentType := multipartImage(t, "image", "blob")
	req := httptest.NewRequest(http.MethodPost, "/api/scans/camera", body)
	req.Header.Set("Content-Type", contentType)
	rec := doRequest(t, handler, req, nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Image StagedImageDTO `json:"image"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response failed: %v", err)
	}
	if len(resp.Image.Filename) == 0 || resp.Image.Filename[:7] != "camera_" {
		t.Fatalf("expected a camera_ filename, got %q", resp.Image.Filename)
	}
}

func TestHistoryDeleteAndDownloadNotFound(t *testing.T) {
	handler := setupServer(t)

	rec := doRequest(t, handler, httptest.NewRequest(http.MethodDelete, "/api/history/123", nil), nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 delete, got %d", rec.Code)
	}

	rec = doRequest(t, handler, httptest.NewRequest(http.MethodGet, "/api/history/123/download", nil), nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 download, got %d", rec.Code)
	}

	rec = doRequest(t, handler, httptest.NewRequest(http.MethodDelete, "/api/history/abc", nil), nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed id, got %d", rec.Code)
	}
}
