package handler

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"time"
)

// DataContainer is the blob container holding raw statement uploads.
const DataContainer = "cardwise-data"

// ProcessQueueName is the queue feeding the statement processor.
const ProcessQueueName = "process-queue"

// HandleUpload accepts a statement file (free text or CSV export), stores
// it in blob storage, and queues it for processing.
func (d *Dependencies) HandleUpload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		slog.Warn("upload attempt with invalid method", "method", r.Method, "path", r.URL.Path)
		WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	// 10MB limit
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		slog.Warn("failed to parse multipart form", "error", err, "max_size_mb", 10)
		WriteError(w, http.StatusBadRequest, "File too large or invalid form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		slog.Warn("failed to get file from form", "error", err)
		WriteError(w, http.StatusBadRequest, "Failed to get file")
		return
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		slog.Error("failed to read uploaded file", "filename", header.Filename, "error", err)
		WriteError(w, http.StatusInternalServerError, "Failed to read file")
		return
	}
	content := string(bytes)
	slog.Info("received statement upload", "filename", header.Filename, "size_bytes", len(bytes))

	timestamp := time.Now().Format("20060102-150405")
	filename := filepath.Base(header.Filename)
	blobName := fmt.Sprintf("uploads/%s-%s", timestamp, filename)

	if err := d.Blob.UploadText(r.Context(), DataContainer, blobName, content); err != nil {
		slog.Error("failed to upload blob", "blob_name", blobName, "container", DataContainer, "error", err)
		WriteError(w, http.StatusInternalServerError, "Failed to upload blob: "+err.Error())
		return
	}
	slog.Info("successfully uploaded blob", "blob_name", blobName, "container", DataContainer)

	msg := map[string]string{
		"blob_name": blobName,
		"filename":  filename,
	}

	if err := d.Queue.EnqueueMessage(r.Context(), ProcessQueueName, msg); err != nil {
		slog.Error("failed to enqueue message", "queue", ProcessQueueName, "filename", filename, "blob_name", blobName, "error", err)
		WriteError(w, http.StatusInternalServerError, "Failed to enqueue message: "+err.Error())
		return
	}
	slog.Info("successfully enqueued message", "queue", ProcessQueueName, "filename", filename, "blob_name", blobName)

	WriteJSON(w, http.StatusOK, map[string]string{
		"status":   "success",
		"blobName": blobName,
	})
}
