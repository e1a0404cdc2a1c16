package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"virtuwear/internal/application/services"
	"virtuwear/internal/application/usecases"
	"virtuwear/internal/domain/entities"
)

const fallbackIndex = "<h2>VirtuWear</h2><p>index.html not found.</p>"

type TryOnHandler struct {
	tryOnUseCase     *usecases.TryOnUseCase
	parameterService *services.ParameterService
	staticRoot       string
	maxUploadBytes   int64
	logger           *slog.Logger
}

func NewTryOnHandler(
	tryOnUseCase *usecases.TryOnUseCase,
	parameterService *services.ParameterService,
	staticRoot string,
	maxUploadBytes int64,
	logger *slog.Logger,
) *TryOnHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &TryOnHandler{
		tryOnUseCase:     tryOnUseCase,
		parameterService: parameterService,
		staticRoot:       staticRoot,
		maxUploadBytes:   maxUploadBytes,
		logger:           logger,
	}
}

func (h *TryOnHandler) HandleIndex(w http.ResponseWriter, r *http.Request) {
	indexPath := filepath.Join(h.staticRoot, "index.html")
	if info, err := os.Stat(indexPath); err == nil && info.Mode().IsRegular() {
		http.ServeFile(w, r, indexPath)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	io.WriteString(w, fallbackIndex)
}

func (h *TryOnHandler) HandleOutfits(w http.ResponseWriter, r *http.Request) {
	files, err := h.tryOnUseCase.ListOutfits(r.Context())
	if err != nil {
		h.logger.Error("Listing outfits failed", "error", err)
		h.sendError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	h.sendJSON(w, map[string]any{"files": files}, http.StatusOK)
}

func (h *TryOnHandler) HandleTryOn(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.sendError(w, fmt.Sprintf("Upload too large (limit %d MB).", h.maxUploadBytes>>20), http.StatusRequestEntityTooLarge)
			return
		}
		// Not multipart: fall through, the photo lookup below reports it.
	}
	if r.MultipartForm != nil {
		defer r.MultipartForm.RemoveAll()
	}

	photo, photoHeader, err := r.FormFile("photo")
	if err != nil {
		h.sendError(w, "Missing 'photo' file.", http.StatusBadRequest)
		return
	}
	defer photo.Close()

	outfit := h.parameterService.OutfitName(r)
	if outfit == "" {
		h.sendError(w, "Missing 'outfit' parameter.", http.StatusBadRequest)
		return
	}

	input := usecases.TryOnInput{
		Photo:         photo,
		PhotoFilename: photoHeader.Filename,
		OutfitName:    outfit,
		Parameters:    h.parameterService.ParseFromRequest(r),
	}

	output, err := h.tryOnUseCase.Execute(r.Context(), input)
	if err != nil {
		h.handleTryOnError(w, outfit, err)
		return
	}

	h.sendResult(w, r, output)
}

func (h *TryOnHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func (h *TryOnHandler) handleTryOnError(w http.ResponseWriter, outfit string, err error) {
	var notFound *entities.NotFoundError
	switch {
	case errors.Is(err, entities.ErrValidation):
		h.sendError(w, err.Error(), http.StatusBadRequest)
	case errors.As(err, &notFound):
		h.sendError(w, notFound.Error(), http.StatusNotFound)
	default:
		h.logger.Error("Virtual Try-On failed", "outfit", outfit, "error", err)
		h.sendError(w, "Try-on error: "+clientMessage(err), http.StatusInternalServerError)
	}
}

// clientMessage prefers the rewritten quota message over the raw upstream text.
func clientMessage(err error) string {
	var quota *entities.QuotaExceededError
	if errors.As(err, &quota) {
		return quota.Error()
	}
	return err.Error()
}

func (h *TryOnHandler) sendResult(w http.ResponseWriter, r *http.Request, output *usecases.TryOnOutput) {
	f, err := os.Open(output.ResultPath)
	if err != nil {
		h.logger.Error("Opening result failed", "requestID", output.RequestID, "error", err)
		h.sendError(w, "Try-on error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	defer f.Close()

	w.Header().Set("Content-Type", string(output.MimeType))
	w.Header().Set("Cache-Control", "no-store, max-age=0")
	w.Header().Set("X-Request-ID", string(output.RequestID))
	if info, err := f.Stat(); err == nil {
		w.Header().Set("Content-Length", strconv.FormatInt(info.Size(), 10))
	}
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, f); err != nil {
		h.logger.Warn("Streaming result failed", "requestID", output.RequestID, "error", err)
	}
}

func (h *TryOnHandler) sendJSON(w http.ResponseWriter, body any, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Warn("Failed to encode JSON response", "error", err)
	}
}

func (h *TryOnHandler) sendError(w http.ResponseWriter, message string, statusCode int) {
	h.sendJSON(w, map[string]string{"error": message}, statusCode)
}
