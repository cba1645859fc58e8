// Package api exposes the interaction pipeline over HTTP for the web UI.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	log "log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/rog05/voice-agent/internal/clinic"
	"github.com/rog05/voice-agent/internal/lang"
	"github.com/rog05/voice-agent/internal/session"
	"github.com/rog05/voice-agent/internal/store"
	"github.com/rog05/voice-agent/pkg/audioconv"
)

// maxUploadSamples bounds decoded uploads to five minutes of audio.
const maxUploadSamples = audioconv.TargetRate * 300

// Synthesizer renders reply text to MP3 bytes.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string, language lang.Tag) ([]byte, error)
}

// DecodeFunc converts an uploaded file to 16kHz mono PCM.
type DecodeFunc func(path string, maxSamples int) ([]float32, error)

// Handler wires one request-per-call deployment of the pipeline. Requests
// share no mutable state beyond the append-only store.
type Handler struct {
	proc    *session.Processor
	synth   Synthesizer
	repo    store.Store
	clinic  *clinic.Config
	tempDir string
	hub     *EventHub
	decode  DecodeFunc
}

func NewHandler(proc *session.Processor, synth Synthesizer, repo store.Store, clinicCfg *clinic.Config, tempDir string, hub *EventHub) *Handler {
	return &Handler{
		proc:    proc,
		synth:   synth,
		repo:    repo,
		clinic:  clinicCfg,
		tempDir: tempDir,
		hub:     hub,
		decode:  audioconv.DecodeFile,
	}
}

func (h *Handler) Register(r chi.Router) {
	r.Post("/api/process-audio", h.processAudio)
	r.Get("/api/session-stats", h.sessionStats)
	r.Get("/api/interactions", h.interactions)
	r.Get("/api/clinic-info", h.clinicInfo)
	if h.hub != nil {
		r.Get("/api/events", h.hub.ServeHTTP)
	}
	r.Handle("/audio/*", http.StripPrefix("/audio/", http.FileServer(http.Dir(h.tempDir))))
}

// JSON writes a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, `{"error": "failed to encode response"}`, http.StatusInternalServerError)
	}
}

type processResult struct {
	Success       bool   `json:"success"`
	Transcript    string `json:"transcript,omitempty"`
	Language      string `json:"language,omitempty"`
	Intent        string `json:"intent,omitempty"`
	ResponseText  string `json:"response_text,omitempty"`
	AudioURL      string `json:"audio_url,omitempty"`
	InteractionID int64  `json:"interaction_id,omitempty"`
	Error         string `json:"error,omitempty"`
}

func (h *Handler) processAudio(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		JSON(w, http.StatusBadRequest, processResult{Error: "invalid multipart form"})
		return
	}
	file, hdr, err := r.FormFile("file")
	if err != nil {
		JSON(w, http.StatusBadRequest, processResult{Error: "missing audio file"})
		return
	}
	defer file.Close()

	inPath, err := h.saveUpload(file, hdr.Filename)
	if err != nil {
		log.Error("Failed to save upload", "err", err)
		JSON(w, http.StatusInternalServerError, processResult{Error: "could not store upload"})
		return
	}
	defer os.Remove(inPath)

	pcm, err := h.decode(inPath, maxUploadSamples)
	if err != nil {
		log.Error("Failed to decode upload", "file", hdr.Filename, "err", err)
		JSON(w, http.StatusOK, processResult{Error: "could not decode audio"})
		return
	}

	out, err := h.proc.ProcessPCM(ctx, pcm)
	if err != nil {
		if errors.Is(err, session.ErrNoTranscript) {
			JSON(w, http.StatusOK, processResult{Error: "could not transcribe audio"})
			return
		}
		log.Error("Transcription failed", "err", err)
		JSON(w, http.StatusOK, processResult{Error: "could not transcribe audio"})
		return
	}

	// Synthesis failure degrades to a text-only result.
	audioURL := ""
	if data, err := h.synth.Synthesize(ctx, out.Response, out.Language); err != nil {
		log.Error("Synthesis failed, returning text only", "err", err)
	} else {
		name := fmt.Sprintf("response_%d.mp3", time.Now().UnixNano())
		if err := os.WriteFile(filepath.Join(h.tempDir, name), data, 0644); err != nil {
			log.Error("Failed to write reply audio", "err", err)
		} else {
			audioURL = "/audio/" + name
		}
	}

	rec := &store.Interaction{
		Timestamp:  time.Now(),
		Language:   string(out.Language),
		Transcript: out.Transcript,
		Intent:     string(out.Intent),
		Response:   out.Response,
		Summary:    out.Summary,
	}
	if _, err := h.repo.Log(ctx, rec); err != nil {
		// The reply was already produced; losing the audit record is loud
		// but does not fail the request.
		log.Error("Failed to log interaction", "err", err)
	} else if h.hub != nil {
		h.hub.Broadcast(InteractionEvent{
			ID:         rec.ID,
			Timestamp:  rec.Timestamp,
			Transcript: rec.Transcript,
			Language:   rec.Language,
			Intent:     rec.Intent,
			Response:   rec.Response,
			Summary:    rec.Summary,
		})
	}

	JSON(w, http.StatusOK, processResult{
		Success:       true,
		Transcript:    out.Transcript,
		Language:      string(out.Language),
		Intent:        string(out.Intent),
		ResponseText:  out.Response,
		AudioURL:      audioURL,
		InteractionID: rec.ID,
	})
}

func (h *Handler) saveUpload(file io.Reader, name string) (string, error) {
	if err := os.MkdirAll(h.tempDir, 0755); err != nil {
		return "", err
	}
	path := filepath.Join(h.tempDir,
		fmt.Sprintf("input_%d%s", time.Now().UnixNano(), filepath.Ext(name)))

	dst, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		os.Remove(path)
		return "", err
	}
	return path, nil
}

func (h *Handler) sessionStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.repo.Stats(r.Context())
	if err != nil {
		log.Error("Failed to compute stats", "err", err)
		JSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to compute stats"})
		return
	}
	JSON(w, http.StatusOK, stats)
}

func (h *Handler) interactions(w http.ResponseWriter, r *http.Request) {
	limit := 10
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			JSON(w, http.StatusBadRequest, map[string]string{"error": "limit must be a positive integer"})
			return
		}
		limit = n
	}

	recs, err := h.repo.Recent(r.Context(), limit)
	if err != nil {
		log.Error("Failed to read interactions", "err", err)
		JSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to read interactions"})
		return
	}
	if recs == nil {
		recs = []store.Interaction{}
	}
	JSON(w, http.StatusOK, recs)
}

func (h *Handler) clinicInfo(w http.ResponseWriter, r *http.Request) {
	if h.clinic == nil {
		JSON(w, http.StatusOK, map[string]string{})
		return
	}
	JSON(w, http.StatusOK, h.clinic)
}
