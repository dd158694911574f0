// Package server provides the stegegg HTTP API.
package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/op/go-logging"

	"github.com/mr152here/stegegg/pkg/config"
	"github.com/mr152here/stegegg/pkg/generator"
	"github.com/mr152here/stegegg/pkg/imageio"
	"github.com/mr152here/stegegg/pkg/steg"
)

var log = logging.MustGetLogger("stegegg/server")

type srv struct {
	maxUpload int64
}

// NewHandler returns the API routes. Request bodies larger than maxUpload
// bytes are rejected.
func NewHandler(maxUpload int64) http.Handler {
	s := &srv{maxUpload: maxUpload}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/embed", s.handleEmbed)
	mux.HandleFunc("POST /api/extract", s.handleExtract)
	mux.HandleFunc("POST /api/capacity", s.handleCapacity)
	mux.HandleFunc("POST /api/cover", s.handleCover)
	mux.HandleFunc("GET /api/health", s.handleHealth)
	return mux
}

// RunServe starts the API server. --port/-p overrides the configured port.
func RunServe(args []string, defaults config.Serve) error {
	port := strconv.Itoa(defaults.Port)
	for i, a := range args {
		if (a == "--port" || a == "-p") && i+1 < len(args) {
			port = args[i+1]
		}
	}

	addr := ":" + port
	log.Infof("stegegg API → http://localhost%s/api", addr)
	return http.ListenAndServe(addr, NewHandler(int64(defaults.MaxUploadMB)<<20))
}

// ── Embed / Extract ──

func (s *srv) handleEmbed(w http.ResponseWriter, r *http.Request) {
	if err := s.parseForm(w, r); err != nil {
		httpError(w, err)
		return
	}

	canvas, err := formImage(r)
	if err != nil {
		httpError(w, err)
		return
	}

	format := imageio.PNG
	if f := r.FormValue("format"); f != "" {
		if format, err = imageio.ParseFormat(f); err != nil {
			httpError(w, badRequest(err))
			return
		}
	}

	payload := []byte(r.FormValue("message"))
	if len(payload) == 0 {
		if payload, err = formFile(r, "payload"); err != nil {
			httpError(w, badRequest(errors.New("message or payload is required")))
			return
		}
	}

	if err := steg.Hide([]byte(r.FormValue("key")), payload, canvas); err != nil {
		httpError(w, err)
		return
	}

	var buf bytes.Buffer
	if err := imageio.Encode(&buf, canvas, format); err != nil {
		httpError(w, err)
		return
	}

	log.Debugf("embedded %d bytes into %dx%d %s", len(payload), canvas.Width(), canvas.Height(), format)
	w.Header().Set("Content-Type", format.MIME())
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="output%s"`, format.Ext()))
	w.Write(buf.Bytes())
}

func (s *srv) handleExtract(w http.ResponseWriter, r *http.Request) {
	if err := s.parseForm(w, r); err != nil {
		httpError(w, err)
		return
	}

	canvas, err := formImage(r)
	if err != nil {
		httpError(w, err)
		return
	}

	payload, err := steg.Reveal([]byte(r.FormValue("key")), canvas)
	if err != nil {
		httpError(w, err)
		return
	}

	log.Debugf("extracted %d bytes", len(payload))
	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition", `attachment; filename="message.bin"`)
	w.Write(payload)
}

// ── Capacity ──

type capacityResponse struct {
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	Spots      uint64 `json:"spots"`
	MaxPayload int    `json:"max_payload"`
}

func (s *srv) handleCapacity(w http.ResponseWriter, r *http.Request) {
	if err := s.parseForm(w, r); err != nil {
		httpError(w, err)
		return
	}

	canvas, err := formImage(r)
	if err != nil {
		httpError(w, err)
		return
	}

	writeJSON(w, capacityResponse{
		Width:      canvas.Width(),
		Height:     canvas.Height(),
		Spots:      steg.Spots(canvas),
		MaxPayload: steg.Capacity(canvas),
	})
}

// ── Cover ──

type coverRequest struct {
	Width   int    `json:"width"`
	Height  int    `json:"height"`
	Color   string `json:"color"`
	Seed    string `json:"seed"`
	Caption string `json:"caption"`
	Format  string `json:"format"`
}

func (s *srv) handleCover(w http.ResponseWriter, r *http.Request) {
	var req coverRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, s.maxUpload)).Decode(&req); err != nil {
		httpError(w, badRequest(fmt.Errorf("decode request: %w", err)))
		return
	}

	format := imageio.PNG
	if req.Format != "" {
		var err error
		if format, err = imageio.ParseFormat(req.Format); err != nil {
			httpError(w, badRequest(err))
			return
		}
	}
	if req.Width < 0 || req.Height < 0 {
		httpError(w, badRequest(fmt.Errorf("cover %dx%d: negative dimension", req.Width, req.Height)))
		return
	}
	width, height := req.Width, req.Height
	if width == 0 {
		width = generator.DefaultWidth
	}
	if height == 0 {
		height = generator.DefaultHeight
	}
	// Covers are capped at the upload limit.
	if int64(height) > s.maxUpload/4/int64(width) {
		httpError(w, badRequest(fmt.Errorf("cover %dx%d exceeds upload limit", width, height)))
		return
	}

	cfg := generator.Config{
		Width:   width,
		Height:  height,
		Color:   req.Color,
		Noise:   req.Seed != "",
		Seed:    req.Seed,
		Caption: req.Caption,
	}

	var buf bytes.Buffer
	if err := generator.GenerateToWriter(&buf, format, cfg); err != nil {
		httpError(w, badRequest(err))
		return
	}
	w.Header().Set("Content-Type", format.MIME())
	w.Write(buf.Bytes())
}

func (s *srv) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"status": "ok"})
}

// ── Helpers ──

// requestError marks client mistakes that map to 400.
type requestError struct{ err error }

func (e requestError) Error() string { return e.err.Error() }
func (e requestError) Unwrap() error { return e.err }

func badRequest(err error) error { return requestError{err} }

func (s *srv) parseForm(w http.ResponseWriter, r *http.Request) error {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUpload)
	if err := r.ParseMultipartForm(s.maxUpload); err != nil {
		return badRequest(fmt.Errorf("parse form: %w", err))
	}
	return nil
}

func formFile(r *http.Request, field string) ([]byte, error) {
	file, _, err := r.FormFile(field)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return io.ReadAll(file)
}

func formImage(r *http.Request) (*imageio.Canvas, error) {
	data, err := formFile(r, "image")
	if err != nil {
		return nil, badRequest(errors.New("no image uploaded"))
	}
	canvas, _, err := imageio.DecodeBytes(data)
	if err != nil {
		return nil, badRequest(err)
	}
	return canvas, nil
}

func statusFor(err error) int {
	var (
		capErr *steg.CapacityError
		maxErr *http.MaxBytesError
		reqErr requestError
	)
	switch {
	case errors.As(err, &maxErr),
		errors.As(err, &capErr),
		errors.Is(err, steg.ErrPayloadTooLarge),
		errors.Is(err, steg.ErrImageTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, steg.ErrOversizedHeader),
		errors.Is(err, steg.ErrNoHidingSpots):
		return http.StatusUnprocessableEntity
	case errors.As(err, &reqErr):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func httpError(w http.ResponseWriter, err error) {
	code := statusFor(err)
	log.Debugf("request failed (%d): %v", code, err)
	http.Error(w, err.Error(), code)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}
