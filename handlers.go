package main

import (
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"
)

//go:embed templates/index.html
var templateFS embed.FS

var indexTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html"))

var errInvalidAction = errors.New("invalid action")

type slotView struct {
	ID           int
	Name1, Name2 string
	Line1, Line2 string
}

func okHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}
}

func indexHandler(b *board) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lines := b.savedLines()

		var data struct{ Slots []slotView }
		for slot := 1; slot <= b.geo.Slots; slot++ {
			i := (slot - 1) * linesPerSlot
			data.Slots = append(data.Slots, slotView{
				ID:    slot,
				Name1: fmt.Sprintf("line%d", i+1),
				Name2: fmt.Sprintf("line%d", i+2),
				Line1: lines[i],
				Line2: lines[i+1],
			})
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := indexTemplate.Execute(w, data); err != nil {
			log.Printf("Failed to render index: %v", err)
		}
	}
}

// formLines reads line1..lineN for an apply, or blanks for a clear.
func formLines(r *http.Request, count int) ([]string, error) {
	lines := make([]string, count)

	switch action := r.PostForm.Get("action"); action {
	case "apply":
		for i := range lines {
			key := fmt.Sprintf("line%d", i+1)
			if _, ok := r.PostForm[key]; !ok {
				return nil, fmt.Errorf("missing form field %s", key)
			}
			lines[i] = r.PostForm.Get(key)
		}
	case "clear":
	default:
		return nil, fmt.Errorf("%w: %q", errInvalidAction, action)
	}

	return lines, nil
}

func createImagesHandler(b *board) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Could not parse form", http.StatusBadRequest)
			return
		}

		lines, err := formLines(r, b.lineCount())
		if err != nil {
			log.Printf("Rejected image update: %v", err)
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		if err := b.apply(lines); err != nil {
			log.Printf("Failed to apply lines: %v", err)
			http.Error(w, "Failed to generate images", http.StatusInternalServerError)
			return
		}

		http.Redirect(w, r, "/", http.StatusFound)
	}
}

// parseSlot accepts the non-negative integer ids the device and UI use.
func parseSlot(s string) (int, bool) {
	if s == "" || strings.TrimLeft(s, "0123456789") != "" {
		return 0, false
	}
	slot, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return slot, true
}

// imageHandler serves both GET /images/<id>.png and the packed buffer at
// GET /images/<id>; a wildcard cannot carry a literal suffix.
func imageHandler(b *board, db *sql.DB) http.HandlerFunc {
	png := imagePNGHandler(b)
	buffer := imageBufferHandler(b, db)

	return func(w http.ResponseWriter, r *http.Request) {
		name := r.PathValue("name")
		if id, ok := strings.CutSuffix(name, ".png"); ok {
			png(w, r, id)
			return
		}
		buffer(w, r, name)
	}
}

func imagePNGHandler(b *board) func(http.ResponseWriter, *http.Request, string) {
	return func(w http.ResponseWriter, r *http.Request, id string) {
		slot, ok := parseSlot(id)
		if !ok {
			http.NotFound(w, r)
			return
		}

		data, err := b.image(slot)
		if err != nil {
			log.Printf("Failed to load image for slot %d: %v", slot, err)
			http.Error(w, "Failed to load image", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "image/png")
		w.Header().Set("Cache-Control", "no-cache")
		w.Write(data)
	}
}

func imageBufferHandler(b *board, db *sql.DB) func(http.ResponseWriter, *http.Request, string) {
	return func(w http.ResponseWriter, r *http.Request, id string) {
		slot, ok := parseSlot(id)
		if !ok {
			http.NotFound(w, r)
			return
		}

		data, err := b.image(slot)
		if err != nil {
			log.Printf("Failed to load image for slot %d: %v", slot, err)
			http.Error(w, "Failed to load image", http.StatusInternalServerError)
			return
		}

		etag := computeETag(data)
		clientETag := r.Header.Get("If-None-Match")
		if clientETag == "" {
			clientETag = r.URL.Query().Get("etag")
		}
		notModified := isUnmodified(etag, clientETag)

		if db != nil {
			if deviceID := r.URL.Query().Get("device_id"); deviceID != "" {
				writes, _ := strconv.ParseInt(r.URL.Query().Get("saved_state_writes"), 10, 64)
				err := recordCheckin(db, DeviceCheckin{
					DeviceID:         deviceID,
					Slot:             slot,
					SavedStateWrites: writes,
					LastETag:         etag,
					NotModified:      notModified,
					LastSeen:         time.Now(),
				})
				if err != nil {
					log.Printf("Failed to record check-in for device %s: %v", deviceID, err)
				}
			}
		}

		w.Header().Set("ETag", etag)
		if notModified {
			w.WriteHeader(http.StatusNotModified)
			return
		}

		buf, err := packPNG(data, b.geo)
		if err != nil {
			log.Printf("Failed to pack image for slot %d: %v", slot, err)
			http.Error(w, "Failed to pack image", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/octet-stream")
		w.Header().Set("Content-Length", strconv.Itoa(len(buf)))
		w.Write(buf)
	}
}

func devicesHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if db == nil {
			http.Error(w, "Device tracking disabled", http.StatusNotFound)
			return
		}

		checkins, err := listCheckins(db)
		if err != nil {
			log.Printf("Failed to query devices: %v", err)
			http.Error(w, "Failed to query devices", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(checkins); err != nil {
			log.Printf("Failed to encode devices to JSON: %v", err)
		}
	}
}

func newRouter(config Config, b *board, db *sql.DB) http.Handler {
	mux := http.NewServeMux()
	protect := func(h http.Handler) http.Handler { return basicAuthMiddleware(config, h) }

	mux.Handle("GET /ok", okHandler())
	mux.Handle("GET /{$}", protect(indexHandler(b)))
	mux.Handle("POST /images", protect(createImagesHandler(b)))
	mux.Handle("GET /images/{name}", imageHandler(b, db))
	mux.Handle("GET /devices", protect(devicesHandler(db)))

	return accessLogMiddleware(mux)
}
