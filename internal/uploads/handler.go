package uploads

import (
	"errors"
	"log/slog"
	"mime/multipart"
	"net/http"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/khudyi/premium-steli/internal/middleware"
	"github.com/khudyi/premium-steli/internal/transport"
)

const maxUploadBytes = 32 << 20

type Handler struct {
	store *Store
	log   *slog.Logger
}

func NewHandler(store *Store, log *slog.Logger) *Handler {
	return &Handler{store: store, log: log}
}

// Upload accepts one or more image files under the "images" field and
// stores them concurrently. The batch is all-or-nothing: if any file
// fails, no URL is reported for the whole selection — blobs already
// written by sibling uploads stay behind as orphans, which the project
// accepts rather than chase. URLs are listed in the order the uploads
// finished, which is the order they would land in the draft's image
// list.
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		log.Warn("upload: invalid multipart form", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusBadRequest, "invalid multipart form", nil)
		return
	}

	files := r.MultipartForm.File["images"]
	if len(files) == 0 {
		log.Warn("upload: no files")
		transport.WriteError(w, http.StatusBadRequest, "no files", nil)
		return
	}

	var (
		mu   sync.Mutex
		urls = make([]string, 0, len(files))
	)

	g, _ := errgroup.WithContext(r.Context())
	for _, header := range files {
		header := header
		g.Go(func() error {
			url, err := h.saveOne(header)
			if err != nil {
				return err
			}
			mu.Lock()
			urls = append(urls, url)
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		log.Error("upload: batch failed", slog.String("error", err.Error()), slog.Int("files", len(files)))
		if errors.Is(err, ErrUnsupportedFormat) {
			transport.WriteError(w, http.StatusBadRequest, "unsupported image format", nil)
			return
		}
		transport.WriteError(w, http.StatusInternalServerError, "upload failed", nil)
		return
	}

	log.Info("upload: ok", slog.Int("files", len(urls)))
	transport.WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"urls": urls,
	})
}

func (h *Handler) saveOne(header *multipart.FileHeader) (string, error) {
	file, err := header.Open()
	if err != nil {
		return "", err
	}
	defer file.Close()
	return h.store.SaveImage(file, header.Filename)
}

func (h *Handler) logWithRequest(r *http.Request) *slog.Logger {
	if r == nil {
		return h.log
	}
	if id := middleware.RequestIDFromContext(r.Context()); id != "" {
		return h.log.With(slog.String("request_id", id))
	}
	return h.log
}
