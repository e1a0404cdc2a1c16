package api

import (
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
)

// NewRouter wires the try-on routes plus static assets. accessLog, when
// non-nil, receives one combined-format line per request.
func NewRouter(h *TryOnHandler, assetsDir string, accessLog io.Writer) http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/", h.HandleIndex).Methods(http.MethodGet)
	r.HandleFunc("/healthz", h.HandleHealth).Methods(http.MethodGet)
	r.HandleFunc("/api/outfits", h.HandleOutfits).Methods(http.MethodGet)
	r.HandleFunc("/api/tryon", h.HandleTryOn).Methods(http.MethodPost)

	r.PathPrefix("/assets/").Handler(http.StripPrefix("/assets/", http.FileServer(filesOnly{http.Dir(filepath.Clean(assetsDir))})))

	var handler http.Handler = r
	handler = handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Content-Type"}),
		handlers.ExposedHeaders([]string{"X-Request-ID"}),
	)(handler)
	if accessLog != nil {
		handler = handlers.CombinedLoggingHandler(accessLog, handler)
	}
	return handler
}

// filesOnly hides directories, so asset folders are never listed.
type filesOnly struct {
	fs http.FileSystem
}

func (f filesOnly) Open(name string) (http.File, error) {
	file, err := f.fs.Open(name)
	if err != nil {
		return nil, err
	}
	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, err
	}
	if info.IsDir() {
		file.Close()
		return nil, os.ErrNotExist
	}
	return file, nil
}
