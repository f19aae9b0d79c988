package rest

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// FrontendHandler serves the single-page frontend: static assets when they
// exist, the index document for everything else so client-side routing works.
type FrontendHandler struct {
	dir       string
	indexFile string
	fs        http.Handler
}

func NewFrontendHandler(dir string, indexFile string) *FrontendHandler {
	return &FrontendHandler{
		dir:       dir,
		indexFile: indexFile,
		fs:        http.FileServer(http.Dir(dir)),
	}
}

func (h *FrontendHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := filepath.Join(h.dir, filepath.Clean(strings.TrimPrefix(r.URL.Path, "/")))
	if info, err := os.Stat(path); err == nil && !info.IsDir() {
		h.fs.ServeHTTP(w, r)
		return
	}
	http.ServeFile(w, r, filepath.Join(h.dir, h.indexFile))
}
