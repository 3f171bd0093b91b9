// Package static serves files from the public directory ahead of the stage pipeline.
package static

import (
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"path"
	"strings"
)

// DefaultAliases are the asset folders also reachable under their own prefix.
var DefaultAliases = []string{"css", "js", "images"}

type mount struct {
	fsys   fs.FS
	prefix string
}

// Server serves files from a filesystem root plus aliased subfolders.
// Missing files and directories are not served, so the request continues to the app.
type Server struct {
	mounts []mount
}

// New serves fsys at "/" and each alias folder at "/{alias}".
func New(fsys fs.FS, aliases ...string) (*Server, error) {
	s := &Server{}
	for _, a := range aliases {
		a = strings.Trim(a, "/")
		sub, err := fs.Sub(fsys, a)
		if err != nil {
			return nil, err
		}
		s.mounts = append(s.mounts, mount{prefix: "/" + a, fsys: sub})
	}
	s.mounts = append(s.mounts, mount{prefix: "", fsys: fsys})
	return s, nil
}

// ErrNotDirectory is returned by NewDir when dir is missing or is a file.
var ErrNotDirectory = errors.New("static: public dir is not a directory")

// NewDir serves a directory on disk with the default aliases.
// os.DirFS never checks its root, so dir is checked here.
func NewDir(dir string) (*Server, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, errors.Join(ErrNotDirectory, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotDirectory, dir)
	}
	return New(os.DirFS(dir), DefaultAliases...)
}

// ServeStatic serves the request when a matching file exists and reports whether it did.
func (s *Server) ServeStatic(w http.ResponseWriter, r *http.Request) bool {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		return false
	}
	// Directory listings are never served.
	if strings.HasSuffix(r.URL.Path, "/") {
		return false
	}
	for _, m := range s.mounts {
		name, ok := strings.CutPrefix(r.URL.Path, m.prefix+"/")
		if !ok {
			continue
		}
		name = path.Clean(name)
		if !fs.ValidPath(name) || name == "." {
			continue
		}
		info, err := fs.Stat(m.fsys, name)
		if err != nil || info.IsDir() {
			continue
		}

		w.Header().Set("Cache-Control", "public, max-age=3600")
		w.Header().Set("X-Content-Type-Options", "nosniff")
		http.ServeFileFS(w, r, m.fsys, name)
		return true
	}
	return false
}
