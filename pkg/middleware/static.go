package middleware

import (
	"io"
	"io/fs"
	"net/http"
	"os"
	"path"
	"strings"
)

// StaticEnv maps environment variable names for static asset configuration.
type StaticEnv struct {
	Dir string
}

// StaticConfig controls static asset serving.
type StaticConfig struct {
	Dir   string `toml:"dir"`
	Index string `toml:"index"`
}

// Finalize applies defaults and loads environment overrides.
func (c *StaticConfig) Finalize(env *StaticEnv) error {
	if c.Dir == "" {
		c.Dir = "public"
	}
	if c.Index == "" {
		c.Index = "index.html"
	}
	if env != nil && env.Dir != "" {
		if v := os.Getenv(env.Dir); v != "" {
			c.Dir = v
		}
	}
	return nil
}

// Merge applies non-zero values from the overlay configuration.
func (c *StaticConfig) Merge(overlay *StaticConfig) {
	if overlay.Dir != "" {
		c.Dir = overlay.Dir
	}
	if overlay.Index != "" {
		c.Index = overlay.Index
	}
}

// Static returns middleware that serves files from the configured directory.
//
// GET and HEAD requests naming a regular file, or a directory containing the
// index file, are answered directly and do not reach later handlers. The
// content type is inferred from the extension, falling back to content
// sniffing. Paths with a dot-prefixed segment, other methods, and missing
// files continue down the pipeline.
func Static(cfg *StaticConfig) func(http.Handler) http.Handler {
	root := os.DirFS(cfg.Dir)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet && r.Method != http.MethodHead {
				next.ServeHTTP(w, r)
				return
			}

			name, ok := resolveStatic(root, r.URL.Path, cfg.Index)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			f, err := root.Open(name)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}
			defer f.Close()

			info, err := f.Stat()
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			content, ok := f.(io.ReadSeeker)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			http.ServeContent(w, r, info.Name(), info.ModTime(), content)
		})
	}
}

func resolveStatic(root fs.FS, urlPath, index string) (string, bool) {
	name := strings.TrimPrefix(path.Clean("/"+urlPath), "/")
	if name == "" {
		name = "."
	}

	for seg := range strings.SplitSeq(name, "/") {
		if strings.HasPrefix(seg, ".") && seg != "." {
			return "", false
		}
	}

	info, err := fs.Stat(root, name)
	if err != nil {
		return "", false
	}

	if info.IsDir() {
		name = path.Join(name, index)
		info, err = fs.Stat(root, name)
		if err != nil || info.IsDir() {
			return "", false
		}
	}

	if !info.Mode().IsRegular() {
		return "", false
	}
	return name, true
}
