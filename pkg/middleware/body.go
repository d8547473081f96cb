package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/docker/go-units"

	"github.com/JaimeStill/route-shell/pkg/handlers"
)

var (
	// ErrMalformedBody is reported when a JSON or form body cannot be decoded.
	ErrMalformedBody = errors.New("malformed request body")

	// ErrBodyTooLarge is reported when a body exceeds the configured limit.
	ErrBodyTooLarge = errors.New("request body too large")
)

// BodyEnv maps environment variable names for body decoding configuration.
type BodyEnv struct {
	Limit string
}

// BodyConfig controls request body decoding.
type BodyConfig struct {
	// Limit is a human readable size such as "100kb" or "1mb". Units are
	// binary: "100kb" is 102400 bytes.
	Limit    string `toml:"limit"`
	limitVal int64
}

// LimitBytes returns the parsed body limit. It is zero until Finalize succeeds.
func (c *BodyConfig) LimitBytes() int64 {
	return c.limitVal
}

// Finalize applies defaults, loads environment overrides, and validates the limit.
func (c *BodyConfig) Finalize(env *BodyEnv) error {
	if c.Limit == "" {
		c.Limit = "100kb"
	}
	if env != nil && env.Limit != "" {
		if v := os.Getenv(env.Limit); v != "" {
			c.Limit = v
		}
	}

	size, err := units.RAMInBytes(c.Limit)
	if err != nil {
		return fmt.Errorf("invalid limit: %w", err)
	}
	if size <= 0 {
		return fmt.Errorf("limit must be positive")
	}
	c.limitVal = size
	return nil
}

// Merge applies non-zero values from the overlay configuration.
func (c *BodyConfig) Merge(overlay *BodyConfig) {
	if overlay.Limit != "" {
		c.Limit = overlay.Limit
	}
}

// Body returns middleware that decodes JSON and URL-encoded request bodies.
//
// Decoded JSON is available through BodyFrom and form values through FormFrom.
// The raw body is rewound so handlers may read it again. A malformed body is
// answered with 400 and an oversized body with 413; neither reaches later
// stages. Requests with other content types pass through untouched.
func Body(cfg *BodyConfig, logger *slog.Logger) func(http.Handler) http.Handler {
	limit := cfg.LimitBytes()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			kind := bodyKind(r)
			if kind == "" || r.Body == nil || r.Body == http.NoBody {
				next.ServeHTTP(w, r)
				return
			}

			data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, limit))
			if err != nil {
				var maxErr *http.MaxBytesError
				if errors.As(err, &maxErr) {
					handlers.RespondError(w, logger, http.StatusRequestEntityTooLarge, ErrBodyTooLarge)
					return
				}
				handlers.RespondError(w, logger, http.StatusBadRequest, fmt.Errorf("%w: %v", ErrMalformedBody, err))
				return
			}

			r.Body = io.NopCloser(bytes.NewReader(data))
			ctx := r.Context()

			switch kind {
			case "json":
				if len(bytes.TrimSpace(data)) == 0 {
					break
				}
				value, err := decodeJSON(data)
				if err != nil {
					handlers.RespondError(w, logger, http.StatusBadRequest, fmt.Errorf("%w: %v", ErrMalformedBody, err))
					return
				}
				ctx = context.WithValue(ctx, bodyKey, value)
			case "form":
				values, err := url.ParseQuery(string(data))
				if err != nil {
					handlers.RespondError(w, logger, http.StatusBadRequest, fmt.Errorf("%w: %v", ErrMalformedBody, err))
					return
				}
				r.PostForm = values
				ctx = context.WithValue(ctx, formKey, values)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// decodeJSON accepts only objects and arrays at the top level.
func decodeJSON(data []byte) (any, error) {
	trimmed := bytes.TrimSpace(data)
	if trimmed[0] != '{' && trimmed[0] != '[' {
		return nil, fmt.Errorf("top-level value must be an object or array")
	}

	var value any
	if err := json.Unmarshal(trimmed, &value); err != nil {
		return nil, err
	}
	return value, nil
}

func bodyKind(r *http.Request) string {
	ct := r.Header.Get("Content-Type")
	if ct == "" {
		return ""
	}

	mediaType, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return ""
	}

	switch {
	case mediaType == "application/json" || strings.HasSuffix(mediaType, "+json"):
		return "json"
	case mediaType == "application/x-www-form-urlencoded":
		return "form"
	default:
		return ""
	}
}
