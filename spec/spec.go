// Package spec embeds the OpenAPI document for the Trip Planner API and
// serves it at /openapi.yaml, so the published contract always matches the
// running binary.
package spec

import (
	"crypto/sha256"
	_ "embed"
	"encoding/hex"
	"net/http"
)

//go:embed openapi.yaml
var OpenAPI []byte

// etag is derived from the embedded bytes once; the document cannot change
// while the process runs.
var etag = func() string {
	sum := sha256.Sum256(OpenAPI)
	return `"` + hex.EncodeToString(sum[:8]) + `"`
}()

// Handler serves OpenAPI as application/yaml with a strong ETag, answering
// a matching If-None-Match with 304.
func Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("ETag", etag)
		if r.Header.Get("If-None-Match") == etag {
			w.WriteHeader(http.StatusNotModified)
			return
		}
		w.Header().Set("Content-Type", "application/yaml")
		_, _ = w.Write(OpenAPI)
	})
}
