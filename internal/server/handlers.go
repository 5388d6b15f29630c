// Package server handles HTTP requests and middleware.
package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/woozymasta/wkb/geom"
	"github.com/woozymasta/wkb/wkb"
)

const binaryContentType = "application/octet-stream"

const indexText = `WKB codec service

POST /api/decode  WKB (hex text, or raw bytes as application/octet-stream) -> GeoJSON
POST /api/encode  GeoJSON -> WKB hex (raw bytes with Accept: application/octet-stream)
GET  /api/kinds   geometry kind table
`

// HandleIndex serves a short plain-text usage summary.
func (s *ServerContext) HandleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, indexText)
}

// HandleKinds serves the geometry kind table as JSON.
func (s *ServerContext) HandleKinds(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	// Ignoring error as we cannot handle client disconnects
	_ = json.NewEncoder(w).Encode(s.Kinds)
}

// HandleDecode converts a WKB request body to a GeoJSON geometry. The body
// is hex text unless the client sends application/octet-stream.
func (s *ServerContext) HandleDecode(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	body, ok := s.readBody(w, r)
	if !ok {
		return
	}

	var (
		g   geom.Geometry
		err error
	)
	if strings.HasPrefix(r.Header.Get("Content-Type"), binaryContentType) {
		g, err = wkb.Decode(body)
	} else {
		g, err = wkb.DecodeHex(strings.TrimSpace(string(body)))
	}
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	data, err := geom.MarshalGeoJSON(g)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	w.Header().Set("Content-Type", "application/geo+json")
	_, _ = w.Write(data)
}

// HandleEncode converts a GeoJSON geometry body to WKB. The response is a
// lower-case hex string unless the client accepts application/octet-stream.
func (s *ServerContext) HandleEncode(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	body, ok := s.readBody(w, r)
	if !ok {
		return
	}

	g, err := geom.UnmarshalGeoJSON(body)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	if strings.Contains(r.Header.Get("Accept"), binaryContentType) {
		data, err := wkb.Encode(g)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		w.Header().Set("Content-Type", binaryContentType)
		_, _ = w.Write(data)
		return
	}

	text, err := wkb.EncodeHex(g)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, text)
}

// readBody reads the request body within the configured size limit.
func (s *ServerContext) readBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.Config.MaxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, err)
		} else {
			writeError(w, http.StatusBadRequest, err)
		}
		return nil, false
	}
	return body, true
}

func writeError(w http.ResponseWriter, status int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}
