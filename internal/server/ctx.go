package server

import (
	"github.com/rs/zerolog/log"
	"github.com/woozymasta/wkb/geom"
	"github.com/woozymasta/wkb/internal/config"
)

// ServerContext holds dependencies for request handlers.
type ServerContext struct {
	Config *config.Config
	Kinds  []KindInfo
}

// KindInfo describes one entry of the geometry kind table.
type KindInfo struct {
	Name      string `json:"name"`
	Code      uint32 `json:"code"`
	Supported bool   `json:"supported"`
}

// NewServerContext initializes the context and builds the kind table served
// by the API.
func NewServerContext(cfg *config.Config) *ServerContext {
	kinds := make([]KindInfo, 0, int(geom.KindTriangle))
	for code := geom.KindPoint; code <= geom.KindTriangle; code++ {
		kinds = append(kinds, KindInfo{
			Name:      code.String(),
			Code:      uint32(code),
			Supported: code.Supported(),
		})
	}

	log.Info().
		Int("kinds", len(kinds)).
		Int64("max_body_bytes", cfg.MaxBodyBytes).
		Msg("Server context initialized successfully")

	return &ServerContext{
		Config: cfg,
		Kinds:  kinds,
	}
}
