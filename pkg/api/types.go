package api

import (
	"github.com/ssargent/osrkit/pkg/replay"
	"github.com/ssargent/osrkit/pkg/storage"
)

// APIResponse represents a standard API response
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// ServerConfig holds configuration for the API server
type ServerConfig struct {
	Port           int
	Bind           string
	APIKey         string
	Preset         int   // LZMA preset used by the encode endpoint
	MaxUploadBytes int64 // Request body limit, 0 for the default
}

// DecodeResponse is the result of decoding a replay
type DecodeResponse struct {
	Summary replay.Summary        `json:"summary"`
	LifeBar []replay.LifeBarState `json:"life_bar,omitempty"`
	Events  []replay.ReplayEvent  `json:"events,omitempty"`
}

// ReplayDataResponse is the result of parsing an API replay payload
type ReplayDataResponse struct {
	Mode   string               `json:"mode"`
	Count  int                  `json:"count"`
	Events []replay.ReplayEvent `json:"events"`
}

// ArchivePutResponse is returned when a replay is archived
type ArchivePutResponse struct {
	ID        string `json:"id"`
	Duplicate bool   `json:"duplicate"`
}

// ArchiveListResponse lists archive entries
type ArchiveListResponse struct {
	Entries []storage.Entry `json:"entries"`
	Count   int             `json:"count"`
}
