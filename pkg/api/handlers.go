package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"github.com/ssargent/osrkit/pkg/logger"
	"github.com/ssargent/osrkit/pkg/replay"
	"github.com/ssargent/osrkit/pkg/storage"
)

const (
	defaultMaxUploadBytes = 32 << 20
	defaultListLimit      = 100
)

// Server holds the API server state
type Server struct {
	archive ReplayArchive
	codec   *replay.Codec
	config  ServerConfig
	metrics *Metrics
}

// NewServer creates a new API server
func NewServer(archive ReplayArchive, config ServerConfig, metrics *Metrics) *Server {
	if config.MaxUploadBytes <= 0 {
		config.MaxUploadBytes = defaultMaxUploadBytes
	}
	return &Server{
		archive: archive,
		codec:   replay.NewCodec(replay.WithPreset(config.Preset)),
		config:  config,
		metrics: metrics,
	}
}

// handleHealth godoc
//
//	@Summary		Health check
//	@Description	Get the health status of the API
//	@Tags			health
//	@Produce		json
//	@Success		200	{object}	map[string]string
//	@Router			/health [get]
//	@Security		ApiKeyAuth
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.metrics.RecordHealthCheck(true)
	sendSuccess(w, map[string]string{"status": "healthy"})
}

// handleDecode godoc
//
//	@Summary		Decode a replay
//	@Description	Decode an .osr file and return its metadata, optionally with frames
//	@Tags			replays
//	@Accept			octet-stream
//	@Produce		json
//	@Param			body	body		[]byte	true	".osr file"
//	@Param			events	query		int		false	"Number of frames to include, -1 for all"
//	@Success		200		{object}	DecodeResponse
//	@Failure		400		{object}	APIResponse
//	@Failure		422		{object}	APIResponse
//	@Router			/replays/decode [post]
//	@Security		ApiKeyAuth
func (s *Server) handleDecode(w http.ResponseWriter, r *http.Request) {
	limit, err := intQuery(r, "events", 0)
	if err != nil {
		sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	body, err := s.readBody(w, r)
	if err != nil {
		sendError(w, fmt.Sprintf("Failed to read request body: %v", err), errorStatus(err))
		return
	}

	start := time.Now()
	rep, err := s.codec.Decode(body)
	s.metrics.RecordCodecOperation("decode", err == nil, len(body), time.Since(start))
	if err != nil {
		sendError(w, fmt.Sprintf("Failed to decode replay: %v", err), errorStatus(err))
		return
	}

	resp := DecodeResponse{
		Summary: rep.Summary(),
		LifeBar: rep.LifeBar,
		Events:  firstEvents(rep.Events, limit),
	}
	sendSuccess(w, resp)
}

// handleEncode godoc
//
//	@Summary		Encode a replay
//	@Description	Encode a JSON replay into the .osr format
//	@Tags			replays
//	@Accept			json
//	@Produce		octet-stream
//	@Param			replay	body		replay.Replay	true	"Replay"
//	@Success		200		{file}		binary
//	@Failure		400		{object}	APIResponse
//	@Failure		422		{object}	APIResponse
//	@Router			/replays/encode [post]
//	@Security		ApiKeyAuth
func (s *Server) handleEncode(w http.ResponseWriter, r *http.Request) {
	body, err := s.readBody(w, r)
	if err != nil {
		sendError(w, fmt.Sprintf("Failed to read request body: %v", err), errorStatus(err))
		return
	}

	var rep replay.Replay
	if err := json.Unmarshal(body, &rep); err != nil {
		sendError(w, fmt.Sprintf("Invalid JSON in request body: %v", err), http.StatusBadRequest)
		return
	}

	start := time.Now()
	data, err := s.codec.Encode(&rep)
	s.metrics.RecordCodecOperation("encode", err == nil, len(data), time.Since(start))
	if err != nil {
		sendError(w, fmt.Sprintf("Failed to encode replay: %v", err), errorStatus(err))
		return
	}

	sendReplay(w, data, "replay.osr")
}

// handleReplayData godoc
//
//	@Summary		Parse replay data
//	@Description	Parse the frames of an API replay payload (base64 LZMA by default)
//	@Tags			replays
//	@Accept			plain,octet-stream
//	@Produce		json
//	@Param			mode			query		string	true	"Game mode (std, taiko, catch, mania)"
//	@Param			decoded			query		bool	false	"Payload is already base64-decoded"
//	@Param			decompressed	query		bool	false	"Payload is already decompressed"
//	@Success		200				{object}	ReplayDataResponse
//	@Failure		400				{object}	APIResponse
//	@Failure		422				{object}	APIResponse
//	@Router			/replay-data [post]
//	@Security		ApiKeyAuth
func (s *Server) handleReplayData(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	mode, err := replay.ParseGameMode(q.Get("mode"))
	if err != nil {
		sendError(w, err.Error(), http.StatusBadRequest)
		return
	}
	decoded, err := boolQuery(r, "decoded")
	if err != nil {
		sendError(w, err.Error(), http.StatusBadRequest)
		return
	}
	decompressed, err := boolQuery(r, "decompressed")
	if err != nil {
		sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	body, err := s.readBody(w, r)
	if err != nil {
		sendError(w, fmt.Sprintf("Failed to read request body: %v", err), errorStatus(err))
		return
	}

	start := time.Now()
	events, err := replay.ParseReplayData(body, decoded, decompressed, mode)
	s.metrics.RecordCodecOperation("parse_data", err == nil, len(body), time.Since(start))
	if err != nil {
		sendError(w, fmt.Sprintf("Failed to parse replay data: %v", err), errorStatus(err))
		return
	}

	sendSuccess(w, ReplayDataResponse{Mode: mode.String(), Count: len(events), Events: events})
}

// handleArchivePut godoc
//
//	@Summary		Archive a replay
//	@Description	Store an .osr file in the archive
//	@Tags			archive
//	@Accept			octet-stream
//	@Produce		json
//	@Param			body	body		[]byte	true	".osr file"
//	@Success		200		{object}	ArchivePutResponse
//	@Failure		400		{object}	APIResponse
//	@Failure		409		{object}	APIResponse
//	@Router			/archive [post]
//	@Security		ApiKeyAuth
func (s *Server) handleArchivePut(w http.ResponseWriter, r *http.Request) {
	body, err := s.readBody(w, r)
	if err != nil {
		sendError(w, fmt.Sprintf("Failed to read request body: %v", err), errorStatus(err))
		return
	}

	start := time.Now()
	id, err := s.archive.PutRaw(body)
	s.metrics.RecordCodecOperation("archive_put", err == nil, len(body), time.Since(start))
	if err != nil {
		if errorStatus(err) == http.StatusConflict {
			sendJSON(w, http.StatusConflict, APIResponse{
				Success: false,
				Data:    ArchivePutResponse{ID: id.String(), Duplicate: true},
				Error:   "Replay already archived",
			})
			return
		}
		sendError(w, fmt.Sprintf("Failed to archive replay: %v", err), errorStatus(err))
		return
	}

	sendSuccess(w, ArchivePutResponse{ID: id.String()})
}

// handleArchiveList godoc
//
//	@Summary		List archived replays
//	@Description	List archive entries, oldest first, optionally filtered by player or beatmap hash
//	@Tags			archive
//	@Produce		json
//	@Param			limit	query		int		false	"Maximum number of entries (default 100, 0 for all)"
//	@Param			player	query		string	false	"Only replays by this player"
//	@Param			beatmap	query		string	false	"Only replays of this beatmap hash"
//	@Success		200		{object}	ArchiveListResponse
//	@Failure		500		{object}	APIResponse
//	@Router			/archive [get]
//	@Security		ApiKeyAuth
func (s *Server) handleArchiveList(w http.ResponseWriter, r *http.Request) {
	limit, err := intQuery(r, "limit", defaultListLimit)
	if err != nil {
		sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	var entries []storage.Entry
	switch q := r.URL.Query(); {
	case q.Get("player") != "":
		entries, err = s.archive.ListBy(storage.FieldPlayer, q.Get("player"), limit)
	case q.Get("beatmap") != "":
		entries, err = s.archive.ListBy(storage.FieldBeatmap, q.Get("beatmap"), limit)
	default:
		entries, err = s.archive.List(limit)
	}
	if err != nil {
		sendError(w, fmt.Sprintf("Failed to list archive: %v", err), errorStatus(err))
		return
	}

	sendSuccess(w, ArchiveListResponse{Entries: entries, Count: len(entries)})
}

// handleArchiveGet godoc
//
//	@Summary		Get an archived replay
//	@Description	Get the metadata of an archived replay
//	@Tags			archive
//	@Produce		json
//	@Param			id	path		string	true	"Archive ID"
//	@Success		200	{object}	storage.Entry
//	@Failure		400	{object}	APIResponse
//	@Failure		404	{object}	APIResponse
//	@Router			/archive/{id} [get]
//	@Security		ApiKeyAuth
func (s *Server) handleArchiveGet(w http.ResponseWriter, r *http.Request) {
	id, err := storage.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		sendError(w, err.Error(), errorStatus(err))
		return
	}

	entry, err := s.archive.GetEntry(id)
	if err != nil {
		sendError(w, fmt.Sprintf("Failed to get replay: %v", err), errorStatus(err))
		return
	}

	sendSuccess(w, entry)
}

// handleArchiveRaw godoc
//
//	@Summary		Download an archived replay
//	@Description	Download the .osr file of an archived replay
//	@Tags			archive
//	@Produce		octet-stream
//	@Param			id	path		string	true	"Archive ID"
//	@Success		200	{file}		binary
//	@Failure		400	{object}	APIResponse
//	@Failure		404	{object}	APIResponse
//	@Router			/archive/{id}/raw [get]
//	@Security		ApiKeyAuth
func (s *Server) handleArchiveRaw(w http.ResponseWriter, r *http.Request) {
	id, err := storage.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		sendError(w, err.Error(), errorStatus(err))
		return
	}

	data, err := s.archive.GetRaw(id)
	if err != nil {
		sendError(w, fmt.Sprintf("Failed to get replay: %v", err), errorStatus(err))
		return
	}

	sendReplay(w, data, id.String()+".osr")
}

// handleArchiveDelete godoc
//
//	@Summary		Delete an archived replay
//	@Tags			archive
//	@Produce		json
//	@Param			id	path		string	true	"Archive ID"
//	@Success		200	{object}	map[string]string
//	@Failure		404	{object}	APIResponse
//	@Router			/archive/{id} [delete]
//	@Security		ApiKeyAuth
func (s *Server) handleArchiveDelete(w http.ResponseWriter, r *http.Request) {
	id, err := storage.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		sendError(w, err.Error(), errorStatus(err))
		return
	}

	if err := s.archive.Delete(id); err != nil {
		sendError(w, fmt.Sprintf("Failed to delete replay: %v", err), errorStatus(err))
		return
	}

	sendSuccess(w, map[string]string{"message": "Replay deleted successfully"})
}

// handleStats godoc
//
//	@Summary		Archive statistics
//	@Tags			archive
//	@Produce		json
//	@Success		200	{object}	storage.Stats
//	@Failure		500	{object}	APIResponse
//	@Router			/stats [get]
//	@Security		ApiKeyAuth
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.archive.Stats()
	if err != nil {
		sendError(w, fmt.Sprintf("Failed to get stats: %v", err), http.StatusInternalServerError)
		return
	}
	s.metrics.UpdateArchiveStats(stats.Replays, stats.Bytes)
	sendSuccess(w, stats)
}

// startMetricsUpdater periodically updates archive metrics until ctx is done
func (s *Server) startMetricsUpdater(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			stats, err := s.archive.Stats()
			if err != nil {
				logger.Log.WithError(err).Warn("failed to collect archive stats")
				continue
			}
			s.metrics.UpdateArchiveStats(stats.Replays, stats.Bytes)
		}
	}
}

func (s *Server) readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.config.MaxUploadBytes))
	if err != nil {
		return nil, err
	}
	logger.Log.WithFields(logrus.Fields{
		"path":  r.URL.Path,
		"bytes": len(body),
	}).Debug("request body read")
	return body, nil
}

func sendReplay(w http.ResponseWriter, data []byte, filename string) {
	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// firstEvents returns the first n events; n < 0 means all of them
func firstEvents(events []replay.ReplayEvent, n int) []replay.ReplayEvent {
	if n == 0 {
		return nil
	}
	if n < 0 || n >= len(events) {
		return events
	}
	return events[:n]
}

func intQuery(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s parameter: %q", name, raw)
	}
	return v, nil
}

func boolQuery(r *http.Request, name string) (bool, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return false, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s parameter: %q", name, raw)
	}
	return v, nil
}
