// Package api osrkit REST API
//
// @title           osrkit REST API
// @version         1.0.0
// @description     REST API for decoding, encoding and archiving osu! replays.
// @host            localhost:9200
// @BasePath        /api/v1
//
// @securityDefinitions.apikey ApiKeyAuth
// @in              header
// @name            X-API-Key
package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"github.com/swaggo/swag"
	"gopkg.in/yaml.v3"

	"github.com/ssargent/osrkit/pkg/logger"
)

const (
	metricsInterval = 30 * time.Second
	shutdownTimeout = 10 * time.Second
)

const swaggerUI = `<!DOCTYPE html>
<html>
<head>
	 <title>osrkit API Documentation</title>
	 <link rel="stylesheet" type="text/css" href="https://unpkg.com/swagger-ui-dist@3.25.0/swagger-ui.css" />
</head>
<body>
	 <div id="swagger-ui"></div>
	 <script src="https://unpkg.com/swagger-ui-dist@3.25.0/swagger-ui-bundle.js"></script>
	 <script>
	   window.onload = function() {
	     SwaggerUIBundle({
	       url: '/swagger/swagger.json',
	       dom_id: '#swagger-ui',
	       presets: [
	         SwaggerUIBundle.presets.apis,
	         SwaggerUIBundle.presets.standalone
	       ]
	     });
	   };
	 </script>
</body>
</html>`

// NewRouter builds the HTTP handler for the API. gatherer backs the
// /metrics endpoint and should be the registry the metrics were created on.
func NewRouter(server *Server, metrics *Metrics, gatherer prometheus.Gatherer, apiKey string) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Prometheus metrics endpoint (unprotected for scraping)
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(metrics.InstrumentAuthMiddleware(apiKeyMiddleware(apiKey)))

		r.Get("/health", metrics.InstrumentHandler("GET", "/api/v1/health", server.handleHealth))

		// Codec
		r.Post("/replays/decode", metrics.InstrumentHandler("POST", "/api/v1/replays/decode", server.handleDecode))
		r.Post("/replays/encode", metrics.InstrumentHandler("POST", "/api/v1/replays/encode", server.handleEncode))
		r.Post("/replay-data", metrics.InstrumentHandler("POST", "/api/v1/replay-data", server.handleReplayData))

		// Archive
		r.Post("/archive", metrics.InstrumentHandler("POST", "/api/v1/archive", server.handleArchivePut))
		r.Get("/archive", metrics.InstrumentHandler("GET", "/api/v1/archive", server.handleArchiveList))
		r.Get("/archive/{id}", metrics.InstrumentHandler("GET", "/api/v1/archive/{id}", server.handleArchiveGet))
		r.Get("/archive/{id}/raw", metrics.InstrumentHandler("GET", "/api/v1/archive/{id}/raw", server.handleArchiveRaw))
		r.Delete("/archive/{id}", metrics.InstrumentHandler("DELETE", "/api/v1/archive/{id}", server.handleArchiveDelete))

		r.Get("/stats", metrics.InstrumentHandler("GET", "/api/v1/stats", server.handleStats))
	})

	// Swagger documentation (unprotected)
	r.Get("/swagger/*", handleSwagger)

	return r
}

func handleSwagger(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case "/swagger/", "/swagger/index.html":
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(swaggerUI))

	case "/swagger/swagger.json":
		doc, err := swag.ReadDoc(SwaggerInfo.InstanceName())
		if err != nil {
			logger.Log.WithError(err).Error("failed to generate swagger doc")
			http.Error(w, "Failed to generate Swagger documentation", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(doc))

	case "/swagger/swagger.yaml":
		doc, err := swaggerYAML()
		if err != nil {
			logger.Log.WithError(err).Error("failed to generate swagger doc")
			http.Error(w, "Failed to generate Swagger documentation", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/yaml")
		_, _ = w.Write(doc)

	default:
		http.NotFound(w, r)
	}
}

// swaggerYAML renders the registered swagger document as YAML. JSON is a
// subset of YAML so the document is read back through the YAML decoder.
func swaggerYAML() ([]byte, error) {
	doc, err := swag.ReadDoc(SwaggerInfo.InstanceName())
	if err != nil {
		return nil, err
	}
	var tree yaml.Node
	if err := yaml.Unmarshal([]byte(doc), &tree); err != nil {
		return nil, err
	}
	clearStyle(&tree)
	return yaml.Marshal(&tree)
}

// clearStyle drops the flow style the JSON source carries so the output is
// block YAML
func clearStyle(n *yaml.Node) {
	n.Style &^= yaml.FlowStyle
	if n.Kind == yaml.ScalarNode {
		n.Style &^= yaml.DoubleQuotedStyle
	}
	for _, c := range n.Content {
		clearStyle(c)
	}
}

// StartServer serves the API on config.Bind:config.Port until ctx is
// cancelled, then shuts down gracefully.
func StartServer(ctx context.Context, archive ReplayArchive, config ServerConfig) error {
	addr := net.JoinHostPort(config.Bind, strconv.Itoa(config.Port))
	SwaggerInfo.Host = fmt.Sprintf("localhost:%d", config.Port)

	metrics := NewMetrics(prometheus.DefaultRegisterer)
	server := NewServer(archive, config, metrics)

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           NewRouter(server, metrics, prometheus.DefaultGatherer, config.APIKey),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go server.startMetricsUpdater(ctx, metricsInterval)

	errCh := make(chan error, 1)
	go func() {
		logger.Log.WithFields(logrus.Fields{
			"addr":    addr,
			"metrics": fmt.Sprintf("http://localhost:%d/metrics", config.Port),
		}).Info("starting osrkit REST API server")
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	logger.Log.Info("shutting down server")
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelShutdown()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	return nil
}
