package api

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/astrovalid/srd-metrics/services/registry/common"
	"github.com/astrovalid/srd-metrics/services/registry/lint"
	"github.com/astrovalid/srd-metrics/services/registry/specs"
	"github.com/gin-gonic/gin"
	"github.com/multiversx/mx-chain-core-go/core/check"
	logger "github.com/multiversx/mx-chain-logger-go"
)

var log = logger.GetOrCreate("api")

type server struct {
	router     *gin.Engine
	httpServer *http.Server
	table      *specs.Table
	storage    Storage
	verifier   Verifier

	serviceKey     string
	listenAddr     string
	generalHandler func(http.Handler) http.Handler
	wg             sync.WaitGroup
}

// ArgsWebServer defines the web server arguments
type ArgsWebServer struct {
	ServiceKeyApi  string
	ListenAddress  string
	Table          *specs.Table
	Storage        Storage
	Verifier       Verifier
	GeneralHandler func(http.Handler) http.Handler
}

// NewServer initializes the Gin engine and mounts all routes
func NewServer(args ArgsWebServer) (*server, error) {
	if args.Table == nil {
		return nil, errors.New("nil specification table")
	}
	if check.IfNil(args.Storage) {
		return nil, errors.New("storage is required")
	}
	if check.IfNil(args.Verifier) {
		return nil, errors.New("verifier is required")
	}
	if args.GeneralHandler == nil {
		return nil, errors.New("nil http handler")
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	router.Use(gin.Recovery())

	s := &server{
		router:         router,
		table:          args.Table,
		storage:        args.Storage,
		verifier:       args.Verifier,
		serviceKey:     args.ServiceKeyApi,
		listenAddr:     args.ListenAddress,
		generalHandler: args.GeneralHandler,
	}

	s.setupRoutes()
	return s, nil
}

func (s *server) setupRoutes() {
	api := s.router.Group("/api")

	// Collector ingest endpoint
	api.POST("/measurements", s.authAPIKey(), s.handleIngest)

	// Specification table queries
	api.GET("/specs", s.handleListSpecs)
	api.GET("/specs/:code", s.handleGetSpec)
	api.GET("/specs/:code/threshold", s.handleThreshold)
	api.GET("/lint", s.handleLint)

	// Measurement queries
	api.GET("/measurements", s.handleLatestMeasurements)
	api.GET("/measurements/:code/history", s.handleMeasurementHistory)
	api.GET("/summary", s.handleSummary)
	api.DELETE("/measurements/:code", s.authAPIKey(), s.handleDeleteMeasurements)
}

// Start listens and serves connections
func (s *server) Start() {
	handler := s.generalHandler(s.router)

	s.httpServer = &http.Server{
		Addr:    s.listenAddr,
		Handler: handler,
	}

	ln, err := net.Listen("tcp", s.listenAddr)
	if err != nil {
		log.Error("failed to listen", "error", err)
		return
	}
	s.listenAddr = ln.Addr().String()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		log.Info("starting HTTP server", "address", s.listenAddr)

		err := s.httpServer.Serve(ln)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server failed", "error", err)
		}
	}()
}

// Address returns the actual listen address
func (s *server) Address() string {
	return s.listenAddr
}

// Close gracefully stops the server
func (s *server) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			return err
		}
	}
	s.wg.Wait()
	return nil
}

// --- Middlewares ---

func (s *server) authAPIKey() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader("X-Api-Key")
		if key != s.serviceKey {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// --- Handlers ---

type rejectedMeasurement struct {
	Metric string `json:"metric"`
	Filter string `json:"filter"`
	Error  string `json:"error"`
}

func (s *server) handleIngest(c *gin.Context) {
	var payload common.ReportPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	recordedAt := time.Now().Unix()
	ctx := c.Request.Context()

	log.Debug("received measurements", "source", payload.Source, "count", len(payload.Measurements))

	accepted := make([]common.Verdict, 0, len(payload.Measurements))
	rejected := make([]rejectedMeasurement, 0)

	for _, m := range payload.Measurements {
		verdict, err := s.verifier.Verify(m.Metric, m.Filter, m.Value, m.Unit)
		if err != nil {
			log.Warn("rejected measurement", "metric", m.Metric, "filter", m.Filter, "error", err)
			rejected = append(rejected, rejectedMeasurement{Metric: m.Metric, Filter: m.Filter, Error: err.Error()})
			continue
		}

		err = s.storage.SaveMeasurement(ctx, common.MeasurementRecord{
			Metric:     verdict.Metric,
			Filter:     verdict.Filter,
			Source:     payload.Source,
			Value:      verdict.Value,
			Unit:       verdict.Unit,
			Threshold:  verdict.Threshold,
			Passed:     verdict.Passed,
			RecordedAt: recordedAt,
		})
		if err != nil {
			log.Warn("failed to save measurement", "metric", m.Metric, "error", err)
			rejected = append(rejected, rejectedMeasurement{Metric: m.Metric, Filter: m.Filter, Error: err.Error()})
			continue
		}

		accepted = append(accepted, verdict)
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":       true,
		"accepted": accepted,
		"rejected": rejected,
	})
}

func (s *server) handleListSpecs(c *gin.Context) {
	metrics := make([]*specs.Metric, 0, s.table.Len())
	for _, code := range s.table.Codes() {
		metric, err := s.table.Metric(code)
		if err != nil {
			continue
		}
		metrics = append(metrics, metric)
	}

	c.JSON(http.StatusOK, gin.H{
		"milestone": s.verifier.Milestone(),
		"metrics":   metrics,
	})
}

func (s *server) handleGetSpec(c *gin.Context) {
	code := c.Param("code")
	metric, err := s.table.Metric(code)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, metric)
}

func (s *server) handleThreshold(c *gin.Context) {
	code := c.Param("code")

	milestone := specs.Milestone(c.Query("milestone"))
	if len(milestone) == 0 {
		milestone = s.verifier.Milestone()
	}

	filterName := c.Query("filter")
	if len(filterName) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing 'filter' query parameter"})
		return
	}

	level, err := s.table.Threshold(code, milestone, filterName)
	if err != nil {
		status := http.StatusNotFound
		if errors.Is(err, specs.ErrUnknownMilestone) {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, level)
}

func (s *server) handleLint(c *gin.Context) {
	report := lint.Run(s.table)

	c.JSON(http.StatusOK, gin.H{
		"hasErrors": report.HasErrors(),
		"issues":    report.Issues,
	})
}

func (s *server) handleLatestMeasurements(c *gin.Context) {
	results, err := s.storage.GetLatestMeasurements(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"measurements": results})
}

func (s *server) handleMeasurementHistory(c *gin.Context) {
	code := c.Param("code")
	hist, err := s.storage.GetMeasurementHistory(c.Request.Context(), code)
	if err != nil {
		if err.Error() == "metric not found" {
			c.JSON(http.StatusNotFound, gin.H{"error": "metric not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"metric": code, "history": hist})
}

func (s *server) handleSummary(c *gin.Context) {
	summary, err := s.storage.GetSummary(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"summary": summary})
}

func (s *server) handleDeleteMeasurements(c *gin.Context) {
	code := c.Param("code")
	err := s.storage.DeleteMeasurements(c.Request.Context(), code)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}
