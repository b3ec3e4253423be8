package engine

import (
	"context"
	"errors"
	"time"

	"github.com/astrovalid/srd-metrics/services/collector/config"
	"github.com/multiversx/mx-chain-core-go/core/check"
	logger "github.com/multiversx/mx-chain-logger-go"
)

var log = logger.GetOrCreate("engine")

// collectorEngine orchestrates polling and reporting at configured intervals
type collectorEngine struct {
	config   config.Config
	poller   Poller
	reporter Reporter
}

// NewCollectorEngine creates a new engine instance
func NewCollectorEngine(cfg config.Config, p Poller, r Reporter) (*collectorEngine, error) {
	if check.IfNil(p) {
		return nil, errors.New("nil poller")
	}
	if check.IfNil(r) {
		return nil, errors.New("nil reporter")
	}

	return &collectorEngine{
		config:   cfg,
		poller:   p,
		reporter: r,
	}, nil
}

// Process will poll all sources and try to send the measurements to the reporter
func (e *collectorEngine) Process(ctx context.Context) {
	log.Debug("waking up to poll sources", "count", len(e.config.Sources))

	// 1. Poll all sources concurrently
	pollCtx, cancelPoll := context.WithTimeout(ctx, 30*time.Second) // Prevent indefinite hanging
	defer cancelPoll()
	results := e.poller.PollAll(pollCtx, e.config.Sources)

	log.Debug("finished polling", "successful_results", len(results))

	// 2. Report them to the registry
	reportCtx, cancelReport := context.WithTimeout(ctx, 10*time.Second)
	defer cancelReport()

	err := e.reporter.Report(reportCtx, results)
	if err != nil {
		log.Warn("failed to report measurements, they will be discarded", "error", err)
	}
}

// IsInterfaceNil returns true if the value under the interface is nil
func (e *collectorEngine) IsInterfaceNil() bool {
	return e == nil
}
