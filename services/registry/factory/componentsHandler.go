package factory

import (
	"fmt"

	"github.com/astrovalid/srd-metrics/services/registry/api"
	"github.com/astrovalid/srd-metrics/services/registry/config"
	"github.com/astrovalid/srd-metrics/services/registry/lint"
	"github.com/astrovalid/srd-metrics/services/registry/manifest"
	"github.com/astrovalid/srd-metrics/services/registry/specs"
	"github.com/astrovalid/srd-metrics/services/registry/storage"
	"github.com/astrovalid/srd-metrics/services/registry/verifier"
	logger "github.com/multiversx/mx-chain-logger-go"
)

var log = logger.GetOrCreate("factory")

type componentsHandler struct {
	table  *specs.Table
	store  api.Storage
	server Server
}

// NewComponentsHandler loads the specification table, refuses to start on lint
// errors, and wires the verifier, storage and web server components
func NewComponentsHandler(
	serviceKeyApi string,
	cfg config.Config,
) (*componentsHandler, error) {
	table, err := specs.Load(cfg.SpecFile)
	if err != nil {
		return nil, err
	}

	report := lint.Run(table)
	if report.HasErrors() {
		return nil, fmt.Errorf("specification table failed integrity checks:\n%s", report.String())
	}
	for _, issue := range report.Warnings() {
		log.Warn("specification table issue", "metric", issue.Metric, "level", issue.Level, "message", issue.Message)
	}

	if len(cfg.ManifestFile) > 0 {
		mf, err := manifest.Load(cfg.ManifestFile)
		if err != nil {
			return nil, err
		}
		err = mf.Validate()
		if err != nil {
			return nil, fmt.Errorf("invalid manifest: %w", err)
		}
		log.Info("loaded package manifest",
			"required", len(mf.Required), "optional", len(mf.Optional), "envPrepends", len(mf.EnvPrepends))
	}

	milestone, err := specs.ParseMilestone(cfg.Milestone)
	if err != nil {
		return nil, err
	}

	verif, err := verifier.NewVerifier(table, milestone)
	if err != nil {
		return nil, err
	}

	store, err := storage.NewSQLiteStorage(cfg.DatabasePath, cfg.RetentionSeconds)
	if err != nil {
		return nil, err
	}

	serverArgs := api.ArgsWebServer{
		ServiceKeyApi:  serviceKeyApi,
		ListenAddress:  cfg.ListenAddress,
		Table:          table,
		Storage:        store,
		Verifier:       verif,
		GeneralHandler: api.CORSMiddleware,
	}

	server, err := api.NewServer(serverArgs)
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	return &componentsHandler{
		table:  table,
		store:  store,
		server: server,
	}, nil
}

// GetTable returns the loaded specification table
func (ch *componentsHandler) GetTable() *specs.Table {
	return ch.table
}

// GetStore returns the storage component
func (ch *componentsHandler) GetStore() api.Storage {
	return ch.store
}

// GetServer returns the server component
func (ch *componentsHandler) GetServer() Server {
	return ch.server
}

// Start starts the inner components
func (ch *componentsHandler) Start() {
	ch.server.Start()
}

// Close closes the inner components
func (ch *componentsHandler) Close() {
	_ = ch.server.Close()
	_ = ch.store.Close()
}
