/*
Copyright 2025 Planfeed Contributors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Main entrypoint for the planfeed pipeline.
//
// The pipeline loads a bulk price-list dump, generates the constrained
// instance catalog, derives the performance table, quantizes demand traces,
// and assembles the solver input bundle. Metrics describing the run are
// served over HTTP until the process is signalled to stop.
package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/planfeed/planfeed/internal/ingest"
	"github.com/planfeed/planfeed/pkg/catalog"
	"github.com/planfeed/planfeed/pkg/config"
	"github.com/planfeed/planfeed/pkg/metrics"
	"github.com/planfeed/planfeed/pkg/problem"
	"github.com/planfeed/planfeed/pkg/workload"
)

// runPipeline executes every preparation stage and returns the assembled
// solver input. Stage wall times are recorded into m.StageDuration.
func runPipeline(cfg *config.Config, m *metrics.Metrics, log logr.Logger) (*problem.Problem, error) {
	stageStart := time.Now()

	f, err := os.Open(cfg.PricingFile)
	if err != nil {
		return nil, fmt.Errorf("opening price list: %w", err)
	}
	table, err := ingest.LoadEC2Offers(f)
	_ = f.Close()
	if err != nil {
		return nil, fmt.Errorf("loading price list: %w", err)
	}
	m.PriceRecords.Set(float64(table.Len()))
	m.StageDuration.WithLabelValues("ingest").Observe(time.Since(stageStart).Seconds())
	log.Info("loaded price list", "file", cfg.PricingFile, "records", table.Len())

	regions := cfg.Regions
	if len(regions) == 0 {
		regions = ingest.PlannableRegions(ingest.Regions(table))
		log.Info("discovered regions from price list", "regions", len(regions))
	}

	stageStart = time.Now()
	topo := catalog.Topology{
		MaxOnDemandPerType:   cfg.Catalog.MaxOnDemandPerType,
		MaxOnDemandPerRegion: cfg.Catalog.MaxOnDemandPerRegion,
		MaxReservedPerZone:   cfg.Catalog.MaxReservedPerZone,
		AvailabilityZones:    cfg.Catalog.AvailabilityZones,
	}
	builder := &catalog.Builder{Log: log.WithName("catalog")}

	var entries []*catalog.Entry
	for _, region := range regions {
		regionEntries := builder.BuildRegion(table, region, cfg.InstanceTypes, cfg.OperatingSystem, topo)

		var onDemand, reserved int
		constraints := make(map[string]bool)
		for _, e := range regionEntries {
			if e.Reserved {
				reserved++
			} else {
				onDemand++
			}
			for _, c := range e.Constraints {
				constraints[c.ID] = true
			}
		}
		m.CatalogEntries.WithLabelValues(region, metrics.PurchaseModeOnDemand).Set(float64(onDemand))
		m.CatalogEntries.WithLabelValues(region, metrics.PurchaseModeReserved).Set(float64(reserved))
		m.CapacityConstraints.WithLabelValues(region).Set(float64(len(constraints)))

		entries = append(entries, regionEntries...)
	}

	var privateEntries int
	if cfg.PrivateCloud.Hosts > 0 {
		entries = append(entries, catalog.NewPrivateEntry(
			"private_new", "private", cfg.PrivateCloud.PricePerHour, cfg.PrivateCloud.Hosts))
		privateEntries++
	}
	if cfg.PrivateCloud.PreviousHosts > 0 {
		entries = append(entries, catalog.NewPrivateEntry(
			"private_prev", "private", cfg.PrivateCloud.PreviousPricePerHour, cfg.PrivateCloud.PreviousHosts))
		privateEntries++
	}
	if privateEntries > 0 {
		m.CatalogEntries.WithLabelValues("private", metrics.PurchaseModePrivate).Set(float64(privateEntries))
		log.Info("added private cloud pools",
			"newHosts", cfg.PrivateCloud.Hosts,
			"previousHosts", cfg.PrivateCloud.PreviousHosts)
	}
	m.StageDuration.WithLabelValues("catalog").Observe(time.Since(stageStart).Seconds())
	log.Info("built catalog", "regions", len(regions), "entries", len(entries))

	appCount := cfg.ApplicationCount()
	apps := make([]problem.Application, appCount)
	for i := range apps {
		apps[i] = problem.Application{
			ID:   fmt.Sprintf("app%d", i),
			Name: fmt.Sprintf("app%d", i),
		}
	}
	// Rotating before cycling varies which application gets which baseline
	// and demand trace across experiment runs.
	firstApp := cfg.Performance.FirstApplication
	baselines := problem.Cycle(problem.Rotated(cfg.Performance.Baselines, firstApp), appCount)

	stageStart = time.Now()
	perfs, err := problem.BuildPerformanceTable(table, entries, apps, baselines,
		cfg.Performance.Factor, cfg.Performance.DefaultComputeUnits)
	if err != nil {
		return nil, fmt.Errorf("building performance table: %w", err)
	}
	m.StageDuration.WithLabelValues("performance").Observe(time.Since(stageStart).Seconds())

	var demand []workload.Series
	if cfg.DemandFile != "" {
		df, err := os.Open(cfg.DemandFile)
		if err != nil {
			return nil, fmt.Errorf("opening demand traces: %w", err)
		}
		traces, err := ingest.LoadDemand(df)
		_ = df.Close()
		if err != nil {
			return nil, fmt.Errorf("loading demand traces: %w", err)
		}
		if len(traces) == 0 {
			return nil, fmt.Errorf("demand file %s contains no traces", cfg.DemandFile)
		}
		demand = problem.Cycle(problem.Rotated(traces, firstApp), appCount)
		if cfg.Quantization.HorizonHours > 0 {
			for i := range demand {
				demand[i] = demand[i].Truncated(cfg.Quantization.HorizonHours)
			}
		}
		log.Info("loaded demand traces", "file", cfg.DemandFile, "applications", appCount)
	} else {
		// Without demand traces the planner still needs a parallel series
		// list; zero demand lets the catalog and performance stages be
		// inspected in isolation.
		demand = make([]workload.Series, appCount)
		for i := range demand {
			demand[i] = workload.Series{}
		}
		log.Info("no demand file configured, using empty demand")
	}

	stageStart = time.Now()
	perfLists := make([][]int64, appCount)
	for i, app := range apps {
		perfLists[i] = perfs.ForApp(app, entries)
	}
	quanta, err := workload.Quanta(perfLists, cfg.Quantization.Factor)
	if err != nil {
		return nil, fmt.Errorf("deriving quanta: %w", err)
	}
	if cfg.Quantization.Factor > 0 {
		for i, app := range apps {
			m.QuantumSize.WithLabelValues(app.ID).Set(float64(quanta[i]))
		}
	}
	demand, err = workload.QuantizeAll(demand, quanta, cfg.Quantization.Factor)
	if err != nil {
		return nil, fmt.Errorf("quantizing demand: %w", err)
	}
	m.StageDuration.WithLabelValues("quantize").Observe(time.Since(stageStart).Seconds())

	stageStart = time.Now()
	assembler := &problem.Assembler{Log: log.WithName("assembler")}
	p, err := assembler.Assemble("planfeed", "planfeed", entries, apps, demand, perfs)
	if err != nil {
		return nil, fmt.Errorf("assembling problem: %w", err)
	}
	m.StageDuration.WithLabelValues("assemble").Observe(time.Since(stageStart).Seconds())

	return p, nil
}

// zapLevel maps the configured log level onto a zap level. Validate has
// already rejected anything else.
func zapLevel(level string) zapcore.Level {
	switch level {
	case "debug":
		return zapcore.DebugLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

func main() {
	var configFile string
	var metricsAddr string
	flag.StringVar(&configFile, "config", "/etc/planfeed/config.yaml",
		"Path to the pipeline configuration file. Can be overridden with PLANFEED_CONFIG_PATH environment variable.")
	flag.StringVar(&metricsAddr, "metrics-bind-address", "",
		"The address the metrics endpoint binds to. Overrides metricsBindAddress from the configuration file.")
	flag.Parse()

	if envConfigPath := os.Getenv("PLANFEED_CONFIG_PATH"); envConfigPath != "" {
		configFile = envConfigPath
	}

	// Bootstrap logger at info level; reconfigured from the config file once
	// it is loaded.
	atom := zap.NewAtomicLevelAt(zapcore.InfoLevel)
	zapCfg := zap.NewProductionConfig()
	zapCfg.Level = atom
	zapLog, err := zapCfg.Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = zapLog.Sync() }()
	log := zapr.NewLogger(zapLog).WithName("setup")

	cfg, err := config.Load(configFile)
	if err != nil {
		log.Error(err, "failed to load configuration", "config-file", configFile)
		os.Exit(1)
	}
	atom.SetLevel(zapLevel(cfg.LogLevel))
	log.Info("loaded configuration",
		"config-file", configFile,
		"pricing-file", cfg.PricingFile,
		"log-level", cfg.LogLevel)

	if metricsAddr == "" {
		metricsAddr = cfg.MetricsBindAddress
	}

	registry := prometheus.NewRegistry()
	m := metrics.NewMetrics(registry)
	m.PipelineRunning.Set(1)

	p, err := runPipeline(cfg, m, log.WithName("pipeline"))
	if err != nil {
		log.Error(err, "pipeline failed")
		os.Exit(1)
	}
	log.Info("pipeline complete",
		"problem", p.ID,
		"entries", len(p.Entries),
		"applications", len(p.Apps))

	metricsMux := http.NewServeMux()
	metricsMux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	metricsServer := &http.Server{
		Addr:    metricsAddr,
		Handler: metricsMux,
	}
	go func() {
		log.Info("starting metrics server", "address", metricsAddr)
		if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error(err, "metrics server stopped with error")
		}
	}()

	// Wait for shutdown signal.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	log.Info("shutting down")
	_ = metricsServer.Close()
}
