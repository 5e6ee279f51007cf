package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/shahyaksh/Multi-Class-Classification-Using-ANLI/internal/artifact"
	"github.com/shahyaksh/Multi-Class-Classification-Using-ANLI/internal/config"
	"github.com/shahyaksh/Multi-Class-Classification-Using-ANLI/internal/httpapi"
	"github.com/shahyaksh/Multi-Class-Classification-Using-ANLI/internal/nli"
)

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func main() {
	addr := flag.String("addr", envOr("NLID_ADDR", ":8080"), "HTTP listen address, e.g. :8080")
	modelDir := flag.String("model-dir", envOr("NLID_MODEL_DIR", "./model"), "Directory holding tokenizer.json and the exported classifier")
	device := flag.String("device", envOr("NLID_DEVICE", "auto"), "Compute device: auto|cuda|cpu")
	maxSeqLen := flag.Int("max-seq-len", 0, "Maximum combined encoded pair length (default 256)")
	maxBatch := flag.Int("max-batch", 0, "Maximum pairs per batch request (0=unlimited)")
	maxBody := flag.Int64("max-body-bytes", 0, "Maximum JSON body size in bytes (default 1MiB)")
	predictTimeout := flag.Int64("predict-timeout-sec", 0, "Boundary timeout per predict call in seconds (0=disabled)")
	logLevel := flag.String("log-level", envOr("NLID_LOG_LEVEL", "info"), "Log level: debug|info|warn|error")
	corsEnabled := flag.Bool("cors", false, "Enable CORS for browser clients")
	corsOrigins := flag.String("cors-origins", "*", "Comma-separated allowed origins when CORS is enabled")
	ortLib := flag.String("ort-lib", envOr("NLID_ORT_LIB", ""), "Path to the onnxruntime shared library (optional)")
	configPath := flag.String("config", envOr("NLID_CONFIG", ""), "Optional config file (.yaml/.json/.toml); flags override")
	flag.Parse()

	logger := newLogger(*logLevel)

	// Config file fills fields the flags left at their defaults.
	if *configPath != "" {
		cfg, err := config.Load(*configPath)
		if err != nil {
			logger.Fatal().Err(err).Str("path", *configPath).Msg("load config")
		}
		explicit := map[string]bool{}
		flag.Visit(func(f *flag.Flag) { explicit[f.Name] = true })
		applyConfig(cfg, explicit, addr, modelDir, device, maxSeqLen, maxBatch, maxBody, corsEnabled, corsOrigins, ortLib)
		if cfg.LogLevel != "" && !explicit["log-level"] {
			*logLevel = cfg.LogLevel
			logger = newLogger(*logLevel)
		}
	}

	md, err := artifact.Resolve(*modelDir)
	if err != nil {
		logger.Fatal().Err(err).Str("dir", *modelDir).Msg("resolve model dir")
	}

	backend := nli.ClassifierConfig{
		ModelPath:     md.ModelPath,
		TokenizerPath: md.TokenizerPath,
		MaxSeqLen:     *maxSeqLen,
		Device:        *device,
		LibraryPath:   *ortLib,
	}
	if report := nli.SanityCheck(backend); report.Error != "" {
		// Engine construction below reports the same condition fatally; this
		// log gives the operator the full picture first.
		logger.Warn().
			Bool("ort_built", report.OrtBuilt).
			Bool("model_found", report.ModelFound).
			Bool("tokenizer_found", report.TokenizerFound).
			Msg(report.Error)
	}

	eng, err := nli.New(nli.EngineConfig{
		Backend:       backend,
		ModelDir:      md.Dir,
		AdapterMerged: md.AdapterMerged,
	})
	if err != nil {
		// Fatal by contract: never serve traffic without a usable model.
		logger.Fatal().Err(err).Msg("model init failed")
	}
	defer func() {
		if err := eng.Close(); err != nil {
			logger.Error().Err(err).Msg("engine close")
		}
	}()
	logger.Info().
		Str("model", md.ModelPath).
		Str("device", eng.Device()).
		Bool("adapter_merged", md.AdapterMerged).
		Msg("model loaded")

	httpapi.SetLogger(logger)
	httpapi.SetMaxBodyBytes(*maxBody)
	httpapi.SetMaxBatchPairs(*maxBatch)
	httpapi.SetPredictTimeoutSeconds(*predictTimeout)
	httpapi.SetCORSOptions(*corsEnabled, splitCSV(*corsOrigins),
		[]string{http.MethodGet, http.MethodPost, http.MethodOptions},
		[]string{"Accept", "Content-Type", "X-Log-Level"})

	baseCtx, cancelBase := context.WithCancel(context.Background())
	defer cancelBase()
	httpapi.SetBaseContext(baseCtx)

	mux := httpapi.NewMux(eng)
	srv := &http.Server{Addr: *addr, Handler: mux}

	go func() {
		logger.Info().Str("addr", *addr).Str("model_dir", md.Dir).Msg("nlid listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	// Graceful shutdown (Ctrl+C / SIGTERM)
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	cancelBase()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown")
	}
}

// applyConfig copies file values over flag defaults, skipping flags the user
// set explicitly.
func applyConfig(cfg config.Config, explicit map[string]bool,
	addr, modelDir, device *string, maxSeqLen, maxBatch *int, maxBody *int64,
	corsEnabled *bool, corsOrigins, ortLib *string) {
	if cfg.Addr != "" && !explicit["addr"] {
		*addr = cfg.Addr
	}
	if cfg.ModelDir != "" && !explicit["model-dir"] {
		*modelDir = cfg.ModelDir
	}
	if cfg.Device != "" && !explicit["device"] {
		*device = cfg.Device
	}
	if cfg.MaxSeqLen > 0 && !explicit["max-seq-len"] {
		*maxSeqLen = cfg.MaxSeqLen
	}
	if cfg.MaxBatchSize > 0 && !explicit["max-batch"] {
		*maxBatch = cfg.MaxBatchSize
	}
	if cfg.MaxBodyBytes > 0 && !explicit["max-body-bytes"] {
		*maxBody = cfg.MaxBodyBytes
	}
	if cfg.CORSEnabled && !explicit["cors"] {
		*corsEnabled = true
	}
	if len(cfg.CORSOrigins) > 0 && !explicit["cors-origins"] {
		*corsOrigins = strings.Join(cfg.CORSOrigins, ",")
	}
	if cfg.OrtLibrary != "" && !explicit["ort-lib"] {
		*ortLib = cfg.OrtLibrary
	}
}

func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(os.Stderr).Level(lvl).With().Timestamp().Logger()
}

// splitCSV splits a comma-separated list, trimming blanks.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		p := strings.TrimSpace(part)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}
