package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/YuminosukeSato/adspend/analysis"
	"github.com/YuminosukeSato/adspend/internal/config"
	"github.com/YuminosukeSato/adspend/pkg/errors"
	"github.com/YuminosukeSato/adspend/pkg/log"
	"github.com/YuminosukeSato/adspend/plotting"
	"github.com/YuminosukeSato/adspend/report"
)

// initializeLogger installs the configured backend as the package-wide
// provider and routes warnings to zerolog. The returned function flushes
// buffered output.
func initializeLogger(conf config.LoggingConfig, logLevelOverride string) (func(), error) {
	level := conf.Level
	if logLevelOverride != "" {
		level = logLevelOverride
	}

	zl, err := log.NewZerolog(os.Stderr, conf.Format, level)
	if err != nil {
		return nil, err
	}
	log.RouteWarningsToZerolog(zl)

	switch conf.Backend {
	case config.BackendZap:
		provider, sync, err := log.NewZapProvider(log.ZapOptions{
			Level:      level,
			Format:     conf.Format,
			OutputFile: conf.OutputFile,
		})
		if err != nil {
			return nil, err
		}
		log.SetProvider(provider)
		return func() { _ = sync() }, nil
	case config.BackendZerolog:
		log.SetProvider(log.NewZerologProvider(zl))
	default:
		if err := log.SetupLogger(level, conf.Format, os.Stderr); err != nil {
			return nil, err
		}
	}
	return func() {}, nil
}

func main() {
	os.Exit(run())
}

func run() int {
	configLocation := flag.String("config", "", "path to configuration file (default: ./adspend.yaml if present)")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	flag.Parse()

	conf, err := loadConfig(*configLocation)
	if err != nil {
		fmt.Fprintf(os.Stderr, "{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration\", \"error\": %q}\n", err.Error())
		return 1
	}

	flush, err := initializeLogger(conf.Logging, *logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": %q}\n", err.Error())
		return 1
	}
	defer flush()

	logger := log.GetLoggerWithName("main")

	res, err := analysis.Run(conf.AnalysisOptions(), log.GetLoggerWithName("analysis"))
	if err != nil {
		logger.Error("Analysis failed", err, log.SuggestionKey, suggestion(err))
		return 1
	}

	if conf.Plots.Enabled {
		err = errors.SafeExecute("plotting.Render", func() error {
			paths, err := plotting.Render(conf.Output.Dir, res, conf.PlotOptions())
			if err != nil {
				return err
			}
			logger.Info("Charts written",
				log.OperationKey, log.OperationRender,
				log.OutputPathKey, conf.Output.Dir,
				"charts", len(paths),
			)
			return nil
		})
		if err != nil {
			logger.Error("Failed to render charts", err)
			return 1
		}
	}

	if err := report.Write(os.Stdout, res, conf.ReportOptions()); err != nil {
		logger.Error("Failed to write report", err)
		return 1
	}
	return 0
}

func loadConfig(path string) (*config.Configuration, error) {
	if path == "" {
		return config.LoadDefault()
	}
	return config.Load(path)
}

// suggestion maps an error kind to a hint for the operator.
func suggestion(err error) string {
	switch errors.KindOf(err) {
	case errors.KindInvalidArgument:
		return "check data.samples, data.spend_min/spend_max and split.test_fraction"
	case errors.KindIllDefinedModel:
		return "the generated spends or sales have no variance; widen the spend range or add noise"
	case errors.KindInsufficientData:
		return "increase data.samples so both train and test sets hold at least 2 samples"
	default:
		return ""
	}
}
