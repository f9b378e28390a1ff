package commands

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/uhppoted/smartsheet-backup/backup"
	"github.com/uhppoted/smartsheet-backup/config"
	"github.com/uhppoted/smartsheet-backup/smartsheet"
)

const APP = "smartsheet-backup"

type Options struct {
	Config string
	Debug  bool
}

var level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
var logger = newLogger()

func newLogger() *zap.SugaredLogger {
	encoder := zap.NewDevelopmentEncoderConfig()
	encoder.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05")

	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encoder), zapcore.Lock(os.Stderr), level)

	return zap.New(core).Sugar()
}

// parse unpacks the context and options passed to Execute by main().
func parse(args ...any) (context.Context, *Options) {
	ctx := context.Background()
	options := Options{
		Config: DEFAULT_CONFIG,
	}

	for _, arg := range args {
		switch v := arg.(type) {
		case context.Context:
			ctx = v
		case *Options:
			options = *v
		}
	}

	if options.Debug {
		level.SetLevel(zapcore.DebugLevel)
	}

	return ctx, &options
}

// getConfig loads the configuration file. A missing configuration file at the default location is
// not an error.
func getConfig(options *Options) (*config.Config, error) {
	file := strings.TrimSpace(options.Config)
	if file == "" {
		return config.NewConfig(), nil
	}

	conf, err := config.Load(file)
	if err != nil && os.IsNotExist(err) && file == DEFAULT_CONFIG {
		debugf("No configuration file at %v - using defaults", file)
		return config.NewConfig(), nil
	} else if err != nil {
		return nil, fmt.Errorf("could not load configuration (%v)", err)
	}

	return conf, nil
}

// getClient creates a Smartsheet client using the access token in the configured environment variable.
func getClient(conf *config.Config) (*smartsheet.Client, error) {
	token, ok := os.LookupEnv(conf.API.TokenEnv)
	if !ok || strings.TrimSpace(token) == "" {
		return nil, &backup.AuthInitError{Err: fmt.Errorf("missing %v environment variable", conf.API.TokenEnv)}
	}

	return backup.Initialize(token, smartsheet.WithURL(conf.API.URL), smartsheet.WithTimeout(conf.API.Timeout))
}

func helpOptions(flagset *flag.FlagSet) {
	count := 0
	flag.VisitAll(func(f *flag.Flag) {
		count++
	})

	flagset.VisitAll(func(f *flag.Flag) {
		if len(f.Name) > 1 {
			fmt.Printf("    --%-13s %s\n", f.Name, f.Usage)
		}
	})

	if count > 0 {
		fmt.Println()
		fmt.Println("  Options:")
		flag.VisitAll(func(f *flag.Flag) {
			fmt.Printf("    --%-13s %s\n", f.Name, f.Usage)
		})
	}
}

func debugf(format string, args ...any) {
	logger.Debugf(format, args...)
}

func infof(format string, args ...any) {
	logger.Infof(format, args...)
}

func warnf(format string, args ...any) {
	logger.Warnf(format, args...)
}
