package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/time/rate"
	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/luminesce-sdk/internal/constants"
	"github.com/fivetwenty-io/luminesce-sdk/pkg/apifactory"
	"github.com/fivetwenty-io/luminesce-sdk/pkg/sdk"
)

// Common static errors used throughout the commands package.
var (
	ErrUnsupportedOutput = errors.New("unsupported output format")
	ErrUnsupportedFormat = errors.New("unsupported result format")
	ErrQueryRequired     = errors.New("query is required")
)

// newLogger returns a console logger writing to out. Debug messages are
// written only in verbose mode.
func newLogger(out io.Writer) sdk.Logger {
	level := zapcore.InfoLevel
	if viper.GetBool("verbose") {
		level = zapcore.DebugLevel
	}

	encoderConfig := zap.NewDevelopmentEncoderConfig()
	encoderConfig.TimeKey = ""

	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig), zapcore.AddSync(out), level)

	return sdk.NewZapLogger(zap.New(core))
}

// secretsPath returns the --secrets flag, falling back to secrets.json in the
// working directory when it exists.
func secretsPath() string {
	if path := viper.GetString("secrets"); path != "" {
		return path
	}

	if _, err := os.Stat(constants.DefaultSecretsFile); err == nil {
		return constants.DefaultSecretsFile
	}

	return ""
}

// newConfiguration loads the secrets and derives the client configuration.
func newConfiguration(logger sdk.Logger) (*sdk.Configuration, error) {
	apiConfig, err := sdk.LoadAPIConfiguration(secretsPath())
	if err != nil {
		return nil, err
	}

	config, err := apifactory.NewConfiguration(apiConfig)
	if err != nil {
		return nil, err
	}

	config.Debug = viper.GetBool("verbose")
	config.Logger = logger

	if rps := viper.GetFloat64("rate-limit"); rps > 0 {
		config.RateLimiter = rate.NewLimiter(rate.Limit(rps), 1)
	}

	return config, nil
}

// newFactory builds the API factory from the secrets configuration.
func newFactory(logger sdk.Logger) (*apifactory.Factory, error) {
	config, err := newConfiguration(logger)
	if err != nil {
		return nil, err
	}

	factory, err := apifactory.New(config,
		apifactory.WithLogger(logger),
		apifactory.WithConcurrency(viper.GetInt("concurrency")),
	)
	if err != nil {
		return nil, fmt.Errorf("creating API factory: %w", err)
	}

	logger.Debug("Built API factory", map[string]interface{}{"keys": factory.Len()})

	return factory, nil
}

// writeOutput renders data as JSON or YAML, or renders header and rows as a table.
func writeOutput(out io.Writer, data interface{}, header []string, rows [][]string) error {
	switch format := viper.GetString("output"); format {
	case constants.FormatJSON:
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")

		err := encoder.Encode(data)
		if err != nil {
			return fmt.Errorf("encoding JSON output: %w", err)
		}
	case constants.FormatYAML:
		encoder := yaml.NewEncoder(out)

		err := encoder.Encode(data)
		if err != nil {
			return fmt.Errorf("encoding YAML output: %w", err)
		}
	case constants.FormatTable, "":
		table := tablewriter.NewWriter(out)
		table.Header(cells(header)...)

		for _, row := range rows {
			_ = table.Append(cells(row)...)
		}

		err := table.Render()
		if err != nil {
			return fmt.Errorf("failed to render table: %w", err)
		}
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedOutput, format)
	}

	return nil
}

func cells(values []string) []interface{} {
	out := make([]interface{}, len(values))
	for i, v := range values {
		out[i] = v
	}

	return out
}
