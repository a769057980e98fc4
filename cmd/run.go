package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/TFMV/filebuddy/internal/command"
	"github.com/TFMV/filebuddy/internal/output"
	"github.com/TFMV/filebuddy/internal/progress"
	"github.com/TFMV/filebuddy/internal/walk"
	"github.com/mattn/go-isatty"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// runCommand validates the input of one command, then runs it. Every
// validation failure is returned before the tree is touched.
func runCommand(kind command.Kind, args []string) error {
	logger := newLogger(viper.GetString("log-level"))
	defer logger.Sync()

	if used := viper.ConfigFileUsed(); used != "" {
		logger.Debug("using config file", zap.String("path", used))
	}

	cmd, err := command.Parse(kind, args, viper.GetString("pattern"))
	if err != nil {
		return err
	}

	dir := viper.GetString("directory")
	if err := command.CheckDirectory(dir); err != nil {
		return err
	}

	excludes, err := walk.CompileExcludes(viper.GetStringSlice("exclude"))
	if err != nil {
		return err
	}

	var sink *os.File
	if path := viper.GetString("output"); path != "" {
		sink, err = os.Create(path)
		if err != nil {
			return fmt.Errorf("Could not open output file '%s': %w", path, err)
		}
		defer sink.Close()
	}

	interactive := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	cfg := output.Config{
		Stdout:  os.Stdout,
		Verbose: viper.GetBool("verbose"),
		Color:   sink == nil && interactive,
	}
	if sink != nil {
		cfg.Sink = sink
	}

	runner := &command.Runner{Logger: logger}
	if interactive {
		indicator := progress.New(os.Stdout, cmd.Status())
		cfg.Terminal = indicator
		runner.Indicator = indicator
	}
	runner.Out = output.New(cfg)

	rc := command.RunContext{
		Command:       cmd,
		Directory:     dir,
		Recursive:     viper.GetBool("recursive"),
		IncludeHidden: viper.GetBool("all"),
		Verbose:       cfg.Verbose,
		Exclude:       excludes,
	}
	logger.Debug("starting run",
		zap.String("command", string(kind)),
		zap.Strings("args", args),
		zap.String("directory", dir),
	)
	if _, err := runner.Run(rc); err != nil {
		return err
	}
	if sink != nil {
		return sink.Close()
	}
	return nil
}

// newLogger builds the diagnostic logger for level. Logs go to stderr so they
// never mix with result lines.
func newLogger(level string) *zap.Logger {
	var config zap.Config

	switch strings.ToLower(level) {
	case "debug":
		config = zap.NewDevelopmentConfig()
		config.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	case "info":
		config = zap.NewProductionConfig()
		config.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	case "warn":
		config = zap.NewProductionConfig()
		config.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	default:
		config = zap.NewProductionConfig()
		config.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	}
	config.OutputPaths = []string{"stderr"}
	config.ErrorOutputPaths = []string{"stderr"}

	logger, err := config.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
