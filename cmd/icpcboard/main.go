package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"icpcboard/internal/cli/command"
	"icpcboard/internal/cli/config"
	"icpcboard/internal/cli/repl"
	"icpcboard/internal/common/cache"
	"icpcboard/internal/contest/export"
	"icpcboard/internal/contest/repository"
	"icpcboard/internal/contest/service"
	"icpcboard/pkg/utils/logger"

	"go.uber.org/zap"
)

const defaultConfigPath = "configs/icpcboard.yaml"

func main() {
	configPath := flag.String("config", defaultConfigPath, "Path to config file")
	input := flag.String("input", "", "Read commands from file instead of stdin")
	interactive := flag.Bool("interactive", false, "Read commands with line editing")
	exportPath := flag.String("export", "", "Write the final scoreboard to this .xlsx file")
	logLevel := flag.String("log-level", "", "Override log level (debug, info, warn, error)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config failed: %v\n", err)
		os.Exit(1)
	}
	if *input != "" {
		cfg.Session.Input = *input
	}
	if *interactive {
		cfg.Session.Interactive = true
	}
	if *exportPath != "" {
		cfg.Export.Path = *exportPath
	}
	if *logLevel != "" {
		cfg.Logger.Level = *logLevel
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logger); err != nil {
		fmt.Fprintf(os.Stderr, "init logger failed: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		logger.Error(ctx, "session failed", zap.Error(err))
		_ = logger.Sync()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config) error {
	svcCfg := service.Config{}
	if cfg.Mirror.Enabled {
		redisCache, err := cache.NewRedisCacheWithConfig(&cfg.Mirror.Redis)
		if err != nil {
			return fmt.Errorf("init redis mirror failed: %w", err)
		}
		defer redisCache.Close()
		svcCfg.Publishers = append(svcCfg.Publishers, repository.NewRedisBoardMirror(redisCache, cfg.Mirror.KeyPrefix))
		logger.Info(ctx, "board mirror enabled", zap.String("addr", cfg.Mirror.Redis.Addr), zap.String("prefix", cfg.Mirror.KeyPrefix))
	}
	if cfg.Export.Path != "" {
		svcCfg.Exporter = export.NewXLSXExporter(cfg.Export.Path)
	}

	reader, err := openInput(cfg.Session)
	if err != nil {
		return err
	}
	defer reader.Close()

	svc := service.NewContestService(svcCfg)
	session := repl.New(svc, command.Registry(), os.Stdout, cfg.Session.Interactive)
	logger.Info(ctx, "session started", zap.String("session_id", session.ID()), zap.Bool("interactive", cfg.Session.Interactive))
	return session.Run(ctx, reader)
}

func openInput(cfg config.SessionConfig) (repl.LineReader, error) {
	if cfg.Interactive {
		reader, err := repl.NewTerminalReader(cfg.Prompt, cfg.HistoryFile)
		if err != nil {
			return nil, fmt.Errorf("open terminal failed: %w", err)
		}
		return reader, nil
	}
	var in io.Reader = os.Stdin
	if cfg.Input != "" {
		file, err := os.Open(cfg.Input)
		if err != nil {
			return nil, fmt.Errorf("open input failed: %w", err)
		}
		return &fileReader{LineReader: repl.NewScannerReader(file), file: file}, nil
	}
	return repl.NewScannerReader(in), nil
}

type fileReader struct {
	repl.LineReader
	file *os.File
}

func (r *fileReader) Close() error {
	return r.file.Close()
}
