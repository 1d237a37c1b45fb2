package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/lmittmann/tint"
	"github.com/palfs/palfs/internal/classify"
	"github.com/palfs/palfs/internal/clock"
	"github.com/palfs/palfs/internal/configuration"
	"github.com/palfs/palfs/internal/digest"
	"github.com/palfs/palfs/internal/fslink"
	"github.com/palfs/palfs/internal/fsmeta"
	"github.com/palfs/palfs/internal/schema"
	"github.com/palfs/palfs/internal/sysid"
)

const (
	stackTraceBufMax = 1 << 24
)

//nolint:gochecknoglobals
var (
	ExitCode = 0
	Version  string

	configFile = flag.String("config", "", "read settings from this env file (besides the default locations)")
	strictFile = flag.Bool("strict", false, "classify with POSIX regular-file semantics")
	noColor    = flag.Bool("no-color", false, "disable styled output")
	cpuprofile = flag.String("cpuprofile", "", "write cpu profile to file")
	memprofile = flag.String("memprofile", "", "write memory profile to this file")
)

func setupLogging(level slog.Level, noColor bool) {
	slog.SetDefault(slog.New(
		tint.NewHandler(os.Stderr, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
			NoColor:    noColor,
		}),
	))
}

func setupSignalHandlers(cancel context.CancelFunc) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	go func() {
		<-sigChan
		cancel()
	}()

	sigChan2 := make(chan os.Signal, 1)
	signal.Notify(sigChan2, syscall.SIGUSR1)
	go func() {
		for range sigChan2 {
			buf := make([]byte, stackTraceBufMax)
			stacklen := runtime.Stack(buf, true)
			os.Stderr.Write(buf[:stacklen])
		}
	}()
}

func loadSettings() configuration.Settings {
	configHandler := configuration.NewHandler(&configuration.GodotenvProvider{})

	files := []string{configuration.SystemConfigFile, configuration.LocalConfigFile}
	if configFile != nil && *configFile != "" {
		files = append(files, *configFile)
	}

	settings, err := configHandler.LoadSettings(files...)
	if err != nil {
		slog.Warn("Failed reading configuration, continuing with defaults.",
			"err", err,
		)
	}

	if strictFile != nil && *strictFile {
		settings.StrictFile = true
	}
	if noColor != nil && *noColor {
		settings.NoColor = true
	}

	return settings
}

func main() {
	defer func() {
		os.Exit(ExitCode)
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	flag.Parse()

	settings := loadSettings()
	setupLogging(settings.LogLevel, settings.NoColor)
	setupSignalHandlers(cancel)

	cpuProfiler := newCPUProfiler(ctx, cpuprofile)
	defer cpuProfiler.Stop()

	allocProfiler := newAllocProfiler(ctx, memprofile)
	defer allocProfiler.Stop()

	osProvider := &schema.OS{}
	unixProvider := &schema.Unix{}
	userProvider := &schema.User{}
	netProvider := &schema.Net{}

	classifyHandler := classify.NewHandler(unixProvider)
	metaHandler := fsmeta.NewHandler(osProvider, unixProvider, userProvider)
	linkHandler := fslink.NewHandler(osProvider, unixProvider)
	idHandler := sysid.NewHandler(osProvider, userProvider, netProvider, metaHandler)
	clockHandler := clock.NewHandler(unixProvider)
	digestHandler := digest.NewHandler(osProvider, unixProvider)

	renderer := NewRenderer(os.Stdout, settings.NoColor)

	app := NewApp(settings, classifyHandler, metaHandler, linkHandler, idHandler, clockHandler, digestHandler, renderer)

	ExitCode = app.Run(ctx, flag.Args())
}
