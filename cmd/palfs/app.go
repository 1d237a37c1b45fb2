package main

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/palfs/palfs/internal/classify"
	"github.com/palfs/palfs/internal/clock"
	"github.com/palfs/palfs/internal/configuration"
	"github.com/palfs/palfs/internal/digest"
	"github.com/palfs/palfs/internal/fslink"
	"github.com/palfs/palfs/internal/fsmeta"
	"github.com/palfs/palfs/internal/schema"
	"github.com/palfs/palfs/internal/sysid"
	"github.com/palfs/palfs/internal/util"
)

const (
	exitSuccess = 0
	exitFalse   = 1
	exitFailure = 2

	setDateLayout = "2006-01-02 15:04:05"
)

// App dispatches the command line verbs onto the query handlers.
type App struct {
	settings        configuration.Settings
	classifyHandler *classify.Handler
	metaHandler     *fsmeta.Handler
	linkHandler     *fslink.Handler
	idHandler       *sysid.Handler
	clockHandler    *clock.Handler
	digestHandler   *digest.Handler
	renderer        *Renderer
}

// NewApp returns a pointer to a new [App] with all handlers wired.
func NewApp(settings configuration.Settings,
	classifyHandler *classify.Handler,
	metaHandler *fsmeta.Handler,
	linkHandler *fslink.Handler,
	idHandler *sysid.Handler,
	clockHandler *clock.Handler,
	digestHandler *digest.Handler,
	renderer *Renderer,
) *App {
	return &App{
		settings:        settings,
		classifyHandler: classifyHandler,
		metaHandler:     metaHandler,
		linkHandler:     linkHandler,
		idHandler:       idHandler,
		clockHandler:    clockHandler,
		digestHandler:   digestHandler,
		renderer:        renderer,
	}
}

// Run executes a single command and returns the process exit code: 0 for a
// positive answer, 1 for a definite negative one, 2 when the query failed.
func (app *App) Run(ctx context.Context, args []string) int {
	if len(args) < 1 {
		app.renderer.Usage()

		return exitFailure
	}

	command, args := args[0], args[1:]

	switch command {
	case "classify":
		predicate := app.classifyHandler.IsFile
		if app.settings.StrictFile {
			predicate = app.classifyHandler.IsFileStrict
		}

		return app.runPredicate(ctx, predicate, args)
	case "isdir":
		return app.runPredicate(ctx, app.classifyHandler.IsDirectory, args)
	case "issymlink":
		return app.runPredicate(ctx, app.classifyHandler.IsSymLink, args)
	case "isexec":
		return app.runPredicate(ctx, app.classifyHandler.IsExecutable, args)
	case "inspect":
		return app.runInspect(args)
	case "owner":
		return app.runOwner(args)
	case "resolve":
		return app.runResolve(args)
	case "linkcount":
		return app.runLinkCount(args)
	case "hardlink":
		return app.runLink(app.linkHandler.CreateHardLink, args)
	case "symlink":
		return app.runLink(app.linkHandler.CreateSymLink, args)
	case "whoami":
		return app.renderQuery(app.idHandler.UserName())
	case "hostname":
		return app.renderQuery(app.idHandler.ComputerName())
	case "fqdn":
		return app.renderQuery(app.idHandler.FullyQualifiedName())
	case "procowner":
		return app.runProcOwner(args)
	case "setdate":
		return app.runSetDate(args)
	default:
		slog.Error("Unknown command.", "command", command)
		app.renderer.Usage()

		return exitFailure
	}
}

type predicateResult struct {
	path string
	ok   bool
	err  error
}

func (app *App) runPredicate(ctx context.Context, predicate func(schema.Path) (bool, error), paths []string) int {
	if len(paths) < 1 {
		slog.Error("No paths given.")

		return exitFailure
	}

	results, err := util.ConcurrentMapSlice(ctx, paths, func(path string) predicateResult {
		ok, err := predicate(schema.PathOf(path))

		return predicateResult{path: path, ok: ok, err: err}
	})
	if err != nil {
		slog.Error("Classification was interrupted.", "err", err)

		return exitFailure
	}

	exitCode := exitSuccess
	for _, r := range results {
		app.renderer.Result(r.path, r.ok, r.err)

		switch {
		case r.err != nil:
			exitCode = exitFailure
		case !r.ok && exitCode == exitSuccess:
			exitCode = exitFalse
		}
	}

	return exitCode
}

func (app *App) runInspect(args []string) int {
	if len(args) != 1 {
		slog.Error("Expected exactly one path.")

		return exitFailure
	}

	path := schema.PathOf(args[0])

	meta, err := app.metaHandler.Lstat(path)
	if err != nil {
		app.renderer.Failure(args[0], err)

		return exitFailure
	}

	owner, err := app.metaHandler.Owner(path)
	if err != nil {
		// An unresolvable uid still leaves a useful report.
		owner = strconv.FormatUint(uint64(meta.UID), 10)
	}

	var contentDigest string
	if meta.IsRegular {
		if contentDigest, err = app.digestHandler.FileDigest(path); err != nil {
			slog.Warn("Failed to digest file contents.", "path", args[0], "err", err)
		}
	}

	app.renderer.Inspect(args[0], meta, owner, contentDigest)

	return exitSuccess
}

func (app *App) runOwner(args []string) int {
	if len(args) != 1 {
		slog.Error("Expected exactly one path.")

		return exitFailure
	}

	return app.renderQuery(app.metaHandler.Owner(schema.PathOf(args[0])))
}

func (app *App) runResolve(args []string) int {
	if len(args) != 1 {
		slog.Error("Expected exactly one path.")

		return exitFailure
	}

	return app.renderQuery(app.linkHandler.FollowSymLink(schema.PathOf(args[0])))
}

func (app *App) runLinkCount(args []string) int {
	if len(args) != 1 {
		slog.Error("Expected exactly one path.")

		return exitFailure
	}

	count, err := app.linkHandler.LinkCount(schema.PathOf(args[0]))
	if err != nil {
		app.renderer.Failure(args[0], err)

		return exitFailure
	}

	return app.renderQuery(strconv.FormatUint(count, 10), nil)
}

func (app *App) runLink(create func(newlink schema.Path, target schema.Path) error, args []string) int {
	if len(args) != 2 {
		slog.Error("Expected a link path and a target path.")

		return exitFailure
	}

	if err := create(schema.PathOf(args[0]), schema.PathOf(args[1])); err != nil {
		app.renderer.Failure(args[0], err)

		return exitFailure
	}

	app.renderer.Line(fmt.Sprintf("%s -> %s", args[0], args[1]))

	return exitSuccess
}

func (app *App) runProcOwner(args []string) int {
	if len(args) != 1 {
		slog.Error("Expected exactly one pid.")

		return exitFailure
	}

	pid, err := strconv.Atoi(args[0])
	if err != nil {
		slog.Error("Not a numeric pid.", "arg", args[0])

		return exitFailure
	}

	return app.renderQuery(app.idHandler.UserFromPid(pid))
}

func (app *App) runSetDate(args []string) int {
	if len(args) != 1 {
		slog.Error("Expected one quoted date argument.", "layout", setDateLayout)

		return exitFailure
	}

	when, err := time.ParseInLocation(setDateLayout, args[0], time.Local)
	if err != nil {
		slog.Error("Failed to parse date argument.", "arg", args[0], "err", err)

		return exitFailure
	}

	info := clock.DateInfo{
		Year:   when.Year(),
		Month:  int(when.Month()),
		Day:    when.Day(),
		Hour:   when.Hour(),
		Minute: when.Minute(),
		Second: when.Second(),
	}

	if err := app.clockHandler.SetDate(info); err != nil {
		app.renderer.Failure(args[0], err)

		return exitFailure
	}

	app.renderer.Line(args[0])

	return exitSuccess
}

func (app *App) renderQuery(value string, err error) int {
	if err != nil {
		app.renderer.Failure("", err)

		return exitFailure
	}

	app.renderer.Line(value)

	return exitSuccess
}
