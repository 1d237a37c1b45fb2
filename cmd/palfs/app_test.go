package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/palfs/palfs/internal/classify"
	"github.com/palfs/palfs/internal/clock"
	"github.com/palfs/palfs/internal/configuration"
	"github.com/palfs/palfs/internal/digest"
	"github.com/palfs/palfs/internal/fslink"
	"github.com/palfs/palfs/internal/fsmeta"
	"github.com/palfs/palfs/internal/schema"
	"github.com/palfs/palfs/internal/sysid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(settings configuration.Settings, out *bytes.Buffer) *App {
	osProvider := &schema.OS{}
	unixProvider := &schema.Unix{}
	userProvider := &schema.User{}
	netProvider := &schema.Net{}

	metaHandler := fsmeta.NewHandler(osProvider, unixProvider, userProvider)

	return NewApp(settings,
		classify.NewHandler(unixProvider),
		metaHandler,
		fslink.NewHandler(osProvider, unixProvider),
		sysid.NewHandler(osProvider, userProvider, netProvider, metaHandler),
		clock.NewHandler(unixProvider),
		digest.NewHandler(osProvider, unixProvider),
		NewRenderer(out, true),
	)
}

// TestRunDispatch tests verb dispatch and exit code semantics.
func TestRunDispatch(t *testing.T) {
	t.Parallel()

	t.Run("Fail_NoCommand", func(t *testing.T) {
		t.Parallel()

		var out bytes.Buffer
		app := newTestApp(configuration.Settings{}, &out)

		assert.Equal(t, exitFailure, app.Run(context.Background(), nil))
		assert.Contains(t, out.String(), "usage:", "expected the synopsis on missing command")
	})

	t.Run("Fail_UnknownCommand", func(t *testing.T) {
		t.Parallel()

		var out bytes.Buffer
		app := newTestApp(configuration.Settings{}, &out)

		assert.Equal(t, exitFailure, app.Run(context.Background(), []string{"defragment"}))
	})
}

// TestRunClassify tests the classify verb against the real filesystem.
func TestRunClassify(t *testing.T) {
	t.Parallel()

	t.Run("Success_ExistingFile", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "regular.bin")
		require.NoError(t, os.WriteFile(path, []byte("payload"), 0o644))

		var out bytes.Buffer
		app := newTestApp(configuration.Settings{}, &out)

		assert.Equal(t, exitSuccess, app.Run(context.Background(), []string{"classify", path}))
		assert.Contains(t, out.String(), "true")
	})

	t.Run("Success_RootDirClassifiesTrue", func(t *testing.T) {
		t.Parallel()

		var out bytes.Buffer
		app := newTestApp(configuration.Settings{}, &out)

		assert.Equal(t, exitSuccess, app.Run(context.Background(), []string{"classify", "/"}))
	})

	t.Run("Fail_RootDirUnderStrictSettings", func(t *testing.T) {
		t.Parallel()

		var out bytes.Buffer
		app := newTestApp(configuration.Settings{StrictFile: true}, &out)

		assert.Equal(t, exitFalse, app.Run(context.Background(), []string{"classify", "/"}))
		assert.Contains(t, out.String(), "false")
	})

	t.Run("Fail_MissingFileCarriesCode", func(t *testing.T) {
		t.Parallel()

		var out bytes.Buffer
		app := newTestApp(configuration.Settings{}, &out)

		assert.Equal(t, exitFailure, app.Run(context.Background(), []string{"classify", "SomeMadeUpFileNameThatDoesNotExist"}))
		assert.Contains(t, out.String(), "ERROR_FILE_NOT_FOUND", "expected the stable code in the report")
	})

	t.Run("Fail_NoPaths", func(t *testing.T) {
		t.Parallel()

		var out bytes.Buffer
		app := newTestApp(configuration.Settings{}, &out)

		assert.Equal(t, exitFailure, app.Run(context.Background(), []string{"classify"}))
	})
}

// TestRunInspect tests the inspect verb output.
func TestRunInspect(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "regular.bin")
	require.NoError(t, os.WriteFile(path, []byte("payload"), 0o644))

	var out bytes.Buffer
	app := newTestApp(configuration.Settings{}, &out)

	assert.Equal(t, exitSuccess, app.Run(context.Background(), []string{"inspect", path}))

	report := out.String()
	assert.Contains(t, report, "regular file")
	assert.Contains(t, report, "7 bytes")
	assert.Contains(t, report, "blake3", "expected a content digest for a regular file")
}

// TestRunResolve tests the resolve verb.
func TestRunResolve(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	target := filepath.Join(dir, "target.bin")
	require.NoError(t, os.WriteFile(target, []byte("payload"), 0o644))

	link := filepath.Join(dir, "link")
	require.NoError(t, os.Symlink(target, link))

	var out bytes.Buffer
	app := newTestApp(configuration.Settings{}, &out)

	assert.Equal(t, exitSuccess, app.Run(context.Background(), []string{"resolve", link}))
	assert.Contains(t, out.String(), "target.bin")
}

// TestRunLinkVerbs tests hard link creation and the link counter.
func TestRunLinkVerbs(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	target := filepath.Join(dir, "target.bin")
	require.NoError(t, os.WriteFile(target, []byte("payload"), 0o644))

	var out bytes.Buffer
	app := newTestApp(configuration.Settings{}, &out)

	link := filepath.Join(dir, "hardlink")
	assert.Equal(t, exitSuccess, app.Run(context.Background(), []string{"hardlink", link, target}))

	out.Reset()
	assert.Equal(t, exitSuccess, app.Run(context.Background(), []string{"linkcount", target}))
	assert.Contains(t, out.String(), "2")
}

// TestRunIdentityVerbs tests the identity verbs.
func TestRunIdentityVerbs(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	app := newTestApp(configuration.Settings{}, &out)

	assert.Equal(t, exitSuccess, app.Run(context.Background(), []string{"whoami"}))
	assert.NotEmpty(t, out.String())

	out.Reset()
	assert.Equal(t, exitSuccess, app.Run(context.Background(), []string{"hostname"}))
	assert.NotEmpty(t, out.String())

	out.Reset()
	assert.Equal(t, exitFailure, app.Run(context.Background(), []string{"procowner", "not-a-pid"}))
}

// TestRunSetDate tests argument validation of the setdate verb without
// touching the system clock.
func TestRunSetDate(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	app := newTestApp(configuration.Settings{}, &out)

	assert.Equal(t, exitFailure, app.Run(context.Background(), []string{"setdate", "yesterday-ish"}))
	assert.Equal(t, exitFailure, app.Run(context.Background(), []string{"setdate"}))
}
