package fslink_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/palfs/palfs/internal/fslink"
	"github.com/palfs/palfs/internal/palcode"
	"github.com/palfs/palfs/internal/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRealHandler() *fslink.Handler {
	return fslink.NewHandler(&schema.OS{}, &schema.Unix{})
}

// TestCreateHardLink tests hard link creation and its error contract.
func TestCreateHardLink(t *testing.T) {
	t.Parallel()

	handler := newRealHandler()

	t.Run("Success_LinkCreated", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		target := filepath.Join(dir, "target.bin")
		require.NoError(t, os.WriteFile(target, []byte("payload"), 0o644))

		link := filepath.Join(dir, "hardlink")
		require.NoError(t, handler.CreateHardLink(schema.PathOf(link), schema.PathOf(target)))

		count, err := handler.LinkCount(schema.PathOf(target))
		require.NoError(t, err)
		assert.EqualValues(t, 2, count, "expected the target to have two hard links")
	})

	t.Run("Fail_TargetMissing", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		err := handler.CreateHardLink(schema.PathOf(filepath.Join(dir, "new")), schema.PathOf(filepath.Join(dir, "gone")))
		assert.Equal(t, palcode.FileNotFound, palcode.CodeOf(err))
	})

	t.Run("Fail_LinkExists", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		target := filepath.Join(dir, "target.bin")
		require.NoError(t, os.WriteFile(target, []byte("payload"), 0o644))

		occupied := filepath.Join(dir, "occupied")
		require.NoError(t, os.WriteFile(occupied, []byte("other"), 0o644))

		err := handler.CreateHardLink(schema.PathOf(occupied), schema.PathOf(target))
		assert.Equal(t, palcode.FileExists, palcode.CodeOf(err))
	})

	t.Run("Fail_AbsentArguments", func(t *testing.T) {
		t.Parallel()

		err := handler.CreateHardLink(schema.Path{}, schema.PathOf("/tmp/whatever"))
		assert.Equal(t, palcode.InvalidParameter, palcode.CodeOf(err))

		err = handler.CreateHardLink(schema.PathOf("/tmp/whatever"), schema.Path{})
		assert.Equal(t, palcode.InvalidParameter, palcode.CodeOf(err))
	})
}

// TestCreateSymLink tests symbolic link creation.
func TestCreateSymLink(t *testing.T) {
	t.Parallel()

	handler := newRealHandler()

	t.Run("Success_LinkCreated", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		target := filepath.Join(dir, "target.bin")
		require.NoError(t, os.WriteFile(target, []byte("payload"), 0o644))

		link := filepath.Join(dir, "symlink")
		require.NoError(t, handler.CreateSymLink(schema.PathOf(link), schema.PathOf(target)))

		resolved, err := os.Readlink(link)
		require.NoError(t, err)
		assert.Equal(t, target, resolved)
	})

	t.Run("Success_DanglingTargetAllowed", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		link := filepath.Join(dir, "dangling")
		require.NoError(t, handler.CreateSymLink(schema.PathOf(link), schema.PathOf(filepath.Join(dir, "gone"))),
			"symlink creation must not require the target to exist")
	})

	t.Run("Fail_LinkExists", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		occupied := filepath.Join(dir, "occupied")
		require.NoError(t, os.WriteFile(occupied, []byte("other"), 0o644))

		err := handler.CreateSymLink(schema.PathOf(occupied), schema.PathOf("/anywhere"))
		assert.Equal(t, palcode.FileExists, palcode.CodeOf(err))
	})

	t.Run("Fail_AbsentArguments", func(t *testing.T) {
		t.Parallel()

		err := handler.CreateSymLink(schema.Path{}, schema.Path{})
		assert.Equal(t, palcode.InvalidParameter, palcode.CodeOf(err))
	})
}

// TestFollowSymLink tests symbolic link resolution.
func TestFollowSymLink(t *testing.T) {
	t.Parallel()

	handler := newRealHandler()

	t.Run("Success_ResolvesToTarget", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		target := filepath.Join(dir, "target.bin")
		require.NoError(t, os.WriteFile(target, []byte("payload"), 0o644))

		link := filepath.Join(dir, "link")
		require.NoError(t, os.Symlink(target, link))

		resolved, err := handler.FollowSymLink(schema.PathOf(link))
		require.NoError(t, err)

		// The canonical target may differ in prefix on systems where the
		// temp dir is itself behind a symlink, so compare canonical forms.
		wantTarget, err := filepath.EvalSymlinks(target)
		require.NoError(t, err)
		assert.Equal(t, wantTarget, resolved)
	})

	t.Run("Success_DanglingYieldsLinkText", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		gone := filepath.Join(dir, "gone")
		link := filepath.Join(dir, "dangling")
		require.NoError(t, os.Symlink(gone, link))

		resolved, err := handler.FollowSymLink(schema.PathOf(link))
		require.NoError(t, err)
		assert.Equal(t, gone, resolved, "expected the raw link text for a dangling link")
	})

	t.Run("Fail_NotASymlink", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "regular.bin")
		require.NoError(t, os.WriteFile(path, []byte("payload"), 0o644))

		resolved, err := handler.FollowSymLink(schema.PathOf(path))
		assert.Empty(t, resolved)
		assert.Equal(t, palcode.InvalidName, palcode.CodeOf(err))
	})

	t.Run("Fail_NotExisting", func(t *testing.T) {
		t.Parallel()

		resolved, err := handler.FollowSymLink(schema.PathOf("SomeMadeUpFileNameThatDoesNotExist"))
		assert.Empty(t, resolved)
		assert.Equal(t, palcode.FileNotFound, palcode.CodeOf(err))
	})

	t.Run("Fail_AbsentPath", func(t *testing.T) {
		t.Parallel()

		resolved, err := handler.FollowSymLink(schema.Path{})
		assert.Empty(t, resolved)
		assert.Equal(t, palcode.InvalidParameter, palcode.CodeOf(err))
	})
}

// TestLinkCount tests the hard link counter.
func TestLinkCount(t *testing.T) {
	t.Parallel()

	handler := newRealHandler()

	t.Run("Success_SingleLink", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "regular.bin")
		require.NoError(t, os.WriteFile(path, []byte("payload"), 0o644))

		count, err := handler.LinkCount(schema.PathOf(path))
		require.NoError(t, err)
		assert.EqualValues(t, 1, count)
	})

	t.Run("Fail_NotExisting", func(t *testing.T) {
		t.Parallel()

		count, err := handler.LinkCount(schema.PathOf("SomeMadeUpFileNameThatDoesNotExist"))
		assert.Zero(t, count)
		assert.Equal(t, palcode.FileNotFound, palcode.CodeOf(err))
	})

	t.Run("Fail_AbsentPath", func(t *testing.T) {
		t.Parallel()

		count, err := handler.LinkCount(schema.Path{})
		assert.Zero(t, count)
		assert.Equal(t, palcode.InvalidParameter, palcode.CodeOf(err))
	})
}
