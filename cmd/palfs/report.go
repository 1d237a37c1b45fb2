package main

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/palfs/palfs/internal/fsmeta"
	"github.com/palfs/palfs/internal/palcode"
	"golang.org/x/sys/unix"
)

// Renderer writes the command results, styled unless colors are disabled.
type Renderer struct {
	out io.Writer

	keyStyle  lipgloss.Style
	okStyle   lipgloss.Style
	failStyle lipgloss.Style
	dimStyle  lipgloss.Style
}

// NewRenderer returns a pointer to a new [Renderer] writing to out.
func NewRenderer(out io.Writer, noColor bool) *Renderer {
	r := &Renderer{out: out}

	if noColor {
		r.keyStyle = lipgloss.NewStyle()
		r.okStyle = lipgloss.NewStyle()
		r.failStyle = lipgloss.NewStyle()
		r.dimStyle = lipgloss.NewStyle()

		return r
	}

	r.keyStyle = lipgloss.NewStyle().Bold(true)
	r.okStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	r.failStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	r.dimStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	return r
}

// Usage prints the command synopsis.
func (r *Renderer) Usage() {
	fmt.Fprintln(r.out, "usage: palfs [flags] <command> [args]")
	fmt.Fprintln(r.out, "")
	fmt.Fprintln(r.out, "commands:")
	fmt.Fprintln(r.out, "  classify <path>...        report whether each path is a file")
	fmt.Fprintln(r.out, "  isdir <path>...           report whether each path is a directory")
	fmt.Fprintln(r.out, "  issymlink <path>...       report whether each path is a symbolic link")
	fmt.Fprintln(r.out, "  isexec <path>...          report whether each path is executable")
	fmt.Fprintln(r.out, "  inspect <path>            print full metadata of a path")
	fmt.Fprintln(r.out, "  owner <path>              print the owning user of a path")
	fmt.Fprintln(r.out, "  resolve <path>            print the target of a symbolic link")
	fmt.Fprintln(r.out, "  linkcount <path>          print the hard link count of a path")
	fmt.Fprintln(r.out, "  hardlink <new> <target>   create a hard link")
	fmt.Fprintln(r.out, "  symlink <new> <target>    create a symbolic link")
	fmt.Fprintln(r.out, "  whoami | hostname | fqdn  print process and host identity")
	fmt.Fprintln(r.out, "  procowner <pid>           print the owning user of a process")
	fmt.Fprintln(r.out, "  setdate \"YYYY-MM-DD HH:MM:SS\"  set the system clock (superuser)")
}

// Line prints a single plain result line.
func (r *Renderer) Line(value string) {
	fmt.Fprintln(r.out, value)
}

// Result prints a per-path predicate outcome, with the stable numeric code
// attached when the query failed.
func (r *Renderer) Result(path string, ok bool, err error) {
	switch {
	case err != nil:
		code := palcode.CodeOf(err)
		fmt.Fprintf(r.out, "%s: %s %s\n",
			path,
			r.failStyle.Render("error"),
			r.dimStyle.Render(fmt.Sprintf("(%s = %d)", code, uint32(code))),
		)
	case ok:
		fmt.Fprintf(r.out, "%s: %s\n", path, r.okStyle.Render("true"))
	default:
		fmt.Fprintf(r.out, "%s: %s\n", path, r.failStyle.Render("false"))
	}
}

// Failure prints a failed query with its stable numeric code.
func (r *Renderer) Failure(subject string, err error) {
	code := palcode.CodeOf(err)

	if subject != "" {
		fmt.Fprintf(r.out, "%s: ", subject)
	}

	fmt.Fprintf(r.out, "%s %s\n",
		r.failStyle.Render(err.Error()),
		r.dimStyle.Render(fmt.Sprintf("(%s = %d)", code, uint32(code))),
	)
}

// Inspect prints the full metadata report of a single path.
func (r *Renderer) Inspect(path string, meta *fsmeta.Metadata, owner string, contentDigest string) {
	r.kv("path", path)
	r.kv("type", describeType(meta))
	r.kv("size", fmt.Sprintf("%s (%d bytes)", humanize.IBytes(meta.Size), meta.Size))
	r.kv("perms", fmt.Sprintf("%04o", meta.Perms))
	r.kv("owner", fmt.Sprintf("%s (uid %d, gid %d)", owner, meta.UID, meta.GID))
	r.kv("inode", strconv.FormatUint(meta.Inode, 10))
	r.kv("links", strconv.FormatUint(meta.Nlink, 10))
	r.kv("accessed", describeTime(meta.AccessedAt))
	r.kv("modified", describeTime(meta.ModifiedAt))

	if meta.IsSymlink {
		r.kv("target", meta.SymlinkTo)
	}

	if contentDigest != "" {
		r.kv("blake3", contentDigest)
	}
}

func (r *Renderer) kv(key, value string) {
	fmt.Fprintf(r.out, "%s %s\n", r.keyStyle.Render(fmt.Sprintf("%-9s", key)), value)
}

func describeType(meta *fsmeta.Metadata) string {
	switch {
	case meta.IsDir:
		return "directory"
	case meta.IsSymlink:
		return "symlink"
	case meta.IsRegular:
		return "regular file"
	default:
		return "special file"
	}
}

func describeTime(ts unix.Timespec) string {
	when := time.Unix(int64(ts.Sec), int64(ts.Nsec))

	return fmt.Sprintf("%s (%s)", when.Format(time.RFC3339), humanize.Time(when))
}
