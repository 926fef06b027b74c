package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/teacherlms/internal/client/router"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	Location() string
	Navigate(ctx context.Context, location string) error
	Reload(ctx context.Context) error
	Status(ctx context.Context) error

	Login(ctx context.Context) error
	Logout(ctx context.Context) error

	Categories(ctx context.Context) error
	AddCategory(ctx context.Context, name string) error
	DeleteCategory(ctx context.Context, id string) error
	Open(ctx context.Context, id string) error

	List(ctx context.Context) error
	Filter(ctx context.Context, name string) error
	Upload(ctx context.Context, paths []string) error
	Drop(ctx context.Context, dir string) error
	Download(ctx context.Context, id string) error
	Remove(ctx context.Context, id string) error
	OpenItem(ctx context.Context, id string) error
	Select(ctx context.Context, args []string) error
	BulkDownload(ctx context.Context) error
	BulkDelete(ctx context.Context) error
}

const (
	helpPublic = "Available commands: home, login, go <path>, status, exit"

	helpSignedIn = "Available commands: dashboard, sections, mkcat <name>, rmcat <id>, cd <id>, " +
		"reload, go <path>, status, logout, exit"

	helpCategory = "Available commands: ls, filter <type>, upload <file...>, drop <dir>, get <id>, rm <id>, " +
		"open <id>, select [all|none|<id>...], getsel, rmsel, cd <id>|.., sections, mkcat, rmcat, " +
		"reload, status, logout, exit"
)

func helpFor(location string) string {
	switch router.New().Resolve(location).Name {
	case router.Category:
		return helpCategory
	case router.Dashboard:
		return helpSignedIn
	}
	return helpPublic
}

// runREPL starts a simple read–eval–print loop for the LMS client.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF, when ctx is done (even
// while waiting for input), or when the user types "exit" or "quit".
//
// The prompt shows the current location and the status from statusFn.
// Section commands (ls, upload, get, select...) act on the section page
// the client is on; the help text lists what the current page accepts.
//
// Any errors returned by command handlers are ignored here; handlers print
// and log their own errors. This keeps the REPL loop resilient and focused
// on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	lines, stop := scanLines(scanner)
	defer stop()

	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(fmt.Sprintf("lms %s %s> ", a.Location(), statusFn()))

		var line string
		select {
		case <-ctx.Done():
			return
		case l, ok := <-lines():
			if !ok {
				return
			}
			line = l
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			printlnFn(helpFor(a.Location()))

		case "home":
			_ = a.Navigate(ctx, router.HomePath)

		case "go":
			if len(args) == 0 {
				printlnFn("Usage: go <path>")
				continue
			}
			_ = a.Navigate(ctx, args[0])

		case "dashboard":
			_ = a.Navigate(ctx, router.DashboardPath)

		case "reload":
			_ = a.Reload(ctx)

		case "status":
			_ = a.Status(ctx)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "sections", "cats":
			_ = a.Categories(ctx)

		case "mkcat":
			_ = a.AddCategory(ctx, strings.Join(args, " "))

		case "rmcat":
			if len(args) == 0 {
				printlnFn("Usage: rmcat <id>")
				continue
			}
			_ = a.DeleteCategory(ctx, args[0])

		case "cd":
			id := ""
			if len(args) > 0 {
				id = args[0]
			}
			_ = a.Open(ctx, id)

		case "l", "ls":
			_ = a.List(ctx)

		case "filter":
			name := ""
			if len(args) > 0 {
				name = args[0]
			}
			_ = a.Filter(ctx, name)

		case "upload":
			_ = a.Upload(ctx, args)

		case "drop":
			if len(args) == 0 {
				printlnFn("Usage: drop <dir>")
				continue
			}
			_ = a.Drop(ctx, args[0])

		case "get":
			if len(args) == 0 {
				printlnFn("Usage: get <id>")
				continue
			}
			_ = a.Download(ctx, args[0])

		case "rm":
			if len(args) == 0 {
				printlnFn("Usage: rm <id>")
				continue
			}
			_ = a.Remove(ctx, args[0])

		case "open":
			if len(args) == 0 {
				printlnFn("Usage: open <id>")
				continue
			}
			_ = a.OpenItem(ctx, args[0])

		case "select":
			_ = a.Select(ctx, args)

		case "getsel":
			_ = a.BulkDownload(ctx)

		case "rmsel":
			_ = a.BulkDelete(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

// scanLines scans in a background goroutine so a blocked read does not hold
// the loop after ctx is done. Each call of the returned function requests
// exactly one line; nothing is read ahead, so prompts inside commands see
// the input that follows. stop ends the goroutine once it is idle; one that
// is blocked in a read ends with the process.
func scanLines(scanner *bufio.Scanner) (next func() <-chan string, stop func()) {
	want := make(chan struct{}, 1)
	out := make(chan string, 1)

	go func() {
		defer close(out)
		for range want {
			if !scanner.Scan() {
				return
			}
			out <- scanner.Text()
		}
	}()

	next = func() <-chan string {
		want <- struct{}{}
		return out
	}
	return next, func() { close(want) }
}

// statusLine is the short session hint shown in the prompt.
func (a *App) statusLine() string {
	sess, err := a.auth.Session(context.Background())
	if err != nil || !sess.Authenticated() {
		return "(signed out)"
	}
	if sess.UserEmail == "" {
		return ""
	}
	return "(" + sess.UserEmail + ")"
}

// Shell runs the interactive client until the user exits. It starts on the
// dashboard when a session is stored and on the home page otherwise.
func (a *App) Shell(ctx context.Context) error {
	fmt.Fprintln(a.out, "Teacher LMS (type 'help' for commands)")

	start := router.HomePath
	if sess, err := a.auth.Session(ctx); err == nil && sess.Authenticated() {
		start = router.DashboardPath
	}
	_ = a.Navigate(ctx, start)

	scanner := bufio.NewScanner(&lineReader{r: a.reader})
	runREPL(ctx, a, a.statusLine, scanner)
	return nil
}

var _ execIface = (*App)(nil)

// lineReader hands out at most one line per Read, so a bufio.Scanner on top
// of it never buffers input that a prompt inside a command should get.
type lineReader struct {
	r       *bufio.Reader
	pending []byte
}

func (l *lineReader) Read(p []byte) (int, error) {
	if len(l.pending) == 0 {
		line, err := l.r.ReadString('\n')
		if line == "" {
			return 0, err
		}
		l.pending = []byte(line)
	}
	n := copy(p, l.pending)
	l.pending = l.pending[n:]
	return n, nil
}
