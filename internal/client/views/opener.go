package views

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
)

// Opener hands a URL to something that can show it.
type Opener interface {
	Open(ctx context.Context, url string) error
}

// OpenerFunc adapts a function to Opener.
type OpenerFunc func(ctx context.Context, url string) error

func (f OpenerFunc) Open(ctx context.Context, url string) error { return f(ctx, url) }

// commandFn builds the launcher process. Tests replace it.
var commandFn = exec.Command

// SystemOpener uses the platform's default URL handler. The handler is
// started detached: it outlives ctx and the client does not wait for it.
type SystemOpener struct{}

func (SystemOpener) Open(ctx context.Context, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	name, args := openCommand(runtime.GOOS, url)
	cmd := commandFn(name, args...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start %s: %w", name, err)
	}
	// reaped in the background; the caller never waits on the handler
	go func() { _ = cmd.Wait() }()
	return nil
}

func openCommand(goos, url string) (string, []string) {
	switch goos {
	case "darwin":
		return "open", []string{url}
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", url}
	}
	return "xdg-open", []string{url}
}
