// Package cli provides the Teacher LMS command-line client.
//
// It wires configuration, the local session store, blob storage and the API
// services into an App, and exposes the App two ways: one-shot cobra
// subcommands for scripting and an interactive shell whose current location
// ("/dashboard", "/category/<id>") plays the part of the browser address bar.
//
// Protected pages run the auth check on every navigation. A 401 from any
// request clears the session and moves the shell to the login page.
//
// The shell is started via App.Shell(ctx), which blocks until the user exits.
// See NewRootCommand and runREPL for details.
package cli
