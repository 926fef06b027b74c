// Package views holds the state and behaviour of the client's screens: the
// route guard, the sidebar, the dashboard and the category page. Views talk
// to the API through the services package and never print anything; the cli
// package renders them.
//
// Views are not safe for concurrent use. The CLI drives one view at a time
// from a single goroutine.
package views

// Confirm asks the user a yes/no question.
type Confirm func(prompt string) bool
