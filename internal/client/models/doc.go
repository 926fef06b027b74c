// Package models defines the client-side data model of the LMS: the session,
// categories, content items and the statistics derived from them.
package models
