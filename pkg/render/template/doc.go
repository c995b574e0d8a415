// Package template defines the template renderer contract used to produce the
// slider page and client bootstrap markup. The pongo subpackage provides the
// pongo2-backed implementation.
package template
