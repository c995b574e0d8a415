// Package schemabind derives range slider parameters from OpenAPI schemas, so
// a form field declared as an array of two bounded numbers renders as a range
// slider without a separate configuration.
package schemabind
