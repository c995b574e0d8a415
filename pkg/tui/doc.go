// Package tui hosts the range slider in a terminal. The Playground drives a
// control over an in-process slider through survey prompts and prints the
// outputs after every change notification.
package tui
