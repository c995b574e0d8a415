// Package host models the component contract of the form platform: the
// property bag a control reads its configuration from, the output-changed
// notifier and the four lifecycle calls. Runtime is a reference host that
// drives a control through that lifecycle for servers, terminals and tests.
package host
