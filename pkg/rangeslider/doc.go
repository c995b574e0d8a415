// Package rangeslider implements the dual-handle range slider control.
//
// Control adapts an embedded slider widget to the host lifecycle: Init builds
// a padded wrapper and a mount element inside the host container, the first
// UpdateView creates the widget from the property bag (Resolve supplies the
// fallback for every absent property) and subscribes one update listener, and
// every update event stores the moved handle's value and notifies the host.
// GetOutputs returns the two selected values at any point after Init,
// including after Destroy.
//
// The widget is reached only through Factory and Handle, so any
// implementation, including test fakes, can be plugged in with WithFactory.
package rangeslider
