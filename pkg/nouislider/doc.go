// Package nouislider is a Go model of the noUiSlider widget used by the range
// slider control. It creates two handle sliders on a dom.Element, applies step
// quantisation, padding and handle ordering, formats values with two decimals
// and fires update events the way the browser library does, including the
// initial update per handle when a listener binds.
//
// Browser hosts run the real library and forward its events through Apply.
package nouislider
