// Package manifest loads control manifests: the JSON or YAML document that
// declares a control's identity, its input and output properties with their
// types and defaults, and the browser assets it depends on.
//
// Manifest.Parameters turns a manifest plus caller overrides into the host
// property bag a control is initialised with. Default returns the embedded
// manifest of the range slider under data/range_slider.yaml.
package manifest
