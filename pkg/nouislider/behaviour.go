package nouislider

import "strings"

// Behaviour holds the interaction flags parsed from a behaviour string such as
// "drag-tap-smooth-steps".
type Behaviour struct {
	Drag          bool
	Tap           bool
	Fixed         bool
	Snap          bool
	Hover         bool
	Unconstrained bool
	SmoothSteps   bool
	None          bool
}

// ParseBehaviour reads the dash separated flags. Unknown tokens are ignored.
// "smooth-steps" is matched before splitting since it contains a dash itself.
func ParseBehaviour(raw string) Behaviour {
	raw = strings.ToLower(strings.TrimSpace(raw))
	var b Behaviour
	if strings.Contains(raw, "smooth-steps") {
		b.SmoothSteps = true
		raw = strings.ReplaceAll(raw, "smooth-steps", "")
	}
	for _, token := range strings.Split(raw, "-") {
		switch token {
		case "drag":
			b.Drag = true
		case "tap":
			b.Tap = true
		case "fixed":
			b.Fixed = true
		case "snap":
			b.Snap = true
			b.Tap = true
		case "hover":
			b.Hover = true
		case "unconstrained":
			b.Unconstrained = true
		case "none":
			b.None = true
		}
	}
	return b
}

// String renders the flags back into behaviour string form.
func (b Behaviour) String() string {
	var parts []string
	add := func(on bool, name string) {
		if on {
			parts = append(parts, name)
		}
	}
	add(b.Drag, "drag")
	add(b.Tap && !b.Snap, "tap")
	add(b.Fixed, "fixed")
	add(b.Snap, "snap")
	add(b.Hover, "hover")
	add(b.Unconstrained, "unconstrained")
	add(b.SmoothSteps, "smooth-steps")
	add(b.None, "none")
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "-")
}
