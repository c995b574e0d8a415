package nouislider

import "testing"

func TestParseBehaviour(t *testing.T) {
	b := ParseBehaviour("drag-tap-smooth-steps")
	if !b.Drag || !b.Tap || !b.SmoothSteps || b.Fixed {
		t.Fatalf("unexpected flags: %#v", b)
	}
	if got := b.String(); got != "drag-tap-smooth-steps" {
		t.Fatalf("unexpected string form: %q", got)
	}

	snap := ParseBehaviour("snap")
	if !snap.Snap || !snap.Tap {
		t.Fatalf("snap implies tap: %#v", snap)
	}
	if ParseBehaviour("").String() != "none" {
		t.Fatalf("expected empty behaviour to render as none")
	}
}
