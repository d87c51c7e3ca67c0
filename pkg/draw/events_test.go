package draw

import (
	"errors"
	"testing"
	"time"
)

// A canvas constructed directly has no window, so every input accessor
// reports the empty state rather than failing.

func TestHasNextKeyTypedHeadless(t *testing.T) {
	c := NewCanvas(&Options{Logger: NopLogger()})
	if c.HasNextKeyTyped() {
		t.Error("headless canvas reported a pending key")
	}
}

func TestNextKeyTypedHeadless(t *testing.T) {
	c := NewCanvas(&Options{Logger: NopLogger()})
	_, err := c.NextKeyTyped()
	if !errors.Is(err, ErrNoPendingKeys) {
		t.Errorf("NextKeyTyped error = %v, want ErrNoPendingKeys", err)
	}
}

func TestMousePressedHeadless(t *testing.T) {
	c := NewCanvas(&Options{Logger: NopLogger()})
	if c.MousePressed() {
		t.Error("headless canvas reported a mouse press")
	}
}

func TestMousePositionHeadless(t *testing.T) {
	c := NewCanvas(&Options{Logger: NopLogger()})

	if _, err := c.MouseX(); !errors.Is(err, ErrNoClickYet) {
		t.Errorf("MouseX error = %v, want ErrNoClickYet", err)
	}
	if _, err := c.MouseY(); !errors.Is(err, ErrNoClickYet) {
		t.Errorf("MouseY error = %v, want ErrNoClickYet", err)
	}
}

func TestShowHeadless(t *testing.T) {
	c := NewCanvas(&Options{Logger: NopLogger()})

	if err := c.Show(10 * time.Millisecond); !errors.Is(err, ErrNoWindow) {
		t.Errorf("Show error = %v, want ErrNoWindow", err)
	}
	if err := c.ShowForever(); !errors.Is(err, ErrNoWindow) {
		t.Errorf("ShowForever error = %v, want ErrNoWindow", err)
	}
}

func TestNextKeyTypedNewestFirst(t *testing.T) {
	c, g := windowedCanvas(t)

	for _, r := range []rune{'a', 'b', 'c'} {
		g.Events().PushKey(r)
	}

	if !c.HasNextKeyTyped() {
		t.Fatal("HasNextKeyTyped() = false with pending keys")
	}
	for _, want := range []rune{'c', 'b', 'a'} {
		r, err := c.NextKeyTyped()
		if err != nil {
			t.Fatalf("NextKeyTyped failed: %v", err)
		}
		if r != want {
			t.Errorf("NextKeyTyped() = %q, want %q", r, want)
		}
	}
	if _, err := c.NextKeyTyped(); !errors.Is(err, ErrNoPendingKeys) {
		t.Errorf("drained NextKeyTyped error = %v, want ErrNoPendingKeys", err)
	}
}

func TestMouseClickMapsToUserCoordinates(t *testing.T) {
	c, g := windowedCanvas(t)

	// A click at pixel (128, 128) on the default 512x512 canvas with unit
	// scales: x maps to 0.25 and the inverted y to 0.75.
	g.Events().PushClick(128, 128)

	if !c.MousePressed() {
		t.Fatal("MousePressed() = false after a click")
	}
	if c.MousePressed() {
		t.Error("MousePressed() reported the same click twice")
	}

	x, err := c.MouseX()
	if err != nil {
		t.Fatalf("MouseX failed: %v", err)
	}
	if x != 0.25 {
		t.Errorf("MouseX() = %v, want 0.25", x)
	}
	y, err := c.MouseY()
	if err != nil {
		t.Fatalf("MouseY failed: %v", err)
	}
	if y != 0.75 {
		t.Errorf("MouseY() = %v, want 0.75", y)
	}
}
