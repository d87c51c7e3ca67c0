package draw

// Typed keys and mouse clicks are collected by the window loop while the
// sketch runs. A headless canvas never receives events: the key queue
// stays empty and the mouse accessors report no click.

// HasNextKeyTyped reports whether at least one typed key is waiting.
// It does not consume the key.
func (c *Canvas) HasNextKeyTyped() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.game == nil {
		return false
	}
	return c.game.Events().HasKeys()
}

// NextKeyTyped pops the most recently typed key: after pressing a, b, c
// the first call returns 'c'. Enter, Tab, Backspace, Escape and Delete
// arrive as their control runes. It fails with ErrNoPendingKeys when the
// queue is empty.
func (c *Canvas) NextKeyTyped() (rune, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.game == nil {
		return 0, ErrNoPendingKeys
	}
	r, ok := c.game.Events().PopKey()
	if !ok {
		return 0, ErrNoPendingKeys
	}
	return r, nil
}

// MousePressed reports whether a left mouse click occurred since the last
// call. Each click is observed exactly once.
func (c *Canvas) MousePressed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.game == nil {
		return false
	}
	return c.game.Events().ClickPending()
}

// MouseX returns the x position of the most recent click in user
// coordinates. It fails with ErrNoClickYet before the first click.
func (c *Canvas) MouseX() (float64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.game == nil {
		return 0, ErrNoClickYet
	}
	x, _, ok := c.game.Events().LastClick()
	if !ok {
		return 0, ErrNoClickYet
	}
	return c.vp.UserX(float64(x)), nil
}

// MouseY returns the y position of the most recent click in user
// coordinates. It fails with ErrNoClickYet before the first click.
func (c *Canvas) MouseY() (float64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.game == nil {
		return 0, ErrNoClickYet
	}
	_, y, ok := c.game.Events().LastClick()
	if !ok {
		return 0, ErrNoClickYet
	}
	return c.vp.UserY(float64(y)), nil
}
