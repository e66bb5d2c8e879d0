package store

// Channel is the realtime-subscription stub. Handlers can be attached and
// removed, but no events are ever delivered: the mock data layer is polled,
// not pushed.
type Channel struct {
	name string
}

// Channel returns a named subscription handle.
func (c *Client) Channel(name string) *Channel {
	return &Channel{name: name}
}

// On registers a handler for an event type. The handler is never invoked.
func (ch *Channel) On(event string, handler func(Row)) *Channel {
	return ch
}

// Subscribe activates the channel. No-op.
func (ch *Channel) Subscribe() *Channel {
	return ch
}

// Unsubscribe tears the channel down. No-op.
func (ch *Channel) Unsubscribe() error {
	return nil
}
