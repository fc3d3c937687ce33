package session

import (
	"context"
	"sync"
)

type recognition struct {
	text string
	err  error
}

// ChannelRecognizer turns pushed transcripts and errors into a Recognizer.
// Results pushed before Close are still delivered.
type ChannelRecognizer struct {
	results chan recognition
	closed  chan struct{}
	once    sync.Once
}

func NewChannelRecognizer(buffer int) *ChannelRecognizer {
	return &ChannelRecognizer{
		results: make(chan recognition, buffer),
		closed:  make(chan struct{}),
	}
}

func (c *ChannelRecognizer) PushTranscript(text string) error {
	return c.push(recognition{text: text})
}

func (c *ChannelRecognizer) PushError(err error) error {
	return c.push(recognition{err: err})
}

func (c *ChannelRecognizer) push(r recognition) error {
	select {
	case <-c.closed:
		return ErrRecognizerClosed
	default:
	}

	select {
	case c.results <- r:
		return nil
	case <-c.closed:
		return ErrRecognizerClosed
	}
}

func (c *ChannelRecognizer) Listen(ctx context.Context) (string, error) {
	select {
	case r := <-c.results:
		return r.text, r.err
	default:
	}

	select {
	case r := <-c.results:
		return r.text, r.err
	case <-c.closed:
		return "", ErrRecognizerClosed
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func (c *ChannelRecognizer) Close() {
	c.once.Do(func() { close(c.closed) })
}
