package browser

import (
	"context"
	"errors"
	"time"
)

// the pipeline consumes page structure as opaque found/not-found
// signals, so this is the entire capability surface it may use.
// selectors are owned by the caller and are expected to rot as the
// portal's markup drifts.

var ErrElementNotFound = errors.New("element not found")

type Element interface {
	SetValue(ctx context.Context, value string) error
	Click(ctx context.Context) error
	Text(ctx context.Context) (string, error)
	// Attribute returns "" for attributes the element does not carry.
	Attribute(ctx context.Context, name string) (string, error)
	SelectLabel(ctx context.Context, label string) error
	Visible(ctx context.Context) (bool, error)
}

type Session interface {
	Navigate(ctx context.Context, url string) error
	// Find returns ErrElementNotFound without waiting when the
	// selector matches nothing.
	Find(ctx context.Context, selector string) (Element, error)
	FindAll(ctx context.Context, selector string) ([]Element, error)
	// WaitVisible polls for the selector to appear within the timeout,
	// returning ErrElementNotFound on expiry.
	WaitVisible(ctx context.Context, selector string, timeout time.Duration) (Element, error)
	PageSource(ctx context.Context) (string, error)
	Close() error
}
