package transport

import (
	"time"
)

type ConnOptions struct {
	Address string
	Timeout time.Duration
}

type Option func(*ConnOptions)

func WithAddress(address string) Option {
	return func(o *ConnOptions) {
		o.Address = address
	}
}

func WithTimeout(timeout time.Duration) Option {
	return func(o *ConnOptions) {
		o.Timeout = timeout
	}
}

func DefaultOptions() ConnOptions {
	return ConnOptions{
		Timeout: 30 * time.Second,
	}
}

func ApplyOptions(opts ...Option) ConnOptions {
	options := DefaultOptions()
	for _, opt := range opts {
		opt(&options)
	}
	return options
}
