package errors

import (
	"errors"
	"fmt"
)

var (
	ErrConfigLoad    = errors.New("config load failed")
	ErrConnectFailed = errors.New("connect failed")
	ErrBindFailed    = errors.New("bind failed")
	ErrSpawnFailed   = errors.New("engine spawn failed")
)

func New(text string) error {
	return errors.New(text)
}

func Wrap(err error, msg string) error {
	return fmt.Errorf("%s: %w", msg, err)
}

func WrapWithBase(base error, msg string, err error) error {
	if err == nil {
		return fmt.Errorf("%w: %s", base, msg)
	}
	return fmt.Errorf("%w: %s: %v", base, msg, err)
}
