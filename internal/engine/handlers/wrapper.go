package handlers

import (
	"encoding/json"
	"fmt"

	"github.com/dirkkok101/roguelike-sub009/pkg/api"
)

// TypedHandlerFunc is a "clean" handler working on an already decoded
// payload struct T.
type TypedHandlerFunc[T any] func(ctx Context, payload T) (Result, error)

// EmptyHandlerFunc is a handler that needs no payload (WAIT, INIT).
type EmptyHandlerFunc func(ctx Context) (Result, error)

// WithPayload turns a typed handler into a Command. Unmarshal and
// validation happen in one place; the Check half runs the exact same
// decode path so "would the handler accept this" can be answered without
// executing it.
func WithPayload[T any](handler TypedHandlerFunc[T]) Command {
	return Command{
		Handle: func(ctx Context, raw json.RawMessage) (Result, error) {
			payload, err := decode[T](raw)
			if err != nil {
				return Result{}, err
			}
			return handler(ctx, payload)
		},
		Check: func(raw json.RawMessage) error {
			_, err := decode[T](raw)
			return err
		},
	}
}

// WithEmptyPayload wraps a command that ignores its payload.
func WithEmptyPayload(handler EmptyHandlerFunc) Command {
	return Command{
		Handle: func(ctx Context, _ json.RawMessage) (Result, error) {
			return handler(ctx)
		},
		Check: func(_ json.RawMessage) error { return nil },
	}
}

func decode[T any](raw json.RawMessage) (T, error) {
	var payload T
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &payload); err != nil {
			return payload, fmt.Errorf("invalid payload format: %w", err)
		}
	}
	if v, ok := any(payload).(api.Validator); ok {
		if err := v.Validate(); err != nil {
			return payload, fmt.Errorf("validation failed: %w", err)
		}
	}
	return payload, nil
}
