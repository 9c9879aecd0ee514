package placeholder

import (
	"errors"
	"log/slog"

	"github.com/df-mc/dragonfly/server/item"
	"github.com/google/uuid"
)

// Placeholder is a named dynamic value that is resolved on demand, usually while
// a message or command is being rendered for a player.
type Placeholder interface {
	// Name returns the name the placeholder is invoked by. Names are matched
	// case-insensitively.
	Name() string
	// Resolve computes the value of the placeholder for the Context passed. Only
	// problems with the arguments should be reported as errors: missing game
	// state is expressed through the returned Value.
	Resolve(ctx Context, args Args) (Value, error)
}

// Func adapts a plain function to the Placeholder interface.
type Func struct {
	N string
	F func(ctx Context, args Args) (Value, error)
}

// Name ...
func (f Func) Name() string { return f.N }

// Resolve ...
func (f Func) Resolve(ctx Context, args Args) (Value, error) {
	if f.F == nil {
		return Null, nil
	}
	return f.F(ctx, args)
}

// Holder is an entity that may hold items in its hands. *player.Player
// implements Holder.
type Holder interface {
	HeldItems() (mainHand, offHand item.Stack)
}

// Context holds the state a placeholder is resolved against. The zero Context is
// valid and describes an invocation without a player, such as one from the
// console.
type Context struct {
	// Player is the player the placeholder is resolved for. It is nil if the
	// invocation has no player attached.
	Player Holder
	// Log is used for diagnostics. If nil, slog.Default() is used.
	Log *slog.Logger
}

type namedHolder interface {
	Name() string
}

type identifiedHolder interface {
	UUID() uuid.UUID
}

// Logger returns the logger of the Context, scoped to the player if one is set.
func (ctx Context) Logger() *slog.Logger {
	log := ctx.Log
	if log == nil {
		log = slog.Default()
	}
	if ctx.Player == nil {
		return log
	}
	if n, ok := ctx.Player.(namedHolder); ok {
		log = log.With("player", n.Name())
	}
	if id, ok := ctx.Player.(identifiedHolder); ok && id.UUID() != uuid.Nil {
		log = log.With("uuid", id.UUID().String())
	}
	return log
}

var (
	// ErrInvalidArgument is wrapped by every error reporting that a placeholder
	// was invoked with missing or mistyped arguments.
	ErrInvalidArgument = errors.New("invalid parameter")
	// ErrNotFound is returned when resolving a placeholder that is not
	// registered.
	ErrNotFound = errors.New("placeholder not found")
	// ErrNameConflict is returned when registering a placeholder whose
	// case-insensitive name is already taken.
	ErrNameConflict = errors.New("placeholder name already registered")
	// ErrInvalidName is returned when registering a placeholder with an empty
	// name.
	ErrInvalidName = errors.New("placeholder name must not be empty")
	// ErrDisabled is returned when resolving a placeholder that was disabled
	// in the configuration.
	ErrDisabled = errors.New("placeholder disabled")
)

// ArgumentError is returned by placeholders invoked with invalid arguments. Its
// message is meant to be shown to whoever wrote the invocation.
type ArgumentError struct {
	Msg string
}

// Error ...
func (e *ArgumentError) Error() string {
	if e.Msg == "" {
		return "Invalid parameter!"
	}
	return e.Msg
}

// Unwrap returns ErrInvalidArgument.
func (e *ArgumentError) Unwrap() error {
	return ErrInvalidArgument
}

// InvalidArgument returns an ArgumentError with the message passed.
func InvalidArgument(msg string) error {
	return &ArgumentError{Msg: msg}
}
