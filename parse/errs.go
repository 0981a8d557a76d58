package parse

import (
	"errors"
	"fmt"

	"github.com/signadot/mlfmt/token"
)

var (
	ErrParse = errors.New("parse error")
)

// PosError is implemented by all parse errors.
type PosError interface {
	error
	Position() token.Pos
}

// ErrorPos returns the position of the first parse error in err's tree.
func ErrorPos(err error) (token.Pos, bool) {
	var pe PosError
	if errors.As(err, &pe) {
		return pe.Position(), true
	}
	return token.Pos{}, false
}

type UnexpectedTokenError struct {
	Expected token.TokenType
	Found    token.Token
}

func (e *UnexpectedTokenError) Error() string {
	return fmt.Sprintf("unexpected token (expected: %s, found: %s) at %s", e.Expected, e.Found.String(), e.Found.Pos)
}

func (e *UnexpectedTokenError) Position() token.Pos {
	return e.Found.Pos
}

func (e *UnexpectedTokenError) Unwrap() []error {
	if err := e.Found.Err(); err != nil {
		return []error{ErrParse, err}
	}
	return []error{ErrParse}
}

type UnexpectedTextError struct {
	Expected string
	Found    string
	Pos      token.Pos
}

func (e *UnexpectedTextError) Error() string {
	return fmt.Sprintf("unexpected text (expected: %q, found: %q) at %s", e.Expected, e.Found, e.Pos)
}

func (e *UnexpectedTextError) Position() token.Pos {
	return e.Pos
}

func (e *UnexpectedTextError) Unwrap() error {
	return ErrParse
}

// TagMismatchError is returned when a closing tag does not close the
// tag opened before it.
type TagMismatchError struct {
	Open     string
	Close    string
	OpenPos  token.Pos
	ClosePos token.Pos
}

func (e *TagMismatchError) Error() string {
	return fmt.Sprintf("opening and closing tag names mismatch (open: %q at %s, close: %q at %s)",
		e.Open, e.OpenPos, e.Close, e.ClosePos)
}

func (e *TagMismatchError) Position() token.Pos {
	return e.ClosePos
}

func (e *TagMismatchError) Unwrap() error {
	return ErrParse
}

type DepthError struct {
	Max int
	Pos token.Pos
}

func (e *DepthError) Error() string {
	return fmt.Sprintf("tags nested deeper than %d at %s", e.Max, e.Pos)
}

func (e *DepthError) Position() token.Pos {
	return e.Pos
}

func (e *DepthError) Unwrap() error {
	return ErrParse
}

// UnknownError reports a parser state which should be unreachable.
type UnknownError struct {
	Cause any
	Pos   token.Pos
}

func (e *UnknownError) Error() string {
	return fmt.Sprintf("unknown parse error at %s: %v", e.Pos, e.Cause)
}

func (e *UnknownError) Position() token.Pos {
	return e.Pos
}

func (e *UnknownError) Unwrap() error {
	return ErrParse
}
