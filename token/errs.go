package token

import "errors"

var (
	// ErrUnterminated is reported for quoted strings missing their
	// closing quote.
	ErrUnterminated = errors.New("unterminated quoted string")
)

// Err returns the reason an illegal token is illegal, or nil.
func (t *Token) Err() error {
	if t.Type != TIllegal {
		return nil
	}
	return ErrUnterminated
}
