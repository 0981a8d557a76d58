package ir

import (
	"errors"
	"fmt"
)

var (
	ErrBadKind = errors.New("bad node kind")
	ErrInvalid = errors.New("invalid node")

	errNoName   = fmt.Errorf("%w: missing name", ErrInvalid)
	errSoloKids = fmt.Errorf("%w: solo tag with children", ErrInvalid)
)
