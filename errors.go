package pricecodec

import (
	"errors"
	"fmt"
	"strings"

	"github.com/holiman/uint256"
)

var (
	INVALID_TICK       = errors.New("INVALID_TICK")
	INVALID_SQRT_RATIO = errors.New("INVALID_SQRT_RATIO")
	DIVISION_BY_ZERO   = errors.New("DIVISION_BY_ZERO")
	OVERFLOW           = errors.New("OVERFLOW")
	UNDERFLOW          = errors.New("UNDERFLOW")
	INVALID_DECIMALS   = errors.New("INVALID_DECIMALS")
	INVALID_BOUNDS     = errors.New("INVALID_BOUNDS")
)

// CodecError reports a rejected input. Kind is one of the package sentinels,
// Values holds the offending operands rendered in base 10.
type CodecError struct {
	Kind   error
	Op     string
	Values []string
}

func (e *CodecError) Error() string {
	return fmt.Sprintf("%s: %s (%s)", e.Op, e.Kind, strings.Join(e.Values, ", "))
}

func (e *CodecError) Unwrap() error {
	return e.Kind
}

func newError(kind error, op string, values ...*uint256.Int) *CodecError {
	vs := make([]string, 0, len(values))
	for _, v := range values {
		vs = append(vs, dec(v))
	}
	return &CodecError{Kind: kind, Op: op, Values: vs}
}

func dec(x *uint256.Int) string {
	if x == nil {
		return "<nil>"
	}
	return x.Dec()
}

func tickError(op string, tick int) *CodecError {
	return &CodecError{Kind: INVALID_TICK, Op: op, Values: []string{fmt.Sprint(tick)}}
}
