package cli

import "github.com/llehouerou/tapedeck/internal/errmsg"

// opError renders as an errmsg line while keeping the cause for errors.Is.
type opError struct {
	op      errmsg.Op
	context string
	err     error
}

func (e *opError) Error() string {
	return errmsg.FormatWith(e.op, e.context, e.err)
}

func (e *opError) Unwrap() error {
	return e.err
}

func errorf(op errmsg.Op, err error) error {
	return &opError{op: op, err: err}
}

func errorWith(op errmsg.Op, context string, err error) error {
	return &opError{op: op, context: context, err: err}
}
