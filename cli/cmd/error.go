package cmd

import (
	"log/slog"
	"slices"
)

// Error is a command failure that carries an optional cause and
// structured attributes for logging.
type Error struct {
	msg   string
	err   error
	attrs []slog.Attr
}

func NewError(msg string) *Error {
	return &Error{msg: msg}
}

// Error renders "msg: cause", omitting whichever part is unset.
func (e *Error) Error() string {
	if e.msg == "" {
		if e.err == nil {
			return ""
		}

		return e.err.Error()
	}

	if e.err == nil {
		return e.msg
	}

	return e.msg + ": " + e.err.Error()
}

func (e *Error) Unwrap() error { return e.err }

// Wrap returns a copy of e with err recorded as its cause.
// The cause participates in errors.Is and errors.As chains.
func (e *Error) Wrap(err error) *Error {
	return &Error{
		msg:   e.msg,
		err:   err,
		attrs: e.attrs,
	}
}

// With returns a copy of e with the given attributes appended.
func (e *Error) With(attrs ...slog.Attr) *Error {
	return &Error{
		msg:   e.msg,
		err:   e.err,
		attrs: slices.Concat(e.attrs, attrs),
	}
}

func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+2)

	if e.msg != "" {
		attrs = append(attrs, slog.String("error", e.msg))
	}

	if e.err != nil {
		attrs = append(attrs, slog.String("cause", e.err.Error()))
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

var (
	ErrJSONMarshal   = NewError("marshal JSON")
	ErrYAMLMarshal   = NewError("marshal YAML")
	ErrWriteConfig   = NewError("write configuration file")
	ErrWriteTemplate = NewError("write template files")
	ErrFileExists    = NewError("file exists (use --force to overwrite)")
	ErrCheckFailed   = NewError("template validation failed")
)
