package bootstrap

import "errors"

// Kind classifies the terminal failure modes of a run. None are retried
// and none trigger rollback of a partially built environment.
type Kind string

const (
	KindMissingArgument Kind = "missing-required-argument"
	KindUnknownArgument Kind = "unknown-argument"
	KindModuleScript    Kind = "module-script-not-executable"
	KindEnvExists       Kind = "environment-already-exists"
	KindExternalTool    Kind = "external-tool-failure"
)

// Error is a classified, terminal bootstrap failure.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Msg
	}
	if e.Msg == "" {
		return e.Err.Error()
	}
	return e.Msg + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf extracts the failure kind from any error chain.
func KindOf(err error) Kind {
	var be *Error
	if errors.As(err, &be) {
		return be.Kind
	}
	return ""
}
