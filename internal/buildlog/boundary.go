package buildlog

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
)

// Run executes fn inside the build error boundary. Every failure, whether
// returned as an error or raised as a panic anywhere within fn, is
// intercepted exactly once, logged at severe level, and swallowed. Run
// always returns, so a failed step cannot crash or hang the enclosing build.
//
// On normal completion Run returns fn's result and true. On any failure it
// returns the zero value and false after producing exactly one severe log
// entry:
//
//   - *BuildError: the error message (stack appended when internal traces
//     are enabled);
//   - *UnresolvedAnnotationError: the annotation text with its source anchor
//     and the troubleshooting pointer;
//   - anything else: an internal-defect report pointing at IssuesURL.
func Run[T any](ctx context.Context, log *Logger, fn func(context.Context) (T, error)) (result T, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			var zero T
			result = zero
			ok = false
			reportFailure(log, recoveredError(r), debug.Stack())
		}
	}()

	res, err := fn(ctx)
	if err != nil {
		reportFailure(log, err, nil)
		return result, false
	}
	return res, true
}

// RunVoid is Run for steps with no result.
func RunVoid(ctx context.Context, log *Logger, fn func(context.Context) error) bool {
	_, ok := Run(ctx, log, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, fn(ctx)
	})
	return ok
}

// reportFailure classifies err and emits exactly one severe entry.
func reportFailure(log *Logger, err error, stack []byte) {
	var unresolved *UnresolvedAnnotationError
	var build *BuildError
	switch {
	case errors.As(err, &unresolved):
		log.Severe(unresolved)
	case errors.As(err, &build):
		log.Severe(build)
	default:
		msg := fmt.Sprintf("unexpected error during build: %v\nthis is a bug; please file an issue at %s", err, IssuesURL)
		if log.ShowInternalTraces() {
			if len(stack) == 0 {
				stack = debug.Stack()
			}
			msg += "\n" + string(stack)
		}
		log.Severef("%s", msg)
	}
}

// recoveredError normalizes a recovered panic value into an error.
func recoveredError(r any) error {
	if err, ok := r.(error); ok {
		return err
	}
	return fmt.Errorf("panic: %v", r)
}
