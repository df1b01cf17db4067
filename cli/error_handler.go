package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/grovetools/llmcompare/errors"
)

// ErrorHandler provides user-friendly error messages
type ErrorHandler struct {
	Verbose bool
	Out     io.Writer
}

// NewErrorHandler creates a new error handler writing to stderr.
func NewErrorHandler(verbose bool) *ErrorHandler {
	return &ErrorHandler{
		Verbose: verbose,
		Out:     os.Stderr,
	}
}

// Handle prints a message for err based on its code and returns err.
func (h *ErrorHandler) Handle(err error) error {
	if err == nil {
		return nil
	}
	out := h.Out
	if out == nil {
		out = os.Stderr
	}

	appErr, _ := errors.As(err)
	detail := func(key string) interface{} {
		if appErr == nil {
			return nil
		}
		return appErr.Detail(key)
	}

	switch errors.GetCode(err) {
	case errors.ErrCodeConfigNotFound:
		fmt.Fprintf(out, "❌ Configuration not found: %v\n", detail("path"))
		fmt.Fprintf(out, "Run 'llmcompare config path' to see where llmcompare looks for it.\n")

	case errors.ErrCodeConfigInvalid:
		fmt.Fprintf(out, "❌ %s\n", errors.Message(err))
		fmt.Fprintf(out, "Run 'llmcompare config schema' for the accepted fields.\n")

	case errors.ErrCodeTransport:
		fmt.Fprintf(out, "❌ Could not reach the backend: %s\n", errors.Message(err))
		fmt.Fprintf(out, "Check that it is running and that api.base_url is correct.\n")

	case errors.ErrCodeTimeout:
		fmt.Fprintf(out, "❌ %s\n", errors.Message(err))
		fmt.Fprintf(out, "Raise api.timeout in llmcompare.yml for long comparisons.\n")

	case errors.ErrCodeHTTPStatus:
		fmt.Fprintf(out, "❌ Backend error on %v %v: %s\n", detail("method"), detail("path"), errors.Message(err))

	case errors.ErrCodeValidation:
		fmt.Fprintf(out, "❌ %s\n", errors.Message(err))

	case errors.ErrCodeCancelled:
		fmt.Fprintf(out, "Cancelled.\n")

	default:
		fmt.Fprintf(out, "❌ Error: %v\n", err)
	}

	if h.Verbose && appErr != nil {
		fmt.Fprintf(out, "\nError details:\n%s\n", appErr.ToJSON())
	}
	return err
}
