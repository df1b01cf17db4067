package errors

import (
	"fmt"
)

// ConfigNotFound creates a configuration not found error
func ConfigNotFound(path string) *AppError {
	return New(ErrCodeConfigNotFound, fmt.Sprintf("configuration file not found: %s", path)).
		WithDetail("path", path)
}

// ConfigInvalid creates an invalid configuration error
func ConfigInvalid(reason string) *AppError {
	return New(ErrCodeConfigInvalid, fmt.Sprintf("invalid configuration: %s", reason))
}

// HTTPStatus creates an error for a non-2xx backend response. statusText is the
// reason phrase ("Not Found"); detail is the backend's own explanation, if any.
func HTTPStatus(method, path string, status int, statusText, detail string) *AppError {
	msg := fmt.Sprintf("HTTP %d: %s", status, statusText)
	if detail != "" {
		msg = fmt.Sprintf("%s (%s)", msg, detail)
	}
	err := New(ErrCodeHTTPStatus, msg).
		WithDetail("method", method).
		WithDetail("path", path).
		WithDetail("status", status).
		WithDetail("statusText", statusText)
	if detail != "" {
		err = err.WithDetail("detail", detail)
	}
	return err
}

// Timeout creates an error for a backend call that exceeded its ceiling.
func Timeout(method, path string, timeout string, cause error) *AppError {
	return Wrap(cause, ErrCodeTimeout,
		fmt.Sprintf("%s %s did not complete within %s", method, path, timeout)).
		WithDetail("method", method).
		WithDetail("path", path).
		WithDetail("timeout", timeout)
}

// Validation creates a caller-side input error.
func Validation(field, reason string) *AppError {
	return New(ErrCodeValidation, reason).WithDetail("field", field)
}

// AssetLoad creates an error for a module asset that could not be loaded.
func AssetLoad(module, asset string, cause error) *AppError {
	return Wrap(cause, ErrCodeAssetLoad,
		fmt.Sprintf("could not load %s for module '%s'", asset, module)).
		WithDetail("module", module).
		WithDetail("asset", asset)
}

// ModuleInvalid creates an error for a module rejected at registration.
func ModuleInvalid(module, reason string) *AppError {
	return New(ErrCodeModuleInvalid, fmt.Sprintf("module '%s' is invalid: %s", module, reason)).
		WithDetail("module", module)
}

// StatusCode returns the HTTP status carried by an HTTP_STATUS error.
func StatusCode(err error) (int, bool) {
	appErr, ok := As(err)
	if !ok || appErr.Code != ErrCodeHTTPStatus {
		return 0, false
	}
	status, ok := appErr.Detail("status").(int)
	return status, ok
}

