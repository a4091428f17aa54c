package tilemap

import "fmt"

// FormatError reports a problem with the data of a map, as opposed to its
// markup. Markup syntax errors are returned as-is from encoding/xml.
type FormatError struct {
	Msg string
	Err error
}

func formatErrorf(format string, a ...interface{}) *FormatError {
	return &FormatError{Msg: fmt.Sprintf(format, a...)}
}

func (e *FormatError) Error() string {
	if e.Err != nil {
		return "tilemap: " + e.Msg + ": " + e.Err.Error()
	}
	return "tilemap: " + e.Msg
}

func (e *FormatError) Unwrap() error {
	return e.Err
}
