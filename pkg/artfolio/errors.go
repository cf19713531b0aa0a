package artfolio

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Kind classifies a failed request.
type Kind int

const (
	KindUnknown Kind = iota
	// KindNetwork covers unreachable backends, timeouts and cancelled contexts.
	KindNetwork
	// KindAuth is a 401 from the backend.
	KindAuth
	// KindNotFound is a 404 from the backend.
	KindNotFound
	// KindValidation is any other 4xx, or a request rejected before it was sent.
	KindValidation
	// KindServer is a 5xx from the backend.
	KindServer
	// KindDecode means the backend answered 2xx with a body we could not read.
	KindDecode
)

// Sentinel errors matched by errors.Is against *Error.
var (
	ErrNetwork    = errors.New("network failure")
	ErrAuth       = errors.New("authentication failed")
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation failed")
	ErrServer     = errors.New("server failure")
	ErrDecode     = errors.New("malformed response")
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindAuth:
		return "auth"
	case KindNotFound:
		return "not_found"
	case KindValidation:
		return "validation"
	case KindServer:
		return "server"
	case KindDecode:
		return "decode"
	default:
		return "unknown"
	}
}

func (k Kind) sentinel() error {
	switch k {
	case KindNetwork:
		return ErrNetwork
	case KindAuth:
		return ErrAuth
	case KindNotFound:
		return ErrNotFound
	case KindValidation:
		return ErrValidation
	case KindServer:
		return ErrServer
	case KindDecode:
		return ErrDecode
	default:
		return nil
	}
}

// Error is returned by every data client call that did not succeed.
type Error struct {
	Kind   Kind
	Method string
	Path   string
	// Status is the HTTP status code, zero when no response was received.
	Status int
	// Detail is the backend's "detail" message when it sent one.
	Detail string
	Err    error
}

func (e *Error) Error() string {
	var b strings.Builder
	if e.Method != "" || e.Path != "" {
		fmt.Fprintf(&b, "%s %s: ", e.Method, e.Path)
	}
	switch {
	case e.Status != 0:
		fmt.Fprintf(&b, "status %d", e.Status)
	case e.Kind.sentinel() != nil:
		b.WriteString(e.Kind.sentinel().Error())
	default:
		b.WriteString("request failed")
	}
	if e.Detail != "" {
		fmt.Fprintf(&b, ": %s", e.Detail)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is the sentinel for e's kind.
func (e *Error) Is(target error) bool {
	s := e.Kind.sentinel()
	return s != nil && target == s
}

// KindOf extracts the Kind from err, or KindUnknown if err is not an *Error.
func KindOf(err error) Kind {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return KindUnknown
}

// kindForStatus maps a non-2xx status code onto the error taxonomy.
func kindForStatus(status int) Kind {
	switch {
	case status == http.StatusUnauthorized:
		return KindAuth
	case status == http.StatusNotFound:
		return KindNotFound
	case status >= 400 && status < 500:
		return KindValidation
	case status >= 500:
		return KindServer
	default:
		return KindUnknown
	}
}

func validationError(method, path, detail string) *Error {
	return &Error{Kind: KindValidation, Method: method, Path: path, Detail: detail}
}

// parseDetail pulls a human readable message out of an error body. The
// backend sends {"detail": "..."} for most errors and {"detail": [...]} for
// schema violations.
func parseDetail(body []byte) string {
	body = []byte(strings.TrimSpace(string(body)))
	if len(body) == 0 {
		return ""
	}
	var payload struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || len(payload.Detail) == 0 {
		return truncate(string(body), 200)
	}
	var msg string
	if err := json.Unmarshal(payload.Detail, &msg); err == nil {
		return msg
	}
	var items []struct {
		Loc []any  `json:"loc"`
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(payload.Detail, &items); err == nil && len(items) > 0 {
		parts := make([]string, 0, len(items))
		for _, item := range items {
			if len(item.Loc) > 0 {
				parts = append(parts, fmt.Sprintf("%v: %s", item.Loc[len(item.Loc)-1], item.Msg))
				continue
			}
			parts = append(parts, item.Msg)
		}
		return strings.Join(parts, "; ")
	}
	return truncate(string(payload.Detail), 200)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
