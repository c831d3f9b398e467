package client

import (
	"sort"
	"strings"
)

// APIError is a non-2xx response decoded from the server's error body.
type APIError struct {
	StatusCode int
	Message    string
	Fields     map[string]string
}

func (e *APIError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	details := make([]string, 0, len(e.Fields))
	for _, msg := range e.Fields {
		details = append(details, msg)
	}
	sort.Strings(details)
	return e.Message + " " + strings.Join(details, " ")
}

type errorBody struct {
	Error struct {
		Code    int               `json:"code"`
		Message string            `json:"message"`
		Fields  map[string]string `json:"fields"`
	} `json:"error"`
}
