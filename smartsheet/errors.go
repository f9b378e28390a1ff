package smartsheet

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/tidwall/gjson"
)

// APIError is the decoded error body of a non-2xx Smartsheet response.
type APIError struct {
	StatusCode int
	ErrorCode  int
	Message    string
	RefID      string
}

func (e *APIError) Error() string {
	if e.ErrorCode != 0 {
		return fmt.Sprintf("smartsheet API error %v: %v (HTTP %v, ref:%v)", e.ErrorCode, e.Message, e.StatusCode, e.RefID)
	}

	return fmt.Sprintf("smartsheet API error: %v (HTTP %v)", e.Message, e.StatusCode)
}

func newAPIError(status int, body []byte) *APIError {
	err := APIError{
		StatusCode: status,
		Message:    http.StatusText(status),
	}

	if gjson.ValidBytes(body) {
		v := gjson.ParseBytes(body)

		err.ErrorCode = int(v.Get("errorCode").Int())
		err.RefID = v.Get("refId").String()

		if msg := strings.TrimSpace(v.Get("message").String()); msg != "" {
			err.Message = msg
		}
	}

	return &err
}
