package gateway

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
)

// Request carries the per-call options of Do.
type Request struct {
	// Method defaults to GET.
	Method string
	// Header holds additional request headers.
	Header http.Header
	// Body is sent as JSON unless IsFormData is set.
	Body []byte
	// IsFormData suppresses the automatic JSON Content-Type; the caller sets
	// the multipart Content-Type in Header.
	IsFormData bool
}

// Response is the normalised result of a successful call.
//
// The backend wraps payloads as {"data": ..., "message": ...}. A response
// without a body normalises to the success marker: Success set, no Data and
// no Message. A non-JSON body becomes Message.
type Response struct {
	Status  int
	Data    json.RawMessage
	Message string
	Success bool
	// Raw is the undecoded body.
	Raw []byte
}

// DecodeData unmarshals the envelope's data member into v.
func (r *Response) DecodeData(v any) error {
	if r == nil || len(r.Data) == 0 {
		return fmt.Errorf("response has no data")
	}
	if err := json.Unmarshal(r.Data, v); err != nil {
		return fmt.Errorf("decode response data: %w", err)
	}
	return nil
}

func successMarker(status int) *Response {
	return &Response{Status: status, Success: true}
}

type envelope struct {
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

// readResponse consumes and closes resp.Body.
func readResponse(resp *http.Response) (*Response, error) {
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return successMarker(resp.StatusCode), nil
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, transportError(err)
	}

	out, decodeErr := decodeBody(resp.StatusCode, resp.Header.Get("Content-Type"), raw)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := ""
		if out != nil {
			msg = strings.TrimSpace(out.Message)
		}
		if msg == "" {
			msg = StatusMessage(resp.StatusCode)
		}
		return nil, &APIError{Message: msg, Status: resp.StatusCode, Payload: raw}
	}
	if decodeErr != nil {
		return nil, &APIError{Message: MsgInvalidResponse, Status: resp.StatusCode, Payload: raw, Err: decodeErr}
	}
	return out, nil
}

func decodeBody(status int, contentType string, raw []byte) (*Response, error) {
	trimmed := bytes.TrimSpace(raw)

	if isJSON(contentType) {
		if len(trimmed) == 0 {
			return successMarker(status), nil
		}
		out := &Response{Status: status, Success: true, Raw: raw}
		if trimmed[0] != '{' {
			if !json.Valid(trimmed) {
				return nil, fmt.Errorf("malformed json body")
			}
			out.Data = json.RawMessage(trimmed)
			return out, nil
		}
		var env envelope
		if err := json.Unmarshal(trimmed, &env); err != nil {
			return nil, fmt.Errorf("decode json body: %w", err)
		}
		out.Data = env.Data
		out.Message = env.Message
		return out, nil
	}

	if len(trimmed) > 0 {
		return &Response{Status: status, Success: true, Message: string(raw), Raw: raw}, nil
	}
	return successMarker(status), nil
}

func isJSON(contentType string) bool {
	if contentType == "" {
		return false
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return strings.Contains(contentType, "application/json")
	}
	return mediaType == "application/json" || strings.HasSuffix(mediaType, "+json")
}
