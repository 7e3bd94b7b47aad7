package lambda

import (
	"encoding/json"
	"fmt"
)

// CORS headers attached to every response. The browser clients are served
// from a different origin than the API, so the full pre-flight header set
// is emitted unconditionally.
var corsHeaders = map[string]string{
	"Access-Control-Allow-Origin":      "*",
	"Access-Control-Allow-Headers":     "Content-Type,X-Amz-Date,Authorization,X-Api-Key,X-Amz-Security-Token",
	"Access-Control-Allow-Methods":     "GET,POST,PUT,DELETE,OPTIONS",
	"Access-Control-Allow-Credentials": "false",
}

// Respond builds a normalized response: JSON-encoded body (empty for nil)
// with the fixed CORS header set.
func Respond(statusCode int, body any) *Response {
	headers := make(map[string]string, len(corsHeaders)+1)
	for k, v := range corsHeaders {
		headers[k] = v
	}

	resp := &Response{
		StatusCode: statusCode,
		Headers:    headers,
	}

	if body == nil {
		return resp
	}

	encoded, err := json.Marshal(body)
	if err != nil {
		// A handler handed us an unserializable body. Degrade to a 500
		// rather than returning a malformed payload.
		resp.StatusCode = 500
		encoded = []byte(fmt.Sprintf(`{"error":%q}`, "failed to encode response body: "+err.Error()))
	}

	headers["Content-Type"] = "application/json"
	resp.Body = encoded
	return resp
}
