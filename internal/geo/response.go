package geo

import (
	"encoding/json"
	"net/http"
)

// StatusOK is always the wire status; the body's ok flag carries the outcome.
const StatusOK = "200"

// ErrInvalidMethod is the message returned for any non-GET request.
const ErrInvalidMethod = "invalid method"

// Request is the transport-neutral form of an export query. Params is nil
// when the request carried no query parameters at all.
type Request struct {
	Method string
	Params map[string]string
}

// Response mirrors the API Gateway proxy response shape.
type Response struct {
	StatusCode string            `json:"statusCode"`
	Body       string            `json:"body"`
	Headers    map[string]string `json:"headers"`
}

type failureBody struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}

type successBody struct {
	OK    bool   `json:"ok"`
	S3URL string `json:"s3_url"`
}

func newResponse(body any) Response {
	// Both body types only hold strings and bools, so marshalling cannot fail.
	b, _ := json.Marshal(body)
	return Response{
		StatusCode: StatusOK,
		Body:       string(b),
		Headers: map[string]string{
			"Content-Type":                "application/json",
			"Access-Control-Allow-Origin": "*",
		},
	}
}

// ErrorResponse builds a logical failure.
func ErrorResponse(message string) Response {
	return newResponse(failureBody{OK: false, Error: message})
}

// SuccessResponse builds a success pointing at the published artifact.
func SuccessResponse(url string) Response {
	return newResponse(successBody{OK: true, S3URL: url})
}

// IsRead reports whether method is the read method.
func IsRead(method string) bool {
	return method == http.MethodGet
}
