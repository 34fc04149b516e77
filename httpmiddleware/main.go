// Package httpmiddleware is a small wrapper around the default HTTP
// client with OpenTelemetry propagation on every outbound request.
package httpmiddleware

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

var client = &http.Client{
	Transport: otelhttp.NewTransport(http.DefaultTransport),
}

type HttpRequestStruct struct {
	Context context.Context
	Method  string
	Url     string
	Body    io.Reader
	Headers map[string]string
}

// HttpError is returned for non-2xx responses; the response body is
// preserved for diagnostics.
type HttpError struct {
	StatusCode int
	Body       []byte
}

func (e *HttpError) Error() string {
	return fmt.Sprintf("request failed with status %d: %s", e.StatusCode, string(e.Body))
}

// HttpRequest performs one request and returns the response body.
// Non-2xx statuses come back as *HttpError with the body attached.
func HttpRequest(args HttpRequestStruct) ([]byte, error) {
	ctx := args.Context
	if ctx == nil {
		ctx = context.Background()
	}

	req, err := http.NewRequestWithContext(ctx, args.Method, args.Url, args.Body)
	if err != nil {
		return nil, err
	}
	for key, value := range args.Headers {
		req.Header.Set(key, value)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &HttpError{StatusCode: resp.StatusCode, Body: respBody}
	}

	return respBody, nil
}
