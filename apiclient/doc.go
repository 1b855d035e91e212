// Package apiclient provides the resilient JSON client used to talk to the
// library catalog backend.
//
// Every request carries JSON content headers, and transient failures are
// retried with a linear backoff before the last error is surfaced to the
// caller.
//
// # Usage
//
//	logger := zerolog.New(os.Stderr)
//	client, err := apiclient.NewClient(
//		"https://library.example.com",
//		logger,
//		apiclient.WithMaxRetries(3),
//		apiclient.WithBackoff(400*time.Millisecond),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	var authors []catalog.Author
//	if err := client.Request(ctx, http.MethodGet, "/api/Authors", nil, &authors); err != nil {
//		log.Fatal(err)
//	}
//
// # Retries
//
// Responses with status 408, 425, 429, 500, 502, 503 or 504 and transport
// failures are retried up to the configured limit. Before retry n the client
// waits n times the base backoff. Any other error status fails immediately.
//
// # Error Handling
//
// Failed requests surface one of two error types:
//
//   - APIError: the backend answered with a non-2xx status
//   - TransportError: no response was received
//
//	var apiErr *apiclient.APIError
//	if errors.As(err, &apiErr) && apiErr.IsNotFound() {
//		// Handle missing entity
//	}
package apiclient
