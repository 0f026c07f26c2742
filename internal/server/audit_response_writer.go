package server

import (
	"bytes"
	"net/http"
)

// Audit entries keep at most this much of a response body. Koi and
// auction listings can run to hundreds of kilobytes and the audit log
// only needs the head of the payload.
const maxAuditedBody = 4 << 10

// responseWriterWrapper captures the status code and a bounded prefix
// of the body for the audit pipeline while streaming the full response
// to the client.
type responseWriterWrapper struct {
	http.ResponseWriter
	statusCode int
	buffer     bytes.Buffer
	truncated  bool
}

func newResponseWriterWrapper(w http.ResponseWriter) *responseWriterWrapper {
	return &responseWriterWrapper{
		ResponseWriter: w,
		statusCode:     http.StatusOK,
	}
}

func (w *responseWriterWrapper) WriteHeader(statusCode int) {
	w.statusCode = statusCode
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *responseWriterWrapper) Write(b []byte) (int, error) {
	if remaining := maxAuditedBody - w.buffer.Len(); remaining > 0 {
		if len(b) > remaining {
			w.buffer.Write(b[:remaining])
			w.truncated = true
		} else {
			w.buffer.Write(b)
		}
	} else if len(b) > 0 {
		w.truncated = true
	}
	return w.ResponseWriter.Write(b)
}

func (w *responseWriterWrapper) GetStatusCode() int {
	return w.statusCode
}

func (w *responseWriterWrapper) GetBody() []byte {
	return w.buffer.Bytes()
}

func (w *responseWriterWrapper) BodyTruncated() bool {
	return w.truncated
}
