package mock

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"

	"github.com/google/uuid"
)

// ApiMock is a recording HTTP server standing in for the Resend API.
// Unconfigured routes answer 200 with a generated message id.
type ApiMock struct {
	mu               sync.Mutex
	server           *httptest.Server
	requestsReceived map[string][]map[string]any
	headersReceived  map[string][]map[string]string
	responseMap      map[string]any
	responseStatus   map[string]int
}

func NewApiServer() *ApiMock {
	return &ApiMock{
		requestsReceived: map[string][]map[string]any{},
		headersReceived:  map[string][]map[string]string{},
		responseMap:      map[string]any{},
		responseStatus:   map[string]int{},
	}
}

func (a *ApiMock) Start() {
	a.server = httptest.NewServer(http.HandlerFunc(a.handle))
}

func (a *ApiMock) Close() {
	if a.server != nil {
		a.server.Close()
	}
}

func (a *ApiMock) GetUrl() string {
	return a.server.URL
}

func (a *ApiMock) handle(w http.ResponseWriter, r *http.Request) {
	key := r.Method + r.URL.Path

	body, _ := io.ReadAll(r.Body)
	request := map[string]any{}
	_ = json.Unmarshal(body, &request)

	headers := map[string]string{}
	for name, values := range r.Header {
		headers[name] = values[0]
	}

	a.mu.Lock()
	a.requestsReceived[key] = append(a.requestsReceived[key], request)
	a.headersReceived[key] = append(a.headersReceived[key], headers)
	status, ok := a.responseStatus[key]
	if !ok {
		status = http.StatusOK
	}
	response, ok := a.responseMap[key]
	if !ok {
		response = map[string]any{"id": uuid.NewString()}
	}
	a.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(response)
}

// SetResponse overrides the reply for method and path.
func (a *ApiMock) SetResponse(method, path string, status int, response map[string]any) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.responseStatus[method+path] = status
	a.responseMap[method+path] = response
}

// GetRequests returns the bodies received on method and path, oldest first.
func (a *ApiMock) GetRequests(method, path string) []map[string]any {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]map[string]any(nil), a.requestsReceived[method+path]...)
}

func (a *ApiMock) GetRequestHeaders(method, path string, index int) map[string]string {
	a.mu.Lock()
	defer a.mu.Unlock()
	headers := a.headersReceived[method+path]
	if index < 0 || index >= len(headers) {
		return nil
	}
	return headers[index]
}

// Reset forgets every recorded request and configured response.
func (a *ApiMock) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.requestsReceived = map[string][]map[string]any{}
	a.headersReceived = map[string][]map[string]string{}
	a.responseMap = map[string]any{}
	a.responseStatus = map[string]int{}
}
