package handlers

import "time"

// ErrorResponse is the JSON body of every error answer
type ErrorResponse struct {
	Error string `json:"error"`
}

// HealthResponse reports the service status
type HealthResponse struct {
	Status       string            `json:"status"`
	Timestamp    time.Time         `json:"timestamp"`
	StoreBackend string            `json:"store_backend"`
	Transport    string            `json:"transport"`
	Services     map[string]string `json:"services"`
}
