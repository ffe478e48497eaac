// Package dto содержит структуры запросов и ответов HTTP API.
package dto

// CreateNoteRequest - тело запроса на создание заметки.
type CreateNoteRequest struct {
	Text string `json:"text"`
}

// ErrorResponse - структурированное тело ошибки API.
type ErrorResponse struct {
	ErrorCode int    `json:"errorCode"`
	ErrorMsg  string `json:"errorMsg"`
	Status    string `json:"status"`
}
