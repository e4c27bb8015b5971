package handler

// Response is the success envelope every endpoint writes:
//
//	{ "success": true, "message": "...", "count": N, "data": ... }
//
// Message appears on mutations, Count on listings. Failures never use this
// type; the global error handler owns the error envelope.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Count   *int   `json:"count,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// DataResponse wraps a single record.
func DataResponse(data any) Response {
	return Response{Success: true, Data: data}
}

// MessageResponse wraps a mutation result with a human-readable message.
func MessageResponse(message string, data any) Response {
	return Response{Success: true, Message: message, Data: data}
}

// ListResponse wraps a listing with its count.
func ListResponse[T any](items []T) Response {
	count := len(items)
	return Response{Success: true, Count: &count, Data: items}
}
