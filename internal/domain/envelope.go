package domain

import "fmt"

// Envelope messages and labels returned to the mapping client.
const (
	MessageNoData    = "No pothole data found"
	ErrorLabelServer = "Server error"
)

// Envelope is the success body for GET /api/potholes. Count is omitted and
// Message set when Data is empty.
type Envelope struct {
	Success bool            `json:"success"`
	Count   int             `json:"count,omitempty"`
	Message string          `json:"message,omitempty"`
	Data    []PotholeRecord `json:"data"`
}

// ErrorEnvelope is the failure body for GET /api/potholes.
type ErrorEnvelope struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Details string `json:"details"`
}

// NewEnvelope wraps fetched records. A nil or empty slice produces the
// "no data" form with an empty JSON array.
func NewEnvelope(records []PotholeRecord) Envelope {
	if len(records) == 0 {
		return Envelope{
			Success: true,
			Message: MessageNoData,
			Data:    []PotholeRecord{},
		}
	}
	return Envelope{
		Success: true,
		Count:   len(records),
		Data:    records,
	}
}

// NewErrorEnvelope builds the server error body. cause is an error, a panic
// value, or anything printable.
func NewErrorEnvelope(cause any) ErrorEnvelope {
	var details string
	switch c := cause.(type) {
	case error:
		details = c.Error()
	case string:
		details = c
	default:
		details = fmt.Sprint(c)
	}
	return ErrorEnvelope{
		Success: false,
		Error:   ErrorLabelServer,
		Details: details,
	}
}
