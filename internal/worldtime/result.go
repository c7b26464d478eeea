package worldtime

import "encoding/json"

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// TimeLayout renders the local time as "YYYY-MM-DD hh:mm:ss AM/PM".
const TimeLayout = "2006-01-02 03:04:05 PM"

// Result is the record handed back to the caller for every resolution,
// successful or not.
type Result struct {
	Status string

	// Set on success.
	Location    string
	Latitude    float64
	Longitude   float64
	Timezone    string
	CurrentTime string

	// Set on error.
	Kind    ErrorKind
	Message string
}

// OK reports whether the resolution succeeded.
func (r Result) OK() bool {
	return r.Status == StatusSuccess
}

type successJSON struct {
	Status      string  `json:"status"`
	Location    string  `json:"location"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Timezone    string  `json:"timezone"`
	CurrentTime string  `json:"current_time"`
}

type errorJSON struct {
	Status  string    `json:"status"`
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
}

// MarshalJSON emits only the fields that belong to the result's status.
func (r Result) MarshalJSON() ([]byte, error) {
	if r.OK() {
		return json.Marshal(successJSON{
			Status:      r.Status,
			Location:    r.Location,
			Latitude:    r.Latitude,
			Longitude:   r.Longitude,
			Timezone:    r.Timezone,
			CurrentTime: r.CurrentTime,
		})
	}
	return json.Marshal(errorJSON{Status: StatusError, Kind: r.Kind, Message: r.Message})
}

func (e *Error) result() Result {
	return Result{Status: StatusError, Kind: e.Kind, Message: e.Message}
}
