package httputil

import (
	"encoding/json"
	"net/http"
	"reflect"
)

// Envelope is the body of every API response
type Envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Count   *int        `json:"count,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// RespondJSON writes data inside a success envelope. Slices and arrays also
// report their length as count; a nil slice is sent as [].
func RespondJSON(w http.ResponseWriter, status int, data interface{}) {
	env := Envelope{Success: true, Data: data}
	if data != nil {
		v := reflect.ValueOf(data)
		if v.Kind() == reflect.Slice || v.Kind() == reflect.Array {
			n := v.Len()
			env.Count = &n
			if v.Kind() == reflect.Slice && v.IsNil() {
				env.Data = []struct{}{}
			}
		}
	}
	writeEnvelope(w, status, env)
}

// RespondEmpty writes a success envelope whose data is an empty object
func RespondEmpty(w http.ResponseWriter, status int) {
	writeEnvelope(w, status, Envelope{Success: true, Data: struct{}{}})
}

// RespondError writes a failure envelope carrying message
func RespondError(w http.ResponseWriter, status int, message string) {
	writeEnvelope(w, status, Envelope{Success: false, Error: message})
}

// writeEnvelope marshals before writing headers so an encoding failure
// cannot leave a partial response behind
func writeEnvelope(w http.ResponseWriter, status int, env Envelope) {
	payload, err := json.Marshal(env)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"success":false,"error":"Server Error"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(payload)
}
