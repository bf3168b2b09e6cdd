package validator

import "net/http"

// Location names the part of a request a field is read from.
type Location string

const (
	LocationBody    Location = "body"
	LocationQuery   Location = "query"
	LocationParams  Location = "params"
	LocationHeaders Location = "headers"
)

// anyLocation is used by Check chains. Sources are searched in this order.
var anyLocation = []Location{LocationBody, LocationHeaders, LocationParams, LocationQuery}

// Request is the typed, per-request view that chains read field values from.
// It is produced once per request by a BindFunc and is read-only afterwards.
type Request struct {
	// Body holds decoded body fields. Values keep the types the parser
	// produced: text, numbers, booleans, lists or nested maps.
	Body map[string]any
	// Query holds query string fields: a string for a single occurrence,
	// a []string for repeated parameters.
	Query map[string]any
	// Params holds path parameters, which are always text.
	Params map[string]string
	// Headers holds request headers keyed by lower-cased name.
	Headers map[string]string
	// RawBody is the undecoded JSON body, if the body was JSON. It enables
	// nested path selection such as "address.city" or "items.0.name".
	RawBody []byte
	// HTTP is the originating request, if any. Custom validators may use it
	// for anything the maps above do not carry, such as cookies.
	HTTP *http.Request
}
