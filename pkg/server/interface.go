/*
Package server implements msgpack IPC for syllable checking.

Clients write a stream of msgpack encoded requests to stdin and read one
response per request from stdout. Logging goes to stderr so stdout only ever
carries msgpack.

# IPC

Every request has an ID echoed back in the response and an action:

	{"id": "req_001", "a": "check", "t": "བ་བོ་དཀ"}
	{"id": "req_002", "a": "check", "w": ["དཀར", "དཀ"]}
	{"id": "req_003", "a": "complete", "p": "དཀ", "l": 10}
	{"id": "req_004", "a": "info"}

A check response lists each token with its verdict, the number of invalid
tokens and the time taken in microseconds:

	{"id": "req_001", "r": [{"w": "བ", "ok": true}, {"w": "བོ", "ok": true}, {"w": "དཀ", "ok": false}], "c": 3, "n": 1, "t": 12}

Complete lists vocabulary words that extend the prefix, ranked from 1:

	{"id": "req_003", "s": [{"w": "དཀར", "r": 1}, {"w": "དཀའ", "r": 2}], "c": 2, "t": 30}

Failures are reported with a code, 400 for bad requests and 500 otherwise:

	{"id": "req_005", "e": "unknown action: fix", "c": 400}

When the server starts it writes {"status": "ready"} before reading requests.
An empty action is treated as check, or complete when only a prefix is set.
*/
package server

const (
	ActionCheck    = "check"
	ActionComplete = "complete"
	ActionInfo     = "info"
)

// Request is a single client message
type Request struct {
	ID     string   `msgpack:"id"`
	Action string   `msgpack:"a,omitempty"`
	Text   string   `msgpack:"t,omitempty"`
	Words  []string `msgpack:"w,omitempty"`
	Prefix string   `msgpack:"p,omitempty"`
	Limit  int      `msgpack:"l,omitempty"`
}

// TokenResult is the verdict for one token
type TokenResult struct {
	Word  string `msgpack:"w"`
	Valid bool   `msgpack:"ok"`
}

// CheckResponse answers a check request
type CheckResponse struct {
	ID        string        `msgpack:"id"`
	Results   []TokenResult `msgpack:"r"`
	Count     int           `msgpack:"c"`
	Invalid   int           `msgpack:"n"`
	TimeTaken int64         `msgpack:"t"`
}

// CompletionSuggestion - minimal suggestion response
type CompletionSuggestion struct {
	Word string `msgpack:"w"`
	Rank uint16 `msgpack:"r"`
}

// CompleteResponse answers a complete request
type CompleteResponse struct {
	ID          string                 `msgpack:"id"`
	Suggestions []CompletionSuggestion `msgpack:"s"`
	Count       int                    `msgpack:"c"`
	TimeTaken   int64                  `msgpack:"t"`
}

// InfoResponse describes the loaded vocabulary
type InfoResponse struct {
	ID       string `msgpack:"id"`
	Status   string `msgpack:"status"`
	Words    int    `msgpack:"words"`
	Nodes    int    `msgpack:"nodes"`
	MaxDepth int    `msgpack:"max_depth"`
	Rejected int    `msgpack:"rejected"`
	Mode     string `msgpack:"mode"`
	Frozen   bool   `msgpack:"frozen"`
}

// StatusResponse is sent once the server is ready
type StatusResponse struct {
	Status string `msgpack:"status"`
}

// ErrorResponse holds basic error information for failed requests
type ErrorResponse struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"c"`
}
