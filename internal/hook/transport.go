// Package hook implements the stdin/stdout protocol an interactive
// session uses to consult stratum: each hook reads one JSON object from
// stdin, decides, and writes one JSON decision to stdout. Logging goes
// to stderr; stdout belongs to the protocol.
package hook

import (
	"encoding/json"
	"io"
)

// Input is the event payload a hook receives on stdin. Fields are
// populated per event; absent fields keep their zero value.
type Input struct {
	SessionID      string `json:"session_id,omitempty"`
	Cwd            string `json:"cwd,omitempty"`
	ProjectDir     string `json:"project_dir,omitempty"`
	HookEventName  string `json:"hook_event_name,omitempty"`
	Prompt         string `json:"prompt,omitempty"`
	StopHookActive bool   `json:"stop_hook_active,omitempty"`
}

// ReadInput decodes the hook payload. Malformed or empty stdin yields an
// empty Input: a hook must still render a decision when the caller sends
// garbage.
func ReadInput(r io.Reader) *Input {
	var input Input
	if err := json.NewDecoder(r).Decode(&input); err != nil {
		return &Input{}
	}
	return &input
}

// Response is the decision a hook writes to stdout. A nil *Response
// means no output: the caller treats silence as proceed.
type Response struct {
	Decision      string `json:"decision,omitempty"`
	Reason        string `json:"reason,omitempty"`
	Continue      *bool  `json:"continue,omitempty"`
	SystemMessage string `json:"systemMessage,omitempty"`
}

// Block refuses the event with an explanation shown to the agent
func Block(reason string) *Response {
	return &Response{Decision: "block", Reason: reason}
}

// Allow approves the event, optionally with a reason
func Allow(reason string) *Response {
	return &Response{Decision: "allow", Reason: reason}
}

// Proceed lets the event continue without commentary
func Proceed() *Response {
	yes := true
	return &Response{Continue: &yes}
}

// ProceedWith lets the event continue and surfaces a system message
func ProceedWith(message string) *Response {
	yes := true
	return &Response{Continue: &yes, SystemMessage: message}
}

// WriteResponse emits the decision as a single JSON line. A nil
// response writes nothing.
func WriteResponse(w io.Writer, response *Response) error {
	if response == nil {
		return nil
	}
	return json.NewEncoder(w).Encode(response)
}
