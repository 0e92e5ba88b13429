// Package oracle defines the call contract of the external reasoning service
// that authors agent decisions, validates free-form actions, and narrates areas.
// Prompt wording lives with the callers; this package only moves requests and
// responses and decodes structured output.
package oracle

import "context"

// Role tags a message in a conversation log.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one role-tagged entry of a conversation log.
type Message struct {
	Role    Role
	Content string
}

// Text builds the single-text-block payload.
func Text(content string) []Message {
	return []Message{{Role: RoleUser, Content: content}}
}

// Request is one oracle round trip.
type Request struct {
	// System is the optional system-level instruction.
	System string
	// Messages is the payload: a single user block or an ordered log.
	Messages []Message
	// Schema, when set, asks for output conforming to it.
	Schema *Schema
}

// Response carries the oracle's raw text.
type Response struct {
	Text   string
	schema *Schema
}

// NewResponse binds text to the schema of the request it answers.
func NewResponse(req Request, text string) Response {
	return Response{Text: text, schema: req.Schema}
}

// Decode extracts the JSON object from the response, validates it against the
// request schema when one was given, and unmarshals it into v.
//
// Postcondition: Returns nil, or an error wrapping ErrDecode.
func (r Response) Decode(v any) error {
	return decode(r.Text, r.schema, v)
}

// Oracle is the reasoning service. Generate blocks until the round trip
// settles or ctx is done.
type Oracle interface {
	Generate(ctx context.Context, req Request) (Response, error)
}

// Func adapts a function to the Oracle interface.
type Func func(ctx context.Context, req Request) (Response, error)

// Generate calls f.
func (f Func) Generate(ctx context.Context, req Request) (Response, error) {
	return f(ctx, req)
}

// Result is the settled outcome of an asynchronous round trip.
type Result struct {
	Response Response
	Err      error
}

// Async starts a round trip and returns a channel that receives exactly one Result.
//
// Precondition: o must be non-nil.
// Postcondition: The returned channel is buffered; the goroutine never leaks on an unread result.
func Async(ctx context.Context, o Oracle, req Request) <-chan Result {
	ch := make(chan Result, 1)
	go func() {
		resp, err := o.Generate(ctx, req)
		ch <- Result{Response: resp, Err: err}
	}()
	return ch
}
