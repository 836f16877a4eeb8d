package protocol

import (
	"encoding/json"
	stderrors "errors"
	"sync/atomic"

	"github.com/vango-dev/recipes/internal/errors"
	"github.com/vango-dev/recipes/pkg/recipes"
	"github.com/vango-dev/recipes/pkg/urlparam"
)

// FrameType identifies a server message.
type FrameType string

const (
	FrameState FrameType = "state"
	FrameURL   FrameType = "url"
	FrameError FrameType = "error"
)

// Frame is one server message. Seq increases by one per frame within a
// session.
type Frame struct {
	Type FrameType       `json:"type"`
	Seq  uint64          `json:"seq"`
	Data json.RawMessage `json:"data"`
}

// State is the data of a state frame.
type State struct {
	Loading bool                     `json:"loading"`
	Error   recipes.Optional[string] `json:"error"`
	ID      recipes.Optional[string] `json:"id"`
	Params  map[string][]string      `json:"params"`
	Query   string                   `json:"query"`
	List    *recipes.List            `json:"list"`
}

// NewState flattens a snapshot for the wire.
func NewState(s *recipes.Snapshot) *State {
	return &State{
		Loading: s.Loading,
		Error:   s.Error,
		ID:      s.ActiveID,
		Params:  s.Params.Values(),
		Query:   s.Params.Encode(),
		List:    s.List,
	}
}

// URLPatch is the data of a url frame.
type URLPatch struct {
	Mode  string `json:"mode"`
	Query string `json:"query"`
}

// ErrorMessage is the data of an error frame.
type ErrorMessage struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`

	// Fatal means the server is closing the connection.
	Fatal bool `json:"fatal,omitempty"`
}

// NewErrorMessage describes err for the client.
func NewErrorMessage(err error, fatal bool) *ErrorMessage {
	em := &ErrorMessage{Message: err.Error(), Fatal: fatal}
	var re *errors.RecipesError
	if stderrors.As(err, &re) {
		em.Code = re.Code
		em.Message = re.Message
	}
	return em
}

// Encoder numbers and encodes the frames of one session.
type Encoder struct {
	seq atomic.Uint64
}

// State encodes a state frame.
func (e *Encoder) State(s *recipes.Snapshot) ([]byte, error) {
	return e.frame(FrameState, NewState(s))
}

// URL encodes a url frame.
func (e *Encoder) URL(p urlparam.Patch) ([]byte, error) {
	return e.frame(FrameURL, URLPatch{Mode: p.Mode.String(), Query: p.Query})
}

// Error encodes an error frame.
func (e *Encoder) Error(err error, fatal bool) ([]byte, error) {
	return e.frame(FrameError, NewErrorMessage(err, fatal))
}

// Seq returns the sequence number of the last frame encoded.
func (e *Encoder) Seq() uint64 {
	return e.seq.Load()
}

func (e *Encoder) frame(t FrameType, v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Frame{Type: t, Seq: e.seq.Add(1), Data: data})
}

// DecodeFrame parses a server message.
func DecodeFrame(data []byte) (*Frame, error) {
	var f Frame
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, errors.New("E301").Wrap(err)
	}
	return &f, nil
}
