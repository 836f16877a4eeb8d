package protocol

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/vango-dev/recipes/internal/errors"
	"github.com/vango-dev/recipes/pkg/recipes"
)

// Op names a client dispatch.
type Op string

const (
	OpLoading      Op = "loading"
	OpError        Op = "error"
	OpID           Op = "id"
	OpParamsSet    Op = "params.set"
	OpParamsUpdate Op = "params.update"
	OpParamsClear  Op = "params.clear"
	OpListSet      Op = "list.set"
	OpListUpdate   Op = "list.update"
	OpListClear    Op = "list.clear"
	OpSearch       Op = "search"
	OpNext         Op = "next"
)

var ops = map[Op]bool{
	OpLoading: true, OpError: true, OpID: true,
	OpParamsSet: true, OpParamsUpdate: true, OpParamsClear: true,
	OpListSet: true, OpListUpdate: true, OpListClear: true,
	OpSearch: true, OpNext: true,
}

// Valid reports whether op is known.
func (op Op) Valid() bool {
	return ops[op]
}

// Remote reports whether op asks the session to call the search API rather
// than naming a single action.
func (op Op) Remote() bool {
	return op == OpSearch || op == OpNext
}

// Dispatch is one client message.
type Dispatch struct {
	Op      Op              `json:"op"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Decode parses a client message. Unknown ops are rejected here; payloads
// are checked by Action and Params.
func Decode(data []byte) (*Dispatch, error) {
	if len(data) > MaxMessageSize {
		return nil, errors.New("E301").
			WithDetailf("Message is %d bytes, the limit is %d.", len(data), MaxMessageSize)
	}
	var d Dispatch
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, errors.New("E301").Wrap(err)
	}
	if !d.Op.Valid() {
		return nil, errors.New("E302").WithDetailf("Unknown op %q.", d.Op)
	}
	return &d, nil
}

// Encode returns the JSON form of d. Clients and tests use it.
func (d *Dispatch) Encode() ([]byte, error) {
	return json.Marshal(d)
}

// NewDispatch builds a dispatch with payload marshaled to JSON.
func NewDispatch(op Op, payload any) (*Dispatch, error) {
	d := &Dispatch{Op: op}
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		d.Payload = raw
	}
	return d, nil
}

// Action converts the dispatch into the action it names. Remote ops have no
// action and return nil.
func (d *Dispatch) Action() (recipes.Action, error) {
	switch d.Op {
	case OpLoading:
		var v bool
		if err := d.decode(&v); err != nil {
			return nil, err
		}
		return recipes.SetLoading{Loading: v}, nil
	case OpError:
		var v recipes.Optional[string]
		if err := d.decode(&v); err != nil {
			return nil, err
		}
		return recipes.SetError{Message: v}, nil
	case OpID:
		var v recipes.Optional[string]
		if err := d.decode(&v); err != nil {
			return nil, err
		}
		return recipes.SetID{ID: v}, nil
	case OpParamsSet:
		p, err := d.Params()
		if err != nil {
			return nil, err
		}
		return recipes.SetParams{Params: p}, nil
	case OpParamsUpdate:
		p, err := d.Params()
		if err != nil {
			return nil, err
		}
		return recipes.UpdateParams{Params: p}, nil
	case OpParamsClear:
		return recipes.ClearParams{}, nil
	case OpListSet:
		var v recipes.List
		if err := d.decode(&v); err != nil {
			return nil, err
		}
		return recipes.SetList{List: &v}, nil
	case OpListUpdate:
		var v recipes.ListPatch
		if err := d.decode(&v); err != nil {
			return nil, err
		}
		return recipes.UpdateList{Patch: v}, nil
	case OpListClear:
		return recipes.ClearList{}, nil
	case OpSearch, OpNext:
		return nil, nil
	}
	return nil, errors.New("E302").WithDetailf("Unknown op %q.", d.Op)
}

// Params decodes a query-shaped payload. Keys given as null are returned as
// explicit absences, which remove the key under params.update. A missing
// payload yields empty params.
func (d *Dispatch) Params() (*recipes.Params, error) {
	if isNull(d.Payload) {
		return recipes.NewParams(), nil
	}
	var raw map[string]queryValue
	if err := json.Unmarshal(d.Payload, &raw); err != nil {
		return nil, d.invalid(err)
	}

	q := url.Values{}
	var unset []recipes.Entry
	for k, v := range raw {
		if v == nil {
			unset = append(unset, recipes.Unset(recipes.ParamKey(k)))
			continue
		}
		if len(v) > MaxQueryValues {
			return nil, d.invalid(fmt.Errorf("%s: %d values, the limit is %d", k, len(v), MaxQueryValues))
		}
		q[k] = v
	}
	p, err := recipes.DecodeQuery(q)
	if err != nil {
		return nil, d.invalid(err)
	}
	return p.With(unset...), nil
}

func (d *Dispatch) decode(v any) error {
	if isNull(d.Payload) {
		return d.invalid(fmt.Errorf("missing payload"))
	}
	if err := json.Unmarshal(d.Payload, v); err != nil {
		return d.invalid(err)
	}
	return nil
}

func (d *Dispatch) invalid(err error) error {
	return errors.New("E303").WithDetailf("Invalid payload for %s.", d.Op).Wrap(err)
}

func isNull(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) == 0 || bytes.Equal(raw, []byte("null"))
}

// queryValue accepts a string, number, bool or an array of those. JSON null
// decodes to a nil slice.
type queryValue []string

func (q *queryValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*q = nil
		return nil
	}
	if len(data) > 0 && data[0] == '[' {
		var items []json.RawMessage
		if err := json.Unmarshal(data, &items); err != nil {
			return err
		}
		out := make(queryValue, 0, len(items))
		for _, item := range items {
			s, err := scalar(item)
			if err != nil {
				return err
			}
			out = append(out, s)
		}
		*q = out
		return nil
	}
	s, err := scalar(data)
	if err != nil {
		return err
	}
	*q = queryValue{s}
	return nil
}

func scalar(data json.RawMessage) (string, error) {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return "", err
	}
	switch v := v.(type) {
	case string:
		return v, nil
	case bool:
		return strconv.FormatBool(v), nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	default:
		return "", fmt.Errorf("unsupported value %s", data)
	}
}

// HasPayload reports whether the dispatch carries a non-null payload.
func (d *Dispatch) HasPayload() bool {
	return !isNull(d.Payload)
}
