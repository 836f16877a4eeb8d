package recipes

// Kind is the closed set of action kinds.
type Kind uint8

const (
	KindLoading Kind = iota
	KindError
	KindID
	KindSet
	KindUpdate
	KindClear
)

// String returns the action kind in upper case.
func (k Kind) String() string {
	switch k {
	case KindLoading:
		return "LOADING"
	case KindError:
		return "ERROR"
	case KindID:
		return "ID"
	case KindSet:
		return "SET"
	case KindUpdate:
		return "UPDATE"
	case KindClear:
		return "CLEAR"
	default:
		return "UNKNOWN"
	}
}

// Slice identifies one of the three state slices.
type Slice uint8

const (
	SliceStatus Slice = iota
	SliceParams
	SliceList
)

// String returns the slice name as used in the dispatch facade.
func (s Slice) String() string {
	switch s {
	case SliceStatus:
		return "status"
	case SliceParams:
		return "params"
	case SliceList:
		return "list"
	default:
		return "unknown"
	}
}

// PayloadType names the payload shape an action carries.
type PayloadType uint8

const (
	PayloadNone PayloadType = iota
	PayloadBool
	PayloadOptionalString
	PayloadParams
	PayloadList
	PayloadListPatch
)

// String returns a short name of the payload shape.
func (p PayloadType) String() string {
	switch p {
	case PayloadNone:
		return "none"
	case PayloadBool:
		return "bool"
	case PayloadOptionalString:
		return "optional-string"
	case PayloadParams:
		return "params"
	case PayloadList:
		return "list"
	case PayloadListPatch:
		return "list-patch"
	default:
		return "unknown"
	}
}

// payloads is the (slice, kind) → payload table. Reducers, action types and
// the dispatch facade all agree with it.
var payloads = map[Slice]map[Kind]PayloadType{
	SliceStatus: {
		KindLoading: PayloadBool,
		KindError:   PayloadOptionalString,
		KindID:      PayloadOptionalString,
	},
	SliceParams: {
		KindSet:    PayloadParams,
		KindUpdate: PayloadParams,
		KindClear:  PayloadNone,
	},
	SliceList: {
		KindSet:    PayloadList,
		KindUpdate: PayloadListPatch,
		KindClear:  PayloadNone,
	},
}

// PayloadOf returns the payload type for kind against slice. ok is false
// when the kind is not valid for that slice.
func PayloadOf(kind Kind, slice Slice) (p PayloadType, ok bool) {
	p, ok = payloads[slice][kind]
	return p, ok
}

// Action is implemented by every action value.
type Action interface {
	Kind() Kind
	Slice() Slice
	// Payload returns the payload as a plain value: bool, Optional[string],
	// *Params, *List, ListPatch, or nil.
	Payload() any
}

// StatusAction is an action accepted by the status reducer.
type StatusAction interface {
	Action
	statusAction()
}

// ParamsAction is an action accepted by the params reducer.
type ParamsAction interface {
	Action
	paramsAction()
}

// ListAction is an action accepted by the list reducer.
type ListAction interface {
	Action
	listAction()
}

// SetLoading replaces the loading flag.
type SetLoading struct{ Loading bool }

// SetError replaces the error message. None clears it.
type SetError struct{ Message Optional[string] }

// SetID replaces the id of the recipe in focus. None clears it.
type SetID struct{ ID Optional[string] }

func (SetLoading) Kind() Kind     { return KindLoading }
func (SetLoading) Slice() Slice   { return SliceStatus }
func (a SetLoading) Payload() any { return a.Loading }
func (SetLoading) statusAction()  {}

func (SetError) Kind() Kind     { return KindError }
func (SetError) Slice() Slice   { return SliceStatus }
func (a SetError) Payload() any { return a.Message }
func (SetError) statusAction()  {}

func (SetID) Kind() Kind     { return KindID }
func (SetID) Slice() Slice   { return SliceStatus }
func (a SetID) Payload() any { return a.ID }
func (SetID) statusAction()  {}

// SetParams replaces the whole params slice.
type SetParams struct{ Params *Params }

// UpdateParams merges its keys onto the params slice.
type UpdateParams struct{ Params *Params }

// ClearParams resets the params slice to empty.
type ClearParams struct{}

func (SetParams) Kind() Kind     { return KindSet }
func (SetParams) Slice() Slice   { return SliceParams }
func (a SetParams) Payload() any { return a.Params }
func (SetParams) paramsAction()  {}

func (UpdateParams) Kind() Kind     { return KindUpdate }
func (UpdateParams) Slice() Slice   { return SliceParams }
func (a UpdateParams) Payload() any { return a.Params }
func (UpdateParams) paramsAction()  {}

func (ClearParams) Kind() Kind    { return KindClear }
func (ClearParams) Slice() Slice  { return SliceParams }
func (ClearParams) Payload() any  { return nil }
func (ClearParams) paramsAction() {}

// SetList replaces the whole list slice.
type SetList struct{ List *List }

// UpdateList overwrites the top-level list fields set in Patch.
type UpdateList struct{ Patch ListPatch }

// ClearList resets the list slice to the empty page.
type ClearList struct{}

func (SetList) Kind() Kind     { return KindSet }
func (SetList) Slice() Slice   { return SliceList }
func (a SetList) Payload() any { return a.List }
func (SetList) listAction()    {}

func (UpdateList) Kind() Kind     { return KindUpdate }
func (UpdateList) Slice() Slice   { return SliceList }
func (a UpdateList) Payload() any { return a.Patch }
func (UpdateList) listAction()    {}

func (ClearList) Kind() Kind   { return KindClear }
func (ClearList) Slice() Slice { return SliceList }
func (ClearList) Payload() any { return nil }
func (ClearList) listAction()  {}
