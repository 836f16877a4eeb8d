package recipes

// ReduceStatus applies a status action. Each action replaces exactly one
// field. A nil or unrecognized action returns s itself.
func ReduceStatus(s *Status, a StatusAction) *Status {
	switch a := a.(type) {
	case SetLoading:
		next := *s
		next.Loading = a.Loading
		return &next
	case SetError:
		next := *s
		next.Error = a.Message
		return &next
	case SetID:
		next := *s
		next.ActiveID = a.ID
		return &next
	default:
		return s
	}
}

// ReduceParams applies a params action.
//
// SET returns the payload itself, so no key of s survives. UPDATE returns s
// with the payload's keys overwritten; keys the payload gives as absent are
// removed and keys it does not mention are kept. CLEAR returns the shared
// empty params. A nil or unrecognized action returns s itself.
func ReduceParams(s *Params, a ParamsAction) *Params {
	switch a := a.(type) {
	case SetParams:
		if a.Params == nil {
			return noParams
		}
		return a.Params
	case UpdateParams:
		return s.merge(a.Params)
	case ClearParams:
		return noParams
	default:
		return s
	}
}

// ReduceList applies a list action with the same three laws as
// ReduceParams, on top-level list fields.
func ReduceList(s *List, a ListAction) *List {
	switch a := a.(type) {
	case SetList:
		if a.List == nil {
			return noList
		}
		if a.List.Hits == nil {
			next := *a.List
			next.Hits = []Hit{}
			return &next
		}
		return a.List
	case UpdateList:
		return s.apply(a.Patch)
	case ClearList:
		return noList
	default:
		return s
	}
}
