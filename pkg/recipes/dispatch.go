package recipes

// Dispatch is the facade grouping every action by slice. Status setters sit
// at the top level; params and list verbs under Params and List.
//
// It is built once per container and its pointer, and the pointers of
// Params and List, never change.
type Dispatch struct {
	Params *ParamsDispatch
	List   *ListDispatch

	status func(StatusAction)
}

// ParamsDispatch holds the params verbs.
type ParamsDispatch struct {
	dispatch func(ParamsAction)
}

// ListDispatch holds the list verbs.
type ListDispatch struct {
	dispatch func(ListAction)
}

func newDispatch(status func(StatusAction), params func(ParamsAction), list func(ListAction)) *Dispatch {
	return &Dispatch{
		Params: &ParamsDispatch{dispatch: params},
		List:   &ListDispatch{dispatch: list},
		status: status,
	}
}

// Loading sets the loading flag.
func (d *Dispatch) Loading(loading bool) { d.status(SetLoading{Loading: loading}) }

// Error sets the error message; None clears it.
func (d *Dispatch) Error(msg Optional[string]) { d.status(SetError{Message: msg}) }

// Fail sets the error message to msg.
func (d *Dispatch) Fail(msg string) { d.Error(Some(msg)) }

// ClearError clears the error message.
func (d *Dispatch) ClearError() { d.Error(None[string]()) }

// ID sets the id of the recipe in focus; None clears it.
func (d *Dispatch) ID(id Optional[string]) { d.status(SetID{ID: id}) }

// Focus sets the recipe in focus.
func (d *Dispatch) Focus(id string) { d.ID(Some(id)) }

// Blur clears the recipe in focus.
func (d *Dispatch) Blur() { d.ID(None[string]()) }

// Set replaces every search parameter with p.
func (p *ParamsDispatch) Set(params *Params) { p.dispatch(SetParams{Params: params}) }

// Update merges params onto the current parameters.
func (p *ParamsDispatch) Update(params *Params) { p.dispatch(UpdateParams{Params: params}) }

// Apply is Update with params built from entries.
func (p *ParamsDispatch) Apply(entries ...Entry) { p.Update(NewParams(entries...)) }

// Clear removes every search parameter.
func (p *ParamsDispatch) Clear() { p.dispatch(ClearParams{}) }

// Set replaces the result page.
func (l *ListDispatch) Set(list *List) { l.dispatch(SetList{List: list}) }

// Update overwrites the patch's fields of the result page.
func (l *ListDispatch) Update(patch ListPatch) { l.dispatch(UpdateList{Patch: patch}) }

// Clear resets the result page to empty.
func (l *ListDispatch) Clear() { l.dispatch(ClearList{}) }

// Apply routes a to the reducer of its slice. Actions built outside the
// facade, such as those decoded from a client message, enter here.
func (d *Dispatch) Apply(a Action) {
	switch a := a.(type) {
	case StatusAction:
		d.status(a)
	case ParamsAction:
		d.Params.dispatch(a)
	case ListAction:
		d.List.dispatch(a)
	}
}
