package recipes

// Status is the request status slice. Its fields are independent: the
// container does not enforce that an error implies not loading.
type Status struct {
	Loading  bool
	Error    Optional[string]
	ActiveID Optional[string]
}

// noStatus is the initial status.
var noStatus = &Status{}
