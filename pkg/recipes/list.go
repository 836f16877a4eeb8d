package recipes

// Link is a hypermedia link returned by the search API.
type Link struct {
	Href  string `json:"href"`
	Title string `json:"title"`
}

// RecipeRef is the part of a recipe shown in a result list.
type RecipeRef struct {
	URI   string `json:"uri"`
	Image string `json:"image"`
	Label string `json:"label"`
}

// Hit is one search result.
type Hit struct {
	Self   Link      `json:"self"`
	Recipe RecipeRef `json:"recipe"`
}

// List is one page of search results. A List in state always has every
// field; Hits is never nil.
type List struct {
	From  int   `json:"from"`
	To    int   `json:"to"`
	Count int   `json:"count"`
	Hits  []Hit `json:"hits"`
	Next  Link  `json:"next"`
}

// EmptyList returns the zero page.
func EmptyList() *List {
	return &List{Hits: []Hit{}}
}

// noList is the initial and cleared value of the list slice.
var noList = EmptyList()

// ListPatch carries the list fields an UPDATE overwrites. Unset fields are
// left alone.
type ListPatch struct {
	From  Optional[int]   `json:"from"`
	To    Optional[int]   `json:"to"`
	Count Optional[int]   `json:"count"`
	Hits  Optional[[]Hit] `json:"hits"`
	Next  Optional[Link]  `json:"next"`
}

// apply returns a copy of l with the patch's set fields overwritten.
func (l *List) apply(p ListPatch) *List {
	out := *l
	if v, ok := p.From.Get(); ok {
		out.From = v
	}
	if v, ok := p.To.Get(); ok {
		out.To = v
	}
	if v, ok := p.Count.Get(); ok {
		out.Count = v
	}
	if v, ok := p.Hits.Get(); ok {
		if v == nil {
			v = []Hit{}
		}
		out.Hits = v
	}
	if v, ok := p.Next.Get(); ok {
		out.Next = v
	}
	return &out
}
