package views

// ItemResult is the outcome of one item of a batch operation.
type ItemResult struct {
	ID    string
	Title string
	Path  string
	Err   error
}

// BatchResult lists per-item outcomes in the order they were attempted.
type BatchResult struct {
	Items []ItemResult
}

func (b *BatchResult) add(r ItemResult) {
	b.Items = append(b.Items, r)
}

func (b BatchResult) Succeeded() int {
	n := 0
	for _, it := range b.Items {
		if it.Err == nil {
			n++
		}
	}
	return n
}

func (b BatchResult) Failed() []ItemResult {
	var out []ItemResult
	for _, it := range b.Items {
		if it.Err != nil {
			out = append(out, it)
		}
	}
	return out
}
