package models

// Stats is the dashboard summary across all categories.
type Stats struct {
	TotalSections int
	TotalFiles    int
	Images        int
	Videos        int
	Documents     int
	Presentations int
	PDFs          int
}

// Add counts one item into the per-type totals.
func (s *Stats) Add(c Content) {
	s.TotalFiles++
	switch c.Type {
	case ContentTypeImage:
		s.Images++
	case ContentTypeVideo:
		s.Videos++
	case ContentTypeDocument:
		s.Documents++
	case ContentTypePPT:
		s.Presentations++
	case ContentTypePDF:
		s.PDFs++
	}
}
