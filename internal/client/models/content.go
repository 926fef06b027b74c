package models

import (
	"encoding/json"
	"strings"
	"time"
)

// ContentType classifies a content item. The value is inferred on upload and
// stored by the server as-is.
type ContentType string

const (
	ContentTypeImage    ContentType = "image"
	ContentTypeVideo    ContentType = "video"
	ContentTypePDF      ContentType = "pdf"
	ContentTypePPT      ContentType = "ppt"
	ContentTypeDocument ContentType = "document"
)

// ContentTypes lists every type in the order the filter tabs are shown.
var ContentTypes = []ContentType{
	ContentTypeImage,
	ContentTypePDF,
	ContentTypePPT,
	ContentTypeVideo,
	ContentTypeDocument,
}

// Label is the plural tab caption of the type.
func (t ContentType) Label() string {
	switch t {
	case ContentTypeImage:
		return "Images"
	case ContentTypeVideo:
		return "Videos"
	case ContentTypePDF:
		return "PDFs"
	case ContentTypePPT:
		return "PPTs"
	case ContentTypeDocument:
		return "Documents"
	}
	return string(t)
}

// Glyph is a short marker used when listing items in a terminal.
func (t ContentType) Glyph() string {
	switch t {
	case ContentTypeImage:
		return "[img]"
	case ContentTypeVideo:
		return "[vid]"
	case ContentTypePDF:
		return "[pdf]"
	case ContentTypePPT:
		return "[ppt]"
	}
	return "[doc]"
}

// InferContentType maps a MIME type and a file name to a ContentType using a
// fixed precedence: image/*, video/*, application/pdf, .pdf, presentation
// (.ppt/.pptx or MIME), document (.doc/.docx or MIME), and document as the
// fallback. Either argument may be empty.
func InferContentType(mime, name string) ContentType {
	name = strings.ToLower(name)

	switch {
	case strings.HasPrefix(mime, "image/"):
		return ContentTypeImage
	case strings.HasPrefix(mime, "video/"):
		return ContentTypeVideo
	case mime == "application/pdf":
		return ContentTypePDF
	case strings.HasSuffix(name, ".pdf"):
		return ContentTypePDF
	case strings.HasSuffix(name, ".ppt"), strings.HasSuffix(name, ".pptx"), strings.Contains(mime, "presentation"):
		return ContentTypePPT
	case strings.HasSuffix(name, ".doc"), strings.HasSuffix(name, ".docx"), strings.Contains(mime, "document"):
		return ContentTypeDocument
	}
	return ContentTypeDocument
}

// Content is one uploaded file record of a category.
type Content struct {
	ID          string      `json:"_id"`
	Title       string      `json:"title"`
	Type        ContentType `json:"type"`
	URL         string      `json:"url"`
	Description string      `json:"description"`
	CreatedAt   time.Time   `json:"created_at"`
}

// UnmarshalJSON accepts "_id"/"id" and "created_at"/"createdAt".
func (c *Content) UnmarshalJSON(data []byte) error {
	var raw struct {
		MongoID     string          `json:"_id"`
		ID          string          `json:"id"`
		Title       string          `json:"title"`
		Type        ContentType     `json:"type"`
		URL         string          `json:"url"`
		Description string          `json:"description"`
		CreatedAt   json.RawMessage `json:"created_at"`
		CreatedAtJS json.RawMessage `json:"createdAt"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*c = Content{
		ID:          firstNonEmpty(raw.MongoID, raw.ID),
		Title:       raw.Title,
		Type:        raw.Type,
		URL:         raw.URL,
		Description: raw.Description,
	}
	c.CreatedAt = rawTimestamp(raw.CreatedAt)
	if c.CreatedAt.IsZero() {
		c.CreatedAt = rawTimestamp(raw.CreatedAtJS)
	}
	return nil
}

// rawTimestamp reads a JSON string timestamp or a number of milliseconds
// since the Unix epoch. Anything else yields the zero time.
func rawTimestamp(data json.RawMessage) time.Time {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		return ParseTimestamp(s)
	}
	var ms float64
	if err := json.Unmarshal(data, &ms); err == nil && ms > 0 {
		return time.UnixMilli(int64(ms)).UTC()
	}
	return time.Time{}
}

// timestampLayouts are tried in order by ParseTimestamp.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC1123,
	time.RFC1123Z,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTimestamp reads a server timestamp in any of the common layouts. An
// unparseable value yields the zero time so one odd record does not spoil a
// whole listing.
func ParseTimestamp(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// NewContent is the payload of a create-content request.
type NewContent struct {
	Title       string      `json:"title"`
	Type        ContentType `json:"type"`
	URL         string      `json:"url"`
	Description string      `json:"description"`
}

// Filter narrows a content list to one type, or keeps everything.
type Filter string

const FilterAll Filter = "all"

// ParseFilter accepts "all", a type name or a tab label ("PDFs").
func ParseFilter(s string) (Filter, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || s == string(FilterAll) {
		return FilterAll, true
	}
	for _, t := range ContentTypes {
		if s == string(t) || s == strings.ToLower(t.Label()) {
			return Filter(t), true
		}
	}
	return FilterAll, false
}

// Match reports whether c passes the filter.
func (f Filter) Match(c Content) bool {
	return f == FilterAll || ContentType(f) == c.Type
}
