package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInferContentType(t *testing.T) {
	tests := []struct {
		name     string
		mime     string
		fileName string
		want     ContentType
	}{
		{"video mime", "video/mp4", "clip.mp4", ContentTypeVideo},
		{"image mime", "image/png", "board.png", ContentTypeImage},
		{"image mime beats pdf suffix", "image/jpeg", "scan.pdf", ContentTypeImage},
		{"pdf mime", "application/pdf", "whatever.bin", ContentTypePDF},
		{"pdf suffix without mime", "", "syllabus.pdf", ContentTypePDF},
		{"pdf suffix is case-insensitive", "", "SYLLABUS.PDF", ContentTypePDF},
		{"pptx without mime", "", "deck.pptx", ContentTypePPT},
		{"ppt without mime", "", "deck.ppt", ContentTypePPT},
		{"presentation mime", "application/vnd.openxmlformats-officedocument.presentationml.presentation", "deck", ContentTypePPT},
		{"docx without mime", "", "notes.docx", ContentTypeDocument},
		{"doc without mime", "", "notes.doc", ContentTypeDocument},
		{"document mime", "application/vnd.oasis.opendocument.text", "x", ContentTypeDocument},
		{"unknown mime and suffix", "application/octet-stream", "archive.zip", ContentTypeDocument},
		{"nothing at all", "", "", ContentTypeDocument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, InferContentType(tt.mime, tt.fileName))
		})
	}
}

func TestInferContentType_Deterministic(t *testing.T) {
	for i := 0; i < 10; i++ {
		require.Equal(t, ContentTypePPT, InferContentType("", "deck.pptx"))
	}
}

func TestParseFilter(t *testing.T) {
	tests := []struct {
		in     string
		want   Filter
		wantOK bool
	}{
		{"all", FilterAll, true},
		{"", FilterAll, true},
		{"pdf", Filter(ContentTypePDF), true},
		{"PDFs", Filter(ContentTypePDF), true},
		{" images ", Filter(ContentTypeImage), true},
		{"ppt", Filter(ContentTypePPT), true},
		{"spreadsheet", FilterAll, false},
	}
	for _, tt := range tests {
		got, ok := ParseFilter(tt.in)
		assert.Equal(t, tt.wantOK, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestFilterMatch(t *testing.T) {
	pdf := Content{Type: ContentTypePDF}
	assert.True(t, FilterAll.Match(pdf))
	assert.True(t, Filter(ContentTypePDF).Match(pdf))
	assert.False(t, Filter(ContentTypeVideo).Match(pdf))
}

func TestContentUnmarshal_AcceptsBothIDForms(t *testing.T) {
	var items []Content
	err := json.Unmarshal([]byte(`[
		{"_id":"a1","title":"syllabus.pdf","type":"pdf","url":"file:///x","description":"d","created_at":"2026-10-01T08:00:00.000Z"},
		{"id":"b2","title":"clip.mp4","type":"video","createdAt":"2026-10-02T09:30:00Z"}
	]`), &items)
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, "a1", items[0].ID)
	assert.Equal(t, ContentTypePDF, items[0].Type)
	assert.True(t, items[0].CreatedAt.Equal(time.Date(2026, 10, 1, 8, 0, 0, 0, time.UTC)))

	assert.Equal(t, "b2", items[1].ID)
	assert.True(t, items[1].CreatedAt.Equal(time.Date(2026, 10, 2, 9, 30, 0, 0, time.UTC)))
}

func TestParseTimestamp(t *testing.T) {
	want := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		name string
		in   string
		want time.Time
	}{
		{name: "RFC 3339", in: "2025-05-01T12:00:00Z", want: want},
		{name: "RFC 3339 with millis", in: "2025-05-01T12:00:00.000Z", want: want},
		{name: "RFC 1123", in: "Thu, 01 May 2025 12:00:00 GMT", want: want},
		{name: "RFC 1123 numeric zone", in: "Thu, 01 May 2025 14:00:00 +0200", want: want},
		{name: "SQL datetime", in: "2025-05-01 12:00:00", want: want},
		{name: "date only", in: "2025-05-01", want: time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)},
		{name: "garbage", in: "yesterday-ish"},
		{name: "empty", in: ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ParseTimestamp(tc.in)
			assert.True(t, tc.want.Equal(got), "got %v", got)
		})
	}
}

func TestContentUnmarshal_OddTimestampsDoNotFail(t *testing.T) {
	var items []Content
	err := json.Unmarshal([]byte(`[
		{"_id":"a1","title":"a.pdf","created_at":"Thu, 01 May 2025 12:00:00 GMT"},
		{"_id":"b2","title":"b.pdf","created_at":"not a date"},
		{"_id":"c3","title":"c.pdf","createdAt":1746100800000},
		{"_id":"d4","title":"d.pdf","created_at":null},
		{"_id":"e5","title":"e.pdf","created_at":{"$date":"x"}}
	]`), &items)
	require.NoError(t, err)
	require.Len(t, items, 5)

	want := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	assert.True(t, items[0].CreatedAt.Equal(want))
	assert.True(t, items[1].CreatedAt.IsZero())
	assert.True(t, items[2].CreatedAt.Equal(want))
	assert.True(t, items[3].CreatedAt.IsZero())
	assert.True(t, items[4].CreatedAt.IsZero())
}

func TestCategoryUnmarshal(t *testing.T) {
	var cats []Category
	require.NoError(t, json.Unmarshal([]byte(`[{"_id":"c1","name":"Math"},{"id":"c2","name":"Art"}]`), &cats))
	assert.Equal(t, []Category{{ID: "c1", Name: "Math"}, {ID: "c2", Name: "Art"}}, cats)
}

func TestStatsAdd(t *testing.T) {
	var s Stats
	for _, ct := range []ContentType{ContentTypeImage, ContentTypeVideo, ContentTypeDocument, ContentTypePPT, ContentTypePDF, ContentTypeImage} {
		s.Add(Content{Type: ct})
	}
	assert.Equal(t, Stats{TotalFiles: 6, Images: 2, Videos: 1, Documents: 1, Presentations: 1, PDFs: 1}, s)
	assert.Equal(t, s.TotalFiles, s.Images+s.Videos+s.Documents+s.Presentations+s.PDFs)
}

func TestLabelsAndGlyphs(t *testing.T) {
	assert.Equal(t, "PDFs", ContentTypePDF.Label())
	assert.Equal(t, "[ppt]", ContentTypePPT.Glyph())
	assert.Equal(t, "[doc]", ContentType("unknown").Glyph())
}
