package services

import (
	"io"
	"mime"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// extensionTypes is a fixed extension table so the inferred content type of
// an upload does not depend on the MIME files installed on the host.
var extensionTypes = map[string]string{
	".apng": "image/apng",
	".avif": "image/avif",
	".bmp":  "image/bmp",
	".gif":  "image/gif",
	".heic": "image/heic",
	".ico":  "image/vnd.microsoft.icon",
	".jpeg": "image/jpeg",
	".jpg":  "image/jpeg",
	".png":  "image/png",
	".svg":  "image/svg+xml",
	".tif":  "image/tiff",
	".tiff": "image/tiff",
	".webp": "image/webp",

	".3gp":  "video/3gpp",
	".avi":  "video/x-msvideo",
	".m4v":  "video/x-m4v",
	".mkv":  "video/x-matroska",
	".mov":  "video/quicktime",
	".mp4":  "video/mp4",
	".mpeg": "video/mpeg",
	".mpg":  "video/mpeg",
	".ogv":  "video/ogg",
	".webm": "video/webm",
	".wmv":  "video/x-ms-wmv",

	".pdf": "application/pdf",

	".key":  "application/vnd.apple.keynote",
	".odp":  "application/vnd.oasis.opendocument.presentation",
	".ppt":  "application/vnd.ms-powerpoint",
	".pptx": "application/vnd.openxmlformats-officedocument.presentationml.presentation",

	".doc":  "application/msword",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".odt":  "application/vnd.oasis.opendocument.text",
	".rtf":  "application/rtf",
	".txt":  "text/plain",
	".md":   "text/markdown",
	".csv":  "text/csv",
	".xls":  "application/vnd.ms-excel",
	".xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
}

// DetectMIME returns the media type of an upload without parameters: f.MIME
// when set, else the type of the file extension, else the type sniffed from
// the first bytes of src. src may be nil.
func DetectMIME(f UploadFile, src io.ReaderAt) string {
	if f.MIME != "" {
		return baseType(f.MIME)
	}
	if mt, ok := extensionTypes[strings.ToLower(filepath.Ext(f.Name))]; ok {
		return mt
	}
	if src == nil {
		return ""
	}
	size := f.Size
	if size <= 0 {
		return ""
	}
	detected, err := mimetype.DetectReader(io.NewSectionReader(src, 0, size))
	if err != nil {
		return ""
	}
	return baseType(detected.String())
}

func baseType(mt string) string {
	if parsed, _, err := mime.ParseMediaType(mt); err == nil {
		return parsed
	}
	return mt
}
