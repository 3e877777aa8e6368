package media

import (
	"encoding/base64"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"path/filepath"
	"strings"
)

// ErrNotImage is the user-facing rejection for non-image uploads.
var ErrNotImage = errors.New("media: please select a valid image file")

// ErrNotVideo is the user-facing rejection for non-video uploads.
var ErrNotVideo = errors.New("media: please select a valid video file")

// ErrTooLarge rejects uploads above the configured cap.
var ErrTooLarge = errors.New("media: file exceeds the upload size limit")

// Kind partitions uploads by the primitive that accepts them.
type Kind string

const (
	KindImage Kind = "image"
	KindVideo Kind = "video"
)

// Detect sniffs the MIME type of an upload, preferring content sniffing and
// falling back to the filename extension for types the sniffer cannot see
// (several video containers).
func Detect(filename string, data []byte) string {
	sniffed := http.DetectContentType(data)
	if sniffed != "application/octet-stream" {
		return sniffed
	}
	if ext := filepath.Ext(filename); ext != "" {
		if byExt := mime.TypeByExtension(ext); byExt != "" {
			return byExt
		}
	}
	return sniffed
}

// Validate checks an upload against the accepting primitive and the size
// cap. Rejections carry the alert text shown to the editor; no partial
// state change follows a rejection.
func Validate(kind Kind, filename string, data []byte, maxBytes int64) (string, error) {
	if maxBytes > 0 && int64(len(data)) > maxBytes {
		return "", ErrTooLarge
	}

	mimeType := Detect(filename, data)
	base := strings.SplitN(mimeType, ";", 2)[0]

	switch kind {
	case KindImage:
		if !strings.HasPrefix(base, "image/") {
			return "", ErrNotImage
		}
	case KindVideo:
		if !strings.HasPrefix(base, "video/") {
			return "", ErrNotVideo
		}
	default:
		return "", fmt.Errorf("media: unknown upload kind %q", kind)
	}
	return base, nil
}

// DataURI encodes an upload as the data-URI string stored in the CMS map,
// the same representation the browser reader produced.
func DataURI(mimeType string, data []byte) string {
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
}
