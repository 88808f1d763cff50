// Copyright (c) 2026 marsAI. All rights reserved.

package submission

import (
	"path"
	"strings"

	"github.com/marsai/festival/internal/platform/apperr"
)

// MediaKind is an uploadable deliverable.
type MediaKind string

const (
	MediaPoster    MediaKind = "poster"
	MediaStill     MediaKind = "still"
	MediaSubtitles MediaKind = "subtitles"
)

// Upload size limits in bytes.
const (
	MaxImageBytes    = 10 << 20
	MaxSubtitleBytes = 1 << 20
)

// FieldFile is the multipart part carrying the upload.
const FieldFile = "file"

var (
	errUnsupportedType = apperr.ValidationError("Validation failed", apperr.FieldError{
		Field: FieldFile, Rule: "type", Message: "Unsupported file type", Key: "Unsupported file type",
	})
	errFileTooLarge = apperr.ValidationError("Validation failed", apperr.FieldError{
		Field: FieldFile, Rule: "size", Message: "File is too large", Key: "File is too large",
	})
)

// ParseMediaKind maps a URL segment onto a kind.
func ParseMediaKind(raw string) (MediaKind, bool) {
	switch kind := MediaKind(strings.ToLower(raw)); kind {
	case MediaPoster, MediaStill, MediaSubtitles:
		return kind, true
	}
	return "", false
}

// MaxBytes is the upload limit of the kind.
func (kind MediaKind) MaxBytes() int64 {
	if kind == MediaSubtitles {
		return MaxSubtitleBytes
	}
	return MaxImageBytes
}

// Accepts reports whether a file of the given media type fits the kind.
func (kind MediaKind) Accepts(contentType string) bool {
	if kind == MediaSubtitles {
		return contentType == "application/x-subrip" || contentType == "text/vtt"
	}
	return strings.HasPrefix(contentType, "image/")
}

// objectKey places uploads under the draft that owns them.
func objectKey(draftID string, kind MediaKind, objectID, fileName string) string {
	return path.Join("drafts", draftID, string(kind), objectID+strings.ToLower(path.Ext(fileName)))
}

// MediaURLs are presigned download links for the draft's uploaded files.
type MediaURLs struct {
	Poster    string   `json:"poster,omitempty"`
	Subtitles string   `json:"subtitles,omitempty"`
	Stills    []string `json:"stills"`
}
