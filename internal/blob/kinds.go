package blob

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Kind classifies an upload. The extension allow-list per kind is the only
// gate; the store never sniffs file contents.
type Kind string

const (
	KindImage Kind = "image"
	KindAudio Kind = "audio"
	KindVideo Kind = "video"
)

var allowedExts = map[Kind]map[string]bool{
	KindImage: {"png": true, "jpg": true, "jpeg": true, "gif": true, "svg": true, "webp": true},
	KindAudio: {"mp3": true, "wav": true, "ogg": true, "m4a": true},
	KindVideo: {"mp4": true, "webm": true, "mov": true, "ogg": true},
}

// ParseKind validates a kind string from an untrusted caller.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindImage, KindAudio, KindVideo:
		return Kind(s), nil
	default:
		return "", fmt.Errorf("unknown media kind %q", s)
	}
}

// Allowed reports whether filename's extension is on kind's allow-list.
func Allowed(filename string, kind Kind) bool {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	if ext == "" {
		return false
	}
	return allowedExts[kind][ext]
}
