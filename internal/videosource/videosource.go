// Package videosource classifies video URLs into renderable embed strategies.
package videosource

import (
	"context"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"
)

// Kind identifies the embed strategy chosen for a URL.
type Kind int

const (
	// Empty means no URL was given; nothing is rendered.
	Empty Kind = iota
	// YouTube is an inline frame on YouTube's embed endpoint.
	YouTube
	// GoogleDrive is an inline frame on Drive's preview endpoint.
	GoogleDrive
	// DirectFile is a native video element pointed at the raw URL.
	DirectFile
	// GenericEmbed wraps the raw URL in a permissive inline frame.
	GenericEmbed
)

// String returns a short name for the kind.
func (k Kind) String() string {
	switch k {
	case Empty:
		return "empty"
	case YouTube:
		return "youtube"
	case GoogleDrive:
		return "drive"
	case DirectFile:
		return "file"
	case GenericEmbed:
		return "embed"
	}
	return "unknown"
}

// Source is the resolved embed strategy for a video URL.
type Source struct {
	Kind Kind
	ID   string // YouTube video id or Drive file id, when applicable
	URL  string // trimmed original URL
}

// EmbedURL returns the address the display should load for this source.
// Empty sources return "".
func (s Source) EmbedURL() string {
	switch s.Kind {
	case YouTube:
		return "https://www.youtube.com/embed/" + s.ID + "?autoplay=1&mute=1&controls=1&rel=0"
	case GoogleDrive:
		return "https://drive.google.com/file/d/" + s.ID + "/preview"
	case DirectFile, GenericEmbed:
		return s.URL
	}
	return ""
}

// youtubeIDPattern matches an 11-character video id after the usual markers.
var youtubeIDPattern = regexp.MustCompile(`(?:v=|/embed/|youtu\.be/)([A-Za-z0-9_-]{11})`)

// driveIDPattern matches the file id in a /file/d/{id}/ path.
var driveIDPattern = regexp.MustCompile(`/file/d/([A-Za-z0-9_-]+)/`)

var directExtensions = []string{".mp4", ".webm", ".ogg"}

// DefaultProbeTimeout bounds the content-type probe.
const DefaultProbeTimeout = 8 * time.Second

// Resolver decides how to render an arbitrary, possibly malformed video
// URL. Resolution never fails: malformed input degrades down the chain to
// a generic inline frame.
type Resolver struct {
	client *http.Client
}

// New creates a resolver whose content-type probe uses the given timeout.
// A non-positive timeout falls back to DefaultProbeTimeout.
func New(probeTimeout time.Duration) *Resolver {
	if probeTimeout <= 0 {
		probeTimeout = DefaultProbeTimeout
	}
	return &Resolver{client: &http.Client{Timeout: probeTimeout}}
}

// Resolve classifies raw into an embed strategy. The only I/O is a HEAD
// probe for the content type of non-YouTube, non-Drive URLs; any probe
// failure is treated as an empty content type.
func (r *Resolver) Resolve(ctx context.Context, raw string) Source {
	u := strings.TrimSpace(raw)
	if u == "" {
		return Source{Kind: Empty}
	}

	if strings.Contains(u, "youtube.com") || strings.Contains(u, "youtu.be") {
		if id := extractYouTubeID(u); id != "" {
			return Source{Kind: YouTube, ID: id, URL: u}
		}
		// host matched but no id: keep falling through
	}

	if strings.Contains(u, "drive.google.com") {
		if id := extractDriveID(u); id != "" {
			return Source{Kind: GoogleDrive, ID: id, URL: u}
		}
	}

	if hasDirectExtension(u) || strings.Contains(r.probeContentType(ctx, u), "video") {
		return Source{Kind: DirectFile, URL: u}
	}

	return Source{Kind: GenericEmbed, URL: u}
}

// extractYouTubeID pulls an 11-character video id out of a YouTube URL,
// first by pattern, then from the v query parameter.
func extractYouTubeID(u string) string {
	if m := youtubeIDPattern.FindStringSubmatch(u); m != nil {
		return m[1]
	}
	parsed, err := url.Parse(u)
	if err != nil {
		return ""
	}
	if v := parsed.Query().Get("v"); len(v) == 11 {
		return v
	}
	return ""
}

// extractDriveID pulls a file id out of a Drive URL, first from the
// /file/d/{id}/ path, then from the id query parameter.
func extractDriveID(u string) string {
	if m := driveIDPattern.FindStringSubmatch(u); m != nil {
		return m[1]
	}
	parsed, err := url.Parse(u)
	if err != nil {
		return ""
	}
	return parsed.Query().Get("id")
}

func hasDirectExtension(u string) bool {
	path := u
	if parsed, err := url.Parse(u); err == nil && parsed.Path != "" {
		path = parsed.Path
	}
	path = strings.ToLower(path)
	for _, ext := range directExtensions {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}

// probeContentType issues a HEAD request and returns the lowercased
// Content-Type, or "" on any failure.
func (r *Resolver) probeContentType(ctx context.Context, u string) string {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, u, nil)
	if err != nil {
		return ""
	}
	resp, err := r.client.Do(req)
	if err != nil {
		return ""
	}
	defer resp.Body.Close()
	return strings.ToLower(resp.Header.Get("Content-Type"))
}
