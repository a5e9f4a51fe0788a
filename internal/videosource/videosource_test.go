package videosource

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestResolveEmpty(t *testing.T) {
	r := New(time.Second)
	assert.Equal(t, Empty, r.Resolve(context.Background(), "").Kind)
	assert.Equal(t, Empty, r.Resolve(context.Background(), "   ").Kind)
}

func TestResolveYouTube(t *testing.T) {
	r := New(time.Second)
	tests := []struct {
		url string
		id  string
	}{
		{"https://youtu.be/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=5", "dQw4w9WgXcQ"},
		{"https://www.youtube.com/embed/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
	}
	for _, tt := range tests {
		src := r.Resolve(context.Background(), tt.url)
		assert.Equal(t, YouTube, src.Kind, tt.url)
		assert.Equal(t, tt.id, src.ID, tt.url)
		assert.Contains(t, src.EmbedURL(), "youtube.com/embed/"+tt.id)
		assert.Contains(t, src.EmbedURL(), "mute=1")
	}
}

func TestResolveGoogleDrive(t *testing.T) {
	r := New(time.Second)

	src := r.Resolve(context.Background(), "https://drive.google.com/file/d/1A2b3C/view?usp=sharing")
	assert.Equal(t, GoogleDrive, src.Kind)
	assert.Equal(t, "1A2b3C", src.ID)
	assert.Equal(t, "https://drive.google.com/file/d/1A2b3C/preview", src.EmbedURL())

	src = r.Resolve(context.Background(), "https://drive.google.com/uc?export=download&id=FILE42")
	assert.Equal(t, GoogleDrive, src.Kind)
	assert.Equal(t, "FILE42", src.ID)
}

// The extension match makes the probe irrelevant.
func TestResolveDirectFileByExtension(t *testing.T) {
	r := New(time.Second)
	for _, u := range []string{
		"https://cdn.example.com/clip.mp4",
		"https://cdn.example.com/CLIP.MP4",
		"https://cdn.example.com/a.webm?token=1",
		"https://cdn.example.com/a.ogg",
	} {
		assert.Equal(t, DirectFile, r.Resolve(context.Background(), u).Kind, u)
	}
}

func TestResolveDirectFileByContentType(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "video/mp4")
	}))
	defer srv.Close()

	r := New(time.Second)
	src := r.Resolve(context.Background(), srv.URL+"/stream")
	assert.Equal(t, DirectFile, src.Kind)
}

// A failed probe falls through to the generic frame rather than erroring.
func TestResolveGenericEmbedWhenProbeFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	unreachable := srv.URL
	srv.Close()

	r := New(200 * time.Millisecond)
	src := r.Resolve(context.Background(), unreachable+"/player?id=xyz")
	assert.Equal(t, GenericEmbed, src.Kind)
	assert.Equal(t, unreachable+"/player?id=xyz", src.EmbedURL())
}

func TestResolveGenericEmbedForHTML(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
	}))
	defer srv.Close()

	r := New(time.Second)
	assert.Equal(t, GenericEmbed, r.Resolve(context.Background(), srv.URL+"/player").Kind)
}

// A YouTube host with no extractable id falls through instead of failing.
func TestResolveYouTubeWithoutIDFallsThrough(t *testing.T) {
	r := New(200 * time.Millisecond)
	src := r.Resolve(context.Background(), "https://www.youtube.com/playlist?list=PL123")
	assert.Equal(t, GenericEmbed, src.Kind)
}

func TestResolveNeverPanicsOnGarbage(t *testing.T) {
	r := New(200 * time.Millisecond)
	for _, u := range []string{"::::", "ht!tp//", "youtube.com", "drive.google.com/?x=1"} {
		assert.NotPanics(t, func() { r.Resolve(context.Background(), u) }, u)
	}
}
