package handler

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestValidFilename(t *testing.T) {
	tests := []struct {
		name string
		file string
		ext  string
		want bool
	}{
		{"valid screenshot", "profile_20250101_120000_abcd1234.png", ".png", true},
		{"valid report", "linkedin_analysis.html", ".html", true},
		{"valid data", "analysis_results.json", ".json", true},
		{"wrong extension", "analysis_results.json", ".png", false},
		{"no extension", "profile", ".png", false},
		{"parent traversal", "../../etc/passwd", ".png", false},
		{"dotdot inside name", "evil..png", ".png", false},
		{"leading dot", ".hidden.png", ".png", false},
		{"slash", "dir/file.png", ".png", false},
		{"backslash", `dir\file.png`, ".png", false},
		{"percent encoding", "..%2F..%2Fetc%2Fpasswd.png", ".png", false},
		{"null byte", "file\x00.png", ".png", false},
		{"empty", "", ".png", false},
		{"space", "my file.png", ".png", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := validFilename(tt.file, tt.ext); got != tt.want {
				t.Errorf("validFilename(%q, %q) = %v, want %v", tt.file, tt.ext, got, tt.want)
			}
		})
	}
}

func artifactRouter(dir string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/screenshot/:filename", ServeArtifact(dir, ".png"))
	return r
}

func TestServeArtifact_Existing(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "shot.png"), []byte("png-bytes"), 0o644); err != nil {
		t.Fatal(err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/screenshot/shot.png", nil)
	artifactRouter(dir).ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", w.Code, w.Body.String())
	}
	if w.Body.String() != "png-bytes" {
		t.Errorf("body = %q", w.Body.String())
	}
}

func TestServeArtifact_Missing(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/screenshot/missing.png", nil)
	artifactRouter(t.TempDir()).ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

// Invalid names must be rejected before any filesystem access: a directory
// that does not exist still yields 400, never 404.
func TestServeArtifact_InvalidNameBeforeFS(t *testing.T) {
	router := artifactRouter("/nonexistent-artifact-dir")

	for _, name := range []string{"evil..png", "shot.txt", "a;b.png"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/screenshot/"+name, nil)
		router.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("GET %q: status = %d, want 400", name, w.Code)
		}
	}
}

func TestServeArtifact_DirectoryIsNotAnArtifact(t *testing.T) {
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, "sub.png"), 0o755); err != nil {
		t.Fatal(err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/screenshot/sub.png", nil)
	artifactRouter(dir).ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404 for a directory", w.Code)
	}
}
