package cloudglue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := New(WithAPIKey("test-key"), WithBaseURL(server.URL))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return client
}

func TestUploadMultipart(t *testing.T) {
	// GIF magic bytes: content type must come from the leading bytes, not
	// the filename.
	content := append([]byte("GIF89a"), make([]byte, 64)...)

	dir := t.TempDir()
	path := filepath.Join(dir, "clip.bin")
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatal(err)
	}

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/files" {
			t.Errorf("Path = %q, want /files", r.URL.Path)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("ParseMultipartForm() error = %v", err)
		}

		var meta map[string]any
		if err := json.Unmarshal([]byte(r.FormValue("metadata")), &meta); err != nil {
			t.Fatalf("metadata field not valid JSON: %v", err)
		}
		if meta["category"] != "demo" {
			t.Errorf("metadata[category] = %v, want %q", meta["category"], "demo")
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			t.Fatalf("FormFile() error = %v", err)
		}
		defer file.Close()

		if header.Filename != "clip.bin" {
			t.Errorf("Filename = %q, want %q", header.Filename, "clip.bin")
		}
		if ct := header.Header.Get("Content-Type"); !strings.HasPrefix(ct, "image/gif") {
			t.Errorf("part Content-Type = %q, want image/gif (sniffed)", ct)
		}
		got, _ := io.ReadAll(file)
		if len(got) != len(content) {
			t.Errorf("uploaded %d bytes, want %d", len(got), len(content))
		}

		json.NewEncoder(w).Encode(File{ID: "file-123", Status: StatusPending, Filename: "clip.bin"})
	}))

	file, err := client.Files.Upload(context.Background(), path, &UploadOptions{
		Metadata: Metadata{"category": "demo"},
	})
	if err != nil {
		t.Fatalf("Upload() error = %v", err)
	}
	if file.ID != "file-123" {
		t.Errorf("ID = %q, want %q", file.ID, "file-123")
	}
	if file.Status != StatusPending {
		t.Errorf("Status = %q, want %q: no waiting was requested", file.Status, StatusPending)
	}
}

func TestUploadMissingFile(t *testing.T) {
	calls := 0
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))

	_, err := client.Files.Upload(context.Background(), "/does/not/exist.mp4", nil)
	if !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("Upload() error = %v, want ErrInvalidRequest", err)
	}
	if calls != 0 {
		t.Errorf("server calls = %d, want 0", calls)
	}
}

func TestUploadWaitUntilFinish(t *testing.T) {
	gets := 0
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/files":
			json.NewEncoder(w).Encode(File{ID: "file-9", Status: StatusPending})
		case r.Method == http.MethodGet && r.URL.Path == "/files/file-9":
			gets++
			status := StatusProcessing
			if gets >= 3 {
				status = StatusReady
			}
			json.NewEncoder(w).Encode(File{ID: "file-9", Status: status})
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
	}))

	file, err := client.Files.UploadReader(context.Background(), "clip.mp4", strings.NewReader("xxxx"), &UploadOptions{
		WaitUntilFinish: true,
		Wait:            WaitOptions{PollInterval: time.Millisecond, Timeout: time.Second},
	})
	if err != nil {
		t.Fatalf("UploadReader() error = %v", err)
	}
	if file.Status != StatusReady {
		t.Errorf("Status = %q, want %q", file.Status, StatusReady)
	}
	if gets != 3 {
		t.Errorf("status fetches = %d, want 3", gets)
	}
}

func TestUploadWaitTimeout(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			json.NewEncoder(w).Encode(File{ID: "file-9", Status: StatusPending})
			return
		}
		json.NewEncoder(w).Encode(File{ID: "file-9", Status: StatusProcessing})
	}))

	_, err := client.Files.UploadReader(context.Background(), "clip.mp4", strings.NewReader("xxxx"), &UploadOptions{
		WaitUntilFinish: true,
		Wait:            WaitOptions{PollInterval: time.Millisecond, Timeout: 3 * time.Millisecond},
	})
	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("UploadReader() error = %v, want ErrTimeout", err)
	}
}

func TestFileListQuery(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("status") != "ready" || q.Get("limit") != "10" || q.Get("offset") != "20" ||
			q.Get("order") != "created_at" || q.Get("sort") != "asc" {
			t.Errorf("query = %v", q)
		}
		json.NewEncoder(w).Encode(FileList{Data: []File{{ID: "f1"}, {ID: "f2"}}, Total: 2})
	}))

	list, err := client.Files.List(context.Background(), &FileListParams{
		ListParams: ListParams{Limit: 10, Offset: 20, Order: "created_at", Sort: "asc"},
		Status:     StatusReady,
	})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(list.Data) != 2 {
		t.Errorf("Data count = %d, want 2", len(list.Data))
	}
}

func TestFileDelete(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Errorf("Method = %q, want DELETE", r.Method)
		}
		if r.URL.Path != "/files/file-1" {
			t.Errorf("Path = %q, want /files/file-1", r.URL.Path)
		}
		fmt.Fprint(w, `{"id":"file-1","deleted":true}`)
	}))

	out, err := client.Files.Delete(context.Background(), "file-1")
	if err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if !out.Deleted {
		t.Error("Deleted = false, want true")
	}
}
