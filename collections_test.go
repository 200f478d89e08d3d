package cloudglue

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"
)

func TestCollectionCreateSendsEmptyDescription(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req map[string]any
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if _, ok := req["description"]; !ok {
			t.Error("description must always be present, even when empty")
		}
		if req["name"] != "lectures" {
			t.Errorf("name = %v", req["name"])
		}
		json.NewEncoder(w).Encode(Collection{ID: "coll-1", Name: "lectures"})
	}))

	collection, err := client.Collections.Create(context.Background(), "lectures", nil)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if collection.ID != "coll-1" {
		t.Errorf("ID = %q, want %q", collection.ID, "coll-1")
	}
}

func TestCollectionCreateRequiresName(t *testing.T) {
	calls := 0
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))

	if _, err := client.Collections.Create(context.Background(), "", nil); !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("Create() error = %v, want ErrInvalidRequest", err)
	}
	if calls != 0 {
		t.Errorf("server calls = %d, want 0", calls)
	}
}

func TestAddVideoRequiresFileID(t *testing.T) {
	calls := 0
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))

	_, err := client.Collections.AddVideo(context.Background(), "coll-1", "", nil)
	if !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("AddVideo() error = %v, want ErrInvalidRequest", err)
	}
	if calls != 0 {
		t.Errorf("server calls = %d, want 0", calls)
	}
}

func TestAddVideoWaitUntilFinish(t *testing.T) {
	gets := 0
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/collections/coll-1/videos":
			json.NewEncoder(w).Encode(CollectionFile{CollectionID: "coll-1", FileID: "file-1", Status: StatusPending})
		case r.Method == http.MethodGet && r.URL.Path == "/collections/coll-1/videos/file-1":
			gets++
			status := StatusProcessing
			if gets >= 2 {
				status = StatusNotApplicable
			}
			json.NewEncoder(w).Encode(CollectionFile{CollectionID: "coll-1", FileID: "file-1", Status: status})
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
	}))

	video, err := client.Collections.AddVideo(context.Background(), "coll-1", "file-1", &AddVideoOptions{
		WaitUntilFinish: true,
		Wait:            WaitOptions{PollInterval: time.Millisecond, Timeout: time.Second},
	})
	if err != nil {
		t.Fatalf("AddVideo() error = %v", err)
	}
	if video.Status != StatusNotApplicable {
		t.Errorf("Status = %q, want %q: not_applicable is terminal", video.Status, StatusNotApplicable)
	}
	if gets != 2 {
		t.Errorf("status fetches = %d, want 2", gets)
	}
}

func TestAddYouTubeVideoPollsByReturnedFileID(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/collections/coll-1/youtube":
			var req map[string]any
			json.NewDecoder(r.Body).Decode(&req)
			if req["url"] != "https://youtu.be/xyz" {
				t.Errorf("url = %v", req["url"])
			}
			meta, _ := req["metadata"].(map[string]any)
			if meta["channel"] != "conf" {
				t.Errorf("metadata = %v", req["metadata"])
			}
			// The server assigns the file ID; the poller must use it.
			json.NewEncoder(w).Encode(CollectionFile{CollectionID: "coll-1", FileID: "file-yt", Status: StatusPending})
		case r.Method == http.MethodGet && r.URL.Path == "/collections/coll-1/videos/file-yt":
			json.NewEncoder(w).Encode(CollectionFile{CollectionID: "coll-1", FileID: "file-yt", Status: StatusReady})
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
	}))

	video, err := client.Collections.AddYouTubeVideo(context.Background(), "coll-1", "https://youtu.be/xyz", &AddVideoOptions{
		Metadata:        Metadata{"channel": "conf"},
		WaitUntilFinish: true,
		Wait:            WaitOptions{PollInterval: time.Millisecond, Timeout: time.Second},
	})
	if err != nil {
		t.Fatalf("AddYouTubeVideo() error = %v", err)
	}
	if video.Status != StatusReady {
		t.Errorf("Status = %q, want %q", video.Status, StatusReady)
	}
}

func TestGetVideoDescriptionPaged(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/collections/coll-1/videos/file-1/description" {
			t.Errorf("Path = %q", r.URL.Path)
		}
		if r.URL.Query().Get("limit") != "2" || r.URL.Query().Get("offset") != "4" {
			t.Errorf("query = %v", r.URL.Query())
		}
		json.NewEncoder(w).Encode(DescribeData{
			Title:       "Keynote",
			SegmentDocs: []SegmentDoc{{StartTime: 0, EndTime: 12.5, Speech: "welcome"}},
		})
	}))

	data, err := client.Collections.GetVideoDescription(context.Background(), "coll-1", "file-1", 2, 4)
	if err != nil {
		t.Fatalf("GetVideoDescription() error = %v", err)
	}
	if data.Title != "Keynote" {
		t.Errorf("Title = %q, want %q", data.Title, "Keynote")
	}
	if len(data.SegmentDocs) != 1 || data.SegmentDocs[0].Speech != "welcome" {
		t.Errorf("SegmentDocs = %+v", data.SegmentDocs)
	}
}

func TestGetVideoEntities(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/collections/coll-1/videos/file-1/entities" {
			t.Errorf("Path = %q", r.URL.Path)
		}
		json.NewEncoder(w).Encode(Entities{
			CollectionID: "coll-1",
			FileID:       "file-1",
			Entities:     []map[string]any{{"type": "person", "name": "Ada"}},
		})
	}))

	entities, err := client.Collections.GetVideoEntities(context.Background(), "coll-1", "file-1")
	if err != nil {
		t.Fatalf("GetVideoEntities() error = %v", err)
	}
	if len(entities.Entities) != 1 || entities.Entities[0]["name"] != "Ada" {
		t.Errorf("Entities = %+v", entities.Entities)
	}
}

func TestRemoveVideo(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete || r.URL.Path != "/collections/coll-1/videos/file-1" {
			t.Errorf("got %s %s", r.Method, r.URL.Path)
		}
		json.NewEncoder(w).Encode(DeleteResponse{ID: "file-1", Deleted: true})
	}))

	out, err := client.Collections.RemoveVideo(context.Background(), "coll-1", "file-1")
	if err != nil {
		t.Fatalf("RemoveVideo() error = %v", err)
	}
	if !out.Deleted {
		t.Error("Deleted = false, want true")
	}
}
