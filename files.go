package cloudglue

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"os"
	"path/filepath"

	"github.com/gabriel-vasile/mimetype"
)

// FilesService manages uploaded video files.
type FilesService struct {
	client *Client
}

// File is an uploaded file and its processing state.
type File struct {
	ID        string     `json:"id"`
	Status    Status     `json:"status"`
	Filename  string     `json:"filename"`
	URI       string     `json:"uri"`
	Bytes     int64      `json:"bytes"`
	CreatedAt string     `json:"created_at"`
	Metadata  Metadata   `json:"metadata,omitempty"`
	VideoInfo *VideoInfo `json:"video_info,omitempty"`
}

// VideoInfo describes the video content of a file.
type VideoInfo struct {
	DurationSeconds float64 `json:"duration_seconds"`
	Height          int     `json:"height"`
	Width           int     `json:"width"`
	Format          string  `json:"format"`
	HasAudio        bool    `json:"has_audio"`
}

// FileList is a page of files.
type FileList struct {
	Object string `json:"object"`
	Data   []File `json:"data"`
	Total  int    `json:"total"`
	Limit  int    `json:"limit"`
	Offset int    `json:"offset"`
}

// UploadOptions configures an upload.
type UploadOptions struct {
	// Metadata is attached to the file and searchable later.
	Metadata Metadata

	// WaitUntilFinish polls until processing reaches a terminal state
	// before returning.
	WaitUntilFinish bool

	// Wait tunes the polling cadence when WaitUntilFinish is set.
	Wait WaitOptions
}

// FileListParams filters and paginates List.
type FileListParams struct {
	ListParams

	// Status filters by processing status.
	Status Status
}

// Upload uploads a local file. When opts.WaitUntilFinish is set, it polls
// until processing completes and returns the final file state; otherwise it
// returns the immediate, possibly still-processing state.
func (s *FilesService) Upload(ctx context.Context, path string, opts *UploadOptions) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, newValidationError(fmt.Sprintf("file not found: %s", path))
	}
	defer f.Close()

	return s.UploadReader(ctx, filepath.Base(path), f, opts)
}

// UploadReader uploads file content from r under the given filename. The
// content type is detected from the leading bytes rather than the filename.
func (s *FilesService) UploadReader(ctx context.Context, filename string, r io.Reader, opts *UploadOptions) (*File, error) {
	if opts == nil {
		opts = &UploadOptions{}
	}

	// Sniff the content type, then stitch the consumed header back on.
	header := make([]byte, 3072)
	n, err := io.ReadFull(r, header)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return nil, newNetworkError(err, "")
	}
	mtype := mimetype.Detect(header[:n])
	content := io.MultiReader(bytes.NewReader(header[:n]), r)

	var file File
	err = s.client.doMultipart(ctx, "/files", func(w *multipart.Writer) error {
		if len(opts.Metadata) > 0 {
			encoded, err := json.Marshal(opts.Metadata)
			if err != nil {
				return newDecodeError(err, "")
			}
			if err := w.WriteField("metadata", string(encoded)); err != nil {
				return newNetworkError(err, "")
			}
		}

		partHeader := make(textproto.MIMEHeader)
		partHeader.Set("Content-Disposition",
			fmt.Sprintf(`form-data; name="file"; filename=%q`, filename))
		partHeader.Set("Content-Type", mtype.String())
		part, err := w.CreatePart(partHeader)
		if err != nil {
			return newNetworkError(err, "")
		}
		if _, err := io.Copy(part, content); err != nil {
			return newNetworkError(err, "")
		}
		return nil
	}, &file)
	if err != nil {
		return nil, err
	}

	if !opts.WaitUntilFinish {
		return &file, nil
	}

	final := &file
	_, err = pollStatus(ctx, "file processing", resourceTerminalStatuses, &opts.Wait,
		func(ctx context.Context) (Status, error) {
			got, err := s.Get(ctx, file.ID)
			if err != nil {
				return "", err
			}
			final = got
			return got.Status, nil
		})
	if err != nil {
		return nil, err
	}
	return final, nil
}

// Get retrieves a file by ID.
func (s *FilesService) Get(ctx context.Context, fileID string) (*File, error) {
	var file File
	if err := s.client.doJSON(ctx, http.MethodGet, "/files/"+fileID, nil, nil, &file); err != nil {
		return nil, err
	}
	return &file, nil
}

// List returns files, newest first by default.
func (s *FilesService) List(ctx context.Context, params *FileListParams) (*FileList, error) {
	var q url.Values
	if params != nil {
		q = params.ListParams.values()
		if params.Status != "" {
			q.Set("status", string(params.Status))
		}
	}

	var list FileList
	if err := s.client.doJSON(ctx, http.MethodGet, "/files", q, nil, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// Delete removes a file.
func (s *FilesService) Delete(ctx context.Context, fileID string) (*DeleteResponse, error) {
	var out DeleteResponse
	if err := s.client.doJSON(ctx, http.MethodDelete, "/files/"+fileID, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
