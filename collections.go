package cloudglue

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// CollectionsService manages collections and the videos inside them.
type CollectionsService struct {
	client *Client
}

// Collection is a named group of videos with shared processing
// configuration.
type Collection struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Description    string          `json:"description"`
	CreatedAt      string          `json:"created_at"`
	FileCount      int             `json:"file_count"`
	DescribeConfig *DescribeConfig `json:"describe_config,omitempty"`
	ExtractConfig  *ExtractConfig  `json:"extract_config,omitempty"`
}

// DescribeConfig controls description processing for a collection's videos.
type DescribeConfig struct {
	EnableSpeech                 bool `json:"enable_speech"`
	EnableSceneText              bool `json:"enable_scene_text"`
	EnableVisualSceneDescription bool `json:"enable_visual_scene_description"`
}

// ExtractConfig controls extraction processing for a collection's videos.
type ExtractConfig struct {
	Prompt string         `json:"prompt,omitempty"`
	Schema map[string]any `json:"schema,omitempty"`
}

// CollectionList is a page of collections.
type CollectionList struct {
	Object string       `json:"object"`
	Data   []Collection `json:"data"`
	Total  int          `json:"total"`
	Limit  int          `json:"limit"`
	Offset int          `json:"offset"`
}

// CollectionFile is the association between a collection and a video,
// including its per-collection processing state.
type CollectionFile struct {
	CollectionID string   `json:"collection_id"`
	FileID       string   `json:"file_id"`
	Status       Status   `json:"status"`
	AddedAt      string   `json:"added_at"`
	Metadata     Metadata `json:"metadata,omitempty"`
	File         *File    `json:"file,omitempty"`
}

// CollectionFileList is a page of collection videos.
type CollectionFileList struct {
	Object string           `json:"object"`
	Data   []CollectionFile `json:"data"`
	Total  int              `json:"total"`
	Limit  int              `json:"limit"`
	Offset int              `json:"offset"`
}

// Entities is the entity data extracted from a collection video.
type Entities struct {
	CollectionID string           `json:"collection_id"`
	FileID       string           `json:"file_id"`
	Entities     []map[string]any `json:"entities"`
}

// CollectionParams configures Create beyond the required name.
type CollectionParams struct {
	Description    string
	DescribeConfig *DescribeConfig
	ExtractConfig  *ExtractConfig
}

// AddVideoOptions configures AddVideo and AddYouTubeVideo.
type AddVideoOptions struct {
	// Metadata is attached to the collection video (YouTube adds only).
	Metadata Metadata

	// WaitUntilFinish polls until the video's processing in this collection
	// reaches a terminal state.
	WaitUntilFinish bool

	// Wait tunes the polling cadence when WaitUntilFinish is set.
	Wait WaitOptions
}

// VideoListParams filters and paginates ListVideos.
type VideoListParams struct {
	ListParams

	// Status filters by processing status.
	Status Status
}

type newCollectionRequest struct {
	Name           string          `json:"name"`
	Description    string          `json:"description"`
	DescribeConfig *DescribeConfig `json:"describe_config,omitempty"`
	ExtractConfig  *ExtractConfig  `json:"extract_config,omitempty"`
}

type addVideoRequest struct {
	FileID string `json:"file_id"`
}

type addYouTubeVideoRequest struct {
	URL      string   `json:"url"`
	Metadata Metadata `json:"metadata,omitempty"`
}

// Create creates a collection. Names must be unique per account.
func (s *CollectionsService) Create(ctx context.Context, name string, params *CollectionParams) (*Collection, error) {
	if name == "" {
		return nil, newValidationError("name must be provided")
	}
	if params == nil {
		params = &CollectionParams{}
	}

	// The API rejects a missing description, so an empty one is sent
	// explicitly.
	req := newCollectionRequest{
		Name:           name,
		Description:    params.Description,
		DescribeConfig: params.DescribeConfig,
		ExtractConfig:  params.ExtractConfig,
	}

	var collection Collection
	if err := s.client.doJSON(ctx, http.MethodPost, "/collections", nil, req, &collection); err != nil {
		return nil, err
	}
	return &collection, nil
}

// List returns collections.
func (s *CollectionsService) List(ctx context.Context, params *ListParams) (*CollectionList, error) {
	var list CollectionList
	if err := s.client.doJSON(ctx, http.MethodGet, "/collections", params.values(), nil, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// Get retrieves a collection by ID.
func (s *CollectionsService) Get(ctx context.Context, collectionID string) (*Collection, error) {
	var collection Collection
	if err := s.client.doJSON(ctx, http.MethodGet, "/collections/"+collectionID, nil, nil, &collection); err != nil {
		return nil, err
	}
	return &collection, nil
}

// Delete removes a collection.
func (s *CollectionsService) Delete(ctx context.Context, collectionID string) (*DeleteResponse, error) {
	var out DeleteResponse
	if err := s.client.doJSON(ctx, http.MethodDelete, "/collections/"+collectionID, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AddVideo adds an uploaded file to a collection. When opts.WaitUntilFinish
// is set, it polls until the video's processing in this collection reaches a
// terminal state and returns that final state.
func (s *CollectionsService) AddVideo(ctx context.Context, collectionID, fileID string, opts *AddVideoOptions) (*CollectionFile, error) {
	if fileID == "" {
		return nil, newValidationError("either file reference or URL must be provided")
	}

	var video CollectionFile
	err := s.client.doJSON(ctx, http.MethodPost, "/collections/"+collectionID+"/videos", nil,
		addVideoRequest{FileID: fileID}, &video)
	if err != nil {
		return nil, err
	}

	return s.maybeWaitForVideo(ctx, collectionID, fileID, &video, opts)
}

// AddYouTubeVideo adds a YouTube video to a collection by URL.
func (s *CollectionsService) AddYouTubeVideo(ctx context.Context, collectionID, videoURL string, opts *AddVideoOptions) (*CollectionFile, error) {
	if videoURL == "" {
		return nil, newValidationError("either file reference or URL must be provided")
	}

	req := addYouTubeVideoRequest{URL: videoURL}
	if opts != nil {
		req.Metadata = opts.Metadata
	}

	var video CollectionFile
	err := s.client.doJSON(ctx, http.MethodPost, "/collections/"+collectionID+"/youtube", nil, req, &video)
	if err != nil {
		return nil, err
	}

	return s.maybeWaitForVideo(ctx, collectionID, video.FileID, &video, opts)
}

func (s *CollectionsService) maybeWaitForVideo(ctx context.Context, collectionID, fileID string, video *CollectionFile, opts *AddVideoOptions) (*CollectionFile, error) {
	if opts == nil || !opts.WaitUntilFinish {
		return video, nil
	}

	final := video
	_, err := pollStatus(ctx, "video processing", resourceTerminalStatuses, &opts.Wait,
		func(ctx context.Context) (Status, error) {
			got, err := s.GetVideo(ctx, collectionID, fileID)
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

// GetVideo retrieves one video's state within a collection.
func (s *CollectionsService) GetVideo(ctx context.Context, collectionID, fileID string) (*CollectionFile, error) {
	var video CollectionFile
	path := "/collections/" + collectionID + "/videos/" + fileID
	if err := s.client.doJSON(ctx, http.MethodGet, path, nil, nil, &video); err != nil {
		return nil, err
	}
	return &video, nil
}

// ListVideos returns the videos in a collection.
func (s *CollectionsService) ListVideos(ctx context.Context, collectionID string, params *VideoListParams) (*CollectionFileList, error) {
	var q url.Values
	if params != nil {
		q = params.ListParams.values()
		if params.Status != "" {
			q.Set("status", string(params.Status))
		}
	}

	var list CollectionFileList
	if err := s.client.doJSON(ctx, http.MethodGet, "/collections/"+collectionID+"/videos", q, nil, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// RemoveVideo removes a video from a collection. The underlying file is not
// deleted.
func (s *CollectionsService) RemoveVideo(ctx context.Context, collectionID, fileID string) (*DeleteResponse, error) {
	var out DeleteResponse
	path := "/collections/" + collectionID + "/videos/" + fileID
	if err := s.client.doJSON(ctx, http.MethodDelete, path, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetVideoDescription returns the description of a collection video,
// paginated over segments.
func (s *CollectionsService) GetVideoDescription(ctx context.Context, collectionID, fileID string, limit, offset int) (*DescribeData, error) {
	q := url.Values{}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	if offset > 0 {
		q.Set("offset", strconv.Itoa(offset))
	}

	var data DescribeData
	path := "/collections/" + collectionID + "/videos/" + fileID + "/description"
	if err := s.client.doJSON(ctx, http.MethodGet, path, q, nil, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

// GetVideoEntities returns the entities extracted from a collection video.
func (s *CollectionsService) GetVideoEntities(ctx context.Context, collectionID, fileID string) (*Entities, error) {
	var entities Entities
	path := "/collections/" + collectionID + "/videos/" + fileID + "/entities"
	if err := s.client.doJSON(ctx, http.MethodGet, path, nil, nil, &entities); err != nil {
		return nil, err
	}
	return &entities, nil
}
