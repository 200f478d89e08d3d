package cloudglue

import (
	"context"
	"net/http"
	"net/url"
)

// ShareService manages publicly shareable assets: time-limited public links
// to files or collections.
type ShareService struct {
	client *Client
}

// AssetType identifies what kind of resource a shareable asset points to.
type AssetType string

// Asset types accepted by the API.
const (
	AssetTypeFile       AssetType = "file"
	AssetTypeCollection AssetType = "collection"
)

// ShareableAsset is a public link to a file or collection.
type ShareableAsset struct {
	ID        string    `json:"id"`
	AssetType AssetType `json:"asset_type"`
	AssetID   string    `json:"asset_id"`
	Name      string    `json:"name,omitempty"`
	URL       string    `json:"url"`
	ExpiresAt string    `json:"expires_at,omitempty"`
	CreatedAt string    `json:"created_at"`
}

// ShareableAssetList is a page of shareable assets.
type ShareableAssetList struct {
	Object string           `json:"object"`
	Data   []ShareableAsset `json:"data"`
	Total  int              `json:"total"`
	Limit  int              `json:"limit"`
	Offset int              `json:"offset"`
}

// ShareParams configures Create beyond the required asset reference.
type ShareParams struct {
	// Name labels the shareable asset.
	Name string

	// ExpiresAt sets an expiration time (ISO 8601).
	ExpiresAt string
}

// ShareListParams filters and paginates List.
type ShareListParams struct {
	ListParams

	// AssetType filters by asset type.
	AssetType AssetType

	// CreatedBefore and CreatedAfter filter by creation date
	// (YYYY-MM-DD, UTC).
	CreatedBefore string
	CreatedAfter  string
}

type createShareableAssetRequest struct {
	AssetType AssetType `json:"asset_type"`
	AssetID   string    `json:"asset_id"`
	Name      string    `json:"name,omitempty"`
	ExpiresAt string    `json:"expires_at,omitempty"`
}

type updateShareableAssetRequest struct {
	Name      string `json:"name,omitempty"`
	ExpiresAt string `json:"expires_at,omitempty"`
}

// Create makes an asset publicly reachable at a shareable URL.
func (s *ShareService) Create(ctx context.Context, assetType AssetType, assetID string, params *ShareParams) (*ShareableAsset, error) {
	if assetType == "" || assetID == "" {
		return nil, newValidationError("asset type and asset id must be provided")
	}

	req := createShareableAssetRequest{AssetType: assetType, AssetID: assetID}
	if params != nil {
		req.Name = params.Name
		req.ExpiresAt = params.ExpiresAt
	}

	var asset ShareableAsset
	if err := s.client.doJSON(ctx, http.MethodPost, "/share", nil, req, &asset); err != nil {
		return nil, err
	}
	return &asset, nil
}

// Get retrieves a shareable asset by ID.
func (s *ShareService) Get(ctx context.Context, shareableAssetID string) (*ShareableAsset, error) {
	var asset ShareableAsset
	if err := s.client.doJSON(ctx, http.MethodGet, "/share/"+shareableAssetID, nil, nil, &asset); err != nil {
		return nil, err
	}
	return &asset, nil
}

// List returns shareable assets.
func (s *ShareService) List(ctx context.Context, params *ShareListParams) (*ShareableAssetList, error) {
	var q url.Values
	if params != nil {
		q = params.ListParams.values()
		if params.AssetType != "" {
			q.Set("asset_type", string(params.AssetType))
		}
		if params.CreatedBefore != "" {
			q.Set("created_before", params.CreatedBefore)
		}
		if params.CreatedAfter != "" {
			q.Set("created_after", params.CreatedAfter)
		}
	}

	var list ShareableAssetList
	if err := s.client.doJSON(ctx, http.MethodGet, "/share", q, nil, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// Update changes a shareable asset's name or expiration.
func (s *ShareService) Update(ctx context.Context, shareableAssetID string, params *ShareParams) (*ShareableAsset, error) {
	req := updateShareableAssetRequest{}
	if params != nil {
		req.Name = params.Name
		req.ExpiresAt = params.ExpiresAt
	}

	var asset ShareableAsset
	if err := s.client.doJSON(ctx, http.MethodPatch, "/share/"+shareableAssetID, nil, req, &asset); err != nil {
		return nil, err
	}
	return &asset, nil
}

// Delete revokes a shareable asset. The underlying resource is untouched.
func (s *ShareService) Delete(ctx context.Context, shareableAssetID string) (*DeleteResponse, error) {
	var out DeleteResponse
	if err := s.client.doJSON(ctx, http.MethodDelete, "/share/"+shareableAssetID, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
