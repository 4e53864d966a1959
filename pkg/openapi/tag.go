package openapi

import (
	"context"
	"net/http"

	"github.com/verso-data/verso-client-go/pkg/client"
)

// Tag is the wire representation of one tag, carrying the commit it
// points at.
type Tag struct {
	Name           string `json:"name"`
	CommitID       string `json:"commit_id"`
	ParentCommitID string `json:"parent_commit_id"`
	Title          string `json:"title"`
	Description    string `json:"description"`
	Committer      string `json:"committer"`
	CommittedAt    string `json:"committed_at"`
}

// ListTagsResponse is the paged envelope of the tag list endpoint.
type ListTagsResponse struct {
	Tags       []Tag `json:"tags"`
	Offset     int   `json:"offset"`
	RecordSize int   `json:"record_size"`
	TotalCount int   `json:"total_count"`
}

// CreateTagRequest is the body of the tag creation endpoint.
type CreateTagRequest struct {
	Name     string `json:"name"`
	Revision string `json:"revision"`
}

// ListTags executes GET /v2/datasets/{owner}/{dataset}/tags.
func ListTags(ctx context.Context, c *client.Client, owner, dataset string, offset, limit int) (*ListTagsResponse, error) {
	var resp ListTagsResponse
	path := datasetPath(owner, dataset, "tags")
	if err := c.DoJSON(ctx, http.MethodGet, path, pagedQuery(offset, limit), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CreateTag executes POST /v2/datasets/{owner}/{dataset}/tags. revision
// locates the commit to tag.
func CreateTag(ctx context.Context, c *client.Client, owner, dataset, name, revision string) (*Tag, error) {
	var resp Tag
	path := datasetPath(owner, dataset, "tags")
	req := CreateTagRequest{Name: name, Revision: revision}
	if err := c.DoJSON(ctx, http.MethodPost, path, nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetTag executes GET /v2/datasets/{owner}/{dataset}/tags/{tag}.
func GetTag(ctx context.Context, c *client.Client, owner, dataset, tag string) (*Tag, error) {
	var resp Tag
	path := datasetPath(owner, dataset, "tags", tag)
	if err := c.DoJSON(ctx, http.MethodGet, path, nil, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// DeleteTag executes DELETE /v2/datasets/{owner}/{dataset}/tags/{tag}.
func DeleteTag(ctx context.Context, c *client.Client, owner, dataset, tag string) error {
	return c.DoJSON(ctx, http.MethodDelete, datasetPath(owner, dataset, "tags", tag), nil, nil, nil)
}
