package openapi

import (
	"context"
	"net/http"

	"github.com/verso-data/verso-client-go/pkg/client"
)

// Dataset is the wire representation of one dataset.
type Dataset struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Alias         string `json:"alias"`
	DefaultBranch string `json:"default_branch"`
	CommitID      string `json:"commit_id"`
	CreatedAt     string `json:"created_at"`
	UpdatedAt     string `json:"updated_at"`
	Owner         string `json:"owner"`
	IsPublic      bool   `json:"is_public"`
	Config        string `json:"config"`
}

// ListDatasetsResponse is the paged envelope of GET /v2/datasets.
type ListDatasetsResponse struct {
	Datasets   []Dataset `json:"datasets"`
	Offset     int       `json:"offset"`
	RecordSize int       `json:"record_size"`
	TotalCount int       `json:"total_count"`
}

// CreateDatasetRequest is the body of POST /v2/datasets.
type CreateDatasetRequest struct {
	Name     string `json:"name"`
	Alias    string `json:"alias,omitempty"`
	IsPublic bool   `json:"is_public"`
	Config   string `json:"config,omitempty"`
}

// ListDatasets executes GET /v2/datasets.
func ListDatasets(ctx context.Context, c *client.Client, offset, limit int) (*ListDatasetsResponse, error) {
	var resp ListDatasetsResponse
	if err := c.DoJSON(ctx, http.MethodGet, "/v2/datasets", pagedQuery(offset, limit), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CreateDataset executes POST /v2/datasets.
func CreateDataset(ctx context.Context, c *client.Client, req CreateDatasetRequest) (*Dataset, error) {
	var resp Dataset
	if err := c.DoJSON(ctx, http.MethodPost, "/v2/datasets", nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetDataset executes GET /v2/datasets/{owner}/{dataset}.
func GetDataset(ctx context.Context, c *client.Client, owner, dataset string) (*Dataset, error) {
	var resp Dataset
	if err := c.DoJSON(ctx, http.MethodGet, datasetPath(owner, dataset), nil, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// DeleteDataset executes DELETE /v2/datasets/{owner}/{dataset}.
func DeleteDataset(ctx context.Context, c *client.Client, owner, dataset string) error {
	return c.DoJSON(ctx, http.MethodDelete, datasetPath(owner, dataset), nil, nil, nil)
}
