package openapi

import (
	"context"
	"net/http"

	"github.com/verso-data/verso-client-go/pkg/client"
)

// Branch is the wire representation of one branch, carrying the commit
// it currently points at.
type Branch struct {
	Name           string `json:"name"`
	CommitID       string `json:"commit_id"`
	ParentCommitID string `json:"parent_commit_id"`
	Title          string `json:"title"`
	Description    string `json:"description"`
	Committer      string `json:"committer"`
	CommittedAt    string `json:"committed_at"`
}

// ListBranchesResponse is the paged envelope of the branch list endpoint.
type ListBranchesResponse struct {
	Branches   []Branch `json:"branches"`
	Offset     int      `json:"offset"`
	RecordSize int      `json:"record_size"`
	TotalCount int      `json:"total_count"`
}

// CreateBranchRequest is the body of the branch creation endpoint.
type CreateBranchRequest struct {
	Name     string `json:"name"`
	Revision string `json:"revision"`
}

// ListBranches executes GET /v2/datasets/{owner}/{dataset}/branches.
func ListBranches(ctx context.Context, c *client.Client, owner, dataset string, offset, limit int) (*ListBranchesResponse, error) {
	var resp ListBranchesResponse
	path := datasetPath(owner, dataset, "branches")
	if err := c.DoJSON(ctx, http.MethodGet, path, pagedQuery(offset, limit), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CreateBranch executes POST /v2/datasets/{owner}/{dataset}/branches.
// revision locates the commit the branch starts from; it can be a commit
// id, a branch name, or a tag name.
func CreateBranch(ctx context.Context, c *client.Client, owner, dataset, name, revision string) (*Branch, error) {
	var resp Branch
	path := datasetPath(owner, dataset, "branches")
	req := CreateBranchRequest{Name: name, Revision: revision}
	if err := c.DoJSON(ctx, http.MethodPost, path, nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetBranch executes GET /v2/datasets/{owner}/{dataset}/branches/{branch}.
func GetBranch(ctx context.Context, c *client.Client, owner, dataset, branch string) (*Branch, error) {
	var resp Branch
	path := datasetPath(owner, dataset, "branches", branch)
	if err := c.DoJSON(ctx, http.MethodGet, path, nil, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// DeleteBranch executes DELETE /v2/datasets/{owner}/{dataset}/branches/{branch}.
func DeleteBranch(ctx context.Context, c *client.Client, owner, dataset, branch string) error {
	return c.DoJSON(ctx, http.MethodDelete, datasetPath(owner, dataset, "branches", branch), nil, nil, nil)
}
