package openapi

import (
	"context"
	"net/http"

	"github.com/verso-data/verso-client-go/pkg/client"
)

// Commit is the wire representation of one commit.
type Commit struct {
	CommitID       string `json:"commit_id"`
	ParentCommitID string `json:"parent_commit_id"`
	Title          string `json:"title"`
	Description    string `json:"description"`
	Committer      string `json:"committer"`
	CommittedAt    string `json:"committed_at"`
}

// ListCommitsResponse is the paged envelope of the commit list endpoint.
type ListCommitsResponse struct {
	Commits    []Commit `json:"commits"`
	Offset     int      `json:"offset"`
	RecordSize int      `json:"record_size"`
	TotalCount int      `json:"total_count"`
}

// CommitDraftRequest is the body of the commit creation endpoint, which
// turns an open draft into a commit.
type CommitDraftRequest struct {
	DraftNumber int    `json:"draft_number"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

// ListCommits executes GET /v2/datasets/{owner}/{dataset}/commits,
// walking the history that ends at revision ("" means the default
// branch head).
func ListCommits(ctx context.Context, c *client.Client, owner, dataset, revision string, offset, limit int) (*ListCommitsResponse, error) {
	query := pagedQuery(offset, limit)
	if revision != "" {
		query.Set("revision", revision)
	}

	var resp ListCommitsResponse
	path := datasetPath(owner, dataset, "commits")
	if err := c.DoJSON(ctx, http.MethodGet, path, query, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetCommit executes GET /v2/datasets/{owner}/{dataset}/commits/{revision}.
// revision can be a commit id, a branch name, or a tag name.
func GetCommit(ctx context.Context, c *client.Client, owner, dataset, revision string) (*Commit, error) {
	var resp Commit
	path := datasetPath(owner, dataset, "commits", revision)
	if err := c.DoJSON(ctx, http.MethodGet, path, nil, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CommitDraft executes POST /v2/datasets/{owner}/{dataset}/commits.
func CommitDraft(ctx context.Context, c *client.Client, owner, dataset string, req CommitDraftRequest) (*Commit, error) {
	var resp Commit
	path := datasetPath(owner, dataset, "commits")
	if err := c.DoJSON(ctx, http.MethodPost, path, nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
