package openapi

import (
	"context"
	"net/http"
	"strconv"

	"github.com/verso-data/verso-client-go/pkg/client"
)

// Draft states.
const (
	DraftStateOpen      = "OPEN"
	DraftStateClosed    = "CLOSED"
	DraftStateCommitted = "COMMITTED"
	DraftStateAll       = "ALL"
)

// Draft is the wire representation of one draft.
type Draft struct {
	Number         int    `json:"number"`
	Title          string `json:"title"`
	Description    string `json:"description"`
	Branch         string `json:"branch"`
	State          string `json:"state"`
	ParentCommitID string `json:"parent_commit_id"`
	Creator        string `json:"creator"`
	CreatedAt      string `json:"created_at"`
	UpdatedAt      string `json:"updated_at"`
}

// ListDraftsResponse is the paged envelope of the draft list endpoint.
type ListDraftsResponse struct {
	Drafts     []Draft `json:"drafts"`
	Offset     int     `json:"offset"`
	RecordSize int     `json:"record_size"`
	TotalCount int     `json:"total_count"`
}

// CreateDraftRequest is the body of the draft creation endpoint.
// An empty Branch means the dataset's default branch.
type CreateDraftRequest struct {
	Title       string `json:"title"`
	Branch      string `json:"branch,omitempty"`
	Description string `json:"description,omitempty"`
}

// UpdateDraftRequest is the body of the draft update endpoint. Nil
// pointer fields are left unchanged by the server.
type UpdateDraftRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	State       string  `json:"state,omitempty"`
}

// ListDrafts executes GET /v2/datasets/{owner}/{dataset}/drafts.
// state filters by draft state ("" means OPEN drafts only); branch
// filters by branch name ("" means all branches).
func ListDrafts(ctx context.Context, c *client.Client, owner, dataset, state, branch string, offset, limit int) (*ListDraftsResponse, error) {
	query := pagedQuery(offset, limit)
	if state != "" {
		query.Set("state", state)
	}
	if branch != "" {
		query.Set("branch", branch)
	}

	var resp ListDraftsResponse
	path := datasetPath(owner, dataset, "drafts")
	if err := c.DoJSON(ctx, http.MethodGet, path, query, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CreateDraft executes POST /v2/datasets/{owner}/{dataset}/drafts.
func CreateDraft(ctx context.Context, c *client.Client, owner, dataset string, req CreateDraftRequest) (*Draft, error) {
	var resp Draft
	path := datasetPath(owner, dataset, "drafts")
	if err := c.DoJSON(ctx, http.MethodPost, path, nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetDraft executes GET /v2/datasets/{owner}/{dataset}/drafts/{draft_number}.
func GetDraft(ctx context.Context, c *client.Client, owner, dataset string, draftNumber int) (*Draft, error) {
	var resp Draft
	path := datasetPath(owner, dataset, "drafts", strconv.Itoa(draftNumber))
	if err := c.DoJSON(ctx, http.MethodGet, path, nil, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// UpdateDraft executes PATCH /v2/datasets/{owner}/{dataset}/drafts/{draft_number}.
func UpdateDraft(ctx context.Context, c *client.Client, owner, dataset string, draftNumber int, req UpdateDraftRequest) error {
	path := datasetPath(owner, dataset, "drafts", strconv.Itoa(draftNumber))
	return c.DoJSON(ctx, http.MethodPatch, path, nil, req, nil)
}
