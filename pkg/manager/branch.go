package manager

import (
	"context"

	"github.com/verso-data/verso-client-go/pkg/client"
	"github.com/verso-data/verso-client-go/pkg/openapi"
	"github.com/verso-data/verso-client-go/pkg/paging"
)

// BranchManager manages the branches of one dataset.
type BranchManager struct {
	dataset *Dataset
}

// Create creates a branch pointing at the commit located by revision
// (commit id, branch name, or tag name). An empty revision branches off
// the dataset's current commit.
func (m *BranchManager) Create(ctx context.Context, name, revision string) (*openapi.Branch, error) {
	if revision == "" {
		revision = m.dataset.CommitID
	}
	return openapi.CreateBranch(ctx, m.dataset.client, m.dataset.Owner, m.dataset.Name, name, revision)
}

// Get fetches a branch by name. An empty name fails with not_found
// before any request is made.
func (m *BranchManager) Get(ctx context.Context, name string) (*openapi.Branch, error) {
	if name == "" {
		return nil, client.NotFound("branch", name)
	}
	return openapi.GetBranch(ctx, m.dataset.client, m.dataset.Owner, m.dataset.Name, name)
}

// List returns a lazy paging list of the dataset's branches.
func (m *BranchManager) List() *paging.List[openapi.Branch] {
	fetch := func(ctx context.Context, offset, limit int) ([]openapi.Branch, int, error) {
		resp, err := openapi.ListBranches(ctx, m.dataset.client, m.dataset.Owner, m.dataset.Name, offset, limit)
		if err != nil {
			return nil, 0, err
		}
		return resp.Branches, resp.TotalCount, nil
	}

	return paging.NewList(fetch, paging.DefaultLimit)
}

// Delete deletes a branch by name. An empty name fails with not_found
// before any request is made.
func (m *BranchManager) Delete(ctx context.Context, name string) error {
	if name == "" {
		return client.NotFound("branch", name)
	}
	return openapi.DeleteBranch(ctx, m.dataset.client, m.dataset.Owner, m.dataset.Name, name)
}
