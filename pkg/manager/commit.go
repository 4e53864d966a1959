package manager

import (
	"context"

	"github.com/verso-data/verso-client-go/pkg/client"
	"github.com/verso-data/verso-client-go/pkg/openapi"
	"github.com/verso-data/verso-client-go/pkg/paging"
)

// CommitManager reads the commit history of one dataset. Commits are
// immutable, so there is no Create or Delete; new commits are made by
// committing drafts.
type CommitManager struct {
	dataset *Dataset
}

// Get resolves a revision (commit id, branch name, or tag name) to its
// commit. An empty revision fails with not_found before any request is
// made.
func (m *CommitManager) Get(ctx context.Context, revision string) (*openapi.Commit, error) {
	if revision == "" {
		return nil, client.NotFound("commit", revision)
	}
	return openapi.GetCommit(ctx, m.dataset.client, m.dataset.Owner, m.dataset.Name, revision)
}

// List returns a lazy paging list of the history ending at revision
// ("" means the dataset's current commit).
func (m *CommitManager) List(revision string) *paging.List[openapi.Commit] {
	if revision == "" {
		revision = m.dataset.CommitID
	}

	fetch := func(ctx context.Context, offset, limit int) ([]openapi.Commit, int, error) {
		resp, err := openapi.ListCommits(ctx, m.dataset.client, m.dataset.Owner, m.dataset.Name,
			revision, offset, limit)
		if err != nil {
			return nil, 0, err
		}
		return resp.Commits, resp.TotalCount, nil
	}

	return paging.NewList(fetch, paging.DefaultLimit)
}
