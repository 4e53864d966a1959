package manager

import (
	"context"

	"github.com/verso-data/verso-client-go/pkg/client"
	"github.com/verso-data/verso-client-go/pkg/openapi"
	"github.com/verso-data/verso-client-go/pkg/paging"
)

// TagManager manages the tags of one dataset.
type TagManager struct {
	dataset *Dataset
}

// Create tags the commit located by revision (commit id, branch name, or
// tag name). An empty revision tags the dataset's current commit.
func (m *TagManager) Create(ctx context.Context, name, revision string) (*openapi.Tag, error) {
	if revision == "" {
		revision = m.dataset.CommitID
	}
	return openapi.CreateTag(ctx, m.dataset.client, m.dataset.Owner, m.dataset.Name, name, revision)
}

// Get fetches a tag by name. An empty name fails with not_found before
// any request is made.
func (m *TagManager) Get(ctx context.Context, name string) (*openapi.Tag, error) {
	if name == "" {
		return nil, client.NotFound("tag", name)
	}
	return openapi.GetTag(ctx, m.dataset.client, m.dataset.Owner, m.dataset.Name, name)
}

// List returns a lazy paging list of the dataset's tags.
func (m *TagManager) List() *paging.List[openapi.Tag] {
	fetch := func(ctx context.Context, offset, limit int) ([]openapi.Tag, int, error) {
		resp, err := openapi.ListTags(ctx, m.dataset.client, m.dataset.Owner, m.dataset.Name, offset, limit)
		if err != nil {
			return nil, 0, err
		}
		return resp.Tags, resp.TotalCount, nil
	}

	return paging.NewList(fetch, paging.DefaultLimit)
}

// Delete deletes a tag by name. An empty name fails with not_found
// before any request is made.
func (m *TagManager) Delete(ctx context.Context, name string) error {
	if name == "" {
		return client.NotFound("tag", name)
	}
	return openapi.DeleteTag(ctx, m.dataset.client, m.dataset.Owner, m.dataset.Name, name)
}
