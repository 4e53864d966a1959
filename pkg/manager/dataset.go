// Package manager exposes the Verso resource families (datasets,
// branches, drafts, commits, tags) through a uniform manager surface:
// Create, Get, List, Delete. Every List returns a fresh lazy paging
// list; no state is shared between successive List calls.
package manager

import (
	"context"

	"github.com/verso-data/verso-client-go/pkg/client"
	"github.com/verso-data/verso-client-go/pkg/openapi"
	"github.com/verso-data/verso-client-go/pkg/paging"
)

// Dataset is one dataset on Verso together with its checkout state.
// Child managers obtained from it (Branches, Drafts, Commits, Tags)
// keep a reference back to it for their requests.
type Dataset struct {
	openapi.Dataset

	// Branch is the currently checked-out branch. Empty when a bare
	// commit or tag has been checked out (detached).
	Branch string

	client *client.Client
}

// Branches returns the branch manager of this dataset.
func (d *Dataset) Branches() *BranchManager {
	return &BranchManager{dataset: d}
}

// Drafts returns the draft manager of this dataset.
func (d *Dataset) Drafts() *DraftManager {
	return &DraftManager{dataset: d}
}

// Commits returns the commit manager of this dataset.
func (d *Dataset) Commits() *CommitManager {
	return &CommitManager{dataset: d}
}

// Tags returns the tag manager of this dataset.
func (d *Dataset) Tags() *TagManager {
	return &TagManager{dataset: d}
}

// Checkout moves the dataset to the given revision. A revision naming a
// branch checks out that branch; otherwise it is resolved as a commit id
// or tag name and the dataset ends up detached. The branch lookup is
// attempted first; keep that order, it is observable when a commit id
// collides with a branch name.
func (d *Dataset) Checkout(ctx context.Context, revision string) error {
	branch, err := d.Branches().Get(ctx, revision)
	if err == nil {
		d.Branch = branch.Name
		d.CommitID = branch.CommitID
		return nil
	}
	if !client.IsNotFound(err) {
		return err
	}

	commit, err := d.Commits().Get(ctx, revision)
	if err != nil {
		return err
	}
	d.Branch = ""
	d.CommitID = commit.CommitID
	return nil
}

// DatasetManager lists and manages the datasets of one owner.
type DatasetManager struct {
	client *client.Client
	owner  string
}

// NewDatasetManager creates a dataset manager bound to an owner.
func NewDatasetManager(c *client.Client, owner string) *DatasetManager {
	return &DatasetManager{client: c, owner: owner}
}

// CreateDatasetOptions are the optional fields of Create.
type CreateDatasetOptions struct {
	Alias    string
	IsPublic bool
	Config   string
}

// Create creates a dataset with the given name, unique for the owner.
func (m *DatasetManager) Create(ctx context.Context, name string, opts CreateDatasetOptions) (*Dataset, error) {
	raw, err := openapi.CreateDataset(ctx, m.client, openapi.CreateDatasetRequest{
		Name:     name,
		Alias:    opts.Alias,
		IsPublic: opts.IsPublic,
		Config:   opts.Config,
	})
	if err != nil {
		return nil, err
	}
	return m.newDataset(*raw), nil
}

// Get fetches a dataset by name. An empty name fails with not_found
// before any request is made.
func (m *DatasetManager) Get(ctx context.Context, name string) (*Dataset, error) {
	if name == "" {
		return nil, client.NotFound("dataset", name)
	}

	raw, err := openapi.GetDataset(ctx, m.client, m.owner, name)
	if err != nil {
		return nil, err
	}
	return m.newDataset(*raw), nil
}

// List returns a lazy paging list of the owner's datasets. Every call
// returns an independent list with an empty cache.
func (m *DatasetManager) List() *paging.List[*Dataset] {
	fetch := func(ctx context.Context, offset, limit int) ([]*Dataset, int, error) {
		resp, err := openapi.ListDatasets(ctx, m.client, offset, limit)
		if err != nil {
			return nil, 0, err
		}

		items := make([]*Dataset, 0, len(resp.Datasets))
		for _, raw := range resp.Datasets {
			items = append(items, m.newDataset(raw))
		}
		return items, resp.TotalCount, nil
	}

	return paging.NewList(fetch, paging.DefaultLimit)
}

// Delete deletes a dataset by name. An empty name fails with not_found
// before any request is made.
func (m *DatasetManager) Delete(ctx context.Context, name string) error {
	if name == "" {
		return client.NotFound("dataset", name)
	}
	return openapi.DeleteDataset(ctx, m.client, m.owner, name)
}

func (m *DatasetManager) newDataset(raw openapi.Dataset) *Dataset {
	return &Dataset{
		Dataset: raw,
		Branch:  raw.DefaultBranch,
		client:  m.client,
	}
}
