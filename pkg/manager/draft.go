package manager

import (
	"context"
	"strconv"

	"github.com/verso-data/verso-client-go/pkg/client"
	"github.com/verso-data/verso-client-go/pkg/openapi"
	"github.com/verso-data/verso-client-go/pkg/paging"
)

// Draft is one mutable draft of a dataset. It keeps a non-owning
// reference to the dataset it belongs to; mutation methods go through
// that dataset's client and update the local fields only after the
// remote call succeeded. Other copies of the same logical draft are not
// updated.
type Draft struct {
	openapi.Draft

	dataset *Dataset
}

// Edit updates the title and/or description of the draft. Nil arguments
// leave the corresponding field unchanged.
func (d *Draft) Edit(ctx context.Context, title, description *string) error {
	err := openapi.UpdateDraft(ctx, d.dataset.client, d.dataset.Owner, d.dataset.Name, d.Number,
		openapi.UpdateDraftRequest{Title: title, Description: description})
	if err != nil {
		return err
	}

	if title != nil {
		d.Title = *title
	}
	if description != nil {
		d.Description = *description
	}
	return nil
}

// Close closes the draft. A closed draft can no longer be committed.
func (d *Draft) Close(ctx context.Context) error {
	err := openapi.UpdateDraft(ctx, d.dataset.client, d.dataset.Owner, d.dataset.Name, d.Number,
		openapi.UpdateDraftRequest{State: openapi.DraftStateClosed})
	if err != nil {
		return err
	}

	d.State = openapi.DraftStateClosed
	return nil
}

// Commit turns the draft into a commit on its branch and returns the
// new commit.
func (d *Draft) Commit(ctx context.Context, title, description string) (*openapi.Commit, error) {
	commit, err := openapi.CommitDraft(ctx, d.dataset.client, d.dataset.Owner, d.dataset.Name,
		openapi.CommitDraftRequest{
			DraftNumber: d.Number,
			Title:       title,
			Description: description,
		})
	if err != nil {
		return nil, err
	}

	d.State = openapi.DraftStateCommitted
	return commit, nil
}

// DraftManager manages the drafts of one dataset. Drafts are closed, not
// deleted, so the manager has no Delete.
type DraftManager struct {
	dataset *Dataset
}

// CreateDraftOptions are the optional fields of Create.
type CreateDraftOptions struct {
	// Branch the draft works on; empty means the dataset's default branch.
	Branch string

	Description string
}

// Create opens a new draft.
func (m *DraftManager) Create(ctx context.Context, title string, opts CreateDraftOptions) (*Draft, error) {
	raw, err := openapi.CreateDraft(ctx, m.dataset.client, m.dataset.Owner, m.dataset.Name,
		openapi.CreateDraftRequest{
			Title:       title,
			Branch:      opts.Branch,
			Description: opts.Description,
		})
	if err != nil {
		return nil, err
	}
	return &Draft{Draft: *raw, dataset: m.dataset}, nil
}

// Get fetches a draft by number. Numbers start at 1; anything lower
// fails with not_found before any request is made.
func (m *DraftManager) Get(ctx context.Context, number int) (*Draft, error) {
	if number <= 0 {
		return nil, client.NotFound("draft", strconv.Itoa(number))
	}

	raw, err := openapi.GetDraft(ctx, m.dataset.client, m.dataset.Owner, m.dataset.Name, number)
	if err != nil {
		return nil, err
	}
	return &Draft{Draft: *raw, dataset: m.dataset}, nil
}

// List returns a lazy paging list of the dataset's drafts. state filters
// by draft state ("" means open drafts); branch filters by branch name
// ("" means all branches). The filters are captured by the list's
// fetcher and apply to every page it retrieves.
func (m *DraftManager) List(state, branch string) *paging.List[*Draft] {
	fetch := func(ctx context.Context, offset, limit int) ([]*Draft, int, error) {
		resp, err := openapi.ListDrafts(ctx, m.dataset.client, m.dataset.Owner, m.dataset.Name,
			state, branch, offset, limit)
		if err != nil {
			return nil, 0, err
		}

		items := make([]*Draft, 0, len(resp.Drafts))
		for _, raw := range resp.Drafts {
			items = append(items, &Draft{Draft: raw, dataset: m.dataset})
		}
		return items, resp.TotalCount, nil
	}

	return paging.NewList(fetch, paging.DefaultLimit)
}
