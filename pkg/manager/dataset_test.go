package manager

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/verso-data/verso-client-go/internal/testutil"
	"github.com/verso-data/verso-client-go/pkg/client"
	"github.com/verso-data/verso-client-go/pkg/openapi"
)

func TestDatasetManager_Get(t *testing.T) {
	mock := testutil.NewMockVerso()
	defer mock.Close()

	mock.SetJSONResponse("/v2/datasets/acme/mnist", openapi.Dataset{
		ID:            "ds-1",
		Name:          "mnist",
		Owner:         "acme",
		DefaultBranch: "main",
		CommitID:      "commit-0",
	})

	m := NewDatasetManager(newTestClient(t, mock), "acme")

	ds, err := m.Get(context.Background(), "mnist")
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}

	if ds.Name != "mnist" {
		t.Errorf("Name = %q, want %q", ds.Name, "mnist")
	}
	if ds.Branch != "main" {
		t.Errorf("Branch = %q, want default branch %q", ds.Branch, "main")
	}
	if ds.CommitID != "commit-0" {
		t.Errorf("CommitID = %q, want %q", ds.CommitID, "commit-0")
	}
}

func TestDatasetManager_GetEmptyName(t *testing.T) {
	mock := testutil.NewMockVerso()
	defer mock.Close()

	m := NewDatasetManager(newTestClient(t, mock), "acme")

	_, err := m.Get(context.Background(), "")
	if !client.IsNotFound(err) {
		t.Errorf("Expected not-found error, got %v", err)
	}
	if mock.GetRequestCount() != 0 {
		t.Errorf("Request count = %d, want 0 (empty name fails locally)", mock.GetRequestCount())
	}
}

func TestDatasetManager_DeleteEmptyName(t *testing.T) {
	mock := testutil.NewMockVerso()
	defer mock.Close()

	m := NewDatasetManager(newTestClient(t, mock), "acme")

	if err := m.Delete(context.Background(), ""); !client.IsNotFound(err) {
		t.Errorf("Expected not-found error, got %v", err)
	}
	if mock.GetRequestCount() != 0 {
		t.Errorf("Request count = %d, want 0", mock.GetRequestCount())
	}
}

func TestDatasetManager_Create(t *testing.T) {
	mock := testutil.NewMockVerso()
	defer mock.Close()

	mock.SetHandler("/v2/datasets", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("Method = %q, want POST", r.Method)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id": "ds-2", "name": "cifar", "owner": "acme", "default_branch": "main", "commit_id": "commit-9"}`))
	})

	m := NewDatasetManager(newTestClient(t, mock), "acme")

	ds, err := m.Create(context.Background(), "cifar", CreateDatasetOptions{})
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if ds.Name != "cifar" {
		t.Errorf("Name = %q, want %q", ds.Name, "cifar")
	}
	if ds.Branch != "main" {
		t.Errorf("Branch = %q, want %q", ds.Branch, "main")
	}
}

func TestDatasetManager_ListIsLazy(t *testing.T) {
	mock := testutil.NewMockVerso()
	defer mock.Close()

	datasets := make([]openapi.Dataset, 5)
	for i := range datasets {
		datasets[i] = openapi.Dataset{Name: fmt.Sprintf("ds-%d", i), Owner: "acme", DefaultBranch: "main"}
	}
	mock.SetHandler("/v2/datasets", testutil.NewPagedHandler("datasets", datasets))

	m := NewDatasetManager(newTestClient(t, mock), "acme")

	list := m.List()
	if mock.GetRequestCount() != 0 {
		t.Errorf("Request count after List() = %d, want 0 (no fetch until access)", mock.GetRequestCount())
	}

	ds, err := list.Get(context.Background(), 2)
	if err != nil {
		t.Fatalf("Get(2) failed: %v", err)
	}
	if ds.Name != "ds-2" {
		t.Errorf("Name = %q, want %q", ds.Name, "ds-2")
	}
	if mock.GetRequestCount() != 1 {
		t.Errorf("Request count = %d, want 1", mock.GetRequestCount())
	}

	n, err := list.Len(context.Background())
	if err != nil {
		t.Fatalf("Len() failed: %v", err)
	}
	if n != 5 {
		t.Errorf("Len() = %d, want 5", n)
	}
	// Length was learned from the first page.
	if mock.GetRequestCount() != 1 {
		t.Errorf("Request count after Len() = %d, want 1", mock.GetRequestCount())
	}
}

func TestDatasetManager_ListIndependentLists(t *testing.T) {
	mock := testutil.NewMockVerso()
	defer mock.Close()

	datasets := []openapi.Dataset{{Name: "only", Owner: "acme"}}
	mock.SetHandler("/v2/datasets", testutil.NewPagedHandler("datasets", datasets))

	m := NewDatasetManager(newTestClient(t, mock), "acme")

	list1 := m.List()
	if _, err := list1.Get(context.Background(), 0); err != nil {
		t.Fatalf("Get() failed: %v", err)
	}

	// A second List starts with an empty cache and fetches again.
	list2 := m.List()
	if _, err := list2.Get(context.Background(), 0); err != nil {
		t.Fatalf("Get() on second list failed: %v", err)
	}
	if mock.GetRequestCount() != 2 {
		t.Errorf("Request count = %d, want 2 (one per list)", mock.GetRequestCount())
	}
}

func TestDataset_CheckoutBranch(t *testing.T) {
	mock := testutil.NewMockVerso()
	defer mock.Close()

	mock.SetJSONResponse("/v2/datasets/acme/mnist/branches/dev", openapi.Branch{
		Name:     "dev",
		CommitID: "commit-7",
	})

	ds := newTestDataset(t, mock)

	if err := ds.Checkout(context.Background(), "dev"); err != nil {
		t.Fatalf("Checkout() failed: %v", err)
	}

	if ds.Branch != "dev" {
		t.Errorf("Branch = %q, want %q", ds.Branch, "dev")
	}
	if ds.CommitID != "commit-7" {
		t.Errorf("CommitID = %q, want %q", ds.CommitID, "commit-7")
	}
	if mock.GetRequestCount() != 1 {
		t.Errorf("Request count = %d, want 1 (branch resolved directly)", mock.GetRequestCount())
	}
}

func TestDataset_CheckoutCommitFallback(t *testing.T) {
	mock := testutil.NewMockVerso()
	defer mock.Close()

	mock.SetResponse("/v2/datasets/acme/mnist/branches/commit-7",
		testutil.NewNotFoundResponse("branch", "commit-7"))
	mock.SetJSONResponse("/v2/datasets/acme/mnist/commits/commit-7", openapi.Commit{
		CommitID: "commit-7",
		Title:    "fix labels",
	})

	ds := newTestDataset(t, mock)

	if err := ds.Checkout(context.Background(), "commit-7"); err != nil {
		t.Fatalf("Checkout() failed: %v", err)
	}

	if ds.Branch != "" {
		t.Errorf("Branch = %q, want empty (detached)", ds.Branch)
	}
	if ds.CommitID != "commit-7" {
		t.Errorf("CommitID = %q, want %q", ds.CommitID, "commit-7")
	}
	// The branch lookup runs first, then the commit fallback.
	if mock.GetRequestCount() != 2 {
		t.Errorf("Request count = %d, want 2", mock.GetRequestCount())
	}
}

func TestDataset_CheckoutUnknownRevision(t *testing.T) {
	mock := testutil.NewMockVerso()
	defer mock.Close()

	mock.SetResponse("/v2/datasets/acme/mnist/branches/nope",
		testutil.NewNotFoundResponse("branch", "nope"))
	mock.SetResponse("/v2/datasets/acme/mnist/commits/nope",
		testutil.NewNotFoundResponse("commit", "nope"))

	ds := newTestDataset(t, mock)

	err := ds.Checkout(context.Background(), "nope")
	if !client.IsNotFound(err) {
		t.Errorf("Expected not-found error, got %v", err)
	}
	// The checkout state stays untouched on failure.
	if ds.Branch != "main" || ds.CommitID != "commit-0" {
		t.Errorf("Checkout state changed on failure: branch=%q commit=%q", ds.Branch, ds.CommitID)
	}
}

func TestDataset_CheckoutEmptyRevision(t *testing.T) {
	mock := testutil.NewMockVerso()
	defer mock.Close()

	ds := newTestDataset(t, mock)

	if err := ds.Checkout(context.Background(), ""); !client.IsNotFound(err) {
		t.Errorf("Expected not-found error, got %v", err)
	}
	if mock.GetRequestCount() != 0 {
		t.Errorf("Request count = %d, want 0 (empty revision fails locally)", mock.GetRequestCount())
	}
}
