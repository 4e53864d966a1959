package manager

import (
	"testing"
	"time"

	"github.com/verso-data/verso-client-go/internal/testutil"
	"github.com/verso-data/verso-client-go/pkg/client"
	"github.com/verso-data/verso-client-go/pkg/openapi"
)

// newTestClient creates a client against the mock server with fast
// retries and without redis.
func newTestClient(t *testing.T, mock *testutil.MockVerso) *client.Client {
	t.Helper()

	cfg := client.DefaultConfig(mock.URL(), "test-access-key")
	cfg.InitialBackoff = 10 * time.Millisecond
	c, err := client.New(cfg)
	if err != nil {
		t.Fatalf("Failed to create client: %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

// newTestDataset builds a checked-out dataset fixture bound to the mock
// server.
func newTestDataset(t *testing.T, mock *testutil.MockVerso) *Dataset {
	t.Helper()

	return &Dataset{
		Dataset: openapi.Dataset{
			ID:            "ds-1",
			Name:          "mnist",
			Owner:         "acme",
			DefaultBranch: "main",
			CommitID:      "commit-0",
		},
		Branch: "main",
		client: newTestClient(t, mock),
	}
}
