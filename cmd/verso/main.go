package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/verso-data/verso-client-go/pkg/client"
	"github.com/verso-data/verso-client-go/pkg/logging"
	"github.com/verso-data/verso-client-go/pkg/manager"
)

const usage = `Usage: verso <command> [args]

Commands:
  datasets <owner>                 List the owner's datasets
  branches <owner> <dataset>       List a dataset's branches
  commits  <owner> <dataset> [rev] List a dataset's commit history
  tags     <owner> <dataset>       List a dataset's tags

Environment:
  VERSO_ACCESS_KEY  Access key (required)
  VERSO_API_URL     API root (default: https://api.verso.dev)
  REDIS_URL         Redis address for the response cache (optional)
`

func main() {
	logger := logging.Setup(logging.Config{Level: logging.LevelWarn, Pretty: true})

	if len(os.Args) < 3 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	accessKey := os.Getenv("VERSO_ACCESS_KEY")
	if accessKey == "" {
		logger.Fatal().Msg("VERSO_ACCESS_KEY is required")
	}

	cfg := client.DefaultConfig(getEnv("VERSO_API_URL", "https://api.verso.dev"), accessKey)

	ctx := context.Background()
	if redisURL := os.Getenv("REDIS_URL"); redisURL != "" {
		redisClient := redis.NewClient(&redis.Options{Addr: redisURL})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.Fatal().Err(err).Str("addr", redisURL).Msg("Failed to connect to redis")
		}
		defer redisClient.Close()
		cfg.Redis = redisClient
	}

	c, err := client.New(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to create client")
	}
	defer c.Close()

	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	command, owner := os.Args[1], os.Args[2]
	datasets := manager.NewDatasetManager(c, owner)

	switch command {
	case "datasets":
		err = listDatasets(ctx, datasets)
	case "branches":
		err = withDataset(ctx, datasets, func(ds *manager.Dataset) error {
			return listBranches(ctx, ds)
		})
	case "commits":
		revision := ""
		if len(os.Args) > 4 {
			revision = os.Args[4]
		}
		err = withDataset(ctx, datasets, func(ds *manager.Dataset) error {
			return listCommits(ctx, ds, revision)
		})
	case "tags":
		err = withDataset(ctx, datasets, func(ds *manager.Dataset) error {
			return listTags(ctx, ds)
		})
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	if err != nil {
		logger.Fatal().Err(err).Str("command", command).Msg("Command failed")
	}
}

func withDataset(ctx context.Context, m *manager.DatasetManager, fn func(*manager.Dataset) error) error {
	if len(os.Args) < 4 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	ds, err := m.Get(ctx, os.Args[3])
	if err != nil {
		return err
	}
	return fn(ds)
}

func listDatasets(ctx context.Context, m *manager.DatasetManager) error {
	iter := m.List().Iter(ctx)
	for iter.Next() {
		ds := iter.Item()
		fmt.Printf("%s\t%s\t%s\n", ds.Name, ds.Branch, ds.CommitID)
	}
	return iter.Err()
}

func listBranches(ctx context.Context, ds *manager.Dataset) error {
	iter := ds.Branches().List().Iter(ctx)
	for iter.Next() {
		branch := iter.Item()
		fmt.Printf("%s\t%s\n", branch.Name, branch.CommitID)
	}
	return iter.Err()
}

func listCommits(ctx context.Context, ds *manager.Dataset, revision string) error {
	iter := ds.Commits().List(revision).Iter(ctx)
	for iter.Next() {
		commit := iter.Item()
		fmt.Printf("%s\t%s\t%s\n", commit.CommitID, commit.CommittedAt, commit.Title)
	}
	return iter.Err()
}

func listTags(ctx context.Context, ds *manager.Dataset) error {
	iter := ds.Tags().List().Iter(ctx)
	for iter.Next() {
		tag := iter.Item()
		fmt.Printf("%s\t%s\n", tag.Name, tag.CommitID)
	}
	return iter.Err()
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
