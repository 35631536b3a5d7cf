package crawler

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/aneesh-aparajit/reddit-crawler/config"
	"github.com/aneesh-aparajit/reddit-crawler/identity"
	"github.com/aneesh-aparajit/reddit-crawler/logger"
	"github.com/aneesh-aparajit/reddit-crawler/models"
	"github.com/aneesh-aparajit/reddit-crawler/reddit"
	"github.com/aneesh-aparajit/reddit-crawler/sentiment"
	"github.com/aneesh-aparajit/reddit-crawler/sink"
)

// ContentSource yields subreddit listings and per-post comment sequences.
// *reddit.Client implements it; tests inject fakes.
type ContentSource interface {
	Listing(ctx context.Context, subreddit, sort string, limit int) ([]*reddit.Post, error)
	Comments(ctx context.Context, subreddit, postID string, limit int) ([]*reddit.Comment, error)
}

// Args carries the crawler's collaborators. All of them are required
// except Anonymize, whose zero value stores every author in plain text.
type Args struct {
	Source    ContentSource
	Scorer    sentiment.Scorer
	Hasher    identity.Hasher
	BaseDir   string
	Anonymize config.AnonymizeConfig
}

// Crawler runs the post and comment extraction pipelines. One invocation
// produces one table spanning all requested subreddits, in request order.
type Crawler struct {
	source    ContentSource
	scorer    sentiment.Scorer
	hasher    identity.Hasher
	baseDir   string
	anonymize config.AnonymizeConfig
}

func New(args *Args) (*Crawler, error) {
	if args.Source == nil {
		return nil, fmt.Errorf("crawler: content source is required")
	}
	if args.Scorer == nil {
		return nil, fmt.Errorf("crawler: sentiment scorer is required")
	}
	if args.Hasher == nil {
		return nil, fmt.Errorf("crawler: identity hasher is required")
	}
	baseDir := args.BaseDir
	if baseDir == "" {
		baseDir = "./data"
	}

	return &Crawler{
		source:    args.Source,
		scorer:    args.Scorer,
		hasher:    args.Hasher,
		baseDir:   baseDir,
		anonymize: args.Anonymize,
	}, nil
}

// Options are the per-run parameters shared by both pipelines. Limit bounds
// the listing size and, for the comment pipeline, the records per post;
// 0 means unbounded. Format is only consulted when Save is set.
type Options struct {
	Subreddits []string
	SortBy     string
	Limit      int
	Save       bool
	Format     sink.Format
}

var sortModes = map[string]struct{}{
	"hot":    {},
	"new":    {},
	"rising": {},
	"top":    {},
}

func validateSortMode(sort string) error {
	if _, ok := sortModes[sort]; !ok {
		return fmt.Errorf("%w: %q (want one of hot, new, rising, top)", ErrUnsupportedSortMode, sort)
	}
	return nil
}

// prepare runs the shared pre-flight: sort validation before any I/O, then
// the idempotent output directory creation.
func (c *Crawler) prepare(opts Options) error {
	if err := validateSortMode(opts.SortBy); err != nil {
		return err
	}
	return os.MkdirAll(c.baseDir, 0o755)
}

// GetPosts collects one PostRecord per listed post across all subreddits.
// The accumulated table is returned even when persisting it failed, so a
// bad format can be retried without re-fetching.
func (c *Crawler) GetPosts(ctx context.Context, opts Options) ([]models.PostRecord, error) {
	if err := c.prepare(opts); err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	records := []models.PostRecord{}

	for _, subreddit := range opts.Subreddits {
		posts, err := c.source.Listing(ctx, subreddit, opts.SortBy, opts.Limit)
		if err != nil {
			return nil, err
		}

		for _, p := range posts {
			rec, err := c.normalizePost(p, subreddit)
			if err != nil {
				return nil, err
			}
			records = append(records, rec)
		}

		logger.InfoWithFields("collected posts", logger.Fields{
			"run_id":    runID,
			"subreddit": subreddit,
			"sort":      opts.SortBy,
			"count":     len(posts),
		})
	}

	if opts.Save {
		if err := sink.Persist(records, opts.Format, c.baseDir, "posts"); err != nil {
			return records, err
		}
		logger.InfoWithFields("persisted posts", logger.Fields{
			"run_id": runID,
			"format": string(opts.Format),
			"rows":   len(records),
		})
	}

	return records, nil
}

// GetComments collects CommentRecords for the top-level comments of every
// listed post, at most Limit per post. Unreadable comment nodes truncate
// that post's collection; the truncation is logged, not fatal.
func (c *Crawler) GetComments(ctx context.Context, opts Options) ([]models.CommentRecord, error) {
	if err := c.prepare(opts); err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	records := []models.CommentRecord{}

	for _, subreddit := range opts.Subreddits {
		posts, err := c.source.Listing(ctx, subreddit, opts.SortBy, opts.Limit)
		if err != nil {
			return nil, err
		}

		collected := 0
		for _, p := range posts {
			recs, err := c.collectComments(ctx, p, subreddit, opts.Limit)
			if err != nil {
				return nil, err
			}
			records = append(records, recs...)
			collected += len(recs)
		}

		logger.InfoWithFields("collected comments", logger.Fields{
			"run_id":    runID,
			"subreddit": subreddit,
			"sort":      opts.SortBy,
			"posts":     len(posts),
			"count":     collected,
		})
	}

	if opts.Save {
		if err := sink.Persist(records, opts.Format, c.baseDir, "comments"); err != nil {
			return records, err
		}
		logger.InfoWithFields("persisted comments", logger.Fields{
			"run_id": runID,
			"format": string(opts.Format),
			"rows":   len(records),
		})
	}

	return records, nil
}
