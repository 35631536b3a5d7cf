package crawler

import (
	"context"
	"fmt"

	"github.com/aneesh-aparajit/reddit-crawler/logger"
	"github.com/aneesh-aparajit/reddit-crawler/models"
	"github.com/aneesh-aparajit/reddit-crawler/reddit"
)

// commentAuthorField resolves an author column of a CommentRecord: nil when
// absent, hashed when comment anonymization is enabled, plain otherwise.
func (c *Crawler) commentAuthorField(name string, ok bool) (*string, error) {
	if !ok {
		return nil, nil
	}
	if !c.anonymize.Comments {
		return &name, nil
	}
	hashed, err := c.hasher.Hash(name)
	if err != nil {
		return nil, fmt.Errorf("hashing comment author: %w", err)
	}
	return &hashed, nil
}

// collectComments flattens the top-level comments of one post, at most
// limit records (0 = unbounded). The first unreadable node ends collection
// for the whole post; nothing after it is retried.
func (c *Crawler) collectComments(ctx context.Context, p *reddit.Post, subreddit string, limit int) ([]models.CommentRecord, error) {
	comments, err := c.source.Comments(ctx, subreddit, p.ID, limit)
	if err != nil {
		return nil, err
	}

	postAuthor, err := c.commentAuthorField(p.AuthorName())
	if err != nil {
		return nil, err
	}

	var records []models.CommentRecord
	for _, cm := range comments {
		if !cm.Readable() {
			logger.WarnWithFields("comment collection truncated", logger.Fields{
				"subreddit": subreddit,
				"post_id":   p.ID,
				"kind":      cm.Kind,
				"collected": len(records),
			})
			break
		}

		commentAuthor, err := c.commentAuthorField(cm.AuthorName())
		if err != nil {
			return nil, err
		}

		records = append(records, models.CommentRecord{
			PostTitle:         p.Title,
			PostAuthor:        postAuthor,
			PostCreatedUTC:    p.CreatedUTC,
			CommentBody:       cm.Body,
			CommentAuthor:     commentAuthor,
			CommentCreatedUTC: cm.CreatedUTC,
			Subreddit:         subreddit,
		})

		if limit > 0 && len(records) == limit {
			break
		}
	}

	return records, nil
}
