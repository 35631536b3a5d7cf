package crawler_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aneesh-aparajit/reddit-crawler/config"
	"github.com/aneesh-aparajit/reddit-crawler/crawler"
	"github.com/aneesh-aparajit/reddit-crawler/models"
	"github.com/aneesh-aparajit/reddit-crawler/reddit"
	"github.com/aneesh-aparajit/reddit-crawler/sentiment"
	"github.com/aneesh-aparajit/reddit-crawler/sink"
)

// fakeSource serves canned listings and comment threads.
type fakeSource struct {
	listings     map[string][]*reddit.Post
	comments     map[string][]*reddit.Comment
	listingErr   error
	listingCalls int
}

func (s *fakeSource) Listing(_ context.Context, subreddit, sort string, limit int) ([]*reddit.Post, error) {
	s.listingCalls++
	if s.listingErr != nil {
		return nil, s.listingErr
	}
	posts, ok := s.listings[subreddit]
	if !ok {
		return nil, fmt.Errorf("no such subreddit: %s", subreddit)
	}
	if limit > 0 && len(posts) > limit {
		posts = posts[:limit]
	}
	return posts, nil
}

func (s *fakeSource) Comments(_ context.Context, _, postID string, _ int) ([]*reddit.Comment, error) {
	return s.comments[postID], nil
}

// fakeScorer scores every non-blank text with the same triple, so tests can
// tell scored fields from zero values.
type fakeScorer struct{}

func (fakeScorer) Score(text string) sentiment.Scores {
	if text == "" {
		return sentiment.Scores{}
	}
	return sentiment.Scores{Negative: 0.1, Positive: 0.2, Compound: 0.3}
}

// fakeHasher prefixes instead of hashing, keeping assertions readable.
type fakeHasher struct{}

func (fakeHasher) Hash(username string) (string, error) {
	return "hashed:" + username, nil
}

func videoPost() *reddit.Post {
	return &reddit.Post{
		ID:          "vid1",
		Title:       "a video post",
		Author:      "gopher",
		UpvoteRatio: 0.97,
		Score:       412,
		URL:         "https://v.redd.it/xyz",
		IsVideo:     true,
		Media:       &reddit.Media{RedditVideo: &reddit.RedditVideo{FallbackURL: "https://v.redd.it/xyz/DASH_720.mp4"}},
		Selftext:    "",
		CreatedUTC:  1700000000,
	}
}

func imagePost() *reddit.Post {
	return &reddit.Post{
		ID:          "img1",
		Title:       "an image post",
		Author:      "artist",
		UpvoteRatio: 0.88,
		Score:       99,
		Over18:      true,
		URL:         "https://i.redd.it/pic.jpg",
		Selftext:    "look at this",
		CreatedUTC:  1700000100,
	}
}

func newCrawler(t *testing.T, source crawler.ContentSource, anonymize config.AnonymizeConfig) (*crawler.Crawler, string) {
	t.Helper()
	dir := t.TempDir()
	c, err := crawler.New(&crawler.Args{
		Source:    source,
		Scorer:    fakeScorer{},
		Hasher:    fakeHasher{},
		BaseDir:   dir,
		Anonymize: anonymize,
	})
	require.NoError(t, err)
	return c, dir
}

func defaultAnonymize() config.AnonymizeConfig {
	return config.AnonymizeConfig{Posts: true, Comments: false}
}

func TestGetPostsRejectsUnknownSortMode(t *testing.T) {
	source := &fakeSource{}
	c, _ := newCrawler(t, source, defaultAnonymize())

	_, err := c.GetPosts(context.Background(), crawler.Options{
		Subreddits: []string{"test"},
		SortBy:     "controversial",
	})
	require.ErrorIs(t, err, crawler.ErrUnsupportedSortMode)
	// validation happens before any fetch
	assert.Zero(t, source.listingCalls)
}

func TestGetPostsScenarioVideoAndImage(t *testing.T) {
	source := &fakeSource{
		listings: map[string][]*reddit.Post{
			"test": {videoPost(), imagePost()},
		},
	}
	c, _ := newCrawler(t, source, defaultAnonymize())

	records, err := c.GetPosts(context.Background(), crawler.Options{
		Subreddits: []string{"test"},
		SortBy:     "top",
		Limit:      2,
	})
	require.NoError(t, err)
	require.Len(t, records, 2)

	video := records[0]
	assert.Equal(t, models.MediaTypeVideo, video.MediaType)
	require.NotNil(t, video.MediaURL)
	assert.Equal(t, "https://v.redd.it/xyz/DASH_720.mp4", *video.MediaURL)
	assert.Equal(t, "r/test", video.Subreddit)
	require.NotNil(t, video.AuthorHash)
	assert.Equal(t, "hashed:gopher", *video.AuthorHash)
	assert.False(t, video.ExtractedAt.IsZero())
	// empty body still yields a valid, neutral triple
	assert.Zero(t, video.BodyCompound)
	assert.Equal(t, 0.3, video.TitleCompound)

	image := records[1]
	assert.Equal(t, models.MediaTypeImage, image.MediaType)
	require.NotNil(t, image.MediaURL)
	assert.Equal(t, "https://i.redd.it/pic.jpg", *image.MediaURL)
	assert.True(t, image.Over18)
	assert.Equal(t, int64(99), image.Score)
	assert.Equal(t, 1700000100.0, image.CreatedUTC)
	assert.Equal(t, "look at this", image.Body)
	assert.Equal(t, 0.3, image.BodyCompound)
}

func TestGetPostsNullAuthor(t *testing.T) {
	deleted := imagePost()
	deleted.Author = "[deleted]"
	source := &fakeSource{
		listings: map[string][]*reddit.Post{"test": {deleted}},
	}
	c, _ := newCrawler(t, source, defaultAnonymize())

	records, err := c.GetPosts(context.Background(), crawler.Options{
		Subreddits: []string{"test"},
		SortBy:     "top",
	})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Nil(t, records[0].AuthorHash)
}

func TestGetPostsMalformedMediaAbortsRun(t *testing.T) {
	broken := videoPost()
	broken.Media = nil
	source := &fakeSource{
		listings: map[string][]*reddit.Post{"test": {broken}},
	}
	c, _ := newCrawler(t, source, defaultAnonymize())

	_, err := c.GetPosts(context.Background(), crawler.Options{
		Subreddits: []string{"test"},
		SortBy:     "top",
	})
	assert.ErrorIs(t, err, crawler.ErrMalformedMediaPayload)
}

func TestGetPostsAccumulatesAcrossSubreddits(t *testing.T) {
	source := &fakeSource{
		listings: map[string][]*reddit.Post{
			"first":  {videoPost()},
			"second": {imagePost()},
		},
	}
	c, _ := newCrawler(t, source, defaultAnonymize())

	records, err := c.GetPosts(context.Background(), crawler.Options{
		Subreddits: []string{"first", "second"},
		SortBy:     "hot",
	})
	require.NoError(t, err)
	require.Len(t, records, 2)
	// one table, in subreddit request order
	assert.Equal(t, "r/first", records[0].Subreddit)
	assert.Equal(t, "r/second", records[1].Subreddit)
}

func TestGetPostsSourceFailureIsFatal(t *testing.T) {
	source := &fakeSource{listingErr: errors.New("rate limited")}
	c, _ := newCrawler(t, source, defaultAnonymize())

	_, err := c.GetPosts(context.Background(), crawler.Options{
		Subreddits: []string{"test"},
		SortBy:     "top",
	})
	assert.Error(t, err)
}

func TestGetPostsSaveWritesFile(t *testing.T) {
	source := &fakeSource{
		listings: map[string][]*reddit.Post{"test": {imagePost()}},
	}
	c, dir := newCrawler(t, source, defaultAnonymize())

	records, err := c.GetPosts(context.Background(), crawler.Options{
		Subreddits: []string{"test"},
		SortBy:     "top",
		Save:       true,
		Format:     sink.FormatCSV,
	})
	require.NoError(t, err)
	require.Len(t, records, 1)

	info, err := os.Stat(filepath.Join(dir, "posts.csv"))
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestGetPostsBadFormatStillReturnsTable(t *testing.T) {
	source := &fakeSource{
		listings: map[string][]*reddit.Post{"test": {imagePost()}},
	}
	c, dir := newCrawler(t, source, defaultAnonymize())

	records, err := c.GetPosts(context.Background(), crawler.Options{
		Subreddits: []string{"test"},
		SortBy:     "top",
		Save:       true,
		Format:     sink.Format("xml"),
	})
	require.ErrorIs(t, err, sink.ErrUnsupportedFormat)
	// the fetched table survives the failed persist
	assert.Len(t, records, 1)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestGetPostsCreatesBaseDir(t *testing.T) {
	source := &fakeSource{
		listings: map[string][]*reddit.Post{"test": {imagePost()}},
	}
	dir := filepath.Join(t.TempDir(), "nested", "data")
	c, err := crawler.New(&crawler.Args{
		Source:  source,
		Scorer:  fakeScorer{},
		Hasher:  fakeHasher{},
		BaseDir: dir,
	})
	require.NoError(t, err)

	_, err = c.GetPosts(context.Background(), crawler.Options{
		Subreddits: []string{"test"},
		SortBy:     "new",
	})
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
