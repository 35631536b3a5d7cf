package crawler

import (
	"fmt"
	"strings"
	"time"

	"github.com/aneesh-aparajit/reddit-crawler/models"
	"github.com/aneesh-aparajit/reddit-crawler/reddit"
)

// imageExtensions is the exact suffix set the classifier accepts. The match
// is case-sensitive and literal: ".PNG" and extension-less URLs are text.
var imageExtensions = map[string]struct{}{
	"png":  {},
	"jpg":  {},
	"jpeg": {},
}

// classifyMedia decides the media type of a post and the URL the media can
// be fetched from. mediaURL is nil exactly when the type is text.
func classifyMedia(isVideo bool, media *reddit.Media, postURL string) (string, *string, error) {
	if isVideo {
		fallback, ok := media.FallbackURL()
		if !ok {
			return "", nil, fmt.Errorf("%w: video post carries no reddit_video.fallback_url", ErrMalformedMediaPayload)
		}
		return models.MediaTypeVideo, &fallback, nil
	}

	// text after the last dot; a dot-less URL yields itself and never matches
	ext := postURL[strings.LastIndex(postURL, ".")+1:]
	if _, ok := imageExtensions[ext]; ok {
		u := postURL
		return models.MediaTypeImage, &u, nil
	}

	return models.MediaTypeText, nil, nil
}

// postAuthorField resolves the author_hash column for a post: nil for a
// deleted author, otherwise the hashed (or, if anonymization is disabled
// for posts, plain) name.
func (c *Crawler) postAuthorField(p *reddit.Post) (*string, error) {
	name, ok := p.AuthorName()
	if !ok {
		return nil, nil
	}
	if !c.anonymize.Posts {
		return &name, nil
	}
	hashed, err := c.hasher.Hash(name)
	if err != nil {
		return nil, fmt.Errorf("hashing author of %q: %w", p.Title, err)
	}
	return &hashed, nil
}

// normalizePost flattens one listing post into a PostRecord. extracted_at
// is stamped here, per record, not at pipeline start.
func (c *Crawler) normalizePost(p *reddit.Post, subreddit string) (models.PostRecord, error) {
	authorHash, err := c.postAuthorField(p)
	if err != nil {
		return models.PostRecord{}, err
	}

	mediaType, mediaURL, err := classifyMedia(p.IsVideo, p.Media, p.URL)
	if err != nil {
		return models.PostRecord{}, fmt.Errorf("post %q: %w", p.Title, err)
	}

	titleScores := c.scorer.Score(p.Title)
	bodyScores := c.scorer.Score(p.Selftext)

	return models.PostRecord{
		Title:            p.Title,
		AuthorHash:       authorHash,
		UpvoteRatio:      p.UpvoteRatio,
		Score:            p.Score,
		CreatedUTC:       p.CreatedUTC,
		ExtractedAt:      time.Now(),
		Over18:           p.Over18,
		URL:              p.URL,
		MediaURL:         mediaURL,
		MediaType:        mediaType,
		Body:             p.Selftext,
		Subreddit:        "r/" + subreddit,
		TitlePolarityNeg: titleScores.Negative,
		TitlePolarityPos: titleScores.Positive,
		TitleCompound:    titleScores.Compound,
		BodyPolarityNeg:  bodyScores.Negative,
		BodyPolarityPos:  bodyScores.Positive,
		BodyCompound:     bodyScores.Compound,
	}, nil
}
