package reddit

// deletedAuthor is what the listing API reports for removed accounts; the
// adapter maps it to an absent author, like PRAW's None.
const deletedAuthor = "[deleted]"

// Post is one t3 thing from a subreddit listing. Field names follow the
// wire format.
type Post struct {
	ID          string  `json:"id"`
	Subreddit   string  `json:"subreddit"`
	Title       string  `json:"title"`
	Author      string  `json:"author"`
	UpvoteRatio float64 `json:"upvote_ratio"`
	Score       int64   `json:"score"`
	Over18      bool    `json:"over_18"`
	URL         string  `json:"url"`
	IsVideo     bool    `json:"is_video"`
	Media       *Media  `json:"media"`
	Selftext    string  `json:"selftext"`
	CreatedUTC  float64 `json:"created_utc"`
}

// AuthorName reports the author and whether one exists. Deleted accounts
// come over the wire as "[deleted]" (or empty) and count as absent.
func (p *Post) AuthorName() (string, bool) {
	if p.Author == "" || p.Author == deletedAuthor {
		return "", false
	}
	return p.Author, true
}

// Media is the media payload attached to video posts.
type Media struct {
	RedditVideo *RedditVideo `json:"reddit_video"`
}

// RedditVideo carries the playback URLs for a hosted video.
type RedditVideo struct {
	FallbackURL string `json:"fallback_url"`
}

// FallbackURL returns the video playback URL, if the payload carries one.
func (m *Media) FallbackURL() (string, bool) {
	if m == nil || m.RedditVideo == nil || m.RedditVideo.FallbackURL == "" {
		return "", false
	}
	return m.RedditVideo.FallbackURL, true
}

// Comment is one child of a post's comment listing. Kind is the thing kind
// from the envelope: "t1" for real comments, "more" for collapsed stubs.
type Comment struct {
	Kind       string  `json:"-"`
	Body       string  `json:"body"`
	Author     string  `json:"author"`
	CreatedUTC float64 `json:"created_utc"`
}

// Readable reports whether the node is an actual comment whose fields can
// be trusted. Placeholder nodes ("more", deleted subtrees) are not readable.
func (c *Comment) Readable() bool {
	return c.Kind == "t1"
}

// AuthorName reports the comment author and whether one exists.
func (c *Comment) AuthorName() (string, bool) {
	if c.Author == "" || c.Author == deletedAuthor {
		return "", false
	}
	return c.Author, true
}
