package models

import "time"

// Media types assigned by classification. Every post record carries exactly
// one of these, and MediaURL is set iff the type is video or image.
const (
	MediaTypeVideo = "video"
	MediaTypeImage = "image"
	MediaTypeText  = "text"
)

// Record is the contract the positional sink codecs (csv, tsv, sql, pickle)
// rely on. Columns and Values must agree in length and order, and the order
// is fixed for the lifetime of a table.
type Record interface {
	Columns() []string
	Values() []any
}

// PostRecord is one row of the posts table. Pointer fields are the null
// marker: nil means the source value was absent (deleted author, non-media
// post), never "empty".
type PostRecord struct {
	Title            string    `json:"title" parquet:"title"`
	AuthorHash       *string   `json:"author_hash" parquet:"author_hash,optional"`
	UpvoteRatio      float64   `json:"upvote_ratio" parquet:"upvote_ratio"`
	Score            int64     `json:"score" parquet:"score"`
	CreatedUTC       float64   `json:"created_utc" parquet:"created_utc"`
	ExtractedAt      time.Time `json:"extracted_at" parquet:"extracted_at,timestamp"`
	Over18           bool      `json:"over_18" parquet:"over_18"`
	URL              string    `json:"url" parquet:"url"`
	MediaURL         *string   `json:"media_url" parquet:"media_url,optional"`
	MediaType        string    `json:"media_type" parquet:"media_type"`
	Body             string    `json:"body" parquet:"body"`
	Subreddit        string    `json:"subreddit" parquet:"subreddit"`
	TitlePolarityNeg float64   `json:"title_polarity_neg" parquet:"title_polarity_neg"`
	TitlePolarityPos float64   `json:"title_polarity_pos" parquet:"title_polarity_pos"`
	TitleCompound    float64   `json:"title_compound" parquet:"title_compound"`
	BodyPolarityNeg  float64   `json:"body_polarity_neg" parquet:"body_polarity_neg"`
	BodyPolarityPos  float64   `json:"body_polarity_pos" parquet:"body_polarity_pos"`
	BodyCompound     float64   `json:"body_compound" parquet:"body_compound"`
}

var postColumns = []string{
	"title",
	"author_hash",
	"upvote_ratio",
	"score",
	"created_utc",
	"extracted_at",
	"over_18",
	"url",
	"media_url",
	"media_type",
	"body",
	"subreddit",
	"title_polarity_neg",
	"title_polarity_pos",
	"title_compound",
	"body_polarity_neg",
	"body_polarity_pos",
	"body_compound",
}

func (r PostRecord) Columns() []string { return postColumns }

func (r PostRecord) Values() []any {
	return []any{
		r.Title,
		optional(r.AuthorHash),
		r.UpvoteRatio,
		r.Score,
		r.CreatedUTC,
		r.ExtractedAt,
		r.Over18,
		r.URL,
		optional(r.MediaURL),
		r.MediaType,
		r.Body,
		r.Subreddit,
		r.TitlePolarityNeg,
		r.TitlePolarityPos,
		r.TitleCompound,
		r.BodyPolarityNeg,
		r.BodyPolarityPos,
		r.BodyCompound,
	}
}

// CommentRecord is one row of the comments table, denormalized against its
// parent post. Subreddit is the plain community name without the r/ prefix.
type CommentRecord struct {
	PostTitle         string  `json:"post_title" parquet:"post_title"`
	PostAuthor        *string `json:"post_author" parquet:"post_author,optional"`
	PostCreatedUTC    float64 `json:"post_created_utc" parquet:"post_created_utc"`
	CommentBody       string  `json:"comment_body" parquet:"comment_body"`
	CommentAuthor     *string `json:"comment_author" parquet:"comment_author,optional"`
	CommentCreatedUTC float64 `json:"comment_created_utc" parquet:"comment_created_utc"`
	Subreddit         string  `json:"subreddit" parquet:"subreddit"`
}

var commentColumns = []string{
	"post_title",
	"post_author",
	"post_created_utc",
	"comment_body",
	"comment_author",
	"comment_created_utc",
	"subreddit",
}

func (r CommentRecord) Columns() []string { return commentColumns }

func (r CommentRecord) Values() []any {
	return []any{
		r.PostTitle,
		optional(r.PostAuthor),
		r.PostCreatedUTC,
		r.CommentBody,
		optional(r.CommentAuthor),
		r.CommentCreatedUTC,
		r.Subreddit,
	}
}

func optional(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}
