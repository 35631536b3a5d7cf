package main

import (
	"fmt"
	"os"
	"strings"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v2"

	"github.com/aneesh-aparajit/reddit-crawler/config"
	"github.com/aneesh-aparajit/reddit-crawler/crawler"
	"github.com/aneesh-aparajit/reddit-crawler/identity"
	"github.com/aneesh-aparajit/reddit-crawler/logger"
	"github.com/aneesh-aparajit/reddit-crawler/reddit"
	"github.com/aneesh-aparajit/reddit-crawler/sentiment"
	"github.com/aneesh-aparajit/reddit-crawler/sink"
)

func main() {
	app := cli.App{
		Name:   "reddit-crawler",
		Usage:  "collects subreddit posts and comments into analysis-ready tables",
		Action: run,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "subreddit-file",
				Usage:    "path to a whitespace-delimited list of subreddit names",
				EnvVars:  []string{"REDDIT_CRAWLER_SUBREDDIT_FILE"},
				Required: true,
			},
			&cli.IntFlag{
				Name:    "limit",
				Usage:   "max posts per subreddit and, for the comment pipeline, comments per post (0 = unbounded)",
				EnvVars: []string{"REDDIT_CRAWLER_LIMIT"},
			},
			&cli.StringFlag{
				Name:     "client-id",
				Usage:    "reddit API client id",
				EnvVars:  []string{"REDDIT_CLIENT_ID"},
				Required: true,
			},
			&cli.StringFlag{
				Name:     "client-secret",
				Usage:    "reddit API client secret",
				EnvVars:  []string{"REDDIT_CLIENT_SECRET"},
				Required: true,
			},
			&cli.StringFlag{
				Name:    "user-agent",
				Usage:   "user agent, usually <APP_NAME> <VERSION> by /u/<REDDIT_USERNAME>",
				EnvVars: []string{"REDDIT_USER_AGENT"},
				Value:   "reddit-crawler 0.1",
			},
			&cli.BoolFlag{
				Name:    "posts",
				Usage:   "run the post extraction pipeline",
				EnvVars: []string{"REDDIT_CRAWLER_POSTS"},
			},
			&cli.BoolFlag{
				Name:    "comments",
				Usage:   "run the comment extraction pipeline",
				EnvVars: []string{"REDDIT_CRAWLER_COMMENTS"},
			},
			&cli.StringFlag{
				Name:    "sort",
				Usage:   "listing sort mode: hot, new, rising or top (default from config.yaml)",
				EnvVars: []string{"REDDIT_CRAWLER_SORT"},
			},
			&cli.StringFlag{
				Name:    "format",
				Usage:   "output format: csv, tsv, json, parquet, sql or pickle",
				EnvVars: []string{"REDDIT_CRAWLER_FORMAT"},
				Value:   "csv",
			},
			&cli.StringFlag{
				Name:    "out-dir",
				Usage:   "output directory (default from config.yaml)",
				EnvVars: []string{"REDDIT_CRAWLER_OUT_DIR"},
			},
			&cli.BoolFlag{
				Name:    "save",
				Usage:   "persist the collected tables",
				EnvVars: []string{"REDDIT_CRAWLER_SAVE"},
				Value:   true,
			},
		},
		ErrWriter: os.Stderr,
	}

	if err := app.Run(os.Args); err != nil {
		logger.Log.Error(err.Error())
		os.Exit(1)
	}
}

var run = func(cmd *cli.Context) error {
	config.InitApp()
	cfg := config.GetConfig()
	logger.Init(cfg.Logging.Level)

	if !cmd.Bool("posts") && !cmd.Bool("comments") {
		return fmt.Errorf("nothing to do: pass --posts and/or --comments")
	}

	raw, err := os.ReadFile(cmd.String("subreddit-file"))
	if err != nil {
		return fmt.Errorf("reading subreddit file: %w", err)
	}
	subreddits := strings.Fields(string(raw))
	if len(subreddits) == 0 {
		return fmt.Errorf("subreddit file %q lists no subreddits", cmd.String("subreddit-file"))
	}

	baseDir := cmd.String("out-dir")
	if baseDir == "" {
		baseDir = cfg.Crawler.BaseDir
	}
	sortBy := cmd.String("sort")
	if sortBy == "" {
		sortBy = cfg.Crawler.SortBy
	}

	client := reddit.NewClient(
		cmd.String("client-id"),
		cmd.String("client-secret"),
		cmd.String("user-agent"),
	)

	c, err := crawler.New(&crawler.Args{
		Source:    client,
		Scorer:    sentiment.NewAnalyzer(),
		Hasher:    identity.NewBcryptHasher(),
		BaseDir:   baseDir,
		Anonymize: cfg.Anonymize,
	})
	if err != nil {
		return err
	}

	opts := crawler.Options{
		Subreddits: subreddits,
		SortBy:     sortBy,
		Limit:      cmd.Int("limit"),
		Save:       cmd.Bool("save"),
		Format:     sink.Format(cmd.String("format")),
	}

	logger.InfoWithFields("starting crawl", logger.Fields{
		"subreddits": subreddits,
		"sort":       sortBy,
		"limit":      opts.Limit,
		"format":     string(opts.Format),
		"out_dir":    baseDir,
	})

	if cmd.Bool("posts") {
		records, err := c.GetPosts(cmd.Context, opts)
		if err != nil {
			return fmt.Errorf("post pipeline: %w", err)
		}
		logger.Log.Infof("post pipeline produced %d records", len(records))
	}

	if cmd.Bool("comments") {
		records, err := c.GetComments(cmd.Context, opts)
		if err != nil {
			return fmt.Errorf("comment pipeline: %w", err)
		}
		logger.Log.Infof("comment pipeline produced %d records", len(records))
	}

	return nil
}
