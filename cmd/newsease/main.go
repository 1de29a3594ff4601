package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	"newsease/internal/app"
	"newsease/internal/config"
	"newsease/internal/domain"
	"newsease/internal/feed"
	"newsease/internal/infrastructure/location"
	"newsease/internal/logging"
	"newsease/internal/trending"
	"newsease/internal/usecase"
)

type options struct {
	configPath    string
	search        string
	category      string
	bookmarksOnly bool
	headlines     bool
	refresh       bool
	limit         int
	showTrending  bool
	showStats     bool
	showHistory   bool
	clearHistory  bool
	clearCache    bool
	reset         bool
	interval      string
	readTime      time.Duration
	local         bool
	radiusKm      float64
	unblock       string
	toggleCat     string
	localNews     *bool
	download      string
	showSummary   bool
	bookmark      string
	read          string
	block         string
	share         string
	watch         bool
	asJSON        bool
}

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	var opts options

	flagSet := pflag.NewFlagSet("newsease", pflag.ContinueOnError)
	flagSet.StringVar(&opts.configPath, "config", "", "path to YAML config (default: $NEWSEASE_CONFIG)")
	flagSet.StringVarP(&opts.search, "search", "s", "", "search the source and list matching articles")
	flagSet.StringVarP(&opts.category, "category", "c", "", "restrict the listing to one category")
	flagSet.BoolVarP(&opts.bookmarksOnly, "bookmarks", "b", false, "list bookmarked articles only")
	flagSet.BoolVar(&opts.headlines, "headlines", false, "load top headlines instead of the feed")
	flagSet.BoolVarP(&opts.refresh, "refresh", "r", false, "fetch even when the cache is fresh")
	flagSet.IntVarP(&opts.limit, "limit", "n", feed.FeedLimit, "maximum articles to list (0 lists all)")
	flagSet.BoolVarP(&opts.showTrending, "trending", "t", false, "show trending topics, hot and breaking news")
	flagSet.BoolVar(&opts.showStats, "stats", false, "show reading statistics")
	flagSet.BoolVar(&opts.showHistory, "history", false, "show recent searches")
	flagSet.BoolVar(&opts.clearHistory, "clear-history", false, "forget recent searches")
	flagSet.BoolVar(&opts.clearCache, "clear-cache", false, "drop the cached articles so the next start fetches")
	flagSet.BoolVar(&opts.reset, "reset", false, "restore the default preferences")
	flagSet.StringVar(&opts.interval, "interval", "", "auto-refresh interval: 15min, 30min, 1hour, 2hours or manual")
	flagSet.DurationVar(&opts.readTime, "read-time", 0, "time spent reading, added to the statistics")
	flagSet.BoolVarP(&opts.local, "local", "l", false, "list local articles with their distance")
	flagSet.Float64Var(&opts.radiusKm, "radius", 0, "only list local articles within this many km (0 lists all)")
	flagSet.StringVar(&opts.unblock, "unblock", "", "show articles from a blocked source id again")
	flagSet.StringVar(&opts.toggleCat, "toggle-category", "", "add or remove a category from refreshes")
	localNews := flagSet.Bool("local-news", true, "fetch local articles on refresh")
	flagSet.StringVar(&opts.download, "download", "", "store an article id for offline reading")
	flagSet.BoolVar(&opts.showSummary, "summary", false, "show collection counts")
	flagSet.StringVar(&opts.bookmark, "bookmark", "", "toggle the bookmark on an article id")
	flagSet.StringVar(&opts.read, "read", "", "mark an article id as read")
	flagSet.StringVar(&opts.block, "block", "", "hide articles from a source id")
	flagSet.StringVar(&opts.share, "share", "", "print the share text of an article id")
	flagSet.BoolVarP(&opts.watch, "watch", "w", false, "keep running and refresh on the preferred interval")
	flagSet.BoolVar(&opts.asJSON, "json", false, "print JSON instead of text")

	if err := flagSet.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			return nil
		}
		return err
	}
	if flagSet.Changed("local-news") {
		opts.localNews = localNews
	}

	var cfg config.Config
	if opts.configPath != "" {
		cfg = config.LoadFile(opts.configPath)
	} else {
		cfg = config.Load()
	}
	logger := logging.NewWithWriter(os.Stderr, cfg.Logging.Level, cfg.Logging.Format)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, err := app.New(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer application.Close()

	fetched, err := application.Load(ctx)
	if err != nil {
		return err
	}
	session := application.Session()

	if err := apply(ctx, session, opts, fetched); err != nil {
		return err
	}

	if err := render(out, session, opts); err != nil {
		return err
	}

	if opts.watch {
		return application.Watch(ctx)
	}
	return nil
}

// apply runs the requested actions. fetched tells whether loading already
// refreshed the feed, in which case --refresh does not fetch again.
func apply(ctx context.Context, session *usecase.Session, opts options, fetched bool) error {
	if opts.reset {
		session.ResetPreferences(ctx)
	}
	if opts.interval != "" {
		interval, err := domain.ParseRefreshInterval(opts.interval)
		if err != nil {
			return err
		}
		session.SetRefreshInterval(ctx, interval)
	}
	if opts.toggleCat != "" {
		category, err := domain.ParseCategory(opts.toggleCat)
		if err != nil {
			return err
		}
		session.ToggleCategory(ctx, category)
	}
	if opts.localNews != nil {
		session.SetLocationBasedNews(ctx, *opts.localNews)
	}
	if opts.clearCache {
		if err := session.ClearCache(ctx); err != nil {
			return fmt.Errorf("clear cache: %w", err)
		}
	}

	if opts.category != "" {
		category, err := domain.ParseCategory(opts.category)
		if err != nil {
			return err
		}
		session.SelectCategory(category)
	}

	switch {
	case opts.search != "":
		if err := session.Search(ctx, opts.search); err != nil {
			return err
		}
	case opts.headlines:
		if err := session.TopHeadlines(ctx); err != nil {
			return err
		}
	case opts.refresh && !fetched:
		if err := session.Refresh(ctx); err != nil {
			return err
		}
	}

	if opts.bookmarksOnly {
		session.ToggleBookmarksOnly()
	}
	if opts.bookmark != "" {
		session.ToggleBookmark(ctx, opts.bookmark)
	}
	if opts.read != "" {
		if err := session.MarkAsRead(ctx, opts.read); err != nil {
			return fmt.Errorf("mark %s as read: %w", opts.read, err)
		}
	}
	if opts.readTime > 0 {
		session.AddReadingTime(ctx, opts.readTime)
	}
	if opts.block != "" {
		session.BlockSource(ctx, opts.block)
	}
	if opts.unblock != "" {
		session.UnblockSource(ctx, opts.unblock)
	}
	if opts.clearHistory {
		session.ClearSearchHistory(ctx)
	}
	return nil
}

type report struct {
	Status          string               `json:"status"`
	RefreshInterval string               `json:"refreshInterval"`
	Location        string               `json:"location,omitempty"`
	Articles        []articleView        `json:"articles"`
	Origin          string               `json:"origin,omitempty"`
	Local           []localView          `json:"local,omitempty"`
	Trending        *trendingView        `json:"trending,omitempty"`
	Stats           *domain.ReadingStats `json:"stats,omitempty"`
	History         []string             `json:"history,omitempty"`
	Share           string               `json:"share,omitempty"`
	Downloaded      *articleView         `json:"downloaded,omitempty"`
	Summary         *summaryView         `json:"summary,omitempty"`
}

type summaryView struct {
	Total        int               `json:"total"`
	Visible      int               `json:"visible"`
	Unread       int               `json:"unread"`
	Local        int               `json:"local"`
	Bookmarked   int               `json:"bookmarked"`
	Categories   []domain.Category `json:"categories"`
	SearchActive bool              `json:"searchActive"`
	RefreshedAt  *time.Time        `json:"refreshedAt,omitempty"`
}

type articleView struct {
	domain.Article
	TrendingScore float64 `json:"trendingScore"`
	IsHot         bool    `json:"isHot"`
	IsTrending    bool    `json:"isTrending"`
	IsBreaking    bool    `json:"isBreaking"`
	Age           string  `json:"age"`
}

type localView struct {
	articleView
	Distance string `json:"distance,omitempty"`
}

type trendingView struct {
	Topics   []domain.TrendingTopic `json:"topics"`
	Hot      []articleView          `json:"hot"`
	Breaking []articleView          `json:"breaking"`
}

func render(out io.Writer, session *usecase.Session, opts options) error {
	now := time.Now()
	rep := report{
		Status:          session.StatusMessage(),
		RefreshInterval: string(session.Preferences().RefreshInterval),
		Location:        session.LocationMessage(),
		Articles:        views(session.Visible(opts.limit), now),
	}

	if opts.local {
		rep.Origin, rep.Local = localReport(session, opts.radiusKm, now)
	}

	if opts.showTrending {
		analysis := session.Trending()
		rep.Trending = trendingReport(analysis, now)
	}
	if opts.showStats {
		stats := session.Stats()
		rep.Stats = &stats
	}
	if opts.showHistory {
		rep.History = session.SearchHistory()
	}
	if opts.share != "" {
		text, err := session.ShareText(opts.share)
		if err != nil {
			return fmt.Errorf("share %s: %w", opts.share, err)
		}
		rep.Share = text
	}
	if opts.download != "" {
		article, err := session.DownloadForOffline(opts.download)
		if err != nil {
			return fmt.Errorf("download %s: %w", opts.download, err)
		}
		v := view(article, now)
		rep.Downloaded = &v
	}
	if opts.showSummary {
		rep.Summary = summaryReport(session.Summary())
	}

	if opts.asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(rep)
	}
	return writeText(out, rep)
}

func trendingReport(analysis trending.Analysis, now time.Time) *trendingView {
	return &trendingView{
		Topics:   analysis.Topics,
		Hot:      views(analysis.Hot, now),
		Breaking: views(analysis.Breaking, now),
	}
}

// localReport lists up to feed.PreviewLimit local articles with their
// distance from the last known user location. A positive radiusKm drops
// articles farther away; without a known location nothing is dropped.
func localReport(session *usecase.Session, radiusKm float64, now time.Time) (string, []localView) {
	var center *domain.Coordinate
	origin := ""
	if last := session.Preferences().LastLocation; last != nil {
		center = &domain.Coordinate{Latitude: last.Latitude, Longitude: last.Longitude}
		origin = location.FormatCoordinate(*center)
	}

	out := make([]localView, 0, feed.PreviewLimit)
	for _, a := range session.LocalArticles() {
		v := localView{articleView: view(a, now)}
		if center != nil && a.Location.Coordinate != nil {
			point := *a.Location.Coordinate
			if radiusKm > 0 && !location.WithinRadius(point, *center, radiusKm*1000) {
				continue
			}
			v.Distance = location.FormatDistance(location.Distance(point, *center))
		}
		out = append(out, v)
		if len(out) == feed.PreviewLimit {
			break
		}
	}
	return origin, out
}

func summaryReport(s usecase.Summary) *summaryView {
	out := &summaryView{
		Total:        s.Total,
		Visible:      s.Visible,
		Unread:       s.Unread,
		Local:        s.Local,
		Bookmarked:   s.Bookmarked,
		Categories:   s.Categories,
		SearchActive: s.SearchActive,
	}
	if !s.RefreshedAt.IsZero() {
		at := s.RefreshedAt
		out.RefreshedAt = &at
	}
	return out
}

func views(articles []domain.Article, now time.Time) []articleView {
	out := make([]articleView, 0, len(articles))
	for _, a := range articles {
		out = append(out, view(a, now))
	}
	return out
}

func view(a domain.Article, now time.Time) articleView {
	return articleView{
		Article:       a,
		TrendingScore: a.TrendingScore,
		IsHot:         a.IsHot,
		IsTrending:    a.IsTrending,
		IsBreaking:    a.IsBreaking,
		Age:           a.TimeAgo(now),
	}
}

func writeText(out io.Writer, rep report) error {
	w := &textWriter{out: out}

	w.printf("%s\n", rep.Status)
	if rep.Location != "" {
		w.printf("! %s\n", rep.Location)
	}
	for _, a := range rep.Articles {
		w.article(a)
	}

	if rep.Local != nil {
		if rep.Origin != "" {
			w.printf("\nLocal news near %s\n", rep.Origin)
		} else {
			w.printf("\nLocal news\n")
		}
		for _, a := range rep.Local {
			w.article(a.articleView)
			if a.Distance != "" {
				w.printf("      %s away\n", a.Distance)
			}
		}
	}

	if rep.Trending != nil {
		w.printf("\nTrending topics\n")
		for _, topic := range rep.Trending.Topics {
			w.printf("  %-20s %3d  %4.1f  %s\n", topic.DisplayText(), topic.Count, topic.TrendingScore, topic.Level())
		}
		w.printf("\nHot\n")
		for _, a := range rep.Trending.Hot {
			w.article(a)
		}
		w.printf("\nBreaking\n")
		for _, a := range rep.Trending.Breaking {
			w.article(a)
		}
	}

	if rep.Stats != nil {
		s := rep.Stats
		w.printf("\nRead %d total, %d today, streak %d, goal %.0f%%, top %s\n",
			s.TotalRead, s.ReadToday, s.CurrentStreak, s.WeeklyProgress()*100, s.TopCategory().DisplayName())
	}

	if rep.History != nil {
		w.printf("\nRecent searches\n")
		for _, q := range rep.History {
			w.printf("  %s\n", q)
		}
	}

	if rep.Share != "" {
		w.printf("\n%s\n", rep.Share)
	}

	if rep.Downloaded != nil {
		w.printf("\nSaved for offline reading: %s\n", rep.Downloaded.Title)
	}

	if s := rep.Summary; s != nil {
		w.printf("\n%d total, %d visible, %d unread, %d local, %d bookmarked\n",
			s.Total, s.Visible, s.Unread, s.Local, s.Bookmarked)
	}
	return w.err
}

type textWriter struct {
	out io.Writer
	err error
}

func (w *textWriter) printf(format string, args ...interface{}) {
	if w.err != nil {
		return
	}
	_, w.err = fmt.Fprintf(w.out, format, args...)
}

func (w *textWriter) article(a articleView) {
	marks := ""
	if a.Bookmarked {
		marks += "*"
	}
	if a.Read {
		marks += "r"
	}
	if a.IsBreaking {
		marks += "!"
	}
	w.printf("  %-3s [%s] %s (%s, %s) %s\n", marks, a.Category.DisplayName(), a.Title, a.Source.Name, a.Age, a.ID)
}
