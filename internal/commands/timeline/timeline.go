package timeline

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/user/fips-dashboard/internal/aggregate"
	"github.com/user/fips-dashboard/internal/cache"
	"github.com/user/fips-dashboard/internal/config"
	"github.com/user/fips-dashboard/internal/fips"
	"github.com/user/fips-dashboard/internal/logger"
	"github.com/user/fips-dashboard/internal/render"
	"github.com/user/fips-dashboard/pkg/github"
)

var (
	configFile string
	output     string
	months     int
	dryRun     bool
	debug      bool
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "timeline",
		Short: "Generate the month-on-month FIP status timeline page",
		RunE:  runTimeline,
	}

	cmd.Flags().StringVarP(&configFile, "config", "c", "config.yaml", "Path to config file")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file path (overrides config)")
	cmd.Flags().IntVar(&months, "months", 0, "Months of history to inspect (overrides config)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print page to stdout instead of writing a file")
	cmd.Flags().BoolVar(&debug, "debug", false, "Enable debug logging")

	return cmd
}

func runTimeline(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	logger.SetDebug(debug)
	log := logger.Get().With().Str("run_id", uuid.NewString()).Logger()

	cfg, err := config.Load(configFile)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("loading config: %w", err)
	}
	if cfg == nil {
		cfg = config.Default()
	}

	out := output
	if out == "" {
		out = cfg.Output.Timeline
	}
	lookback := months
	if lookback == 0 {
		lookback = cfg.Timeline.Months
	}

	var store *cache.Store
	if cfg.Cache.SQLitePath != "" {
		db, err := cache.NewSQLiteDB(cfg.Cache.SQLitePath)
		if err != nil {
			return fmt.Errorf("opening snapshot cache: %w", err)
		}
		store = cache.NewStore(db)
	}

	client := github.NewClient(cfg.Token())
	now := time.Now()

	log.Info().Str("repo", cfg.Owner+"/"+cfg.Repo).Int("months", lookback).Msg("fetching README history")
	since := now.AddDate(0, -lookback, 0)
	commits, err := client.ListCommits(ctx, cfg.Owner, cfg.Repo, cfg.ReadmePath, since)
	if err != nil {
		return fmt.Errorf("listing README commits: %w", err)
	}

	refs := make([]aggregate.CommitRef, 0, len(commits))
	for _, c := range commits {
		refs = append(refs, aggregate.CommitRef{SHA: c.SHA, Date: c.Commit.Committer.Date})
	}

	var snapshots []aggregate.Snapshot
	for _, ref := range aggregate.LatestPerMonth(refs) {
		snap, err := snapshotAt(ctx, client, store, cfg, ref, log)
		if err != nil {
			return err
		}
		snapshots = append(snapshots, snap)
	}

	// The current month may have no README commit yet; top up from the
	// branch head so the summary always reflects today.
	currentMonth := now.Format(aggregate.MonthKey)
	if !hasMonth(snapshots, currentMonth) {
		log.Info().Str("month", currentMonth).Msg("no commit this month, fetching branch head")
		readme, err := client.GetRawFile(ctx, cfg.Owner, cfg.Repo, cfg.Branch, cfg.ReadmePath)
		if err != nil {
			return fmt.Errorf("fetching current README: %w", err)
		}
		records, err := fips.ParseProposals(readme)
		if err != nil {
			return fmt.Errorf("parsing current README: %w", err)
		}
		snapshots = append(snapshots, aggregate.Snapshot{
			Month:      currentMonth,
			CommitSHA:  "HEAD",
			CommitDate: now,
			Proposals:  byNumber(records),
		})
	}

	if len(snapshots) == 0 {
		return fmt.Errorf("%w: no snapshots could be built", github.ErrRetrieval)
	}

	timeline := aggregate.BuildTimeline(snapshots)
	log.Info().Int("snapshots", len(snapshots)).Int("months_with_changes", len(timeline)).Msg("built timeline")

	latest := snapshots[len(snapshots)-1]
	for _, s := range snapshots {
		if s.Month > latest.Month {
			latest = s
		}
	}

	view := render.TimelineView{
		GeneratedAt: now,
		Summary:     aggregate.Summarize(values(latest.Proposals)),
		Months:      timeline,
		FIPBaseURL:  fmt.Sprintf("https://github.com/%s/%s/blob/%s/", cfg.Owner, cfg.Repo, cfg.Branch),
	}

	page := render.Timeline(view)

	if dryRun {
		fmt.Println(page)
		return nil
	}

	if err := render.WriteFile(out, []byte(page)); err != nil {
		return fmt.Errorf("writing timeline: %w", err)
	}

	log.Info().Str("path", out).Msg("timeline written")
	return nil
}

// snapshotAt builds the snapshot for one month's chosen commit, consulting
// the cache first when one is configured.
func snapshotAt(ctx context.Context, client *github.Client, store *cache.Store, cfg *config.Config, ref aggregate.CommitRef, log zerolog.Logger) (aggregate.Snapshot, error) {
	month := ref.Date.Format(aggregate.MonthKey)
	snap := aggregate.Snapshot{Month: month, CommitSHA: ref.SHA, CommitDate: ref.Date}

	if store != nil {
		proposals, ok, err := store.Get(ref.SHA)
		if err != nil {
			return snap, fmt.Errorf("reading snapshot cache: %w", err)
		}
		if ok {
			log.Debug().Str("month", month).Str("sha", shortSHA(ref.SHA)).Msg("snapshot cache hit")
			snap.Proposals = proposals
			return snap, nil
		}
	}

	log.Info().Str("month", month).Str("sha", shortSHA(ref.SHA)).Msg("fetching snapshot")
	readme, err := client.GetFileAt(ctx, cfg.Owner, cfg.Repo, cfg.ReadmePath, ref.SHA)
	if err != nil {
		return snap, fmt.Errorf("fetching README at %s: %w", shortSHA(ref.SHA), err)
	}

	records, err := fips.ParseProposals(readme)
	if err != nil {
		return snap, fmt.Errorf("parsing README at %s: %w", shortSHA(ref.SHA), err)
	}
	snap.Proposals = byNumber(records)

	if store != nil {
		if err := store.Put(ref.SHA, month, ref.Date, snap.Proposals); err != nil {
			log.Warn().Err(err).Str("sha", shortSHA(ref.SHA)).Msg("failed to cache snapshot")
		}
	}

	return snap, nil
}

func byNumber(records []fips.ProposalRecord) map[string]fips.ProposalRecord {
	m := make(map[string]fips.ProposalRecord, len(records))
	for _, r := range records {
		m[r.Number] = r
	}
	return m
}

func values(proposals map[string]fips.ProposalRecord) []fips.ProposalRecord {
	out := make([]fips.ProposalRecord, 0, len(proposals))
	for _, p := range proposals {
		out = append(out, p)
	}
	return out
}

func hasMonth(snapshots []aggregate.Snapshot, month string) bool {
	for _, s := range snapshots {
		if s.Month == month {
			return true
		}
	}
	return false
}

func shortSHA(sha string) string {
	if len(sha) > 7 {
		return sha[:7]
	}
	return sha
}
