package dashboard

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/user/fips-dashboard/internal/aggregate"
	"github.com/user/fips-dashboard/internal/config"
	"github.com/user/fips-dashboard/internal/fips"
	"github.com/user/fips-dashboard/internal/logger"
	"github.com/user/fips-dashboard/internal/render"
	"github.com/user/fips-dashboard/pkg/github"
)

var (
	configFile string
	output     string
	dryRun     bool
	debug      bool
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Generate the FIP status dashboard page",
		RunE:  runDashboard,
	}

	cmd.Flags().StringVarP(&configFile, "config", "c", "config.yaml", "Path to config file")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file path (overrides config)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print page to stdout instead of writing a file")
	cmd.Flags().BoolVar(&debug, "debug", false, "Enable debug logging")

	return cmd
}

func runDashboard(cmd *cobra.Command, args []string) error {
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
		out = cfg.Output.Dashboard
	}

	client := github.NewClient(cfg.Token())

	log.Info().Str("repo", cfg.Owner+"/"+cfg.Repo).Msg("fetching README")
	readme, err := client.GetRawFile(ctx, cfg.Owner, cfg.Repo, cfg.Branch, cfg.ReadmePath)
	if err != nil {
		return fmt.Errorf("fetching README: %w", err)
	}

	records, err := fips.ParseProposals(readme)
	if err != nil {
		return fmt.Errorf("parsing README: %w", err)
	}
	log.Info().Int("proposals", len(records)).Msg("parsed proposals")

	log.Info().Msg("fetching open pull requests")
	prs, err := client.ListPullRequests(ctx, cfg.Owner, cfg.Repo, "open")
	if err != nil {
		return fmt.Errorf("listing pull requests: %w", err)
	}
	refs := fips.ClassifyPRs(prs)
	log.Info().Int("prs", len(refs)).Msg("classified pull requests")

	prGroups, generalPRs := aggregate.GroupPRsByFIP(refs)

	view := render.DashboardView{
		GeneratedAt: time.Now(),
		Summary:     aggregate.Summarize(records),
		Groups:      aggregate.GroupByStatus(records),
		PRsByFIP:    prGroups,
		GeneralPRs:  generalPRs,
		FIPBaseURL:  fmt.Sprintf("https://github.com/%s/%s/blob/%s/", cfg.Owner, cfg.Repo, cfg.Branch),
	}

	page := render.Dashboard(view)

	if dryRun {
		fmt.Println(page)
		return nil
	}

	if err := render.WriteFile(out, []byte(page)); err != nil {
		return fmt.Errorf("writing dashboard: %w", err)
	}

	log.Info().Str("path", out).Msg("dashboard written")
	return nil
}
