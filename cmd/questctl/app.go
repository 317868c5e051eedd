package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/vfg2006/sales-quest-api/infrastructure/cache"
	"github.com/vfg2006/sales-quest-api/internal/config"
	"github.com/vfg2006/sales-quest-api/internal/csvparse"
	"github.com/vfg2006/sales-quest-api/internal/domain"
	"github.com/vfg2006/sales-quest-api/internal/gateway"
	"github.com/vfg2006/sales-quest-api/internal/quest"
	"github.com/vfg2006/sales-quest-api/internal/report"
	"github.com/vfg2006/sales-quest-api/internal/usecases/ranking"
	"github.com/vfg2006/sales-quest-api/pkg/log"
	"github.com/vfg2006/sales-quest-api/pkg/utils"
)

const (
	viewLeaderboard = "leaderboard"
	viewChallenge   = "challenge"
	viewTeams       = "teams"
)

type app struct {
	gateway *gateway.Gateway
	table   quest.ScoringTable
	stdout  io.Writer
	stderr  io.Writer
}

func newApp(ctx context.Context, cfg *config.Config, stdout, stderr io.Writer) (*app, func(), error) {
	table, err := quest.TableByVersion(cfg.Scoring.Table)
	if err != nil {
		return nil, nil, err
	}

	parser, err := csvparse.NewParser(table.Schema)
	if err != nil {
		return nil, nil, err
	}

	localCache, closeCache, err := openCache(ctx, cfg.Client)
	if err != nil {
		return nil, nil, err
	}

	return &app{
		gateway: gateway.New(gateway.NewClient(cfg.Client), localCache, parser),
		table:   table,
		stdout:  stdout,
		stderr:  stderr,
	}, closeCache, nil
}

func openCache(ctx context.Context, cfg config.Client) (gateway.Cache, func(), error) {
	switch cfg.Cache {
	case "", "file":
		return cache.NewFileCache(cfg.CacheDir), func() {}, nil
	case "redis":
		redisCache, err := cache.NewRedisCache(ctx, cfg.RedisAddr)
		if err != nil {
			return nil, nil, fmt.Errorf("redis cache at %s: %w", cfg.RedisAddr, err)
		}
		return redisCache, func() { _ = redisCache.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown cache backend %q (use file or redis)", cfg.Cache)
	}
}

func (a *app) run(ctx context.Context, args []string) error {
	switch args[0] {
	case "show":
		return a.runShow(ctx, args[1:])
	case "upload":
		return a.runUpload(ctx, args[1:])
	case "template":
		return a.runTemplate(args[1:])
	case "settings":
		return a.runSettings(ctx, args[1:])
	case "uploads":
		return a.runUploads(ctx, args[1:])
	case "export":
		return a.runExport(ctx, args[1:])
	default:
		return fmt.Errorf("unknown command: %s", args[0])
	}
}

func (a *app) runShow(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("show", flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	view := fs.String("view", viewLeaderboard, "View to render: leaderboard, challenge or teams")
	asJSON := fs.Bool("json", false, "Print the view as JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var (
		rows   any
		render func()
	)

	dataset, scored := a.load(ctx)

	switch *view {
	case viewLeaderboard:
		leaderboard := ranking.Leaderboard(scored)
		rows, render = leaderboard, func() { renderLeaderboard(a.stdout, leaderboard) }
	case viewChallenge:
		challenge := ranking.Challenge(scored)
		rows, render = challenge, func() { renderChallenge(a.stdout, challenge) }
	case viewTeams:
		teams := ranking.Teams(ranking.Leaderboard(scored))
		rows, render = teams, func() { renderTeams(a.stdout, teams) }
	default:
		return fmt.Errorf("unknown view %q", *view)
	}

	if *asJSON {
		fmt.Fprintln(a.stdout, utils.PrettyJson(rows))
		return nil
	}

	renderHeader(a.stdout, dataset)
	render()
	return nil
}

func (a *app) runUpload(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("upload", flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	title := fs.String("title", "", "Snapshot title (defaults to \"Sales Data - <Month YYYY>\")")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("usage: questctl upload [-title T] <file.csv>")
	}

	file, err := os.Open(fs.Arg(0))
	if err != nil {
		return err
	}
	defer file.Close()

	result, err := a.gateway.Upload(ctx, file, *title)
	if err != nil {
		if errors.Is(err, csvparse.ErrMalformedUpload) {
			return fmt.Errorf("upload rejected, previous data kept: %w", err)
		}
		return err
	}

	if result.Warning != "" {
		fmt.Fprintln(a.stderr, "warning:", result.Warning)
	}

	fmt.Fprintf(a.stdout, "Sales data saved successfully: %q (%d records)\n", result.Title, result.Count)
	if result.SnapshotID != "" {
		fmt.Fprintf(a.stdout, "Snapshot: %s\n", result.SnapshotID)
	}

	return nil
}

func (a *app) runTemplate(args []string) error {
	fs := flag.NewFlagSet("template", flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}

	_, err := io.WriteString(a.stdout, csvparse.Template(a.table.Schema))
	return err
}

func (a *app) runSettings(ctx context.Context, args []string) error {
	if len(args) == 0 || args[0] == "get" {
		weightings, err := a.gateway.Settings(ctx)
		if err != nil {
			return err
		}
		renderWeightings(a.stdout, *weightings)
		return nil
	}

	if args[0] != "set" {
		return fmt.Errorf("unknown settings command: %s", args[0])
	}

	current, err := a.gateway.Settings(ctx)
	if err != nil {
		log.ForContext(ctx).WithError(err).Debug("Usando pesos da tabela como base")
		defaults := a.table.Weights
		current = &defaults
	}

	fs := flag.NewFlagSet("settings set", flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	fs.IntVar(&current.ClosedWon, "closed-won", current.ClosedWon, "Closed-won MRR weight")
	fs.IntVar(&current.OppsPassedMRR, "opps-passed", current.OppsPassedMRR, "Opportunities passed MRR weight")
	fs.IntVar(&current.Calls, "calls", current.Calls, "Calls weight")
	fs.IntVar(&current.PEM, "pem", current.PEM, "PEM weight")
	fs.IntVar(&current.OppsCount, "opps-count", current.OppsCount, "Opportunities created weight")
	if err := fs.Parse(args[1:]); err != nil {
		return err
	}

	response, err := a.gateway.UpdateSettings(ctx, *current)
	if err != nil {
		return err
	}
	if !response.Success {
		return errors.New(response.Message)
	}

	fmt.Fprintln(a.stdout, response.Message)
	if response.Weightings != nil {
		renderWeightings(a.stdout, *response.Weightings)
	}

	return nil
}

func (a *app) runUploads(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("uploads", flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}

	uploads, err := a.gateway.Uploads(ctx)
	if err != nil {
		return err
	}

	renderUploads(a.stdout, uploads)
	return nil
}

func (a *app) runExport(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	out := fs.String("o", "leaderboard.xlsx", "Output file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	dataset, scored := a.load(ctx)
	leaderboard := ranking.Leaderboard(scored)

	content, err := report.Build(dataset.Title, leaderboard, ranking.Teams(leaderboard))
	if err != nil {
		return err
	}

	if err := os.WriteFile(*out, content, 0o644); err != nil {
		return err
	}

	fmt.Fprintf(a.stdout, "Wrote %s (%d records)\n", *out, len(leaderboard))
	return nil
}

// load pontua localmente com os pesos da API, ou os da tabela quando a API não responde
func (a *app) load(ctx context.Context) (*gateway.Dataset, []domain.ScoredRecord) {
	dataset := a.gateway.Load(ctx)
	if dataset.Source == gateway.SourceSample {
		fmt.Fprintln(a.stderr, "notice: no saved data found, showing sample data")
	}

	table := a.table
	if weightings, err := a.gateway.Settings(ctx); err == nil {
		table = table.WithWeights(*weightings)
	} else {
		log.ForContext(ctx).WithError(err).Debug("Pesos remotos indisponíveis, usando os da tabela")
	}

	return dataset, quest.ScoreAll(dataset.Records, table)
}

func joinNonEmpty(parts ...string) string {
	kept := parts[:0]
	for _, part := range parts {
		if part != "" {
			kept = append(kept, part)
		}
	}
	return strings.Join(kept, " · ")
}
