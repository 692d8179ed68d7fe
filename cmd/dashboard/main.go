package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/shenikar/disaster_watch/internal/apiclient"
	"github.com/shenikar/disaster_watch/internal/config"
	"github.com/shenikar/disaster_watch/internal/dashboard"
	"github.com/shenikar/disaster_watch/internal/models"
	"github.com/shenikar/disaster_watch/pkg/logger"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	apiURL       string
	interval     time.Duration
	pageSize     int
	severity     string
	incidentType string
	verbose      bool
	watchMode    bool
	fromCorner   string
	toCorner     string
	topLimit     int
	trendDays    int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Disaster Watch dashboard client",
		Long: `Dashboard client for the Disaster Watch API: shows the incident feed,
scopes it to a selected map area and prints analytics.`,
		SilenceUsage: true,
	}

	// Flags
	rootCmd.PersistentFlags().StringVar(&apiURL, "api", "", "API base URL (overrides API_BASE_URL)")
	rootCmd.PersistentFlags().DurationVarP(&interval, "interval", "i", 0, "Feed refresh interval (overrides DASHBOARD_REFRESH_INTERVAL)")
	rootCmd.PersistentFlags().IntVar(&pageSize, "page-size", 0, "Feed page size (overrides DASHBOARD_PAGE_SIZE)")
	rootCmd.PersistentFlags().StringVar(&severity, "severity", "", "Severity filter: critical, severe, moderate, low")
	rootCmd.PersistentFlags().StringVar(&incidentType, "type", "", "Incident type filter: fire, flood, earthquake, landslide, storm, other")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	addFeedCmd(rootCmd)
	addSelectCmd(rootCmd)
	addMapCmd(rootCmd)
	addSummaryCmd(rootCmd)

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

// loadConfig читает конфигурацию окружения и применяет флаги поверх неё
func loadConfig() (*config.DashboardConfig, error) {
	cfg, err := config.LoadDashboardConfig()
	if err != nil {
		return nil, err
	}
	if apiURL != "" {
		cfg.APIBaseURL = strings.TrimRight(apiURL, "/")
	}
	if interval > 0 {
		cfg.RefreshInterval = interval
	}
	if pageSize > 0 {
		if pageSize > 100 {
			return nil, fmt.Errorf("page size must be between 1 and 100, got %d", pageSize)
		}
		cfg.PageSize = pageSize
	}
	if verbose {
		cfg.LogLevel = "debug"
	}
	return cfg, nil
}

type app struct {
	cfg    *config.DashboardConfig
	log    *logrus.Logger
	client *apiclient.Client
}

func newApp() (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &app{
		cfg:    cfg,
		log:    logger.NewConsole(cfg.LogLevel),
		client: apiclient.New(cfg.APIBaseURL, cfg.HTTPTimeout),
	}, nil
}

// newFeed собирает ленту с фильтрами из флагов; onUpdate получает каждое изменение
func (a *app) newFeed(onUpdate func(dashboard.Snapshot)) (*dashboard.FeedView, error) {
	feed := dashboard.NewFeedView(a.client, dashboard.NewCronScheduler(a.log), a.log, dashboard.FeedViewConfig{
		PageSize:        a.cfg.PageSize,
		RefreshInterval: a.cfg.RefreshInterval,
		OnUpdate:        onUpdate,
	})
	if severity != "" {
		s := models.Severity(severity)
		if !s.Valid() {
			return nil, fmt.Errorf("unknown severity %q", severity)
		}
		feed.ToggleSeverity(s)
	}
	if incidentType != "" {
		t := models.IncidentType(incidentType)
		if !t.Valid() {
			return nil, fmt.Errorf("unknown incident type %q", incidentType)
		}
		feed.ToggleIncidentType(t)
	}
	return feed, nil
}

// runFeed монтирует ленту, при необходимости применяет выделение и печатает результат.
// В режиме наблюдения печатает каждое обновление до сигнала остановки.
func (a *app) runFeed(cmd *cobra.Command, selection *[2]models.LatLng) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ready := make(chan dashboard.Snapshot, 1)
	wantBounds := selection != nil
	feed, err := a.newFeed(func(snap dashboard.Snapshot) {
		if snap.Loading || snap.Generation == 0 || (wantBounds && snap.Filter.Bounds == nil) {
			return
		}
		if watchMode {
			printSnapshot(cmd, snap)
			return
		}
		select {
		case ready <- snap:
		default:
		}
	})
	if err != nil {
		return err
	}

	if err := feed.Mount(ctx); err != nil {
		return err
	}
	defer feed.Unmount()

	if selection != nil {
		panel := dashboard.NewMapPanel(feed, a.log)
		panel.ToggleSelection()
		panel.PointerDown(selection[0])
		panel.PointerMove(selection[1])
		bounds, ok := panel.PointerUp(selection[1])
		if !ok {
			return fmt.Errorf("selection was not applied")
		}
		cmd.Println(fmt.Sprintf("Selected area: N %.4f S %.4f E %.4f W %.4f", bounds.North, bounds.South, bounds.East, bounds.West))
	}

	if watchMode {
		cmd.Println(fmt.Sprintf("Watch mode activated. Updating every %s. Press Ctrl+C to stop.", a.cfg.RefreshInterval))
		<-ctx.Done()
		return nil
	}

	select {
	case snap := <-ready:
		printSnapshot(cmd, snap)
		if snap.LastError != nil {
			return snap.LastError
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func addFeedCmd(rootCmd *cobra.Command) {
	feedCmd := &cobra.Command{
		Use:   "feed",
		Short: "Show the latest incidents",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			return a.runFeed(cmd, nil)
		},
	}
	feedCmd.Flags().BoolVar(&watchMode, "watch", false, "Keep refreshing the feed")
	rootCmd.AddCommand(feedCmd)
}

func addSelectCmd(rootCmd *cobra.Command) {
	selectCmd := &cobra.Command{
		Use:   "select",
		Short: "Show incidents inside the area between two map corners",
		Example: `  dashboard select --from 41,-75 --to 39,-73
  dashboard select --from 39,-73 --to 41,-75 --severity critical --watch`,
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := parseLatLng(fromCorner)
			if err != nil {
				return fmt.Errorf("--from: %w", err)
			}
			to, err := parseLatLng(toCorner)
			if err != nil {
				return fmt.Errorf("--to: %w", err)
			}
			a, err := newApp()
			if err != nil {
				return err
			}
			return a.runFeed(cmd, &[2]models.LatLng{from, to})
		},
	}
	selectCmd.Flags().StringVar(&fromCorner, "from", "", "First corner as lat,lng")
	selectCmd.Flags().StringVar(&toCorner, "to", "", "Opposite corner as lat,lng")
	selectCmd.Flags().BoolVar(&watchMode, "watch", false, "Keep refreshing the selected area")
	_ = selectCmd.MarkFlagRequired("from")
	_ = selectCmd.MarkFlagRequired("to")
	rootCmd.AddCommand(selectCmd)
}

func addMapCmd(rootCmd *cobra.Command) {
	mapCmd := &cobra.Command{
		Use:   "map",
		Short: "Print the incident map layer as GeoJSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			filter := models.IncidentFilter{
				Severity:     models.Severity(severity),
				IncidentType: models.IncidentType(incidentType),
			}
			if fromCorner != "" || toCorner != "" {
				from, err := parseLatLng(fromCorner)
				if err != nil {
					return fmt.Errorf("--from: %w", err)
				}
				to, err := parseLatLng(toCorner)
				if err != nil {
					return fmt.Errorf("--to: %w", err)
				}
				filter = filter.WithBounds(models.Envelope(from, to))
			}

			fc, err := a.client.IncidentMap(cmd.Context(), filter)
			if err != nil {
				return fmt.Errorf("failed to fetch map layer: %w", err)
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(fc)
		},
	}
	mapCmd.Flags().StringVar(&fromCorner, "from", "", "First corner as lat,lng")
	mapCmd.Flags().StringVar(&toCorner, "to", "", "Opposite corner as lat,lng")
	rootCmd.AddCommand(mapCmd)
}

func addSummaryCmd(rootCmd *cobra.Command) {
	summaryCmd := &cobra.Command{
		Use:   "summary",
		Short: "Show analytics: totals, top locations and daily trends",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			summary, err := a.client.Summary(ctx)
			if err != nil {
				return fmt.Errorf("failed to fetch summary: %w", err)
			}
			locations, err := a.client.TopLocations(ctx, topLimit)
			if err != nil {
				return fmt.Errorf("failed to fetch top locations: %w", err)
			}
			trends, err := a.client.Trends(ctx, trendDays)
			if err != nil {
				return fmt.Errorf("failed to fetch trends: %w", err)
			}

			cmd.Println("Summary:")
			cmd.Println(fmt.Sprintf("  Total incidents:    %d", summary.TotalIncidents))
			cmd.Println(fmt.Sprintf("  Critical incidents: %d", summary.CriticalIncidents))
			cmd.Println(fmt.Sprintf("  Incidents today:    %d", summary.IncidentsToday))
			cmd.Println(fmt.Sprintf("  Active alerts:      %d", summary.ActiveAlerts))
			cmd.Println(fmt.Sprintf("  Avg urgency:        %.1f", summary.AvgUrgencyScore))
			cmd.Println(fmt.Sprintf("  Resolution rate:    %.1f%%", summary.ResolutionRate))

			cmd.Println("Top locations:")
			for _, loc := range locations {
				cmd.Println(fmt.Sprintf("  %-30s %4d incidents, %d critical, avg urgency %.1f",
					loc.LocationName, loc.IncidentCount, loc.CriticalCount, loc.AvgUrgencyScore))
			}

			cmd.Println("Trends:")
			for _, p := range trends {
				cmd.Println(fmt.Sprintf("  %s %4d  %s", p.Date.Format("2006-01-02"), p.Total, formatBySeverity(p.BySeverity)))
			}
			return nil
		},
	}
	summaryCmd.Flags().IntVar(&topLimit, "top", 10, "Number of top locations (1-50)")
	summaryCmd.Flags().IntVar(&trendDays, "days", 7, "Trend window in days (1-90)")
	rootCmd.AddCommand(summaryCmd)
}

func printSnapshot(cmd *cobra.Command, snap dashboard.Snapshot) {
	if snap.LastError != nil {
		cmd.PrintErrln(fmt.Errorf("update failed, showing previous results: %w", snap.LastError))
	}
	scope := "all areas"
	if b := snap.Filter.Bounds; b != nil {
		scope = fmt.Sprintf("N %.4f S %.4f E %.4f W %.4f", b.North, b.South, b.East, b.West)
	}
	cmd.Println(fmt.Sprintf("%d incidents (%s), updated %s", len(snap.Incidents), scope, formatUpdated(snap.UpdatedAt)))
	for _, inc := range snap.Incidents {
		place := "unknown location"
		if len(inc.Locations) > 0 {
			place = inc.Locations[0].Name
		}
		cmd.Println(fmt.Sprintf("  [%-8s] %-10s urgency %2d  %-25s %s",
			inc.Severity, inc.IncidentType, inc.UrgencyScore, place, inc.PublishedAt.Format(time.RFC3339)))
	}
}

func formatUpdated(t time.Time) string {
	if t.IsZero() {
		return "never"
	}
	return t.Format("15:04:05")
}

func formatBySeverity(counts map[models.Severity]int) string {
	parts := make([]string, 0, 4)
	for _, s := range []models.Severity{models.SeverityCritical, models.SeveritySevere, models.SeverityModerate, models.SeverityLow} {
		if n := counts[s]; n > 0 {
			parts = append(parts, fmt.Sprintf("%s=%d", s, n))
		}
	}
	return strings.Join(parts, " ")
}

// parseLatLng разбирает угол в формате "lat,lng"
func parseLatLng(value string) (models.LatLng, error) {
	parts := strings.Split(value, ",")
	if len(parts) != 2 {
		return models.LatLng{}, fmt.Errorf("expected lat,lng, got %q", value)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return models.LatLng{}, fmt.Errorf("invalid latitude %q: %w", parts[0], err)
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return models.LatLng{}, fmt.Errorf("invalid longitude %q: %w", parts[1], err)
	}
	p := models.LatLng{Lat: lat, Lng: lng}
	if !p.Valid() {
		return models.LatLng{}, fmt.Errorf("coordinates out of range: %q", value)
	}
	return p, nil
}
