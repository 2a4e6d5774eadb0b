package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"itinerary-remediation-service/internal/adapters/cache"
	"itinerary-remediation-service/internal/adapters/distance"
	providers "itinerary-remediation-service/internal/adapters/judgment"
	"itinerary-remediation-service/internal/adapters/repositories"
	"itinerary-remediation-service/internal/config"
	"itinerary-remediation-service/internal/domain"
	"itinerary-remediation-service/internal/judgment"
	"itinerary-remediation-service/internal/platform/db"
	"itinerary-remediation-service/internal/platform/logger"
	"itinerary-remediation-service/internal/ports"
)

// app holds the per-invocation dependencies shared by every command.
type app struct {
	flags  *globalFlags
	log    *logger.Logger
	engine config.Engine

	db   *sql.DB
	repo *repositories.PostgresItineraryRepository
}

func newApp(ctx context.Context, flags *globalFlags) (*app, error) {
	log, err := logger.New(flags.logMode)
	if err != nil {
		return nil, err
	}

	engine, err := config.Load(flags.configPath)
	if err != nil {
		return nil, err
	}

	a := &app{flags: flags, log: log, engine: engine}

	if databaseURL := config.Get("DATABASE_URL", ""); databaseURL != "" {
		conn, err := db.Open(ctx, databaseURL)
		if err != nil {
			return nil, err
		}
		a.db = conn
		a.repo = repositories.NewPostgresItineraryRepository(conn, log)
	}
	return a, nil
}

func (a *app) Close() {
	if a == nil {
		return
	}
	if a.db != nil {
		_ = a.db.Close()
	}
	a.log.Sync()
}

// loadItinerary reads the single itinerary named by --file or --itinerary-id.
func (a *app) loadItinerary(ctx context.Context) (domain.Itinerary, error) {
	file, id := strings.TrimSpace(a.flags.file), strings.TrimSpace(a.flags.itineraryID)
	switch {
	case file != "" && id != "":
		return domain.Itinerary{}, errors.New("use either --file or --itinerary-id, not both")
	case file != "":
		all, err := repositories.LoadItinerariesJSON(file)
		if err != nil {
			return domain.Itinerary{}, fmt.Errorf("load itinerary: %w", err)
		}
		if len(all) != 1 {
			return domain.Itinerary{}, fmt.Errorf("load itinerary: %s holds %d itineraries, want 1", file, len(all))
		}
		return all[0], nil
	case id != "":
		if a.repo == nil {
			return domain.Itinerary{}, errors.New("--itinerary-id needs DATABASE_URL")
		}
		return a.repo.GetItinerary(ctx, id)
	default:
		return domain.Itinerary{}, errors.New("one of --file or --itinerary-id is required")
	}
}

// routing returns the ORS provider when ORS_API_KEY is set and the local
// estimate otherwise. The geocoder is nil without ORS.
func (a *app) routing() (ports.DistanceMatrixProvider, ports.Geocoder, error) {
	key := config.Get("ORS_API_KEY", "")
	if key == "" {
		a.log.Debug("ORS_API_KEY not set; using haversine estimates")
		return distance.NewHaversineProvider(), nil, nil
	}

	var dc *cache.SQLDistanceCache
	var gc *cache.SQLGeocodeCache
	if a.db != nil {
		dc = cache.NewSQLDistanceCache(a.db, a.log)
		gc = cache.NewSQLGeocodeCache(a.db, a.log)
	}
	ors, err := distance.NewORSProvider(key, distance.ORSOptions{
		BaseURL: config.Get("ORS_BASE_URL", ""),
		Profile: config.Get("ORS_PROFILE", "foot-walking"),
		Country: config.Get("ORS_COUNTRY", ""),
		Timeout: config.Duration("ORS_TIMEOUT", 0),
	}, dc, gc, a.log)
	if err != nil {
		return nil, nil, err
	}
	return ors, ors, nil
}

// judgmentProvider chains hosted OpenAI first and a local OpenAI-compatible
// server second; the first available one answers every job.
func (a *app) judgmentProvider() ports.JudgmentProvider {
	hosted := providers.NewOpenAIClient(providers.OpenAIConfig{
		Name:        "openai",
		BaseURL:     config.Get("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		APIKey:      config.Get("OPENAI_API_KEY", ""),
		Model:       config.Get("OPENAI_MODEL", "gpt-4o-mini"),
		KeyRequired: true,
		Timeout:     config.Duration("OPENAI_TIMEOUT", 0),
	}, a.log)
	local := providers.NewOpenAIClient(providers.OpenAIConfig{
		Name:    "local",
		BaseURL: config.Get("LOCAL_JUDGMENT_BASE_URL", ""),
		APIKey:  config.Get("LOCAL_JUDGMENT_API_KEY", ""),
		Model:   config.Get("LOCAL_JUDGMENT_MODEL", ""),
		Timeout: config.Duration("LOCAL_JUDGMENT_TIMEOUT", 0),
	}, a.log)
	return judgment.NewChain(hosted, local)
}
