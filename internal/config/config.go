package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/launchdarkly/go-sdk-common/v3/ldcontext"
	ld "github.com/launchdarkly/go-server-sdk/v7"
	"github.com/spf13/pflag"

	"github.com/poofware/wayfinding-service/internal/catalog"
	"github.com/poofware/wayfinding-service/internal/models"
	"github.com/poofware/wayfinding-service/internal/utils"
)

type Config struct {
	OrganizationName string
	AppName          string
	Env              string
	AppPort          string
	AppUrl           string

	// Building catalog
	CatalogFile       string
	BuildingsBasePath string
	Buildings         []models.BuildingDescriptor

	// Index behaviour
	Extractor               string
	CoordinatePolicy        catalog.CoordinatePolicy
	LoadConcurrency         int
	GroundFloorTokens       []string
	GroundFloorNames        []string
	AvailabilityRefreshSpec string

	// Feature-flag snapshots
	LDFlag_StrictFloorLoading bool
	LDFlag_VerifyMapFiles     bool
	LDFlag_CORSHighSecurity   bool

	ldClient *ld.LDClient
}

const (
	OrganizationName    = utils.OrganizationName
	LDConnectionTimeout = 5 * time.Second

	ExtractorPlaceholder = "placeholder"
	ExtractorSidecar     = "sidecar"

	defaultAppName         = "wayfinding-service"
	defaultPort            = "8080"
	defaultLoadConcurrency = 4
	defaultRefreshSpec     = "@every 5m"
)

// build-time overrides, set with -ldflags
var (
	AppName             string
	LDServerContextKey  string
	LDServerContextKind string
)

// LoadConfig reads env vars, command-line overrides and feature flags.
// Any error is fatal.
func LoadConfig() *Config {
	if AppName == "" {
		AppName = defaultAppName
	}
	utils.Logger.Info("Loading config for app: ", AppName)

	cfg, err := Load(os.Args[1:])
	if err != nil {
		utils.Logger.WithError(err).Fatal("Invalid configuration")
	}

	if err := cfg.loadFeatureFlags(os.Getenv("LD_SDK_KEY")); err != nil {
		utils.Logger.WithError(err).Fatal("Failed to load feature flags")
	}

	utils.Logger.Infof("Loaded config for %s (%s): %d building(s) in catalog, extractor=%s",
		cfg.AppName, cfg.Env, len(cfg.Buildings), cfg.Extractor)
	return cfg
}

// Load builds a Config from the environment and args without touching
// LaunchDarkly. Flag snapshots take their env defaults.
func Load(args []string) (*Config, error) {
	appName := AppName
	if appName == "" {
		appName = defaultAppName
	}

	//----------------------------------------------------------------------
	// 1) Runtime environment vars
	//----------------------------------------------------------------------
	cfg := &Config{
		OrganizationName:        OrganizationName,
		AppName:                 appName,
		Env:                     envOr("ENV", "dev"),
		AppPort:                 envOr("APP_PORT", defaultPort),
		AppUrl:                  os.Getenv("APP_URL_FROM_ANYWHERE"),
		CatalogFile:             os.Getenv("CATALOG_FILE"),
		BuildingsBasePath:       os.Getenv("BUILDINGS_BASE_PATH"),
		Extractor:               envOr("EXTRACTOR", ExtractorPlaceholder),
		AvailabilityRefreshSpec: envOr("AVAILABILITY_REFRESH_SPEC", defaultRefreshSpec),
		GroundFloorTokens:       splitList(envOr("GROUND_FLOOR_TOKENS", "stue,ground")),
		GroundFloorNames:        splitList(envOr("GROUND_FLOOR_NAMES", "0")),
	}

	var err error
	if cfg.LoadConcurrency, err = envInt("LOAD_CONCURRENCY", defaultLoadConcurrency); err != nil {
		return nil, err
	}
	if cfg.LDFlag_StrictFloorLoading, err = envBool("STRICT_FLOOR_LOADING", false); err != nil {
		return nil, err
	}
	if cfg.LDFlag_VerifyMapFiles, err = envBool("VERIFY_MAP_FILES", false); err != nil {
		return nil, err
	}
	if cfg.LDFlag_CORSHighSecurity, err = envBool("CORS_HIGH_SECURITY", true); err != nil {
		return nil, err
	}
	policy := os.Getenv("COORDINATE_POLICY")

	//----------------------------------------------------------------------
	// 2) Command-line overrides
	//----------------------------------------------------------------------
	fs := pflag.NewFlagSet(appName, pflag.ContinueOnError)
	fs.StringVar(&cfg.AppPort, "port", cfg.AppPort, "HTTP listen port")
	fs.StringVar(&cfg.CatalogFile, "catalog", cfg.CatalogFile, "building catalog YAML file")
	fs.StringVar(&cfg.BuildingsBasePath, "base-path", cfg.BuildingsBasePath, "directory holding <building>/<floor> maps")
	fs.StringVar(&cfg.Extractor, "extractor", cfg.Extractor, "floor extractor: placeholder or sidecar")
	fs.StringVar(&policy, "coordinate-policy", policy, "out-of-range coordinates: clamp or reject")
	fs.IntVar(&cfg.LoadConcurrency, "load-concurrency", cfg.LoadConcurrency, "floors extracted in parallel")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	//----------------------------------------------------------------------
	// 3) Validation
	//----------------------------------------------------------------------
	if cfg.CoordinatePolicy, err = catalog.ParseCoordinatePolicy(policy); err != nil {
		return nil, err
	}
	switch cfg.Extractor {
	case ExtractorPlaceholder, ExtractorSidecar:
	default:
		return nil, fmt.Errorf("unknown extractor %q", cfg.Extractor)
	}
	if cfg.LoadConcurrency <= 0 {
		return nil, fmt.Errorf("load concurrency must be positive, got %d", cfg.LoadConcurrency)
	}

	//----------------------------------------------------------------------
	// 4) Building catalog
	//----------------------------------------------------------------------
	cf := DefaultCatalog()
	if cfg.CatalogFile != "" {
		if cf, err = ReadCatalogFile(cfg.CatalogFile); err != nil {
			return nil, err
		}
		utils.Logger.Debugf("Using building catalog from %s", cfg.CatalogFile)
	}
	if cfg.Buildings, err = cf.Resolve(cfg.BuildingsBasePath); err != nil {
		return nil, err
	}
	if cfg.BuildingsBasePath == "" {
		cfg.BuildingsBasePath = cf.BasePath
	}
	return cfg, nil
}

// loadFeatureFlags overrides env defaults from LaunchDarkly. Without an SDK
// key the env values stand.
func (c *Config) loadFeatureFlags(sdkKey string) error {
	if sdkKey == "" {
		utils.Logger.Info("LD_SDK_KEY not set; using env defaults for feature flags")
		return nil
	}

	ldClient, err := ld.MakeClient(sdkKey, LDConnectionTimeout)
	if err != nil {
		return fmt.Errorf("create LaunchDarkly client: %w", err)
	}
	if !ldClient.Initialized() {
		ldClient.Close()
		return fmt.Errorf("LaunchDarkly client failed to initialize")
	}

	kind, key := LDServerContextKind, LDServerContextKey
	if kind == "" {
		kind = "service"
	}
	if key == "" {
		key = c.AppName
	}
	ctx := ldcontext.NewWithKind(ldcontext.Kind(kind), key)

	for _, f := range []struct {
		key string
		dst *bool
	}{
		{"strict_floor_loading", &c.LDFlag_StrictFloorLoading},
		{"verify_map_files", &c.LDFlag_VerifyMapFiles},
		{"cors_high_security", &c.LDFlag_CORSHighSecurity},
	} {
		v, err := ldClient.BoolVariation(f.key, ctx, *f.dst)
		if err != nil {
			ldClient.Close()
			return fmt.Errorf("%s flag error: %w", f.key, err)
		}
		*f.dst = v
		utils.Logger.Debugf("%s flag: %t", f.key, v)
	}

	c.ldClient = ldClient
	return nil
}

func (c *Config) Close() {
	if c.ldClient != nil {
		_ = c.ldClient.Close()
	}
}

func envOr(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s not an integer: %q", key, v)
	}
	return n, nil
}

func envBool(key string, def bool) (bool, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s not a truthy value: %q", key, v)
	}
	return b, nil
}

func splitList(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
