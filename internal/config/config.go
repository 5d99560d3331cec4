package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/TheTreasury832/Wholesale2Flip-sub001/internal/alert"
	"github.com/TheTreasury832/Wholesale2Flip-sub001/internal/core"
	"github.com/TheTreasury832/Wholesale2Flip-sub001/internal/notifier"
	"github.com/spf13/viper"
)

type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Engine  EngineConfig  `mapstructure:"engine"`
	Storage StorageConfig `mapstructure:"storage"`
	Metrics MetricsConfig `mapstructure:"metrics"`
	Alerts  AlertsConfig  `mapstructure:"alerts"`
}

type ServerConfig struct {
	Host   string `mapstructure:"host"`
	Port   int    `mapstructure:"port"`
	APIKey string `mapstructure:"api_key"`
}

// RoomCost is the light/medium/heavy price table for one rehab category.
type RoomCost struct {
	Light  float64 `mapstructure:"light"`
	Medium float64 `mapstructure:"medium"`
	Heavy  float64 `mapstructure:"heavy"`
}

// EngineConfig carries every tunable of the underwriting engine. All
// values are read-only during evaluation.
type EngineConfig struct {
	EnabledStrategies []core.StrategyID `mapstructure:"enabled_strategies"`

	// Wholesale
	WholesaleRuleMultiplier float64 `mapstructure:"wholesale_rule_multiplier"`
	WholesaleMargin         float64 `mapstructure:"wholesale_margin"`

	// Rehab estimation
	RehabCostPerSqFt map[core.Condition]float64 `mapstructure:"rehab_cost_per_sqft_by_condition"`
	RoomCostTable    map[string]RoomCost        `mapstructure:"room_cost_table"`

	// Fix & flip
	FlipHoldingMonths      int     `mapstructure:"flip_holding_months"`
	FlipSellingCostRate    float64 `mapstructure:"flip_selling_cost_rate"`
	FlipMonthlyUtilities   float64 `mapstructure:"flip_monthly_utilities"`
	FlipMonthlyInsurance   float64 `mapstructure:"flip_monthly_insurance"`
	FlipMonthlyMaintenance float64 `mapstructure:"flip_monthly_maintenance"`

	// Buy & hold
	HoldDownPaymentRate float64 `mapstructure:"hold_down_payment_rate"`
	HoldInterestRate    float64 `mapstructure:"hold_interest_rate"`
	HoldInsuranceRate   float64 `mapstructure:"hold_insurance_rate"`
	HoldMaintenanceRate float64 `mapstructure:"hold_maintenance_rate"`
	HoldVacancyRate     float64 `mapstructure:"hold_vacancy_rate"`

	// Shared
	PropertyTaxRate float64 `mapstructure:"property_tax_rate"`

	// Matching
	MatchWeights          MatchWeights                        `mapstructure:"match_score_weights"`
	PriceNearTolerance    float64                             `mapstructure:"price_near_tolerance"`
	TierThresholdStrong   int                                 `mapstructure:"match_tier_threshold_strong"`
	TierThresholdPossible int                                 `mapstructure:"match_tier_threshold_possible"`
	StrategyDealTypes     map[core.StrategyID][]core.DealType `mapstructure:"strategy_deal_types"`
}

// MatchWeights is the per-component point budget of the buyer matcher.
type MatchWeights struct {
	PropertyType float64 `mapstructure:"property_type"`
	PriceInRange float64 `mapstructure:"price_in_range"`
	PriceNear    float64 `mapstructure:"price_near"`
	State        float64 `mapstructure:"state"`
	City         float64 `mapstructure:"city"`
	DealType     float64 `mapstructure:"deal_type"`
	Verified     float64 `mapstructure:"verified"`
	ProofOfFunds float64 `mapstructure:"proof_of_funds"`
	Reputation   float64 `mapstructure:"reputation"`
}

type StorageConfig struct {
	Buyers  BuyerStorageConfig  `mapstructure:"buyers"`
	Reports ReportStorageConfig `mapstructure:"reports"`
	Archive ArchiveConfig       `mapstructure:"archive"`
}

type BuyerStorageConfig struct {
	Driver   string `mapstructure:"driver"` // "memory" or "sqlite"
	DSN      string `mapstructure:"dsn"`
	SeedFile string `mapstructure:"seed_file"`
}

type ReportStorageConfig struct {
	MaxSize int `mapstructure:"max_size"`
}

type ArchiveConfig struct {
	Enabled bool     `mapstructure:"enabled"`
	Type    string   `mapstructure:"type"` // "localfs" or "s3"
	Path    string   `mapstructure:"path"` // For localfs
	S3      S3Config `mapstructure:"s3"`   // For S3
}

type S3Config struct {
	Bucket    string `mapstructure:"bucket"`
	Endpoint  string `mapstructure:"endpoint"`
	Region    string `mapstructure:"region"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Prefix    string `mapstructure:"prefix"`
}

// MetricsConfig holds metrics configuration.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// AlertsConfig holds deal alert rules and notifier wiring.
type AlertsConfig struct {
	Enabled   bool              `mapstructure:"enabled"`
	Cooldown  time.Duration     `mapstructure:"cooldown"`
	Rules     []alert.Rule      `mapstructure:"rules"`
	Notifiers []notifier.Config `mapstructure:"notifiers"`
}

// Load reads configuration from file
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	// Support environment variable overrides
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	// Expand environment variables in string values
	for _, key := range v.AllKeys() {
		val := v.GetString(key)
		if strings.HasPrefix(val, "${") && strings.HasSuffix(val, "}") {
			envKey := strings.TrimSuffix(strings.TrimPrefix(val, "${"), "}")
			v.Set(key, os.Getenv(envKey))
		}
	}

	cfg := Defaults()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return cfg, nil
}

// Defaults returns a config with every documented default.
func Defaults() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Engine: DefaultEngine(),
		Storage: StorageConfig{
			Buyers:  BuyerStorageConfig{Driver: "memory"},
			Reports: ReportStorageConfig{MaxSize: 500},
			Archive: ArchiveConfig{Type: "localfs", Path: "data/archive"},
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Path:    "/metrics",
		},
		Alerts: AlertsConfig{
			Cooldown: 5 * time.Minute,
		},
	}
}

// DefaultEngine returns the documented engine defaults: the 70% rule, a
// 15% wholesale margin, the consolidated rehab cost schedules, and the
// 100-point match rubric.
func DefaultEngine() EngineConfig {
	return EngineConfig{
		EnabledStrategies:       []core.StrategyID{core.StrategyWholesale, core.StrategyFlip, core.StrategyHold},
		WholesaleRuleMultiplier: 0.70,
		WholesaleMargin:         0.15,
		RehabCostPerSqFt: map[core.Condition]float64{
			core.ConditionExcellent:  0,
			core.ConditionGood:       8,
			core.ConditionFair:       18,
			core.ConditionPoor:       28,
			core.ConditionNeedsRehab: 45,
		},
		RoomCostTable: map[string]RoomCost{
			"kitchen":    {Light: 8000, Medium: 15000, Heavy: 25000},
			"bathroom":   {Light: 3000, Medium: 8000, Heavy: 15000},
			"flooring":   {Light: 2000, Medium: 5000, Heavy: 8000},
			"paint":      {Light: 1500, Medium: 3000, Heavy: 5000},
			"roof":       {Light: 3000, Medium: 8000, Heavy: 15000},
			"hvac":       {Light: 2000, Medium: 6000, Heavy: 12000},
			"electrical": {Light: 1500, Medium: 4000, Heavy: 8000},
			"plumbing":   {Light: 1500, Medium: 4000, Heavy: 7000},
		},
		FlipHoldingMonths:      6,
		FlipSellingCostRate:    0.08,
		FlipMonthlyUtilities:   250,
		FlipMonthlyInsurance:   125,
		FlipMonthlyMaintenance: 150,
		HoldDownPaymentRate:    0.20,
		HoldInterestRate:       0.07,
		HoldInsuranceRate:      0.005,
		HoldMaintenanceRate:    0.05,
		HoldVacancyRate:        0.05,
		PropertyTaxRate:        0.015,
		MatchWeights: MatchWeights{
			PropertyType: 30,
			PriceInRange: 25,
			PriceNear:    10,
			State:        15,
			City:         5,
			DealType:     10,
			Verified:     5,
			ProofOfFunds: 5,
			Reputation:   5,
		},
		PriceNearTolerance:    0.10,
		TierThresholdStrong:   70,
		TierThresholdPossible: 50,
		StrategyDealTypes: map[core.StrategyID][]core.DealType{
			core.StrategyWholesale: {core.DealCash, core.DealAssign},
			core.StrategyFlip:      {core.DealCash, core.DealHardMoney},
			core.StrategyHold:      {core.DealCash, core.DealCreative, core.DealSubjectTo},
		},
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("port must be between 1 and 65535, got %d", c.Server.Port))
	}

	if err := c.Engine.Validate(); err != nil {
		return err
	}

	switch c.Storage.Buyers.Driver {
	case "", "memory":
	case "sqlite":
		if c.Storage.Buyers.DSN == "" {
			return core.WrapError(core.ErrConfigMissing,
				fmt.Errorf("buyers dsn required when driver is sqlite"))
		}
	default:
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("unknown buyer storage driver %q", c.Storage.Buyers.Driver))
	}

	if c.Storage.Archive.Enabled {
		switch c.Storage.Archive.Type {
		case "localfs":
			if c.Storage.Archive.Path == "" {
				return core.WrapError(core.ErrConfigMissing,
					fmt.Errorf("archive path required for localfs"))
			}
		case "s3":
			if c.Storage.Archive.S3.Bucket == "" {
				return core.WrapError(core.ErrConfigMissing,
					fmt.Errorf("s3 bucket required for s3 archive"))
			}
		default:
			return core.WrapError(core.ErrConfigInvalid,
				fmt.Errorf("unknown archive type %q", c.Storage.Archive.Type))
		}
	}

	if c.Alerts.Enabled {
		if len(c.Alerts.Notifiers) == 0 {
			return core.WrapError(core.ErrConfigMissing,
				fmt.Errorf("at least one notifier required when alerts are enabled"))
		}
		for _, n := range c.Alerts.Notifiers {
			switch n.Type {
			case "webhook", "email", "telegram":
			default:
				return core.WrapError(core.ErrConfigInvalid,
					fmt.Errorf("unknown notifier type %q", n.Type))
			}
		}
	}

	return nil
}

// Validate checks the engine tunables.
func (e *EngineConfig) Validate() error {
	if len(e.EnabledStrategies) == 0 {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("enabled_strategies must not be empty"))
	}
	for _, s := range e.EnabledStrategies {
		switch s {
		case core.StrategyWholesale, core.StrategyFlip, core.StrategyHold:
		default:
			return core.WrapError(core.ErrConfigInvalid,
				fmt.Errorf("unknown strategy %q", s))
		}
	}
	if e.WholesaleRuleMultiplier <= 0 || e.WholesaleRuleMultiplier > 1 {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("wholesale_rule_multiplier must be in (0, 1], got %v", e.WholesaleRuleMultiplier))
	}
	if e.WholesaleMargin < 0 {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("wholesale_margin cannot be negative, got %v", e.WholesaleMargin))
	}
	for cond, cost := range e.RehabCostPerSqFt {
		if cost < 0 {
			return core.WrapError(core.ErrConfigInvalid,
				fmt.Errorf("rehab cost for %q cannot be negative", cond))
		}
	}
	if e.TierThresholdPossible > e.TierThresholdStrong {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("possible tier threshold %d exceeds strong threshold %d",
				e.TierThresholdPossible, e.TierThresholdStrong))
	}
	return nil
}
