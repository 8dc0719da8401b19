package config

import (
	"errors"
	"log"
	"strings"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// ReportConfig holds the tunable reporting knobs. It lives in a watched
// yml file so analysts can adjust defaults without a redeploy.
type ReportConfig struct {
	// DefaultStartDate bounds the fetch window when a request omits start.
	DefaultStartDate string `mapstructure:"defaultStartDate"`
	// TopProductsLimit caps product rankings in reports and drill-downs.
	TopProductsLimit int `mapstructure:"topProductsLimit"`
	// ExportMaxRows caps CSV exports; 0 means unlimited.
	ExportMaxRows int `mapstructure:"exportMaxRows"`
}

func DefaultReportConfig() ReportConfig {
	return ReportConfig{
		DefaultStartDate: "2020-01-01",
		TopProductsLimit: 10,
		ExportMaxRows:    250_000,
	}
}

// DefaultStart parses DefaultStartDate; validation guarantees it parses.
func (c ReportConfig) DefaultStart() time.Time {
	t, _ := time.Parse("2006-01-02", c.DefaultStartDate)
	return t
}

type ReportConfigHolder struct {
	current atomic.Value // holds ReportConfig
}

func NewReportConfigHolder() (*ReportConfigHolder, error) {
	v := viper.New()

	v.SetConfigName("report")
	v.SetConfigType("yml")
	v.AddConfigPath("/var/lib/orderlens/config") // Volume-mounted config
	v.AddConfigPath("/etc/orderlens")            // System config
	v.AddConfigPath(".")                         // Current directory (dev mode)

	// env hanya untuk path override (optional)
	v.SetEnvPrefix("ORDERLENS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		// if config file not found, use defaults
		defaults := DefaultReportConfig()
		v.SetDefault("report.defaultStartDate", defaults.DefaultStartDate)
		v.SetDefault("report.topProductsLimit", defaults.TopProductsLimit)
		v.SetDefault("report.exportMaxRows", defaults.ExportMaxRows)
	}

	var cfg ReportConfig
	if err := v.UnmarshalKey("report", &cfg); err != nil {
		return nil, err
	}
	if err := validateReportConfig(cfg); err != nil {
		return nil, err
	}

	holder := &ReportConfigHolder{}
	holder.Store(cfg)

	// 🔥 HOT RELOAD
	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		var updated ReportConfig
		if err := v.UnmarshalKey("report", &updated); err != nil {
			log.Printf("[report-config] reload failed: %v", err)
			return
		}
		if err := validateReportConfig(updated); err != nil {
			log.Printf("[report-config] invalid config ignored: %v", err)
			return
		}
		holder.Store(updated)
		log.Printf("[report-config] reloaded from %s", e.Name)
	})

	return holder, nil
}

func (h *ReportConfigHolder) Get() ReportConfig {
	if cfg, ok := h.current.Load().(ReportConfig); ok {
		return cfg
	}
	return DefaultReportConfig()
}

// Store replaces the active config; the file watcher calls this on
// every accepted reload.
func (h *ReportConfigHolder) Store(cfg ReportConfig) {
	h.current.Store(cfg)
}

func validateReportConfig(cfg ReportConfig) error {
	if _, err := time.Parse("2006-01-02", cfg.DefaultStartDate); err != nil {
		return errors.New("report.defaultStartDate must be YYYY-MM-DD")
	}
	if cfg.TopProductsLimit <= 0 {
		return errors.New("report.topProductsLimit must be positive")
	}
	if cfg.ExportMaxRows < 0 {
		return errors.New("report.exportMaxRows cannot be negative")
	}
	return nil
}
