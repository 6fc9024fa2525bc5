package catalog

import (
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Holder exposes the current catalog, with monthly targets optionally
// overridden from catalog.yml. The file is watched and hot reloaded;
// invalid overrides are ignored and the previous catalog stays active.
type Holder struct {
	current atomic.Value // *Catalog
}

// NewHolder loads target overrides from catalog.yml if present.
func NewHolder(log *zap.Logger) (*Holder, error) {
	base := Default()

	v := viper.New()
	v.SetConfigName("catalog")
	v.SetConfigType("yml")
	v.AddConfigPath("/etc/amalan")
	v.AddConfigPath(".")

	v.SetEnvPrefix("AMALAN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	holder := &Holder{}
	holder.current.Store(base)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		return holder, nil
	}

	applied, err := applyOverrides(base, v)
	if err != nil {
		return nil, err
	}
	holder.current.Store(applied)

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		updated, err := applyOverrides(base, v)
		if err != nil {
			log.Warn("catalog override reload ignored", zap.Error(err), zap.String("file", e.Name))
			return
		}
		holder.current.Store(updated)
		log.Info("catalog overrides reloaded", zap.String("file", e.Name))
	})

	return holder, nil
}

// Get returns the active catalog.
func (h *Holder) Get() *Catalog {
	return h.current.Load().(*Catalog)
}

func applyOverrides(base *Catalog, v *viper.Viper) (*Catalog, error) {
	var overrides struct {
		Targets map[string]int `mapstructure:"targets"`
	}
	if err := v.UnmarshalKey("catalog", &overrides); err != nil {
		return nil, err
	}
	if len(overrides.Targets) == 0 {
		return base, nil
	}
	return base.WithTargets(overrides.Targets)
}
