package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/mgiraud/autotrader/internal/flagx"
)

// duration lets JSON specify intervals either as strings like "10s" or as
// integer nanoseconds.
type duration struct {
	time.Duration
}

func (d *duration) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch value := v.(type) {
	case float64:
		d.Duration = time.Duration(value)
		return nil
	case string:
		parsed, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		d.Duration = parsed
		return nil
	default:
		return fmt.Errorf("invalid duration: %s", string(data))
	}
}

// jsonConfig is a DTO used exclusively for JSON unmarshalling. Absent fields
// leave the corresponding Config value untouched.
type jsonConfig struct {
	ServerBaseURL  *string   `json:"server_base_url"`
	RequestTimeout *duration `json:"request_timeout"`
	DatabasePath   *string   `json:"database_path"`
	LogLevel       *string   `json:"log_level"`
}

// parseJSON overlays cfg with values loaded from the JSON file named by the
// -c/-config flags. If no file is named, nothing happens. Read or unmarshal
// errors panic; config is resolved once at startup and a broken file should
// stop the program.
func parseJSON(cfg *Config) {
	jsonConfigFile := flagx.JSONConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	var jc jsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ServerBaseURL != nil {
		cfg.ServerBaseURL = *jc.ServerBaseURL
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.DatabasePath != nil {
		cfg.DatabasePath = *jc.DatabasePath
	}
	if jc.LogLevel != nil {
		cfg.LogLevel = *jc.LogLevel
	}
}
