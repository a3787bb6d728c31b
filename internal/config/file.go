package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// fileConfig mirrors [StructuredConfig] with file-friendly keys. Durations are
// written as strings ("30s", "1h").
type fileConfig struct {
	App struct {
		TokenSignKey  string   `json:"token_sign_key" yaml:"token_sign_key"`
		TokenDuration Duration `json:"token_duration" yaml:"token_duration"`
		Version       string   `json:"version" yaml:"version"`
	} `json:"app" yaml:"app"`

	Backend struct {
		Driver            string   `json:"driver" yaml:"driver"`
		APIKey            string   `json:"api_key" yaml:"api_key"`
		AuthDomain        string   `json:"auth_domain" yaml:"auth_domain"`
		ProjectID         string   `json:"project_id" yaml:"project_id"`
		StorageBucket     string   `json:"storage_bucket" yaml:"storage_bucket"`
		MessagingSenderID string   `json:"messaging_sender_id" yaml:"messaging_sender_id"`
		AppID             string   `json:"app_id" yaml:"app_id"`
		MeasurementID     string   `json:"measurement_id" yaml:"measurement_id"`
		AnalyticsSecret   string   `json:"analytics_secret" yaml:"analytics_secret"`
		RequestTimeout    Duration `json:"request_timeout" yaml:"request_timeout"`
		Endpoints         struct {
			Identity  string `json:"identity" yaml:"identity"`
			Firestore string `json:"firestore" yaml:"firestore"`
			Analytics string `json:"analytics" yaml:"analytics"`
		} `json:"endpoints" yaml:"endpoints"`
	} `json:"backend" yaml:"backend"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn" yaml:"dsn"`
		} `json:"db" yaml:"db"`
	} `json:"storage" yaml:"storage"`

	Server struct {
		HTTPAddress    string   `json:"http_address" yaml:"http_address"`
		RequestTimeout Duration `json:"request_timeout" yaml:"request_timeout"`
		BaseURL        string   `json:"base_url" yaml:"base_url"`
	} `json:"server" yaml:"server"`
}

// parseFile reads a configuration file. Files ending in .yaml or .yml are
// decoded as YAML, everything else as JSON.
func parseFile(path string) (*StructuredConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading a config file: %w", err)
	}

	var fileCfg fileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &fileCfg); err != nil {
			return nil, fmt.Errorf("error decoding yaml configs: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &fileCfg); err != nil {
			return nil, fmt.Errorf("error decoding json configs: %w", err)
		}
	}

	return fileCfg.structured(), nil
}

func (f fileConfig) structured() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			TokenSignKey:  f.App.TokenSignKey,
			TokenDuration: time.Duration(f.App.TokenDuration),
			Version:       f.App.Version,
		},
		Backend: Backend{
			Driver:            f.Backend.Driver,
			APIKey:            f.Backend.APIKey,
			AuthDomain:        f.Backend.AuthDomain,
			ProjectID:         f.Backend.ProjectID,
			StorageBucket:     f.Backend.StorageBucket,
			MessagingSenderID: f.Backend.MessagingSenderID,
			AppID:             f.Backend.AppID,
			MeasurementID:     f.Backend.MeasurementID,
			AnalyticsSecret:   f.Backend.AnalyticsSecret,
			RequestTimeout:    time.Duration(f.Backend.RequestTimeout),
			Endpoints: Endpoints{
				Identity:  f.Backend.Endpoints.Identity,
				Firestore: f.Backend.Endpoints.Firestore,
				Analytics: f.Backend.Endpoints.Analytics,
			},
		},
		Storage: Storage{
			DB: DB{
				DSN: f.Storage.DB.DSN,
			},
		},
		Server: Server{
			HTTPAddress:    f.Server.HTTPAddress,
			RequestTimeout: time.Duration(f.Server.RequestTimeout),
			BaseURL:        f.Server.BaseURL,
		},
	}
}

// Duration is a wrapper around time.Duration that supports unmarshaling from
// strings like "1h", "30s" in both JSON and YAML. Bare numbers are read as
// nanoseconds.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var n int64
	if value.Tag == "!!int" {
		if err := value.Decode(&n); err != nil {
			return err
		}
		*d = Duration(time.Duration(n))
		return nil
	}

	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	tmp, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(tmp)
	return nil
}
