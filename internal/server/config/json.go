package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/aegislabs/aegis-backend/internal/flagx"
	"github.com/aegislabs/aegis-backend/internal/timex"
)

// JsonConfig defines a configuration structure tailored for JSON
// unmarshalling. It uses timex.Duration for interval fields, which allows
// parsing both string values such as "30s" and integer nanoseconds.
//
// This struct is an intermediate DTO used only for reading JSON configuration
// files. After unmarshalling, its fields are copied into the runtime Config.
type JsonConfig struct {
	EndpointAddrHTTP   string         `json:"endpoint_addr_http"`
	DatabaseDSN        string         `json:"database_dsn"`
	APIKey             string         `json:"api_key"`
	UploadDir          string         `json:"upload_dir"`
	RiskWindowDays     int            `json:"risk_window_days"`
	BlendWeightProb    float64        `json:"blend_weight_prob"`
	BlendWeightUrgency float64        `json:"blend_weight_urgency"`
	InfectionThreshold float64        `json:"infection_threshold"`
	ClassifierMode     string         `json:"classifier_mode"`
	ModelEndpoint      string         `json:"model_endpoint"`
	ReadTimeout        timex.Duration `json:"read_timeout"`
	ShutdownTimeout    timex.Duration `json:"shutdown_timeout"`
	S3RootUser         string         `json:"s3_root_user"`
	S3RootPassword     string         `json:"s3_root_password"`
	S3Bucket           string         `json:"s3_bucket"`
	S3Region           string         `json:"s3_region"`
	S3BaseEndpoint     string         `json:"s3_base_endpoint"`
}

// parseJson loads configuration values from a JSON file into the provided
// Config instance.
//
// The file path is taken from the -c or -config command-line flags; if
// neither is set, no JSON file is loaded. If the file cannot be read or
// contains invalid JSON, the function panics.
//
// Zero values in the JSON file leave the corresponding Config field
// untouched, so a partial file only overrides what it names.
func parseJson(config *Config) {

	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	err = json.Unmarshal(file, c)
	if err != nil {
		panic(err)
	}

	if c.EndpointAddrHTTP != "" {
		config.EndpointAddrHTTP = c.EndpointAddrHTTP
	}
	if c.DatabaseDSN != "" {
		config.DatabaseDSN = c.DatabaseDSN
	}
	if c.APIKey != "" {
		config.APIKey = c.APIKey
	}
	if c.UploadDir != "" {
		config.UploadDir = c.UploadDir
	}
	if c.RiskWindowDays > 0 {
		config.RiskWindowDays = c.RiskWindowDays
	}
	if c.BlendWeightProb > 0 {
		config.BlendWeightProb = c.BlendWeightProb
	}
	if c.BlendWeightUrgency > 0 {
		config.BlendWeightUrgency = c.BlendWeightUrgency
	}
	if c.InfectionThreshold > 0 {
		config.InfectionThreshold = c.InfectionThreshold
	}
	if c.ClassifierMode != "" {
		config.ClassifierMode = c.ClassifierMode
	}
	if c.ModelEndpoint != "" {
		config.ModelEndpoint = c.ModelEndpoint
	}
	if c.ReadTimeout.Duration > 0 {
		config.ReadTimeout = time.Duration(c.ReadTimeout.Duration)
	}
	if c.ShutdownTimeout.Duration > 0 {
		config.ShutdownTimeout = time.Duration(c.ShutdownTimeout.Duration)
	}
	if c.S3RootUser != "" {
		config.S3RootUser = c.S3RootUser
	}
	if c.S3RootPassword != "" {
		config.S3RootPassword = c.S3RootPassword
	}
	if c.S3Bucket != "" {
		config.S3Bucket = c.S3Bucket
	}
	if c.S3Region != "" {
		config.S3Region = c.S3Region
	}
	if c.S3BaseEndpoint != "" {
		config.S3BaseEndpoint = c.S3BaseEndpoint
	}
}
