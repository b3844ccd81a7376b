package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/saschasalles/LabPlatformAPI/internal/flagx"
	"github.com/saschasalles/LabPlatformAPI/internal/timex"
)

// JsonConfig is the intermediate DTO used only for reading JSON configuration
// files. Interval fields use timex.Duration, which accepts both string values
// such as "8760h" and integer nanoseconds. After unmarshalling, its fields
// are copied into the runtime Config.
type JsonConfig struct {
	EndpointAddrHTTP      string         `json:"endpoint_addr_http"`
	DatabaseDSN           string         `json:"database_dsn"`
	TokenValidityDuration timex.Duration `json:"token_validity_duration"`
	TokenExpiryEnforced   bool           `json:"token_expiry_enforced"`
	S3RootUser            string         `json:"s3_root_user"`
	S3RootPassword        string         `json:"s3_root_password"`
	S3Bucket              string         `json:"s3_bucket"`
	S3Region              string         `json:"s3_region"`
	S3BaseEndpoint        string         `json:"s3_base_endpoint"`
}

// parseJson loads configuration values from a JSON file into the provided
// Config instance. The file path comes from the -c or -config command-line
// flags; when neither is set, no JSON file is loaded. An unreadable or
// invalid file panics: a half-applied config is worse than not starting.
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

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	config.EndpointAddrHTTP = c.EndpointAddrHTTP
	config.DatabaseDSN = c.DatabaseDSN
	config.TokenValidityDuration = time.Duration(c.TokenValidityDuration.Duration)
	config.TokenExpiryEnforced = c.TokenExpiryEnforced
	config.S3RootUser = c.S3RootUser
	config.S3RootPassword = c.S3RootPassword
	config.S3Bucket = c.S3Bucket
	config.S3Region = c.S3Region
	config.S3BaseEndpoint = c.S3BaseEndpoint
}
