package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/saschasalles/LabPlatformAPI/internal/flagx"
	"github.com/saschasalles/LabPlatformAPI/internal/timex"
)

// JsonConfig is the intermediate DTO used only for reading JSON configuration
// files. RequestTimeout uses timex.Duration, which accepts both string values
// such as "10s" and integer nanoseconds.
type JsonConfig struct {
	ServerEndpointAddr string         `json:"server_endpoint_addr"`
	RequestTimeout     timex.Duration `json:"request_timeout"`
}

// parseJson loads configuration from the JSON file named by -c or -config.
// When neither flag is set, nothing is loaded. An unreadable or invalid file
// panics: a half-applied config is worse than not starting.
func parseJson(config *Config) {

	jsonConfigFile := flagx.JsonConfigFlags()

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

	config.ServerEndpointAddr = c.ServerEndpointAddr
	config.RequestTimeout = time.Duration(c.RequestTimeout.Duration)
}
