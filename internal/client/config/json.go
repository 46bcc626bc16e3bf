package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/taskkeeper/internal/flagx"
	"github.com/dmitrijs2005/taskkeeper/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
// It relies on timex.Duration so JSON can specify the timeout either as
// a string like "10s" or as integer nanoseconds. After parsing, values
// are copied into the runtime Config.
type JsonConfig struct {
	ServerURL      string         `json:"server_url"`
	RequestTimeout timex.Duration `json:"request_timeout"`
	SessionFile    string         `json:"session_file"`
}

// parseJson overlays Config with values loaded from a JSON file selected
// via the -c or -config flags. With no file selected it is a no-op; read
// or unmarshal errors panic. Intended usage is defaults -> parseJson ->
// parseFlags, later stages overriding earlier ones.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	cfg.ServerURL = jc.ServerURL
	cfg.RequestTimeout = time.Duration(jc.RequestTimeout.Duration)
	cfg.SessionFile = jc.SessionFile
}
