package credentials

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

// Known maps a credential name to the environment variable that holds it.
var Known = map[string]string{
	"ALPHA_VANTAGE": "ALPHA_VANTAGE_API_KEY",
	"POLYGON":       "POLYGON_API_KEY",
}

// Load builds the credential mapping from an optional dotenv file and the
// process environment. Environment variables take precedence over the file.
// Credentials with empty values are left out of the mapping.
func Load(envFile string) (map[string]string, error) {
	v := viper.New()

	if envFile != "" {
		if _, err := os.Stat(envFile); err == nil {
			v.SetConfigFile(envFile)
			v.SetConfigType("env")
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("read %s: %w", envFile, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("stat %s: %w", envFile, err)
		}
	}
	v.AutomaticEnv()

	creds := make(map[string]string, len(Known))
	for name, envKey := range Known {
		if secret := v.GetString(envKey); secret != "" {
			creds[name] = secret
		}
	}
	return creds, nil
}
