package sdk

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/viper"

	"github.com/fivetwenty-io/luminesce-sdk/internal/constants"
)

// secretsEnvBindings maps secrets keys to the environment variables that override them.
var secretsEnvBindings = map[string]string{
	"api.tokenUrl":            "TOKEN_URL",
	"api.apiUrl":              "LUMINESCE_API_URL",
	"api.applicationName":     "APP_NAME",
	"api.clientId":            "CLIENT_ID",
	"api.clientSecret":        "CLIENT_SECRET",
	"api.username":            "USERNAME",
	"api.password":            "PASSWORD",
	"api.scopes":              "SCOPES",
	"api.personalAccessToken": "ACCESS_TOKEN",
}

// LoadAPIConfiguration reads an APIConfiguration from the secrets file at path
// and applies FBN_* environment overrides. An empty path reads only the
// environment. The result is not validated; apifactory.NewConfiguration does that.
func LoadAPIConfiguration(path string) (*APIConfiguration, error) {
	v := viper.New()

	for key, env := range secretsEnvBindings {
		err := v.BindEnv(key, constants.EnvPrefix+"_"+env)
		if err != nil {
			return nil, fmt.Errorf("binding %s: %w", key, err)
		}
	}

	if path != "" {
		v.SetConfigFile(path)

		err := v.ReadInConfig()
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("%w: secrets file %s not found", ErrInvalidConfiguration, path)
			}

			return nil, fmt.Errorf("%w: reading secrets file %s: %w", ErrInvalidConfiguration, path, err)
		}
	}

	return &APIConfiguration{
		TokenURL:            v.GetString("api.tokenUrl"),
		APIURL:              v.GetString("api.apiUrl"),
		ApplicationName:     v.GetString("api.applicationName"),
		ClientID:            v.GetString("api.clientId"),
		ClientSecret:        v.GetString("api.clientSecret"),
		Username:            v.GetString("api.username"),
		Password:            v.GetString("api.password"),
		Scopes:              v.GetStringSlice("api.scopes"),
		PersonalAccessToken: v.GetString("api.personalAccessToken"),
	}, nil
}
