package config

import (
	"errors"
	"os"

	"github.com/spf13/viper"
)

// SetDefaultProject rewrites the default project in the config file.
// Every session tracked afterwards is stamped with it. An empty name
// clears it.
func SetDefaultProject(configPath, name string) error {
	if _, err := New(WithViperConfig(configPath)); err != nil {
		return err
	}

	v := viper.New()

	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")
	setViperDefaults(v)

	if err := v.ReadInConfig(); err != nil &&
		!errors.Is(err, os.ErrNotExist) {
		return err
	}

	v.Set(keyDefaultProject, name)

	return v.WriteConfig()
}
