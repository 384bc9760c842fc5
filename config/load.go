package config

import (
	"flag"
	"io/ioutil"
	"os"
	"path"

	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"
)

var configPath string

func init() {
	configFolder := getOrCreateConfigFolder()
	defaultConfigPath := path.Join(configFolder, "config.yaml")
	flag.StringVar(&configPath, "config", defaultConfigPath, "specify config file")
}

func getOrCreateConfigFolder() string {
	home, err := os.UserHomeDir()
	if err != nil {
		log.Println("could not find home folder")
		return ""
	}
	configFolder := path.Join(home, ".gousbdfu")
	if err := os.MkdirAll(configFolder, 0700); err != nil {
		log.Println("Could not create", configFolder)
		return ""
	}
	return configFolder
}

func Path() string {
	return configPath
}

// LoadConfig reads the configured file, falling back to defaults when no
// file exists yet.
func LoadConfig() (*Config, error) {
	c := &Config{}
	var data []byte
	var err error
	log.Println("Loading config", configPath)
	if data, err = ioutil.ReadFile(configPath); err != nil {
		if os.IsNotExist(err) {
			log.Println("No config file found, using defaults")
			return Default(), nil
		}
		return nil, err
	}
	if err = yaml.Unmarshal(data, c); err != nil {
		return nil, err
	}
	c.Normalize()
	return c, nil
}
