package main

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/fwojciec/wikicollect"
	"github.com/joho/godotenv"
	env "github.com/netflix/go-env"
)

// Version is reported in the User-Agent sent to Wikipedia.
const Version = "0.1.0"

// Config holds settings read from the environment.
type Config struct {
	Username   string `env:"WIKI_USERNAME"`
	Language   string `env:"WIKI_LANGUAGE,default=en"`
	DataDir    string `env:"WIKICOLLECT_DATA_DIR,default=data"`
	DBPath     string `env:"WIKICOLLECT_DB"`
	S3Bucket   string `env:"WIKICOLLECT_S3_BUCKET"`
	S3Prefix   string `env:"WIKICOLLECT_S3_PREFIX"`
	S3Endpoint string `env:"WIKICOLLECT_S3_ENDPOINT"`
	AWSRegion  string `env:"AWS_REGION,default=us-east-1"`
}

// LoadConfig seeds the environment from envFile, when it exists, and
// decodes Config from it. Variables already set take precedence over the
// file.
func LoadConfig(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, wikicollect.WrapError(wikicollect.ECONFIG, err, "load %s", envFile)
		}
	}

	var cfg Config
	if _, err := env.UnmarshalFromEnviron(&cfg); err != nil {
		return nil, wikicollect.WrapError(wikicollect.ECONFIG, err, "read environment")
	}
	return &cfg, nil
}

// UserAgent identifies this client to the MediaWiki API.
// Returns ECONFIG if WIKI_USERNAME is not set.
func (c *Config) UserAgent() (string, error) {
	username := strings.TrimSpace(c.Username)
	if username == "" {
		return "", wikicollect.Errorf(wikicollect.ECONFIG, "WIKI_USERNAME must be set to identify requests to Wikipedia")
	}
	return fmt.Sprintf("wikicollect/%s (%s)", Version, username), nil
}

// MetadataDir returns <data>/metadata.
func (c *Config) MetadataDir() string {
	return filepath.Join(c.DataDir, "metadata")
}

// SearchesDir returns the folder holding one search-result file per term.
func (c *Config) SearchesDir() string {
	return filepath.Join(c.MetadataDir(), "searches")
}

// BlacklistPath returns the page blacklist location.
func (c *Config) BlacklistPath() string {
	return filepath.Join(c.MetadataDir(), "page_blacklist.yaml")
}

// DatasetsDir returns the local dataset output folder.
func (c *Config) DatasetsDir() string {
	return filepath.Join(c.DataDir, "datasets")
}

// LedgerPath returns WIKICOLLECT_DB or <data>/metadata/exports.db.
func (c *Config) LedgerPath() string {
	if c.DBPath != "" {
		return c.DBPath
	}
	return filepath.Join(c.MetadataDir(), "exports.db")
}
