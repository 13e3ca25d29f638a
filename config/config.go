package config

import (
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Apify         ApifyConfig         `toml:"apify"`
	Options       OptionsConfig       `toml:"options"`
	Discovery     DiscoveryConfig     `toml:"discovery"`
	Refresh       RefreshConfig       `toml:"refresh"`
	Notifications NotificationsConfig `toml:"notifications"`
}

type ApifyConfig struct {
	Token   string `toml:"token"`
	BaseURL string `toml:"base_url"` // Optional, defaults to the public Apify API if empty
}

type OptionsConfig struct {
	SaveLocation      string `toml:"save_location"`
	ResultsPerHashtag int    `toml:"results_per_hashtag"`
	PostsPerCreator   int    `toml:"posts_per_creator"`
	MinFollowers      int    `toml:"min_followers"`
	MaxFollowers      int    `toml:"max_followers"`
	CheckUpdates      bool   `toml:"check_updates"`
}

type DiscoveryConfig struct {
	NicheKeywords []string `toml:"niche_keywords"`
}

type RefreshConfig struct {
	Enabled        bool `toml:"enabled"`
	IntervalHours  int  `toml:"interval_hours"`
	StaleAfterDays int  `toml:"stale_after_days"`
}

type NotificationsConfig struct {
	Enabled          bool   `toml:"enabled"`
	SystemNotify     bool   `toml:"system_notify"`
	NotifyOnComplete bool   `toml:"notify_on_complete"`
	DiscordWebhook   string `toml:"discord_webhook"`
	TelegramBotToken string `toml:"telegram_bot_token"`
	TelegramChatID   string `toml:"telegram_chat_id"`
}

func GetConfigPath() string {
	currentDirConfig := "config.toml"
	if _, err := os.Stat(currentDirConfig); err == nil {
		return currentDirConfig
	}

	return filepath.Join(GetConfigDir(), "config.toml")
}

func GetConfigDir() string {
	var configDir string
	var err error

	if runtime.GOOS == "darwin" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			log.Fatal(err)
		}
		configDir = filepath.Join(homeDir, ".config")
	} else {
		configDir, err = os.UserConfigDir()
		if err != nil {
			log.Fatal(err)
		}
	}

	return filepath.Join(configDir, "creator-scout")
}

func SaveConfig(cfg *Config, configPath string) error {
	if err := os.MkdirAll(filepath.Dir(configPath), os.ModePerm); err != nil {
		return err
	}

	file, err := os.Create(configPath)
	if err != nil {
		return err
	}
	defer file.Close()

	encoder := toml.NewEncoder(file)
	return encoder.Encode(cfg)
}

func OpenConfigInEditor(configPath string) error {
	var cmd *exec.Cmd

	if runtime.GOOS == "windows" {
		cmd = exec.Command("cmd", "/C", "start", "", configPath)
	} else {
		editor := os.Getenv("EDITOR")
		if editor == "" {
			editor = "vim"
		}
		cmd = exec.Command(editor, configPath)
	}

	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	return cmd.Run()
}

func EnsureConfigExists(configPath string) error {
	if _, err := os.Stat(filepath.Dir(configPath)); os.IsNotExist(err) {
		if err := os.MkdirAll(filepath.Dir(configPath), os.ModePerm); err != nil {
			return err
		}
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		defaultConfig := CreateDefaultConfig()
		if err := SaveConfig(defaultConfig, configPath); err != nil {
			return fmt.Errorf("failed to create default config: %v", err)
		}
	}

	return nil
}

func LoadConfig(configPath string) (*Config, error) {
	var config Config
	_, err := toml.DecodeFile(configPath, &config)
	if err != nil {
		return nil, err
	}

	if config.Apify.Token == "" {
		return nil, fmt.Errorf("apify token is empty in %v", configPath)
	}
	if config.Options.SaveLocation == "" {
		return nil, fmt.Errorf("save_location is empty in %v", configPath)
	}

	config.Options.SaveLocation = filepath.ToSlash(config.Options.SaveLocation)

	if config.Options.ResultsPerHashtag <= 0 {
		config.Options.ResultsPerHashtag = 100
	}
	if config.Options.PostsPerCreator <= 0 {
		config.Options.PostsPerCreator = 15
	}
	if config.Options.MaxFollowers <= 0 {
		config.Options.MaxFollowers = 1000000
	}
	if config.Refresh.IntervalHours <= 0 {
		config.Refresh.IntervalHours = 24
	}
	if config.Refresh.StaleAfterDays <= 0 {
		config.Refresh.StaleAfterDays = 30
	}

	return &config, nil
}

func CreateDefaultConfig() *Config {
	return &Config{
		Apify: ApifyConfig{
			Token: "",
		},
		Options: OptionsConfig{
			SaveLocation:      "/path/to/save/data/to",
			ResultsPerHashtag: 100,
			PostsPerCreator:   15,
			MinFollowers:      1000,
			MaxFollowers:      500000,
			CheckUpdates:      false,
		},
		Discovery: DiscoveryConfig{
			NicheKeywords: []string{},
		},
		Refresh: RefreshConfig{
			Enabled:        false,
			IntervalHours:  24,
			StaleAfterDays: 30,
		},
		Notifications: NotificationsConfig{
			Enabled:          false,
			SystemNotify:     true,
			NotifyOnComplete: true,
		},
	}
}

// DatabasePath returns the SQLite file location under the save directory.
func DatabasePath(cfg *Config) string {
	return filepath.Join(cfg.Options.SaveLocation, "creator-scout.db")
}

// RefreshStatePath is the state file used by the background refresh service.
func RefreshStatePath() string {
	return filepath.Join(GetConfigDir(), "refresh_state.json")
}

func VerifyConfigOnStartup() {
	configPath := GetConfigPath()
	if err := EnsureConfigExists(configPath); err != nil {
		log.Printf("Warning: could not ensure config exists: %v", err)
	}
}
