package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config アプリ全体の設定
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"db"`
	Catalog  CatalogConfig  `mapstructure:"catalog"`
	Session  SessionConfig  `mapstructure:"session"`
	Log      LogConfig      `mapstructure:"log"`
}

// ServerConfig HTTP サーバ設定
type ServerConfig struct {
	Port  int    `mapstructure:"port"`
	Title string `mapstructure:"title"`
}

// DatabaseConfig SQLite データベース設定
type DatabaseConfig struct {
	Path  string `mapstructure:"path"`
	Debug bool   `mapstructure:"debug"`
}

// CatalogConfig 講義データの投入元（CSV / xlsx）設定
type CatalogConfig struct {
	// Sources 起動時に読み込むシラバスエクスポートのパス一覧
	// 存在しないファイルは警告ログのみでスキップする
	Sources []string `mapstructure:"sources"`
}

// SessionConfig フラッシュメッセージ用 Cookie セッション設定
type SessionConfig struct {
	Secret string `mapstructure:"secret"`
}

// LogConfig ログ設定
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load 設定ファイルと環境変数から設定を読み込む
// 優先度: 環境変数 > 設定ファイル > デフォルト値
func Load(path string) (*Config, error) {
	v := viper.New()

	// ── デフォルト値 ──
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.title", "履修登録サポート")

	v.SetDefault("db.path", "data/app.db")
	v.SetDefault("db.debug", false)

	v.SetDefault("catalog.sources", []string{
		"data/keiei_class_complete.csv",
		"data/keizai_class_complete.csv",
		"data/pankyo_class_complete.csv",
	})

	v.SetDefault("session.secret", "change-this-in-production")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// ── 設定ファイル ──
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}

	// ── 環境変数 ──
	v.SetEnvPrefix("RISYU")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("設定ファイルの読み込みに失敗: %w", err)
		}
		// 設定ファイルが無い場合はデフォルト値と環境変数のみで動かす
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("設定の解析に失敗: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate 主要な設定項目を検証する
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("設定エラー: server.port は 1-65535 の範囲で指定する")
	}
	if c.Database.Path == "" {
		return fmt.Errorf("設定エラー: db.path が空")
	}
	if c.Session.Secret == "" {
		return fmt.Errorf("設定エラー: session.secret が空")
	}
	return nil
}
