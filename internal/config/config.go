package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Configはアプリ全体の設定
type Config struct {
	APIURL      string        // ストアAPIのベースURL
	HTTPTimeout time.Duration // HTTPクライアントのタイムアウト
	GoEnv       string        // dev/prod
}

// Loadは環境変数
func Load() (Config, error) {
	cfg := Config{
		APIURL: os.Getenv("API_URL"),
		GoEnv:  os.Getenv("GO_ENV"),
	}

	//必須チェック
	if cfg.APIURL == "" {
		return Config{}, fmt.Errorf("API_URL is required")
	}
	if cfg.GoEnv == "" {
		return Config{}, fmt.Errorf("GO_ENV is required")
	}

	//タイムアウトは未指定なら10秒
	timeoutSec := 10
	if v := os.Getenv("HTTP_TIMEOUT_SECONDS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("HTTP_TIMEOUT_SECONDS must be number: %w", err)
		}
		timeoutSec = n
	}
	cfg.HTTPTimeout = time.Duration(timeoutSec) * time.Second

	return cfg, nil
}
