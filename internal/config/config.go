package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/viper"
)

// Config хранит все настройки приложения
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Telegram TelegramConfig
	Session  SessionConfig
	Cache    CacheConfig
}

// ServerConfig содержит настройки HTTP сервера
type ServerConfig struct {
	Port         string
	ReadTimeout  int
	WriteTimeout int
}

// DatabaseConfig содержит настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// RedisConfig содержит унифицированные настройки подключения к Redis
// Поддерживает режимы: single, sentinel, cluster
type RedisConfig struct {
	// Mode: Режим работы Redis ("single", "sentinel", "cluster"). По умолчанию "single".
	Mode string `mapstructure:"mode"`

	// Addrs: Список адресов Redis (хост:порт). Используется для всех режимов.
	Addrs []string `mapstructure:"addrs"`

	// Addr: Альтернативный адрес для режима 'single'.
	Addr string `mapstructure:"addr"`

	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`

	// MasterName: Имя мастер-сервера Redis (только для режима "sentinel")
	MasterName string `mapstructure:"master_name"`

	MaxRetries      int `mapstructure:"max_retries"`
	MinRetryBackoff int `mapstructure:"min_retry_backoff"`
	MaxRetryBackoff int `mapstructure:"max_retry_backoff"`
}

// TelegramConfig содержит настройки интеграции с Telegram
type TelegramConfig struct {
	// BotToken - секрет бота, которым подписан initData.
	// Его отсутствие НЕ ошибка старта: валидация ответит NO_BOT_TOKEN на запрос.
	BotToken string `mapstructure:"bot_token"`

	// MiniAppURL - адрес мини-аппа для кнопки в боте
	MiniAppURL string `mapstructure:"mini_app_url"`

	// AdminIDs - allow-list Telegram ID администраторов
	AdminIDs []int64 `mapstructure:"admin_ids"`

	// BotEnabled включает long-polling бота (/start с кнопкой мини-аппа)
	BotEnabled bool `mapstructure:"bot_enabled"`
}

// SessionConfig содержит настройки жизненного цикла сессий
type SessionConfig struct {
	// CleanupInterval - период запуска janitor-а устаревших сессий
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`

	// MaxIdleAge - возраст бездействия, после которого активная сессия закрывается
	MaxIdleAge time.Duration `mapstructure:"max_idle_age"`
}

// CacheConfig содержит настройки кеширования
type CacheConfig struct {
	// LeaderboardTTL - время жизни кеша лидерборда
	LeaderboardTTL time.Duration `mapstructure:"leaderboard_ttl"`

	// QuizListTTL - время жизни кеша списка викторин
	QuizListTTL time.Duration `mapstructure:"quiz_list_ttl"`
}

// PostgresConnectionString формирует строку подключения к PostgreSQL
func (d *DatabaseConfig) PostgresConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

// IsAdmin проверяет членство Telegram ID в allow-list администраторов
func (t *TelegramConfig) IsAdmin(telegramID int64) bool {
	for _, id := range t.AdminIDs {
		if id == telegramID {
			return true
		}
	}
	return false
}

// Load загружает конфигурацию из файла и переменных окружения
func Load(configPath string) (*Config, error) {
	vip := viper.New() // Новый экземпляр Viper, чтобы избежать глобального состояния

	// Значения по умолчанию
	vip.SetDefault("server.port", "8080")
	vip.SetDefault("server.readtimeout", 10)
	vip.SetDefault("server.writetimeout", 10)
	vip.SetDefault("database.sslmode", "disable")
	vip.SetDefault("session.cleanup_interval", 10*time.Minute)
	vip.SetDefault("session.max_idle_age", 2*time.Hour)
	vip.SetDefault("cache.leaderboard_ttl", time.Minute)
	vip.SetDefault("cache.quiz_list_ttl", 5*time.Minute)

	// Привязываем переменные окружения ЯВНО
	vip.BindEnv("database.host", "DATABASE_HOST")
	vip.BindEnv("database.port", "DATABASE_PORT")
	vip.BindEnv("database.user", "DATABASE_USER")
	vip.BindEnv("database.password", "DATABASE_PASSWORD")
	vip.BindEnv("database.dbname", "DATABASE_DBNAME")
	vip.BindEnv("database.sslmode", "DATABASE_SSLMODE")

	vip.BindEnv("redis.mode", "REDIS_MODE")
	vip.BindEnv("redis.addrs", "REDIS_ADDRS")
	vip.BindEnv("redis.addr", "REDIS_ADDR")
	vip.BindEnv("redis.password", "REDIS_PASSWORD")
	vip.BindEnv("redis.db", "REDIS_DB")
	vip.BindEnv("redis.master_name", "REDIS_MASTER_NAME")

	vip.BindEnv("telegram.bot_token", "TELEGRAM_BOT_TOKEN")
	vip.BindEnv("telegram.mini_app_url", "TELEGRAM_MINI_APP_URL")
	vip.BindEnv("telegram.admin_ids", "TELEGRAM_ADMIN_IDS")
	vip.BindEnv("telegram.bot_enabled", "TELEGRAM_BOT_ENABLED")

	vip.BindEnv("session.cleanup_interval", "SESSION_CLEANUP_INTERVAL")
	vip.BindEnv("session.max_idle_age", "SESSION_MAX_IDLE_AGE")

	vip.BindEnv("server.port", "SERVER_PORT")

	if configPath != "" {
		vip.SetConfigFile(configPath)
		if err := vip.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); ok {
				log.Printf("Файл конфигурации '%s' не найден, используются переменные окружения/умолчания.", configPath)
			} else {
				log.Printf("Предупреждение: не удалось прочитать файл конфигурации '%s': %v", configPath, err)
			}
		}
	}

	var cfg Config
	if err := vip.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Логирование конфигурации (только не в release режиме)
	if os.Getenv("GIN_MODE") != "release" {
		log.Printf("--- Загруженные значения конфигурации ---")
		log.Printf("Database Host: %s", cfg.Database.Host)
		log.Printf("Database Name: %s", cfg.Database.DBName)
		log.Printf("Redis Addr: %s", cfg.Redis.Addr)
		log.Printf("Telegram Bot Token Set: %t", cfg.Telegram.BotToken != "")
		log.Printf("Telegram Admin IDs: %d", len(cfg.Telegram.AdminIDs))
		log.Printf("Server Port: %s", cfg.Server.Port)
		log.Printf("-----------------------------------------")
	}

	// Проверка обязательных параметров.
	// Токен бота намеренно не проверяется здесь: его отсутствие должно
	// проявляться на запросе (NO_BOT_TOKEN), а не ронять сервис на старте.
	if cfg.Database.Host == "" || cfg.Database.DBName == "" || cfg.Database.User == "" {
		return nil, fmt.Errorf("database configuration (host, dbname, user) is incomplete in config (check DATABASE_HOST, DATABASE_DBNAME, DATABASE_USER env vars)")
	}

	return &cfg, nil
}
