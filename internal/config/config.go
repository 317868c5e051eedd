package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App               App               `mapstructure:",squash"`
	Server            Server            `mapstructure:",squash"`
	Database          Database          `mapstructure:",squash"`
	Scoring           Scoring           `mapstructure:",squash"`
	SnapshotRetention SnapshotRetention `mapstructure:",squash"`
	Client            Client            `mapstructure:",squash"`
	SecretKey         string            `mapstructure:"secret_key"`
}

type Server struct {
	Host           string   `mapstructure:"host"`
	Port           string   `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"cors_allowed_origins"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

// Scoring define a tabela de pontuação usada pela API (e o schema de CSV aceito)
type Scoring struct {
	Table string `mapstructure:"scoring_table"`
}

type SnapshotRetention struct {
	CronSchedule string `mapstructure:"snapshot_retention_cron"`
	Days         int    `mapstructure:"snapshot_retention_days"`
	Enabled      bool   `mapstructure:"snapshot_retention_enabled"`
}

// Client configura o questctl
type Client struct {
	APIURL    string `mapstructure:"questctl_api_url"`
	Token     string `mapstructure:"questctl_token"`
	Cache     string `mapstructure:"questctl_cache"`
	CacheDir  string `mapstructure:"questctl_cache_dir"`
	RedisAddr string `mapstructure:"redis_addr"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:4001")

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/sales_quest?sslmode=disable")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("SECRET_KEY", "your_secret_key")

	viper.SetDefault("SCORING_TABLE", "goal-actual/v2")

	viper.SetDefault("SNAPSHOT_RETENTION_CRON", "0 3 * * *") // Todos os dias às 3h da manhã
	viper.SetDefault("SNAPSHOT_RETENTION_DAYS", 180)
	viper.SetDefault("SNAPSHOT_RETENTION_ENABLED", false)

	viper.SetDefault("QUESTCTL_API_URL", "http://localhost:8000")
	viper.SetDefault("QUESTCTL_TOKEN", "")
	viper.SetDefault("QUESTCTL_CACHE", "file")
	viper.SetDefault("QUESTCTL_CACHE_DIR", defaultCacheDir())
	viper.SetDefault("REDIS_ADDR", "localhost:6379")

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile()

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Debug("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	} else {
		logrus.Debug("Arquivo .env lido pelo Viper com sucesso")
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	return config, nil
}

func defaultCacheDir() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "questctl")
	}
	return filepath.Join(dir, "questctl")
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		err := godotenv.Load(location)
		if err == nil {
			logrus.Debug("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Debug("Nenhum arquivo .env encontrado, usando variáveis de ambiente")
}
