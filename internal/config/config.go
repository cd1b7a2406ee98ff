// Package config предоставляет структуры и функцию для парсинга и загрузки конфига.
package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config общая структура для хранения настроек сервиса.
type Config struct {
	Env                     string `yaml:"env" env-default:"local"`
	StorageConnectionString string `yaml:"storage_connection_string" env:"STORAGE_CONNECTION_STRING"`
	MigrationsPath          string `yaml:"migrations_path" env-default:"./migrations"`
	BaseURL                 string `yaml:"base_url" env-default:"http://localhost:8080"`
	HTTPServer              `yaml:"http_server"`
	RedisConnection         `yaml:"redis_connection"`
	JWTToken                `yaml:"jwttoken"`
	SMTP                    `yaml:"smtp"`
	S3                      `yaml:"s3"`
	Reset                   `yaml:"reset"`
}

// HTTPServer структура для настройки сервера.
type HTTPServer struct {
	AddressHTTP string        `yaml:"addresshttp" env-default:"localhost:8080"`
	TimeoutHTTP time.Duration `yaml:"timeouthttp" env-default:"4s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

// RedisConnection структура для настройки подключения к redis.
type RedisConnection struct {
	AddressRedis string        `yaml:"addressredis" env-default:"localhost:6379"`
	Password     string        `yaml:"password" env:"REDIS_PASSWORD"`
	User         string        `yaml:"user"`
	DB           int           `yaml:"db" env-default:"0"`
	MaxRetries   int           `yaml:"max_retries" env-default:"3"`
	DialTimeout  time.Duration `yaml:"dial_timeout" env-default:"5s"`
	TimeoutRedis time.Duration `yaml:"timeoutredis" env-default:"3s"`
}

// JWTToken структура для работы с jwt-токеном.
type JWTToken struct {
	JWTSecretKey string        `yaml:"jwt_secret_key" env:"JWT_SECRET_KEY" env-required:"true"`
	TokenTTL     time.Duration `yaml:"token_ttl" env-default:"2h"`
}

// SMTP структура для настройки почтового шлюза.
type SMTP struct {
	SMTPHost    string        `yaml:"host"`
	SMTPPort    string        `yaml:"port" env-default:"587"`
	SMTPUser    string        `yaml:"user" env:"SMTP_USER"`
	SMTPPass    string        `yaml:"pass" env:"SMTP_PASS"`
	SendTimeout time.Duration `yaml:"send_timeout" env-default:"5s"`
}

// S3 структура для настройки объектного хранилища постеров.
type S3 struct {
	S3Region       string `yaml:"region" env-default:"us-east-1"`
	S3BaseEndpoint string `yaml:"base_endpoint"`
	S3Bucket       string `yaml:"bucket" env-default:"movie-posters"`
	S3AccessKey    string `yaml:"access_key" env:"S3_ACCESS_KEY"`
	S3SecretKey    string `yaml:"secret_key" env:"S3_SECRET_KEY"`
}

// Reset структура для настройки кодов сброса пароля.
type Reset struct {
	CodeTTL time.Duration `yaml:"code_ttl" env-default:"15m"`
}

// MustLoad загружает конфиг по пути из CONFIG_PATH. Завершает процесс,
// если файл отсутствует или не читается.
func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		log.Fatal("CONFIG_PATH is not set")
	}
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("file: %s - does not exist", configPath)
	}
	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	return &cfg
}
