package config

import "github.com/spf13/viper"

type Config struct {
	ServerPort        string `mapstructure:"SERVER_PORT"`
	TracksDir         string `mapstructure:"TRACKS_DIR"`
	RoutesFile        string `mapstructure:"ROUTES_FILE"`
	PostgresURL       string `mapstructure:"POSTGRES_URL"`
	RedisAddr         string `mapstructure:"REDIS_ADDR"`
	RedisPassword     string `mapstructure:"REDIS_PASSWORD"`
	JWTSecret         string `mapstructure:"JWT_SECRET"`
	AdminPasswordHash string `mapstructure:"ADMIN_PASSWORD_HASH"`
	MapFitPadding     int    `mapstructure:"MAP_FIT_PADDING"`
}

func Load() Config {
	viper.AutomaticEnv()
	viper.SetDefault("SERVER_PORT", ":8080")
	viper.SetDefault("TRACKS_DIR", "./tracks")
	viper.SetDefault("ROUTES_FILE", "./routes.json")
	viper.SetDefault("POSTGRES_URL", "")
	viper.SetDefault("REDIS_ADDR", "")
	viper.SetDefault("JWT_SECRET", "dev-secret-change-me")
	viper.SetDefault("ADMIN_PASSWORD_HASH", "")
	viper.SetDefault("MAP_FIT_PADDING", 80)

	var cfg Config
	_ = viper.Unmarshal(&cfg)
	return cfg
}
