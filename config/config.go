package config

import (
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Game     GameConfig     `mapstructure:"game"`
}

type ServerConfig struct {
	HTTPAddress    string `mapstructure:"http_address"`
	RPCAddress     string `mapstructure:"rpc_address"`
	MetricsAddress string `mapstructure:"metrics_address"`
}

type DatabaseConfig struct {
	// Driver selects the store backend: "postgres" or "memory".
	Driver   string         `mapstructure:"driver"`
	Postgres PostgresConfig `mapstructure:"postgres"`
}

type PostgresConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
}

// GameConfig 游戏数值配置
type GameConfig struct {
	StartingTreasury int64   `mapstructure:"starting_treasury"`
	HireSkillCount   int     `mapstructure:"hire_skill_count"`
	SkillLevelMax    int     `mapstructure:"skill_level_max"`
	SalaryBase       float64 `mapstructure:"salary_base"`
	TrainingFee      int64   `mapstructure:"training_fee"`
	RandomSeed       int64   `mapstructure:"random_seed"`
}

func LoadConfig(path string) (config *Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.SetDefault("server.http_address", ":8080")
	viper.SetDefault("server.rpc_address", ":8081")
	viper.SetDefault("server.metrics_address", ":9100")
	viper.SetDefault("database.driver", "memory")
	viper.SetDefault("game.starting_treasury", 1000000)
	viper.SetDefault("game.hire_skill_count", 3)
	viper.SetDefault("game.skill_level_max", 10)
	viper.SetDefault("game.salary_base", 200)
	viper.SetDefault("game.training_fee", 50000)

	viper.AutomaticEnv()

	// Defaults cover every key, so a missing config file is fine.
	if err = viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return
		}
		err = nil
	}

	err = viper.Unmarshal(&config)
	return
}
