package config

import (
	"log"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Logger LoggerConfig `mapstructure:"logger"`
	Loan   LoanConfig   `mapstructure:"loan"`
}

type LoggerConfig struct {
	Level    string `mapstructure:"level"`
	Encoding string `mapstructure:"encoding"`
}

// LoanConfig holds the simulator's default loan terms. Monetary values are
// strings so they parse straight into decimals without a float round trip.
type LoanConfig struct {
	Principal          string `mapstructure:"principal"`
	TermMonths         int    `mapstructure:"termMonths"`
	AnnualInterestRate string `mapstructure:"annualInterestRate"`
}

func LoadConfig(path string) (*Config, error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yml")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.encoding", "json")
	viper.SetDefault("loan.principal", "10000")
	viper.SetDefault("loan.termMonths", 12)
	viper.SetDefault("loan.annualInterestRate", "5.0")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Println("Config file not found, using defaults and environment variables.")
		} else {
			return nil, err
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
