package config

import (
	"strings"

	"github.com/quckapp/audit/params"
	"github.com/spf13/viper"
)

const (
	DefaultListenAddr = ":3000"
	DefaultExportDir  = "./exports"
)

type MySQLConfig struct {
	Dsn             string `mapstructure:"dsn"`
	ReplicaDsn      string `mapstructure:"replicaDsn"`
	TablePrefix     string `mapstructure:"tablePrefix"`
	MaxIdleConns    int    `mapstructure:"maxIdleConns"`
	MaxOpenConns    int    `mapstructure:"maxOpenConns"`
	ConnMaxIdleTime int    `mapstructure:"connMaxIdleTime"`
	ConnMaxLifetime int    `mapstructure:"connMaxLifetime"`
}

type RedisConfig struct {
	URL         string `mapstructure:"url"`
	PoolSize    int    `mapstructure:"poolSize"`
	ClusterMode bool   `mapstructure:"clusterMode"`
}

type RetentionConfig struct {
	Schedule string `mapstructure:"schedule"`
}

type ReportConfig struct {
	ExportDir string `mapstructure:"exportDir"`
	Workers   int    `mapstructure:"workers"`
	QueueSize int    `mapstructure:"queueSize"`
}

type IngestConfig struct {
	Enabled      bool     `mapstructure:"enabled"`
	Streams      []string `mapstructure:"streams"`
	Group        string   `mapstructure:"group"`
	ConsumerName string   `mapstructure:"consumerName"`
}

type Config struct {
	Debug        bool            `mapstructure:"debug"`
	ListenAddr   string          `mapstructure:"listenAddr"`
	AllowOrigins []string        `mapstructure:"allowOrigins"`
	MySQL        MySQLConfig     `mapstructure:"mysql"`
	Redis        RedisConfig     `mapstructure:"redis"`
	Retention    RetentionConfig `mapstructure:"retention"`
	Report       ReportConfig    `mapstructure:"report"`
	Ingest       IngestConfig    `mapstructure:"ingest"`
}

func (c *Config) Sanitize() error {
	if c.ListenAddr == "" {
		c.ListenAddr = DefaultListenAddr
	}
	if c.Retention.Schedule == "" {
		c.Retention.Schedule = params.DefaultRetentionSchedule
	}
	if c.Report.ExportDir == "" {
		c.Report.ExportDir = DefaultExportDir
	}
	if c.Report.Workers == 0 {
		c.Report.Workers = params.DefaultReportWorkers
	}
	if c.Report.QueueSize == 0 {
		c.Report.QueueSize = params.DefaultReportQueueSize
	}
	if c.Ingest.Group == "" {
		c.Ingest.Group = "audit-service"
	}
	return nil
}

func LoadConfig(filename string) (*Config, error) {
	viper.SetConfigFile(filename)
	viper.SetConfigType("yaml")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	if err := config.Sanitize(); err != nil {
		return nil, err
	}
	return &config, nil
}
