package config

import (
	"errors"
	"io/fs"
	"log"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/mira-tu/FinalFlower-sub001/internal/constants"
	viper "github.com/spf13/viper"
)

/*
init : 設置viper watch 與 onConfigChange
read : 一般讀取 需要使用讀寫鎖
設定來源優先順序: 環境變數 > CONFIG_FILE 指定的檔案 (預設 .env) > 預設值
*/
var configSingleton *ConfigSingleton
var muonce sync.Once

type ConfigSingleton struct {
	Config *Config
	mu     sync.RWMutex
}

type Config struct {
	Env        string `mapstructure:"ENV"`
	ServerPort string `mapstructure:"SERVER_PORT"`

	DbName string `mapstructure:"POSTGRES_DB"`
	DbHost string `mapstructure:"POSTGRES_HOST"`
	DbPort string `mapstructure:"POSTGRES_PORT"`
	DbUser string `mapstructure:"POSTGRES_USER"`
	DbPas  string `mapstructure:"POSTGRES_PASSWORD"`

	MigrationsEnabled bool   `mapstructure:"MIGRATIONS_ENABLED"`
	CatalogSeedFile   string `mapstructure:"CATALOG_SEED_FILE"`

	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`

	KafkaBrokers    []string `mapstructure:"KAFKA_BROKERS"`
	KafkaOrderTopic string   `mapstructure:"KAFKA_ORDER_TOPIC"`

	AuthTokenKey string `mapstructure:"AUTH_TOKEN_KEY"`

	DeliveryFee        int64         `mapstructure:"DELIVERY_FEE"`
	RequestTimeout     time.Duration `mapstructure:"REQUEST_TIMEOUT"`
	OrderRateCapacity  int           `mapstructure:"ORDER_RATE_CAPACITY"`
	OrderRatePerSecond float64       `mapstructure:"ORDER_RATE_PER_SECOND"`
}

func GetConfig() *Config {
	initConfig()
	configSingleton.mu.RLock()
	defer configSingleton.mu.RUnlock()
	return configSingleton.Config
}

func initConfig() {
	if configSingleton == nil {
		muonce.Do(func() {
			configSingleton = &ConfigSingleton{}
			cf, watchable, err := loadConfig()
			if err != nil {
				log.Fatalf("error read config: %v", err)
			}
			configSingleton.setConfig(cf)
			if !watchable {
				return
			}
			viper.WatchConfig()
			viper.OnConfigChange(func(e fsnotify.Event) {
				if cf, _, err := loadConfig(); err == nil {
					configSingleton.setConfig(cf)
					log.Printf("config reloaded from %s", e.Name)
				} else {
					log.Printf("failed to reload config file: %v", err)
				}
			})
		})
	}
}

func (c *ConfigSingleton) setConfig(cf *Config) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Config = cf
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", "development")
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("POSTGRES_HOST", "localhost")
	v.SetDefault("POSTGRES_PORT", "5432")
	v.SetDefault("POSTGRES_DB", "flowershop")
	v.SetDefault("MIGRATIONS_ENABLED", true)
	v.SetDefault("KAFKA_ORDER_TOPIC", "flowershop.orders")
	v.SetDefault("DELIVERY_FEE", constants.DefaultDeliveryFee)
	v.SetDefault("REQUEST_TIMEOUT", constants.DefaultRequestTimeout)
	v.SetDefault("ORDER_RATE_CAPACITY", 5)
	v.SetDefault("ORDER_RATE_PER_SECOND", 0.2)
	// 沒有預設值的 key 也要註冊，Unmarshal 才會讀到環境變數
	for _, key := range []string{"POSTGRES_USER", "POSTGRES_PASSWORD", "CATALOG_SEED_FILE", "REDIS_ADDR", "REDIS_PASSWORD", "KAFKA_BROKERS", "AUTH_TOKEN_KEY"} {
		v.SetDefault(key, "")
	}
}

// 回傳錯誤由外部決定要不要Fatal
// watchable 代表有實際讀到設定檔，可以監聽變更
func loadConfig() (cf *Config, watchable bool, err error) {
	return LoadFrom(viper.GetViper())
}

// LoadFrom 以指定的 viper 實例讀取設定，測試可傳入獨立實例
func LoadFrom(v *viper.Viper) (cf *Config, watchable bool, err error) {
	setDefaults(v)

	path := os.Getenv("CONFIG_FILE")
	if path == "" {
		path = ".env"
	}
	v.SetConfigFile(path)
	v.SetConfigType("env")
	v.AutomaticEnv()

	if err = v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, false, err
		}
		err = nil
	} else {
		watchable = true
	}

	cf = &Config{}
	if err = v.Unmarshal(cf); err != nil {
		return nil, false, err
	}
	// KAFKA_BROKERS 以逗號分隔
	cf.KafkaBrokers = splitList(v.GetString("KAFKA_BROKERS"))
	return cf, watchable, nil
}

func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
