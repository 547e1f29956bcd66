package config

import (
	"errors"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	Server      struct {
		Port            string `env:"PORT" envDefault:"5000"`
		ReadTimeout     int    `env:"SERVER_READ_TIMEOUT" envDefault:"10"`
		WriteTimeout    int    `env:"SERVER_WRITE_TIMEOUT" envDefault:"15"`
		IdleTimeout     int    `env:"SERVER_IDLE_TIMEOUT" envDefault:"60"`
		ShutdownTimeout int    `env:"SERVER_SHUTDOWN_TIMEOUT" envDefault:"10"`
		MaxBodyBytes    int64  `env:"SERVER_MAX_BODY_BYTES" envDefault:"1048576"`
	}
	Database struct {
		Driver         string `env:"DRIVER" envDefault:"mongo"` // mongo 或 postgres
		DSN            string `env:"DSN,required"`
		Name           string `env:"NAME" envDefault:"employee_directory"`
		Collection     string `env:"COLLECTION" envDefault:"employees"`
		ConnectTimeout int    `env:"CONNECT_TIMEOUT" envDefault:"10"`
		QueryTimeout   int    `env:"QUERY_TIMEOUT" envDefault:"10"`
		MaxOpenConns   int    `env:"MAX_OPEN_CONNS" envDefault:"10"`
		MaxIdleConns   int    `env:"MAX_IDLE_CONNS" envDefault:"10"`
		MaxIdleTime    int    `env:"MAX_IDLE_TIME" envDefault:"60"`
	} `envPrefix:"DATABASE_"`
	Log struct {
		Level    string `env:"LEVEL" envDefault:"info"`
		FilePath string `env:"FILE_PATH"`
	} `envPrefix:"LOG_"`
	Redis struct {
		Enabled        bool   `env:"ENABLED" envDefault:"false"`
		Host           string `env:"HOST" envDefault:"localhost"`
		Port           int    `env:"PORT" envDefault:"6379"`
		Password       string `env:"PASSWORD"`
		ConnectTimeout int    `env:"CONNECT_TIMEOUT" envDefault:"10"`
		TTL            int    `env:"TTL" envDefault:"60"` // 秒
	} `envPrefix:"REDIS_"`
	RabbitMQ struct {
		DSN            string `env:"DSN"` // 为空时不发送欢迎邮件
		Queue          string `env:"QUEUE" envDefault:"email_queue"`
		PublishTimeout int    `env:"PUBLISH_TIMEOUT" envDefault:"10"`
	} `envPrefix:"RABBITMQ_"`
	Email struct {
		TemplateDir string `env:"TEMPLATE_DIR" envDefault:"./templates"`
		CompanyName string `env:"COMPANY_NAME" envDefault:"Employee Directory"`
		SMTP        struct {
			Username    string `env:"USERNAME"`
			Password    string `env:"PASSWORD"`
			Host        string `env:"HOST"`
			Port        int    `env:"PORT" envDefault:"465"`
			DialTimeout int    `env:"DIAL_TIMEOUT" envDefault:"10"`
		} `envPrefix:"SMTP_"`
	} `envPrefix:"EMAIL_"`
	Seed struct {
		EmailDomain string `env:"EMAIL_DOMAIN" envDefault:"company.com"`
	} `envPrefix:"SEED_"`
}

func LoadConfig() (*Config, error) {
	// .env 文件是可选的，不存在时直接读取环境变量
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		aggErr := env.AggregateError{}
		if ok := errors.As(err, &aggErr); ok {
			// 只返回第一个错误使得日志更清晰
			return nil, aggErr.Errors[0]
		}
		return nil, err
	}

	switch cfg.Database.Driver {
	case "mongo", "postgres":
	default:
		return nil, errors.New("DATABASE_DRIVER must be mongo or postgres")
	}

	return cfg, nil
}

// ClientConfig 是命令行客户端的配置，不依赖数据库等服务端配置
type ClientConfig struct {
	APIURL  string `env:"API_URL" envDefault:"http://localhost:5000/api"`
	Timeout int    `env:"API_TIMEOUT" envDefault:"10"`
	Log     struct {
		Level    string `env:"LEVEL" envDefault:"warn"`
		FilePath string `env:"FILE_PATH"`
	} `envPrefix:"LOG_"`
}

func LoadClientConfig() (*ClientConfig, error) {
	_ = godotenv.Load()

	cfg := &ClientConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
