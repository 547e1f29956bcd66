package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Govind-Kandale-1/3Tier-website/internal/config"
	"github.com/Govind-Kandale-1/3Tier-website/internal/logger"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// Open 根据配置连接数据库并准备好索引，开启 redis 时在外层包一层缓存。
// 返回的 close 函数负责释放所有连接。
func Open(ctx context.Context, cfg *config.Config) (EmployeeRepository, func(), error) {
	connectTimeout := time.Duration(cfg.Database.ConnectTimeout) * time.Second
	queryTimeout := time.Duration(cfg.Database.QueryTimeout) * time.Second

	var (
		repo    EmployeeRepository
		closers []func()
	)
	closeAll := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	switch cfg.Database.Driver {
	case "postgres":
		dbpool, err := sql.Open("pgx", cfg.Database.DSN)
		if err != nil {
			return nil, nil, fmt.Errorf("无法创建数据库连接池: %w", err)
		}
		closers = append(closers, func() { dbpool.Close() })

		dbpool.SetMaxOpenConns(cfg.Database.MaxOpenConns)
		dbpool.SetMaxIdleConns(cfg.Database.MaxIdleConns)
		dbpool.SetConnMaxIdleTime(time.Duration(cfg.Database.MaxIdleTime) * time.Second)

		pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
		defer cancel()

		// sql.Open 不会立即连接数据库，需要显式 ping 一下
		if err := dbpool.PingContext(pingCtx); err != nil {
			closeAll()
			return nil, nil, fmt.Errorf("无法连接到数据库: %w", err)
		}

		pgRepo := NewPostgresRepository(dbpool, queryTimeout)
		if err := pgRepo.EnsureSchema(ctx); err != nil {
			closeAll()
			return nil, nil, fmt.Errorf("无法初始化数据表: %w", err)
		}
		repo = pgRepo

	default:
		opts := options.Client().
			ApplyURI(cfg.Database.DSN).
			SetConnectTimeout(connectTimeout).
			SetMaxPoolSize(uint64(cfg.Database.MaxOpenConns)).
			SetMaxConnIdleTime(time.Duration(cfg.Database.MaxIdleTime) * time.Second)

		connectCtx, cancel := context.WithTimeout(ctx, connectTimeout)
		defer cancel()

		client, err := mongo.Connect(connectCtx, opts)
		if err != nil {
			return nil, nil, fmt.Errorf("无法创建 mongo 客户端: %w", err)
		}
		closers = append(closers, func() {
			disconnectCtx, cancel := context.WithTimeout(context.Background(), connectTimeout)
			defer cancel()
			_ = client.Disconnect(disconnectCtx)
		})

		if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
			closeAll()
			return nil, nil, fmt.Errorf("无法连接到数据库: %w", err)
		}

		mongoRepo := NewMongoRepository(client.Database(cfg.Database.Name).Collection(cfg.Database.Collection), queryTimeout)
		if err := mongoRepo.EnsureIndexes(ctx); err != nil {
			closeAll()
			return nil, nil, fmt.Errorf("无法创建索引: %w", err)
		}
		repo = mongoRepo
	}

	if cfg.Redis.Enabled {
		rdb := redis.NewClient(&redis.Options{
			Addr:        fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
			Password:    cfg.Redis.Password,
			DB:          0,
			DialTimeout: time.Duration(cfg.Redis.ConnectTimeout) * time.Second,
		})
		closers = append(closers, func() { rdb.Close() })

		pingCtx, cancel := context.WithTimeout(ctx, time.Duration(cfg.Redis.ConnectTimeout)*time.Second)
		defer cancel()

		// redis 不可用时缓存会自动降级，所以这里只记录警告
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			logger.FromContext(ctx).Warn().Err(err).Msg("无法连接到 redis")
		}

		repo = NewCachedRepository(repo, rdb, time.Duration(cfg.Redis.TTL)*time.Second)
	}

	return repo, closeAll, nil
}
