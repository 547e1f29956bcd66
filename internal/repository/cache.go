package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Govind-Kandale-1/3Tier-website/internal/domain"
	"github.com/Govind-Kandale-1/3Tier-website/internal/logger"
	"github.com/redis/go-redis/v9"
)

// 所有缓存键都带上版本号，任何写操作都会递增版本。
// 写操作之前开始的读取即使在写完之后才回填缓存，也只会写到旧版本的键上。
const versionKey = "employees:version"

func listKey(version int64) string {
	return fmt.Sprintf("employees:v%d:list", version)
}

func employeeKey(version int64, id string) string {
	return fmt.Sprintf("employees:v%d:id:%s", version, id)
}

// CachedRepository 在任意 EmployeeRepository 前面加一层 redis 读缓存。
// redis 出错时只记录日志并直接访问下层存储，写操作成功后使现有缓存失效。
type CachedRepository struct {
	next EmployeeRepository
	rdb  *redis.Client
	ttl  time.Duration
}

func NewCachedRepository(next EmployeeRepository, rdb *redis.Client, ttl time.Duration) *CachedRepository {
	return &CachedRepository{
		next: next,
		rdb:  rdb,
		ttl:  ttl,
	}
}

func (r *CachedRepository) List(ctx context.Context) ([]*domain.Employee, error) {
	version, ok := r.version(ctx)

	var employees []*domain.Employee
	if ok && r.load(ctx, listKey(version), &employees) {
		return employees, nil
	}

	employees, err := r.next.List(ctx)
	if err != nil {
		return nil, err
	}

	if ok {
		r.store(ctx, listKey(version), employees)
	}
	return employees, nil
}

func (r *CachedRepository) GetByID(ctx context.Context, id string) (*domain.Employee, error) {
	version, ok := r.version(ctx)

	employee := &domain.Employee{}
	if ok && r.load(ctx, employeeKey(version, id), employee) {
		return employee, nil
	}

	employee, err := r.next.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if ok {
		r.store(ctx, employeeKey(version, id), employee)
	}
	return employee, nil
}

func (r *CachedRepository) Create(ctx context.Context, employee *domain.Employee) error {
	if err := r.next.Create(ctx, employee); err != nil {
		return err
	}

	r.invalidate(ctx)
	return nil
}

func (r *CachedRepository) Update(ctx context.Context, employee *domain.Employee) error {
	if err := r.next.Update(ctx, employee); err != nil {
		return err
	}

	r.invalidate(ctx)
	return nil
}

func (r *CachedRepository) Delete(ctx context.Context, id string) error {
	if err := r.next.Delete(ctx, id); err != nil {
		return err
	}

	r.invalidate(ctx)
	return nil
}

func (r *CachedRepository) Ping(ctx context.Context) error {
	return r.next.Ping(ctx)
}

func (r *CachedRepository) load(ctx context.Context, key string, dst any) bool {
	data, err := r.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logger.FromContext(ctx).Warn().Err(err).Str("key", key).Msg("读取缓存失败")
		}
		return false
	}

	if err := json.Unmarshal(data, dst); err != nil {
		logger.FromContext(ctx).Warn().Err(err).Str("key", key).Msg("缓存内容无法解析")
		return false
	}
	return true
}

func (r *CachedRepository) store(ctx context.Context, key string, value any) {
	data, err := json.Marshal(value)
	if err != nil {
		logger.FromContext(ctx).Warn().Err(err).Str("key", key).Msg("序列化缓存失败")
		return
	}

	if err := r.rdb.Set(ctx, key, data, r.ttl).Err(); err != nil {
		logger.FromContext(ctx).Warn().Err(err).Str("key", key).Msg("写入缓存失败")
	}
}

// version 返回当前的缓存版本，读取失败时返回 false，本次请求不使用缓存
func (r *CachedRepository) version(ctx context.Context) (int64, bool) {
	version, err := r.rdb.Get(ctx, versionKey).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		logger.FromContext(ctx).Warn().Err(err).Msg("读取缓存版本失败")
		return 0, false
	}
	return version, true
}

// invalidate 递增版本号，旧版本的键等待 TTL 过期
func (r *CachedRepository) invalidate(ctx context.Context) {
	if err := r.rdb.Incr(ctx, versionKey).Err(); err != nil {
		logger.FromContext(ctx).Warn().Err(err).Msg("清除缓存失败")
	}
}
