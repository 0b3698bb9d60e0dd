package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"cms_backend/internal/feature/customer/domain/entity"
	"cms_backend/internal/feature/customer/usecase"
)

// CachingCustomerRepository は CustomerRepository のダッシュボード集計読み取り
// （件数・直近登録）を Redis で読み取りキャッシュするデコレータです。
// その他の操作は内部リポジトリへ素通しし、件数に影響する書き込みで
// キャッシュを無効化します。Redis は常にベストエフォートで、失敗しても
// 本処理は成功させます。
type CachingCustomerRepository struct {
	inner     usecase.CustomerRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

// CachingCustomerRepository が CustomerRepository を実装していることをコンパイル時に検証します。
var _ usecase.CustomerRepository = (*CachingCustomerRepository)(nil)

// NewCachingCustomerRepository は CustomerRepository を Redis キャッシュでデコレートします。
// ttl<=0 の場合は 5分にフォールバックします。namespace が空なら "customers" を使います。
func NewCachingCustomerRepository(rdb *redis.Client, ttl time.Duration, inner usecase.CustomerRepository, namespace string) *CachingCustomerRepository {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if namespace == "" {
		namespace = "customers"
	}
	return &CachingCustomerRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// Create は内部リポジトリへ書き込んだあと、集計キャッシュを無効化します。
func (c *CachingCustomerRepository) Create(ctx context.Context, cu *entity.Customer) error {
	if err := c.inner.Create(ctx, cu); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

// AuthenticateByHash は内部リポジトリへ素通しします。
func (c *CachingCustomerRepository) AuthenticateByHash(ctx context.Context, email, passwordHash string) (*entity.Customer, error) {
	return c.inner.AuthenticateByHash(ctx, email, passwordHash)
}

// UpdatePasswordHash はパスワードのみの更新で集計に影響しないため素通しします。
func (c *CachingCustomerRepository) UpdatePasswordHash(ctx context.Context, email, newHash string) (bool, error) {
	return c.inner.UpdatePasswordHash(ctx, email, newHash)
}

// UpdateProfile は内部リポジトリを更新したあと、直近登録の表示名が変わる
// 可能性があるため集計キャッシュを無効化します。
func (c *CachingCustomerRepository) UpdateProfile(ctx context.Context, email, firstName, lastName, phone string) (bool, error) {
	updated, err := c.inner.UpdateProfile(ctx, email, firstName, lastName, phone)
	if err == nil && updated {
		c.invalidate(ctx)
	}
	return updated, err
}

// GetByEmail は内部リポジトリへ素通しします。
func (c *CachingCustomerRepository) GetByEmail(ctx context.Context, email string) (*entity.Customer, error) {
	return c.inner.GetByEmail(ctx, email)
}

// GetByID は内部リポジトリへ素通しします。
func (c *CachingCustomerRepository) GetByID(ctx context.Context, id uint) (*entity.Customer, error) {
	return c.inner.GetByID(ctx, id)
}

// EmailExists は内部リポジトリへ素通しします。
func (c *CachingCustomerRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	return c.inner.EmailExists(ctx, email)
}

// ListAll は内部リポジトリへ素通しします。一覧はキャッシュしません。
func (c *CachingCustomerRepository) ListAll(ctx context.Context) ([]entity.Customer, error) {
	return c.inner.ListAll(ctx)
}

// Search は内部リポジトリへ素通しします。
func (c *CachingCustomerRepository) Search(ctx context.Context, term string) ([]entity.Customer, error) {
	return c.inner.Search(ctx, term)
}

// Count は顧客総数をキャッシュ経由で返します。
func (c *CachingCustomerRepository) Count(ctx context.Context) (int64, error) {
	return c.cachedInt64(ctx, c.key("count"), c.ttl, func() (int64, error) {
		return c.inner.Count(ctx)
	})
}

// CountCreatedWithin は期間別の登録数をキャッシュ経由で返します。
func (c *CachingCustomerRepository) CountCreatedWithin(ctx context.Context, days int) (int64, error) {
	return c.cachedInt64(ctx, c.key(fmt.Sprintf("count_within:%d", days)), c.ttl, func() (int64, error) {
		return c.inner.CountCreatedWithin(ctx, days)
	})
}

// CountCreatedToday は本日の登録数をキャッシュ経由で返します。
// 日付が変わると値の意味が変わるため、TTLはローカルの翌0時を超えません。
func (c *CachingCustomerRepository) CountCreatedToday(ctx context.Context) (int64, error) {
	ttl := c.ttl
	if until := TimeUntilMidnight(); until < ttl {
		ttl = until
	}
	return c.cachedInt64(ctx, c.key("count_today"), ttl, func() (int64, error) {
		return c.inner.CountCreatedToday(ctx)
	})
}

// RecentActivity は直近登録の一覧をキャッシュ経由で返します。
func (c *CachingCustomerRepository) RecentActivity(ctx context.Context, limit int) ([]entity.Customer, error) {
	// Redis 未設定なら素通し
	if c.rdb == nil {
		return c.inner.RecentActivity(ctx, limit)
	}

	key := c.key(fmt.Sprintf("recent:%d", limit))

	// 1) キャッシュヒット確認
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out []entity.Customer
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		// 壊れていたら落とす
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) DB へフォールバック
	out, err := c.inner.RecentActivity(ctx, limit)
	if err != nil {
		return nil, err
	}

	// 3) キャッシュ保存（ベストエフォート）
	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}

	return out, nil
}

// Delete は内部リポジトリから削除したあと、集計キャッシュを無効化します。
func (c *CachingCustomerRepository) Delete(ctx context.Context, id uint) (bool, error) {
	deleted, err := c.inner.Delete(ctx, id)
	if err == nil && deleted {
		c.invalidate(ctx)
	}
	return deleted, err
}

// ---- 補助 ----

func (c *CachingCustomerRepository) key(suffix string) string {
	return c.namespace + ":" + suffix
}

// cachedInt64 は整数値の読み取りキャッシュです。Redis 未設定・障害時は
// フェッチ関数へ素通しします。
func (c *CachingCustomerRepository) cachedInt64(ctx context.Context, key string, ttl time.Duration, fetch func() (int64, error)) (int64, error) {
	if c.rdb == nil {
		return fetch()
	}

	if s, err := c.rdb.Get(ctx, key).Result(); err == nil {
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return n, nil
		}
		_ = c.rdb.Del(ctx, key).Err()
	}

	n, err := fetch()
	if err != nil {
		return 0, err
	}

	_ = c.rdb.Set(ctx, key, strconv.FormatInt(n, 10), ttl).Err()
	return n, nil
}

// invalidate は名前空間配下の集計キーをすべて削除します。失敗しても本処理は成功させます。
func (c *CachingCustomerRepository) invalidate(ctx context.Context) {
	if c.rdb == nil {
		return
	}
	pattern := c.namespace + ":*"
	var cursor uint64
	for {
		keys, cur, err := c.rdb.Scan(ctx, cursor, pattern, 200).Result()
		if err != nil {
			return
		}
		if len(keys) > 0 {
			if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
				return
			}
		}
		cursor = cur
		if cursor == 0 {
			break
		}
	}
}
