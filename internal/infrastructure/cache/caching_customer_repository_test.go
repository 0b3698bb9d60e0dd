package cache

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"

	"cms_backend/internal/feature/customer/domain/entity"
)

// mockCustomerRepository はテスト用のCustomerRepositoryモック実装です。
type mockCustomerRepository struct {
	createFn             func(ctx context.Context, c *entity.Customer) error
	countFn              func(ctx context.Context) (int64, error)
	countCreatedWithinFn func(ctx context.Context, days int) (int64, error)
	countCreatedTodayFn  func(ctx context.Context) (int64, error)
	recentActivityFn     func(ctx context.Context, limit int) ([]entity.Customer, error)
	deleteFn             func(ctx context.Context, id uint) (bool, error)
	updatePasswordHashFn func(ctx context.Context, email, newHash string) (bool, error)
}

func (m *mockCustomerRepository) Create(ctx context.Context, c *entity.Customer) error {
	if m.createFn != nil {
		return m.createFn(ctx, c)
	}
	return nil
}

func (m *mockCustomerRepository) AuthenticateByHash(ctx context.Context, email, passwordHash string) (*entity.Customer, error) {
	return nil, nil
}

func (m *mockCustomerRepository) UpdatePasswordHash(ctx context.Context, email, newHash string) (bool, error) {
	if m.updatePasswordHashFn != nil {
		return m.updatePasswordHashFn(ctx, email, newHash)
	}
	return true, nil
}

func (m *mockCustomerRepository) UpdateProfile(ctx context.Context, email, firstName, lastName, phone string) (bool, error) {
	return true, nil
}

func (m *mockCustomerRepository) GetByEmail(ctx context.Context, email string) (*entity.Customer, error) {
	return nil, nil
}

func (m *mockCustomerRepository) GetByID(ctx context.Context, id uint) (*entity.Customer, error) {
	return nil, nil
}

func (m *mockCustomerRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	return false, nil
}

func (m *mockCustomerRepository) ListAll(ctx context.Context) ([]entity.Customer, error) {
	return nil, nil
}

func (m *mockCustomerRepository) Search(ctx context.Context, term string) ([]entity.Customer, error) {
	return nil, nil
}

func (m *mockCustomerRepository) Count(ctx context.Context) (int64, error) {
	if m.countFn != nil {
		return m.countFn(ctx)
	}
	return 0, nil
}

func (m *mockCustomerRepository) CountCreatedWithin(ctx context.Context, days int) (int64, error) {
	if m.countCreatedWithinFn != nil {
		return m.countCreatedWithinFn(ctx, days)
	}
	return 0, nil
}

func (m *mockCustomerRepository) CountCreatedToday(ctx context.Context) (int64, error) {
	if m.countCreatedTodayFn != nil {
		return m.countCreatedTodayFn(ctx)
	}
	return 0, nil
}

func (m *mockCustomerRepository) RecentActivity(ctx context.Context, limit int) ([]entity.Customer, error) {
	if m.recentActivityFn != nil {
		return m.recentActivityFn(ctx, limit)
	}
	return nil, nil
}

func (m *mockCustomerRepository) Delete(ctx context.Context, id uint) (bool, error) {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return true, nil
}

// TestNewCachingCustomerRepository_Defaults はデフォルト値（TTLとnamespace）が正しく設定されることを検証します。
func TestNewCachingCustomerRepository_Defaults(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name              string
		ttl               time.Duration
		namespace         string
		expectedTTL       time.Duration
		expectedNamespace string
	}{
		{
			name:              "default values when zero/empty",
			ttl:               0,
			namespace:         "",
			expectedTTL:       5 * time.Minute,
			expectedNamespace: "customers",
		},
		{
			name:              "negative ttl uses default",
			ttl:               -1 * time.Minute,
			namespace:         "",
			expectedTTL:       5 * time.Minute,
			expectedNamespace: "customers",
		},
		{
			name:              "custom values preserved",
			ttl:               10 * time.Minute,
			namespace:         "custom",
			expectedTTL:       10 * time.Minute,
			expectedNamespace: "custom",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			repo := NewCachingCustomerRepository(nil, tt.ttl, &mockCustomerRepository{}, tt.namespace)

			if repo.ttl != tt.expectedTTL {
				t.Errorf("expected TTL %v, got %v", tt.expectedTTL, repo.ttl)
			}
			if repo.namespace != tt.expectedNamespace {
				t.Errorf("expected namespace %q, got %q", tt.expectedNamespace, repo.namespace)
			}
		})
	}
}

// TestCachingCustomerRepository_Count_NilRedis はRedisがnilの場合にキャッシュをバイパスして内部リポジトリを直接呼び出すことを検証します。
func TestCachingCustomerRepository_Count_NilRedis(t *testing.T) {
	t.Parallel()

	inner := &mockCustomerRepository{
		countFn: func(ctx context.Context) (int64, error) {
			return 7, nil
		},
	}

	// Redis is nil - should bypass cache and call inner directly
	repo := NewCachingCustomerRepository(nil, 5*time.Minute, inner, "customers")

	count, err := repo.Count(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 7 {
		t.Errorf("expected count 7, got %d", count)
	}
}

// TestCachingCustomerRepository_Count_CacheHit はキャッシュヒット時にRedisから値を返し、内部リポジトリを呼ばないことを検証します。
func TestCachingCustomerRepository_Count_CacheHit(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	mock.ExpectGet("customers:count").SetVal("5")

	innerCalled := false
	inner := &mockCustomerRepository{
		countFn: func(ctx context.Context) (int64, error) {
			innerCalled = true
			return 0, nil
		},
	}

	repo := NewCachingCustomerRepository(rdb, 5*time.Minute, inner, "customers")
	count, err := repo.Count(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if innerCalled {
		t.Error("inner repository should not be called on cache hit")
	}
	if count != 5 {
		t.Errorf("expected count 5, got %d", count)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled mock expectations: %v", err)
	}
}

// TestCachingCustomerRepository_Count_CacheMiss はキャッシュミス時にDBから値を取得し、キャッシュに保存することを検証します。
func TestCachingCustomerRepository_Count_CacheMiss(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	// Cache miss
	mock.ExpectGet("customers:count").RedisNil()
	// Set cache after fetching from inner
	mock.ExpectSet("customers:count", "7", 5*time.Minute).SetVal("OK")

	inner := &mockCustomerRepository{
		countFn: func(ctx context.Context) (int64, error) {
			return 7, nil
		},
	}

	repo := NewCachingCustomerRepository(rdb, 5*time.Minute, inner, "customers")
	count, err := repo.Count(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 7 {
		t.Errorf("expected count 7, got %d", count)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled mock expectations: %v", err)
	}
}

// TestCachingCustomerRepository_Count_CorruptedCache は数値として読めないキャッシュを削除し、DBにフォールバックすることを検証します。
func TestCachingCustomerRepository_Count_CorruptedCache(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	// Return a non-numeric value from cache
	mock.ExpectGet("customers:count").SetVal("not a number")
	// Delete corrupted cache
	mock.ExpectDel("customers:count").SetVal(1)
	// Set new cache after fetching from inner
	mock.ExpectSet("customers:count", "3", 5*time.Minute).SetVal("OK")

	inner := &mockCustomerRepository{
		countFn: func(ctx context.Context) (int64, error) {
			return 3, nil
		},
	}

	repo := NewCachingCustomerRepository(rdb, 5*time.Minute, inner, "customers")
	count, err := repo.Count(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 3 {
		t.Errorf("expected count 3, got %d", count)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled mock expectations: %v", err)
	}
}

// TestCachingCustomerRepository_Count_InnerError は内部リポジトリのエラーが伝播されることを検証します。
func TestCachingCustomerRepository_Count_InnerError(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	expectedErr := errors.New("database error")

	mock.ExpectGet("customers:count").RedisNil()

	inner := &mockCustomerRepository{
		countFn: func(ctx context.Context) (int64, error) {
			return 0, expectedErr
		},
	}

	repo := NewCachingCustomerRepository(rdb, 5*time.Minute, inner, "customers")
	_, err := repo.Count(context.Background())

	if !errors.Is(err, expectedErr) {
		t.Errorf("expected error %v, got %v", expectedErr, err)
	}
}

// TestCachingCustomerRepository_CountCreatedWithin_Key は期間別キーでキャッシュされることを検証します。
func TestCachingCustomerRepository_CountCreatedWithin_Key(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	mock.ExpectGet("customers:count_within:7").SetVal("2")

	repo := NewCachingCustomerRepository(rdb, 5*time.Minute, &mockCustomerRepository{}, "customers")
	count, err := repo.CountCreatedWithin(context.Background(), 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 2 {
		t.Errorf("expected count 2, got %d", count)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled mock expectations: %v", err)
	}
}

// TestCachingCustomerRepository_CountCreatedToday_NilRedis はRedisがnilの場合に当日件数が素通しされることを検証します。
func TestCachingCustomerRepository_CountCreatedToday_NilRedis(t *testing.T) {
	t.Parallel()

	inner := &mockCustomerRepository{
		countCreatedTodayFn: func(ctx context.Context) (int64, error) {
			return 1, nil
		},
	}

	repo := NewCachingCustomerRepository(nil, 5*time.Minute, inner, "customers")
	count, err := repo.CountCreatedToday(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 1 {
		t.Errorf("expected count 1, got %d", count)
	}
}

// TestCachingCustomerRepository_RecentActivity_CacheHit はキャッシュヒット時にRedisから一覧を返すことを検証します。
func TestCachingCustomerRepository_RecentActivity_CacheHit(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	cached := []entity.Customer{
		{ID: 1, FirstName: "Jane", LastName: "Doe", Email: "jane@example.com"},
	}
	cachedJSON, _ := json.Marshal(cached)

	mock.ExpectGet("customers:recent:5").SetVal(string(cachedJSON))

	innerCalled := false
	inner := &mockCustomerRepository{
		recentActivityFn: func(ctx context.Context, limit int) ([]entity.Customer, error) {
			innerCalled = true
			return nil, nil
		},
	}

	repo := NewCachingCustomerRepository(rdb, 5*time.Minute, inner, "customers")
	customers, err := repo.RecentActivity(context.Background(), 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if innerCalled {
		t.Error("inner repository should not be called on cache hit")
	}
	if len(customers) != 1 || customers[0].Email != "jane@example.com" {
		t.Errorf("unexpected result: %+v", customers)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled mock expectations: %v", err)
	}
}

// TestCachingCustomerRepository_RecentActivity_CacheMiss はキャッシュミス時にDBから取得し、キャッシュに保存することを検証します。
func TestCachingCustomerRepository_RecentActivity_CacheMiss(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	expected := []entity.Customer{
		{ID: 1, FirstName: "Jane", LastName: "Doe", Email: "jane@example.com"},
	}
	expectedJSON, _ := json.Marshal(expected)

	mock.ExpectGet("customers:recent:5").RedisNil()
	mock.ExpectSet("customers:recent:5", expectedJSON, 5*time.Minute).SetVal("OK")

	inner := &mockCustomerRepository{
		recentActivityFn: func(ctx context.Context, limit int) ([]entity.Customer, error) {
			return expected, nil
		},
	}

	repo := NewCachingCustomerRepository(rdb, 5*time.Minute, inner, "customers")
	customers, err := repo.RecentActivity(context.Background(), 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(customers) != 1 {
		t.Errorf("expected 1 customer, got %d", len(customers))
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled mock expectations: %v", err)
	}
}

// TestCachingCustomerRepository_Create_CacheInvalidation はCreate後に集計キャッシュが無効化されることを検証します。
func TestCachingCustomerRepository_Create_CacheInvalidation(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	// Expect cache invalidation via SCAN and DEL
	mock.ExpectScan(0, "customers:*", 200).SetVal([]string{"customers:count", "customers:count_today"}, 0)
	mock.ExpectDel("customers:count", "customers:count_today").SetVal(2)

	repo := NewCachingCustomerRepository(rdb, 5*time.Minute, &mockCustomerRepository{}, "customers")
	err := repo.Create(context.Background(), &entity.Customer{Email: "jane@example.com"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled mock expectations: %v", err)
	}
}

// TestCachingCustomerRepository_Create_InnerError は内部リポジトリのエラー時にキャッシュ無効化を行わないことを検証します。
func TestCachingCustomerRepository_Create_InnerError(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	expectedErr := errors.New("duplicate email")
	inner := &mockCustomerRepository{
		createFn: func(ctx context.Context, c *entity.Customer) error {
			return expectedErr
		},
	}

	// No SCAN/DEL expectations: a failed write must leave the cache alone
	repo := NewCachingCustomerRepository(rdb, 5*time.Minute, inner, "customers")
	err := repo.Create(context.Background(), &entity.Customer{Email: "jane@example.com"})

	if !errors.Is(err, expectedErr) {
		t.Errorf("expected error %v, got %v", expectedErr, err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled mock expectations: %v", err)
	}
}

// TestCachingCustomerRepository_Delete_NoInvalidationWhenMissing は削除対象が存在しない場合にキャッシュ無効化を行わないことを検証します。
func TestCachingCustomerRepository_Delete_NoInvalidationWhenMissing(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	inner := &mockCustomerRepository{
		deleteFn: func(ctx context.Context, id uint) (bool, error) {
			return false, nil
		},
	}

	repo := NewCachingCustomerRepository(rdb, 5*time.Minute, inner, "customers")
	deleted, err := repo.Delete(context.Background(), 999)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if deleted {
		t.Error("expected no deletion")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled mock expectations: %v", err)
	}
}

// TestCachingCustomerRepository_UpdatePasswordHash_Passthrough はパスワード更新がキャッシュ操作なしで素通しされることを検証します。
func TestCachingCustomerRepository_UpdatePasswordHash_Passthrough(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	innerCalled := false
	inner := &mockCustomerRepository{
		updatePasswordHashFn: func(ctx context.Context, email, newHash string) (bool, error) {
			innerCalled = true
			return true, nil
		},
	}

	repo := NewCachingCustomerRepository(rdb, 5*time.Minute, inner, "customers")
	updated, err := repo.UpdatePasswordHash(context.Background(), "jane@example.com", "new_hash")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !updated || !innerCalled {
		t.Error("expected passthrough to inner repository")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled mock expectations: %v", err)
	}
}
