// Package usecase は customer フィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"cms_backend/internal/feature/customer/domain/entity"
)

const (
	// recentWindowDays はダッシュボードの「最近の登録」集計期間（日数）を定義します。
	recentWindowDays = 7

	// recentActivityLimit はダッシュボードに表示する直近登録者の件数を定義します。
	recentActivityLimit = 5
)

// DashboardStats はダッシュボードに表示する集計値をまとめたものです。
type DashboardStats struct {
	TotalCustomers int64
	RecentSignups  int64 // 直近7日間の登録数
	TodaySignups   int64
	RecentActivity []entity.Customer
}

// customerUsecase は顧客レコードの参照・更新ロジックを実装します。
type customerUsecase struct {
	customers CustomerRepository
}

// NewCustomerUsecase は customerUsecase の新しいインスタンスを生成します。
func NewCustomerUsecase(customers CustomerRepository) *customerUsecase {
	return &customerUsecase{customers: customers}
}

// List は全顧客を作成日時の新しい順に返します。
func (u *customerUsecase) List(ctx context.Context) ([]entity.Customer, error) {
	return u.customers.ListAll(ctx)
}

// Search は氏名またはメールアドレスの部分一致で顧客を検索します。
// 検索語が空の場合は全件を返します。
func (u *customerUsecase) Search(ctx context.Context, term string) ([]entity.Customer, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return u.customers.ListAll(ctx)
	}
	return u.customers.Search(ctx, term)
}

// Get はIDで顧客を取得します。
func (u *customerUsecase) Get(ctx context.Context, id uint) (*entity.Customer, error) {
	return u.customers.GetByID(ctx, id)
}

// UpdateProfile はメールアドレス以外のプロフィール項目を更新します。
// メールアドレスは作成後不変のため更新対象に含めません。
func (u *customerUsecase) UpdateProfile(ctx context.Context, email, firstName, lastName, phone string) error {
	if firstName == "" || lastName == "" || phone == "" {
		return ErrMissingProfileFields
	}
	updated, err := u.customers.UpdateProfile(ctx, email, firstName, lastName, phone)
	if err != nil {
		return err
	}
	if !updated {
		return ErrCustomerNotFound
	}
	return nil
}

// Delete はIDで顧客を削除します。該当行が存在しない場合は ErrCustomerNotFound を返します。
func (u *customerUsecase) Delete(ctx context.Context, id uint) error {
	deleted, err := u.customers.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrCustomerNotFound
	}
	return nil
}

// Stats はダッシュボード用の集計値を取得します。
func (u *customerUsecase) Stats(ctx context.Context) (*DashboardStats, error) {
	total, err := u.customers.Count(ctx)
	if err != nil {
		return nil, err
	}
	recent, err := u.customers.CountCreatedWithin(ctx, recentWindowDays)
	if err != nil {
		return nil, err
	}
	today, err := u.customers.CountCreatedToday(ctx)
	if err != nil {
		return nil, err
	}
	activity, err := u.customers.RecentActivity(ctx, recentActivityLimit)
	if err != nil {
		return nil, err
	}
	return &DashboardStats{
		TotalCustomers: total,
		RecentSignups:  recent,
		TodaySignups:   today,
		RecentActivity: activity,
	}, nil
}

// ExportCSV は全顧客を ListAll の順序のまま CSV として書き出します。
// 列構成: id, first_name, last_name, email, phone, created_at
func (u *customerUsecase) ExportCSV(ctx context.Context, w io.Writer) error {
	customers, err := u.customers.ListAll(ctx)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"id", "first_name", "last_name", "email", "phone", "created_at"}); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, c := range customers {
		record := []string{
			strconv.FormatUint(uint64(c.ID), 10),
			c.FirstName,
			c.LastName,
			c.Email,
			c.Phone,
			c.CreatedAt.Format(time.RFC3339),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write csv record: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
