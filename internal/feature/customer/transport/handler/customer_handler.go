// Package handler はcustomerフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"cms_backend/internal/api"
	"cms_backend/internal/feature/customer/domain/entity"
	"cms_backend/internal/feature/customer/usecase"
)

// CustomerUsecase は顧客レコードの参照・更新操作を定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type CustomerUsecase interface {
	Search(ctx context.Context, term string) ([]entity.Customer, error)
	Get(ctx context.Context, id uint) (*entity.Customer, error)
	UpdateProfile(ctx context.Context, email, firstName, lastName, phone string) error
	Delete(ctx context.Context, id uint) error
	Stats(ctx context.Context) (*usecase.DashboardStats, error)
	ExportCSV(ctx context.Context, w io.Writer) error
}

// CustomerHandler は顧客データのHTTPリクエストを処理します。
// これらのルートはセッションゲートのミドルウェア越しにのみ到達します。
type CustomerHandler struct {
	customers CustomerUsecase
}

// NewCustomerHandler はCustomerHandlerの新しいインスタンスを生成します。
func NewCustomerHandler(customers CustomerUsecase) *CustomerHandler {
	return &CustomerHandler{customers: customers}
}

// List は顧客一覧を返します。クエリパラメータ q があれば部分一致検索します。
// 並び順はどちらも作成日時の新しい順です。
func (h *CustomerHandler) List(c *gin.Context) {
	customers, err := h.customers.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		slog.Error("failed to list customers", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal server error"})
		return
	}
	out := make([]api.CustomerResponse, 0, len(customers))
	for i := range customers {
		out = append(out, toCustomerResponse(&customers[i]))
	}
	c.JSON(http.StatusOK, out)
}

// Get はIDで顧客を返します。
func (h *CustomerHandler) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid customer id"})
		return
	}
	customer, err := h.customers.Get(c.Request.Context(), uint(id))
	if err != nil {
		if errors.Is(err, usecase.ErrCustomerNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "customer not found"})
			return
		}
		slog.Error("failed to get customer", "error", err, "customer_id", id)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal server error"})
		return
	}
	c.JSON(http.StatusOK, toCustomerResponse(customer))
}

// UpdateProfile はメールアドレス以外のプロフィール項目を更新します。
// メールアドレスは行の特定にのみ使い、変更はできません。
func (h *CustomerHandler) UpdateProfile(c *gin.Context) {
	var req api.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}
	err := h.customers.UpdateProfile(c.Request.Context(), req.Email, req.FirstName, req.LastName, req.Phone)
	if err != nil {
		if errors.Is(err, usecase.ErrMissingProfileFields) {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
			return
		}
		if errors.Is(err, usecase.ErrCustomerNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "customer not found"})
			return
		}
		slog.Error("failed to update profile", "error", err, "email", req.Email)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal server error"})
		return
	}
	c.JSON(http.StatusOK, api.MessageResponse{Message: "profile updated"})
}

// Delete はIDで顧客を削除します。
func (h *CustomerHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid customer id"})
		return
	}
	if err := h.customers.Delete(c.Request.Context(), uint(id)); err != nil {
		if errors.Is(err, usecase.ErrCustomerNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "customer not found"})
			return
		}
		slog.Error("failed to delete customer", "error", err, "customer_id", id)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal server error"})
		return
	}
	slog.Info("customer deleted", "customer_id", id)
	c.JSON(http.StatusOK, api.MessageResponse{Message: "customer deleted"})
}

// Stats はダッシュボード用の集計値を返します。
func (h *CustomerHandler) Stats(c *gin.Context) {
	stats, err := h.customers.Stats(c.Request.Context())
	if err != nil {
		slog.Error("failed to load dashboard stats", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal server error"})
		return
	}
	resp := api.StatsResponse{
		TotalCustomers: stats.TotalCustomers,
		RecentSignups:  stats.RecentSignups,
		TodaySignups:   stats.TodaySignups,
		RecentActivity: make([]api.CustomerResponse, 0, len(stats.RecentActivity)),
	}
	for i := range stats.RecentActivity {
		resp.RecentActivity = append(resp.RecentActivity, toCustomerResponse(&stats.RecentActivity[i]))
	}
	c.JSON(http.StatusOK, resp)
}

// Export は全顧客をCSVとしてダウンロードさせます。列構成と並び順は一覧と同じです。
func (h *CustomerHandler) Export(c *gin.Context) {
	filename := fmt.Sprintf("users_export_%s.csv", time.Now().Format("20060102_150405"))
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)

	if err := h.customers.ExportCSV(c.Request.Context(), c.Writer); err != nil {
		// ヘッダ送信後はステータスを変えられないため、ログに残すのみ
		slog.Error("failed to export customers", "error", err)
	}
}

func toCustomerResponse(cu *entity.Customer) api.CustomerResponse {
	return api.CustomerResponse{
		ID:        cu.ID,
		FirstName: cu.FirstName,
		LastName:  cu.LastName,
		Email:     cu.Email,
		Phone:     cu.Phone,
		CreatedAt: cu.CreatedAt,
	}
}
