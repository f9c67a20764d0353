package task

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"retail_orders_v1_202608/internal/repository"
)

// 清理阈值
const (
	confirmTokenTTL  = 48 * time.Hour      // 未使用的确认令牌保留时长
	failedImportTTL  = 30 * 24 * time.Hour // 失败导入记录保留时长
	cleanupJobExpiry = 5 * time.Minute     // 单次清理的超时
)

// CleanupTask 周期性清理过期确认令牌与失败导入记录
type CleanupTask struct {
	tokens  repository.ConfirmTokenRepository
	imports repository.PriceListImportRepository
	cron    *cron.Cron
}

// NewCleanupTask 创建清理任务
func NewCleanupTask(tokens repository.ConfirmTokenRepository, imports repository.PriceListImportRepository) *CleanupTask {
	return &CleanupTask{
		tokens:  tokens,
		imports: imports,
		cron:    cron.New(cron.WithSeconds()),
	}
}

// Start 启动定时任务，每小时整点跑一次
func (t *CleanupTask) Start() {
	_, err := t.cron.AddFunc("0 0 * * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), cleanupJobExpiry)
		defer cancel()
		t.run(ctx)
	})
	if err != nil {
		log.Fatalf("无法启动清理定时任务: %v", err)
	}

	t.cron.Start()
	log.Println("清理任务已启动 (每小时一次)")
}

// Stop 停止定时任务
func (t *CleanupTask) Stop() {
	t.cron.Stop()
}

func (t *CleanupTask) run(ctx context.Context) {
	if n, err := t.tokens.DeleteCreatedBefore(ctx, time.Now().Add(-confirmTokenTTL)); err != nil {
		log.Printf("[Task] 清理确认令牌失败: %v", err)
	} else if n > 0 {
		log.Printf("[Task] 清理过期确认令牌 %d 条", n)
	}

	if n, err := t.imports.DeleteFailedBefore(ctx, time.Now().Add(-failedImportTTL)); err != nil {
		log.Printf("[Task] 清理导入记录失败: %v", err)
	} else if n > 0 {
		log.Printf("[Task] 清理失败导入记录 %d 条", n)
	}
}
