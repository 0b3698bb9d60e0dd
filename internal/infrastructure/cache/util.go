package cache

import (
	"time"
)

// TimeUntilMidnight はローカル時刻の翌0時までの期間を返します。
func TimeUntilMidnight() time.Duration {
	now := time.Now()

	// 翌日の0時を計算
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).Add(24 * time.Hour)

	return midnight.Sub(now)
}
