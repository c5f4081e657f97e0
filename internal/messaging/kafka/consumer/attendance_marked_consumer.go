package consumer

import (
	"context"
	"encoding/json"
	"time"

	"github.com/kajugadaniels/eps-attendify-api/internal/events"

	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const presentCounterTTL = 48 * time.Hour

// ConsumeAttendanceMarked keeps the per-department daily present counter in
// redis from attendance-marked events.
func ConsumeAttendanceMarked(
	ctx context.Context,
	reader *kafkago.Reader,
	rdb *redis.Client,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.attendance_marked")
	log.Info("attendance marked consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("attendance marked consumer stopped")
				return
			}
			log.Error("fetch attendance marked message failed", zap.Error(err))
			continue
		}

		var event events.AttendanceMarkedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode attendance_marked event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		key := events.PresentCounterKey(event.DepartmentID, event.Date)
		if err := rdb.Incr(ctx, key).Err(); err != nil {
			log.Error("increment present counter failed",
				zap.String("key", key),
				zap.Error(err),
			)
			continue
		}
		_ = rdb.Expire(ctx, key, presentCounterTTL).Err()

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit attendance marked message failed", zap.Error(err))
			continue
		}

		log.Info("present counter updated",
			zap.String("attendance_id", event.AttendanceID),
			zap.String("department_id", event.DepartmentID),
			zap.String("date", event.Date),
		)
	}
}
