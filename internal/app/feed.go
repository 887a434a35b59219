package app

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// feedChannel имя канала PostgreSQL для уведомлений об изменениях расписаний
const feedChannel = "schedule_changes"

// ChangeFeed слушает LISTEN/NOTIFY и рассылает уведомления подписчикам.
// Контракт подписчика прост: при любом уведомлении перечитать список слотов
// текущего представления. Никаких инкрементальных обновлений не передаётся,
// payload содержит только id затронутого расписания.
type ChangeFeed struct {
	pool   *pgxpool.Pool
	logger *zap.Logger

	mu     sync.Mutex
	subs   map[int]chan string
	nextID int

	stopChan chan struct{}
}

// NewChangeFeed создаёт новый фид изменений
func NewChangeFeed(pool *pgxpool.Pool, logger *zap.Logger) *ChangeFeed {
	return &ChangeFeed{
		pool:     pool,
		logger:   logger,
		subs:     make(map[int]chan string),
		stopChan: make(chan struct{}),
	}
}

// Start запускает прослушивание канала в фоне
func (f *ChangeFeed) Start(ctx context.Context) {
	f.logger.Info("Starting schedule change feed")
	go f.listenLoop(ctx)
}

// Stop останавливает прослушивание
func (f *ChangeFeed) Stop() {
	f.logger.Info("Stopping schedule change feed")
	close(f.stopChan)
}

// Subscribe регистрирует подписчика и возвращает его id и канал уведомлений.
// Канал буферизован: медленный подписчик теряет промежуточные уведомления,
// что допустимо, так как реакция на любое из них одинакова - refetch.
func (f *ChangeFeed) Subscribe() (int, <-chan string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.nextID++
	id := f.nextID
	ch := make(chan string, 8)
	f.subs[id] = ch
	return id, ch
}

// Unsubscribe снимает подписку
func (f *ChangeFeed) Unsubscribe(id int) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if ch, ok := f.subs[id]; ok {
		close(ch)
		delete(f.subs, id)
	}
}

// Publish отправляет уведомление об изменении расписания через pg_notify
func (f *ChangeFeed) Publish(ctx context.Context, scheduleID uuid.UUID) {
	_, err := f.pool.Exec(ctx, "SELECT pg_notify($1, $2)", feedChannel, scheduleID.String())
	if err != nil {
		// Уведомление best-effort: потерянный notify не ломает запись,
		// подписчики синхронизируются при следующем refetch
		f.logger.Warn("Failed to publish schedule change", zap.Error(err))
	}
}

// listenLoop держит выделенное соединение с LISTEN и переподключается при сбоях
func (f *ChangeFeed) listenLoop(ctx context.Context) {
	for {
		select {
		case <-f.stopChan:
			return
		case <-ctx.Done():
			return
		default:
		}

		if err := f.listen(ctx); err != nil {
			f.logger.Error("Change feed connection lost, reconnecting", zap.Error(err))
		}

		select {
		case <-time.After(3 * time.Second):
		case <-f.stopChan:
			return
		case <-ctx.Done():
			return
		}
	}
}

func (f *ChangeFeed) listen(ctx context.Context) error {
	conn, err := f.pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	if _, err := conn.Exec(ctx, "LISTEN "+feedChannel); err != nil {
		return err
	}

	f.logger.Info("Change feed listening", zap.String("channel", feedChannel))

	for {
		notification, err := conn.Conn().WaitForNotification(ctx)
		if err != nil {
			return err
		}
		f.dispatch(notification.Payload)
	}
}

// dispatch рассылает payload всем подписчикам без блокировки
func (f *ChangeFeed) dispatch(payload string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, ch := range f.subs {
		select {
		case ch <- payload:
		default:
		}
	}
}
