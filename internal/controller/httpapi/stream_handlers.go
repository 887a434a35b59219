package httpapi

import (
	"bufio"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

// keepAliveInterval период SSE-комментариев, не дающих прокси закрыть поток
const keepAliveInterval = 25 * time.Second

// StreamChanges отдаёт фид изменений расписаний как Server-Sent Events.
// Каждое событие несёт id затронутого расписания; клиент в ответ
// перечитывает слоты открытого представления.
func (h *Handler) StreamChanges(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")

	subID, events := h.Feed.Subscribe()
	logger := h.Logger.With(zap.Int("subscriber", subID))
	logger.Info("SSE subscriber connected")

	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		defer func() {
			h.Feed.Unsubscribe(subID)
			logger.Info("SSE subscriber disconnected")
		}()

		keepAlive := time.NewTicker(keepAliveInterval)
		defer keepAlive.Stop()

		for {
			select {
			case scheduleID, ok := <-events:
				if !ok {
					return
				}
				fmt.Fprintf(w, "event: schedule_changed\ndata: %s\n\n", scheduleID)
			case <-keepAlive.C:
				fmt.Fprint(w, ": keep-alive\n\n")
			}

			if err := w.Flush(); err != nil {
				// Клиент закрыл соединение
				return
			}
		}
	}))

	return nil
}
