package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

// runLoop запускает игровой цикл в горутине. Тикер задает темп,
// но в сессию передается реально прошедшее время, поэтому просадка
// тика не замедляет игровые часы.
func (a *App) runLoop(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(a.config.TickInterval)
		defer ticker.Stop()

		last := time.Now()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				a.session.Tick(now.Sub(last))
				last = now
			}
		}
	}()
}

// waitForSignal блокируется до получения сигнала завершения
func (a *App) waitForSignal() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
}

// shutdown выполняет graceful shutdown приложения
func (a *App) shutdown(cancel context.CancelFunc) {
	a.logger.Info("shutting down...")

	// Останавливаем игровой цикл
	cancel()

	// Сбрасываем состояние в хранилище и закрываем его
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := a.session.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("session shutdown error", zap.Error(err))
	}

	// Закрываем соединение с БД, если сохранения лежат в postgres
	if a.db != nil {
		a.db.Close()
		a.logger.Info("database connection closed")
	}

	a.logger.Info("stopped gracefully")
}
