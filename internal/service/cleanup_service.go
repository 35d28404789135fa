package service

import (
	"context"
	"log"
	"time"

	"github.com/yourusername/quiz-miniapp-api/internal/domain/repository"
)

// CleanupService периодически закрывает брошенные сессии.
// Сессия без активности дольше maxIdleAge получает finished_at и перестает
// принимать ответы; ее накопленный счет остается как есть.
type CleanupService struct {
	sessionRepo repository.SessionRepository
	interval    time.Duration
	maxIdleAge  time.Duration
}

// NewCleanupService создает новый сервис очистки сессий
func NewCleanupService(sessionRepo repository.SessionRepository, interval, maxIdleAge time.Duration) *CleanupService {
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	if maxIdleAge <= 0 {
		maxIdleAge = 2 * time.Hour
	}
	return &CleanupService{
		sessionRepo: sessionRepo,
		interval:    interval,
		maxIdleAge:  maxIdleAge,
	}
}

// Run запускает цикл очистки; блокируется до отмены контекста
func (s *CleanupService) Run(ctx context.Context) {
	log.Printf("[CleanupService] Запуск: интервал %s, максимальный простой %s", s.interval, s.maxIdleAge)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("[CleanupService] Остановка по сигналу контекста")
			return
		case <-ticker.C:
			s.runOnce()
		}
	}
}

func (s *CleanupService) runOnce() {
	closed, err := s.sessionRepo.FinishStale(time.Now().Add(-s.maxIdleAge))
	if err != nil {
		log.Printf("[CleanupService] Ошибка при закрытии устаревших сессий: %v", err)
		return
	}
	if closed > 0 {
		log.Printf("[CleanupService] Закрыто устаревших сессий: %d", closed)
	}
}
