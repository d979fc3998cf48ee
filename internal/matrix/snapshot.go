package matrix

import (
	"sync"
	"sync/atomic"
	"time"

	"attack-coverage/internal/models"
)

// Snapshot — последний удачный ответ /api/matrix плюс ошибка последней
// попытки. Его греет фоновый рефрешер; страница матрицы читает отсюда,
// чтобы не ходить на бэкенд на каждый запрос.
type Snapshot struct {
	mu      sync.RWMutex
	started uint64 // счётчик начатых загрузок
	applied uint64 // поколение применённого результата

	data      *models.MatrixResponse
	lastErr   error
	fetchedAt time.Time
}

// Begin выдаёт поколение новой загрузки.
func (s *Snapshot) Begin() uint64 {
	return atomic.AddUint64(&s.started, 1)
}

// Commit применяет результат загрузки. Результат загрузки, начатой
// раньше уже применённой, отбрасывается: поздно пришедший ответ не
// должен затирать более свежий.
func (s *Snapshot) Commit(gen uint64, data *models.MatrixResponse, err error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen <= s.applied {
		return false
	}
	s.applied = gen
	s.lastErr = err
	if err == nil {
		s.data = data
		s.fetchedAt = time.Now()
	}
	return true
}

// Get возвращает последний удачный ответ (может быть nil, если бэкенд
// ещё ни разу не ответил), время его получения и ошибку последней
// попытки.
func (s *Snapshot) Get() (*models.MatrixResponse, time.Time, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data, s.fetchedAt, s.lastErr
}
