// Package comments — сервис комментариев одной сущности (техники или
// правила): загрузка, CRUD, клиентская пагинация и фильтрация.
// Экземпляр живёт, пока открыта карточка сущности; Destroy обязателен
// и идемпотентен.
package comments

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"attack-coverage/internal/api"
	"attack-coverage/internal/models"

	"go.uber.org/zap"
)

// Backend — нужный сервису срез клиента API.
type Backend interface {
	ListComments(ctx context.Context, entityType, entityID string) ([]models.Comment, error)
	CreateComment(ctx context.Context, payload map[string]any) (*models.Comment, error)
	UpdateComment(ctx context.Context, id int64, payload map[string]any) error
	DeleteComment(ctx context.Context, id int64) error
}

var ErrDestroyed = errors.New("comments: service destroyed")

const defaultPerPage = 10

type Option func(*Service)

func WithPerPage(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.perPage = n
		}
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(s *Service) { s.log = l }
}

// WithOnUpdate — колбэк после каждой успешной загрузки или мутации.
// Потребители обновляют по нему счётчик на вкладке.
func WithOnUpdate(fn func([]models.Comment)) Option {
	return func(s *Service) { s.onUpdate = fn }
}

type Service struct {
	backend    Backend
	entityType string
	entityID   string
	log        *zap.Logger
	onUpdate   func([]models.Comment)

	mu        sync.Mutex
	gen       uint64 // поколение последней начатой загрузки
	destroyed bool

	comments []models.Comment // полный набор, свежие сверху
	filtered []models.Comment
	search   string
	status   string
	page     int
	perPage  int
}

func NewService(backend Backend, entityType, entityID string, opts ...Option) *Service {
	s := &Service{
		backend:    backend,
		entityType: entityType,
		entityID:   entityID,
		log:        zap.NewNop(),
		page:       1,
		perPage:    defaultPerPage,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Load — идемпотентная полная перезагрузка. Ответ загрузки, начатой
// до более свежей (или до Destroy), молча отбрасывается: поздний
// ответ не должен трогать уже переиспользованное состояние.
func (s *Service) Load(ctx context.Context) error {
	s.mu.Lock()
	if s.destroyed {
		s.mu.Unlock()
		return ErrDestroyed
	}
	s.gen++
	gen := s.gen
	s.mu.Unlock()

	list, err := s.backend.ListComments(ctx, s.entityType, s.entityID)
	if err != nil {
		return err
	}

	sort.SliceStable(list, func(i, j int) bool {
		return list[i].CreatedAt > list[j].CreatedAt
	})

	s.mu.Lock()
	if s.destroyed || gen != s.gen {
		s.mu.Unlock()
		return nil
	}
	s.comments = list
	s.refilterLocked()
	cb, snapshot := s.updateLocked()
	s.mu.Unlock()

	if cb != nil {
		cb(snapshot)
	}
	return nil
}

// Add создаёт комментарий и перечитывает список. Значение
// "recommendation" приводится к серверному enum "recommend" до
// отправки; если бэкенд всё равно отвергает тип, одна повторная
// попытка уходит с безопасным типом "comment". Это шим совместимости,
// а не общая политика ретраев.
func (s *Service) Add(ctx context.Context, text, commentType, priority string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return errors.New("comments: text is required")
	}
	if commentType == "" {
		commentType = "comment"
	}
	if commentType == "recommendation" {
		commentType = "recommend"
	}
	if priority == "" {
		priority = "normal"
	}

	payload := map[string]any{
		"entity_type":  s.entityType,
		"entity_id":    s.entityID,
		"text":         text,
		"comment_type": commentType,
		"priority":     priority,
	}

	_, err := s.backend.CreateComment(ctx, payload)
	if err != nil && api.IsBadRequest(err) && commentType != "comment" {
		s.log.Warn("backend rejected comment type, falling back",
			zap.String("comment_type", commentType),
			zap.Error(err))
		payload["comment_type"] = "comment"
		_, err = s.backend.CreateComment(ctx, payload)
	}
	if err != nil {
		return err
	}
	return s.Load(ctx)
}

func (s *Service) Edit(ctx context.Context, id int64, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return errors.New("comments: text is required")
	}
	if err := s.backend.UpdateComment(ctx, id, map[string]any{"text": text}); err != nil {
		return err
	}
	return s.Load(ctx)
}

// Delete — мягкое удаление, сам перевод в deleted делает сервер.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.backend.DeleteComment(ctx, id); err != nil {
		return err
	}
	return s.Load(ctx)
}

// SetFilter пересчитывает отфильтрованный набор и сбрасывает
// пагинацию на первую страницу.
func (s *Service) SetFilter(search, status string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.search = strings.TrimSpace(search)
	s.status = strings.TrimSpace(status)
	s.refilterLocked()
}

// Page — срез уже загруженного отфильтрованного набора. Страницы
// считаются с единицы; номер за границами прижимается к границе.
func (s *Service) Page(n int) []models.Comment {
	s.mu.Lock()
	defer s.mu.Unlock()

	if n < 1 {
		n = 1
	}
	if max := s.pageCountLocked(); n > max {
		n = max
	}
	s.page = n

	start := (n - 1) * s.perPage
	if start >= len(s.filtered) {
		return nil
	}
	end := start + s.perPage
	if end > len(s.filtered) {
		end = len(s.filtered)
	}
	out := make([]models.Comment, end-start)
	copy(out, s.filtered[start:end])
	return out
}

func (s *Service) PageCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pageCountLocked()
}

func (s *Service) CurrentPage() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.page
}

// Comments — копия полного набора.
func (s *Service) Comments() []models.Comment {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Comment, len(s.comments))
	copy(out, s.comments)
	return out
}

// Destroy гасит сервис: колбэки больше не зовутся, поздние ответы
// отбрасываются. Повторные вызовы безопасны — карточку закрывают
// и кнопкой, и кликом по подложке.
func (s *Service) Destroy() {
	s.mu.Lock()
	s.destroyed = true
	s.gen++
	s.onUpdate = nil
	s.mu.Unlock()
}

func (s *Service) refilterLocked() {
	s.page = 1
	s.filtered = s.filtered[:0]
	needle := strings.ToLower(s.search)
	for _, c := range s.comments {
		if s.status != "" && c.Status != s.status {
			continue
		}
		if needle != "" &&
			!strings.Contains(strings.ToLower(c.Text), needle) &&
			!strings.Contains(strings.ToLower(c.AuthorName), needle) {
			continue
		}
		s.filtered = append(s.filtered, c)
	}
}

func (s *Service) pageCountLocked() int {
	if len(s.filtered) == 0 {
		return 1
	}
	return (len(s.filtered) + s.perPage - 1) / s.perPage
}

func (s *Service) updateLocked() (func([]models.Comment), []models.Comment) {
	if s.onUpdate == nil {
		return nil, nil
	}
	snapshot := make([]models.Comment, len(s.comments))
	copy(snapshot, s.comments)
	return s.onUpdate, snapshot
}
