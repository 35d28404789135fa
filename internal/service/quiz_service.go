package service

import (
	"errors"
	"fmt"
	"hash/fnv"
	"log"
	"math/rand"
	"time"

	"github.com/yourusername/quiz-miniapp-api/internal/domain/entity"
	"github.com/yourusername/quiz-miniapp-api/internal/domain/repository"
	apperrors "github.com/yourusername/quiz-miniapp-api/internal/pkg/errors"
)

// leaderboardLimit - размер топа лидерборда
const leaderboardLimit = 50

// leaderboardCacheKey возвращает ключ кеша лидерборда викторины
func leaderboardCacheKey(quizID uint) string {
	return fmt.Sprintf("leaderboard:quiz:%d", quizID)
}

// quizListCacheKey - ключ кеша списка опубликованных викторин
const quizListCacheKey = "quizzes:published"

// OptionInput - вариант ответа при создании вопроса
type OptionInput struct {
	Text      string
	IsCorrect bool
}

// QuizService предоставляет методы для работы с каталогом викторин и лидербордами
type QuizService struct {
	quizRepo     repository.QuizRepository
	questionRepo repository.QuestionRepository
	sessionRepo  repository.SessionRepository
	cacheRepo    repository.CacheRepository

	leaderboardTTL time.Duration
	quizListTTL    time.Duration
}

// NewQuizService создает новый сервис викторин
func NewQuizService(
	quizRepo repository.QuizRepository,
	questionRepo repository.QuestionRepository,
	sessionRepo repository.SessionRepository,
	cacheRepo repository.CacheRepository,
	leaderboardTTL time.Duration,
	quizListTTL time.Duration,
) *QuizService {
	if leaderboardTTL <= 0 {
		leaderboardTTL = time.Minute
	}
	if quizListTTL <= 0 {
		quizListTTL = 5 * time.Minute
	}
	return &QuizService{
		quizRepo:       quizRepo,
		questionRepo:   questionRepo,
		sessionRepo:    sessionRepo,
		cacheRepo:      cacheRepo,
		leaderboardTTL: leaderboardTTL,
		quizListTTL:    quizListTTL,
	}
}

// ListPublished возвращает опубликованные викторины (get-or-compute через кеш)
func (s *QuizService) ListPublished() ([]entity.Quiz, error) {
	var cached []entity.Quiz
	if err := s.cacheRepo.GetJSON(quizListCacheKey, &cached); err == nil {
		return cached, nil
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		// Проблемы кеша не должны ломать чтение каталога
		log.Printf("[QuizService] WARNING: ошибка чтения кеша списка викторин: %v", err)
	}

	quizzes, err := s.quizRepo.ListPublished()
	if err != nil {
		return nil, fmt.Errorf("failed to list quizzes: %w", err)
	}

	if errCache := s.cacheRepo.SetJSON(quizListCacheKey, quizzes, s.quizListTTL); errCache != nil {
		log.Printf("[QuizService] WARNING: не удалось закешировать список викторин: %v", errCache)
	}
	return quizzes, nil
}

// GetForPlay возвращает опубликованную викторину с вопросами и вариантами.
// Флаги правильности скрыты на уровне сериализации (AnswerOption.IsCorrect -> json:"-").
func (s *QuizService) GetForPlay(quizID uint) (*entity.Quiz, error) {
	quiz, err := s.quizRepo.GetWithQuestions(quizID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, ErrQuizNotFound
		}
		return nil, fmt.Errorf("failed to load quiz: %w", err)
	}
	if !quiz.IsPublished {
		return nil, ErrQuizNotPublished
	}
	return quiz, nil
}

// Leaderboard возвращает топ викторины. Результат кешируется с TTL и
// инвалидируется при завершении сессии; кеш лежит в разделяемом хранилище,
// поэтому инстансы сервиса видят инвалидацию друг друга.
func (s *QuizService) Leaderboard(quizID uint) ([]entity.LeaderboardEntry, error) {
	if _, err := s.quizRepo.GetByID(quizID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, ErrQuizNotFound
		}
		return nil, fmt.Errorf("failed to load quiz: %w", err)
	}

	key := leaderboardCacheKey(quizID)

	var cached []entity.LeaderboardEntry
	if err := s.cacheRepo.GetJSON(key, &cached); err == nil {
		return cached, nil
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		log.Printf("[QuizService] WARNING: ошибка чтения кеша лидерборда викторины #%d: %v", quizID, err)
	}

	entries, err := s.sessionRepo.GetLeaderboard(quizID, leaderboardLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to load leaderboard: %w", err)
	}

	if errCache := s.cacheRepo.SetJSON(key, entries, s.leaderboardTTL); errCache != nil {
		log.Printf("[QuizService] WARNING: не удалось закешировать лидерборд викторины #%d: %v", quizID, errCache)
	}
	return entries, nil
}

// CreateQuiz создает новую викторину (администратор)
func (s *QuizService) CreateQuiz(title, description string, isPublished bool) (*entity.Quiz, error) {
	quiz := &entity.Quiz{
		Title:       title,
		Description: description,
		IsPublished: isPublished,
	}
	if err := s.quizRepo.Create(quiz); err != nil {
		return nil, fmt.Errorf("failed to create quiz: %w", err)
	}
	s.invalidateQuizList()
	return quiz, nil
}

// UpdateQuiz обновляет атрибуты викторины (администратор)
func (s *QuizService) UpdateQuiz(quizID uint, title, description string, isPublished bool) (*entity.Quiz, error) {
	quiz, err := s.quizRepo.GetByID(quizID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, ErrQuizNotFound
		}
		return nil, fmt.Errorf("failed to load quiz: %w", err)
	}

	quiz.Title = title
	quiz.Description = description
	quiz.IsPublished = isPublished
	if err := s.quizRepo.Update(quiz); err != nil {
		return nil, fmt.Errorf("failed to update quiz: %w", err)
	}
	s.invalidateQuizList()
	return quiz, nil
}

// AddQuestion добавляет вопрос с вариантами ответов (администратор).
// Ровно один вариант должен быть помечен правильным - инвариант каталога,
// на который опирается оценка ответов.
func (s *QuizService) AddQuestion(quizID uint, text string, position int, options []OptionInput) (*entity.Question, error) {
	if _, err := s.quizRepo.GetByID(quizID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, ErrQuizNotFound
		}
		return nil, fmt.Errorf("failed to load quiz: %w", err)
	}

	if len(options) < 2 {
		return nil, fmt.Errorf("%w: question needs at least two options", apperrors.ErrValidation)
	}
	correctCount := 0
	for _, opt := range options {
		if opt.IsCorrect {
			correctCount++
		}
	}
	if correctCount != 1 {
		return nil, fmt.Errorf("%w: exactly one option must be marked correct, got %d", apperrors.ErrValidation, correctCount)
	}

	question := &entity.Question{
		QuizID:   quizID,
		Text:     text,
		Position: position,
	}
	for _, opt := range options {
		question.Options = append(question.Options, entity.AnswerOption{
			Text:      opt.Text,
			IsCorrect: opt.IsCorrect,
		})
	}

	if err := s.questionRepo.Create(question); err != nil {
		return nil, fmt.Errorf("failed to create question: %w", err)
	}
	return question, nil
}

// DuelQuestionOrder возвращает детерминированный порядок вопросов для дуэли.
// Сид выводится из ключа дуэли, поэтому оба участника получают одинаковую
// перестановку без какой-либо координации между запросами.
func (s *QuizService) DuelQuestionOrder(quizID uint, duelKey string) ([]uint, error) {
	questions, err := s.questionRepo.GetByQuizID(quizID)
	if err != nil {
		return nil, fmt.Errorf("failed to load questions: %w", err)
	}
	if len(questions) == 0 {
		return nil, ErrQuizEmpty
	}

	ids := make([]uint, len(questions))
	for i, q := range questions {
		ids[i] = q.ID
	}

	h := fnv.New64a()
	fmt.Fprintf(h, "%d:%s", quizID, duelKey)
	rng := rand.New(rand.NewSource(int64(h.Sum64())))

	// Тасование Фишера-Йейтса с детерминированным сидом
	for i := len(ids) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		ids[i], ids[j] = ids[j], ids[i]
	}
	return ids, nil
}

// invalidateQuizList сбрасывает кеш списка викторин
func (s *QuizService) invalidateQuizList() {
	if err := s.cacheRepo.Delete(quizListCacheKey); err != nil {
		log.Printf("[QuizService] WARNING: не удалось инвалидировать кеш списка викторин: %v", err)
	}
}
