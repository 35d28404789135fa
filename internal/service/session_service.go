package service

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/yourusername/quiz-miniapp-api/internal/domain/entity"
	"github.com/yourusername/quiz-miniapp-api/internal/domain/repository"
	apperrors "github.com/yourusername/quiz-miniapp-api/internal/pkg/errors"
)

// QuestionShownResult - ответ на сигнал "вопрос показан"
type QuestionShownResult struct {
	QuestionIndex     int       `json:"question_index"`
	ServerTime        time.Time `json:"server_time"`
	QuestionStartedAt time.Time `json:"question_started_at"`
}

// AnswerResult - итог обработки ответа на вопрос
type AnswerResult struct {
	Correct           bool `json:"correct"`
	ScoreDelta        int  `json:"score_delta"`
	TotalScore        int  `json:"total_score"`
	NextQuestionIndex int  `json:"next_question_index"`
	Finished          bool `json:"finished"`
}

// SessionService управляет сессиями прохождения викторин: стартом,
// серверным таймером вопросов, оценкой ответов и фиксацией результата
type SessionService struct {
	sessionRepo  repository.SessionRepository
	answerRepo   repository.AnswerRepository
	questionRepo repository.QuestionRepository
	quizRepo     repository.QuizRepository
	cacheRepo    repository.CacheRepository

	// now подменяется в тестах
	now func() time.Time
}

// NewSessionService создает новый сервис сессий
func NewSessionService(
	sessionRepo repository.SessionRepository,
	answerRepo repository.AnswerRepository,
	questionRepo repository.QuestionRepository,
	quizRepo repository.QuizRepository,
	cacheRepo repository.CacheRepository,
) *SessionService {
	return &SessionService{
		sessionRepo:  sessionRepo,
		answerRepo:   answerRepo,
		questionRepo: questionRepo,
		quizRepo:     quizRepo,
		cacheRepo:    cacheRepo,
		now:          time.Now,
	}
}

// StartSession начинает (или возобновляет) прохождение викторины пользователем.
// Если у пользователя уже есть активная сессия этой викторины, возвращается она:
// повторный старт не обнуляет прогресс.
func (s *SessionService) StartSession(userID, quizID uint) (*entity.QuizSession, error) {
	quiz, err := s.quizRepo.GetByID(quizID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, ErrQuizNotFound
		}
		return nil, fmt.Errorf("failed to load quiz: %w", err)
	}
	if !quiz.IsPublished {
		return nil, ErrQuizNotPublished
	}

	count, err := s.questionRepo.CountByQuizID(quizID)
	if err != nil {
		return nil, fmt.Errorf("failed to count questions: %w", err)
	}
	if count == 0 {
		return nil, ErrQuizEmpty
	}

	existing, err := s.sessionRepo.GetActiveByUserAndQuiz(userID, quizID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up active session: %w", err)
	}

	session := &entity.QuizSession{
		UserID: userID,
		QuizID: quizID,
	}
	if err := s.sessionRepo.Create(session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	log.Printf("[SessionService] Пользователь #%d начал викторину #%d (сессия #%d)", userID, quizID, session.ID)
	return session, nil
}

// GetSession возвращает сессию вместе с зафиксированными ответами
func (s *SessionService) GetSession(userID, sessionID uint) (*entity.QuizSession, []entity.UserAnswer, error) {
	session, err := s.loadOwnedSession(userID, sessionID)
	if err != nil {
		return nil, nil, err
	}
	answers, err := s.answerRepo.GetBySession(sessionID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load session answers: %w", err)
	}
	return session, answers, nil
}

// MarkQuestionShown взводит серверный таймер текущего вопроса.
// Таймер стартует, когда вопрос реально показан пользователю, а не когда принят
// предыдущий ответ: пользователь может еще смотреть экран результата, и наивная
// привязка к сабмиту открывала бы окно для "быстрых" ответов на следующий вопрос.
// Операция идемпотентна: повторный сигнал для того же индекса возвращает уже
// записанное время и ничего не меняет - это терпимость к сетевым ретраям,
// а не возможность перевзвести свой таймер.
func (s *SessionService) MarkQuestionShown(userID, sessionID uint, questionIndex int) (*QuestionShownResult, error) {
	session, err := s.loadOwnedSession(userID, sessionID)
	if err != nil {
		return nil, err
	}
	if session.IsFinished() {
		return nil, ErrSessionFinished
	}
	if questionIndex != session.CurrentQuestionIndex {
		return nil, &QuestionIndexMismatchError{
			Expected: session.CurrentQuestionIndex,
			Received: questionIndex,
		}
	}

	serverTime := s.now()

	if session.IsTimerArmed() {
		return &QuestionShownResult{
			QuestionIndex:     questionIndex,
			ServerTime:        serverTime,
			QuestionStartedAt: *session.CurrentQuestionStartedAt,
		}, nil
	}

	won, err := s.sessionRepo.ArmQuestionTimer(sessionID, questionIndex, serverTime)
	if err != nil {
		return nil, fmt.Errorf("failed to arm question timer: %w", err)
	}
	if won {
		return &QuestionShownResult{
			QuestionIndex:     questionIndex,
			ServerTime:        serverTime,
			QuestionStartedAt: serverTime,
		}, nil
	}

	// Конкурентный дубликат успел взвести таймер первым - перечитываем,
	// чтобы вернуть то же самое записанное время
	session, err = s.sessionRepo.GetByID(sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload session: %w", err)
	}
	if !session.IsTimerArmed() || session.CurrentQuestionIndex != questionIndex {
		// Сессия успела уйти вперед (ответ обработан между нашими запросами)
		return nil, &QuestionIndexMismatchError{
			Expected: session.CurrentQuestionIndex,
			Received: questionIndex,
		}
	}
	return &QuestionShownResult{
		QuestionIndex:     questionIndex,
		ServerTime:        serverTime,
		QuestionStartedAt: *session.CurrentQuestionStartedAt,
	}, nil
}

// SubmitAnswer оценивает ответ и атомарно фиксирует его в сессии.
// Проверка владения сессией здесь такая же, как у сигнала таймера:
// чужую сессию нельзя ни прокачать, ни испортить, угадав ее ID.
func (s *SessionService) SubmitAnswer(userID, sessionID, questionID, optionID uint, timeSpentMs int64) (*AnswerResult, error) {
	if timeSpentMs < 0 {
		timeSpentMs = 0
	}

	session, err := s.loadOwnedSession(userID, sessionID)
	if err != nil {
		return nil, err
	}
	if session.IsFinished() {
		return nil, ErrSessionFinished
	}

	question, err := s.questionRepo.GetByID(questionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, ErrQuestionNotFound
		}
		return nil, fmt.Errorf("failed to load question: %w", err)
	}
	if question.QuizID != session.QuizID {
		return nil, ErrQuestionNotFound
	}

	option, err := s.questionRepo.GetOption(optionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, ErrOptionNotFound
		}
		return nil, fmt.Errorf("failed to load option: %w", err)
	}
	if option.QuestionID != questionID {
		return nil, ErrOptionNotFound
	}

	correctOption, err := s.questionRepo.GetCorrectOption(questionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			log.Printf("[SessionService] CRITICAL: у вопроса #%d нет правильного варианта (викторина #%d)",
				questionID, question.QuizID)
			return nil, ErrNoCorrectOption
		}
		return nil, fmt.Errorf("failed to load correct option: %w", err)
	}

	isCorrect := option.ID == correctOption.ID
	scoreDelta := question.CalculatePoints(isCorrect, timeSpentMs)

	questionCount, err := s.questionRepo.CountByQuizID(session.QuizID)
	if err != nil {
		return nil, fmt.Errorf("failed to count questions: %w", err)
	}
	finished := int64(session.CurrentQuestionIndex)+1 >= questionCount

	answer := &entity.UserAnswer{
		SessionID:   sessionID,
		QuestionID:  questionID,
		OptionID:    optionID,
		IsCorrect:   isCorrect,
		TimeSpentMs: timeSpentMs,
		ScoreDelta:  scoreDelta,
	}

	newTotal, err := s.answerRepo.SaveWithScore(answer, finished)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrAlreadyExists):
			return nil, ErrQuestionAlreadyAnswered
		case errors.Is(err, apperrors.ErrConflict):
			return nil, ErrSessionFinished
		default:
			return nil, fmt.Errorf("failed to save answer: %w", err)
		}
	}

	if finished {
		// Лидерборд пересчитается при следующем чтении
		if errCache := s.cacheRepo.Delete(leaderboardCacheKey(session.QuizID)); errCache != nil {
			log.Printf("[SessionService] WARNING: не удалось инвалидировать кеш лидерборда викторины #%d: %v",
				session.QuizID, errCache)
		}
		log.Printf("[SessionService] Сессия #%d завершена, итоговый счет %d", sessionID, newTotal)
	}

	return &AnswerResult{
		Correct:           isCorrect,
		ScoreDelta:        scoreDelta,
		TotalScore:        newTotal,
		NextQuestionIndex: session.CurrentQuestionIndex + 1,
		Finished:          finished,
	}, nil
}

// loadOwnedSession загружает сессию и проверяет владение
func (s *SessionService) loadOwnedSession(userID, sessionID uint) (*entity.QuizSession, error) {
	session, err := s.sessionRepo.GetByID(sessionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if session.UserID != userID {
		return nil, apperrors.ErrForbidden
	}
	return session, nil
}
