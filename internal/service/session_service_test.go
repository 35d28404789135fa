package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/quiz-miniapp-api/internal/domain/entity"
	apperrors "github.com/yourusername/quiz-miniapp-api/internal/pkg/errors"
)

// ============================================================================
// Моки репозиториев для тестов сервисного слоя.
// Объявлены здесь один раз и используются также в quiz_service_test.go.
// ============================================================================

// MockSessionRepository реализует repository.SessionRepository
type MockSessionRepository struct {
	mock.Mock
}

func (m *MockSessionRepository) Create(session *entity.QuizSession) error {
	args := m.Called(session)
	return args.Error(0)
}

func (m *MockSessionRepository) GetByID(id uint) (*entity.QuizSession, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.QuizSession), args.Error(1)
}

func (m *MockSessionRepository) GetActiveByUserAndQuiz(userID, quizID uint) (*entity.QuizSession, error) {
	args := m.Called(userID, quizID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.QuizSession), args.Error(1)
}

func (m *MockSessionRepository) ArmQuestionTimer(sessionID uint, questionIndex int, startedAt time.Time) (bool, error) {
	args := m.Called(sessionID, questionIndex, startedAt)
	return args.Bool(0), args.Error(1)
}

func (m *MockSessionRepository) GetLeaderboard(quizID uint, limit int) ([]entity.LeaderboardEntry, error) {
	args := m.Called(quizID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.LeaderboardEntry), args.Error(1)
}

func (m *MockSessionRepository) FinishStale(idleSince time.Time) (int64, error) {
	args := m.Called(idleSince)
	return args.Get(0).(int64), args.Error(1)
}

// MockAnswerRepository реализует repository.AnswerRepository
type MockAnswerRepository struct {
	mock.Mock
}

func (m *MockAnswerRepository) SaveWithScore(answer *entity.UserAnswer, finishSession bool) (int, error) {
	args := m.Called(answer, finishSession)
	return args.Int(0), args.Error(1)
}

func (m *MockAnswerRepository) GetBySession(sessionID uint) ([]entity.UserAnswer, error) {
	args := m.Called(sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.UserAnswer), args.Error(1)
}

// MockQuestionRepository реализует repository.QuestionRepository
type MockQuestionRepository struct {
	mock.Mock
}

func (m *MockQuestionRepository) Create(question *entity.Question) error {
	args := m.Called(question)
	return args.Error(0)
}

func (m *MockQuestionRepository) GetByID(id uint) (*entity.Question, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Question), args.Error(1)
}

func (m *MockQuestionRepository) GetByQuizID(quizID uint) ([]entity.Question, error) {
	args := m.Called(quizID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Question), args.Error(1)
}

func (m *MockQuestionRepository) CountByQuizID(quizID uint) (int64, error) {
	args := m.Called(quizID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockQuestionRepository) GetOption(optionID uint) (*entity.AnswerOption, error) {
	args := m.Called(optionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.AnswerOption), args.Error(1)
}

func (m *MockQuestionRepository) GetCorrectOption(questionID uint) (*entity.AnswerOption, error) {
	args := m.Called(questionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.AnswerOption), args.Error(1)
}

// MockQuizRepository реализует repository.QuizRepository
type MockQuizRepository struct {
	mock.Mock
}

func (m *MockQuizRepository) Create(quiz *entity.Quiz) error {
	args := m.Called(quiz)
	return args.Error(0)
}

func (m *MockQuizRepository) Update(quiz *entity.Quiz) error {
	args := m.Called(quiz)
	return args.Error(0)
}

func (m *MockQuizRepository) GetByID(id uint) (*entity.Quiz, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Quiz), args.Error(1)
}

func (m *MockQuizRepository) GetWithQuestions(id uint) (*entity.Quiz, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Quiz), args.Error(1)
}

func (m *MockQuizRepository) ListPublished() ([]entity.Quiz, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Quiz), args.Error(1)
}

// MockCacheRepository реализует repository.CacheRepository
type MockCacheRepository struct {
	mock.Mock
}

func (m *MockCacheRepository) Set(key string, value interface{}, expiration time.Duration) error {
	args := m.Called(key, value, expiration)
	return args.Error(0)
}

func (m *MockCacheRepository) Get(key string) (string, error) {
	args := m.Called(key)
	return args.String(0), args.Error(1)
}

func (m *MockCacheRepository) Delete(key string) error {
	args := m.Called(key)
	return args.Error(0)
}

func (m *MockCacheRepository) Increment(key string) (int64, error) {
	args := m.Called(key)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCacheRepository) SetJSON(key string, value interface{}, expiration time.Duration) error {
	args := m.Called(key, value, expiration)
	return args.Error(0)
}

func (m *MockCacheRepository) GetJSON(key string, dest interface{}) error {
	args := m.Called(key, dest)
	return args.Error(0)
}

func (m *MockCacheRepository) Exists(key string) (bool, error) {
	args := m.Called(key)
	return args.Bool(0), args.Error(1)
}

// ============================================================================
// Хелперы
// ============================================================================

type sessionServiceMocks struct {
	sessionRepo  *MockSessionRepository
	answerRepo   *MockAnswerRepository
	questionRepo *MockQuestionRepository
	quizRepo     *MockQuizRepository
	cacheRepo    *MockCacheRepository
}

func createTestSessionService(now time.Time) (*SessionService, *sessionServiceMocks) {
	mocks := &sessionServiceMocks{
		sessionRepo:  new(MockSessionRepository),
		answerRepo:   new(MockAnswerRepository),
		questionRepo: new(MockQuestionRepository),
		quizRepo:     new(MockQuizRepository),
		cacheRepo:    new(MockCacheRepository),
	}
	svc := NewSessionService(mocks.sessionRepo, mocks.answerRepo, mocks.questionRepo, mocks.quizRepo, mocks.cacheRepo)
	svc.now = func() time.Time { return now }
	return svc, mocks
}

func timePtr(t time.Time) *time.Time { return &t }

// ============================================================================
// Тесты для SessionService
// ============================================================================

func TestSessionService_StartSession_CreatesNew(t *testing.T) {
	// Arrange
	svc, mocks := createTestSessionService(time.Now())

	mocks.quizRepo.On("GetByID", uint(5)).Return(&entity.Quiz{ID: 5, IsPublished: true}, nil)
	mocks.questionRepo.On("CountByQuizID", uint(5)).Return(int64(3), nil)
	mocks.sessionRepo.On("GetActiveByUserAndQuiz", uint(10), uint(5)).Return(nil, apperrors.ErrNotFound)
	mocks.sessionRepo.On("Create", mock.AnythingOfType("*entity.QuizSession")).Return(nil)

	// Act
	session, err := svc.StartSession(10, 5)

	// Assert
	require.NoError(t, err, "Старт сессии должен быть успешным")
	assert.Equal(t, uint(10), session.UserID)
	assert.Equal(t, uint(5), session.QuizID)
	assert.Equal(t, 0, session.CurrentQuestionIndex)
	assert.Nil(t, session.CurrentQuestionStartedAt, "Таймер первого вопроса не взводится при старте")
	mocks.sessionRepo.AssertExpectations(t)
}

func TestSessionService_StartSession_ResumesActive(t *testing.T) {
	// Arrange
	svc, mocks := createTestSessionService(time.Now())

	existing := &entity.QuizSession{ID: 77, UserID: 10, QuizID: 5, CurrentQuestionIndex: 2, TotalScore: 275}
	mocks.quizRepo.On("GetByID", uint(5)).Return(&entity.Quiz{ID: 5, IsPublished: true}, nil)
	mocks.questionRepo.On("CountByQuizID", uint(5)).Return(int64(3), nil)
	mocks.sessionRepo.On("GetActiveByUserAndQuiz", uint(10), uint(5)).Return(existing, nil)

	// Act
	session, err := svc.StartSession(10, 5)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, uint(77), session.ID, "Повторный старт возвращает активную сессию, не обнуляя прогресс")
	assert.Equal(t, 275, session.TotalScore)
	mocks.sessionRepo.AssertNotCalled(t, "Create")
}

func TestSessionService_StartSession_NotPublished(t *testing.T) {
	// Arrange
	svc, mocks := createTestSessionService(time.Now())
	mocks.quizRepo.On("GetByID", uint(5)).Return(&entity.Quiz{ID: 5, IsPublished: false}, nil)

	// Act
	session, err := svc.StartSession(10, 5)

	// Assert
	assert.ErrorIs(t, err, ErrQuizNotPublished)
	assert.Nil(t, session)
	mocks.sessionRepo.AssertNotCalled(t, "Create")
}

func TestSessionService_StartSession_EmptyQuiz(t *testing.T) {
	// Arrange
	svc, mocks := createTestSessionService(time.Now())
	mocks.quizRepo.On("GetByID", uint(5)).Return(&entity.Quiz{ID: 5, IsPublished: true}, nil)
	mocks.questionRepo.On("CountByQuizID", uint(5)).Return(int64(0), nil)

	// Act
	_, err := svc.StartSession(10, 5)

	// Assert
	assert.ErrorIs(t, err, ErrQuizEmpty)
}

func TestSessionService_MarkQuestionShown_ArmsTimer(t *testing.T) {
	// Arrange
	serverNow := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc, mocks := createTestSessionService(serverNow)

	session := &entity.QuizSession{ID: 1, UserID: 10, QuizID: 5, CurrentQuestionIndex: 1}
	mocks.sessionRepo.On("GetByID", uint(1)).Return(session, nil)
	mocks.sessionRepo.On("ArmQuestionTimer", uint(1), 1, serverNow).Return(true, nil)

	// Act
	result, err := svc.MarkQuestionShown(10, 1, 1)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 1, result.QuestionIndex)
	assert.Equal(t, serverNow, result.QuestionStartedAt, "Временем старта становится серверное время сигнала")
	mocks.sessionRepo.AssertExpectations(t)
}

func TestSessionService_MarkQuestionShown_Idempotent(t *testing.T) {
	// Arrange: таймер уже взведен более ранним сигналом
	armedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	serverNow := armedAt.Add(3 * time.Second)
	svc, mocks := createTestSessionService(serverNow)

	session := &entity.QuizSession{
		ID: 1, UserID: 10, QuizID: 5,
		CurrentQuestionIndex:     1,
		CurrentQuestionStartedAt: timePtr(armedAt),
	}
	mocks.sessionRepo.On("GetByID", uint(1)).Return(session, nil)

	// Act: ретрай того же сигнала
	result, err := svc.MarkQuestionShown(10, 1, 1)

	// Assert: возвращается первоначально записанное время, таймер не перевзводится
	require.NoError(t, err)
	assert.Equal(t, armedAt, result.QuestionStartedAt)
	mocks.sessionRepo.AssertNotCalled(t, "ArmQuestionTimer")
}

func TestSessionService_MarkQuestionShown_IndexMismatch(t *testing.T) {
	// Arrange: сессия стоит на вопросе 2, клиент прислал сигнал для вопроса 1
	svc, mocks := createTestSessionService(time.Now())

	session := &entity.QuizSession{ID: 1, UserID: 10, QuizID: 5, CurrentQuestionIndex: 2}
	mocks.sessionRepo.On("GetByID", uint(1)).Return(session, nil)

	// Act
	result, err := svc.MarkQuestionShown(10, 1, 1)

	// Assert
	require.Error(t, err)
	var mismatch *QuestionIndexMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, 2, mismatch.Expected)
	assert.Equal(t, 1, mismatch.Received)
	assert.Nil(t, result)
	mocks.sessionRepo.AssertNotCalled(t, "ArmQuestionTimer")
}

func TestSessionService_MarkQuestionShown_LostRaceReloads(t *testing.T) {
	// Arrange: конкурентный дубликат успел взвести таймер первым
	armedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc, mocks := createTestSessionService(armedAt.Add(50 * time.Millisecond))

	unarmed := &entity.QuizSession{ID: 1, UserID: 10, QuizID: 5, CurrentQuestionIndex: 0}
	armed := &entity.QuizSession{
		ID: 1, UserID: 10, QuizID: 5,
		CurrentQuestionIndex:     0,
		CurrentQuestionStartedAt: timePtr(armedAt),
	}
	mocks.sessionRepo.On("GetByID", uint(1)).Return(unarmed, nil).Once()
	mocks.sessionRepo.On("ArmQuestionTimer", uint(1), 0, mock.AnythingOfType("time.Time")).Return(false, nil)
	mocks.sessionRepo.On("GetByID", uint(1)).Return(armed, nil).Once()

	// Act
	result, err := svc.MarkQuestionShown(10, 1, 0)

	// Assert: оба вызова видят одно и то же записанное время
	require.NoError(t, err)
	assert.Equal(t, armedAt, result.QuestionStartedAt)
	mocks.sessionRepo.AssertExpectations(t)
}

func TestSessionService_MarkQuestionShown_Finished(t *testing.T) {
	// Arrange
	svc, mocks := createTestSessionService(time.Now())

	session := &entity.QuizSession{
		ID: 1, UserID: 10, QuizID: 5,
		FinishedAt: timePtr(time.Now().Add(-time.Minute)),
	}
	mocks.sessionRepo.On("GetByID", uint(1)).Return(session, nil)

	// Act
	_, err := svc.MarkQuestionShown(10, 1, 0)

	// Assert
	assert.ErrorIs(t, err, ErrSessionFinished)
}

func TestSessionService_MarkQuestionShown_NotOwner(t *testing.T) {
	// Arrange: сессия принадлежит другому пользователю
	svc, mocks := createTestSessionService(time.Now())

	session := &entity.QuizSession{ID: 1, UserID: 99, QuizID: 5}
	mocks.sessionRepo.On("GetByID", uint(1)).Return(session, nil)

	// Act
	_, err := svc.MarkQuestionShown(10, 1, 0)

	// Assert
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
	mocks.sessionRepo.AssertNotCalled(t, "ArmQuestionTimer")
}

func TestSessionService_SubmitAnswer_CorrectFastFinishes(t *testing.T) {
	// Arrange: правильный быстрый ответ на последний вопрос викторины
	svc, mocks := createTestSessionService(time.Now())

	session := &entity.QuizSession{
		ID: 1, UserID: 10, QuizID: 5,
		CurrentQuestionIndex:     2,
		CurrentQuestionStartedAt: timePtr(time.Now().Add(-2 * time.Second)),
		TotalScore:               250,
	}
	question := &entity.Question{ID: 30, QuizID: 5}
	option := &entity.AnswerOption{ID: 301, QuestionID: 30}
	correct := &entity.AnswerOption{ID: 301, QuestionID: 30, IsCorrect: true}

	mocks.sessionRepo.On("GetByID", uint(1)).Return(session, nil)
	mocks.questionRepo.On("GetByID", uint(30)).Return(question, nil)
	mocks.questionRepo.On("GetOption", uint(301)).Return(option, nil)
	mocks.questionRepo.On("GetCorrectOption", uint(30)).Return(correct, nil)
	mocks.questionRepo.On("CountByQuizID", uint(5)).Return(int64(3), nil)
	mocks.answerRepo.On("SaveWithScore", mock.MatchedBy(func(a *entity.UserAnswer) bool {
		return a.IsCorrect && a.ScoreDelta == 150 && a.TimeSpentMs == 1500
	}), true).Return(400, nil)
	mocks.cacheRepo.On("Delete", "leaderboard:quiz:5").Return(nil)

	// Act
	result, err := svc.SubmitAnswer(10, 1, 30, 301, 1500)

	// Assert
	require.NoError(t, err)
	assert.True(t, result.Correct)
	assert.Equal(t, 150, result.ScoreDelta, "Быстрый правильный ответ дает базу и полный бонус")
	assert.Equal(t, 400, result.TotalScore)
	assert.True(t, result.Finished, "Ответ на последний вопрос завершает сессию")
	mocks.answerRepo.AssertExpectations(t)
	mocks.cacheRepo.AssertExpectations(t)
}

func TestSessionService_SubmitAnswer_Incorrect(t *testing.T) {
	// Arrange
	svc, mocks := createTestSessionService(time.Now())

	session := &entity.QuizSession{
		ID: 1, UserID: 10, QuizID: 5,
		CurrentQuestionIndex:     0,
		CurrentQuestionStartedAt: timePtr(time.Now().Add(-3 * time.Second)),
	}
	mocks.sessionRepo.On("GetByID", uint(1)).Return(session, nil)
	mocks.questionRepo.On("GetByID", uint(30)).Return(&entity.Question{ID: 30, QuizID: 5}, nil)
	mocks.questionRepo.On("GetOption", uint(302)).Return(&entity.AnswerOption{ID: 302, QuestionID: 30}, nil)
	mocks.questionRepo.On("GetCorrectOption", uint(30)).Return(&entity.AnswerOption{ID: 301, QuestionID: 30, IsCorrect: true}, nil)
	mocks.questionRepo.On("CountByQuizID", uint(5)).Return(int64(3), nil)
	mocks.answerRepo.On("SaveWithScore", mock.MatchedBy(func(a *entity.UserAnswer) bool {
		return !a.IsCorrect && a.ScoreDelta == 0
	}), false).Return(0, nil)

	// Act
	result, err := svc.SubmitAnswer(10, 1, 30, 302, 3000)

	// Assert
	require.NoError(t, err)
	assert.False(t, result.Correct)
	assert.Equal(t, 0, result.ScoreDelta, "Неправильный ответ не приносит очков независимо от времени")
	assert.Equal(t, 1, result.NextQuestionIndex)
	assert.False(t, result.Finished)
	mocks.cacheRepo.AssertNotCalled(t, "Delete")
}

func TestSessionService_SubmitAnswer_NegativeTimeClamped(t *testing.T) {
	// Arrange: клиент прислал отрицательное время (рассинхрон часов)
	svc, mocks := createTestSessionService(time.Now())

	session := &entity.QuizSession{
		ID: 1, UserID: 10, QuizID: 5,
		CurrentQuestionIndex:     0,
		CurrentQuestionStartedAt: timePtr(time.Now()),
	}
	mocks.sessionRepo.On("GetByID", uint(1)).Return(session, nil)
	mocks.questionRepo.On("GetByID", uint(30)).Return(&entity.Question{ID: 30, QuizID: 5}, nil)
	mocks.questionRepo.On("GetOption", uint(301)).Return(&entity.AnswerOption{ID: 301, QuestionID: 30}, nil)
	mocks.questionRepo.On("GetCorrectOption", uint(30)).Return(&entity.AnswerOption{ID: 301, QuestionID: 30, IsCorrect: true}, nil)
	mocks.questionRepo.On("CountByQuizID", uint(5)).Return(int64(3), nil)
	mocks.answerRepo.On("SaveWithScore", mock.MatchedBy(func(a *entity.UserAnswer) bool {
		return a.TimeSpentMs == 0 && a.ScoreDelta == 150
	}), false).Return(150, nil)

	// Act
	result, err := svc.SubmitAnswer(10, 1, 30, 301, -500)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 150, result.ScoreDelta)
	mocks.answerRepo.AssertExpectations(t)
}

func TestSessionService_SubmitAnswer_Duplicate(t *testing.T) {
	// Arrange: уникальный индекс отклонил повторный ответ на тот же вопрос
	svc, mocks := createTestSessionService(time.Now())

	session := &entity.QuizSession{
		ID: 1, UserID: 10, QuizID: 5,
		CurrentQuestionIndex:     1,
		CurrentQuestionStartedAt: timePtr(time.Now()),
	}
	mocks.sessionRepo.On("GetByID", uint(1)).Return(session, nil)
	mocks.questionRepo.On("GetByID", uint(30)).Return(&entity.Question{ID: 30, QuizID: 5}, nil)
	mocks.questionRepo.On("GetOption", uint(301)).Return(&entity.AnswerOption{ID: 301, QuestionID: 30}, nil)
	mocks.questionRepo.On("GetCorrectOption", uint(30)).Return(&entity.AnswerOption{ID: 301, QuestionID: 30, IsCorrect: true}, nil)
	mocks.questionRepo.On("CountByQuizID", uint(5)).Return(int64(3), nil)
	mocks.answerRepo.On("SaveWithScore", mock.Anything, false).Return(0, apperrors.ErrAlreadyExists)

	// Act
	result, err := svc.SubmitAnswer(10, 1, 30, 301, 2000)

	// Assert
	assert.ErrorIs(t, err, ErrQuestionAlreadyAnswered)
	assert.Nil(t, result)
}

func TestSessionService_SubmitAnswer_QuestionFromOtherQuiz(t *testing.T) {
	// Arrange: вопрос существует, но принадлежит другой викторине
	svc, mocks := createTestSessionService(time.Now())

	session := &entity.QuizSession{
		ID: 1, UserID: 10, QuizID: 5,
		CurrentQuestionIndex:     0,
		CurrentQuestionStartedAt: timePtr(time.Now()),
	}
	mocks.sessionRepo.On("GetByID", uint(1)).Return(session, nil)
	mocks.questionRepo.On("GetByID", uint(30)).Return(&entity.Question{ID: 30, QuizID: 8}, nil)

	// Act
	_, err := svc.SubmitAnswer(10, 1, 30, 301, 2000)

	// Assert
	assert.ErrorIs(t, err, ErrQuestionNotFound)
	mocks.answerRepo.AssertNotCalled(t, "SaveWithScore")
}

func TestSessionService_SubmitAnswer_NoCorrectOption(t *testing.T) {
	// Arrange: нарушение целостности каталога - у вопроса нет правильного варианта
	svc, mocks := createTestSessionService(time.Now())

	session := &entity.QuizSession{
		ID: 1, UserID: 10, QuizID: 5,
		CurrentQuestionIndex:     0,
		CurrentQuestionStartedAt: timePtr(time.Now()),
	}
	mocks.sessionRepo.On("GetByID", uint(1)).Return(session, nil)
	mocks.questionRepo.On("GetByID", uint(30)).Return(&entity.Question{ID: 30, QuizID: 5}, nil)
	mocks.questionRepo.On("GetOption", uint(301)).Return(&entity.AnswerOption{ID: 301, QuestionID: 30}, nil)
	mocks.questionRepo.On("GetCorrectOption", uint(30)).Return(nil, apperrors.ErrNotFound)

	// Act
	_, err := svc.SubmitAnswer(10, 1, 30, 301, 2000)

	// Assert
	assert.ErrorIs(t, err, ErrNoCorrectOption)
	mocks.answerRepo.AssertNotCalled(t, "SaveWithScore")
}

func TestSessionService_SubmitAnswer_FinishedSession(t *testing.T) {
	// Arrange
	svc, mocks := createTestSessionService(time.Now())

	session := &entity.QuizSession{
		ID: 1, UserID: 10, QuizID: 5,
		FinishedAt: timePtr(time.Now().Add(-time.Hour)),
	}
	mocks.sessionRepo.On("GetByID", uint(1)).Return(session, nil)

	// Act
	_, err := svc.SubmitAnswer(10, 1, 30, 301, 2000)

	// Assert
	assert.ErrorIs(t, err, ErrSessionFinished)
	mocks.answerRepo.AssertNotCalled(t, "SaveWithScore")
}

func TestSessionService_GetSession_NotOwner(t *testing.T) {
	// Arrange
	svc, mocks := createTestSessionService(time.Now())

	session := &entity.QuizSession{ID: 1, UserID: 99, QuizID: 5}
	mocks.sessionRepo.On("GetByID", uint(1)).Return(session, nil)

	// Act
	_, _, err := svc.GetSession(10, 1)

	// Assert
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
	mocks.answerRepo.AssertNotCalled(t, "GetBySession")
}
