package telegramauth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Коды ошибок валидации initData.
// Стабильные теги: клиент и middleware опираются на них, не меняйте значения.
const (
	CodeNoInitData   = "NO_INIT_DATA"
	CodeNoBotToken   = "NO_BOT_TOKEN"
	CodeParseError   = "PARSE_ERROR"
	CodeHashMismatch = "HASH_MISMATCH"
	CodeExpired      = "EXPIRED"
	CodeNoUser       = "NO_USER"
)

// MaxInitDataAge - максимальный допустимый возраст подписи (auth_date)
const MaxInitDataAge = 24 * time.Hour

// secretKeyPrefix - константа протокола Telegram: ключ подписи выводится
// как HMAC-SHA256("WebAppData", bot_token)
const secretKeyPrefix = "WebAppData"

// ValidationError описывает отказ валидации initData с машинно-читаемым кодом
type ValidationError struct {
	Code    string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("telegram init data: %s (%s)", e.Message, e.Code)
}

// newError создает ValidationError с заданным кодом
func newError(code, message string) *ValidationError {
	return &ValidationError{Code: code, Message: message}
}

// WebAppUser - данные пользователя, которые Telegram вкладывает в поле "user"
type WebAppUser struct {
	ID           int64  `json:"id"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name,omitempty"`
	Username     string `json:"username,omitempty"`
	LanguageCode string `json:"language_code,omitempty"`
	IsPremium    bool   `json:"is_premium,omitempty"`
	PhotoURL     string `json:"photo_url,omitempty"`
}

// InitData - результат успешной валидации: подписанные поля initData
type InitData struct {
	fields map[string]string
}

// Field возвращает значение подписанного поля (пустая строка, если его нет)
func (d InitData) Field(key string) string {
	return d.fields[key]
}

// AuthDate возвращает время подписи initData (нулевое время, если auth_date отсутствует)
func (d InitData) AuthDate() time.Time {
	raw, ok := d.fields["auth_date"]
	if !ok {
		return time.Time{}
	}
	sec, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || sec <= 0 {
		return time.Time{}
	}
	return time.Unix(sec, 0)
}

// User извлекает и декодирует поле "user".
// Возвращает NO_USER, если поле отсутствует, и PARSE_ERROR, если JSON некорректен.
func (d InitData) User() (*WebAppUser, error) {
	raw, ok := d.fields["user"]
	if !ok || raw == "" {
		return nil, newError(CodeNoUser, "user field is missing from init data")
	}
	var user WebAppUser
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		return nil, newError(CodeParseError, "failed to decode user field")
	}
	return &user, nil
}

// Validator проверяет подпись Telegram Mini App initData по схеме платформы:
// data-check-string подписывается HMAC-SHA256 ключом, выведенным из токена бота.
type Validator struct {
	botToken string
	maxAge   time.Duration

	// now подменяется в тестах
	now func() time.Time
}

// NewValidator создает валидатор initData для заданного токена бота.
// Пустой токен не является ошибкой конструктора: его отсутствие
// проявляется на каждом запросе как NO_BOT_TOKEN.
func NewValidator(botToken string) *Validator {
	return &Validator{
		botToken: botToken,
		maxAge:   MaxInitDataAge,
		now:      time.Now,
	}
}

// Validate проверяет подпись и срок действия initData.
// Порядок проверок важен: срок действия (auth_date) проверяется ТОЛЬКО после
// успешной проверки подписи, чтобы подделанный payload не раскрывал ветку Expired.
func (v *Validator) Validate(initData string) (InitData, error) {
	if initData == "" {
		return InitData{}, newError(CodeNoInitData, "init data is empty")
	}
	if v.botToken == "" {
		return InitData{}, newError(CodeNoBotToken, "bot token is not configured")
	}

	values, err := url.ParseQuery(initData)
	if err != nil {
		return InitData{}, newError(CodeParseError, "init data is not a valid query string")
	}

	fields := make(map[string]string, len(values))
	for key, vals := range values {
		if len(vals) == 0 {
			continue
		}
		// Дубликаты ключей: побеждает последнее вхождение (семантика query string)
		fields[key] = vals[len(vals)-1]
	}

	providedHash, ok := fields["hash"]
	if !ok || providedHash == "" {
		return InitData{}, newError(CodeHashMismatch, "hash field is missing")
	}
	delete(fields, "hash")

	// Собираем data-check-string: пары key=value, отсортированные
	// лексикографически по полной строке "key=value", разделитель - перевод строки
	pairs := make([]string, 0, len(fields))
	for key, value := range fields {
		pairs = append(pairs, key+"="+value)
	}
	sort.Strings(pairs)
	dataCheckString := strings.Join(pairs, "\n")

	// Двухэтапная схема подписи Telegram:
	// secret_key = HMAC-SHA256(key=bot_token, msg="WebAppData")
	// signature  = HMAC-SHA256(key=secret_key, msg=data_check_string)
	keyMAC := hmac.New(sha256.New, []byte(v.botToken))
	keyMAC.Write([]byte(secretKeyPrefix))
	secretKey := keyMAC.Sum(nil)

	sigMAC := hmac.New(sha256.New, secretKey)
	sigMAC.Write([]byte(dataCheckString))
	expected := sigMAC.Sum(nil)

	// Ошибка декодирования hex и несовпадение подписи неразличимы для клиента.
	// hmac.Equal выполняет сравнение за постоянное время.
	provided, err := hex.DecodeString(providedHash)
	if err != nil || !hmac.Equal(expected, provided) {
		return InitData{}, newError(CodeHashMismatch, "signature verification failed")
	}

	if raw, ok := fields["auth_date"]; ok {
		if authDate, err := strconv.ParseInt(raw, 10, 64); err == nil && authDate > 0 {
			age := v.now().Unix() - authDate
			if age > int64(v.maxAge.Seconds()) {
				return InitData{}, newError(CodeExpired, "init data is expired")
			}
		}
	}

	return InitData{fields: fields}, nil
}
