package bot

import (
	"context"
	"fmt"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Bot - минимальный Telegram-бот мини-аппа: отвечает на /start кнопкой,
// открывающей мини-апп. Вся игровая логика живет в HTTP API.
type Bot struct {
	api        *tgbotapi.BotAPI
	miniAppURL string
}

// New создает бота для заданного токена
func New(token, miniAppURL string) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot api: %w", err)
	}

	log.Printf("[Bot] Авторизован как @%s", api.Self.UserName)

	return &Bot{
		api:        api,
		miniAppURL: miniAppURL,
	}, nil
}

// Run запускает long-polling; блокируется до отмены контекста
func (b *Bot) Run(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			log.Println("[Bot] Остановка по сигналу контекста")
			b.api.StopReceivingUpdates()
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			b.handleUpdate(update)
		}
	}
}

func (b *Bot) handleUpdate(update tgbotapi.Update) {
	if update.Message == nil || !update.Message.IsCommand() {
		return
	}
	if update.Message.Command() != "start" {
		return
	}

	msg := tgbotapi.NewMessage(update.Message.Chat.ID, "Добро пожаловать в викторину! Нажмите кнопку, чтобы начать.")
	if b.miniAppURL != "" {
		msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.InlineKeyboardButton{
					Text:   "Играть",
					WebApp: &tgbotapi.WebAppInfo{URL: b.miniAppURL},
				},
			),
		)
	}

	if _, err := b.api.Send(msg); err != nil {
		log.Printf("[Bot] Ошибка отправки ответа на /start: %v", err)
	}
}
