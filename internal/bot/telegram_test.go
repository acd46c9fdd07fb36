package bot

import (
	"context"
	"errors"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/prefeitura-rio/bot-massagistas/internal/logging"
	"github.com/prefeitura-rio/bot-massagistas/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRequester struct {
	sent     []tgbotapi.Chattable
	requests []tgbotapi.Chattable
	err      error
}

func (f *fakeRequester) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.sent = append(f.sent, c)
	return tgbotapi.Message{}, f.err
}

func (f *fakeRequester) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	f.requests = append(f.requests, c)
	if f.err != nil {
		return nil, f.err
	}
	return &tgbotapi.APIResponse{Ok: true}, nil
}

func commandUpdate(text string) tgbotapi.Update {
	update := textUpdate(7, text)
	cmdLen := len(text)
	for i, r := range text {
		if r == ' ' {
			cmdLen = i
			break
		}
	}
	update.Message.Entities = []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: cmdLen}}
	return update
}

func TestFromTelegramUpdate(t *testing.T) {
	tests := []struct {
		name   string
		update tgbotapi.Update
		want   models.InboundMessage
		ok     bool
	}{
		{
			name:   "no message",
			update: tgbotapi.Update{UpdateID: 1},
			ok:     false,
		},
		{
			name:   "plain text",
			update: textUpdate(3, "bom dia"),
			want:   models.InboundMessage{UpdateID: 3, ChatID: testChatID, MessageID: 3, SenderID: 42, Text: "bom dia"},
			ok:     true,
		},
		{
			name:   "command addressed to the bot",
			update: commandUpdate("/vermassagistas@MassagistasBot"),
			want: models.InboundMessage{UpdateID: 7, ChatID: testChatID, MessageID: 7, SenderID: 42,
				Text: "/vermassagistas@MassagistasBot", IsCommand: true, Command: CommandList},
			ok: true,
		},
		{
			name: "new members",
			update: tgbotapi.Update{
				UpdateID: 9,
				Message: &tgbotapi.Message{
					MessageID: 9,
					Chat:      &tgbotapi.Chat{ID: testChatID},
					From:      &tgbotapi.User{ID: 42},
					NewChatMembers: []tgbotapi.User{
						{ID: 100, FirstName: "Carla", UserName: "carla"},
						{ID: 101, IsBot: true, FirstName: "OutroBot"},
					},
				},
			},
			want: models.InboundMessage{UpdateID: 9, ChatID: testChatID, MessageID: 9, SenderID: 42,
				NewChatMembers: []models.ChatMember{
					{ID: 100, FirstName: "Carla", Username: "carla"},
					{ID: 101, FirstName: "OutroBot", IsBot: true},
				}},
			ok: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := FromTelegramUpdate(tt.update)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFromTelegramUpdate_BotSender(t *testing.T) {
	update := textUpdate(1, "oi")
	update.Message.From.IsBot = true

	got, ok := FromTelegramUpdate(update)
	require.True(t, ok)
	assert.True(t, got.FromBot)
}

func TestUpdateKind(t *testing.T) {
	assert.Equal(t, "other", UpdateKind(tgbotapi.Update{}))
	assert.Equal(t, "text", UpdateKind(textUpdate(1, "oi")))
	assert.Equal(t, "command", UpdateKind(commandUpdate("/queromassagem")))

	joined := textUpdate(2, "")
	joined.Message.NewChatMembers = []tgbotapi.User{{ID: 1}}
	assert.Equal(t, "new_members", UpdateKind(joined))
}

func TestTelegramMessenger_Reply(t *testing.T) {
	api := &fakeRequester{}
	messenger := NewTelegramMessenger(api, logging.Logger)

	err := messenger.Reply(context.Background(), testChatID, "*oi*", models.ParseModeMarkdown)
	require.NoError(t, err)

	require.Len(t, api.sent, 1)
	msg, ok := api.sent[0].(tgbotapi.MessageConfig)
	require.True(t, ok)
	assert.Equal(t, testChatID, msg.ChatID)
	assert.Equal(t, "*oi*", msg.Text)
	assert.Equal(t, tgbotapi.ModeMarkdown, msg.ParseMode)
}

func TestTelegramMessenger_ReplyErrors(t *testing.T) {
	api := &fakeRequester{err: errors.New("Bad Request: chat not found")}
	messenger := NewTelegramMessenger(api, logging.Logger)

	err := messenger.Reply(context.Background(), testChatID, "oi", models.ParseModePlain)
	assert.ErrorContains(t, err, "chat not found")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = NewTelegramMessenger(&fakeRequester{}, logging.Logger).Reply(ctx, testChatID, "oi", models.ParseModePlain)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRegisterWebhook(t *testing.T) {
	api := &fakeRequester{}

	require.NoError(t, RegisterWebhook(api, "https://bot.example.com/telegram-webhook"))

	require.Len(t, api.requests, 1)
	webhook, ok := api.requests[0].(tgbotapi.WebhookConfig)
	require.True(t, ok)
	assert.Equal(t, "https://bot.example.com/telegram-webhook", webhook.URL.String())
}

func TestRegisterWebhook_Errors(t *testing.T) {
	assert.Error(t, RegisterWebhook(&fakeRequester{}, "://not a url"))
	assert.Error(t, RegisterWebhook(&fakeRequester{err: errors.New("Unauthorized")}, "https://bot.example.com/hook"))
}

func TestClearWebhook(t *testing.T) {
	api := &fakeRequester{}
	require.NoError(t, ClearWebhook(api))
	require.Len(t, api.requests, 1)
	_, ok := api.requests[0].(tgbotapi.DeleteWebhookConfig)
	assert.True(t, ok)

	assert.Error(t, ClearWebhook(&fakeRequester{err: errors.New("Unauthorized")}))
}

func TestWelcomeText(t *testing.T) {
	assert.Contains(t, WelcomeText("Carla"), "👋 Olá, *Carla*!")
	assert.Contains(t, WelcomeText("  "), "👋 Olá, *visitante*!")
	assert.Contains(t, WelcomeText("ana_b"), "*ana\\_b*")
	assert.Contains(t, WelcomeText("Carla"), "/queromassagem")
}

func TestInvalidSubmissionText(t *testing.T) {
	text := InvalidSubmissionText([]string{models.FieldNome, models.FieldAtendeDomicilio})
	assert.Contains(t, text, "nome, atendeDomicilio")
	assert.Contains(t, text, "/soumassagista")
}
