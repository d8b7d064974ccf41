package handlers

import (
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// telegramTransport adapts tgbotapi to the moderation pipeline's Transport
// and the approval workflow's Publisher.
type telegramTransport struct {
	bot       *tgbotapi.BotAPI
	channelID int64
}

func (t *telegramTransport) DeleteMessage(chatID int64, messageID int) error {
	_, err := t.bot.Request(tgbotapi.NewDeleteMessage(chatID, messageID))
	return err
}

func (t *telegramTransport) RestrictMember(chatID, userID int64, until time.Time) error {
	_, err := t.bot.Request(tgbotapi.RestrictChatMemberConfig{
		ChatMemberConfig: tgbotapi.ChatMemberConfig{
			ChatID: chatID,
			UserID: userID,
		},
		UntilDate: until.Unix(),
		Permissions: &tgbotapi.ChatPermissions{
			CanSendMessages: false,
		},
	})
	return err
}

func (t *telegramTransport) SendPrivate(userID int64, text string) error {
	_, err := t.bot.Send(tgbotapi.NewMessage(userID, text))
	return err
}

func (t *telegramTransport) NotifyUser(userID int64, text string) error {
	return t.SendPrivate(userID, text)
}

// PublishListing posts the caption and media to the publication channel. The
// caption rides on the first photo; listings without photos go out as plain
// text.
func (t *telegramTransport) PublishListing(caption string, photoIDs []string) error {
	if len(photoIDs) == 0 {
		_, err := t.bot.Send(tgbotapi.NewMessage(t.channelID, caption))
		return err
	}

	media := make([]interface{}, 0, len(photoIDs))
	for i, id := range photoIDs {
		photo := tgbotapi.NewInputMediaPhoto(tgbotapi.FileID(id))
		if i == 0 {
			photo.Caption = caption
		}
		media = append(media, photo)
	}
	_, err := t.bot.SendMediaGroup(tgbotapi.NewMediaGroup(t.channelID, media))
	return err
}
