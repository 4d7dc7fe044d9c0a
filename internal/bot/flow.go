package bot

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// handleFlowInput advances the operator's product-creation flow by
// one step. Invalid input re-prompts without changing state.
func (b *Bot) handleFlowInput(msg *tgbotapi.Message) {
	operator := msg.From.ID
	chatID := msg.Chat.ID

	sess, ok := b.sessions.Get(operator)
	if !ok {
		return
	}

	switch sess.State {
	case StateAwaitingName:
		name := strings.TrimSpace(msg.Text)
		if name == "" {
			b.send(chatID, "Name can't be empty, try again:")
			return
		}
		b.sessions.SetName(operator, name)
		b.sendWithKeyboard(chatID, "📝 Enter the product description:", cancelKeyboard())

	case StateAwaitingDescription:
		b.sessions.SetDescription(operator, strings.TrimSpace(msg.Text))
		b.sendWithKeyboard(chatID, "💰 Enter the price (whole number):", cancelKeyboard())

	case StateAwaitingPrice:
		price, err := strconv.Atoi(strings.TrimSpace(msg.Text))
		if err != nil || price < 0 {
			b.send(chatID, "❌ Price must be a non-negative whole number. Try again:")
			return
		}
		b.sessions.SetPrice(operator, price)
		b.sendWithKeyboard(chatID, "📁 Pick a category:", categoryKeyboard(b.settings.Categories))

	case StateAwaitingCategory:
		cat, ok := b.settings.CategoryByLabel(msg.Text)
		if !ok {
			b.sendWithKeyboard(chatID, "❌ Unknown category, pick one from the keyboard:", categoryKeyboard(b.settings.Categories))
			return
		}
		b.sessions.SetCategory(operator, cat.ID)
		b.sendWithKeyboard(chatID,
			fmt.Sprintf("📷 Send up to %d photos one by one, or paste image links (one per line).\n\nPress %s when finished.", maxPhotos, btnDone),
			imagesKeyboard())

	case StateAwaitingImages:
		b.handleImagesText(msg, sess)
	}
}

// handleImagesText processes text arriving at the images step: the
// finish buttons, or a pasted list of image links.
func (b *Bot) handleImagesText(msg *tgbotapi.Message, sess Session) {
	operator := msg.From.ID
	chatID := msg.Chat.ID

	switch msg.Text {
	case btnSkip:
		b.finalizeProduct(chatID, operator, []string{placeholderImage})
		return
	case btnDone:
		b.finalizeProduct(chatID, operator, nil)
		return
	}

	// Link mode: accept the text only when every non-empty line is an
	// http(s) URL, otherwise it is probably a stray message.
	links := splitLinks(msg.Text)
	if links == nil {
		b.send(chatID, fmt.Sprintf("Send photos or links, then press %s.", btnDone))
		return
	}
	b.finalizeProduct(chatID, operator, links)
}

func splitLinks(text string) []string {
	var links []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if !strings.HasPrefix(line, "http://") && !strings.HasPrefix(line, "https://") {
			return nil
		}
		links = append(links, line)
	}
	return links
}

// finalizeProduct ends the flow and creates the product. The draft is
// read from the session as it is cleared, not from the caller's
// snapshot: an acknowledged upload that landed after the snapshot is
// still included. overrideImages, when non-nil, replaces the
// collected images (Skip and link mode). The session is cleared
// regardless of the outcome so late uploads can no longer attach.
func (b *Bot) finalizeProduct(chatID, operator int64, overrideImages []string) {
	sess, ok := b.sessions.Clear(operator)
	if !ok {
		return
	}
	draft := sess.Draft
	if overrideImages != nil {
		draft.Images = overrideImages
	}
	if len(draft.Images) == 0 {
		draft.Images = []string{placeholderImage}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var description *string
	if draft.Description != "" {
		description = &draft.Description
	}
	var categoryID *string
	if draft.CategoryID != "" {
		categoryID = &draft.CategoryID
	}

	product, err := b.catalog.Create(ctx, draft.Name, draft.Price, draft.Images, description, categoryID)
	if err != nil {
		b.sendWithKeyboard(chatID, "❌ Failed to create product: "+err.Error(), mainMenuKeyboard())
		return
	}
	b.sendWithKeyboard(chatID,
		fmt.Sprintf("✅ Product created!\n\n📦 %s\n💰 %d\n📷 %d photo(s)\n🆔 %s",
			product.Name, product.Price, len(product.Images), product.ID),
		mainMenuKeyboard())
}

// handlePhoto starts an asynchronous upload of an attached photo. The
// upload captures the flow id; by the time it lands the flow may have
// been cancelled or finished, in which case the result is discarded.
func (b *Bot) handlePhoto(msg *tgbotapi.Message) {
	operator := msg.From.ID
	chatID := msg.Chat.ID

	sess, ok := b.sessions.Get(operator)
	if !ok || sess.State != StateAwaitingImages {
		b.send(chatID, fmt.Sprintf("Photos are only accepted while adding a product. Press %s to start.", btnAddProduct))
		return
	}
	if len(sess.Draft.Images) >= maxPhotos {
		b.send(chatID, fmt.Sprintf("❌ Photo limit reached (%d). Press %s to finish.", maxPhotos, btnDone))
		return
	}

	// Telegram lists photo sizes smallest first.
	fileID := msg.Photo[len(msg.Photo)-1].FileID
	seq := len(sess.Draft.Images) + 1

	status, err := b.api.Send(tgbotapi.NewMessage(chatID, fmt.Sprintf("⏳ Uploading photo %d/%d...", seq, maxPhotos)))
	if err != nil {
		log.Printf("bot: send failed: %v", err)
		return
	}

	flowID := sess.FlowID
	b.uploads.Add(1)
	go func() {
		defer b.uploads.Done()
		b.uploadPhoto(chatID, operator, flowID, fileID, status.MessageID, seq)
	}()
}

func (b *Bot) uploadPhoto(chatID, operator int64, flowID uint64, fileID string, statusMsgID, seq int) {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	url, err := b.fetchAndUpload(ctx, fileID)
	if err != nil {
		log.Printf("bot: photo upload failed: %v", err)
		b.editStatus(chatID, statusMsgID, fmt.Sprintf("❌ Upload failed for photo %d, send it again.", seq))
		return
	}

	count, ok := b.sessions.AppendImage(operator, flowID, url)
	if !ok {
		// The flow ended while we were uploading. Drop the result and
		// remove the stale status line.
		if _, err := b.api.Request(tgbotapi.NewDeleteMessage(chatID, statusMsgID)); err != nil {
			log.Printf("bot: delete message failed: %v", err)
		}
		return
	}
	b.editStatus(chatID, statusMsgID, fmt.Sprintf("✅ Photo %d/%d uploaded.", count, maxPhotos))
}

func (b *Bot) fetchAndUpload(ctx context.Context, fileID string) (string, error) {
	fileURL, err := b.api.GetFileDirectURL(fileID)
	if err != nil {
		return "", fmt.Errorf("resolve file: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fileURL, nil)
	if err != nil {
		return "", err
	}
	resp, err := b.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("download: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("download: unexpected status %d", resp.StatusCode)
	}

	url, err := b.uploader.Upload(ctx, resp.Body)
	if err != nil {
		return "", fmt.Errorf("upload: %w", err)
	}
	return url, nil
}

func (b *Bot) editStatus(chatID int64, messageID int, text string) {
	if _, err := b.api.Send(tgbotapi.NewEditMessageText(chatID, messageID, text)); err != nil {
		log.Printf("bot: edit failed: %v", err)
	}
}
