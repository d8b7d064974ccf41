package handlers

import (
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/mmada170699-cpu/RiyadhRE/internal/classify"
	"github.com/mmada170699-cpu/RiyadhRE/internal/config"
	"github.com/mmada170699-cpu/RiyadhRE/internal/geo"
	"github.com/mmada170699-cpu/RiyadhRE/internal/i18n"
	"github.com/mmada170699-cpu/RiyadhRE/internal/intake"
	"github.com/mmada170699-cpu/RiyadhRE/internal/models"
	"github.com/mmada170699-cpu/RiyadhRE/internal/moderation"
	"github.com/mmada170699-cpu/RiyadhRE/internal/store"
	"github.com/mmada170699-cpu/RiyadhRE/internal/workflow"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const (
	commandStart      = "start"
	commandWhereAmI   = "whereami"
	commandPinPolicy  = "pin_policy"
	commandNew        = "new"
	commandMyListings = "my_listings"
	commandSearch     = "search"
	commandPending    = "pending"
	commandApprove    = "approve"
	commandReject     = "reject"
	commandCancel     = "cancel"

	reminderInitialDelay = time.Minute
	reminderInterval     = 6 * time.Hour

	ownerListLimit   = 10
	pendingListLimit = 20
)

const policyText = `📜 قواعد المجموعة:
• عروض عقارات الرياض فقط (داخل نطاق 70 كم من المركز).
• يجب أن يحتوي كل عرض على رقم ترخيص فال.
• تُحذف الرسائل الخارجة عن الموضوع ويُقيد المخالف المتكرر.
• لإضافة إعلان موثق في القناة راسل البوت بالخاص: /new

Group rules: Riyadh property listings only, FAL license number required.
Off-topic and out-of-region posts are removed; repeat offenders are restricted.
DM the bot /new to submit a curated listing.`

const reminderText = `تذكير: الإعلانات داخل الرياض فقط ومع رقم ترخيص فال.
لإضافة إعلان موثق في القناة أرسل /new للبوت في الخاص.
Reminder: Riyadh listings with a FAL license number only. DM /new to submit.`

// Bot wires the Telegram transport to the moderation pipeline, the intake
// conversation and the approval workflow.
type Bot struct {
	api      *tgbotapi.BotAPI
	cfg      *config.Config
	pipeline *moderation.Pipeline
	intake   *intake.Manager
	listings *store.Listings
	ledger   *moderation.Ledger
	approval *workflow.Approval
}

// RunBot builds the bot and blocks on the long-poll update loop. It returns
// only when the update channel closes.
func RunBot(cfg *config.Config, listings *store.Listings, ledger *moderation.Ledger) error {
	api, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return fmt.Errorf("bot init failed: %w", err)
	}
	setTelegramClient(api, cfg.BotToken)

	transport := &telegramTransport{bot: api, channelID: cfg.ChannelID}
	b := &Bot{
		api: api,
		cfg: cfg,
		pipeline: &moderation.Pipeline{
			AdminID: cfg.AdminID,
			Region: geo.Region{
				Lat:      cfg.CenterLat,
				Lon:      cfg.CenterLon,
				RadiusKM: cfg.RadiusKM,
			},
			Classifier: classify.NewClassifier(cfg.OffTopicKeywords, cfg.ExcludedCities),
			Ledger:     ledger,
			Transport:  transport,
		},
		intake:   intake.NewManager(listings),
		listings: listings,
		ledger:   ledger,
		approval: &workflow.Approval{Listings: listings, Publisher: transport},
	}

	go b.runReminder()

	log.Printf("bot started as @%s", api.Self.UserName)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	for update := range api.GetUpdatesChan(u) {
		b.dispatch(update)
	}
	return nil
}

func (b *Bot) dispatch(update tgbotapi.Update) {
	switch {
	case update.Message != nil:
		b.handleMessage(update.Message)
	case update.CallbackQuery != nil:
		b.handleCallback(update.CallbackQuery)
	case update.MyChatMember != nil:
		b.handleMembershipChange(update.MyChatMember)
	}
}

func (b *Bot) handleMessage(msg *tgbotapi.Message) {
	if msg.From == nil || msg.From.IsBot {
		return
	}

	if msg.Chat.IsPrivate() {
		if msg.IsCommand() {
			b.handleCommand(msg)
			return
		}
		b.handleIntakeMessage(msg)
		return
	}

	// Group traffic: commands are dispatched, everything else is moderated.
	if msg.IsCommand() {
		b.handleCommand(msg)
		return
	}
	b.moderateGroupMessage(msg)
}

func (b *Bot) moderateGroupMessage(msg *tgbotapi.Message) {
	gm := moderation.GroupMessage{
		SenderID:  msg.From.ID,
		ChatID:    msg.Chat.ID,
		MessageID: msg.MessageID,
		Text:      strings.TrimSpace(msg.Text + " " + msg.Caption),
	}
	if msg.Location != nil {
		lat, lon := msg.Location.Latitude, msg.Location.Longitude
		gm.Latitude = &lat
		gm.Longitude = &lon
	}

	verdict := b.pipeline.Process(gm)
	reason := verdict.Reason
	if reason == "" {
		reason = "none"
	}
	verdictCounter.WithLabelValues(actionLabel(verdict.Action), reason).Inc()
}

func actionLabel(a moderation.Action) string {
	switch a {
	case moderation.ActionWarn:
		return "warn"
	case moderation.ActionBan:
		return "ban"
	default:
		return "allow"
	}
}

func (b *Bot) handleCommand(msg *tgbotapi.Message) {
	switch msg.Command() {
	case commandStart:
		b.reply(msg.Chat.ID, i18n.T("ar", "welcome"))
	case commandWhereAmI:
		b.reply(msg.Chat.ID, fmt.Sprintf("Chat ID: %d\nType: %s\nTitle: %s",
			msg.Chat.ID, msg.Chat.Type, msg.Chat.Title))
	case commandPinPolicy:
		if !b.requireAdmin(msg) {
			return
		}
		b.postAndPinPolicy(b.cfg.GroupID)
	case commandNew:
		b.startIntake(msg)
	case commandCancel:
		b.intake.Abandon(msg.From.ID)
		b.reply(msg.Chat.ID, i18n.T("ar", "cancelled"))
	case commandMyListings:
		b.handleMyListings(msg)
	case commandSearch:
		b.handleSearch(msg)
	case commandPending:
		if !b.requireAdmin(msg) {
			return
		}
		b.handlePending(msg)
	case commandApprove:
		if !b.requireAdmin(msg) {
			return
		}
		b.handleApprove(msg)
	case commandReject:
		if !b.requireAdmin(msg) {
			return
		}
		b.handleReject(msg)
	}
}

func (b *Bot) requireAdmin(msg *tgbotapi.Message) bool {
	if msg.From.ID == b.cfg.AdminID {
		return true
	}
	b.reply(msg.Chat.ID, "⛔ هذا الأمر للمشرف فقط. / Admins only.")
	return false
}

// --- intake conversation ---

func (b *Bot) startIntake(msg *tgbotapi.Message) {
	if !msg.Chat.IsPrivate() {
		b.reply(msg.Chat.ID, "راسلني في الخاص لإضافة إعلان. / DM me to submit a listing.")
		return
	}
	s := b.intake.Start(msg.From.ID, displayName(msg.From))
	b.sendPrompt(msg.Chat.ID, s)
}

func (b *Bot) handleIntakeMessage(msg *tgbotapi.Message) {
	if b.intake.Get(msg.From.ID) == nil {
		b.reply(msg.Chat.ID, i18n.T("ar", "welcome"))
		return
	}
	b.applyIntakeInput(msg.Chat.ID, msg.From.ID, messageToInput(msg))
}

func (b *Bot) handleCallback(cb *tgbotapi.CallbackQuery) {
	if cb.From == nil || cb.Message == nil {
		return
	}
	// Acknowledge so the client stops the button spinner.
	if _, err := b.api.Request(tgbotapi.NewCallback(cb.ID, "")); err != nil {
		log.Printf("callback ack failed: %v", err)
	}

	var in intake.Input
	switch {
	case strings.HasPrefix(cb.Data, "lang_"):
		in = intake.Input{Kind: intake.InputChoice, Choice: strings.TrimPrefix(cb.Data, "lang_")}
	case strings.HasPrefix(cb.Data, "deal_"):
		in = intake.Input{Kind: intake.InputChoice, Choice: strings.TrimPrefix(cb.Data, "deal_")}
	case cb.Data == "skip":
		in = intake.Input{Kind: intake.InputSkip}
	case cb.Data == "done":
		in = intake.Input{Kind: intake.InputDone}
	default:
		return
	}
	b.applyIntakeInput(cb.Message.Chat.ID, cb.From.ID, in)
}

func (b *Bot) applyIntakeInput(chatID, userID int64, in intake.Input) {
	s := b.intake.Get(userID)
	if s == nil {
		return
	}
	lang := s.Lang
	prevState := s.State

	res, listingID, err := b.intake.Input(userID, in)
	if err != nil {
		b.reply(chatID, i18n.T(lang, "submit_failed"))
		return
	}

	if res.Done {
		listingsCreated.Inc()
		b.reply(chatID, i18n.Tf(lang, "submitted", listingID))
		b.notifyAdminNewListing(listingID)
		return
	}

	if !res.Advanced {
		// Photo accumulation stays in the same state by design; only nag on
		// genuinely rejected input.
		if !(prevState == intake.StatePhotos && in.Kind == intake.InputPhoto) {
			b.reply(chatID, i18n.T(lang, invalidKey(prevState)))
			if s := b.intake.Get(userID); s != nil {
				b.sendPrompt(chatID, s)
			}
		}
		return
	}

	if s := b.intake.Get(userID); s != nil {
		b.sendPrompt(chatID, s)
	}
}

func (b *Bot) notifyAdminNewListing(id uint) {
	l, err := b.listings.Get(id)
	if err != nil {
		log.Printf("load new listing %d failed: %v", id, err)
		return
	}
	text := fmt.Sprintf("📥 إعلان جديد بانتظار المراجعة:\n\n%s\n\n/approve %d أو /reject %d <سبب>",
		workflow.RenderCaption(l), id, id)
	b.reply(b.cfg.AdminID, text)
}

// messageToInput maps one private Telegram message to a conversation input.
// Explicit skip/done words work as well as the inline buttons.
func messageToInput(msg *tgbotapi.Message) intake.Input {
	if msg.Location != nil {
		return intake.Input{
			Kind:      intake.InputLocation,
			Latitude:  msg.Location.Latitude,
			Longitude: msg.Location.Longitude,
		}
	}
	if len(msg.Photo) > 0 {
		// Telegram sends several sizes; the last is the original.
		return intake.Input{Kind: intake.InputPhoto, PhotoID: msg.Photo[len(msg.Photo)-1].FileID}
	}

	text := strings.TrimSpace(msg.Text)
	switch strings.ToLower(text) {
	case "skip", "تخطي":
		return intake.Input{Kind: intake.InputSkip}
	case "done", "تم":
		return intake.Input{Kind: intake.InputDone}
	}
	return intake.Input{Kind: intake.InputText, Text: text}
}

func invalidKey(state intake.State) string {
	switch state {
	case intake.StatePrice, intake.StateSize, intake.StateBedrooms, intake.StateBathrooms:
		return "invalid_number"
	case intake.StateLicense:
		return "invalid_license"
	case intake.StateDeed:
		return "invalid_deed"
	default:
		return "invalid_input"
	}
}

var promptKeys = map[intake.State]string{
	intake.StateSelectLanguage: "choose_language",
	intake.StateSelectDealKind: "choose_deal",
	intake.StatePropertyType:   "ask_property_type",
	intake.StateDistrict:       "ask_district",
	intake.StatePrice:          "ask_price",
	intake.StateSize:           "ask_size",
	intake.StateBedrooms:       "ask_bedrooms",
	intake.StateBathrooms:      "ask_bathrooms",
	intake.StateDescription:    "ask_description",
	intake.StateContact:        "ask_contact",
	intake.StateLicense:        "ask_license",
	intake.StateDeed:           "ask_deed",
	intake.StateLocation:       "ask_location",
	intake.StatePhotos:         "ask_photos",
}

func (b *Bot) sendPrompt(chatID int64, s *intake.Session) {
	key, ok := promptKeys[s.State]
	if !ok {
		return
	}

	out := tgbotapi.NewMessage(chatID, i18n.T(s.Lang, key))
	switch s.State {
	case intake.StateSelectLanguage:
		out.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData("العربية", "lang_ar"),
				tgbotapi.NewInlineKeyboardButtonData("English", "lang_en"),
			),
		)
	case intake.StateSelectDealKind:
		out.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData(i18n.T(s.Lang, "deal_sale"), "deal_"+models.DealSale),
				tgbotapi.NewInlineKeyboardButtonData(i18n.T(s.Lang, "deal_rent"), "deal_"+models.DealRent),
			),
		)
	case intake.StateDeed, intake.StateLocation:
		out.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData(i18n.T(s.Lang, "btn_skip"), "skip"),
			),
		)
	case intake.StatePhotos:
		out.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData(i18n.T(s.Lang, "btn_done"), "done"),
			),
		)
	}

	if _, err := b.api.Send(out); err != nil {
		log.Printf("prompt send failed: %v", err)
	}
}

// --- listing queries ---

func (b *Bot) handleMyListings(msg *tgbotapi.Message) {
	list, err := b.listings.ListByOwner(msg.From.ID, ownerListLimit)
	if err != nil {
		log.Printf("my_listings query failed: %v", err)
		return
	}
	if len(list) == 0 {
		b.reply(msg.Chat.ID, i18n.T("ar", "no_listings"))
		return
	}

	var text strings.Builder
	for _, l := range list {
		fmt.Fprintf(&text, "#%d — %s %s، %s — %d ريال — %s\n",
			l.ID, l.PropertyType, dealLabel(l.DealKind), l.District, l.Price, statusLabel(l.Status))
	}
	b.reply(msg.Chat.ID, text.String())
}

const searchUsage = "الاستخدام: /search <sale|rent> <أدنى>-<أعلى> <الحي>\nUsage: /search <sale|rent> <min>-<max> <district>"

func (b *Bot) handleSearch(msg *tgbotapi.Message) {
	filter, err := parseSearchArgs(msg.CommandArguments())
	if err != nil {
		b.reply(msg.Chat.ID, searchUsage)
		return
	}

	results, err := b.listings.Search(filter)
	if err != nil {
		log.Printf("search query failed: %v", err)
		return
	}
	if len(results) == 0 {
		b.reply(msg.Chat.ID, "لا توجد نتائج. / No results.")
		return
	}

	var text strings.Builder
	for _, l := range results {
		fmt.Fprintf(&text, "#%d — %s %s، %s — %d ريال — %s\n",
			l.ID, l.PropertyType, dealLabel(l.DealKind), l.District, l.Price, l.Contact)
	}
	b.reply(msg.Chat.ID, text.String())
}

// parseSearchArgs understands "<deal> <min>-<max> <district words>"; the
// price range and district are optional.
func parseSearchArgs(args string) (store.SearchFilter, error) {
	fields := strings.Fields(args)
	if len(fields) == 0 {
		return store.SearchFilter{}, fmt.Errorf("empty search")
	}

	var f store.SearchFilter
	switch strings.ToLower(fields[0]) {
	case models.DealSale:
		f.DealKind = models.DealSale
	case models.DealRent:
		f.DealKind = models.DealRent
	default:
		return store.SearchFilter{}, fmt.Errorf("unknown deal kind %q", fields[0])
	}
	rest := fields[1:]

	if len(rest) > 0 && strings.Contains(rest[0], "-") {
		parts := strings.SplitN(rest[0], "-", 2)
		min, err1 := strconv.ParseUint(strings.TrimSpace(parts[0]), 10, 64)
		max, err2 := strconv.ParseUint(strings.TrimSpace(parts[1]), 10, 64)
		if err1 != nil || err2 != nil || min > max {
			return store.SearchFilter{}, fmt.Errorf("bad price range %q", rest[0])
		}
		f.MinPrice, f.MaxPrice = min, max
		rest = rest[1:]
	}

	f.District = strings.Join(rest, " ")
	return f, nil
}

// --- admin workflow ---

func (b *Bot) handlePending(msg *tgbotapi.Message) {
	list, err := b.listings.ListPending(pendingListLimit)
	if err != nil {
		log.Printf("pending query failed: %v", err)
		return
	}
	if len(list) == 0 {
		b.reply(msg.Chat.ID, "لا توجد إعلانات بانتظار المراجعة. / Nothing pending.")
		return
	}

	var text strings.Builder
	text.WriteString("📥 بانتظار المراجعة:\n")
	for _, l := range list {
		fmt.Fprintf(&text, "#%d — %s %s، %s — %d ريال — %s\n",
			l.ID, l.PropertyType, dealLabel(l.DealKind), l.District, l.Price, l.CreatedAt.Format("02.01.2006"))
	}
	b.reply(msg.Chat.ID, text.String())
}

func (b *Bot) handleApprove(msg *tgbotapi.Message) {
	id, _, ok := parseIDArg(msg.CommandArguments())
	if !ok {
		b.reply(msg.Chat.ID, "الاستخدام: /approve <id>")
		return
	}

	switch err := b.approval.Approve(id); {
	case err == nil:
		listingsApproved.Inc()
		b.reply(msg.Chat.ID, fmt.Sprintf("✅ تم نشر الإعلان #%d في القناة.", id))
	case err == store.ErrNotFound:
		b.reply(msg.Chat.ID, fmt.Sprintf("❌ لا يوجد إعلان بالرقم %d.", id))
	case err == store.ErrAlreadyInStatus:
		b.reply(msg.Chat.ID, fmt.Sprintf("ℹ️ الإعلان #%d منشور مسبقاً.", id))
	case err == store.ErrBadTransition:
		b.reply(msg.Chat.ID, fmt.Sprintf("🚫 الإعلان #%d مرفوض ولا يمكن نشره.", id))
	default:
		log.Printf("approve %d failed: %v", id, err)
		b.reply(msg.Chat.ID, fmt.Sprintf("❌ تعذر نشر الإعلان #%d.", id))
	}
}

func (b *Bot) handleReject(msg *tgbotapi.Message) {
	id, reason, ok := parseIDArg(msg.CommandArguments())
	if !ok {
		b.reply(msg.Chat.ID, "الاستخدام: /reject <id> [سبب]")
		return
	}

	switch err := b.approval.Reject(id, reason); {
	case err == nil:
		listingsRejected.Inc()
		b.reply(msg.Chat.ID, fmt.Sprintf("🚫 تم رفض الإعلان #%d.", id))
	case err == store.ErrNotFound:
		b.reply(msg.Chat.ID, fmt.Sprintf("❌ لا يوجد إعلان بالرقم %d.", id))
	default:
		log.Printf("reject %d failed: %v", id, err)
		b.reply(msg.Chat.ID, fmt.Sprintf("❌ تعذر رفض الإعلان #%d.", id))
	}
}

// parseIDArg splits "<id> [free text]" command arguments.
func parseIDArg(args string) (uint, string, bool) {
	fields := strings.Fields(args)
	if len(fields) == 0 {
		return 0, "", false
	}
	id, err := strconv.ParseUint(fields[0], 10, 32)
	if err != nil || id == 0 {
		return 0, "", false
	}
	return uint(id), strings.Join(fields[1:], " "), true
}

// --- group policy & reminder ---

func (b *Bot) handleMembershipChange(ev *tgbotapi.ChatMemberUpdated) {
	if ev.NewChatMember.User == nil || ev.NewChatMember.User.ID != b.api.Self.ID {
		return
	}
	status := ev.NewChatMember.Status
	if (status == "member" || status == "administrator") && ev.Chat.ID == b.cfg.GroupID {
		b.postAndPinPolicy(ev.Chat.ID)
	}
}

func (b *Bot) postAndPinPolicy(chatID int64) {
	sent, err := b.api.Send(tgbotapi.NewMessage(chatID, policyText))
	if err != nil {
		log.Printf("policy post failed: %v", err)
		return
	}
	_, err = b.api.Request(tgbotapi.PinChatMessageConfig{
		ChatID:              chatID,
		MessageID:           sent.MessageID,
		DisableNotification: true,
	})
	if err != nil {
		log.Printf("policy pin failed: %v", err)
	}
}

// runReminder posts the recurring group reminder. Fire-and-forget; it never
// touches handler state.
func (b *Bot) runReminder() {
	time.Sleep(reminderInitialDelay)
	b.reply(b.cfg.GroupID, reminderText)

	ticker := time.NewTicker(reminderInterval)
	defer ticker.Stop()
	for range ticker.C {
		b.reply(b.cfg.GroupID, reminderText)
	}
}

// --- helpers ---

func (b *Bot) reply(chatID int64, text string) {
	if strings.TrimSpace(text) == "" {
		return
	}
	if _, err := b.api.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		log.Printf("send to %d failed: %v", chatID, err)
	}
}

func displayName(u *tgbotapi.User) string {
	if u.UserName != "" {
		return "@" + u.UserName
	}
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

func dealLabel(kind string) string {
	if kind == models.DealRent {
		return "للإيجار"
	}
	return "للبيع"
}

func statusLabel(status string) string {
	switch status {
	case models.StatusApproved:
		return "✅ منشور"
	case models.StatusRejected:
		return "🚫 مرفوض"
	default:
		return "⏳ قيد المراجعة"
	}
}
