package moderation

import (
	"fmt"
	"log"
	"time"

	"github.com/mmada170699-cpu/RiyadhRE/internal/classify"
	"github.com/mmada170699-cpu/RiyadhRE/internal/geo"
)

type Action int

const (
	ActionAllow Action = iota
	// ActionWarn deletes the message and notifies the sender, but records no
	// violation and applies no restriction.
	ActionWarn
	// ActionBan deletes the message, records a violation and restricts the
	// sender for the escalated duration.
	ActionBan
)

const (
	ReasonOffTopic      = "off-topic"
	ReasonOutsideRegion = "outside-region"
	ReasonNoLicense     = "no-license"
)

type Verdict struct {
	Action   Action
	Reason   string
	Count    int
	Restrict time.Duration
}

// GroupMessage is the transport-independent view of one inbound group
// message. Text carries the union of the message body and media caption.
type GroupMessage struct {
	SenderID  int64
	ChatID    int64
	MessageID int
	Text      string
	Latitude  *float64
	Longitude *float64
}

// Transport is the outbound side of the pipeline. The tgbotapi adapter lives
// in the handlers package; tests supply a fake.
type Transport interface {
	DeleteMessage(chatID int64, messageID int) error
	RestrictMember(chatID, userID int64, until time.Time) error
	SendPrivate(userID int64, text string) error
}

// Pipeline evaluates one group message against the moderation rules in fixed
// precedence order and applies the resulting side effects.
type Pipeline struct {
	AdminID    int64
	Region     geo.Region
	Classifier *classify.Classifier
	Ledger     *Ledger
	Transport  Transport
}

// Classify runs the rule chain without side effects. First match wins.
func (p *Pipeline) Classify(msg GroupMessage) Verdict {
	if msg.SenderID == p.AdminID {
		return Verdict{Action: ActionAllow}
	}
	if p.Classifier.IsOffTopic(msg.Text) {
		return Verdict{Action: ActionBan, Reason: ReasonOffTopic}
	}
	outOfRegion := msg.Latitude != nil && msg.Longitude != nil &&
		!p.Region.Contains(*msg.Latitude, *msg.Longitude)
	if p.Classifier.MentionsExcludedCity(msg.Text) || outOfRegion {
		return Verdict{Action: ActionBan, Reason: ReasonOutsideRegion}
	}
	if !p.Classifier.HasLicenseToken(msg.Text) {
		return Verdict{Action: ActionWarn, Reason: ReasonNoLicense}
	}
	return Verdict{Action: ActionAllow}
}

// Process classifies the message and carries out deletions, ledger updates,
// restrictions and notices. Transport failures are logged and swallowed;
// they never abort message handling.
func (p *Pipeline) Process(msg GroupMessage) Verdict {
	verdict := p.Classify(msg)
	switch verdict.Action {
	case ActionAllow:
		return verdict

	case ActionWarn:
		if err := p.Transport.DeleteMessage(msg.ChatID, msg.MessageID); err != nil {
			log.Printf("moderation: delete message %d failed: %v", msg.MessageID, err)
		}
		if err := p.Transport.SendPrivate(msg.SenderID, noticeText(verdict)); err != nil {
			log.Printf("moderation: notice to %d failed: %v", msg.SenderID, err)
		}
		return verdict

	case ActionBan:
		if err := p.Transport.DeleteMessage(msg.ChatID, msg.MessageID); err != nil {
			log.Printf("moderation: delete message %d failed: %v", msg.MessageID, err)
		}
		count, err := p.Ledger.RecordViolation(msg.SenderID, verdict.Reason)
		if err != nil {
			log.Printf("moderation: ledger update for %d failed: %v", msg.SenderID, err)
			count = 1
		}
		verdict.Count = count
		verdict.Restrict = DurationFor(count)
		if err := p.Transport.RestrictMember(msg.ChatID, msg.SenderID, time.Now().Add(verdict.Restrict)); err != nil {
			log.Printf("moderation: restrict %d failed: %v", msg.SenderID, err)
		}
		if err := p.Transport.SendPrivate(msg.SenderID, noticeText(verdict)); err != nil {
			log.Printf("moderation: notice to %d failed: %v", msg.SenderID, err)
		}
		return verdict
	}
	return verdict
}

func noticeText(v Verdict) string {
	switch v.Reason {
	case ReasonOffTopic:
		return fmt.Sprintf(
			"تم حذف رسالتك لأنها خارج موضوع المجموعة، وتم تقييدك لمدة %s.\nYour message was removed as off-topic and you are restricted for %s.",
			humanDuration(v.Restrict), humanDuration(v.Restrict))
	case ReasonOutsideRegion:
		return fmt.Sprintf(
			"تم حذف رسالتك لأن العرض خارج نطاق الرياض، وتم تقييدك لمدة %s.\nYour message was removed because the listing is outside the Riyadh region; you are restricted for %s.",
			humanDuration(v.Restrict), humanDuration(v.Restrict))
	case ReasonNoLicense:
		return "تم حذف رسالتك لعدم احتوائها على رقم ترخيص فال. أضف رقم الترخيص وأعد الإرسال.\nYour message was removed because it carries no FAL license number. Add the license number and post again."
	}
	return ""
}

func humanDuration(d time.Duration) string {
	days := int(d.Hours()) / 24
	if days >= 1 {
		return fmt.Sprintf("%dd", days)
	}
	return fmt.Sprintf("%dh", int(d.Hours()))
}
