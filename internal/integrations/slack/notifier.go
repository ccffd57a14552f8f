package slackbot

import (
	"context"
	"fmt"
	"log"
	"strings"

	"callclassifier/internal/classify"
	"callclassifier/internal/config"
	"callclassifier/internal/domain"
	"callclassifier/internal/httpx"

	"github.com/slack-go/slack"
)

// Notifier posts classified calls to one channel.
type Notifier struct {
	api       *slack.Client
	channelID string
}

// NewNotifier returns nil when Slack is not configured. A nil *Notifier is
// safe to call and does nothing.
func NewNotifier(cfg config.Config) *Notifier {
	if !cfg.SlackConfigured() {
		return nil
	}
	api := slack.New(cfg.SlackBotToken, slack.OptionHTTPClient(httpx.ExternalHTTPClient()))
	return &Notifier{api: api, channelID: cfg.SlackChannelID}
}

func newNotifierWithAPI(api *slack.Client, channelID string) *Notifier {
	return &Notifier{api: api, channelID: channelID}
}

func (n *Notifier) Enabled() bool { return n != nil }

// NotifyCall posts the one-line summary followed by the full report.
func (n *Notifier) NotifyCall(ctx context.Context, label string, r domain.CallResult) error {
	if n == nil {
		return nil
	}
	_, ts, err := n.api.PostMessageContext(ctx, n.channelID, slack.MsgOptionText(FormatCallMessage(label, r), false))
	if err != nil {
		log.Printf("slack notify failed channel=%s: %v", n.channelID, err)
		return fmt.Errorf("posting to slack: %w", err)
	}
	log.Printf("slack notify channel=%s ts=%s category=%s", n.channelID, ts, r.Classification.PrimaryCategory)
	return nil
}

// NotifyBatch posts one line per call plus the batch totals.
func (n *Notifier) NotifyBatch(ctx context.Context, source string, lines []string) error {
	if n == nil || len(lines) == 0 {
		return nil
	}
	var b strings.Builder
	fmt.Fprintf(&b, ":telephone_receiver: *%s* processed %d call(s)\n", source, len(lines))
	for _, line := range lines {
		b.WriteString("• " + line + "\n")
	}
	if _, _, err := n.api.PostMessageContext(ctx, n.channelID, slack.MsgOptionText(b.String(), false)); err != nil {
		log.Printf("slack batch notify failed channel=%s: %v", n.channelID, err)
		return fmt.Errorf("posting to slack: %w", err)
	}
	return nil
}

func FormatCallMessage(label string, r domain.CallResult) string {
	c := r.Classification
	var b strings.Builder
	if label != "" {
		fmt.Fprintf(&b, "*%s*: ", label)
	}
	fmt.Fprintf(&b, "%s (%s%% confidence), %s sentiment, %s urgency\n",
		classify.DepartmentName(c.PrimaryCategory), c.Confidence(), r.Analysis.Sentiment, r.Analysis.UrgencyLevel)
	b.WriteString("```")
	b.WriteString(strings.Trim(r.Report, "\n"))
	b.WriteString("```")
	return b.String()
}
