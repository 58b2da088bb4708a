package notify

import (
	"fmt"

	"github.com/twilio/twilio-go"
	api "github.com/twilio/twilio-go/rest/api/v2010"
	"go.uber.org/zap"

	"github.com/qoverflow/backend/internal/config"
	"github.com/qoverflow/backend/internal/models"
)

// SMSNotifier tells answer authors by SMS when their answer is accepted.
// It is disabled (every call a no-op) when twilio credentials are not
// configured, so local setups need no account.
type SMSNotifier struct {
	client *twilio.RestClient
	from   string
	log    *zap.Logger
}

func NewSMSNotifier(cfg *config.Config, log *zap.Logger) *SMSNotifier {
	n := &SMSNotifier{from: cfg.TwilioFromNumber, log: log}
	if cfg.TwilioAccountSID == "" || cfg.TwilioAuthToken == "" || cfg.TwilioFromNumber == "" {
		return n
	}
	n.client = twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: cfg.TwilioAccountSID,
		Password: cfg.TwilioAuthToken,
	})
	return n
}

// Enabled reports whether credentials were configured.
func (n *SMSNotifier) Enabled() bool {
	return n.client != nil
}

// AnswerAccepted sends the acceptance SMS. Delivery failures are logged,
// never surfaced to the accept operation.
func (n *SMSNotifier) AnswerAccepted(author models.User, question models.Question) {
	if n.client == nil || author.Phone == "" {
		return
	}

	body := fmt.Sprintf("Your answer to %q was accepted as the best answer.", question.Title)

	params := &api.CreateMessageParams{}
	params.SetTo(author.Phone)
	params.SetFrom(n.from)
	params.SetBody(body)

	if _, err := n.client.Api.CreateMessage(params); err != nil {
		n.log.Warn("sms delivery failed",
			zap.Int("user_id", author.ID),
			zap.Error(err),
		)
	}
}
