package notify

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"veilmarket/utils"
)

// Notifier is the contract for the out-of-process notification collaborator.
// Recipients are real account identifiers; implementations must not persist
// them anywhere a non-privileged reader could see.
type Notifier interface {
	Send(recipient, templateID string, data map[string]any) error
}

// message is the wire payload published for downstream delivery workers
type message struct {
	Recipient  string         `json:"recipient"`
	TemplateID string         `json:"template_id"`
	Data       map[string]any `json:"data"`
	SentAt     time.Time      `json:"sent_at"`
}

// NATSNotifier publishes notifications to notify.<template_id> subjects for
// the delivery service to consume.
type NATSNotifier struct {
	conn *nats.Conn
}

// NewNATSNotifier connects to the NATS server at url.
func NewNATSNotifier(url string) (*NATSNotifier, error) {
	conn, err := nats.Connect(url,
		nats.Name("veilmarket-engine"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("notify: failed to connect to NATS at %s: %w", url, err)
	}
	return &NATSNotifier{conn: conn}, nil
}

// Send publishes the notification; delivery is best effort.
func (n *NATSNotifier) Send(recipient, templateID string, data map[string]any) error {
	payload, err := json.Marshal(message{
		Recipient:  recipient,
		TemplateID: templateID,
		Data:       data,
		SentAt:     time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("notify: failed to marshal %s notification: %w", templateID, err)
	}

	subject := "notify." + templateID
	if err := n.conn.Publish(subject, payload); err != nil {
		return fmt.Errorf("notify: failed to publish to %s: %w", subject, err)
	}
	return nil
}

// Close drains the connection.
func (n *NATSNotifier) Close() {
	if n.conn != nil {
		n.conn.Close()
	}
}

// LogNotifier records notifications in the application log. Used in tests
// and in deployments without a NATS server configured.
type LogNotifier struct{}

// NewLogNotifier returns a log-only notifier.
func NewLogNotifier() LogNotifier {
	return LogNotifier{}
}

// Send logs the notification without the recipient's real identifier.
func (LogNotifier) Send(recipient, templateID string, data map[string]any) error {
	utils.Info("notification (log only)", map[string]any{
		"template_id": templateID,
		"fields":      len(data),
	})
	return nil
}
