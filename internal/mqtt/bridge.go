package mqtt

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"firewatch/internal/logger"
	"firewatch/internal/service"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

// DefaultTopic matches per-room telemetry topics like sensors/R101/data.
const DefaultTopic = "sensors/+/data"

// Bridge subscribes to sensor telemetry topics and feeds the samples through
// the same ingestion path as the HTTP endpoint, for fleets that publish over
// MQTT instead of POSTing.
type Bridge struct {
	client mqtt.Client
	ingest service.Ingest
	topic  string
	log    *logger.Logger
}

// NewBridge connects to the broker. The bridge is optional infrastructure:
// callers skip it entirely when no broker is configured.
func NewBridge(broker, clientID, topic string, ingest service.Ingest, log *logger.Logger) (*Bridge, error) {
	if topic == "" {
		topic = DefaultTopic
	}

	opts := mqtt.NewClientOptions()
	opts.AddBroker(broker)
	opts.SetClientID(clientID)
	opts.SetAutoReconnect(true)
	opts.SetCleanSession(true)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("connect mqtt broker %s: %w", broker, token.Error())
	}

	return &Bridge{client: client, ingest: ingest, topic: topic, log: log}, nil
}

// Subscribe starts consuming telemetry. Malformed or rejected samples are
// dropped with a log line; they never stop the subscription.
func (b *Bridge) Subscribe() error {
	token := b.client.Subscribe(b.topic, 1, b.onMessage)
	if token.Wait(); token.Error() != nil {
		return fmt.Errorf("subscribe %s: %w", b.topic, token.Error())
	}
	b.log.Infow("mqtt bridge subscribed", "topic", b.topic)
	return nil
}

func (b *Bridge) onMessage(_ mqtt.Client, msg mqtt.Message) {
	params, err := decodeSample(msg.Payload())
	if err != nil {
		b.log.Infow("dropping malformed mqtt sample", "topic", msg.Topic(), "err", err)
		return
	}
	if params.RoomID == "" {
		params.RoomID = roomFromTopic(msg.Topic())
	}
	if err := b.ingest.Ingest(context.Background(), params); err != nil {
		b.log.Infow("mqtt sample rejected", "topic", msg.Topic(), "err", err)
	}
}

// Close disconnects from the broker, allowing in-flight work to finish.
func (b *Bridge) Close() {
	b.client.Disconnect(250)
}

func decodeSample(payload []byte) (service.ReadingParams, error) {
	var p service.ReadingParams
	if err := json.Unmarshal(payload, &p); err != nil {
		return service.ReadingParams{}, fmt.Errorf("decode sample: %w", err)
	}
	return p, nil
}

// roomFromTopic extracts the room segment of sensors/<room>/data topics.
func roomFromTopic(topic string) string {
	parts := strings.Split(topic, "/")
	if len(parts) >= 2 {
		return parts[1]
	}
	return ""
}
