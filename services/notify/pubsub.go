package notify

import (
	"context"
	"fmt"

	"github.com/MarcGrol/onlineshop/lib/mypubsub"
)

// PubSubNotifier publishes every message on a topic for downstream consumers.
type PubSubNotifier struct {
	pubsub mypubsub.PubSub
	topic  string
}

func NewPubSubNotifier(c context.Context, pubsub mypubsub.PubSub, topic string) (*PubSubNotifier, error) {
	err := pubsub.CreateTopic(c, topic)
	if err != nil {
		return nil, fmt.Errorf("error creating topic %s: %w", topic, err)
	}
	return &PubSubNotifier{
		pubsub: pubsub,
		topic:  topic,
	}, nil
}

func (p *PubSubNotifier) Send(c context.Context, text string) error {
	err := p.pubsub.Publish(c, p.topic, text)
	if err != nil {
		return fmt.Errorf("error publishing on topic %s: %w", p.topic, err)
	}
	return nil
}
