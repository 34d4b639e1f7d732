package queue

import (
	"context"
	"encoding/json"
	"log"

	"github.com/IBM/sarama"

	"viralshorts/media"
)

// ConsumerConfig holds Kafka consumer configuration.
type ConsumerConfig struct {
	Brokers []string
	Topic   string
	GroupID string
	// Process handles one merge request. Returning an error leaves the
	// message unmarked so it can be redelivered.
	Process func(ctx context.Context, req media.MergeRequest) error
}

// Consumer feeds merge requests from a Kafka topic into the pipeline. It gives
// batch/automation callers the same entry point the HTTP API offers, with
// at-least-once semantics: malformed or invalid messages are marked and
// skipped, processing failures are retried on redelivery.
type Consumer struct {
	group   sarama.ConsumerGroup
	topic   string
	groupID string
	process func(ctx context.Context, req media.MergeRequest) error
	ready   chan bool
}

func NewConsumer(cfg ConsumerConfig) (*Consumer, error) {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Version = sarama.V3_6_0_0
	saramaConfig.Consumer.Group.Rebalance.GroupStrategies = []sarama.BalanceStrategy{sarama.NewBalanceStrategyRoundRobin()}
	saramaConfig.Consumer.Offsets.Initial = sarama.OffsetNewest
	saramaConfig.Consumer.Return.Errors = true

	group, err := sarama.NewConsumerGroup(cfg.Brokers, cfg.GroupID, saramaConfig)
	if err != nil {
		return nil, err
	}

	return &Consumer{
		group:   group,
		topic:   cfg.Topic,
		groupID: cfg.GroupID,
		process: cfg.Process,
		ready:   make(chan bool),
	}, nil
}

// Start begins consuming. It returns once the consumer group session is up;
// consumption continues until ctx is canceled or Close is called.
func (c *Consumer) Start(ctx context.Context) error {
	handler := &groupHandler{consumer: c, ready: c.ready}

	go func() {
		for {
			if err := c.group.Consume(ctx, []string{c.topic}, handler); err != nil {
				if err == context.Canceled {
					log.Println("Kafka consumer context canceled")
					return
				}
				log.Printf("Error from Kafka consumer: %v", err)
			}

			if ctx.Err() != nil {
				return
			}
			handler.ready = make(chan bool)
		}
	}()

	<-c.ready
	log.Printf("Kafka consumer started (group: %s, topic: %s)", c.groupID, c.topic)

	go func() {
		for err := range c.group.Errors() {
			log.Printf("Kafka consumer error: %v", err)
		}
	}()

	return nil
}

// Close gracefully shuts down the consumer.
func (c *Consumer) Close() error {
	log.Println("Closing Kafka consumer...")
	return c.group.Close()
}

type groupHandler struct {
	consumer *Consumer
	ready    chan bool
}

func (h *groupHandler) Setup(sarama.ConsumerGroupSession) error {
	close(h.ready)
	return nil
}

func (h *groupHandler) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *groupHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message := <-claim.Messages():
			if message == nil {
				return nil
			}

			log.Printf("Received merge request: partition=%d, offset=%d, key=%s",
				message.Partition, message.Offset, string(message.Key))

			if handleMessage(session.Context(), h.consumer.process, message.Value) {
				session.MarkMessage(message, "")
			}

		case <-session.Context().Done():
			return nil
		}
	}
}

// handleMessage decodes, validates and processes one message. It reports
// whether the message should be marked as consumed: invalid payloads are
// marked (retrying them cannot help), processing failures are not.
func handleMessage(ctx context.Context, process func(context.Context, media.MergeRequest) error, payload []byte) bool {
	var req media.MergeRequest
	if err := json.Unmarshal(payload, &req); err != nil {
		log.Printf("Skipping malformed merge request: %v", err)
		return true
	}

	if err := req.Validate(); err != nil {
		log.Printf("Skipping invalid merge request: %v", err)
		return true
	}

	if err := process(ctx, req); err != nil {
		log.Printf("Failed to process merge request: %v", err)
		return false
	}

	return true
}
