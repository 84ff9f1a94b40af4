//go:build integration

package integration

import (
	"context"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swiftex-sim/swiftex/internal/infrastructure/kafka"
)

const (
	fullFlowConsumeTimeout = 60 * time.Second // time for pickup + dispatch + tick-driven delivery
	fastTickInterval       = "200ms"
	serviceStartupWait     = 8 * time.Second
)

// TestCommandFlowE2E verifies the full command-gateway flow against a real
// process: RegisterParcel → ProcessPickupQueue → Dispatch, then the
// background tick scheduler delivering the parcel over the seeded
// Islamabad(2)->Rawalpindi(4) 20km road, confirmed on TopicParcelLifecycle.
func TestCommandFlowE2E(t *testing.T) {
	kafkaC := SetupKafkaContainer(t)

	brokersStr := strings.Join(kafkaC.Brokers, ",")
	env := append(os.Environ(),
		"WATERMILL_KAFKA_BROKERS="+brokersStr,
		"SWIFTEX_TICK_INTERVAL="+fastTickInterval,
	)

	binDir := t.TempDir()
	binPath := filepath.Join(binDir, "swiftex")
	buildCmd := exec.Command("go", "build", "-o", binPath, "./cmd/swiftex")
	buildCmd.Dir = repoRoot(t)
	buildCmd.Env = os.Environ()
	out, err := buildCmd.CombinedOutput()
	require.NoError(t, err, "build failed: %s", string(out))

	cmd := exec.Command(binPath)
	cmd.Dir = repoRoot(t)
	cmd.Env = env
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	require.NoError(t, cmd.Start())
	defer func() {
		if cmd.Process != nil {
			_ = cmd.Process.Signal(os.Interrupt)
			_ = cmd.Wait()
		}
	}()

	time.Sleep(serviceStartupWait)

	cfg := sarama.NewConfig()
	cfg.Producer.Return.Successes = true
	cfg.Consumer.Offsets.Initial = sarama.OffsetNewest
	producer, err := sarama.NewSyncProducer(kafkaC.Brokers, cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = producer.Close() })

	var (
		results    []kafka.CommandResult
		lifecycles []kafka.ParcelLifecycleEvent
		mu         sync.Mutex
	)
	multiHandler := &multiTopicHandler{
		onMessage: func(topic string, b []byte) {
			mu.Lock()
			defer mu.Unlock()
			switch topic {
			case kafka.TopicCommandResult:
				var m kafka.CommandResult
				if json.Unmarshal(b, &m) == nil {
					results = append(results, m)
				}
			case kafka.TopicParcelLifecycle:
				var m kafka.ParcelLifecycleEvent
				if json.Unmarshal(b, &m) == nil {
					lifecycles = append(lifecycles, m)
				}
			}
		},
	}

	consumer, err := sarama.NewConsumerGroup(kafkaC.Brokers, "integration-e2e", cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = consumer.Close() })

	topics := []string{kafka.TopicCommandResult, kafka.TopicParcelLifecycle}
	consumeCtx, consumeCancel := context.WithTimeout(context.Background(), fullFlowConsumeTimeout)
	t.Cleanup(consumeCancel)

	go func() {
		for {
			if err := consumer.Consume(consumeCtx, topics, multiHandler); err != nil {
				return
			}
			if consumeCtx.Err() != nil {
				return
			}
		}
	}()
	time.Sleep(2 * time.Second) // let consumer join and get partition assignments

	const parcelID = 9001

	publish(t, producer, kafka.CommandEnvelope{
		CorrelationID: "e2e-register",
		Command:       kafka.CommandRegisterParcel,
		Payload: mustMarshal(t, kafka.RegisterParcelPayload{
			ID:           parcelID,
			SourceCityID: 2, // Islamabad
			DestCityID:   4, // Rawalpindi, 20km seeded road
			Weight:       5,
			Priority:     2, // Med
		}),
	})

	publish(t, producer, kafka.CommandEnvelope{
		CorrelationID: "e2e-pickup",
		Command:       kafka.CommandProcessPickupQueue,
	})

	publish(t, producer, kafka.CommandEnvelope{
		CorrelationID: "e2e-dispatch",
		Command:       kafka.CommandDispatch,
	})

	// Wait until the parcel's lifecycle shows a delivered or failed terminal
	// event, driven by the background tick scheduler.
	deadline := time.Now().Add(fullFlowConsumeTimeout)
	for time.Now().Before(deadline) {
		mu.Lock()
		done := hasTerminalLifecycle(lifecycles, parcelID)
		mu.Unlock()
		if done {
			break
		}
		time.Sleep(300 * time.Millisecond)
	}

	mu.Lock()
	resultsCopy := make([]kafka.CommandResult, len(results))
	copy(resultsCopy, results)
	lifecyclesCopy := make([]kafka.ParcelLifecycleEvent, len(lifecycles))
	copy(lifecyclesCopy, lifecycles)
	mu.Unlock()

	require.GreaterOrEqual(t, len(resultsCopy), 3, "expected one result per issued command")
	for _, r := range resultsCopy {
		assert.True(t, r.OK, "command %s should succeed: %s", r.Command, r.Error)
	}

	require.True(t, hasTerminalLifecycle(lifecyclesCopy, parcelID), "expected a terminal lifecycle event for parcel %d", parcelID)
}

func hasTerminalLifecycle(events []kafka.ParcelLifecycleEvent, parcelID int) bool {
	for _, e := range events {
		if e.ParcelID != parcelID {
			continue
		}
		switch e.Status {
		case "Delivered", "MISSING", "Delivery Failed", "Returned to Sender":
			return true
		}
	}
	return false
}

func publish(t *testing.T, producer sarama.SyncProducer, envelope kafka.CommandEnvelope) {
	t.Helper()
	payload, err := json.Marshal(envelope)
	require.NoError(t, err)
	_, _, err = producer.SendMessage(&sarama.ProducerMessage{
		Topic: kafka.TopicCommandIssued,
		Value: sarama.ByteEncoder(payload),
	})
	require.NoError(t, err)
}

func mustMarshal(t *testing.T, v interface{}) json.RawMessage {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return b
}

func repoRoot(t *testing.T) string {
	t.Helper()
	dir, err := os.Getwd()
	require.NoError(t, err)
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatal("go.mod not found")
		}
		dir = parent
	}
}

// multiTopicHandler dispatches messages to onMessage with topic name.
type multiTopicHandler struct {
	onMessage func(topic string, payload []byte)
}

func (h *multiTopicHandler) Setup(_ sarama.ConsumerGroupSession) error   { return nil }
func (h *multiTopicHandler) Cleanup(_ sarama.ConsumerGroupSession) error { return nil }
func (h *multiTopicHandler) ConsumeClaim(sess sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	topic := claim.Topic()
	for msg := range claim.Messages() {
		if msg != nil && msg.Value != nil && h.onMessage != nil {
			h.onMessage(topic, msg.Value)
		}
		sess.MarkMessage(msg, "")
	}
	return nil
}
