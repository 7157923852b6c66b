package kafka_test

import (
	"hotelres/infras/kafka"
	"testing"

	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type confirmed struct {
	TransactionID string `json:"transaction_id"`
	Total         int64  `json:"total"`
}

func TestMessageRoundTrip(t *testing.T) {
	message := kafka.Message{Key: "TXN-1", Value: confirmed{TransactionID: "TXN-1", Total: 41920}}

	msg, err := message.ToKafkaMessage("booking.confirmed")
	require.NoError(t, err)
	assert.Equal(t, "booking.confirmed", msg.Topic)
	assert.Equal(t, []byte("TXN-1"), msg.Key)
	assert.JSONEq(t, `{"transaction_id":"TXN-1","total":41920}`, string(msg.Value))

	decoded, err := kafka.Decode[confirmed](msg)
	require.NoError(t, err)
	assert.Equal(t, confirmed{TransactionID: "TXN-1", Total: 41920}, decoded)
}

func TestToKafkaMessage_Unmarshalable(t *testing.T) {
	message := kafka.Message{Key: "bad", Value: make(chan int)}

	_, err := message.ToKafkaMessage("booking.confirmed")
	assert.Error(t, err)
}

func TestDecode_Invalid(t *testing.T) {
	_, err := kafka.Decode[confirmed](kafkaGo.Message{Value: []byte("{not json")})
	assert.Error(t, err)
}
