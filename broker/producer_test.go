package broker

import (
	"testing"
	"time"

	natsserver "github.com/nats-io/nats-server/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_PublishSubscribeRoundTrip(t *testing.T) {
	srv := natsserver.RunRandClientPortServer()
	defer srv.Shutdown()

	client, err := InitClient(srv.ClientURL())
	require.NoError(t, err)
	defer client.Close()

	var producer Producer = client

	received := make(chan Message, len(AllTopics))
	require.NoError(t, SubscribeAll(client, AllTopics, func(msg Message) { received <- msg }))
	require.NoError(t, client.conn.Flush())

	require.NoError(t, producer.Publish(TopicForEntity("user"), []byte(`{"event":"user.created"}`)))

	select {
	case msg := <-received:
		assert.Equal(t, UserEventsTopic, msg.Subject)
		assert.Equal(t, `{"event":"user.created"}`, string(msg.Data))
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for message")
	}
}

func TestNilClient_NotConnected(t *testing.T) {
	var client *Client
	assert.ErrorIs(t, client.Publish(TaskEventsTopic, nil), ErrNotConnected)
	assert.ErrorIs(t, client.Subscribe(TaskEventsTopic, func(Message) {}), ErrNotConnected)
	assert.NotPanics(t, client.Close)
}

func TestInitClient_Unreachable(t *testing.T) {
	_, err := InitClient("nats://127.0.0.1:1")
	assert.Error(t, err)
}

func TestTopicForEntity(t *testing.T) {
	assert.Equal(t, TaskEventsTopic, TopicForEntity("task"))
	assert.Equal(t, UserEventsTopic, TopicForEntity("user"))
	assert.Equal(t, TaskEventsTopic, TopicForEntity("unknown"))
	assert.ElementsMatch(t, []string{TaskEventsTopic, UserEventsTopic}, AllTopics)
}
