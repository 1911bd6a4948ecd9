//go:build integration

package mqtt

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/kilianp07/fleetsim/core/report"
)

// TestFrameReachesBroker publishes a frame to a real Mosquitto broker and reads it back.
func TestFrameReachesBroker(t *testing.T) {
	ctx := context.Background()
	req := tc.ContainerRequest{
		Image:        "eclipse-mosquitto:1.6",
		ExposedPorts: []string{"1883/tcp"},
		WaitingFor:   wait.ForListeningPort("1883/tcp"),
	}
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Fatalf("failed to start container: %v", err)
	}
	defer func() {
		if err := container.Terminate(ctx); err != nil {
			t.Fatalf("failed to terminate container: %v", err)
		}
	}()

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("failed to get container host: %v", err)
	}
	port, err := container.MappedPort(ctx, "1883")
	if err != nil {
		t.Fatalf("failed to get mapped port: %v", err)
	}
	broker := fmt.Sprintf("tcp://%s:%s", host, port.Port())

	msgCh := make(chan []byte, 1)
	sub := paho.NewClient(paho.NewClientOptions().AddBroker(broker).SetClientID("reader"))
	if tok := sub.Connect(); tok.Wait() && tok.Error() != nil {
		t.Fatalf("reader connect: %v", tok.Error())
	}
	defer sub.Disconnect(250)
	if tok := sub.Subscribe("fleetsim/+/frame", 1, func(_ paho.Client, m paho.Message) {
		msgCh <- m.Payload()
	}); tok.Wait() && tok.Error() != nil {
		t.Fatalf("subscribe: %v", tok.Error())
	}

	cli, err := NewPahoClient(Config{Broker: broker, ClientID: "writer", QoS: 1})
	if err != nil {
		t.Fatalf("failed to connect: %v", err)
	}
	defer cli.Disconnect()

	if err := cli.PublishFrame(report.Frame{RunID: "it", Tick: 7}); err != nil {
		t.Fatalf("publish: %v", err)
	}

	select {
	case got := <-msgCh:
		var f report.Frame
		if err := json.Unmarshal(got, &f); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if f.RunID != "it" || f.Tick != 7 {
			t.Fatalf("unexpected frame %+v", f)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timeout waiting for frame")
	}
}
