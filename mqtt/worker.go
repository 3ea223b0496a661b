package mqtt

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"greenhouse/config"
	"greenhouse/utils"

	"github.com/cenkalti/backoff/v4"
	paho "github.com/eclipse/paho.mqtt.golang"
)

// Worker bridges the device broker into the measurement store. Devices
// publish JSON payloads on greenhouse/<device>; rows get the same
// server-assigned timestamp and numeric policy as the HTTP ingest path.
type Worker struct {
	client paho.Client
	topic  string
}

// NewWorker connects to the broker, retrying with exponential backoff.
func NewWorker(brokerURL, clientID, topic string) (*Worker, error) {
	opts := paho.NewClientOptions()
	opts.AddBroker(brokerURL)
	opts.SetClientID(clientID)
	opts.SetAutoReconnect(true)
	opts.SetConnectionLostHandler(func(_ paho.Client, err error) {
		log.Printf("MQTT connection lost: %v", err)
	})

	client := paho.NewClient(opts)

	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = 30 * time.Second
	err := backoff.Retry(func() error {
		if token := client.Connect(); token.Wait() && token.Error() != nil {
			log.Printf("MQTT connect failed: %v", token.Error())
			return token.Error()
		}
		return nil
	}, bo)
	if err != nil {
		return nil, err
	}

	log.Printf("Connected to MQTT broker at %s", brokerURL)
	return &Worker{client: client, topic: topic}, nil
}

// Subscribe starts consuming device payloads.
func (w *Worker) Subscribe() error {
	token := w.client.Subscribe(w.topic, 0, w.handleMessage)
	if token.Wait() && token.Error() != nil {
		return token.Error()
	}
	log.Printf("Subscribed to topic: %s", w.topic)
	return nil
}

// Stop disconnects from the broker.
func (w *Worker) Stop() {
	w.client.Disconnect(250)
}

func (w *Worker) handleMessage(_ paho.Client, msg paho.Message) {
	var payload map[string]interface{}
	if err := json.Unmarshal(msg.Payload(), &payload); err != nil {
		utils.IngestRejected.WithLabelValues("malformed_json").Inc()
		log.Printf("MQTT payload on %s is not JSON: %v", msg.Topic(), err)
		return
	}

	m, err := utils.MeasurementFromPayload(payload, config.StrictNumericIngest)
	if err != nil {
		utils.IngestRejected.WithLabelValues("invalid_payload").Inc()
		log.Printf("MQTT payload on %s dropped: %v", msg.Topic(), err)
		return
	}

	ctx, cancel := config.StoreContext(context.Background())
	defer cancel()

	if err := config.DB.WithContext(ctx).Create(m).Error; err != nil {
		utils.IngestRejected.WithLabelValues("store").Inc()
		log.Printf("MQTT save error: %v", err)
		return
	}
	utils.IngestedTotal.WithLabelValues("mqtt").Inc()
}
