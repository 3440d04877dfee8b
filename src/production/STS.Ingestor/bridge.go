package ingestor

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"gitlab.com/stratosense1/sts.iot_server/src/production/STS.ApiService/implementation/hierarchy"
	config "gitlab.com/stratosense1/sts.iot_server/src/production/STS.Config"
	logger "gitlab.com/stratosense1/sts.iot_server/src/production/STS.Logger"
)

// Bridge feeds MQTT sensor publications into the same value-update
// path the HTTP surface uses. Topic format: sensors/<id_device>/<name>.
// Publications for unknown sensors fall into the name-lookup no-op and
// are dropped without error, like their HTTP counterpart.
type Bridge struct {
	cfg    config.MQTTConfig
	broker string
	engine *hierarchy.Engine
	log    *logger.Logger
	client mqtt.Client
}

func New(cfg *config.Config, engine *hierarchy.Engine, log *logger.Logger) *Bridge {
	return &Bridge{
		cfg:    cfg.MQTT,
		broker: cfg.GetMQTTBrokerURL(),
		engine: engine,
		log:    log.WithComponent("mqtt_bridge"),
	}
}

func (b *Bridge) Start() error {
	opts := mqtt.NewClientOptions().
		AddBroker(b.broker).
		SetClientID(b.cfg.ClientID).
		SetOrderMatters(false).
		SetKeepAlive(b.cfg.KeepAlive).
		SetPingTimeout(b.cfg.PingTimeout).
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectRetryInterval(5 * time.Second).
		SetCleanSession(false)

	if b.cfg.BrokerUser != "" {
		opts.SetUsername(b.cfg.BrokerUser)
		opts.SetPassword(b.cfg.BrokerPass)
	}

	opts.OnConnectionLost = func(_ mqtt.Client, err error) {
		b.log.ErrorWithError(err, "mqtt connection lost")
	}
	opts.OnConnect = func(c mqtt.Client) {
		b.log.Info("mqtt connected, subscribing to " + b.cfg.Topic)
		if token := c.Subscribe(b.cfg.Topic, 1, b.onMessage); token.Wait() && token.Error() != nil {
			b.log.ErrorWithError(token.Error(), "subscribe failed")
		}
	}

	b.client = mqtt.NewClient(opts)
	if tk := b.client.Connect(); tk.Wait() && tk.Error() != nil {
		return tk.Error()
	}
	return nil
}

func (b *Bridge) Stop() {
	if b.client != nil && b.client.IsConnected() {
		b.client.Disconnect(500)
	}
}

func (b *Bridge) IsConnected() bool {
	return b.client != nil && b.client.IsConnected()
}

func (b *Bridge) onMessage(_ mqtt.Client, m mqtt.Message) {
	deviceID, name, err := ParseTopic(m.Topic())
	if err != nil {
		b.log.WithField("topic", m.Topic()).Warn(err.Error())
		return
	}

	value := DecodeValue(m.Payload())

	if err := b.engine.UpdateValueByName(context.Background(), deviceID, name, value); err != nil {
		b.log.WithField("topic", m.Topic()).ErrorWithError(err, "value update failed")
	}
}

// ParseTopic extracts the device id and sensor name from a
// sensors/<id_device>/<name> topic.
func ParseTopic(topic string) (deviceID, name string, err error) {
	parts := strings.Split(topic, "/")
	if len(parts) != 3 || parts[0] != "sensors" || parts[1] == "" || parts[2] == "" {
		return "", "", fmt.Errorf("invalid topic %q, expected sensors/<id_device>/<name>", topic)
	}
	return parts[1], parts[2], nil
}

// DecodeValue interprets the payload as a JSON scalar when it parses
// as one, otherwise carries the raw bytes as a string.
func DecodeValue(payload []byte) interface{} {
	var value interface{}
	if err := json.Unmarshal(payload, &value); err != nil {
		return string(payload)
	}
	return value
}
