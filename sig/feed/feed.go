// Package feed publishes generated samples to an MQTT broker, so a
// downstream trainer or monitor can consume a dataset as a stream.
package feed

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/cwbudde/sigsynth/sig/dataset"
)

// ErrNotConnected indicates a publish attempt on a closed or timed-out
// broker connection.
var ErrNotConnected = errors.New("feed: not connected")

const (
	defaultTimeout   = 10 * time.Second
	defaultKeepAlive = 60 * time.Second
	publishQoS       = 1
)

// Options configures a Publisher connection.
type Options struct {
	// Broker is the broker URL, e.g. "tcp://localhost:1883" or
	// "tls://broker.example.com:8883".
	Broker string

	// ClientID identifies this publisher; empty generates a random ID.
	ClientID string

	Username string
	Password string

	// Timeout bounds connect and per-publish waits. Zero selects 10s.
	Timeout time.Duration
}

// Publisher streams dataset samples to an MQTT topic.
type Publisher struct {
	client  mqtt.Client
	timeout time.Duration
}

// wireSample is the JSON envelope published per sample. IQ is the
// little-endian float64 interleaved I/Q buffer, base64-encoded.
type wireSample struct {
	Index      int     `json:"index"`
	Seed       int64   `json:"seed"`
	Class      string  `json:"class"`
	ClassIndex int     `json:"class_index"`
	SNRdB      float64 `json:"snr_db"`
	SampleRate float64 `json:"sample_rate"`
	NumSamples int     `json:"num_samples"`
	IQ         string  `json:"iq"`
}

// NewPublisher connects to the broker and returns a ready publisher.
func NewPublisher(opts Options) (*Publisher, error) {
	if opts.Broker == "" {
		return nil, errors.New("feed: broker URL required")
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	clientID := opts.ClientID
	if clientID == "" {
		clientID = randomClientID()
	}

	co := mqtt.NewClientOptions()
	co.AddBroker(opts.Broker)
	co.SetClientID(clientID)
	co.SetUsername(opts.Username)
	co.SetPassword(opts.Password)
	co.SetAutoReconnect(true)
	co.SetKeepAlive(defaultKeepAlive)
	co.SetConnectTimeout(timeout)

	client := mqtt.NewClient(co)
	if token := client.Connect(); !token.WaitTimeout(timeout) || token.Error() != nil {
		if err := token.Error(); err != nil {
			return nil, fmt.Errorf("feed: connect %s: %w", opts.Broker, err)
		}
		return nil, fmt.Errorf("feed: connect %s: %w", opts.Broker, ErrNotConnected)
	}

	return &Publisher{client: client, timeout: timeout}, nil
}

// PublishSample sends one sample to topic as a JSON envelope.
func (p *Publisher) PublishSample(topic string, s dataset.Sample) error {
	if !p.client.IsConnected() {
		return ErrNotConnected
	}

	payload, err := json.Marshal(wireSample{
		Index:      s.Index,
		Seed:       s.Seed,
		Class:      s.Meta.ClassName,
		ClassIndex: s.Meta.ClassIndex,
		SNRdB:      s.Meta.SNRdB,
		SampleRate: s.Signal.SampleRate,
		NumSamples: s.Signal.Len(),
		IQ:         encodeIQ(s.Signal.IQ),
	})
	if err != nil {
		return fmt.Errorf("feed: marshal sample %d: %w", s.Index, err)
	}

	token := p.client.Publish(topic, publishQoS, false, payload)
	if !token.WaitTimeout(p.timeout) {
		return fmt.Errorf("feed: publish sample %d: %w", s.Index, ErrNotConnected)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("feed: publish sample %d: %w", s.Index, err)
	}
	return nil
}

// Close disconnects from the broker, allowing in-flight messages 250ms
// to drain.
func (p *Publisher) Close() {
	p.client.Disconnect(250)
}

// encodeIQ packs IQ samples as interleaved little-endian float64 pairs.
func encodeIQ(iq []complex128) string {
	buf := make([]byte, 16*len(iq))
	for i, v := range iq {
		binary.LittleEndian.PutUint64(buf[16*i:], math.Float64bits(real(v)))
		binary.LittleEndian.PutUint64(buf[16*i+8:], math.Float64bits(imag(v)))
	}
	return base64.StdEncoding.EncodeToString(buf)
}

func randomClientID() string {
	b := make([]byte, 6)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("sigsynth-%d", time.Now().UnixNano())
	}
	return "sigsynth-" + base64.RawURLEncoding.EncodeToString(b)
}
