package websocketPkg

import (
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
)

var (
	ErrRecognizerNotConfigured = errors.New("speech recognizer URL not configured")
	ErrRecognition             = errors.New("speech recognition failed")
)

// Transcription is the recognizer reply to one audio frame. Final marks the
// end of an utterance.
type Transcription struct {
	Transcript string  `json:"transcript"`
	Final      bool    `json:"final"`
	Confidence float64 `json:"confidence,omitempty"`
	Error      string  `json:"error,omitempty"`
}

type ISpeechRecognizer interface {
	Transcribe(frame []byte, language string) (*Transcription, error)
	IsConnected() bool
	Reconnect() error
	CloseConnection()
}

type speechClient struct {
	url          string
	conn         *websocket.Conn
	mu           sync.Mutex
	log          *logrus.Logger
	pingInterval time.Duration
	readTimeout  time.Duration
	writeTimeout time.Duration
}

// NewSpeechRecognizerClient dials SPEECH_RECOGNIZER_URL in the background;
// frames sent before the dial succeeds trigger a reconnect.
func NewSpeechRecognizerClient(log *logrus.Logger) ISpeechRecognizer {
	client := newSpeechClient(os.Getenv("SPEECH_RECOGNIZER_URL"), log)
	if client.url != "" {
		go client.connectInBackground()
	}
	return client
}

func newSpeechClient(url string, log *logrus.Logger) *speechClient {
	return &speechClient{
		url:          url,
		log:          log,
		pingInterval: 30 * time.Second,
		readTimeout:  10 * time.Second,
		writeTimeout: 5 * time.Second,
	}
}

func (c *speechClient) connectInBackground() {
	if err := c.Reconnect(); err != nil {
		c.log.Warnf("Initial connection to speech recognizer failed: %v. Will retry on demand.", err)
		return
	}
	c.log.Info("Successfully connected to speech recognizer")
}

func (c *speechClient) IsConnected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn != nil
}

func (c *speechClient) Reconnect() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dialLocked()
}

func (c *speechClient) dialLocked() error {
	if c.conn != nil {
		c.conn.Close()
		c.conn = nil
	}

	if c.url == "" {
		return ErrRecognizerNotConfigured
	}

	dialer := *websocket.DefaultDialer
	dialer.HandshakeTimeout = 10 * time.Second

	conn, _, err := dialer.Dial(c.url, nil)
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", c.url, err)
	}

	conn.SetPingHandler(func(appData string) error {
		if err := conn.WriteControl(websocket.PongMessage, []byte(appData), time.Now().Add(c.writeTimeout)); err != nil {
			c.log.Warnf("Error sending pong to speech recognizer: %v", err)
		}
		return nil
	})

	c.conn = conn
	go c.keepAlive(conn)

	return nil
}

func (c *speechClient) CloseConnection() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn != nil {
		c.conn.Close()
		c.conn = nil
	}
}

func (c *speechClient) keepAlive(conn *websocket.Conn) {
	ticker := time.NewTicker(c.pingInterval)
	defer ticker.Stop()

	for range ticker.C {
		c.mu.Lock()
		if c.conn != conn {
			c.mu.Unlock()
			return
		}

		if err := conn.WriteControl(websocket.PingMessage, []byte{}, time.Now().Add(c.writeTimeout)); err != nil {
			c.log.Warnf("Ping to speech recognizer failed, marking connection as dead: %v", err)
			c.conn = nil
			conn.Close()
			c.mu.Unlock()
			return
		}

		c.mu.Unlock()
	}
}

// Transcribe sends one audio frame and waits for the recognizer reply. The
// language code travels in a text frame ahead of the audio.
func (c *speechClient) Transcribe(frame []byte, language string) (*Transcription, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil {
		if err := c.dialLocked(); err != nil {
			return nil, fmt.Errorf("cannot connect to speech recognizer: %w", err)
		}
	}
	conn := c.conn

	header, err := jsoniter.Marshal(map[string]string{"language": language})
	if err != nil {
		return nil, err
	}

	conn.SetWriteDeadline(time.Now().Add(c.writeTimeout))
	if err := conn.WriteMessage(websocket.TextMessage, header); err != nil {
		c.dropLocked()
		return nil, fmt.Errorf("error sending recognizer header: %w", err)
	}
	if err := conn.WriteMessage(websocket.BinaryMessage, frame); err != nil {
		c.dropLocked()
		return nil, fmt.Errorf("error sending audio frame: %w", err)
	}

	conn.SetReadDeadline(time.Now().Add(c.readTimeout))
	_, message, err := conn.ReadMessage()
	if err != nil {
		c.dropLocked()
		return nil, fmt.Errorf("error reading recognizer reply: %w", err)
	}

	conn.SetReadDeadline(time.Time{})
	conn.SetWriteDeadline(time.Time{})

	var result Transcription
	if err := jsoniter.Unmarshal(message, &result); err != nil {
		return nil, fmt.Errorf("error unmarshaling recognizer reply: %w", err)
	}
	if result.Error != "" {
		return nil, fmt.Errorf("%w: %s", ErrRecognition, result.Error)
	}

	c.log.WithFields(logrus.Fields{
		"final":      result.Final,
		"confidence": result.Confidence,
		"frame_size": len(frame),
	}).Debug("Received transcription")

	return &result, nil
}

func (c *speechClient) dropLocked() {
	if c.conn != nil {
		c.conn.Close()
		c.conn = nil
	}
}
