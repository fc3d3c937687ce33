package websocketPkg

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRecognizerServer(t *testing.T, reply func(language string, audio []byte) Transcription) *httptest.Server {
	t.Helper()
	upgrader := websocket.Upgrader{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		for {
			var header map[string]string
			if err := conn.ReadJSON(&header); err != nil {
				return
			}
			_, audio, err := conn.ReadMessage()
			if err != nil {
				return
			}
			if err := conn.WriteJSON(reply(header["language"], audio)); err != nil {
				return
			}
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func wsURL(srv *httptest.Server) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestTranscribe(t *testing.T) {
	srv := newRecognizerServer(t, func(language string, audio []byte) Transcription {
		return Transcription{Transcript: language + ":" + string(audio), Final: true, Confidence: 0.9}
	})

	client := newSpeechClient(wsURL(srv), quietLogger())
	defer client.CloseConnection()

	result, err := client.Transcribe([]byte("open vault"), "en-US")
	require.NoError(t, err)
	assert.Equal(t, "en-US:open vault", result.Transcript)
	assert.True(t, result.Final)
	assert.True(t, client.IsConnected())

	result, err = client.Transcribe([]byte("help"), "fr-FR")
	require.NoError(t, err)
	assert.Equal(t, "fr-FR:help", result.Transcript)
}

func TestTranscribeRecognizerError(t *testing.T) {
	srv := newRecognizerServer(t, func(string, []byte) Transcription {
		return Transcription{Error: "no speech detected"}
	})

	client := newSpeechClient(wsURL(srv), quietLogger())
	defer client.CloseConnection()

	_, err := client.Transcribe([]byte{0x01}, "en-US")
	assert.ErrorIs(t, err, ErrRecognition)
}

func TestTranscribeNotConfigured(t *testing.T) {
	client := newSpeechClient("", quietLogger())

	_, err := client.Transcribe([]byte{0x01}, "en-US")
	assert.ErrorIs(t, err, ErrRecognizerNotConfigured)
	assert.False(t, client.IsConnected())
}
