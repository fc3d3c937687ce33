package voiceHandler

import (
	"SafeSphere/internal/api/voice"
	"SafeSphere/internal/entity"
	"SafeSphere/internal/middleware"
	contextPkg "SafeSphere/pkg/context"
	"SafeSphere/pkg/log"
	"SafeSphere/pkg/nlp"
	"SafeSphere/pkg/session"
	"errors"
	"sync"
	"time"

	"github.com/gofiber/websocket/v2"
	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

const (
	sessionReadTimeout  = 120 * time.Second
	sessionWriteTimeout = 10 * time.Second
	recognizerBuffer    = 8
)

// sessionConn serializes writes from the reader loop, the runner and the
// observer onto one websocket.
type sessionConn struct {
	mu        sync.Mutex
	conn      *websocket.Conn
	log       *logrus.Logger
	requestID string
}

func (s *sessionConn) send(event voice.SessionEvent) {
	payload, err := jsoniter.Marshal(event)
	if err != nil {
		s.log.WithFields(log.Fields{
			"request_id": s.requestID,
			"error":      err.Error(),
		}).Error("Failed to marshal session event")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.conn.SetWriteDeadline(time.Now().Add(sessionWriteTimeout)); err != nil {
		return
	}
	if err := s.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
		s.log.WithFields(log.Fields{
			"request_id": s.requestID,
			"event":      event.Type,
			"error":      err.Error(),
		}).Debug("Dropping session event")
	}
}

func (s *sessionConn) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	_ = s.conn.Close()
}

type sessionObserver struct {
	out       *sessionConn
	sessionID string

	mu       sync.Mutex
	commands int
}

func (o *sessionObserver) OnStateChange(from, to session.State) {
	o.out.send(voice.SessionEvent{
		Type:      voice.EventState,
		SessionID: o.sessionID,
		From:      string(from),
		State:     string(to),
	})
}

func (o *sessionObserver) OnCommand(nlp.VoiceCommand) {
	o.mu.Lock()
	o.commands++
	o.mu.Unlock()
}

func (o *sessionObserver) OnAdvisory(message string) {
	o.out.send(voice.SessionEvent{
		Type:      voice.EventAdvisory,
		SessionID: o.sessionID,
		Message:   message,
	})
}

func (o *sessionObserver) commandCount() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.commands
}

func (h *VoiceHandler) handleSession(conn *websocket.Conn) {
	requestID, _ := conn.Locals(middleware.RequestIDKey).(string)
	out := &sessionConn{conn: conn, log: h.log, requestID: requestID}

	userData, ok := conn.Locals("user").(entity.UserLoginData)
	if !ok {
		out.send(voice.SessionEvent{Type: voice.EventClosed, Message: "unauthorized"})
		return
	}

	ctx, cancel := context.WithCancel(contextPkg.WithUserID(contextPkg.WithRequestID(context.Background(), requestID), userData.ID))
	defer cancel()

	lang, err := h.voiceService.ResolveLanguage(ctx, userData.ID, conn.Query("language"))
	if err != nil {
		out.send(voice.SessionEvent{Type: voice.EventClosed, Message: err.Error()})
		return
	}
	continuous := conn.Query("continuous", "true") != "false"

	sess, err := h.voiceService.StartSession(ctx, userData.ID, lang, continuous)
	if err != nil {
		out.send(voice.SessionEvent{Type: voice.EventClosed, Message: err.Error()})
		return
	}

	observer := &sessionObserver{out: out, sessionID: sess.ID}
	machine := h.voiceService.NewMachine(lang, observer, continuous)
	recognizer := session.NewChannelRecognizer(recognizerBuffer)
	dispatcher := session.DispatcherFunc(func(ctx context.Context, cmd nlp.VoiceCommand) error {
		res, err := h.voiceService.RecordCommand(ctx, userData.ID, sess.ID, cmd)
		if err != nil {
			return err
		}
		out.send(voice.SessionEvent{Type: voice.EventCommand, SessionID: sess.ID, Command: res})
		return nil
	})
	runner := session.NewRunner(machine, recognizer, dispatcher)

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"session_id": sess.ID,
		"language":   lang.Code,
	}).Info("Voice session websocket connected")

	out.send(voice.SessionEvent{
		Type:      voice.EventSession,
		SessionID: sess.ID,
		Language:  lang.Code,
		State:     string(machine.State()),
	})

	var runDone chan error
	startRunner := func(readiness session.Readiness) {
		runDone = make(chan error, 1)
		go func() {
			err := runner.Run(ctx, readiness)
			recognizer.Close()

			event := voice.SessionEvent{Type: voice.EventClosed, SessionID: sess.ID, State: string(machine.State())}
			if err != nil && !errors.Is(err, context.Canceled) {
				event.Message = err.Error()
			}
			out.send(event)
			out.close()

			runDone <- err
		}()
	}

	for {
		if err := conn.SetReadDeadline(time.Now().Add(sessionReadTimeout)); err != nil {
			break
		}

		messageType, message, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.log.WithFields(log.Fields{
					"request_id": requestID,
					"session_id": sess.ID,
					"error":      err.Error(),
				}).Debug("Voice session websocket closed unexpectedly")
			}
			break
		}

		switch messageType {
		case websocket.TextMessage:
			var msg voice.ClientMessage
			if err := jsoniter.Unmarshal(message, &msg); err != nil {
				observer.OnAdvisory("malformed message")
				continue
			}
			if err := h.validator.Struct(msg); err != nil {
				observer.OnAdvisory("invalid message: " + err.Error())
				continue
			}

			switch msg.Type {
			case voice.MessageReady:
				if runDone != nil {
					observer.OnAdvisory("session already started")
					continue
				}
				readiness := session.Readiness{LanguageLoaded: true}
				if msg.Readiness != nil {
					readiness.PermissionGranted = msg.Readiness.PermissionGranted
					readiness.RecognizerAvailable = msg.Readiness.RecognizerAvailable
				}
				if h.speech != nil && h.speech.IsConnected() {
					readiness.RecognizerAvailable = true
				}
				startRunner(readiness)
			case voice.MessageUtterance:
				h.push(observer, runDone, func() error { return recognizer.PushTranscript(msg.Transcript) })
			case voice.MessageError:
				h.push(observer, runDone, func() error { return recognizer.PushError(errors.New(msg.Error)) })
			case voice.MessageStop:
				machine.Stop()
				recognizer.Close()
			case voice.MessageRevoke:
				machine.Revoke()
				recognizer.Close()
			}

		case websocket.BinaryMessage:
			if runDone == nil {
				observer.OnAdvisory("session not started")
				continue
			}
			h.transcribeFrame(out, observer, recognizer, sess.ID, lang.Code, message)
		}
	}

	machine.Stop()
	recognizer.Close()
	cancel()
	if runDone != nil {
		<-runDone
	}

	sess.State = string(machine.State())
	sess.CommandCount = observer.commandCount()
	sess.Failures = machine.Failures()

	endCtx, endCancel := context.WithTimeout(contextPkg.WithRequestID(context.Background(), requestID), 5*time.Second)
	defer endCancel()
	if err := h.voiceService.EndSession(endCtx, *sess); err != nil {
		h.log.WithFields(log.Fields{
			"request_id": requestID,
			"session_id": sess.ID,
			"error":      err.Error(),
		}).Warn("Failed to persist voice session")
	}
}

func (h *VoiceHandler) push(observer *sessionObserver, runDone chan error, push func() error) {
	if runDone == nil {
		observer.OnAdvisory("session not started")
		return
	}
	if err := push(); err != nil {
		observer.OnAdvisory("session closed")
	}
}

// transcribeFrame forwards one audio frame to the remote recognizer. Partial
// results are echoed; final ones and errors feed the session recognizer.
func (h *VoiceHandler) transcribeFrame(out *sessionConn, observer *sessionObserver, recognizer *session.ChannelRecognizer, sessionID, language string, frame []byte) {
	if h.speech == nil {
		observer.OnAdvisory("speech recognizer unavailable")
		return
	}

	result, err := h.speech.Transcribe(frame, language)
	if err != nil {
		_ = recognizer.PushError(err)
		return
	}

	if !result.Final {
		out.send(voice.SessionEvent{Type: voice.EventPartial, SessionID: sessionID, Text: result.Transcript})
		return
	}

	_ = recognizer.PushTranscript(result.Transcript)
}
