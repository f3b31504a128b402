package events

import (
	"reflect"
	"sync"
)

type registration struct {
	name    string
	payload reflect.Type // nil for events without a payload
}

var (
	registered   = make(map[EventType]registration)
	byName       = make(map[string]EventType)
	registryOnce sync.Once
)

// RegisterType binds name and payload type to et
// payloadInstance is a pointer to the payload struct, or nil
func RegisterType(name string, et EventType, payloadInstance any) {
	reg := registration{name: name}
	if payloadInstance != nil {
		t := reflect.TypeOf(payloadInstance)
		for t.Kind() == reflect.Pointer {
			t = t.Elem()
		}
		reg.payload = t
	}
	registered[et] = reg
	byName[name] = et
}

// GetEventType resolves an FSM event name
func GetEventType(name string) (EventType, bool) {
	et, ok := byName[name]
	return et, ok
}

// GetEventName returns the registered name of et, or "" when unknown
func GetEventName(et EventType) string {
	return registered[et].name
}

// NewPayloadStruct returns a pointer to a fresh payload for et, or nil if it carries none
func NewPayloadStruct(et EventType) any {
	reg, ok := registered[et]
	if !ok || reg.payload == nil {
		return nil
	}
	return reflect.New(reg.payload).Interface()
}

// InitRegistry registers every game event once
func InitRegistry() {
	registryOnce.Do(func() {
		for _, r := range []struct {
			name    string
			et      EventType
			payload any
		}{
			{"EventSessionStarted", EventSessionStarted, &SessionPayload{}},
			{"EventNarration", EventNarration, &NarrationPayload{}},
			{"EventWallBounce", EventWallBounce, nil},
			{"EventPaddleHit", EventPaddleHit, &TallyPayload{}},
			{"EventLevelUp", EventLevelUp, &TallyPayload{}},
			{"EventMiss", EventMiss, &TallyPayload{}},
			{"EventGameOver", EventGameOver, &GameOverPayload{}},
			{"EventRestartRequest", EventRestartRequest, nil},
			{"EventQuitRequest", EventQuitRequest, nil},
			{"EventWindowClosed", EventWindowClosed, nil},
			{"EventSessionRestarted", EventSessionRestarted, &SessionPayload{}},
		} {
			RegisterType(r.name, r.et, r.payload)
		}
	})
}
