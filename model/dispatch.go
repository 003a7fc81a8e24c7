package model

import jsoniter "github.com/json-iterator/go"

// json is the package-level jsoniter configuration, used
// throughout this module in place of encoding/json.
var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Frame is the wire envelope of every gateway websocket message: an opcode,
// an opaque payload, and (for Dispatch frames) a sequence and event type.
//
// Close is set only on frames synthesized by the gateway package itself to
// surface a websocket close as wire-level activity to next_message — it has
// no wire representation of its own (closes are a websocket-protocol
// concept, not a gateway opcode).
type Frame struct {
	Op       Opcode              `json:"op"`
	Data     jsoniter.RawMessage `json:"d,omitempty"`
	Sequence *uint64             `json:"s,omitempty"`
	Type     EventType           `json:"t,omitempty"`
	Close    *CloseInfo          `json:"-"`
}

// CloseInfo describes an observed websocket close.
type CloseInfo struct {
	Code      CloseCode
	Resumable bool
}

// UnmarshalFrame decodes a raw gateway websocket frame.
func UnmarshalFrame(data []byte, out *Frame) error {
	return json.Unmarshal(data, out)
}

// MarshalFrame encodes a gateway websocket frame for transmission.
func MarshalFrame(frame Frame) ([]byte, error) {
	return json.Marshal(frame)
}

// MarshalPayload encodes a command's inner `d` payload.
func MarshalPayload(v any) (jsoniter.RawMessage, error) {
	return json.Marshal(v)
}

// Unmarshal decodes data into v using the module's jsoniter configuration,
// for callers outside this package that need to decode a Frame's Data into
// a concrete struct (e.g. gateway.onHello decoding Hello).
func Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

// UnmarshalBool decodes a bare JSON boolean payload, used for the
// InvalidSession opcode whose `d` is a literal true/false rather than an
// object.
func UnmarshalBool(data []byte) bool {
	var v bool
	_ = json.Unmarshal(data, &v)

	return v
}

// dispatchConstructors maps an event type name to a zero-value factory for
// its concrete Go type, so DecodeDispatch can unmarshal directly into the
// right variant without a giant hand-written switch at every call site.
var dispatchConstructors = map[EventType]func() Event{
	EventReady:                      func() Event { return &Ready{} },
	EventResumed:                    func() Event { return &Resumed{} },
	EventGuildCreate:                func() Event { return &GuildCreate{} },
	EventGuildUpdate:                func() Event { return &GuildUpdate{} },
	EventGuildDelete:                func() Event { return &GuildDelete{} },
	EventChannelCreate:              func() Event { return &ChannelCreate{} },
	EventChannelUpdate:              func() Event { return &ChannelUpdate{} },
	EventChannelDelete:              func() Event { return &ChannelDelete{} },
	EventChannelPinsUpdate:          func() Event { return &ChannelPinsUpdate{} },
	EventThreadCreate:               func() Event { return &ThreadCreate{} },
	EventThreadUpdate:               func() Event { return &ThreadUpdate{} },
	EventThreadDelete:               func() Event { return &ThreadDelete{} },
	EventGuildMemberAdd:             func() Event { return &MemberAdd{} },
	EventGuildMemberUpdate:          func() Event { return &MemberUpdate{} },
	EventGuildMemberRemove:          func() Event { return &MemberRemove{} },
	EventGuildMembersChunk:          func() Event { return &MemberChunk{} },
	EventGuildRoleCreate:            func() Event { return &RoleCreate{} },
	EventGuildRoleUpdate:            func() Event { return &RoleUpdate{} },
	EventGuildRoleDelete:            func() Event { return &RoleDelete{} },
	EventGuildEmojisUpdate:          func() Event { return &EmojisUpdate{} },
	EventGuildStickersUpdate:        func() Event { return &StickersUpdate{} },
	EventIntegrationCreate:          func() Event { return &IntegrationCreate{} },
	EventIntegrationUpdate:          func() Event { return &IntegrationUpdate{} },
	EventIntegrationDelete:          func() Event { return &IntegrationDelete{} },
	EventStageInstanceCreate:        func() Event { return &StageInstanceCreate{} },
	EventStageInstanceUpdate:        func() Event { return &StageInstanceUpdate{} },
	EventStageInstanceDelete:        func() Event { return &StageInstanceDelete{} },
	EventMessageCreate:              func() Event { return &MessageCreate{} },
	EventMessageUpdate:              func() Event { return &MessageUpdate{} },
	EventMessageDelete:              func() Event { return &MessageDelete{} },
	EventMessageDeleteBulk:          func() Event { return &MessageDeleteBulk{} },
	EventMessageReactionAdd:         func() Event { return &ReactionAdd{} },
	EventMessageReactionRemove:      func() Event { return &ReactionRemove{} },
	EventMessageReactionRemoveAll:   func() Event { return &ReactionRemoveAll{} },
	EventMessageReactionRemoveEmoji: func() Event { return &ReactionRemoveEmoji{} },
	EventPresenceUpdate:             func() Event { return &PresenceUpdate{} },
	EventTypingStart:                func() Event { return &TypingStart{} },
	EventVoiceStateUpdate:           func() Event { return &VoiceStateUpdate{} },
	EventInteractionCreate:          func() Event { return &InteractionCreate{} },
	EventWebhooksUpdate:             func() Event { return &WebhooksUpdate{} },
}

// ErrUnknownEventType is returned by DecodeDispatch for a `t` the registry
// has no constructor for. Callers should treat this as absorbable
// non-fatal traffic, not a hard failure.
var ErrUnknownEventType = unknownEventTypeError("unknown dispatch event type")

type unknownEventTypeError string

func (e unknownEventTypeError) Error() string { return string(e) }

// DecodeDispatch unmarshals a Dispatch frame's data into its concrete Event
// variant.
func DecodeDispatch(frame Frame) (Event, error) {
	ctor, ok := dispatchConstructors[frame.Type]
	if !ok {
		return nil, ErrUnknownEventType
	}

	event := ctor()
	if err := json.Unmarshal(frame.Data, event); err != nil {
		return nil, err
	}

	// Constructors return pointers so json.Unmarshal has an addressable
	// target; dereference back to the value types the rest of the module
	// expects Event implementations to be.
	return derefEvent(event), nil
}

func derefEvent(e Event) Event {
	switch v := e.(type) {
	case *Ready:
		return *v
	case *Resumed:
		return *v
	case *GuildCreate:
		return *v
	case *GuildUpdate:
		return *v
	case *GuildDelete:
		return *v
	case *ChannelCreate:
		return *v
	case *ChannelUpdate:
		return *v
	case *ChannelDelete:
		return *v
	case *ChannelPinsUpdate:
		return *v
	case *ThreadCreate:
		return *v
	case *ThreadUpdate:
		return *v
	case *ThreadDelete:
		return *v
	case *MemberAdd:
		return *v
	case *MemberUpdate:
		return *v
	case *MemberRemove:
		return *v
	case *MemberChunk:
		return *v
	case *RoleCreate:
		return *v
	case *RoleUpdate:
		return *v
	case *RoleDelete:
		return *v
	case *EmojisUpdate:
		return *v
	case *StickersUpdate:
		return *v
	case *IntegrationCreate:
		return *v
	case *IntegrationUpdate:
		return *v
	case *IntegrationDelete:
		return *v
	case *StageInstanceCreate:
		return *v
	case *StageInstanceUpdate:
		return *v
	case *StageInstanceDelete:
		return *v
	case *MessageCreate:
		return *v
	case *MessageUpdate:
		return *v
	case *MessageDelete:
		return *v
	case *MessageDeleteBulk:
		return *v
	case *ReactionAdd:
		return *v
	case *ReactionRemove:
		return *v
	case *ReactionRemoveAll:
		return *v
	case *ReactionRemoveEmoji:
		return *v
	case *PresenceUpdate:
		return *v
	case *TypingStart:
		return *v
	case *VoiceStateUpdate:
		return *v
	case *InteractionCreate:
		return *v
	case *WebhooksUpdate:
		return *v
	default:
		return e
	}
}
