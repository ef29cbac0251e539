// internal/preview/message.go
//
// Wire format of the live preview channel.
//
// Context
// -------
// Host (editor session) and frame (preview context) exchange one JSON
// object per transport message.  Every object carries a `type`; the rest
// of the fields depend on it.  A single flat struct keeps decoding to one
// json.Unmarshal and keeps the wire shape obvious from the tags.
//
// Notes
// -----
//   - Host → frame: PREVIEW_LOAD_PAGE, PREVIEW_UPDATE_LIST, PREVIEW_UPDATE.
//   - Frame → host: PREVIEW_READY, PREVIEW_FOCUS, PREVIEW_UPDATE_CONTENT,
//     PREVIEW_ACK, and PREVIEW_REQUEST_SYNC.
//   - Decode never guesses.  Unknown or missing types are errors, and the
//     caller drops the message.
package preview

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/yanizio/sitekit/internal/section"
)

// Type names a message kind.
type Type string

const (
	TypeLoadPage      Type = "PREVIEW_LOAD_PAGE"
	TypeUpdateList    Type = "PREVIEW_UPDATE_LIST"
	TypeUpdate        Type = "PREVIEW_UPDATE"
	TypeReady         Type = "PREVIEW_READY"
	TypeFocus         Type = "PREVIEW_FOCUS"
	TypeUpdateContent Type = "PREVIEW_UPDATE_CONTENT"
	TypeAck           Type = "PREVIEW_ACK"
	TypeRequestSync   Type = "PREVIEW_REQUEST_SYNC"
)

var (
	ErrUnknownType = errors.New("preview: unknown message type")
	ErrMalformed   = errors.New("preview: malformed message")
)

// fromHost reports whether t travels host → frame.
func (t Type) fromHost() bool {
	switch t {
	case TypeLoadPage, TypeUpdateList, TypeUpdate:
		return true
	}
	return false
}

func (t Type) known() bool {
	switch t {
	case TypeLoadPage, TypeUpdateList, TypeUpdate,
		TypeReady, TypeFocus, TypeUpdateContent, TypeAck, TypeRequestSync:
		return true
	}
	return false
}

// Message is one channel envelope.
type Message struct {
	Type      Type              `json:"type"`
	Seq       uint64            `json:"seq,omitempty"`
	Sections  []section.Section `json:"sections,omitempty"`
	SectionID string            `json:"sectionId,omitempty"`
	Content   map[string]any    `json:"content,omitempty"`
}

// Decode parses b and checks the type tag.
func Decode(b []byte) (Message, error) {
	var m Message
	if err := json.Unmarshal(b, &m); err != nil {
		return Message{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if m.Type == "" {
		return Message{}, fmt.Errorf("%w: missing type", ErrMalformed)
	}
	if !m.Type.known() {
		return Message{}, fmt.Errorf("%w: %q", ErrUnknownType, m.Type)
	}
	return m, nil
}

// Encode marshals m.  Section payloads are plain JSON maps, so the only
// failure is a value json cannot represent; that is a programming error
// and is returned rather than hidden.
func Encode(m Message) ([]byte, error) {
	return json.Marshal(m)
}

// dropReason maps a decode error onto the metric label.
func dropReason(err error) string {
	if errors.Is(err, ErrUnknownType) {
		return "unknown-type"
	}
	return "malformed"
}
