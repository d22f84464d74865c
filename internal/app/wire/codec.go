package wire

import (
	"bytes"
	"encoding/json"
	"fmt"

	"yewchat/internal/pkg/errs"
)

// envelope is the on-the-wire shape. Field order follows the server's frames.
type envelope struct {
	MessageType MessageType `json:"messageType"`
	Data        *string     `json:"data"`
	DataArray   []string    `json:"dataArray"`
}

// inbound keeps the payload fields raw so that their presence and shape can be
// checked per messageType before anything is interpreted.
type inbound struct {
	MessageType *string         `json:"messageType"`
	Data        json.RawMessage `json:"data"`
	DataArray   json.RawMessage `json:"dataArray"`
}

// messageData is the record carried, JSON-encoded, in the data field of a message frame.
type messageData struct {
	From    *string `json:"from"`
	Message *string `json:"message"`
}

// Encode serializes f into its wire form.
//
// An Outgoing frame carries the raw text in data. A Message always carries the
// JSON-encoded {from, message} record the server broadcasts, so Decode(Encode(m))
// returns m.
func Encode(f Frame) (string, error) {
	if f == nil {
		return "", errs.Wrap(errs.ErrEncodeFrame, fmt.Errorf("nil frame"))
	}

	env := envelope{MessageType: f.Type()}

	switch frame := f.(type) {
	case Register:
		env.Data = &frame.Username

	case Users:
		env.DataArray = frame.Usernames
		if env.DataArray == nil {
			env.DataArray = []string{}
		}

	case Message:
		inner, err := json.Marshal(messageData{From: &frame.From, Message: &frame.Body})
		if err != nil {
			return "", errs.Wrap(errs.ErrEncodeFrame, err)
		}
		data := string(inner)
		env.Data = &data

	case Outgoing:
		env.Data = &frame.Body

	default:
		return "", errs.Wrap(errs.ErrEncodeFrame, fmt.Errorf("unsupported frame %T", f))
	}

	out, err := json.Marshal(env)
	if err != nil {
		return "", errs.Wrap(errs.ErrEncodeFrame, err)
	}
	return string(out), nil
}

// Decode parses one inbound frame. Every failure is an *errs.CustomError with code
// errs.ErrDecodeFrame; callers drop the frame and carry on.
func Decode(raw string) (Frame, error) {
	var in inbound
	if err := json.Unmarshal([]byte(raw), &in); err != nil {
		return nil, errs.Wrap(errs.ErrDecodeFrame, err, "not a JSON object")
	}

	if in.MessageType == nil {
		return nil, errs.NewError(errs.ErrDecodeFrame, "missing messageType")
	}

	switch MessageType(*in.MessageType) {
	case TypeRegister:
		username, err := decodeData(in.Data)
		if err != nil {
			return nil, err
		}
		return Register{Username: username}, nil

	case TypeUsers:
		usernames := []string{}
		if isAbsent(in.DataArray) {
			return Users{Usernames: usernames}, nil
		}
		if err := json.Unmarshal(in.DataArray, &usernames); err != nil {
			return nil, errs.Wrap(errs.ErrDecodeFrame, err, "dataArray is not a list of strings")
		}
		return Users{Usernames: usernames}, nil

	case TypeMessage:
		data, err := decodeData(in.Data)
		if err != nil {
			return nil, err
		}
		return decodeMessageData(data)

	default:
		return nil, errs.NewError(errs.ErrDecodeFrame, fmt.Sprintf("unknown messageType %q", *in.MessageType))
	}
}

func decodeData(raw json.RawMessage) (string, error) {
	if isAbsent(raw) {
		return "", errs.NewError(errs.ErrDecodeFrame, "missing data")
	}

	var data string
	if err := json.Unmarshal(raw, &data); err != nil {
		return "", errs.Wrap(errs.ErrDecodeFrame, err, "data is not a string")
	}
	return data, nil
}

func decodeMessageData(data string) (Frame, error) {
	var md messageData
	if err := json.Unmarshal([]byte(data), &md); err != nil {
		return nil, errs.Wrap(errs.ErrDecodeFrame, err, "message data is not a {from, message} record")
	}

	if md.From == nil || md.Message == nil {
		return nil, errs.NewError(errs.ErrDecodeFrame, "message data lacks from or message")
	}

	return Message{From: *md.From, Body: *md.Message}, nil
}

// isAbsent treats a missing field and an explicit null the same way.
func isAbsent(raw json.RawMessage) bool {
	return len(raw) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
