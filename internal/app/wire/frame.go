/*
Package wire defines the JSON frames exchanged with the chat server and the rules
for encoding and decoding them.

Every frame travels as one JSON object:

	{"messageType": "register" | "users" | "message", "data": string | null, "dataArray": [string] | null}

The messageType tag decides which payload field is meaningful.
*/
package wire

// MessageType is the discriminator carried in the messageType field.
type MessageType string

const (
	// TypeRegister announces the client's username. Sent once per session.
	TypeRegister MessageType = "register"

	// TypeUsers carries the full list of online usernames. Received only.
	TypeUsers MessageType = "users"

	// TypeMessage carries one chat line in either direction.
	TypeMessage MessageType = "message"
)

// Frame is one of Register, Users, Message or Outgoing.
type Frame interface {
	Type() MessageType
}

// Register is sent by the client right after the channel opens.
type Register struct {
	Username string
}

// Users is the server's authoritative snapshot of who is online, in server order.
type Users struct {
	Usernames []string
}

// Message is a chat line as the server broadcasts it, attributed to a sender.
type Message struct {
	From string
	Body string
}

// Outgoing is the chat line the client sends. It carries the text alone; the server
// attributes the sender from the session. It shares the message tag with Message but
// is never produced by Decode.
type Outgoing struct {
	Body string
}

func (Register) Type() MessageType { return TypeRegister }
func (Users) Type() MessageType    { return TypeUsers }
func (Message) Type() MessageType  { return TypeMessage }
func (Outgoing) Type() MessageType { return TypeMessage }
