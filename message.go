package reactotron

import "encoding/json"

// EventHello is the announcement event emitted once after every successful
// connect. Outbound only; transports never dispatch it.
const EventHello = "hello.client"

// Command is a server-pushed instruction. The payload is kept raw and
// forwarded verbatim to the OnCommand callback.
type Command struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// commandBody is the outbound body of a command event.
type commandBody struct {
	Type    string `json:"type"`
	Payload any    `json:"payload,omitempty"`
}

// helloBody announces the client to the server. It is the serializable
// view of the current options; callback and transport fields have no wire
// representation.
type helloBody struct {
	Name   string            `json:"name"`
	Host   string            `json:"host"`
	Port   int               `json:"port"`
	Client map[string]string `json:"client,omitempty"`
}

// hello builds the announcement body from the current options.
func (o *Options) hello() helloBody {
	return helloBody{
		Name:   o.Name,
		Host:   o.Host,
		Port:   o.Port,
		Client: o.ClientInfo,
	}
}
