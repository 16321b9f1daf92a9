package schema

// Role identifies who authored a conversation message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one entry in the conversation: an ordered list of content
// blocks attributed to a role. The system prompt is not part of the
// conversation; it is passed to the provider separately.
type Message struct {
	Role    Role
	Content []ContentBlock
}

// Conversation is the ordered message history exchanged with the model.
// Order is chronological and significant: tool-result blocks reference
// tool-use identifiers introduced earlier in the conversation.
type Conversation struct {
	Messages []Message
}

// NewConversation returns a Conversation initialised with the given messages.
func NewConversation(msgs ...Message) Conversation {
	out := make([]Message, len(msgs))
	copy(out, msgs)
	return Conversation{Messages: out}
}

// AddUser appends a user message with the given blocks.
func (c *Conversation) AddUser(blocks ...ContentBlock) {
	c.Messages = append(c.Messages, Message{Role: RoleUser, Content: blocks})
}

// AddAssistant appends an assistant message with the given blocks.
func (c *Conversation) AddAssistant(blocks ...ContentBlock) {
	c.Messages = append(c.Messages, Message{Role: RoleAssistant, Content: blocks})
}

// AddToolResults appends tool-result blocks as a user turn, which is how
// results travel back to the model.
func (c *Conversation) AddToolResults(results ...ContentBlock) {
	c.AddUser(results...)
}

// Clone returns a copy of c with an independent backing slice.
func (c *Conversation) Clone() Conversation {
	cloned := make([]Message, len(c.Messages))
	copy(cloned, c.Messages)
	return Conversation{Messages: cloned}
}
