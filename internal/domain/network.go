package domain

type NetworkEventType string

const (
	NetworkEventSession       NetworkEventType = "session"
	NetworkEventFriendAdd     NetworkEventType = "friend_add"
	NetworkEventFriendMessage NetworkEventType = "friend_message"
	NetworkEventTradeRequest  NetworkEventType = "trade_request"
)

// NetworkEvent is delivered by the login/connection layer.
type NetworkEvent struct {
	Type        NetworkEventType
	From        string
	Text        string
	Credentials Credentials
}

type NetworkReplyType string

const (
	NetworkReplyFriendAdd     NetworkReplyType = "friend_add_response"
	NetworkReplyTradeRequest  NetworkReplyType = "trade_request_response"
	NetworkReplyFriendMessage NetworkReplyType = "friend_message"
)

type NetworkReply struct {
	Type   NetworkReplyType
	To     string
	Accept bool
	Text   string
}
