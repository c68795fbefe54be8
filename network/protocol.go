package network

const (
	MsgTypeHeartbeat  = 1
	MsgTypeError      = 2
	MsgTypeCreateGame = 101
	MsgTypeJoinGame   = 102
	MsgTypeStartGame  = 103
	MsgTypeListGames  = 104
	MsgTypeActInRound = 201
	MsgTypeGameState  = 301
)
