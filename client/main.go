package main

import (
	"bufio"
	"encoding/binary"
	"encoding/json"
	"flag"
	"log"
	"net/url"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/websocket"
)

const (
	MsgTypeCreateGame = 101
	MsgTypeJoinGame   = 102
	MsgTypeStartGame  = 103
	MsgTypeListGames  = 104
	MsgTypeActInRound = 201
)

// send formats and sends a message to the WebSocket server.
func send(c *websocket.Conn, msgID uint16, data []byte) error {
	packet := make([]byte, 4+len(data))
	binary.BigEndian.PutUint16(packet[0:2], msgID)
	binary.BigEndian.PutUint16(packet[2:4], uint16(len(data)))
	copy(packet[4:], data)

	return c.WriteMessage(websocket.BinaryMessage, packet)
}

func sendJSON(c *websocket.Conn, msgID uint16, v interface{}) {
	data, _ := json.Marshal(v)
	if err := send(c, msgID, data); err != nil {
		log.Println("Write error:", err)
	}
}

// Interactive smoke client. Commands:
//
//	create <name> <maxPlayers> <maxRounds>
//	join <gameID> <playerName>
//	start
//	list
//	act <roundID> <kind> [jsonPayload]
func main() {
	addr := flag.String("addr", "localhost:8080", "server address")
	flag.Parse()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	u := url.URL{Scheme: "ws", Host: *addr, Path: "/ws"}
	log.Printf("Connecting to %s", u.String())

	c, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		log.Fatalf("Dial failed: %v", err)
	}
	defer c.Close()

	done := make(chan struct{})

	// Read loop
	go func() {
		defer close(done)
		for {
			_, message, err := c.ReadMessage()
			if err != nil {
				log.Println("Read error:", err)
				return
			}
			if len(message) < 4 {
				log.Printf("Received invalid packet of size %d", len(message))
				continue
			}
			msgID := binary.BigEndian.Uint16(message[0:2])
			data := message[4:]
			log.Printf("<- RECV (ID: %d): %s", msgID, string(data))
		}
	}()

	log.Println("Client started. Commands: create | join | start | list | act")

	reader := bufio.NewReader(os.Stdin)
	for {
		select {
		case <-done:
			return
		case <-interrupt:
			log.Println("Interrupt received, closing connection.")
			err := c.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			if err != nil {
				log.Println("Write close error:", err)
			}
			select {
			case <-done:
			case <-time.After(time.Second):
			}
			return
		default:
			text, _ := reader.ReadString('\n')
			fields := strings.Fields(text)
			if len(fields) == 0 {
				continue
			}

			switch fields[0] {
			case "create":
				if len(fields) != 4 {
					log.Println("usage: create <name> <maxPlayers> <maxRounds>")
					continue
				}
				maxPlayers, _ := strconv.Atoi(fields[2])
				maxRounds, _ := strconv.Atoi(fields[3])
				sendJSON(c, MsgTypeCreateGame, map[string]interface{}{
					"name":        fields[1],
					"max_players": maxPlayers,
					"max_rounds":  maxRounds,
				})
			case "join":
				if len(fields) != 3 {
					log.Println("usage: join <gameID> <playerName>")
					continue
				}
				gameID, _ := strconv.Atoi(fields[1])
				sendJSON(c, MsgTypeJoinGame, map[string]interface{}{
					"game_id":     gameID,
					"player_name": fields[2],
				})
			case "start":
				sendJSON(c, MsgTypeStartGame, map[string]interface{}{})
			case "list":
				sendJSON(c, MsgTypeListGames, map[string]interface{}{})
			case "act":
				if len(fields) < 3 {
					log.Println("usage: act <roundID> <kind> [jsonPayload]")
					continue
				}
				roundID, _ := strconv.Atoi(fields[1])
				payload := json.RawMessage("{}")
				if len(fields) > 3 {
					payload = json.RawMessage(strings.Join(fields[3:], " "))
				}
				sendJSON(c, MsgTypeActInRound, map[string]interface{}{
					"round_id": roundID,
					"kind":     fields[2],
					"payload":  payload,
				})
			default:
				log.Printf("Unknown command %q", fields[0])
			}
		}
	}
}
