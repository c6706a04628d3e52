package gymenv

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 16 * 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

const writeWait = time.Second

// handleStream 向websocket客户端推送状态快照
// 功能：每隔streamInterval检查一次状态，有变化时以JSON文本帧推送完整快照
// 说明：客户端发送的消息被忽略，读取只用于发现连接关闭
func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warnf("err upgrading connection: %v", err)
		return
	}
	defer conn.Close()
	log.Debugf("stream client %v connected", conn.RemoteAddr())

	gone := make(chan struct{})
	go func() {
		defer close(gone)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					log.Warnf("stream client %v: %v", conn.RemoteAddr(), err)
				}
				return
			}
		}
	}()

	ticker := time.NewTicker(s.streamInterval)
	defer ticker.Stop()
	var sent uint64
	for {
		select {
		case <-gone:
			log.Debugf("stream client %v disconnected", conn.RemoteAddr())
			return
		case <-s.closing:
			msg := websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down")
			_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
			return
		case <-ticker.C:
		}
		snap, version := s.snapshot()
		if version == sent {
			continue
		}
		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteJSON(snap); err != nil {
			log.Warnf("stream client %v write error: %v", conn.RemoteAddr(), err)
			return
		}
		sent = version
	}
}
