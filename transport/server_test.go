package transport

import (
	"sync"
	"testing"
	"time"

	pokerserver "github.com/FICHEKK/poker-server"
	"github.com/FICHEKK/poker-server/dao"
	"go.uber.org/zap"
)

// Test_Server_SendDuringDisconnect hammers Send while the same player's
// connection is registered and torn down over and over. Unregistration
// closes the client's send channel, so Send must never race past it: a
// regression here panics on a send to a closed channel.
func Test_Server_SendDuringDisconnect(t *testing.T) {
	casino := pokerserver.NewCasino(pokerserver.NewCasinoOptions(), dao.NewMemoryDAO())
	server := NewServer(casino, &ServerOptions{JWTSecret: "test-secret", TokenTTL: time.Minute}, zap.NewNop())
	go server.Run()

	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		message := pokerserver.ServerMessage{Type: pokerserver.ServerMessage_Chat}
		for {
			select {
			case <-done:
				return
			default:
				server.Send("alice", message)
			}
		}
	}()

	for i := 0; i < 500; i++ {
		c := &client{username: "alice", server: server, send: make(chan []byte, 1)}
		server.register <- c
		server.unregister <- c
	}

	close(done)
	wg.Wait()
}
