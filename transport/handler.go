package transport

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	pokerserver "github.com/FICHEKK/poker-server"
)

const storageTimeout = 5 * time.Second

// handleClientMessage dispatches one inbound frame. Casino and table errors
// are returned to the caller for logging and echoed to the player as an
// error message; they never close the connection.
func (s *Server) handleClientMessage(c *client, payload []byte) error {
	var message ClientMessage
	if err := json.Unmarshal(payload, &message); err != nil {
		return fmt.Errorf("malformed frame: %w", err)
	}

	var err error
	switch message.Type {
	case ClientMessage_ListTables:
		s.sendJSON(c, tableListResponse{Tables: s.casino.TableTitles()})
		return nil

	case ClientMessage_CreateTable:
		err = s.createTable(message)

	case ClientMessage_JoinTable:
		ctx, cancel := context.WithTimeout(context.Background(), storageTimeout)
		err = s.casino.JoinTable(ctx, c.username, message.Table, message.BuyIn)
		cancel()

	case ClientMessage_LeaveTable:
		err = s.casino.LeaveTable(c.username)

	case ClientMessage_Check:
		err = s.withTable(c, func(tc pokerserver.TableController) error {
			return tc.PlayerCheck(c.username)
		})

	case ClientMessage_Call:
		err = s.withTable(c, func(tc pokerserver.TableController) error {
			return tc.PlayerCall(c.username)
		})

	case ClientMessage_Raise:
		err = s.withTable(c, func(tc pokerserver.TableController) error {
			return tc.PlayerRaise(c.username, message.Amount)
		})

	case ClientMessage_AllIn:
		err = s.withTable(c, func(tc pokerserver.TableController) error {
			return tc.PlayerAllIn(c.username)
		})

	case ClientMessage_Fold:
		err = s.withTable(c, func(tc pokerserver.TableController) error {
			return tc.PlayerFold(c.username)
		})

	case ClientMessage_Chat:
		err = s.withTable(c, func(tc pokerserver.TableController) error {
			return tc.PlayerChat(c.username, message.Message)
		})

	case ClientMessage_ClaimReward:
		ctx, cancel := context.WithTimeout(context.Background(), storageTimeout)
		var reward int
		reward, err = s.casino.ClaimReward(ctx, c.username)
		cancel()
		if err == nil {
			s.sendJSON(c, rewardResponse{Reward: reward})
		}

	default:
		err = fmt.Errorf("unknown message type %q", message.Type)
	}

	if err != nil {
		s.sendJSON(c, errorResponse{Error: err.Error()})
	}
	return err
}

func (s *Server) createTable(message ClientMessage) error {
	if message.Table == "" {
		return fmt.Errorf("table title is required")
	}

	options := pokerserver.NewTableControllerOptions()
	if message.SmallBlind > 0 {
		options.SmallBlind = message.SmallBlind
	}
	options.Ranked = message.Ranked

	_, err := s.casino.CreateTable(message.Table, options)
	return err
}

// withTable routes a gameplay frame to the table the casino has the player
// seated at. Frames carry no table title; the seating record is the truth.
func (s *Server) withTable(c *client, fn func(pokerserver.TableController) error) error {
	tc, err := s.casino.SeatedAt(c.username)
	if err != nil {
		return err
	}
	return fn(tc)
}

func (s *Server) sendJSON(c *client, body interface{}) {
	payload, err := json.Marshal(body)
	if err != nil {
		return
	}

	select {
	case c.send <- payload:
	default:
	}
}
