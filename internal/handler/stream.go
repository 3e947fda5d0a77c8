package handler

import (
	"net/http"
	"time"

	"finhub/internal/domain"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// streamInterval is how often the stream checks the store for new rows.
var streamInterval = 3 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Demo service: accept websocket connections from any origin.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// streamMessage is one websocket frame: the initial snapshot, then deltas
// carrying only transactions the connection has not seen yet.
type streamMessage struct {
	Type         string                `json:"type"`
	Transactions []*domain.Transaction `json:"transactions"`
	Count        int                   `json:"count"`
}

// Stream upgrades to a websocket, sends a snapshot of the current
// transactions, then pushes newly stored ones as they appear. The connection
// closes when the client goes away or a write fails.
func (h *TransactionHandler) Stream(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("Websocket upgrade failed", map[string]interface{}{"error": err.Error()})
		return
	}
	defer conn.Close()

	h.logger.Info("Transaction stream connected", map[string]interface{}{
		"remote_addr": r.RemoteAddr,
	})

	txs, err := h.transactions.FindAll(r.Context())
	if err != nil {
		h.logger.Error("Failed to load snapshot for stream", map[string]interface{}{"error": err.Error()})
		return
	}

	sent := make(map[uuid.UUID]struct{}, len(txs))
	for _, tx := range txs {
		sent[tx.ID] = struct{}{}
	}

	if err := conn.WriteJSON(streamMessage{Type: "snapshot", Transactions: txs, Count: len(txs)}); err != nil {
		return
	}

	ticker := time.NewTicker(streamInterval)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-ticker.C:
			txs, err := h.transactions.FindAll(r.Context())
			if err != nil {
				h.logger.Error("Failed to poll transactions for stream", map[string]interface{}{"error": err.Error()})
				return
			}

			var fresh []*domain.Transaction
			for _, tx := range txs {
				if _, ok := sent[tx.ID]; ok {
					continue
				}
				sent[tx.ID] = struct{}{}
				fresh = append(fresh, tx)
			}
			if len(fresh) == 0 {
				continue
			}

			if err := conn.WriteJSON(streamMessage{Type: "delta", Transactions: fresh, Count: len(fresh)}); err != nil {
				h.logger.Info("Transaction stream disconnected", map[string]interface{}{
					"remote_addr": r.RemoteAddr,
				})
				return
			}
		}
	}
}
