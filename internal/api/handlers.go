package api

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"fenrir/internal/engine"
	"fenrir/internal/ledger"
	"fenrir/internal/wire"
)

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error().Err(err).Msg("failed to encode response body")
	}
}

// writeAccountError serializes err as JSON with HTTP 500, per spec §6 and
// §7: every AccountError reaching a handler is reported this way,
// regardless of which of the three kinds it is.
func writeAccountError(w http.ResponseWriter, err error) {
	writeJSON(w, http.StatusInternalServerError, err)
}

func readJSON(r *http.Request, dst any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(dst)
}

// GET /
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, "Up")
}

// GET /orderbook
func (s *Server) handleOrderBook(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.platform.OrderBook())
}

// GET /transactions
func (s *Server) handleTransactions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.platform.Transactions())
}

// GET /account?signer=NAME
func (s *Server) handleAccount(w http.ResponseWriter, r *http.Request) {
	signer := r.URL.Query().Get("signer")

	balance, err := s.platform.BalanceOf(signer)
	if err != nil {
		writeAccountError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, balance)
}

// POST /account/deposit
func (s *Server) handleDeposit(w http.ResponseWriter, r *http.Request) {
	var args wire.DepositArgs
	if err := readJSON(r, &args); err != nil {
		http.Error(w, "malformed request body", http.StatusBadRequest)
		return
	}

	tx, err := s.platform.Deposit(args.Signer, args.Amount)
	if err != nil {
		writeAccountError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tx)
}

// POST /account/withdraw
func (s *Server) handleWithdraw(w http.ResponseWriter, r *http.Request) {
	var args wire.WithdrawArgs
	if err := readJSON(r, &args); err != nil {
		http.Error(w, "malformed request body", http.StatusBadRequest)
		return
	}

	tx, err := s.platform.Withdraw(args.Signer, args.Amount)
	if err != nil {
		writeAccountError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tx)
}

// POST /account/send
func (s *Server) handleSend(w http.ResponseWriter, r *http.Request) {
	var args wire.SendArgs
	if err := readJSON(r, &args); err != nil {
		http.Error(w, "malformed request body", http.StatusBadRequest)
		return
	}

	wTx, dTx, err := s.platform.Send(args.Signer, args.Recipient, args.Amount)
	if err != nil {
		writeAccountError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, [2]ledger.Tx{wTx, dTx})
}

// POST /submit_order
func (s *Server) handleSubmitOrder(w http.ResponseWriter, r *http.Request) {
	var args wire.OrderArgs
	if err := readJSON(r, &args); err != nil {
		http.Error(w, "malformed request body", http.StatusBadRequest)
		return
	}

	order := engine.Order{
		Price:  args.Price,
		Amount: args.Amount,
		Side:   args.Side,
		Signer: args.Signer,
	}

	receipt, err := s.platform.SubmitOrder(order)
	if err != nil {
		writeAccountError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, receipt)
}

// POST /match_order — stateless probe: seeds a throwaway engine from the
// caller-supplied books and runs one order through it, with no settlement
// and no effect on the platform's persistent state.
func (s *Server) handleMatchOrder(w http.ResponseWriter, r *http.Request) {
	var args wire.MatchArgs
	if err := readJSON(r, &args); err != nil {
		http.Error(w, "malformed request body", http.StatusBadRequest)
		return
	}

	probe := engine.NewWithBook(args.Asks, args.Bids)
	receipt := probe.Process(args.Order)

	writeJSON(w, http.StatusOK, wire.MatchResult{
		Receipt:   receipt,
		OrderBook: append(probe.Asks(), probe.Bids()...),
	})
}
