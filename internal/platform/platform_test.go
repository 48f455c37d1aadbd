package platform

import (
	"testing"

	"fenrir/internal/accounts"
	"fenrir/internal/engine"
	"fenrir/internal/ledger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDeposit(t *testing.T, p *TradingPlatform, signer string, amount uint64) {
	t.Helper()
	_, err := p.Deposit(signer, amount)
	require.NoError(t, err)
}

func TestSubmitOrder_RequiresExistingSigner(t *testing.T) {
	p := New()

	_, err := p.SubmitOrder(engine.Order{Price: 10, Amount: 1, Side: engine.Sell, Signer: "ALICE"})
	var accErr *accounts.AccountError
	require.ErrorAs(t, err, &accErr)
	assert.Equal(t, accounts.NotFound, accErr.Kind)

	assert.Empty(t, p.OrderBook())
}

func TestSubmitOrder_PartialMatchUpdatesAccounts(t *testing.T) {
	p := New()
	mustDeposit(t, p, "ALICE", 100)
	mustDeposit(t, p, "BOB", 100)

	aliceReceipt, err := p.SubmitOrder(engine.Order{Price: 10, Amount: 1, Side: engine.Sell, Signer: "ALICE"})
	require.NoError(t, err)
	assert.Empty(t, aliceReceipt.Matches)
	assert.Equal(t, uint64(1), aliceReceipt.Ordinal)

	bobReceipt, err := p.SubmitOrder(engine.Order{Price: 10, Amount: 2, Side: engine.Buy, Signer: "BOB"})
	require.NoError(t, err)
	assert.Equal(t, []engine.PartialOrder{
		{Price: 10, Amount: 1, Remaining: 0, Side: engine.Sell, Signer: "ALICE", Ordinal: 1},
	}, bobReceipt.Matches)

	assert.Len(t, p.OrderBook(), 1)

	aliceBalance, _ := p.BalanceOf("ALICE")
	bobBalance, _ := p.BalanceOf("BOB")
	assert.Equal(t, uint64(110), aliceBalance)
	assert.Equal(t, uint64(90), bobBalance)
}

func TestSubmitOrder_FullyMatchedOrderLeavesBookEmpty(t *testing.T) {
	p := New()
	mustDeposit(t, p, "ALICE", 100)
	mustDeposit(t, p, "BOB", 100)

	_, err := p.SubmitOrder(engine.Order{Price: 10, Amount: 2, Side: engine.Sell, Signer: "ALICE"})
	require.NoError(t, err)

	bobReceipt, err := p.SubmitOrder(engine.Order{Price: 10, Amount: 2, Side: engine.Buy, Signer: "BOB"})
	require.NoError(t, err)
	assert.Equal(t, []engine.PartialOrder{
		{Price: 10, Amount: 2, Remaining: 0, Side: engine.Sell, Signer: "ALICE", Ordinal: 1},
	}, bobReceipt.Matches)

	assert.Empty(t, p.OrderBook())

	aliceBalance, _ := p.BalanceOf("ALICE")
	bobBalance, _ := p.BalanceOf("BOB")
	assert.Equal(t, uint64(120), aliceBalance)
	assert.Equal(t, uint64(80), bobBalance)
}

// TestSubmitOrder_SettlementJournal exercises spec scenario 6: deposits,
// then a full match, then asserts both the final balances and the exact
// journal order (withdraw before deposit on a settlement send).
func TestSubmitOrder_SettlementJournal(t *testing.T) {
	p := New()
	mustDeposit(t, p, "ALICE", 100)
	mustDeposit(t, p, "BOB", 100)

	_, err := p.SubmitOrder(engine.Order{Price: 10, Amount: 2, Side: engine.Sell, Signer: "ALICE"})
	require.NoError(t, err)
	_, err = p.SubmitOrder(engine.Order{Price: 10, Amount: 2, Side: engine.Buy, Signer: "BOB"})
	require.NoError(t, err)

	aliceBalance, _ := p.BalanceOf("ALICE")
	bobBalance, _ := p.BalanceOf("BOB")
	assert.Equal(t, uint64(120), aliceBalance)
	assert.Equal(t, uint64(80), bobBalance)

	assert.Equal(t, []ledger.Tx{
		ledger.NewDeposit("ALICE", 100),
		ledger.NewDeposit("BOB", 100),
		ledger.NewWithdraw("BOB", 20),
		ledger.NewDeposit("ALICE", 20),
	}, p.Transactions())
}

func TestSubmitOrder_NoSelfMatch(t *testing.T) {
	p := New()
	mustDeposit(t, p, "ALICE", 100)
	mustDeposit(t, p, "CHARLIE", 100)

	_, err := p.SubmitOrder(engine.Order{Price: 10, Amount: 1, Side: engine.Sell, Signer: "ALICE"})
	require.NoError(t, err)
	_, err = p.SubmitOrder(engine.Order{Price: 10, Amount: 1, Side: engine.Sell, Signer: "CHARLIE"})
	require.NoError(t, err)

	aliceReceipt, err := p.SubmitOrder(engine.Order{Price: 10, Amount: 2, Side: engine.Buy, Signer: "ALICE"})
	require.NoError(t, err)
	assert.Equal(t, []engine.PartialOrder{
		{Price: 10, Amount: 1, Remaining: 0, Side: engine.Sell, Signer: "CHARLIE", Ordinal: 2},
	}, aliceReceipt.Matches)

	assert.Len(t, p.OrderBook(), 2)
}

func TestSubmitOrder_UnderfundedBuyIsRejectedBeforeEngineTouched(t *testing.T) {
	p := New()
	mustDeposit(t, p, "BOB", 5)

	_, err := p.SubmitOrder(engine.Order{Price: 10, Amount: 2, Side: engine.Buy, Signer: "BOB"})
	var accErr *accounts.AccountError
	require.ErrorAs(t, err, &accErr)
	assert.Equal(t, accounts.UnderFunded, accErr.Kind)

	assert.Empty(t, p.OrderBook())
	balance, _ := p.BalanceOf("BOB")
	assert.Equal(t, uint64(5), balance)
}
