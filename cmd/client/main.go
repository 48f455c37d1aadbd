// Command client is the interactive terminal front-end for the trading
// platform: a labelled-prompt REPL that issues one HTTP call per verb.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/go-resty/resty/v2"

	"fenrir/internal/engine"
	"fenrir/internal/ledger"
	"fenrir/internal/wire"
)

func main() {
	host := flag.String("host", "http://localhost:8080", "address of the trading platform server")
	flag.Parse()

	client := resty.New().SetBaseURL(*host)
	reader := bufio.NewReader(os.Stdin)

	for {
		action := prompt(reader, "Select operation:\n  -> deposit\n  -> withdraw\n  -> send\n  -> submit_order\n  -> orderbook\n  -> account\n  -> txlog\n  -> quit")

		switch strings.ToLower(action) {
		case "deposit":
			runDeposit(client, reader)
		case "withdraw":
			runWithdraw(client, reader)
		case "send":
			runSend(client, reader)
		case "submit_order":
			runSubmitOrder(client, reader)
		case "orderbook":
			runOrderBook(client)
		case "account":
			runAccount(client, reader)
		case "txlog":
			runTxLog(client)
		case "quit":
			fmt.Println("Exiting program....")
			os.Exit(1)
		default:
			fmt.Fprintf(os.Stderr, "Invalid action: %q\n", action)
		}
	}
}

func prompt(r *bufio.Reader, label string) string {
	fmt.Println(label)
	line, _ := r.ReadString('\n')
	return strings.TrimSpace(line)
}

func promptUint(r *bufio.Reader, label string) uint64 {
	for {
		raw := prompt(r, label)
		v, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			fmt.Println("Please input a valid number")
			continue
		}
		return v
	}
}

func checkErr(resp *resty.Response, err error) error {
	if err != nil {
		return err
	}
	if resp.IsError() {
		return fmt.Errorf("server error: %s", resp.String())
	}
	return nil
}

func runDeposit(client *resty.Client, r *bufio.Reader) {
	signer := prompt(r, "What is the signer account name?")
	amount := promptUint(r, "What is the amount?")

	fmt.Printf("Depositing %d to %s\n", amount, signer)

	var tx ledger.Tx
	resp, err := client.R().
		SetBody(wire.DepositArgs{Signer: signer, Amount: amount}).
		SetResult(&tx).
		Post("/account/deposit")
	if err := checkErr(resp, err); err != nil {
		fmt.Fprintln(os.Stderr, "Something went wrong:", err)
		return
	}

	fmt.Println("Deposit successful!")
	printTxTable(tx)
}

func runWithdraw(client *resty.Client, r *bufio.Reader) {
	signer := prompt(r, "What is the signer account name?")
	amount := promptUint(r, "What is the amount?")

	fmt.Printf("Withdrawing %d from %s\n", amount, signer)

	var tx ledger.Tx
	resp, err := client.R().
		SetBody(wire.WithdrawArgs{Signer: signer, Amount: amount}).
		SetResult(&tx).
		Post("/account/withdraw")
	if err := checkErr(resp, err); err != nil {
		fmt.Fprintln(os.Stderr, "Something went wrong:", err)
		return
	}

	fmt.Println("Withdraw successful!")
	printTxTable(tx)
}

func runSend(client *resty.Client, r *bufio.Reader) {
	signer := prompt(r, "What is the sender account name?")
	recipient := prompt(r, "What is the recipient account name?")
	amount := promptUint(r, "What is the amount?")

	fmt.Printf("Sending %d from %s to %s\n", amount, signer, recipient)

	var txs [2]ledger.Tx
	resp, err := client.R().
		SetBody(wire.SendArgs{Signer: signer, Recipient: recipient, Amount: amount}).
		SetResult(&txs).
		Post("/account/send")
	if err := checkErr(resp, err); err != nil {
		fmt.Fprintln(os.Stderr, "Something went wrong:", err)
		return
	}

	fmt.Println("Send successful!")
	printTxTable(txs[0], txs[1])
}

func runSubmitOrder(client *resty.Client, r *bufio.Reader) {
	fmt.Println("Please provide the following order details:")
	signer := prompt(r, "What is your account name?")

	side := engine.Sell
	switch strings.ToLower(prompt(r, "What is the order type? Buy/Sell? (default is Sell)")) {
	case "buy":
		side = engine.Buy
	}

	price := promptUint(r, "What is the price?")
	amount := promptUint(r, "What is the amount?")

	fmt.Println("Submitting order.....")

	var receipt engine.Receipt
	resp, err := client.R().
		SetBody(wire.OrderArgs{Signer: signer, Side: side, Price: price, Amount: amount}).
		SetResult(&receipt).
		Post("/submit_order")
	if err := checkErr(resp, err); err != nil {
		fmt.Fprintln(os.Stderr, "Something went wrong:", err)
		return
	}

	fmt.Println("Order submitted successfully! Your receipt is below:")
	fmt.Printf("Ordinal: %d\n", receipt.Ordinal)
	printPartialOrdersTable(receipt.Matches)
}

func runOrderBook(client *resty.Client) {
	fmt.Println("Printing orderbook.....")

	var book []engine.PartialOrder
	resp, err := client.R().SetResult(&book).Get("/orderbook")
	if err := checkErr(resp, err); err != nil {
		fmt.Fprintln(os.Stderr, "Something went wrong:", err)
		return
	}

	printPartialOrdersTable(book)
}

func runAccount(client *resty.Client, r *bufio.Reader) {
	signer := prompt(r, "What is the account name?")

	fmt.Println("Checking account balance.....")

	var balance uint64
	resp, err := client.R().
		SetQueryParam("signer", signer).
		SetResult(&balance).
		Get("/account")
	if err := checkErr(resp, err); err != nil {
		fmt.Fprintln(os.Stderr, "Something went wrong:", err)
		return
	}

	printAccountTable(balance)
}

func runTxLog(client *resty.Client) {
	fmt.Println("Printing txlog.....")

	var txs []ledger.Tx
	resp, err := client.R().SetResult(&txs).Get("/transactions")
	if err := checkErr(resp, err); err != nil {
		fmt.Fprintln(os.Stderr, "Something went wrong:", err)
		return
	}

	printTxTable(txs...)
}

func printTxTable(txs ...ledger.Tx) {
	tw := tabwriter.NewWriter(os.Stdout, 0, 2, 2, ' ', 0)
	fmt.Fprintln(tw, "OPERATION\tACCOUNT\tAMOUNT")
	for _, tx := range txs {
		fmt.Fprintf(tw, "%s\t%s\t%d\n", strings.ToUpper(tx.Kind.String()), tx.Account, tx.Amount)
	}
	tw.Flush()
}

func printPartialOrdersTable(pos []engine.PartialOrder) {
	tw := tabwriter.NewWriter(os.Stdout, 0, 2, 2, ' ', 0)
	fmt.Fprintln(tw, "SIDE\tPRICE\tAMOUNT\tREMAINING\tORDINAL")
	for _, po := range pos {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%d\n", strings.ToUpper(po.Side.String()), po.Price, po.Amount, po.Remaining, po.Ordinal)
	}
	tw.Flush()
}

func printAccountTable(balance uint64) {
	tw := tabwriter.NewWriter(os.Stdout, 0, 2, 2, ' ', 0)
	fmt.Fprintln(tw, "BALANCE")
	fmt.Fprintf(tw, "%d\n", balance)
	tw.Flush()
}
