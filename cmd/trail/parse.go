package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/Veraticus/paper-trail/internal/common"
	"github.com/Veraticus/paper-trail/internal/config"
	"github.com/Veraticus/paper-trail/internal/model"
	"github.com/Veraticus/paper-trail/internal/ofx"
	"github.com/Veraticus/paper-trail/internal/ofx/schema"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func parseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse [file]",
		Short: "Parse an OFX/QFX statement file",
		Long: `Parse a bank, credit-card, or investment statement in OFX v1 (SGML) or
OFX v2 (XML) format and print what it contains.

Examples:
  # Summarize a downloaded statement
  trail parse ~/Downloads/checking_jan_2024.qfx

  # Emit the typed records as JSON for scripting
  trail parse --json ~/Downloads/brokerage.ofx

  # Skip the strict parser for files known to be sloppy SGML
  trail parse --sgml ~/Downloads/legacy.ofx`,
		Args: cobra.ExactArgs(1),
		RunE: runParse,
	}

	cmd.Flags().Bool("sgml", false, "Go straight to the lenient SGML parser")
	cmd.Flags().Bool("json", false, "Print parsed statements as JSON")

	return cmd
}

func runParse(cmd *cobra.Command, args []string) error {
	sgml, _ := cmd.Flags().GetBool("sgml")
	asJSON, _ := cmd.Flags().GetBool("json")

	path := config.ExpandPath(args[0])
	if _, err := os.Stat(path); err != nil {
		return common.NewUserError(fmt.Sprintf("cannot read %s", path), err)
	}

	parser := ofx.NewParser(schema.Default(), ofx.WithLenient(sgml))
	if err := parser.ParseFile(cmd.Context(), path); err != nil {
		return common.NewUserError(fmt.Sprintf("failed to parse %s", path), err)
	}

	slog.Info("Parsed OFX file",
		"file", path,
		"bank", parser.Bank != nil,
		"creditcard", parser.CreditCard != nil,
		"investment", parser.Investment != nil)

	if asJSON {
		return printJSON(parser)
	}

	out := cmd.OutOrStdout()
	if parser.Bank == nil && parser.CreditCard == nil && parser.Investment == nil {
		fmt.Fprintln(out, "No statements found in document.")
		return nil
	}
	fmt.Fprint(out, renderSummary(parser))
	return nil
}

func printJSON(parser *ofx.Parser) error {
	payload := struct {
		Header     ofx.Header                 `json:"header"`
		Bank       *model.BankStatement       `json:"bank,omitempty"`
		CreditCard *model.CreditCardStatement `json:"creditcard,omitempty"`
		Investment *model.InvestmentStatement `json:"investment,omitempty"`
	}{parser.Header, parser.Bank, parser.CreditCard, parser.Investment}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(payload); err != nil {
		return fmt.Errorf("encode statements: %w", err)
	}
	return nil
}

var (
	headingColor = color.New(color.FgCyan, color.Bold)
	labelColor   = color.New(color.FgYellow)
)

func renderSummary(parser *ofx.Parser) string {
	var b strings.Builder

	if st := parser.Bank; st != nil {
		headingColor.Fprintln(&b, "Bank statement")
		fmt.Fprintf(&b, "  %s %s %s (%s)\n", labelColor.Sprint("Account:"), st.Account.BankID, st.Account.AcctID, st.Account.AcctType)
		writeCommonSummary(&b, st.CurDef, len(st.Transactions), st.LedgerBalance, st.AvailableBalance, len(st.OtherBalances))
	}
	if st := parser.CreditCard; st != nil {
		headingColor.Fprintln(&b, "Credit-card statement")
		fmt.Fprintf(&b, "  %s %s\n", labelColor.Sprint("Account:"), st.Account.AcctID)
		writeCommonSummary(&b, st.CurDef, len(st.Transactions), st.LedgerBalance, st.AvailableBalance, len(st.OtherBalances))
	}
	if st := parser.Investment; st != nil {
		headingColor.Fprintln(&b, "Investment statement")
		fmt.Fprintf(&b, "  %s %s %s\n", labelColor.Sprint("Account:"), st.Account.BrokerID, st.Account.AcctID)
		fmt.Fprintf(&b, "  %s %s\n", labelColor.Sprint("Currency:"), st.CurDef)
		fmt.Fprintf(&b, "  %s %d\n", labelColor.Sprint("Transactions:"), len(st.Transactions))
		fmt.Fprintf(&b, "  %s %d\n", labelColor.Sprint("Positions:"), len(st.Positions))
		fmt.Fprintf(&b, "  %s %d\n", labelColor.Sprint("Securities:"), len(st.Securities))
		fmt.Fprintf(&b, "  %s %s\n", labelColor.Sprint("Available cash:"), st.AvailCash.StringFixed(2))
	}
	return b.String()
}

func writeCommonSummary(b *strings.Builder, curdef string, txns int, ledger model.Balance, avail *model.Balance, otherBalances int) {
	fmt.Fprintf(b, "  %s %s\n", labelColor.Sprint("Currency:"), curdef)
	fmt.Fprintf(b, "  %s %d\n", labelColor.Sprint("Transactions:"), txns)
	fmt.Fprintf(b, "  %s %s (as of %s)\n", labelColor.Sprint("Ledger balance:"), ledger.Amount.StringFixed(2), ledger.DtAsOf.Format("2006-01-02"))
	if avail != nil {
		fmt.Fprintf(b, "  %s %s (as of %s)\n", labelColor.Sprint("Available balance:"), avail.Amount.StringFixed(2), avail.DtAsOf.Format("2006-01-02"))
	}
	if otherBalances > 0 {
		fmt.Fprintf(b, "  %s %d\n", labelColor.Sprint("Other balances:"), otherBalances)
	}
}
