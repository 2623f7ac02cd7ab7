package main

import (
	"encoding/json"
	"fmt"
	"os"

	"finledger/internal/core"
	"finledger/internal/ledger"
)

type statementsCmd struct{}

func (c *statementsCmd) Run(cc *cliContext) error {
	statements := cc.svc.Statements()
	if len(statements) == 0 {
		fmt.Println("no statements uploaded")
		return nil
	}
	for _, s := range statements {
		line := fmt.Sprintf("%-36s  %-10s  %3d%%  %s", s.ID, s.Status, s.Progress, s.Name)
		if s.ExtractedData != nil {
			line += fmt.Sprintf("  (%d transactions, %s..%s)",
				s.ExtractedData.TransactionCount,
				s.ExtractedData.DateStart,
				s.ExtractedData.DateEnd)
		}
		fmt.Println(line)
	}
	return nil
}

type totalsCmd struct{}

func (c *totalsCmd) Run(cc *cliContext) error {
	ov := cc.svc.Overview()
	fmt.Printf("income:   %.2f\n", ov.TotalIncome)
	fmt.Printf("expenses: %.2f\n", ov.TotalExpenses)
	fmt.Printf("net:      %.2f\n", ov.TotalIncome-ov.TotalExpenses)
	fmt.Printf("count:    %d\n", ov.TransactionCount)
	return nil
}

type recentCmd struct {
	Limit int `default:"10" help:"Maximum number of transactions to show."`
}

func (c *recentCmd) Run(cc *cliContext) error {
	for _, tx := range cc.svc.RecentTransactions(c.Limit) {
		fmt.Printf("%s  %-8s  %10.2f  %-16s  %s\n",
			tx.Date, tx.Type, tx.Amount, tx.Category, tx.Description)
	}
	return nil
}

type categoriesCmd struct{}

func (c *categoriesCmd) Run(cc *cliContext) error {
	for _, cat := range cc.svc.Overview().ByCategory {
		name := cat.Name
		if name == "" {
			name = "(uncategorized)"
		}
		fmt.Printf("%-24s  %4d  %10.2f\n", name, cat.Count, cat.Total)
	}
	return nil
}

// importFile is the JSON shape produced by the statement-parsing pipeline:
// one statement plus its extracted transactions.
type importFile struct {
	Statement    core.Statement     `json:"statement"`
	Transactions []core.Transaction `json:"transactions"`
}

type importCmd struct {
	File string `arg:"" type:"existingfile" help:"Parsed statement JSON file."`
}

func (c *importCmd) Run(cc *cliContext) error {
	raw, err := os.ReadFile(c.File)
	if err != nil {
		return fmt.Errorf("read import file: %w", err)
	}
	var in importFile
	if err := json.Unmarshal(raw, &in); err != nil {
		return fmt.Errorf("decode import file: %w", err)
	}

	candidate := in.Statement
	if candidate.Status == "" {
		candidate.Status = core.StatusUploading
	}
	if candidate.Name == "" {
		return core.ErrEmptyName
	}
	for i, tx := range in.Transactions {
		if err := tx.Validate(); err != nil {
			return fmt.Errorf("transaction %d: %w", i, err)
		}
	}

	admitted, ok, err := cc.svc.AddStatement(cc.ctx, candidate)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Printf("statement %q already uploaded, skipping\n", candidate.Name)
		return nil
	}

	batch := make([]core.Transaction, len(in.Transactions))
	for i, tx := range in.Transactions {
		tx.Source = admitted.ID
		batch[i] = tx
	}
	count, err := cc.svc.AddTransactions(cc.ctx, batch)
	if err != nil {
		return err
	}

	status := core.StatusCompleted
	progress := 100
	summary := summarize(batch)
	if err := cc.svc.UpdateStatement(cc.ctx, admitted.ID, ledger.StatementUpdate{
		Status:        &status,
		Progress:      &progress,
		ExtractedData: &summary,
	}); err != nil {
		return err
	}

	fmt.Printf("imported %q: %d of %d transactions admitted\n",
		admitted.Name, count, len(in.Transactions))
	return nil
}

// summarize derives the extracted-data summary attached to a completed
// statement from its admitted batch.
func summarize(batch []core.Transaction) core.ExtractedSummary {
	summary := core.ExtractedSummary{TransactionCount: len(batch)}
	seen := map[string]bool{}
	for _, tx := range batch {
		if summary.DateStart == "" || tx.Date < summary.DateStart {
			summary.DateStart = tx.Date
		}
		if tx.Date > summary.DateEnd {
			summary.DateEnd = tx.Date
		}
		switch tx.Type {
		case core.TypeIncome:
			summary.TotalIncome += tx.Amount
		case core.TypeExpense:
			if tx.Amount < 0 {
				summary.TotalExpenses -= tx.Amount
			} else {
				summary.TotalExpenses += tx.Amount
			}
		}
		if !seen[tx.Category] {
			seen[tx.Category] = true
			summary.Categories = append(summary.Categories, tx.Category)
		}
	}
	return summary
}

type removeCmd struct {
	ID string `arg:"" help:"Statement id to remove."`
}

func (c *removeCmd) Run(cc *cliContext) error {
	before := len(cc.svc.Statements())
	if err := cc.svc.RemoveStatement(cc.ctx, c.ID); err != nil {
		return err
	}
	if len(cc.svc.Statements()) == before {
		fmt.Printf("no statement with id %q\n", c.ID)
	}
	return nil
}

type clearCmd struct{}

func (c *clearCmd) Run(cc *cliContext) error {
	return cc.svc.ClearTransactions(cc.ctx)
}
